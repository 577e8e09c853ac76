// Package entity provides the runtime instances that take part in combat:
// cards, enemies and the player.
package entity

import (
	"slices"

	"github.com/google/uuid"

	"github.com/samdwyer/deckbound/internal/gamedata"
)

// Card is a unique instance of a card definition. The definition fields are
// copied after the upgrade is applied, so a Card never reads its DefID back.
type Card struct {
	InstanceID  string
	DefID       string
	Name        string
	Type        gamedata.CardType
	Rarity      gamedata.Rarity
	EnergyCost  int
	Description string
	Effects     []gamedata.Effect
	Keywords    gamedata.Keywords
	Upgraded    bool
}

// NewCard instantiates def. The instance id is "<defID>-<uuid>".
func NewCard(def *gamedata.CardDef, upgraded bool) *Card {
	v := def.Variant(upgraded)
	return &Card{
		InstanceID:  instanceID(def.ID),
		DefID:       def.ID,
		Name:        v.Name,
		Type:        v.Type,
		Rarity:      v.Rarity,
		EnergyCost:  v.EnergyCost,
		Description: v.Description,
		Effects:     v.Effects,
		Keywords:    v.Keywords,
		Upgraded:    upgraded && def.CanUpgrade(),
	}
}

// Clone returns a copy that shares nothing mutable with c.
func (c *Card) Clone() Card {
	cp := *c
	cp.Effects = slices.Clone(c.Effects)
	return cp
}

// Has reports whether the card carries keyword k.
func (c *Card) Has(k gamedata.Keywords) bool {
	return c.Keywords.Has(k)
}

// Playable reports whether the card may ever be played.
func (c *Card) Playable() bool {
	return !c.Has(gamedata.Unplayable)
}

func instanceID(defID string) string {
	return defID + "-" + uuid.NewString()
}
