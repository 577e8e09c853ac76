package game

import (
	"github.com/samdwyer/deckbound/internal/combat"
	"github.com/samdwyer/deckbound/internal/entity"
	"github.com/samdwyer/deckbound/internal/gamedata"
	"github.com/samdwyer/deckbound/internal/status"
)

// EnemyView is the read-only view of an enemy in a Snapshot.
type EnemyView struct {
	InstanceID   string
	DefID        string
	Name         string
	Tier         gamedata.Tier
	HP, MaxHP    int
	Block        int
	Alive        bool
	IntentID     string          // Empty when the enemy has no intent
	Intent       gamedata.Intent // Telegraphed kind
	IntentDamage int             // Total over every hit, after weak and the player's vulnerable
	IntentParts  []DamagePart    // One per damage effect, in declared order
	Statuses     []status.Entry
}

// DamagePart is one damage effect of an intent.
type DamagePart struct {
	Damage int // Per hit
	Hits   int
}

// Snapshot is a copy of everything the presentation layer may show.
// Mutating it has no effect on the engine.
type Snapshot struct {
	Phase               Phase
	Turn                int
	Energy              int
	MaxEnergy           int
	Block               int
	CardsPlayedThisTurn int
	Hand                []entity.Card
	DrawPileSize        int
	DiscardPileSize     int
	ExhaustPileSize     int
	Enemies             []EnemyView
	PlayerStatus        []status.Entry
	PlayerHP            int
	PlayerMaxHP         int
}

// State returns a snapshot of the current combat.
func (e *Engine) State() Snapshot {
	snap := Snapshot{
		Phase:               e.phase,
		Turn:                e.turn,
		Energy:              e.energy,
		MaxEnergy:           e.maxEnergy,
		Block:               e.block,
		CardsPlayedThisTurn: e.cardsPlayedThisTurn,
		Hand:                e.handCopy(),
		DrawPileSize:        e.piles.DrawSize(),
		DiscardPileSize:     e.piles.DiscardSize(),
		ExhaustPileSize:     e.piles.ExhaustSize(),
		Enemies:             make([]EnemyView, 0, len(e.enemies)),
		PlayerStatus:        e.playerStatus.All(),
		PlayerHP:            e.player.HP,
		PlayerMaxHP:         e.player.MaxHP,
	}
	for _, en := range e.enemies {
		snap.Enemies = append(snap.Enemies, e.enemyView(en))
	}
	return snap
}

func (e *Engine) enemyView(en *entity.Enemy) EnemyView {
	v := EnemyView{
		InstanceID: en.InstanceID,
		DefID:      en.ID(),
		Name:       en.Name,
		Tier:       en.Tier,
		HP:         en.HP,
		MaxHP:      en.MaxHP,
		Block:      en.Block,
		Alive:      en.IsAlive(),
		Statuses:   en.Status.All(),
	}
	if en.Intent == nil {
		return v
	}
	v.IntentID = en.Intent.ID
	v.Intent = en.Intent.Intent
	for _, effect := range en.Intent.Effects {
		if effect.Kind != gamedata.EffectDamage {
			continue
		}
		value := effect.Value + en.Status.Get(status.Strength)
		part := DamagePart{
			Damage: max(0, combat.IncomingDamage(value, en.Status, e.playerStatus)),
			Hits:   effect.Hits(),
		}
		v.IntentParts = append(v.IntentParts, part)
		v.IntentDamage += part.Damage * part.Hits
	}
	return v
}
