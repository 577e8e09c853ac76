package gamedata

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CardType is the category of a card.
type CardType string

const (
	CardAttack CardType = "attack"
	CardSkill  CardType = "skill"
	CardPower  CardType = "power"
	CardCurse  CardType = "curse"
	CardStatus CardType = "status"
)

// Rarity is how often a card appears as a reward.
type Rarity string

const (
	RarityStarter  Rarity = "starter"
	RarityCommon   Rarity = "common"
	RarityUncommon Rarity = "uncommon"
	RarityRare     Rarity = "rare"
	RaritySpecial  Rarity = "special"
	RarityCurse    Rarity = "curse"
)

// Keywords is a set of card keywords that change resolution or pile routing.
type Keywords uint8

const (
	Ethereal Keywords = 1 << iota
	Retain
	Exhaust
	Unplayable
)

var keywordNames = []struct {
	flag Keywords
	name string
}{
	{Ethereal, "Ethereal"},
	{Retain, "Retain"},
	{Exhaust, "Exhaust"},
	{Unplayable, "Unplayable"},
}

// Has reports whether every flag in k is set.
func (kw Keywords) Has(k Keywords) bool {
	return k != 0 && kw&k == k
}

// Names returns the keyword names in canonical order.
func (kw Keywords) Names() []string {
	var names []string
	for _, n := range keywordNames {
		if kw&n.flag != 0 {
			names = append(names, n.name)
		}
	}
	return names
}

// String joins the keyword names.
func (kw Keywords) String() string {
	return strings.Join(kw.Names(), ", ")
}

// ParseKeyword resolves a single keyword name.
func ParseKeyword(name string) (Keywords, error) {
	for _, n := range keywordNames {
		if strings.EqualFold(n.name, name) {
			return n.flag, nil
		}
	}
	return 0, fmt.Errorf("unknown keyword %q", name)
}

// UnmarshalJSON decodes a list of keyword names.
func (kw *Keywords) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	var set Keywords
	for _, name := range names {
		k, err := ParseKeyword(name)
		if err != nil {
			return err
		}
		set |= k
	}
	*kw = set
	return nil
}

// MarshalJSON encodes the set as a list of names.
func (kw Keywords) MarshalJSON() ([]byte, error) {
	names := kw.Names()
	if names == nil {
		names = []string{}
	}
	return json.Marshal(names)
}

// CardDef defines a card loaded from JSON.
type CardDef struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Type        CardType     `json:"type"`
	Rarity      Rarity       `json:"rarity"`
	EnergyCost  int          `json:"energyCost"`
	Description string       `json:"description"`
	Effects     []Effect     `json:"effects"`
	Keywords    Keywords     `json:"keywords"`
	Upgraded    *CardUpgrade `json:"upgraded,omitempty"`
}

// CardUpgrade overrides fields of a card when it is upgraded.
// Nil or empty fields fall back to the base definition.
type CardUpgrade struct {
	Name        string   `json:"name"`
	EnergyCost  *int     `json:"energyCost,omitempty"`
	Description string   `json:"description,omitempty"`
	Effects     []Effect `json:"effects,omitempty"`
}

// Variant returns the definition with the upgrade applied when upgraded is
// true and an upgrade exists. The receiver is not modified.
func (d *CardDef) Variant(upgraded bool) CardDef {
	v := *d
	v.Upgraded = nil
	if !upgraded || d.Upgraded == nil {
		return v
	}
	u := d.Upgraded
	if u.Name != "" {
		v.Name = u.Name
	}
	if u.EnergyCost != nil {
		v.EnergyCost = *u.EnergyCost
	}
	if u.Description != "" {
		v.Description = u.Description
	}
	if u.Effects != nil {
		v.Effects = u.Effects
	}
	return v
}

// CanUpgrade reports whether the card has an upgraded variant.
func (d *CardDef) CanUpgrade() bool {
	return d.Upgraded != nil
}

// CardsFile represents the structure of cards.json.
type CardsFile struct {
	Cards []CardDef `json:"cards"`
}

// LoadCards loads card definitions from the embedded cards.json file.
func LoadCards() ([]CardDef, error) {
	file, err := Load[CardsFile]("cards.json")
	if err != nil {
		return nil, err
	}
	return file.Cards, nil
}
