// Package status tracks stacked status effects (buffs and debuffs) per entity.
package status

import "fmt"

// Status identifies a status effect. The set is closed; names are resolved
// when definitions are loaded.
type Status int

const (
	None Status = iota
	Strength
	Dexterity
	Thorns
	Ritual
	Metallicize
	Barricade
	PlatedArmor
	Artifact
	Vulnerable
	Weak
	Frail
	Poison
	Burn
	Regen
	DrawReduction
	Entangle
	Confused
)

type info struct {
	name      string
	permanent bool
	debuff    bool
}

var table = [...]info{
	None:          {name: "none"},
	Strength:      {name: "strength", permanent: true},
	Dexterity:     {name: "dexterity", permanent: true},
	Thorns:        {name: "thorns", permanent: true},
	Ritual:        {name: "ritual", permanent: true},
	Metallicize:   {name: "metallicize", permanent: true},
	Barricade:     {name: "barricade", permanent: true},
	PlatedArmor:   {name: "plated_armor", permanent: true},
	Artifact:      {name: "artifact", permanent: true},
	Vulnerable:    {name: "vulnerable", debuff: true},
	Weak:          {name: "weak", debuff: true},
	Frail:         {name: "frail", debuff: true},
	Poison:        {name: "poison", debuff: true},
	Burn:          {name: "burn", debuff: true},
	Regen:         {name: "regen"},
	DrawReduction: {name: "draw_reduction", debuff: true},
	Entangle:      {name: "entangle", debuff: true},
	Confused:      {name: "confused", debuff: true},
}

var byName = func() map[string]Status {
	m := make(map[string]Status, len(table))
	for i, in := range table {
		m[in.name] = Status(i)
	}
	return m
}()

// Parse resolves a status name such as "vulnerable".
func Parse(name string) (Status, bool) {
	s, ok := byName[name]
	if !ok || s == None {
		return None, false
	}
	return s, true
}

// String returns the status name.
func (s Status) String() string {
	if s < 0 || int(s) >= len(table) {
		return "unknown"
	}
	return table[s].name
}

// Permanent reports whether the status is exempt from the turn-end tick.
func (s Status) Permanent() bool {
	return s.valid() && table[s].permanent
}

// Debuff reports whether an artifact charge negates this status.
func (s Status) Debuff() bool {
	return s.valid() && table[s].debuff
}

func (s Status) valid() bool {
	return s > None && int(s) < len(table)
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, ok := Parse(string(text))
	if !ok {
		return fmt.Errorf("unknown status %q", string(text))
	}
	*s = parsed
	return nil
}
