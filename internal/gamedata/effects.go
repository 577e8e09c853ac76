package gamedata

// =============================================================================
// EFFECT MODEL
// =============================================================================
//
// Cards and enemy actions carry an ordered list of effects. Each effect is a
// tagged variant: the kind decides which of the remaining fields matter.
//
//   damage        value, times, scaling, target
//   block         value
//   apply_status  status, value, target
//   draw          value
//   gain_energy   value
//   heal          value
//   lose_hp       value
//
// Any other "type" string is kept as EffectOther with the raw name so that
// the combat layer can pass it through untouched.
//
// JSON/YAML Schema:
// -----------------
// { "type": "damage", "value": 6, "times": 2, "target": "single_enemy",
//   "scaling": [ { "stat": "strength", "multiplier": 2 } ] }
// { "type": "apply_status", "status": "vulnerable", "value": 2, "target": "single_enemy" }
//
// Targets: single_enemy, all_enemies, player, self
// Scaling stats: block (current block pool), strength (player strength)

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/samdwyer/deckbound/internal/status"
)

// EffectKind is the variant tag of an Effect.
type EffectKind int

const (
	EffectOther EffectKind = iota
	EffectDamage
	EffectBlock
	EffectApplyStatus
	EffectDraw
	EffectGainEnergy
	EffectHeal
	EffectLoseHP
)

var effectKindNames = map[EffectKind]string{
	EffectDamage:      "damage",
	EffectBlock:       "block",
	EffectApplyStatus: "apply_status",
	EffectDraw:        "draw",
	EffectGainEnergy:  "gain_energy",
	EffectHeal:        "heal",
	EffectLoseHP:      "lose_hp",
}

// ParseEffectKind maps a type name to its kind. Unknown names map to EffectOther.
func ParseEffectKind(name string) EffectKind {
	for k, n := range effectKindNames {
		if n == name {
			return k
		}
	}
	return EffectOther
}

// String returns the type name of the kind.
func (k EffectKind) String() string {
	if n, ok := effectKindNames[k]; ok {
		return n
	}
	return "other"
}

// Target selects who an effect applies to.
type Target int

const (
	TargetNone Target = iota
	TargetSingleEnemy
	TargetAllEnemies
	TargetPlayer
	TargetSelf
)

// String returns the target selector name.
func (t Target) String() string {
	switch t {
	case TargetSingleEnemy:
		return "single_enemy"
	case TargetAllEnemies:
		return "all_enemies"
	case TargetPlayer:
		return "player"
	case TargetSelf:
		return "self"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Target) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Target) UnmarshalText(text []byte) error {
	switch string(text) {
	case "single_enemy":
		*t = TargetSingleEnemy
	case "all_enemies":
		*t = TargetAllEnemies
	case "player":
		*t = TargetPlayer
	case "self":
		*t = TargetSelf
	case "", "none":
		*t = TargetNone
	default:
		return fmt.Errorf("unknown target %q", string(text))
	}
	return nil
}

// ScalingStat names the value a damage scaling term reads.
type ScalingStat int

const (
	StatBlock ScalingStat = iota
	StatStrength
)

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *ScalingStat) UnmarshalText(text []byte) error {
	switch string(text) {
	case "block":
		*s = StatBlock
	case "strength":
		*s = StatStrength
	default:
		return fmt.Errorf("unknown scaling stat %q", string(text))
	}
	return nil
}

// String returns the stat name.
func (s ScalingStat) String() string {
	if s == StatStrength {
		return "strength"
	}
	return "block"
}

// Scaling adds stat * Multiplier to a damage effect's base value.
type Scaling struct {
	Stat       ScalingStat `json:"stat" yaml:"stat"`
	Multiplier int         `json:"multiplier" yaml:"multiplier"`
}

// Effect is one declarative step of a card or enemy action.
type Effect struct {
	Kind    EffectKind
	Name    string // raw type name, kept for EffectOther passthrough
	Value   int
	Times   int
	Scaling []Scaling
	Target  Target
	Status  status.Status
}

// Hits returns the repeat count, defaulting to 1.
func (e Effect) Hits() int {
	if e.Times < 1 {
		return 1
	}
	return e.Times
}

// effectDoc is the on-disk shape of an Effect.
type effectDoc struct {
	Type    string        `json:"type" yaml:"type"`
	Value   int           `json:"value" yaml:"value"`
	Times   int           `json:"times" yaml:"times"`
	Scaling []Scaling     `json:"scaling" yaml:"scaling"`
	Target  Target        `json:"target" yaml:"target"`
	Status  status.Status `json:"status" yaml:"status"`
}

func (d effectDoc) effect() Effect {
	return Effect{
		Kind:    ParseEffectKind(d.Type),
		Name:    d.Type,
		Value:   d.Value,
		Times:   d.Times,
		Scaling: d.Scaling,
		Target:  d.Target,
		Status:  d.Status,
	}
}

// UnmarshalJSON resolves the effect kind while decoding.
func (e *Effect) UnmarshalJSON(data []byte) error {
	var doc effectDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*e = doc.effect()
	return nil
}

// UnmarshalYAML resolves the effect kind while decoding.
func (e *Effect) UnmarshalYAML(node *yaml.Node) error {
	var doc effectDoc
	if err := node.Decode(&doc); err != nil {
		return err
	}
	*e = doc.effect()
	return nil
}
