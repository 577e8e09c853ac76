package entity

import (
	"github.com/samdwyer/deckbound/internal/gamedata"
	"github.com/samdwyer/deckbound/internal/rng"
	"github.com/samdwyer/deckbound/internal/status"
)

// Enemy is a hostile combatant instantiated from an EnemyDef.
type Enemy struct {
	Def          *gamedata.EnemyDef // Definition this enemy was rolled from
	InstanceID   string             // Unique per combat (e.g., "jaw_worm-<uuid>")
	Name         string
	Tier         gamedata.Tier
	HP           int
	MaxHP        int
	Block        int
	CurrentPhase int              // Index into Def.Phases, -1 for phase-less enemies
	Status       *status.Ledger   // Own status stacks
	LastActionID string           // ID of the last executed action
	TurnCount    int              // Number of actions executed
	Intent       *gamedata.Action // Telegraphed next action, nil if none
	Dead         bool             // Set once the death has been reported
}

// NewEnemy creates an enemy from def, rolling its maximum HP in the
// definition's range.
func NewEnemy(def *gamedata.EnemyDef, src rng.Source) *Enemy {
	hp := rng.IntBetween(src, def.HP.Min, def.HP.Max)
	phase := -1
	if def.HasPhases() {
		phase = 0
	}
	return &Enemy{
		Def:          def,
		InstanceID:   instanceID(def.ID),
		Name:         def.Name,
		Tier:         def.Tier,
		HP:           hp,
		MaxHP:        hp,
		CurrentPhase: phase,
		Status:       status.NewLedger(),
	}
}

// ID returns the enemy's definition identifier.
func (e *Enemy) ID() string {
	return e.Def.ID
}

// IsAlive returns true if the enemy has HP remaining.
func (e *Enemy) IsAlive() bool { return e.HP > 0 }

// HPPercent returns hp/maxHP*100.
func (e *Enemy) HPPercent() float64 {
	if e.MaxHP <= 0 {
		return 0
	}
	return float64(e.HP) / float64(e.MaxHP) * 100
}

// ActivePattern returns the pattern of the current phase, or the flat
// behavior pattern when the enemy has no phases.
func (e *Enemy) ActivePattern() []gamedata.Action {
	if e.Def.HasPhases() {
		if e.CurrentPhase < 0 || e.CurrentPhase >= len(e.Def.Phases) {
			return nil
		}
		return e.Def.Phases[e.CurrentPhase].Pattern
	}
	if e.Def.Behavior != nil {
		return e.Def.Behavior.Pattern
	}
	return nil
}

// AbsorbHit applies one hit of damage against block then HP.
// HP is clamped at zero; negative damage counts as zero.
func (e *Enemy) AbsorbHit(damage int) (blocked, hpLoss int) {
	damage = max(0, damage)
	blocked = min(e.Block, damage)
	e.Block -= blocked
	hpLoss = damage - blocked
	e.HP = max(0, e.HP-hpLoss)
	return blocked, hpLoss
}

// LoseHP reduces HP directly, ignoring block.
func (e *Enemy) LoseHP(amount int) {
	e.HP = max(0, e.HP-amount)
}
