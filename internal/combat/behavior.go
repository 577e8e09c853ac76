package combat

import (
	"github.com/samdwyer/deckbound/internal/entity"
	"github.com/samdwyer/deckbound/internal/gamedata"
	"github.com/samdwyer/deckbound/internal/rng"
	"github.com/samdwyer/deckbound/internal/status"
)

// Behavior selects and executes enemy intents.
type Behavior struct {
	src rng.Source
}

// NewBehavior creates a behavior selector drawing from src.
func NewBehavior(src rng.Source) *Behavior {
	return &Behavior{src: src}
}

// SelectIntent advances the enemy's phase if a later phase has triggered
// and picks the next action from the active pattern. Actions whose
// conditions fail are skipped; if none qualify the first action of the
// pattern is used. Returns nil for an empty pattern.
func (b *Behavior) SelectIntent(e *entity.Enemy) *gamedata.Action {
	b.advancePhase(e)

	pattern := e.ActivePattern()
	if len(pattern) == 0 {
		return nil
	}

	var available []*gamedata.Action
	var weights []int
	for i := range pattern {
		if conditionsHold(&pattern[i], e) {
			available = append(available, &pattern[i])
			weights = append(weights, pattern[i].Weight)
		}
	}
	if len(available) == 0 {
		return &pattern[0]
	}
	return rng.WeightedChoice(b.src, available, weights)
}

// advancePhase scans phases from the last down to the one after the
// current phase and moves to the first whose trigger holds.
func (b *Behavior) advancePhase(e *entity.Enemy) {
	if !e.Def.HasPhases() {
		return
	}
	current := max(e.CurrentPhase, 0)
	for i := len(e.Def.Phases) - 1; i > current; i-- {
		if triggerHolds(e.Def.Phases[i].Trigger, e) {
			e.CurrentPhase = i
			return
		}
	}
}

func triggerHolds(t gamedata.Trigger, e *entity.Enemy) bool {
	switch t.Type {
	case gamedata.TriggerStart:
		return true
	case gamedata.TriggerHPBelowPercent:
		return e.HPPercent() < float64(t.Value)
	default:
		return false
	}
}

func conditionsHold(a *gamedata.Action, e *entity.Enemy) bool {
	for _, c := range a.Conditions {
		switch c.Type {
		case gamedata.ConditionNotConsecutive:
			if e.LastActionID == c.ActionID {
				return false
			}
		case gamedata.ConditionHPBelowPercent:
			if e.HPPercent() >= float64(c.Value) {
				return false
			}
		case gamedata.ConditionFirstTurn:
			if e.TurnCount != 0 {
				return false
			}
		}
	}
	return true
}

// ExecuteAction runs action for e. Block and self-targeted statuses are
// applied to the enemy directly; damage and every other effect are returned
// for the engine to apply to the player. Damage carries the enemy's
// strength but not weak or vulnerable.
func (b *Behavior) ExecuteAction(action *gamedata.Action, e *entity.Enemy) []Result {
	if action == nil {
		return nil
	}

	results := make([]Result, 0, len(action.Effects))
	for _, effect := range action.Effects {
		switch effect.Kind {
		case gamedata.EffectDamage:
			results = append(results, Result{
				Kind:   effect.Kind,
				Value:  effect.Value + e.Status.Get(status.Strength),
				Times:  effect.Hits(),
				Target: effect.Target,
				Source: e.InstanceID,
				Effect: effect,
			})
		case gamedata.EffectBlock:
			e.Block += effect.Value
			results = append(results, Result{Kind: effect.Kind, Value: effect.Value, Source: e.InstanceID, Effect: effect})
		case gamedata.EffectApplyStatus:
			if effect.Target == gamedata.TargetSelf {
				e.Status.Apply(effect.Status, effect.Value)
			}
			results = append(results, Result{
				Kind:   effect.Kind,
				Status: effect.Status,
				Value:  effect.Value,
				Target: effect.Target,
				Source: e.InstanceID,
				Effect: effect,
			})
		default:
			results = append(results, Result{
				Kind:   effect.Kind,
				Name:   effect.Name,
				Value:  effect.Value,
				Target: effect.Target,
				Status: effect.Status,
				Source: e.InstanceID,
				Effect: effect,
			})
		}
	}

	e.LastActionID = action.ID
	e.TurnCount++
	return results
}
