// Package combat turns declarative card and enemy effects into concrete
// numbers. It computes results; the engine in package game applies them.
package combat

import (
	"github.com/samdwyer/deckbound/internal/entity"
	"github.com/samdwyer/deckbound/internal/event"
	"github.com/samdwyer/deckbound/internal/gamedata"
	"github.com/samdwyer/deckbound/internal/status"
)

// Pool is the player's per-turn combat resources.
type Pool struct {
	Energy int
	Block  int
}

// Hit is the outcome of one repetition of a damage effect.
type Hit struct {
	Damage   int // Damage after every modifier, before block
	Blocked  int // Absorbed by the target's block
	HPLoss   int // Removed from the target's HP
	TargetHP int // Target HP after the hit, 0 when there was no target
}

// Result is the computed outcome of a single effect. Kind decides which
// fields are set, mirroring gamedata.Effect.
type Result struct {
	Kind   gamedata.EffectKind
	Name   string          // Raw type name, EffectOther only
	Value  int             // block, draw, gain_energy, heal, lose_hp, apply_status magnitude, enemy damage per hit
	Times  int             // Enemy damage repeat count
	Target gamedata.Target // Damage and apply_status selector
	Status status.Status   // apply_status only
	Hits   []Hit           // Card damage only
	Total  int             // Sum of Hits[i].HPLoss
	Source string          // Enemy instance id for enemy results
	Effect gamedata.Effect // Source effect, kept for passthrough kinds
}

// Resolution is what Resolve returns: the energy to deduct and the ordered
// results to apply.
type Resolution struct {
	EnergyCost int
	Results    []Result
}

// PlayedPayload is the Data of an event.CardPlayed notification.
type PlayedPayload struct {
	Card    *entity.Card
	Results []Result
}

// EffectResolver calculates card effects.
type EffectResolver struct {
	observer event.Observer
}

// NewEffectResolver creates a new effect resolver. A nil observer discards
// notifications.
func NewEffectResolver(observer event.Observer) *EffectResolver {
	if observer == nil {
		observer = event.Discard
	}
	return &EffectResolver{observer: observer}
}

// CanPlay checks that the card is playable and affordable.
func (r *EffectResolver) CanPlay(card *entity.Card, pool Pool) bool {
	if card == nil || !card.Playable() {
		return false
	}
	return card.EnergyCost <= pool.Energy
}

// Resolve computes one result per effect in declared order.
//
// Single-target damage is applied to target's block and HP here. Damage
// aimed at all enemies is computed without a target (no vulnerable, no
// block) and left for the caller to apply to each enemy. Everything else
// is reported only; the caller deducts energy and applies the results.
func (r *EffectResolver) Resolve(card *entity.Card, pool Pool, target *entity.Enemy, ledger *status.Ledger) Resolution {
	results := make([]Result, 0, len(card.Effects))
	for _, effect := range card.Effects {
		results = append(results, r.resolveEffect(effect, pool, target, ledger))
	}

	r.observer.Notify(event.Event{
		Type: event.CardPlayed,
		Data: PlayedPayload{Card: card, Results: results},
	})
	return Resolution{EnergyCost: card.EnergyCost, Results: results}
}

func (r *EffectResolver) resolveEffect(effect gamedata.Effect, pool Pool, target *entity.Enemy, ledger *status.Ledger) Result {
	switch effect.Kind {
	case gamedata.EffectDamage:
		if effect.Target == gamedata.TargetAllEnemies {
			target = nil
		}
		return resolveDamage(effect, pool, target, ledger)
	case gamedata.EffectBlock:
		return Result{Kind: effect.Kind, Value: BlockValue(effect, ledger), Effect: effect}
	case gamedata.EffectApplyStatus:
		return Result{
			Kind:   effect.Kind,
			Status: effect.Status,
			Value:  effect.Value,
			Target: effect.Target,
			Effect: effect,
		}
	case gamedata.EffectDraw, gamedata.EffectGainEnergy, gamedata.EffectHeal, gamedata.EffectLoseHP:
		return Result{Kind: effect.Kind, Value: effect.Value, Effect: effect}
	default:
		return Result{
			Kind:   gamedata.EffectOther,
			Name:   effect.Name,
			Value:  effect.Value,
			Target: effect.Target,
			Status: effect.Status,
			Effect: effect,
		}
	}
}

// resolveDamage handles damage effects.
func resolveDamage(effect gamedata.Effect, pool Pool, target *entity.Enemy, ledger *status.Ledger) Result {
	base := BaseDamage(effect, pool, ledger)

	res := Result{Kind: gamedata.EffectDamage, Target: effect.Target, Effect: effect}
	for i := 0; i < effect.Hits(); i++ {
		if target == nil {
			res.Hits = append(res.Hits, Hit{Damage: base, HPLoss: base})
			res.Total += base
			continue
		}
		damage := VulnerableDamage(base, target.Status)
		blocked, lost := target.AbsorbHit(damage)
		res.Hits = append(res.Hits, Hit{Damage: damage, Blocked: blocked, HPLoss: lost, TargetHP: target.HP})
		res.Total += lost
	}
	return res
}

// BaseDamage is the per-hit damage before the target is considered:
// value, plus each scaling term, plus strength, then weak.
func BaseDamage(effect gamedata.Effect, pool Pool, ledger *status.Ledger) int {
	damage := effect.Value
	for _, s := range effect.Scaling {
		var stat int
		switch s.Stat {
		case gamedata.StatBlock:
			stat = pool.Block
		case gamedata.StatStrength:
			stat = ledger.Get(status.Strength)
		}
		damage += stat * s.Multiplier
	}
	damage += ledger.Get(status.Strength)
	if ledger.Has(status.Weak) {
		damage = floorScale(damage, 3, 4)
	}
	return damage
}

// VulnerableDamage applies the target's vulnerable multiplier, if any.
func VulnerableDamage(damage int, target *status.Ledger) int {
	if target != nil && target.Has(status.Vulnerable) {
		return floorScale(damage, 3, 2)
	}
	return damage
}

// IncomingDamage is the per-hit damage of an enemy attack of value against
// the player: the attacker's weak first, then the defender's vulnerable.
func IncomingDamage(value int, attacker, defender *status.Ledger) int {
	damage := value
	if attacker != nil && attacker.Has(status.Weak) {
		damage = floorScale(damage, 3, 4)
	}
	return VulnerableDamage(damage, defender)
}

// BlockValue is value plus dexterity, then frail, never negative.
func BlockValue(effect gamedata.Effect, ledger *status.Ledger) int {
	block := effect.Value + ledger.Get(status.Dexterity)
	if ledger.Has(status.Frail) {
		block = floorScale(block, 3, 4)
	}
	return max(0, block)
}

// PreviewDamage calculates the total damage card would deal to target
// without applying it. Block is ignored.
func (r *EffectResolver) PreviewDamage(card *entity.Card, pool Pool, target *entity.Enemy, ledger *status.Ledger) int {
	total := 0
	for _, effect := range card.Effects {
		if effect.Kind != gamedata.EffectDamage {
			continue
		}
		damage := BaseDamage(effect, pool, ledger)
		if target != nil {
			damage = VulnerableDamage(damage, target.Status)
		}
		total += damage * effect.Hits()
	}
	return total
}

// floorScale returns floor(v * num / den).
func floorScale(v, num, den int) int {
	n := v * num
	q := n / den
	if n%den != 0 && n < 0 {
		q--
	}
	return q
}
