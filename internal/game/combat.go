package game

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/samdwyer/deckbound/internal/combat"
	"github.com/samdwyer/deckbound/internal/deck"
	"github.com/samdwyer/deckbound/internal/entity"
	"github.com/samdwyer/deckbound/internal/event"
	"github.com/samdwyer/deckbound/internal/gamedata"
	"github.com/samdwyer/deckbound/internal/rng"
	"github.com/samdwyer/deckbound/internal/status"
	"github.com/samdwyer/deckbound/internal/telemetry"
)

// Phase is the state of the combat state machine.
type Phase int

const (
	// PhaseIdle - created, StartCombat not called yet
	PhaseIdle Phase = iota
	// PhasePlayerTurn - waiting for the player to play cards or end the turn
	PhasePlayerTurn
	// PhaseEnemyTurn - enemies are acting
	PhaseEnemyTurn
	// PhaseWon - every enemy is dead
	PhaseWon
	// PhaseLost - the player is dead
	PhaseLost
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlayerTurn:
		return "player_turn"
	case PhaseEnemyTurn:
		return "enemy_turn"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether the combat is over.
func (p Phase) Terminal() bool {
	return p == PhaseWon || p == PhaseLost
}

// Engine runs a single combat between the player and a roster of enemies.
// It is not safe for concurrent use; every method runs to completion.
type Engine struct {
	player   *entity.Player
	src      rng.Source
	observer event.Observer
	logger   *zap.Logger
	tracer   trace.Tracer

	piles        *deck.Manager
	resolver     *combat.EffectResolver
	behavior     *combat.Behavior
	playerStatus *status.Ledger
	enemies      entity.Roster

	phase               Phase
	turn                int
	energy              int
	maxEnergy           int
	block               int
	cardsPlayedThisTurn int
}

// Option configures an Engine.
type Option func(*Engine)

// WithObserver sends every combat notification to o.
func WithObserver(o event.Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.observer = o
		}
	}
}

// WithLogger sets the engine logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithTracer sets the tracer used for combat spans.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) {
		if t != nil {
			e.tracer = t
		}
	}
}

// NewEngine creates an engine for player. The player's HP and deck belong
// to the run and are read and written through player.
func NewEngine(player *entity.Player, src rng.Source, opts ...Option) *Engine {
	e := &Engine{
		player:       player,
		src:          src,
		observer:     event.Discard,
		logger:       zap.NewNop(),
		tracer:       telemetry.NoopTracer(),
		playerStatus: status.NewLedger(),
		maxEnergy:    player.MaxEnergy,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.piles = deck.NewManager(src, e.observer)
	e.resolver = combat.NewEffectResolver(e.observer)
	e.behavior = combat.NewBehavior(src)
	return e
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase { return e.phase }

// Turn returns the current turn number, starting at 1.
func (e *Engine) Turn() int { return e.turn }

// =============================================================================
// Commands
// =============================================================================

// StartCombat resets the per-combat state, shuffles the run deck into the
// draw pile, selects every enemy's first intent and begins turn 1. An engine
// runs one combat; later calls return false.
func (e *Engine) StartCombat(ctx context.Context, enemies []*entity.Enemy) bool {
	if e.phase != PhaseIdle {
		e.logger.Debug("start rejected", zap.Stringer("phase", e.phase))
		return false
	}

	_, span := e.tracer.Start(ctx, "combat.start")
	defer span.End()

	e.enemies = enemies
	e.phase = PhasePlayerTurn
	e.turn = 0
	e.maxEnergy = e.player.MaxEnergy
	e.energy = e.maxEnergy
	e.block = 0
	e.cardsPlayedThisTurn = 0
	e.playerStatus.Clear()

	e.piles.InitCombat(e.player.Deck)

	for _, en := range e.enemies {
		en.Intent = e.behavior.SelectIntent(en)
	}

	span.SetAttributes(
		attribute.Int("enemy_count", len(enemies)),
		attribute.Int("deck_size", len(e.player.Deck)),
		attribute.Int("player_hp", e.player.HP),
	)
	e.logger.Info("combat started",
		zap.Int("enemies", len(enemies)),
		zap.Int("deck", len(e.player.Deck)),
		zap.Int("hp", e.player.HP),
	)

	e.startPlayerTurn(ctx)
	e.notify(event.CombatStarted, CombatStarted{Enemies: e.enemies})
	return true
}

// PlayCard plays the card with the given instance id from the hand.
// targetID selects the enemy for single-target effects; when it is empty
// and exactly one enemy is alive, that enemy is the target. Returns false
// without changing anything if the card cannot be played now.
func (e *Engine) PlayCard(ctx context.Context, instanceID, targetID string) bool {
	if e.phase != PhasePlayerTurn {
		e.logger.Debug("play rejected", zap.String("card", instanceID), zap.Stringer("phase", e.phase))
		return false
	}
	card := e.piles.FindInHand(instanceID)
	if card == nil {
		e.logger.Debug("play rejected: not in hand", zap.String("card", instanceID))
		return false
	}
	if !e.resolver.CanPlay(card, e.pool()) {
		e.logger.Debug("play rejected: cannot play",
			zap.String("card", card.DefID),
			zap.Int("cost", card.EnergyCost),
			zap.Int("energy", e.energy),
		)
		return false
	}

	ctx, span := e.tracer.Start(ctx, "combat.play_card")
	defer span.End()

	target := e.selectTarget(targetID)

	res := e.resolver.Resolve(card, e.pool(), target, e.playerStatus)
	e.energy -= res.EnergyCost
	e.cardsPlayedThisTurn++

	for _, r := range res.Results {
		e.applyResult(r, target)
	}

	switch {
	case card.Has(gamedata.Exhaust):
		e.piles.ExhaustFromHand(instanceID)
	case card.Type == gamedata.CardPower:
		e.piles.RemoveFromHand(instanceID)
	default:
		e.piles.DiscardFromHand(instanceID)
	}

	span.SetAttributes(
		attribute.String("card", card.DefID),
		attribute.Int("energy_cost", res.EnergyCost),
		attribute.Int("turn", e.turn),
	)
	if target != nil {
		span.SetAttributes(attribute.String("target", target.InstanceID))
	}
	e.logger.Debug("card played",
		zap.String("card", card.DefID),
		zap.Int("turn", e.turn),
		zap.Int("energy", e.energy),
	)

	e.checkEnemyDeaths()

	if e.enemies.AllDead() {
		e.finish(ctx, PhaseWon)
		return true
	}
	if !e.player.IsAlive() {
		e.finish(ctx, PhaseLost)
		return true
	}

	e.notify(event.CardPlayComplete, PlayComplete{
		Card:    card,
		Results: res.Results,
		Energy:  e.energy,
		Hand:    e.handCopy(),
	})
	return true
}

// EndPlayerTurn processes end-of-turn statuses, discards the hand and runs
// the enemy turn. Returns false outside the player turn.
func (e *Engine) EndPlayerTurn(ctx context.Context) bool {
	if e.phase != PhasePlayerTurn {
		e.logger.Debug("end turn rejected", zap.Stringer("phase", e.phase))
		return false
	}

	for _, a := range e.playerStatus.EndOfTurn() {
		e.applyPlayerAction(a)
	}
	e.playerStatus.TickTurnEnd()
	e.piles.DiscardHand()

	e.notify(event.PlayerTurnEnd, TurnInfo{Turn: e.turn})

	e.executeEnemyTurn(ctx)
	return true
}

// PreviewDamage returns the damage the card in hand would deal to the
// given enemy, ignoring block. Returns 0 for unknown cards.
func (e *Engine) PreviewDamage(instanceID, targetID string) int {
	card := e.piles.FindInHand(instanceID)
	if card == nil {
		return 0
	}
	return e.resolver.PreviewDamage(card, e.pool(), e.enemies.ByInstanceID(targetID), e.playerStatus)
}

// =============================================================================
// Turn flow
// =============================================================================

// startPlayerTurn begins the next player turn.
func (e *Engine) startPlayerTurn(ctx context.Context) {
	e.turn++
	e.phase = PhasePlayerTurn

	if !e.playerStatus.Has(status.Barricade) {
		e.block = 0
	}
	e.energy = e.maxEnergy
	e.cardsPlayedThisTurn = 0

	for _, a := range e.playerStatus.StartOfTurn() {
		e.applyPlayerAction(a)
	}
	if !e.player.IsAlive() {
		e.finish(ctx, PhaseLost)
		return
	}

	e.piles.Draw(e.player.CardsPerDraw)

	e.notify(event.PlayerTurnStart, TurnInfo{
		Turn:   e.turn,
		Energy: e.energy,
		Hand:   e.handCopy(),
	})
}

// executeEnemyTurn runs every living enemy in roster order, then decides
// whether the combat is over. Player death is only checked after the sweep.
func (e *Engine) executeEnemyTurn(ctx context.Context) {
	ctx, span := e.tracer.Start(ctx, "combat.enemy_turn")
	span.SetAttributes(attribute.Int("turn", e.turn))

	e.phase = PhaseEnemyTurn
	e.notify(event.EnemyTurnStart, TurnInfo{Turn: e.turn})

	hpBefore := e.player.HP
	for _, en := range e.enemies {
		if !en.IsAlive() {
			continue
		}

		en.Block = 0
		for _, a := range en.Status.StartOfTurn() {
			switch a.Kind {
			case status.ActionDamage:
				en.LoseHP(a.Value)
			case status.ActionApplyStatus:
				en.Status.Apply(a.Status, a.Value)
			}
		}
		if !en.IsAlive() {
			e.checkEnemyDeaths()
			continue
		}

		if en.Intent != nil {
			results := e.behavior.ExecuteAction(en.Intent, en)
			e.applyEnemyResults(results, en)
		}

		en.Status.TickTurnEnd()
		en.Intent = e.behavior.SelectIntent(en)
	}

	e.notify(event.EnemyTurnEnd, TurnInfo{Turn: e.turn})

	span.SetAttributes(attribute.Int("player_hp_lost", hpBefore-e.player.HP))
	span.End()

	if !e.player.IsAlive() {
		e.finish(ctx, PhaseLost)
		return
	}
	if e.enemies.AllDead() {
		e.finish(ctx, PhaseWon)
		return
	}
	e.startPlayerTurn(ctx)
}

// finish moves to a terminal phase and reports the outcome.
func (e *Engine) finish(ctx context.Context, outcome Phase) {
	_, span := e.tracer.Start(ctx, "combat.end")
	span.SetAttributes(
		attribute.String("outcome", outcome.String()),
		attribute.Int("turns_taken", e.turn),
		attribute.Int("player_hp_remaining", e.player.HP),
	)
	span.End()

	e.phase = outcome
	e.logger.Info("combat ended",
		zap.Stringer("outcome", outcome),
		zap.Int("turn", e.turn),
		zap.Int("hp", e.player.HP),
	)

	if outcome == PhaseWon {
		e.notify(event.CombatWon, TurnInfo{Turn: e.turn})
	} else {
		e.notify(event.CombatLost, TurnInfo{Turn: e.turn})
	}
}

// =============================================================================
// Result application
// =============================================================================

// applyResult applies one card result. Single-target damage has already
// been applied by the resolver.
func (e *Engine) applyResult(r combat.Result, target *entity.Enemy) {
	switch r.Kind {
	case gamedata.EffectBlock:
		e.block += r.Value
		e.notify(event.BlockGained, BlockGained{Value: r.Value, Total: e.block})
	case gamedata.EffectApplyStatus:
		switch r.Target {
		case gamedata.TargetPlayer, gamedata.TargetSelf:
			e.playerStatus.Apply(r.Status, r.Value)
		case gamedata.TargetSingleEnemy:
			if target != nil {
				target.Status.Apply(r.Status, r.Value)
			}
		case gamedata.TargetAllEnemies:
			for _, en := range e.enemies.Alive() {
				en.Status.Apply(r.Status, r.Value)
			}
		}
	case gamedata.EffectDraw:
		e.piles.Draw(r.Value)
	case gamedata.EffectGainEnergy:
		e.energy += r.Value
	case gamedata.EffectHeal:
		e.player.Heal(r.Value)
	case gamedata.EffectLoseHP:
		e.player.LoseHP(r.Value)
	case gamedata.EffectDamage:
		if r.Target != gamedata.TargetAllEnemies {
			return
		}
		for _, en := range e.enemies.Alive() {
			for _, hit := range r.Hits {
				en.AbsorbHit(combat.VulnerableDamage(hit.Damage, en.Status))
			}
		}
	default:
		e.logger.Debug("unhandled card effect", zap.String("type", r.Name))
	}
}

// applyEnemyResults applies the results of enemy's action to the player.
// Enemy block and self-targeted statuses were applied when the action ran.
func (e *Engine) applyEnemyResults(results []combat.Result, enemy *entity.Enemy) {
	for _, r := range results {
		switch r.Kind {
		case gamedata.EffectDamage:
			for i := 0; i < max(r.Times, 1); i++ {
				damage := max(0, combat.IncomingDamage(r.Value, enemy.Status, e.playerStatus))
				blocked := min(e.block, damage)
				e.block -= blocked
				lost := e.player.LoseHP(damage - blocked)
				e.notify(event.PlayerDamaged, PlayerDamaged{
					Source:      enemy.InstanceID,
					Damage:      damage,
					Blocked:     blocked,
					HPLoss:      lost,
					RemainingHP: e.player.HP,
				})
			}
		case gamedata.EffectApplyStatus:
			if r.Target != gamedata.TargetPlayer {
				continue
			}
			if r.Status.Debuff() && e.playerStatus.Consume(status.Artifact) {
				e.notify(event.StatusNegated, StatusNegated{
					Source:            enemy.InstanceID,
					Status:            r.Status,
					Value:             r.Value,
					ArtifactRemaining: e.playerStatus.Get(status.Artifact),
				})
				continue
			}
			e.playerStatus.Apply(r.Status, r.Value)
		}
	}
}

// applyPlayerAction applies a turn-boundary status action to the player.
func (e *Engine) applyPlayerAction(a status.Action) {
	switch a.Kind {
	case status.ActionDamage:
		e.player.LoseHP(a.Value)
	case status.ActionHeal:
		e.player.Heal(a.Value)
	case status.ActionBlock:
		e.block += a.Value
	case status.ActionApplyStatus:
		e.playerStatus.Apply(a.Status, a.Value)
	}
}

// checkEnemyDeaths reports each enemy whose HP reached zero since the last
// check.
func (e *Engine) checkEnemyDeaths() {
	for _, en := range e.enemies {
		if !en.IsAlive() && !en.Dead {
			en.Dead = true
			e.logger.Debug("enemy died", zap.String("enemy", en.InstanceID))
			e.notify(event.EnemyDied, EnemyDied{Enemy: en})
		}
	}
}

// selectTarget resolves targetID, defaulting to the only living enemy.
func (e *Engine) selectTarget(targetID string) *entity.Enemy {
	if targetID != "" {
		if t := e.enemies.ByInstanceID(targetID); t != nil {
			return t
		}
	}
	if e.enemies.AliveCount() == 1 {
		return e.enemies.FirstAlive()
	}
	return nil
}

// handCopy returns the hand as values so observers cannot reach engine cards.
func (e *Engine) handCopy() []entity.Card {
	hand := e.piles.Hand()
	out := make([]entity.Card, len(hand))
	for i, c := range hand {
		out[i] = c.Clone()
	}
	return out
}

func (e *Engine) pool() combat.Pool {
	return combat.Pool{Energy: e.energy, Block: e.block}
}

func (e *Engine) notify(t event.Type, data any) {
	e.observer.Notify(event.Event{Type: t, Data: data})
}
