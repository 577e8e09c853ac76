package game

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/samdwyer/deckbound/internal/combat"
	"github.com/samdwyer/deckbound/internal/entity"
	"github.com/samdwyer/deckbound/internal/event"
	"github.com/samdwyer/deckbound/internal/gamedata"
	"github.com/samdwyer/deckbound/internal/rng"
	"github.com/samdwyer/deckbound/internal/telemetry"
	"github.com/samdwyer/deckbound/internal/ui"
)

const (
	rewardChoices = 3
	maxMessages   = 100
	handPageSize  = 9
)

// Game holds the state of a run: the player, the current encounter and the
// terminal it is drawn on.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	regs     *gamedata.Registries
	cfg      Config
	logger   *zap.Logger
	tracer   trace.Tracer
	src      rng.Source
	bus      *event.Bus

	player    *entity.Player
	engine    *Engine
	state     State
	target    int
	page      int
	rewards   []*gamedata.CardDef
	encounter int
	messages  []string
	running   bool
}

// New creates a game for the configured class. The screen must already be
// initialized; Run closes it.
func New(screen *ui.Screen, regs *gamedata.Registries, cfg Config, logger *zap.Logger) (*Game, error) {
	if regs == nil {
		return nil, errors.New("game: registries are required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		regs:     regs,
		cfg:      cfg,
		logger:   logger,
		tracer:   telemetry.Tracer("game"),
		src:      rng.NewSeeded(seed),
		bus:      event.NewBus(),
		running:  true,
	}
	if err := g.newRun(); err != nil {
		return nil, err
	}
	g.bus.Subscribe(event.ObserverFunc(g.record))

	logger.Info("game created", zap.Int64("seed", seed), zap.String("class", cfg.ClassID))
	return g, nil
}

// newRun creates a fresh player from the configured class.
func (g *Game) newRun() error {
	class := g.regs.Classes.GetByID(g.cfg.ClassID)
	if class == nil {
		return fmt.Errorf("game: unknown class %q", g.cfg.ClassID)
	}

	p := entity.NewPlayer(class, g.regs.Cards)
	if g.cfg.StartingHP > 0 {
		p.HP, p.MaxHP = g.cfg.StartingHP, g.cfg.StartingHP
	}
	if g.cfg.StartingEnergy > 0 {
		p.MaxEnergy = g.cfg.StartingEnergy
	}
	if g.cfg.CardsPerDraw > 0 {
		p.CardsPerDraw = g.cfg.CardsPerDraw
	}

	g.player = p
	g.encounter = 0
	g.messages = nil
	return nil
}

// Run executes the main game loop.
func (g *Game) Run(ctx context.Context) error {
	ctx, initSpan := g.tracer.Start(ctx, "game.init")
	initSpan.SetAttributes(
		attribute.String("class", g.player.ClassID),
		attribute.Int("deck_size", len(g.player.Deck)),
	)
	err := g.startEncounter(ctx)
	initSpan.End()
	if err != nil {
		g.screen.Close()
		return err
	}

	for g.running {
		g.render()
		g.handleInput(ctx)
	}

	g.screen.Close()
	return nil
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKey(ctx, ev.Key(), ev.Rune())
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKey processes keyboard input for the current state.
func (g *Game) handleKey(ctx context.Context, key tcell.Key, r rune) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false
		return
	case tcell.KeyTab:
		if g.state == StateCombat {
			g.cycleTarget()
		}
		return
	case tcell.KeyLeft, tcell.KeyRight:
		if g.state == StateCombat {
			g.turnPage(key == tcell.KeyRight)
		}
		return
	case tcell.KeyRune:
	default:
		return
	}

	if r == 'q' || r == 'Q' {
		g.running = false
		return
	}

	switch g.state {
	case StateCombat:
		switch {
		case r >= '1' && r <= '9':
			g.playCard(ctx, g.page*handPageSize+int(r-'1'))
		case r == 'e' || r == 'E':
			g.engine.EndPlayerTurn(ctx)
			g.afterCommand()
		}
	case StateReward:
		switch {
		case r >= '1' && int(r-'1') < len(g.rewards):
			g.takeReward(int(r - '1'))
			g.nextEncounter(ctx)
		case r == 's' || r == 'S':
			g.say("You skip the reward.")
			g.nextEncounter(ctx)
		}
	case StateDefeat:
		if r == 'n' || r == 'N' {
			if err := g.newRun(); err != nil {
				g.logger.Error("new run failed", zap.Error(err))
				g.running = false
				return
			}
			g.nextEncounter(ctx)
		}
	}
}

// =============================================================================
// Encounters
// =============================================================================

// startEncounter spawns a weighted formation and starts combat against it.
func (g *Game) startEncounter(ctx context.Context) error {
	ids := g.regs.Enemies.SpawnFormation(g.src)
	if len(ids) == 0 {
		return errors.New("game: no encounter formations")
	}
	enemies := make([]*entity.Enemy, 0, len(ids))
	for _, id := range ids {
		enemies = append(enemies, entity.NewEnemy(g.regs.Enemies.GetByID(id), g.src))
	}
	g.beginCombat(ctx, enemies)
	return nil
}

// beginCombat starts a new engine against enemies.
func (g *Game) beginCombat(ctx context.Context, enemies []*entity.Enemy) {
	g.encounter++
	g.engine = NewEngine(g.player, g.src,
		WithObserver(g.bus),
		WithLogger(g.logger.With(zap.Int("encounter", g.encounter))),
		WithTracer(g.tracer),
	)
	g.state = StateCombat
	g.target = 0
	g.page = 0
	g.engine.StartCombat(ctx, enemies)
	g.afterCommand()
}

func (g *Game) nextEncounter(ctx context.Context) {
	if err := g.startEncounter(ctx); err != nil {
		g.logger.Error("encounter failed", zap.Error(err))
		g.running = false
	}
}

// playCard plays the card at hand index idx at the selected target.
func (g *Game) playCard(ctx context.Context, idx int) {
	hand := g.engine.State().Hand
	if idx < 0 || idx >= len(hand) {
		return
	}
	if !g.engine.PlayCard(ctx, hand[idx].InstanceID, g.targetID()) {
		g.say(fmt.Sprintf("You can't play %s.", hand[idx].Name))
		return
	}
	g.afterCommand()
}

// afterCommand moves the session along once the engine settles.
func (g *Game) afterCommand() {
	switch g.engine.Phase() {
	case PhaseWon:
		g.offerRewards()
	case PhaseLost:
		g.state = StateDefeat
		g.logger.Info("run over", zap.Int("encounter", g.encounter))
	default:
		enemies := g.engine.State().Enemies
		if g.target < 0 || g.target >= len(enemies) || !enemies[g.target].Alive {
			g.cycleTarget()
		}
		g.clampPage()
	}
}

// cycleTarget moves the target to the next living enemy.
func (g *Game) cycleTarget() {
	enemies := g.engine.State().Enemies
	for i := 1; i <= len(enemies); i++ {
		next := (g.target + i) % len(enemies)
		if enemies[next].Alive {
			g.target = next
			return
		}
	}
}

// targetID returns the instance id of the selected enemy, or "" if the
// selection is out of range.
func (g *Game) targetID() string {
	enemies := g.engine.State().Enemies
	if g.target < 0 || g.target >= len(enemies) {
		return ""
	}
	return enemies[g.target].InstanceID
}

// turnPage shows the next or previous handPageSize cards of the hand.
func (g *Game) turnPage(forward bool) {
	if forward {
		g.page++
	} else {
		g.page--
	}
	g.clampPage()
}

func (g *Game) clampPage() {
	pages := max(1, (len(g.engine.State().Hand)+handPageSize-1)/handPageSize)
	g.page = min(max(g.page, 0), pages-1)
}

// offerRewards picks distinct non-starter cards to choose from.
func (g *Game) offerRewards() {
	var pool []*gamedata.CardDef
	for _, rarity := range []gamedata.Rarity{gamedata.RarityCommon, gamedata.RarityUncommon, gamedata.RarityRare} {
		pool = append(pool, g.regs.Cards.ByRarity(rarity)...)
	}
	pool = rng.Shuffle(g.src, pool)
	g.rewards = pool[:min(rewardChoices, len(pool))]
	g.state = StateReward
}

func (g *Game) takeReward(idx int) {
	def := g.rewards[idx]
	g.player.AddCard(def, false)
	g.say(fmt.Sprintf("%s is added to your deck.", def.Name))
	g.logger.Info("card reward taken", zap.String("card", def.ID), zap.Int("deck", len(g.player.Deck)))
	g.rewards = nil
}

// =============================================================================
// Messages
// =============================================================================

// record turns combat events into message log lines. It only reads engine
// state.
func (g *Game) record(ev event.Event) {
	switch d := ev.Data.(type) {
	case CombatStarted:
		names := make([]string, len(d.Enemies))
		for i, en := range d.Enemies {
			names[i] = en.Name
		}
		g.say(fmt.Sprintf("Encounter %d: %s.", g.encounter, strings.Join(names, ", ")))
	case combat.PlayedPayload:
		g.say(fmt.Sprintf("You play %s.", d.Card.Name))
	case BlockGained:
		g.say(fmt.Sprintf("You gain %d block.", d.Value))
	case PlayerDamaged:
		g.say(fmt.Sprintf("%s hits you for %d (%d blocked).", g.enemyName(d.Source), d.HPLoss, d.Blocked))
	case EnemyDied:
		g.say(fmt.Sprintf("%s dies.", d.Enemy.Name))
	case StatusNegated:
		g.say(fmt.Sprintf("Artifact negates %s.", d.Status))
	case TurnInfo:
		switch ev.Type {
		case event.PlayerTurnStart:
			g.say(fmt.Sprintf("Turn %d.", d.Turn))
		case event.CombatWon:
			g.say("Victory!")
		case event.CombatLost:
			g.say("You have been defeated.")
		}
	}
}

func (g *Game) enemyName(instanceID string) string {
	for _, en := range g.engine.State().Enemies {
		if en.InstanceID == instanceID {
			return en.Name
		}
	}
	return instanceID
}

func (g *Game) say(msg string) {
	g.messages = append(g.messages, msg)
	if len(g.messages) > maxMessages {
		g.messages = g.messages[len(g.messages)-maxMessages:]
	}
}

// =============================================================================
// Rendering
// =============================================================================

func (g *Game) render() {
	switch g.state {
	case StateCombat:
		g.renderer.RenderCombat(g.combatView())
	case StateReward:
		options := make([]string, 0, len(g.rewards)+1)
		for i, def := range g.rewards {
			options = append(options, fmt.Sprintf("%d) %s [%d] %s", i+1, def.Name, def.EnergyCost, def.Description))
		}
		options = append(options, "s) Skip")
		g.renderer.RenderChoice("Victory! Choose a card for your deck.", options, rewardFooter(len(g.rewards)), g.messages)
	case StateDefeat:
		title := fmt.Sprintf("Defeated in encounter %d.", g.encounter)
		g.renderer.RenderChoice(title, nil, "n new run  q quit", g.messages)
	}
}

func (g *Game) combatView() ui.CombatView {
	s := g.engine.State()
	v := ui.CombatView{
		Header:      fmt.Sprintf("Deckbound  Encounter %d  Turn %d", g.encounter, s.Turn),
		PlayerName:  g.player.Name,
		HP:          s.PlayerHP,
		MaxHP:       s.PlayerMaxHP,
		Block:       s.Block,
		Energy:      s.Energy,
		MaxEnergy:   s.MaxEnergy,
		Statuses:    s.PlayerStatus,
		Target:      g.target,
		DrawPile:    s.DrawPileSize,
		DiscardPile: s.DiscardPileSize,
		ExhaustPile: s.ExhaustPileSize,
		Messages:    g.messages,
	}
	v.Hand, v.HandHint = g.handPage(s.Hand)
	for _, en := range s.Enemies {
		v.Enemies = append(v.Enemies, ui.EnemyPanel{
			Name:       en.Name,
			HP:         en.HP,
			MaxHP:      en.MaxHP,
			Block:      en.Block,
			Alive:      en.Alive,
			Intent:     en.Intent,
			IntentText: intentText(en),
			Statuses:   en.Statuses,
		})
	}
	return v
}

// handPage returns the cards on the current page and, when the hand does
// not fit on one page, a hint such as "Cards 10-12 of 12  Left/Right page".
func (g *Game) handPage(hand []entity.Card) ([]entity.Card, string) {
	if len(hand) <= handPageSize {
		return hand, ""
	}
	first := min(g.page*handPageSize, len(hand))
	last := min(first+handPageSize, len(hand))
	return hand[first:last], fmt.Sprintf("Cards %d-%d of %d  Left/Right page", first+1, last, len(hand))
}

// rewardFooter lists the keys valid on a reward screen with n choices.
func rewardFooter(n int) string {
	switch {
	case n <= 0:
		return "s skip  q quit"
	case n == 1:
		return "1 take card  s skip  q quit"
	default:
		return fmt.Sprintf("1-%d take card  s skip  q quit", n)
	}
}

// intentText describes a telegraphed action, e.g. "attack 6x2" or
// "attack 6+10x2" when the action has several damage effects.
func intentText(en EnemyView) string {
	if en.IntentID == "" {
		return ""
	}
	if len(en.IntentParts) == 0 {
		return string(en.Intent)
	}
	parts := make([]string, len(en.IntentParts))
	for i, p := range en.IntentParts {
		parts[i] = strconv.Itoa(p.Damage)
		if p.Hits > 1 {
			parts[i] += "x" + strconv.Itoa(p.Hits)
		}
	}
	return fmt.Sprintf("%s %s", en.Intent, strings.Join(parts, "+"))
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
