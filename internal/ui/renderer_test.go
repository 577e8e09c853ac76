package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/deckbound/internal/entity"
	"github.com/samdwyer/deckbound/internal/gamedata"
	"github.com/samdwyer/deckbound/internal/status"
)

func newTestScreen(t *testing.T) *Screen {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := NewScreenWith(sim)
	require.NoError(t, err)
	sim.SetSize(80, 24)
	t.Cleanup(screen.Close)
	return screen
}

func screenText(s *Screen) string {
	_, h := s.Size()
	rows := make([]string, h)
	for y := range rows {
		rows[y] = s.Row(y)
	}
	return strings.Join(rows, "\n")
}

func TestCardLine(t *testing.T) {
	strike := &gamedata.CardDef{ID: "strike", Name: "Strike", Type: gamedata.CardAttack, EnergyCost: 1, Description: "Deal 6 damage."}
	injury := &gamedata.CardDef{ID: "injury", Name: "Injury", Type: gamedata.CardCurse, Keywords: gamedata.Unplayable}
	seeing := &gamedata.CardDef{ID: "seeing_red", Name: "Seeing Red", Type: gamedata.CardSkill, EnergyCost: 1, Keywords: gamedata.Exhaust, Description: "Gain 2 energy."}

	tests := []struct {
		n        int
		card     *entity.Card
		expected string
	}{
		{1, entity.NewCard(strike, false), "1) Strike [1] Deal 6 damage."},
		{2, entity.NewCard(injury, false), "2) Injury [-] Unplayable."},
		{3, entity.NewCard(seeing, false), "3) Seeing Red [1] Exhaust. Gain 2 energy."},
	}

	for _, tt := range tests {
		got := CardLine(tt.n, tt.card)
		if got != tt.expected {
			t.Errorf("CardLine(%d, %s) = %q, want %q", tt.n, tt.card.DefID, got, tt.expected)
		}
	}
}

func TestFormatStatuses(t *testing.T) {
	got := FormatStatuses([]status.Entry{
		{Status: status.Strength, Value: 2},
		{Status: status.Vulnerable, Value: 1},
	})
	assert.Equal(t, "strength 2, vulnerable 1", got)
	assert.Equal(t, "", FormatStatuses(nil))
}

func TestRenderCombat(t *testing.T) {
	screen := newTestScreen(t)
	r := NewRenderer(screen)

	strike := &gamedata.CardDef{ID: "strike", Name: "Strike", Type: gamedata.CardAttack, EnergyCost: 1, Description: "Deal 6 damage."}
	v := CombatView{
		Header:     "Encounter 1  Turn 2",
		PlayerName: "The Ironclad",
		HP:         70, MaxHP: 80, Block: 5, Energy: 2, MaxEnergy: 3,
		Statuses: []status.Entry{{Status: status.Strength, Value: 2}},
		Enemies: []EnemyPanel{
			{Name: "Jaw Worm", HP: 30, MaxHP: 42, Alive: true, Intent: gamedata.IntentAttack, IntentText: "attack 11"},
			{Name: "Louse", Alive: false},
		},
		Target:   0,
		Hand:     []entity.Card{*entity.NewCard(strike, false)},
		DrawPile: 4, DiscardPile: 3,
		Messages: []string{"You play Strike."},
	}
	r.RenderCombat(v)

	text := screenText(screen)
	assert.Contains(t, text, "Encounter 1  Turn 2")
	assert.Contains(t, text, "> Jaw Worm  HP 30/42  Intent: attack 11")
	assert.Contains(t, text, "  Louse (dead)")
	assert.Contains(t, text, "The Ironclad  HP 70/80  Block 5  Energy 2/3")
	assert.Contains(t, text, "strength 2")
	assert.Contains(t, text, "Draw 4  Discard 3  Exhaust 0")
	assert.Contains(t, text, "1) Strike [1] Deal 6 damage.")
	assert.Contains(t, text, "You play Strike.")
	assert.Equal(t, combatHelp, screen.Row(23))

	// Hand entries are colored by card type.
	for y := 0; y < 24; y++ {
		if strings.HasPrefix(screen.Row(y), "1) Strike") {
			want := tcell.StyleDefault.Foreground(gamedata.CardTypeColor(gamedata.CardAttack))
			assert.Equal(t, want, screen.StyleAt(0, y))
			return
		}
	}
	t.Fatal("hand line not found")
}

func TestRenderCombatHandHint(t *testing.T) {
	screen := newTestScreen(t)
	r := NewRenderer(screen)

	strike := &gamedata.CardDef{ID: "strike", Name: "Strike", Type: gamedata.CardAttack, EnergyCost: 1}
	r.RenderCombat(CombatView{
		Hand:     []entity.Card{*entity.NewCard(strike, false), *entity.NewCard(strike, false)},
		HandHint: "Cards 10-11 of 11  Left/Right page",
	})

	text := screenText(screen)
	assert.Contains(t, text, "2) Strike [1]")
	assert.Contains(t, text, "Cards 10-11 of 11  Left/Right page")
}

func TestRenderChoiceTrimsMessages(t *testing.T) {
	screen := newTestScreen(t)
	r := NewRenderer(screen)

	messages := make([]string, 40)
	for i := range messages {
		messages[i] = "line " + strings.Repeat("x", i%3)
	}
	messages[39] = "newest"
	r.RenderChoice("Victory!", []string{"1) Bash", "s) Skip"}, "1-3 take  s skip", messages)

	assert.Equal(t, "Victory!", screen.Row(0))
	assert.Equal(t, "1) Bash", screen.Row(2))
	assert.Equal(t, "s) Skip", screen.Row(3))
	assert.Equal(t, "newest", screen.Row(22))
	assert.Equal(t, "1-3 take  s skip", screen.Row(23))
}

func TestDrawTextClipsAtWidth(t *testing.T) {
	screen := newTestScreen(t)
	r := NewRenderer(screen)

	end := r.drawText(75, 0, "abcdefghij", styleDefault)
	assert.Equal(t, 80, end)
	assert.Equal(t, strings.Repeat(" ", 75)+"abcde", screen.Row(0))
}
