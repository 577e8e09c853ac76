package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/deckbound/internal/entity"
	"github.com/samdwyer/deckbound/internal/gamedata"
	"github.com/samdwyer/deckbound/internal/status"
)

// EnemyPanel is what the renderer shows for one enemy.
type EnemyPanel struct {
	Name       string
	HP, MaxHP  int
	Block      int
	Alive      bool
	Intent     gamedata.Intent
	IntentText string
	Statuses   []status.Entry
}

// CombatView is everything drawn on the combat screen.
type CombatView struct {
	Header      string
	PlayerName  string
	HP, MaxHP   int
	Block       int
	Energy      int
	MaxEnergy   int
	Statuses    []status.Entry
	Enemies     []EnemyPanel
	Target      int // index into Enemies, -1 for none
	Hand        []entity.Card
	HandHint    string // Shown under the hand when it spans several pages
	DrawPile    int
	DiscardPile int
	ExhaustPile int
	Messages    []string
}

const combatHelp = "1-9 play card  Left/Right page  Tab target  e end turn  q quit"

var (
	styleDefault = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleHeader  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleDead    = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleHP      = tcell.StyleDefault.Foreground(tcell.ColorGreen)
)

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// RenderCombat draws the combat screen.
func (r *Renderer) RenderCombat(v CombatView) {
	r.screen.Clear()
	_, height := r.screen.Size()

	y := 0
	r.drawText(0, y, v.Header, styleHeader)
	y += 2

	for i, en := range v.Enemies {
		marker := "  "
		if i == v.Target {
			marker = "> "
		}
		if !en.Alive {
			r.drawText(0, y, fmt.Sprintf("%s%s (dead)", marker, en.Name), styleDead)
			y++
			continue
		}
		x := r.drawText(0, y, fmt.Sprintf("%s%s  ", marker, en.Name), styleDefault)
		x = r.drawText(x, y, fmt.Sprintf("HP %d/%d", en.HP, en.MaxHP), styleHP)
		if en.Block > 0 {
			x = r.drawText(x, y, fmt.Sprintf("  Block %d", en.Block), styleDefault)
		}
		if en.IntentText != "" {
			r.drawText(x, y, "  Intent: "+en.IntentText, tcell.StyleDefault.Foreground(gamedata.IntentColor(en.Intent)))
		}
		y++
		if len(en.Statuses) > 0 {
			r.drawText(4, y, FormatStatuses(en.Statuses), styleDim)
			y++
		}
	}
	y++

	x := r.drawText(0, y, v.PlayerName+"  ", styleHeader)
	x = r.drawText(x, y, fmt.Sprintf("HP %d/%d", v.HP, v.MaxHP), styleHP)
	r.drawText(x, y, fmt.Sprintf("  Block %d  Energy %d/%d", v.Block, v.Energy, v.MaxEnergy), styleDefault)
	y++
	if len(v.Statuses) > 0 {
		r.drawText(4, y, FormatStatuses(v.Statuses), styleDim)
		y++
	}
	r.drawText(0, y, fmt.Sprintf("Draw %d  Discard %d  Exhaust %d", v.DrawPile, v.DiscardPile, v.ExhaustPile), styleDim)
	y += 2

	for i := range v.Hand {
		c := &v.Hand[i]
		r.drawText(0, y, CardLine(i+1, c), tcell.StyleDefault.Foreground(gamedata.CardTypeColor(c.Type)))
		y++
	}
	if v.HandHint != "" {
		r.drawText(0, y, v.HandHint, styleDim)
		y++
	}
	y++

	r.drawMessages(v.Messages, y, height-2)
	r.drawText(0, height-1, combatHelp, styleDim)
	r.screen.Show()
}

// RenderChoice draws a titled, numbered list of options.
func (r *Renderer) RenderChoice(title string, options []string, footer string, messages []string) {
	r.screen.Clear()
	_, height := r.screen.Size()

	r.drawText(0, 0, title, styleHeader)
	y := 2
	for _, opt := range options {
		r.drawText(0, y, opt, styleDefault)
		y++
	}
	y++
	r.drawMessages(messages, y, height-2)
	r.drawText(0, height-1, footer, styleDim)
	r.screen.Show()
}

// drawMessages draws the most recent messages that fit between top and bottom.
func (r *Renderer) drawMessages(messages []string, top, bottom int) {
	room := bottom - top + 1
	if room <= 0 {
		return
	}
	if len(messages) > room {
		messages = messages[len(messages)-room:]
	}
	for i, m := range messages {
		r.drawText(0, top+i, m, styleDim)
	}
}

// drawText writes s starting at x, y and returns the column after it.
func (r *Renderer) drawText(x, y int, s string, style tcell.Style) int {
	width, _ := r.screen.Size()
	for _, ch := range s {
		if x >= width {
			break
		}
		r.screen.SetContent(x, y, ch, style)
		x++
	}
	return x
}

// CardLine formats a hand entry such as "1) Strike [1] Deal 6 damage.".
func CardLine(n int, c *entity.Card) string {
	cost := fmt.Sprintf("[%d]", c.EnergyCost)
	if c.Has(gamedata.Unplayable) {
		cost = "[-]"
	}
	line := fmt.Sprintf("%d) %s %s", n, c.Name, cost)
	if kw := c.Keywords.Names(); len(kw) > 0 {
		line += " " + strings.Join(kw, ", ") + "."
	}
	if c.Description != "" {
		line += " " + c.Description
	}
	return line
}

// FormatStatuses formats entries as "strength 2, vulnerable 1".
func FormatStatuses(entries []status.Entry) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("%s %d", e.Status, e.Value)
	}
	return strings.Join(parts, ", ")
}
