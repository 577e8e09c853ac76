package gamedata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// cardTypeColors and intentColors are the terminal palette, as hex strings.
var cardTypeColors = map[CardType]string{
	CardAttack: "#E74C3C",
	CardSkill:  "#3498DB",
	CardPower:  "#F5B041",
	CardCurse:  "#AF7AC5",
	CardStatus: "#95A5A6",
}

var intentColors = map[Intent]string{
	IntentAttack:       "#E74C3C",
	IntentAttackDefend: "#E74C3C",
	IntentAttackDebuff: "#E74C3C",
	IntentDefend:       "#3498DB",
	IntentBuff:         "#27AE60",
	IntentDebuff:       "#9B59B6",
}

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")

	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}

	r, err := strconv.ParseUint(hex[0:2], 16, 8)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid red component in %s: %w", hex, err)
	}

	g, err := strconv.ParseUint(hex[2:4], 16, 8)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid green component in %s: %w", hex, err)
	}

	b, err := strconv.ParseUint(hex[4:6], 16, 8)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid blue component in %s: %w", hex, err)
	}

	return tcell.NewRGBColor(int32(r), int32(g), int32(b)), nil
}

// MustParseHexColor converts a hex color string to tcell.Color, panicking on error.
func MustParseHexColor(hex string) tcell.Color {
	color, err := ParseHexColor(hex)
	if err != nil {
		panic(err)
	}
	return color
}

// CardTypeColor returns the display color for a card type.
func CardTypeColor(t CardType) tcell.Color {
	hex, ok := cardTypeColors[t]
	if !ok {
		return tcell.ColorWhite
	}
	return MustParseHexColor(hex)
}

// IntentColor returns the display color for an enemy intent.
func IntentColor(i Intent) tcell.Color {
	hex, ok := intentColors[i]
	if !ok {
		return tcell.ColorGray
	}
	return MustParseHexColor(hex)
}
