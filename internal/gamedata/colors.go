package gamedata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

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

// parseStyle builds a tcell style from hex foreground and background colors.
// An empty background leaves the terminal default.
func parseStyle(fg, bg string) (tcell.Style, error) {
	style := tcell.StyleDefault
	fgColor, err := ParseHexColor(fg)
	if err != nil {
		return style, err
	}
	style = style.Foreground(fgColor)
	if bg == "" {
		return style, nil
	}
	bgColor, err := ParseHexColor(bg)
	if err != nil {
		return style, err
	}
	return style.Background(bgColor), nil
}
