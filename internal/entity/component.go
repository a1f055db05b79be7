// Package entity stores actors as opaque IDs with capabilities attached in
// separate component stores.
package entity

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/dungeonsight/internal/world"
)

// ErrInvalidRange is returned for a negative sight range.
var ErrInvalidRange = errors.New("invalid sight range")

// Position is an actor's location on the grid.
type Position struct {
	X, Y int
}

// Point returns the position as a grid point.
func (p Position) Point() world.Point {
	return world.Point{X: p.X, Y: p.Y}
}

// Viewshed is an actor's sight radius and the tiles it saw on the last step.
type Viewshed struct {
	Range   int
	Visible mapset.Set[world.Point]
}

// NewViewshed creates an empty viewshed. The range must not be negative.
func NewViewshed(sightRange int) (*Viewshed, error) {
	if sightRange < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRange, sightRange)
	}
	return &Viewshed{
		Range:   sightRange,
		Visible: mapset.New[world.Point](),
	}, nil
}

// CanSee returns true if the point was visible on the last step.
func (v *Viewshed) CanSee(p world.Point) bool {
	return v.Visible.Has(p)
}

// Renderable describes how an actor is drawn.
type Renderable struct {
	Glyph rune
	Fg    tcell.Color
	Bg    tcell.Color
}

// Style returns the tcell style for the renderable.
func (r Renderable) Style() tcell.Style {
	return tcell.StyleDefault.Foreground(r.Fg).Background(r.Bg)
}

// PlayerRenderable is the default look of the player.
var PlayerRenderable = Renderable{
	Glyph: '@',
	Fg:    tcell.ColorYellow,
	Bg:    tcell.ColorBlack,
}
