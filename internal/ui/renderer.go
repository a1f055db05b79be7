package ui

import (
	"fmt"

	"github.com/samdwyer/dungeonsight/internal/entity"
	"github.com/samdwyer/dungeonsight/internal/gamedata"
	"github.com/samdwyer/dungeonsight/internal/world"
)

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen  *Screen
	palette *gamedata.Palette
}

// NewRenderer creates a renderer using the embedded palette.
func NewRenderer(screen *Screen) *Renderer {
	return NewRendererWithPalette(screen, gamedata.MustLoadPalette())
}

// NewRendererWithPalette creates a renderer with an explicit palette.
func NewRendererWithPalette(screen *Screen, palette *gamedata.Palette) *Renderer {
	return &Renderer{screen: screen, palette: palette}
}

// Render draws what viewer has revealed, the entities it can currently see,
// and a status line below the map. A terminal too small for the map gets a
// notice instead.
func (r *Renderer) Render(m *world.GridMap, store *entity.Store, viewer entity.ID, status string) {
	r.screen.Clear()

	if w, h := r.screen.Size(); w < m.Width() || h <= m.Height() {
		r.RenderMessage(fmt.Sprintf("need %dx%d", m.Width(), m.Height()+1), 0)
		r.screen.Show()
		return
	}

	vs, _ := store.Viewshed(viewer)

	m.Each(func(x, y int, tile world.Tile, revealed bool) {
		if !revealed {
			return
		}
		visible := vs != nil && vs.CanSee(world.Point{X: x, Y: y})
		glyph, style := r.palette.Look(tile, visible)
		r.screen.SetContent(x, y, glyph, style)
	})

	for _, id := range store.WithRenderable() {
		pos, _ := store.Position(id)
		if !entityShown(id, viewer, pos.Point(), vs) {
			continue
		}
		rend, _ := store.Renderable(id)
		r.screen.SetContent(pos.X, pos.Y, rend.Glyph, rend.Style().Bold(true))
	}

	r.RenderMessage(status, m.Height())
	r.screen.Show()
}

// RenderMessage displays a message on row y.
func (r *Renderer) RenderMessage(msg string, y int) {
	x := 0
	for _, ch := range msg {
		r.screen.SetContent(x, y, ch, r.palette.Status)
		x++
	}
}

// entityShown reports whether an entity at p is drawn for viewer. The viewer
// is always drawn; everything else only while inside its viewshed.
func entityShown(id, viewer entity.ID, p world.Point, vs *entity.Viewshed) bool {
	return id == viewer || (vs != nil && vs.CanSee(p))
}
