package ui

import (
	"bufio"
	"io"

	"github.com/gookit/color"

	"github.com/samdwyer/dungeonsight/internal/entity"
	"github.com/samdwyer/dungeonsight/internal/world"
)

// DumpOptions controls Dump output.
type DumpOptions struct {
	// RevealedOnly hides tiles the viewer has never seen.
	RevealedOnly bool
	// Color wraps glyphs in ANSI color codes.
	Color bool
}

var (
	dumpWall    = color.Style{color.FgYellow}
	dumpFloor   = color.Style{color.FgGreen}
	dumpVisible = color.Style{color.OpBold}
	dumpPlayer  = color.Style{color.FgYellow, color.BgBlack, color.OpBold}
)

// Dump writes the map as text, one row per line, with renderable entities
// drawn over their tiles. When RevealedOnly is set, unrevealed tiles are
// written as spaces and entities follow the same visibility rule as Render.
func Dump(w io.Writer, m *world.GridMap, store *entity.Store, viewer entity.ID, opts DumpOptions) error {
	vs, _ := store.Viewshed(viewer)
	glyphs := make(map[world.Point]rune)
	for _, id := range store.WithRenderable() {
		pos, _ := store.Position(id)
		if opts.RevealedOnly && !entityShown(id, viewer, pos.Point(), vs) {
			continue
		}
		rend, _ := store.Renderable(id)
		glyphs[pos.Point()] = rend.Glyph
	}

	bw := bufio.NewWriter(w)
	var err error
	write := func(s string) {
		if err == nil {
			_, err = bw.WriteString(s)
		}
	}

	m.Each(func(x, y int, tile world.Tile, revealed bool) {
		p := world.Point{X: x, Y: y}
		switch {
		case glyphs[p] != 0:
			write(paint(opts.Color, dumpPlayer, string(glyphs[p])))
		case opts.RevealedOnly && !revealed:
			write(" ")
		default:
			style := dumpFloor
			if tile == world.TileWall {
				style = dumpWall
			}
			if vs != nil && vs.CanSee(p) {
				style = append(color.Style{}, style...)
				style = append(style, dumpVisible...)
			}
			write(paint(opts.Color, style, string(tile.Rune())))
		}
		if x == m.Width()-1 {
			write("\n")
		}
	})

	if err != nil {
		return err
	}
	return bw.Flush()
}

func paint(enabled bool, style color.Style, s string) string {
	if !enabled {
		return s
	}
	return style.Sprint(s)
}
