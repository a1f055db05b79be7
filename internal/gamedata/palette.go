package gamedata

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeonsight/internal/world"
)

// ColorDef is a hex foreground/background pair.
type ColorDef struct {
	Fg string `json:"fg"`
	Bg string `json:"bg"` // Optional; empty keeps the terminal background
}

// TileDef describes how one tile kind is drawn.
type TileDef struct {
	Tile       string   `json:"tile"`  // "wall" or "floor"
	Glyph      string   `json:"glyph"` // Single character
	Visible    ColorDef `json:"visible"`
	Remembered ColorDef `json:"remembered"`
}

// PaletteFile represents the structure of palette.json.
type PaletteFile struct {
	Tiles  []TileDef `json:"tiles"`
	Status ColorDef  `json:"status"`
}

// TileLook is a resolved glyph and pair of styles for a tile kind.
type TileLook struct {
	Glyph      rune
	Visible    tcell.Style
	Remembered tcell.Style
}

// Palette maps tile kinds to how they are drawn.
type Palette struct {
	tiles  map[world.Tile]TileLook
	Status tcell.Style
}

// LoadPalette loads the palette from the embedded palette.json.
func LoadPalette() (*Palette, error) {
	file, err := Load[PaletteFile]("palette.json")
	if err != nil {
		return nil, err
	}
	return NewPalette(file)
}

// MustLoadPalette loads the palette, panicking on error.
func MustLoadPalette() *Palette {
	p, err := LoadPalette()
	if err != nil {
		panic(err)
	}
	return p
}

// NewPalette resolves a palette definition. Both wall and floor must be
// defined.
func NewPalette(file PaletteFile) (*Palette, error) {
	p := &Palette{tiles: make(map[world.Tile]TileLook)}

	for _, def := range file.Tiles {
		tile, err := tileKind(def.Tile)
		if err != nil {
			return nil, err
		}
		look := TileLook{Glyph: tile.Rune()}
		if len(def.Glyph) > 0 {
			look.Glyph = []rune(def.Glyph)[0]
		}
		if look.Visible, err = parseStyle(def.Visible.Fg, def.Visible.Bg); err != nil {
			return nil, fmt.Errorf("tile %s visible: %w", def.Tile, err)
		}
		if look.Remembered, err = parseStyle(def.Remembered.Fg, def.Remembered.Bg); err != nil {
			return nil, fmt.Errorf("tile %s remembered: %w", def.Tile, err)
		}
		p.tiles[tile] = look
	}

	for _, tile := range []world.Tile{world.TileWall, world.TileFloor} {
		if _, ok := p.tiles[tile]; !ok {
			return nil, fmt.Errorf("palette has no entry for %s", tile)
		}
	}

	status, err := parseStyle(file.Status.Fg, file.Status.Bg)
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	p.Status = status

	return p, nil
}

// Look returns the glyph and style for a tile.
func (p *Palette) Look(tile world.Tile, visible bool) (rune, tcell.Style) {
	look, ok := p.tiles[tile]
	if !ok {
		return tile.Rune(), tcell.StyleDefault
	}
	if visible {
		return look.Glyph, look.Visible
	}
	return look.Glyph, look.Remembered
}

func tileKind(name string) (world.Tile, error) {
	switch name {
	case "wall":
		return world.TileWall, nil
	case "floor":
		return world.TileFloor, nil
	default:
		return 0, fmt.Errorf("unknown tile kind %q", name)
	}
}
