package world

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a map or generator is configured with
// values that cannot produce a usable dungeon.
var ErrInvalidConfig = errors.New("invalid dungeon configuration")

// GridMap is a fixed-size row-major grid of tiles. Tiles and rooms are written
// only while the map is generated; afterwards the revealed flags are the only
// state that changes.
type GridMap struct {
	width    int
	height   int
	tiles    []Tile
	revealed []bool
	rooms    []Rect
}

// NewGridMap creates a map filled with walls and nothing revealed.
func NewGridMap(width, height int) (*GridMap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: grid %dx%d has no area", ErrInvalidConfig, width, height)
	}

	tiles := make([]Tile, width*height)
	for i := range tiles {
		tiles[i] = TileWall
	}

	return &GridMap{
		width:    width,
		height:   height,
		tiles:    tiles,
		revealed: make([]bool, width*height),
		rooms:    make([]Rect, 0),
	}, nil
}

// Width returns the number of columns.
func (m *GridMap) Width() int { return m.width }

// Height returns the number of rows.
func (m *GridMap) Height() int { return m.height }

// Dimensions returns width and height.
func (m *GridMap) Dimensions() (int, int) { return m.width, m.height }

// IndexOf converts a coordinate to a tile index. It does not bounds-check;
// callers validate with InBounds first.
func (m *GridMap) IndexOf(x, y int) int {
	return y*m.width + x
}

// InBounds returns true if the coordinate lies on the grid.
func (m *GridMap) InBounds(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

// IsOpaque returns true if the tile at idx blocks line of sight.
func (m *GridMap) IsOpaque(idx int) bool {
	return m.tiles[idx].IsOpaque()
}

// TileAt returns the tile at idx.
func (m *GridMap) TileAt(idx int) Tile {
	return m.tiles[idx]
}

// Tile returns the tile at the given position. Off-grid positions read as wall.
func (m *GridMap) Tile(x, y int) Tile {
	if !m.InBounds(x, y) {
		return TileWall
	}
	return m.tiles[m.IndexOf(x, y)]
}

// SetTile changes a single cell. Only the generator calls this once the map
// is in play.
func (m *GridMap) SetTile(x, y int, t Tile) {
	m.tiles[m.IndexOf(x, y)] = t
}

// Reveal marks a position as seen. Revealed tiles stay revealed.
func (m *GridMap) Reveal(x, y int) {
	if !m.InBounds(x, y) {
		return
	}
	m.revealed[m.IndexOf(x, y)] = true
}

// IsRevealed returns true if the position has been visible at least once.
func (m *GridMap) IsRevealed(x, y int) bool {
	if !m.InBounds(x, y) {
		return false
	}
	return m.revealed[m.IndexOf(x, y)]
}

// RevealedCount returns the number of revealed tiles.
func (m *GridMap) RevealedCount() int {
	n := 0
	for _, r := range m.revealed {
		if r {
			n++
		}
	}
	return n
}

// Each calls fn for every cell in row-major order.
func (m *GridMap) Each(fn func(x, y int, t Tile, revealed bool)) {
	for idx, t := range m.tiles {
		fn(idx%m.width, idx/m.width, t, m.revealed[idx])
	}
}

// Rooms returns the generated rooms in acceptance order.
func (m *GridMap) Rooms() []Rect {
	rooms := make([]Rect, len(m.rooms))
	copy(rooms, m.rooms)
	return rooms
}

// RoomIndexAt returns the index of the room whose floor contains the position,
// or -1 if not in a room.
func (m *GridMap) RoomIndexAt(x, y int) int {
	for i, room := range m.rooms {
		if room.Contains(x, y) {
			return i
		}
	}
	return -1
}

// Spawn returns the center of the first room.
func (m *GridMap) Spawn() (Point, error) {
	if len(m.rooms) == 0 {
		return Point{}, ErrNoRooms
	}
	x, y := m.rooms[0].Center()
	return Point{X: x, Y: y}, nil
}
