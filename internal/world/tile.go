// Package world provides the dungeon grid, room geometry and map generation.
package world

// Tile represents a single map tile.
type Tile rune

const (
	// TileWall blocks both movement and line of sight.
	TileWall Tile = '#'
	// TileFloor blocks neither movement nor line of sight.
	TileFloor Tile = '.'
)

// IsPassable returns true if the tile can be walked on.
func (t Tile) IsPassable() bool {
	return t == TileFloor
}

// IsOpaque returns true if the tile blocks line of sight.
func (t Tile) IsOpaque() bool {
	return t == TileWall
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return rune(t)
}

// String returns a human-readable tile name.
func (t Tile) String() string {
	switch t {
	case TileWall:
		return "wall"
	case TileFloor:
		return "floor"
	default:
		return "unknown"
	}
}

// Point is an integer grid coordinate.
type Point struct {
	X, Y int
}
