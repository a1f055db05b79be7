// Package systems holds the per-step logic that runs over entities.
package systems

import (
	"github.com/sirupsen/logrus"

	"github.com/samdwyer/dungeonsight/internal/entity"
	"github.com/samdwyer/dungeonsight/internal/logger"
	"github.com/samdwyer/dungeonsight/internal/world"
)

// Direction is one of the four cardinal unit steps.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Delta returns the unit displacement for the direction. Unknown values
// return (0, 0).
func (d Direction) Delta() (int, int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// String returns a human-readable direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// TryMove steps pos one tile in dir if the target is floor. Bumping into a
// wall or the grid edge leaves pos unchanged. Returns true if pos moved.
func TryMove(m *world.GridMap, pos *entity.Position, dir Direction) bool {
	dx, dy := dir.Delta()
	if dx == 0 && dy == 0 {
		return false
	}

	x, y := pos.X+dx, pos.Y+dy
	if !m.InBounds(x, y) {
		return false
	}
	if !m.TileAt(m.IndexOf(x, y)).IsPassable() {
		return false
	}

	pos.X = clamp(x, 0, m.Width()-1)
	pos.Y = clamp(y, 0, m.Height()-1)
	return true
}

// MovePlayers applies dir to every player-controlled entity and returns how
// many of them moved.
func MovePlayers(store *entity.Store, m *world.GridMap, dir Direction) int {
	moved := 0
	for _, id := range store.Players() {
		pos, _ := store.Position(id)
		if TryMove(m, pos, dir) {
			moved++
			continue
		}
		logger.Log.WithFields(logrus.Fields{
			"component": "movement",
			"entity":    id,
			"direction": dir.String(),
		}).Debug("Move blocked.")
	}
	return moved
}

func clamp(v, lo, hi int) int {
	return min(hi, max(lo, v))
}
