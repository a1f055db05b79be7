package world

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeonsight/internal/logger"
	"github.com/samdwyer/dungeonsight/internal/telemetry"
)

const (
	// Default dungeon dimensions
	DefaultWidth  = 80
	DefaultHeight = 50

	// Room placement parameters
	DefaultMaxRooms    = 30
	DefaultMinRoomSize = 6
	DefaultMaxRoomSize = 10 // exclusive

	// MinRoomSizeFloor is the smallest room whose center lies on its own floor.
	MinRoomSizeFloor = 3
)

// ErrNoRooms is returned when generation accepts no rooms, leaving nowhere to
// spawn.
var ErrNoRooms = errors.New("dungeon generated without rooms")

// Rand is the random source used for generation. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// GeneratorConfig controls map size and room placement.
type GeneratorConfig struct {
	Width       int
	Height      int
	MaxRooms    int // Placement attempts, not a guaranteed room count
	MinRoomSize int // Inclusive
	MaxRoomSize int // Exclusive
}

// DefaultGeneratorConfig returns the 80x50, 30-attempt layout.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		MaxRooms:    DefaultMaxRooms,
		MinRoomSize: DefaultMinRoomSize,
		MaxRoomSize: DefaultMaxRoomSize,
	}
}

// Validate reports whether the configuration can place at least one room.
func (c GeneratorConfig) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: grid %dx%d has no area", ErrInvalidConfig, c.Width, c.Height)
	case c.MaxRooms < 1:
		return fmt.Errorf("%w: max rooms %d must be at least 1", ErrInvalidConfig, c.MaxRooms)
	case c.MinRoomSize < MinRoomSizeFloor:
		return fmt.Errorf("%w: min room size %d must be at least %d",
			ErrInvalidConfig, c.MinRoomSize, MinRoomSizeFloor)
	case c.MinRoomSize >= c.MaxRoomSize:
		return fmt.Errorf("%w: min room size %d must be below max room size %d",
			ErrInvalidConfig, c.MinRoomSize, c.MaxRoomSize)
	case c.Width <= c.MaxRoomSize || c.Height <= c.MaxRoomSize:
		return fmt.Errorf("%w: grid %dx%d cannot fit a room of size %d with its margin",
			ErrInvalidConfig, c.Width, c.Height, c.MaxRoomSize-1)
	}
	return nil
}

// Generator builds maps of rectangular rooms joined by L-shaped corridors.
type Generator struct {
	cfg     GeneratorConfig
	rng     Rand
	skipped int
}

// NewGenerator validates the configuration and returns a generator drawing
// from rng.
func NewGenerator(cfg GeneratorConfig, rng Rand) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidConfig)
	}
	return &Generator{cfg: cfg, rng: rng}, nil
}

// Generate creates a new map. Each accepted room after the first is joined
// to the previously accepted room, so every room is reachable from room 0.
func (g *Generator) Generate(ctx context.Context) (*GridMap, error) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "dungeon.generate")
	defer span.End()

	startTime := time.Now()
	g.skipped = 0

	m, err := NewGridMap(g.cfg.Width, g.cfg.Height)
	if err != nil {
		return nil, err
	}

	for i := 0; i < g.cfg.MaxRooms; i++ {
		room := g.randomRoom()

		ok := true
		for _, other := range m.rooms {
			if room.Intersects(other) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}

		g.carveRoom(m, room)

		if len(m.rooms) > 0 {
			prev := m.rooms[len(m.rooms)-1]
			g.carveCorridor(m, prev, room)
		}

		m.rooms = append(m.rooms, room)
	}

	span.SetAttributes(
		attribute.Int("dungeon.width", m.width),
		attribute.Int("dungeon.height", m.height),
		attribute.Int("dungeon.attempts", g.cfg.MaxRooms),
		attribute.Int("dungeon.room_count", len(m.rooms)),
		attribute.Int("dungeon.corridor_cells_skipped", g.skipped),
		attribute.Int64("dungeon.generation_ms", time.Since(startTime).Milliseconds()),
	)

	log := logger.Log.WithFields(logrus.Fields{
		"component": "generator",
		"width":     m.width,
		"height":    m.height,
		"rooms":     len(m.rooms),
	})
	if g.skipped > 0 {
		log.WithField("skipped", g.skipped).Warn("Corridor cells fell outside the grid and were skipped.")
	}

	if len(m.rooms) == 0 {
		return nil, fmt.Errorf("after %d attempts: %w", g.cfg.MaxRooms, ErrNoRooms)
	}

	log.Info("Dungeon generated.")
	return m, nil
}

// randomRoom draws a candidate whose floor stays off the outer border.
func (g *Generator) randomRoom() Rect {
	span := g.cfg.MaxRoomSize - g.cfg.MinRoomSize
	w := g.cfg.MinRoomSize + g.rng.Intn(span)
	h := g.cfg.MinRoomSize + g.rng.Intn(span)
	x := g.rng.Intn(g.cfg.Width - w - 1)
	y := g.rng.Intn(g.cfg.Height - h - 1)
	return NewRect(x, y, w, h)
}

// carveRoom sets the room's floor tiles.
func (g *Generator) carveRoom(m *GridMap, room Rect) {
	for y := room.Y1 + 1; y <= room.Y2; y++ {
		for x := room.X1 + 1; x <= room.X2; x++ {
			m.SetTile(x, y, TileFloor)
		}
	}
}

// carveCorridor joins the centers of two rooms. The bend is chosen at random
// for every connection.
func (g *Generator) carveCorridor(m *GridMap, prev, next Rect) {
	prevX, prevY := prev.Center()
	newX, newY := next.Center()

	if g.rng.Intn(2) == 1 {
		g.carveHorizontalTunnel(m, prevX, newX, prevY)
		g.carveVerticalTunnel(m, prevY, newY, newX)
	} else {
		g.carveVerticalTunnel(m, prevY, newY, prevX)
		g.carveHorizontalTunnel(m, prevX, newX, newY)
	}
}

// carveHorizontalTunnel carves a horizontal tunnel.
func (g *Generator) carveHorizontalTunnel(m *GridMap, x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		g.carveCorridorCell(m, x, y)
	}
}

// carveVerticalTunnel carves a vertical tunnel.
func (g *Generator) carveVerticalTunnel(m *GridMap, y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		g.carveCorridorCell(m, x, y)
	}
}

// carveCorridorCell skips indices that fall off the tile array instead of
// failing; the skip count is reported on the generation span.
func (g *Generator) carveCorridorCell(m *GridMap, x, y int) {
	idx := m.IndexOf(x, y)
	if idx < 0 || idx >= len(m.tiles) {
		g.skipped++
		return
	}
	m.tiles[idx] = TileFloor
}
