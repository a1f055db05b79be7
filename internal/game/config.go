package game

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/samdwyer/dungeonsight/internal/entity"
	"github.com/samdwyer/dungeonsight/internal/world"
)

// DefaultSightRange is the player's sight radius in tiles.
const DefaultSightRange = 8

// Config holds game configuration options.
type Config struct {
	Width  int
	Height int

	// Seed for random number generation. Used for reproducible dungeon generation.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	MaxRooms    int
	MinRoomSize int
	MaxRoomSize int

	SightRange int
}

// DefaultConfig returns the standard 80x50 dungeon with a random seed.
func DefaultConfig() Config {
	gen := world.DefaultGeneratorConfig()
	return Config{
		Width:       gen.Width,
		Height:      gen.Height,
		MaxRooms:    gen.MaxRooms,
		MinRoomSize: gen.MinRoomSize,
		MaxRoomSize: gen.MaxRoomSize,
		SightRange:  DefaultSightRange,
	}
}

// ConfigFromEnv starts from DefaultConfig and applies any DUNGEON_* variables
// that are set.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	ints := []struct {
		key string
		dst *int
	}{
		{"DUNGEON_WIDTH", &cfg.Width},
		{"DUNGEON_HEIGHT", &cfg.Height},
		{"DUNGEON_MAX_ROOMS", &cfg.MaxRooms},
		{"DUNGEON_SIGHT_RANGE", &cfg.SightRange},
	}
	for _, v := range ints {
		raw, ok := os.LookupEnv(v.key)
		if !ok || raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return cfg, fmt.Errorf("%w: %s=%q is not an integer", world.ErrInvalidConfig, v.key, raw)
		}
		*v.dst = n
	}

	if raw, ok := os.LookupEnv("DUNGEON_SEED"); ok && raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("%w: DUNGEON_SEED=%q is not an integer", world.ErrInvalidConfig, raw)
		}
		cfg.Seed = seed
	}

	return cfg, nil
}

// Generator returns the map generation part of the configuration.
func (c Config) Generator() world.GeneratorConfig {
	return world.GeneratorConfig{
		Width:       c.Width,
		Height:      c.Height,
		MaxRooms:    c.MaxRooms,
		MinRoomSize: c.MinRoomSize,
		MaxRoomSize: c.MaxRoomSize,
	}
}

// Validate fails fast on settings that cannot produce a playable dungeon.
func (c Config) Validate() error {
	if err := c.Generator().Validate(); err != nil {
		return err
	}
	if c.SightRange < 0 {
		return fmt.Errorf("%w: %w: %d", world.ErrInvalidConfig, entity.ErrInvalidRange, c.SightRange)
	}
	return nil
}

// ResolveSeed returns the configured seed, or a time-based one if unset.
func (c Config) ResolveSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
