package game

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeonsight/internal/entity"
	"github.com/samdwyer/dungeonsight/internal/logger"
	"github.com/samdwyer/dungeonsight/internal/systems"
	"github.com/samdwyer/dungeonsight/internal/telemetry"
	"github.com/samdwyer/dungeonsight/internal/world"
)

// Simulation is the dungeon, its entities and the step loop that advances
// them. Each step is strictly sequential: movement, then visibility.
type Simulation struct {
	Map      *world.GridMap
	Entities *entity.Store
	Player   entity.ID
	Seed     int64

	visibility *systems.Visibility
	steps      int
}

// StepResult summarizes one simulated step.
type StepResult struct {
	Moved    bool
	Visible  int
	Revealed int
}

// NewSimulation generates a dungeon from cfg and spawns the player in the
// first room.
func NewSimulation(ctx context.Context, cfg Config) (*Simulation, error) {
	seed := cfg.ResolveSeed()
	sim, err := NewSimulationWithRand(ctx, cfg, newRand(seed))
	if err != nil {
		return nil, err
	}
	sim.Seed = seed
	return sim, nil
}

// NewSimulationWithRand is NewSimulation with an explicit random source.
func NewSimulationWithRand(ctx context.Context, cfg Config, rng world.Rand) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.init")
	defer span.End()

	gen, err := world.NewGenerator(cfg.Generator(), rng)
	if err != nil {
		return nil, err
	}
	m, err := gen.Generate(ctx)
	if err != nil {
		return nil, fmt.Errorf("generating dungeon: %w", err)
	}

	spawn, err := m.Spawn()
	if err != nil {
		return nil, err
	}

	store := entity.NewStore()
	player := store.Create()
	if err := store.AddPosition(player, entity.Position{X: spawn.X, Y: spawn.Y}); err != nil {
		return nil, err
	}
	if err := store.AddRenderable(player, entity.PlayerRenderable); err != nil {
		return nil, err
	}
	if err := store.AddViewshed(player, cfg.SightRange); err != nil {
		return nil, err
	}
	if err := store.TagPlayer(player); err != nil {
		return nil, err
	}

	sim := &Simulation{
		Map:        m,
		Entities:   store,
		Player:     player,
		visibility: systems.NewVisibility(m, store),
	}

	span.SetAttributes(
		attribute.Int("dungeon.rooms", len(m.Rooms())),
		attribute.Int("player.start_x", spawn.X),
		attribute.Int("player.start_y", spawn.Y),
	)

	// Initial step so the spawn room is visible before any input.
	sim.Step(ctx, nil)

	return sim, nil
}

// Step advances the simulation by one turn. A nil dir is an idle tick.
func (s *Simulation) Step(ctx context.Context, dir *systems.Direction) StepResult {
	tracer := telemetry.Tracer("game")
	_, span := tracer.Start(ctx, "game.step")
	defer span.End()

	var result StepResult
	if dir != nil {
		result.Moved = systems.MovePlayers(s.Entities, s.Map, *dir) > 0
	}
	result.Visible = s.visibility.Run()
	result.Revealed = s.Map.RevealedCount()
	s.steps++

	span.SetAttributes(
		attribute.Int("step", s.steps),
		attribute.Bool("moved", result.Moved),
		attribute.Int("visible_tiles", result.Visible),
		attribute.Int("revealed_tiles", result.Revealed),
	)

	logger.Log.WithFields(logrus.Fields{
		"component": "simulation",
		"step":      s.steps,
		"moved":     result.Moved,
		"visible":   result.Visible,
		"revealed":  result.Revealed,
	}).Debug("Step complete.")

	return result
}

// Steps returns how many steps have run, including the initial one.
func (s *Simulation) Steps() int {
	return s.steps
}

// PlayerPosition returns the player's current position.
func (s *Simulation) PlayerPosition() entity.Position {
	pos, ok := s.Entities.Position(s.Player)
	if !ok {
		return entity.Position{}
	}
	return *pos
}
