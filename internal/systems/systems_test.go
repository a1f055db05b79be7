package systems

import (
	"context"
	"math/rand"
	"testing"

	"github.com/samdwyer/dungeonsight/internal/entity"
	"github.com/samdwyer/dungeonsight/internal/world"
)

// corridorMap builds a 10x10 wall map with a floor strip from (2,5) to (6,5).
func corridorMap(t *testing.T) *world.GridMap {
	t.Helper()
	m, err := world.NewGridMap(10, 10)
	if err != nil {
		t.Fatalf("NewGridMap: %v", err)
	}
	for x := 2; x <= 6; x++ {
		m.SetTile(x, 5, world.TileFloor)
	}
	return m
}

func TestDirectionDelta(t *testing.T) {
	tests := []struct {
		dir    Direction
		dx, dy int
	}{
		{DirUp, 0, -1},
		{DirDown, 0, 1},
		{DirLeft, -1, 0},
		{DirRight, 1, 0},
		{Direction(99), 0, 0},
	}
	for _, tt := range tests {
		dx, dy := tt.dir.Delta()
		if dx != tt.dx || dy != tt.dy {
			t.Errorf("%v.Delta() = (%d,%d), want (%d,%d)", tt.dir, dx, dy, tt.dx, tt.dy)
		}
	}
}

func TestTryMove(t *testing.T) {
	m := corridorMap(t)

	tests := []struct {
		name  string
		start entity.Position
		dir   Direction
		want  entity.Position
		moved bool
	}{
		{"floor to the right", entity.Position{X: 3, Y: 5}, DirRight, entity.Position{X: 4, Y: 5}, true},
		{"floor to the left", entity.Position{X: 3, Y: 5}, DirLeft, entity.Position{X: 2, Y: 5}, true},
		{"wall above", entity.Position{X: 3, Y: 5}, DirUp, entity.Position{X: 3, Y: 5}, false},
		{"wall below", entity.Position{X: 3, Y: 5}, DirDown, entity.Position{X: 3, Y: 5}, false},
		{"wall at corridor end", entity.Position{X: 6, Y: 5}, DirRight, entity.Position{X: 6, Y: 5}, false},
		{"unknown direction", entity.Position{X: 3, Y: 5}, Direction(-1), entity.Position{X: 3, Y: 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := tt.start
			moved := TryMove(m, &pos, tt.dir)
			if moved != tt.moved {
				t.Errorf("TryMove() = %v, want %v", moved, tt.moved)
			}
			if pos != tt.want {
				t.Errorf("position = %+v, want %+v", pos, tt.want)
			}
		})
	}
}

func TestTryMoveStopsAtGridEdge(t *testing.T) {
	m, _ := world.NewGridMap(3, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			m.SetTile(x, y, world.TileFloor)
		}
	}

	pos := entity.Position{X: 0, Y: 0}
	if TryMove(m, &pos, DirLeft) || TryMove(m, &pos, DirUp) {
		t.Error("moving off the grid should be a no-op")
	}
	if pos != (entity.Position{X: 0, Y: 0}) {
		t.Errorf("position = %+v, want (0,0)", pos)
	}

	pos = entity.Position{X: 2, Y: 2}
	if TryMove(m, &pos, DirRight) || TryMove(m, &pos, DirDown) {
		t.Error("moving off the grid should be a no-op")
	}
}

func TestMovePlayersOnlyMovesPlayers(t *testing.T) {
	m := corridorMap(t)
	store := entity.NewStore()

	player := store.Create()
	_ = store.AddPosition(player, entity.Position{X: 3, Y: 5})
	_ = store.TagPlayer(player)

	bystander := store.Create()
	_ = store.AddPosition(bystander, entity.Position{X: 4, Y: 5})

	if moved := MovePlayers(store, m, DirLeft); moved != 1 {
		t.Errorf("MovePlayers() = %d, want 1", moved)
	}

	if pos, _ := store.Position(player); pos.X != 2 {
		t.Errorf("player X = %d, want 2", pos.X)
	}
	if pos, _ := store.Position(bystander); pos.X != 4 {
		t.Errorf("bystander X = %d, want 4", pos.X)
	}

	if moved := MovePlayers(store, m, DirUp); moved != 0 {
		t.Errorf("MovePlayers() into wall = %d, want 0", moved)
	}
}

func TestVisibilityRevealsAndReplaces(t *testing.T) {
	m := corridorMap(t)
	store := entity.NewStore()
	id := store.Create()
	_ = store.AddPosition(id, entity.Position{X: 2, Y: 5})
	_ = store.AddViewshed(id, 2)

	vis := NewVisibility(m, store)
	vis.Run()

	vs, _ := store.Viewshed(id)
	if !vs.CanSee(world.Point{X: 2, Y: 5}) {
		t.Error("origin should be visible")
	}
	if !vs.CanSee(world.Point{X: 4, Y: 5}) {
		t.Error("(4,5) is 2 tiles down the corridor and should be visible")
	}
	if vs.CanSee(world.Point{X: 5, Y: 5}) {
		t.Error("(5,5) is out of range")
	}
	if !m.IsRevealed(4, 5) {
		t.Error("visible tile should be revealed")
	}

	pos, _ := store.Position(id)
	pos.X = 6
	vis.Run()

	if vs, _ = store.Viewshed(id); vs.CanSee(world.Point{X: 2, Y: 5}) {
		t.Error("viewshed should be rebuilt, not accumulated")
	}
	if !m.IsRevealed(2, 5) {
		t.Error("revealed tiles must stay revealed after moving away")
	}
	if !m.IsRevealed(6, 5) {
		t.Error("new origin should be revealed")
	}
}

func TestVisibilityRangeZeroOnWalledCell(t *testing.T) {
	m, _ := world.NewGridMap(10, 10)
	m.SetTile(5, 5, world.TileFloor)

	store := entity.NewStore()
	id := store.Create()
	_ = store.AddPosition(id, entity.Position{X: 5, Y: 5})
	_ = store.AddViewshed(id, 0)

	if n := NewVisibility(m, store).RunFor(id); n != 1 {
		t.Errorf("RunFor() = %d visible tiles, want 1", n)
	}
	if m.RevealedCount() != 1 || !m.IsRevealed(5, 5) {
		t.Errorf("Expected only (5,5) revealed, got %d tiles", m.RevealedCount())
	}
}

func TestVisibilitySkipsIncompleteEntities(t *testing.T) {
	m := corridorMap(t)
	store := entity.NewStore()
	blind := store.Create()
	_ = store.AddPosition(blind, entity.Position{X: 3, Y: 5})

	vis := NewVisibility(m, store)
	if n := vis.RunFor(blind); n != 0 {
		t.Errorf("RunFor() without viewshed = %d, want 0", n)
	}
	if n := vis.Run(); n != 0 {
		t.Errorf("Run() with no viewsheds = %d, want 0", n)
	}
	if m.RevealedCount() != 0 {
		t.Error("nothing should be revealed")
	}
}

func TestRevealedSetNeverShrinksWhileWandering(t *testing.T) {
	gen, err := world.NewGenerator(world.DefaultGeneratorConfig(), rand.New(rand.NewSource(99)))
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	m, err := gen.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	spawn, _ := m.Spawn()

	store := entity.NewStore()
	id := store.Create()
	_ = store.AddPosition(id, entity.Position{X: spawn.X, Y: spawn.Y})
	_ = store.AddViewshed(id, 8)
	_ = store.TagPlayer(id)

	vis := NewVisibility(m, store)
	vis.Run()
	if !m.IsRevealed(spawn.X, spawn.Y) {
		t.Fatal("spawn tile should be revealed after the first step")
	}

	walk := rand.New(rand.NewSource(7))
	prev := map[world.Point]bool{}
	for step := 0; step < 200; step++ {
		MovePlayers(store, m, Direction(walk.Intn(4)))
		vis.Run()

		for p := range prev {
			if !m.IsRevealed(p.X, p.Y) {
				t.Fatalf("step %d: %+v became unrevealed", step, p)
			}
		}
		m.Each(func(x, y int, tile world.Tile, revealed bool) {
			if revealed {
				prev[world.Point{X: x, Y: y}] = true
			}
		})

		pos, _ := store.Position(id)
		if m.Tile(pos.X, pos.Y) != world.TileFloor {
			t.Fatalf("step %d: player left the floor at %+v", step, pos)
		}
	}
}
