// Package game provides the main game loop and state management.
package game

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeonsight/internal/systems"
	"github.com/samdwyer/dungeonsight/internal/ui"
)

// Game couples a simulation to a terminal screen.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	sim      *Simulation
	running  bool
}

// New generates the dungeon and opens the terminal screen.
func New(ctx context.Context, cfg Config) (*Game, error) {
	sim, err := NewSimulation(ctx, cfg)
	if err != nil {
		return nil, err
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	return &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		sim:      sim,
		running:  true,
	}, nil
}

// Run executes the main game loop until the player quits.
func (g *Game) Run(ctx context.Context) error {
	defer g.screen.Close()

	for g.running {
		g.render()
		g.handleInput(ctx)
	}
	return nil
}

func (g *Game) render() {
	pos := g.sim.PlayerPosition()
	where := "corridor"
	if room := g.sim.Map.RoomIndexAt(pos.X, pos.Y); room >= 0 {
		where = fmt.Sprintf("room %d", room)
	}
	status := fmt.Sprintf("seed %d  pos %d,%d  %s  revealed %d  step %d",
		g.sim.Seed, pos.X, pos.Y, where, g.sim.Map.RevealedCount(), g.sim.Steps())
	g.renderer.Render(g.sim.Map, g.sim.Entities, g.sim.Player, status)
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKeyEvent processes keyboard input. Keys that are not bound to a move
// still advance the simulation by an idle step.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	if quitKey(ev) {
		g.running = false
		return
	}
	dir, ok := keyDirection(ev)
	if !ok {
		g.sim.Step(ctx, nil)
		return
	}
	g.sim.Step(ctx, &dir)
}

func quitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return true
		}
	}
	return false
}

// keyDirection maps arrow keys to movement.
func keyDirection(ev *tcell.EventKey) (systems.Direction, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return systems.DirUp, true
	case tcell.KeyDown:
		return systems.DirDown, true
	case tcell.KeyLeft:
		return systems.DirLeft, true
	case tcell.KeyRight:
		return systems.DirRight, true
	}
	return 0, false
}
