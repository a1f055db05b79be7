// Package main is the entry point for dungeonsight.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/samdwyer/dungeonsight/internal/game"
	"github.com/samdwyer/dungeonsight/internal/logger"
	"github.com/samdwyer/dungeonsight/internal/telemetry"
	"github.com/samdwyer/dungeonsight/internal/ui"
)

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := game.ConfigFromEnv()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "dungeon seed (0 = random)")
	flag.IntVar(&cfg.Width, "width", cfg.Width, "map width")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "map height")
	flag.IntVar(&cfg.SightRange, "sight", cfg.SightRange, "player sight range")
	dump := flag.Bool("dump", false, "print the revealed map after one step and exit")
	dumpAll := flag.Bool("dump-all", false, "like -dump but print the whole map")
	flag.Parse()

	dumping := *dump || *dumpAll
	cleanup := setupLogger(dumping)
	defer cleanup()

	ctx := context.Background()

	if telemetry.Enabled() {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			logger.Log.WithError(err).Warn("Telemetry setup failed, running without tracing.")
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					logger.Log.WithError(err).Error("Telemetry shutdown failed.")
				}
			}()
		}
	} else {
		telemetry.Disable()
	}

	if dumping {
		if err := runDump(ctx, cfg, *dumpAll); err != nil {
			log.Fatalf("Dump failed: %v", err)
		}
		return
	}

	g, err := game.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize game: %v", err)
	}

	if err := g.Run(ctx); err != nil {
		log.Fatalf("Game error: %v", err)
	}
}

// setupLogger sends logs to LOG_FILE when set. Otherwise the interactive
// game discards them, since the terminal belongs to the screen, and dump
// mode writes them to stderr.
func setupLogger(dumping bool) func() {
	if path := os.Getenv("LOG_FILE"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("Cannot open log file: %v", err)
		}
		logger.Init(f)
		return func() { closeLog(f, os.Stderr) }
	}
	if dumping {
		logger.Init(os.Stderr)
	} else {
		logger.Init(io.Discard)
	}
	return func() {}
}

// closeLog closes the log destination and reports a failure on errOut.
func closeLog(c io.Closer, errOut io.Writer) {
	if err := c.Close(); err != nil {
		fmt.Fprintf(errOut, "Cannot close log file: %v\n", err)
	}
}

func runDump(ctx context.Context, cfg game.Config, all bool) error {
	sim, err := game.NewSimulation(ctx, cfg)
	if err != nil {
		return err
	}
	logger.Log.WithField("seed", sim.Seed).Info("Dumping map.")
	return ui.Dump(os.Stdout, sim.Map, sim.Entities, sim.Player, ui.DumpOptions{
		RevealedOnly: !all,
		Color:        term.IsTerminal(int(os.Stdout.Fd())),
	})
}
