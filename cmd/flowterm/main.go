// Terminal front-end for the particle flow animation.
//
// Usage: go run ./cmd/flowterm [-image photo.png]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/particleflow/config"
	"github.com/pthm-cable/particleflow/game"
	"github.com/pthm-cable/particleflow/term"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	imagePath := flag.String("image", "", "Source image (empty = procedural pattern)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	logFile := flag.String("log", "", "Write JSON logs to this file (default: discard)")
	fit := flag.Bool("fit", true, "Size the viewport to the terminal")

	flag.Parse()

	// The screen owns stdout, so logs go to a file or nowhere
	logOut, err := openLog(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening log: %v\n", err)
		os.Exit(1)
	}
	defer logOut.Close()
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		slog.Error("failed to create screen", "error", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		slog.Error("failed to init screen", "error", err)
		os.Exit(1)
	}
	defer screen.Fini()

	if *fit {
		cfg.Screen.Width, cfg.Screen.Height = term.ViewportFor(screen.Size())
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	g, err := game.NewGame(cfg, game.Options{Seed: rngSeed, ImagePath: *imagePath})
	if err != nil {
		screen.Fini()
		slog.Error("failed to create simulation", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	p := term.New(screen, cfg, g)
	p.FitViewport = *fit
	p.Start()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := g.Run(ctx, p); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("simulation stopped", "error", err, "tick", g.Tick())
	}
}

func openLog(path string) (*os.File, error) {
	if path == "" {
		return os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
