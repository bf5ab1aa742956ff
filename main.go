package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pthm-cable/particleflow/config"
	"github.com/pthm-cable/particleflow/game"
	"github.com/pthm-cable/particleflow/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	imagePath := flag.String("image", "", "Source image (empty = procedural pattern)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int64("max-ticks", 0, "Stop after N ticks (0 = unlimited)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:      rngSeed,
		ImagePath: *imagePath,
		LogStats:  *logStats,
		OutputDir: *outputDir,
		MaxTicks:  *maxTicks,
	}

	g, err := game.NewGame(cfg, opts)
	if err != nil {
		slog.Error("failed to create simulation", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *headless {
		err = g.RunHeadless(ctx)
	} else {
		w, h := g.Size()
		window := ui.NewWindow(cfg, g, w, h)
		defer window.Close()
		err = g.Run(ctx, window)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("simulation stopped", "error", err, "tick", g.Tick())
		return
	}
	slog.Info("simulation finished", "tick", g.Tick())
}
