//go:build ebiten

// Command worldview is the interactive island world viewer.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"islegen/internal/app"
	"islegen/internal/worldgen"
)

func main() {
	var (
		configPath = flag.String("config", "", "JSON config file, merged over defaults")
		seed       = flag.Int64("seed", 0, "world seed")
		size       = flag.Int("size", 0, "map edge length in cells")
		scale      = flag.Int("scale", 2, "screen pixels per map cell")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(log)

	passed := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { passed[f.Name] = true })

	cfg := worldgen.DefaultConfig()
	if *configPath != "" {
		loaded, err := worldgen.Load(*configPath)
		if err != nil {
			log.Error("load config", "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if passed["seed"] {
		cfg.Seed = *seed
	}
	if passed["size"] {
		cfg.Size = *size
	}

	game, err := app.New(cfg, *scale, log)
	if err != nil {
		log.Error("generate world", "error", err)
		os.Exit(1)
	}

	w, h := game.Layout(0, 0)
	ebiten.SetWindowTitle(fmt.Sprintf("islegen — seed %d", cfg.Seed))
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Error("viewer stopped", "error", err)
		os.Exit(1)
	}
}
