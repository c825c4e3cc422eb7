// Package worldgen generates island worlds from a seed. The pipeline runs
// six stages in a fixed order: noise bank setup, island shaping, height
// synthesis, droplet erosion, biome classification, and contour extraction.
// Every stage draws randomness from named sub-streams of the seed and writes
// parallel results into index-addressed slots, so a given seed and config
// produce the same world bit for bit at any worker count.
package worldgen

import (
	"context"
	"runtime"

	"islegen/internal/noise"
	"islegen/pkg/grid"
	"islegen/pkg/rng"
	"islegen/pkg/world"
)

// Generator runs the pipeline. The zero value uses the default spawn and
// biome policies and reports no progress.
type Generator struct {
	// Reporter receives stage progress events; nil disables reporting.
	Reporter Reporter
	// Spawn overrides droplet spawning; nil scatters uniformly over land.
	Spawn SpawnPolicy
	// Biomes overrides biome classification; nil applies the configured
	// thresholds.
	Biomes BiomePolicy
}

// Generate runs the full pipeline with default policies.
func Generate(ctx context.Context, cfg Config) (*world.World, error) {
	var g Generator
	return g.Generate(ctx, cfg)
}

// Generate builds a world from the configuration. It validates the config
// first and checks the context between stages; a started stage always runs
// to completion.
func (g *Generator) Generate(ctx context.Context, cfg Config) (*world.World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rep := g.Reporter
	if rep == nil {
		rep = NopReporter{}
	}

	worldID := world.DeriveID(cfg.Seed, cfg.Digest())
	root := rng.New(cfg.Seed)

	var (
		bank  *noise.Bank
		grass *grid.Float
		err   error
	)
	timed(rep, StageNoise, func() {
		bank = noise.NewBank(cfg.Seed, cfg.Noise)
		grass = grid.New[float64](cfg.Size, cfg.Size)
		err = bank.Fill(noise.ChannelGrass, grass, 1, cfg.effectiveWorkers())
	})
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var shape *shapeResult
	timed(rep, StageIsland, func() {
		shape, err = shapeIsland(cfg, bank, root.Sub("island", 0), worldID)
	})
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var height *grid.Float
	timed(rep, StageHeight, func() {
		height, err = synthesizeHeight(cfg, bank, shape)
	})
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rivers *riverResult
	timed(rep, StageRivers, func() {
		rivers = simulateRivers(cfg, root.Sub("rivers", 0), height, shape.mask, g.Spawn)
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		biomes *grid.Grid[world.Biome]
		shore  *grid.Float
	)
	timed(rep, StageBiomes, func() {
		biomes, shore, err = classifyBiomes(cfg, bank, shape.mask, rivers.height, shape.distance, rivers.intensity, g.Biomes)
	})
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var contours world.ContourSet
	timed(rep, StageTopography, func() {
		contours = extractContours(cfg, rivers.height)
	})

	return &world.World{
		ID:       worldID,
		Seed:     cfg.Seed,
		W:        cfg.Size,
		H:        cfg.Size,
		Height:   rivers.height,
		Mask:     shape.mask,
		Distance: shape.distance,
		Biomes:   biomes,
		Grass:    grass,
		Shore:    shore,
		Islands:  shape.islands,
		Rivers:   rivers.rivers,
		Contours: contours,
	}, nil
}

// defaultWorkers bounds pipeline pools when the config leaves Workers unset.
func defaultWorkers() int {
	return runtime.NumCPU()
}
