package worldgen

import (
	"sync"

	"islegen/internal/noise"
	"islegen/pkg/grid"
	"islegen/pkg/world"
)

// BiomeSample is everything a policy may look at when classifying one cell.
type BiomeSample struct {
	// Height is the eroded elevation, negative below sea level.
	Height float64
	// Distance is the signed distance to the coastline in cells.
	Distance float64
	// Noise is the biome channel value in [0, 1].
	Noise float64
	// River is the rasterized river intensity in [0, 1].
	River float64
	// Shore is the blurred wetness map in [0, 1].
	Shore float64
}

// BiomePolicy maps a cell sample to a biome.
type BiomePolicy interface {
	Classify(s BiomeSample) world.Biome
}

// DefaultBiomePolicy is the standard classification. Ocean is always water;
// on land the first matching rule wins, in order: coast strip, alpine,
// wetland along rivers, noise-selected forest, grassland.
type DefaultBiomePolicy struct {
	ForestThreshold float64
	CoastWidth      float64
	AlpineHeight    float64
	WetlandRiver    float64
}

// wetlandRiverIntensity sits just below the falloff rasterizeRiver writes at
// the river margin, so the wetland band covers the full margin width.
const wetlandRiverIntensity = 0.3

func (p DefaultBiomePolicy) Classify(s BiomeSample) world.Biome {
	if s.Height < 0 {
		return world.BiomeWater
	}
	if s.Distance <= p.CoastWidth {
		return world.BiomeCoast
	}
	if s.Height >= p.AlpineHeight {
		return world.BiomeAlpine
	}
	if s.River >= p.WetlandRiver {
		return world.BiomeWetland
	}
	if s.Noise > p.ForestThreshold {
		return world.BiomeForest
	}
	return world.BiomeGrassland
}

// classifyBiomes fills the biome grid and the shore wetness map. Ocean
// cells are water no matter what the policy says; only land cells are
// classified. A nil policy uses DefaultBiomePolicy with the configured
// thresholds.
func classifyBiomes(cfg Config, bank *noise.Bank, mask *grid.Bool, height, distance, river *grid.Float, policy BiomePolicy) (*grid.Grid[world.Biome], *grid.Float, error) {
	if policy == nil {
		policy = DefaultBiomePolicy{
			ForestThreshold: cfg.Biomes.ForestThreshold,
			CoastWidth:      cfg.Biomes.CoastWidth,
			AlpineHeight:    cfg.Biomes.AlpineHeight,
			WetlandRiver:    wetlandRiverIntensity,
		}
	}

	field, err := bank.Channel(noise.ChannelBiomes)
	if err != nil {
		return nil, nil, err
	}
	workers := cfg.effectiveWorkers()

	noiseGrid := grid.New[float64](height.W, height.H)
	noise.Fill(field, noiseGrid, 1, workers)

	shore := buildShore(distance, river)

	biomes := grid.New[world.Biome](height.W, height.H)
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	for y := 0; y < biomes.H; y++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(y int) {
			defer wg.Done()
			for x := 0; x < biomes.W; x++ {
				if !mask.At(x, y) {
					biomes.Set(x, y, world.BiomeWater)
					continue
				}
				biomes.Set(x, y, policy.Classify(BiomeSample{
					Height:   height.At(x, y),
					Distance: distance.At(x, y),
					Noise:    noiseGrid.At(x, y),
					River:    river.At(x, y),
					Shore:    shore.At(x, y),
				}))
			}
			<-sem
		}(y)
	}
	wg.Wait()

	return biomes, shore, nil
}

// buildShore derives the wetness map from the coast distance and the river
// intensity: open water and riverbeds start at full strength, the coastline
// fades over three cells, then two blur rounds with a sharpening step in
// between spread the band inland.
func buildShore(distance, river *grid.Float) *grid.Float {
	shore := grid.FromFunc(distance.W, distance.H, func(x, y int) float64 {
		d := distance.At(x, y) / 3
		if d < 0 {
			d = 0
		} else if d > 1 {
			d = 1
		}
		v := 1 - d
		if r := river.At(x, y); r > v {
			v = r
		}
		return v
	})

	for i := 0; i < 2; i++ {
		grid.BoxBlur(shore, 3)
	}
	cells := shore.Cells()
	for i, v := range cells {
		v /= 0.1
		if v > 1 {
			v = 1
		}
		cells[i] = v
	}
	for i := 0; i < 2; i++ {
		grid.BoxBlur(shore, 2)
	}
	return shore
}
