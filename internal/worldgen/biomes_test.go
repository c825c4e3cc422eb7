package worldgen

import (
	"testing"

	"islegen/internal/noise"
	"islegen/pkg/grid"
	"islegen/pkg/world"
)

// constantPolicy classifies every sample as the same biome.
type constantPolicy world.Biome

func (p constantPolicy) Classify(BiomeSample) world.Biome {
	return world.Biome(p)
}

func TestDefaultBiomePolicy(t *testing.T) {
	p := DefaultBiomePolicy{
		ForestThreshold: 0.5,
		CoastWidth:      4,
		AlpineHeight:    50,
		WetlandRiver:    0.3,
	}

	cases := []struct {
		name string
		s    BiomeSample
		want world.Biome
	}{
		{"ocean", BiomeSample{Height: -5, Distance: -10}, world.BiomeWater},
		{"beach", BiomeSample{Height: 2, Distance: 3}, world.BiomeCoast},
		{"peak", BiomeSample{Height: 60, Distance: 30}, world.BiomeAlpine},
		{"riverbank", BiomeSample{Height: 20, Distance: 30, River: 0.5}, world.BiomeWetland},
		{"woods", BiomeSample{Height: 20, Distance: 30, Noise: 0.8}, world.BiomeForest},
		{"open land", BiomeSample{Height: 20, Distance: 30, Noise: 0.2}, world.BiomeGrassland},
		{"coastal summit", BiomeSample{Height: 60, Distance: 2}, world.BiomeCoast},
		{"alpine river", BiomeSample{Height: 60, Distance: 30, River: 0.9}, world.BiomeAlpine},
		{"flooded cell", BiomeSample{Height: -0.5, Distance: 12, Noise: 0.9}, world.BiomeWater},
	}
	for _, tc := range cases {
		if got := p.Classify(tc.s); got != tc.want {
			t.Fatalf("%s: classified as %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestOceanStaysWaterUnderAnyPolicy(t *testing.T) {
	cfg := testConfig()
	bank := noise.NewBank(cfg.Seed, cfg.Noise)

	size := 16
	mask := grid.FromFunc(size, size, func(x, y int) bool { return x >= size/2 })
	height := grid.FromFunc(size, size, func(x, y int) float64 {
		if x >= size/2 {
			return 5
		}
		return -5
	})
	distance := grid.FromFunc(size, size, func(x, y int) float64 {
		return float64(x - size/2)
	})
	river := grid.New[float64](size, size)

	biomes, _, err := classifyBiomes(cfg, bank, mask, height, distance, river, constantPolicy(world.BiomeForest))
	if err != nil {
		t.Fatalf("classify: %v", err)
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			got := biomes.At(x, y)
			if !mask.At(x, y) {
				if got != world.BiomeWater {
					t.Fatalf("ocean cell (%d,%d) classified as %s", x, y, got)
				}
			} else if got != world.BiomeForest {
				t.Fatalf("land cell (%d,%d) ignored the policy, got %s", x, y, got)
			}
		}
	}
}

func TestClassifyBiomesCoversPipelineWorld(t *testing.T) {
	cfg := testConfig()
	cfg.Seed = 555

	shape := shapeForTest(t, cfg)
	bank := noise.NewBank(cfg.Seed, cfg.Noise)
	height, err := synthesizeHeight(cfg, bank, shape)
	if err != nil {
		t.Fatalf("synthesize height: %v", err)
	}
	river := grid.New[float64](cfg.Size, cfg.Size)

	biomes, shore, err := classifyBiomes(cfg, bank, shape.mask, height, shape.distance, river, nil)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}

	counts := make(map[world.Biome]int)
	for y := 0; y < cfg.Size; y++ {
		for x := 0; x < cfg.Size; x++ {
			b := biomes.At(x, y)
			counts[b]++
			if !shape.mask.At(x, y) && b != world.BiomeWater {
				t.Fatalf("ocean cell (%d,%d) classified as %s", x, y, b)
			}
			if s := shore.At(x, y); s < 0 || s > 1+1e-9 {
				t.Fatalf("shore value %.4f at (%d,%d) outside [0, 1]", s, x, y)
			}
		}
	}
	if counts[world.BiomeWater] == 0 {
		t.Fatal("expected some water")
	}
	if counts[world.BiomeCoast] == 0 {
		t.Fatal("expected a coast strip")
	}
	if counts[world.BiomeGrassland]+counts[world.BiomeForest] == 0 {
		t.Fatal("expected open land beyond the coast")
	}
}

func TestBuildShoreProfile(t *testing.T) {
	size := 32
	// Left half is open water, land rises to the right.
	distance := grid.FromFunc(size, size, func(x, y int) float64 {
		return float64(x - size/2)
	})
	river := grid.New[float64](size, size)

	shore := buildShore(distance, river)

	if got := shore.At(2, 16); got < 0.9 {
		t.Fatalf("expected open water near full wetness, got %.3f", got)
	}
	if got := shore.At(31, 16); got > 0.2 {
		t.Fatalf("expected dry inland cell, got %.3f", got)
	}
	for i, v := range shore.Cells() {
		if v < 0 || v > 1+1e-9 {
			t.Fatalf("shore value %.4f at index %d outside [0, 1]", v, i)
		}
	}
}

func TestBuildShoreFollowsRivers(t *testing.T) {
	size := 32
	distance := grid.New[float64](size, size)
	distance.Fill(20)
	river := grid.New[float64](size, size)
	river.Set(16, 16, 1)

	shore := buildShore(distance, river)

	center := shore.At(16, 16)
	corner := shore.At(2, 2)
	if center < 0.05 {
		t.Fatalf("expected wetness around the river cell, got %.4f", center)
	}
	if corner >= center {
		t.Fatalf("expected wetness to fade away from the river: corner %.4f center %.4f", corner, center)
	}
}
