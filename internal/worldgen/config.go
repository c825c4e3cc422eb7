package worldgen

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"islegen/internal/noise"
)

// IslandConfig controls mask shaping and the land-area band.
type IslandConfig struct {
	// Cutoff is the initial noise threshold separating land from water.
	// Shaping bisects it when the land area falls outside the band.
	Cutoff float64 `json:"cutoff"`
	// ReshapeMargin keeps reshape points away from the border, as a fraction
	// of the shorter grid side.
	ReshapeMargin float64 `json:"reshape_margin"`
	// ReshapeRadius scales the radial falloff, as a fraction of the shorter
	// grid side.
	ReshapeRadius float64 `json:"reshape_radius"`
	// ReshapeAlpha blends radial falloff into the noise (0 = pure noise).
	ReshapeAlpha  float64 `json:"reshape_alpha"`
	ReshapePoints int     `json:"reshape_points"`
	// RefineSteps is the number of resolution-doubling passes; the coarse
	// shaping grid is the world size divided by 2^RefineSteps.
	RefineSteps int `json:"refine_steps"`
	// MinIslandArea removes landmasses below this fraction of total cells.
	MinIslandArea float64 `json:"min_island_area"`
	// MinTotalArea and MaxTotalArea bound the acceptable land fraction.
	MinTotalArea float64 `json:"min_total_area"`
	MaxTotalArea float64 `json:"max_total_area"`
	// MaxAttempts bounds the cutoff bisection.
	MaxAttempts int `json:"max_attempts"`
	// ShorePadding caps the water-side shore distance, in cells.
	ShorePadding float64 `json:"shore_padding"`
}

// HeightConfig controls the terrain height profile.
type HeightConfig struct {
	// BeachSize is the half-width of the shore blend, in cells.
	BeachSize float64 `json:"beach_size"`
	// LandHeight is the inland base elevation.
	LandHeight float64 `json:"land_height"`
	// PeakHeight is the elevation the mountain accent rises toward.
	PeakHeight float64 `json:"peak_height"`
	// OceanDepth is the depth the sea floor falls toward.
	OceanDepth float64 `json:"ocean_depth"`
	// MountainPower is the exponent on the interior distance ratio; larger
	// values concentrate elevation into fewer, sharper peaks.
	MountainPower float64 `json:"mountain_power"`
	// MaxHeight clamps the final terrain and bounds the contour levels.
	MaxHeight  float64 `json:"max_height"`
	BlurRadius int     `json:"blur_radius"`
	BlurPasses int     `json:"blur_passes"`
}

// RiverConfig controls droplet erosion and river extraction.
type RiverConfig struct {
	Droplets int `json:"droplets"`
	MaxSteps int `json:"max_steps"`
	// Inertia blends the previous direction against the gradient (1 = never
	// turn, 0 = pure gradient descent).
	Inertia     float64 `json:"inertia"`
	Capacity    float64 `json:"capacity"`
	Deposition  float64 `json:"deposition"`
	Erosion     float64 `json:"erosion"`
	Evaporation float64 `json:"evaporation"`
	MinSlope    float64 `json:"min_slope"`
	Gravity     float64 `json:"gravity"`
	// PointRadius is the stamp radius for erode/deposit, in cells.
	PointRadius int `json:"point_radius"`
	// SpawnMinHeight keeps droplet spawns above this elevation.
	SpawnMinHeight float64 `json:"spawn_min_height"`
	// MinRiverSteps is the droplet lifetime above which its trace is kept as
	// a river.
	MinRiverSteps int `json:"min_river_steps"`
	// BatchSize groups droplets for parallel runs; every droplet in a batch
	// sees the terrain as it stood when the batch began. 0 runs droplets one
	// at a time. The result depends on batch size but never on worker count.
	BatchSize int `json:"batch_size"`
}

// BiomeConfig controls the default classification policy.
type BiomeConfig struct {
	// ForestThreshold is the biome-noise value above which land becomes
	// forest.
	ForestThreshold float64 `json:"forest_threshold"`
	// CoastWidth is the beach strip width inland from the shore, in cells.
	CoastWidth float64 `json:"coast_width"`
	// AlpineHeight is the elevation at which land becomes alpine.
	AlpineHeight float64 `json:"alpine_height"`
	// RiverMargin marks cells within this many cells of a river as wetland.
	RiverMargin int `json:"river_margin"`
}

// TopographyConfig controls iso-contour extraction.
type TopographyConfig struct {
	// IsoStep is the height interval between contour levels.
	IsoStep float64 `json:"iso_step"`
}

// Config assembles every stage's parameters for one world build.
type Config struct {
	// Size is the world edge length in cells; the map is Size x Size.
	Size int   `json:"size"`
	Seed int64 `json:"seed"`
	// Workers bounds pipeline parallelism; 0 or less means one per CPU.
	// The output never depends on it.
	Workers int `json:"workers"`

	Noise      noise.Config     `json:"noise"`
	Island     IslandConfig     `json:"island"`
	Height     HeightConfig     `json:"height"`
	Rivers     RiverConfig      `json:"rivers"`
	Biomes     BiomeConfig      `json:"biomes"`
	Topography TopographyConfig `json:"topography"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Size:    512,
		Seed:    1337,
		Workers: 0,
		Noise:   noise.DefaultConfig(),
		Island: IslandConfig{
			Cutoff:        0.4,
			ReshapeMargin: 0.1,
			ReshapeRadius: 0.6,
			ReshapeAlpha:  0.45,
			ReshapePoints: 32,
			RefineSteps:   3,
			MinIslandArea: 0.02,
			MinTotalArea:  0.3,
			MaxTotalArea:  0.5,
			MaxAttempts:   16,
			ShorePadding:  128,
		},
		Height: HeightConfig{
			BeachSize:     8,
			LandHeight:    10,
			PeakHeight:    80,
			OceanDepth:    20,
			MountainPower: 4,
			MaxHeight:     80,
			BlurRadius:    2,
			BlurPasses:    2,
		},
		Rivers: RiverConfig{
			Droplets:       25000,
			MaxSteps:       80,
			Inertia:        0.1,
			Capacity:       8,
			Deposition:     0.1,
			Erosion:        0.1,
			Evaporation:    0.02,
			MinSlope:       0.01,
			Gravity:        4,
			PointRadius:    2,
			SpawnMinHeight: 5,
			MinRiverSteps:  24,
			BatchSize:      1024,
		},
		Biomes: BiomeConfig{
			ForestThreshold: 0.5,
			CoastWidth:      4,
			AlpineHeight:    50,
			RiverMargin:     2,
		},
		Topography: TopographyConfig{
			IsoStep: 5,
		},
	}
}

// Load reads a JSON config file over the defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("worldgen: read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("worldgen: parse config %s: %w", path, err)
	}
	return cfg, nil
}

// FromMap applies flag-style key/value overrides to a config. Unknown keys
// and unparsable values are errors.
func FromMap(cfg Config, overrides map[string]string) (Config, error) {
	for key, value := range overrides {
		if err := applyOverride(&cfg, key, value); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func applyOverride(c *Config, key, value string) error {
	setInt := func(dst *int) error {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("worldgen: override %s=%q: %w", key, value, err)
		}
		*dst = parsed
		return nil
	}
	setInt64 := func(dst *int64) error {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("worldgen: override %s=%q: %w", key, value, err)
		}
		*dst = parsed
		return nil
	}
	setFloat := func(dst *float64) error {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("worldgen: override %s=%q: %w", key, value, err)
		}
		*dst = parsed
		return nil
	}

	switch key {
	case "size":
		return setInt(&c.Size)
	case "seed":
		return setInt64(&c.Seed)
	case "workers":
		return setInt(&c.Workers)
	case "noise.island_scale":
		return setFloat(&c.Noise.Island.Scale)
	case "noise.height_scale":
		return setFloat(&c.Noise.Height.Scale)
	case "noise.biome_scale":
		return setFloat(&c.Noise.Biomes.Scale)
	case "noise.grass_scale":
		return setFloat(&c.Noise.Grass.Scale)
	case "noise.warp_scale":
		return setFloat(&c.Noise.Warp.Scale)
	case "noise.warp_dist":
		return setFloat(&c.Noise.Warp.Dist)
	case "island.cutoff":
		return setFloat(&c.Island.Cutoff)
	case "island.reshape_radius":
		return setFloat(&c.Island.ReshapeRadius)
	case "island.reshape_alpha":
		return setFloat(&c.Island.ReshapeAlpha)
	case "island.min_island_area":
		return setFloat(&c.Island.MinIslandArea)
	case "island.min_total_area":
		return setFloat(&c.Island.MinTotalArea)
	case "island.max_total_area":
		return setFloat(&c.Island.MaxTotalArea)
	case "island.max_attempts":
		return setInt(&c.Island.MaxAttempts)
	case "height.beach_size":
		return setFloat(&c.Height.BeachSize)
	case "height.land_height":
		return setFloat(&c.Height.LandHeight)
	case "height.peak_height":
		return setFloat(&c.Height.PeakHeight)
	case "height.ocean_depth":
		return setFloat(&c.Height.OceanDepth)
	case "height.mountain_power":
		return setFloat(&c.Height.MountainPower)
	case "height.max_height":
		return setFloat(&c.Height.MaxHeight)
	case "rivers.droplets":
		return setInt(&c.Rivers.Droplets)
	case "rivers.max_steps":
		return setInt(&c.Rivers.MaxSteps)
	case "rivers.inertia":
		return setFloat(&c.Rivers.Inertia)
	case "rivers.capacity":
		return setFloat(&c.Rivers.Capacity)
	case "rivers.deposition":
		return setFloat(&c.Rivers.Deposition)
	case "rivers.erosion":
		return setFloat(&c.Rivers.Erosion)
	case "rivers.evaporation":
		return setFloat(&c.Rivers.Evaporation)
	case "rivers.point_radius":
		return setInt(&c.Rivers.PointRadius)
	case "rivers.min_river_steps":
		return setInt(&c.Rivers.MinRiverSteps)
	case "rivers.batch_size":
		return setInt(&c.Rivers.BatchSize)
	case "biomes.forest_threshold":
		return setFloat(&c.Biomes.ForestThreshold)
	case "biomes.coast_width":
		return setFloat(&c.Biomes.CoastWidth)
	case "biomes.alpine_height":
		return setFloat(&c.Biomes.AlpineHeight)
	case "biomes.river_margin":
		return setInt(&c.Biomes.RiverMargin)
	case "topography.iso_step":
		return setFloat(&c.Topography.IsoStep)
	default:
		return fmt.Errorf("worldgen: unknown override key %q", key)
	}
}

// Validate checks every field before generation starts.
func (c Config) Validate() error {
	if c.Size <= 0 {
		return &ConfigError{Field: "size", Value: c.Size, Reason: "must be positive"}
	}
	if c.Island.RefineSteps < 0 {
		return &ConfigError{Field: "island.refine_steps", Value: c.Island.RefineSteps, Reason: "must not be negative"}
	}
	if factor := 1 << c.Island.RefineSteps; c.Size%factor != 0 || c.Size/factor < 8 {
		return &ConfigError{Field: "size", Value: c.Size,
			Reason: fmt.Sprintf("must be a multiple of 2^refine_steps (%d) with a coarse grid of at least 8", factor)}
	}
	for _, ch := range []struct {
		name string
		p    noise.Params
	}{
		{"noise.island", c.Noise.Island},
		{"noise.height", c.Noise.Height},
		{"noise.biomes", c.Noise.Biomes},
	} {
		if ch.p.Octaves < 1 {
			return &ConfigError{Field: ch.name + ".octaves", Value: ch.p.Octaves, Reason: "must be at least 1"}
		}
		if ch.p.Lacunarity <= 0 {
			return &ConfigError{Field: ch.name + ".lacunarity", Value: ch.p.Lacunarity, Reason: "must be positive"}
		}
		if ch.p.Persistence <= 0 {
			return &ConfigError{Field: ch.name + ".persistence", Value: ch.p.Persistence, Reason: "must be positive"}
		}
		if ch.p.Scale <= 0 {
			return &ConfigError{Field: ch.name + ".scale", Value: ch.p.Scale, Reason: "must be positive"}
		}
	}
	if c.Noise.Grass.Scale <= 0 {
		return &ConfigError{Field: "noise.grass.scale", Value: c.Noise.Grass.Scale, Reason: "must be positive"}
	}
	if c.Noise.Warp.Scale <= 0 {
		return &ConfigError{Field: "noise.warp.scale", Value: c.Noise.Warp.Scale, Reason: "must be positive"}
	}
	if c.Noise.Warp.Dist < 0 {
		return &ConfigError{Field: "noise.warp.dist", Value: c.Noise.Warp.Dist, Reason: "must not be negative"}
	}
	if c.Island.Cutoff <= 0 || c.Island.Cutoff >= 1 {
		return &ConfigError{Field: "island.cutoff", Value: c.Island.Cutoff, Reason: "must be inside (0, 1)"}
	}
	if c.Island.ReshapePoints < 1 {
		return &ConfigError{Field: "island.reshape_points", Value: c.Island.ReshapePoints, Reason: "must be at least 1"}
	}
	if c.Island.ReshapeMargin < 0 || c.Island.ReshapeMargin >= 0.5 {
		return &ConfigError{Field: "island.reshape_margin", Value: c.Island.ReshapeMargin, Reason: "must be inside [0, 0.5)"}
	}
	if c.Island.ReshapeRadius <= 0 {
		return &ConfigError{Field: "island.reshape_radius", Value: c.Island.ReshapeRadius, Reason: "must be positive"}
	}
	if c.Island.ReshapeAlpha < 0 || c.Island.ReshapeAlpha > 1 {
		return &ConfigError{Field: "island.reshape_alpha", Value: c.Island.ReshapeAlpha, Reason: "must be inside [0, 1]"}
	}
	if c.Island.MinIslandArea < 0 || c.Island.MinIslandArea >= 1 {
		return &ConfigError{Field: "island.min_island_area", Value: c.Island.MinIslandArea, Reason: "must be inside [0, 1)"}
	}
	if c.Island.MinTotalArea <= 0 || c.Island.MinTotalArea >= 1 {
		return &ConfigError{Field: "island.min_total_area", Value: c.Island.MinTotalArea, Reason: "must be inside (0, 1)"}
	}
	if c.Island.MaxTotalArea <= c.Island.MinTotalArea || c.Island.MaxTotalArea >= 1 {
		return &ConfigError{Field: "island.max_total_area", Value: c.Island.MaxTotalArea, Reason: "must be inside (min_total_area, 1)"}
	}
	if c.Island.MaxAttempts < 1 {
		return &ConfigError{Field: "island.max_attempts", Value: c.Island.MaxAttempts, Reason: "must be at least 1"}
	}
	if c.Island.ShorePadding <= 0 {
		return &ConfigError{Field: "island.shore_padding", Value: c.Island.ShorePadding, Reason: "must be positive"}
	}
	if c.Height.BeachSize <= 0 {
		return &ConfigError{Field: "height.beach_size", Value: c.Height.BeachSize, Reason: "must be positive"}
	}
	if c.Height.OceanDepth <= 0 {
		return &ConfigError{Field: "height.ocean_depth", Value: c.Height.OceanDepth, Reason: "must be positive"}
	}
	if c.Height.LandHeight <= 0 {
		return &ConfigError{Field: "height.land_height", Value: c.Height.LandHeight, Reason: "must be positive"}
	}
	if c.Height.PeakHeight < c.Height.LandHeight {
		return &ConfigError{Field: "height.peak_height", Value: c.Height.PeakHeight, Reason: "must not be below land_height"}
	}
	if c.Height.MountainPower < 1 {
		return &ConfigError{Field: "height.mountain_power", Value: c.Height.MountainPower, Reason: "must be at least 1"}
	}
	if c.Height.MaxHeight < c.Height.PeakHeight {
		return &ConfigError{Field: "height.max_height", Value: c.Height.MaxHeight, Reason: "must not be below peak_height"}
	}
	if c.Height.BlurRadius < 0 {
		return &ConfigError{Field: "height.blur_radius", Value: c.Height.BlurRadius, Reason: "must not be negative"}
	}
	if c.Height.BlurPasses < 0 {
		return &ConfigError{Field: "height.blur_passes", Value: c.Height.BlurPasses, Reason: "must not be negative"}
	}
	if c.Rivers.Droplets < 0 {
		return &ConfigError{Field: "rivers.droplets", Value: c.Rivers.Droplets, Reason: "must not be negative"}
	}
	if c.Rivers.MaxSteps < 1 {
		return &ConfigError{Field: "rivers.max_steps", Value: c.Rivers.MaxSteps, Reason: "must be at least 1"}
	}
	if c.Rivers.Inertia < 0 || c.Rivers.Inertia > 1 {
		return &ConfigError{Field: "rivers.inertia", Value: c.Rivers.Inertia, Reason: "must be inside [0, 1]"}
	}
	if c.Rivers.Capacity <= 0 {
		return &ConfigError{Field: "rivers.capacity", Value: c.Rivers.Capacity, Reason: "must be positive"}
	}
	if c.Rivers.Deposition < 0 || c.Rivers.Deposition > 1 {
		return &ConfigError{Field: "rivers.deposition", Value: c.Rivers.Deposition, Reason: "must be inside [0, 1]"}
	}
	if c.Rivers.Erosion < 0 || c.Rivers.Erosion > 1 {
		return &ConfigError{Field: "rivers.erosion", Value: c.Rivers.Erosion, Reason: "must be inside [0, 1]"}
	}
	if c.Rivers.Evaporation < 0 || c.Rivers.Evaporation >= 1 {
		return &ConfigError{Field: "rivers.evaporation", Value: c.Rivers.Evaporation, Reason: "must be inside [0, 1)"}
	}
	if c.Rivers.MinSlope < 0 {
		return &ConfigError{Field: "rivers.min_slope", Value: c.Rivers.MinSlope, Reason: "must not be negative"}
	}
	if c.Rivers.Gravity <= 0 {
		return &ConfigError{Field: "rivers.gravity", Value: c.Rivers.Gravity, Reason: "must be positive"}
	}
	if c.Rivers.PointRadius < 1 {
		return &ConfigError{Field: "rivers.point_radius", Value: c.Rivers.PointRadius, Reason: "must be at least 1"}
	}
	if c.Rivers.MinRiverSteps < 1 {
		return &ConfigError{Field: "rivers.min_river_steps", Value: c.Rivers.MinRiverSteps, Reason: "must be at least 1"}
	}
	if c.Rivers.BatchSize < 0 {
		return &ConfigError{Field: "rivers.batch_size", Value: c.Rivers.BatchSize, Reason: "must not be negative"}
	}
	if c.Biomes.ForestThreshold < 0 || c.Biomes.ForestThreshold > 1 {
		return &ConfigError{Field: "biomes.forest_threshold", Value: c.Biomes.ForestThreshold, Reason: "must be inside [0, 1]"}
	}
	if c.Biomes.CoastWidth < 0 {
		return &ConfigError{Field: "biomes.coast_width", Value: c.Biomes.CoastWidth, Reason: "must not be negative"}
	}
	if c.Biomes.AlpineHeight <= 0 {
		return &ConfigError{Field: "biomes.alpine_height", Value: c.Biomes.AlpineHeight, Reason: "must be positive"}
	}
	if c.Biomes.RiverMargin < 0 {
		return &ConfigError{Field: "biomes.river_margin", Value: c.Biomes.RiverMargin, Reason: "must not be negative"}
	}
	if c.Topography.IsoStep <= 0 {
		return &ConfigError{Field: "topography.iso_step", Value: c.Topography.IsoStep, Reason: "must be positive"}
	}
	return nil
}

// Digest returns stable bytes identifying this configuration. Struct fields
// marshal in declaration order, so equal configs always produce equal bytes.
func (c Config) Digest() []byte {
	data, err := json.Marshal(c)
	if err != nil {
		// A plain struct of numbers cannot fail to marshal.
		panic(err)
	}
	return data
}

// effectiveWorkers resolves the worker bound for pipeline pools.
func (c Config) effectiveWorkers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return defaultWorkers()
}
