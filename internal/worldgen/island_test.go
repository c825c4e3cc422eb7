package worldgen

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/uuid"

	"islegen/internal/noise"
	"islegen/pkg/grid"
	"islegen/pkg/rng"
	"islegen/pkg/world"
)

func shapeForTest(t *testing.T, cfg Config) *shapeResult {
	t.Helper()
	bank := noise.NewBank(cfg.Seed, cfg.Noise)
	worldID := world.DeriveID(cfg.Seed, cfg.Digest())
	shape, err := shapeIsland(cfg, bank, rng.New(cfg.Seed).Sub("island", 0), worldID)
	if err != nil {
		t.Fatalf("shape island: %v", err)
	}
	return shape
}

func TestShapeIslandLandsInsideBand(t *testing.T) {
	cfg := testConfig()
	cfg.Seed = 555

	shape := shapeForTest(t, cfg)

	total := shape.mask.W * shape.mask.H
	area := float64(grid.Count(shape.mask)) / float64(total)
	if area < cfg.Island.MinTotalArea || area > cfg.Island.MaxTotalArea {
		t.Fatalf("land fraction %.3f outside [%.2f, %.2f] after %d attempts",
			area, cfg.Island.MinTotalArea, cfg.Island.MaxTotalArea, shape.attempts)
	}
	if shape.attempts < 1 || shape.attempts > cfg.Island.MaxAttempts {
		t.Fatalf("implausible attempt count %d", shape.attempts)
	}
}

func TestShapeIslandInventory(t *testing.T) {
	cfg := testConfig()
	cfg.Seed = 80

	shape := shapeForTest(t, cfg)

	if len(shape.islands) == 0 {
		t.Fatal("expected at least one island")
	}
	total := float64(shape.mask.W * shape.mask.H)
	sum := 0
	for i, is := range shape.islands {
		if i > 0 && is.Area > shape.islands[i-1].Area {
			t.Fatalf("islands not sorted by area: %d before %d", shape.islands[i-1].Area, is.Area)
		}
		if float64(is.Area) < cfg.Island.MinIslandArea*total {
			t.Fatalf("island %d smaller than the minimum area: %d cells", i, is.Area)
		}
		if !shape.mask.At(is.AnchorX, is.AnchorY) {
			t.Fatalf("island %d anchor (%d,%d) is not land", i, is.AnchorX, is.AnchorY)
		}
		sum += is.Area
	}
	if sum != grid.Count(shape.mask) {
		t.Fatalf("island areas sum to %d, mask has %d land cells", sum, grid.Count(shape.mask))
	}

	seen := make(map[uuid.UUID]bool)
	for i, is := range shape.islands {
		if seen[is.ID] {
			t.Fatalf("island %d reuses an earlier ID %s", i, is.ID)
		}
		seen[is.ID] = true
	}
}

func TestShapeIslandDeterministic(t *testing.T) {
	cfg := testConfig()
	cfg.Seed = 31337

	a := shapeForTest(t, cfg)
	b := shapeForTest(t, cfg)

	if !slices.Equal(a.mask.Cells(), b.mask.Cells()) {
		t.Fatal("mask not deterministic for equal seeds")
	}
	if !slices.Equal(a.distance.Cells(), b.distance.Cells()) {
		t.Fatal("distance field not deterministic for equal seeds")
	}
	if a.cutoff != b.cutoff || a.attempts != b.attempts {
		t.Fatalf("bisection diverged: cutoff %.4f/%.4f attempts %d/%d", a.cutoff, b.cutoff, a.attempts, b.attempts)
	}
	if !slices.Equal(a.islands, b.islands) {
		t.Fatal("island inventory not deterministic for equal seeds")
	}
}

func TestShapeIslandConvergenceError(t *testing.T) {
	cfg := testConfig()
	// A band this close to full land is unreachable in three attempts.
	cfg.Island.MinTotalArea = 0.999
	cfg.Island.MaxTotalArea = 0.9995
	cfg.Island.MaxAttempts = 3

	bank := noise.NewBank(cfg.Seed, cfg.Noise)
	worldID := world.DeriveID(cfg.Seed, cfg.Digest())
	_, err := shapeIsland(cfg, bank, rng.New(cfg.Seed).Sub("island", 0), worldID)

	var cerr *ConvergenceError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected convergence error, got %v", err)
	}
	if cerr.Attempts != cfg.Island.MaxAttempts {
		t.Fatalf("expected %d attempts reported, got %d", cfg.Island.MaxAttempts, cerr.Attempts)
	}
	if cerr.Seed != cfg.Seed {
		t.Fatalf("expected seed %d in error, got %d", cfg.Seed, cerr.Seed)
	}
}

func TestShapeIslandDistanceSigns(t *testing.T) {
	cfg := testConfig()
	cfg.Seed = 12

	shape := shapeForTest(t, cfg)

	for y := 0; y < shape.mask.H; y++ {
		for x := 0; x < shape.mask.W; x++ {
			d := shape.distance.At(x, y)
			if shape.mask.At(x, y) {
				if d < 0 {
					t.Fatalf("land cell (%d,%d) has negative shore distance %.2f", x, y, d)
				}
			} else {
				if d > 0 {
					t.Fatalf("water cell (%d,%d) has positive shore distance %.2f", x, y, d)
				}
				if d < -cfg.Island.ShorePadding {
					t.Fatalf("water cell (%d,%d) below padding: %.2f", x, y, d)
				}
			}
		}
	}
}

func TestRefineDoublesResolution(t *testing.T) {
	r := rng.New(7).Sub("zoom", 0)

	full := grid.New[bool](8, 8)
	full.Fill(true)
	refined := refine(full, r)
	if refined.W != 16 || refined.H != 16 {
		t.Fatalf("expected 16x16 after refine, got %dx%d", refined.W, refined.H)
	}
	if grid.Count(refined) != 16*16 {
		t.Fatalf("all-true input should refine to all-true, got %d of %d", grid.Count(refined), 16*16)
	}

	empty := grid.New[bool](8, 8)
	refined = refine(empty, r)
	if grid.Count(refined) != 0 {
		t.Fatalf("all-false input should refine to all-false, got %d set", grid.Count(refined))
	}
}
