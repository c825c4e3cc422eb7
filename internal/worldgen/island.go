package worldgen

import (
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"islegen/internal/noise"
	"islegen/pkg/grid"
	"islegen/pkg/rng"
	"islegen/pkg/world"
)

// shapeResult carries everything later stages need from the island stage.
type shapeResult struct {
	mask     *grid.Bool
	distance *grid.Float
	islands  []world.Island
	cutoff   float64
	attempts int
}

// shapeIsland turns the island noise channel into a land mask whose total
// area lands inside the configured band, together with the signed shore
// distance field and the island inventory.
//
// Each attempt reshapes coarse noise around radial seed points, thresholds
// it at the current cutoff, refines the mask to full resolution, and drops
// undersized islands. An attempt outside the band adjusts the cutoff by
// bisection: too much land raises it, too little lowers it. Every attempt
// draws from its own sub-stream, so a retry never depends on how earlier
// attempts consumed randomness.
func shapeIsland(cfg Config, bank *noise.Bank, r *rng.RNG, worldID uuid.UUID) (*shapeResult, error) {
	field, err := bank.Channel(noise.ChannelIsland)
	if err != nil {
		return nil, err
	}
	coarse := cfg.Size >> cfg.Island.RefineSteps

	lo, hi := 0.0, 1.0
	cutoff := cfg.Island.Cutoff
	lastArea := 0.0

	for attempt := 0; attempt < cfg.Island.MaxAttempts; attempt++ {
		mask := buildMask(cfg, field, r.Sub("attempt", uint64(attempt)), cutoff, coarse)

		area := float64(grid.Count(mask)) / float64(mask.W*mask.H)
		lastArea = area
		switch {
		case area > cfg.Island.MaxTotalArea:
			lo = cutoff
			cutoff = (cutoff + hi) / 2
		case area < cfg.Island.MinTotalArea:
			hi = cutoff
			cutoff = (lo + cutoff) / 2
		default:
			return &shapeResult{
				mask:     mask,
				distance: grid.SignedDistance(mask, cfg.Island.ShorePadding),
				islands:  inventory(mask, worldID),
				cutoff:   cutoff,
				attempts: attempt + 1,
			}, nil
		}
	}

	return nil, &ConvergenceError{
		Stage:    "island shaping",
		Seed:     cfg.Seed,
		Attempts: cfg.Island.MaxAttempts,
		Cutoff:   cutoff,
		Area:     lastArea,
	}
}

// buildMask runs one full shaping attempt at the given cutoff.
func buildMask(cfg Config, islandNoise noise.Field, r *rng.RNG, cutoff float64, coarse int) *grid.Bool {
	field := grid.New[float64](coarse, coarse)
	step := float64(cfg.Size) / float64(coarse)
	// The bank is seed-fixed; filling consumes no randomness from r.
	noise.Fill(islandNoise, field, step, cfg.effectiveWorkers())

	reshape(field, r.Sub("reshape", 0), cfg.Island)

	mask := grid.Threshold(field, cutoff)
	grid.FillHoles(mask)

	zr := r.Sub("zoom", 0)
	for i := 0; i < cfg.Island.RefineSteps; i++ {
		mask = refine(mask, zr)
	}

	grid.FillHoles(mask)
	removeSmallIslands(mask, cfg.Island.MinIslandArea)
	return mask
}

// reshape blends radial falloff toward scattered seed points into the noise,
// pulling coastlines inward so the landmass reads as an island rather than
// wrapping noise. Point zero pins the map center; the rest scatter inside
// the margin.
func reshape(g *grid.Float, r *rng.RNG, cfg IslandConfig) {
	w := float64(g.W)
	h := float64(g.H)
	side := math.Min(w, h)
	margin := side * cfg.ReshapeMargin

	points := make([]mgl64.Vec2, cfg.ReshapePoints)
	points[0] = mgl64.Vec2{w * 0.5, h * 0.5}
	for i := 1; i < len(points); i++ {
		points[i] = mgl64.Vec2{r.Range(margin, w-margin), r.Range(margin, h-margin)}
	}

	falloff := side * cfg.ReshapeRadius
	alpha := cfg.ReshapeAlpha
	cells := g.Cells()
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			pos := mgl64.Vec2{float64(x), float64(y)}
			best := math.Inf(1)
			for _, p := range points {
				if d := p.Sub(pos).LenSqr(); d < best {
					best = d
				}
			}
			inv := 1 - math.Sqrt(best)/falloff

			i := y*g.W + x
			cells[i] = cells[i]*(1-alpha) + inv*alpha
		}
	}
}

// refine doubles the mask resolution. The four sub-cells of a coarse cell
// share one probability, the mean of the cell and its 4-neighborhood, each
// drawn independently.
func refine(g *grid.Bool, r *rng.RNG) *grid.Bool {
	out := grid.New[bool](g.W*2, g.H*2)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			sum := 0
			count := 1
			if g.At(x, y) {
				sum++
			}
			for _, n := range [4][2]int{{x - 1, y}, {x + 1, y}, {x, y - 1}, {x, y + 1}} {
				if !g.InBounds(n[0], n[1]) {
					continue
				}
				count++
				if g.At(n[0], n[1]) {
					sum++
				}
			}
			p := float64(sum) / float64(count)

			out.Set(2*x, 2*y, r.Bool(p))
			out.Set(2*x+1, 2*y, r.Bool(p))
			out.Set(2*x, 2*y+1, r.Bool(p))
			out.Set(2*x+1, 2*y+1, r.Bool(p))
		}
	}
	return out
}

// removeSmallIslands erases every landmass below the minimum area fraction.
func removeSmallIslands(g *grid.Bool, minArea float64) {
	if minArea <= 0 {
		return
	}
	labels, comps := grid.Components(g)
	total := float64(g.W * g.H)
	for _, c := range comps {
		if float64(c.Area)/total < minArea {
			grid.Erase(g, labels, c.Label)
		}
	}
}

// inventory lists the surviving islands largest first, with IDs derived from
// the world ID and the island's size rank.
func inventory(mask *grid.Bool, worldID uuid.UUID) []world.Island {
	_, comps := grid.Components(mask)
	// Stable sort keeps scan order for equal areas.
	slices.SortStableFunc(comps, func(a, b grid.Component) int {
		return b.Area - a.Area
	})

	islands := make([]world.Island, len(comps))
	for i, c := range comps {
		islands[i] = world.Island{
			ID:      world.DeriveIslandID(worldID, i),
			Area:    c.Area,
			AnchorX: c.AnchorX,
			AnchorY: c.AnchorY,
		}
	}
	return islands
}
