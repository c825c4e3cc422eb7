package worldgen

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"islegen/pkg/grid"
	"islegen/pkg/rng"
	"islegen/pkg/world"
)

// SpawnPolicy chooses droplet start positions. Implementations must be
// deterministic for a given RNG stream.
type SpawnPolicy interface {
	Spawn(r *rng.RNG, height *grid.Float, mask *grid.Bool, n int) []mgl64.Vec2
}

// UniformLandSpawner scatters droplets uniformly over land cells at or above
// a minimum elevation, jittered inside the chosen cell.
type UniformLandSpawner struct {
	MinHeight float64
}

// Spawn draws n start positions with replacement from the candidate cells.
// With no candidates it returns nil, which yields a world without rivers.
func (s UniformLandSpawner) Spawn(r *rng.RNG, height *grid.Float, mask *grid.Bool, n int) []mgl64.Vec2 {
	var candidates []int
	for i, land := range mask.Cells() {
		if land && height.Cells()[i] >= s.MinHeight {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 || n <= 0 {
		return nil
	}

	spawns := make([]mgl64.Vec2, n)
	for i := range spawns {
		cell := candidates[r.IntN(len(candidates))]
		x := float64(cell%height.W) + r.Float64()
		y := float64(cell/height.W) + r.Float64()
		spawns[i] = mgl64.Vec2{x, y}
	}
	return spawns
}

// riverResult carries the rivers stage output: the eroded height field, the
// extracted river polylines, and the rasterized river intensity map used by
// shore blending and wetland classification.
type riverResult struct {
	height    *grid.Float
	rivers    []world.RiverPath
	intensity *grid.Float
}

// stamp is one erode/deposit application against the height field.
type stamp struct {
	cell   int32
	amount float64
}

// dropletRun is the outcome of a single droplet simulation.
type dropletRun struct {
	stamps []stamp
	trace  []mgl64.Vec2
	loads  []float64
	steps  int
}

// simulateRivers runs hydraulic droplet erosion over the height field and
// keeps the traces of long-lived droplets as rivers.
//
// Droplets are processed in batches. Every droplet in a batch reads the
// terrain as it stood when the batch began and records its stamps; the
// stamps then apply in droplet order. Batch runs use the worker pool, but
// batch boundaries and application order are fixed by configuration, so the
// result depends only on seed and config, never on scheduling. A batch size
// of zero processes one droplet at a time, which is the fully serialized
// model.
func simulateRivers(cfg Config, r *rng.RNG, height *grid.Float, mask *grid.Bool, policy SpawnPolicy) *riverResult {
	rc := cfg.Rivers
	if policy == nil {
		policy = UniformLandSpawner{MinHeight: rc.SpawnMinHeight}
	}
	spawns := policy.Spawn(r.Sub("spawn", 0), height, mask, rc.Droplets)

	res := &riverResult{
		height:    height,
		intensity: grid.New[float64](height.W, height.H),
	}

	batch := rc.BatchSize
	if batch <= 0 {
		batch = 1
	}
	workers := cfg.effectiveWorkers()

	runs := make([]dropletRun, batch)
	for start := 0; start < len(spawns); start += batch {
		end := start + batch
		if end > len(spawns) {
			end = len(spawns)
		}
		chunk := spawns[start:end]

		if len(chunk) == 1 {
			runs[0] = runDroplet(rc, height, chunk[0])
		} else {
			var wg sync.WaitGroup
			sem := make(chan struct{}, workers)
			for i, pos := range chunk {
				wg.Add(1)
				sem <- struct{}{}
				go func(i int, pos mgl64.Vec2) {
					defer wg.Done()
					runs[i] = runDroplet(rc, height, pos)
					<-sem
				}(i, pos)
			}
			wg.Wait()
		}

		// Stamps apply in droplet order; the order is part of the model.
		for i := range chunk {
			run := &runs[i]
			applyStamps(height, run.stamps)
			if run.steps >= rc.MinRiverSteps {
				res.rivers = append(res.rivers, world.RiverPath{Points: run.trace, Sediment: run.loads})
				rasterizeRiver(res.intensity, run.trace, cfg.Biomes.RiverMargin)
			}
		}
	}

	// Shoreline stamps can spill across sea level; settle the field back
	// against the mask so land stays at or above zero and water below.
	clampToMask(height, mask, cfg.Height)

	return res
}

// runDroplet simulates one droplet from spawn to death, recording its stamps
// and trace without touching the height field.
//
// dh below is the elevation change of the last move: negative going
// downhill. Capacity scales with drop, speed, and remaining water; an
// overloaded or climbing droplet deposits, otherwise it erodes up to the
// drop that produced the move. A droplet stops at the ocean, at the map
// edge, on flat ground, when its water evaporates, or at the step limit,
// and settles its remaining sediment where it died.
func runDroplet(rc RiverConfig, height *grid.Float, start mgl64.Vec2) dropletRun {
	run := dropletRun{
		trace: make([]mgl64.Vec2, 0, rc.MaxSteps+1),
		loads: make([]float64, 0, rc.MaxSteps+1),
	}

	pos := start
	dir := mgl64.Vec2{}
	speed := 1.0
	water := 1.0
	sediment := 0.0

	for ; run.steps < rc.MaxSteps; run.steps++ {
		run.trace = append(run.trace, pos)
		run.loads = append(run.loads, sediment)

		hOld := grid.Bilinear(height, pos.X(), pos.Y())
		if hOld <= 0 {
			// Reached the ocean.
			break
		}

		gx, gy := grid.Gradient(height, pos.X(), pos.Y())
		dir = dir.Mul(rc.Inertia).Sub(mgl64.Vec2{gx, gy}.Mul(1 - rc.Inertia))
		if dir.Len() < 1e-8 {
			// Flat ground: the droplet has nowhere to go.
			break
		}
		dir = dir.Normalize()
		pos = pos.Add(dir)

		if pos.X() < 0 || pos.Y() < 0 || pos.X() > float64(height.W-1) || pos.Y() > float64(height.H-1) {
			break
		}

		hNew := grid.Bilinear(height, pos.X(), pos.Y())
		dh := hNew - hOld

		capacity := math.Max(-dh, rc.MinSlope) * speed * water * rc.Capacity
		if dh > 0 || sediment > capacity {
			amount := (sediment - capacity) * rc.Deposition
			if dh > 0 {
				// Climbing out of a pit: fill it, at most with what we carry.
				amount = math.Min(dh, sediment)
			}
			sediment -= amount
			run.stamps = appendStamp(run.stamps, height, run.trace[len(run.trace)-1], rc.PointRadius, amount)
		} else {
			amount := math.Min((capacity-sediment)*rc.Erosion, -dh)
			sediment += amount
			run.stamps = appendStamp(run.stamps, height, run.trace[len(run.trace)-1], rc.PointRadius, -amount)
		}

		speed = math.Sqrt(math.Max(0, speed*speed-dh*rc.Gravity))
		water *= 1 - rc.Evaporation
		if water < 1e-3 {
			break
		}
	}

	if sediment > 0 {
		run.stamps = appendStamp(run.stamps, height, pos, rc.PointRadius, sediment)
	}
	return run
}

// appendStamp spreads an erode/deposit amount over the cells around pos with
// linear falloff. Cells outside the map clip; the in-bounds weights
// renormalize so the full amount always lands.
func appendStamp(stamps []stamp, height *grid.Float, pos mgl64.Vec2, radius int, amount float64) []stamp {
	if amount == 0 {
		return stamps
	}
	cx := int(math.Floor(pos.X()))
	cy := int(math.Floor(pos.Y()))
	fr := float64(radius)

	total := 0.0
	first := len(stamps)
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			if !height.InBounds(x, y) {
				continue
			}
			d := math.Hypot(float64(x)-pos.X(), float64(y)-pos.Y())
			w := fr - d
			if w <= 0 {
				continue
			}
			total += w
			stamps = append(stamps, stamp{cell: int32(height.Index(x, y)), amount: w})
		}
	}
	if total == 0 {
		return stamps[:first]
	}
	for i := first; i < len(stamps); i++ {
		stamps[i].amount = stamps[i].amount / total * amount
	}
	return stamps
}

func applyStamps(height *grid.Float, stamps []stamp) {
	cells := height.Cells()
	for _, s := range stamps {
		cells[s.cell] += s.amount
	}
}

// rasterizeRiver marks the cells under a river trace in the intensity map,
// fading linearly out to the margin.
func rasterizeRiver(intensity *grid.Float, trace []mgl64.Vec2, margin int) {
	if margin < 1 {
		margin = 1
	}
	fm := float64(margin)
	for _, p := range trace {
		cx := int(math.Floor(p.X()))
		cy := int(math.Floor(p.Y()))
		for y := cy - margin; y <= cy+margin; y++ {
			for x := cx - margin; x <= cx+margin; x++ {
				if !intensity.InBounds(x, y) {
					continue
				}
				d := math.Hypot(float64(x)-p.X(), float64(y)-p.Y())
				v := 1 - d/(fm+1)
				if v <= 0 {
					continue
				}
				if cur := intensity.At(x, y); v > cur {
					intensity.Set(x, y, v)
				}
			}
		}
	}
}
