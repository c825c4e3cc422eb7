package worldgen

import (
	"math"
	"sync"

	"islegen/internal/noise"
	"islegen/pkg/grid"
)

// synthesizeHeight shapes the signed shore distance into terrain. The sea
// floor falls toward ocean_depth, a logistic blend carries the beach through
// the shoreline, the interior sits at land_height, and a power-curve accent
// scaled by the height noise channel raises mountains toward peak_height in
// the deep interior. The whole field is box-blurred and finally clamped so
// land never dips below sea level and water never rises above it.
func synthesizeHeight(cfg Config, bank *noise.Bank, shape *shapeResult) (*grid.Float, error) {
	heightNoise, err := bank.Channel(noise.ChannelHeight)
	if err != nil {
		return nil, err
	}

	dist := shape.distance
	out := grid.New[float64](dist.W, dist.H)
	maxDist := grid.MaxValue(dist)
	if maxDist <= 0 {
		maxDist = 1
	}

	hc := cfg.Height
	workers := cfg.effectiveWorkers()
	cells := out.Cells()

	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	for y := 0; y < out.H; y++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(y int) {
			defer wg.Done()
			fy := float64(y)
			row := cells[y*out.W : (y+1)*out.W]
			for x := range row {
				fx := float64(x)
				d := dist.At(x, y)

				alpha := beachBlend(d, hc.BeachSize)

				wx, wy := bank.WarpAt(fx, fy)
				warped := grid.Bilinear(dist, fx+wx, fy+wy)
				blended := d*(1-alpha) + warped*alpha

				h := hc.LandHeight*alpha - hc.OceanDepth*(1-alpha)

				accent := math.Pow(math.Max(blended/maxDist, 0), hc.MountainPower)
				h += accent * (hc.PeakHeight - hc.LandHeight) * heightNoise.Sample(fx, fy)

				row[x] = h
			}
			<-sem
		}(y)
	}
	wg.Wait()

	for i := 0; i < hc.BlurPasses; i++ {
		grid.BoxBlur(out, hc.BlurRadius)
	}

	clampToMask(out, shape.mask, hc)
	return out, nil
}

// beachBlend maps a signed shore distance onto [0, 1]: 0 well offshore, 1
// inland, with a logistic S through the beach strip.
func beachBlend(dist, beachSize float64) float64 {
	x := dist/(2*beachSize) + 0.5
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	const k = -1.5
	alpha := 1 - 1/(1+math.Pow(1/x-1, k))
	if alpha < 0 {
		return 0
	}
	if alpha > 1 {
		return 1
	}
	return alpha
}

// clampToMask keeps the height field consistent with the land mask after
// blurring: land cells stay at or above sea level, water cells at or below,
// and everything respects the configured extremes.
func clampToMask(g *grid.Float, mask *grid.Bool, hc HeightConfig) {
	cells := g.Cells()
	for i, land := range mask.Cells() {
		v := cells[i]
		if land {
			if v < 0 {
				v = 0
			}
			if v > hc.MaxHeight {
				v = hc.MaxHeight
			}
		} else {
			if v > 0 {
				v = 0
			}
			if v < -hc.OceanDepth {
				v = -hc.OceanDepth
			}
		}
		cells[i] = v
	}
}
