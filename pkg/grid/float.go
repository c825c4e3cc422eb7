package grid

import "math"

// Bilinear samples the field at a fractional position using bilinear
// interpolation between the four surrounding cell centers. Positions outside
// the grid clamp to the edge, so the field extends flat beyond its borders.
func Bilinear(g *Float, x, y float64) float64 {
	fx := math.Floor(x)
	fy := math.Floor(y)
	tx := x - fx
	ty := y - fy
	x0 := int(fx)
	y0 := int(fy)

	v00 := g.Clamped(x0, y0)
	v10 := g.Clamped(x0+1, y0)
	v01 := g.Clamped(x0, y0+1)
	v11 := g.Clamped(x0+1, y0+1)

	top := v00 + (v10-v00)*tx
	bottom := v01 + (v11-v01)*tx
	return top + (bottom-top)*ty
}

// Gradient returns the central-difference gradient of the field at a
// fractional position, using bilinear samples one cell apart.
func Gradient(g *Float, x, y float64) (gx, gy float64) {
	gx = (Bilinear(g, x+1, y) - Bilinear(g, x-1, y)) * 0.5
	gy = (Bilinear(g, x, y+1) - Bilinear(g, x, y-1)) * 0.5
	return gx, gy
}

// MinMax returns the smallest and largest cell values.
func MinMax(g *Float) (min, max float64) {
	cells := g.Cells()
	min = cells[0]
	max = cells[0]
	for _, v := range cells[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// MaxValue returns the largest cell value.
func MaxValue(g *Float) float64 {
	_, max := MinMax(g)
	return max
}

// MapRange remaps every cell linearly from [fromMin, fromMax] to
// [toMin, toMax]. A degenerate source range maps everything to toMin.
func MapRange(g *Float, fromMin, fromMax, toMin, toMax float64) {
	span := fromMax - fromMin
	cells := g.Cells()
	if span == 0 {
		for i := range cells {
			cells[i] = toMin
		}
		return
	}
	scale := (toMax - toMin) / span
	for i, v := range cells {
		cells[i] = toMin + (v-fromMin)*scale
	}
}

// BoxBlur smooths the field in place with a separable box filter of the given
// radius, clamping the window at the edges. Radius 0 is a no-op.
func BoxBlur(g *Float, radius int) {
	if radius <= 0 {
		return
	}
	cells := g.Cells()
	tmp := make([]float64, len(cells))

	// Horizontal pass into tmp.
	for y := 0; y < g.H; y++ {
		row := cells[y*g.W : (y+1)*g.W]
		out := tmp[y*g.W : (y+1)*g.W]
		for x := range row {
			lo := x - radius
			hi := x + radius
			if lo < 0 {
				lo = 0
			}
			if hi >= g.W {
				hi = g.W - 1
			}
			sum := 0.0
			for i := lo; i <= hi; i++ {
				sum += row[i]
			}
			out[x] = sum / float64(hi-lo+1)
		}
	}

	// Vertical pass back into the grid.
	for x := 0; x < g.W; x++ {
		for y := 0; y < g.H; y++ {
			lo := y - radius
			hi := y + radius
			if lo < 0 {
				lo = 0
			}
			if hi >= g.H {
				hi = g.H - 1
			}
			sum := 0.0
			for i := lo; i <= hi; i++ {
				sum += tmp[i*g.W+x]
			}
			cells[y*g.W+x] = sum / float64(hi-lo+1)
		}
	}
}

// Threshold builds a boolean mask of cells strictly above the cutoff.
func Threshold(g *Float, cutoff float64) *Bool {
	return Map(g, func(v float64) bool { return v > cutoff })
}
