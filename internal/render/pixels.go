package render

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"islegen/pkg/world"
)

// fillBoolRGBA converts boolean cell data into RGBA pixels in buf.
func fillBoolRGBA(buf []byte, cells []bool, on, off color.RGBA) {
	for i, c := range cells {
		base := i * 4
		if c {
			buf[base+0] = on.R
			buf[base+1] = on.G
			buf[base+2] = on.B
			buf[base+3] = on.A
			continue
		}
		buf[base+0] = off.R
		buf[base+1] = off.G
		buf[base+2] = off.B
		buf[base+3] = off.A
	}
}

// fillBiomeRGBA converts biome cells into RGBA pixels using the biome palette.
func fillBiomeRGBA(buf []byte, cells []world.Biome) {
	for i, c := range cells {
		base := i * 4
		col := BiomeColor(c)
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// blendRGBA blends col over the pixel at base using col's alpha. The base
// maps are opaque, so the destination alpha is left untouched.
func blendRGBA(buf []byte, base int, col color.RGBA) {
	a := uint32(col.A)
	if a == 0 {
		return
	}
	if a == 255 {
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		return
	}
	inv := 255 - a
	buf[base+0] = uint8((uint32(col.R)*a + uint32(buf[base+0])*inv) / 255)
	buf[base+1] = uint8((uint32(col.G)*a + uint32(buf[base+1])*inv) / 255)
	buf[base+2] = uint8((uint32(col.B)*a + uint32(buf[base+2])*inv) / 255)
}

// strokePolyline blends a map-space polyline into buf, visiting each crossed
// cell once per segment. Joint pixels between consecutive segments are not
// blended twice.
func strokePolyline(buf []byte, w, h int, pts []mgl64.Vec2, col color.RGBA) {
	if len(pts) == 0 {
		return
	}
	lastX, lastY := math.MinInt32, math.MinInt32
	plot := func(x, y int) {
		if x == lastX && y == lastY {
			return
		}
		lastX, lastY = x, y
		if x < 0 || y < 0 || x >= w || y >= h {
			return
		}
		blendRGBA(buf, (y*w+x)*4, col)
	}

	x0 := int(math.Round(pts[0][0]))
	y0 := int(math.Round(pts[0][1]))
	plot(x0, y0)
	for _, p := range pts[1:] {
		x1 := int(math.Round(p[0]))
		y1 := int(math.Round(p[1]))
		plotLine(x0, y0, x1, y1, plot)
		x0, y0 = x1, y1
	}
}

// plotLine visits every cell on the line from (x0, y0) to (x1, y1), both
// endpoints included.
func plotLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
