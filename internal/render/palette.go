// Package render turns a generated world into RGBA pixel buffers. The CLI
// encodes the buffers as PNGs; the viewer hands them to the GPU unchanged.
package render

import (
	"image/color"
	"math"

	"islegen/pkg/world"
)

type gradientStop struct {
	t   float64
	col color.RGBA
}

type gradient []gradientStop

// at interpolates the gradient at t in [0, 1].
func (g gradient) at(t float64) color.RGBA {
	t = clamp01(t)
	for i := 1; i < len(g); i++ {
		curr := g[i]
		if t <= curr.t {
			prev := g[i-1]
			span := curr.t - prev.t
			var local float64
			if span > 0 {
				local = (t - prev.t) / span
			}
			return lerpRGBA(prev.col, curr.col, clamp01(local))
		}
	}
	return g[len(g)-1].col
}

// oceanRamp runs from the deepest floor (t=0) to the waterline (t=1).
var oceanRamp = gradient{
	{0.0, color.RGBA{R: 14, G: 34, B: 80, A: 255}},
	{0.6, color.RGBA{R: 40, G: 60, B: 120, A: 255}},
	{1.0, color.RGBA{R: 70, G: 105, B: 160, A: 255}},
}

// landRamp runs from the waterline (t=0) to the highest peak (t=1).
var landRamp = gradient{
	{0.0, color.RGBA{R: 186, G: 176, B: 130, A: 255}},
	{0.15, color.RGBA{R: 90, G: 150, B: 100, A: 255}},
	{0.55, color.RGBA{R: 190, G: 160, B: 80, A: 255}},
	{1.0, color.RGBA{R: 240, G: 235, B: 215, A: 255}},
}

// HeightColor maps an elevation to a hypsometric tint. Negative heights run
// through the ocean ramp scaled by minHeight, non-negative ones through the
// land ramp scaled by maxHeight.
func HeightColor(h, minHeight, maxHeight float64) color.RGBA {
	if h < 0 {
		if minHeight >= 0 {
			return oceanRamp.at(1)
		}
		return oceanRamp.at(1 - h/minHeight)
	}
	if maxHeight <= 0 {
		return landRamp.at(0)
	}
	return landRamp.at(h / maxHeight)
}

var biomePalette = [...]color.RGBA{
	world.BiomeWater:     {R: 38, G: 70, B: 132, A: 255},
	world.BiomeCoast:     {R: 214, G: 198, B: 148, A: 255},
	world.BiomeGrassland: {R: 124, G: 170, B: 94, A: 255},
	world.BiomeForest:    {R: 58, G: 114, B: 68, A: 255},
	world.BiomeWetland:   {R: 92, G: 138, B: 116, A: 255},
	world.BiomeAlpine:    {R: 198, G: 200, B: 206, A: 255},
}

// BiomeColor returns the fill color for a biome. Unknown values fall back to
// the water color so bad data shows up as sea rather than a panic.
func BiomeColor(b world.Biome) color.RGBA {
	if int(b) < len(biomePalette) {
		return biomePalette[b]
	}
	return biomePalette[world.BiomeWater]
}

// Ink colors for strokes layered on top of the base maps.
var (
	riverInk   = color.RGBA{R: 64, G: 118, B: 200, A: 255}
	contourInk = color.RGBA{R: 60, G: 46, B: 32, A: 140}
	coastInk   = color.RGBA{R: 30, G: 26, B: 20, A: 200}
)

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	t = clamp01(t)
	return color.RGBA{
		R: lerpComponent(a.R, b.R, t),
		G: lerpComponent(a.G, b.G, t),
		B: lerpComponent(a.B, b.B, t),
		A: lerpComponent(a.A, b.A, t),
	}
}

func lerpComponent(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

func scaleColorComponent(value uint8, factor float64) uint8 {
	scaled := math.Round(float64(value) * factor)
	if scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}

// shade darkens or brightens a color while leaving its alpha alone.
func shade(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: scaleColorComponent(c.R, factor),
		G: scaleColorComponent(c.G, factor),
		B: scaleColorComponent(c.B, factor),
		A: c.A,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
