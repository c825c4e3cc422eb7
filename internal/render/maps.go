package render

import (
	"image"
	"image/color"

	"islegen/pkg/grid"
	"islegen/pkg/world"
)

const (
	hillshadeScale    = 0.5
	hillshadeStrength = 0.3
)

// HeightImage renders the hypsometric height map with slope shading, lit from
// the northwest.
func HeightImage(wld *world.World) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, wld.W, wld.H))
	min, max := grid.MinMax(wld.Height)
	for y := 0; y < wld.H; y++ {
		for x := 0; x < wld.W; x++ {
			col := HeightColor(wld.Height.At(x, y), min, max)
			col = shade(col, hillshade(wld.Height, x, y))
			base := img.PixOffset(x, y)
			img.Pix[base+0] = col.R
			img.Pix[base+1] = col.G
			img.Pix[base+2] = col.B
			img.Pix[base+3] = col.A
		}
	}
	return img
}

// hillshade returns a brightness factor for the cell from its local slope.
// Faces rising toward the northwest brighten, faces falling away darken.
func hillshade(h *grid.Float, x, y int) float64 {
	dzdx := (h.Clamped(x+1, y) - h.Clamped(x-1, y)) * 0.5
	dzdy := (h.Clamped(x, y+1) - h.Clamped(x, y-1)) * 0.5
	lit := clamp(-(dzdx+dzdy)*hillshadeScale, -1, 1)
	return 1 + hillshadeStrength*lit
}

// MaskImage renders the land mask, land light and water dark.
func MaskImage(wld *world.World) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, wld.W, wld.H))
	land := color.RGBA{R: 232, G: 228, B: 214, A: 255}
	water := color.RGBA{R: 36, G: 52, B: 96, A: 255}
	fillBoolRGBA(img.Pix, wld.Mask.Cells(), land, water)
	return img
}

// BiomeImage renders the biome classification with the biome palette.
func BiomeImage(wld *world.World) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, wld.W, wld.H))
	fillBiomeRGBA(img.Pix, wld.Biomes.Cells())
	return img
}

// ShoreImage renders the shore wetness field, dry dark and wet bright.
func ShoreImage(wld *world.World) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, wld.W, wld.H))
	dry := color.RGBA{R: 28, G: 32, B: 40, A: 255}
	wet := color.RGBA{R: 130, G: 170, B: 220, A: 255}
	for i, v := range wld.Shore.Cells() {
		col := lerpRGBA(dry, wet, v)
		base := i * 4
		img.Pix[base+0] = col.R
		img.Pix[base+1] = col.G
		img.Pix[base+2] = col.B
		img.Pix[base+3] = col.A
	}
	return img
}

// StrokeRivers blends every river polyline into img.
func StrokeRivers(img *image.RGBA, wld *world.World) {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	for _, river := range wld.Rivers {
		strokePolyline(img.Pix, w, h, river.Points, riverInk)
	}
}

// StrokeContours blends every contour polyline into img. The sea-level
// contour is drawn with the heavier coastline ink.
func StrokeContours(img *image.RGBA, wld *world.World) {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	for _, level := range wld.Contours.Levels {
		ink := contourInk
		if level.Height == 0 {
			ink = coastInk
		}
		for _, line := range level.Lines {
			strokePolyline(img.Pix, w, h, line.Points, ink)
		}
	}
}

// ContourImage renders the shaded height map with contours and rivers
// stroked on top.
func ContourImage(wld *world.World) *image.RGBA {
	img := HeightImage(wld)
	StrokeContours(img, wld)
	StrokeRivers(img, wld)
	return img
}

// TerrainImage renders the biome map with rivers and the coastline stroked
// on top, the presentable combined view of a world.
func TerrainImage(wld *world.World) *image.RGBA {
	img := BiomeImage(wld)
	StrokeRivers(img, wld)
	for _, level := range wld.Contours.Levels {
		if level.Height != 0 {
			continue
		}
		for _, line := range level.Lines {
			strokePolyline(img.Pix, wld.W, wld.H, line.Points, coastInk)
		}
	}
	return img
}
