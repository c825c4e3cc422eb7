//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"islegen/pkg/world"
)

// Overlay draws togglable vector layers — contours, rivers, island markers,
// shore wetness — on top of the base map.
type Overlay struct {
	showContours bool
	showRivers   bool
	showMarkers  bool
	showShore    bool

	pixel    *ebiten.Image
	shoreImg *ebiten.Image
	shoreBuf []byte
}

// NewOverlay constructs an overlay with contours and rivers visible.
func NewOverlay() *Overlay {
	o := &Overlay{showContours: true, showRivers: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update handles the overlay toggle keys.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		o.showContours = !o.showContours
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		o.showRivers = !o.showRivers
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		o.showMarkers = !o.showMarkers
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		o.showShore = !o.showShore
	}
}

// Draw renders the enabled layers. The view transform maps a map-space
// position p to screen space as (p+0.5)*zoom + offset.
func (o *Overlay) Draw(screen *ebiten.Image, wld *world.World, offX, offY, zoom float64) {
	if wld == nil || zoom <= 0 {
		return
	}
	if o.showShore {
		o.drawShore(screen, wld, offX, offY, zoom)
	}
	if o.showContours {
		o.drawContours(screen, wld, offX, offY, zoom)
	}
	if o.showRivers {
		o.drawRivers(screen, wld, offX, offY, zoom)
	}
	if o.showMarkers {
		o.drawMarkers(screen, wld, offX, offY, zoom)
	}
}

func (o *Overlay) drawContours(screen *ebiten.Image, wld *world.World, offX, offY, zoom float64) {
	for _, level := range wld.Contours.Levels {
		col := color.RGBA{R: 92, G: 74, B: 52, A: 130}
		thickness := math.Max(1, zoom*0.12)
		if level.Height == 0 {
			col = color.RGBA{R: 40, G: 34, B: 26, A: 200}
			thickness = math.Max(1, zoom*0.2)
		}
		for _, line := range level.Lines {
			o.drawPolyline(screen, line.Points, offX, offY, zoom, thickness, col)
		}
	}
}

func (o *Overlay) drawRivers(screen *ebiten.Image, wld *world.World, offX, offY, zoom float64) {
	col := color.RGBA{R: 70, G: 130, B: 220, A: 220}
	base := math.Max(1, zoom*0.3)
	for _, river := range wld.Rivers {
		pts := river.Points
		for i := 1; i < len(pts); i++ {
			thickness := base
			if i < len(river.Sediment) {
				// Stroke width follows the load carried into each point.
				thickness = base * (1 + math.Min(river.Sediment[i], 6)*0.25)
			}
			x1 := (pts[i-1][0]+0.5)*zoom + offX
			y1 := (pts[i-1][1]+0.5)*zoom + offY
			x2 := (pts[i][0]+0.5)*zoom + offX
			y2 := (pts[i][1]+0.5)*zoom + offY
			o.drawLine(screen, x1, y1, x2, y2, thickness, col)
		}
	}
}

func (o *Overlay) drawMarkers(screen *ebiten.Image, wld *world.World, offX, offY, zoom float64) {
	col := color.RGBA{R: 240, G: 80, B: 70, A: 220}
	for i, island := range wld.Islands {
		size := math.Max(3, zoom*1.5)
		if i == 0 {
			size *= 1.4
		}
		x := (float64(island.AnchorX)+0.5)*zoom + offX
		y := (float64(island.AnchorY)+0.5)*zoom + offY
		o.drawPoint(screen, x, y, size, col)
	}
}

// drawShore tints the map with the shore wetness field, strongest on open
// water and riverbeds.
func (o *Overlay) drawShore(screen *ebiten.Image, wld *world.World, offX, offY, zoom float64) {
	total := wld.W * wld.H
	cells := wld.Shore.Cells()
	if len(cells) != total || total == 0 {
		return
	}
	if o.shoreImg == nil || o.shoreImg.Bounds().Dx() != wld.W || o.shoreImg.Bounds().Dy() != wld.H {
		o.shoreImg = ebiten.NewImage(wld.W, wld.H)
		o.shoreBuf = make([]byte, 4*total)
	}

	const maxAlpha = 130.0
	tint := color.RGBA{R: 80, G: 150, B: 210}
	for i, v := range cells {
		base := i * 4
		if v <= 0 {
			o.shoreBuf[base+0] = 0
			o.shoreBuf[base+1] = 0
			o.shoreBuf[base+2] = 0
			o.shoreBuf[base+3] = 0
			continue
		}
		if v > 1 {
			v = 1
		}
		af := maxAlpha * math.Sqrt(v) / 255
		o.shoreBuf[base+0] = uint8(math.Round(float64(tint.R) * af))
		o.shoreBuf[base+1] = uint8(math.Round(float64(tint.G) * af))
		o.shoreBuf[base+2] = uint8(math.Round(float64(tint.B) * af))
		o.shoreBuf[base+3] = uint8(math.Round(255 * af))
	}
	o.shoreImg.ReplacePixels(o.shoreBuf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(zoom, zoom)
	op.GeoM.Translate(offX, offY)
	screen.DrawImage(o.shoreImg, op)
}

func (o *Overlay) drawPolyline(screen *ebiten.Image, pts []mgl64.Vec2, offX, offY, zoom, thickness float64, col color.RGBA) {
	for i := 1; i < len(pts); i++ {
		x1 := (pts[i-1][0]+0.5)*zoom + offX
		y1 := (pts[i-1][1]+0.5)*zoom + offY
		x2 := (pts[i][0]+0.5)*zoom + offX
		y2 := (pts[i][1]+0.5)*zoom + offY
		o.drawLine(screen, x1, y1, x2, y2, thickness, col)
	}
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	if o.pixel == nil || size <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	screen.DrawImage(o.pixel, op)
}
