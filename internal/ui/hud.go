//go:build ebiten

package ui

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the world summary panel to the right of the map view.
type HUD struct {
	width      int
	panel      *ebiten.Image
	lastHeight int
}

// NewHUD constructs a HUD with the given panel width.
func NewHUD(width int) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{width: width}
}

// Width returns the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Draw paints the panel anchored at offsetX with the given height.
func (h *HUD) Draw(screen *ebiten.Image, st Status, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dx() != h.width || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})

	face := basicfont.Face7x13
	heading := color.RGBA{R: 200, G: 200, B: 210, A: 255}
	body := color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dim := color.RGBA{R: 150, G: 150, B: 160, A: 255}

	y := panelPadding + headerBaseline
	text.Draw(h.panel, "island world", face, panelPadding, y, heading)
	y += infoSpacing

	lines := []string{
		fmt.Sprintf("seed     %d", st.Seed),
		fmt.Sprintf("size     %dx%d", st.Width, st.Height),
		fmt.Sprintf("land     %.1f%%", st.LandFraction*100),
		fmt.Sprintf("islands  %d", st.Islands),
		fmt.Sprintf("rivers   %d", st.Rivers),
		fmt.Sprintf("contours %d levels", st.ContourLevels),
		fmt.Sprintf("layer    %s", st.Layer),
	}
	for _, line := range lines {
		text.Draw(h.panel, line, face, panelPadding, y, body)
		y += lineSpacing
	}

	if len(st.Stages) > 0 {
		y += lineSpacing / 2
		total := fmt.Sprintf("generated in %s", st.Elapsed.Round(time.Millisecond))
		text.Draw(h.panel, total, face, panelPadding, y, heading)
		y += lineSpacing
		for _, stage := range st.Stages {
			line := fmt.Sprintf("  %-10s %s", stage.Name, stage.Elapsed.Round(time.Millisecond))
			text.Draw(h.panel, line, face, panelPadding, y, body)
			y += lineSpacing
		}
	}

	keysY := height - panelPadding - len(hudKeys)*lineSpacing
	if keysY > y {
		y = keysY
	}
	for _, line := range hudKeys {
		text.Draw(h.panel, line, face, panelPadding, y, dim)
		y += lineSpacing
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

var hudKeys = []string{
	"1-4  base layer",
	"c/v  contours/rivers",
	"m/b  markers/wetness",
	"n    next seed",
	"r    regenerate",
	"wasd pan  +/- zoom",
	"q    quit",
}

const (
	panelPadding   = 12
	headerBaseline = 18
	lineSpacing    = 16
	infoSpacing    = 28
)
