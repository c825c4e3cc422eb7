//go:build ebiten

package app

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"islegen/internal/render"
	"islegen/internal/ui"
	"islegen/internal/worldgen"
	"islegen/pkg/world"
)

// Layer identifies the base map shown under the overlays.
type Layer int

const (
	LayerBiomes Layer = iota
	LayerHeight
	LayerMask
	LayerShore

	layerCount
)

var layerNames = [...]string{
	LayerBiomes: "biomes",
	LayerHeight: "height",
	LayerMask:   "mask",
	LayerShore:  "shore",
}

func (l Layer) String() string {
	if int(l) < len(layerNames) {
		return layerNames[l]
	}
	return "unknown"
}

var layerKeys = [...]ebiten.Key{
	LayerBiomes: ebiten.KeyDigit1,
	LayerHeight: ebiten.KeyDigit2,
	LayerMask:   ebiten.KeyDigit3,
	LayerShore:  ebiten.KeyDigit4,
}

const (
	hudWidth = 240
	panSpeed = 6.0
	zoomStep = 1.25
	minZoom  = 0.5
	maxZoom  = 32.0
)

// Game is the interactive world viewer behind the ebiten.Game interface.
type Game struct {
	cfg   worldgen.Config
	seed  int64
	wld   *world.World
	log   *slog.Logger
	scale int

	layer    Layer
	layerImg [layerCount]*ebiten.Image
	overlay  *ui.Overlay
	hud      *ui.HUD

	offX, offY float64
	zoom       float64

	stages  []ui.StageTime
	elapsed time.Duration
}

// New generates the world for cfg.Seed and constructs the viewer around it.
func New(cfg worldgen.Config, scale int, log *slog.Logger) (*Game, error) {
	if scale <= 0 {
		scale = 1
	}
	if log == nil {
		log = slog.Default()
	}
	g := &Game{
		cfg:     cfg,
		log:     log,
		scale:   scale,
		overlay: ui.NewOverlay(),
		hud:     ui.NewHUD(hudWidth),
		zoom:    float64(scale),
	}
	if err := g.generate(cfg.Seed); err != nil {
		return nil, err
	}
	return g, nil
}

// generate runs the pipeline for seed and swaps the new world in. On failure
// the previous world stays on screen.
func (g *Game) generate(seed int64) error {
	cfg := g.cfg
	cfg.Seed = seed

	var timings worldgen.Timings
	gen := worldgen.Generator{Reporter: &timings}
	start := time.Now()
	wld, err := gen.Generate(context.Background(), cfg)
	if err != nil {
		return err
	}

	g.seed = seed
	g.wld = wld
	g.elapsed = time.Since(start)
	g.stages = stageTimes(&timings)
	g.rebuildLayers()
	g.log.Info("world ready",
		"seed", seed,
		"land", wld.LandFraction(),
		"islands", len(wld.Islands),
		"rivers", len(wld.Rivers),
		"elapsed", g.elapsed.Round(time.Millisecond))
	return nil
}

func stageTimes(t *worldgen.Timings) []ui.StageTime {
	stages := worldgen.Stages()
	out := make([]ui.StageTime, 0, len(stages))
	for _, s := range stages {
		out = append(out, ui.StageTime{Name: s.String(), Elapsed: t.Elapsed(s)})
	}
	return out
}

func (g *Game) rebuildLayers() {
	layers := [layerCount][]byte{
		LayerBiomes: render.BiomeImage(g.wld).Pix,
		LayerHeight: render.HeightImage(g.wld).Pix,
		LayerMask:   render.MaskImage(g.wld).Pix,
		LayerShore:  render.ShoreImage(g.wld).Pix,
	}
	for i, pix := range layers {
		img := g.layerImg[i]
		if img == nil || img.Bounds().Dx() != g.wld.W || img.Bounds().Dy() != g.wld.H {
			img = ebiten.NewImage(g.wld.W, g.wld.H)
			g.layerImg[i] = img
		}
		img.ReplacePixels(pix)
	}
}

// Update handles input and view movement.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	for i := Layer(0); i < layerCount; i++ {
		if inpututil.IsKeyJustPressed(layerKeys[i]) {
			g.layer = i
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		if err := g.generate(g.seed + 1); err != nil {
			g.log.Error("generation failed", "seed", g.seed+1, "error", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.generate(g.seed); err != nil {
			g.log.Error("generation failed", "seed", g.seed, "error", err)
		}
	}

	g.handleView()
	g.overlay.Update()
	return nil
}

func (g *Game) handleView() {
	pan := panSpeed
	if ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		pan *= 3
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		g.offX += pan
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		g.offX -= pan
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.offY += pan
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.offY -= pan
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) {
		g.zoomAt(zoomStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) {
		g.zoomAt(1 / zoomStep)
	}
	if _, wheelY := ebiten.Wheel(); wheelY != 0 {
		if wheelY > 0 {
			g.zoomAt(zoomStep)
		} else {
			g.zoomAt(1 / zoomStep)
		}
	}
	g.clampView()
}

// zoomAt rescales the view, keeping the map point under the view center
// fixed.
func (g *Game) zoomAt(factor float64) {
	old := g.zoom
	next := math.Min(math.Max(old*factor, minZoom), maxZoom)
	if next == old {
		return
	}
	cx := float64(g.viewW()) / 2
	cy := float64(g.viewH()) / 2
	g.offX = cx - (cx-g.offX)*next/old
	g.offY = cy - (cy-g.offY)*next/old
	g.zoom = next
}

func (g *Game) clampView() {
	mapW := float64(g.wld.W) * g.zoom
	mapH := float64(g.wld.H) * g.zoom
	g.offX = clampOffset(g.offX, mapW, float64(g.viewW()))
	g.offY = clampOffset(g.offY, mapH, float64(g.viewH()))
}

// clampOffset keeps the map covering the view, or centers it when it is
// smaller than the view.
func clampOffset(off, mapSpan, viewSpan float64) float64 {
	if mapSpan <= viewSpan {
		return (viewSpan - mapSpan) / 2
	}
	if off > 0 {
		return 0
	}
	if off < viewSpan-mapSpan {
		return viewSpan - mapSpan
	}
	return off
}

// Draw renders the base layer, the overlays, and the HUD panel.
func (g *Game) Draw(screen *ebiten.Image) {
	if img := g.layerImg[g.layer]; img != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(g.zoom, g.zoom)
		op.GeoM.Translate(g.offX, g.offY)
		screen.DrawImage(img, op)
	}
	g.overlay.Draw(screen, g.wld, g.offX, g.offY, g.zoom)
	g.hud.Draw(screen, g.status(), g.viewW(), g.viewH())
}

func (g *Game) status() ui.Status {
	return ui.Status{
		Seed:          g.seed,
		Width:         g.wld.W,
		Height:        g.wld.H,
		LandFraction:  g.wld.LandFraction(),
		Islands:       len(g.wld.Islands),
		Rivers:        len(g.wld.Rivers),
		ContourLevels: len(g.wld.Contours.Levels),
		Layer:         g.layer.String(),
		Stages:        g.stages,
		Elapsed:       g.elapsed,
	}
}

func (g *Game) viewW() int { return g.wld.W * g.scale }
func (g *Game) viewH() int { return g.wld.H * g.scale }

// Layout returns the logical screen size: the map view plus the HUD panel.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.viewW() + g.hud.Width(), g.viewH()
}
