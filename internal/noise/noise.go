// Package noise builds the bank of named noise channels that drives world
// generation. Every channel derives from the world seed and its own name, so
// the bank reproduces exactly for a given seed no matter which channels are
// sampled, or in which order.
package noise

import (
	"fmt"
	"math"
	"sync"

	"github.com/aquilax/go-perlin"
	opensimplex "github.com/ojrac/opensimplex-go"

	"islegen/pkg/grid"
	"islegen/pkg/rng"
)

// Channel names understood by the bank.
const (
	ChannelIsland = "island"
	ChannelHeight = "height"
	ChannelBiomes = "biomes"
	ChannelGrass  = "grass"
)

// channelOrder fixes seeding order. Map iteration must never decide it.
var channelOrder = []string{ChannelIsland, ChannelHeight, ChannelBiomes, ChannelGrass}

// Field is a scalar noise field sampled in map space. Samples are in [0, 1].
type Field interface {
	Sample(x, y float64) float64
}

// Params configures one fractal channel.
type Params struct {
	// Octaves is the number of fractal layers.
	Octaves int `json:"octaves"`
	// Persistence scales each octave's amplitude relative to the previous.
	Persistence float64 `json:"persistence"`
	// Lacunarity scales each octave's frequency relative to the previous.
	Lacunarity float64 `json:"lacunarity"`
	// Scale is the base feature size in map cells.
	Scale float64 `json:"scale"`
}

// GrassParams configures the vegetation scatter channel.
type GrassParams struct {
	Scale float64 `json:"scale"`
}

// WarpParams configures the vector warp channel.
type WarpParams struct {
	// Scale is the warp feature size in map cells.
	Scale float64 `json:"scale"`
	// Dist is the maximum offset in map cells along each axis.
	Dist    float64 `json:"dist"`
	Octaves int     `json:"octaves"`
}

// Config collects the per-channel settings for one bank.
type Config struct {
	Island Params      `json:"island"`
	Height Params      `json:"height"`
	Biomes Params      `json:"biomes"`
	Grass  GrassParams `json:"grass"`
	Warp   WarpParams  `json:"warp"`
}

// DefaultConfig returns the tuned channel baseline.
func DefaultConfig() Config {
	return Config{
		Island: Params{Octaves: 5, Persistence: 0.5, Lacunarity: 2.0, Scale: 64},
		Height: Params{Octaves: 5, Persistence: 0.5, Lacunarity: 2.0, Scale: 160},
		Biomes: Params{Octaves: 5, Persistence: 0.5, Lacunarity: 2.0, Scale: 96},
		Grass:  GrassParams{Scale: 8},
		Warp:   WarpParams{Scale: 96, Dist: 24, Octaves: 4},
	}
}

// Bank owns every noise channel for one world build.
type Bank struct {
	fields map[string]Field
	warp   *Warp
}

// NewBank derives all channels from the seed. Channel sub-seeds mix the
// channel name, so adding a channel never shifts the others.
func NewBank(seed int64, cfg Config) *Bank {
	root := rng.New(seed)
	params := map[string]Params{
		ChannelIsland: cfg.Island,
		ChannelHeight: cfg.Height,
		ChannelBiomes: cfg.Biomes,
	}

	b := &Bank{fields: make(map[string]Field, len(channelOrder))}
	for _, name := range channelOrder {
		r := root.Sub("noise/"+name, 0)
		if name == ChannelGrass {
			b.fields[name] = newPerlinField(r, cfg.Grass)
			continue
		}
		b.fields[name] = newFBM(r, params[name])
	}
	b.warp = newWarp(root.Sub("noise/warp", 0), cfg.Warp)
	return b
}

// Channel returns the named scalar field.
func (b *Bank) Channel(name string) (Field, error) {
	f, ok := b.fields[name]
	if !ok {
		return nil, fmt.Errorf("noise: unknown channel %q", name)
	}
	return f, nil
}

// Sample evaluates the named channel at (x, y).
func (b *Bank) Sample(name string, x, y float64) (float64, error) {
	f, err := b.Channel(name)
	if err != nil {
		return 0, err
	}
	return f.Sample(x, y), nil
}

// WarpAt returns the height-warp offset in cells for a map position.
func (b *Bank) WarpAt(x, y float64) (dx, dy float64) {
	return b.warp.At(x, y)
}

// Fill samples the named channel across g, stepping the sample position by
// step cells per grid cell. Rows are filled in parallel; the output is
// identical for any worker count.
func (b *Bank) Fill(name string, g *grid.Float, step float64, workers int) error {
	f, err := b.Channel(name)
	if err != nil {
		return err
	}
	Fill(f, g, step, workers)
	return nil
}

// Fill samples an arbitrary field across g with the given cell step.
func Fill(f Field, g *grid.Float, step float64, workers int) {
	if workers <= 0 {
		workers = 1
	}
	cells := g.Cells()

	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	for y := 0; y < g.H; y++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(y int) {
			defer wg.Done()
			row := cells[y*g.W : (y+1)*g.W]
			fy := float64(y) * step
			for x := range row {
				row[x] = f.Sample(float64(x)*step, fy)
			}
			<-sem
		}(y)
	}
	wg.Wait()
}

// octave is one fractal layer: an independent simplex source with its own
// domain rotation and offset, so layers do not share axial artifacts.
type octave struct {
	source   opensimplex.Noise
	freq     float64
	amp      float64
	sin, cos float64
	offX     float64
	offY     float64
}

// FBM is fractal Brownian motion over OpenSimplex sources.
type FBM struct {
	octaves []octave
	norm    float64
}

func newFBM(r *rng.RNG, p Params) *FBM {
	if p.Octaves < 1 {
		p.Octaves = 1
	}
	scale := p.Scale
	if scale <= 0 {
		scale = 1
	}

	freq := 1 / scale
	amp := 1.0
	total := 0.0
	octaves := make([]octave, p.Octaves)
	for i := range octaves {
		angle := r.Range(0, 2*math.Pi)
		octaves[i] = octave{
			source: opensimplex.NewNormalized(r.Int64()),
			freq:   freq,
			amp:    amp,
			sin:    math.Sin(angle),
			cos:    math.Cos(angle),
			offX:   r.Range(-10, 10),
			offY:   r.Range(-10, 10),
		}
		total += amp
		freq *= p.Lacunarity
		amp *= p.Persistence
	}
	return &FBM{octaves: octaves, norm: 1 / total}
}

// Sample evaluates the fractal sum at (x, y), normalized into [0, 1].
func (f *FBM) Sample(x, y float64) float64 {
	sum := 0.0
	for i := range f.octaves {
		o := &f.octaves[i]
		rx := (x*o.cos-y*o.sin)*o.freq + o.offX
		ry := (x*o.sin+y*o.cos)*o.freq + o.offY
		sum += o.source.Eval2(rx, ry) * o.amp
	}
	return sum * f.norm
}

// Perlin character constants shared by every scatter field.
const (
	perlinAlpha   = 2
	perlinBeta    = 2
	perlinOctaves = 3
)

// PerlinField is the high-frequency scatter channel. Perlin with its built-in
// octaves is cheaper per sample than the fractal stack and reads better at
// vegetation scale.
type PerlinField struct {
	p     *perlin.Perlin
	scale float64
}

func newPerlinField(r *rng.RNG, cfg GrassParams) *PerlinField {
	scale := cfg.Scale
	if scale <= 0 {
		scale = 1
	}
	return &PerlinField{
		p:     perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, r.Int64()),
		scale: scale,
	}
}

// Sample evaluates the field at (x, y), normalized into [0, 1].
func (f *PerlinField) Sample(x, y float64) float64 {
	v := (f.p.Noise2D(x/f.scale, y/f.scale) + 1) / 2
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Warp is the vector channel that offsets height sampling positions. Both
// components are independent fractal fields; a sample of 0.5 maps to zero
// offset.
type Warp struct {
	x, y Field
	dist float64
}

func newWarp(r *rng.RNG, cfg WarpParams) *Warp {
	p := Params{Octaves: cfg.Octaves, Persistence: 0.5, Lacunarity: 2.0, Scale: cfg.Scale}
	if p.Octaves < 1 {
		p.Octaves = 4
	}
	return &Warp{
		x:    newFBM(r.Sub("x", 0), p),
		y:    newFBM(r.Sub("y", 0), p),
		dist: cfg.Dist,
	}
}

// At returns the offset in cells for a map position.
func (w *Warp) At(x, y float64) (dx, dy float64) {
	dx = (w.x.Sample(x, y) - 0.5) * 2 * w.dist
	dy = (w.y.Sample(x, y) - 0.5) * 2 * w.dist
	return dx, dy
}
