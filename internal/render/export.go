package render

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"islegen/pkg/world"
)

// ExportMaps writes the debug PNG set for a world into dir, one goroutine per
// map. Dir is created if missing.
func ExportMaps(dir string, wld *world.World) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("render: create export dir: %w", err)
	}
	jobs := []struct {
		name string
		draw func(*world.World) *image.RGBA
	}{
		{"map.png", TerrainImage},
		{"height.png", HeightImage},
		{"mask.png", MaskImage},
		{"biomes.png", BiomeImage},
		{"shore.png", ShoreImage},
		{"contours.png", ContourImage},
	}
	var g errgroup.Group
	for _, job := range jobs {
		g.Go(func() error {
			return WritePNG(filepath.Join(dir, job.name), job.draw(wld))
		})
	}
	return g.Wait()
}

// WritePNG encodes img into a file at path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("render: encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("render: close %s: %w", path, err)
	}
	return nil
}
