package store

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/google/uuid"

	"islegen/internal/worldgen"
	"islegen/pkg/grid"
	"islegen/pkg/world"
)

func smallConfig() worldgen.Config {
	cfg := worldgen.DefaultConfig()
	cfg.Size = 64
	cfg.Workers = 2
	cfg.Island.MinTotalArea = 0.2
	cfg.Island.MaxTotalArea = 0.6
	cfg.Island.MaxAttempts = 32
	cfg.Rivers.Droplets = 100
	return cfg
}

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "worlds.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openStore(t)

	cfg := smallConfig()
	cfg.Seed = 808
	w, err := worldgen.Generate(context.Background(), cfg)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if err := s.Save(w); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load(w.ID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got.ID != w.ID || got.Seed != w.Seed || got.W != w.W || got.H != w.H {
		t.Fatalf("header diverged: %v/%d/%dx%d vs %v/%d/%dx%d",
			got.ID, got.Seed, got.W, got.H, w.ID, w.Seed, w.W, w.H)
	}
	if !slices.Equal(got.Height.Cells(), w.Height.Cells()) {
		t.Fatal("height field did not round-trip")
	}
	if !slices.Equal(got.Mask.Cells(), w.Mask.Cells()) {
		t.Fatal("land mask did not round-trip")
	}
	if !slices.Equal(got.Distance.Cells(), w.Distance.Cells()) {
		t.Fatal("distance field did not round-trip")
	}
	if !slices.Equal(got.Biomes.Cells(), w.Biomes.Cells()) {
		t.Fatal("biome grid did not round-trip")
	}
	if !slices.Equal(got.Grass.Cells(), w.Grass.Cells()) {
		t.Fatal("grass channel did not round-trip")
	}
	if !slices.Equal(got.Shore.Cells(), w.Shore.Cells()) {
		t.Fatal("shore map did not round-trip")
	}
	if !slices.Equal(got.Islands, w.Islands) {
		t.Fatal("island inventory did not round-trip")
	}
	if len(got.Rivers) != len(w.Rivers) {
		t.Fatalf("river count diverged: %d vs %d", len(got.Rivers), len(w.Rivers))
	}
	for i := range got.Rivers {
		if !slices.Equal(got.Rivers[i].Points, w.Rivers[i].Points) {
			t.Fatalf("river %d did not round-trip", i)
		}
		if !slices.Equal(got.Rivers[i].Sediment, w.Rivers[i].Sediment) {
			t.Fatalf("river %d sediment did not round-trip", i)
		}
	}
	if len(got.Contours.Levels) != len(w.Contours.Levels) {
		t.Fatalf("contour levels diverged: %d vs %d", len(got.Contours.Levels), len(w.Contours.Levels))
	}
	for i := range got.Contours.Levels {
		if got.Contours.Levels[i].Height != w.Contours.Levels[i].Height {
			t.Fatalf("contour level %d height diverged", i)
		}
		if len(got.Contours.Levels[i].Lines) != len(w.Contours.Levels[i].Lines) {
			t.Fatalf("contour count at level %d diverged", i)
		}
	}
}

func TestLoadMissingWorld(t *testing.T) {
	s := openStore(t)

	if _, err := s.Load(uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestHasAndDelete(t *testing.T) {
	s := openStore(t)

	w := tinyWorld(uuid.New())
	if err := s.Save(w); err != nil {
		t.Fatalf("save: %v", err)
	}

	ok, err := s.Has(w.ID)
	if err != nil || !ok {
		t.Fatalf("expected world to be cached, ok=%v err=%v", ok, err)
	}

	if err := s.Delete(w.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	ok, err = s.Has(w.ID)
	if err != nil || ok {
		t.Fatalf("expected world to be gone, ok=%v err=%v", ok, err)
	}
	if _, err := s.Load(w.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	// Deleting again is a no-op.
	if err := s.Delete(w.ID); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestLoadOrGeneratePrefersCache(t *testing.T) {
	s := openStore(t)
	cfg := smallConfig()
	cfg.Seed = 4242

	// Plant a marker world under the config's ID; a cache hit returns it
	// instead of generating at the configured size.
	id := world.DeriveID(cfg.Seed, cfg.Digest())
	if err := s.Save(tinyWorld(id)); err != nil {
		t.Fatalf("save marker: %v", err)
	}

	w, err := s.LoadOrGenerate(context.Background(), cfg, worldgen.Generator{})
	if err != nil {
		t.Fatalf("load or generate: %v", err)
	}
	if w.W != 4 {
		t.Fatalf("expected the cached marker world, got size %d", w.W)
	}

	if err := s.Delete(id); err != nil {
		t.Fatalf("delete marker: %v", err)
	}

	w, err = s.LoadOrGenerate(context.Background(), cfg, worldgen.Generator{})
	if err != nil {
		t.Fatalf("generate on miss: %v", err)
	}
	if w.W != cfg.Size {
		t.Fatalf("expected a generated world of size %d, got %d", cfg.Size, w.W)
	}
	if w.ID != id {
		t.Fatalf("generated world ID %s does not match config ID %s", w.ID, id)
	}

	ok, err := s.Has(id)
	if err != nil || !ok {
		t.Fatalf("expected generated world to be cached, ok=%v err=%v", ok, err)
	}
}

// tinyWorld builds a minimal valid world for store tests.
func tinyWorld(id uuid.UUID) *world.World {
	const n = 4
	return &world.World{
		ID:       id,
		Seed:     1,
		W:        n,
		H:        n,
		Height:   grid.New[float64](n, n),
		Mask:     grid.New[bool](n, n),
		Distance: grid.New[float64](n, n),
		Biomes:   grid.New[world.Biome](n, n),
		Grass:    grid.New[float64](n, n),
		Shore:    grid.New[float64](n, n),
	}
}
