// Package store caches generated worlds in a LevelDB database keyed by
// world ID. Because IDs derive from seed and config, a cache hit is exactly
// the world generation would have produced.
package store

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/syndtr/goleveldb/leveldb"

	"islegen/internal/worldgen"
	"islegen/pkg/grid"
	"islegen/pkg/world"
)

// ErrNotFound reports that no world is cached under the requested ID.
var ErrNotFound = errors.New("store: world not found")

// Store is a world cache backed by a LevelDB database on disk.
type Store struct {
	db *leveldb.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func worldKey(id uuid.UUID) []byte {
	return []byte("world/" + id.String())
}

// Save writes a snapshot of the world under its ID, replacing any previous
// snapshot.
func (s *Store) Save(w *world.World) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(snapshot(w)); err != nil {
		return fmt.Errorf("store: encode world %s: %w", w.ID, err)
	}
	if err := s.db.Put(worldKey(w.ID), buf.Bytes(), nil); err != nil {
		return fmt.Errorf("store: save world %s: %w", w.ID, err)
	}
	return nil
}

// Load reads the world cached under id. A missing entry reports ErrNotFound.
func (s *Store) Load(id uuid.UUID) (*world.World, error) {
	data, err := s.db.Get(worldKey(id), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: load world %s: %w", id, err)
	}

	var snap worldSnapshot
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&snap); err != nil {
		return nil, fmt.Errorf("store: decode world %s: %w", id, err)
	}
	return snap.restore()
}

// Has reports whether a world is cached under id.
func (s *Store) Has(id uuid.UUID) (bool, error) {
	ok, err := s.db.Has(worldKey(id), nil)
	if err != nil {
		return false, fmt.Errorf("store: probe world %s: %w", id, err)
	}
	return ok, nil
}

// Delete removes the world cached under id. Deleting a missing entry is not
// an error.
func (s *Store) Delete(id uuid.UUID) error {
	if err := s.db.Delete(worldKey(id), nil); err != nil {
		return fmt.Errorf("store: delete world %s: %w", id, err)
	}
	return nil
}

// LoadOrGenerate returns the cached world for the configuration, running gen
// and caching its result on a miss.
func (s *Store) LoadOrGenerate(ctx context.Context, cfg worldgen.Config, gen worldgen.Generator) (*world.World, error) {
	id := world.DeriveID(cfg.Seed, cfg.Digest())

	w, err := s.Load(id)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	w, err = gen.Generate(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := s.Save(w); err != nil {
		return nil, err
	}
	return w, nil
}

// worldSnapshot is the gob image of a world. Grids flatten to bare slices
// with explicit dimensions so the wire form has no unexported fields.
type worldSnapshot struct {
	ID   uuid.UUID
	Seed int64
	W, H int

	Height   []float64
	Mask     []bool
	Distance []float64
	Biomes   []world.Biome
	Grass    []float64
	Shore    []float64

	Islands  []world.Island
	Rivers   []world.RiverPath
	Contours world.ContourSet
}

func snapshot(w *world.World) *worldSnapshot {
	return &worldSnapshot{
		ID:       w.ID,
		Seed:     w.Seed,
		W:        w.W,
		H:        w.H,
		Height:   w.Height.Cells(),
		Mask:     w.Mask.Cells(),
		Distance: w.Distance.Cells(),
		Biomes:   w.Biomes.Cells(),
		Grass:    w.Grass.Cells(),
		Shore:    w.Shore.Cells(),
		Islands:  w.Islands,
		Rivers:   w.Rivers,
		Contours: w.Contours,
	}
}

func (s *worldSnapshot) restore() (*world.World, error) {
	if s.W <= 0 || s.H <= 0 {
		return nil, fmt.Errorf("store: snapshot %s has size %dx%d", s.ID, s.W, s.H)
	}
	n := s.W * s.H
	for name, got := range map[string]int{
		"height":   len(s.Height),
		"mask":     len(s.Mask),
		"distance": len(s.Distance),
		"biomes":   len(s.Biomes),
		"grass":    len(s.Grass),
		"shore":    len(s.Shore),
	} {
		if got != n {
			return nil, fmt.Errorf("store: snapshot %s %s layer has %d cells, want %d", s.ID, name, got, n)
		}
	}

	return &world.World{
		ID:       s.ID,
		Seed:     s.Seed,
		W:        s.W,
		H:        s.H,
		Height:   grid.FromCells(s.W, s.H, s.Height),
		Mask:     grid.FromCells(s.W, s.H, s.Mask),
		Distance: grid.FromCells(s.W, s.H, s.Distance),
		Biomes:   grid.FromCells(s.W, s.H, s.Biomes),
		Grass:    grid.FromCells(s.W, s.H, s.Grass),
		Shore:    grid.FromCells(s.W, s.H, s.Shore),
		Islands:  s.Islands,
		Rivers:   s.Rivers,
		Contours: s.Contours,
	}, nil
}
