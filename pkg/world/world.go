// Package world defines the immutable bundle a generation run produces. The
// bundle is assembled once and never mutated afterwards, so any number of
// goroutines may read it without locking.
package world

import (
	"encoding/binary"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"islegen/pkg/grid"
)

// Namespace anchors the deterministic world and island UUIDs.
var Namespace = uuid.MustParse("9f2e7b1c-4a53-4d7e-9c61-2b8a0d3f5e84")

// World is a complete generated island world.
type World struct {
	ID   uuid.UUID
	Seed int64
	W, H int

	// Height holds the terrain elevation per cell; negative values are below
	// sea level.
	Height *grid.Float
	// Mask marks land cells.
	Mask *grid.Bool
	// Distance is the signed shore distance in cells: positive inland,
	// negative offshore.
	Distance *grid.Float
	// Biomes classifies every cell.
	Biomes *grid.Grid[Biome]
	// Grass is the vegetation density channel used by scatter passes.
	Grass *grid.Float
	// Shore is the blurred wetness map: 1 on open water and riverbeds,
	// fading inland.
	Shore *grid.Float

	// Islands lists every landmass, largest first.
	Islands []Island
	// Rivers holds the carved river polylines in map space.
	Rivers []RiverPath
	// Contours holds the extracted topographic iso-lines.
	Contours ContourSet
}

// Island describes one connected landmass.
type Island struct {
	ID uuid.UUID
	// Area is the landmass size in cells.
	Area int
	// AnchorX, AnchorY locate the island's first cell in scan order.
	AnchorX, AnchorY int
}

// RiverPath is the downhill trace of one river, ordered source to mouth.
type RiverPath struct {
	Points []mgl64.Vec2
	// Sediment is the load the droplet carried on arrival at each point,
	// aligned with Points. The viewer scales river stroke width by it.
	Sediment []float64
}

// Contour is a single iso-line polyline in map space.
type Contour struct {
	Points []mgl64.Vec2
	// Closed marks loops; open contours start and end on the map border.
	Closed bool
}

// ContourLevel groups the contours extracted at one height.
type ContourLevel struct {
	Height float64
	Lines  []Contour
}

// ContourSet holds every extracted level, ascending by height.
type ContourSet struct {
	Levels []ContourLevel
}

// DeriveID computes the deterministic world UUID for a seed and a config
// digest. The same inputs always produce the same ID.
func DeriveID(seed int64, configDigest []byte) uuid.UUID {
	buf := make([]byte, 8, 8+len(configDigest))
	binary.BigEndian.PutUint64(buf, uint64(seed))
	return uuid.NewSHA1(Namespace, append(buf, configDigest...))
}

// DeriveIslandID computes the deterministic UUID for the island at the given
// size rank within a world.
func DeriveIslandID(worldID uuid.UUID, rank int) uuid.UUID {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(rank))
	return uuid.NewSHA1(worldID, buf[:])
}

// HeightAt samples the height field bilinearly at a map-space position.
func (w *World) HeightAt(x, y float64) float64 {
	return grid.Bilinear(w.Height, x, y)
}

// GrassAt samples the vegetation density channel bilinearly.
func (w *World) GrassAt(x, y float64) float64 {
	return grid.Bilinear(w.Grass, x, y)
}

// DistanceAt samples the signed shore distance bilinearly.
func (w *World) DistanceAt(x, y float64) float64 {
	return grid.Bilinear(w.Distance, x, y)
}

// ShoreAt samples the shore wetness map bilinearly.
func (w *World) ShoreAt(x, y float64) float64 {
	return grid.Bilinear(w.Shore, x, y)
}

// BiomeAt returns the biome of the cell containing the position, clamped to
// the map edges.
func (w *World) BiomeAt(x, y int) Biome {
	return w.Biomes.Clamped(x, y)
}

// IsLand reports whether the cell belongs to an island.
func (w *World) IsLand(x, y int) bool {
	return w.Mask.Clamped(x, y)
}

// LandFraction returns the fraction of cells that are land.
func (w *World) LandFraction() float64 {
	return float64(grid.Count(w.Mask)) / float64(w.W*w.H)
}
