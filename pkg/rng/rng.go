// Package rng provides the deterministic random streams that drive world
// generation. Every consumer derives a named sub-stream from the world seed,
// so adding or reordering consumers never perturbs unrelated output.
package rng

import (
	"hash/fnv"
	"math/rand/v2"
)

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	seed   int64
	stream uint64
	r      *rand.Rand
}

// New creates a deterministic RNG using the provided seed.
func New(seed int64) *RNG {
	return &RNG{seed: seed, r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Sub derives an independent stream from this RNG's lineage, a label, and an
// index. The derivation depends only on the root seed and the chain of
// (label, n) pairs, never on how much the parent has already been consumed.
func (r *RNG) Sub(label string, n uint64) *RNG {
	h := fnv.New64a()
	h.Write([]byte(label))
	stream := (r.stream * 0x100000001b3) ^ h.Sum64() ^ (n+1)*0x9e3779b97f4a7c15
	return &RNG{
		seed:   r.seed,
		stream: stream,
		r:      rand.New(rand.NewPCG(uint64(r.seed), stream)),
	}
}

// Seed returns the seed this RNG was created from.
func (r *RNG) Seed() int64 { return r.seed }

// Float64 returns a uniform value in [0, 1).
func (r *RNG) Float64() float64 { return r.r.Float64() }

// Range returns a uniform value in [min, max).
func (r *RNG) Range(min, max float64) float64 {
	return min + (max-min)*r.r.Float64()
}

// IntN returns a uniform int in [0, n).
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// Int64 returns a uniform int64 across the full range.
func (r *RNG) Int64() int64 { return int64(r.r.Uint64()) }

// Bool reports true with probability p.
func (r *RNG) Bool(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.r.Float64() < p
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
