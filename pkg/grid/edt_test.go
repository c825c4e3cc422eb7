package grid

import (
	"math"
	"testing"
)

func TestEDTSingleTarget(t *testing.T) {
	g := New[bool](7, 7)
	g.Set(3, 3, true)

	d := EDT(g, true)

	if got := d.At(3, 3); got != 0 {
		t.Fatalf("distance at target = %v, want 0", got)
	}
	if got := d.At(4, 3); !almostEqual(got, 1) {
		t.Fatalf("distance one step away = %v, want 1", got)
	}
	if got := d.At(5, 4); !almostEqual(got, math.Sqrt(5)) {
		t.Fatalf("distance at (5,4) = %v, want sqrt(5)", got)
	}
	if got := d.At(0, 0); !almostEqual(got, 3*math.Sqrt2) {
		t.Fatalf("corner distance = %v, want 3*sqrt(2)", got)
	}
}

func TestEDTPicksNearestOfTwoTargets(t *testing.T) {
	g := New[bool](9, 1)
	g.Set(0, 0, true)
	g.Set(8, 0, true)

	d := EDT(g, true)
	if got := d.At(3, 0); !almostEqual(got, 3) {
		t.Fatalf("d(3) = %v, want 3", got)
	}
	if got := d.At(6, 0); !almostEqual(got, 2) {
		t.Fatalf("d(6) = %v, want 2", got)
	}
	if got := d.At(4, 0); !almostEqual(got, 4) {
		t.Fatalf("d(4) = %v, want 4", got)
	}
}

func TestSignedDistanceSigns(t *testing.T) {
	// A 4x4 land block centered in a 12x12 sea.
	mask := New[bool](12, 12)
	for y := 4; y < 8; y++ {
		for x := 4; x < 8; x++ {
			mask.Set(x, y, true)
		}
	}

	sd := SignedDistance(mask, 128)

	if got := sd.At(5, 5); got <= 0 {
		t.Fatalf("interior land distance = %v, want > 0", got)
	}
	if got := sd.At(0, 0); got >= 0 {
		t.Fatalf("ocean distance = %v, want < 0", got)
	}
	// A land cell on the block edge is one step from water.
	if got := sd.At(4, 5); !almostEqual(got, 1) {
		t.Fatalf("shore land distance = %v, want 1", got)
	}
	// The water cell next to the block is one step from land.
	if got := sd.At(3, 5); !almostEqual(got, -1) {
		t.Fatalf("shore water distance = %v, want -1", got)
	}
}

func TestSignedDistanceCapsOcean(t *testing.T) {
	mask := New[bool](64, 64)
	mask.Set(63, 63, true)

	sd := SignedDistance(mask, 8)
	if got := sd.At(0, 0); got != -8 {
		t.Fatalf("far ocean = %v, want cap at -8", got)
	}
}

func TestSignedDistanceDegenerate(t *testing.T) {
	allWater := New[bool](4, 4)
	sd := SignedDistance(allWater, 16)
	if got := sd.At(2, 2); got != -16 {
		t.Fatalf("all-water field = %v, want -16", got)
	}

	allLand := New[bool](4, 4)
	allLand.Fill(true)
	sd = SignedDistance(allLand, 16)
	if got := sd.At(2, 2); got != 16 {
		t.Fatalf("all-land field = %v, want 16", got)
	}
}
