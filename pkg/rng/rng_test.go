package rng

import "testing"

func TestSameSeedSameSequence(t *testing.T) {
	a := New(1337)
	b := New(1337)
	for i := 0; i < 100; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("sequences diverged at draw %d", i)
		}
	}
}

func TestSubStreamsIndependent(t *testing.T) {
	root := New(42)

	// Consuming the parent must not affect derived streams.
	for i := 0; i < 17; i++ {
		root.Float64()
	}
	a := root.Sub("island", 0)

	fresh := New(42)
	b := fresh.Sub("island", 0)

	for i := 0; i < 100; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("sub-stream depends on parent consumption (draw %d)", i)
		}
	}
}

func TestSubStreamsDistinct(t *testing.T) {
	root := New(7)
	a := root.Sub("island", 0)
	b := root.Sub("rivers", 0)
	c := root.Sub("island", 1)

	same := 0
	for i := 0; i < 64; i++ {
		va := a.Float64()
		vb := b.Float64()
		vc := c.Float64()
		if va == vb || va == vc {
			same++
		}
	}
	if same > 0 {
		t.Fatalf("expected distinct streams, got %d colliding draws", same)
	}
}

func TestNestedSubStreamsDistinct(t *testing.T) {
	root := New(11)
	// The same leaf label under different parents must not collide.
	a := root.Sub("noise/warp", 0).Sub("x", 0)
	b := root.Sub("rivers", 0).Sub("x", 0)
	c := root.Sub("x", 0)

	for i := 0; i < 64; i++ {
		va, vb, vc := a.Float64(), b.Float64(), c.Float64()
		if va == vb || va == vc || vb == vc {
			t.Fatalf("nested sub-streams collide at draw %d", i)
		}
	}
}

func TestBoolExtremes(t *testing.T) {
	r := New(1)
	for i := 0; i < 32; i++ {
		if r.Bool(0) {
			t.Fatal("Bool(0) must never be true")
		}
		if !r.Bool(1) {
			t.Fatal("Bool(1) must always be true")
		}
	}
}

func TestRangeBounds(t *testing.T) {
	r := New(99)
	for i := 0; i < 1000; i++ {
		v := r.Range(-3, 5)
		if v < -3 || v >= 5 {
			t.Fatalf("Range(-3, 5) produced %v", v)
		}
	}
}

func TestIntNZeroSafe(t *testing.T) {
	r := New(3)
	if got := r.IntN(0); got != 0 {
		t.Fatalf("IntN(0) = %d, want 0", got)
	}
	if got := r.IntN(-5); got != 0 {
		t.Fatalf("IntN(-5) = %d, want 0", got)
	}
}
