package grid

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestIndexRowMajor(t *testing.T) {
	g := New[float64](4, 3)
	if got := g.Index(2, 1); got != 6 {
		t.Fatalf("Index(2,1) = %d, want 6", got)
	}
	g.Set(3, 2, 7.5)
	if got := g.Cells()[11]; got != 7.5 {
		t.Fatalf("backing slice not row-major: cells[11] = %v", got)
	}
}

func TestClampedReadsEdges(t *testing.T) {
	g := FromCells(2, 2, []float64{1, 2, 3, 4})
	cases := []struct {
		x, y int
		want float64
	}{
		{-5, 0, 1},
		{0, -5, 1},
		{10, 0, 2},
		{0, 10, 3},
		{10, 10, 4},
		{1, 1, 4},
	}
	for _, c := range cases {
		if got := g.Clamped(c.x, c.y); got != c.want {
			t.Fatalf("Clamped(%d,%d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestBilinearInterpolates(t *testing.T) {
	g := FromCells(2, 2, []float64{0, 1, 2, 3})

	if got := Bilinear(g, 0, 0); !almostEqual(got, 0) {
		t.Fatalf("Bilinear at cell center = %v, want 0", got)
	}
	if got := Bilinear(g, 0.5, 0); !almostEqual(got, 0.5) {
		t.Fatalf("Bilinear midway along top row = %v, want 0.5", got)
	}
	if got := Bilinear(g, 0.5, 0.5); !almostEqual(got, 1.5) {
		t.Fatalf("Bilinear at patch center = %v, want 1.5", got)
	}
	// Outside the grid the field extends flat.
	if got := Bilinear(g, -3, -3); !almostEqual(got, 0) {
		t.Fatalf("Bilinear outside = %v, want clamp to corner 0", got)
	}
	if got := Bilinear(g, 9, 9); !almostEqual(got, 3) {
		t.Fatalf("Bilinear outside = %v, want clamp to corner 3", got)
	}
}

func TestGradientOnRamp(t *testing.T) {
	// Height rises by 2 per cell in x, is constant in y.
	g := FromFunc(8, 8, func(x, y int) float64 { return float64(2 * x) })
	gx, gy := Gradient(g, 4, 4)
	if !almostEqual(gx, 2) {
		t.Fatalf("gx = %v, want 2", gx)
	}
	if !almostEqual(gy, 0) {
		t.Fatalf("gy = %v, want 0", gy)
	}
}

func TestMinMaxAndMapRange(t *testing.T) {
	g := FromCells(2, 2, []float64{-2, 0, 6, 4})
	min, max := MinMax(g)
	if min != -2 || max != 6 {
		t.Fatalf("MinMax = (%v, %v), want (-2, 6)", min, max)
	}

	MapRange(g, -2, 6, 0, 1)
	want := []float64{0, 0.25, 1, 0.75}
	for i, v := range g.Cells() {
		if !almostEqual(v, want[i]) {
			t.Fatalf("MapRange cell %d = %v, want %v", i, v, want[i])
		}
	}
}

func TestBoxBlurFlattensSpike(t *testing.T) {
	g := New[float64](5, 5)
	g.Set(2, 2, 25)

	sumBefore := 0.0
	for _, v := range g.Cells() {
		sumBefore += v
	}

	BoxBlur(g, 1)

	center := g.At(2, 2)
	if center >= 25 || center <= 0 {
		t.Fatalf("blur left spike at %v", center)
	}
	if corner := g.At(0, 0); corner != 0 {
		t.Fatalf("radius-1 blur must not reach the corner, got %v", corner)
	}
	// An interior spike loses nothing to the edges.
	sumAfter := 0.0
	for _, v := range g.Cells() {
		sumAfter += v
	}
	if !almostEqual(sumBefore, sumAfter) {
		t.Fatalf("blur changed total mass: %v -> %v", sumBefore, sumAfter)
	}
}

func TestThresholdStrict(t *testing.T) {
	g := FromCells(3, 1, []float64{0.3, 0.5, 0.7})
	mask := Threshold(g, 0.5)
	want := []bool{false, false, true}
	for i, v := range mask.Cells() {
		if v != want[i] {
			t.Fatalf("Threshold cell %d = %v, want %v", i, v, want[i])
		}
	}
}

func TestFillHolesKeepsOuterWater(t *testing.T) {
	// 5x5 ring of land with a one-cell lake inside.
	g := New[bool](5, 5)
	for y := 1; y <= 3; y++ {
		for x := 1; x <= 3; x++ {
			g.Set(x, y, true)
		}
	}
	g.Set(2, 2, false)

	FillHoles(g)

	if !g.At(2, 2) {
		t.Fatal("interior lake should have been filled")
	}
	if g.At(0, 0) || g.At(4, 4) {
		t.Fatal("outer ocean must stay water")
	}
	if !g.At(1, 1) {
		t.Fatal("land must stay land")
	}
}

func TestComponentsScanOrderAndAreas(t *testing.T) {
	// Two blobs: a 2x2 square and a lone cell.
	g := New[bool](6, 4)
	g.Set(1, 1, true)
	g.Set(2, 1, true)
	g.Set(1, 2, true)
	g.Set(2, 2, true)
	g.Set(4, 3, true)

	labels, comps := Components(g)
	if len(comps) != 2 {
		t.Fatalf("got %d components, want 2", len(comps))
	}
	if comps[0].Area != 4 || comps[0].AnchorX != 1 || comps[0].AnchorY != 1 {
		t.Fatalf("first component = %+v", comps[0])
	}
	if comps[1].Area != 1 || comps[1].AnchorX != 4 || comps[1].AnchorY != 3 {
		t.Fatalf("second component = %+v", comps[1])
	}
	if labels.At(2, 2) != comps[0].Label {
		t.Fatal("square cells must share the first label")
	}

	Erase(g, labels, comps[1].Label)
	if g.At(4, 3) {
		t.Fatal("Erase left the lone cell in place")
	}
	if !g.At(1, 1) {
		t.Fatal("Erase removed the wrong component")
	}
}

func TestFloodFillCountsRegion(t *testing.T) {
	g := New[bool](4, 4)
	// L-shaped true region.
	g.Set(0, 0, true)
	g.Set(0, 1, true)
	g.Set(0, 2, true)
	g.Set(1, 2, true)

	visited := New[bool](4, 4)
	n := FloodFill(g, true, visited, true, 0, 0)
	if n != 4 {
		t.Fatalf("FloodFill visited %d cells, want 4", n)
	}
	if !visited.At(1, 2) {
		t.Fatal("flood fill missed the foot of the L")
	}
	if visited.At(1, 0) {
		t.Fatal("flood fill leaked outside the region")
	}
}
