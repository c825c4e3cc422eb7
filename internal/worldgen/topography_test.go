package worldgen

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"islegen/pkg/grid"
)

func TestExtractContoursLevelLadder(t *testing.T) {
	cfg := testConfig()

	flat := grid.New[float64](8, 8)
	flat.Fill(1)
	set := extractContours(cfg, flat)

	// 0 through 80 in steps of 5.
	if got := len(set.Levels); got != 17 {
		t.Fatalf("expected 17 levels, got %d", got)
	}
	for i, lvl := range set.Levels {
		if want := float64(i) * cfg.Topography.IsoStep; lvl.Height != want {
			t.Fatalf("level %d at %g, want %g", i, lvl.Height, want)
		}
		if len(lvl.Lines) != 0 {
			t.Fatalf("flat terrain produced %d contours at level %g", len(lvl.Lines), lvl.Height)
		}
	}
}

func TestMarchSingleHillClosesLoop(t *testing.T) {
	h := grid.New[float64](8, 8)
	for y := 3; y <= 4; y++ {
		for x := 3; x <= 4; x++ {
			h.Set(x, y, 1)
		}
	}

	lines := chainSegments(marchLevel(h, 0.5))

	if len(lines) != 1 {
		t.Fatalf("expected one contour, got %d", len(lines))
	}
	c := lines[0]
	if !c.Closed {
		t.Fatal("expected the hill contour to close")
	}
	if len(c.Points) != 8 {
		t.Fatalf("expected an 8-point loop, got %d points", len(c.Points))
	}
	for i, p := range c.Points {
		if got := grid.Bilinear(h, p.X(), p.Y()); got != 0.5 {
			t.Fatalf("point %d at %v samples %.4f, want the iso value", i, p, got)
		}
	}
}

func TestMarchRampStaysOpen(t *testing.T) {
	h := grid.FromFunc(8, 8, func(x, y int) float64 {
		return float64(x)
	})

	lines := chainSegments(marchLevel(h, 2.5))

	if len(lines) != 1 {
		t.Fatalf("expected one contour, got %d", len(lines))
	}
	c := lines[0]
	if c.Closed {
		t.Fatal("a border-to-border contour must stay open")
	}
	if len(c.Points) != 8 {
		t.Fatalf("expected 8 points, got %d", len(c.Points))
	}
	for i, p := range c.Points {
		if p.X() != 2.5 {
			t.Fatalf("point %d off the iso column: %v", i, p)
		}
	}
	if c.Points[0] != (mgl64.Vec2{2.5, 0}) || c.Points[7] != (mgl64.Vec2{2.5, 7}) {
		t.Fatalf("expected the contour to span the map, got %v to %v", c.Points[0], c.Points[7])
	}
}

func TestMarchSaddleResolution(t *testing.T) {
	// Opposite corners above iso force the ambiguous case; the cell center
	// average decides which corners connect.
	above := grid.New[float64](2, 2)
	above.Set(0, 0, 1)
	above.Set(1, 0, 0.4)
	above.Set(1, 1, 1)
	above.Set(0, 1, 0)

	lines := chainSegments(marchLevel(above, 0.5))
	if len(lines) != 2 {
		t.Fatalf("expected two contours through the saddle, got %d", len(lines))
	}
	for i, c := range lines {
		if c.Closed || len(c.Points) != 2 {
			t.Fatalf("contour %d should be a single open segment, got %d points closed=%v", i, len(c.Points), c.Closed)
		}
	}
	// Center above iso: the top edge connects to the right edge.
	topSeg := lines[0]
	if topSeg.Points[0].Y() != 0 && topSeg.Points[1].Y() != 0 {
		topSeg = lines[1]
	}
	if topSeg.Points[0].X() != 1 && topSeg.Points[1].X() != 1 {
		t.Fatalf("expected top edge to pair with right edge, got %v", topSeg.Points)
	}

	below := grid.New[float64](2, 2)
	below.Set(0, 0, 1)
	below.Set(1, 0, 0)
	below.Set(1, 1, 1)
	below.Set(0, 1, 0)

	lines = chainSegments(marchLevel(below, 0.5))
	if len(lines) != 2 {
		t.Fatalf("expected two contours through the saddle, got %d", len(lines))
	}
	// Center at iso counts as below: the top edge connects to the left edge.
	topSeg = lines[0]
	if topSeg.Points[0].Y() != 0 && topSeg.Points[1].Y() != 0 {
		topSeg = lines[1]
	}
	if topSeg.Points[0].X() != 0 && topSeg.Points[1].X() != 0 {
		t.Fatalf("expected top edge to pair with left edge, got %v", topSeg.Points)
	}
}
