package worldgen

import (
	"math"
	"slices"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"islegen/pkg/grid"
	"islegen/pkg/world"
)

// extractContours traces iso-lines of the height field at every multiple of
// the iso step from zero up to the height ceiling. Levels run in parallel;
// each writes only its own slot, so the set is identical for any worker
// count.
func extractContours(cfg Config, height *grid.Float) world.ContourSet {
	step := cfg.Topography.IsoStep
	n := int(math.Floor(cfg.Height.MaxHeight/step)) + 1
	levels := make([]world.ContourLevel, n)

	workers := cfg.effectiveWorkers()
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	for i := 0; i < n; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			iso := float64(i) * step
			levels[i] = world.ContourLevel{
				Height: iso,
				Lines:  chainSegments(marchLevel(height, iso)),
			}
			<-sem
		}(i)
	}
	wg.Wait()

	return world.ContourSet{Levels: levels}
}

// contourSegment is one line piece produced by a single marching-squares
// cell. Endpoints on shared cell edges are computed from the same two
// samples in both neighboring cells, so they compare equal exactly.
type contourSegment struct {
	a, b mgl64.Vec2
}

// marchLevel walks every 2x2 sample block and emits the segments where the
// iso-line crosses it. A sample counts as inside when strictly above iso.
// The two ambiguous saddle cases resolve by the block's center average.
func marchLevel(height *grid.Float, iso float64) []contourSegment {
	var segs []contourSegment
	for y := 0; y < height.H-1; y++ {
		for x := 0; x < height.W-1; x++ {
			va := height.At(x, y)
			vb := height.At(x+1, y)
			vc := height.At(x+1, y+1)
			vd := height.At(x, y+1)

			idx := 0
			if va > iso {
				idx |= 8
			}
			if vb > iso {
				idx |= 4
			}
			if vc > iso {
				idx |= 2
			}
			if vd > iso {
				idx |= 1
			}
			if idx == 0 || idx == 15 {
				continue
			}

			fx, fy := float64(x), float64(y)
			top := func() mgl64.Vec2 { return mgl64.Vec2{fx + (iso-va)/(vb-va), fy} }
			right := func() mgl64.Vec2 { return mgl64.Vec2{fx + 1, fy + (iso-vb)/(vc-vb)} }
			bottom := func() mgl64.Vec2 { return mgl64.Vec2{fx + (iso-vd)/(vc-vd), fy + 1} }
			left := func() mgl64.Vec2 { return mgl64.Vec2{fx, fy + (iso-va)/(vd-va)} }

			switch idx {
			case 1, 14:
				segs = append(segs, contourSegment{left(), bottom()})
			case 2, 13:
				segs = append(segs, contourSegment{bottom(), right()})
			case 3, 12:
				segs = append(segs, contourSegment{left(), right()})
			case 4, 11:
				segs = append(segs, contourSegment{top(), right()})
			case 6, 9:
				segs = append(segs, contourSegment{top(), bottom()})
			case 7, 8:
				segs = append(segs, contourSegment{top(), left()})
			case 5:
				if (va+vb+vc+vd)/4 > iso {
					segs = append(segs, contourSegment{top(), left()}, contourSegment{right(), bottom()})
				} else {
					segs = append(segs, contourSegment{top(), right()}, contourSegment{left(), bottom()})
				}
			case 10:
				if (va+vb+vc+vd)/4 > iso {
					segs = append(segs, contourSegment{top(), right()}, contourSegment{left(), bottom()})
				} else {
					segs = append(segs, contourSegment{top(), left()}, contourSegment{right(), bottom()})
				}
			}
		}
	}
	return segs
}

// chainSegments joins segments that share endpoints into polylines. Every
// endpoint touches at most two segments, so chains are simple paths or
// loops. A loop drops its duplicated last point and sets Closed; open
// chains begin and end at the map border. Seeds are taken in scan order,
// which keeps the output order stable.
func chainSegments(segs []contourSegment) []world.Contour {
	if len(segs) == 0 {
		return nil
	}

	adj := make(map[mgl64.Vec2][]int, len(segs)*2)
	for i, s := range segs {
		adj[s.a] = append(adj[s.a], i)
		adj[s.b] = append(adj[s.b], i)
	}

	takeAt := func(p mgl64.Vec2, used []bool) int {
		for _, j := range adj[p] {
			if !used[j] {
				return j
			}
		}
		return -1
	}
	farEnd := func(s contourSegment, near mgl64.Vec2) mgl64.Vec2 {
		if s.a == near {
			return s.b
		}
		return s.a
	}

	used := make([]bool, len(segs))
	var out []world.Contour
	for i := range segs {
		if used[i] {
			continue
		}
		used[i] = true
		pts := []mgl64.Vec2{segs[i].a, segs[i].b}

		for {
			tail := pts[len(pts)-1]
			j := takeAt(tail, used)
			if j < 0 {
				break
			}
			used[j] = true
			pts = append(pts, farEnd(segs[j], tail))
		}

		closed := len(pts) > 3 && pts[0] == pts[len(pts)-1]
		if closed {
			pts = pts[:len(pts)-1]
		} else {
			var back []mgl64.Vec2
			head := pts[0]
			for {
				j := takeAt(head, used)
				if j < 0 {
					break
				}
				used[j] = true
				head = farEnd(segs[j], head)
				back = append(back, head)
			}
			if len(back) > 0 {
				slices.Reverse(back)
				pts = append(back, pts...)
			}
		}

		out = append(out, world.Contour{Points: pts, Closed: closed})
	}
	return out
}
