package grid

// Count returns the number of true cells.
func Count(g *Bool) int {
	n := 0
	for _, v := range g.Cells() {
		if v {
			n++
		}
	}
	return n
}

// FloodFill walks the 4-connected region of src cells equal to srcValue
// starting at (x, y), writing dstValue into dst for every visited cell. Cells
// already holding dstValue act as walls. It returns the number of cells
// written. src and dst may be the same grid.
func FloodFill(src *Bool, srcValue bool, dst *Bool, dstValue bool, x, y int) int {
	if !src.InBounds(x, y) || src.At(x, y) != srcValue || dst.At(x, y) == dstValue {
		return 0
	}

	count := 0
	stack := [][2]int{{x, y}}
	dst.Set(x, y, dstValue)
	count++

	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cx, cy := c[0], c[1]

		for _, n := range [4][2]int{{cx - 1, cy}, {cx + 1, cy}, {cx, cy - 1}, {cx, cy + 1}} {
			nx, ny := n[0], n[1]
			if !src.InBounds(nx, ny) || src.At(nx, ny) != srcValue || dst.At(nx, ny) == dstValue {
				continue
			}
			dst.Set(nx, ny, dstValue)
			count++
			stack = append(stack, [2]int{nx, ny})
		}
	}
	return count
}

// FillHoles turns every false region that cannot be reached from (0, 0) into
// true. The caller guarantees the corner cell is part of the outer false
// region (ocean), which the shaping margins enforce.
func FillHoles(g *Bool) {
	filled := New[bool](g.W, g.H)
	filled.Fill(true)
	FloodFill(g, false, filled, false, 0, 0)
	copy(g.Cells(), filled.Cells())
}

// Component describes one 4-connected region of true cells.
type Component struct {
	// Label is the value marking this component's cells in the label grid.
	Label int32
	// Area is the number of cells in the component.
	Area int
	// AnchorX, AnchorY locate the component's first cell in scan order.
	AnchorX, AnchorY int
}

// Components labels every 4-connected region of true cells. Labels start at 1
// and are assigned in scan order, so the result is deterministic. Cells that
// are false carry label 0.
func Components(g *Bool) (*Grid[int32], []Component) {
	labels := New[int32](g.W, g.H)
	var comps []Component

	next := int32(1)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if !g.At(x, y) || labels.At(x, y) != 0 {
				continue
			}

			area := 0
			stack := [][2]int{{x, y}}
			labels.Set(x, y, next)
			area++

			for len(stack) > 0 {
				c := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				cx, cy := c[0], c[1]

				for _, n := range [4][2]int{{cx - 1, cy}, {cx + 1, cy}, {cx, cy - 1}, {cx, cy + 1}} {
					nx, ny := n[0], n[1]
					if !g.InBounds(nx, ny) || !g.At(nx, ny) || labels.At(nx, ny) != 0 {
						continue
					}
					labels.Set(nx, ny, next)
					area++
					stack = append(stack, [2]int{nx, ny})
				}
			}

			comps = append(comps, Component{Label: next, Area: area, AnchorX: x, AnchorY: y})
			next++
		}
	}
	return labels, comps
}

// Erase sets every cell carrying the given label to false.
func Erase(g *Bool, labels *Grid[int32], label int32) {
	cells := g.Cells()
	for i, l := range labels.Cells() {
		if l == label {
			cells[i] = false
		}
	}
}
