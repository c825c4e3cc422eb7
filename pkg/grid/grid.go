// Package grid provides row-major 2D grids and the field operations world
// generation is built on: clamped and bilinear sampling, gradients, blurs,
// thresholds, flood fills, and exact Euclidean distance transforms.
package grid

// Grid stores a 2D grid of values in row-major order.
type Grid[T any] struct {
	W, H int
	data []T
}

// New allocates a grid with the given dimensions.
func New[T any](w, h int) *Grid[T] {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid[T]{W: w, H: h, data: make([]T, w*h)}
}

// FromCells wraps an existing backing slice. The slice length must be w*h;
// shorter slices are padded, longer ones truncated.
func FromCells[T any](w, h int, cells []T) *Grid[T] {
	g := New[T](w, h)
	copy(g.data, cells)
	return g
}

// Float and Bool are the two grid shapes the pipeline passes between stages.
type (
	Float = Grid[float64]
	Bool  = Grid[bool]
)

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid[T]) Cells() []T { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid[T]) Index(x, y int) int { return y*g.W + x }

// At returns the value at (x, y). Coordinates must be in bounds.
func (g *Grid[T]) At(x, y int) T { return g.data[y*g.W+x] }

// Set stores v at (x, y). Coordinates must be in bounds.
func (g *Grid[T]) Set(x, y int, v T) { g.data[y*g.W+x] = v }

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid[T]) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.W && y < g.H
}

// Clamped returns the value at (x, y) with coordinates clamped to the edges.
func (g *Grid[T]) Clamped(x, y int) T {
	if x < 0 {
		x = 0
	} else if x >= g.W {
		x = g.W - 1
	}
	if y < 0 {
		y = 0
	} else if y >= g.H {
		y = g.H - 1
	}
	return g.data[y*g.W+x]
}

// Fill sets every cell to v.
func (g *Grid[T]) Fill(v T) {
	for i := range g.data {
		g.data[i] = v
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid[T]) Clone() *Grid[T] {
	out := New[T](g.W, g.H)
	copy(out.data, g.data)
	return out
}

// Map builds a new grid of the same size by applying f to every cell value.
func Map[T, U any](g *Grid[T], f func(T) U) *Grid[U] {
	out := New[U](g.W, g.H)
	for i, v := range g.data {
		out.data[i] = f(v)
	}
	return out
}

// FromFunc builds a grid by evaluating f at every coordinate.
func FromFunc[T any](w, h int, f func(x, y int) T) *Grid[T] {
	g := New[T](w, h)
	for y := 0; y < g.H; y++ {
		row := g.data[y*g.W : (y+1)*g.W]
		for x := range row {
			row[x] = f(x, y)
		}
	}
	return g
}
