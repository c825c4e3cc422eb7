package grid

import "math"

// Large finite stand-in for infinity; keeps the parabola intersection
// arithmetic below free of Inf-Inf.
const edtInf = 1e20

// EDT computes, for every cell, the exact Euclidean distance to the nearest
// cell holding target (Felzenszwalb & Huttenlocher, row pass then column
// pass). Cells already holding target are at distance 0. A mask with no
// target cells yields edtInf everywhere.
func EDT(mask *Bool, target bool) *Float {
	out := New[float64](mask.W, mask.H)
	cells := out.Cells()
	for i, v := range mask.Cells() {
		if v == target {
			cells[i] = 0
		} else {
			cells[i] = edtInf
		}
	}

	w, h := out.W, out.H
	n := w
	if h > n {
		n = h
	}
	f := make([]float64, n)
	d := make([]float64, n)
	v := make([]int, n)
	z := make([]float64, n+1)

	// Rows.
	for y := 0; y < h; y++ {
		row := cells[y*w : (y+1)*w]
		copy(f[:w], row)
		edt1D(f[:w], d[:w], v[:w], z[:w+1])
		copy(row, d[:w])
	}

	// Columns.
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			f[y] = cells[y*w+x]
		}
		edt1D(f[:h], d[:h], v[:h], z[:h+1])
		for y := 0; y < h; y++ {
			cells[y*w+x] = d[y]
		}
	}

	for i, sq := range cells {
		cells[i] = math.Sqrt(sq)
	}
	return out
}

// edt1D runs the 1D squared distance transform over f, writing into d. v and
// z are scratch buffers for parabola positions and boundaries.
func edt1D(f, d []float64, v []int, z []float64) {
	k := 0
	v[0] = 0
	z[0] = -edtInf
	z[1] = edtInf

	for q := 1; q < len(f); q++ {
		s := intersect(f, q, v[k])
		for s <= z[k] {
			k--
			s = intersect(f, q, v[k])
		}
		k++
		v[k] = q
		z[k] = s
		z[k+1] = edtInf
	}

	k = 0
	for q := range f {
		for z[k+1] < float64(q) {
			k++
		}
		dq := float64(q - v[k])
		d[q] = dq*dq + f[v[k]]
	}
}

func intersect(f []float64, q, p int) float64 {
	fq := float64(q)
	fp := float64(p)
	return (f[q] + fq*fq - f[p] - fp*fp) / (2*fq - 2*fp)
}

// SignedDistance builds the signed shore-distance field of an island mask:
// inside land the distance to the nearest water cell (positive), inside
// water the distance to the nearest land cell (negative). Water-side
// magnitudes cap at padding so deep ocean saturates instead of growing with
// map size. Degenerate all-land or all-water masks saturate to ±padding.
func SignedDistance(mask *Bool, padding float64) *Float {
	out := New[float64](mask.W, mask.H)
	switch Count(mask) {
	case 0:
		out.Fill(-padding)
		return out
	case mask.W * mask.H:
		out.Fill(padding)
		return out
	}

	land := EDT(mask, false)
	water := EDT(mask, true)

	dst := out.Cells()
	lc := land.Cells()
	wc := water.Cells()
	for i, isLand := range mask.Cells() {
		if isLand {
			dst[i] = lc[i]
		} else {
			d := wc[i]
			if d > padding {
				d = padding
			}
			dst[i] = -d
		}
	}
	return out
}
