/*
 * cube.go, part of picdraw.
 *
 *
 * Copyright 2024 The picdraw Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package dist

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Cube is a row-major 3D array, indexed as (k, j, i) with i the fastest
// varying index. In distribution records k runs along vz, j along vy and i along vx.
// Cubes obtained with Slice share the storage of the cube they come from.
type Cube struct {
	nk, nj, ni int
	sk, sj     int //strides of k and j; i has stride 1
	data       []float64
}

// NewCube returns a cube over data, which must have nk*nj*ni elements. The
// data is not copied.
func NewCube(nk, nj, ni int, data []float64) *Cube {
	if nk <= 0 || nj <= 0 || ni <= 0 {
		panic("dist.NewCube: zero or negative length")
	}
	if len(data) != nk*nj*ni {
		panic(fmt.Sprintf("dist.NewCube: %d elements for a %dx%dx%d cube", len(data), nk, nj, ni))
	}
	return &Cube{nk: nk, nj: nj, ni: ni, sk: nj * ni, sj: ni, data: data}
}

// ZeroCube returns a new cube filled with zeros.
func ZeroCube(nk, nj, ni int) *Cube {
	return NewCube(nk, nj, ni, make([]float64, nk*nj*ni))
}

// Dims returns the extents of the cube.
func (C *Cube) Dims() (nk, nj, ni int) { return C.nk, C.nj, C.ni }

func (C *Cube) offset(k, j, i int) int {
	if k < 0 || k >= C.nk || j < 0 || j >= C.nj || i < 0 || i >= C.ni {
		panic(fmt.Sprintf("dist.Cube: index (%d,%d,%d) out of range (%d,%d,%d)", k, j, i, C.nk, C.nj, C.ni))
	}
	return k*C.sk + j*C.sj + i
}

// At returns the element (k, j, i).
func (C *Cube) At(k, j, i int) float64 { return C.data[C.offset(k, j, i)] }

// Set sets the element (k, j, i) to v.
func (C *Cube) Set(k, j, i int, v float64) { C.data[C.offset(k, j, i)] = v }

// Slice returns the view of C covering k0..k1-1, j0..j1-1 and i0..i1-1.
func (C *Cube) Slice(k0, k1, j0, j1, i0, i1 int) *Cube {
	if k0 < 0 || k1 > C.nk || k0 >= k1 || j0 < 0 || j1 > C.nj || j0 >= j1 || i0 < 0 || i1 > C.ni || i0 >= i1 {
		panic("dist.Cube.Slice: index out of range")
	}
	start := k0*C.sk + j0*C.sj + i0
	end := (k1-1)*C.sk + (j1-1)*C.sj + i1
	return &Cube{nk: k1 - k0, nj: j1 - j0, ni: i1 - i0, sk: C.sk, sj: C.sj, data: C.data[start:end]}
}

// Clone returns a compact copy of C.
func (C *Cube) Clone() *Cube {
	ret := ZeroCube(C.nk, C.nj, C.ni)
	ret.Add(C)
	return ret
}

// Add adds A to C, element by element. Both must have the same extents.
func (C *Cube) Add(A *Cube) {
	if A.nk != C.nk || A.nj != C.nj || A.ni != C.ni {
		panic("dist.Cube.Add: mismatched extents")
	}
	for k := 0; k < C.nk; k++ {
		for j := 0; j < C.nj; j++ {
			row := C.data[k*C.sk+j*C.sj : k*C.sk+j*C.sj+C.ni]
			arow := A.data[k*A.sk+j*A.sj : k*A.sk+j*A.sj+A.ni]
			for i, v := range arow {
				row[i] += v
			}
		}
	}
}

// Sum returns the sum of all the elements.
func (C *Cube) Sum() float64 {
	var s float64
	for k := 0; k < C.nk; k++ {
		for j := 0; j < C.nj; j++ {
			for _, v := range C.data[k*C.sk+j*C.sj : k*C.sk+j*C.sj+C.ni] {
				s += v
			}
		}
	}
	return s
}

// Layer returns, as a new matrix, the index-th layer of C perpendicular to the
// given dimension (0 for k, 1 for j, 2 for i). Rows and columns are the remaining
// dimensions, in order.
func (C *Cube) Layer(dim, index int) *mat.Dense {
	var r, c int
	var at func(a, b int) float64
	switch dim {
	case 0:
		r, c = C.nj, C.ni
		at = func(a, b int) float64 { return C.At(index, a, b) }
	case 1:
		r, c = C.nk, C.ni
		at = func(a, b int) float64 { return C.At(a, index, b) }
	case 2:
		r, c = C.nk, C.nj
		at = func(a, b int) float64 { return C.At(a, b, index) }
	default:
		panic("dist.Cube.Layer: dimension must be 0, 1 or 2")
	}
	ret := mat.NewDense(r, c, nil)
	for a := 0; a < r; a++ {
		for b := 0; b < c; b++ {
			ret.Set(a, b, at(a, b))
		}
	}
	return ret
}
