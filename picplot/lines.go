/*
 * lines.go, part of picdraw.
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

package picplot

import (
	"image/color"
	"math"

	"github.com/picvis/picdraw"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// FieldLineOptions controls the tracing of field lines.
type FieldLineOptions struct {
	Step     float64 //length of a step, in grid cells. 0 means 0.5.
	MaxSteps int     //steps in each direction from the seed. 0 means 4 times the larger side of the grid.
}

// FieldLines traces the lines of the 2D vector field with horizontal component u
// and vertical component v (Bx and Bz for magnetic field lines) through each seed.
// The coordinates are those of g, whose matrix must have the shape of u; the
// grid is taken as evenly spaced. Seeds are given in grid cells, (column, row).
// Each line runs both ways from its seed until it leaves the grid or reaches a
// null of the field. Seeds that give no line are skipped.
func FieldLines(g Grid, u, v mat.Matrix, seeds [][2]float64, opts ...FieldLineOptions) ([]plotter.XYs, error) {
	gr, gc := g.M.Dims()
	ur, uc := u.Dims()
	vr, vc := v.Dims()
	if ur != gr || uc != gc || vr != gr || vc != gc {
		return nil, picdraw.NewError(picdraw.InvalidWindow, "picplot", "", "FieldLines",
			"the components of the field and the grid must have the same shape")
	}
	o := FieldLineOptions{}
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Step <= 0 {
		o.Step = 0.5
	}
	if o.MaxSteps <= 0 {
		o.MaxSteps = 4 * max(gr, gc)
	}
	t := tracer{u: u, v: v, rows: gr, cols: gc, dx: spacing(g.Cols), dz: spacing(g.Rows)}
	var ret []plotter.XYs
	for _, s := range seeds {
		if !t.inside(s) {
			continue
		}
		back := t.trace(s, -o.Step, o.MaxSteps)
		fwd := t.trace(s, o.Step, o.MaxSteps)
		if len(back)+len(fwd) == 0 {
			continue
		}
		line := make(plotter.XYs, 0, len(back)+len(fwd)+1)
		for i := len(back) - 1; i >= 0; i-- {
			line = append(line, g.at(back[i]))
		}
		line = append(line, g.at(s))
		for _, p := range fwd {
			line = append(line, g.at(p))
		}
		ret = append(ret, line)
	}
	return ret, nil
}

// Seeds returns nc by nr seeds evenly spread over a grid of cols by rows cells,
// for FieldLines.
func Seeds(cols, rows, nc, nr int) [][2]float64 {
	ret := make([][2]float64, 0, nc*nr)
	for i := 0; i < nc; i++ {
		for j := 0; j < nr; j++ {
			ret = append(ret, [2]float64{
				(float64(i) + 0.5) * float64(cols-1) / float64(nc),
				(float64(j) + 0.5) * float64(rows-1) / float64(nr),
			})
		}
	}
	return ret
}

// AddFieldLines draws lines on p as thin black curves, over whatever p already holds.
func AddFieldLines(p *plot.Plot, lines []plotter.XYs) error {
	for _, v := range lines {
		l, err := plotter.NewLine(v)
		if err != nil {
			return err
		}
		l.LineStyle.Color = color.Black
		l.LineStyle.Width = vg.Points(0.5)
		p.Add(l)
	}
	return nil
}

// spacing is the distance between consecutive coordinates of an evenly spaced axis.
func spacing(c []float64) float64 {
	if len(c) < 2 || c[len(c)-1] == c[0] {
		return 1
	}
	return (c[len(c)-1] - c[0]) / float64(len(c)-1)
}

// lerp returns the coordinate at the fractional index i of c.
func lerp(c []float64, i float64) float64 {
	if len(c) == 1 {
		return c[0]
	}
	i0 := min(int(math.Floor(i)), len(c)-2)
	return c[i0] + (i-float64(i0))*(c[i0+1]-c[i0])
}

func (g Grid) at(p [2]float64) plotter.XY {
	return plotter.XY{X: lerp(g.Cols, p[0]), Y: lerp(g.Rows, p[1])}
}

type tracer struct {
	u, v       mat.Matrix
	rows, cols int
	dx, dz     float64
}

func (t *tracer) inside(p [2]float64) bool {
	return p[0] >= 0 && p[0] <= float64(t.cols-1) && p[1] >= 0 && p[1] <= float64(t.rows-1)
}

// bilinear interpolates m at column c, row r.
func bilinear(m mat.Matrix, c, r float64) float64 {
	rows, cols := m.Dims()
	c0 := max(min(int(math.Floor(c)), cols-2), 0)
	r0 := max(min(int(math.Floor(r)), rows-2), 0)
	c1, r1 := min(c0+1, cols-1), min(r0+1, rows-1)
	fc, fr := c-float64(c0), r-float64(r0)
	return (1-fr)*((1-fc)*m.At(r0, c0)+fc*m.At(r0, c1)) + fr*((1-fc)*m.At(r1, c0)+fc*m.At(r1, c1))
}

// dir is the unit direction of the field at p, in grid cells. ok is false at nulls.
func (t *tracer) dir(p [2]float64) (d [2]float64, ok bool) {
	d[0] = bilinear(t.u, p[0], p[1]) / t.dx
	d[1] = bilinear(t.v, p[0], p[1]) / t.dz
	n := math.Hypot(d[0], d[1])
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return d, false
	}
	return [2]float64{d[0] / n, d[1] / n}, true
}

// trace takes up to n midpoint steps of length h from p, and returns the points
// reached, p excluded.
func (t *tracer) trace(p [2]float64, h float64, n int) [][2]float64 {
	var ret [][2]float64
	for i := 0; i < n; i++ {
		d, ok := t.dir(p)
		if !ok {
			break
		}
		mid := [2]float64{p[0] + h/2*d[0], p[1] + h/2*d[1]}
		if !t.inside(mid) {
			break
		}
		if d, ok = t.dir(mid); !ok {
			break
		}
		next := [2]float64{p[0] + h*d[0], p[1] + h*d[1]}
		if !t.inside(next) {
			break
		}
		ret = append(ret, next)
		p = next
	}
	return ret
}
