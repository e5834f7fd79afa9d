/*
 * picplot.go, part of picdraw.
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

//Package picplot turns the planes, profiles and particle frames of the picdraw packages into
//gonum/plot plotters: heat maps and contours of 2D planes, line profiles, and scatter plots
//of particle positions or velocities.
package picplot

import (
	"fmt"

	"github.com/picvis/picdraw"
	"github.com/picvis/picdraw/dist"
	"github.com/picvis/picdraw/field"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Grid adapts a matrix with row and column coordinates to plotter.GridXYZ.
// Columns run along the horizontal axis, rows along the vertical one.
type Grid struct {
	M    mat.Matrix
	Cols []float64 //horizontal coordinate of each column
	Rows []float64 //vertical coordinate of each row
}

var _ plotter.GridXYZ = Grid{}

// NewGrid returns a Grid after checking that the coordinates match the shape of m.
func NewGrid(m mat.Matrix, cols, rows []float64) (Grid, error) {
	r, c := m.Dims()
	if len(cols) != c || len(rows) != r {
		return Grid{}, picdraw.NewError(picdraw.InvalidWindow, "picplot", "", "NewGrid",
			fmt.Sprintf("%dx%d plane with %d column and %d row coordinates", r, c, len(cols), len(rows)))
	}
	return Grid{M: m, Cols: cols, Rows: rows}, nil
}

func (g Grid) Dims() (c, r int) {
	r, c = g.M.Dims()
	return c, r
}

func (g Grid) Z(c, r int) float64 { return g.M.At(r, c) }

func (g Grid) X(c int) float64 { return g.Cols[c] }

func (g Grid) Y(r int) float64 { return g.Rows[r] }

// Min and Max return the extremes of the values in the grid.
func (g Grid) Min() float64 { return mat.Min(g.M) }

func (g Grid) Max() float64 { return mat.Max(g.M) }

// FieldGrid returns the grid for a windowed plane of S (as returned by S.Field or by the
// derive package), with x along the horizontal axis and z along the vertical one.
func FieldGrid(S *field.Snapshot, plane mat.Matrix) (Grid, error) {
	return NewGrid(plane, S.X(), S.Z())
}

// ReducedGrid returns the grid for the windowed reduced plane r of species s.
// All three projections share the velocity axis of the species.
func ReducedGrid(D *dist.Snapshot, r dist.Reduced, s int) (Grid, error) {
	ax := D.Axes(s)
	return NewGrid(D.Reduced(r)[s], ax, ax)
}

// CutGrid returns the grid for a plane returned by D.Cut, using the axis of species s.
func CutGrid(D *dist.Snapshot, plane mat.Matrix, s int) (Grid, error) {
	ax := D.Axes(s)
	return NewGrid(plane, ax, ax)
}

// Profile adapts a line cut to plotter.XYer.
type Profile struct {
	Coords []float64
	Values []float64
}

func (p Profile) Len() int { return len(p.Values) }

func (p Profile) XY(i int) (x, y float64) { return p.Coords[i], p.Values[i] }

// Points adapts two equally long slices, such as a frame from a trace.Stream, to plotter.XYer.
type Points struct {
	Xs, Ys []float64
}

func (p Points) Len() int { return len(p.Xs) }

func (p Points) XY(i int) (x, y float64) { return p.Xs[i], p.Ys[i] }

// Options sets the look of the plots built by this package.
type Options struct {
	Title  string
	XLabel string
	YLabel string
	Colors int     //number of colors in the palette, 0 means 64.
	Min    float64 //color range; if Min == Max the range of the data is used.
	Max    float64
}

func newPlot(o Options) *plot.Plot {
	p := plot.New()
	p.Title.Text = o.Title
	p.Title.Padding = vg.Millimeter * 3
	p.X.Label.Text = o.XLabel
	p.Y.Label.Text = o.YLabel
	return p
}

func pickOptions(opts []Options) Options {
	o := Options{}
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Colors <= 0 {
		o.Colors = 64
	}
	return o
}

// HeatMap returns a plot with a heat map of g.
func HeatMap(g Grid, opts ...Options) *plot.Plot {
	o := pickOptions(opts)
	p := newPlot(o)
	h := plotter.NewHeatMap(g, palette.Heat(o.Colors, 1))
	if o.Min != o.Max {
		h.Min, h.Max = o.Min, o.Max
	}
	p.Add(h)
	return p
}

// Contour returns a plot with n contour lines of g, evenly spaced between its
// extremes (or between Options.Min and Options.Max).
func Contour(g Grid, n int, opts ...Options) *plot.Plot {
	o := pickOptions(opts)
	p := newPlot(o)
	lo, hi := g.Min(), g.Max()
	if o.Min != o.Max {
		lo, hi = o.Min, o.Max
	}
	if n < 1 {
		n = 1
	}
	levels := make([]float64, n+2)
	floats.Span(levels, lo, hi)
	c := plotter.NewContour(g, levels[1:n+1], palette.Heat(o.Colors, 1))
	p.Add(c)
	return p
}

// Lines returns a plot with one line per profile.
func Lines(profiles []plotter.XYer, opts ...Options) (*plot.Plot, error) {
	o := pickOptions(opts)
	p := newPlot(o)
	p.Add(plotter.NewGrid())
	colors := palette.Heat(len(profiles)+1, 1).Colors()
	for i, v := range profiles {
		l, err := plotter.NewLine(v)
		if err != nil {
			return nil, err
		}
		l.LineStyle.Color = colors[i]
		p.Add(l)
	}
	return p, nil
}

// Scatter returns a plot with one point per element of xy.
func Scatter(xy plotter.XYer, opts ...Options) (*plot.Plot, error) {
	o := pickOptions(opts)
	p := newPlot(o)
	p.Add(plotter.NewGrid())
	s, err := plotter.NewScatter(xy)
	if err != nil {
		return nil, err
	}
	s.GlyphStyle.Radius = vg.Points(1)
	p.Add(s)
	return p, nil
}

// Save writes p to file, in the format given by its extension, with the given size in centimeters.
func Save(p *plot.Plot, width, height float64, file string) error {
	return p.Save(vg.Length(width)*vg.Centimeter, vg.Length(height)*vg.Centimeter, file)
}
