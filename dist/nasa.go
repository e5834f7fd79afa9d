/*
 * nasa.go, part of picdraw.
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
	"math"
	"strings"

	"github.com/picvis/picdraw"
	"github.com/picvis/picdraw/record"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// AxisTolerance is the largest absolute difference, bin by bin, between the velocity
// axes of two species that can still be combined.
const AxisTolerance = 1e-6

// Reduced names one of the reduced 2D projections stored in the record.
type Reduced int

const (
	FXY Reduced = iota
	FXZ
	FYZ
)

var reducedNames = [...]string{"fxy", "fxz", "fyz"}

func (r Reduced) String() string {
	if r < FXY || r > FYZ {
		return fmt.Sprintf("Reduced(%d)", int(r))
	}
	return reducedNames[r]
}

// Snapshot holds one NASA velocity distribution: per species, a 3D histogram
// over a cubic velocity grid, its three reduced projections, and the
// velocity axis. All the views share the storage of the parsed record.
type Snapshot struct {
	filename string
	rec      *record.Record
	grid     int
	nss      int
	fullCube []*Cube
	fullRed  [3][]*mat.Dense
	fullAxes [][]float64
	cube     []*Cube
	red      [3][]*mat.Dense
	axes     [][]float64
	lo, hi   int
}

// Load reads the NASA distribution file name, with grid bins on every velocity axis
// and nss species (0 means picdraw.DefaultSpecies). The window covers the whole grid.
func Load(name string, grid, nss int, opts ...record.Options) (*Snapshot, error) {
	if nss <= 0 {
		nss = picdraw.DefaultSpecies
	}
	if grid <= 0 {
		return nil, picdraw.NewError(picdraw.MalformedRecord, "nasa-dist", name, "Load", fmt.Sprintf("invalid grid %d", grid))
	}
	rec, err := record.ReadFile(name, record.DistLayout(grid, nss), opts...)
	if err != nil {
		return nil, errDecorate(err, "Load")
	}
	D := FromRecord(rec, grid, nss)
	D.filename = name
	return D, nil
}

// FromRecord wraps a parsed record with layout record.DistLayout(grid, nss).
func FromRecord(rec *record.Record, grid, nss int) *Snapshot {
	D := &Snapshot{rec: rec, grid: grid, nss: nss}
	g3 := grid * grid * grid
	g2 := grid * grid
	fxyz := rec.MustValues("fxyz")
	axes := rec.MustValues("axes")
	for s := 0; s < nss; s++ {
		D.fullCube = append(D.fullCube, NewCube(grid, grid, grid, fxyz[s*g3:(s+1)*g3]))
		D.fullAxes = append(D.fullAxes, axes[s*grid:(s+1)*grid])
	}
	for r := FXY; r <= FYZ; r++ {
		data := rec.MustValues(r.String())
		for s := 0; s < nss; s++ {
			D.fullRed[r] = append(D.fullRed[r], mat.NewDense(grid, grid, data[s*g2:(s+1)*g2]))
		}
	}
	_ = D.SetWindow(0, grid)
	return D
}

// SetWindow narrows every velocity axis of the histograms, the reduced planes and
// the axes to the bins lo..hi-1 of the full grid. Ranges outside 0 <= lo < hi <= grid
// are InvalidWindow errors and leave the window unchanged.
func (D *Snapshot) SetWindow(lo, hi int) error {
	if lo < 0 || lo >= hi || hi > D.grid {
		return picdraw.NewError(picdraw.InvalidWindow, "nasa-dist", D.filename, "SetWindow", fmt.Sprintf("[%d,%d) does not fit in %d bins", lo, hi, D.grid))
	}
	D.cube = make([]*Cube, D.nss)
	D.axes = make([][]float64, D.nss)
	for s := 0; s < D.nss; s++ {
		D.cube[s] = D.fullCube[s].Slice(lo, hi, lo, hi, lo, hi)
		D.axes[s] = D.fullAxes[s][lo:hi]
	}
	for r := range D.fullRed {
		D.red[r] = make([]*mat.Dense, D.nss)
		for s, p := range D.fullRed[r] {
			D.red[r][s] = p.Slice(lo, hi, lo, hi).(*mat.Dense)
		}
	}
	D.lo, D.hi = lo, hi
	return nil
}

// Window returns the active bin range.
func (D *Snapshot) Window() (lo, hi int) { return D.lo, D.hi }

// Grid returns the number of bins per axis in the file.
func (D *Snapshot) Grid() int { return D.grid }

// Species returns the number of species in the file.
func (D *Snapshot) Species() int { return D.nss }

// Cube returns the windowed 3D histogram of species s.
func (D *Snapshot) Cube(s int) *Cube { return D.cube[s] }

// Reduced returns the windowed reduced projection r, one plane per species.
func (D *Snapshot) Reduced(r Reduced) []*mat.Dense { return D.red[r] }

// Axes returns the windowed velocity axis of species s.
func (D *Snapshot) Axes(s int) []float64 { return D.axes[s] }

// Bounds returns the spatial bin the distribution was sampled from.
func (D *Snapshot) Bounds() (xlo, xhi, zlo, zhi float64) {
	return D.rec.MustScalar("xlo"), D.rec.MustScalar("xhi"), D.rec.MustScalar("zlo"), D.rec.MustScalar("zhi")
}

// Counts returns the particle count of each species stored in the record.
func (D *Snapshot) Counts() []int {
	ic := D.rec.MustValues("ic")
	ret := make([]int, len(ic))
	for i, v := range ic {
		ret[i] = int(v)
	}
	return ret
}

// AverageVelocity returns the average velocity of species s as stored in the record.
func (D *Snapshot) AverageVelocity(s int) [3]float64 {
	return [3]float64{D.rec.MustValues("vxa")[s], D.rec.MustValues("vya")[s], D.rec.MustValues("vza")[s]}
}

// FileName returns the file the snapshot was read from, if any.
func (D *Snapshot) FileName() string { return D.filename }

func (D *Snapshot) String() string {
	xlo, xhi, zlo, zhi := D.Bounds()
	s := fmt.Sprintf("\nBin location: x=(%4g,%4g), z=(%4g,%4g)\n\n", xlo, xhi, zlo, zhi)
	lines := make([]string, D.nss)
	for i := range lines {
		v := D.AverageVelocity(i)
		lines[i] = fmt.Sprintf("v[%d] = (%g, %g, %g)", i, v[0], v[1], v[2])
	}
	return s + strings.Join(lines, "\n") + "\n"
}

// Cut sums the windowed 3D histogram of every species over the bins lo..hi
// (both included, relative to the window) along the velocity axis a, and returns
// one new plane per species with that axis removed:
// a cut along x gives (vz, vy) planes, along y (vz, vx) and along z (vy, vx).
func (D *Snapshot) Cut(a picdraw.Axis, lo, hi int) ([]*mat.Dense, error) {
	dim, err := D.dimOf(a, "Cut")
	if err != nil {
		return nil, err
	}
	n := D.hi - D.lo
	if lo < 0 || lo > hi || hi >= n {
		return nil, picdraw.NewError(picdraw.InvalidWindow, "nasa-dist", D.filename, "Cut", fmt.Sprintf("bins %d..%d outside a window of %d", lo, hi, n))
	}
	ret := make([]*mat.Dense, D.nss)
	for s, c := range D.cube {
		ret[s] = c.Layer(dim, lo)
		for i := lo + 1; i <= hi; i++ {
			ret[s].Add(ret[s], c.Layer(dim, i))
		}
	}
	return ret, nil
}

// CutByName is Cut with the axis given as "x", "y" or "z".
func (D *Snapshot) CutByName(axis string, lo, hi int) ([]*mat.Dense, error) {
	a, err := picdraw.ParseAxis(axis)
	if err != nil {
		return nil, errDecorate(err, "CutByName")
	}
	return D.Cut(a, lo, hi)
}

// CheckSpecies returns an error if species is empty or has out of range indexes, or if the
// windowed velocity axis of any of the given species differs from that of the first one
// by more than AxisTolerance in any bin.
func (D *Snapshot) CheckSpecies(species ...int) error {
	if len(species) == 0 {
		return picdraw.NewError(picdraw.InvalidSpecies, "nasa-dist", D.filename, "CheckSpecies", "no species given")
	}
	for _, s := range species {
		if s < 0 || s >= D.nss {
			return picdraw.NewError(picdraw.InvalidSpecies, "nasa-dist", D.filename, "CheckSpecies", fmt.Sprintf("species %d not in 0..%d", s, D.nss-1))
		}
	}
	ref := D.axes[species[0]]
	for _, s := range species[1:] {
		if d := floats.Distance(D.axes[s], ref, math.Inf(1)); d > AxisTolerance {
			return picdraw.NewError(picdraw.IncompatibleSpecies, "nasa-dist", D.filename, "CheckSpecies",
				fmt.Sprintf("%v cannot be combined: axes of species %d and %d differ by %g", species, species[0], s, d))
		}
	}
	return nil
}

// CombinePlanes sums the planes of the given species, as returned by Cut or Reduced.
// The result is a new matrix; the inputs are not modified.
func (D *Snapshot) CombinePlanes(planes []*mat.Dense, species ...int) (*mat.Dense, error) {
	if err := D.CheckSpecies(species...); err != nil {
		return nil, errDecorate(err, "CombinePlanes")
	}
	if len(planes) != D.nss {
		return nil, picdraw.NewError(picdraw.InvalidSpecies, "nasa-dist", D.filename, "CombinePlanes", fmt.Sprintf("%d planes for %d species", len(planes), D.nss))
	}
	ret := mat.DenseCopyOf(planes[species[0]])
	for _, s := range species[1:] {
		ret.Add(ret, planes[s])
	}
	return ret, nil
}

// CombineReduced sums the three reduced projections over the given species.
func (D *Snapshot) CombineReduced(species ...int) ([3]*mat.Dense, error) {
	var ret [3]*mat.Dense
	for r := FXY; r <= FYZ; r++ {
		p, err := D.CombinePlanes(D.red[r], species...)
		if err != nil {
			return ret, errDecorate(err, "CombineReduced")
		}
		ret[r] = p
	}
	return ret, nil
}

// CombineCube sums the windowed 3D histograms of the given species into a new cube.
func (D *Snapshot) CombineCube(species ...int) (*Cube, error) {
	if err := D.CheckSpecies(species...); err != nil {
		return nil, errDecorate(err, "CombineCube")
	}
	ret := D.cube[species[0]].Clone()
	for _, s := range species[1:] {
		ret.Add(D.cube[s])
	}
	return ret, nil
}

// dimOf maps a velocity axis to the cube dimension that runs along it.
func (D *Snapshot) dimOf(a picdraw.Axis, caller string) (int, error) {
	switch a {
	case picdraw.X:
		return 2, nil
	case picdraw.Y:
		return 1, nil
	case picdraw.Z:
		return 0, nil
	}
	return 0, picdraw.NewError(picdraw.InvalidAxis, "nasa-dist", D.filename, caller, fmt.Sprintf("no velocity axis %s", a))
}

// Marginal returns the windowed histogram of species s projected on the velocity axis a,
// i.e. summed over the other two axes. It has one value per bin of Axes(s).
func (D *Snapshot) Marginal(s int, a picdraw.Axis) ([]float64, error) {
	if err := D.CheckSpecies(s); err != nil {
		return nil, errDecorate(err, "Marginal")
	}
	dim, err := D.dimOf(a, "Marginal")
	if err != nil {
		return nil, err
	}
	c := D.cube[s]
	nk, nj, ni := c.Dims()
	ret := make([]float64, D.hi-D.lo)
	for k := 0; k < nk; k++ {
		for j := 0; j < nj; j++ {
			for i := 0; i < ni; i++ {
				ret[[3]int{k, j, i}[dim]] += c.At(k, j, i)
			}
		}
	}
	return ret, nil
}

// Spread returns, for each velocity axis (x, y, z), the mean velocity of the windowed histogram of
// species s and the standard deviation around it, which is the thermal spread of the species.
// An empty histogram gives NaNs.
func (D *Snapshot) Spread(s int) (mean, spread [3]float64, err error) {
	for a := picdraw.X; a <= picdraw.Z; a++ {
		w, err := D.Marginal(s, a)
		if err != nil {
			return mean, spread, errDecorate(err, "Spread")
		}
		mean[a], spread[a] = stat.PopMeanStdDev(D.axes[s], w)
	}
	return mean, spread, nil
}

// MeanVelocity returns the first moment of the windowed histogram of species s along
// each velocity axis, i.e. the sum of f*v over the sum of f. An empty histogram gives NaNs.
func (D *Snapshot) MeanVelocity(s int) ([3]float64, error) {
	var ret [3]float64
	for a := picdraw.X; a <= picdraw.Z; a++ {
		w, err := D.Marginal(s, a)
		if err != nil {
			return ret, errDecorate(err, "MeanVelocity")
		}
		ret[a] = stat.Mean(D.axes[s], w)
	}
	return ret, nil
}

func errDecorate(err error, caller string) error {
	return picdraw.Decorate(err, caller)
}
