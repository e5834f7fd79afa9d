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

package field

import (
	"fmt"

	"github.com/picvis/picdraw"
	"github.com/picvis/picdraw/record"
	"gonum.org/v1/gonum/mat"
)

// Window is a sub-rectangle of the grid in index coordinates, half open:
// columns XMin..XMax-1 and rows ZMin..ZMax-1.
type Window struct {
	XMin, XMax int
	ZMin, ZMax int
}

func (w Window) String() string {
	return fmt.Sprintf("x=[%d,%d) z=[%d,%d)", w.XMin, w.XMax, w.ZMin, w.ZMax)
}

// Snapshot holds one time instant of a NASA field file. The planes of
// each array are *mat.Dense values sharing the storage of the parsed record;
// the active window is a set of Dense.Slice views into them. Writing through
// a view writes to the snapshot, and is seen by every other view.
type Snapshot struct {
	filename string
	rec      *record.Record
	header   record.FieldHeader
	nx, nz   int
	nss      int
	full     [numKeys][]*mat.Dense
	view     [numKeys][]*mat.Dense
	xe, ze   []float64
	win      Window
}

// Load reads the NASA field file name. nx and nz may be zero, in which case the
// grid size is taken from the file header; if they are given and disagree with the
// header, the file is considered malformed. nss is the number of species, 0 means
// picdraw.DefaultSpecies. The active window covers the whole grid.
func Load(name string, nx, nz, nss int, opts ...record.Options) (*Snapshot, error) {
	if nss <= 0 {
		nss = picdraw.DefaultSpecies
	}
	hd, err := record.ReadFieldHeader(name, opts...)
	if err != nil {
		return nil, errDecorate(err, "Load")
	}
	if nx == 0 && nz == 0 {
		nx, nz = hd.Nx, hd.Nz
	} else if nx != hd.Nx || nz != hd.Nz {
		return nil, picdraw.NewError(picdraw.MalformedRecord, "nasa-field", name, "Load",
			fmt.Sprintf("grid %dx%d requested, but the header says %dx%d", nx, nz, hd.Nx, hd.Nz))
	}
	if nx <= 0 || nz <= 0 {
		return nil, picdraw.NewError(picdraw.MalformedRecord, "nasa-field", name, "Load", fmt.Sprintf("invalid grid %dx%d in header", nx, nz))
	}
	rec, err := record.ReadFile(name, record.FieldLayout(nx, nz, nss), opts...)
	if err != nil {
		return nil, errDecorate(err, "Load")
	}
	S := FromRecord(rec, nx, nz, nss)
	S.filename = name
	return S, nil
}

// FromRecord wraps an already parsed field record. The record must have the
// layout given by record.FieldLayout(nx, nz, nss).
func FromRecord(rec *record.Record, nx, nz, nss int) *Snapshot {
	S := &Snapshot{rec: rec, nx: nx, nz: nz, nss: nss}
	S.header = record.FieldHeader{
		It:   rec.MustInt("it"),
		Dt:   rec.MustScalar("dt"),
		Teti: rec.MustScalar("teti"),
		Xmax: rec.MustScalar("xmax"),
		Zmax: rec.MustScalar("zmax"),
		Nx:   nx,
		Nz:   nz,
	}
	plane := nx * nz
	for _, k := range Keys() {
		data := rec.MustValues(k.String())
		n := 1
		if k.PerSpecies() {
			n = nss
		}
		S.full[k] = make([]*mat.Dense, n)
		for s := 0; s < n; s++ {
			S.full[k][s] = mat.NewDense(nz, nx, data[s*plane:(s+1)*plane])
		}
	}
	//the full window is always valid
	_ = S.SetWindow(Window{0, nx, 0, nz})
	return S
}

// SetWindow replaces the active window with w, which is relative to the full
// grid, not to the previous window. It must satisfy 0 <= XMin < XMax <= nx
// and 0 <= ZMin < ZMax <= nz; otherwise an InvalidWindow error is returned
// and the active window is left as it was.
func (S *Snapshot) SetWindow(w Window) error {
	if w.XMin < 0 || w.XMin >= w.XMax || w.XMax > S.nx || w.ZMin < 0 || w.ZMin >= w.ZMax || w.ZMax > S.nz {
		return picdraw.NewError(picdraw.InvalidWindow, "nasa-field", S.filename, "SetWindow",
			fmt.Sprintf("%s does not fit in a %dx%d grid", w, S.nx, S.nz))
	}
	for k, planes := range S.full {
		v := make([]*mat.Dense, len(planes))
		for i, p := range planes {
			v[i] = p.Slice(w.ZMin, w.ZMax, w.XMin, w.XMax).(*mat.Dense)
		}
		S.view[k] = v
	}
	S.xe = S.rec.MustValues("xe")[w.XMin:w.XMax]
	S.ze = S.rec.MustValues("ze")[w.ZMin:w.ZMax]
	S.win = w
	return nil
}

// Window returns the active window.
func (S *Snapshot) Window() Window { return S.win }

// Field returns the windowed planes of k: one per species for the moments,
// a single one for the field components. Each plane has ZMax-ZMin rows and
// XMax-XMin columns, and aliases the snapshot storage.
func (S *Snapshot) Field(k Key) []*mat.Dense {
	return S.view[k]
}

// FieldByName is Field for a name as found in the record ("Bx", "dns", ...).
func (S *Snapshot) FieldByName(name string) ([]*mat.Dense, error) {
	k, err := ParseKey(name)
	if err != nil {
		return nil, errDecorate(err, "FieldByName")
	}
	return S.view[k], nil
}

// Full returns the planes of k over the whole grid, ignoring the window.
func (S *Snapshot) Full(k Key) []*mat.Dense {
	return S.full[k]
}

// X returns the x coordinates of the columns in the window.
func (S *Snapshot) X() []float64 { return S.xe }

// Z returns the z coordinates of the rows in the window.
func (S *Snapshot) Z() []float64 { return S.ze }

// Dims returns the size of the full grid.
func (S *Snapshot) Dims() (nx, nz int) { return S.nx, S.nz }

// Species returns the number of species in the file.
func (S *Snapshot) Species() int { return S.nss }

// Header returns the scalars at the beginning of the record.
func (S *Snapshot) Header() record.FieldHeader { return S.header }

// Mass returns the mass of each species, in electron masses.
func (S *Snapshot) Mass() []float64 { return S.rec.MustValues("mass") }

// Charge returns the charge of each species.
func (S *Snapshot) Charge() []float64 { return S.rec.MustValues("q") }

// Dfac returns the per-species density factors.
func (S *Snapshot) Dfac() []float64 { return S.rec.MustValues("dfac") }

// Time returns the simulation time of the snapshot.
func (S *Snapshot) Time() float64 { return S.rec.MustScalar("time") }

// Wpewce returns the ratio of the electron plasma frequency to the electron cyclotron frequency.
func (S *Snapshot) Wpewce() float64 { return S.rec.MustScalar("wpewce") }

// FileName returns the file the snapshot was read from, if any.
func (S *Snapshot) FileName() string { return S.filename }

// Record returns the underlying parsed record.
func (S *Snapshot) Record() *record.Record { return S.rec }

// LineCut returns a 1D profile of every windowed plane of k. With a == picdraw.X the
// cut is taken at the index-th column of the window and runs along z; with
// a == picdraw.Z it is the index-th row, running along x. coords are the positions of
// the points of the profile. The profiles are copies.
func (S *Snapshot) LineCut(k Key, a picdraw.Axis, index int) (coords []float64, profiles [][]float64, err error) {
	planes := S.view[k]
	r, c := planes[0].Dims()
	switch a {
	case picdraw.X:
		if index < 0 || index >= c {
			return nil, nil, picdraw.NewError(picdraw.InvalidWindow, "nasa-field", S.filename, "LineCut", fmt.Sprintf("column %d outside a window %d wide", index, c))
		}
		coords = S.ze
		for _, p := range planes {
			profiles = append(profiles, mat.Col(nil, index, p))
		}
	case picdraw.Z:
		if index < 0 || index >= r {
			return nil, nil, picdraw.NewError(picdraw.InvalidWindow, "nasa-field", S.filename, "LineCut", fmt.Sprintf("row %d outside a window %d high", index, r))
		}
		coords = S.xe
		for _, p := range planes {
			profiles = append(profiles, mat.Row(nil, index, p))
		}
	default:
		return nil, nil, picdraw.NewError(picdraw.InvalidAxis, "nasa-field", S.filename, "LineCut", fmt.Sprintf("line cuts run along x or z, not %s", a))
	}
	return coords, profiles, nil
}

func errDecorate(err error, caller string) error {
	return picdraw.Decorate(err, caller)
}
