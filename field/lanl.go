/*
 * lanl.go, part of picdraw.
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
	"io"
	"log"
	"math"
	"path/filepath"
	"sort"

	"github.com/picvis/picdraw"
	"github.com/picvis/picdraw/record"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Info is the content of the info file of a LANL run.
type Info struct {
	Grid [3]int     //nx, ny, nz
	L    [3]float64 //domain lengths
}

// ReadInfo reads a LANL info file. It is always little endian.
func ReadInfo(name string) (Info, error) {
	var inf Info
	rec, err := record.ReadFile(name, record.InfoLayout(), record.Options{Format: "raw"})
	if err != nil {
		return inf, errDecorate(err, "ReadInfo")
	}
	for i, v := range []string{"nx", "ny", "nz"} {
		inf.Grid[i] = rec.MustInt(v)
	}
	for i, v := range []string{"lx", "ly", "lz"} {
		inf.L[i] = rec.MustScalar(v)
	}
	return inf, nil
}

// LANL holds one time slice of a set of LANL field components, one plane per
// component, each with nz rows and nx columns.
type LANL struct {
	Nx, Nz int
	Time   int
	planes map[string]*mat.Dense
}

// LoadLANL reads time slice time (1-based) of each component in keys from the
// files dir/<key>.gda. Grid sizes are nx and nz, as in the Grid of an Info.
func LoadLANL(dir string, keys []string, nx, nz, time int, opts ...record.Options) (*LANL, error) {
	if time < 1 {
		return nil, picdraw.NewError(picdraw.InvalidWindow, "lanl-gda", dir, "LoadLANL", fmt.Sprintf("time slices start at 1, got %d", time))
	}
	o := record.Options{}
	if len(opts) > 0 {
		o = opts[0]
	}
	layout := record.GDALayout(nx, nz)
	if err := layout.Err(); err != nil || nx <= 0 || nz <= 0 {
		return nil, picdraw.NewError(picdraw.MalformedRecord, "lanl-gda", dir, "LoadLANL", fmt.Sprintf("invalid grid %dx%d", nx, nz))
	}
	stride := record.GDAStride(nx, nz)
	if int64(time-1) > math.MaxInt64/stride {
		return nil, picdraw.NewError(picdraw.MalformedRecord, "lanl-gda", dir, "LoadLANL", fmt.Sprintf("time slice %d is beyond any %dx%d file", time, nx, nz))
	}
	skip := stride * int64(time-1)
	F := &LANL{Nx: nx, Nz: nz, Time: time, planes: make(map[string]*mat.Dense, len(keys))}
	for _, k := range keys {
		name := filepath.Join(dir, k+".gda")
		log.Printf("Reading %s ...", name)
		p, err := readGDA(name, layout, skip, o)
		if err != nil {
			return nil, errDecorate(err, "LoadLANL")
		}
		F.planes[k] = mat.NewDense(nz, nx, p)
	}
	return F, nil
}

// LoadLANLDir is LoadLANL with the grid taken from dir/info.
func LoadLANLDir(dir string, keys []string, time int, opts ...record.Options) (*LANL, Info, error) {
	inf, err := ReadInfo(filepath.Join(dir, "info"))
	if err != nil {
		return nil, inf, errDecorate(err, "LoadLANLDir")
	}
	F, err := LoadLANL(dir, keys, inf.Grid[0], inf.Grid[2], time, opts...)
	return F, inf, err
}

func readGDA(name string, layout *record.Layout, skip int64, o record.Options) ([]float64, error) {
	src, err := record.Open(name, o.Format)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	if s, ok := src.(io.Seeker); ok {
		if _, err := s.Seek(skip, io.SeekStart); err != nil {
			return nil, errors.Wrapf(err, "seeking in %s", name)
		}
	} else if n, err := io.CopyN(io.Discard, src, skip); err != nil {
		return nil, picdraw.NewError(picdraw.MalformedRecord, "lanl-gda", name, "readGDA", fmt.Sprintf("only %d of %d bytes before the time slice", n, skip))
	}
	rec, err := record.Decode(src, layout, o)
	if err != nil {
		if E, ok := err.(*picdraw.KindError); ok {
			E.SetFileName(name)
		}
		return nil, err
	}
	return rec.MustValues("field"), nil
}

// Plane returns the plane of the component key.
func (F *LANL) Plane(key string) (*mat.Dense, error) {
	p, ok := F.planes[key]
	if !ok {
		return nil, picdraw.NewError(picdraw.UnknownField, "lanl-gda", "", "Plane", fmt.Sprintf("component %q was not loaded", key))
	}
	return p, nil
}

// Keys returns the loaded components, sorted.
func (F *LANL) Keys() []string {
	ret := make([]string, 0, len(F.planes))
	for k := range F.planes {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}
