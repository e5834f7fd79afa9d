/*
 * config.go, part of picdraw.
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

//Package config reads YAML descriptions of simulation datasets: where the files are,
//how they are encoded, and the grid and species they hold, and opens the snapshots
//they point to.
//
//A dataset file looks like:
//
//	source: nasa
//	path: /data/run3
//	species: 4
//	byte_order: little
//	compression: ""
//	grid: {nx: 0, nz: 0}
//	dist_grid: 51
//	window: {xmin: 0, xmax: 512, zmin: 100, zmax: 400}
//	trace: tracer.dat
package config

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/picvis/picdraw"
	"github.com/picvis/picdraw/dist"
	"github.com/picvis/picdraw/field"
	"github.com/picvis/picdraw/record"
	"github.com/picvis/picdraw/trace"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	SourceNASA = "nasa"
	SourceLANL = "lanl"
)

// Grid is the size of a field grid. Zeros mean "as the files say".
type Grid struct {
	Nx int `yaml:"nx"`
	Nz int `yaml:"nz"`
}

// Window is an optional field window; all zeros means the whole grid.
type Window struct {
	XMin int `yaml:"xmin"`
	XMax int `yaml:"xmax"`
	ZMin int `yaml:"zmin"`
	ZMax int `yaml:"zmax"`
}

// Dataset describes one simulation run on disk.
type Dataset struct {
	Source      string   `yaml:"source"` //nasa or lanl
	Path        string   `yaml:"path"`
	Species     int      `yaml:"species"`
	ByteOrder   string   `yaml:"byte_order"`  //little or big
	Compression string   `yaml:"compression"` //empty means by extension
	Grid        Grid     `yaml:"grid"`
	DistGrid    int      `yaml:"dist_grid"`
	Window      Window   `yaml:"window"`
	Keys        []string `yaml:"keys"` //LANL components to read
	Trace       string   `yaml:"trace"`
}

// Default returns the dataset settings used for anything a file leaves out.
func Default() Dataset {
	return Dataset{
		Source:    SourceNASA,
		Path:      ".",
		Species:   picdraw.DefaultSpecies,
		ByteOrder: "little",
	}
}

// Load reads and validates the dataset description in the YAML file path. Relative
// data paths are taken relative to the directory of the description.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read dataset config")
	}
	D, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset config %s", path)
	}
	if !filepath.IsAbs(D.Path) {
		D.Path = filepath.Join(filepath.Dir(path), D.Path)
	}
	return D, nil
}

// Parse decodes and validates a dataset description.
func Parse(data []byte) (*Dataset, error) {
	D := Default()
	if err := yaml.Unmarshal(data, &D); err != nil {
		return nil, newError(picdraw.MalformedRecord, "Parse", "%v", err)
	}
	D.Source = strings.ToLower(D.Source)
	D.ByteOrder = strings.ToLower(D.ByteOrder)
	if err := D.Validate(); err != nil {
		return nil, err
	}
	return &D, nil
}

// Validate checks that the settings make sense together.
func (D *Dataset) Validate() error {
	switch D.Source {
	case SourceNASA, SourceLANL:
	default:
		return newError(picdraw.UnknownField, "Validate", "unknown source %q, must be %s or %s", D.Source, SourceNASA, SourceLANL)
	}
	switch D.ByteOrder {
	case "little", "big":
	default:
		return newError(picdraw.UnknownField, "Validate", "unknown byte order %q, must be little or big", D.ByteOrder)
	}
	if D.Species <= 0 {
		return newError(picdraw.InvalidSpecies, "Validate", "species must be positive, not %d", D.Species)
	}
	if D.Grid.Nx < 0 || D.Grid.Nz < 0 || (D.Grid.Nx == 0) != (D.Grid.Nz == 0) {
		return newError(picdraw.InvalidWindow, "Validate", "grid %dx%d: give both sizes or neither", D.Grid.Nx, D.Grid.Nz)
	}
	if D.DistGrid < 0 {
		return newError(picdraw.InvalidWindow, "Validate", "negative distribution grid %d", D.DistGrid)
	}
	if D.Source == SourceLANL && len(D.Keys) == 0 {
		return newError(picdraw.UnknownField, "Validate", "a %s dataset needs the keys to read", SourceLANL)
	}
	return nil
}

// RecordOptions returns the decoding options for the files of the dataset.
func (D *Dataset) RecordOptions() record.Options {
	o := record.Options{Order: binary.LittleEndian, Format: D.Compression}
	if D.ByteOrder == "big" {
		o.Order = binary.BigEndian
	}
	return o
}

// FieldPath returns the path of the NASA field file for time index t.
func (D *Dataset) FieldPath(t int) string {
	return filepath.Join(D.Path, field.FileName(t))
}

// window returns the configured window, or false if none is set.
func (D *Dataset) window() (field.Window, bool) {
	w := D.Window
	if w == (Window{}) {
		return field.Window{}, false
	}
	return field.Window{XMin: w.XMin, XMax: w.XMax, ZMin: w.ZMin, ZMax: w.ZMax}, true
}

// Field loads the NASA field snapshot for time index t, with the configured window.
func (D *Dataset) Field(t int) (*field.Snapshot, error) {
	if D.Source != SourceNASA {
		return nil, newError(picdraw.UnknownField, "Field", "Field needs a %s dataset, not %s", SourceNASA, D.Source)
	}
	S, err := field.Load(D.FieldPath(t), D.Grid.Nx, D.Grid.Nz, D.Species, D.RecordOptions())
	if err != nil {
		return nil, picdraw.Decorate(err, "config.Field")
	}
	if w, ok := D.window(); ok {
		if err := S.SetWindow(w); err != nil {
			return nil, picdraw.Decorate(err, "config.Field")
		}
	}
	return S, nil
}

// LANL loads the configured components of a LANL dataset at the given (1-based) time.
func (D *Dataset) LANL(time int) (*field.LANL, field.Info, error) {
	if D.Source != SourceLANL {
		return nil, field.Info{}, newError(picdraw.UnknownField, "LANL", "LANL needs a %s dataset, not %s", SourceLANL, D.Source)
	}
	F, info, err := field.LoadLANLDir(D.Path, D.Keys, time, D.RecordOptions())
	if err != nil {
		return nil, info, picdraw.Decorate(err, "config.LANL")
	}
	return F, info, nil
}

// Dist loads the distribution file name, relative to the dataset path.
func (D *Dataset) Dist(name string) (*dist.Snapshot, error) {
	if !filepath.IsAbs(name) {
		name = filepath.Join(D.Path, name)
	}
	d, err := dist.Load(name, D.DistGrid, D.Species, D.RecordOptions())
	if err != nil {
		return nil, picdraw.Decorate(err, "config.Dist")
	}
	return d, nil
}

// Tracer loads the configured particle trace file.
func (D *Dataset) Tracer() (*trace.Trace, error) {
	if D.Trace == "" {
		return nil, newError(picdraw.UnknownField, "Tracer", "no trace file configured")
	}
	name := D.Trace
	if !filepath.IsAbs(name) {
		name = filepath.Join(D.Path, name)
	}
	T, err := trace.Load(name, D.RecordOptions())
	if err != nil {
		return nil, picdraw.Decorate(err, "config.Tracer")
	}
	return T, nil
}

func newError(kind picdraw.Kind, caller, format string, args ...interface{}) error {
	return picdraw.NewError(kind, "config", "", caller, fmt.Sprintf(format, args...))
}
