/*
 * record.go, part of picdraw.
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

package record

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"github.com/picvis/picdraw"
	"github.com/pkg/errors"
)

// Options control how records are read and written.
type Options struct {
	//Order is the byte order of the file. Nil means little endian.
	Order binary.ByteOrder
	//Format selects a compression format ("raw", "gz", "zst", "flate", "lzw").
	//An empty string means "deduce it from the file extension".
	Format string
}

var defaultOptions = Options{Order: binary.LittleEndian}

func pickOptions(opts []Options) Options {
	o := defaultOptions
	if len(opts) > 0 {
		o = opts[0]
		if o.Order == nil {
			o.Order = binary.LittleEndian
		}
	}
	return o
}

// Record is one parsed binary record. Every value is kept as float64 in a flat,
// row-major slice, whatever its type in the file (int32 and float32 convert
// exactly). The slices are owned by the record and are handed out without copying.
type Record struct {
	layout *Layout
	values map[string][]float64
}

// New returns a zero-filled record with the given layout, ready to be
// filled with Set and written with Encode. It panics if layout.Err is not nil.
func New(layout *Layout) *Record {
	if err := layout.Err(); err != nil {
		panic("record.New: " + err.Error())
	}
	R := &Record{layout: layout, values: make(map[string][]float64, len(layout.fields))}
	for _, f := range layout.fields {
		R.values[f.Name] = make([]float64, f.Len())
	}
	return R
}

// Layout returns the schema of the record.
func (R *Record) Layout() *Layout { return R.layout }

// Values returns the flat backing slice of the named field. Changes to the
// slice are changes to the record.
func (R *Record) Values(name string) ([]float64, error) {
	v, ok := R.values[name]
	if !ok {
		return nil, picdraw.NewError(picdraw.UnknownField, R.layout.name, "", "Values", fmt.Sprintf("no field %q in layout", name))
	}
	return v, nil
}

// Scalar returns the first (for scalars, the only) element of the named field.
func (R *Record) Scalar(name string) (float64, error) {
	v, err := R.Values(name)
	if err != nil {
		return 0, decorate(err, "Scalar")
	}
	if len(v) == 0 {
		return 0, picdraw.NewError(picdraw.MalformedRecord, R.layout.name, "", "Scalar", fmt.Sprintf("field %q is empty", name))
	}
	return v[0], nil
}

// Int is Scalar for integer fields.
func (R *Record) Int(name string) (int, error) {
	v, err := R.Scalar(name)
	return int(v), decorate(err, "Int")
}

// MustScalar is Scalar, but it panics if the field is not in the layout.
// It is meant for names that are part of a fixed layout.
func (R *Record) MustScalar(name string) float64 {
	v, err := R.Scalar(name)
	if err != nil {
		panic(err.Error())
	}
	return v
}

// MustInt is Int, but it panics if the field is not in the layout.
func (R *Record) MustInt(name string) int {
	return int(R.MustScalar(name))
}

// MustValues is Values, but it panics if the field is not in the layout.
func (R *Record) MustValues(name string) []float64 {
	v, err := R.Values(name)
	if err != nil {
		panic(err.Error())
	}
	return v
}

// Set copies v into the named field. v must have exactly as many elements as the field.
func (R *Record) Set(name string, v ...float64) error {
	dst, err := R.Values(name)
	if err != nil {
		return decorate(err, "Set")
	}
	if len(v) != len(dst) {
		return picdraw.NewError(picdraw.MalformedRecord, R.layout.name, "", "Set", fmt.Sprintf("field %q takes %d values, %d given", name, len(dst), len(v)))
	}
	copy(dst, v)
	return nil
}

// Decode reads exactly one record with the given layout from r.
// A short read, or a layout with a non-nil Err, is a MalformedRecord error.
// The buffer grows with the data actually read, so a header promising more
// than the stream holds costs no more memory than the stream itself.
func Decode(r io.Reader, layout *Layout, opts ...Options) (*Record, error) {
	o := pickOptions(opts)
	if err := layout.Err(); err != nil {
		return nil, decorate(err, "Decode")
	}
	var b bytes.Buffer
	n, err := io.CopyN(&b, r, int64(layout.Size()))
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return nil, picdraw.NewError(picdraw.MalformedRecord, layout.name, "", "Decode", fmt.Sprintf("record needs %d bytes, only %d available", layout.Size(), n))
	}
	if err != nil {
		return nil, errors.Wrap(err, "record.Decode")
	}
	buf := b.Bytes()
	R := &Record{layout: layout, values: make(map[string][]float64, len(layout.fields))}
	off := 0
	for _, f := range layout.fields {
		v := make([]float64, f.Len())
		width := f.Type.Size()
		for i := range v {
			b := buf[off : off+width]
			switch f.Type {
			case Int32:
				v[i] = float64(int32(o.Order.Uint32(b)))
			case Float32:
				v[i] = float64(math.Float32frombits(o.Order.Uint32(b)))
			case Float64:
				v[i] = math.Float64frombits(o.Order.Uint64(b))
			}
			off += width
		}
		R.values[f.Name] = v
	}
	R.checkPads()
	return R, nil
}

// checkPads logs a heads-up if the Fortran record markers don't agree with each other.
// Some writers leave them at zero, so this is never an error.
func (R *Record) checkPads() {
	var pads []float64
	for _, f := range R.layout.fields {
		if f.Pad {
			pads = append(pads, R.values[f.Name][0])
		}
	}
	for _, p := range pads[min(1, len(pads)):] {
		if p != pads[0] {
			log.Printf("record: %s record markers differ (%v), the file may not match the layout", R.layout.name, pads)
			return
		}
	}
}

// Encode writes R to w. Padding words are written as Fortran record
// markers, i.e. the size of the record without them.
func Encode(w io.Writer, R *Record, opts ...Options) error {
	o := pickOptions(opts)
	L := R.layout
	if err := L.Err(); err != nil {
		return decorate(err, "Encode")
	}
	marker := L.Size()
	for _, f := range L.fields {
		if f.Pad {
			marker -= f.Size()
		}
	}
	buf := make([]byte, L.Size())
	off := 0
	for _, f := range L.fields {
		v := R.values[f.Name]
		width := f.Type.Size()
		for i := 0; i < f.Len(); i++ {
			b := buf[off : off+width]
			switch {
			case f.Pad:
				o.Order.PutUint32(b, uint32(marker))
			case f.Type == Int32:
				o.Order.PutUint32(b, uint32(int32(v[i])))
			case f.Type == Float32:
				o.Order.PutUint32(b, math.Float32bits(float32(v[i])))
			case f.Type == Float64:
				o.Order.PutUint64(b, math.Float64bits(v[i]))
			}
			off += width
		}
	}
	if _, err := w.Write(buf); err != nil {
		return errors.Wrap(err, "record.Encode")
	}
	return nil
}

// ReadFile opens name (decompressing it if needed) and decodes one record from it.
// Plain files shorter than the layout are rejected before anything is read.
func ReadFile(name string, layout *Layout, opts ...Options) (*Record, error) {
	o := pickOptions(opts)
	if err := layout.Err(); err != nil {
		E := err.(*picdraw.KindError)
		E.SetFileName(name)
		return nil, decorate(E, "ReadFile")
	}
	format := o.Format
	if format == "" {
		format = formatOf(name)
	}
	if format == "raw" {
		info, err := os.Stat(name)
		if err != nil {
			return nil, errors.Wrapf(err, "record.ReadFile")
		}
		if info.Mode().IsRegular() && info.Size() < int64(layout.Size()) {
			return nil, picdraw.NewError(picdraw.MalformedRecord, layout.name, name, "ReadFile",
				fmt.Sprintf("record needs %d bytes, the file has %d", layout.Size(), info.Size()))
		}
	}
	src, err := Open(name, o.Format)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	R, err := Decode(src, layout, o)
	if err != nil {
		if E, ok := err.(*picdraw.KindError); ok {
			E.SetFileName(name)
			return nil, decorate(E, "ReadFile")
		}
		return nil, errors.Wrapf(err, "reading %s", name)
	}
	return R, nil
}

// WriteFile creates name (compressing according to its extension or to
// the Format option) and writes R to it.
func WriteFile(name string, R *Record, opts ...Options) error {
	o := pickOptions(opts)
	dst, err := Create(name, o.Format)
	if err != nil {
		return err
	}
	if err := Encode(dst, R, o); err != nil {
		dst.Close()
		return errors.Wrapf(err, "writing %s", name)
	}
	return errors.Wrapf(dst.Close(), "closing %s", name)
}

func decorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	return picdraw.Decorate(err, caller)
}
