/*
 * trace.go, part of picdraw.
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

//Package trace reads particle tracer files: an ASCII header line with the number of
//particles and the number of frames, followed by the frames as raw float32 values,
//six per particle (x, y, z, vx, vy, vz).
//
//Frames are handed out one at a time by a Stream, forwards or backwards, the way an
//animation pulls them.
package trace

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/picvis/picdraw"
	"github.com/picvis/picdraw/record"
	"github.com/pkg/errors"
)

// Component is one of the six numbers stored for each particle.
type Component int

const (
	X Component = iota
	Y
	Z
	VX
	VY
	VZ
)

// NComponents is the number of values stored per particle and frame.
const NComponents = 6

var componentNames = [NComponents]string{"x", "y", "z", "vx", "vy", "vz"}

func (c Component) String() string {
	if c < X || c > VZ {
		return fmt.Sprintf("Component(%d)", int(c))
	}
	return componentNames[c]
}

// ParseComponent takes one of x, y, z, vx, vy, vz.
func ParseComponent(s string) (Component, error) {
	for i, v := range componentNames {
		if strings.EqualFold(s, v) {
			return Component(i), nil
		}
	}
	return 0, picdraw.NewError(picdraw.UnknownField, "trace", "", "ParseComponent", fmt.Sprintf("no component %q", s))
}

// Trace is a loaded particle tracer file. It is not modified after loading.
type Trace struct {
	filename string
	np, nf   int
	data     []float64 //nf rows of np*6 values
}

// Load reads the tracer file name, decompressing it if its extension (or the
// Format option) asks for it.
func Load(name string, opts ...record.Options) (*Trace, error) {
	o := record.Options{}
	if len(opts) > 0 {
		o = opts[0]
	}
	src, err := record.Open(name, o.Format)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	T, err := Read(src, o)
	if err != nil {
		if E, ok := err.(*picdraw.KindError); ok {
			E.SetFileName(name)
		}
		return nil, picdraw.Decorate(err, "Load")
	}
	T.filename = name
	return T, nil
}

// Read parses a tracer file from r.
func Read(r io.Reader, opts ...record.Options) (*Trace, error) {
	o := record.Options{}
	if len(opts) > 0 {
		o = opts[0]
	}
	order := o.Order
	if order == nil {
		order = binary.LittleEndian
	}
	h := bufio.NewReader(r)
	str, err := h.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "trace.Read")
	}
	fields := strings.Fields(str)
	if len(fields) < 2 {
		return nil, newError(picdraw.MalformedRecord, "Read", "header %q must hold the particle and frame counts", strings.TrimSpace(str))
	}
	T := new(Trace)
	if T.np, err = strconv.Atoi(fields[0]); err != nil || T.np < 0 {
		return nil, newError(picdraw.MalformedRecord, "Read", "can't read the particle count from %q", fields[0])
	}
	if T.nf, err = strconv.Atoi(fields[1]); err != nil || T.nf < 0 {
		return nil, newError(picdraw.MalformedRecord, "Read", "can't read the frame count from %q", fields[1])
	}
	//bytes per frame and in the whole body, neither may overflow
	if T.np > math.MaxInt/(4*NComponents) {
		return nil, newError(picdraw.MalformedRecord, "Read", "%d particles can't be addressed", T.np)
	}
	frame := 4 * NComponents * T.np
	if frame > 0 && T.nf > math.MaxInt/frame {
		return nil, newError(picdraw.MalformedRecord, "Read", "%d frames of %d particles can't be addressed", T.nf, T.np)
	}
	size := frame * T.nf
	var body bytes.Buffer
	got, err := io.CopyN(&body, h, int64(size))
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return nil, newError(picdraw.MalformedRecord, "Read", "%d frames of %d particles need %d bytes, only %d available", T.nf, T.np, size, got)
	} else if err != nil {
		return nil, errors.Wrap(err, "trace.Read")
	}
	buf := body.Bytes()
	n := size / 4
	if _, err := h.Peek(1); err == nil {
		log.Printf("trace: data beyond %d frames of %d particles is ignored", T.nf, T.np)
	}
	T.data = make([]float64, n)
	for i := range T.data {
		T.data[i] = float64(math.Float32frombits(order.Uint32(buf[4*i:])))
	}
	return T, nil
}

// Particles returns the number of particles.
func (T *Trace) Particles() int { return T.np }

// Frames returns the number of frames.
func (T *Trace) Frames() int { return T.nf }

// FileName returns the file the trace was read from, if any.
func (T *Trace) FileName() string { return T.filename }

// Column returns a new slice with component c of every particle in frame f.
func (T *Trace) Column(f int, c Component) []float64 {
	if f < 0 || f >= T.nf {
		panic(fmt.Sprintf("trace: frame %d out of range (%d frames)", f, T.nf))
	}
	row := T.data[f*T.np*NComponents : (f+1)*T.np*NComponents]
	ret := make([]float64, T.np)
	for i := range ret {
		ret[i] = row[i*NComponents+int(c)]
	}
	return ret
}

// State returns the six components of particle p in frame f.
func (T *Trace) State(f, p int) [NComponents]float64 {
	var ret [NComponents]float64
	copy(ret[:], T.data[(f*T.np+p)*NComponents:])
	return ret
}

func newError(kind picdraw.Kind, caller, format string, args ...interface{}) error {
	return picdraw.NewError(kind, "trace", "", caller, fmt.Sprintf(format, args...))
}
