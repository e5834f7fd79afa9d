/*
 * write.go, part of picdraw.
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

package trace

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/picvis/picdraw"
	"github.com/picvis/picdraw/record"
	"github.com/pkg/errors"
)

// Write writes np particles and the given frames to w in the tracer format. Each frame
// must hold np*6 values, particle after particle.
func Write(w io.Writer, np int, frames [][]float64, opts ...record.Options) error {
	order := binary.ByteOrder(binary.LittleEndian)
	if len(opts) > 0 && opts[0].Order != nil {
		order = opts[0].Order
	}
	for i, f := range frames {
		if len(f) != np*NComponents {
			return newError(picdraw.MalformedRecord, "Write", "frame %d has %d values, %d expected", i, len(f), np*NComponents)
		}
	}
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d %d\n", np, len(frames)); err != nil {
		return errors.Wrap(err, "trace.Write")
	}
	b := make([]byte, 4)
	for _, f := range frames {
		for _, v := range f {
			order.PutUint32(b, math.Float32bits(float32(v)))
			if _, err := bw.Write(b); err != nil {
				return errors.Wrap(err, "trace.Write")
			}
		}
	}
	return errors.Wrap(bw.Flush(), "trace.Write")
}

// WriteFile is Write to the file name, compressed according to its extension or the Format option.
func WriteFile(name string, np int, frames [][]float64, opts ...record.Options) error {
	o := record.Options{}
	if len(opts) > 0 {
		o = opts[0]
	}
	w, err := record.Create(name, o.Format)
	if err != nil {
		return err
	}
	if err := Write(w, np, frames, o); err != nil {
		w.Close()
		if E, ok := err.(*picdraw.KindError); ok {
			E.SetFileName(name)
		}
		return picdraw.Decorate(err, "WriteFile")
	}
	return errors.Wrap(w.Close(), "trace.WriteFile")
}
