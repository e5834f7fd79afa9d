/*
 * stream.go, part of picdraw.
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
	"fmt"

	"github.com/picvis/picdraw"
)

// Direction is the order in which a Stream visits the frames.
type Direction int

const (
	Forward Direction = iota
	Reverse
)

func (d Direction) String() string {
	if d == Reverse {
		return "reverse"
	}
	return "forward"
}

// StreamOptions controls a Stream. The zero value visits every frame forwards.
type StreamOptions struct {
	Direction Direction
	Stride    int //frames advanced per step; values below 1 are taken as 1.
}

// Stream hands out one (x, y) pair of component slices per frame, for a chosen pair
// of components, until it returns a LastFrameError. A Stream with stride s over n frames
// yields n/s frames (integer division): frames k*s forwards, or n-1-k*s backwards.
type Stream struct {
	t      *Trace
	cx, cy Component
	dir    Direction
	stride int
	k      int //steps already taken
	frame  int //last frame yielded, -1 before the first
}

var _ picdraw.Stream = (*Stream)(nil)

// Stream returns a new stream over the components cx and cy of every particle. The
// components must be valid, or it panics.
func (T *Trace) Stream(cx, cy Component, opts ...StreamOptions) *Stream {
	for _, c := range []Component{cx, cy} {
		if c < X || c > VZ {
			panic(fmt.Sprintf("trace: invalid component %d", int(c)))
		}
	}
	o := StreamOptions{}
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Stride < 1 {
		o.Stride = 1
	}
	return &Stream{t: T, cx: cx, cy: cy, dir: o.Direction, stride: o.Stride, frame: -1}
}

// Len returns the number of frames the stream yields from the start.
func (S *Stream) Len() int { return S.t.nf / S.stride }

// Frame returns the index in the file of the last frame yielded, or -1 if none was.
func (S *Stream) Frame() int { return S.frame }

// Reset rewinds the stream to its first frame.
func (S *Stream) Reset() {
	S.k = 0
	S.frame = -1
}

// Next returns new slices with the two components of every particle in the next frame.
// After the last frame it returns a picdraw.LastFrameError, and keeps returning it until Reset.
func (S *Stream) Next() (x, y []float64, err error) {
	if S.k >= S.Len() {
		return nil, nil, newlastFrameError(S.t.filename, "Next")
	}
	f := S.k * S.stride
	if S.dir == Reverse {
		f = S.t.nf - 1 - f
	}
	S.k++
	S.frame = f
	return S.t.Column(f, S.cx), S.t.Column(f, S.cy), nil
}

// lastFrameError implements picdraw.LastFrameError
type lastFrameError struct {
	deco     []string
	fileName string
}

// NormalLastFrameTermination does nothing
func (E *lastFrameError) NormalLastFrameTermination() {}

func (E *lastFrameError) FileName() string { return E.fileName }

func (E *lastFrameError) Error() string { return "EOF" }

func (E *lastFrameError) Critical() bool { return false }

func (E *lastFrameError) Format() string { return "trace" }

func (E *lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func newlastFrameError(filename string, caller string) *lastFrameError {
	return &lastFrameError{fileName: filename, deco: []string{caller}}
}
