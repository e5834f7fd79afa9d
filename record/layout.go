/*
 * layout.go, part of picdraw.
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
	"fmt"
	"math"

	"github.com/picvis/picdraw"
)

// Type is the element type of a field in a binary record.
type Type int

const (
	Int32 Type = iota
	Float32
	Float64
)

// Size returns the width in bytes of one element.
func (t Type) Size() int {
	if t == Float64 {
		return 8
	}
	return 4
}

func (t Type) String() string {
	switch t {
	case Int32:
		return "i4"
	case Float32:
		return "f4"
	case Float64:
		return "f8"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Field describes one named member of a record. A nil Shape means a scalar.
// Pad marks the Fortran record markers that surround NASA records.
type Field struct {
	Name  string
	Type  Type
	Shape []int
	Pad   bool
}

// Len is the number of elements in the field. It is only meaningful for
// fields of a layout whose Err is nil.
func (f Field) Len() int {
	n, _ := f.count()
	return n
}

// count is Len, and false if an extent is negative or the product overflows.
func (f Field) count() (int, bool) {
	n := 1
	for _, v := range f.Shape {
		if v < 0 || (v > 0 && n > math.MaxInt/v) {
			return 0, false
		}
		n *= v
	}
	return n, true
}

// Size is the number of bytes the field takes in the record.
func (f Field) Size() int {
	return f.Len() * f.Type.Size()
}

// Layout is the static, packed (no alignment) schema of a record. It is
// fixed once the grid dimensions and the number of species are known.
type Layout struct {
	name   string
	fields []Field
	index  map[string]int
	size   int
	bad    string //why the extents can't be read, empty if they can
}

// NewLayout builds a layout from the fields, in file order. It panics on
// repeated names, as those are programming errors. Extents usually come from
// file headers, so a negative extent, or a record too large to address, is not
// a panic: it is reported by Err, and Decode refuses to read such a layout.
func NewLayout(name string, fields ...Field) *Layout {
	L := &Layout{name: name, fields: fields, index: make(map[string]int, len(fields))}
	for i, f := range fields {
		if _, ok := L.index[f.Name]; ok {
			panic("record.NewLayout: repeated field " + f.Name)
		}
		L.index[f.Name] = i
		if L.bad != "" {
			continue
		}
		n, ok := f.count()
		if !ok || n > (math.MaxInt-L.size)/f.Type.Size() {
			L.bad = fmt.Sprintf("field %s with shape %v does not fit in a record", f.Name, f.Shape)
			L.size = 0
			continue
		}
		L.size += n * f.Type.Size()
	}
	return L
}

// Err returns a MalformedRecord error if the extents of the layout are negative
// or the record is too large to address, and nil otherwise.
func (L *Layout) Err() error {
	if L.bad == "" {
		return nil
	}
	return picdraw.NewError(picdraw.MalformedRecord, L.name, "", "Layout", L.bad)
}

// Name returns the name of the layout, used in error messages.
func (L *Layout) Name() string { return L.name }

// Size is the record stride in bytes, padding words included.
func (L *Layout) Size() int { return L.size }

// Fields returns the fields in file order. The slice must not be modified.
func (L *Layout) Fields() []Field { return L.fields }

// Field returns the field with the given name.
func (L *Layout) Field(name string) (Field, bool) {
	i, ok := L.index[name]
	if !ok {
		return Field{}, false
	}
	return L.fields[i], true
}

// Offset returns the byte offset of the named field from the start of the record,
// or -1 if there is no such field.
func (L *Layout) Offset(name string) int {
	i, ok := L.index[name]
	if !ok {
		return -1
	}
	off := 0
	for _, f := range L.fields[:i] {
		off += f.Size()
	}
	return off
}
