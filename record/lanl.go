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

package record

// InfoLayout is the layout of the LANL info file: the grid size and the
// domain lengths, each in its own Fortran record.
func InfoLayout() *Layout {
	return NewLayout("lanl-info",
		pad("pad1"),
		i4("nx"), i4("ny"), i4("nz"),
		pad("pad2"),
		pad("pad3"),
		f4("lx"), f4("ly"), f4("lz"),
	)
}

// GDALayout is the layout of one time slice of a LANL .gda file. In the file,
// slices are GDAStride(nx, nz) bytes apart.
func GDALayout(nx, nz int) *Layout {
	return NewLayout("lanl-gda", af4("field", nz, nx))
}

// GDAStride is the distance in bytes between consecutive time slices of a .gda file:
// the plane plus two words. nx and nz must make a valid GDALayout.
func GDAStride(nx, nz int) int64 {
	return int64(GDALayout(nx, nz).Size()) + 8
}
