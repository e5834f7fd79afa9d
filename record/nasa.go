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

package record

// Names of the per-species moment arrays, shaped (species, nz, nx) in field records.
var MomentNames = []string{"vxs", "vys", "vzs", "dns", "pxx", "pyy", "pzz", "pxy", "pxz", "pyz"}

// Names of the single field planes, shaped (nz, nx) in field records.
var PlaneNames = []string{"Bx", "By", "Bz", "Ex", "Ey", "Ez"}

// FieldHeaderSize is the number of bytes in front of the first array of a NASA field record.
const FieldHeaderSize = 32

func pad(name string) Field     { return Field{Name: name, Type: Int32, Pad: true} }
func i4(name string) Field      { return Field{Name: name, Type: Int32} }
func f4(name string) Field      { return Field{Name: name, Type: Float32} }
func f8(name string) Field      { return Field{Name: name, Type: Float64} }
func af4(name string, shape ...int) Field { return Field{Name: name, Type: Float32, Shape: shape} }

// FieldLayout returns the layout of a NASA field record for a nx by nz grid
// and nss species.
func FieldLayout(nx, nz, nss int) *Layout {
	return NewLayout("nasa-field",
		pad("pad1"),
		i4("it"),
		f4("dt"), f4("teti"),
		f4("xmax"), f4("zmax"),
		i4("nnx"), i4("nnz"),
		af4("vxs", nss, nz, nx),
		af4("vys", nss, nz, nx),
		af4("vzs", nss, nz, nx),
		af4("Bx", nz, nx),
		af4("By", nz, nx),
		af4("Bz", nz, nx),
		af4("Ex", nz, nx),
		af4("Ey", nz, nx),
		af4("Ez", nz, nx),
		af4("dns", nss, nz, nx),
		af4("xe", nx),
		af4("ze", nz),
		af4("mass", nss),
		af4("q", nss),
		f8("time"),
		f4("wpewce"),
		af4("dfac", nss),
		af4("pxx", nss, nz, nx),
		af4("pyy", nss, nz, nx),
		af4("pzz", nss, nz, nx),
		af4("pxy", nss, nz, nx),
		af4("pxz", nss, nz, nx),
		af4("pyz", nss, nz, nx),
		pad("pad2"),
	)
}

// FieldHeaderLayout covers only the leading scalars of a field record, which
// are enough to learn the grid size.
func FieldHeaderLayout() *Layout {
	return NewLayout("nasa-field",
		pad("pad1"),
		i4("it"),
		f4("dt"), f4("teti"),
		f4("xmax"), f4("zmax"),
		i4("nnx"), i4("nnz"),
	)
}

// DistLayout returns the layout of a NASA distribution record with grid
// bins on each velocity axis and nss species.
func DistLayout(grid, nss int) *Layout {
	return NewLayout("nasa-dist",
		pad("pad1"),
		af4("axes", nss, grid),
		f4("xlo"), f4("xhi"), f4("zlo"), f4("zhi"),
		Field{Name: "ic", Type: Int32, Shape: []int{nss}},
		af4("fxyz", nss, grid, grid, grid),
		af4("fxy", nss, grid, grid),
		af4("fxz", nss, grid, grid),
		af4("fyz", nss, grid, grid),
		af4("vxa", nss),
		af4("vya", nss),
		af4("vza", nss),
		pad("pad2"),
	)
}

// FieldHeader holds the leading scalars of a NASA field record.
type FieldHeader struct {
	It         int
	Dt, Teti   float64
	Xmax, Zmax float64
	Nx, Nz     int
}

// ReadFieldHeader reads only the header of the NASA field file name.
func ReadFieldHeader(name string, opts ...Options) (FieldHeader, error) {
	var hd FieldHeader
	rec, err := ReadFile(name, FieldHeaderLayout(), opts...)
	if err != nil {
		return hd, decorate(err, "ReadFieldHeader")
	}
	hd.It = rec.MustInt("it")
	hd.Dt = rec.MustScalar("dt")
	hd.Teti = rec.MustScalar("teti")
	hd.Xmax = rec.MustScalar("xmax")
	hd.Zmax = rec.MustScalar("zmax")
	hd.Nx = rec.MustInt("nnx")
	hd.Nz = rec.MustInt("nnz")
	return hd, nil
}
