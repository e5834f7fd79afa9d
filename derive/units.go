/*
 * units.go, part of picdraw.
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

package derive

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Unit is the kind of physical quantity, which decides how it rescales from
// electron units to ion (MHD) units.
type Unit int

const (
	UnitNone Unit = iota
	UnitB         //magnetic field
	UnitE         //electric field
	UnitJ         //current
	UnitN         //density
	UnitP         //pressure
	UnitT         //temperature
	UnitV         //bulk velocity
)

var unitNames = [...]string{"none", "B", "E", "j", "n", "p", "T", "V"}

func (u Unit) String() string {
	if u < UnitNone || u > UnitV {
		return fmt.Sprintf("Unit(%d)", int(u))
	}
	return unitNames[u]
}

// UnitOf infers the unit kind from the first character of a quantity name
// ("Bx", "jy_i", "n_e", "pxx", "T_i", "Vz_e", ...). Anything else is UnitNone.
func UnitOf(name string) Unit {
	if name == "" {
		return UnitNone
	}
	switch name[0] {
	case 'B':
		return UnitB
	case 'E':
		return UnitE
	case 'j':
		return UnitJ
	case 'n':
		return UnitN
	case 'p':
		return UnitP
	case 'T':
		return UnitT
	case 'V':
		return UnitV
	}
	return UnitNone
}

// Factor returns the multiplier that takes a quantity of kind u from electron to
// ion units, given wpewce and smi, the square root of the ion to electron mass ratio.
func (u Unit) Factor(wpewce, smi float64) float64 {
	switch u {
	case UnitB:
		return wpewce
	case UnitE:
		return wpewce * wpewce * smi
	case UnitJ:
		return wpewce * smi
	case UnitN:
		return smi * smi
	case UnitP:
		return wpewce * wpewce
	case UnitT:
		return (wpewce / smi) * (wpewce / smi)
	case UnitV:
		return wpewce / smi
	}
	return 1
}

// Scaling holds the two parameters of the conversion to ion units.
type Scaling struct {
	Wpewce float64
	Smi    float64
}

// Smi returns the square root of the ion mass, mass[0], with the electron mass
// normalized to 1, which is the ion to electron mass ratio convention of the data.
func Smi(mass []float64) float64 {
	return math.Sqrt(mass[0])
}

// MHD returns the scaling parameters stored in a snapshot.
func MHD(s interface {
	Wpewce() float64
	Mass() []float64
}) Scaling {
	return Scaling{Wpewce: s.Wpewce(), Smi: Smi(s.Mass())}
}

// Rescale returns a copy of m converted to ion units as a quantity of kind u.
func (sc Scaling) Rescale(m mat.Matrix, u Unit) *mat.Dense {
	var ret mat.Dense
	ret.Scale(u.Factor(sc.Wpewce, sc.Smi), m)
	return &ret
}

// Axis returns a copy of the coordinates x converted from electron to ion skin depths.
func (sc Scaling) Axis(x []float64) []float64 {
	ret := make([]float64, len(x))
	floats.ScaleTo(ret, 1/sc.Smi, x)
	return ret
}

// Rescale is Scaling{wpewce, smi}.Rescale(m, u).
func Rescale(m mat.Matrix, u Unit, wpewce, smi float64) *mat.Dense {
	return Scaling{Wpewce: wpewce, Smi: smi}.Rescale(m, u)
}
