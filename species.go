/*
 * species.go, part of picdraw.
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

package picdraw

import (
	"fmt"
	"strings"
)

// DefaultSpecies is the number of species in NASA data files: low and high
// energy ions, and low and high energy electrons.
const DefaultSpecies = 4

// Population is one of the two particle populations in the data.
type Population int

const (
	Ions Population = iota
	Electrons
)

func (p Population) String() string {
	switch p {
	case Ions:
		return "i"
	case Electrons:
		return "e"
	}
	return fmt.Sprintf("Population(%d)", int(p))
}

// Species returns the indexes of the species that belong to the population
// when nss species are stored. Species are interleaved: ions at even indexes,
// electrons at odd ones, so with 4 species the ions are 0 and 2 and the
// electrons 1 and 3.
func (p Population) Species(nss int) []int {
	ret := make([]int, 0, (nss+1)/2)
	for i := int(p); i < nss; i += 2 {
		ret = append(ret, i)
	}
	return ret
}

// MassIndex is the species whose mass is used for the whole population.
func (p Population) MassIndex() int { return int(p) }

// Axis is one of the three cartesian directions, used both for spatial
// and for velocity axes.
type Axis int

const (
	X Axis = iota
	Y
	Z
)

var axisNames = [...]string{"x", "y", "z"}

func (a Axis) String() string {
	if a < X || a > Z {
		return fmt.Sprintf("Axis(%d)", int(a))
	}
	return axisNames[a]
}

// ParseAxis takes "x", "y" or "z" (any case). Anything else is an InvalidAxis error.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(s) {
	case "x":
		return X, nil
	case "y":
		return Y, nil
	case "z":
		return Z, nil
	}
	return 0, NewError(InvalidAxis, "", "", "ParseAxis", fmt.Sprintf("axis must be x, y or z, got %q", s))
}
