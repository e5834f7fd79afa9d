/*
 * keys.go, part of picdraw.
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

package field

import (
	"fmt"

	"github.com/picvis/picdraw"
)

// Key names one of the arrays stored in a NASA field record.
type Key int

const (
	Bx Key = iota
	By
	Bz
	Ex
	Ey
	Ez
	Vxs
	Vys
	Vzs
	Dns
	Pxx
	Pyy
	Pzz
	Pxy
	Pxz
	Pyz
	numKeys
)

var keyNames = [numKeys]string{
	"Bx", "By", "Bz", "Ex", "Ey", "Ez",
	"vxs", "vys", "vzs", "dns",
	"pxx", "pyy", "pzz", "pxy", "pxz", "pyz",
}

var keyIndex = func() map[string]Key {
	m := make(map[string]Key, numKeys)
	for i, v := range keyNames {
		m[v] = Key(i)
	}
	return m
}()

func (k Key) String() string {
	if k < 0 || k >= numKeys {
		return fmt.Sprintf("Key(%d)", int(k))
	}
	return keyNames[k]
}

// PerSpecies is true for the moments, which are stored once per species,
// and false for the electromagnetic field components.
func (k Key) PerSpecies() bool { return k >= Vxs && k < numKeys }

// ParseKey returns the key with the given name, as it appears in the record
// ("Bx", "vys", "pxz", ...). Unknown names are UnknownField errors.
func ParseKey(name string) (Key, error) {
	k, ok := keyIndex[name]
	if !ok {
		return 0, picdraw.NewError(picdraw.UnknownField, "nasa-field", "", "ParseKey", fmt.Sprintf("no field named %q", name))
	}
	return k, nil
}

// Keys returns all the keys, field components first.
func Keys() []Key {
	ret := make([]Key, numKeys)
	for i := range ret {
		ret[i] = Key(i)
	}
	return ret
}

// Velocity returns the density-weighted velocity moment along a.
func Velocity(a picdraw.Axis) Key {
	return Vxs + Key(a)
}

// Pressure returns the raw second moment for the pair of axes a, b (in any order).
func Pressure(a, b picdraw.Axis) Key {
	if a > b {
		a, b = b, a
	}
	switch {
	case a == b:
		return Pxx + Key(a)
	case a == picdraw.X && b == picdraw.Y:
		return Pxy
	case a == picdraw.X && b == picdraw.Z:
		return Pxz
	}
	return Pyz
}
