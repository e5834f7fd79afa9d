/*
 * quantity.go, part of picdraw.
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
	"sort"

	"github.com/picvis/picdraw"
	"github.com/picvis/picdraw/field"
	"gonum.org/v1/gonum/mat"
)

type recipe int

const (
	raw recipe = iota
	density
	current
	velocity
	pressureTensor
	temperature
)

// Quantity is one of the closed set of quantities that can be computed from a
// field snapshot, either stored ("Bx", "dns", "pxy", ...) or derived ("n_i",
// "jx_e", "Vz_i", "pxy_e", "T_i", ...).
type Quantity struct {
	name   string
	recipe recipe
	key    field.Key
	pop    picdraw.Population
	a, b   picdraw.Axis
}

// Name returns the name of the quantity, as accepted by ParseQuantity.
func (q Quantity) Name() string { return q.name }

func (q Quantity) String() string { return q.name }

// Unit returns the kind of the quantity, for rescaling.
func (q Quantity) Unit() Unit { return UnitOf(q.name) }

// PerSpecies is true for the stored moments, which evaluate to one plane per species.
func (q Quantity) PerSpecies() bool { return q.recipe == raw && q.key.PerSpecies() }

var recipes = map[recipe]func(m Moments, q Quantity) []*mat.Dense{
	raw: func(m Moments, q Quantity) []*mat.Dense { return m.Field(q.key) },
	density: func(m Moments, q Quantity) []*mat.Dense {
		return []*mat.Dense{Density(m, q.pop)}
	},
	current: func(m Moments, q Quantity) []*mat.Dense {
		return []*mat.Dense{Current(m, q.pop, q.a)}
	},
	velocity: func(m Moments, q Quantity) []*mat.Dense {
		return []*mat.Dense{BulkVelocity(m, q.pop, q.a)}
	},
	pressureTensor: func(m Moments, q Quantity) []*mat.Dense {
		return []*mat.Dense{Pressure(m, q.pop, q.a, q.b)}
	},
	temperature: func(m Moments, q Quantity) []*mat.Dense {
		return []*mat.Dense{Temperature(m, q.pop)}
	},
}

var quantities = buildTable()

func buildTable() map[string]Quantity {
	t := make(map[string]Quantity)
	add := func(q Quantity) { t[q.name] = q }
	for _, k := range field.Keys() {
		add(Quantity{name: k.String(), recipe: raw, key: k})
	}
	axes := []picdraw.Axis{picdraw.X, picdraw.Y, picdraw.Z}
	pairs := [][2]picdraw.Axis{
		{picdraw.X, picdraw.X}, {picdraw.Y, picdraw.Y}, {picdraw.Z, picdraw.Z},
		{picdraw.X, picdraw.Y}, {picdraw.X, picdraw.Z}, {picdraw.Y, picdraw.Z},
	}
	for _, p := range []picdraw.Population{picdraw.Ions, picdraw.Electrons} {
		suffix := "_" + p.String()
		add(Quantity{name: "n" + suffix, recipe: density, pop: p})
		add(Quantity{name: "T" + suffix, recipe: temperature, pop: p})
		for _, a := range axes {
			add(Quantity{name: "j" + a.String() + suffix, recipe: current, pop: p, a: a})
			add(Quantity{name: "V" + a.String() + suffix, recipe: velocity, pop: p, a: a})
		}
		for _, ab := range pairs {
			add(Quantity{name: "p" + ab[0].String() + ab[1].String() + suffix, recipe: pressureTensor, pop: p, a: ab[0], b: ab[1]})
		}
	}
	return t
}

// ParseQuantity returns the quantity with the given name. Names not in the
// table are UnknownField errors.
func ParseQuantity(name string) (Quantity, error) {
	q, ok := quantities[name]
	if !ok {
		return q, picdraw.NewError(picdraw.UnknownField, "nasa-field", "", "ParseQuantity", fmt.Sprintf("no quantity named %q", name))
	}
	return q, nil
}

// Quantities returns the names of all the quantities, sorted.
func Quantities() []string {
	ret := make([]string, 0, len(quantities))
	for k := range quantities {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

// Evaluate computes q over the active window of m. Stored moments give one plane per
// species, which alias the snapshot; everything else gives a single new plane.
// Derived quantities panic if their population fails Check.
func Evaluate(m Moments, q Quantity) []*mat.Dense {
	return recipes[q.recipe](m, q)
}

// EvaluateName is Evaluate for a quantity name.
func EvaluateName(m Moments, name string) ([]*mat.Dense, error) {
	q, err := ParseQuantity(name)
	if err != nil {
		return nil, picdraw.Decorate(err, "EvaluateName")
	}
	if q.recipe != raw {
		if err := Check(m, q.pop); err != nil {
			return nil, picdraw.Decorate(err, "EvaluateName")
		}
	}
	return Evaluate(m, q), nil
}

// BoundaryWindow returns w moved off the first column and row of the grid when
// quantities of unit u are unphysical there: densities, pressures, temperatures
// and bulk velocities. Other units, and windows already inside, are returned as is.
// The result may be empty (XMin == XMax), which SetWindow rejects.
func BoundaryWindow(w field.Window, u Unit) field.Window {
	switch u {
	case UnitN, UnitP, UnitT, UnitV:
		w.XMin = max(w.XMin, 1)
		w.ZMin = max(w.ZMin, 1)
	}
	return w
}
