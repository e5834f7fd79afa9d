/*
 * derive.go, part of picdraw.
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

// Package derive computes physical quantities from the per-species moments stored in
// a NASA field snapshot: densities, currents, bulk velocities, thermal pressure tensors
// and temperatures of the ion and electron populations, and their rescaling from
// electron to ion (MHD) units.
//
// All functions are pure: they read the (windowed) planes of the snapshot and return
// new matrices. Nothing guards against zero densities; empty cells give NaN or Inf.
// A population must be present in the snapshot (see Check): with a single species
// there are no electrons.
package derive

import (
	"fmt"

	"github.com/picvis/picdraw"
	"github.com/picvis/picdraw/field"
	"gonum.org/v1/gonum/mat"
)

// Moments is what the derivations need from a snapshot. *field.Snapshot implements it.
type Moments interface {
	Field(k field.Key) []*mat.Dense
	Mass() []float64
	Species() int
}

var _ Moments = (*field.Snapshot)(nil)

// Check returns an InvalidSpecies error if m holds no species of population p, or
// no mass for it. Electrons need at least 2 species. The functions below that take a
// population panic when Check fails, as gonum does for mismatched dimensions;
// EvaluateName checks first and returns the error instead.
func Check(m Moments, p picdraw.Population) error {
	nss := m.Species()
	if len(p.Species(nss)) == 0 || p.MassIndex() >= len(m.Mass()) {
		return picdraw.NewError(picdraw.InvalidSpecies, "nasa-field", "", "Check",
			fmt.Sprintf("population %s needs species %d, only %d species and %d masses stored", p, p.MassIndex(), nss, len(m.Mass())))
	}
	return nil
}

// Sum adds up the planes of the given species into a new matrix. It panics
// if no species are given.
func Sum(planes []*mat.Dense, species []int) *mat.Dense {
	if len(species) == 0 {
		panic("derive.Sum: no species to add up")
	}
	ret := mat.DenseCopyOf(planes[species[0]])
	for _, s := range species[1:] {
		ret.Add(ret, planes[s])
	}
	return ret
}

func popSum(m Moments, k field.Key, p picdraw.Population) *mat.Dense {
	if err := Check(m, p); err != nil {
		panic(err.Error())
	}
	return Sum(m.Field(k), p.Species(m.Species()))
}

// Density returns the number density of the population.
func Density(m Moments, p picdraw.Population) *mat.Dense {
	return popSum(m, field.Dns, p)
}

// Current returns the a component of the current (particle flux) of the population.
// The stored velocity moments are already density weighted, so this is their sum.
func Current(m Moments, p picdraw.Population, a picdraw.Axis) *mat.Dense {
	return popSum(m, field.Velocity(a), p)
}

// BulkVelocity returns the a component of the bulk velocity of the population: current over density.
func BulkVelocity(m Moments, p picdraw.Population, a picdraw.Axis) *mat.Dense {
	v := Current(m, p, a)
	v.DivElem(v, Density(m, p))
	return v
}

// Pressure returns the ab component of the thermal pressure tensor of the population:
// the raw second moment minus the bulk flow contribution j_a*j_b/n, times the species mass.
func Pressure(m Moments, p picdraw.Population, a, b picdraw.Axis) *mat.Dense {
	return pressure(m, p, a, b, Density(m, p))
}

func pressure(m Moments, p picdraw.Population, a, b picdraw.Axis, n *mat.Dense) *mat.Dense {
	ret := popSum(m, field.Pressure(a, b), p)
	var flow mat.Dense
	flow.MulElem(Current(m, p, a), Current(m, p, b))
	flow.DivElem(&flow, n)
	ret.Sub(ret, &flow)
	ret.Scale(m.Mass()[p.MassIndex()], ret)
	return ret
}

// Temperature returns the temperature of the population: the trace of the thermal
// pressure tensor over the density, divided by 3.
func Temperature(m Moments, p picdraw.Population) *mat.Dense {
	n := Density(m, p)
	ret := pressure(m, p, picdraw.X, picdraw.X, n)
	ret.Add(ret, pressure(m, p, picdraw.Y, picdraw.Y, n))
	ret.Add(ret, pressure(m, p, picdraw.Z, picdraw.Z, n))
	ret.DivElem(ret, n)
	ret.Scale(1.0/3.0, ret)
	return ret
}
