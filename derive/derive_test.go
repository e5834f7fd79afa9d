package derive

import (
	"errors"
	"math"
	"testing"

	"github.com/picvis/picdraw"
	"github.com/picvis/picdraw/field"
	"gonum.org/v1/gonum/mat"
)

const (
	rows = 3
	cols = 4
)

// moments is an in-memory Moments with every plane present and zeroed.
type moments struct {
	planes map[field.Key][]*mat.Dense
	mass   []float64
}

func newMoments(nss int) *moments {
	m := &moments{planes: make(map[field.Key][]*mat.Dense), mass: make([]float64, nss)}
	for _, k := range field.Keys() {
		n := 1
		if k.PerSpecies() {
			n = nss
		}
		for s := 0; s < n; s++ {
			m.planes[k] = append(m.planes[k], mat.NewDense(rows, cols, nil))
		}
	}
	for s := range m.mass {
		m.mass[s] = 1
		if s%2 == 0 {
			m.mass[s] = 100
		}
	}
	return m
}

func (m *moments) Field(k field.Key) []*mat.Dense { return m.planes[k] }
func (m *moments) Mass() []float64                { return m.mass }
func (m *moments) Species() int                   { return len(m.mass) }

// apply sets element (r, c) of plane k of species s to f(r, c).
func (m *moments) apply(k field.Key, s int, f func(r, c int) float64) {
	m.planes[k][s].Apply(func(r, c int, _ float64) float64 { return f(r, c) }, m.planes[k][s])
}

// coldFlow fills species s with density n(r,c) moving at u, with no thermal spread:
// the stored moments are n*u_a and n*u_a*u_b.
func (m *moments) coldFlow(s int, n func(r, c int) float64, u [3]float64) {
	m.apply(field.Dns, s, n)
	axes := []picdraw.Axis{picdraw.X, picdraw.Y, picdraw.Z}
	for _, a := range axes {
		a := a
		m.apply(field.Velocity(a), s, func(r, c int) float64 { return n(r, c) * u[a] })
		for _, b := range axes {
			b := b
			m.apply(field.Pressure(a, b), s, func(r, c int) float64 { return n(r, c) * u[a] * u[b] })
		}
	}
}

func testDensity(r, c int) float64 { return float64(1 + r + c) }

func TestSpeciesAdditivity(Te *testing.T) {
	m := newMoments(4)
	for s := 0; s < 4; s++ {
		s := s
		m.apply(field.Dns, s, func(r, c int) float64 { return float64(s+1) * testDensity(r, c) })
		m.apply(field.Vys, s, func(r, c int) float64 { return float64(10*s) + testDensity(r, c) })
	}
	var want mat.Dense
	want.Add(m.planes[field.Dns][0], m.planes[field.Dns][2])
	if !mat.EqualApprox(Density(m, picdraw.Ions), &want, 1e-12) {
		Te.Error("ion density is not the sum of species 0 and 2")
	}
	want.Add(m.planes[field.Vys][1], m.planes[field.Vys][3])
	if !mat.EqualApprox(Current(m, picdraw.Electrons, picdraw.Y), &want, 1e-12) {
		Te.Error("electron current is not the sum of species 1 and 3")
	}
	//inputs are untouched
	if v := m.planes[field.Dns][0].At(0, 0); v != 1 {
		Te.Errorf("density of species 0 changed to %g", v)
	}
}

// A cold flow has no thermal pressure, and its bulk velocity is the flow velocity.
func TestColdFlow(Te *testing.T) {
	m := newMoments(4)
	u := [3]float64{0.5, -2, 1.25}
	m.coldFlow(0, testDensity, u)
	m.coldFlow(2, func(r, c int) float64 { return 3 * testDensity(r, c) }, u)
	m.coldFlow(1, testDensity, [3]float64{1, 1, 1})
	m.coldFlow(3, testDensity, [3]float64{1, 1, 1})
	zero := mat.NewDense(rows, cols, nil)
	for _, a := range []picdraw.Axis{picdraw.X, picdraw.Y, picdraw.Z} {
		for _, b := range []picdraw.Axis{picdraw.X, picdraw.Y, picdraw.Z} {
			for _, p := range []picdraw.Population{picdraw.Ions, picdraw.Electrons} {
				if P := Pressure(m, p, a, b); !mat.EqualApprox(P, zero, 1e-9) {
					Te.Errorf("cold %s flow has p%s%s = %v", p, a, b, mat.Formatted(P))
				}
			}
		}
		V := BulkVelocity(m, picdraw.Ions, a)
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				if math.Abs(V.At(r, c)-u[a]) > 1e-12 {
					Te.Errorf("V%s_i(%d,%d) = %g, want %g", a, r, c, V.At(r, c), u[a])
				}
			}
		}
	}
	if T := Temperature(m, picdraw.Ions); !mat.EqualApprox(T, zero, 1e-9) {
		Te.Errorf("cold ions have a temperature: %v", mat.Formatted(T))
	}
}

func TestTemperature(Te *testing.T) {
	m := newMoments(4)
	//isotropic thermal pressure 2*n per species, at rest
	for _, s := range []int{1, 3} {
		m.apply(field.Dns, s, testDensity)
		for _, k := range []field.Key{field.Pxx, field.Pyy, field.Pzz} {
			m.apply(k, s, func(r, c int) float64 { return 2 * testDensity(r, c) })
		}
	}
	T := Temperature(m, picdraw.Electrons)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			//mass 1, total pressure 4n per axis over total density 2n
			if v := T.At(r, c); math.Abs(v-2) > 1e-12 {
				Te.Errorf("T_e(%d,%d) = %g, want 2", r, c, v)
			}
		}
	}
	//ion pressure is scaled by the ion mass
	m.apply(field.Dns, 0, testDensity)
	m.apply(field.Pxy, 0, testDensity)
	P := Pressure(m, picdraw.Ions, picdraw.Y, picdraw.X)
	if v := P.At(1, 1); math.Abs(v-100*testDensity(1, 1)) > 1e-9 {
		Te.Errorf("pxy_i(1,1) = %g, want %g", v, 100*testDensity(1, 1))
	}
}

func TestZeroDensity(Te *testing.T) {
	m := newMoments(4)
	m.apply(field.Vxs, 0, func(r, c int) float64 { return 1 })
	V := BulkVelocity(m, picdraw.Ions, picdraw.X)
	if v := V.At(0, 0); !math.IsInf(v, 1) {
		Te.Errorf("flux over zero density gave %g", v)
	}
	if v := BulkVelocity(m, picdraw.Electrons, picdraw.X).At(0, 0); !math.IsNaN(v) {
		Te.Errorf("zero over zero density gave %g", v)
	}
}

func TestRescale(Te *testing.T) {
	m := mat.NewDense(2, 2, []float64{1, -2, 3.5, 0})
	sc := Scaling{Wpewce: 2, Smi: 5}
	want := map[Unit]float64{
		UnitNone: 1,
		UnitB:    2,
		UnitE:    20,
		UnitJ:    10,
		UnitN:    25,
		UnitP:    4,
		UnitT:    0.16,
		UnitV:    0.4,
	}
	for u, f := range want {
		if got := u.Factor(sc.Wpewce, sc.Smi); math.Abs(got-f) > 1e-12 {
			Te.Errorf("factor for %s is %g, want %g", u, got, f)
		}
		R := sc.Rescale(m, u)
		var back mat.Dense
		back.Scale(1/f, R)
		if !mat.EqualApprox(&back, m, 1e-12) {
			Te.Errorf("rescaling %s is not invertible", u)
		}
	}
	if m.At(0, 1) != -2 {
		Te.Error("Rescale modified its input")
	}
	for name, u := range map[string]Unit{"Bx": UnitB, "Ez": UnitE, "jy_i": UnitJ, "n_e": UnitN,
		"pxz_i": UnitP, "T_e": UnitT, "Vx_i": UnitV, "dns": UnitNone, "": UnitNone} {
		if got := UnitOf(name); got != u {
			Te.Errorf("UnitOf(%q) = %s, want %s", name, got, u)
		}
	}
	x := sc.Axis([]float64{5, 10})
	if math.Abs(x[0]-1) > 1e-12 || math.Abs(x[1]-2) > 1e-12 {
		Te.Errorf("axis in ion units %v", x)
	}
	if s := Smi([]float64{25, 1}); s != 5 {
		Te.Errorf("smi %g, want 5", s)
	}
}

func TestQuantities(Te *testing.T) {
	//16 stored arrays, and per population n, T, 3 currents, 3 velocities, 6 pressures
	if n := len(Quantities()); n != 16+2*14 {
		Te.Errorf("%d quantities, want %d", n, 16+2*14)
	}
	if _, err := ParseQuantity("Q_i"); !errors.Is(err, picdraw.ErrUnknownField) {
		Te.Errorf("unknown quantity gave %v", err)
	}
	m := newMoments(4)
	m.coldFlow(1, testDensity, [3]float64{0, 3, 0})
	got, err := EvaluateName(m, "jy_e")
	if err != nil {
		Te.Fatal(err)
	}
	if len(got) != 1 || !mat.EqualApprox(got[0], Current(m, picdraw.Electrons, picdraw.Y), 1e-12) {
		Te.Error("jy_e is not the electron current")
	}
	q, err := ParseQuantity("pxx")
	if err != nil {
		Te.Fatal(err)
	}
	if !q.PerSpecies() || q.Unit() != UnitP {
		Te.Errorf("pxx: per species %v, unit %s", q.PerSpecies(), q.Unit())
	}
	if raw := Evaluate(m, q); len(raw) != 4 || raw[1] != m.planes[field.Pxx][1] {
		Te.Error("stored moments should evaluate to the snapshot planes")
	}
	if _, err := EvaluateName(m, "nope"); !errors.Is(err, picdraw.ErrUnknownField) {
		Te.Errorf("unknown name gave %v", err)
	}
}

func TestSingleSpecies(Te *testing.T) {
	m := newMoments(1)
	m.coldFlow(0, testDensity, [3]float64{1, 0, 0})
	if err := Check(m, picdraw.Ions); err != nil {
		Te.Errorf("ions with one species: %v", err)
	}
	if err := Check(m, picdraw.Electrons); !errors.Is(err, picdraw.ErrInvalidSpecies) {
		Te.Errorf("electrons with one species gave %v", err)
	}
	if _, err := EvaluateName(m, "n_i"); err != nil {
		Te.Error(err)
	}
	for _, name := range []string{"n_e", "T_e", "pxy_e", "Vz_e"} {
		if _, err := EvaluateName(m, name); !errors.Is(err, picdraw.ErrInvalidSpecies) {
			Te.Errorf("%s with one species gave %v", name, err)
		}
	}
	if err := Check(newMoments(2), picdraw.Electrons); err != nil {
		Te.Errorf("electrons with two species: %v", err)
	}
	defer func() {
		if recover() == nil {
			Te.Error("Density of a missing population did not panic")
		}
	}()
	Density(newMoments(1), picdraw.Electrons)
}

func TestBoundaryWindow(Te *testing.T) {
	w := field.Window{XMin: 0, XMax: 8, ZMin: 0, ZMax: 6}
	for _, c := range []struct {
		name string
		want field.Window
	}{
		{"n_i", field.Window{XMin: 1, XMax: 8, ZMin: 1, ZMax: 6}},
		{"pxy_e", field.Window{XMin: 1, XMax: 8, ZMin: 1, ZMax: 6}},
		{"T_e", field.Window{XMin: 1, XMax: 8, ZMin: 1, ZMax: 6}},
		{"Vx_i", field.Window{XMin: 1, XMax: 8, ZMin: 1, ZMax: 6}},
		{"Bx", w},
		{"jy_e", w},
		{"Ez", w},
	} {
		q, err := ParseQuantity(c.name)
		if err != nil {
			Te.Fatal(err)
		}
		if got := BoundaryWindow(w, q.Unit()); got != c.want {
			Te.Errorf("%s: window %s, want %s", c.name, got, c.want)
		}
	}
	inner := field.Window{XMin: 2, XMax: 5, ZMin: 3, ZMax: 4}
	if got := BoundaryWindow(inner, UnitN); got != inner {
		Te.Errorf("an inner window was moved to %s", got)
	}
}
