package picdraw

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestErrorKinds(Te *testing.T) {
	kinds := []Kind{MalformedRecord, UnknownField, InvalidAxis, IncompatibleSpecies, InvalidWindow, InvalidSpecies}
	sentinels := []error{ErrMalformedRecord, ErrUnknownField, ErrInvalidAxis, ErrIncompatibleSpecies, ErrInvalidWindow, ErrInvalidSpecies}
	for i, k := range kinds {
		E := NewError(k, "nasa-field", "fields-00001.dat", "Load", "something went wrong")
		wrapped := fmt.Errorf("outer: %w", E)
		for j, s := range sentinels {
			if got := errors.Is(wrapped, s); got != (i == j) {
				Te.Errorf("errors.Is(%s, %s) = %v", k, kinds[j], got)
			}
		}
		if KindOf(wrapped) != k {
			Te.Errorf("KindOf gave %s, want %s", KindOf(wrapped), k)
		}
	}
	if KindOf(errors.New("plain")) != 0 {
		Te.Error("a plain error has a kind")
	}
}

func TestDecorate(Te *testing.T) {
	E := NewError(InvalidWindow, "nasa-dist", "", "SetWindow", "bad")
	err := Decorate(Decorate(E, "Cut"), "main")
	if diff := cmp.Diff([]string{"SetWindow", "Cut", "main"}, E.Decorate("")); diff != "" {
		Te.Errorf("decorations mismatch (-want +got):\n%s", diff)
	}
	if err.Error() != "invalid window: bad" {
		Te.Errorf("message %q", err.Error())
	}
	E.SetFileName("d.dat")
	if E.Error() != "nasa-dist file d.dat: invalid window: bad" || !E.Critical() {
		Te.Errorf("message %q", E.Error())
	}
	plain := errors.New("plain")
	if Decorate(plain, "x") != plain {
		Te.Error("Decorate changed a plain error")
	}
}

func TestParseAxis(Te *testing.T) {
	for s, want := range map[string]Axis{"x": X, "Y": Y, "z": Z} {
		a, err := ParseAxis(s)
		if err != nil || a != want {
			Te.Errorf("ParseAxis(%q) = %s, %v", s, a, err)
		}
	}
	for _, s := range []string{"", "w", "xy"} {
		if _, err := ParseAxis(s); !errors.Is(err, ErrInvalidAxis) {
			Te.Errorf("ParseAxis(%q) gave %v", s, err)
		}
	}
}

func TestPopulations(Te *testing.T) {
	if diff := cmp.Diff([]int{0, 2}, Ions.Species(DefaultSpecies)); diff != "" {
		Te.Errorf("ions mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 3}, Electrons.Species(DefaultSpecies)); diff != "" {
		Te.Errorf("electrons mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0}, Ions.Species(1)); diff != "" {
		Te.Errorf("single species mismatch (-want +got):\n%s", diff)
	}
	if Ions.String() != "i" || Electrons.String() != "e" || Electrons.MassIndex() != 1 {
		Te.Error("wrong population names or mass index")
	}
}
