/*
 * errors.go, part of picdraw.
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
	"errors"
	"fmt"
)

// Kind identifies one of the closed set of failure classes of the library.
// A Kind is itself an error, so it can be used as the target of errors.Is.
type Kind int

const (
	MalformedRecord Kind = iota + 1
	UnknownField
	InvalidAxis
	IncompatibleSpecies
	InvalidWindow
	InvalidSpecies
)

var kindNames = [...]string{
	MalformedRecord:     "malformed record",
	UnknownField:        "unknown field",
	InvalidAxis:         "invalid axis",
	IncompatibleSpecies: "incompatible species",
	InvalidWindow:       "invalid window",
	InvalidSpecies:      "invalid species",
}

func (k Kind) String() string {
	if k <= 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

func (k Kind) Error() string { return k.String() }

// Sentinels for errors.Is.
var (
	ErrMalformedRecord     error = MalformedRecord
	ErrUnknownField        error = UnknownField
	ErrInvalidAxis         error = InvalidAxis
	ErrIncompatibleSpecies error = IncompatibleSpecies
	ErrInvalidWindow       error = InvalidWindow
	ErrInvalidSpecies      error = InvalidSpecies
)

// KindError is the general structure for errors raised by the library. It fulfills Error and FileError.
type KindError struct {
	kind     Kind
	message  string
	filename string //the input file that has problems, or empty string if none.
	format   string
	deco     []string
	critical bool
}

// NewError returns a critical error of the given kind. format names the data format
// involved ("nasa-field", "trace", ...), filename may be empty.
func NewError(kind Kind, format, filename, caller, message string) *KindError {
	E := &KindError{kind: kind, message: message, filename: filename, format: format, critical: true}
	if caller != "" {
		E.deco = []string{caller}
	}
	return E
}

func (E *KindError) Error() string {
	if E.filename == "" {
		return fmt.Sprintf("%s: %s", E.kind, E.message)
	}
	return fmt.Sprintf("%s file %s: %s: %s", E.format, E.filename, E.kind, E.message)
}

// Decorate adds new information to the error
func (E *KindError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

// Kind returns the failure class of the error.
func (E *KindError) Kind() Kind { return E.kind }

// FileName returns the file to which the error was associated
func (E *KindError) FileName() string { return E.filename }

// SetFileName attaches the error to a file, for errors raised before the file was known.
func (E *KindError) SetFileName(name string) { E.filename = name }

// Format returns the data format associated to the error
func (E *KindError) Format() string { return E.format }

// Critical returns true if the error is critical, false otherwise
func (E *KindError) Critical() bool { return E.critical }

// Is reports whether target is the Kind of this error.
func (E *KindError) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == E.kind
}

// KindOf returns the Kind carried by err, or 0 if err does not carry one.
func KindOf(err error) Kind {
	var E *KindError
	if errors.As(err, &E) {
		return E.kind
	}
	return 0
}

// Decorate adds caller to err if err implements Error, and returns err.
// Other errors are returned unchanged.
func Decorate(err error, caller string) error {
	if E, ok := err.(Error); ok {
		E.Decorate(caller)
	}
	return err
}
