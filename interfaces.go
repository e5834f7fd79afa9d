/*
 * interfaces.go, part of picdraw.
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

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing its type or wrapping it around something else.
type Error interface {
	Error() string
	//Decorate adds the name of a function in the calling stack (plus, optionally, some information in the form "FunctionName: Extra info")
	//and returns the current decoration slice. An empty string only returns the current value.
	Decorate(string) []string
}

// FileError is the interface for errors tied to a data file.
type FileError interface {
	Error
	Critical() bool
	FileName() string
	Format() string
}

// LastFrameError has a useless function to distinguish the harmless errors (i.e. last frame) so they can be
// filtered in a type switch that looks for this interface.
type LastFrameError interface {
	FileError
	NormalLastFrameTermination() //does nothing, just to separate this interface from other FileErrors
}

// Stream is implemented by anything that hands out data one frame at a time, until it
// returns a LastFrameError.
type Stream interface {
	Next() (x, y []float64, err error)
	//Reset rewinds the stream to its first frame.
	Reset()
	Len() int
}
