/*
 * doc.go, part of picdraw.
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

/*Package picdraw is the main package of the picdraw library. It provides the shared error types
and species conventions used to read and post-process output from Particle-in-Cell (PIC) plasma
simulations in the NASA and LANL formats.



	**picdraw Capabilities**


    Reads NASA field and distribution snapshots (fixed-layout binary records), plain
	or compressed with gzip, zstd, flate or lzw (package record).

    Exposes zero-copy windows over the field planes and the velocity-space
	histograms (packages field and dist).

    Reads LANL per-component field files and their info file (package field).

    Cuts 2D slices out of 3D velocity distributions and combines species whose
	velocity axes agree (package dist).

    Derives densities, currents, bulk velocities, thermal pressure tensors and
	temperatures for ions and electrons, and rescales them from electron to ion
	(MHD) units (package derive).

    Streams particle tracer trajectories frame by frame, forwards or backwards
	(package trace).

    Hands the data to gonum/plot as grids and point sets (package picplot).

The library does no plotting of its own and no GUI work. Everything is single threaded:
windows alias the storage of the snapshot that produced them, so a snapshot and
its windows must be owned by one goroutine.

*/
package picdraw
