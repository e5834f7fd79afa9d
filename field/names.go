/*
 * names.go, part of picdraw.
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
	"path/filepath"
	"strconv"
	"strings"

	"github.com/picvis/picdraw"
)

// Prefix and suffix of NASA field file names, as in fields-00123.dat.
const (
	filePrefix = "fields-"
	fileSuffix = ".dat"
	indexWidth = 5
)

// FileName returns the conventional name of the NASA field file for time index t.
func FileName(t int) string {
	return fmt.Sprintf("%s%0*d%s", filePrefix, indexWidth, t, fileSuffix)
}

// TimeIndex extracts the time index from the name of a NASA field file, for display:
// "run/fields-00123.dat" gives "123". The zero-padded index is taken from the fixed
// position after the prefix and stripped of leading zeros; an all-zero index gives "0".
func TimeIndex(name string) (string, error) {
	base := filepath.Base(name)
	end := len(filePrefix) + indexWidth
	if len(base) < end || !strings.HasPrefix(base, filePrefix) {
		return "", picdraw.NewError(picdraw.MalformedRecord, "nasa-field", name, "TimeIndex", "not a fields-NNNNN file name")
	}
	digits := base[len(filePrefix):end]
	if _, err := strconv.Atoi(digits); err != nil {
		return "", picdraw.NewError(picdraw.MalformedRecord, "nasa-field", name, "TimeIndex", fmt.Sprintf("time index %q is not a number", digits))
	}
	t := strings.TrimLeft(digits, "0")
	if t == "" {
		t = "0"
	}
	return t, nil
}
