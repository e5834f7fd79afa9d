/*
 * source.go, part of picdraw.
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

package record

import (
	"bufio"
	"compress/lzw"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

const (
	lzwOrder        = lzw.MSB
	lzwLitwidth int = 8
)

// formatOf deduces the compression format from the file extension.
// Anything that is not a known compression suffix is a plain file.
func formatOf(fname string) string {
	switch strings.ToLower(filepath.Ext(fname)) {
	case ".gz":
		return "gz"
	case ".zst", ".zstd":
		return "zst"
	case ".flate", ".zz":
		return "flate"
	case ".lzw":
		return "lzw"
	}
	return "raw"
}

// chain closes the decompressor and then the file under it.
type chain struct {
	io.Reader
	closers []io.Closer
}

func (c *chain) Close() error {
	var first error
	for _, v := range c.closers {
		if err := v.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// zstdCloser adapts *zstd.Decoder, whose Close returns nothing, to io.Closer.
type zstdCloser struct{ d *zstd.Decoder }

func (z zstdCloser) Close() error {
	z.d.Close()
	return nil
}

// Open takes a filename and format string, opens the file and returns an object that will
// read data from the file, either 'as is' or decompressing first, depending on the format string.
// If the format string is empty, it is deduced from the file extension (.gz, .zst, .flate, .lzw;
// anything else is read as is). Unsupported format strings are logged and the file is read as is.
// For plain files the returned value is the *os.File itself, so it can be type-asserted to io.Seeker.
func Open(fname string, format string) (io.ReadCloser, error) {
	if format == "" {
		format = formatOf(fname)
	}
	fhandle, err := os.Open(fname)
	if err != nil {
		return nil, errors.Wrapf(err, "record.Open")
	}
	reader := bufio.NewReader(fhandle)
	switch format {
	case "raw":
		return fhandle, nil
	case "gz":
		r, err := gzip.NewReader(reader)
		if err != nil {
			fhandle.Close()
			return nil, errors.Wrapf(err, "gzip header of %s", fname)
		}
		return &chain{r, []io.Closer{r, fhandle}}, nil
	case "zst":
		r, err := zstd.NewReader(reader)
		if err != nil {
			fhandle.Close()
			return nil, errors.Wrapf(err, "zstd stream of %s", fname)
		}
		return &chain{r, []io.Closer{zstdCloser{r}, fhandle}}, nil
	case "flate":
		r := flate.NewReader(reader)
		return &chain{r, []io.Closer{r, fhandle}}, nil
	case "lzw":
		r := lzw.NewReader(reader, lzwOrder, lzwLitwidth)
		return &chain{r, []io.Closer{r, fhandle}}, nil
	default:
		//if it's not a plain file, you'll get an error later.
		log.Printf("Format string %s not supported. %s will be assumed to be a plain file", format, fname)
		return fhandle, nil
	}
}

type writeChain struct {
	io.Writer
	closers []io.Closer
}

func (c *writeChain) Close() error {
	var first error
	for _, v := range c.closers {
		if err := v.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Create is the writing counterpart of Open: it creates fname and returns a writer
// that compresses according to format (or the extension, if format is empty).
// Closing the writer flushes the compressor and closes the file.
func Create(fname string, format string) (io.WriteCloser, error) {
	if format == "" {
		format = formatOf(fname)
	}
	fhandle, err := os.Create(fname)
	if err != nil {
		return nil, errors.Wrapf(err, "record.Create")
	}
	buf := bufio.NewWriter(fhandle)
	flush := closerFunc(buf.Flush)
	var w io.WriteCloser
	switch format {
	case "raw":
		return &writeChain{buf, []io.Closer{flush, fhandle}}, nil
	case "gz":
		w = gzip.NewWriter(buf)
	case "zst":
		w, err = zstd.NewWriter(buf)
	case "flate":
		w, err = flate.NewWriter(buf, flate.DefaultCompression)
	case "lzw":
		w = lzw.NewWriter(buf, lzwOrder, lzwLitwidth)
	default:
		log.Printf("Format string %s not supported. %s will be written as a plain file", format, fname)
		return &writeChain{buf, []io.Closer{flush, fhandle}}, nil
	}
	if err != nil {
		fhandle.Close()
		return nil, errors.Wrapf(err, "compressor for %s", fname)
	}
	return &writeChain{w, []io.Closer{w, flush, fhandle}}, nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
