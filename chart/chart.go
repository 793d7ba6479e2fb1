// seehuhn.de/go/ccm - estimate and apply colour correction matrices
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package chart reads and writes measurements of a 24-patch colour chart.
//
// A chart file is a CSV table with one row per patch.  The first column
// holds a patch label and is ignored; columns two to four hold the red,
// green and blue values.  An optional header row is recognised by a
// non-numeric entry in one of the colour columns.  Patches are identified by
// their position, so the order of the rows matters.
package chart

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"seehuhn.de/go/ccm/colorspace"
)

// NumPatches is the number of patches on a colour chart.
const NumPatches = 24

// PatchSet holds one colour triple per chart patch.
// Depending on the source, values are in [0, 1] or in [0, 255].
type PatchSet []colorspace.Vec3

// Max returns the largest channel value in the set.
func (s PatchSet) Max() float64 {
	m := 0.0
	for _, p := range s {
		m = max(m, p[0], p[1], p[2])
	}
	return m
}

// Scale returns a copy of s with every channel value multiplied by f.
func (s PatchSet) Scale(f float64) PatchSet {
	res := make(PatchSet, len(s))
	for i, p := range s {
		res[i] = colorspace.Vec3{p[0] * f, p[1] * f, p[2] * f}
	}
	return res
}

// Read parses a colour chart from CSV data.
func Read(r io.Reader) (PatchSet, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var res PatchSet
	first := true
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &ShapeError{Line: pe.Line, Reason: pe.Err.Error()}
			}
			return nil, err
		}
		line, _ := cr.FieldPos(0)

		if len(record) < 4 {
			return nil, &ShapeError{
				Line:   line,
				Reason: fmt.Sprintf("need 4 columns, found %d", len(record)),
			}
		}

		var p colorspace.Vec3
		var parseErr error
		for i := range p {
			cell := strings.TrimSpace(record[i+1])
			p[i], parseErr = strconv.ParseFloat(cell, 64)
			if parseErr != nil {
				break
			}
		}
		if parseErr == nil && !isFinite(p) {
			return nil, &ShapeError{
				Line:   line,
				Reason: fmt.Sprintf("non-finite entry in %q", strings.Join(record, ",")),
			}
		}
		if parseErr != nil {
			if first {
				first = false
				continue // header row
			}
			return nil, &ShapeError{
				Line:   line,
				Reason: fmt.Sprintf("non-numeric entry in %q", strings.Join(record, ",")),
			}
		}
		first = false

		if len(res) == NumPatches {
			return nil, &ShapeError{
				Line:   line,
				Reason: fmt.Sprintf("more than %d patches", NumPatches),
			}
		}
		res = append(res, p)
	}

	if len(res) != NumPatches {
		return nil, &ShapeError{
			Reason: fmt.Sprintf("found %d patches, want %d", len(res), NumPatches),
		}
	}
	return res, nil
}

func isFinite(v colorspace.Vec3) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// ReadFile reads a colour chart from the named CSV file.
func ReadFile(name string) (PatchSet, error) {
	fd, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	res, err := Read(fd)
	if err != nil {
		var se *ShapeError
		if errors.As(err, &se) {
			se.Source = name
		}
		return nil, err
	}
	return res, nil
}

// Write writes the patch set as CSV, with a header row.
// The output can be read back using [Read].
func Write(w io.Writer, s PatchSet) error {
	cw := csv.NewWriter(w)
	err := cw.Write([]string{"patch", "r", "g", "b"})
	if err != nil {
		return err
	}
	for i, p := range s {
		record := []string{
			strconv.Itoa(i + 1),
			strconv.FormatFloat(p[0], 'g', -1, 64),
			strconv.FormatFloat(p[1], 'g', -1, 64),
			strconv.FormatFloat(p[2], 'g', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes the patch set to the named file.
func WriteFile(name string, s PatchSet) error {
	fd, err := os.Create(name)
	if err != nil {
		return err
	}
	err = Write(fd, s)
	if err != nil {
		fd.Close()
		return err
	}
	return fd.Close()
}

// ErrInvalidShape is returned (wrapped in a [ShapeError]) if chart data
// does not consist of exactly 24 rows of three colour values.
var ErrInvalidShape = errors.New("chart: invalid shape")

// ShapeError describes a malformed colour chart.
type ShapeError struct {
	Source string // file name, if known
	Line   int    // 1-based, or 0 if the error concerns the whole table
	Reason string
}

func (e *ShapeError) Error() string {
	var b strings.Builder
	b.WriteString("chart: ")
	if e.Source != "" {
		b.WriteString(e.Source)
		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d", e.Line)
		}
		b.WriteString(": ")
	} else if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}
	b.WriteString(e.Reason)
	return b.String()
}

func (e *ShapeError) Unwrap() error {
	return ErrInvalidShape
}
