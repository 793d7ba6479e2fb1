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

package ccm

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Write stores m as CSV, one matrix row per line.  Numbers are written with
// the shortest representation which reads back to the same value.
func Write(w io.Writer, m Matrix) error {
	cw := csv.NewWriter(w)
	for _, row := range m {
		record := []string{
			strconv.FormatFloat(row[0], 'g', -1, 64),
			strconv.FormatFloat(row[1], 'g', -1, 64),
			strconv.FormatFloat(row[2], 'g', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile stores m in the named file.
func WriteFile(name string, m Matrix) error {
	fd, err := os.Create(name)
	if err != nil {
		return err
	}
	err = Write(fd, m)
	if err != nil {
		fd.Close()
		return err
	}
	return fd.Close()
}

// Read reads a matrix in the format written by [Write].
// Spaces around numbers and blank lines are ignored.  All entries must be
// finite.
func Read(r io.Reader) (Matrix, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var m Matrix
	rows := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return Matrix{}, &ParseError{Line: pe.Line, Column: pe.Column, Reason: pe.Err.Error()}
			}
			return Matrix{}, err
		}
		line, _ := cr.FieldPos(0)

		if rows == len(m) {
			return Matrix{}, &ParseError{Line: line, Reason: "too many rows"}
		}
		if len(record) != 3 {
			return Matrix{}, &ParseError{
				Line:   line,
				Reason: fmt.Sprintf("found %d columns, want 3", len(record)),
			}
		}
		for j, cell := range record {
			x, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err == nil && (math.IsInf(x, 0) || math.IsNaN(x)) {
				err = errNotFinite
			}
			if err != nil {
				_, col := cr.FieldPos(j)
				return Matrix{}, &ParseError{
					Line:   line,
					Column: col,
					Reason: fmt.Sprintf("invalid number %q", cell),
				}
			}
			m[rows][j] = x
		}
		rows++
	}

	if rows != len(m) {
		return Matrix{}, &ParseError{
			Reason: fmt.Sprintf("found %d rows, want %d", rows, len(m)),
		}
	}
	return m, nil
}

// ReadFile reads a matrix from the named file.
func ReadFile(name string) (Matrix, error) {
	fd, err := os.Open(name)
	if err != nil {
		return Matrix{}, err
	}
	defer fd.Close()

	m, err := Read(fd)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.File = name
		}
		return Matrix{}, err
	}
	return m, nil
}

var errNotFinite = errors.New("not finite")

// ErrMatrixParse is returned (wrapped in a [ParseError]) if a matrix file is
// malformed.
var ErrMatrixParse = errors.New("ccm: malformed matrix")

// ParseError gives the location of a problem in a matrix file.
type ParseError struct {
	File   string
	Line   int // 1-based, 0 if not applicable
	Column int // 1-based, 0 if not applicable
	Reason string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("ccm: ")
	if e.File != "" {
		b.WriteString(e.File)
		b.WriteString(": ")
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d", e.Line)
		if e.Column > 0 {
			fmt.Fprintf(&b, ", column %d", e.Column)
		}
		b.WriteString(": ")
	}
	b.WriteString(e.Reason)
	return b.String()
}

func (e *ParseError) Unwrap() error {
	return ErrMatrixParse
}
