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
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var testMatrix = Matrix{
	{0.9312, 0.0513, -0.012},
	{0.08, 1.1, 1.0 / 3},
	{1e-17, -0.03, 0.85},
	{0.01, 0.005, -2.5},
}

func TestWriteRead(t *testing.T) {
	buf := &bytes.Buffer{}
	err := Write(buf, testMatrix)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(buf.String(), "\n"); n != 4 {
		t.Errorf("wrote %d lines, want 4", n)
	}

	got, err := Read(buf)
	if err != nil {
		t.Fatal(err)
	}
	if got != testMatrix {
		t.Errorf("round trip failed (-want +got):\n%s", cmp.Diff(testMatrix, got))
	}
}

func TestReadLenient(t *testing.T) {
	data := "\n 1, 0 ,0\n0,1,0\n\n0, 0, 1 \n0,0,0\n\n"
	m, err := Read(strings.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if m != Identity() {
		t.Errorf("got\n%s", m)
	}
}

func TestReadErrors(t *testing.T) {
	cases := []struct {
		data         string
		line, column int
	}{
		{"", 0, 0},
		{"1,0,0\n0,1,0\n0,0,1\n", 0, 0},
		{"1,0,0\n0,1,0\n0,0,1\n0,0,0\n1,1,1\n", 5, 0},
		{"1,0,0\n0,1\n0,0,1\n0,0,0\n", 2, 0},
		{"1,0,0,0\n0,1,0\n0,0,1\n0,0,0\n", 1, 0},
		{"1,0,0\n0,x,0\n0,0,1\n0,0,0\n", 2, 3},
		{"1,0,0\n0,1,0\n0,0,NaN\n0,0,0\n", 3, 5},
		{"1,0,0\n0,1,0\n0,0,1\nInf,0,0\n", 4, 1},
	}
	for i, c := range cases {
		_, err := Read(strings.NewReader(c.data))
		if !errors.Is(err, ErrMatrixParse) {
			t.Errorf("%d: err = %v, want %v", i, err, ErrMatrixParse)
			continue
		}
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("%d: %T is not a *ParseError", i, err)
			continue
		}
		if pe.Line != c.line || pe.Column != c.column {
			t.Errorf("%d: error at %d:%d, want %d:%d",
				i, pe.Line, pe.Column, c.line, c.column)
		}
	}
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "ccm.csv")

	require.NoError(t, WriteFile(name, testMatrix))
	got, err := ReadFile(name)
	require.NoError(t, err)
	require.Equal(t, testMatrix, got)

	bad := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("1,2,3\n"), 0o644))
	_, err = ReadFile(bad)
	require.ErrorIs(t, err, ErrMatrixParse)
	require.Contains(t, err.Error(), bad)

	_, err = ReadFile(filepath.Join(dir, "missing.csv"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func FuzzRead(f *testing.F) {
	buf := &bytes.Buffer{}
	Write(buf, testMatrix)
	f.Add(buf.Bytes())
	buf.Reset()
	Write(buf, Identity())
	f.Add(buf.Bytes())
	f.Add([]byte("1,2,3\n4,5,6\n7,8,9\n10,11,12\n"))

	f.Fuzz(func(t *testing.T, data []byte) {
		m1, err := Read(bytes.NewReader(data))
		if err != nil {
			return
		}

		buf := &bytes.Buffer{}
		err = Write(buf, m1)
		if err != nil {
			t.Fatal(err)
		}

		m2, err := Read(buf)
		if err != nil {
			t.Fatal(err)
		}
		if m1 != m2 {
			t.Errorf("round trip failed (-want +got):\n%s", cmp.Diff(m1, m2))
		}
	})
}
