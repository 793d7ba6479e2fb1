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

package chart

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/ccm/colorspace"
)

func makeCSV(header bool, rows int, cols int) string {
	var b strings.Builder
	if header {
		b.WriteString("patch, R, G, B\n")
	}
	for i := range rows {
		fmt.Fprintf(&b, "%d", i+1)
		for j := 1; j < cols; j++ {
			fmt.Fprintf(&b, ", %d", (i*7+j*31)%256)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func TestRead(t *testing.T) {
	for _, header := range []bool{false, true} {
		set, err := Read(strings.NewReader(makeCSV(header, 24, 4)))
		if err != nil {
			t.Fatalf("header=%t: %v", header, err)
		}
		if len(set) != NumPatches {
			t.Fatalf("header=%t: got %d patches", header, len(set))
		}
		want := colorspace.Vec3{31, 62, 93}
		if set[0] != want {
			t.Errorf("header=%t: set[0] = %v, want %v", header, set[0], want)
		}
		want = colorspace.Vec3{(23*7 + 31) % 256, (23*7 + 62) % 256, (23*7 + 93) % 256}
		if set[23] != want {
			t.Errorf("header=%t: set[23] = %v, want %v", header, set[23], want)
		}
	}
}

func TestReadExtraColumnsAndBlankLines(t *testing.T) {
	data := "\n" + strings.ReplaceAll(makeCSV(true, 24, 6), "\n", "\n\n")
	set, err := Read(strings.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if len(set) != NumPatches {
		t.Errorf("got %d patches, want %d", len(set), NumPatches)
	}
}

func TestReadErrors(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"23 rows", makeCSV(true, 23, 4)},
		{"25 rows", makeCSV(true, 25, 4)},
		{"3 columns", makeCSV(false, 24, 3)},
		{"non-numeric", makeCSV(false, 10, 4) + "x,1,2,oops\n" + makeCSV(false, 13, 4)},
		{"two headers", "a,b,c,d\n" + makeCSV(true, 24, 4)},
	}
	for _, c := range cases {
		_, err := Read(strings.NewReader(c.data))
		if !errors.Is(err, ErrInvalidShape) {
			t.Errorf("%s: err = %v, want %v", c.name, err, ErrInvalidShape)
		}
	}
}

func TestReadNonFinite(t *testing.T) {
	for _, bad := range []string{"NaN", "Inf", "-inf", "1e999"} {
		data := makeCSV(true, 5, 4) + "6," + bad + ",0.2,0.3\n" + makeCSV(false, 18, 4)
		_, err := Read(strings.NewReader(data))
		if !errors.Is(err, ErrInvalidShape) {
			t.Errorf("%s: err = %v, want %v", bad, err, ErrInvalidShape)
			continue
		}
		var se *ShapeError
		if !errors.As(err, &se) || se.Line != 7 {
			t.Errorf("%s: error %v does not point to line 7", bad, err)
		}
	}
}

func TestWriteRead(t *testing.T) {
	set := make(PatchSet, NumPatches)
	for i := range set {
		set[i] = colorspace.Vec3{float64(i) / 23, 0.1 + float64(i)/100, 1.0 / 3}
	}

	buf := &bytes.Buffer{}
	err := Write(buf, set)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Read(buf)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(set, got); d != "" {
		t.Errorf("round trip failed (-want +got):\n%s", d)
	}
}

func TestReadFileError(t *testing.T) {
	name := filepath.Join(t.TempDir(), "short.csv")
	set := make(PatchSet, 5)
	require.NoError(t, WriteFile(name, set))

	_, err := ReadFile(name)
	require.ErrorIs(t, err, ErrInvalidShape)
	require.Contains(t, err.Error(), name)
}

func TestScaleMax(t *testing.T) {
	set := PatchSet{{0, 255, 17}, {3, 4, 5}}
	if m := set.Max(); m != 255 {
		t.Errorf("Max = %g, want 255", m)
	}
	scaled := set.Scale(1.0 / 255)
	if scaled[0][1] != 1 {
		t.Errorf("scaled value = %g, want 1", scaled[0][1])
	}
	if set[0][1] != 255 {
		t.Error("Scale modified its receiver")
	}
}

func TestCompare(t *testing.T) {
	ref := PatchSet{{0.5, 0.5, 0.5}, {0.2, 0.3, 0.4}}
	corr := PatchSet{{0.5, 0.5, 0.5}, {0.23, 0.33, 0.43}}

	diffs := Compare(ref, corr)
	if len(diffs) != 2 {
		t.Fatalf("got %d diffs, want 2", len(diffs))
	}
	if d := diffs[0]; d.MatchRatio != 0 || d.DeltaE76 > 1e-12 || d.DeltaE2000 > 1e-9 {
		t.Errorf("identical patches: %+v", d)
	}
	if math.Abs(diffs[1].MatchRatio-3) > 1e-9 {
		t.Errorf("MatchRatio = %g, want 3", diffs[1].MatchRatio)
	}
	if diffs[1].DeltaE76 <= 0 || diffs[1].DeltaE2000 <= 0 {
		t.Errorf("colour differences not positive: %+v", diffs[1])
	}
}

func TestRender(t *testing.T) {
	ref := make(PatchSet, NumPatches)
	corr := make(PatchSet, NumPatches)
	for i := range ref {
		ref[i] = colorspace.Vec3{1, 0, 0}
		corr[i] = colorspace.Vec3{0, 0, 1}
	}
	img := Render(ref, corr, Compare(ref, corr))

	if img.Bounds().Size() != RenderSize {
		t.Fatalf("size = %v, want %v", img.Bounds().Size(), RenderSize)
	}

	// first patch: red on top, blue below, white gutter
	checks := []struct {
		x, y    int
		r, g, b uint8
	}{
		{gutter + 50, gutter + 10, 255, 0, 0},
		{gutter + 50, gutter + 90, 0, 0, 255},
		{5, 5, 255, 255, 255},
	}
	for _, c := range checks {
		got := img.RGBAAt(c.x, c.y)
		if got.R != c.r || got.G != c.g || got.B != c.b {
			t.Errorf("pixel (%d,%d) = %v, want (%d,%d,%d)", c.x, c.y, got, c.r, c.g, c.b)
		}
	}
}
