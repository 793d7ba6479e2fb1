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

package parallel

import (
	"slices"
	"sync"
	"testing"
)

func TestRowsCoverage(t *testing.T) {
	for _, height := range []int{0, 1, 15, 16, 17, 100, 1001} {
		seen := make([]int, height)
		Rows(height, func(y0, y1 int) {
			for y := y0; y < y1; y++ {
				seen[y]++
			}
		})
		for y, n := range seen {
			if n != 1 {
				t.Errorf("height %d: row %d visited %d times", height, y, n)
			}
		}
	}
}

func TestRowsBands(t *testing.T) {
	var mu sync.Mutex
	var starts []int
	bands := map[int]int{}
	Rows(500, func(y0, y1 int) {
		mu.Lock()
		defer mu.Unlock()
		starts = append(starts, y0)
		bands[y0] = y1
	})

	slices.Sort(starts)
	if len(starts) == 0 || starts[0] != 0 {
		t.Fatalf("bands start at %v", starts)
	}
	for i, y0 := range starts {
		y1 := bands[y0]
		if y1 <= y0 {
			t.Errorf("empty band [%d, %d)", y0, y1)
		}
		if i+1 < len(starts) {
			if y1 != starts[i+1] {
				t.Errorf("band [%d, %d) followed by band at %d", y0, y1, starts[i+1])
			}
			if y1-y0 < minRows {
				t.Errorf("band [%d, %d) shorter than %d rows", y0, y1, minRows)
			}
		} else if y1 != 500 {
			t.Errorf("last band ends at %d", y1)
		}
	}
}
