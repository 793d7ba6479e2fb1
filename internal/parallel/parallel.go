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

// Package parallel splits per-row image work across goroutines.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// minRows is the smallest band handed to a single goroutine.
const minRows = 16

// Rows calls fn for disjoint bands [y0, y1) which together cover [0, height)
// and returns once all calls have finished.  Bands are processed
// concurrently, so fn must only write to data owned by its own rows.
func Rows(height int, fn func(y0, y1 int)) {
	if height <= 0 {
		return
	}

	workers := runtime.GOMAXPROCS(0)
	workers = min(workers, (height+minRows-1)/minRows)
	if workers <= 1 {
		fn(0, height)
		return
	}

	rowsPerWorker := (height + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)
	for y0 := 0; y0 < height; y0 += rowsPerWorker {
		y1 := min(y0+rowsPerWorker, height)
		g.Go(func() error {
			fn(y0, y1)
			return nil
		})
	}
	g.Wait()
}
