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
	"github.com/lucasb-eyer/go-colorful"

	"seehuhn.de/go/ccm/colorspace"
)

// PatchDiff compares one patch of a corrected chart to the reference.
type PatchDiff struct {
	// MatchRatio is the mean signed channel difference (corrected minus
	// reference), in percent of the full range.
	MatchRatio float64

	// DeltaE76 is the CIE 1976 colour difference ΔE*ab.
	DeltaE76 float64

	// DeltaE2000 is the CIEDE2000 colour difference, scaled to the same
	// range as DeltaE76.
	DeltaE2000 float64
}

// Compare computes per-patch differences between two charts.  Both sets must
// hold linear RGB values in [0, 1].  The result has one entry per patch of the
// shorter set.
func Compare(reference, corrected PatchSet) []PatchDiff {
	n := min(len(reference), len(corrected))
	res := make([]PatchDiff, n)
	for i := range n {
		ref, corr := reference[i], corrected[i]

		sum := 0.0
		for j := range 3 {
			sum += corr[j] - ref[j]
		}

		refLab := colorspace.XYZToLab(colorspace.LinearRGBToXYZ(ref), colorspace.D65White)
		corrLab := colorspace.XYZToLab(colorspace.LinearRGBToXYZ(corr), colorspace.D65White)

		c1 := colorful.LinearRgb(ref[0], ref[1], ref[2])
		c2 := colorful.LinearRgb(corr[0], corr[1], corr[2])

		res[i] = PatchDiff{
			MatchRatio: sum / 3 * 100,
			DeltaE76:   colorspace.DeltaE76(refLab, corrLab),
			DeltaE2000: 100 * c1.DistanceCIEDE2000(c2),
		}
	}
	return res
}
