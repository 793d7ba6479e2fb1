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

// Package ccm estimates colour correction matrices from colour chart
// measurements.
//
// A colour correction matrix (CCM) is an affine map on CIE XYZ values.  It is
// estimated from two measurements of the same 24-patch colour chart: the
// reference values, and the values observed by the device to be corrected.
// The fit is a linear least-squares problem which is solved using the
// Moore-Penrose pseudo-inverse, see [Estimate].
//
// Matrices are stored as CSV files with four rows of three numbers, see
// [Read] and [Write].  The sub-package [seehuhn.de/go/ccm/correct] applies a
// matrix to images, and [seehuhn.de/go/ccm/metrics] measures how close a
// corrected image is to a reference image.
package ccm

import (
	"fmt"
	"strings"

	"seehuhn.de/go/ccm/colorspace"
)

// Matrix is a 4×3 colour correction matrix.
//
// Rows 0 to 2 give the contribution of the input X, Y and Z values to the
// three output channels, row 3 is a constant offset.  A colour is corrected
// by multiplying the row vector (X, Y, Z, 1) by the matrix.
type Matrix [4][3]float64

// Identity returns the matrix which leaves all colours unchanged.
func Identity() Matrix {
	return Matrix{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
		{0, 0, 0},
	}
}

// Apply maps an XYZ value through the affine transform.
func (m Matrix) Apply(xyz colorspace.Vec3) colorspace.Vec3 {
	var out colorspace.Vec3
	for j := range 3 {
		out[j] = xyz[0]*m[0][j] + xyz[1]*m[1][j] + xyz[2]*m[2][j] + m[3][j]
	}
	return out
}

// Linear returns the 3×3 linear part of the matrix, in the orientation used
// by [colorspace.Matrix3.Apply].
func (m Matrix) Linear() colorspace.Matrix3 {
	return colorspace.Matrix3{
		m[0][0], m[1][0], m[2][0],
		m[0][1], m[1][1], m[2][1],
		m[0][2], m[1][2], m[2][2],
	}
}

// Offset returns the constant term of the affine transform.
func (m Matrix) Offset() colorspace.Vec3 {
	return colorspace.Vec3(m[3])
}

func (m Matrix) String() string {
	var b strings.Builder
	b.WriteString("CCM:\n")
	for i, row := range m {
		lb, rb := " [", "]"
		if i == 0 {
			lb = "[["
		}
		if i == len(m)-1 {
			rb = "]]"
		}
		fmt.Fprintf(&b, "%s% .8f % .8f % .8f%s\n", lb, row[0], row[1], row[2], rb)
	}
	return b.String()
}
