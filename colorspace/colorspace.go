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

// Package colorspace converts colours between gamma-encoded RGB, linear RGB
// and the device independent CIE XYZ space.
//
// All conversions use the sRGB primaries with the D65 reference white.  The
// forward matrix [SRGBToXYZ] is the only set of coefficients in the package;
// [XYZToSRGB] is derived from it when the package is initialised, so that the
// two directions are exact inverses up to rounding.
//
// Channel values are normalised to [0, 1].  The functions make no distinction
// between values which came from 8-bit images and values which came from
// floating-point HDR buffers; only [Quantize] and [Dequantize] deal with the
// integral representation.
package colorspace

import (
	"math"

	"golang.org/x/exp/constraints"
)

// SRGBToXYZ maps linear sRGB values to CIE XYZ (D65).
var SRGBToXYZ = Matrix3{
	0.412391, 0.357584, 0.180481,
	0.212639, 0.715169, 0.072192,
	0.019331, 0.119195, 0.950532,
}

// XYZToSRGB maps CIE XYZ (D65) values to linear sRGB.
// The matrix is computed as the inverse of [SRGBToXYZ].
var XYZToSRGB = mustInverse(SRGBToXYZ)

// D65White is the XYZ value of the D65 reference white, i.e. the image of
// linear RGB (1, 1, 1) under [SRGBToXYZ].
var D65White = SRGBToXYZ.Apply(Vec3{1, 1, 1})

func mustInverse(m Matrix3) Matrix3 {
	inv, err := m.Inverse()
	if err != nil {
		panic(err)
	}
	return inv
}

// LinearRGBToXYZ converts a linear sRGB triple to CIE XYZ.
func LinearRGBToXYZ(rgb Vec3) Vec3 {
	return SRGBToXYZ.Apply(rgb)
}

// XYZToLinearRGB converts a CIE XYZ triple to linear sRGB.
// The result is not clamped.
func XYZToLinearRGB(xyz Vec3) Vec3 {
	return XYZToSRGB.Apply(xyz)
}

// Clamp restricts x to the interval [lo, hi].
func Clamp[T constraints.Ordered](x, lo, hi T) T {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Clamp01 restricts every component of v to [0, 1].
// NaN components are mapped to 0.
func Clamp01(v Vec3) Vec3 {
	for i, x := range v {
		if math.IsNaN(x) {
			v[i] = 0
		} else {
			v[i] = Clamp(x, 0, 1)
		}
	}
	return v
}
