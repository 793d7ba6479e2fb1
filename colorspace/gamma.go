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

package colorspace

import (
	"errors"
	"fmt"
	"math"
)

// Degamma converts an encoded channel value to linear light by computing
// v^gamma.
//
// The function is extended to negative values by odd symmetry and does not
// clamp values above 1, so that raw measurements in other ranges (for
// example [0, 255] with gamma 1) pass through unchanged.
func Degamma(v, gamma float64) float64 {
	if gamma == 1 {
		return v
	}
	if v < 0 {
		return -math.Pow(-v, gamma)
	}
	return math.Pow(v, gamma)
}

// Gamma converts a linear channel value to display encoding by computing
// v^(1/gamma).  The input is clamped to [0, 1] first, so the result is
// always a valid display value.
func Gamma(v, gamma float64) float64 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 1
	}
	if gamma == 1 {
		return v
	}
	return math.Pow(v, 1/gamma)
}

// Regamma is the inverse of [Degamma] on all real numbers.
// Unlike [Gamma], no clamping is applied.
func Regamma(v, gamma float64) float64 {
	return Degamma(v, 1/gamma)
}

// DegammaVec applies [Degamma] to every component of v.
func DegammaVec(v Vec3, gamma float64) Vec3 {
	return Vec3{Degamma(v[0], gamma), Degamma(v[1], gamma), Degamma(v[2], gamma)}
}

// GammaVec applies [Gamma] to every component of v.
func GammaVec(v Vec3, gamma float64) Vec3 {
	return Vec3{Gamma(v[0], gamma), Gamma(v[1], gamma), Gamma(v[2], gamma)}
}

// RegammaVec applies [Regamma] to every component of v.
func RegammaVec(v Vec3, gamma float64) Vec3 {
	return Vec3{Regamma(v[0], gamma), Regamma(v[1], gamma), Regamma(v[2], gamma)}
}

// Quantize converts a display value in [0, 1] to 8 bits, rounding to the
// nearest integer.  Values outside [0, 1] are clamped.
func Quantize(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Dequantize converts an 8-bit channel value to [0, 1].
func Dequantize(b uint8) float64 {
	return float64(b) / 255
}

// CheckGamma verifies that g can be used as a gamma exponent.
func CheckGamma(g float64) error {
	if !(g > 0) || math.IsInf(g, 0) {
		return fmt.Errorf("%w: %g", ErrInvalidGamma, g)
	}
	return nil
}

// ErrInvalidGamma is returned for gamma values which are not positive and
// finite.
var ErrInvalidGamma = errors.New("colorspace: invalid gamma")
