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

import "math"

// CIE 1976 constants: δ = 6/29, κ-related slope (29/6)²/3 = 841/108.
const (
	labDelta  = 6.0 / 29.0
	labEps    = 216.0 / 24389.0 // δ³
	labSlope  = 841.0 / 108.0   // 1/(3δ²)
	labOffset = 16.0 / 116.0
)

// XYZToLab converts an XYZ triple to CIE 1976 L*a*b* relative to the given
// white point.  L is in [0, 100] for colours inside the gamut.
func XYZToLab(xyz, white Vec3) Vec3 {
	fx := labF(xyz[0] / white[0])
	fy := labF(xyz[1] / white[1])
	fz := labF(xyz[2] / white[2])

	return Vec3{
		116*fy - 16,
		500 * (fx - fy),
		200 * (fy - fz),
	}
}

// LabToXYZ is the inverse of [XYZToLab].
func LabToXYZ(lab, white Vec3) Vec3 {
	fy := (lab[0] + 16) / 116
	fx := fy + lab[1]/500
	fz := fy - lab[2]/200

	return Vec3{
		labFInv(fx) * white[0],
		labFInv(fy) * white[1],
		labFInv(fz) * white[2],
	}
}

// DeltaE76 returns the Euclidean distance between two L*a*b* colours.
func DeltaE76(lab1, lab2 Vec3) float64 {
	dL := lab1[0] - lab2[0]
	da := lab1[1] - lab2[1]
	db := lab1[2] - lab2[2]
	return math.Sqrt(dL*dL + da*da + db*db)
}

func labF(t float64) float64 {
	if t > labEps {
		return math.Cbrt(t)
	}
	return t*labSlope + labOffset
}

func labFInv(f float64) float64 {
	if f > labDelta {
		return f * f * f
	}
	return (f - labOffset) / labSlope
}
