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

import "errors"

// Vec3 is a colour triple. Depending on context the components are
// gamma-encoded RGB, linear RGB, CIE XYZ or CIE L*a*b* values.
type Vec3 [3]float64

// Matrix3 is a 3x3 matrix, stored in row-major order.
type Matrix3 [9]float64

// Identity3 returns the 3x3 identity matrix.
func Identity3() Matrix3 {
	return Matrix3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Apply returns the matrix-vector product m·v.
func (m Matrix3) Apply(v Vec3) Vec3 {
	return Vec3{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2],
		m[3]*v[0] + m[4]*v[1] + m[5]*v[2],
		m[6]*v[0] + m[7]*v[1] + m[8]*v[2],
	}
}

// Mul returns the matrix product m·other.
func (m Matrix3) Mul(other Matrix3) Matrix3 {
	var res Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sum := 0.0
			for k := 0; k < 3; k++ {
				sum += m[i*3+k] * other[k*3+j]
			}
			res[i*3+j] = sum
		}
	}
	return res
}

// Inverse returns the inverse of m, computed from the adjugate.
// If m is singular, ErrSingular is returned.
func (m Matrix3) Inverse() (Matrix3, error) {
	a, b, c := m[0], m[1], m[2]
	d, e, f := m[3], m[4], m[5]
	g, h, i := m[6], m[7], m[8]

	det := a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
	if det == 0 {
		return Matrix3{}, ErrSingular
	}
	s := 1 / det

	return Matrix3{
		(e*i - f*h) * s, (c*h - b*i) * s, (b*f - c*e) * s,
		(f*g - d*i) * s, (a*i - c*g) * s, (c*d - a*f) * s,
		(d*h - e*g) * s, (b*g - a*h) * s, (a*e - b*d) * s,
	}, nil
}

// ErrSingular is returned when inverting a matrix with zero determinant.
var ErrSingular = errors.New("colorspace: singular matrix")
