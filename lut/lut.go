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

// Package lut converts a colour correction into a three-dimensional lookup
// table, so that it can be applied by video and photo editing software.
package lut

import (
	"errors"
	"fmt"
	"math"

	"seehuhn.de/go/ccm"
	"seehuhn.de/go/ccm/colorspace"
	"seehuhn.de/go/ccm/correct"
)

// DefaultSize is the grid size used by most editing software.
const DefaultSize = 33

// MaxSize is the largest supported grid size.
const MaxSize = 256

// Cube is a 3D lookup table on a regular grid.
type Cube struct {
	Title string

	// Size is the number of grid points along each axis.
	Size int

	// DomainMin and DomainMax give the input range covered by the grid.
	DomainMin, DomainMax colorspace.Vec3

	// Data holds Size³ output colours.  The entry for grid point (r, g, b)
	// is Data[r + g*Size + b*Size*Size], i.e. the red index varies fastest.
	Data []colorspace.Vec3
}

// Bake samples the 8-bit correction path on a size×size×size grid over
// [0, 1]³.  If opt is nil, the default gamma is used.
func Bake(m ccm.Matrix, opt *correct.Options, size int) (*Cube, error) {
	if size < 2 || size > MaxSize {
		return nil, fmt.Errorf("%w: size %d not in [2, %d]", ErrInvalidCube, size, MaxSize)
	}
	gamma := correct.DefaultGamma
	if opt != nil && opt.Gamma != 0 {
		gamma = opt.Gamma
	}
	if err := colorspace.CheckGamma(gamma); err != nil {
		return nil, err
	}

	c := &Cube{
		Title:     "colour correction",
		Size:      size,
		DomainMax: colorspace.Vec3{1, 1, 1},
		Data:      make([]colorspace.Vec3, size*size*size),
	}
	scale := 1 / float64(size-1)
	for b := range size {
		for g := range size {
			for r := range size {
				in := colorspace.Vec3{float64(r) * scale, float64(g) * scale, float64(b) * scale}
				c.Data[c.index(r, g, b)] = correct.Triple(m, in, gamma)
			}
		}
	}
	return c, nil
}

func (c *Cube) index(r, g, b int) int {
	return r + c.Size*(g+c.Size*b)
}

// Lookup maps a colour through the table, using tetrahedral interpolation
// between the grid points.  Inputs outside the domain are clamped, and NaN
// inputs are treated as the lower end of the domain.
func (c *Cube) Lookup(rgb colorspace.Vec3) colorspace.Vec3 {
	n := c.Size
	if n < 2 {
		if len(c.Data) > 0 {
			return c.Data[0]
		}
		return colorspace.Vec3{}
	}

	// grid coordinates
	var idx [3]int
	var frac [3]float64
	for i := range 3 {
		span := c.DomainMax[i] - c.DomainMin[i]
		t := 0.0
		if span > 0 && !math.IsNaN(rgb[i]) {
			t = (rgb[i] - c.DomainMin[i]) / span
		}
		pos := colorspace.Clamp(t, 0, 1) * float64(n-1)
		k := min(int(pos), n-2)
		idx[i] = k
		frac[i] = colorspace.Clamp(pos-float64(k), 0, 1)
	}
	fr, fg, fb := frac[0], frac[1], frac[2]

	rStride := 1
	gStride := n
	bStride := n * n
	base := c.index(idx[0], idx[1], idx[2])

	c000 := c.Data[base]
	c111 := c.Data[base+rStride+gStride+bStride]

	// Select the tetrahedron by the order of the fractional parts.  Each
	// case walks from c000 to c111 along the edges of the grid cube, one
	// axis at a time.
	var p1, p2 colorspace.Vec3
	var w0, w1, w2, w3 float64
	switch {
	case fr > fg && fg > fb: // r, g, b
		p1 = c.Data[base+rStride]
		p2 = c.Data[base+rStride+gStride]
		w0, w1, w2, w3 = 1-fr, fr-fg, fg-fb, fb
	case fr > fg && fr > fb: // r, b, g
		p1 = c.Data[base+rStride]
		p2 = c.Data[base+rStride+bStride]
		w0, w1, w2, w3 = 1-fr, fr-fb, fb-fg, fg
	case fr > fg: // b, r, g
		p1 = c.Data[base+bStride]
		p2 = c.Data[base+rStride+bStride]
		w0, w1, w2, w3 = 1-fb, fb-fr, fr-fg, fg
	case fr > fb: // g, r, b
		p1 = c.Data[base+gStride]
		p2 = c.Data[base+rStride+gStride]
		w0, w1, w2, w3 = 1-fg, fg-fr, fr-fb, fb
	case fg > fb: // g, b, r
		p1 = c.Data[base+gStride]
		p2 = c.Data[base+gStride+bStride]
		w0, w1, w2, w3 = 1-fg, fg-fb, fb-fr, fr
	default: // b, g, r
		p1 = c.Data[base+bStride]
		p2 = c.Data[base+gStride+bStride]
		w0, w1, w2, w3 = 1-fb, fb-fg, fg-fr, fr
	}

	var out colorspace.Vec3
	for i := range 3 {
		out[i] = w0*c000[i] + w1*p1[i] + w2*p2[i] + w3*c111[i]
	}
	return out
}

// ErrInvalidCube is returned for malformed or unsupported lookup tables.
var ErrInvalidCube = errors.New("lut: invalid cube")
