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

package correct

import (
	"image"
	"image/color"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/hdrcolor"

	"seehuhn.de/go/ccm/colorspace"
	"seehuhn.de/go/ccm/internal/parallel"
)

// FloatImage is an RGB image with one float64 per channel.
// Values are linear light; they are not restricted to [0, 1].
//
// FloatImage implements [hdr.Image], so it can be written by the encoders
// of github.com/mdouchement/hdr.
type FloatImage struct {
	// Pix holds the image's pixels, as R, G, B triples.  The pixel at
	// (x, y) starts at Pix[(y-Rect.Min.Y)*Stride + (x-Rect.Min.X)*3].
	Pix []float64

	// Stride is the Pix stride between vertically adjacent pixels.
	Stride int

	Rect image.Rectangle
}

var _ hdr.Image = (*FloatImage)(nil)

// NewFloatImage returns a new, black FloatImage with the given bounds.
func NewFloatImage(r image.Rectangle) *FloatImage {
	w, h := r.Dx(), r.Dy()
	return &FloatImage{
		Pix:    make([]float64, 3*w*h),
		Stride: 3 * w,
		Rect:   r,
	}
}

// Bounds implements the [image.Image] interface.
func (p *FloatImage) Bounds() image.Rectangle {
	return p.Rect
}

// ColorModel implements the [image.Image] interface.
func (p *FloatImage) ColorModel() color.Model {
	return hdrcolor.RGBModel
}

// At implements the [image.Image] interface.
func (p *FloatImage) At(x, y int) color.Color {
	return p.HDRAt(x, y)
}

// HDRAt implements the [hdr.Image] interface.
func (p *FloatImage) HDRAt(x, y int) hdrcolor.Color {
	v := p.RGBAt(x, y)
	return hdrcolor.RGB{R: v[0], G: v[1], B: v[2]}
}

// Size implements the [hdr.Image] interface.
func (p *FloatImage) Size() int {
	return p.Rect.Dx() * p.Rect.Dy()
}

// PixOffset returns the index of the first element of Pix that corresponds
// to the pixel at (x, y).
func (p *FloatImage) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*3
}

// RGBAt returns the colour of the pixel at (x, y).
// Pixels outside the image bounds are black.
func (p *FloatImage) RGBAt(x, y int) colorspace.Vec3 {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return colorspace.Vec3{}
	}
	i := p.PixOffset(x, y)
	return colorspace.Vec3(p.Pix[i : i+3])
}

// SetRGB sets the colour of the pixel at (x, y).
// Pixels outside the image bounds are ignored.
func (p *FloatImage) SetRGB(x, y int, v colorspace.Vec3) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	i := p.PixOffset(x, y)
	copy(p.Pix[i:i+3], v[:])
}

// FromHDR copies an image decoded by github.com/mdouchement/hdr into a
// FloatImage.  The pixel values are used as they are, without any gamma
// conversion.
func FromHDR(src hdr.Image) *FloatImage {
	b := src.Bounds()
	res := NewFloatImage(b)
	parallel.Rows(b.Dy(), func(y0, y1 int) {
		for y := b.Min.Y + y0; y < b.Min.Y+y1; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				r, g, bl, _ := src.HDRAt(x, y).HDRRGBA()
				res.SetRGB(x, y, colorspace.Vec3{r, g, bl})
			}
		}
	})
	return res
}

// FromImage converts an 8-bit image to linear light, by decoding every
// channel with [colorspace.Degamma].  Alpha is ignored.
func FromImage(src image.Image, gamma float64) *FloatImage {
	table := degammaTable(gamma)

	b := src.Bounds()
	res := NewFloatImage(b)
	parallel.Rows(b.Dy(), func(y0, y1 int) {
		for y := b.Min.Y + y0; y < b.Min.Y+y1; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
				res.SetRGB(x, y, colorspace.Vec3{table[c.R], table[c.G], table[c.B]})
			}
		}
	})
	return res
}

// degammaTable maps every 8-bit value to linear light.
func degammaTable(gamma float64) *[256]float64 {
	table := &[256]float64{}
	for i := range table {
		table[i] = colorspace.Degamma(colorspace.Dequantize(uint8(i)), gamma)
	}
	return table
}
