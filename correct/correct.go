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

// Package correct applies colour correction matrices to colours, colour
// charts and images.
//
// All paths share the same core, [Linear], which maps linear sRGB values to
// XYZ, applies the correction matrix, and maps the result back to linear
// sRGB.  The 8-bit path [Image] decodes the input with the given gamma
// first; the HDR path [HDR] expects scene-linear input.  Both clamp the
// result to [0, 1], re-encode it with the gamma, and round to 8 bits in the
// same way, so an 8-bit image and its linearised float version give
// identical output.
package correct

import (
	"image"
	"image/color"

	"seehuhn.de/go/ccm"
	"seehuhn.de/go/ccm/chart"
	"seehuhn.de/go/ccm/colorspace"
	"seehuhn.de/go/ccm/internal/parallel"
)

// Options controls the gamma handling of the correction.
type Options struct {
	// Gamma is the display gamma.  8-bit values are decoded by raising them
	// to this power, and results are encoded by raising them to 1/Gamma.
	// If Gamma is zero, [DefaultGamma] is used.
	Gamma float64
}

// DefaultGamma is the gamma used when no options are given.
const DefaultGamma = 2.2

func (opt *Options) gamma() float64 {
	if opt == nil || opt.Gamma == 0 {
		return DefaultGamma
	}
	return opt.Gamma
}

// Linear corrects a linear sRGB colour.  The result is not clamped.
func Linear(m ccm.Matrix, rgb colorspace.Vec3) colorspace.Vec3 {
	xyz := colorspace.LinearRGBToXYZ(rgb)
	return colorspace.XYZToLinearRGB(m.Apply(xyz))
}

// Triple corrects a gamma-encoded colour with components in [0, 1].
// The result is clamped to [0, 1] and gamma-encoded again.
func Triple(m ccm.Matrix, rgb colorspace.Vec3, gamma float64) colorspace.Vec3 {
	lin := Linear(m, colorspace.DegammaVec(rgb, gamma))
	return colorspace.GammaVec(colorspace.Clamp01(lin), gamma)
}

// Patches corrects every patch of a colour chart.  Unlike [Triple], the
// results are not clamped, so that charts with values outside [0, 1] (for
// example in the range [0, 255]) can be corrected.  The input is not
// modified.
func Patches(m ccm.Matrix, set chart.PatchSet, opt *Options) chart.PatchSet {
	gamma := opt.gamma()
	res := make(chart.PatchSet, len(set))
	for i, p := range set {
		lin := Linear(m, colorspace.DegammaVec(p, gamma))
		res[i] = colorspace.RegammaVec(lin, gamma)
	}
	return res
}

// Image corrects an 8-bit image.  The alpha channel is copied unchanged.
func Image(src image.Image, m ccm.Matrix, opt *Options) *image.NRGBA {
	gamma := opt.gamma()
	table := degammaTable(gamma)

	b := src.Bounds()
	dst := image.NewNRGBA(b)
	parallel.Rows(b.Dy(), func(y0, y1 int) {
		for y := b.Min.Y + y0; y < b.Min.Y+y1; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
				lin := colorspace.Vec3{table[c.R], table[c.G], table[c.B]}
				out := encode(Linear(m, lin), gamma)
				out.A = c.A
				dst.SetNRGBA(x, y, out)
			}
		}
	})
	return dst
}

// HDR corrects a scene-linear float image and converts the result to an
// opaque 8-bit image.
func HDR(src *FloatImage, m ccm.Matrix, opt *Options) *image.NRGBA {
	gamma := opt.gamma()

	b := src.Bounds()
	dst := image.NewNRGBA(b)
	parallel.Rows(b.Dy(), func(y0, y1 int) {
		for y := b.Min.Y + y0; y < b.Min.Y+y1; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				out := encode(Linear(m, src.RGBAt(x, y)), gamma)
				out.A = 0xFF
				dst.SetNRGBA(x, y, out)
			}
		}
	})
	return dst
}

// LinearImage corrects a scene-linear float image.  The result is not
// clamped.
func LinearImage(src *FloatImage, m ccm.Matrix) *FloatImage {
	b := src.Bounds()
	dst := NewFloatImage(b)
	parallel.Rows(b.Dy(), func(y0, y1 int) {
		for y := b.Min.Y + y0; y < b.Min.Y+y1; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				dst.SetRGB(x, y, Linear(m, src.RGBAt(x, y)))
			}
		}
	})
	return dst
}

// encode clamps a linear colour, applies the gamma and quantizes the result.
func encode(lin colorspace.Vec3, gamma float64) color.NRGBA {
	v := colorspace.GammaVec(colorspace.Clamp01(lin), gamma)
	return color.NRGBA{
		R: colorspace.Quantize(v[0]),
		G: colorspace.Quantize(v[1]),
		B: colorspace.Quantize(v[2]),
	}
}
