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

package metrics

import (
	"image"
	"image/color"

	"seehuhn.de/go/ccm/internal/parallel"
)

// Diff visualises the per-pixel difference of two images.
//
// For every pixel of the overlapping region, the mean absolute RGB
// difference is expressed as a ratio in [0, 1].  The output pixel has red
// component ratio·255 and blue component (1-ratio)·255, so identical pixels
// are blue and maximally different pixels are red.  Alpha is ignored.
func Diff(reference, corrected image.Image) (*image.NRGBA, error) {
	rb, cb := reference.Bounds(), corrected.Bounds()
	w, h, err := overlap(rb, cb)
	if err != nil {
		return nil, err
	}

	res := image.NewNRGBA(image.Rect(0, 0, w, h))
	parallel.Rows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := range w {
				p := color.NRGBAModel.Convert(reference.At(rb.Min.X+x, rb.Min.Y+y)).(color.NRGBA)
				q := color.NRGBAModel.Convert(corrected.At(cb.Min.X+x, cb.Min.Y+y)).(color.NRGBA)
				sum := absDiff(p.R, q.R) + absDiff(p.G, q.G) + absDiff(p.B, q.B)
				ratio := float64(sum) / 3 / 255
				res.SetNRGBA(x, y, color.NRGBA{
					R: toByte(ratio * 255),
					B: toByte((1 - ratio) * 255),
					A: 0xFF,
				})
			}
		}
	})
	return res, nil
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
