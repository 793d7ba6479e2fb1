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

	"seehuhn.de/go/ccm/colorspace"
	"seehuhn.de/go/ccm/internal/parallel"
)

// SSIMMap holds the local SSIM values of two images.
//
// The map covers the interior of the overlap of the two images: pixels
// closer than the window radius to the border are excluded, so that every
// window lies completely inside both images.  Values[y*Width+x] belongs to
// the pixel (x+r, y+r) of the overlap, where r is the window radius.
type SSIMMap struct {
	Width, Height int
	Values        []float64

	// Mean is the average of all values, or 0 if the map is empty.
	Mean float64
}

// SSIM computes the structural similarity of a and b for every window
// position inside the overlap of the two images.  If opt is nil,
// [DefaultOptions] are used.
//
// If the images are too small for a single window, an empty map with mean
// 0 is returned.
func SSIM(a, b *image.Gray, opt *Options) (*SSIMMap, error) {
	if opt == nil {
		opt = DefaultOptions()
	}
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	w, h, err := overlap(a.Rect, b.Rect)
	if err != nil {
		return nil, err
	}

	r := opt.WindowRadius
	mw := w - 2*r
	mh := h - 2*r
	if mw <= 0 || mh <= 0 {
		return &SSIMMap{}, nil
	}

	res := &SSIMMap{
		Width:  mw,
		Height: mh,
		Values: make([]float64, mw*mh),
	}
	n := float64((2*r + 1) * (2*r + 1))
	c1, c2 := opt.C1, opt.C2

	at := func(img *image.Gray, x, y int) float64 {
		return float64(img.Pix[img.PixOffset(img.Rect.Min.X+x, img.Rect.Min.Y+y)])
	}

	rowSum := make([]float64, mh)
	parallel.Rows(mh, func(y0, y1 int) {
		for my := y0; my < y1; my++ {
			cy := my + r
			rowTotal := 0.0
			for mx := range mw {
				cx := mx + r

				var sumA, sumB float64
				for dy := -r; dy <= r; dy++ {
					for dx := -r; dx <= r; dx++ {
						sumA += at(a, cx+dx, cy+dy)
						sumB += at(b, cx+dx, cy+dy)
					}
				}
				muA := sumA / n
				muB := sumB / n

				var varA, varB, cov float64
				for dy := -r; dy <= r; dy++ {
					for dx := -r; dx <= r; dx++ {
						da := at(a, cx+dx, cy+dy) - muA
						db := at(b, cx+dx, cy+dy) - muB
						varA += da * da
						varB += db * db
						cov += da * db
					}
				}
				varA /= n
				varB /= n
				cov /= n

				s := ((2*muA*muB + c1) * (2*cov + c2)) /
					((muA*muA + muB*muB + c1) * (varA + varB + c2))
				res.Values[my*mw+mx] = s
				rowTotal += s
			}
			rowSum[my] = rowTotal
		}
	})

	total := 0.0
	for _, s := range rowSum {
		total += s
	}
	res.Mean = total / float64(mw*mh)
	return res, nil
}

// Image renders the SSIM map as a heat map.  Similar regions are blue,
// dissimilar regions are red.
func (m *SSIMMap) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, m.Width, m.Height))
	for y := range m.Height {
		for x := range m.Width {
			s := m.Values[y*m.Width+x]
			img.SetNRGBA(x, y, color.NRGBA{
				R: toByte((1 - s) * 255),
				B: toByte(s * 255),
				A: 0xFF,
			})
		}
	}
	return img
}

// toByte truncates v to an integer in [0, 255].
func toByte(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	return uint8(colorspace.Clamp(v, 0, 255))
}
