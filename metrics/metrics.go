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

// Package metrics measures how close a colour corrected image is to a
// reference image.
//
// The reference image is first reduced to the size of the corrected image,
// see [Thumbnail].  Mean squared error, peak signal-to-noise ratio and the
// structural similarity index (SSIM) are computed on the luminance of the
// two images.  [Diff] visualises the per-pixel RGB difference.  When the
// two images differ in size, all metrics use the overlapping region,
// anchored at the top-left corner.
package metrics

import (
	"errors"
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"

	"seehuhn.de/go/ccm/internal/parallel"
)

// Options holds the parameters of the SSIM computation.
type Options struct {
	// WindowRadius is the half-width of the square SSIM window.  The window
	// has 2·WindowRadius+1 pixels along each side.
	WindowRadius int

	// C1 and C2 stabilise the SSIM quotient for windows with small means and
	// small variances.
	C1, C2 float64

	// LMax is the largest possible pixel value, used for the PSNR.
	LMax float64
}

// DefaultOptions returns the standard parameters: a 5×5 window,
// C1 = (0.01·255)², C2 = (0.03·255)² and LMax = 255.
func DefaultOptions() *Options {
	return &Options{
		WindowRadius: 2,
		C1:           (0.01 * 255) * (0.01 * 255),
		C2:           (0.03 * 255) * (0.03 * 255),
		LMax:         255,
	}
}

// Validate checks that the options can be used.
func (opt *Options) Validate() error {
	if opt.WindowRadius < 0 {
		return fmt.Errorf("%w: negative window radius %d", ErrInvalidOptions, opt.WindowRadius)
	}
	if !(opt.C1 > 0) || !(opt.C2 > 0) {
		return fmt.Errorf("%w: C1=%g, C2=%g", ErrInvalidOptions, opt.C1, opt.C2)
	}
	if !(opt.LMax > 0) {
		return fmt.Errorf("%w: LMax=%g", ErrInvalidOptions, opt.LMax)
	}
	return nil
}

var (
	// ErrInvalidOptions indicates unusable SSIM parameters.
	ErrInvalidOptions = errors.New("metrics: invalid options")

	// ErrDimensionMismatch is returned if two images have no overlap.
	ErrDimensionMismatch = errors.New("metrics: images do not overlap")
)

// Thumbnail scales img down so that it fits into maxW×maxH pixels,
// preserving the aspect ratio.  Images which already fit are returned
// unchanged.
func Thumbnail(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return img
	}

	scale := min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	tw := max(int(math.Round(float64(w)*scale)), 1)
	th := max(int(math.Round(float64(h)*scale)), 1)
	tw = min(tw, maxW)
	th = min(th, maxH)

	dst := image.NewNRGBA(image.Rect(0, 0, tw, th))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Luminance converts img to 8-bit greyscale, using the ITU-R BT.601 weights.
func Luminance(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	b := img.Bounds()
	res := image.NewGray(b)
	draw.Draw(res, b, img, b.Min, draw.Src)
	return res
}

// overlap returns the size of the common region of two images.
func overlap(a, b image.Rectangle) (int, int, error) {
	w := min(a.Dx(), b.Dx())
	h := min(a.Dy(), b.Dy())
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("%w: %v and %v", ErrDimensionMismatch, a.Size(), b.Size())
	}
	return w, h, nil
}

// MSE returns the mean squared difference of the pixel values over the
// overlapping region of a and b.
func MSE(a, b *image.Gray) (float64, error) {
	w, h, err := overlap(a.Rect, b.Rect)
	if err != nil {
		return 0, err
	}

	rowSum := make([]float64, h)
	parallel.Rows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			pa := a.Pix[a.PixOffset(a.Rect.Min.X, a.Rect.Min.Y+y):]
			pb := b.Pix[b.PixOffset(b.Rect.Min.X, b.Rect.Min.Y+y):]
			s := 0.0
			for x := range w {
				d := float64(pa[x]) - float64(pb[x])
				s += d * d
			}
			rowSum[y] = s
		}
	})

	total := 0.0
	for _, s := range rowSum {
		total += s
	}
	return total / float64(w*h), nil
}

// PSNR converts a mean squared error into a peak signal-to-noise ratio in
// decibels.  If mse is zero, the result is +Inf.
func PSNR(mse, lmax float64) float64 {
	if mse == 0 {
		return math.Inf(1)
	}
	return 20*math.Log10(lmax) - 10*math.Log10(mse)
}

// Result collects the quality metrics of a corrected image.
type Result struct {
	MSE  float64
	PSNR float64
	SSIM float64 // mean over the SSIM map

	SSIMMap *SSIMMap
	Diff    *image.NRGBA

	// ReferenceSize is the size of the reference after thumbnailing.
	ReferenceSize image.Point
	CorrectedSize image.Point
}

// Compare computes all metrics for a corrected image.  The reference image
// is reduced to the size of the corrected image first.  If opt is nil,
// [DefaultOptions] are used.
func Compare(reference, corrected image.Image, opt *Options) (*Result, error) {
	if opt == nil {
		opt = DefaultOptions()
	}
	if err := opt.Validate(); err != nil {
		return nil, err
	}

	cb := corrected.Bounds()
	ref := Thumbnail(reference, cb.Dx(), cb.Dy())

	lRef := Luminance(ref)
	lCorr := Luminance(corrected)

	mse, err := MSE(lRef, lCorr)
	if err != nil {
		return nil, err
	}
	ssim, err := SSIM(lRef, lCorr, opt)
	if err != nil {
		return nil, err
	}
	diff, err := Diff(ref, corrected)
	if err != nil {
		return nil, err
	}

	return &Result{
		MSE:           mse,
		PSNR:          PSNR(mse, opt.LMax),
		SSIM:          ssim.Mean,
		SSIMMap:       ssim,
		Diff:          diff,
		ReferenceSize: ref.Bounds().Size(),
		CorrectedSize: cb.Size(),
	}, nil
}
