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

package imageio

import (
	"image"
	"image/color"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"seehuhn.de/go/ccm/colorspace"
	"seehuhn.de/go/ccm/correct"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 8))
	for y := range 8 {
		for x := range 16 {
			img.SetNRGBA(x, y, color.NRGBA{uint8(16 * x), uint8(32 * y), uint8(x + y), 255})
		}
	}
	return img
}

func TestLosslessRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := testImage()

	for _, ext := range []string{".png", ".bmp", ".tiff"} {
		name := filepath.Join(dir, "test"+ext)
		require.NoError(t, Save(name, src), ext)

		img, err := Load(name)
		require.NoError(t, err, ext)
		require.Equal(t, src.Bounds(), img.Bounds(), ext)
		for y := range 8 {
			for x := range 16 {
				got := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
				require.Equal(t, src.NRGBAAt(x, y), got, "%s: pixel (%d,%d)", ext, x, y)
			}
		}
	}
}

func TestJPEG(t *testing.T) {
	name := filepath.Join(t.TempDir(), "test.jpg")
	require.NoError(t, Save(name, testImage()))
	img, err := Load(name)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 16, 8), img.Bounds())
}

func TestLoadFloat(t *testing.T) {
	name := filepath.Join(t.TempDir(), "test.png")
	src := testImage()
	require.NoError(t, Save(name, src))

	for _, gamma := range []float64{1, 2.2} {
		f, err := LoadFloat(name, gamma)
		require.NoError(t, err)
		c := src.NRGBAAt(5, 3)
		want := colorspace.DegammaVec(colorspace.Vec3{
			colorspace.Dequantize(c.R),
			colorspace.Dequantize(c.G),
			colorspace.Dequantize(c.B),
		}, gamma)
		require.Equal(t, want, f.RGBAt(5, 3))
	}
}

func TestRadiance(t *testing.T) {
	dir := t.TempDir()
	src := correct.NewFloatImage(image.Rect(0, 0, 4, 2))
	src.SetRGB(0, 0, colorspace.Vec3{1, 0.5, 0.25})
	src.SetRGB(1, 0, colorspace.Vec3{12, 3, 0.75}) // above display white
	src.SetRGB(3, 1, colorspace.Vec3{0.01, 0.02, 0.04})

	name := filepath.Join(dir, "test.hdr")
	require.NoError(t, Save(name, src))

	got, err := LoadFloat(name, 2.2)
	require.NoError(t, err)
	require.Equal(t, src.Bounds(), got.Bounds())
	for _, pt := range []image.Point{{0, 0}, {1, 0}, {3, 1}} {
		want := src.RGBAt(pt.X, pt.Y)
		have := got.RGBAt(pt.X, pt.Y)
		for i := range want {
			// RGBE stores an 8-bit mantissa with a shared exponent
			tol := 0.01 * math.Max(want[0], math.Max(want[1], want[2]))
			if math.Abs(have[i]-want[i]) > tol {
				t.Errorf("pixel %v: got %v, want %v", pt, have, want)
				break
			}
		}
	}

	err = Save(filepath.Join(dir, "bad.hdr"), testImage())
	require.Error(t, err)
}

func TestSaveUnknown(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "test.xyz"), testImage())
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)
}
