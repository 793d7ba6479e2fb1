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

package chart

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"seehuhn.de/go/ccm/colorspace"
)

// Layout of the comparison image.
const (
	gridColumns = 6
	gridRows    = 4
	patchSize   = 100
	gutter      = 15
)

// RenderSize is the size of the images returned by [Render].
var RenderSize = image.Point{
	X: gutter + (patchSize+gutter)*gridColumns,
	Y: gutter + (patchSize+gutter)*gridRows,
}

// Render draws the reference and corrected charts side by side.  Each patch
// is split horizontally, with the reference colour in the top half and the
// corrected colour in the bottom half.  If diffs is not nil, the match ratio
// of every patch is printed underneath.  Colour values must be in [0, 1].
func Render(reference, corrected PatchSet, diffs []PatchDiff) *image.RGBA {
	img := image.NewRGBA(image.Rectangle{Max: RenderSize})
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: face,
	}

	n := min(len(reference), len(corrected), gridColumns*gridRows)
	for i := range n {
		x := gutter + (patchSize+gutter)*(i%gridColumns)
		y := gutter + (patchSize+gutter)*(i/gridColumns)

		top := image.Rect(x, y, x+patchSize, y+patchSize/2)
		bottom := image.Rect(x, y+patchSize/2, x+patchSize, y+patchSize)
		draw.Draw(img, top, image.NewUniform(toRGBA(reference[i])), image.Point{}, draw.Src)
		draw.Draw(img, bottom, image.NewUniform(toRGBA(corrected[i])), image.Point{}, draw.Src)

		if i < len(diffs) {
			d.Dot = fixed.P(x+patchSize/2-10, y+patchSize+2+face.Ascent)
			d.DrawString(fmt.Sprintf("%3.1f%%", diffs[i].MatchRatio))
		}
	}
	return img
}

func toRGBA(v colorspace.Vec3) color.RGBA {
	return color.RGBA{
		R: colorspace.Quantize(v[0]),
		G: colorspace.Quantize(v[1]),
		B: colorspace.Quantize(v[2]),
		A: 0xFF,
	}
}
