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

// Package imageio reads and writes image files for the command line tool.
package imageio

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif" // register decoder

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/codec/rgbe"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	_ "golang.org/x/image/webp" // register decoder

	"seehuhn.de/go/ccm/correct"
)

// ErrUnknownFormat is returned by [Save] if the file name extension does not
// select a supported format.
var ErrUnknownFormat = errors.New("imageio: unknown image format")

// errNotHDR is returned if an HDR file is to be written from 8-bit data.
var errNotHDR = errors.New("imageio: HDR output needs floating-point data")

func isRadiance(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".hdr", ".pic", ".rgbe":
		return true
	}
	return false
}

// Load reads an image file.  The format is detected from the file contents.
func Load(name string) (image.Image, error) {
	fd, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	img, err := decode(bufio.NewReader(fd), isRadiance(name))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return img, nil
}

func decode(r io.Reader, radiance bool) (image.Image, error) {
	if radiance {
		return rgbe.Decode(r)
	}
	img, _, err := image.Decode(r)
	return img, err
}

// LoadFloat reads an image file into floating-point linear light.
//
// Radiance HDR files are assumed to contain scene-linear values and are used
// as they are.  All other formats are 8-bit formats, and are converted to
// linear light using the given gamma.
func LoadFloat(name string, gamma float64) (*correct.FloatImage, error) {
	img, err := Load(name)
	if err != nil {
		return nil, err
	}
	if h, ok := img.(hdr.Image); ok {
		return correct.FromHDR(h), nil
	}
	return correct.FromImage(img, gamma), nil
}

// Save writes img to the named file.  The format is chosen by the file
// name extension: PNG, JPEG, BMP, TIFF, or Radiance HDR.  Radiance output
// requires an image which implements [hdr.Image], for example a
// [correct.FloatImage].
func Save(name string, img image.Image) (err error) {
	var encode func(io.Writer, image.Image) error
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		encode = png.Encode
	case ".jpg", ".jpeg":
		encode = func(w io.Writer, m image.Image) error {
			return jpeg.Encode(w, m, &jpeg.Options{Quality: 95})
		}
	case ".bmp":
		encode = bmp.Encode
	case ".tif", ".tiff":
		encode = func(w io.Writer, m image.Image) error {
			return tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate})
		}
	case ".hdr", ".pic", ".rgbe":
		if _, ok := img.(hdr.Image); !ok {
			return fmt.Errorf("%s: %w", name, errNotHDR)
		}
		encode = func(w io.Writer, m image.Image) error {
			return rgbe.Encode(w, m.(hdr.Image))
		}
	default:
		return fmt.Errorf("%s: %w", name, ErrUnknownFormat)
	}

	fd, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := fd.Close()
		if err == nil {
			err = closeErr
		}
	}()

	w := bufio.NewWriter(fd)
	if err := encode(w, img); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return w.Flush()
}
