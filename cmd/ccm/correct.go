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

package main

import (
	"github.com/spf13/cobra"

	"seehuhn.de/go/ccm"
	"seehuhn.de/go/ccm/correct"
	"seehuhn.de/go/ccm/internal/imageio"
)

func (a *app) newCorrectCmd() *cobra.Command {
	var gamma float64

	cmd := &cobra.Command{
		Use:   "correct CCM INPUT OUTPUT",
		Short: "Apply a colour correction matrix to an 8-bit image",
		Long: `correct applies the matrix stored in CCM to the image INPUT and writes
the result to OUTPUT.  The output format is chosen by the file name
extension (png, jpg, bmp or tiff).`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkGamma(gamma); err != nil {
				return err
			}

			a.step("reading matrix", "file", args[0])
			m, err := ccm.ReadFile(args[0])
			if err != nil {
				return err
			}
			a.step("reading image", "file", args[1])
			src, err := imageio.Load(args[1])
			if err != nil {
				return err
			}

			a.step("correcting", "gamma", gamma, "size", src.Bounds().Size())
			dst := correct.Image(src, m, &correct.Options{Gamma: gamma})

			a.step("writing image", "file", args[2])
			return imageio.Save(args[2], dst)
		},
	}
	cmd.Flags().Float64VarP(&gamma, "gamma", "g", correct.DefaultGamma, "display gamma")
	return cmd
}

func (a *app) newCorrectHDRCmd() *cobra.Command {
	var gamma float64
	var output string
	var linear bool

	cmd := &cobra.Command{
		Use:   "correct-hdr CCM INPUT",
		Short: "Apply a colour correction matrix to an HDR image",
		Long: `correct-hdr reads INPUT as scene-linear floating-point data, applies
the matrix stored in CCM, and writes a gamma-encoded 8-bit PNG file.
Radiance HDR files are used as they are; other formats are converted to
linear light with the given gamma first.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkGamma(gamma); err != nil {
				return err
			}

			a.step("reading matrix", "file", args[0])
			m, err := ccm.ReadFile(args[0])
			if err != nil {
				return err
			}
			a.step("reading image", "file", args[1])
			src, err := imageio.LoadFloat(args[1], gamma)
			if err != nil {
				return err
			}

			a.step("correcting", "gamma", gamma, "size", src.Bounds().Size())
			dst := correct.HDR(src, m, &correct.Options{Gamma: gamma})
			name := output + ".png"
			a.step("writing image", "file", name)
			if err := imageio.Save(name, dst); err != nil {
				return err
			}

			if linear {
				name := output + ".hdr"
				a.step("writing linear image", "file", name)
				if err := imageio.Save(name, correct.LinearImage(src, m)); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().Float64VarP(&gamma, "gamma", "g", correct.DefaultGamma, "display gamma")
	cmd.Flags().StringVarP(&output, "output", "o", "corrected", "base name of the output file")
	cmd.Flags().BoolVar(&linear, "linear", false, "also write the unclamped result as a Radiance HDR file")
	return cmd
}
