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
	"fmt"
	"image"

	"github.com/spf13/cobra"

	"seehuhn.de/go/ccm/internal/imageio"
	"seehuhn.de/go/ccm/metrics"
)

func (a *app) newSSIMCmd() *cobra.Command {
	var output string
	var window int

	cmd := &cobra.Command{
		Use:   "ssim REFERENCE CORRECTED",
		Short: "Compute MSE, PSNR and SSIM of a corrected image",
		Long: `ssim compares the luminance of CORRECTED to the luminance of REFERENCE.
The reference is reduced to the size of the corrected image first.  The
results are printed, and the SSIM map is written to a PNG file.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opt := metrics.DefaultOptions()
			opt.WindowRadius = window
			if err := opt.Validate(); err != nil {
				return err
			}

			reference, corrected, err := a.loadPair(args[0], args[1])
			if err != nil {
				return err
			}

			a.step("computing metrics")
			res, err := metrics.Compare(reference, corrected, opt)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "reference %d x %d\n", res.ReferenceSize.X, res.ReferenceSize.Y)
			fmt.Fprintf(out, "corrected %d x %d\n", res.CorrectedSize.X, res.CorrectedSize.Y)
			fmt.Fprintf(out, "MSE: %g\nPSNR: %g\n", res.MSE, res.PSNR)
			fmt.Fprintf(out, "Average SSIM: %g\n", res.SSIM)

			if res.SSIMMap.Width == 0 || res.SSIMMap.Height == 0 {
				a.log.Warn("image smaller than the SSIM window, no map written",
					"window", 2*window+1)
				return nil
			}
			name := output + ".png"
			a.step("writing SSIM map", "file", name)
			return imageio.Save(name, res.SSIMMap.Image())
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "ssim", "base name of the SSIM map")
	cmd.Flags().IntVar(&window, "window", 2, "radius of the SSIM window")
	return cmd
}

func (a *app) newDiffCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "diff REFERENCE CORRECTED",
		Short: "Visualise the pixel differences of two images",
		Long: `diff writes an image which is blue where CORRECTED matches REFERENCE and
red where the two images differ.  The reference is reduced to the size of
the corrected image first.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			reference, corrected, err := a.loadPair(args[0], args[1])
			if err != nil {
				return err
			}

			cb := corrected.Bounds()
			reference = metrics.Thumbnail(reference, cb.Dx(), cb.Dy())
			a.step("computing difference")
			diff, err := metrics.Diff(reference, corrected)
			if err != nil {
				return err
			}

			name := output + ".png"
			a.step("writing difference image", "file", name)
			return imageio.Save(name, diff)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "diffImg", "base name of the output file")
	return cmd
}

func (a *app) loadPair(refName, corrName string) (image.Image, image.Image, error) {
	a.step("reading reference image", "file", refName)
	reference, err := imageio.Load(refName)
	if err != nil {
		return nil, nil, err
	}
	a.step("reading corrected image", "file", corrName)
	corrected, err := imageio.Load(corrName)
	if err != nil {
		return nil, nil, err
	}
	return reference, corrected, nil
}
