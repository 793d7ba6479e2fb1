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
	"text/tabwriter"

	"github.com/spf13/cobra"

	"seehuhn.de/go/ccm"
	"seehuhn.de/go/ccm/chart"
	"seehuhn.de/go/ccm/correct"
	"seehuhn.de/go/ccm/internal/imageio"
)

func (a *app) newPlotCmd() *cobra.Command {
	var gamma float64
	var csvOut string

	cmd := &cobra.Command{
		Use:   "plot CCM REFERENCE SOURCE OUTPUTBASE",
		Short: "Compare a corrected chart to the reference chart",
		Long: `plot corrects the SOURCE chart with the matrix stored in CCM and compares
the result to the REFERENCE chart.  A table of per-patch differences is
printed, and an image showing the reference and corrected colours of
every patch is written to OUTPUTBASE.png.  Charts with values above 1 are
assumed to use the range [0, 255].`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkGamma(gamma); err != nil {
				return err
			}

			a.step("reading matrix", "file", args[0])
			m, err := ccm.ReadFile(args[0])
			if err != nil {
				return err
			}
			a.step("reading reference chart", "file", args[1])
			reference, err := chart.ReadFile(args[1])
			if err != nil {
				return err
			}
			a.step("reading source chart", "file", args[2])
			source, err := chart.ReadFile(args[2])
			if err != nil {
				return err
			}

			corrected := correct.Patches(m, source, &correct.Options{Gamma: gamma})
			if csvOut != "" {
				a.step("writing corrected chart", "file", csvOut)
				if err := chart.WriteFile(csvOut, corrected); err != nil {
					return err
				}
			}

			if max(reference.Max(), corrected.Max()) > 1 {
				reference = reference.Scale(1.0 / 255)
				corrected = corrected.Scale(1.0 / 255)
			}
			diffs := chart.Compare(reference, corrected)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(tw, "patch\tmatch %\tΔE76\tΔE2000\t")
			for i, d := range diffs {
				fmt.Fprintf(tw, "%d\t%.1f\t%.2f\t%.2f\t\n", i+1, d.MatchRatio, d.DeltaE76, d.DeltaE2000)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			name := args[3] + ".png"
			a.step("writing comparison image", "file", name)
			return imageio.Save(name, chart.Render(reference, corrected, diffs))
		},
	}
	cmd.Flags().Float64VarP(&gamma, "gamma", "g", 1.0, "gamma of the chart values")
	cmd.Flags().StringVar(&csvOut, "csv", "", "also write the corrected chart to this CSV file")
	return cmd
}
