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

	"github.com/spf13/cobra"

	"seehuhn.de/go/ccm"
	"seehuhn.de/go/ccm/chart"
)

func (a *app) newComputeCmd() *cobra.Command {
	var gamma float64

	cmd := &cobra.Command{
		Use:   "compute REFERENCE SOURCE [OUTPUT]",
		Short: "Estimate a colour correction matrix from two chart measurements",
		Long: `compute fits the matrix which maps the SOURCE chart onto the REFERENCE
chart.  Both charts are CSV files with 24 rows of the form
"label,r,g,b", optionally preceded by a header row.  The matrix is
written to OUTPUT, which defaults to ccm.csv.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkGamma(gamma); err != nil {
				return err
			}
			output := "ccm.csv"
			if len(args) > 2 {
				output = args[2]
			}

			a.step("reading reference chart", "file", args[0])
			reference, err := chart.ReadFile(args[0])
			if err != nil {
				return err
			}
			a.step("reading source chart", "file", args[1])
			source, err := chart.ReadFile(args[1])
			if err != nil {
				return err
			}

			a.step("fitting matrix", "gamma", gamma)
			opt := &ccm.EstimateOptions{Gamma: gamma}
			m, err := ccm.Estimate(reference, source, opt)
			if err != nil {
				return err
			}
			before, err := ccm.Residual(reference, source, ccm.Identity(), opt)
			if err != nil {
				return err
			}
			after, err := ccm.Residual(reference, source, m, opt)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, m)
			fmt.Fprintf(out, "residual: %g (uncorrected %g)\n", after, before)

			a.step("writing matrix", "file", output)
			if err := ccm.WriteFile(output, m); err != nil {
				return fmt.Errorf("writing matrix: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().Float64VarP(&gamma, "gamma", "g", 1.0, "gamma of the chart values")
	return cmd
}
