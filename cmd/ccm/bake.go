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
	"os"

	"github.com/spf13/cobra"

	"seehuhn.de/go/ccm"
	"seehuhn.de/go/ccm/correct"
	"seehuhn.de/go/ccm/lut"
)

func (a *app) newBakeCmd() *cobra.Command {
	var gamma float64
	var size int
	var title string

	cmd := &cobra.Command{
		Use:   "bake CCM OUTPUT",
		Short: "Convert a colour correction matrix into a 3D LUT",
		Long: `bake samples the 8-bit correction with the matrix stored in CCM on a
regular grid and writes the result as a .cube lookup table.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if err := checkGamma(gamma); err != nil {
				return err
			}

			a.step("reading matrix", "file", args[0])
			m, err := ccm.ReadFile(args[0])
			if err != nil {
				return err
			}

			a.step("baking", "size", size, "gamma", gamma)
			cube, err := lut.Bake(m, &correct.Options{Gamma: gamma}, size)
			if err != nil {
				return err
			}
			if title != "" {
				cube.Title = title
			}

			a.step("writing table", "file", args[1])
			fd, err := os.Create(args[1])
			if err != nil {
				return err
			}
			defer func() {
				closeErr := fd.Close()
				if err == nil {
					err = closeErr
				}
			}()
			return cube.Encode(fd)
		},
	}
	cmd.Flags().Float64VarP(&gamma, "gamma", "g", correct.DefaultGamma, "display gamma")
	cmd.Flags().IntVar(&size, "size", lut.DefaultSize, "number of grid points per axis")
	cmd.Flags().StringVar(&title, "title", "", "title stored in the table")
	return cmd
}
