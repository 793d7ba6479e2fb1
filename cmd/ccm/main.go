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

// Command ccm estimates colour correction matrices from colour chart
// measurements, applies them to images, and evaluates the result.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"seehuhn.de/go/ccm/colorspace"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app holds the state shared by all sub-commands.
type app struct {
	verbose bool
	log     *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "ccm",
		Short: "Estimate and apply colour correction matrices",
		Long: `ccm fits a colour correction matrix to two measurements of a 24-patch
colour chart, applies the matrix to 8-bit and HDR images, and measures
how close the corrected images are to a reference.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if a.verbose {
				level = slog.LevelDebug
			}
			h := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
			a.log = slog.New(h)
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "show progress information")

	root.AddCommand(
		a.newComputeCmd(),
		a.newCorrectCmd(),
		a.newCorrectHDRCmd(),
		a.newSSIMCmd(),
		a.newDiffCmd(),
		a.newPlotCmd(),
		a.newBakeCmd(),
	)
	return root
}

// step logs the start of one stage of a command.
func (a *app) step(msg string, args ...any) {
	a.log.Debug(msg, args...)
}

func checkGamma(gamma float64) error {
	if err := colorspace.CheckGamma(gamma); err != nil {
		return fmt.Errorf("--gamma: %w", err)
	}
	return nil
}
