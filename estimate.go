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

package ccm

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"seehuhn.de/go/ccm/chart"
	"seehuhn.de/go/ccm/colorspace"
)

// EstimateOptions controls the fit in [Estimate].
type EstimateOptions struct {
	// Gamma is the encoding gamma of the chart values.  Both charts are
	// converted to linear light by raising the values to this power before
	// the fit.  The default is 1, i.e. the values are already linear.
	Gamma float64
}

var defaultEstimateOptions = &EstimateOptions{Gamma: 1}

// Estimate computes the colour correction matrix which maps the source chart
// onto the reference chart.
//
// Both charts are converted to CIE XYZ.  The source values are augmented
// by a constant column, and the matrix is chosen to minimise the sum of
// squared XYZ differences over all 24 patches.  The least-squares problem
// is solved with the pseudo-inverse of the 24×4 design matrix, so a
// solution is returned even if the source patches do not span the colour
// space.
func Estimate(reference, source chart.PatchSet, opt *EstimateOptions) (Matrix, error) {
	if opt == nil {
		opt = defaultEstimateOptions
	}
	if err := checkInputs(reference, source, opt); err != nil {
		return Matrix{}, err
	}

	n := chart.NumPatches
	design := mat.NewDense(n, 4, nil)
	target := mat.NewDense(n, 3, nil)
	for i := range n {
		src := toXYZ(source[i], opt.Gamma)
		ref := toXYZ(reference[i], opt.Gamma)
		design.SetRow(i, []float64{src[0], src[1], src[2], 1})
		target.SetRow(i, ref[:])
	}

	pinv, err := pseudoInverse(design)
	if err != nil {
		return Matrix{}, err
	}

	var fit mat.Dense
	fit.Mul(pinv, target)

	var m Matrix
	for i := range 4 {
		for j := range 3 {
			m[i][j] = fit.At(i, j)
		}
	}
	return m, nil
}

// Residual returns the sum of squared XYZ differences between the reference
// chart and the source chart after correction with m.
func Residual(reference, source chart.PatchSet, m Matrix, opt *EstimateOptions) (float64, error) {
	if opt == nil {
		opt = defaultEstimateOptions
	}
	if err := checkInputs(reference, source, opt); err != nil {
		return 0, err
	}

	sum := 0.0
	for i := range chart.NumPatches {
		got := m.Apply(toXYZ(source[i], opt.Gamma))
		want := toXYZ(reference[i], opt.Gamma)
		for j := range 3 {
			d := got[j] - want[j]
			sum += d * d
		}
	}
	return sum, nil
}

func checkInputs(reference, source chart.PatchSet, opt *EstimateOptions) error {
	if len(reference) != chart.NumPatches {
		return &ShapeError{Set: "reference", Len: len(reference)}
	}
	if len(source) != chart.NumPatches {
		return &ShapeError{Set: "source", Len: len(source)}
	}
	return colorspace.CheckGamma(opt.Gamma)
}

func toXYZ(rgb colorspace.Vec3, gamma float64) colorspace.Vec3 {
	return colorspace.LinearRGBToXYZ(colorspace.DegammaVec(rgb, gamma))
}

// pseudoInverse computes the Moore-Penrose pseudo-inverse of a from its
// singular value decomposition.  Singular values below max(r, c)·ε·σ_max
// are treated as zero.
func pseudoInverse(a *mat.Dense) (*mat.Dense, error) {
	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return nil, errSVD
	}
	s := svd.Values(nil)

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	r, c := a.Dims()
	tol := 0.0
	if len(s) > 0 {
		tol = float64(max(r, c)) * epsilon * s[0]
	}

	// scale the columns of V by 1/σ
	vr, _ := v.Dims()
	for j, sigma := range s {
		f := 0.0
		if sigma > tol {
			f = 1 / sigma
		}
		for i := range vr {
			v.Set(i, j, v.At(i, j)*f)
		}
	}

	res := &mat.Dense{}
	res.Mul(&v, u.T())
	return res, nil
}

const epsilon = 0x1p-52

var errSVD = errors.New("ccm: singular value decomposition failed")

// ErrShapeMismatch is returned (wrapped in a [ShapeError]) if a chart does
// not have exactly 24 patches.
var ErrShapeMismatch = errors.New("ccm: shape mismatch")

// ShapeError reports a chart of the wrong size.
type ShapeError struct {
	Set string // "reference" or "source"
	Len int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("ccm: %s chart has %d patches, want %d",
		e.Set, e.Len, chart.NumPatches)
}

func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}
