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

package colorspace

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestInverseIsIdentity(t *testing.T) {
	prod := XYZToSRGB.Mul(SRGBToXYZ)
	id := Identity3()
	for i := range prod {
		if math.Abs(prod[i]-id[i]) > 1e-12 {
			t.Errorf("XYZToSRGB·SRGBToXYZ[%d] = %g, want %g", i, prod[i], id[i])
		}
	}
}

func TestInverseSingular(t *testing.T) {
	m := Matrix3{
		1, 2, 3,
		2, 4, 6,
		0, 1, 0,
	}
	_, err := m.Inverse()
	if !errors.Is(err, ErrSingular) {
		t.Errorf("Inverse of singular matrix: err = %v, want %v", err, ErrSingular)
	}
}

func TestXYZRoundTrip(t *testing.T) {
	inputs := []Vec3{
		{0, 0, 0},
		{1, 1, 1},
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
		{0.25, 0.5, 0.75},
		{0.9, 0.1, 0.4},
		{1.5, -0.2, 0.3}, // out of gamut values are not clamped
	}
	for _, rgb := range inputs {
		back := XYZToLinearRGB(LinearRGBToXYZ(rgb))
		for i := range rgb {
			if math.Abs(back[i]-rgb[i]) > 1e-4 {
				t.Errorf("round-trip failed: %v -> %v", rgb, back)
				break
			}
		}
	}
}

func TestD65White(t *testing.T) {
	want := Vec3{0.950456, 1.0, 1.089058}
	opt := cmpopts.EquateApprox(0, 1e-4)
	if d := cmp.Diff(want, D65White, opt); d != "" {
		t.Errorf("D65White mismatch (-want +got):\n%s", d)
	}
}

func TestGammaRoundTrip(t *testing.T) {
	gammas := []float64{1.0, 2.2, 2.4}
	inputs := []float64{0.0, 0.01, 0.1, 0.25, 0.5, 0.75, 0.9, 1.0}

	for _, gamma := range gammas {
		for _, x := range inputs {
			y := Degamma(x, gamma)
			xBack := Gamma(y, gamma)
			if math.Abs(xBack-x) > 1e-6 {
				t.Errorf("gamma %.1f: round-trip failed: %f -> %f -> %f",
					gamma, x, y, xBack)
			}
		}
	}
}

func TestDegamma(t *testing.T) {
	tests := []struct {
		v, gamma float64
		want     float64
	}{
		{0.5, 1.0, 0.5},
		{0.5, 2.0, 0.25},
		{0.5, 2.2, 0.2176},
		{200, 1.0, 200},
		{-0.5, 2.0, -0.25},
	}
	for _, tt := range tests {
		got := Degamma(tt.v, tt.gamma)
		if math.Abs(got-tt.want) > 0.001 {
			t.Errorf("Degamma(%g, %g) = %.4f, want %.4f", tt.v, tt.gamma, got, tt.want)
		}
	}
}

func TestGammaClamps(t *testing.T) {
	tests := []struct {
		v    float64
		want float64
	}{
		{-0.5, 0},
		{1.7, 1},
		{math.NaN(), 0},
		{math.Inf(1), 1},
	}
	for _, tt := range tests {
		got := Gamma(tt.v, 2.2)
		if got != tt.want {
			t.Errorf("Gamma(%g, 2.2) = %g, want %g", tt.v, got, tt.want)
		}
	}
}

func TestRegamma(t *testing.T) {
	for _, gamma := range []float64{1.0, 2.2} {
		for _, v := range []float64{-3, 0, 0.3, 1, 12.5, 255} {
			back := Regamma(Degamma(v, gamma), gamma)
			if math.Abs(back-v) > 1e-9*math.Max(1, math.Abs(v)) {
				t.Errorf("gamma %.1f: Regamma(Degamma(%g)) = %g", gamma, v, back)
			}
		}
	}
}

func TestQuantize(t *testing.T) {
	tests := []struct {
		v    float64
		want uint8
	}{
		{0, 0},
		{1, 255},
		{-1, 0},
		{2, 255},
		{math.NaN(), 0},
		{0.5, 128},
		{127.9999 / 255, 128},
		{127.4 / 255, 127},
	}
	for _, tt := range tests {
		got := Quantize(tt.v)
		if got != tt.want {
			t.Errorf("Quantize(%g) = %d, want %d", tt.v, got, tt.want)
		}
	}

	for b := 0; b < 256; b++ {
		if got := Quantize(Dequantize(uint8(b))); got != uint8(b) {
			t.Errorf("Quantize(Dequantize(%d)) = %d", b, got)
		}
	}
}

func TestCheckGamma(t *testing.T) {
	for _, g := range []float64{0.5, 1, 2.2} {
		if err := CheckGamma(g); err != nil {
			t.Errorf("CheckGamma(%g) = %v, want nil", g, err)
		}
	}
	for _, g := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if err := CheckGamma(g); !errors.Is(err, ErrInvalidGamma) {
			t.Errorf("CheckGamma(%g) = %v, want %v", g, err, ErrInvalidGamma)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 3); got != 3 {
		t.Errorf("Clamp(5, 0, 3) = %d, want 3", got)
	}
	if got := Clamp(-0.5, 0.0, 1.0); got != 0 {
		t.Errorf("Clamp(-0.5, 0, 1) = %g, want 0", got)
	}
	got := Clamp01(Vec3{math.NaN(), 0.5, 3})
	if got != (Vec3{0, 0.5, 1}) {
		t.Errorf("Clamp01 = %v, want [0 0.5 1]", got)
	}
}

func TestLabRoundTrip(t *testing.T) {
	inputs := []Vec3{
		{0, 0, 0},
		{0.001, 0.002, 0.001},
		{0.2, 0.3, 0.4},
		D65White,
	}
	for _, xyz := range inputs {
		lab := XYZToLab(xyz, D65White)
		back := LabToXYZ(lab, D65White)
		for i := range xyz {
			if math.Abs(back[i]-xyz[i]) > 1e-9 {
				t.Errorf("Lab round-trip failed: %v -> %v -> %v", xyz, lab, back)
				break
			}
		}
	}
}

func TestLabWhite(t *testing.T) {
	lab := XYZToLab(D65White, D65White)
	want := Vec3{100, 0, 0}
	opt := cmpopts.EquateApprox(0, 1e-9)
	if d := cmp.Diff(want, lab, opt); d != "" {
		t.Errorf("white point mismatch (-want +got):\n%s", d)
	}
	if e := DeltaE76(lab, Vec3{90, 3, 4}); math.Abs(e-math.Sqrt(125)) > 1e-9 {
		t.Errorf("DeltaE76 = %g, want %g", e, math.Sqrt(125))
	}
}
