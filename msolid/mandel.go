// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import "math"

// constants
const (
	SQ2    = math.Sqrt2             // √2
	SQ2by3 = 0.8164965809277260327  // √(2/3)
	SQ3by2 = 1.22474487139158904909 // √(3/2)
)

// Im is the 2nd order identity tensor in Mandel basis
var Im = []float64{1, 1, 1, 0, 0, 0}

// Psd is the 4th order symmetric-deviatoric projector in Mandel basis
var Psd = [][]float64{
	{2.0 / 3.0, -1.0 / 3.0, -1.0 / 3.0, 0, 0, 0},
	{-1.0 / 3.0, 2.0 / 3.0, -1.0 / 3.0, 0, 0, 0},
	{-1.0 / 3.0, -1.0 / 3.0, 2.0 / 3.0, 0, 0, 0},
	{0, 0, 0, 1, 0, 0},
	{0, 0, 0, 0, 1, 0},
	{0, 0, 0, 0, 0, 1},
}

// M_p returns the mean pressure p = -tr(σ)/3 (compression positive)
func M_p(σ []float64) float64 {
	return -(σ[0] + σ[1] + σ[2]) / 3.0
}

// M_q returns the von Mises equivalent stress q = √(3/2) ‖dev(σ)‖
func M_q(σ []float64) float64 {
	tr := σ[0] + σ[1] + σ[2]
	s0, s1, s2 := σ[0]-tr/3.0, σ[1]-tr/3.0, σ[2]-tr/3.0
	return SQ3by2 * math.Sqrt(s0*s0+s1*s1+s2*s2+σ[3]*σ[3]+σ[4]*σ[4]+σ[5]*σ[5])
}

// M_dev computes s = dev(σ) and returns its norm
func M_dev(s, σ []float64) (snorm float64) {
	tr := σ[0] + σ[1] + σ[2]
	for i := 0; i < 6; i++ {
		s[i] = σ[i] - tr*Im[i]/3.0
		snorm += s[i] * s[i]
	}
	return math.Sqrt(snorm)
}

// M_dot returns a : b
func M_dot(a, b []float64) (res float64) {
	for i := 0; i < 6; i++ {
		res += a[i] * b[i]
	}
	return
}
