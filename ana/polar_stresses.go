// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import "math"

// PolarStresses rotates the in-plane part of a Mandel stress vector σ = {σxx, σyy, σzz, √2σxy, ...}
// to the polar system at (x, y). Returns the radius and the radial, hoop and shear stresses
func PolarStresses(x, y float64, σ []float64) (r, sr, st, srt float64) {
	r = math.Hypot(x, y)
	c2, s2 := 1.0, 0.0
	if r > 0 {
		c2 = (x*x - y*y) / (r * r) // cos 2θ
		s2 = 2.0 * x * y / (r * r) // sin 2θ
	}
	mean := (σ[0] + σ[1]) / 2.0
	half := (σ[0] - σ[1]) / 2.0
	τ := σ[3] / math.Sqrt2
	sr = mean + half*c2 + τ*s2
	st = mean - half*c2 - τ*s2
	srt = -half*s2 + τ*c2
	return
}
