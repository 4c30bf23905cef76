// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

// YieldVM implements the von Mises yield function with linear isotropic hardening
//  f(σ, κ) = q(σ) - (σ0 + H κ)
type YieldVM struct {
	Sig0 float64 // σ0: initial yield stress
	H    float64 // isotropic hardening modulus
}

// F computes the yield function
func (o YieldVM) F(σ []float64, κ float64) float64 {
	return M_q(σ) - (o.Sig0 + o.H*κ)
}

// DFdσ computes ∂f/∂σ = (3/2) dev(σ) / q
//  Note: returns false if q == 0 (derivative is undefined)
func (o YieldVM) DFdσ(dfdσ, σ []float64) (ok bool) {
	snorm := M_dev(dfdσ, σ)
	if snorm == 0 {
		return false
	}
	q := SQ3by2 * snorm
	for i := 0; i < 6; i++ {
		dfdσ[i] *= 1.5 / q
	}
	return true
}

// DFdκ computes ∂f/∂κ
func (o YieldVM) DFdκ() float64 { return -o.H }
