// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Uniaxial implements the response of a von Mises material under monotonic uniaxial stress
type Uniaxial struct {
	E    float64 // Young's modulus
	Sig0 float64 // initial yield stress
	H    float64 // isotropic hardening modulus
}

// SigUnit returns the stress for a given (total) strain with the 'unit' hardening hypothesis
//  σ = σ0 + E H / (E + H) (ε - σ0/E)
func (o Uniaxial) SigUnit(ε float64) float64 {
	εy := o.Sig0 / o.E
	if math.Abs(ε) <= εy {
		return o.E * ε
	}
	sgn := 1.0
	if ε < 0 {
		sgn = -1.0
	}
	return sgn * (o.Sig0 + o.E*o.H/(o.E+o.H)*(math.Abs(ε)-εy))
}

// EpsPlasticWork returns the strain for a given stress with the 'plastic-work' hypothesis
//  σ = σ0 exp(H εp)  =>  ε = σ/E + ln(σ/σ0)/H
func (o Uniaxial) EpsPlasticWork(σ float64) float64 {
	if σ <= o.Sig0 {
		return σ / o.E
	}
	return σ/o.E + math.Log(σ/o.Sig0)/o.H
}

// SigPlasticWork returns the stress for a given (positive) strain with the 'plastic-work' hypothesis
func (o Uniaxial) SigPlasticWork(ε float64) (σ float64, err error) {
	if ε <= o.Sig0/o.E {
		return o.E * ε, nil
	}
	σ = o.Sig0
	for it := 0; it < 50; it++ {
		r := o.EpsPlasticWork(σ) - ε
		if math.Abs(r) < 1e-15 {
			return
		}
		σ -= r / (1.0/o.E + 1.0/(o.H*σ))
	}
	return σ, chk.Err("cannot compute stress for ε = %g", ε)
}
