// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

// State holds all continuum mechanics data, including for updating the state
type State struct {

	// essential
	Sig []float64 // σ: current Cauchy stress tensor [6]

	// for plasticity (if len(α) > 0)
	EpsP    []float64 // εp: plastic strains [6]
	Alp     []float64 // α: internal variables of rate type [nalp]; α[0] == κ
	Dgam    float64   // Δγ: increment of Lagrange multiplier
	Loading bool      // unloading flag

	// for stress constraints
	EpsF []float64 // strains of the stress-free components [nfree]
}

// NewState allocates state structure for small strain analyses
func NewState(nalp, nfree int) *State {
	var state State
	state.Sig = make([]float64, 6)
	if nalp > 0 {
		state.EpsP = make([]float64, 6)
		state.Alp = make([]float64, nalp)
	}
	state.EpsF = make([]float64, nfree)
	return &state
}

// Set copies states
//  Note: 1) this and other states must have been pre-allocated with the same sizes
//        2) this method does not check for errors
func (o *State) Set(other *State) {
	copy(o.Sig, other.Sig)
	if len(o.Alp) > 0 {
		copy(o.EpsP, other.EpsP)
		copy(o.Alp, other.Alp)
		o.Dgam = other.Dgam
		o.Loading = other.Loading
	}
	copy(o.EpsF, other.EpsF)
}

// GetCopy returns a copy of this state
func (o *State) GetCopy() *State {
	other := NewState(len(o.Alp), len(o.EpsF))
	other.Set(o)
	return other
}

// Kappa returns the cumulated hardening variable κ (zero for elastic states)
func (o *State) Kappa() float64 {
	if len(o.Alp) > 0 {
		return o.Alp[0]
	}
	return 0
}
