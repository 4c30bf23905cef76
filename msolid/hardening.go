// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"strings"

	"github.com/cpmech/gosl/chk"
)

// HardeningHypothesis defines the evolution of the hardening variable: dκ/dt = dλ/dt * P
//  Note: for the von Mises criterion P depends on the stress state only through q
type HardeningHypothesis interface {
	Name() string           // name of hypothesis
	P(q float64) float64    // P: hardening function
	DPdq(q float64) float64 // dP/dq
}

// RateIndependentHistory implements κ' = λ'
type RateIndependentHistory struct{}

// Name returns the name of hypothesis
func (o RateIndependentHistory) Name() string { return "unit" }

// P returns 1
func (o RateIndependentHistory) P(q float64) float64 { return 1 }

// DPdq returns 0
func (o RateIndependentHistory) DPdq(q float64) float64 { return 0 }

// RateIndependentHistoryPlasticWork implements κ' = σ:εp' = λ' σ:∂f/∂σ (plastic work)
type RateIndependentHistoryPlasticWork struct{}

// Name returns the name of hypothesis
func (o RateIndependentHistoryPlasticWork) Name() string { return "plastic-work" }

// P returns σ:∂f/∂σ == q for von Mises
func (o RateIndependentHistoryPlasticWork) P(q float64) float64 { return q }

// DPdq returns 1
func (o RateIndependentHistoryPlasticWork) DPdq(q float64) float64 { return 1 }

// NewHardeningHypothesis returns a hardening hypothesis by name: "unit" or "plastic-work"
func NewHardeningHypothesis(name string) (HardeningHypothesis, error) {
	switch strings.ToLower(name) {
	case "unit":
		return RateIndependentHistory{}, nil
	case "plastic-work":
		return RateIndependentHistoryPlasticWork{}, nil
	}
	return nil, chk.Err("The provided isotropic hardening hypothesis '%s' is not recognized/implemented.", name)
}
