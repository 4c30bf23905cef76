// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"
)

// SolverData holds FEM solver data
type SolverData struct {

	// nonlinear solver
	Type    string  `json:"type" yaml:"type"`       // nonlinear solver type: {imp} => implicit
	NmaxIt  int     `json:"nmaxit" yaml:"nmaxit"`   // number of max iterations
	Atol    float64 `json:"atol" yaml:"atol"`       // absolute tolerance
	Rtol    float64 `json:"rtol" yaml:"rtol"`       // relative tolerance
	FbTol   float64 `json:"fbtol" yaml:"fbtol"`     // tolerance for convergence on fb
	FbMin   float64 `json:"fbmin" yaml:"fbmin"`     // minimum value of fb
	DvgCtrl bool    `json:"dvgctrl" yaml:"dvgctrl"` // use divergence control
	NdvgMax int     `json:"ndvgmax" yaml:"ndvgmax"` // max number of continued divergence
	CteTg   bool    `json:"ctetg" yaml:"ctetg"`     // use constant tangent (modified Newton) during iterations
	ShowR   bool    `json:"showr" yaml:"showr"`     // show residual
	DtMin   float64 `json:"dtmin" yaml:"dtmin"`     // minimum time step when halving steps that do not converge
	Nhalve  int     `json:"nhalve" yaml:"nhalve"`   // max number of step halvings; 0 => no halving

	// constants
	Eps float64 `json:"eps" yaml:"eps"` // smallest number satisfying 1.0 + ϵ > 1.0

	// derived
	Itol float64 `json:"-" yaml:"-"` // iterations tolerance
}

// SetDefault set defaults values
func (o *SolverData) SetDefault() {
	o.Type = "imp"
	o.NmaxIt = 20
	o.Atol = 1e-6
	o.Rtol = 1e-6
	o.FbTol = 1e-8
	o.FbMin = 1e-14
	o.NdvgMax = 20
	o.DtMin = 1e-8
	o.Nhalve = 8
	o.Eps = 1e-16
}

// PostProcess performs a post-processing of the just read data
func (o *SolverData) PostProcess() (err error) {
	if o.Type != "imp" {
		return chk.Err("nonlinear solver type %q is not available", o.Type)
	}
	if o.NmaxIt < 1 {
		return chk.Err("max number of iterations must be positive. nmaxit = %d is invalid", o.NmaxIt)
	}
	if o.Rtol <= 0 {
		return chk.Err("relative tolerance must be positive. rtol = %g is invalid", o.Rtol)
	}
	o.Itol = math.Max(10.0*o.Eps/o.Rtol, math.Min(0.01, math.Sqrt(o.Rtol)))
	return
}

// SolveOptions holds options for solving quasi-static problems
type SolveOptions struct {
	T0             float64    `json:"t0" yaml:"t0"`                           // initial time
	Tend           float64    `json:"tend" yaml:"tend"`                       // final time
	Dt             float64    `json:"dt" yaml:"dt"`                           // time step
	Checkpoints    []float64  `json:"checkpoints" yaml:"checkpoints"`         // times that must be hit exactly; post-processors are evaluated there
	ReactionPlaces []string   `json:"reaction_places" yaml:"reaction_places"` // places where reaction forces are computed
	DGDegree       int        `json:"dg_degree" yaml:"dg_degree"`             // degree of the projection of internal variables: 0 or 1
	Solver         SolverData `json:"solver" yaml:"solver"`                   // nonlinear solver data
}

// SetDefault sets defaults values
func (o *SolveOptions) SetDefault() {
	o.T0 = 0
	o.Tend = 1
	o.Dt = 0.1
	o.DGDegree = 1
	o.Solver.SetDefault()
}

// PostProcess checks options and computes derived data
//  Note: checkpoints are sorted; those outside (t0, tend] are an error
func (o *SolveOptions) PostProcess() (err error) {
	if o.Tend <= o.T0 {
		return chk.Err("final time must be greater than initial time. t0 = %g, tend = %g", o.T0, o.Tend)
	}
	if o.Dt <= 0 {
		return chk.Err("time step must be positive. dt = %g is invalid", o.Dt)
	}
	if o.DGDegree != 0 && o.DGDegree != 1 {
		return chk.Err("DG degree must be 0 or 1. dg_degree = %d is invalid", o.DGDegree)
	}
	sort.Float64s(o.Checkpoints)
	for _, t := range o.Checkpoints {
		if t <= o.T0 || t > o.Tend+o.Dt*1e-10 {
			return chk.Err("checkpoint %g is out of (t0, tend] = (%g, %g]", t, o.T0, o.Tend)
		}
	}
	return o.Solver.PostProcess()
}

// Times computes the sequence of times to be solved for, such that all checkpoints are hit
func (o *SolveOptions) Times() (ts []float64) {
	tol := o.Dt * 1e-10
	targets := append([]float64{}, o.Checkpoints...)
	if len(targets) == 0 || targets[len(targets)-1] < o.Tend-tol {
		targets = append(targets, o.Tend)
	}
	t := o.T0
	for _, tc := range targets {
		for t < tc-tol {
			t = math.Min(t+o.Dt, tc)
			if tc-t < tol {
				t = tc
			}
			ts = append(ts, t)
		}
	}
	return
}

// IsCheckpoint tells whether t is one of the checkpoints (or any time if there are none)
func (o *SolveOptions) IsCheckpoint(t float64) bool {
	if len(o.Checkpoints) == 0 {
		return true
	}
	for _, tc := range o.Checkpoints {
		if math.Abs(t-tc) <= o.Dt*1e-10 {
			return true
		}
	}
	return false
}
