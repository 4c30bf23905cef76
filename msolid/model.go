// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package msolid implements models for solids based on continuum mechanics
/*
 *  All models work with 3D tensors in Mandel basis:
 *
 *     σ = {σxx, σyy, σzz, √2σxy, √2σyz, √2σzx}
 *
 *  The kinematic constraint (1D, 2D or 3D) reduces the stresses and
 *  strains seen by elements to the first nsig components:
 *
 *     1D : nsig = 1  {xx}
 *     2D : nsig = 4  {xx, yy, zz, xy}
 *     3D : nsig = 6
 *
 *  Stress constraints (uniaxial or plane stress) are enforced by the
 *  models by solving for the free (stress-free) strain components.
 */
package msolid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Model defines the interface for solid models
type Model interface {
	Init(ndim int, constraint string, prms dbf.Params) error // initialises model
	InitIntVars(σ []float64) (*State, error)                 // initialises AND allocates internal (secondary) variables
	GetPrms() dbf.Params                                     // gets (an example) of parameters
	GetConstraint() *Constraint                              // returns the kinematic constraint
}

// Small defines rate type solid models for small strain analyses
type Small interface {
	Update(s *State, ε, Δε []float64) error            // updates stresses for given strains
	CalcD(D [][]float64, s *State, firstIt bool) error // computes D = dσ_new/dε_new consistent with Update
}

// New returns new solid model
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'msolid' database", name)
	}
	return allocator(), nil
}

// GetAndInit returns a new model that is also initialised
func GetAndInit(name string, ndim int, constraint string, prms dbf.Params) (model Model, err error) {
	model, err = New(name)
	if err != nil {
		return
	}
	err = model.Init(ndim, constraint, prms)
	return
}

// allocators holds all available solid models; modelname => allocator
var allocators = map[string]func() Model{}
