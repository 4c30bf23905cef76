// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Calc_K_from_Enu returns the bulk modulus for given Young's modulus and Poisson's coefficient
func Calc_K_from_Enu(E, ν float64) float64 { return E / (3.0 * (1.0 - 2.0*ν)) }

// Calc_G_from_Enu returns the shear modulus for given Young's modulus and Poisson's coefficient
func Calc_G_from_Enu(E, ν float64) float64 { return E / (2.0 * (1.0 + ν)) }

// SmallElasticity implements linear elasticity for small strain analyses
type SmallElasticity struct {
	E  float64 // Young's modulus
	Nu float64 // Poisson's coefficient
	K  float64 // bulk modulus
	G  float64 // shear modulus

	Cons *Constraint // kinematic constraint
	Nsig int         // number of stress components seen by elements

	// scratchpad
	eps3 []float64   // full strain tensor [6]
	D3   [][]float64 // full tangent [6][6]
}

// add model to factory
func init() {
	allocators["lin-elast"] = func() Model { return new(SmallElasticity) }
}

// Init initialises model
func (o *SmallElasticity) Init(ndim int, constraint string, prms dbf.Params) (err error) {
	o.Cons, err = NewConstraint(ndim, constraint)
	if err != nil {
		return
	}
	o.Nsig = o.Cons.Nsig
	o.E, o.Nu = -1, -1
	for _, p := range prms {
		switch p.N {
		case "E":
			o.E = p.V
		case "nu":
			o.Nu = p.V
		}
	}
	return o.SetEnu(o.E, o.Nu)
}

// SetEnu sets E and ν and recomputes K and G
func (o *SmallElasticity) SetEnu(E, ν float64) (err error) {
	if E <= 0 {
		return chk.Err("Young's modulus must be positive. E = %g is invalid", E)
	}
	if ν < 0 || ν >= 0.5 {
		return chk.Err("Poisson's coefficient must be in [0, 0.5). ν = %g is invalid", ν)
	}
	o.E, o.Nu = E, ν
	o.K = Calc_K_from_Enu(E, ν)
	o.G = Calc_G_from_Enu(E, ν)
	o.eps3 = make([]float64, 6)
	o.D3 = make([][]float64, 6)
	for i := 0; i < 6; i++ {
		o.D3[i] = make([]float64, 6)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o SmallElasticity) GetPrms() dbf.Params {
	return dbf.Params{
		&dbf.P{N: "E", V: 1e5},
		&dbf.P{N: "nu", V: 0.3},
	}
}

// GetConstraint returns the kinematic constraint
func (o SmallElasticity) GetConstraint() *Constraint { return o.Cons }

// InitIntVars initialises internal (secondary) variables
func (o SmallElasticity) InitIntVars(σ []float64) (s *State, err error) {
	s = NewState(0, len(o.Cons.Free))
	copy(s.Sig, σ)
	return
}

// CalcSig computes the full stress tensor σ = De : εe
func (o SmallElasticity) CalcSig(σ, εe []float64) {
	trε := εe[0] + εe[1] + εe[2]
	for i := 0; i < 6; i++ {
		σ[i] = o.K*trε*Im[i] + 2.0*o.G*(εe[i]-trε*Im[i]/3.0)
	}
}

// CalcDe computes the full elastic tangent De = K Im⊗Im + 2G Psd
func (o SmallElasticity) CalcDe(D [][]float64) {
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			D[i][j] = o.K*Im[i]*Im[j] + 2.0*o.G*Psd[i][j]
		}
	}
}

// Update updates stresses for given strains
func (o *SmallElasticity) Update(s *State, ε, Δε []float64) (err error) {
	if len(o.Cons.Free) == 0 {
		o.Cons.Expand(o.eps3, ε, nil)
		o.CalcSig(s.Sig, o.eps3)
		return
	}

	// free strains (linear: a single Newton step is exact)
	o.Cons.Expand(o.eps3, ε, s.EpsF)
	o.CalcSig(s.Sig, o.eps3)
	o.CalcDe(o.D3)
	err = o.Cons.CorrectFree(s.EpsF, o.D3, s.Sig)
	if err != nil {
		return
	}
	o.Cons.Expand(o.eps3, ε, s.EpsF)
	o.CalcSig(s.Sig, o.eps3)
	return
}

// CalcD computes D = dσ_new/dε_new consistent with Update
func (o *SmallElasticity) CalcD(D [][]float64, s *State, firstIt bool) (err error) {
	o.CalcDe(o.D3)
	return o.Cons.Condense(D, o.D3)
}
