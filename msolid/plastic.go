// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// constants
const (
	RM_NIT   = 50    // maximum number of iterations of the local Newton method on Δλ
	RM_TOL   = 1e-12 // tolerance (relative to σ0) of the local Newton method on Δλ
	FREE_NIT = 30    // maximum number of iterations for the free strains of stress constraints
	FREE_TOL = 1e-12 // tolerance (relative to max|σ|) for the free strains
)

// vonMises implements the radial return mapping common to the von Mises models
type vonMises struct {
	SmallElasticity
	Yf  YieldVM             // yield function
	Hyp HardeningHypothesis // hardening hypothesis; nil means perfect plasticity

	// scratchpad
	epn  []float64 // εp at beginning of step
	εe   []float64 // trial elastic strains
	str  []float64 // deviator of trial stress
	nhat []float64 // unit deviatoric flow direction
}

// initPlastic parses parameters and allocates scratchpad
func (o *vonMises) initPlastic(ndim int, constraint string, prms dbf.Params) (err error) {
	err = o.SmallElasticity.Init(ndim, constraint, prms)
	if err != nil {
		return
	}
	o.Yf.Sig0 = -1
	for _, p := range prms {
		switch p.N {
		case "sig0":
			o.Yf.Sig0 = p.V
		case "H":
			o.Yf.H = p.V
		case "E", "nu":
		default:
			return chk.Err("von Mises: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.Yf.Sig0 <= 0 {
		return chk.Err("von Mises: initial yield stress must be positive. sig0 = %g is invalid", o.Yf.Sig0)
	}
	o.epn = make([]float64, 6)
	o.εe = make([]float64, 6)
	o.str = make([]float64, 6)
	o.nhat = make([]float64, 6)
	return
}

// GetPrms gets (an example) of parameters
func (o vonMises) GetPrms() dbf.Params {
	return dbf.Params{
		&dbf.P{N: "E", V: 1e5},
		&dbf.P{N: "nu", V: 0.3},
		&dbf.P{N: "sig0", V: 100},
		&dbf.P{N: "H", V: 1e3},
	}
}

// InitIntVars initialises internal (secondary) variables
func (o vonMises) InitIntVars(σ []float64) (s *State, err error) {
	s = NewState(1, len(o.Cons.Free))
	copy(s.Sig, σ)
	return
}

// YieldFuncs computes the yield functions
func (o vonMises) YieldFuncs(s *State) []float64 {
	return []float64{o.Yf.F(s.Sig, s.Alp[0])}
}

// Update updates stresses for given strains
func (o *vonMises) Update(s *State, ε, Δε []float64) (err error) {

	// state at beginning of step
	copy(o.epn, s.EpsP)
	κn := s.Alp[0]

	// strain constraints
	if !o.Cons.StressConstrained() {
		o.Cons.Expand(o.eps3, ε, nil)
		return o.returnMap(s, o.eps3, κn)
	}

	// stress constraints: find free strains such that the corresponding stresses vanish
	for it := 0; it < FREE_NIT; it++ {
		o.Cons.Expand(o.eps3, ε, s.EpsF)
		err = o.returnMap(s, o.eps3, κn)
		if err != nil {
			return
		}
		smax := 0.0
		for _, v := range s.Sig {
			smax = math.Max(smax, math.Abs(v))
		}
		if o.Cons.FreeResidual(s.Sig) <= FREE_TOL*(1.0+smax) {
			return
		}
		o.tangent3(o.D3, s.Sig, s.Dgam, s.Loading)
		err = o.Cons.CorrectFree(s.EpsF, o.D3, s.Sig)
		if err != nil {
			return
		}
	}
	return chk.Err("%s: free strains did not converge after %d iterations", o.Cons.Name, FREE_NIT)
}

// CalcD computes D = dσ_new/dε_new consistent with Update
func (o *vonMises) CalcD(D [][]float64, s *State, firstIt bool) (err error) {
	Δλ := s.Dgam
	if firstIt {
		Δλ = 0
	}
	o.tangent3(o.D3, s.Sig, Δλ, s.Loading)
	return o.Cons.Condense(D, o.D3)
}

// hard returns H and the hardening function P (and dP/dq) at q
func (o vonMises) hard(q float64) (H, P, dPdq float64) {
	if o.Hyp == nil || o.Yf.H == 0 {
		return 0, 1, 0
	}
	return o.Yf.H, o.Hyp.P(q), o.Hyp.DPdq(q)
}

// returnMap computes the new state for given total strains ε3 starting from epn and κn
func (o *vonMises) returnMap(s *State, ε3 []float64, κn float64) (err error) {

	// reset
	s.Dgam = 0
	s.Loading = false
	copy(s.EpsP, o.epn)
	s.Alp[0] = κn

	// trial stress
	for i := 0; i < 6; i++ {
		o.εe[i] = ε3[i] - o.epn[i]
	}
	o.CalcSig(s.Sig, o.εe)
	qtr := M_q(s.Sig)

	// trial yield function
	ftr := qtr - (o.Yf.Sig0 + o.Yf.H*κn)
	if ftr <= 0 {
		return
	}

	// local Newton on Δλ
	G3 := 3.0 * o.G
	H, P, _ := o.hard(qtr)
	Δλ := ftr / (G3 + H*P)
	converged := false
	for it := 0; it < RM_NIT; it++ {
		qn := qtr - G3*Δλ
		H, P, dPdq := o.hard(qn)
		r := qn - o.Yf.Sig0 - H*(κn+Δλ*P)
		if math.Abs(r) <= RM_TOL*o.Yf.Sig0 {
			converged = true
			break
		}
		drdΔλ := -G3 - H*P + G3*H*Δλ*dPdq
		Δλ -= r / drdΔλ
	}
	if !converged {
		return chk.Err("von Mises: return mapping did not converge after %d iterations", RM_NIT)
	}
	qn := qtr - G3*Δλ
	if qn <= 0 || Δλ < 0 {
		return chk.Err("von Mises: return mapping failed: q = %g, Δλ = %g", qn, Δλ)
	}

	// update
	M_dev(o.str, s.Sig)
	ratio := qn / qtr
	trσ := s.Sig[0] + s.Sig[1] + s.Sig[2]
	for i := 0; i < 6; i++ {
		s.Sig[i] = trσ*Im[i]/3.0 + ratio*o.str[i]
		s.EpsP[i] = o.epn[i] + Δλ*1.5*o.str[i]/qtr
	}
	_, P, _ = o.hard(qn)
	s.Alp[0] = κn + Δλ*P
	s.Dgam = Δλ
	s.Loading = true
	return
}

// tangent3 computes the full algorithmic tangent for given stress and Δλ
func (o *vonMises) tangent3(D [][]float64, σ []float64, Δλ float64, loading bool) {
	o.CalcDe(D)
	if !loading {
		return
	}
	snorm := M_dev(o.nhat, σ)
	if snorm == 0 {
		return
	}
	for i := 0; i < 6; i++ {
		o.nhat[i] /= snorm
	}
	G3 := 3.0 * o.G
	qn := SQ3by2 * snorm
	qtr := qn + G3*Δλ
	H, P, dPdq := o.hard(qn)
	drdΔλ := -G3 - H*P + G3*H*Δλ*dPdq
	drdq := 1.0 - H*Δλ*dPdq
	dΔλdq := -drdq / drdΔλ
	dqndqtr := 1.0 - G3*dΔλdq
	ratio := qn / qtr
	dratio := (dqndqtr*qtr - qn) / (qtr * qtr)
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			D[i][j] = o.K*Im[i]*Im[j] + 2.0*o.G*ratio*Psd[i][j] + 2.0*o.G*qtr*dratio*o.nhat[i]*o.nhat[j]
		}
	}
}

// PlasticPerfect implements von Mises perfect plasticity
type PlasticPerfect struct {
	vonMises
}

// PlasticRIH implements von Mises plasticity with rate-independent history (isotropic hardening)
type PlasticRIH struct {
	vonMises
}

// add models to factory
func init() {
	allocators["vm-perfect"] = func() Model { return new(PlasticPerfect) }
	allocators["vm-rih-unit"] = func() Model {
		o := new(PlasticRIH)
		o.Hyp = RateIndependentHistory{}
		return o
	}
	allocators["vm-rih-plastic-work"] = func() Model {
		o := new(PlasticRIH)
		o.Hyp = RateIndependentHistoryPlasticWork{}
		return o
	}
}

// Init initialises model
func (o *PlasticPerfect) Init(ndim int, constraint string, prms dbf.Params) (err error) {
	err = o.initPlastic(ndim, constraint, prms)
	if err != nil {
		return
	}
	if o.Yf.H != 0 {
		return chk.Err("perfect plasticity requires H = 0. H = %g is invalid", o.Yf.H)
	}
	return
}

// Init initialises model
func (o *PlasticRIH) Init(ndim int, constraint string, prms dbf.Params) (err error) {
	if o.Hyp == nil {
		return chk.Err("hardening hypothesis must be set before initialisation")
	}
	return o.initPlastic(ndim, constraint, prms)
}

// NewPlasticPerfect returns a new (initialised) perfect plasticity model
func NewPlasticPerfect(E, ν, sig0 float64, ndim int, constraint string) (o *PlasticPerfect, err error) {
	o = new(PlasticPerfect)
	err = o.Init(ndim, constraint, dbf.Params{
		&dbf.P{N: "E", V: E},
		&dbf.P{N: "nu", V: ν},
		&dbf.P{N: "sig0", V: sig0},
	})
	return
}

// NewPlasticRIH returns a new (initialised) plasticity model with isotropic hardening
func NewPlasticRIH(E, ν, sig0, H float64, hyp HardeningHypothesis, ndim int, constraint string) (o *PlasticRIH, err error) {
	o = new(PlasticRIH)
	o.Hyp = hyp
	err = o.Init(ndim, constraint, dbf.Params{
		&dbf.P{N: "E", V: E},
		&dbf.P{N: "nu", V: ν},
		&dbf.P{N: "sig0", V: sig0},
		&dbf.P{N: "H", V: H},
	})
	return
}
