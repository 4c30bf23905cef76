// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
)

// Path holds a strain path for material point simulations
type Path struct {
	Eps   [][]float64 // [npoints][nsig] reduced strains at the path points; first point is the initial state
	Nincs int         // number of increments per segment
}

// Driver runs material point simulations along strain paths
type Driver struct {

	// input
	CheckD bool    // check consistent matrix against finite differences
	TolD   float64 // relative tolerance to check consistent matrix
	StepD  float64 // step size for finite differences
	VerD   bool    // verbose check of D

	// results
	Res []*State    // results
	Eps [][]float64 // strains

	// internal
	nsig  int
	model Model
	small Small
	D     [][]float64
}

// Init initialises driver by allocating and initialising a model
func (o *Driver) Init(modelname string, ndim int, constraint string, prms dbf.Params) (err error) {
	mdl, err := GetAndInit(modelname, ndim, constraint, prms)
	if err != nil {
		return
	}
	return o.InitWithModel(mdl)
}

// InitWithModel initialises driver with an existent model
func (o *Driver) InitWithModel(model Model) (err error) {
	o.model = model
	var ok bool
	o.small, ok = model.(Small)
	if !ok {
		return chk.Err("driver can only handle small strain models")
	}
	o.nsig = model.GetConstraint().Nsig
	o.D = utl.Alloc(o.nsig, o.nsig)
	if o.TolD == 0 {
		o.TolD = 1e-5
	}
	if o.StepD == 0 {
		o.StepD = 1e-7
	}
	return
}

// Run runs simulation
func (o *Driver) Run(pth *Path) (err error) {

	// check
	if len(pth.Eps) < 2 {
		return chk.Err("path must have at least two points")
	}
	nincs := pth.Nincs
	if nincs < 1 {
		nincs = 1
	}

	// allocate results
	o.Res = make([]*State, 1)
	o.Eps = [][]float64{append([]float64{}, pth.Eps[0]...)}
	o.Res[0], err = o.model.InitIntVars(make([]float64, 6))
	if err != nil {
		return
	}

	// auxiliary
	Δε := make([]float64, o.nsig)
	εold := append([]float64{}, pth.Eps[0]...)
	εnew := make([]float64, o.nsig)
	stmp := o.Res[0].GetCopy()
	Dnum := mat.NewDense(o.nsig, o.nsig, nil)

	// loop over segments
	for seg := 1; seg < len(pth.Eps); seg++ {
		for inc := 0; inc < nincs; inc++ {

			// strain increment
			for i := 0; i < o.nsig; i++ {
				Δε[i] = (pth.Eps[seg][i] - pth.Eps[seg-1][i]) / float64(nincs)
				εnew[i] = εold[i] + Δε[i]
			}

			// update
			sold := o.Res[len(o.Res)-1]
			snew := sold.GetCopy()
			err = o.small.Update(snew, εnew, Δε)
			if err != nil {
				return chk.Err("Update failed (segment %d, increment %d):\n%v", seg, inc, err)
			}
			o.Res = append(o.Res, snew)
			o.Eps = append(o.Eps, append([]float64{}, εnew...))

			// check consistent tangent
			if o.CheckD {
				err = o.small.CalcD(o.D, snew, false)
				if err != nil {
					return
				}
				fd.Jacobian(Dnum, func(σ, ε []float64) {
					stmp.Set(sold)
					for i := 0; i < o.nsig; i++ {
						Δε[i] = ε[i] - εold[i]
					}
					if e := o.small.Update(stmp, ε, Δε); e != nil {
						err = e
					}
					copy(σ, stmp.Sig[:o.nsig])
				}, εnew, &fd.JacobianSettings{Formula: fd.Central, Step: o.StepD})
				if err != nil {
					return
				}
				err = o.checkD(Dnum)
				if err != nil {
					return chk.Err("segment %d, increment %d: %v", seg, inc, err)
				}
			}
			copy(εold, εnew)
		}
	}
	return
}

// checkD compares the consistent tangent with the numerical one
func (o *Driver) checkD(Dnum *mat.Dense) error {
	dmax, diff := 0.0, 0.0
	for i := 0; i < o.nsig; i++ {
		for j := 0; j < o.nsig; j++ {
			dmax = math.Max(dmax, math.Abs(o.D[i][j]))
			diff = math.Max(diff, math.Abs(o.D[i][j]-Dnum.At(i, j)))
			if o.VerD {
				io.Pf("  D[%d][%d] = %23.15e  (num: %23.15e)\n", i, j, o.D[i][j], Dnum.At(i, j))
			}
		}
	}
	if diff > o.TolD*math.Max(1, dmax) {
		return chk.Err("consistent matrix check failed: max|D - Dnum| = %g", diff)
	}
	return nil
}
