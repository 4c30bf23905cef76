// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package structure

import (
	"github.com/benjaminknopp/FEniQS/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// CantileverPars holds the parameters of a cantilever beam
type CantileverPars struct {
	Lx         float64 `yaml:"lx"`         // length
	Ly         float64 `yaml:"ly"`         // height
	Nx         int     `yaml:"nx"`         // divisions along x
	Ny         int     `yaml:"ny"`         // divisions along y
	CellType   string  `yaml:"cell_type"`  // "qua4", "qua8" or "tri3"
	Q          float64 `yaml:"q"`          // vertical traction on the top face (negative => downwards)
	Ftip       float64 `yaml:"f_tip"`      // vertical force at the top-right corner
	Constraint string  `yaml:"constraint"` // kinematic constraint
	Thickness  float64 `yaml:"thickness"`  // thickness
}

// Cantilever2D implements a cantilever clamped at x = 0 loaded vertically
type Cantilever2D struct {
	base
	P    CantileverPars
	q    dbf.T // distributed load
	ftip dbf.T // tip force
}

// register structure
func init() {
	allocators["cantilever2d"] = func(pars map[string]any) (Structure, error) {
		o := &Cantilever2D{P: CantileverPars{Lx: 10, Ly: 1, Nx: 10, Ny: 2, CellType: "qua8", Q: -1, Constraint: "PLANE_STRESS", Thickness: 1}}
		var com common
		err := o.init("cantilever2d", pars, &o.P, &com)
		if err != nil {
			return nil, err
		}
		if o.P.Q == 0 && o.P.Ftip == 0 {
			return nil, chk.Err("cantilever2d needs a non-zero q or f_tip")
		}
		o.msh, err = inp.GenRectangle(o.P.CellType, o.P.Nx, o.P.Ny, o.P.Lx, o.P.Ly)
		if err != nil {
			return nil, err
		}
		o.q, err = o.loading(&com, o.P.Q)
		if err != nil {
			return nil, err
		}
		o.ftip, err = o.loading(&com, o.P.Ftip)
		if err != nil {
			return nil, err
		}
		return o, nil
	}
}

// TractionsAndMeasures returns the distributed load on the top face
func (o *Cantilever2D) TractionsAndMeasures() []*inp.FaceBc {
	if o.P.Q == 0 {
		return nil
	}
	return []*inp.FaceBc{{Tag: inp.TagTop, Key: "ty", Fcn: o.q}}
}

// ConcentratedForces returns the force at the tip
func (o *Cantilever2D) ConcentratedForces() map[int][]*inp.PtLoad {
	if o.P.Ftip == 0 {
		return nil
	}
	return map[int][]*inp.PtLoad{1: {{At: inp.Location{Tag: inp.TagCorner2, OnVert: true}, Dir: 1, Fcn: o.ftip}}}
}

// TractionsDofs returns the dofs loaded by tractions
func (o *Cantilever2D) TractionsDofs() []DofRef {
	if o.P.Q == 0 {
		return nil
	}
	return []DofRef{{inp.Location{Tag: inp.TagTop}, "uy"}}
}

// BCs returns the essential boundary conditions
func (o *Cantilever2D) BCs() (hom, inhom []*inp.DofBc, loadings map[string]dbf.T) {
	hom = []*inp.DofBc{
		{At: inp.Location{Tag: inp.TagLeftF}, Key: "ux"},
		{At: inp.Location{Tag: inp.TagLeftF}, Key: "uy"},
	}
	return hom, nil, map[string]dbf.T{}
}

// ReactionPlaces returns the places where reactions can be computed
func (o *Cantilever2D) ReactionPlaces() map[string][]DofRef {
	return map[string][]DofRef{
		"left_x": {{inp.Location{Tag: inp.TagLeftF}, "ux"}},
		"left_y": {{inp.Location{Tag: inp.TagLeftF}, "uy"}},
	}
}
