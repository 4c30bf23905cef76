// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package structure

import (
	"github.com/benjaminknopp/FEniQS/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// RingPars holds the parameters of a thick-walled cylinder (quarter of its cross-section)
type RingPars struct {
	A          float64 `yaml:"a"`          // inner radius
	B          float64 `yaml:"b"`          // outer radius
	Nr         int     `yaml:"nr"`         // divisions along the radius
	Nt         int     `yaml:"nt"`         // divisions along the angle
	CellType   string  `yaml:"cell_type"`  // "qua4", "qua8" or "tri3"
	Pmax       float64 `yaml:"p_max"`      // internal pressure at the end of loading
	Constraint string  `yaml:"constraint"` // kinematic constraint
	Thickness  float64 `yaml:"thickness"`  // thickness
}

// Ring2D implements a pressurised thick-walled cylinder with symmetry at θ = 0 and θ = π/2
type Ring2D struct {
	base
	P RingPars
	p dbf.T // internal pressure
	q dbf.T // normal traction on the inner face (== -p)
}

// register structure
func init() {
	allocators["ring2d"] = func(pars map[string]any) (Structure, error) {
		o := &Ring2D{P: RingPars{A: 100, B: 200, Nr: 6, Nt: 4, CellType: "qua8", Pmax: 10, Constraint: "PLANE_STRAIN", Thickness: 1}}
		var com common
		err := o.init("ring2d", pars, &o.P, &com)
		if err != nil {
			return nil, err
		}
		if o.P.Pmax <= 0 {
			return nil, chk.Err("ring2d needs a positive p_max. p_max = %g is invalid", o.P.Pmax)
		}
		o.msh, err = inp.GenQuarterRing(o.P.CellType, o.P.A, o.P.B, o.P.Nr, o.P.Nt)
		if err != nil {
			return nil, err
		}
		o.p, err = o.loading(&com, o.P.Pmax)
		if err != nil {
			return nil, err
		}
		o.q, err = o.loading(&com, -o.P.Pmax)
		if err != nil {
			return nil, err
		}
		return o, nil
	}
}

// Pressure returns the internal pressure as a function of time
func (o *Ring2D) Pressure() dbf.T { return o.p }

// TractionsAndMeasures returns the pressure on the inner face
func (o *Ring2D) TractionsAndMeasures() []*inp.FaceBc {
	return []*inp.FaceBc{{Tag: inp.TagInner, Key: "qn", Fcn: o.q}}
}

// TractionsDofs returns the dofs loaded by tractions
func (o *Ring2D) TractionsDofs() []DofRef {
	return []DofRef{
		{inp.Location{Tag: inp.TagInner}, "ux"},
		{inp.Location{Tag: inp.TagInner}, "uy"},
	}
}

// BCs returns the essential boundary conditions
func (o *Ring2D) BCs() (hom, inhom []*inp.DofBc, loadings map[string]dbf.T) {
	hom = []*inp.DofBc{
		{At: inp.Location{Tag: inp.TagTheta0}, Key: "uy"},
		{At: inp.Location{Tag: inp.TagTheta90}, Key: "ux"},
	}
	return hom, nil, map[string]dbf.T{}
}

// ReactionPlaces returns the places where reactions can be computed
func (o *Ring2D) ReactionPlaces() map[string][]DofRef {
	return map[string][]DofRef{
		"theta0":  {{inp.Location{Tag: inp.TagTheta0}, "uy"}},
		"theta90": {{inp.Location{Tag: inp.TagTheta90}, "ux"}},
	}
}
