// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package structure

import (
	"github.com/benjaminknopp/FEniQS/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// SlabPars holds the parameters of a rectangular slab
type SlabPars struct {
	Lx         float64 `yaml:"lx"`         // length along x
	Ly         float64 `yaml:"ly"`         // length along y
	Nx         int     `yaml:"nx"`         // divisions along x
	Ny         int     `yaml:"ny"`         // divisions along y
	CellType   string  `yaml:"cell_type"`  // "qua4", "qua8" or "tri3"
	Umax       float64 `yaml:"u_max"`      // displacement prescribed at x = lx (displacement control)
	Qmax       float64 `yaml:"q_max"`      // normal traction at x = lx (used if u_max == 0)
	Constraint string  `yaml:"constraint"` // kinematic constraint
	Thickness  float64 `yaml:"thickness"`  // thickness
}

// Slab2D implements a slab in tension: symmetry at x = 0 and y = 0; pulled at x = lx
type Slab2D struct {
	base
	P    SlabPars
	load dbf.T
}

// register structure
func init() {
	allocators["slab2d"] = func(pars map[string]any) (Structure, error) {
		o := &Slab2D{P: SlabPars{Lx: 2, Ly: 1, Nx: 4, Ny: 2, CellType: "qua4", Umax: 0.02, Constraint: "PLANE_STRESS", Thickness: 1}}
		var com common
		err := o.init("slab2d", pars, &o.P, &com)
		if err != nil {
			return nil, err
		}
		if o.P.Umax == 0 && o.P.Qmax == 0 {
			return nil, chk.Err("slab2d needs a non-zero u_max or q_max")
		}
		o.msh, err = inp.GenRectangle(o.P.CellType, o.P.Nx, o.P.Ny, o.P.Lx, o.P.Ly)
		if err != nil {
			return nil, err
		}
		if o.P.Umax != 0 {
			o.load, err = o.loading(&com, o.P.Umax)
		} else {
			o.load, err = o.loading(&com, o.P.Qmax)
		}
		if err != nil {
			return nil, err
		}
		return o, nil
	}
}

// TractionsAndMeasures returns the normal traction at x = lx under force control
func (o *Slab2D) TractionsAndMeasures() []*inp.FaceBc {
	if o.P.Umax != 0 {
		return nil
	}
	return []*inp.FaceBc{{Tag: inp.TagRightF, Key: "qn", Fcn: o.load}}
}

// TractionsDofs returns the dofs loaded by tractions
func (o *Slab2D) TractionsDofs() []DofRef {
	if o.P.Umax != 0 {
		return nil
	}
	return []DofRef{{inp.Location{Tag: inp.TagRightF}, "ux"}}
}

// BCs returns the essential boundary conditions
func (o *Slab2D) BCs() (hom, inhom []*inp.DofBc, loadings map[string]dbf.T) {
	hom = []*inp.DofBc{
		{At: inp.Location{Tag: inp.TagLeftF}, Key: "ux"},
		{At: inp.Location{Tag: inp.TagBottom}, Key: "uy"},
	}
	loadings = make(map[string]dbf.T)
	if o.P.Umax != 0 {
		inhom = []*inp.DofBc{{At: inp.Location{Tag: inp.TagRightF}, Key: "ux", Fcn: o.load}}
		loadings["u_right"] = o.load
	}
	return
}

// ReactionPlaces returns the places where reactions can be computed
func (o *Slab2D) ReactionPlaces() map[string][]DofRef {
	return map[string][]DofRef{
		"left":   {{inp.Location{Tag: inp.TagLeftF}, "ux"}},
		"right":  {{inp.Location{Tag: inp.TagRightF}, "ux"}},
		"bottom": {{inp.Location{Tag: inp.TagBottom}, "uy"}},
	}
}
