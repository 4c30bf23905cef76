// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package structure

import (
	"github.com/benjaminknopp/FEniQS/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// BarPars holds the parameters of a bar
type BarPars struct {
	L          float64 `yaml:"L"`          // length
	N          int     `yaml:"n"`          // number of cells
	CellType   string  `yaml:"cell_type"`  // "lin2" or "lin3"
	Umax       float64 `yaml:"u_max"`      // displacement prescribed at x = L (displacement control)
	Fmax       float64 `yaml:"f_max"`      // force applied at x = L (force control; used if u_max == 0)
	Constraint string  `yaml:"constraint"` // kinematic constraint
	Thickness  float64 `yaml:"thickness"`  // cross-sectional area
}

// Bar1D implements a bar fixed at x = 0 and pulled at x = L
type Bar1D struct {
	base
	P    BarPars
	load dbf.T
}

// register structure
func init() {
	allocators["bar1d"] = func(pars map[string]any) (Structure, error) {
		o := &Bar1D{P: BarPars{L: 10, N: 8, CellType: "lin2", Umax: 0.02, Constraint: "UNIAXIAL_STRESS", Thickness: 1}}
		var com common
		err := o.init("bar1d", pars, &o.P, &com)
		if err != nil {
			return nil, err
		}
		if o.P.Umax == 0 && o.P.Fmax == 0 {
			return nil, chk.Err("bar1d needs a non-zero u_max or f_max")
		}
		o.msh, err = inp.GenLine(o.P.L, o.P.N, o.P.CellType)
		if err != nil {
			return nil, err
		}
		if o.P.Umax != 0 {
			o.load, err = o.loading(&com, o.P.Umax)
		} else {
			o.load, err = o.loading(&com, o.P.Fmax)
		}
		if err != nil {
			return nil, err
		}
		return o, nil
	}
}

// ConcentratedForces returns the force at x = L under force control
func (o *Bar1D) ConcentratedForces() map[int][]*inp.PtLoad {
	if o.P.Umax != 0 {
		return nil
	}
	return map[int][]*inp.PtLoad{0: {{At: inp.Location{Tag: inp.TagRight}, Dir: 0, Fcn: o.load}}}
}

// BCs returns the essential boundary conditions
func (o *Bar1D) BCs() (hom, inhom []*inp.DofBc, loadings map[string]dbf.T) {
	hom = []*inp.DofBc{{At: inp.Location{Tag: inp.TagLeft}, Key: "ux"}}
	loadings = make(map[string]dbf.T)
	if o.P.Umax != 0 {
		inhom = []*inp.DofBc{{At: inp.Location{Tag: inp.TagRight}, Key: "ux", Fcn: o.load}}
		loadings["u_right"] = o.load
	}
	return
}

// ReactionPlaces returns the places where reactions can be computed
func (o *Bar1D) ReactionPlaces() map[string][]DofRef {
	return map[string][]DofRef{
		"left":  {{inp.Location{Tag: inp.TagLeft}, "ux"}},
		"right": {{inp.Location{Tag: inp.TagRight}, "ux"}},
	}
}
