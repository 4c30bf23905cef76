// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package structure

import (
	"github.com/benjaminknopp/FEniQS/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// CubePars holds the parameters of a box
type CubePars struct {
	Lx   float64 `yaml:"lx"`    // length along x
	Ly   float64 `yaml:"ly"`    // length along y
	Lz   float64 `yaml:"lz"`    // length along z
	Nx   int     `yaml:"nx"`    // divisions along x
	Ny   int     `yaml:"ny"`    // divisions along y
	Nz   int     `yaml:"nz"`    // divisions along z
	Umax float64 `yaml:"u_max"` // vertical displacement prescribed at the top (negative => compression)
}

// Cube3D implements a box under uniaxial vertical loading with symmetry at x = 0, y = 0 and z = 0
type Cube3D struct {
	base
	P    CubePars
	load dbf.T
}

// register structure
func init() {
	allocators["cube3d"] = func(pars map[string]any) (Structure, error) {
		o := &Cube3D{P: CubePars{Lx: 1, Ly: 1, Lz: 1, Nx: 2, Ny: 2, Nz: 2, Umax: -0.01}}
		var com common
		err := o.init("cube3d", pars, &o.P, &com)
		if err != nil {
			return nil, err
		}
		if o.P.Umax == 0 {
			return nil, chk.Err("cube3d needs a non-zero u_max")
		}
		o.msh, err = inp.GenBox(o.P.Nx, o.P.Ny, o.P.Nz, o.P.Lx, o.P.Ly, o.P.Lz)
		if err != nil {
			return nil, err
		}
		o.load, err = o.loading(&com, o.P.Umax)
		if err != nil {
			return nil, err
		}
		o.pars["constraint"] = "3D"
		return o, nil
	}
}

// BCs returns the essential boundary conditions
func (o *Cube3D) BCs() (hom, inhom []*inp.DofBc, loadings map[string]dbf.T) {
	hom = []*inp.DofBc{
		{At: inp.Location{Tag: inp.TagX0}, Key: "ux"},
		{At: inp.Location{Tag: inp.TagY0}, Key: "uy"},
		{At: inp.Location{Tag: inp.TagZ0}, Key: "uz"},
	}
	inhom = []*inp.DofBc{{At: inp.Location{Tag: inp.TagZ1}, Key: "uz", Fcn: o.load}}
	return hom, inhom, map[string]dbf.T{"u_top": o.load}
}

// ReactionPlaces returns the places where reactions can be computed
func (o *Cube3D) ReactionPlaces() map[string][]DofRef {
	return map[string][]DofRef{
		"bottom": {{inp.Location{Tag: inp.TagZ0}, "uz"}},
		"top":    {{inp.Location{Tag: inp.TagZ1}, "uz"}},
	}
}
