// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package structure implements structural descriptions: a mesh together with
// boundary conditions, loads and places where reactions are measured
package structure

import (
	"sort"

	"github.com/benjaminknopp/FEniQS/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"gopkg.in/yaml.v3"
)

// DofRef points to a displacement component at the vertices of a location
type DofRef struct {
	At  inp.Location // where
	Key string       // "ux", "uy" or "uz"
}

// String returns a representation of DofRef
func (o DofRef) String() string {
	return io.Sf("%s @ %v", o.Key, o.At)
}

// Structure defines what structures must provide to models
type Structure interface {
	Name() string                                              // name of structure; e.g. "bar1d"
	Pars() map[string]any                                      // all parameters, including those meant for the material
	Mesh() *inp.Mesh                                           // the mesh
	TractionsAndMeasures() []*inp.FaceBc                       // distributed loads on faces
	ConcentratedForces() map[int][]*inp.PtLoad                 // direction => point loads
	TractionsDofs() []DofRef                                   // dofs where tractions are applied
	BCs() (hom, inhom []*inp.DofBc, loadings map[string]dbf.T) // homogeneous and inhomogeneous essential BCs and their loadings
	ReactionPlaces() map[string][]DofRef                       // place name => dofs where reactions are computed
	SpecialFields() map[string]float64                         // e.g. "sigma_scale"
}

// New returns a new structure
func New(name string, pars map[string]any) (Structure, error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("structure %q is not available. available structures are %v", name, Names())
	}
	return allocator(pars)
}

// Names returns the names of all available structures
func Names() (names []string) {
	for name := range allocators {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// ReactionDofs returns the dofs of the given reaction places
func ReactionDofs(s Structure, places []string) (dofs [][]DofRef, err error) {
	all := s.ReactionPlaces()
	for _, place := range places {
		refs, ok := all[place]
		if !ok {
			var avail []string
			for k := range all {
				avail = append(avail, k)
			}
			sort.Strings(avail)
			return nil, chk.Err("structure %q has no reaction place %q. available places are %v", s.Name(), place, avail)
		}
		dofs = append(dofs, refs)
	}
	return
}

// allocators holds all available structures
var allocators = map[string]func(pars map[string]any) (Structure, error){}

// base implements the common parts of structures //////////////////////////////////////////////////

// base holds data shared by all structures
type base struct {
	name    string             // name of structure
	pars    map[string]any     // all parameters
	msh     *inp.Mesh          // mesh
	special map[string]float64 // special fields
}

func (o *base) Name() string                              { return o.name }
func (o *base) Pars() map[string]any                      { return o.pars }
func (o *base) Mesh() *inp.Mesh                           { return o.msh }
func (o *base) TractionsAndMeasures() []*inp.FaceBc       { return nil }
func (o *base) ConcentratedForces() map[int][]*inp.PtLoad { return nil }
func (o *base) TractionsDofs() []DofRef                   { return nil }
func (o *base) SpecialFields() map[string]float64         { return o.special }

// common holds the parameters that all structures accept
type common struct {
	SigmaScale *float64      `yaml:"sigma_scale"` // factor multiplying stresses; nil => not given
	LoadFcn    *inp.FuncData `yaml:"load_fcn"`    // load factor as a function of time; nil => ramp from 0 to 1 at t = 1
}

// init decodes pars onto v (holding default values) and records all parameters
//  Note: parameters unknown to v are kept; they may be material parameters
func (o *base) init(name string, pars map[string]any, v any, com *common) (err error) {
	o.name = name
	b, err := yaml.Marshal(pars)
	if err != nil {
		return chk.Err("cannot encode parameters of structure %q:\n%v", name, err)
	}
	err = yaml.Unmarshal(b, v)
	if err != nil {
		return chk.Err("cannot decode parameters of structure %q:\n%v", name, err)
	}
	err = yaml.Unmarshal(b, com)
	if err != nil {
		return chk.Err("cannot decode parameters of structure %q:\n%v", name, err)
	}
	b, err = yaml.Marshal(v)
	if err != nil {
		return chk.Err("cannot encode parameters of structure %q:\n%v", name, err)
	}
	o.pars = make(map[string]any)
	err = yaml.Unmarshal(b, &o.pars)
	if err != nil {
		return chk.Err("cannot decode parameters of structure %q:\n%v", name, err)
	}
	for k, val := range pars {
		if _, ok := o.pars[k]; !ok {
			o.pars[k] = val
		}
	}
	o.special = make(map[string]float64)
	if com.SigmaScale != nil {
		if *com.SigmaScale <= 0 {
			return chk.Err("sigma_scale of structure %q must be positive. %g is invalid", name, *com.SigmaScale)
		}
		o.special["sigma_scale"] = *com.SigmaScale
	}
	return
}

// loading returns vmax times the load factor: the given load function or a ramp from zero to one at t = 1
func (o *base) loading(com *common, vmax float64) (dbf.T, error) {
	if com.LoadFcn != nil {
		f, err := com.LoadFcn.New()
		if err != nil {
			return nil, err
		}
		return inp.Scale(f, vmax)
	}
	return inp.Ramp(vmax, 1)
}
