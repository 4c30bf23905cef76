// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements post-processing of quasi-static plasticity simulations
package out

import (
	"bytes"
	"math"

	"github.com/benjaminknopp/FEniQS/fem"
	"github.com/benjaminknopp/FEniQS/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"gopkg.in/yaml.v3"
)

// Record holds the results at one evaluation time
type Record struct {
	T         float64            `yaml:"t"`                  // time
	Reactions map[string]float64 `yaml:"reactions"`          // place => sum of reaction forces
	Disps     map[string]float64 `yaml:"displacements"`      // place => mean displacement at reaction dofs
	KappaMax  float64            `yaml:"kappa_max"`          // largest cumulated hardening variable
	Loadings  map[string]float64 `yaml:"loadings,omitempty"` // values of time-varying loadings
}

// PostProcessPlastic records reaction forces, displacements and internal variables of plastic
// simulations. With files on, it also writes one VTU file per evaluation and, when closed,
// a YAML table and a reaction-displacement plot
type PostProcessPlastic struct {

	// input
	Dom          *fem.Domain      // FE domain
	Name         string           // filename key
	Path         string           // directory for output files
	Places       []string         // names of reaction places
	ReactionDofs [][]int          // [nplaces] equations of reaction places
	WriteFiles   bool             // write files
	DGDegree     int              // projection of ip values: 0 => cell averages; 1 => extrapolation to vertices
	Loadings     map[string]dbf.T // time-varying loadings

	// results
	Records []*Record // one record per evaluation
}

// NewPostProcessPlastic returns a new post-processor
func NewPostProcessPlastic(dom *fem.Domain, name, path string, places []string, reactionDofs [][]int, writeFiles bool, dgDegree int, loadings map[string]dbf.T) (o *PostProcessPlastic, err error) {
	if dom == nil {
		return nil, chk.Err("post-processor needs a domain")
	}
	if len(places) != len(reactionDofs) {
		return nil, chk.Err("number of reaction places (%d) must be equal to the number of sets of reaction dofs (%d)", len(places), len(reactionDofs))
	}
	if dgDegree != 0 && dgDegree != 1 {
		return nil, chk.Err("DG degree must be 0 or 1. %d is invalid", dgDegree)
	}
	if name == "" {
		name = "model"
	}
	o = &PostProcessPlastic{
		Dom:          dom,
		Name:         name,
		Path:         path,
		Places:       places,
		ReactionDofs: reactionDofs,
		WriteFiles:   writeFiles,
		DGDegree:     dgDegree,
		Loadings:     loadings,
	}
	return
}

// Eval records results at time t and writes the VTU file
func (o *PostProcessPlastic) Eval(t float64) (err error) {
	rec := &Record{T: t, Reactions: make(map[string]float64), Disps: make(map[string]float64)}
	for i, place := range o.Places {
		eqs := o.ReactionDofs[i]
		r, err := o.Dom.Reactions(eqs)
		if err != nil {
			return chk.Err("cannot compute reactions at %q:\n%v", place, err)
		}
		var sr, su float64
		for j, eq := range eqs {
			sr += r[j]
			su += o.Dom.Sol.Y[eq]
		}
		rec.Reactions[place] = sr
		if len(eqs) > 0 {
			rec.Disps[place] = su / float64(len(eqs))
		}
	}
	for _, e := range o.Dom.Elems {
		for _, d := range e.OutIpsData() {
			rec.KappaMax = math.Max(rec.KappaMax, d.Kappa)
		}
	}
	if len(o.Loadings) > 0 {
		rec.Loadings = make(map[string]float64)
		for name, f := range o.Loadings {
			rec.Loadings[name] = f.F(t, nil)
		}
	}
	o.Records = append(o.Records, rec)
	if o.WriteFiles {
		return o.writeVtu(len(o.Records) - 1)
	}
	return
}

// Close writes the table of results and the reaction-displacement plot.
// Records are kept; further evaluations are appended
func (o *PostProcessPlastic) Close() (err error) {
	if !o.WriteFiles || len(o.Records) == 0 {
		return
	}
	b, err := yaml.Marshal(o.Records)
	if err != nil {
		return chk.Err("cannot encode results of %q:\n%v", o.Name, err)
	}
	io.WriteFileD(o.Path, o.Name+"_pp.yaml", bytes.NewBuffer(b))
	if len(o.Places) == 0 {
		return
	}
	series := make([]*Series, len(o.Places))
	for i, place := range o.Places {
		series[i] = &Series{Label: place, X: o.Disp(place), Y: o.Reaction(place)}
	}
	return PlotSeries(o.Path, o.Name+"_reaction_displacement", o.Name, "displacement", "reaction force", series)
}

// Times returns the evaluation times
func (o *PostProcessPlastic) Times() (ts []float64) {
	ts = make([]float64, len(o.Records))
	for i, rec := range o.Records {
		ts[i] = rec.T
	}
	return
}

// Reaction returns the history of the sum of reaction forces at place
func (o *PostProcessPlastic) Reaction(place string) (r []float64) {
	r = make([]float64, len(o.Records))
	for i, rec := range o.Records {
		r[i] = rec.Reactions[place]
	}
	return
}

// Disp returns the history of the mean displacement at place
func (o *PostProcessPlastic) Disp(place string) (u []float64) {
	u = make([]float64, len(o.Records))
	for i, rec := range o.Records {
		u[i] = rec.Disps[place]
	}
	return
}

// writeVtu writes displacements, stresses and κ to <path>/<name>_<idx>.vtu
func (o *PostProcessPlastic) writeVtu(idx int) (err error) {
	msh := o.Dom.Msh
	u := make([][]float64, len(msh.Verts))
	for i := range u {
		u[i] = make([]float64, 3)
		nod := o.Dom.Vid2node[i]
		if nod == nil {
			continue
		}
		for j := 0; j < msh.Ndim; j++ {
			if eq := nod.GetEq(inp.DofKeys[j]); eq >= 0 {
				u[i][j] = o.Dom.Sol.Y[eq]
			}
		}
	}
	pfields := []*Field{{Name: "u", Ncomp: 3, Vals: u}}
	var cfields []*Field
	if o.DGDegree == 0 {
		sig, kap := split(cellAverages(o.Dom))
		cfields = []*Field{{Name: "sig", Ncomp: 6, Vals: sig}, {Name: "kappa", Ncomp: 1, Vals: kap}}
	} else {
		vals, err := extrapolate(o.Dom)
		if err != nil {
			return err
		}
		sig, kap := split(vals)
		pfields = append(pfields, &Field{Name: "sig", Ncomp: 6, Vals: sig}, &Field{Name: "kappa", Ncomp: 1, Vals: kap})
	}
	return WriteVtu(msh, o.Path, io.Sf("%s_%04d", o.Name, idx), pfields, cfields)
}
