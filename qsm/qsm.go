// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package qsm implements quasi-static models: a structure, a material and a solver wired together
package qsm

import (
	"sort"

	"github.com/benjaminknopp/FEniQS/fem"
	"github.com/benjaminknopp/FEniQS/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// PostProcessor defines what post-processors must do
type PostProcessor interface {
	Eval(t float64) error // evaluates results at (converged) time t
	Close() error         // finalises output
}

// builder defines the steps that concrete models implement
type builder interface {
	EstablishModel() error                             // builds the FE problem
	BuildSolver(opts *inp.SolveOptions) error          // builds the solver
	SetPps(opts *inp.SolveOptions, dgDegree int) error // (re)sets the post-processors
}

// QuasiStaticModel holds data shared by quasi-static models
type QuasiStaticModel struct {

	// input
	Pars    *inp.Pars // parameters
	Path    string    // directory for output files
	Name    string    // name of model
	EncType string    // encoder of results: "gob" or "json"
	Verbose bool      // show messages

	// FE problem
	Dom    *fem.Domain  // FE domain
	Solver fem.FEsolver // nonlinear solver
	Sum    *fem.Summary // summary of results

	// boundary conditions and loads
	BcsHom              []*inp.DofBc     // homogeneous essential BCs
	BcsInhom            []*inp.DofBc     // inhomogeneous essential BCs
	BcsNMDofs           []int            // equations loaded by tractions (Neumann)
	TimeVaryingLoadings map[string]dbf.T // name => loading depending on time
	Tvls                []string         // names of time-varying loadings known to the solver

	// post-processing
	Pps        []PostProcessor // post-processors evaluated at checkpoints
	PpsDefault []PostProcessor // post-processors appended whenever Pps are reset

	// flags
	Established bool // the FE problem has been built
	SolverBuilt bool // the solver has been built
}

// ReviseBCs adds essential boundary conditions of kind as ("hom" or "inhom").
// If remove, the existing ones of that kind are deleted first
func (o *QuasiStaticModel) ReviseBCs(remove bool, bcs []*inp.DofBc, as string) (err error) {
	switch as {
	case "hom":
		if remove {
			o.BcsHom = nil
		}
		for _, bc := range bcs {
			if !bc.Hom() {
				return chk.Err("boundary condition %q @ %v is not homogeneous", bc.Key, bc.At)
			}
		}
		o.BcsHom = append(o.BcsHom, bcs...)
	case "inhom":
		if remove {
			o.BcsInhom = nil
		}
		o.BcsInhom = append(o.BcsInhom, bcs...)
	default:
		return chk.Err("boundary conditions must be revised as \"hom\" or \"inhom\". %q is invalid", as)
	}
	if o.Dom == nil {
		return
	}
	all := make([]*inp.DofBc, 0, len(o.BcsHom)+len(o.BcsInhom))
	all = append(all, o.BcsHom...)
	all = append(all, o.BcsInhom...)
	return o.Dom.SetEssenBcs(all)
}

// AddLoadings registers time-varying loadings
func (o *QuasiStaticModel) AddLoadings(loadings map[string]dbf.T) {
	if o.TimeVaryingLoadings == nil {
		o.TimeVaryingLoadings = make(map[string]dbf.T)
	}
	for name, f := range loadings {
		o.TimeVaryingLoadings[name] = f
	}
}

// buildSolver builds the implicit solver and records the time-varying loadings
func (o *QuasiStaticModel) buildSolver(opts *inp.SolveOptions) (err error) {
	if !o.Established {
		return chk.Err("model %q must be established before building the solver", o.Name)
	}
	o.Sum = fem.NewSummary(o.Path, o.Name, o.EncType)
	o.Solver, err = fem.NewSolver(&opts.Solver, o.Sum)
	if err != nil {
		return
	}
	o.Tvls = o.Tvls[:0]
	for name := range o.TimeVaryingLoadings {
		o.Tvls = append(o.Tvls, name)
	}
	sort.Strings(o.Tvls)
	o.SolverBuilt = true
	return
}

// solve runs the time loop. Post-processors are evaluated at checkpoints and closed at the end
func (o *QuasiStaticModel) solve(m builder, opts *inp.SolveOptions, otherPps []PostProcessor, resetPps bool) (ts []float64, its []int, err error) {

	// options
	err = opts.PostProcess()
	if err != nil {
		return
	}

	// model, solver and post-processors
	if !o.Established {
		err = m.EstablishModel()
		if err != nil {
			return
		}
	}
	err = m.BuildSolver(opts)
	if err != nil {
		return
	}
	if resetPps || len(o.Pps) == 0 {
		err = m.SetPps(opts, opts.DGDegree)
		if err != nil {
			return
		}
	}
	o.Pps = append(o.Pps, otherPps...)
	defer func() {
		for _, pp := range o.Pps {
			if e := pp.Close(); e != nil && err == nil {
				err = e
			}
		}
		if o.Pars.WriteFiles && err == nil {
			err = o.Sum.Save()
		}
	}()

	// time loop
	o.Dom.Sol.T = opts.T0
	for _, t := range opts.Times() {
		nit, e := o.Solver.Solve(o.Dom, t)
		if e != nil {
			return ts, its, chk.Err("model %q failed at t = %g:\n%v", o.Name, t, e)
		}
		ts = append(ts, t)
		its = append(its, nit)
		if o.Verbose {
			io.Pf("> t = %g converged after %d iterations\n", t, nit)
		}
		if !opts.IsCheckpoint(t) {
			continue
		}
		if o.Pars.WriteFiles {
			err = o.Sum.SaveResults(o.Dom, t, nit, o.Verbose)
			if err != nil {
				return
			}
		} else {
			o.Sum.Record(t, nit)
		}
		for _, pp := range o.Pps {
			err = pp.Eval(t)
			if err != nil {
				return
			}
		}
	}
	return
}
