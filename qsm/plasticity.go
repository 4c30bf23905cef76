// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qsm

import (
	"sort"
	"strings"

	"github.com/benjaminknopp/FEniQS/fem"
	"github.com/benjaminknopp/FEniQS/inp"
	"github.com/benjaminknopp/FEniQS/msolid"
	"github.com/benjaminknopp/FEniQS/out"
	"github.com/benjaminknopp/FEniQS/structure"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// QSModelPlasticity implements a quasi-static model of a structure made of an elastoplastic material
type QSModelPlasticity struct {
	QuasiStaticModel

	// input
	Struct        structure.Structure // structure: mesh, BCs and loads
	PenaltyDofs   []structure.DofRef  // dofs with penalty springs
	PenaltyWeight float64             // stiffness of penalty springs

	// derived
	Mdl msolid.Model            // material model
	PP  *out.PostProcessPlastic // post-processor set by SetPps
}

// GetQSMPlasticity builds the structure with parsStruct and returns a model of it.
// An empty name selects "QsPlasticity_<structure name>"
func GetQSMPlasticity(structName string, parsStruct map[string]any, parsPlasticity *inp.Pars, path, name string) (o *QSModelPlasticity, err error) {
	s, err := structure.New(structName, parsStruct)
	if err != nil {
		return
	}
	return NewQSModelPlasticity(parsPlasticity, s, path, name, nil, 0)
}

// NewQSModelPlasticity returns a new model. Parameters also given by the structure are overwritten
// with the structure's values; pars is not modified
func NewQSModelPlasticity(pars *inp.Pars, s structure.Structure, path, name string, penaltyDofs []structure.DofRef, penaltyWeight float64) (o *QSModelPlasticity, err error) {
	if pars == nil {
		return nil, chk.Err("parameters of plasticity model must be given")
	}
	if s == nil {
		return nil, chk.Err("structure of plasticity model must be given")
	}
	p := pars.GetCopy()
	_, err = p.Override(s.Pars())
	if err != nil {
		return
	}
	if name == "" {
		name = "QsPlasticity_" + s.Name()
	}
	if !strings.EqualFold(p.MatType, "plasticity") {
		return nil, chk.Err("The material type must be plasticity.")
	}
	err = p.Validate()
	if err != nil {
		return
	}
	o = &QSModelPlasticity{Struct: s, PenaltyDofs: penaltyDofs, PenaltyWeight: penaltyWeight}
	o.Pars = p
	o.Path = path
	o.Name = name
	o.EncType = "gob"
	return
}

// EstablishModel builds the FE problem: material, domain, loads and boundary conditions
func (o *QSModelPlasticity) EstablishModel() (err error) {

	// mesh
	msh := o.Struct.Mesh()
	if o.Pars.WriteFiles {
		fnkey := "model_mesh"
		if o.Name != "" {
			fnkey = o.Name + "_mesh"
		}
		err = out.WriteMeshVtu(msh, o.Path, fnkey)
		if err != nil {
			return
		}
	}

	// material
	o.Mdl, err = NewMaterial(o.Pars, msh.Ndim)
	if err != nil {
		return
	}

	// problem
	sigmaScale := 1.0
	if v, ok := o.Struct.SpecialFields()["sigma_scale"]; ok {
		sigmaScale = v
	}
	o.Dom, err = fem.NewDomain(msh, &fem.ElemData{
		Type:        "u",
		Model:       o.Mdl,
		IntegDegree: o.Pars.IntegDegree,
		Thickness:   o.Pars.Thickness,
		SigmaScale:  sigmaScale,
		BodyForce:   o.Pars.F,
	})
	if err != nil {
		return
	}
	o.Dom.DirOut = o.Path
	o.Dom.Key = o.Name
	o.Dom.EncType = o.EncType

	// tractions and measures
	err = o.Dom.SetFaceBcs(o.Struct.TractionsAndMeasures())
	if err != nil {
		return
	}

	// concentrated forces
	o.TimeVaryingLoadings = nil
	cfs := o.Struct.ConcentratedForces()
	dirs := make([]int, 0, len(cfs))
	for dir := range cfs {
		dirs = append(dirs, dir)
	}
	sort.Ints(dirs)
	var loads []*inp.PtLoad
	var names []string
	for _, dir := range dirs {
		for i, cf := range cfs[dir] {
			if cf.Dir != dir {
				return chk.Err("concentrated force %d along direction %d has direction %d", i, dir, cf.Dir)
			}
			name := io.Sf("f_concentrated_%d_%d", dir, i)
			if !inp.IsConstant(cf.Fcn) {
				o.AddLoadings(map[string]dbf.T{name: cf.Fcn})
			}
			loads = append(loads, cf)
			names = append(names, name)
		}
	}
	err = o.Dom.SetPtLoads(loads, names)
	if err != nil {
		return
	}

	// dofs loaded by tractions
	o.BcsNMDofs, err = o.resolve(o.Struct.TractionsDofs())
	if err != nil {
		return
	}

	// penalty springs
	eqs, err := o.resolve(o.PenaltyDofs)
	if err != nil {
		return
	}
	err = o.Dom.SetPenalty(eqs, o.PenaltyWeight)
	if err != nil {
		return
	}

	// no default post-processors
	o.PpsDefault = nil

	o.Established = true
	return o.commitStructToModel()
}

// BuildSolver builds the nonlinear solver
func (o *QSModelPlasticity) BuildSolver(opts *inp.SolveOptions) (err error) {
	return o.buildSolver(opts)
}

// SetPps resets the post-processors to one PostProcessPlastic followed by the default ones
func (o *QSModelPlasticity) SetPps(opts *inp.SolveOptions, dgDegree int) (err error) {
	reactionDofs, err := o.GetReactionDofs(opts.ReactionPlaces)
	if err != nil {
		return
	}
	name := o.Name
	if name == "" {
		name = "model"
	}
	loadings := make(map[string]dbf.T, len(o.Tvls))
	for _, key := range o.Tvls {
		loadings[key] = o.TimeVaryingLoadings[key]
	}
	o.PP, err = out.NewPostProcessPlastic(o.Dom, name, o.Path, opts.ReactionPlaces, reactionDofs, o.Pars.WriteFiles, dgDegree, loadings)
	if err != nil {
		return
	}
	o.Pps = []PostProcessor{o.PP}
	o.Pps = append(o.Pps, o.PpsDefault...)
	return
}

// Solve solves the problem for the times in opts. Returns the converged times and the
// number of iterations of each time step
func (o *QSModelPlasticity) Solve(opts *inp.SolveOptions, otherPps []PostProcessor, resetPps bool) (ts []float64, its []int, err error) {
	return o.solve(o, opts, otherPps, resetPps)
}

// GetReactionDofs returns the equations of the given reaction places
func (o *QSModelPlasticity) GetReactionDofs(places []string) (dofs [][]int, err error) {
	if !o.Established {
		return nil, chk.Err("model %q must be established before computing reaction dofs", o.Name)
	}
	refs, err := structure.ReactionDofs(o.Struct, places)
	if err != nil {
		return
	}
	dofs = make([][]int, len(refs))
	for i, r := range refs {
		dofs[i], err = o.resolve(r)
		if err != nil {
			return
		}
	}
	return
}

// UpdateSoftenedPar updates a parameter listed in softenned_pars and rebuilds the material.
// Internal variables are kept
func (o *QSModelPlasticity) UpdateSoftenedPar(name string, value float64) (err error) {
	found := false
	for _, key := range o.Pars.SoftenedPars {
		if key == name {
			found = true
			break
		}
	}
	if !found {
		return chk.Err("parameter %q is not among the softened parameters %v", name, o.Pars.SoftenedPars)
	}
	switch name {
	case "E":
		o.Pars.E = value
	case "nu":
		o.Pars.Nu = value
	case "sig0":
		o.Pars.YieldSurf.Pars["sig0"] = value
	case "H":
		o.Pars.HardeningIsotropic.Modulus = value
	}
	if !o.Established {
		return
	}
	mdl, err := NewMaterial(o.Pars, o.Dom.Msh.Ndim)
	if err != nil {
		return
	}
	err = o.Dom.SetModel(mdl)
	if err != nil {
		return
	}
	o.Mdl = mdl
	return
}

// commitStructToModel commits the boundary conditions and loadings of the structure to the model
func (o *QSModelPlasticity) commitStructToModel() (err error) {
	hom, inhom, loadings := o.Struct.BCs()
	o.AddLoadings(loadings)
	err = o.ReviseBCs(true, hom, "hom")
	if err != nil {
		return
	}
	return o.ReviseBCs(false, inhom, "inhom")
}

// resolve returns the equations of dofs
func (o *QSModelPlasticity) resolve(refs []structure.DofRef) (eqs []int, err error) {
	for _, r := range refs {
		e, err := o.Dom.Eqs(r.At, r.Key)
		if err != nil {
			return nil, err
		}
		eqs = append(eqs, e...)
	}
	return
}

// NewMaterial returns the elastoplastic model defined by pars
func NewMaterial(pars *inp.Pars, ndim int) (mdl msolid.Model, err error) {
	switch strings.ToLower(pars.YieldSurf.Type) {
	case "von-mises":
		E := pars.E + pars.EMin
		sig0 := pars.Sig0()
		H := pars.HardeningIsotropic.Modulus
		if H == 0 {
			m, err := msolid.NewPlasticPerfect(E, pars.Nu, sig0, ndim, pars.Constraint)
			if err != nil {
				return nil, err
			}
			return m, nil
		}
		hyp, err := msolid.NewHardeningHypothesis(pars.HardeningIsotropic.Hypothesis)
		if err != nil {
			return nil, err
		}
		m, err := msolid.NewPlasticRIH(E, pars.Nu, sig0, H, hyp, ndim, pars.Constraint)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
	return nil, chk.Err("The plasticity model for the given yield surface type '%s' is not implemented.", pars.YieldSurf.Type)
}
