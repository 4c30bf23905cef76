// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qsm

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/benjaminknopp/FEniQS/ana"
	"github.com/benjaminknopp/FEniQS/fem"
	"github.com/benjaminknopp/FEniQS/inp"
	"github.com/benjaminknopp/FEniQS/msolid"
	"github.com/benjaminknopp/FEniQS/structure"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// newPars returns parameters without files
func newPars(E, ν, sig0, H float64) *inp.Pars {
	p := inp.DefaultPars()
	p.E = E
	p.Nu = ν
	p.YieldSurf.Pars["sig0"] = sig0
	p.HardeningIsotropic.Modulus = H
	p.WriteFiles = false
	return p
}

// newOpts returns solve options
func newOpts(tst *testing.T, dt float64, checkpoints []float64, places ...string) *inp.SolveOptions {
	var opts inp.SolveOptions
	opts.SetDefault()
	opts.Dt = dt
	opts.Checkpoints = checkpoints
	opts.ReactionPlaces = places
	opts.Solver.ShowR = chk.Verbose
	if err := opts.PostProcess(); err != nil {
		tst.Fatalf("PostProcess failed:\n%v", err)
	}
	return &opts
}

func Test_qsm01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("qsm01. bar with isotropic hardening. displacement control")

	E, sig0, H, L, umax := 1000.0, 10.0, 100.0, 10.0, 0.2
	model, err := GetQSMPlasticity("bar1d", map[string]any{"L": L, "u_max": umax}, newPars(E, 0.3, sig0, H), "", "")
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	chk.String(tst, model.Name, "QsPlasticity_bar1d")
	chk.String(tst, model.Pars.Constraint, msolid.UNIAXIAL_STRESS)

	ts, its, err := model.Solve(newOpts(tst, 0.1, nil, "left", "right"), nil, true)
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	chk.Int(tst, "number of steps", len(ts), 10)
	chk.Int(tst, "number of iteration counts", len(its), 10)
	for i, nit := range its {
		if nit < 1 {
			tst.Errorf("step %d: number of iterations must be positive. %d is invalid", i, nit)
		}
	}
	if _, ok := model.Mdl.(*msolid.PlasticRIH); !ok {
		tst.Errorf("model should be PlasticRIH")
	}
	chk.Strings(tst, "loadings", model.Tvls, []string{"u_right"})

	// check reactions against the analytical solution
	sol := ana.Uniaxial{E: E, Sig0: sig0, H: H}
	right := model.PP.Reaction("right")
	left := model.PP.Reaction("left")
	chk.Array(tst, "times", 1e-15, model.PP.Times(), ts)
	for i, t := range ts {
		σ := sol.SigUnit(umax * t / L)
		chk.Float64(tst, io.Sf("R(t=%g) @ right", t), 1e-8, right[i], σ)
		chk.Float64(tst, io.Sf("R(t=%g) @ left", t), 1e-8, left[i], -σ)
		chk.Float64(tst, io.Sf("u(t=%g) @ right", t), 1e-12, model.PP.Disp("right")[i], umax*t)
		chk.Float64(tst, io.Sf("u_right(t=%g)", t), 1e-12, model.PP.Records[i].Loadings["u_right"], umax*t)
	}
	κ := (umax/L - sig0/E) * E / (E + H) // plastic strain == κ for unit hypothesis
	chk.Float64(tst, "κmax", 1e-10, model.PP.Records[len(ts)-1].KappaMax, κ)
	chk.Int(tst, "summary", len(model.Sum.OutTimes), 10)
}

func Test_qsm02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("qsm02. elastic slab. checkpoints and sigma_scale")

	E, lx, ly, umax := 1000.0, 2.0, 1.0, 0.02
	for _, scale := range []float64{1, 0.5} {
		pstruct := map[string]any{"lx": lx, "ly": ly, "u_max": umax}
		if scale != 1 {
			pstruct["sigma_scale"] = scale
		}
		model, err := GetQSMPlasticity("slab2d", pstruct, newPars(E, 0.25, 1e9, 0), "", "slab")
		if err != nil {
			tst.Errorf("test failed:\n%v", err)
			return
		}
		chk.String(tst, model.Name, "slab")
		chk.String(tst, model.Pars.Constraint, msolid.PLANE_STRESS)
		ts, _, err := model.Solve(newOpts(tst, 0.25, []float64{0.5, 1}, "right", "left", "bottom"), nil, true)
		if err != nil {
			tst.Errorf("test failed:\n%v", err)
			return
		}
		chk.Array(tst, "ts", 1e-15, ts, []float64{0.25, 0.5, 0.75, 1})
		chk.Array(tst, "pp times", 1e-15, model.PP.Times(), []float64{0.5, 1})
		σx := E * umax / lx
		chk.Array(tst, "R @ right", 1e-9, model.PP.Reaction("right"), []float64{scale * σx * ly / 2, scale * σx * ly})
		chk.Array(tst, "R @ left", 1e-9, model.PP.Reaction("left"), []float64{-scale * σx * ly / 2, -scale * σx * ly})
		chk.Array(tst, "R @ bottom", 1e-9, model.PP.Reaction("bottom"), []float64{0, 0})
		if _, ok := model.Mdl.(*msolid.PlasticPerfect); !ok {
			tst.Errorf("model should be PlasticPerfect")
		}
	}
}

func Test_qsm03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("qsm03. errors")

	s, err := structure.New("bar1d", nil)
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}

	// material type
	p := newPars(1000, 0.3, 10, 0)
	p.MatType = "elasticity"
	_, err = NewQSModelPlasticity(p, s, "", "", nil, 0)
	if err == nil {
		tst.Errorf("wrong material type should have failed")
		return
	}
	chk.String(tst, err.Error(), "The material type must be plasticity.")
	p.MatType = "Plasticity"
	if _, err = NewQSModelPlasticity(p, s, "", "", nil, 0); err != nil {
		tst.Errorf("material type should be case insensitive:\n%v", err)
	}

	// hardening hypothesis
	p = newPars(1000, 0.3, 10, 100)
	p.HardeningIsotropic.Hypothesis = "linear"
	_, err = NewMaterial(p, 1)
	if err == nil {
		tst.Errorf("wrong hypothesis should have failed")
		return
	}
	chk.String(tst, err.Error(), "The provided isotropic hardening hypothesis 'linear' is not recognized/implemented.")
	p.HardeningIsotropic.Modulus = 0
	if _, err = NewMaterial(p, 1); err != nil {
		tst.Errorf("hypothesis should be ignored with H = 0:\n%v", err)
	}
	p.HardeningIsotropic.Modulus = 100
	p.HardeningIsotropic.Hypothesis = "Plastic-Work"
	mdl, err := NewMaterial(p, 1)
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	chk.String(tst, mdl.(*msolid.PlasticRIH).Hyp.Name(), "plastic-work")

	// yield surface
	p.YieldSurf.Type = "drucker-prager"
	_, err = NewMaterial(p, 1)
	if err == nil {
		tst.Errorf("wrong yield surface should have failed")
		return
	}
	chk.String(tst, err.Error(), "The plasticity model for the given yield surface type 'drucker-prager' is not implemented.")
	p.YieldSurf.Type = "Von-Mises"
	if _, err = NewMaterial(p, 1); err != nil {
		tst.Errorf("yield surface type should be case insensitive:\n%v", err)
	}

	// parameters of caller are kept
	p = newPars(1000, 0.3, 10, 0)
	model, err := NewQSModelPlasticity(p, s, "", "", nil, 0)
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	chk.String(tst, p.Constraint, "")
	chk.String(tst, model.Pars.Constraint, msolid.UNIAXIAL_STRESS)

	// unknown reaction place
	if _, _, err = model.Solve(newOpts(tst, 0.5, nil, "middle"), nil, true); err == nil {
		tst.Errorf("unknown reaction place should have failed")
	}

	// boundary conditions
	if err = model.ReviseBCs(false, nil, "mixed"); err == nil {
		tst.Errorf("wrong kind of boundary conditions should have failed")
	}
	if err = model.ReviseBCs(false, []*inp.DofBc{{At: inp.Location{Tag: inp.TagLeft}, Key: "ux", Fcn: inp.Cte(1)}}, "hom"); err == nil {
		tst.Errorf("inhomogeneous boundary condition given as homogeneous should have failed")
	}

	// nil inputs and unknown structure
	if _, err = NewQSModelPlasticity(nil, s, "", "", nil, 0); err == nil {
		tst.Errorf("nil parameters should have failed")
	}
	if _, err = GetQSMPlasticity("tower", nil, p, "", ""); err == nil {
		tst.Errorf("unknown structure should have failed")
	}
}

func Test_qsm04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("qsm04. cube with files")

	dirout := tst.TempDir()
	p := newPars(1000, 0.2, 1e3, 0)
	p.WriteFiles = true
	model, err := GetQSMPlasticity("cube3d", map[string]any{"u_max": -0.01}, p, dirout, "cube")
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	_, _, err = model.Solve(newOpts(tst, 0.5, nil, "top", "bottom"), nil, true)
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	chk.Array(tst, "R @ top", 1e-9, model.PP.Reaction("top"), []float64{-5, -10})
	chk.Array(tst, "R @ bottom", 1e-9, model.PP.Reaction("bottom"), []float64{5, 10})
	chk.Array(tst, "u @ top", 1e-15, model.PP.Disp("top"), []float64{-0.005, -0.01})

	for _, fn := range []string{"cube_mesh.vtu", "cube_0000.vtu", "cube_0001.vtu", "cube_pp.yaml", "cube_reaction_displacement.png", "cube_sum.gob"} {
		if _, err = os.Stat(filepath.Join(dirout, fn)); err != nil {
			tst.Errorf("file %q should have been written:\n%v", fn, err)
		}
	}

	// results can be read back
	sum, err := fem.ReadSum(dirout, "cube", "gob")
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	chk.Array(tst, "out times", 1e-15, sum.OutTimes, []float64{0.5, 1})
	y := append([]float64{}, model.Dom.Sol.Y...)
	err = model.Dom.Read(sum, 1)
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	chk.Array(tst, "Y", 1e-15, model.Dom.Sol.Y, y)
}

func Test_qsm05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("qsm05. pressurised cylinder")

	// analytical solution
	E, ν, sig0, a, b := 210000.0, 0.3, 240.0, 100.0, 200.0
	var sol ana.PressCylin
	sol.Init(dbf.Params{
		&dbf.P{N: "a", V: a},
		&dbf.P{N: "b", V: b},
		&dbf.P{N: "E", V: E},
		&dbf.P{N: "nu", V: ν},
		&dbf.P{N: "sig0", V: sig0},
	})

	// run
	run := func(pmax, dt float64) (model *QSModelPlasticity, ub float64) {
		model, err := GetQSMPlasticity("ring2d", map[string]any{"a": a, "b": b, "p_max": pmax}, newPars(E, ν, sig0, 0), "", "")
		if err != nil {
			tst.Fatalf("GetQSMPlasticity failed:\n%v", err)
		}
		_, _, err = model.Solve(newOpts(tst, dt, nil, "theta0", "theta90"), nil, true)
		if err != nil {
			tst.Fatalf("Solve failed:\n%v", err)
		}
		vert := model.Dom.Msh.FindVert([]float64{b, 0}, 1e-8)
		if vert == nil {
			tst.Fatalf("cannot find vertex at outer surface")
		}
		ub = model.Dom.Sol.Y[model.Dom.Vid2node[vert.Id].GetEq("ux")]
		return
	}

	// elastic
	pmax := sol.P0 / 2
	model, ub := run(pmax, 0.5)
	io.Pforan("elastic: ub = %v (%v)\n", ub, sol.ElastOuterU(pmax))
	chk.Float64(tst, "ub/ub_ana", 1e-2, ub/sol.ElastOuterU(pmax), 1)
	chk.Float64(tst, "κmax", 1e-15, model.PP.Records[1].KappaMax, 0)
	inner, err := inp.Location{Tag: inp.TagInner}.Verts(model.Dom.Msh)
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	chk.Int(tst, "traction dofs", len(model.BcsNMDofs), 2*len(inner))

	// equilibrium: the pressure on a quarter of the inner surface gives p⋅a along x and y
	chk.Float64(tst, "R @ θ=0", 1e-8*pmax*a, model.PP.Reaction("theta0")[1], -pmax*a)
	chk.Float64(tst, "R @ θ=90", 1e-8*pmax*a, model.PP.Reaction("theta90")[1], -pmax*a)

	// plastic
	pmax = (sol.P0 + sol.Plim) / 2
	model, ub = run(pmax, 0.1)
	uana, err := sol.OuterU(pmax)
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	io.Pforan("plastic: ub = %v (%v)\n", ub, uana)
	if ub <= sol.ElastOuterU(pmax) {
		tst.Errorf("plastic displacement %g must be larger than elastic one %g", ub, sol.ElastOuterU(pmax))
	}
	if math.Abs(ub-uana)/uana > 0.1 {
		tst.Errorf("plastic displacement %g is too far from analytical one %g", ub, uana)
	}
	last := len(model.PP.Records) - 1
	if model.PP.Records[last].KappaMax <= 0 {
		tst.Errorf("κmax must be positive")
	}
}

func Test_qsm06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("qsm06. softened parameters, penalty and tip force")

	// softening of E
	p := newPars(1000, 0.3, 1e9, 0)
	p.SoftenedPars = []string{"E"}
	model, err := GetQSMPlasticity("bar1d", map[string]any{"L": 1.0, "n": 2, "u_max": 0.01}, p, "", "")
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	opts := newOpts(tst, 0.5, nil, "right")
	if _, _, err = model.Solve(opts, nil, true); err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	chk.Float64(tst, "R(E=1000)", 1e-9, model.PP.Reaction("right")[1], 10)
	if err = model.UpdateSoftenedPar("sig0", 1); err == nil {
		tst.Errorf("parameter not listed should have failed")
	}
	if err = model.UpdateSoftenedPar("E", 500); err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	chk.Float64(tst, "E", 1e-15, model.Pars.E, 500)
	if _, _, err = model.Solve(opts, nil, true); err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	chk.Float64(tst, "R(E=500)", 1e-9, model.PP.Reaction("right")[1], 5)

	// force control with penalty spring at the loaded end: f = (E A / L + w) u
	s, err := structure.New("bar1d", map[string]any{"L": 1.0, "n": 2, "u_max": 0.0, "f_max": 3.0})
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	w := 2000.0
	penalty := []structure.DofRef{{At: inp.Location{Tag: inp.TagRight}, Key: "ux"}}
	model, err = NewQSModelPlasticity(newPars(1000, 0.3, 1e9, 0), s, "", "", penalty, w)
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	if _, _, err = model.Solve(opts, nil, true); err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	chk.Strings(tst, "loadings", model.Tvls, []string{"f_concentrated_0_0"})
	chk.Array(tst, "u @ right", 1e-12, model.PP.Disp("right"), []float64{1.5 / 3000, 3.0 / 3000})
	chk.Float64(tst, "f", 1e-15, model.PP.Records[1].Loadings["f_concentrated_0_0"], 3)
}

func Test_qsm07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("qsm07. solve options are checked and checkpoints sorted")

	model, err := GetQSMPlasticity("bar1d", map[string]any{"L": 10.0, "u_max": 0.02}, newPars(1000, 0.3, 10, 0), "", "")
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}

	// non-positive time steps
	for _, dt := range []float64{0, -0.1} {
		var opts inp.SolveOptions
		opts.SetDefault()
		opts.Dt = dt
		if _, _, err = model.Solve(&opts, nil, true); err == nil {
			tst.Errorf("dt = %g should have failed", dt)
			return
		}
		io.Pforan("err = %v\n", err)
	}

	// checkpoints out of order
	var opts inp.SolveOptions
	opts.SetDefault()
	opts.Dt = 0.25
	opts.Checkpoints = []float64{0.6, 0.3}
	opts.ReactionPlaces = []string{"right"}
	ts, its, err := model.Solve(&opts, nil, true)
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	chk.Array(tst, "ts", 1e-14, ts, []float64{0.25, 0.3, 0.55, 0.6, 0.85, 1})
	chk.Int(tst, "number of iteration counts", len(its), len(ts))
	chk.Array(tst, "pp times", 1e-14, model.PP.Times(), []float64{0.3, 0.6})

	// checkpoint out of range
	opts.Checkpoints = []float64{0.5, 1.5}
	if _, _, err = model.Solve(&opts, nil, true); err == nil {
		tst.Errorf("checkpoint after tend should have failed")
	}
}
