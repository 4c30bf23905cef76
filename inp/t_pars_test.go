// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

func Test_pars01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("pars01")

	pars, err := ReadPars("data/pars.json")
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	chk.Float64(tst, "E", 1e-15, pars.E, 2000)
	chk.Float64(tst, "nu", 1e-15, pars.Nu, 0.25)
	chk.Float64(tst, "sig0", 1e-15, pars.Sig0(), 20)
	chk.Float64(tst, "H", 1e-15, pars.HardeningIsotropic.Modulus, 150)
	chk.String(tst, pars.HardeningIsotropic.Hypothesis, "plastic-work")
	chk.Int(tst, "integ_degree (default)", pars.IntegDegree, 2)
	chk.Float64(tst, "thickness (default)", 1e-15, pars.Thickness, 1)
	chk.Strings(tst, "softenned_pars", pars.SoftenedPars, []string{"E", "sig0"})
	if !pars.WriteFiles {
		tst.Errorf("_write_files should be true by default")
	}

	keys, err := pars.Override(map[string]any{"E": 500.0, "integ_degree": 3, "L": 10.0, "nu": 0.2})
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	io.Pforan("overridden = %v\n", keys)
	chk.Strings(tst, "keys", keys, []string{"E", "integ_degree", "nu"})
	chk.Float64(tst, "E", 1e-15, pars.E, 500)
	chk.Float64(tst, "nu", 1e-15, pars.Nu, 0.2)
	chk.Int(tst, "integ_degree", pars.IntegDegree, 3)
	chk.Float64(tst, "sig0", 1e-15, pars.Sig0(), 20)
	chk.Float64(tst, "H", 1e-15, pars.HardeningIsotropic.Modulus, 150)

	pars.SoftenedPars = append(pars.SoftenedPars, "thickness")
	if err = pars.Validate(); err == nil {
		tst.Errorf("softening of thickness should have failed")
	}
}

func Test_sim01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim01")

	env := &Env{DirOut: "/tmp/feniqs", Encoder: "json", ShowR: true}
	sim, err := ReadSim("data/bar.yaml", env)
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	chk.String(tst, sim.Key, "bar")
	chk.String(tst, sim.DirOut, "/tmp/feniqs/bar")
	chk.String(tst, sim.Structure, "bar1d")
	chk.String(tst, sim.Model.Constraint, "UNIAXIAL_STRESS")
	chk.Float64(tst, "H", 1e-15, sim.Model.HardeningIsotropic.Modulus, 100)
	chk.Float64(tst, "u_max", 1e-15, sim.StructPars["u_max"].(float64), 0.02)
	chk.Float64(tst, "dt", 1e-15, sim.Solve.Dt, 0.05)
	chk.Int(tst, "nmaxit (default)", sim.Solve.Solver.NmaxIt, 20)
	chk.Strings(tst, "reaction places", sim.Solve.ReactionPlaces, []string{"left"})
	if sim.Model.WriteFiles {
		tst.Errorf("_write_files should be false")
	}
	if !sim.Solve.Solver.ShowR {
		tst.Errorf("ShowR should be set by the environment")
	}
	chk.Float64(tst, "Itol", 1e-15, sim.Solve.Solver.Itol, 1e-3)
}

func Test_solve01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solve01")

	var opts SolveOptions
	opts.SetDefault()
	opts.Tend = 1
	opts.Dt = 0.3
	opts.Checkpoints = []float64{0.5, 0.25}
	if err := opts.PostProcess(); err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	ts := opts.Times()
	io.Pforan("ts = %v\n", ts)
	chk.Array(tst, "ts", 1e-15, ts, []float64{0.25, 0.5, 0.8, 1})
	if !opts.IsCheckpoint(0.5) || opts.IsCheckpoint(1) {
		tst.Errorf("IsCheckpoint failed")
	}

	opts.Checkpoints = nil
	opts.Dt = 0.1
	ts = opts.Times()
	chk.Int(tst, "number of steps", len(ts), 10)
	chk.Float64(tst, "last t", 1e-15, ts[9], 1)
	if !opts.IsCheckpoint(0.3) {
		tst.Errorf("all times are checkpoints when there are none")
	}

	opts.Checkpoints = []float64{1.5}
	if err := opts.PostProcess(); err == nil {
		tst.Errorf("checkpoint beyond tend should have failed")
	}
}

func Test_funcs01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("funcs01")

	fcns := FuncsData{
		{Name: "load", Type: "lin", Prms: dbf.Params{&dbf.P{N: "m", V: 2}, &dbf.P{N: "ts", V: 0}}},
		{Name: "zero", Type: "cte", Prms: dbf.Params{&dbf.P{N: "c", V: 0}}},
	}
	f, err := fcns.Get("load")
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	chk.Float64(tst, "load(0.5)", 1e-15, f.F(0.5, nil), 1)
	if IsConstant(f) {
		tst.Errorf("load is not constant")
	}
	g, err := fcns.Get("zero")
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	if !IsConstant(g) {
		tst.Errorf("zero is constant")
	}
	if _, err = fcns.Get("unknown"); err == nil {
		tst.Errorf("unknown function should have failed")
	}
	bad := FuncData{Name: "f", Type: "nonexistent"}
	if _, err = bad.New(); err == nil {
		tst.Errorf("function of unknown type should have failed")
	}
	if _, err = (&FuncData{Name: "f"}).New(); err == nil {
		tst.Errorf("function without type should have failed")
	}

	r, err := Ramp(3, 2)
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	chk.Float64(tst, "ramp(1)", 1e-15, r.F(1, nil), 1.5)
}

func Test_env01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("env01")

	tst.Setenv("FENIQS_DIROUT", "/tmp/feniqs_test")
	tst.Setenv("FENIQS_VERBOSE", "true")
	env, err := LoadEnv("data/does-not-exist.env")
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	chk.String(tst, env.DirOut, "/tmp/feniqs_test")
	chk.String(tst, env.Encoder, "gob")
	if !env.Verbose || env.ShowR {
		tst.Errorf("flags are incorrect: %+v", env)
	}

	tst.Setenv("FENIQS_ENCODER", "xml")
	if _, err = LoadEnv(); err == nil {
		tst.Errorf("xml encoder should have failed")
	}
}
