// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/benjaminknopp/FEniQS/ana"
	"github.com/benjaminknopp/FEniQS/inp"
	"github.com/benjaminknopp/FEniQS/msolid"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// newTestDomain returns a domain with a linear elastic model
func newTestDomain(tst *testing.T, msh *inp.Mesh, constraint string, E, ν float64) *Domain {
	mdl, err := msolid.GetAndInit("lin-elast", msh.Ndim, constraint, dbf.Params{
		&dbf.P{N: "E", V: E},
		&dbf.P{N: "nu", V: ν},
	})
	if err != nil {
		tst.Fatalf("cannot allocate model:\n%v", err)
	}
	dom, err := NewDomain(msh, &ElemData{Model: mdl, IntegDegree: 2, Thickness: 1})
	if err != nil {
		tst.Fatalf("NewDomain failed:\n%v", err)
	}
	return dom
}

// newTestSolver returns an implicit solver with default data
func newTestSolver(tst *testing.T, sum *Summary) FEsolver {
	var dat inp.SolverData
	dat.SetDefault()
	dat.ShowR = chk.Verbose
	solver, err := NewSolver(&dat, sum)
	if err != nil {
		tst.Fatalf("NewSolver failed:\n%v", err)
	}
	return solver
}

// sumReactions returns the sum of reactions of dof key at a location
func sumReactions(tst *testing.T, dom *Domain, at inp.Location, key string) (res float64) {
	eqs, err := dom.Eqs(at, key)
	if err != nil {
		tst.Fatalf("Eqs failed:\n%v", err)
	}
	r, err := dom.Reactions(eqs)
	if err != nil {
		tst.Fatalf("Reactions failed:\n%v", err)
	}
	for _, v := range r {
		res += v
	}
	return
}

func Test_u01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("u01. plane strain. prescribed displacements. uniform stretch")

	// domain
	lx, ly := 2.0, 1.0
	msh, err := inp.GenRectangle("qua4", 4, 2, lx, ly)
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	E, ν := 1000.0, 0.25
	dom := newTestDomain(tst, msh, "", E, ν)
	chk.Int(tst, "ny", dom.Ny, 2*len(msh.Verts))

	// boundary conditions
	δ := 0.01
	ramp, err := inp.Ramp(δ, 1)
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	err = dom.SetEssenBcs([]*inp.DofBc{
		{At: inp.Location{Tag: inp.TagLeftF}, Key: "ux"},
		{At: inp.Location{Tag: inp.TagBottom}, Key: "uy"},
		{At: inp.Location{Tag: inp.TagRightF}, Key: "ux", Fcn: ramp},
	})
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}

	// solve
	solver := newTestSolver(tst, nil)
	for _, t := range []float64{0.5, 1.0} {
		_, err = solver.Solve(dom, t)
		if err != nil {
			tst.Errorf("test failed:\n%v", err)
			return
		}
	}
	chk.Float64(tst, "t", 1e-15, dom.Sol.T, 1)

	// analytical solution
	εx := δ / lx
	εy := -ν / (1.0 - ν) * εx
	σx := E / (1.0 - ν*ν) * εx
	σz := ν * σx

	// check displacements
	for _, nod := range dom.Nodes {
		x := nod.Vert.C
		chk.Float64(tst, io.Sf("ux @ %v", x), 1e-12, dom.Sol.Y[nod.GetEq("ux")], εx*x[0])
		chk.Float64(tst, io.Sf("uy @ %v", x), 1e-12, dom.Sol.Y[nod.GetEq("uy")], εy*x[1])
	}

	// check stresses
	for _, e := range dom.Elems {
		for _, d := range e.OutIpsData() {
			chk.Array(tst, io.Sf("σ @ %v", d.X), 1e-10, d.Sig, []float64{σx, 0, σz, 0, 0, 0})
		}
	}

	// check reactions
	chk.Float64(tst, "Rx @ left", 1e-10, sumReactions(tst, dom, inp.Location{Tag: inp.TagLeftF}, "ux"), -σx*ly)
	chk.Float64(tst, "Rx @ right", 1e-10, sumReactions(tst, dom, inp.Location{Tag: inp.TagRightF}, "ux"), σx*ly)
}

func Test_u02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("u02. plane stress. normal traction on tri3 mesh")

	// domain
	msh, err := inp.GenRectangle("tri3", 2, 2, 1, 1)
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	E, ν := 1000.0, 0.3
	dom := newTestDomain(tst, msh, msolid.PLANE_STRESS, E, ν)

	// boundary conditions
	p := 5.0
	err = dom.SetEssenBcs([]*inp.DofBc{
		{At: inp.Location{Tag: inp.TagLeftF}, Key: "ux"},
		{At: inp.Location{Tag: inp.TagCorner0, OnVert: true}, Key: "uy"},
	})
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	err = dom.SetFaceBcs([]*inp.FaceBc{{Tag: inp.TagRightF, Key: "qn", Fcn: inp.Cte(p)}})
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}

	// solve
	solver := newTestSolver(tst, nil)
	_, err = solver.Solve(dom, 1)
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}

	// check
	for _, e := range dom.Elems {
		for _, d := range e.OutIpsData() {
			chk.Array(tst, io.Sf("σ @ %v", d.X), 1e-10, d.Sig, []float64{p, 0, 0, 0, 0, 0})
		}
	}
	v := msh.FindVert([]float64{1, 1}, 1e-8)
	nod := dom.Vid2node[v.Id]
	chk.Float64(tst, "ux @ (1,1)", 1e-12, dom.Sol.Y[nod.GetEq("ux")], p/E)
	chk.Float64(tst, "uy @ (1,1)", 1e-12, dom.Sol.Y[nod.GetEq("uy")], -ν*p/E)
}

func Test_u03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("u03. 1D bar under body force")

	// domain
	L, E, A, b := 4.0, 200.0, 2.0, 3.0
	msh, err := inp.GenLine(L, 4, "lin2")
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	mdl, err := msolid.GetAndInit("lin-elast", 1, msolid.UNIAXIAL_STRESS, dbf.Params{
		&dbf.P{N: "E", V: E},
		&dbf.P{N: "nu", V: 0.3},
	})
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	dom, err := NewDomain(msh, &ElemData{Model: mdl, IntegDegree: 2, Thickness: A, BodyForce: []float64{b}})
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	err = dom.SetEssenBcs([]*inp.DofBc{{At: inp.Location{Tag: inp.TagLeft}, Key: "ux"}})
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}

	// solve
	solver := newTestSolver(tst, nil)
	_, err = solver.Solve(dom, 1)
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}

	// nodal values are exact: u = b/E (L x - x²/2)
	for _, nod := range dom.Nodes {
		x := nod.Vert.C[0]
		chk.Float64(tst, io.Sf("u(%g)", x), 1e-12, dom.Sol.Y[nod.GetEq("ux")], b/E*(L*x-x*x/2.0))
	}
	chk.Float64(tst, "R @ left", 1e-10, sumReactions(tst, dom, inp.Location{Tag: inp.TagLeft}, "ux"), -b*L*A)
}

func Test_u04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("u04. 3D cube. uniaxial stress")

	// domain
	msh, err := inp.GenBox(2, 2, 2, 1, 1, 1)
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	E, ν := 100.0, 0.2
	dom := newTestDomain(tst, msh, "", E, ν)

	// boundary conditions
	δ := -0.002
	err = dom.SetEssenBcs([]*inp.DofBc{
		{At: inp.Location{Tag: inp.TagX0}, Key: "ux"},
		{At: inp.Location{Tag: inp.TagY0}, Key: "uy"},
		{At: inp.Location{Tag: inp.TagZ0}, Key: "uz"},
		{At: inp.Location{Tag: inp.TagZ1}, Key: "uz", Fcn: inp.Cte(δ)},
	})
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}

	// solve
	solver := newTestSolver(tst, nil)
	_, err = solver.Solve(dom, 1)
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}

	// check
	σz := E * δ
	for _, e := range dom.Elems {
		for _, d := range e.OutIpsData() {
			chk.Array(tst, io.Sf("σ @ %v", d.X), 1e-10, d.Sig, []float64{0, 0, σz, 0, 0, 0})
		}
	}
	chk.Float64(tst, "Rz @ z0", 1e-10, sumReactions(tst, dom, inp.Location{Tag: inp.TagZ0}, "uz"), -σz)
}

func Test_u05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("u05. 1D bar. plasticity with isotropic hardening")

	// domain
	E, σ0, H := 1000.0, 10.0, 100.0
	msh, err := inp.GenLine(1, 2, "lin2")
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	mdl, err := msolid.NewPlasticRIH(E, 0.3, σ0, H, msolid.RateIndependentHistory{}, 1, msolid.UNIAXIAL_STRESS)
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	dom, err := NewDomain(msh, &ElemData{Model: mdl, IntegDegree: 1, Thickness: 1})
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}

	// prescribed displacement beyond yield
	umax := 0.03
	ramp, _ := inp.Ramp(umax, 1)
	err = dom.SetEssenBcs([]*inp.DofBc{
		{At: inp.Location{Tag: inp.TagLeft}, Key: "ux"},
		{At: inp.Location{Tag: inp.TagRight}, Key: "ux", Fcn: ramp},
	})
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}

	// solve
	sum := NewSummary("/tmp/feniqs", "u05", "gob")
	solver := newTestSolver(tst, sum)
	sol := ana.Uniaxial{E: E, Sig0: σ0, H: H}
	for _, t := range []float64{0.2, 0.4, 0.6, 0.8, 1.0} {
		nit, err := solver.Solve(dom, t)
		if err != nil {
			tst.Errorf("test failed:\n%v", err)
			return
		}
		sum.Record(t, nit)
		ε := umax * t
		σ := sol.SigUnit(ε)
		for _, e := range dom.Elems {
			for _, d := range e.OutIpsData() {
				chk.Float64(tst, io.Sf("σ(%g)", ε), 1e-8, d.Sig[0], σ)
				chk.Float64(tst, io.Sf("κ(%g)", ε), 1e-10, d.Kappa, ε-σ/E)
			}
		}
		chk.Float64(tst, "R @ right", 1e-8, sumReactions(tst, dom, inp.Location{Tag: inp.TagRight}, "ux"), σ)
	}
	chk.Int(tst, "number of steps", len(sum.Resids), 5)
	chk.Int(tst, "number of outputs", len(sum.Iters), 5)
}

func Test_u06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("u06. point loads, tractions and penalty springs")

	// domain
	msh, err := inp.GenLine(2, 2, "lin2")
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	E := 50.0
	dom := newTestDomain(tst, msh, msolid.UNIAXIAL_STRESS, E, 0.3)

	// fixed left end; point load and traction at right end; spring in the middle
	err = dom.SetEssenBcs([]*inp.DofBc{{At: inp.Location{Tag: inp.TagLeft}, Key: "ux"}})
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	err = dom.SetPtLoads([]*inp.PtLoad{{At: inp.Location{Tag: -2, OnVert: true}, Dir: 0, Fcn: inp.Cte(2)}}, []string{"f_concentrated_0_0"})
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	err = dom.SetFaceBcs([]*inp.FaceBc{{Tag: inp.TagRight, Key: "tx", Fcn: inp.Cte(1)}})
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	mid := dom.Vid2node[1].GetEq("ux")
	err = dom.SetPenalty([]int{mid}, 10)
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}

	// solve
	solver := newTestSolver(tst, nil)
	_, err = solver.Solve(dom, 1)
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}

	// two springs of stiffness k = E A / h = 50 in series, with a spring of 10 at the middle node
	//  node 2: k (u2 - u1) = 3
	//  node 1: k u1 - k (u2 - u1) + 10 u1 = 0  =>  60 u1 = 3
	u1 := 3.0 / 60.0
	u2 := u1 + 3.0/50.0
	chk.Float64(tst, "u1", 1e-12, dom.Sol.Y[mid], u1)
	chk.Float64(tst, "u2", 1e-12, dom.Sol.Y[dom.Vid2node[2].GetEq("ux")], u2)
	chk.Float64(tst, "R @ left", 1e-10, sumReactions(tst, dom, inp.Location{Tag: inp.TagLeft}, "ux"), -50*u1)

	// errors
	err = dom.SetPenalty([]int{mid}, 0)
	if err == nil {
		tst.Errorf("zero penalty weight should have failed")
	}
	_, err = solver.Solve(dom, 0.5)
	if err == nil {
		tst.Errorf("solving backwards in time should have failed")
	}
}

func Test_bcs01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bcs01. essential and point boundary conditions")

	var ebcs EssentialBcs
	ebcs.Reset()
	err := ebcs.Set("ux@-10", []int{4, 0, 2}, nil)
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	err = ebcs.Set("ux@-11", []int{2}, inp.Cte(3))
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	io.Pforan("%v", ebcs.List(0))
	chk.Ints(tst, "eqs", ebcs.Eqs(), []int{0, 2, 4})
	chk.Float64(tst, "value @ 2", 1e-15, ebcs.Value(2, 0), 3)
	chk.Float64(tst, "value @ 4", 1e-15, ebcs.Value(4, 0), 0)
	if ebcs.Has(1) {
		tst.Errorf("equation 1 should not be prescribed")
	}
	if ebcs.Set("none", nil, nil) == nil {
		tst.Errorf("empty list of equations should have failed")
	}

	var pbcs PtNaturalBcs
	if pbcs.Set("f", 1, nil) == nil {
		tst.Errorf("nil function should have failed")
	}
	pbcs.Set("f", 1, inp.Cte(2))
	pbcs.Set("g", 1, inp.Cte(-0.5))
	fb := make([]float64, 3)
	pbcs.AddToRhs(fb, 0)
	chk.Array(tst, "fb", 1e-15, fb, []float64{0, 1.5, 0})

	chk.Float64(tst, "rms", 1e-15, rmsErr([]float64{1, 1}, 1, 0, []float64{5, 5}), 1)
}

func Test_bmat01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bmat01. B matrix in Mandel basis")

	G := [][]float64{{1, 2, 3}}
	B := [][]float64{make([]float64, 3), make([]float64, 3), make([]float64, 3),
		make([]float64, 3), make([]float64, 3), make([]float64, 3)}
	IpBmatrix(B, 3, 1, G)
	r := 0.7071067811865476
	chk.Array(tst, "B0", 1e-15, B[0], []float64{1, 0, 0})
	chk.Array(tst, "B1", 1e-15, B[1], []float64{0, 2, 0})
	chk.Array(tst, "B2", 1e-15, B[2], []float64{0, 0, 3})
	chk.Array(tst, "B3", 1e-15, B[3], []float64{2 * r, r, 0})
	chk.Array(tst, "B4", 1e-15, B[4], []float64{0, 3 * r, 2 * r})
	chk.Array(tst, "B5", 1e-15, B[5], []float64{3 * r, 0, r})
}
