// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/benjaminknopp/FEniQS/fem"
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

// solveStretch solves a plane stress rectangle stretched along x by δ
func solveStretch(tst *testing.T, lx, ly, E, δ float64) *fem.Domain {
	msh, err := inp.GenRectangle("qua4", 4, 2, lx, ly)
	if err != nil {
		tst.Fatalf("GenRectangle failed:\n%v", err)
	}
	mdl, err := msolid.GetAndInit("lin-elast", 2, msolid.PLANE_STRESS, dbf.Params{
		&dbf.P{N: "E", V: E},
		&dbf.P{N: "nu", V: 0.3},
	})
	if err != nil {
		tst.Fatalf("cannot allocate model:\n%v", err)
	}
	dom, err := fem.NewDomain(msh, &fem.ElemData{Model: mdl, IntegDegree: 2, Thickness: 1})
	if err != nil {
		tst.Fatalf("NewDomain failed:\n%v", err)
	}
	err = dom.SetEssenBcs([]*inp.DofBc{
		{At: inp.Location{Tag: inp.TagLeftF}, Key: "ux"},
		{At: inp.Location{Tag: inp.TagCorner0, OnVert: true}, Key: "uy"},
		{At: inp.Location{Tag: inp.TagRightF}, Key: "ux", Fcn: inp.Cte(δ)},
	})
	if err != nil {
		tst.Fatalf("SetEssenBcs failed:\n%v", err)
	}
	var dat inp.SolverData
	dat.SetDefault()
	solver, err := fem.NewSolver(&dat, fem.NewSummary("", "stretch", "gob"))
	if err != nil {
		tst.Fatalf("NewSolver failed:\n%v", err)
	}
	_, err = solver.Solve(dom, 1)
	if err != nil {
		tst.Fatalf("Solve failed:\n%v", err)
	}
	return dom
}

func Test_out01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("out01. reactions, displacements and projections")

	lx, ly, E, δ := 2.0, 1.0, 1000.0, 0.004
	σx := E * δ / lx
	dom := solveStretch(tst, lx, ly, E, δ)

	// post-processor
	places := []string{"left", "right"}
	var dofs [][]int
	for _, tag := range []int{inp.TagLeftF, inp.TagRightF} {
		eqs, err := dom.Eqs(inp.Location{Tag: tag}, "ux")
		if err != nil {
			tst.Errorf("test failed:\n%v", err)
			return
		}
		dofs = append(dofs, eqs)
	}
	pp, err := NewPostProcessPlastic(dom, "", "", places, dofs, false, 1, map[string]dbf.T{"u_right": inp.Cte(δ)})
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	chk.String(tst, pp.Name, "model")
	err = pp.Eval(1)
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	chk.Array(tst, "times", 1e-15, pp.Times(), []float64{1})
	chk.Array(tst, "R @ left", 1e-9, pp.Reaction("left"), []float64{-σx * ly})
	chk.Array(tst, "R @ right", 1e-9, pp.Reaction("right"), []float64{σx * ly})
	chk.Array(tst, "u @ left", 1e-15, pp.Disp("left"), []float64{0})
	chk.Array(tst, "u @ right", 1e-12, pp.Disp("right"), []float64{δ})
	chk.Float64(tst, "κmax", 1e-15, pp.Records[0].KappaMax, 0)
	chk.Float64(tst, "u_right", 1e-15, pp.Records[0].Loadings["u_right"], δ)

	// projections
	sigma := []float64{σx, 0, 0, 0, 0, 0}
	for cid, vals := range cellAverages(dom) {
		chk.Array(tst, io.Sf("σ @ cell %d", cid), 1e-9, vals[:6], sigma)
	}
	vals, err := extrapolate(dom)
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	for vid, v := range vals {
		chk.Array(tst, io.Sf("σ @ vert %d", vid), 1e-9, v[:6], sigma)
	}

	// closing without files
	err = pp.Close()
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	if err = pp.Eval(2); err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	chk.Array(tst, "times", 1e-15, pp.Times(), []float64{1, 2})

	// errors
	if _, err = NewPostProcessPlastic(dom, "a", "", places, dofs[:1], false, 1, nil); err == nil {
		tst.Errorf("wrong number of reaction dofs should have failed")
	}
	if _, err = NewPostProcessPlastic(dom, "a", "", places, dofs, false, 2, nil); err == nil {
		tst.Errorf("DG degree 2 should have failed")
	}
}

func Test_out02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("out02. files")

	dom := solveStretch(tst, 2, 1, 1000, 0.004)
	eqs, err := dom.Eqs(inp.Location{Tag: inp.TagRightF}, "ux")
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}

	dirout := tst.TempDir()
	for _, dg := range []int{0, 1} {
		name := io.Sf("stretch_dg%d", dg)
		pp, err := NewPostProcessPlastic(dom, name, dirout, []string{"right"}, [][]int{eqs}, true, dg, nil)
		if err != nil {
			tst.Errorf("test failed:\n%v", err)
			return
		}
		for _, t := range []float64{0.5, 1} {
			if err = pp.Eval(t); err != nil {
				tst.Errorf("test failed:\n%v", err)
				return
			}
		}
		if err = pp.Close(); err != nil {
			tst.Errorf("test failed:\n%v", err)
			return
		}
		for _, fn := range []string{name + "_0000.vtu", name + "_0001.vtu", name + "_pp.yaml", name + "_reaction_displacement.png"} {
			if _, err = os.Stat(filepath.Join(dirout, fn)); err != nil {
				tst.Errorf("file %q should have been written:\n%v", fn, err)
			}
		}
	}

	err = WriteMeshVtu(dom.Msh, dirout, "mesh")
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	b, err := os.ReadFile(filepath.Join(dirout, "mesh.vtu"))
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	io.Pforan("%s\n", b)
	err = WriteVtu(dom.Msh, dirout, "wrong", []*Field{{Name: "u", Ncomp: 3, Vals: [][]float64{{0}}}}, nil)
	if err == nil {
		tst.Errorf("field with wrong number of items should have failed")
	}
}
