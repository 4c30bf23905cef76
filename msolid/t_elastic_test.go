// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

func Test_elast01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("elast01. constraints and condensation")

	E, ν := 1000.0, 0.25
	prms := dbf.Params{
		&dbf.P{N: "E", V: E},
		&dbf.P{N: "nu", V: ν},
	}

	// uniaxial stress
	mdl, err := GetAndInit("lin-elast", 1, "uniaxial_stress", prms)
	if err != nil {
		tst.Errorf("GetAndInit failed:\n%v", err)
		return
	}
	small := mdl.(Small)
	D := utl.Alloc(1, 1)
	small.CalcD(D, nil, true)
	chk.Float64(tst, "D(uniaxial stress)", 1e-12, D[0][0], E)
	s, _ := mdl.InitIntVars(make([]float64, 6))
	err = small.Update(s, []float64{0.002}, []float64{0.002})
	if err != nil {
		tst.Errorf("Update failed:\n%v", err)
		return
	}
	chk.Array(tst, "σ(uniaxial stress)", 1e-12, s.Sig, []float64{2, 0, 0, 0, 0, 0})
	chk.Array(tst, "εF(uniaxial stress)", 1e-15, s.EpsF, []float64{-ν * 0.002, -ν * 0.002})

	// uniaxial strain
	mdl, _ = GetAndInit("lin-elast", 1, "", prms)
	chk.String(tst, mdl.GetConstraint().Name, UNIAXIAL_STRAIN)
	mdl.(Small).CalcD(D, nil, true)
	K, G := Calc_K_from_Enu(E, ν), Calc_G_from_Enu(E, ν)
	chk.Float64(tst, "D(uniaxial strain)", 1e-12, D[0][0], K+4.0*G/3.0)

	// plane stress
	mdl, _ = GetAndInit("lin-elast", 2, PLANE_STRESS, prms)
	D = utl.Alloc(4, 4)
	mdl.(Small).CalcD(D, nil, true)
	io.Pforan("D = %v\n", D)
	c := E / (1.0 - ν*ν)
	chk.Deep2(tst, "D(plane stress)", 1e-12, D, [][]float64{
		{c, c * ν, 0, 0},
		{c * ν, c, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 2 * G},
	})

	// plane strain
	mdl, _ = GetAndInit("lin-elast", 2, PLANE_STRAIN, prms)
	mdl.(Small).CalcD(D, nil, true)
	chk.Float64(tst, "D00(plane strain)", 1e-12, D[0][0], K+4.0*G/3.0)
	chk.Float64(tst, "D20(plane strain)", 1e-12, D[2][0], K-2.0*G/3.0)

	// wrong constraints and parameters
	_, err = GetAndInit("lin-elast", 2, UNIAXIAL_STRESS, prms)
	if err == nil {
		tst.Errorf("UNIAXIAL_STRESS in 2D should have failed\n")
	}
	_, err = GetAndInit("lin-elast", 3, "", dbf.Params{&dbf.P{N: "E", V: E}, &dbf.P{N: "nu", V: 0.5}})
	if err == nil {
		tst.Errorf("ν = 0.5 should have failed\n")
	}
	_, err = New("cam-clay")
	if err == nil {
		tst.Errorf("unknown model should have failed\n")
	}
}
