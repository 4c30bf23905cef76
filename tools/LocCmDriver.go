// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build ignore

package main

import (
	"github.com/benjaminknopp/FEniQS/inp"
	"github.com/benjaminknopp/FEniQS/msolid"
	"github.com/benjaminknopp/FEniQS/out"
	"github.com/benjaminknopp/FEniQS/qsm"
	"github.com/cpmech/gosl/io"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// input data
	parsfn, fnkey := io.ArgToFilename(0, "inp/data/pars", ".json", true)
	epsmax := io.ArgToFloat(1, 0.05)
	nincs := io.ArgToInt(2, 50)
	checkD := io.ArgToBool(3, true)
	dirout := io.ArgToString(4, "/tmp/feniqs")
	io.Pf("\n%s\n", io.ArgsTable(
		"parameters filename", "parsfn", parsfn,
		"maximum strain", "epsmax", epsmax,
		"number of increments per segment", "nincs", nincs,
		"check consistent matrix", "checkD", checkD,
		"output directory", "dirout", dirout,
	))

	// model: 1D uniaxial stress
	pars, err := inp.ReadPars(parsfn)
	if err != nil {
		io.PfRed("cannot read parameters:\n%v\n", err)
		return
	}
	pars.Constraint = msolid.UNIAXIAL_STRESS
	mdl, err := qsm.NewMaterial(pars, 1)
	if err != nil {
		io.PfRed("cannot allocate model:\n%v\n", err)
		return
	}

	// driver
	drv := msolid.Driver{CheckD: checkD}
	err = drv.InitWithModel(mdl)
	if err != nil {
		io.PfRed("cannot initialise driver:\n%v\n", err)
		return
	}

	// loading, unloading and reverse loading
	pth := msolid.Path{Eps: [][]float64{{0}, {epsmax}, {-epsmax}}, Nincs: nincs}
	err = drv.Run(&pth)
	if err != nil {
		io.PfRed("driver: Run failed:\n%v\n", err)
		return
	}

	// results
	ε := make([]float64, len(drv.Res))
	σ := make([]float64, len(drv.Res))
	for i, sta := range drv.Res {
		ε[i] = drv.Eps[i][0]
		σ[i] = sta.Sig[0]
		io.Pf("%13.6e %13.6e %13.6e\n", ε[i], σ[i], sta.Kappa())
	}
	err = out.PlotSeries(dirout, "loccmdrv_"+fnkey, fnkey, "strain", "stress", []*out.Series{{Label: fnkey, X: ε, Y: σ}})
	if err != nil {
		io.PfRed("cannot plot:\n%v\n", err)
	}
}
