// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build ignore

package main

import (
	"math"
	"path/filepath"

	"github.com/benjaminknopp/FEniQS/fem"
	"github.com/benjaminknopp/FEniQS/out"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// input data
	dirout := io.ArgToString(0, "/tmp/feniqs")
	fnkey := io.ArgToString(1, "QsPlasticity_bar1d")
	enctype := io.ArgToString(2, "gob")
	skip := io.ArgToInt(3, 0)
	io.Pf("\n%s\n", io.ArgsTable(
		"output directory", "dirout", dirout,
		"file key", "fnkey", fnkey,
		"encoder", "enctype", enctype,
		"number of initial increments to skip", "skip", skip,
	))

	// read summary
	sum, err := fem.ReadSum(dirout, fnkey, enctype)
	if err != nil {
		io.PfRed("%v\n", err)
		return
	}

	// residuals: step => residuals
	io.Pf("\nResiduals\n")
	io.Pf("=========\n")
	for i, r := range sum.Resids {
		io.Pf("%4d:", i)
		for _, v := range r {
			io.Pf("%10.2e", v)
		}
		io.Pf("\n")
	}

	// convergence curves
	var series []*out.Series
	for i, r := range sum.Resids {
		if i < skip || len(r) == 0 {
			continue
		}
		s := &out.Series{Label: io.Sf("%d", i)}
		for j, v := range r {
			if v <= 0 {
				break
			}
			s.X = append(s.X, float64(j))
			s.Y = append(s.Y, math.Log10(v))
		}
		series = append(series, s)
	}
	err = out.PlotSeries(dirout, fnkey+"_conv", fnkey, "iteration", "log10(largest residual)", series)
	if err != nil {
		io.PfRed("%v\n", err)
		return
	}

	// histogram of iterations
	var nits plotter.Values
	for i, r := range sum.Resids {
		if i < skip {
			continue
		}
		nits = append(nits, float64(len(r)))
	}
	if len(nits) == 0 {
		return
	}
	p := plot.New()
	p.Title.Text = fnkey
	p.X.Label.Text = "number of iterations"
	p.Y.Label.Text = "count"
	h, err := plotter.NewHist(nits, 10)
	if err != nil {
		io.PfRed("cannot make histogram:\n%v\n", err)
		return
	}
	p.Add(h)
	err = p.Save(6*vg.Inch, 4*vg.Inch, filepath.Join(dirout, fnkey+"_hist.png"))
	if err != nil {
		io.PfRed("cannot save histogram:\n%v\n", err)
	}
}
