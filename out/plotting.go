// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Series stores all data for a plot entity (X vs Y)
type Series struct {
	Label string    // label in legend
	X     []float64 // x-values
	Y     []float64 // y-values
}

// PlotSeries plots X-Y series and saves the figure to <dirout>/<fnkey>.png
func PlotSeries(dirout, fnkey, title, xlbl, ylbl string, series []*Series) (err error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlbl
	p.Y.Label.Text = ylbl
	var args []any
	for _, s := range series {
		if len(s.X) != len(s.Y) {
			return chk.Err("lengths of x- and y-series are different. len(x)=%d, len(y)=%d, label=%q", len(s.X), len(s.Y), s.Label)
		}
		pts := make(plotter.XYs, len(s.X))
		for i := range pts {
			pts[i].X = s.X[i]
			pts[i].Y = s.Y[i]
		}
		args = append(args, s.Label, pts)
	}
	err = plotutil.AddLinePoints(p, args...)
	if err != nil {
		return chk.Err("cannot add lines to plot %q:\n%v", fnkey, err)
	}
	err = os.MkdirAll(dirout, 0777)
	if err != nil {
		return chk.Err("cannot create directory %q:\n%v", dirout, err)
	}
	err = p.Save(6*vg.Inch, 4*vg.Inch, filepath.Join(dirout, fnkey+".png"))
	if err != nil {
		return chk.Err("cannot save plot %q:\n%v", fnkey, err)
	}
	return
}
