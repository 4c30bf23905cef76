// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/benjaminknopp/FEniQS/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_fileio01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fileio01")

	for _, enctype := range []string{"gob", "json"} {

		// domain A
		msh, err := inp.GenRectangle("qua4", 2, 1, 2, 1)
		if err != nil {
			tst.Errorf("test failed:\n%v", err)
			return
		}
		domA := newTestDomain(tst, msh, "", 1000, 0.2)
		domA.DirOut, domA.Key, domA.EncType = "/tmp/feniqs/fem", "fileio01", enctype
		err = domA.SetEssenBcs([]*inp.DofBc{
			{At: inp.Location{Tag: inp.TagLeftF}, Key: "ux"},
			{At: inp.Location{Tag: inp.TagBottom}, Key: "uy"},
			{At: inp.Location{Tag: inp.TagTop}, Key: "uy", Fcn: inp.Cte(-0.01)},
		})
		if err != nil {
			tst.Errorf("test failed:\n%v", err)
			return
		}
		_, err = newTestSolver(tst, nil).Solve(domA, 1)
		if err != nil {
			tst.Errorf("test failed:\n%v", err)
			return
		}
		io.Pforan("domA.Sol.Y = %v\n", domA.Sol.Y)

		// write files
		sum := NewSummary(domA.DirOut, domA.Key, enctype)
		err = sum.SaveResults(domA, 1, 2, chk.Verbose)
		if err != nil {
			tst.Errorf("test failed:\n%v", err)
			return
		}
		err = sum.Save()
		if err != nil {
			tst.Errorf("test failed:\n%v", err)
			return
		}

		// domain B
		domB := newTestDomain(tst, msh, "", 1000, 0.2)
		sumB, err := ReadSum(domA.DirOut, domA.Key, enctype)
		if err != nil {
			tst.Errorf("test failed:\n%v", err)
			return
		}
		chk.Array(tst, "OutTimes", 1e-17, sumB.OutTimes, []float64{1})
		chk.Ints(tst, "Iters", sumB.Iters, []int{2})
		err = domB.Read(sumB, 0)
		if err != nil {
			tst.Errorf("test failed:\n%v", err)
			return
		}
		io.Pfgreen("domB.Sol.Y (after) = %v\n", domB.Sol.Y)

		// check
		chk.Float64(tst, "T", 1e-17, domB.Sol.T, 1)
		chk.Array(tst, "Y", 1e-17, domB.Sol.Y, domA.Sol.Y)
		for i, e := range domB.Elems {
			dA := domA.Elems[i].OutIpsData()
			for j, d := range e.OutIpsData() {
				chk.Array(tst, "σ", 1e-15, d.Sig, dA[j].Sig)
			}
		}

		// index out of range
		if domB.Read(sumB, 1) == nil {
			tst.Errorf("reading index 1 should have failed")
		}
	}
}
