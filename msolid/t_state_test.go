// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_state01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("state01")

	nalp, nfree := 1, 2
	state0 := NewState(nalp, nfree)
	io.Pforan("state0 = %+v\n", state0)
	chk.Array(tst, "sig", 1.0e-17, state0.Sig, []float64{0, 0, 0, 0, 0, 0})
	chk.Array(tst, "alp", 1.0e-17, state0.Alp, []float64{0})
	chk.Array(tst, "epsF", 1.0e-17, state0.EpsF, []float64{0, 0})

	state0.Sig[0] = 10.0
	state0.Sig[1] = 11.0
	state0.Sig[2] = 12.0
	state0.Sig[3] = 13.0
	state0.EpsP[0] = 0.5
	state0.Alp[0] = 20.0
	state0.EpsF[1] = -1
	state0.Dgam = 0.1
	state0.Loading = true

	state1 := NewState(nalp, nfree)
	state1.Set(state0)
	io.Pforan("state1 = %+v\n", state1)
	chk.Array(tst, "sig", 1.0e-17, state1.Sig, []float64{10, 11, 12, 13, 0, 0})
	chk.Array(tst, "epsP", 1.0e-17, state1.EpsP, []float64{0.5, 0, 0, 0, 0, 0})
	chk.Array(tst, "alp", 1.0e-17, state1.Alp, []float64{20})
	chk.Array(tst, "epsF", 1.0e-17, state1.EpsF, []float64{0, -1})
	chk.Float64(tst, "dgam", 1e-17, state1.Dgam, 0.1)
	if !state1.Loading {
		tst.Errorf("loading flag should have been copied\n")
	}

	state2 := state1.GetCopy()
	state1.Alp[0] = 0
	chk.Array(tst, "sig", 1.0e-17, state2.Sig, []float64{10, 11, 12, 13, 0, 0})
	chk.Float64(tst, "kappa", 1.0e-17, state2.Kappa(), 20)

	// elastic state
	state3 := NewState(0, 0)
	chk.Float64(tst, "kappa", 1.0e-17, state3.Kappa(), 0)
	chk.Int(tst, "len(epsP)", len(state3.EpsP), 0)
}
