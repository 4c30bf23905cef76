// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/benjaminknopp/FEniQS/inp"
	"github.com/benjaminknopp/FEniQS/qsm"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			for i := 8; i > 3; i-- {
				chk.CallerInfo(i)
			}
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "examples/bar1d", ".yaml", true)
	verbose := io.ArgToBool(1, true)

	// environment and simulation data
	env, err := inp.LoadEnv(".env")
	if err != nil {
		chk.Panic("%v", err)
	}
	sim, err := inp.ReadSim(fnamepath, env)
	if err != nil {
		chk.Panic("%v", err)
	}
	verbose = verbose || env.Verbose

	// message
	if verbose {
		io.PfWhite("\nFEniQS -- quasi-static plasticity with finite elements\n\n")
		io.Pf("Copyright 2026 The FEniQS Authors. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n\n")
		io.Pf("\n%v\n", io.ArgsTable(
			"filename path", "fnamepath", fnamepath,
			"show messages", "verbose", verbose,
			"structure", "sim.Structure", sim.Structure,
			"output directory", "sim.DirOut", sim.DirOut,
			"encoder", "sim.EncType", sim.EncType,
		))
	}

	// model
	model, err := qsm.GetQSMPlasticity(sim.Structure, sim.StructPars, sim.Model, sim.DirOut, sim.Name)
	if err != nil {
		chk.Panic("cannot build model:\n%v", err)
	}
	model.EncType = sim.EncType
	model.Verbose = verbose

	// run simulation
	ts, its, err := model.Solve(&sim.Solve, nil, true)
	if err != nil {
		chk.Panic("Solve failed:\n%v", err)
	}

	// results
	if verbose {
		io.Pf("\n%8s%8s", "t", "nit")
		for _, place := range model.PP.Places {
			io.Pf("%23s", "R@"+place)
		}
		io.Pf("\n")
		idx := 0
		for i, t := range ts {
			io.Pf("%8g%8d", t, its[i])
			if idx < len(model.PP.Records) && model.PP.Records[idx].T == t {
				for _, place := range model.PP.Places {
					io.Pf("%23.15e", model.PP.Records[idx].Reactions[place])
				}
				idx++
			}
			io.Pf("\n")
		}
		io.Pfgreen("\n%s: %d steps; %d iterations\n", model.Name, len(ts), sum(its))
	}
}

func sum(a []int) (res int) {
	for _, v := range a {
		res += v
	}
	return
}
