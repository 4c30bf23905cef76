// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/benjaminknopp/FEniQS/inp"
	"github.com/cpmech/gosl/chk"
)

// FEsolver defines the API for finite element method solvers
type FEsolver interface {

	// Solve advances the domain from its current time d.Sol.T to time t. Returns the total
	// number of iterations performed (including those of sub-steps)
	Solve(d *Domain, t float64) (nit int, err error)
}

// NewSolver returns a new FE solver. sum may be nil
func NewSolver(dat *inp.SolverData, sum *Summary) (FEsolver, error) {
	allocator, ok := solverallocators[dat.Type]
	if !ok {
		return nil, chk.Err("cannot find FE solver named %q", dat.Type)
	}
	if dat.Itol == 0 {
		err := dat.PostProcess()
		if err != nil {
			return nil, err
		}
	}
	return allocator(dat, sum), nil
}

// solverallocators holds all available solvers
var solverallocators = make(map[string]func(dat *inp.SolverData, sum *Summary) FEsolver)

// rmsErr returns the root-mean-square of δ scaled by atol + rtol |y|
func rmsErr(δ []float64, atol, rtol float64, y []float64) float64 {
	if len(δ) == 0 {
		return 0
	}
	var sum float64
	for i, v := range δ {
		r := v / (atol + rtol*math.Abs(y[i]))
		sum += r * r
	}
	return math.Sqrt(sum / float64(len(δ)))
}
