// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/benjaminknopp/FEniQS/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/mat"
)

// SolverImplicit solves FEM problem using an implicit procedure (with Newthon-Raphson method)
type SolverImplicit struct {
	Dat *inp.SolverData // solver data
	Sum *Summary        // summary; may be nil

	// auxiliary
	free  []int     // free equations
	presc []int     // prescribed equations
	δp    []float64 // corrections of prescribed equations [len(presc)]
	lu    mat.LU    // factorisation of the free-free block of Kb
}

// set factory
func init() {
	solverallocators["imp"] = func(dat *inp.SolverData, sum *Summary) FEsolver {
		return &SolverImplicit{Dat: dat, Sum: sum}
	}
}

// Solve advances the domain to time tf. Steps that fail are restored and halved
func (o *SolverImplicit) Solve(d *Domain, tf float64) (nit int, err error) {

	// time control
	tol := 1e-12 * math.Max(1, math.Abs(tf))
	Δt := tf - d.Sol.T
	if Δt <= tol {
		return 0, chk.Err("target time %g must be greater than current time %g", tf, d.Sol.T)
	}
	Δt0 := Δt

	// time loop
	nhalve := 0 // number of consecutive halvings
	for d.Sol.T < tf-tol {

		// time increment
		t := d.Sol.T + Δt
		if t > tf-tol {
			t = tf
		}

		// backup solution
		err = d.backup()
		if err != nil {
			return
		}

		// run iterations
		it, errIt := o.runIterations(d, t)
		nit += it

		// restore solution and reduce time step
		if errIt != nil {
			if nhalve >= o.Dat.Nhalve || Δt/2 < o.Dat.DtMin {
				return nit, chk.Err("cannot reach t = %g after %d step halvings:\n%v", t, nhalve, errIt)
			}
			if o.Dat.ShowR {
				io.Pfred(". . . step to t = %g failed (%v). halving Δt = %g . . .\n", t, errIt, Δt)
			}
			err = d.restore()
			if err != nil {
				return
			}
			Δt /= 2
			nhalve++
			continue
		}

		// recover time step after success
		nhalve = 0
		Δt = math.Min(2*Δt, Δt0)
	}
	d.Sol.T = tf
	return
}

// runIterations solves the nonlinear problem at time t. Returns the number of linear solutions
func (o *SolverImplicit) runIterations(d *Domain, t float64) (nsol int, err error) {

	// zero accumulated increments
	for i := range d.Sol.ΔY {
		d.Sol.ΔY[i] = 0
	}
	d.Sol.T = t
	o.setEqs(d)
	nf := len(o.free)

	// auxiliary variables
	var it int
	var largFb, largFb0, Lδu float64
	var prevFb, prevLδu float64
	rhs := mat.NewVecDense(max(nf, 1), nil)
	var x mat.VecDense

	// message
	if o.Dat.ShowR {
		io.Pf("\n%13s%4s%23s%23s\n", "t", "it", "largFb", "Lδu")
		defer func() {
			io.Pf("%13.6e%4d%23.15e%23.15e\n", t, it, largFb, Lδu)
		}()
	}

	// iterations
	for it = 0; it < o.Dat.NmaxIt; it++ {

		// assemble right-hand side vector (fb) with negative of residuals
		err = d.CalcFb()
		if err != nil {
			return
		}

		// corrections of prescribed values; non-zero at first iteration only
		for k, eq := range o.presc {
			o.δp[k] = d.EssenBcs.Value(eq, t) - d.Sol.Y[eq]
		}

		// find largest absolute component of fb
		largFb = 0
		for _, I := range o.free {
			largFb = math.Max(largFb, math.Abs(d.Fb[I]))
		}

		// save residual
		if o.Sum != nil {
			o.Sum.appendResid(it == 0, largFb)
		}

		// check largFb value
		if it == 0 {
			largFb0 = largFb
		} else {
			if largFb < o.Dat.FbTol*largFb0 { // converged on fb
				break
			}
			if largFb < o.Dat.FbMin { // converged with smallest value of fb
				break
			}
		}

		// check divergence on fb
		if it > 1 && o.Dat.DvgCtrl {
			if largFb > prevFb {
				return nsol, chk.Err("iterations diverging on fb: %g > %g", largFb, prevFb)
			}
		}
		prevFb = largFb

		// assemble Jacobian matrix and factorise free-free block
		if it == 0 || !o.Dat.CteTg {
			err = d.CalcKb(it == 0)
			if err != nil {
				return
			}
			if nf > 0 {
				Kff := mat.NewDense(nf, nf, nil)
				for a, I := range o.free {
					for b, J := range o.free {
						Kff.Set(a, b, d.Kb.At(I, J))
					}
				}
				o.lu.Factorize(Kff)
				if c := o.lu.Cond(); math.IsInf(c, 0) || c*o.Dat.Eps > 1 {
					return nsol, chk.Err("Jacobian matrix is singular: condition number = %g", c)
				}
			}
		}

		// solve for wb := δy
		for i := range d.Wb {
			d.Wb[i] = 0
		}
		if nf > 0 {
			for a, I := range o.free {
				v := d.Fb[I]
				for k, P := range o.presc {
					v -= d.Kb.At(I, P) * o.δp[k]
				}
				rhs.SetVec(a, v)
			}
			err = o.lu.SolveVecTo(&x, false, rhs)
			if err != nil {
				if _, ok := err.(mat.Condition); !ok {
					return nsol, chk.Err("linear solver failed:\n%v", err)
				}
				err = nil
			}
			for a, I := range o.free {
				d.Wb[I] = x.AtVec(a)
			}
		}
		for k, P := range o.presc {
			d.Wb[P] = o.δp[k]
		}
		nsol++

		// update primary variables (y)
		for i := 0; i < d.Ny; i++ {
			d.Sol.Y[i] += d.Wb[i]  // y += δy
			d.Sol.ΔY[i] += d.Wb[i] // ΔY += δy
		}

		// backup / restore
		for _, e := range d.ElemIntvars {
			if it == 0 {
				// create backup copy of all secondary variables
				err = e.BackupIvs(false)
			} else {
				// recover last converged state from backup copy
				err = e.RestoreIvs(false)
			}
			if err != nil {
				return
			}
		}

		// update secondary variables
		for _, e := range d.Elems {
			err = e.Update(d.Sol)
			if err != nil {
				return
			}
		}

		// compute RMS norm of δu and check convegence on δu
		Lδu = rmsErr(d.Wb, o.Dat.Atol, o.Dat.Rtol, d.Sol.Y)

		// message
		if o.Dat.ShowR {
			io.Pf("%13.6e%4d%23.15e%23.15e\n", t, it, largFb, Lδu)
		}

		// stop if converged on δu
		if Lδu < o.Dat.Itol {
			break
		}

		// check divergence on Lδu
		if it > 1 && o.Dat.DvgCtrl {
			if Lδu > prevLδu {
				return nsol, chk.Err("iterations diverging on δu: %g > %g", Lδu, prevLδu)
			}
		}
		prevLδu = Lδu
	}

	// check if iterations diverged
	if it == o.Dat.NmaxIt {
		return nsol, chk.Err("max number of iterations reached: it = %d", it)
	}
	return
}

// setEqs splits the equations into free and prescribed ones
func (o *SolverImplicit) setEqs(d *Domain) {
	o.presc = d.EssenBcs.Eqs()
	o.free = o.free[:0]
	for eq := 0; eq < d.Ny; eq++ {
		if !d.EssenBcs.Has(eq) {
			o.free = append(o.free, eq)
		}
	}
	o.δp = make([]float64, len(o.presc))
}
