// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"strings"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// kinematic constraints
const (
	UNIAXIAL_STRAIN = "UNIAXIAL_STRAIN"
	UNIAXIAL_STRESS = "UNIAXIAL_STRESS"
	PLANE_STRAIN    = "PLANE_STRAIN"
	PLANE_STRESS    = "PLANE_STRESS"
	FULL_3D         = "3D"
)

// Constraint maps the reduced stresses/strains of 1D and 2D analyses to full 3D tensors
type Constraint struct {
	Name   string // e.g. PLANE_STRESS
	Ndim   int    // space dimension
	Nsig   int    // number of components seen by elements
	Free   []int  // Mandel indices of components with zero stress
	Active []int  // reduced indices whose strains are given by the kinematics
}

// NewConstraint returns a new constraint for given space dimension and name
//  Note: an empty name selects the default of each dimension; i.e.
//        UNIAXIAL_STRAIN, PLANE_STRAIN and 3D
func NewConstraint(ndim int, name string) (o *Constraint, err error) {
	name = strings.ToUpper(name)
	o = &Constraint{Name: name, Ndim: ndim}
	switch ndim {
	case 1:
		o.Nsig = 1
		switch name {
		case "", UNIAXIAL_STRAIN:
			o.Name = UNIAXIAL_STRAIN
		case UNIAXIAL_STRESS:
			o.Free = []int{1, 2}
		default:
			return nil, chk.Err("constraint %q is not available in 1D", name)
		}
	case 2:
		o.Nsig = 4
		switch name {
		case "", PLANE_STRAIN:
			o.Name = PLANE_STRAIN
		case PLANE_STRESS:
			o.Free = []int{2}
		default:
			return nil, chk.Err("constraint %q is not available in 2D", name)
		}
	case 3:
		o.Nsig = 6
		switch name {
		case "", FULL_3D:
			o.Name = FULL_3D
		default:
			return nil, chk.Err("constraint %q is not available in 3D", name)
		}
	default:
		return nil, chk.Err("space dimension must be 1, 2 or 3. ndim = %d is invalid", ndim)
	}
	for i := 0; i < o.Nsig; i++ {
		if !o.isFree(i) {
			o.Active = append(o.Active, i)
		}
	}
	return
}

// StressConstrained tells whether some stress components must vanish
func (o Constraint) StressConstrained() bool { return len(o.Free) > 0 }

// Expand fills the full strain tensor ε3 with the reduced strains ε and the free strains εF
func (o Constraint) Expand(ε3, ε, εF []float64) {
	for i := 0; i < 6; i++ {
		ε3[i] = 0
	}
	for i := 0; i < o.Nsig; i++ {
		ε3[i] = ε[i]
	}
	for k, f := range o.Free {
		ε3[f] = εF[k]
	}
}

// FreeResidual returns the largest absolute stress among the free components
func (o Constraint) FreeResidual(σ3 []float64) (res float64) {
	for _, f := range o.Free {
		if σ3[f] > res {
			res = σ3[f]
		} else if -σ3[f] > res {
			res = -σ3[f]
		}
	}
	return
}

// CorrectFree performs one Newton correction of the free strains: εF -= inv(D_FF) σ_F
func (o Constraint) CorrectFree(εF []float64, D3 [][]float64, σ3 []float64) (err error) {
	nf := len(o.Free)
	DFF := mat.NewDense(nf, nf, nil)
	σF := mat.NewVecDense(nf, nil)
	for k, f := range o.Free {
		σF.SetVec(k, σ3[f])
		for l, g := range o.Free {
			DFF.Set(k, l, D3[f][g])
		}
	}
	var δ mat.VecDense
	err = δ.SolveVec(DFF, σF)
	if err != nil {
		if _, ok := err.(mat.Condition); !ok {
			return chk.Err("cannot solve for free strains of %s:\n%v", o.Name, err)
		}
	}
	for k := range o.Free {
		εF[k] -= δ.AtVec(k)
	}
	return nil
}

// Condense computes the reduced tangent D[nsig][nsig] from the full tangent D3[6][6]
//  D = D_AA - D_AF inv(D_FF) D_FA
func (o Constraint) Condense(D, D3 [][]float64) (err error) {
	for i := 0; i < o.Nsig; i++ {
		for j := 0; j < o.Nsig; j++ {
			D[i][j] = 0
		}
	}
	if len(o.Free) == 0 {
		for i := 0; i < o.Nsig; i++ {
			for j := 0; j < o.Nsig; j++ {
				D[i][j] = D3[i][j]
			}
		}
		return
	}
	nf, na := len(o.Free), len(o.Active)
	DFF := mat.NewDense(nf, nf, nil)
	DFA := mat.NewDense(nf, na, nil)
	for k, f := range o.Free {
		for l, g := range o.Free {
			DFF.Set(k, l, D3[f][g])
		}
		for l, j := range o.Active {
			DFA.Set(k, l, D3[f][j])
		}
	}
	var X mat.Dense // X = inv(D_FF) D_FA
	err = X.Solve(DFF, DFA)
	if err != nil {
		if _, ok := err.(mat.Condition); !ok {
			return chk.Err("cannot condense tangent of %s:\n%v", o.Name, err)
		}
	}
	for _, i := range o.Active {
		for b, j := range o.Active {
			D[i][j] = D3[i][j]
			for k, f := range o.Free {
				D[i][j] -= D3[i][f] * X.At(k, b)
			}
		}
	}
	return nil
}

// isFree tells whether a Mandel index corresponds to a free component
func (o Constraint) isFree(i int) bool {
	for _, f := range o.Free {
		if f == i {
			return true
		}
	}
	return false
}
