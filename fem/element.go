// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/benjaminknopp/FEniQS/inp"
	"github.com/benjaminknopp/FEniQS/msolid"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"gonum.org/v1/gonum/mat"
)

// OutIpData is an auxiliary structure to transfer data from integration points (IP) to output routines.
type OutIpData struct {
	Eid   int       // id of element that owns this ip
	X     []float64 // coordinates
	Sig   []float64 // stresses in Mandel basis [6]
	Kappa float64   // cumulated hardening variable
}

// Elem defines what elements must calculate
type Elem interface {

	// information and initialisation
	Id() int                        // returns the cell Id
	SetEqs(eqs [][]int) (err error) // set equations

	// conditions (natural BCs)
	SetNatBc(key string, idxface int, f dbf.T) (err error) // set natural boundary condition on face

	// called for each iteration
	AddToRhs(fb []float64, sol *Solution) (err error)               // adds -R to global residual vector fb
	AddToKb(Kb *mat.Dense, sol *Solution, firstIt bool) (err error) // adds element K to global Jacobian matrix Kb
	Update(sol *Solution) (err error)                               // perform (tangent) update

	// reading and writing of element data
	Encode(enc Encoder) (err error) // encodes internal variables
	Decode(dec Decoder) (err error) // decodes internal variables

	// output
	OutIpsData() (data []*OutIpData) // returns data from all integration points for output
}

// ElemIntvars defines elements with internal variables
type ElemIntvars interface {
	Ipoints() (coords [][]float64)         // returns the real coordinates of integration points [nip][ndim]
	SetIniIvs(sol *Solution) (err error)   // sets initial ivs
	BackupIvs(aux bool) (err error)        // create copy of internal variables
	RestoreIvs(aux bool) (err error)       // restore internal variables from copies
	SetModel(mdl msolid.Model) (err error) // replaces the material model keeping internal variables
}

// ElemData holds data shared by all elements of a domain
type ElemData struct {
	Type        string       // type of element; e.g. "u"
	Model       msolid.Model // material model
	IntegDegree int          // degree of polynomials integrated exactly
	Thickness   float64      // thickness (2D) or cross-sectional area (1D)
	SigmaScale  float64      // factor multiplying stresses in the weak form; zero => 1
	BodyForce   []float64    // body force per unit volume [ndim]; nil => zero
}

// NewElem returns a new element from its type; e.g. "u"
func NewElem(cell *inp.Cell, msh *inp.Mesh, edat *ElemData) (ele Elem, err error) {
	allocator, ok := eallocators[edat.Type]
	if !ok {
		return nil, chk.Err("cannot get allocator for element {type=%q, tag=%d, id=%d}", edat.Type, cell.Tag, cell.Id)
	}
	return allocator(cell, msh.CellCoords(cell), edat)
}

// eallocators holds all available elements; elemType => eallocator
var eallocators = make(map[string]func(cell *inp.Cell, x [][]float64, edat *ElemData) (Elem, error))
