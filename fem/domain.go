// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/benjaminknopp/FEniQS/inp"
	"github.com/benjaminknopp/FEniQS/msolid"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/mat"
)

// Solution holds the solution data @ nodes.
//
//        / ux \
//  y  =  | uy |  (ny x 1)
//        \ uz /
//
type Solution struct {
	T  float64   // current time
	Y  []float64 // DOFs (displacements)
	ΔY []float64 // total increment within a step (for nonlinear solver)
}

// Reset clear values
func (o *Solution) Reset() {
	o.T = 0
	for i := 0; i < len(o.Y); i++ {
		o.Y[i] = 0
		o.ΔY[i] = 0
	}
}

// Domain holds all Nodes and Elements in addition to the Solution at nodes
type Domain struct {

	// init: auxiliary variables
	Msh  *inp.Mesh // mesh data
	Edat *ElemData // data shared by all elements

	// nodes and elements
	Nodes       []*Node       // all nodes
	Elems       []Elem        // all elements
	ElemIntvars []ElemIntvars // elements with internal vars
	Vid2node    []*Node       // [nverts] VertexId => node
	Cid2elem    []Elem        // [ncells] CellId => element

	// coefficients and prescribed forces
	EssenBcs   EssentialBcs // prescribed displacements (eliminated)
	PtNatBcs   PtNaturalBcs // point loads such as prescribed forces at nodes
	PenaltyEqs []int        // equations with penalty springs
	PenaltyW   float64      // penalty weight

	// dimensions
	Ny int // total number of dofs

	// solution and linear system
	Sol *Solution  // solution state
	Kb  *mat.Dense // Jacobian == dRdy [ny][ny]
	Fb  []float64  // residual == -R
	Wb  []float64  // workspace: corrector δy

	// output
	DirOut  string // directory for output
	Key     string // filename key
	EncType string // "gob" or "json"

	// for divergence control
	bkpSol *Solution // backup solution
}

// NewDomain allocates nodes, elements and equation numbers. All cells of the mesh become elements
func NewDomain(msh *inp.Mesh, edat *ElemData) (o *Domain, err error) {

	// check
	if msh == nil || len(msh.Cells) == 0 {
		return nil, chk.Err("domain needs a mesh with at least one cell")
	}
	if edat.Model == nil {
		return nil, chk.Err("domain needs a material model")
	}
	if edat.Type == "" {
		edat.Type = "u"
	}

	// auxiliary maps for nodes and elements
	o = &Domain{Msh: msh, Edat: edat, EncType: "gob"}
	o.Vid2node = make([]*Node, len(msh.Verts))
	o.Cid2elem = make([]Elem, len(msh.Cells))

	// for each cell
	var eq int // current equation number => total number of equations @ end of loop
	ukeys := inp.DofKeys[:msh.Ndim]
	for _, cell := range msh.Cells {

		// loop over nodes of this element
		eqs := make([][]int, len(cell.Verts))
		for j, v := range cell.Verts {

			// new or existent node
			nod := o.Vid2node[v]
			if nod == nil {
				nod = NewNode(msh.Verts[v])
				o.Vid2node[v] = nod
				o.Nodes = append(o.Nodes, nod)
			}

			// set DOFs and equation numbers
			for _, ukey := range ukeys {
				eq = nod.AddDofAndEq(ukey, eq)
				eqs[j] = append(eqs[j], nod.GetEq(ukey))
			}
		}

		// new element
		ele, err := NewElem(cell, msh, edat)
		if err != nil {
			return nil, chk.Err("new element failed:\n%v", err)
		}
		err = ele.SetEqs(eqs)
		if err != nil {
			return nil, chk.Err("cannot set element equations:\n%v", err)
		}
		o.Cid2elem[cell.Id] = ele
		o.Elems = append(o.Elems, ele)
		if e, ok := ele.(ElemIntvars); ok {
			o.ElemIntvars = append(o.ElemIntvars, e)
		}
	}

	// solution and linear system
	o.Ny = eq
	o.Sol = &Solution{Y: make([]float64, o.Ny), ΔY: make([]float64, o.Ny)}
	o.Kb = mat.NewDense(o.Ny, o.Ny, nil)
	o.Fb = make([]float64, o.Ny)
	o.Wb = make([]float64, o.Ny)
	o.EssenBcs.Reset()

	// initial values
	for _, e := range o.ElemIntvars {
		err = e.SetIniIvs(o.Sol)
		if err != nil {
			return nil, chk.Err("cannot set initial internal variables:\n%v", err)
		}
	}
	return
}

// SetFaceBcs sets distributed natural boundary conditions (tractions) on faces
func (o *Domain) SetFaceBcs(bcs []*inp.FaceBc) (err error) {
	for _, bc := range bcs {
		pairs, ok := o.Msh.FaceTag2cells[bc.Tag]
		if !ok {
			return chk.Err("cannot find faces with tag = %d to assign traction %q", bc.Tag, bc.Key)
		}
		for _, pair := range pairs {
			err = o.Cid2elem[pair.C.Id].SetNatBc(bc.Key, pair.Fid, bc.Fcn)
			if err != nil {
				return chk.Err("cannot set traction %q on face tag %d:\n%v", bc.Key, bc.Tag, err)
			}
		}
	}
	return
}

// SetEssenBcs (re)sets all prescribed displacements
func (o *Domain) SetEssenBcs(bcs []*inp.DofBc) (err error) {
	o.EssenBcs.Reset()
	for _, bc := range bcs {
		eqs, err := o.Eqs(bc.At, bc.Key)
		if err != nil {
			return chk.Err("setting of essential boundary conditions failed:\n%v", err)
		}
		err = o.EssenBcs.Set(io.Sf("%s@%d", bc.Key, bc.At.Tag), eqs, bc.Fcn)
		if err != nil {
			return err
		}
	}
	return
}

// SetPtLoads (re)sets all concentrated forces. names must have the same length as loads
func (o *Domain) SetPtLoads(loads []*inp.PtLoad, names []string) (err error) {
	if len(names) != len(loads) {
		return chk.Err("number of names (%d) must be equal to the number of point loads (%d)", len(names), len(loads))
	}
	o.PtNatBcs.Reset()
	for i, load := range loads {
		if load.Dir < 0 || load.Dir >= o.Msh.Ndim {
			return chk.Err("direction %d of point load %q is invalid in %dD", load.Dir, names[i], o.Msh.Ndim)
		}
		eqs, err := o.Eqs(load.At, inp.DofKeys[load.Dir])
		if err != nil {
			return chk.Err("setting of point loads failed:\n%v", err)
		}
		for _, eq := range eqs {
			err = o.PtNatBcs.Set(names[i], eq, load.Fcn)
			if err != nil {
				return err
			}
		}
	}
	return
}

// SetPenalty sets penalty springs with weight w at equations eqs
func (o *Domain) SetPenalty(eqs []int, w float64) (err error) {
	for _, eq := range eqs {
		if eq < 0 || eq >= o.Ny {
			return chk.Err("penalty equation %d is out of range [0, %d)", eq, o.Ny)
		}
	}
	if len(eqs) > 0 && w <= 0 {
		return chk.Err("penalty weight must be positive. w = %g is invalid", w)
	}
	o.PenaltyEqs = append([]int{}, eqs...)
	o.PenaltyW = w
	return
}

// SetModel replaces the material model of all elements keeping internal variables
func (o *Domain) SetModel(mdl msolid.Model) (err error) {
	for _, e := range o.ElemIntvars {
		err = e.SetModel(mdl)
		if err != nil {
			return
		}
	}
	o.Edat.Model = mdl
	return
}

// Eqs returns the equations of dof key at the vertices of a location
func (o *Domain) Eqs(at inp.Location, key string) (eqs []int, err error) {
	verts, err := at.Verts(o.Msh)
	if err != nil {
		return
	}
	for _, vid := range verts {
		nod := o.Vid2node[vid]
		if nod == nil {
			return nil, chk.Err("vertex %d at %v has no node", vid, at)
		}
		eq := nod.GetEq(key)
		if eq < 0 {
			return nil, chk.Err("node %d at %v does not have dof %q", vid, at, key)
		}
		eqs = append(eqs, eq)
	}
	return
}

// CalcFb computes fb = fext - fint, including point loads and penalty springs, at the current state
func (o *Domain) CalcFb() (err error) {
	for i := range o.Fb {
		o.Fb[i] = 0
	}
	for _, e := range o.Elems {
		err = e.AddToRhs(o.Fb, o.Sol)
		if err != nil {
			return
		}
	}
	o.PtNatBcs.AddToRhs(o.Fb, o.Sol.T)
	for _, eq := range o.PenaltyEqs {
		o.Fb[eq] -= o.PenaltyW * o.Sol.Y[eq]
	}
	return
}

// CalcKb computes the Jacobian matrix, including penalty springs, at the current state
func (o *Domain) CalcKb(firstIt bool) (err error) {
	o.Kb.Zero()
	for _, e := range o.Elems {
		err = e.AddToKb(o.Kb, o.Sol, firstIt)
		if err != nil {
			return
		}
	}
	for _, eq := range o.PenaltyEqs {
		o.Kb.Set(eq, eq, o.Kb.At(eq, eq)+o.PenaltyW)
	}
	return
}

// Reactions returns the reaction forces (fint - fext) at the given equations
func (o *Domain) Reactions(eqs []int) (r []float64, err error) {
	err = o.CalcFb()
	if err != nil {
		return
	}
	r = make([]float64, len(eqs))
	for i, eq := range eqs {
		r[i] = -o.Fb[eq]
	}
	return
}

// backup saves a copy of solution and internal variables
func (o *Domain) backup() (err error) {
	if o.bkpSol == nil {
		o.bkpSol = &Solution{Y: make([]float64, o.Ny), ΔY: make([]float64, o.Ny)}
	}
	o.bkpSol.T = o.Sol.T
	copy(o.bkpSol.Y, o.Sol.Y)
	copy(o.bkpSol.ΔY, o.Sol.ΔY)
	for _, e := range o.ElemIntvars {
		err = e.BackupIvs(true)
		if err != nil {
			return
		}
	}
	return
}

// restore restores solution and internal variables
func (o *Domain) restore() (err error) {
	o.Sol.T = o.bkpSol.T
	copy(o.Sol.Y, o.bkpSol.Y)
	copy(o.Sol.ΔY, o.bkpSol.ΔY)
	for _, e := range o.ElemIntvars {
		err = e.RestoreIvs(true)
		if err != nil {
			return
		}
	}
	return
}
