// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// EssentialBc holds information about one prescribed equation
type EssentialBc struct {
	Name string // name of the condition that prescribed this equation; e.g. "ux@face-13"
	Eq   int    // equation number
	Fcn  dbf.T  // prescribed value; nil => zero
}

// EssentialBcs implements prescribed values at equations. The equations are eliminated
// from the global system
type EssentialBcs struct {
	Bcs    []*EssentialBc // all prescribed equations
	eq2idx map[int]int    // equation => index in Bcs
}

// Reset clears all conditions
func (o *EssentialBcs) Reset() {
	o.Bcs = nil
	o.eq2idx = make(map[int]int)
}

// Set prescribes the equations eqs. An equation already prescribed is replaced
func (o *EssentialBcs) Set(name string, eqs []int, fcn dbf.T) (err error) {
	if len(eqs) == 0 {
		return chk.Err("essential boundary condition %q has no equations", name)
	}
	if o.eq2idx == nil {
		o.eq2idx = make(map[int]int)
	}
	for _, eq := range eqs {
		if eq < 0 {
			return chk.Err("essential boundary condition %q has an invalid equation %d", name, eq)
		}
		bc := &EssentialBc{name, eq, fcn}
		if idx, ok := o.eq2idx[eq]; ok {
			o.Bcs[idx] = bc
			continue
		}
		o.eq2idx[eq] = len(o.Bcs)
		o.Bcs = append(o.Bcs, bc)
	}
	return
}

// Has tells whether equation eq is prescribed
func (o *EssentialBcs) Has(eq int) bool {
	_, ok := o.eq2idx[eq]
	return ok
}

// Value returns the prescribed value of equation eq at time t
func (o *EssentialBcs) Value(eq int, t float64) float64 {
	idx, ok := o.eq2idx[eq]
	if !ok || o.Bcs[idx].Fcn == nil {
		return 0
	}
	return o.Bcs[idx].Fcn.F(t, nil)
}

// Eqs returns the sorted list of prescribed equations
func (o *EssentialBcs) Eqs() (eqs []int) {
	for _, bc := range o.Bcs {
		eqs = append(eqs, bc.Eq)
	}
	sort.Ints(eqs)
	return
}

// List returns a representation of all conditions at time t
func (o *EssentialBcs) List(t float64) (l string) {
	l = "\n==================================================================\n"
	l += io.Sf("%20s%8s%20s\n", "name", "eq", "value @ t")
	l += "------------------------------------------------------------------\n"
	for _, bc := range o.Bcs {
		v := 0.0
		if bc.Fcn != nil {
			v = bc.Fcn.F(t, nil)
		}
		l += io.Sf("%20s%8d%20g\n", bc.Name, bc.Eq, v)
	}
	l += "==================================================================\n"
	return
}

// PtNaturalBc holds information on point natural boundary conditions such as prescribed forces at nodes
type PtNaturalBc struct {
	Name string // name of the load; e.g. "f_concentrated_0_1"
	Eq   int    // equation number
	Fcn  dbf.T  // force
}

// PtNaturalBcs is a set of point natural boundary conditions
type PtNaturalBcs struct {
	Bcs []*PtNaturalBc
}

// Reset clears all conditions
func (o *PtNaturalBcs) Reset() {
	o.Bcs = nil
}

// Set adds a point load to equation eq
func (o *PtNaturalBcs) Set(name string, eq int, fcn dbf.T) (err error) {
	if eq < 0 {
		return chk.Err("point load %q has an invalid equation %d", name, eq)
	}
	if fcn == nil {
		return chk.Err("point load %q must have a function", name)
	}
	o.Bcs = append(o.Bcs, &PtNaturalBc{name, eq, fcn})
	return
}

// AddToRhs adds the point loads to fb (external forces)
func (o *PtNaturalBcs) AddToRhs(fb []float64, t float64) {
	for _, bc := range o.Bcs {
		fb[bc.Eq] += bc.Fcn.F(t, nil)
	}
}
