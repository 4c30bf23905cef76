// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/benjaminknopp/FEniQS/inp"
	"github.com/cpmech/gosl/io"
)

// Dof holds information about a degree-of-freedom == solution variable
type Dof struct {
	Key string // primary variable key; e.g. "ux"
	Eq  int    // equation number
}

// Node holds node dofs information
type Node struct {
	Vert *inp.Vert // pointer to Vertex
	Dofs []*Dof    // dofs
}

// NewNode allocates a new Node
func NewNode(v *inp.Vert) *Node {
	return &Node{Vert: v}
}

// AddDofAndEq adds a new dof and equation number if not existent. Returns the next equation number
func (o *Node) AddDofAndEq(ukey string, eqnum int) (nexteq int) {
	if o.GetEq(ukey) >= 0 {
		return eqnum
	}
	o.Dofs = append(o.Dofs, &Dof{ukey, eqnum})
	return eqnum + 1
}

// GetDof returns the Dof structure for given Dof name (ukey)
//  Note: returns nil if not found
func (o *Node) GetDof(ukey string) *Dof {
	for _, d := range o.Dofs {
		if d.Key == ukey {
			return d
		}
	}
	return nil
}

// GetEq returns equation number for given Dof name (ukey)
//  Note: returns -1 if not found
func (o *Node) GetEq(ukey string) (eqnum int) {
	if d := o.GetDof(ukey); d != nil {
		return d.Eq
	}
	return -1
}

// String returns a representation of Node
func (o *Node) String() string {
	l := io.Sf("{\"vid\":%d, \"dofs\":[", o.Vert.Id)
	for i, d := range o.Dofs {
		if i > 0 {
			l += ", "
		}
		l += io.Sf("{%q:%d}", d.Key, d.Eq)
	}
	return l + "]}"
}
