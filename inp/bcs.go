// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// Location identifies a set of vertices of a mesh:
//  the vertices on a tagged face (OnVert == false) or the vertices with a tag (OnVert == true)
type Location struct {
	Tag    int  `json:"tag" yaml:"tag"`       // face tag or vertex tag
	OnVert bool `json:"onvert" yaml:"onvert"` // Tag is a vertex tag
}

// Verts returns the ids of the vertices at this location
func (o Location) Verts(msh *Mesh) (verts []int, err error) {
	if o.OnVert {
		for _, v := range msh.VertTag2verts[o.Tag] {
			verts = append(verts, v.Id)
		}
	} else {
		verts = msh.FaceTag2verts[o.Tag]
	}
	if len(verts) == 0 {
		return nil, chk.Err("cannot find vertices at %v", o)
	}
	return
}

// String returns a representation of Location
func (o Location) String() string {
	if o.OnVert {
		return io.Sf("vertex tag %d", o.Tag)
	}
	return io.Sf("face tag %d", o.Tag)
}

// DofBc holds an essential boundary condition: the dof Key (e.g. "ux") of
// all vertices at a location is prescribed
type DofBc struct {
	At  Location // where
	Key string   // "ux", "uy" or "uz"
	Fcn dbf.T    // prescribed value; nil => homogeneous (zero)
}

// Hom tells whether this boundary condition is homogeneous
func (o *DofBc) Hom() bool { return o.Fcn == nil }

// FaceBc holds a distributed natural boundary condition (traction) on a tagged face
type FaceBc struct {
	Tag int    // face tag
	Key string // "qn" (normal; positive outwards), "tx", "ty" or "tz"
	Fcn dbf.T  // value of traction
}

// PtLoad holds a concentrated force applied to the vertices at a location
type PtLoad struct {
	At  Location // where
	Dir int      // direction: 0, 1 or 2
	Fcn dbf.T    // value of force
}

// DofKeys holds the names of displacement dofs
var DofKeys = []string{"ux", "uy", "uz"}

// DofKeyIndex returns the direction of a displacement key; e.g. "uy" => 1. Returns -1 if invalid
func DofKeyIndex(key string) int {
	for i, k := range DofKeys {
		if k == key {
			return i
		}
	}
	return -1
}

// IsConstant tells whether a function does not depend on time
func IsConstant(f dbf.T) bool {
	_, ok := f.(*dbf.Cte)
	return ok
}

// Cte returns a constant function
func Cte(c float64) dbf.T {
	return &dbf.Cte{C: c}
}

// Ramp returns a function growing linearly from zero at t = 0 to vmax at t = tmax
func Ramp(vmax, tmax float64) (dbf.T, error) {
	if tmax <= 0 {
		return nil, chk.Err("ramp needs a positive time. tmax = %g is invalid", tmax)
	}
	return newFcn("lin", dbf.Params{
		&dbf.P{N: "m", V: vmax / tmax},
		&dbf.P{N: "ts", V: 0},
	})
}

// Scale returns a function equal to a f(t)
func Scale(f dbf.T, a float64) (dbf.T, error) {
	if f == nil {
		return nil, chk.Err("cannot scale a nil function")
	}
	if IsConstant(f) {
		return Cte(a * f.F(0, nil)), nil
	}
	return newFcn("mul", dbf.Params{
		&dbf.P{N: "fa", Fcn: f},
		&dbf.P{N: "fb", Fcn: Cte(a)},
	})
}
