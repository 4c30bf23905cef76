// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"sort"

	"github.com/benjaminknopp/FEniQS/shp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Vert holds vertex data
type Vert struct {
	Id  int       `json:"id"`  // id
	Tag int       `json:"tag"` // tag
	C   []float64 `json:"c"`   // coordinates (size == ndim)
}

// Cell holds cell data
type Cell struct {

	// input data
	Id    int    `json:"id"`    // id
	Tag   int    `json:"tag"`   // tag
	Type  string `json:"type"`  // geometry type; e.g. "qua4"
	Verts []int  `json:"verts"` // vertices
	FTags []int  `json:"ftags"` // face tags (points in 1D, edges in 2D, faces in 3D)

	// derived
	Shp *shp.Shape `json:"-"` // shape structure
}

// CellFaceId structure
type CellFaceId struct {
	C   *Cell // cell
	Fid int   // face id
}

// Mesh holds a mesh for FE analyses
type Mesh struct {

	// from JSON
	Verts []*Vert `json:"verts"` // vertices
	Cells []*Cell `json:"cells"` // cells

	// derived
	FnamePath  string  `json:"-"` // complete filename path
	Ndim       int     `json:"-"` // space dimension
	Xmin, Xmax float64 `json:"-"` // min and max x-coordinate
	Ymin, Ymax float64 `json:"-"` // min and max y-coordinate
	Zmin, Zmax float64 `json:"-"` // min and max z-coordinate

	// derived: maps
	VertTag2verts map[int][]*Vert      `json:"-"` // vertex tag => set of vertices
	CellTag2cells map[int][]*Cell      `json:"-"` // cell tag => set of cells
	FaceTag2cells map[int][]CellFaceId `json:"-"` // face tag => set of cells
	FaceTag2verts map[int][]int        `json:"-"` // face tag => vertices on tagged face
	Ctype2cells   map[string][]*Cell   `json:"-"` // cell type => set of cells
}

// ReadMsh reads a mesh for FE analyses
func ReadMsh(fn string) (o *Mesh, err error) {
	b, err := os.ReadFile(fn)
	if err != nil {
		return nil, chk.Err("cannot read mesh file %q:\n%v", fn, err)
	}
	o = new(Mesh)
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot decode mesh file %q:\n%v", fn, err)
	}
	o.FnamePath = fn
	err = o.Init()
	return
}

// Init checks the mesh and computes derived data
func (o *Mesh) Init() (err error) {

	// check
	if len(o.Verts) < 2 {
		return chk.Err("mesh must have at least 2 vertices; %d found", len(o.Verts))
	}
	if len(o.Cells) < 1 {
		return chk.Err("mesh must have at least 1 cell")
	}

	// vertex related derived data
	o.Ndim = len(o.Verts[0].C)
	if o.Ndim < 1 || o.Ndim > 3 {
		return chk.Err("space dimension must be 1, 2 or 3. ndim = %d is invalid", o.Ndim)
	}
	o.Xmin, o.Xmax = math.Inf(1), math.Inf(-1)
	o.Ymin, o.Ymax = math.Inf(1), math.Inf(-1)
	o.Zmin, o.Zmax = math.Inf(1), math.Inf(-1)
	o.VertTag2verts = make(map[int][]*Vert)
	for i, v := range o.Verts {
		if v.Id != i {
			return chk.Err("vertex ids must be sequential: vertex %d has id %d", i, v.Id)
		}
		if len(v.C) != o.Ndim {
			return chk.Err("vertex %d has %d coordinates; %d expected", v.Id, len(v.C), o.Ndim)
		}
		if v.Tag < 0 {
			o.VertTag2verts[v.Tag] = append(o.VertTag2verts[v.Tag], v)
		}
		o.Xmin, o.Xmax = math.Min(o.Xmin, v.C[0]), math.Max(o.Xmax, v.C[0])
		if o.Ndim > 1 {
			o.Ymin, o.Ymax = math.Min(o.Ymin, v.C[1]), math.Max(o.Ymax, v.C[1])
		}
		if o.Ndim > 2 {
			o.Zmin, o.Zmax = math.Min(o.Zmin, v.C[2]), math.Max(o.Zmax, v.C[2])
		}
	}
	if o.Ndim < 2 {
		o.Ymin, o.Ymax = 0, 0
	}
	if o.Ndim < 3 {
		o.Zmin, o.Zmax = 0, 0
	}

	// cell related derived data
	o.CellTag2cells = make(map[int][]*Cell)
	o.FaceTag2cells = make(map[int][]CellFaceId)
	o.FaceTag2verts = make(map[int][]int)
	o.Ctype2cells = make(map[string][]*Cell)
	for i, c := range o.Cells {
		if c.Id != i {
			return chk.Err("cell ids must be sequential: cell %d has id %d", i, c.Id)
		}
		if c.Tag >= 0 {
			return chk.Err("cell tags must be negative: cell %d has tag %d", c.Id, c.Tag)
		}
		c.Shp = shp.Get(c.Type, 0)
		if c.Shp == nil {
			return chk.Err("cannot find shape %q of cell %d", c.Type, c.Id)
		}
		if c.Shp.Gndim != o.Ndim {
			return chk.Err("cell %d of type %q cannot be used in a %dD mesh", c.Id, c.Type, o.Ndim)
		}
		if len(c.Verts) != c.Shp.Nverts {
			return chk.Err("cell %d of type %q must have %d vertices; %d given", c.Id, c.Type, c.Shp.Nverts, len(c.Verts))
		}
		for _, v := range c.Verts {
			if v < 0 || v >= len(o.Verts) {
				return chk.Err("cell %d refers to vertex %d which does not exist", c.Id, v)
			}
		}
		o.CellTag2cells[c.Tag] = append(o.CellTag2cells[c.Tag], c)
		o.Ctype2cells[c.Type] = append(o.Ctype2cells[c.Type], c)
		for j, ftag := range c.FTags {
			if ftag >= 0 {
				continue
			}
			if j >= len(c.Shp.FaceLocalVerts) {
				return chk.Err("cell %d has %d face tags but shape %q has %d faces", c.Id, len(c.FTags), c.Type, len(c.Shp.FaceLocalVerts))
			}
			o.FaceTag2cells[ftag] = append(o.FaceTag2cells[ftag], CellFaceId{c, j})
			for _, l := range c.Shp.FaceLocalVerts[j] {
				o.FaceTag2verts[ftag] = append(o.FaceTag2verts[ftag], c.Verts[l])
			}
		}
	}

	// remove duplicates
	for ftag, verts := range o.FaceTag2verts {
		o.FaceTag2verts[ftag] = intUnique(verts)
	}
	return
}

// FindVert finds the vertex closest to x within tolerance tol. Returns nil if none
func (o *Mesh) FindVert(x []float64, tol float64) *Vert {
	var res *Vert
	dmin := tol
	for _, v := range o.Verts {
		d := 0.0
		for i := 0; i < o.Ndim && i < len(x); i++ {
			d += (v.C[i] - x[i]) * (v.C[i] - x[i])
		}
		d = math.Sqrt(d)
		if d <= dmin {
			res, dmin = v, d
		}
	}
	return res
}

// CellCoords returns the coordinates matrix x[ndim][nverts] of a cell
func (o *Mesh) CellCoords(c *Cell) (x [][]float64) {
	x = make([][]float64, o.Ndim)
	for i := 0; i < o.Ndim; i++ {
		x[i] = make([]float64, len(c.Verts))
		for j, v := range c.Verts {
			x[i][j] = o.Verts[v].C[i]
		}
	}
	return
}

// WriteMsh writes the mesh to a JSON file
func (o *Mesh) WriteMsh(dirout, fnkey string) {
	var buf bytes.Buffer
	io.Ff(&buf, "%v\n", o)
	io.WriteFileD(dirout, fnkey+".msh", &buf)
}

// intUnique returns the sorted unique values of a slice
func intUnique(a []int) (res []int) {
	b := append([]int{}, a...)
	sort.Ints(b)
	for i, v := range b {
		if i == 0 || v != b[i-1] {
			res = append(res, v)
		}
	}
	return
}

// String returns a JSON representation of *Vert
func (o *Vert) String() string {
	l := io.Sf("{\"id\":%4d, \"tag\":%6d, \"c\":[", o.Id, o.Tag)
	for i, x := range o.C {
		if i > 0 {
			l += ", "
		}
		l += io.Sf("%23.15e", x)
	}
	l += "] }"
	return l
}

// String returns a JSON representation of *Cell
func (o *Cell) String() string {
	l := io.Sf("{\"id\":%d, \"tag\":%d, \"type\":%q, \"verts\":[", o.Id, o.Tag, o.Type)
	for i, x := range o.Verts {
		if i > 0 {
			l += ", "
		}
		l += io.Sf("%d", x)
	}
	l += "], \"ftags\":["
	for i, x := range o.FTags {
		if i > 0 {
			l += ", "
		}
		l += io.Sf("%d", x)
	}
	l += "] }"
	return l
}

// String returns a JSON representation of *Mesh
func (o Mesh) String() string {
	l := "{\n  \"verts\" : [\n"
	for i, x := range o.Verts {
		if i > 0 {
			l += ",\n"
		}
		l += io.Sf("    %v", x)
	}
	l += "\n  ],\n  \"cells\" : [\n"
	for i, x := range o.Cells {
		if i > 0 {
			l += ",\n"
		}
		l += io.Sf("    %v", x)
	}
	l += "\n  ]\n}"
	return l
}
