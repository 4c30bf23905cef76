// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"bytes"

	"github.com/benjaminknopp/FEniQS/inp"
	"github.com/benjaminknopp/FEniQS/shp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Field holds values to be written to VTU files
type Field struct {
	Name  string      // name of field; e.g. "u"
	Ncomp int         // number of components
	Vals  [][]float64 // [nitems][ncomp] values at vertices (point data) or cells (cell data)
}

// WriteMeshVtu writes the mesh (with ids and tags) to <dirout>/<fnkey>.vtu
func WriteMeshVtu(msh *inp.Mesh, dirout, fnkey string) (err error) {
	return WriteVtu(msh, dirout, fnkey, nil, nil)
}

// WriteVtu writes a VTU file with the mesh and point and cell fields
func WriteVtu(msh *inp.Mesh, dirout, fnkey string, pfields, cfields []*Field) (err error) {
	var geo, dat bytes.Buffer
	err = topology(&geo, msh)
	if err != nil {
		return
	}
	err = pdataWrite(&dat, msh, pfields)
	if err != nil {
		return
	}
	err = cdataWrite(&dat, msh, cfields)
	if err != nil {
		return
	}
	var hdr, foo bytes.Buffer
	io.Ff(&hdr, "<?xml version=\"1.0\"?>\n<VTKFile type=\"UnstructuredGrid\" version=\"0.1\" byte_order=\"LittleEndian\">\n<UnstructuredGrid>\n")
	io.Ff(&hdr, "<Piece NumberOfPoints=\"%d\" NumberOfCells=\"%d\">\n", len(msh.Verts), len(msh.Cells))
	io.Ff(&foo, "</Piece>\n</UnstructuredGrid>\n</VTKFile>\n")
	io.WriteFileD(dirout, fnkey+".vtu", &hdr, &geo, &dat, &foo)
	return
}

// topology writes coordinates and connectivities
func topology(buf *bytes.Buffer, msh *inp.Mesh) (err error) {

	// coordinates
	io.Ff(buf, "<Points>\n<DataArray type=\"Float64\" NumberOfComponents=\"3\" format=\"ascii\">\n")
	for _, v := range msh.Verts {
		var x [3]float64
		copy(x[:], v.C)
		io.Ff(buf, "%23.15e %23.15e %23.15e ", x[0], x[1], x[2])
	}
	io.Ff(buf, "\n</DataArray>\n</Points>\n")

	// connectivities
	io.Ff(buf, "<Cells>\n<DataArray type=\"Int32\" Name=\"connectivity\" format=\"ascii\">\n")
	for _, c := range msh.Cells {
		for _, v := range c.Verts {
			io.Ff(buf, "%d ", v)
		}
	}

	// offsets
	io.Ff(buf, "\n</DataArray>\n<DataArray type=\"Int32\" Name=\"offsets\" format=\"ascii\">\n")
	var offset int
	for _, c := range msh.Cells {
		offset += len(c.Verts)
		io.Ff(buf, "%d ", offset)
	}

	// types
	io.Ff(buf, "\n</DataArray>\n<DataArray type=\"UInt8\" Name=\"types\" format=\"ascii\">\n")
	for _, c := range msh.Cells {
		vtkcode := shp.GetVtkCode(c.Type)
		if vtkcode < 0 {
			return chk.Err("cannot handle cell type %q", c.Type)
		}
		io.Ff(buf, "%d ", vtkcode)
	}
	io.Ff(buf, "\n</DataArray>\n</Cells>\n")
	return
}

// pdataWrite writes ids and tags of vertices followed by point fields
func pdataWrite(buf *bytes.Buffer, msh *inp.Mesh, fields []*Field) (err error) {
	io.Ff(buf, "<PointData Scalars=\"TheScalars\">\n")
	io.Ff(buf, "<DataArray type=\"Int32\" Name=\"nid\" NumberOfComponents=\"1\" format=\"ascii\">\n")
	for _, v := range msh.Verts {
		io.Ff(buf, "%d ", v.Id)
	}
	io.Ff(buf, "\n</DataArray>\n<DataArray type=\"Int32\" Name=\"tag\" NumberOfComponents=\"1\" format=\"ascii\">\n")
	for _, v := range msh.Verts {
		io.Ff(buf, "%d ", iabs(v.Tag))
	}
	io.Ff(buf, "\n</DataArray>\n")
	err = fieldsWrite(buf, fields, len(msh.Verts))
	io.Ff(buf, "</PointData>\n")
	return
}

// cdataWrite writes ids and tags of cells followed by cell fields
func cdataWrite(buf *bytes.Buffer, msh *inp.Mesh, fields []*Field) (err error) {
	io.Ff(buf, "<CellData Scalars=\"TheScalars\">\n")
	io.Ff(buf, "<DataArray type=\"Int32\" Name=\"eid\" NumberOfComponents=\"1\" format=\"ascii\">\n")
	for _, c := range msh.Cells {
		io.Ff(buf, "%d ", c.Id)
	}
	io.Ff(buf, "\n</DataArray>\n<DataArray type=\"Int32\" Name=\"tag\" NumberOfComponents=\"1\" format=\"ascii\">\n")
	for _, c := range msh.Cells {
		io.Ff(buf, "%d ", iabs(c.Tag))
	}
	io.Ff(buf, "\n</DataArray>\n")
	err = fieldsWrite(buf, fields, len(msh.Cells))
	io.Ff(buf, "</CellData>\n")
	return
}

func fieldsWrite(buf *bytes.Buffer, fields []*Field, nitems int) error {
	for _, f := range fields {
		if len(f.Vals) != nitems {
			return chk.Err("field %q has %d items but %d are required", f.Name, len(f.Vals), nitems)
		}
		io.Ff(buf, "<DataArray type=\"Float64\" Name=\"%s\" NumberOfComponents=\"%d\" format=\"ascii\">\n", f.Name, f.Ncomp)
		for _, vals := range f.Vals {
			for j := 0; j < f.Ncomp; j++ {
				var v float64
				if j < len(vals) {
					v = vals[j]
				}
				io.Ff(buf, "%g ", v)
			}
		}
		io.Ff(buf, "\n</DataArray>\n")
	}
	return nil
}

func iabs(val int) int {
	if val < 0 {
		return -val
	}
	return val
}
