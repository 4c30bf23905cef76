// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements shape structures/routines
package shp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/mat"
)

// constants
const MINDET = 1.0e-14 // minimum determinant allowed for dxdR

// ShpFunc is the shape functions callback function
type ShpFunc func(S []float64, dSdR [][]float64, r []float64, derivs bool)

// Ipoint holds the natural coordinates and the weight of an integration point: {r, s, t, w}
type Ipoint []float64

// Shape holds geometry data
type Shape struct {

	// geometry
	Type           string      // name; e.g. "lin2"
	Func           ShpFunc     // shape/derivs function callback function
	FaceType       string      // geometry of face; e.g. "qua8" => "lin3"
	Gndim          int         // geometry of shape; e.g. "lin3" => gnd == 1
	Nverts         int         // number of vertices in cell; e.g. "qua8" => 8
	VtkCode        int         // VTK code
	FaceNvertsMax  int         // max number of vertices on face
	FaceLocalVerts [][]int     // face local vertices [nfaces][...]
	NatCoords      [][]float64 // natural coordinates [gndim][nverts]

	// scratchpad: volume
	S    []float64   // [nverts] shape functions
	G    [][]float64 // [nverts][gndim] G == dSdx. derivative of shape function
	J    float64     // Jacobian: determinant of dxdr
	DSdR [][]float64 // [nverts][gndim] derivatives of S w.r.t natural coordinates
	DxdR *mat.Dense  // [gndim][gndim] derivatives of real coordinates w.r.t natural coordinates
	DRdx *mat.Dense  // [gndim][gndim] dRdx == inverse(dxdR)

	// scratchpad: face
	Sf     []float64   // [FaceNvertsMax] shape functions values
	Fnvec  []float64   // [gndim] face normal vector multiplied by Jf
	DSfdRf [][]float64 // [FaceNvertsMax][gndim-1] derivatives of Sf w.r.t natural coordinates
	DxfdRf [][]float64 // [gndim][gndim-1] derivatives of real coordinates w.r.t natural coordinates
}

// GetCopy returns a new copy of this shape structure (geometry only; fresh scratchpad)
func (o Shape) GetCopy() *Shape {
	p := &Shape{
		Type:          o.Type,
		Func:          o.Func,
		FaceType:      o.FaceType,
		Gndim:         o.Gndim,
		Nverts:        o.Nverts,
		VtkCode:       o.VtkCode,
		FaceNvertsMax: o.FaceNvertsMax,
	}
	p.FaceLocalVerts = make([][]int, len(o.FaceLocalVerts))
	for i, verts := range o.FaceLocalVerts {
		p.FaceLocalVerts[i] = append([]int{}, verts...)
	}
	p.NatCoords = utl.Alloc(len(o.NatCoords), o.Nverts)
	for i := range o.NatCoords {
		copy(p.NatCoords[i], o.NatCoords[i])
	}
	p.init_scratchpad()
	return p
}

// factory holds all Shapes available
var factory = make(map[string]*Shape)

// register adds a new shape to the factory
func register(o *Shape) {
	o.init_scratchpad()
	factory[o.Type] = o
}

// Get returns an existent Shape structure
//  Note: 1) returns nil on errors
//        2) use goroutineId > 0 to get a copy
func Get(geoType string, goroutineId int) *Shape {
	s, ok := factory[geoType]
	if !ok {
		return nil
	}
	if goroutineId > 0 {
		return s.GetCopy()
	}
	return s
}

// GetVtkCode returns the VTK code of a geometry type or -1 if not available
func GetVtkCode(geoType string) int {
	if s, ok := factory[geoType]; ok {
		return s.VtkCode
	}
	return -1
}

// IpRealCoords returns the real coordinates (y) of an integration point
func (o *Shape) IpRealCoords(x [][]float64, ip Ipoint) (y []float64) {
	ndim := len(x)
	y = make([]float64, ndim)
	o.Func(o.S, o.DSdR, ip, false)
	for i := 0; i < ndim; i++ {
		for m := 0; m < o.Nverts; m++ {
			y[i] += o.S[m] * x[i][m]
		}
	}
	return
}

// FaceIpRealCoords returns the real coordinates (y) of an integration point @ face
func (o *Shape) FaceIpRealCoords(x [][]float64, ipf Ipoint, idxface int) (y []float64) {
	ndim := len(x)
	y = make([]float64, ndim)
	o.faceFunc(ipf, false, idxface)
	for i := 0; i < ndim; i++ {
		for k, n := range o.FaceLocalVerts[idxface] {
			y[i] += o.Sf[k] * x[i][n]
		}
	}
	return
}

// CalcAtIp calculates volume data such as S and G at natural coordinate r
//  Input:
//   x[ndim][nverts] -- coordinates matrix of solid element
//   ip              -- integration point
//  Output:
//   S, DSdR, DxdR, DRdx, G, and J
func (o *Shape) CalcAtIp(x [][]float64, ip Ipoint, derivs bool) (err error) {

	// S and dSdR
	o.Func(o.S, o.DSdR, ip, derivs)
	if !derivs {
		return
	}
	if len(x) != o.Gndim {
		return chk.Err("space dimension (%d) must be equal to the dimension of shape %q (%d)", len(x), o.Type, o.Gndim)
	}

	// dxdR := sum_n x * dSdR   =>  dx_i/dR_j := sum_n x^n_i * dS^n/dR_j
	for i := 0; i < o.Gndim; i++ {
		for j := 0; j < o.Gndim; j++ {
			v := 0.0
			for n := 0; n < o.Nverts; n++ {
				v += x[i][n] * o.DSdR[n][j]
			}
			o.DxdR.Set(i, j, v)
		}
	}

	// dRdx := inv(dxdR)
	o.J = mat.Det(o.DxdR)
	if o.J < MINDET {
		return chk.Err("determinant of dxdR is too small or negative: J = %g (shape %q)", o.J, o.Type)
	}
	err = o.DRdx.Inverse(o.DxdR)
	if err != nil {
		return chk.Err("cannot invert dxdR of shape %q:\n%v", o.Type, err)
	}

	// G == dSdx := dSdR * dRdx  =>  dS^m/dx_j := sum_i dS^m/dR_i * dR_i/dx_j
	for m := 0; m < o.Nverts; m++ {
		for j := 0; j < o.Gndim; j++ {
			o.G[m][j] = 0
			for i := 0; i < o.Gndim; i++ {
				o.G[m][j] += o.DSdR[m][i] * o.DRdx.At(i, j)
			}
		}
	}
	return
}

// CalcAtFaceIp calculates face data such as Sf and Fnvec
//  Input:
//   x[ndim][nverts] -- coordinates matrix of solid element
//   ipf             -- local/natural coordinates of face
//   idxface         -- local index of face
//  Output:
//   Sf and Fnvec
func (o *Shape) CalcAtFaceIp(x [][]float64, ipf Ipoint, idxface int) (err error) {

	// check
	if idxface < 0 || idxface >= len(o.FaceLocalVerts) {
		return chk.Err("face index %d is out of range for shape %q", idxface, o.Type)
	}

	// Sf and dSfdR
	o.faceFunc(ipf, true, idxface)

	// 1D: faces are points
	if o.Gndim == 1 {
		if idxface == 0 {
			o.Fnvec[0] = -1
		} else {
			o.Fnvec[0] = 1
		}
		return
	}

	// dxfdRf := sum_n x * dSfdRf   =>  dxf_i/dRf_j := sum_n xf^n_i * dSf^n/dRf_j
	for i := 0; i < len(x); i++ {
		for j := 0; j < o.Gndim-1; j++ {
			o.DxfdRf[i][j] = 0.0
			for k, n := range o.FaceLocalVerts[idxface] {
				o.DxfdRf[i][j] += x[i][n] * o.DSfdRf[k][j]
			}
		}
	}

	// face normal vector
	if o.Gndim == 2 {
		o.Fnvec[0] = o.DxfdRf[1][0]
		o.Fnvec[1] = -o.DxfdRf[0][0]
		return
	}
	o.Fnvec[0] = o.DxfdRf[1][0]*o.DxfdRf[2][1] - o.DxfdRf[2][0]*o.DxfdRf[1][1]
	o.Fnvec[1] = o.DxfdRf[2][0]*o.DxfdRf[0][1] - o.DxfdRf[0][0]*o.DxfdRf[2][1]
	o.Fnvec[2] = o.DxfdRf[0][0]*o.DxfdRf[1][1] - o.DxfdRf[1][0]*o.DxfdRf[0][1]
	return
}

// faceFunc computes Sf (and DSfdRf) @ face
func (o *Shape) faceFunc(ipf Ipoint, derivs bool, idxface int) {
	if o.Gndim == 1 {
		o.Sf[0] = 1
		return
	}
	fshape := factory[o.FaceType]
	fshape.Func(o.Sf, o.DSfdRf, ipf, derivs)
}

// init_scratchpad initialise volume data (scratchpad)
func (o *Shape) init_scratchpad() {

	// volume data
	o.S = make([]float64, o.Nverts)
	o.DSdR = utl.Alloc(o.Nverts, o.Gndim)
	o.DxdR = mat.NewDense(o.Gndim, o.Gndim, nil)
	o.DRdx = mat.NewDense(o.Gndim, o.Gndim, nil)
	o.G = utl.Alloc(o.Nverts, o.Gndim)

	// face data
	o.Fnvec = make([]float64, o.Gndim)
	if o.Gndim == 1 {
		o.Sf = make([]float64, 1)
		return
	}
	o.Sf = make([]float64, o.FaceNvertsMax)
	o.DSfdRf = utl.Alloc(o.FaceNvertsMax, o.Gndim-1)
	o.DxfdRf = utl.Alloc(o.Gndim, o.Gndim-1)
}
