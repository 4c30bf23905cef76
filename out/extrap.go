// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"github.com/benjaminknopp/FEniQS/fem"
	"github.com/benjaminknopp/FEniQS/shp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// nipvals is the number of values projected from integration points: σ (Mandel) and κ
const nipvals = 7

// ipValues returns the values of all integration points of an element [nip][nipvals]
func ipValues(ele fem.Elem) (vals [][]float64) {
	dat := ele.OutIpsData()
	vals = utl.Alloc(len(dat), nipvals)
	for i, d := range dat {
		copy(vals[i], d.Sig)
		vals[i][6] = d.Kappa
	}
	return
}

// cellAverages computes the averages of ip values in each cell (DG degree 0) [ncells][nipvals]
func cellAverages(dom *fem.Domain) (res [][]float64) {
	res = utl.Alloc(len(dom.Msh.Cells), nipvals)
	for cid, ele := range dom.Cid2elem {
		if ele == nil {
			continue
		}
		vals := ipValues(ele)
		if len(vals) == 0 {
			continue
		}
		for _, v := range vals {
			for k := 0; k < nipvals; k++ {
				res[cid][k] += v[k]
			}
		}
		for k := 0; k < nipvals; k++ {
			res[cid][k] /= float64(len(vals))
		}
	}
	return
}

// extrapolate extrapolates ip values to vertices and averages them over the cells sharing
// each vertex (DG degree 1, smoothed) [nverts][nipvals]
func extrapolate(dom *fem.Domain) (res [][]float64, err error) {

	// allocate structures for extrapolation
	nverts := len(dom.Msh.Verts)
	res = utl.Alloc(nverts, nipvals)
	counts := make([]float64, nverts)

	// loop over elements
	for _, ele := range dom.Elems {

		// get shape and integration points from known elements
		var sha *shp.Shape
		var ips []shp.Ipoint
		switch e := ele.(type) {
		case *fem.ElemU:
			sha = e.Shp
			ips = e.IpsElem
		}
		if sha == nil {
			return nil, chk.Err("cannot get shape structure from element %d", ele.Id())
		}

		// compute Extrapolator matrix
		E, err := sha.Extrapolator(ips)
		if err != nil {
			return nil, chk.Err("cannot compute extrapolator matrix of element %d:\n%v", ele.Id(), err)
		}

		// perform extrapolation
		vals := ipValues(ele)
		cell := dom.Msh.Cells[ele.Id()]
		for i := 0; i < sha.Nverts; i++ {
			v := cell.Verts[i]
			for j := 0; j < len(ips); j++ {
				for k := 0; k < nipvals; k++ {
					res[v][k] += E.At(i, j) * vals[j][k]
				}
			}
			counts[v]++
		}
	}

	// compute average
	for i := 0; i < nverts; i++ {
		if counts[i] > 0 {
			for k := 0; k < nipvals; k++ {
				res[i][k] /= counts[i]
			}
		}
	}
	return
}

// split splits projected values into stresses [n][6] and κ [n][1]
func split(vals [][]float64) (sig, kap [][]float64) {
	sig = make([][]float64, len(vals))
	kap = make([][]float64, len(vals))
	for i, v := range vals {
		sig[i] = v[:6]
		kap[i] = v[6:]
	}
	return
}
