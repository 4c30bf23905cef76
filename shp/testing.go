// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/diff/fd"
)

// CheckShape checks that shape functions evaluate to 1.0 @ nodes
func CheckShape(tst *testing.T, shape *Shape, tol float64, verbose bool) {

	// loop over all vertices
	errS := 0.0
	r := []float64{0, 0, 0}
	for n := 0; n < shape.Nverts; n++ {

		// natural coordinates @ vertex
		for i := 0; i < shape.Gndim; i++ {
			r[i] = shape.NatCoords[i][n]
		}

		// compute function
		shape.Func(shape.S, shape.DSdR, r, false)

		// check
		if verbose {
			io.Pf("S = %v\n", shape.S)
		}
		for m := 0; m < shape.Nverts; m++ {
			if n == m {
				errS += math.Abs(shape.S[m] - 1.0)
			} else {
				errS += math.Abs(shape.S[m])
			}
		}
	}

	// error
	if errS > tol {
		tst.Errorf("%s failed with err = %g\n", shape.Type, errS)
		return
	}
}

// CheckShapeFace checks that face shape functions evaluate to 1.0 @ face nodes
func CheckShapeFace(tst *testing.T, shape *Shape, tol float64, verbose bool) {

	// skip 1D shapes
	if shape.Gndim == 1 {
		return
	}
	fshape := factory[shape.FaceType]

	// loop over face vertices
	errS := 0.0
	r := []float64{0, 0, 0}
	for k := range shape.FaceLocalVerts {
		for j := range shape.FaceLocalVerts[k] {

			// natural coordinates of face @ vertex
			for i := 0; i < fshape.Gndim; i++ {
				r[i] = fshape.NatCoords[i][j]
			}

			// compute function
			shape.faceFunc(r, false, k)

			// check
			if verbose {
				io.Pforan("Sf = %v\n", shape.Sf)
			}
			for m := range shape.FaceLocalVerts[k] {
				if j == m {
					errS += math.Abs(shape.Sf[m] - 1.0)
				} else {
					errS += math.Abs(shape.Sf[m])
				}
			}
		}
	}

	// error
	if errS > tol {
		tst.Errorf("%s failed with err = %g\n", shape.Type, errS)
		return
	}
}

// CheckDSdR checks dSdR derivatives of shape structures
func CheckDSdR(tst *testing.T, shape *Shape, r []float64, tol float64, verbose bool) {

	// auxiliary
	r_tmp := make([]float64, len(r))
	S_tmp := make([]float64, shape.Nverts)

	// analytical
	shape.Func(shape.S, shape.DSdR, r, true)

	// numerical
	for n := 0; n < shape.Nverts; n++ {
		for i := 0; i < shape.Gndim; i++ {
			dSndRi := fd.Derivative(func(t float64) float64 {
				copy(r_tmp, r)
				r_tmp[i] = t
				shape.Func(S_tmp, nil, r_tmp, false)
				return S_tmp[n]
			}, r[i], &fd.Settings{Formula: fd.Central})
			if verbose {
				io.Pf("  dS%ddR%d @ %5.2f = %v (num: %v)\n", n, i, r, shape.DSdR[n][i], dSndRi)
			}
			if math.Abs(shape.DSdR[n][i]-dSndRi) > tol {
				tst.Errorf("%s: dS%ddR%d failed with err = %g\n", shape.Type, n, i, math.Abs(shape.DSdR[n][i]-dSndRi))
				return
			}
		}
	}
}

// CheckDSdx checks G=dSdx derivatives of shape structures
func CheckDSdx(tst *testing.T, shape *Shape, xmat [][]float64, x []float64, tol float64, verbose bool) {

	// find r corresponding to x
	r := make([]float64, 3)
	err := shape.InvMap(r, x, xmat)
	if err != nil {
		tst.Errorf("InvMap failed:\n%v", err)
		return
	}

	// analytical
	err = shape.CalcAtIp(xmat, r, true)
	if err != nil {
		tst.Errorf("CalcAtIp failed:\n%v", err)
		return
	}
	G := make([][]float64, shape.Nverts)
	for n := range G {
		G[n] = append([]float64{}, shape.G[n]...)
	}

	// numerical
	x_tmp := make([]float64, len(x))
	r_tmp := make([]float64, 3)
	for n := 0; n < shape.Nverts; n++ {
		for i := 0; i < shape.Gndim; i++ {
			dSnDxi := fd.Derivative(func(t float64) float64 {
				copy(x_tmp, x)
				x_tmp[i] = t
				if e := shape.InvMap(r_tmp, x_tmp, xmat); e != nil {
					tst.Errorf("InvMap failed:\n%v", e)
				}
				shape.Func(shape.S, shape.DSdR, r_tmp, false)
				return shape.S[n]
			}, x[i], &fd.Settings{Formula: fd.Central})
			if verbose {
				io.Pf("  dS%dDx%d @ %5.2f = %v (num: %v)\n", n, i, x, G[n][i], dSnDxi)
			}
			if math.Abs(G[n][i]-dSnDxi) > tol {
				tst.Errorf("%s: dS%dDx%d failed with err = %g\n", shape.Type, n, i, math.Abs(G[n][i]-dSnDxi))
				return
			}
		}
	}
}
