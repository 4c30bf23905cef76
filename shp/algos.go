// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// constants
const (
	INVMAP_TOL = 1.0e-10 // tolerance for inverse mapping function
	INVMAP_NIT = 25      // maximum number of iterations for inverse mapping
)

// InvMap computes the natural coordinates r, given the real coordinate y
//  Input:
//   y[ndim]         -- are the point coordinates
//   x[ndim][nverts] -- coordinates matrix of solid element
//  Output:
//   r[3] -- are the natural coordinates of given point
func (o *Shape) InvMap(r, y []float64, x [][]float64) (err error) {

	var δRnorm float64
	e := make([]float64, o.Gndim)  // residual
	δr := make([]float64, o.Gndim) // corrector
	r[0], r[1], r[2] = 0, 0, 0     // first trial
	for it := 0; it < INVMAP_NIT; it++ {

		// residual: e = y - x * S
		o.Func(o.S, o.DSdR, r, false)
		for i := 0; i < o.Gndim; i++ {
			e[i] = y[i]
			for j := 0; j < o.Nverts; j++ {
				e[i] -= x[i][j] * o.S[j]
			}
		}

		// dRdx
		err = o.CalcAtIp(x, r, true)
		if err != nil {
			return
		}

		// corrector: dR = dRdx * e
		δRnorm = 0.0
		for i := 0; i < o.Gndim; i++ {
			δr[i] = 0.0
			for j := 0; j < o.Gndim; j++ {
				δr[i] += o.DRdx.At(i, j) * e[j]
			}
			r[i] += δr[i]
			δRnorm += δr[i] * δr[i]
		}
		if math.Sqrt(δRnorm) < INVMAP_TOL {
			return
		}
	}
	return chk.Err("inverse mapping did not converge after %d iterations", INVMAP_NIT)
}

// GetNodesNatCoordsMat returns the matrix (ξ) with natural coordinates of nodes,
// augmented by one column which is filled with ones [nverts][ndim+1]
func (o *Shape) GetNodesNatCoordsMat() (ξ *mat.Dense) {
	ξ = mat.NewDense(o.Nverts, o.Gndim+1, nil)
	for i := 0; i < o.Nverts; i++ {
		for j := 0; j < o.Gndim; j++ {
			ξ.Set(i, j, o.NatCoords[j][i])
		}
		ξ.Set(i, o.Gndim, 1.0)
	}
	return
}

// GetIpsNatCoordsMat returns the matrix (\hat{ξ}) with natural coordinates of interation
// points, augmented by one column which is filled with ones [nip][ndim+1]
func (o *Shape) GetIpsNatCoordsMat(ips []Ipoint) (ξh *mat.Dense) {
	nip := len(ips)
	ξh = mat.NewDense(nip, o.Gndim+1, nil)
	for i := 0; i < nip; i++ {
		for j := 0; j < o.Gndim; j++ {
			ξh.Set(i, j, ips[i][j])
		}
		ξh.Set(i, o.Gndim, 1.0)
	}
	return
}

// GetShapeMatAtIps returns a matrix formed by computing the shape functions
// at all integration points [nip][nverts]
func (o *Shape) GetShapeMatAtIps(ips []Ipoint) (N *mat.Dense) {
	nip := len(ips)
	N = mat.NewDense(nip, o.Nverts, nil)
	for i := 0; i < nip; i++ {
		o.Func(o.S, o.DSdR, ips[i], false)
		N.SetRow(i, o.S)
	}
	return
}

// Extrapolator computes the extrapolation matrix E[nverts][nip] for this Shape with a
// combination of integration points 'ips', such that nodal values = E * ip values
//  Note: if nip ≥ nverts, E is the least-squares generalised inverse of N;
//        if ndim+1 ≤ nip < nverts, a linear fit in natural coordinates is used;
//        otherwise, E holds plain averages
func (o *Shape) Extrapolator(ips []Ipoint) (E *mat.Dense, err error) {
	nip := len(ips)
	E = mat.NewDense(o.Nverts, nip, nil)

	// averages
	if nip < o.Gndim+1 {
		for i := 0; i < o.Nverts; i++ {
			for j := 0; j < nip; j++ {
				E.Set(i, j, 1.0/float64(nip))
			}
		}
		return
	}

	// generalised inverse of N
	N := o.GetShapeMatAtIps(ips)
	Ni, err := pseudoInverse(N)
	if err != nil {
		return
	}
	if nip >= o.Nverts {
		E.Copy(Ni)
		return
	}

	// E = ξ * inv(ξh) + inv(N) * (I - ξh * inv(ξh))
	ξ := o.GetNodesNatCoordsMat()
	ξh := o.GetIpsNatCoordsMat(ips)
	ξhi, err := pseudoInverse(ξh)
	if err != nil {
		return
	}
	var A, B mat.Dense
	A.Mul(ξh, ξhi)
	for i := 0; i < nip; i++ {
		for j := 0; j < nip; j++ {
			if i == j {
				A.Set(i, j, 1.0-A.At(i, j))
			} else {
				A.Set(i, j, -A.At(i, j))
			}
		}
	}
	B.Mul(Ni, &A)
	E.Mul(ξ, ξhi)
	E.Add(E, &B)
	return
}

// pseudoInverse computes the generalised inverse of a matrix by least squares
func pseudoInverse(a *mat.Dense) (*mat.Dense, error) {
	m, n := a.Dims()
	I := mat.NewDense(m, m, nil)
	for i := 0; i < m; i++ {
		I.Set(i, i, 1)
	}
	ai := mat.NewDense(n, m, nil)
	err := ai.Solve(a, I)
	if err != nil {
		if _, ok := err.(mat.Condition); !ok {
			return nil, chk.Err("cannot compute generalised inverse:\n%v", err)
		}
	}
	return ai, nil
}
