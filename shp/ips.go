// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// gauss-legendre points and weights on [-1, 1] (1 to 4 points)
var glPoints = [][]float64{
	{0},
	{-1.0 / math.Sqrt(3.0), 1.0 / math.Sqrt(3.0)},
	{-math.Sqrt(3.0 / 5.0), 0, math.Sqrt(3.0 / 5.0)},
	{-0.8611363115940526, -0.3399810435848563, 0.3399810435848563, 0.8611363115940526},
}

var glWeights = [][]float64{
	{2},
	{1, 1},
	{5.0 / 9.0, 8.0 / 9.0, 5.0 / 9.0},
	{0.3478548451374538, 0.6521451548625461, 0.6521451548625461, 0.3478548451374538},
}

// GetIps returns the integration points of a geometry type that integrate
// polynomials of the given degree exactly
//  Note: degree < 1 is taken as 1
func GetIps(geoType string, degree int) (ips []Ipoint, err error) {
	if degree < 1 {
		degree = 1
	}
	switch geoType {
	case "point":
		return []Ipoint{{0, 0, 0, 1}}, nil
	case "lin2", "lin3":
		return gaussTensor(1, degree), nil
	case "qua4", "qua8":
		return gaussTensor(2, degree), nil
	case "hex8":
		return gaussTensor(3, degree), nil
	case "tri3":
		return triIps(degree), nil
	case "tet4":
		return tetIps(degree), nil
	}
	return nil, chk.Err("cannot find integration points for geometry type %q", geoType)
}

// gaussTensor computes tensor-product gauss points with n = ceil((degree+1)/2) points per direction
func gaussTensor(ndim, degree int) (ips []Ipoint) {
	n := (degree + 2) / 2
	if n > len(glPoints) {
		n = len(glPoints)
	}
	p, w := glPoints[n-1], glWeights[n-1]
	switch ndim {
	case 1:
		for i := 0; i < n; i++ {
			ips = append(ips, Ipoint{p[i], 0, 0, w[i]})
		}
	case 2:
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				ips = append(ips, Ipoint{p[i], p[j], 0, w[i] * w[j]})
			}
		}
	default:
		for k := 0; k < n; k++ {
			for j := 0; j < n; j++ {
				for i := 0; i < n; i++ {
					ips = append(ips, Ipoint{p[i], p[j], p[k], w[i] * w[j] * w[k]})
				}
			}
		}
	}
	return
}

// triIps returns integration points for triangles (area of reference triangle = 1/2)
func triIps(degree int) []Ipoint {
	switch {
	case degree <= 1:
		return []Ipoint{{1.0 / 3.0, 1.0 / 3.0, 0, 0.5}}
	case degree == 2:
		return []Ipoint{
			{1.0 / 6.0, 1.0 / 6.0, 0, 1.0 / 6.0},
			{2.0 / 3.0, 1.0 / 6.0, 0, 1.0 / 6.0},
			{1.0 / 6.0, 2.0 / 3.0, 0, 1.0 / 6.0},
		}
	}
	a, wa := 0.445948490915965, 0.223381589678011/2.0
	b, wb := 0.091576213509771, 0.109951743655322/2.0
	return []Ipoint{
		{a, a, 0, wa},
		{1 - 2*a, a, 0, wa},
		{a, 1 - 2*a, 0, wa},
		{b, b, 0, wb},
		{1 - 2*b, b, 0, wb},
		{b, 1 - 2*b, 0, wb},
	}
}

// tetIps returns integration points for tetrahedra (volume of reference tetrahedron = 1/6)
func tetIps(degree int) []Ipoint {
	switch {
	case degree <= 1:
		return []Ipoint{{0.25, 0.25, 0.25, 1.0 / 6.0}}
	case degree == 2:
		a, b := 0.5854101966249685, 0.1381966011250105
		w := 1.0 / 24.0
		return []Ipoint{
			{b, b, b, w},
			{a, b, b, w},
			{b, a, b, w},
			{b, b, a, w},
		}
	}
	w := 9.0 / 120.0
	return []Ipoint{
		{0.25, 0.25, 0.25, -2.0 / 15.0},
		{1.0 / 6.0, 1.0 / 6.0, 1.0 / 6.0, w},
		{0.5, 1.0 / 6.0, 1.0 / 6.0, w},
		{1.0 / 6.0, 0.5, 1.0 / 6.0, w},
		{1.0 / 6.0, 1.0 / 6.0, 0.5, w},
	}
}
