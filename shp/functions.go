// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

func init() {

	// lin2
	register(&Shape{
		Type:           "lin2",
		Func:           FuncLin2,
		FaceType:       "point",
		Gndim:          1,
		Nverts:         2,
		VtkCode:        3,
		FaceNvertsMax:  1,
		FaceLocalVerts: [][]int{{0}, {1}},
		NatCoords:      [][]float64{{-1, 1}},
	})

	// lin3
	register(&Shape{
		Type:           "lin3",
		Func:           FuncLin3,
		FaceType:       "point",
		Gndim:          1,
		Nverts:         3,
		VtkCode:        21,
		FaceNvertsMax:  1,
		FaceLocalVerts: [][]int{{0}, {1}},
		NatCoords:      [][]float64{{-1, 1, 0}},
	})

	// tri3
	register(&Shape{
		Type:           "tri3",
		Func:           FuncTri3,
		FaceType:       "lin2",
		Gndim:          2,
		Nverts:         3,
		VtkCode:        5,
		FaceNvertsMax:  2,
		FaceLocalVerts: [][]int{{0, 1}, {1, 2}, {2, 0}},
		NatCoords: [][]float64{
			{0, 1, 0},
			{0, 0, 1},
		},
	})

	// qua4
	register(&Shape{
		Type:           "qua4",
		Func:           FuncQua4,
		FaceType:       "lin2",
		Gndim:          2,
		Nverts:         4,
		VtkCode:        9,
		FaceNvertsMax:  2,
		FaceLocalVerts: [][]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}},
		NatCoords: [][]float64{
			{-1, 1, 1, -1},
			{-1, -1, 1, 1},
		},
	})

	// qua8
	register(&Shape{
		Type:           "qua8",
		Func:           FuncQua8,
		FaceType:       "lin3",
		Gndim:          2,
		Nverts:         8,
		VtkCode:        23,
		FaceNvertsMax:  3,
		FaceLocalVerts: [][]int{{0, 1, 4}, {1, 2, 5}, {2, 3, 6}, {3, 0, 7}},
		NatCoords: [][]float64{
			{-1, 1, 1, -1, 0, 1, 0, -1},
			{-1, -1, 1, 1, -1, 0, 1, 0},
		},
	})

	// tet4
	register(&Shape{
		Type:           "tet4",
		Func:           FuncTet4,
		FaceType:       "tri3",
		Gndim:          3,
		Nverts:         4,
		VtkCode:        10,
		FaceNvertsMax:  3,
		FaceLocalVerts: [][]int{{0, 3, 2}, {0, 1, 3}, {0, 2, 1}, {1, 2, 3}},
		NatCoords: [][]float64{
			{0, 1, 0, 0},
			{0, 0, 1, 0},
			{0, 0, 0, 1},
		},
	})

	// hex8
	register(&Shape{
		Type:           "hex8",
		Func:           FuncHex8,
		FaceType:       "qua4",
		Gndim:          3,
		Nverts:         8,
		VtkCode:        12,
		FaceNvertsMax:  4,
		FaceLocalVerts: [][]int{{0, 4, 7, 3}, {1, 2, 6, 5}, {0, 1, 5, 4}, {2, 3, 7, 6}, {0, 3, 2, 1}, {4, 5, 6, 7}},
		NatCoords: [][]float64{
			{-1, 1, 1, -1, -1, 1, 1, -1},
			{-1, -1, 1, 1, -1, -1, 1, 1},
			{-1, -1, -1, -1, 1, 1, 1, 1},
		},
	})
}

// FuncLin2 calculates the shape functions (S) and derivatives of shape functions (dSdR) of lin2
// elements at {r,s,t} natural coordinates. The derivatives are calculated only if derivs==true.
//
//   -1     0    +1
//    0-----------1-->r
func FuncLin2(S []float64, dSdR [][]float64, R []float64, derivs bool) {
	r := R[0]
	S[0] = 0.5 * (1.0 - r)
	S[1] = 0.5 * (1.0 + r)
	if !derivs {
		return
	}
	dSdR[0][0] = -0.5
	dSdR[1][0] = 0.5
}

// FuncLin3 calculates the shape functions (S) and derivatives of shape functions (dSdR) of lin3
// elements at {r,s,t} natural coordinates. The derivatives are calculated only if derivs==true.
//
//   -1     0    +1
//    0-----2-----1-->r
func FuncLin3(S []float64, dSdR [][]float64, R []float64, derivs bool) {
	r := R[0]
	S[0] = 0.5 * (r*r - r)
	S[1] = 0.5 * (r*r + r)
	S[2] = 1.0 - r*r
	if !derivs {
		return
	}
	dSdR[0][0] = r - 0.5
	dSdR[1][0] = r + 0.5
	dSdR[2][0] = -2.0 * r
}

// FuncTri3 calculates the shape functions (S) and derivatives of shape functions (dSdR) of tri3
// elements at {r,s,t} natural coordinates. The derivatives are calculated only if derivs==true.
//
//    s
//    |
//    2, (0,1)
//    | ',
//    |   ',
//    |     ',
//    |       ',
//    0-----------1-->r
// (0,0)         (1,0)
func FuncTri3(S []float64, dSdR [][]float64, R []float64, derivs bool) {
	r, s := R[0], R[1]
	S[0] = 1.0 - r - s
	S[1] = r
	S[2] = s
	if !derivs {
		return
	}
	dSdR[0][0], dSdR[0][1] = -1.0, -1.0
	dSdR[1][0], dSdR[1][1] = 1.0, 0.0
	dSdR[2][0], dSdR[2][1] = 0.0, 1.0
}

// FuncQua4 calculates the shape functions (S) and derivatives of shape functions (dSdR) of qua4
// elements at {r,s,t} natural coordinates. The derivatives are calculated only if derivs==true.
//
//    3-----------2
//    |     s     |
//    |     |     |
//    |     +--r  |
//    |           |
//    |           |
//    0-----------1
func FuncQua4(S []float64, dSdR [][]float64, R []float64, derivs bool) {
	r, s := R[0], R[1]
	S[0] = (1.0 - r - s + r*s) / 4.0
	S[1] = (1.0 + r - s - r*s) / 4.0
	S[2] = (1.0 + r + s + r*s) / 4.0
	S[3] = (1.0 - r + s - r*s) / 4.0
	if !derivs {
		return
	}
	dSdR[0][0], dSdR[0][1] = (-1.0+s)/4.0, (-1.0+r)/4.0
	dSdR[1][0], dSdR[1][1] = (+1.0-s)/4.0, (-1.0-r)/4.0
	dSdR[2][0], dSdR[2][1] = (+1.0+s)/4.0, (+1.0+r)/4.0
	dSdR[3][0], dSdR[3][1] = (-1.0-s)/4.0, (+1.0-r)/4.0
}

// FuncQua8 calculates the shape functions (S) and derivatives of shape functions (dSdR) of qua8
// elements at {r,s,t} natural coordinates. The derivatives are calculated only if derivs==true.
//
//    3-----6-----2
//    |     s     |
//    |     |     |
//    7     +--r  5
//    |           |
//    |           |
//    0-----4-----1
func FuncQua8(S []float64, dSdR [][]float64, R []float64, derivs bool) {
	r, s := R[0], R[1]

	// corners
	for m, c := range [][]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
		ri, si := c[0], c[1]
		S[m] = (1.0 + r*ri) * (1.0 + s*si) * (r*ri + s*si - 1.0) / 4.0
		if derivs {
			dSdR[m][0] = ri * (1.0 + s*si) * (2.0*r*ri + s*si) / 4.0
			dSdR[m][1] = si * (1.0 + r*ri) * (r*ri + 2.0*s*si) / 4.0
		}
	}

	// mid-side nodes along r (4 and 6)
	for m, si := range map[int]float64{4: -1, 6: 1} {
		S[m] = (1.0 - r*r) * (1.0 + s*si) / 2.0
		if derivs {
			dSdR[m][0] = -r * (1.0 + s*si)
			dSdR[m][1] = si * (1.0 - r*r) / 2.0
		}
	}

	// mid-side nodes along s (5 and 7)
	for m, ri := range map[int]float64{5: 1, 7: -1} {
		S[m] = (1.0 + r*ri) * (1.0 - s*s) / 2.0
		if derivs {
			dSdR[m][0] = ri * (1.0 - s*s) / 2.0
			dSdR[m][1] = -s * (1.0 + r*ri)
		}
	}
}

// FuncTet4 calculates the shape functions (S) and derivatives of shape functions (dSdR) of tet4
// elements at {r,s,t} natural coordinates. The derivatives are calculated only if derivs==true.
func FuncTet4(S []float64, dSdR [][]float64, R []float64, derivs bool) {
	r, s, t := R[0], R[1], R[2]
	S[0] = 1.0 - r - s - t
	S[1] = r
	S[2] = s
	S[3] = t
	if !derivs {
		return
	}
	dSdR[0][0], dSdR[0][1], dSdR[0][2] = -1.0, -1.0, -1.0
	dSdR[1][0], dSdR[1][1], dSdR[1][2] = 1.0, 0.0, 0.0
	dSdR[2][0], dSdR[2][1], dSdR[2][2] = 0.0, 1.0, 0.0
	dSdR[3][0], dSdR[3][1], dSdR[3][2] = 0.0, 0.0, 1.0
}

// FuncHex8 calculates the shape functions (S) and derivatives of shape functions (dSdR) of hex8
// elements at {r,s,t} natural coordinates. The derivatives are calculated only if derivs==true.
//
//              4________________7
//            ,'|              ,'|
//          ,'  |            ,'  |
//        ,'    |          ,'    |
//      ,'      |        ,'      |
//    5'===============6'        |
//    |         |      |         |
//    |         |      |         |
//    |         0_____ | ________3
//    |       ,'       |       ,'
//    |     ,'         |     ,'
//    |   ,'           |   ,'
//    | ,'             | ,'
//    1________________2'
func FuncHex8(S []float64, dSdR [][]float64, R []float64, derivs bool) {
	r, s, t := R[0], R[1], R[2]
	for m := 0; m < 8; m++ {
		ri, si, ti := hex8nat[0][m], hex8nat[1][m], hex8nat[2][m]
		S[m] = (1.0 + r*ri) * (1.0 + s*si) * (1.0 + t*ti) / 8.0
		if derivs {
			dSdR[m][0] = ri * (1.0 + s*si) * (1.0 + t*ti) / 8.0
			dSdR[m][1] = si * (1.0 + r*ri) * (1.0 + t*ti) / 8.0
			dSdR[m][2] = ti * (1.0 + r*ri) * (1.0 + s*si) / 8.0
		}
	}
}

// hex8nat holds the natural coordinates of hex8 vertices
var hex8nat = [][]float64{
	{-1, 1, 1, -1, -1, 1, 1, -1},
	{-1, -1, 1, 1, -1, -1, 1, 1},
	{-1, -1, -1, -1, 1, 1, 1, 1},
}
