// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// tags set by the generators
const (
	TagCells = -1 // all cells

	// 1D
	TagLeft  = -10 // x = 0 (point)
	TagRight = -11 // x = L (point)

	// 2D rectangles: faces counter-clockwise from y = 0
	TagBottom  = -10
	TagRightF  = -11
	TagTop     = -12
	TagLeftF   = -13
	TagCorner0 = -1 // (0, 0)
	TagCorner1 = -2 // (lx, 0)
	TagCorner2 = -3 // (lx, ly)
	TagCorner3 = -4 // (0, ly)

	// 2D quarter ring
	TagInner   = -10 // r = a
	TagOuter   = -11 // r = b
	TagTheta0  = -12 // θ = 0
	TagTheta90 = -13 // θ = π/2

	// 3D boxes
	TagX0     = -10
	TagX1     = -11
	TagY0     = -12
	TagY1     = -13
	TagZ0     = -14
	TagZ1     = -15
	TagOrigin = -1
)

// GenLine generates a mesh of a bar [0, L] with n cells of type "lin2" or "lin3"
//  vertices: x=0 => -1, x=L => -2; faces (points): x=0 => -10, x=L => -11
func GenLine(L float64, n int, ctype string) (o *Mesh, err error) {
	if n < 1 || L <= 0 {
		return nil, chk.Err("cannot generate line with n = %d and L = %g", n, L)
	}
	m := 1
	switch ctype {
	case "lin2":
	case "lin3":
		m = 2
	default:
		return nil, chk.Err("cell type %q is not available for lines", ctype)
	}
	o = new(Mesh)
	nv := m*n + 1
	for i := 0; i < nv; i++ {
		tag := 0
		switch i {
		case 0:
			tag = -1
		case nv - 1:
			tag = -2
		}
		o.Verts = append(o.Verts, &Vert{Id: i, Tag: tag, C: []float64{L * float64(i) / float64(nv-1)}})
	}
	for e := 0; e < n; e++ {
		c := &Cell{Id: e, Tag: TagCells, Type: ctype, FTags: []int{0, 0}}
		c.Verts = []int{m * e, m*e + m}
		if m == 2 {
			c.Verts = append(c.Verts, m*e+1)
		}
		if e == 0 {
			c.FTags[0] = TagLeft
		}
		if e == n-1 {
			c.FTags[1] = TagRight
		}
		o.Cells = append(o.Cells, c)
	}
	err = o.Init()
	return
}

// GenRectangle generates a mesh of the rectangle [0,lx]×[0,ly] with nx×ny divisions
//  ctype: "qua4", "qua8" or "tri3" (two triangles per division)
func GenRectangle(ctype string, nx, ny int, lx, ly float64) (o *Mesh, err error) {
	if lx <= 0 || ly <= 0 {
		return nil, chk.Err("rectangle dimensions must be positive. lx = %g and ly = %g are invalid", lx, ly)
	}
	return genGrid2D(ctype, nx, ny, [4]int{TagBottom, TagRightF, TagTop, TagLeftF}, func(ξ, η float64) []float64 {
		return []float64{lx * ξ, ly * η}
	})
}

// GenQuarterRing generates a mesh of a quarter of a ring with inner radius a and outer radius b
//  nr divisions along the radius and nθ along the angle
//  faces: r=a => -10, r=b => -11, θ=0 => -12, θ=π/2 => -13
func GenQuarterRing(ctype string, a, b float64, nr, nθ int) (o *Mesh, err error) {
	if a <= 0 || b <= a {
		return nil, chk.Err("radii of ring are invalid: a = %g, b = %g", a, b)
	}
	return genGrid2D(ctype, nr, nθ, [4]int{TagTheta0, TagOuter, TagTheta90, TagInner}, func(ξ, η float64) []float64 {
		r, θ := a+(b-a)*ξ, η*math.Pi/2.0
		return []float64{r * math.Cos(θ), r * math.Sin(θ)}
	})
}

// genGrid2D generates a structured mesh by mapping the unit square
//  ftags -- tags of the faces at {η=0, ξ=1, η=1, ξ=0}
func genGrid2D(ctype string, nx, ny int, ftags [4]int, mapping func(ξ, η float64) []float64) (o *Mesh, err error) {
	if nx < 1 || ny < 1 {
		return nil, chk.Err("number of divisions must be positive. nx = %d and ny = %d are invalid", nx, ny)
	}
	m := 1
	switch ctype {
	case "qua4", "tri3":
	case "qua8":
		m = 2
	default:
		return nil, chk.Err("cell type %q is not available for 2D grids", ctype)
	}

	// vertices
	o = new(Mesh)
	ni, nj := m*nx, m*ny
	ids := make([][]int, ni+1)
	for i := 0; i <= ni; i++ {
		ids[i] = make([]int, nj+1)
	}
	for j := 0; j <= nj; j++ {
		for i := 0; i <= ni; i++ {
			ids[i][j] = -1
			if m == 2 && i%2 == 1 && j%2 == 1 {
				continue
			}
			tag := 0
			switch {
			case i == 0 && j == 0:
				tag = TagCorner0
			case i == ni && j == 0:
				tag = TagCorner1
			case i == ni && j == nj:
				tag = TagCorner2
			case i == 0 && j == nj:
				tag = TagCorner3
			}
			ids[i][j] = len(o.Verts)
			x := mapping(float64(i)/float64(ni), float64(j)/float64(nj))
			o.Verts = append(o.Verts, &Vert{Id: ids[i][j], Tag: tag, C: x})
		}
	}

	// cells
	for ey := 0; ey < ny; ey++ {
		for ex := 0; ex < nx; ex++ {
			i0, j0 := m*ex, m*ey
			i1, j1 := i0+m, j0+m
			var fb, fr, ft, fl int
			if ey == 0 {
				fb = ftags[0]
			}
			if ex == nx-1 {
				fr = ftags[1]
			}
			if ey == ny-1 {
				ft = ftags[2]
			}
			if ex == 0 {
				fl = ftags[3]
			}
			switch ctype {
			case "qua4":
				o.addCell(ctype, []int{ids[i0][j0], ids[i1][j0], ids[i1][j1], ids[i0][j1]}, []int{fb, fr, ft, fl})
			case "qua8":
				o.addCell(ctype, []int{ids[i0][j0], ids[i1][j0], ids[i1][j1], ids[i0][j1],
					ids[i0+1][j0], ids[i1][j0+1], ids[i0+1][j1], ids[i0][j0+1]}, []int{fb, fr, ft, fl})
			case "tri3":
				o.addCell(ctype, []int{ids[i0][j0], ids[i1][j0], ids[i1][j1]}, []int{fb, fr, 0})
				o.addCell(ctype, []int{ids[i0][j0], ids[i1][j1], ids[i0][j1]}, []int{0, ft, fl})
			}
		}
	}
	err = o.Init()
	return
}

// GenBox generates a mesh of the box [0,lx]×[0,ly]×[0,lz] with hex8 cells
//  faces: x=0 => -10, x=lx => -11, y=0 => -12, y=ly => -13, z=0 => -14, z=lz => -15
//  vertex at origin => -1
func GenBox(nx, ny, nz int, lx, ly, lz float64) (o *Mesh, err error) {
	if nx < 1 || ny < 1 || nz < 1 {
		return nil, chk.Err("number of divisions must be positive. (%d,%d,%d) is invalid", nx, ny, nz)
	}
	if lx <= 0 || ly <= 0 || lz <= 0 {
		return nil, chk.Err("box dimensions must be positive. (%g,%g,%g) is invalid", lx, ly, lz)
	}
	o = new(Mesh)
	id := func(i, j, k int) int { return i + j*(nx+1) + k*(nx+1)*(ny+1) }
	for k := 0; k <= nz; k++ {
		for j := 0; j <= ny; j++ {
			for i := 0; i <= nx; i++ {
				tag := 0
				if i == 0 && j == 0 && k == 0 {
					tag = TagOrigin
				}
				x := []float64{lx * float64(i) / float64(nx), ly * float64(j) / float64(ny), lz * float64(k) / float64(nz)}
				o.Verts = append(o.Verts, &Vert{Id: id(i, j, k), Tag: tag, C: x})
			}
		}
	}
	tagIf := func(cond bool, tag int) int {
		if cond {
			return tag
		}
		return 0
	}
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				verts := []int{
					id(i, j, k), id(i+1, j, k), id(i+1, j+1, k), id(i, j+1, k),
					id(i, j, k+1), id(i+1, j, k+1), id(i+1, j+1, k+1), id(i, j+1, k+1),
				}
				ftags := []int{
					tagIf(i == 0, TagX0), tagIf(i == nx-1, TagX1),
					tagIf(j == 0, TagY0), tagIf(j == ny-1, TagY1),
					tagIf(k == 0, TagZ0), tagIf(k == nz-1, TagZ1),
				}
				o.addCell("hex8", verts, ftags)
			}
		}
	}
	err = o.Init()
	return
}

// addCell appends a new cell
func (o *Mesh) addCell(ctype string, verts, ftags []int) {
	o.Cells = append(o.Cells, &Cell{Id: len(o.Cells), Tag: TagCells, Type: ctype, Verts: verts, FTags: ftags})
}
