// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical solutions
package ana

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/utl"
)

// PressCylin implements Hill's solution to the elastic-perfectly plastic
// thick cylinder under internal pressure (plane strain, von Mises)
//
//               , - - ,
//           , '         ' ,
//         ,                 ,
//        ,      .-'''-.      ,
//       ,      / ↖ ↑ ↗ \      ,
//       ,     |  ← P →  |     ,
//       ,      \ ↙ ↓ ↘ /      ,
//        ,      `-...-'      ,
//         ,                 ,
//           ,            , '
//             ' - , ,  '
type PressCylin struct {

	// input
	A  float64 // inner radius
	B  float64 // outer radius
	E  float64 // Young's modulus
	Nu float64 // Poisson's coefficient
	Sy float64 // uniaxial yield stress

	// derived data
	coef float64 // (a/b)²
	Y    float64 // yield stress in plane strain shear: 2 σy / √3
	P0   float64 // pressure at the onset of yielding
	Plim float64 // limiting (collapse) pressure
}

// Init initialises this structure
func (o *PressCylin) Init(prms dbf.Params) {

	// default values
	o.A = 100    // [mm]
	o.B = 200    // [mm]
	o.E = 210000 // [MPa] Young modulus
	o.Nu = 0.3   // [-] Poisson's ratio
	o.Sy = 240   // [MPa] yield stress

	// parameters
	for _, p := range prms {
		switch p.N {
		case "a":
			o.A = p.V
		case "b":
			o.B = p.V
		case "E":
			o.E = p.V
		case "nu":
			o.Nu = p.V
		case "sig0":
			o.Sy = p.V
		}
	}

	// derived
	o.coef = o.A * o.A / (o.B * o.B)
	o.Y = 2.0 * o.Sy / math.Sqrt(3.0)
	o.P0 = o.Y * (1 - o.coef) / 2.0
	o.Plim = o.Y * math.Log(o.B/o.A)
}

// Plastic computes the pressure corresponding to the radius c of the elastic/plastic
// interface and the radial displacement at the outer surface
func (o PressCylin) Plastic(c float64) (P, ub float64) {
	P = o.Y * (math.Log(c/o.A) + (1.0-c*c/(o.B*o.B))/2.0)
	ub = o.Y * c * c * (1.0 - o.Nu*o.Nu) / (o.E * o.B)
	return
}

// ElastOuterU computes the elastic solution for the radial displacement
// at the outer surface
func (o PressCylin) ElastOuterU(P float64) (ub float64) {
	return 2.0 * P * o.B * (1.0 - o.Nu*o.Nu) / (o.E/o.coef - o.E)
}

// OuterU computes the radial displacement at the outer surface for any pressure below Plim
func (o PressCylin) OuterU(P float64) (ub float64, err error) {
	if P <= o.P0 {
		return o.ElastOuterU(P), nil
	}
	c, err := o.Calc_c(P)
	if err != nil {
		return
	}
	_, ub = o.Plastic(c)
	return
}

// Calc_c computes the radius of the elastic/plastic interface for pressure P
func (o PressCylin) Calc_c(P float64) (c float64, err error) {
	if P < o.P0 || P >= o.Plim {
		return 0, chk.Err("pressure must be in [P0, Plim) = [%g, %g). P = %g is invalid", o.P0, o.Plim, P)
	}
	c = (o.A + o.B) / 2.0
	for it := 0; it < 50; it++ {
		fx := P/o.Y - (math.Log(c/o.A) + (1.0-c*c/(o.B*o.B))/2.0)
		if math.Abs(fx) < 1e-13 {
			return
		}
		dfdx := -1.0/c + c/(o.B*o.B)
		c -= fx / dfdx
		c = math.Min(math.Max(c, o.A), o.B)
	}
	return c, chk.Err("cannot find radius of elastic/plastic interface for P = %g", P)
}

// Stresses compute the radial and tangential stresses
func (o PressCylin) Stresses(c, r float64) (sr, st float64) {
	b, Y := o.B, o.Y
	if r > c { // elastic
		sr = -Y * c * c * (b*b/(r*r) - 1.0) / (2.0 * b * b)
		st = Y * c * c * (b*b/(r*r) + 1.0) / (2.0 * b * b)
	} else {
		sr = Y * (-0.5 - math.Log(c/r) + c*c/(2.0*b*b))
		st = Y * (0.5 - math.Log(c/r) + c*c/(2.0*b*b))
	}
	return sr, st
}

// CalcPressDisp returns the internal pressure and outer displacements for
// plotting the load-displacement graph
func (o PressCylin) CalcPressDisp(np int) (P, Ub []float64) {

	// elastic
	ne := 3
	dP0 := o.P0 / float64(ne-1)
	P = make([]float64, ne+np)
	Ub = make([]float64, ne+np)
	for i := 0; i < ne; i++ {
		P[i] = float64(i) * dP0
		Ub[i] = o.ElastOuterU(P[i])
	}

	// plastic
	C := utl.LinSpace(o.A, o.B, np)
	for i := 0; i < np; i++ {
		P[ne+i], Ub[ne+i] = o.Plastic(C[i])
	}
	return
}
