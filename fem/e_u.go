// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/benjaminknopp/FEniQS/inp"
	"github.com/benjaminknopp/FEniQS/msolid"
	"github.com/benjaminknopp/FEniQS/shp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/mat"
)

// NaturalBc holds a natural boundary condition on a face of an element
type NaturalBc struct {
	Key     string // "qn", "tx", "ty" or "tz"
	IdxFace int    // local index of face
	Fcn     dbf.T  // value of traction
}

// ElemU represents a solid element with displacements u as primary variables
type ElemU struct {

	// basic data
	Cell *inp.Cell   // the cell structure
	X    [][]float64 // matrix of nodal coordinates [ndim][nnode]
	Shp  *shp.Shape  // shape structure
	Nu   int         // total number of unknowns
	Ndim int         // space dimension
	Nsig int         // number of stress components

	// optional data
	Thickness  float64   // thickness (2D) or cross-sectional area (1D)
	SigmaScale float64   // factor multiplying stresses in the weak form
	Bforce     []float64 // body force [ndim]

	// integration points
	IpsElem []shp.Ipoint // integration points of element
	IpsFace []shp.Ipoint // integration points corresponding to faces

	// material model and internal variables
	Model    msolid.Model // material model
	MdlSmall msolid.Small // model specialisation for small strains

	// internal variables
	States    []*msolid.State // [nip] states
	StatesBkp []*msolid.State // [nip] backup states
	StatesAux []*msolid.State // [nip] auxiliary backup states

	// problem variables
	Umap []int // assembly map (location array/element equations)

	// natural boundary conditions
	NatBcs []*NaturalBc

	// scratchpad. computed @ each ip
	K [][]float64 // [nu][nu] consistent tangent (stiffness) matrix
	B [][]float64 // [nsig][nu] B matrix in Mandel basis
	D [][]float64 // [nsig][nsig] constitutive consistent tangent matrix

	// strains
	ε  []float64 // total (updated) strains
	Δε []float64 // incremental strains leading to updated strains
}

// initialisation ///////////////////////////////////////////////////////////////////////////////////

// register element
func init() {
	eallocators["u"] = func(cell *inp.Cell, x [][]float64, edat *ElemData) (Elem, error) {

		// basic data
		var o ElemU
		o.Cell = cell
		o.X = x
		o.Shp = cell.Shp
		o.Ndim = len(x)
		o.Nu = o.Ndim * o.Shp.Nverts
		o.Thickness = edat.Thickness
		if o.Thickness <= 0 {
			o.Thickness = 1
		}
		o.SigmaScale = edat.SigmaScale
		if o.SigmaScale < 0 {
			return nil, chk.Err("stress scaling factor must not be negative. %g is invalid", o.SigmaScale)
		}
		if o.SigmaScale == 0 {
			o.SigmaScale = 1
		}
		if len(edat.BodyForce) > 0 {
			if len(edat.BodyForce) != o.Ndim {
				return nil, chk.Err("body force must have %d components; %d given", o.Ndim, len(edat.BodyForce))
			}
			o.Bforce = append([]float64{}, edat.BodyForce...)
		}

		// integration points
		var err error
		o.IpsElem, err = shp.GetIps(cell.Type, edat.IntegDegree)
		if err != nil {
			return nil, err
		}
		o.IpsFace, err = shp.GetIps(o.Shp.FaceType, edat.IntegDegree)
		if err != nil {
			return nil, err
		}

		// model
		err = o.SetModel(edat.Model)
		if err != nil {
			return nil, chk.Err("cannot set model of solid element {tag=%d id=%d}:\n%v", cell.Tag, cell.Id, err)
		}
		o.Nsig = o.Model.GetConstraint().Nsig

		// scratchpad
		o.K = utl.Alloc(o.Nu, o.Nu)
		o.B = utl.Alloc(o.Nsig, o.Nu)
		o.D = utl.Alloc(o.Nsig, o.Nsig)
		o.ε = make([]float64, o.Nsig)
		o.Δε = make([]float64, o.Nsig)
		return &o, nil
	}
}

// implementation ///////////////////////////////////////////////////////////////////////////////////

// Id returns the cell Id
func (o ElemU) Id() int { return o.Cell.Id }

// SetEqs set equations
func (o *ElemU) SetEqs(eqs [][]int) (err error) {
	if len(eqs) != o.Shp.Nverts {
		return chk.Err("number of equations lists (%d) must be equal to the number of vertices (%d)", len(eqs), o.Shp.Nverts)
	}
	o.Umap = make([]int, o.Nu)
	for m := 0; m < o.Shp.Nverts; m++ {
		for i := 0; i < o.Ndim; i++ {
			o.Umap[i+m*o.Ndim] = eqs[m][i]
		}
	}
	return
}

// SetNatBc sets natural boundary condition on face
func (o *ElemU) SetNatBc(key string, idxface int, f dbf.T) (err error) {
	if !o.surfloadsKeys()[key] {
		return chk.Err("natural boundary condition %q is not available in solid element", key)
	}
	if key != "qn" && inp.DofKeyIndex("u"+key[1:]) >= o.Ndim {
		return chk.Err("traction %q cannot be used in %dD", key, o.Ndim)
	}
	if idxface < 0 || idxface >= len(o.Shp.FaceLocalVerts) {
		return chk.Err("face index %d is invalid for cell %d", idxface, o.Id())
	}
	o.NatBcs = append(o.NatBcs, &NaturalBc{key, idxface, f})
	return
}

// SetModel replaces the material model. Internal variables are kept
func (o *ElemU) SetModel(mdl msolid.Model) (err error) {
	small, ok := mdl.(msolid.Small)
	if !ok {
		return chk.Err("model cannot be used in small strain analyses")
	}
	if mdl.GetConstraint().Ndim != o.Ndim {
		return chk.Err("model was initialised for %dD but element is %dD", mdl.GetConstraint().Ndim, o.Ndim)
	}
	o.Model = mdl
	o.MdlSmall = small
	return
}

// AddToRhs adds -R to global residual vector fb
func (o *ElemU) AddToRhs(fb []float64, sol *Solution) (err error) {

	// for each integration point
	nverts := o.Shp.Nverts
	for idx, ip := range o.IpsElem {

		// interpolation functions, gradients and B matrix @ ip
		err = o.ipvars(ip)
		if err != nil {
			return
		}
		coef := o.Shp.J * ip[3] * o.Thickness
		σ := o.States[idx].Sig

		// internal forces: fb -= coef * tr(B) * σ
		for r, I := range o.Umap {
			v := 0.0
			for i := 0; i < o.Nsig; i++ {
				v += o.B[i][r] * σ[i]
			}
			fb[I] -= coef * o.SigmaScale * v
		}

		// body forces
		if o.Bforce != nil {
			for m := 0; m < nverts; m++ {
				for i := 0; i < o.Ndim; i++ {
					fb[o.Umap[i+m*o.Ndim]] += coef * o.Shp.S[m] * o.Bforce[i]
				}
			}
		}
	}

	// external forces
	return o.addSurfloadsToRhs(fb, sol)
}

// AddToKb adds element K to global Jacobian matrix Kb
func (o *ElemU) AddToKb(Kb *mat.Dense, sol *Solution, firstIt bool) (err error) {

	// zero K matrix
	for i := range o.K {
		for j := range o.K[i] {
			o.K[i][j] = 0
		}
	}

	// for each integration point
	for idx, ip := range o.IpsElem {

		// interpolation functions, gradients and B matrix @ ip
		err = o.ipvars(ip)
		if err != nil {
			return
		}
		coef := o.Shp.J * ip[3] * o.Thickness * o.SigmaScale

		// consistent tangent model matrix
		err = o.MdlSmall.CalcD(o.D, o.States[idx], firstIt)
		if err != nil {
			return chk.Err("CalcD failed (eid=%d, ip=%d):\n%v", o.Id(), idx, err)
		}

		// K += coef * tr(B) * D * B
		for r := 0; r < o.Nu; r++ {
			for i := 0; i < o.Nsig; i++ {
				if o.B[i][r] == 0 {
					continue
				}
				for j := 0; j < o.Nsig; j++ {
					bd := coef * o.B[i][r] * o.D[i][j]
					if bd == 0 {
						continue
					}
					for c := 0; c < o.Nu; c++ {
						o.K[r][c] += bd * o.B[j][c]
					}
				}
			}
		}
	}

	// add K to global matrix Kb
	for i, I := range o.Umap {
		for j, J := range o.Umap {
			Kb.Set(I, J, Kb.At(I, J)+o.K[i][j])
		}
	}
	return
}

// Update perform (tangent) update
func (o *ElemU) Update(sol *Solution) (err error) {
	for idx, ip := range o.IpsElem {

		// interpolation functions, gradients and B matrix @ ip
		err = o.ipvars(ip)
		if err != nil {
			return
		}

		// compute strains
		for i := 0; i < o.Nsig; i++ {
			o.ε[i], o.Δε[i] = 0, 0
			for r, I := range o.Umap {
				o.ε[i] += o.B[i][r] * sol.Y[I]
				o.Δε[i] += o.B[i][r] * sol.ΔY[I]
			}
		}

		// call model update => update stresses
		err = o.MdlSmall.Update(o.States[idx], o.ε, o.Δε)
		if err != nil {
			return chk.Err("Update failed (eid=%d, ip=%d)\nΔε=%v\n%v", o.Id(), idx, o.Δε, err)
		}
	}
	return
}

// internal variables ///////////////////////////////////////////////////////////////////////////////

// Ipoints returns the real coordinates of integration points [nip][ndim]
func (o ElemU) Ipoints() (coords [][]float64) {
	coords = make([][]float64, len(o.IpsElem))
	for idx, ip := range o.IpsElem {
		coords[idx] = o.Shp.IpRealCoords(o.X, ip)
	}
	return
}

// SetIniIvs sets initial ivs (zero stresses)
func (o *ElemU) SetIniIvs(sol *Solution) (err error) {
	nip := len(o.IpsElem)
	o.States = make([]*msolid.State, nip)
	o.StatesBkp = make([]*msolid.State, nip)
	o.StatesAux = make([]*msolid.State, nip)
	σ := make([]float64, 6)
	for i := 0; i < nip; i++ {
		o.States[i], err = o.Model.InitIntVars(σ)
		if err != nil {
			return
		}
		o.StatesBkp[i] = o.States[i].GetCopy()
		o.StatesAux[i] = o.States[i].GetCopy()
	}
	return
}

// BackupIvs create copy of internal variables
func (o *ElemU) BackupIvs(aux bool) (err error) {
	if aux {
		for i, s := range o.StatesAux {
			s.Set(o.States[i])
		}
		return
	}
	for i, s := range o.StatesBkp {
		s.Set(o.States[i])
	}
	return
}

// RestoreIvs restore internal variables from copies
func (o *ElemU) RestoreIvs(aux bool) (err error) {
	if aux {
		for i, s := range o.States {
			s.Set(o.StatesAux[i])
		}
		return
	}
	for i, s := range o.States {
		s.Set(o.StatesBkp[i])
	}
	return
}

// writer ///////////////////////////////////////////////////////////////////////////////////////////

// Encode encodes internal variables
func (o ElemU) Encode(enc Encoder) (err error) {
	return enc.Encode(o.States)
}

// Decode decodes internal variables
func (o *ElemU) Decode(dec Decoder) (err error) {
	err = dec.Decode(&o.States)
	if err != nil {
		return
	}
	return o.BackupIvs(false)
}

// OutIpsData returns data from all integration points for output
func (o ElemU) OutIpsData() (data []*OutIpData) {
	for idx, ip := range o.IpsElem {
		s := o.States[idx]
		data = append(data, &OutIpData{
			Eid:   o.Id(),
			X:     o.Shp.IpRealCoords(o.X, ip),
			Sig:   append([]float64{}, s.Sig...),
			Kappa: s.Kappa(),
		})
	}
	return
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// ipvars computes S, G and the B matrix @ integration point
func (o *ElemU) ipvars(ip shp.Ipoint) (err error) {
	err = o.Shp.CalcAtIp(o.X, ip, true)
	if err != nil {
		return chk.Err("element %d: %v", o.Id(), err)
	}
	IpBmatrix(o.B, o.Ndim, o.Shp.Nverts, o.Shp.G)
	return
}

// IpBmatrix computes the strain-displacement matrix in Mandel basis
//  1D: ε = {εxx}
//  2D: ε = {εxx, εyy, εzz, √2εxy} with εzz given by the constraint (zero row)
//  3D: ε = {εxx, εyy, εzz, √2εxy, √2εyz, √2εzx}
func IpBmatrix(B [][]float64, ndim, nverts int, G [][]float64) {
	for i := range B {
		for j := range B[i] {
			B[i][j] = 0
		}
	}
	r := 1.0 / math.Sqrt2
	for m := 0; m < nverts; m++ {
		switch ndim {
		case 1:
			B[0][m] = G[m][0]
		case 2:
			B[0][0+m*2] = G[m][0]
			B[1][1+m*2] = G[m][1]
			B[3][0+m*2] = G[m][1] * r
			B[3][1+m*2] = G[m][0] * r
		case 3:
			B[0][0+m*3] = G[m][0]
			B[1][1+m*3] = G[m][1]
			B[2][2+m*3] = G[m][2]
			B[3][0+m*3] = G[m][1] * r
			B[3][1+m*3] = G[m][0] * r
			B[4][1+m*3] = G[m][2] * r
			B[4][2+m*3] = G[m][1] * r
			B[5][0+m*3] = G[m][2] * r
			B[5][2+m*3] = G[m][0] * r
		}
	}
}

// surfloadsKeys returns the keys that can be used to specify surface loads
func (o *ElemU) surfloadsKeys() map[string]bool {
	return map[string]bool{"qn": true, "tx": true, "ty": true, "tz": true}
}

// addSurfloadsToRhs adds surfaces loads to rhs
func (o *ElemU) addSurfloadsToRhs(fb []float64, sol *Solution) (err error) {
	for _, load := range o.NatBcs {
		val := load.Fcn.F(sol.T, nil)
		for _, ip := range o.IpsFace {
			err = o.Shp.CalcAtFaceIp(o.X, ip, load.IdxFace)
			if err != nil {
				return
			}
			nvec := o.Shp.Fnvec
			Sf := o.Shp.Sf
			coef := ip[3] * val * o.Thickness
			switch load.Key {
			case "qn":
				for j, m := range o.Shp.FaceLocalVerts[load.IdxFace] {
					for i := 0; i < o.Ndim; i++ {
						fb[o.Umap[i+m*o.Ndim]] += coef * Sf[j] * nvec[i] // +fe
					}
				}
			default:
				dir := inp.DofKeyIndex("u" + load.Key[1:])
				jf := 0.0
				for _, v := range nvec {
					jf += v * v
				}
				jf = math.Sqrt(jf)
				for j, m := range o.Shp.FaceLocalVerts[load.IdxFace] {
					fb[o.Umap[dir+m*o.Ndim]] += coef * jf * Sf[j] // +fe
				}
			}
		}
	}
	return
}
