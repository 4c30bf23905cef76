// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gopkg.in/yaml.v3"
)

// YieldSurf holds the definition of a yield surface
type YieldSurf struct {
	Type string             `json:"type" yaml:"type"` // e.g. "von-mises"
	Pars map[string]float64 `json:"pars" yaml:"pars"` // e.g. {"sig0": 10}
}

// Hardening holds the definition of isotropic hardening
type Hardening struct {
	Modulus    float64 `json:"modulus" yaml:"modulus"`       // H; zero means perfect plasticity
	Hypothesis string  `json:"hypothesis" yaml:"hypothesis"` // "unit" or "plastic-work"
}

// Pars holds the parameters of a quasi-static plasticity model
type Pars struct {
	MatType            string    `json:"mat_type" yaml:"mat_type"`                       // must be "plasticity"
	Constraint         string    `json:"constraint" yaml:"constraint"`                   // kinematic constraint; empty => default of ndim
	E                  float64   `json:"E" yaml:"E"`                                     // Young's modulus
	EMin               float64   `json:"E_min" yaml:"E_min"`                             // added to E
	Nu                 float64   `json:"nu" yaml:"nu"`                                   // Poisson's coefficient
	YieldSurf          YieldSurf `json:"yield_surf" yaml:"yield_surf"`                   // yield surface
	HardeningIsotropic Hardening `json:"hardening_isotropic" yaml:"hardening_isotropic"` // isotropic hardening
	F                  []float64 `json:"f" yaml:"f"`                                     // body force; nil => zero
	IntegDegree        int       `json:"integ_degree" yaml:"integ_degree"`               // integration degree
	Thickness          float64   `json:"thickness" yaml:"thickness"`                     // thickness (2D) or cross section area (1D)
	SoftenedPars       []string  `json:"softenned_pars" yaml:"softenned_pars"`           // parameters that may be updated during analyses
	WriteFiles         bool      `json:"_write_files" yaml:"_write_files"`               // write mesh and results files
}

// DefaultPars returns the default parameters
func DefaultPars() *Pars {
	return &Pars{
		MatType: "plasticity",
		E:       1000,
		Nu:      0.3,
		YieldSurf: YieldSurf{
			Type: "von-mises",
			Pars: map[string]float64{"sig0": 10},
		},
		HardeningIsotropic: Hardening{Modulus: 0, Hypothesis: "unit"},
		IntegDegree:        2,
		Thickness:          1,
		WriteFiles:         true,
	}
}

// softenable holds the names of parameters that can be softened
var softenable = map[string]bool{"E": true, "nu": true, "sig0": true, "H": true}

// Validate checks parameters
func (o *Pars) Validate() error {
	if o.E+o.EMin <= 0 {
		return chk.Err("Young's modulus must be positive. E + E_min = %g is invalid", o.E+o.EMin)
	}
	if o.Nu < 0 || o.Nu >= 0.5 {
		return chk.Err("Poisson's coefficient must be in [0, 0.5). nu = %g is invalid", o.Nu)
	}
	if o.IntegDegree < 1 {
		return chk.Err("integration degree must be at least 1. integ_degree = %d is invalid", o.IntegDegree)
	}
	if o.Thickness <= 0 {
		return chk.Err("thickness must be positive. thickness = %g is invalid", o.Thickness)
	}
	for _, name := range o.SoftenedPars {
		if !softenable[name] {
			return chk.Err("parameter %q cannot be softened", name)
		}
	}
	return nil
}

// Sig0 returns the initial yield stress. Returns zero if not given
func (o *Pars) Sig0() float64 {
	return o.YieldSurf.Pars["sig0"]
}

// GetCopy returns a deep copy of parameters
func (o *Pars) GetCopy() *Pars {
	c := *o
	c.YieldSurf.Pars = make(map[string]float64, len(o.YieldSurf.Pars))
	for k, v := range o.YieldSurf.Pars {
		c.YieldSurf.Pars[k] = v
	}
	c.F = append([]float64(nil), o.F...)
	c.SoftenedPars = append([]string(nil), o.SoftenedPars...)
	return &c
}

// Override sets the parameters whose keys are also in vals. Returns the keys that were set
func (o *Pars) Override(vals map[string]any) (keys []string, err error) {
	b, err := yaml.Marshal(o)
	if err != nil {
		return nil, chk.Err("cannot encode parameters:\n%v", err)
	}
	var m map[string]any
	err = yaml.Unmarshal(b, &m)
	if err != nil {
		return nil, chk.Err("cannot decode parameters:\n%v", err)
	}
	for k, v := range vals {
		if _, ok := m[k]; ok {
			m[k] = v
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return
	}
	sort.Strings(keys)
	b, err = yaml.Marshal(m)
	if err != nil {
		return nil, chk.Err("cannot encode parameters:\n%v", err)
	}
	err = yaml.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot set parameters %v:\n%v", keys, err)
	}
	return
}

// ReadPars reads parameters from a JSON (.json) or YAML (.yaml, .yml) file.
// Missing values are taken from DefaultPars
func ReadPars(fn string) (o *Pars, err error) {
	b, err := os.ReadFile(fn)
	if err != nil {
		return nil, chk.Err("cannot read parameters file %q:\n%v", fn, err)
	}
	o = DefaultPars()
	err = decode(fn, b, o)
	if err != nil {
		return nil, err
	}
	err = o.Validate()
	return
}

// WritePars writes parameters to a YAML file
func (o *Pars) WritePars(dirout, fnkey string) (err error) {
	b, err := yaml.Marshal(o)
	if err != nil {
		return chk.Err("cannot encode parameters:\n%v", err)
	}
	io.WriteFileD(dirout, fnkey+".yaml", bytes.NewBuffer(b))
	return
}

// decode decodes JSON or YAML data depending on the file extension
func decode(fn string, b []byte, v any) (err error) {
	switch strings.ToLower(filepath.Ext(fn)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, v)
	case ".json", ".sim":
		err = json.Unmarshal(b, v)
	default:
		return chk.Err("cannot decode file %q: extension must be .json, .sim, .yaml or .yml", fn)
	}
	if err != nil {
		return chk.Err("cannot decode file %q:\n%v", fn, err)
	}
	return
}
