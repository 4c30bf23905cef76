// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from JSON or YAML files
package inp

import (
	"encoding/json"
	goio "io"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Simulation holds all data of a run
type Simulation struct {

	// input
	Desc       string         `json:"desc" yaml:"desc"`               // description of simulation
	Name       string         `json:"name" yaml:"name"`               // name of model; empty => default
	Structure  string         `json:"structure" yaml:"structure"`     // name of structure; e.g. "bar1d"
	StructPars map[string]any `json:"struct_pars" yaml:"struct_pars"` // parameters of structure
	Model      *Pars          `json:"model" yaml:"model"`             // parameters of model
	Solve      SolveOptions   `json:"solve" yaml:"solve"`             // solve options

	// derived
	Key     string `json:"-" yaml:"-"` // simulation key; e.g. mysim01.yaml => mysim01
	DirOut  string `json:"-" yaml:"-"` // directory to save results
	EncType string `json:"-" yaml:"-"` // encoder type
}

// ReadSim reads all simulation data from a JSON (.sim or .json) or YAML (.yaml or .yml) file
func ReadSim(simfilepath string, env *Env) (o *Simulation, err error) {

	// read file
	b, err := os.ReadFile(simfilepath)
	if err != nil {
		return nil, chk.Err("cannot read simulation file %q:\n%v", simfilepath, err)
	}

	// set default values and decode
	o = &Simulation{Model: DefaultPars()}
	o.Solve.SetDefault()
	err = decode(simfilepath, b, o)
	if err != nil {
		return nil, err
	}
	if o.Structure == "" {
		return nil, chk.Err("simulation file %q must name a structure", simfilepath)
	}

	// derived
	o.Key = io.FnKey(filepath.Base(simfilepath))
	o.DirOut = filepath.Join(os.ExpandEnv(env.DirOut), o.Key)
	o.EncType = env.Encoder
	if env.ShowR {
		o.Solve.Solver.ShowR = true
	}

	// check
	err = o.Model.Validate()
	if err != nil {
		return nil, err
	}
	err = o.Solve.PostProcess()
	return
}

// GetInfo returns formatted information
func (o *Simulation) GetInfo(w goio.Writer) (err error) {
	b, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return
}
