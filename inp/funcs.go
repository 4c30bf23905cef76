// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// FuncData holds the definition of a function of time
//  Example: {"type":"rmp", "prms":[{"n":"ca","v":0}, {"n":"cb","v":1}, {"n":"ta","v":0}, {"n":"tb","v":1}]}
type FuncData struct {
	Name string     `json:"name" yaml:"name"` // name of function; e.g. "load"
	Type string     `json:"type" yaml:"type"` // type of function; e.g. "cte", "lin", "rmp"
	Prms dbf.Params `json:"prms" yaml:"prms"` // parameters
}

// New allocates and initialises the function
func (o *FuncData) New() (f dbf.T, err error) {
	if o.Type == "" {
		return nil, chk.Err("type of function %q is missing", o.Name)
	}
	f, err = newFcn(o.Type, o.Prms)
	if err != nil {
		return nil, chk.Err("cannot allocate function %q of type %q:\n%v", o.Name, o.Type, err)
	}
	return
}

// newFcn allocates a function with dbf.New, returning its panics as errors;
// e.g. unknown type names or parameters
func newFcn(typ string, prms dbf.Params) (f dbf.T, err error) {
	defer func() {
		if r := recover(); r != nil {
			f, err = nil, chk.Err("%v", r)
		}
	}()
	return dbf.New(typ, prms), nil
}

// FuncsData holds functions definitions
type FuncsData []*FuncData

// Get returns the function named fname
func (o FuncsData) Get(fname string) (dbf.T, error) {
	for _, f := range o {
		if f.Name == fname {
			return f.New()
		}
	}
	return nil, chk.Err("cannot find function named %q", fname)
}
