// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Summary records summary of outputs
type Summary struct {

	// main data
	OutTimes []float64   // [nOutTimes] output times
	Iters    []int       // [nOutTimes] number of iterations to reach each output time
	Resids   [][]float64 // largest residual of each iteration [nsteps][nit]
	Dirout   string      // directory where results are stored
	Fnkey    string      // filename key of simulation
	EncType  string      // encoder type
}

// NewSummary returns a new summary
func NewSummary(dirout, fnkey, enctype string) *Summary {
	return &Summary{Dirout: dirout, Fnkey: fnkey, EncType: enctype}
}

// SaveResults saves the results of the domain (nodes and elements) and records time t
func (o *Summary) SaveResults(d *Domain, t float64, nit int, verbose bool) (err error) {
	err = d.Save(len(o.OutTimes), verbose)
	if err != nil {
		return chk.Err("SaveResults failed:\n%v", err)
	}
	o.Record(t, nit)
	return
}

// Record records output time t reached after nit iterations
func (o *Summary) Record(t float64, nit int) {
	o.OutTimes = append(o.OutTimes, t)
	o.Iters = append(o.Iters, nit)
}

// Save saves summary to disc
func (o Summary) Save() (err error) {

	// buffer and encoder
	var buf bytes.Buffer
	enc := GetEncoder(&buf, o.EncType)

	// encode summary
	err = enc.Encode(o)
	if err != nil {
		return chk.Err("cannot encode summary:\n%v", err)
	}

	// save file
	return save_file(out_sum_path(o.Dirout, o.Fnkey, o.EncType), &buf, false)
}

// ReadSum reads summary back
func ReadSum(dir, fnkey, enctype string) (o *Summary, err error) {

	// open file
	fil, err := os.Open(out_sum_path(dir, fnkey, enctype))
	if err != nil {
		return nil, chk.Err("cannot open summary file:\n%v", err)
	}
	defer fil.Close()

	// decode summary
	o = new(Summary)
	err = GetDecoder(fil, enctype).Decode(o)
	if err != nil {
		return nil, chk.Err("cannot decode summary:\n%v", err)
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// appendResid appends a residual; newStep starts a new list
func (o *Summary) appendResid(newStep bool, largFb float64) {
	if newStep || len(o.Resids) == 0 {
		o.Resids = append(o.Resids, nil)
	}
	n := len(o.Resids) - 1
	o.Resids[n] = append(o.Resids[n], largFb)
}

func out_sum_path(dir, fnkey, enctype string) string {
	return filepath.Join(dir, io.Sf("%s_sum.%s", fnkey, enctype))
}
