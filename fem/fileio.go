// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	goio "io"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Encoder defines encoders; e.g. gob or json
type Encoder interface {
	Encode(e interface{}) error
}

// Decoder defines decoders; e.g. gob or json
type Decoder interface {
	Decode(e interface{}) error
}

// GetEncoder returns a new encoder
func GetEncoder(w goio.Writer, enctype string) Encoder {
	if enctype == "json" {
		return json.NewEncoder(w)
	}
	return gob.NewEncoder(w)
}

// GetDecoder returns a new decoder
func GetDecoder(r goio.Reader, enctype string) Decoder {
	if enctype == "json" {
		return json.NewDecoder(r)
	}
	return gob.NewDecoder(r)
}

// SaveSol saves solution (o.Sol) to a file which name is set with tidx (time output index)
func (o Domain) SaveSol(tidx int, verbose bool) (err error) {

	// buffer and encoder
	var buf bytes.Buffer
	enc := GetEncoder(&buf, o.EncType)

	// encode Sol
	err = enc.Encode(o.Sol.T)
	if err != nil {
		return chk.Err("cannot encode Domain.Sol.T\n%v", err)
	}
	err = enc.Encode(o.Sol.Y)
	if err != nil {
		return chk.Err("cannot encode Domain.Sol.Y\n%v", err)
	}

	// save file
	return save_file(out_nod_path(o.DirOut, o.Key, o.EncType, tidx), &buf, verbose)
}

// ReadSol reads Solution from a file which name is set with tidx (time output index)
func (o *Domain) ReadSol(dir, fnkey, enctype string, tidx int) (err error) {

	// open file
	fil, err := os.Open(out_nod_path(dir, fnkey, enctype, tidx))
	if err != nil {
		return
	}
	defer fil.Close()

	// get decoder
	dec := GetDecoder(fil, enctype)

	// decode Sol
	err = dec.Decode(&o.Sol.T)
	if err != nil {
		return chk.Err("cannot decode Domain.Sol.T\n%v", err)
	}
	err = dec.Decode(&o.Sol.Y)
	if err != nil {
		return chk.Err("cannot decode Domain.Sol.Y\n%v", err)
	}
	if len(o.Sol.Y) != o.Ny {
		return chk.Err("length of primary variables vector read is not equal to the one allocated. %d != %d", len(o.Sol.Y), o.Ny)
	}
	return
}

// SaveIvs saves elements's internal values to a file which name is set with tidx (time output index)
func (o Domain) SaveIvs(tidx int, verbose bool) (err error) {

	// buffer and encoder
	var buf bytes.Buffer
	enc := GetEncoder(&buf, o.EncType)

	// encode internal variables
	for _, e := range o.Elems {
		err = e.Encode(enc)
		if err != nil {
			return
		}
	}

	// save file
	return save_file(out_ele_path(o.DirOut, o.Key, o.EncType, tidx), &buf, verbose)
}

// ReadIvs reads elements's internal values from a file which name is set with tidx (time output index)
func (o *Domain) ReadIvs(dir, fnkey, enctype string, tidx int) (err error) {

	// open file
	fil, err := os.Open(out_ele_path(dir, fnkey, enctype, tidx))
	if err != nil {
		return
	}
	defer fil.Close()

	// decode internal variables
	dec := GetDecoder(fil, enctype)
	for _, e := range o.Elems {
		err = e.Decode(dec)
		if err != nil {
			return chk.Err("cannot decode element %d:\n%v", e.Id(), err)
		}
	}
	return
}

// Save performs output of Solution and Internal values to files
func (o *Domain) Save(tidx int, verbose bool) (err error) {
	err = o.SaveSol(tidx, verbose)
	if err != nil {
		return
	}
	return o.SaveIvs(tidx, verbose)
}

// Read performs the inverse operation of Save
func (o *Domain) Read(sum *Summary, tidx int) (err error) {
	if tidx < 0 || tidx >= len(sum.OutTimes) {
		return chk.Err("time output index %d is out of range [0, %d)", tidx, len(sum.OutTimes))
	}
	err = o.ReadIvs(sum.Dirout, sum.Fnkey, sum.EncType, tidx)
	if err != nil {
		return
	}
	return o.ReadSol(sum.Dirout, sum.Fnkey, sum.EncType, tidx)
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func out_nod_path(dir, fnkey, enctype string, tidx int) string {
	return filepath.Join(dir, io.Sf("%s_nod_%010d.%s", fnkey, tidx, enctype))
}

func out_ele_path(dir, fnkey, enctype string, tidx int) string {
	return filepath.Join(dir, io.Sf("%s_ele_%010d.%s", fnkey, tidx, enctype))
}

func save_file(filename string, buf *bytes.Buffer, verbose bool) (err error) {
	err = os.MkdirAll(filepath.Dir(filename), 0777)
	if err != nil {
		return
	}
	err = os.WriteFile(filename, buf.Bytes(), 0644)
	if err != nil {
		return
	}
	if verbose {
		io.Pfblue2("file <%s> written\n", filename)
	}
	return
}
