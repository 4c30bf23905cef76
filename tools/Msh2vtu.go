// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build ignore

package main

import (
	"github.com/benjaminknopp/FEniQS/inp"
	"github.com/benjaminknopp/FEniQS/out"
	"github.com/benjaminknopp/FEniQS/structure"
	"github.com/cpmech/gosl/io"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// input data: a mesh file or the name of a structure with default parameters
	name := io.ArgToString(0, "inp/data/square.msh")
	dirout := io.ArgToString(1, "/tmp/feniqs")
	io.Pf("\n%s\n", io.ArgsTable(
		"mesh filename or structure", "name", name,
		"output directory", "dirout", dirout,
	))

	// read mesh
	var msh *inp.Mesh
	fnkey := io.FnKey(name)
	if io.FnExt(name) == ".msh" {
		var err error
		msh, err = inp.ReadMsh(name)
		if err != nil {
			io.PfRed("cannot read mesh:\n%v\n", err)
			return
		}
	} else {
		s, err := structure.New(name, nil)
		if err != nil {
			io.PfRed("cannot build structure:\n%v\n", err)
			return
		}
		msh = s.Mesh()
	}

	// write vtu file
	err := out.WriteMeshVtu(msh, dirout, fnkey)
	if err != nil {
		io.PfRed("cannot write vtu file:\n%v\n", err)
		return
	}
	io.Pfblue2("file <%s/%s.vtu> written\n", dirout, fnkey)
}
