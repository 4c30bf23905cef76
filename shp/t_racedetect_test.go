// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_race01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("race01")

	nchan := 4
	done := make(chan error, nchan)

	shapes := make([]*Shape, nchan)
	for i := 0; i < nchan; i++ {
		shapes[i] = Get("tri3", i+1)
	}

	for i := 0; i < nchan; i++ {
		go func(shape *Shape) {
			done <- shape.CalcAtIp([][]float64{
				{0, 1, 0},
				{0, 0, 1},
			}, Ipoint{0.5, 0.5, 0}, true)
		}(shapes[i])
	}

	for i := 0; i < nchan; i++ {
		if err := <-done; err != nil {
			tst.Errorf("CalcAtIp failed:\n%v", err)
		}
	}
	chk.Float64(tst, "J", 1e-17, shapes[0].J, 1)
}
