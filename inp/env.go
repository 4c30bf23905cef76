// Copyright 2026 The FEniQS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"errors"
	"io/fs"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix of the environment variables; e.g. FENIQS_DIROUT
const EnvPrefix = "FENIQS"

// Env holds the runtime environment
type Env struct {
	DirOut  string `envconfig:"DIROUT" default:"/tmp/feniqs"` // directory for output
	Encoder string `envconfig:"ENCODER" default:"gob"`        // encoder name: "gob" or "json"
	Verbose bool   `envconfig:"VERBOSE" default:"false"`      // show messages
	ShowR   bool   `envconfig:"SHOWR" default:"false"`        // show residuals
}

// LoadEnv loads the environment. Variables in dotenv files (e.g. ".env") are
// loaded first without overriding the ones already set; missing files are skipped
func LoadEnv(dotenvs ...string) (o *Env, err error) {
	for _, fn := range dotenvs {
		if _, e := os.Stat(fn); errors.Is(e, fs.ErrNotExist) {
			continue
		}
		if err = godotenv.Load(fn); err != nil {
			return nil, chk.Err("cannot load environment file %q:\n%v", fn, err)
		}
	}
	o = new(Env)
	if err = envconfig.Process(EnvPrefix, o); err != nil {
		return nil, chk.Err("cannot process environment:\n%v", err)
	}
	if o.Encoder != "gob" && o.Encoder != "json" {
		return nil, chk.Err("encoder must be \"gob\" or \"json\". %q is invalid", o.Encoder)
	}
	return
}
