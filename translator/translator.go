// This file is part of vmtranslate - https://github.com/db47h/vmtranslate
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package translator

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dolthub/swiss"
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/db47h/vmtranslate/codegen"
	"github.com/db47h/vmtranslate/parser"
	"github.com/db47h/vmtranslate/vmc"
)

// Option configures a Driver. Mirrors the functional-options idiom used
// throughout this codebase's ancestry: each Option is applied in order by
// New, to a Driver that has only its input path set, before Run is called.
type Option func(*Driver) error

// WithOutputPath overrides the Driver's computed output path.
func WithOutputPath(path string) Option {
	return func(d *Driver) error { d.outputPath = path; return nil }
}

// Driver resolves a CLI path argument into one or more translation units
// and runs them through the Emitter in order.
type Driver struct {
	path       string
	outputPath string
}

// New creates a Driver for the given input path (a single .vm file or a
// directory of them), applying opts in order.
func New(path string, opts ...Option) (*Driver, error) {
	d := &Driver{path: path}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

type unit struct {
	path string // full path to the .vm file
	base string // file name without directory or extension
}

// resolveUnits determines the input units and output path for d.path,
// per the single-file vs. directory rules.
func (d *Driver) resolveUnits() ([]unit, string, bool, error) {
	info, err := os.Stat(d.path)
	if err != nil {
		return nil, "", false, vmc.NewError(vmc.IoError, d.path, 0, "%v", err)
	}

	if !info.IsDir() {
		if strings.ToLower(filepath.Ext(d.path)) != ".vm" {
			return nil, "", false, vmc.NewError(vmc.IoError, d.path, 0, "not a .vm file")
		}
		base := baseName(d.path)
		out := d.outputPath
		if out == "" {
			out = strings.TrimSuffix(d.path, filepath.Ext(d.path)) + ".asm"
		}
		return []unit{{path: d.path, base: base}}, out, false, nil
	}

	entries, err := os.ReadDir(d.path)
	if err != nil {
		return nil, "", false, vmc.NewError(vmc.IoError, d.path, 0, "%v", err)
	}
	var units []unit
	for _, ent := range entries {
		if ent.IsDir() || strings.ToLower(filepath.Ext(ent.Name())) != ".vm" {
			continue
		}
		units = append(units, unit{path: filepath.Join(d.path, ent.Name()), base: baseName(ent.Name())})
	}
	sort.Slice(units, func(i, j int) bool { return units[i].path < units[j].path })

	dirName := filepath.Base(filepath.Clean(d.path))
	out := d.outputPath
	if out == "" {
		out = filepath.Join(d.path, dirName+".asm")
	}
	return units, out, true, nil
}

func baseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Run resolves the input path, enforces the duplicate-unit invariant,
// opens the output file, and streams every unit's commands through the
// Emitter, emitting a bootstrap prologue first when the input is a
// directory.
func (d *Driver) Run() error {
	units, outPath, bootstrap, err := d.resolveUnits()
	if err != nil {
		return err
	}

	seenBase := swiss.NewMap[string, string](uint32(len(units)) + 1)
	for _, u := range units {
		if prevPath, ok := seenBase.Get(u.base); ok {
			return vmc.NewError(vmc.DuplicateUnit, u.path, 0,
				"unit base name %q collides with %s", u.base, prevPath)
		}
		seenBase.Put(u.base, u.path)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return errors.Wrapf(err, "creating output %s", outPath)
	}
	defer out.Close()

	e := codegen.New(out)

	if bootstrap {
		hasSysInit := false
		for _, u := range units {
			if strings.EqualFold(u.base, "Sys") {
				hasSysInit = true
				break
			}
		}
		if err := e.WriteBootstrap(hasSysInit); err != nil {
			return err
		}
	}

	for _, u := range units {
		if err := d.translateUnit(e, u); err != nil {
			return err
		}
	}

	if err := e.Close(); err != nil {
		return err
	}
	glog.Infof("wrote %s", outPath)
	return nil
}

func (d *Driver) translateUnit(e *codegen.Emitter, u unit) error {
	f, err := os.Open(u.path)
	if err != nil {
		return errors.Wrapf(err, "opening %s", u.path)
	}
	defer f.Close()

	cmds, err := parser.Parse(u.path, f)
	if err != nil {
		return err
	}

	e.SetFileBase(u.base)
	for _, cmd := range cmds {
		if err := e.Emit(cmd); err != nil {
			return err
		}
	}
	glog.Infof("translated %s: %d commands", u.path, len(cmds))
	return nil
}
