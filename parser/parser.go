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

package parser

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/db47h/vmtranslate/vmc"
)

const maxErrors = 10

// zeroArgKinds maps the first token of a line to the non-arithmetic
// command kinds that take no arguments at all.
var zeroArgKinds = map[string]vmc.Kind{
	"return": vmc.Return,
}

var jumpKinds = map[string]vmc.Kind{
	"label":   vmc.Label,
	"goto":    vmc.Goto,
	"if-goto": vmc.IfGoto,
}

var callLikeKinds = map[string]vmc.Kind{
	"function": vmc.Function,
	"call":     vmc.Call,
}

var segArgKinds = map[string]vmc.Kind{
	"push": vmc.Push,
	"pop":  vmc.Pop,
}

// Parse reads VM source from r, associating file with every produced
// vmc.Command (and with any reported errors) and returns the ordered
// sequence of commands. If one or more lines fail to parse, Parse returns
// up to 10 accumulated errors as a vmc.ErrorList and a nil command slice.
func Parse(file string, r io.Reader) ([]vmc.Command, error) {
	var (
		cmds []vmc.Command
		errs vmc.ErrorList
		sc   = bufio.NewScanner(r)
		line int
	)
	for sc.Scan() {
		line++
		if len(errs) >= maxErrors {
			break
		}
		raw := sc.Text()
		if idx := strings.Index(raw, "//"); idx >= 0 {
			raw = raw[:idx]
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		fields := strings.Fields(raw)
		cmd, err := parseLine(file, line, fields)
		if err != nil {
			errs.Add(err)
			continue
		}
		cmds = append(cmds, cmd)
	}
	if err := sc.Err(); err != nil {
		errs.Add(vmc.NewError(vmc.IoError, file, line, "read failed: %v", err))
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return cmds, nil
}

func parseLine(file string, line int, fields []string) (vmc.Command, *vmc.Error) {
	op := fields[0]
	rest := fields[1:]

	if _, ok := vmc.IsArithmeticOp(op); ok {
		if len(rest) != 0 {
			return vmc.Command{}, vmc.NewError(vmc.Malformed, file, line,
				"%q takes no arguments, got %d", op, len(rest))
		}
		return vmc.Command{Kind: vmc.Arithmetic, Op: vmc.Op(op), File: file, Line: line}, nil
	}

	if kind, ok := zeroArgKinds[op]; ok {
		if len(rest) != 0 {
			return vmc.Command{}, vmc.NewError(vmc.Malformed, file, line,
				"%q takes no arguments, got %d", op, len(rest))
		}
		return vmc.Command{Kind: kind, File: file, Line: line}, nil
	}

	if kind, ok := jumpKinds[op]; ok {
		if len(rest) != 1 {
			return vmc.Command{}, vmc.NewError(vmc.Malformed, file, line,
				"%q expects exactly one symbol argument, got %d", op, len(rest))
		}
		return vmc.Command{Kind: kind, Symbol: rest[0], File: file, Line: line}, nil
	}

	if kind, ok := callLikeKinds[op]; ok {
		if len(rest) != 2 {
			return vmc.Command{}, vmc.NewError(vmc.Malformed, file, line,
				"%q expects a name and a count, got %d arguments", op, len(rest))
		}
		n, err := parseNonNegative(rest[1])
		if err != nil {
			return vmc.Command{}, vmc.NewError(vmc.Malformed, file, line,
				"invalid count %q for %q: %v", rest[1], op, err)
		}
		cmd := vmc.Command{Kind: kind, Symbol: rest[0], File: file, Line: line}
		if kind == vmc.Function {
			cmd.NVars = n
		} else {
			cmd.NArgs = n
		}
		return cmd, nil
	}

	if kind, ok := segArgKinds[op]; ok {
		if len(rest) != 2 {
			return vmc.Command{}, vmc.NewError(vmc.Malformed, file, line,
				"%q expects a segment and an index, got %d arguments", op, len(rest))
		}
		// Segment names aren't validated here: codegen rejects unsupported
		// segments as BadSegment once it knows the push/pop direction. Only
		// the index's arity and shape are this layer's concern.
		seg, ok := vmc.ParseSegment(rest[0])
		if !ok {
			seg = vmc.SegInvalid
		}
		idx, err := parseNonNegative(rest[1])
		if err != nil {
			return vmc.Command{}, vmc.NewError(vmc.Malformed, file, line,
				"invalid index %q: %v", rest[1], err)
		}
		return vmc.Command{Kind: kind, Segment: seg, SegmentName: rest[0], Index: idx, File: file, Line: line}, nil
	}

	return vmc.Command{}, vmc.NewError(vmc.UnknownOpcode, file, line, "unknown command %q", op)
}

func parseNonNegative(s string) (int, error) {
	n, err := strconv.ParseInt(s, 10, 16)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, strconv.ErrRange
	}
	return int(n), nil
}
