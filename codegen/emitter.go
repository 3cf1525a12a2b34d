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

package codegen

import (
	"fmt"
	"io"

	"github.com/dolthub/swiss"
	"github.com/pkg/errors"

	"github.com/db47h/vmtranslate/vmc"
)

// errWriter wraps the output sink and latches the first write error, so
// that the handful of fmt.Fprintln/Fprintf calls behind every Emit don't
// each need their own error check.
type errWriter struct {
	w   io.Writer
	err error
}

// Write implements io.Writer. Once a write fails, Write keeps returning the
// latched error without touching the underlying writer.
func (w *errWriter) Write(p []byte) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err = w.w.Write(p)
	if err != nil {
		w.err = errors.Wrap(err, "write failed")
	}
	return n, w.err
}

// Emitter is the Nand2Tetris VM-to-HACK code generator. One Emitter
// instance lives for the whole translation run: labelCounter must never
// reset between units, and the set of defined labels/functions is tracked
// across the whole output to catch accidental collisions early.
type Emitter struct {
	w            *errWriter
	fileBase     string
	labelCounter uint64
	// seen tracks every Label- and Function-defined symbol emitted so far
	// in this run, across all units, so that a collision is caught at the
	// point of definition rather than silently producing a malformed
	// assembly file with duplicate label targets.
	seen *swiss.Map[string, vmc.Command]
}

// New creates an Emitter writing to w.
func New(w io.Writer) *Emitter {
	return &Emitter{
		w:    &errWriter{w: w},
		seen: swiss.NewMap[string, vmc.Command](64),
	}
}

// SetFileBase sets the static-symbol namespace used for subsequent `static`
// segment accesses, until the next call to SetFileBase.
func (e *Emitter) SetFileBase(name string) {
	e.fileBase = name
}

// Err returns the first write error encountered by the Emitter, if any.
func (e *Emitter) Err() error {
	if e.w.err == nil {
		return nil
	}
	return errors.Wrap(e.w.err, "codegen")
}

// Close flushes no buffered state (the Emitter is unbuffered) and returns
// any latched write error.
func (e *Emitter) Close() error {
	return e.Err()
}

// nextLabel returns a fresh process-wide-unique numeric suffix, for use in
// comparison and call-return labels.
func (e *Emitter) nextLabel() uint64 {
	n := e.labelCounter
	e.labelCounter++
	return n
}

// markDefined registers that symbol is defined by cmd, returning a
// *vmc.Error if it was already defined elsewhere.
func (e *Emitter) markDefined(symbol string, cmd vmc.Command) *vmc.Error {
	if prev, ok := e.seen.Get(symbol); ok {
		return vmc.NewError(vmc.Malformed, cmd.File, cmd.Line,
			"symbol %q already defined at %s:%d", symbol, prev.File, prev.Line)
	}
	e.seen.Put(symbol, cmd)
	return nil
}

// comment writes the traceability header every emitted block starts with.
func (e *Emitter) comment(format string, args ...interface{}) {
	fmt.Fprintf(e.w, "// %s\n", fmt.Sprintf(format, args...))
}

// emit writes one or more raw assembly lines.
func (e *Emitter) emit(lines ...string) {
	for _, l := range lines {
		fmt.Fprintln(e.w, l)
	}
}

// Emit lowers a single command to assembly. The command's Kind selects the
// lowering; a Kind with no case in the switch below is reported as an
// UnknownOpcode error rather than emitting anything.
func (e *Emitter) Emit(cmd vmc.Command) error {
	switch cmd.Kind {
	case vmc.Arithmetic:
		return e.emitArithmetic(cmd)
	case vmc.Push:
		return e.emitPush(cmd)
	case vmc.Pop:
		return e.emitPop(cmd)
	case vmc.Label:
		return e.emitLabel(cmd)
	case vmc.Goto:
		return e.emitGoto(cmd)
	case vmc.IfGoto:
		return e.emitIfGoto(cmd)
	case vmc.Function:
		return e.emitFunction(cmd)
	case vmc.Call:
		return e.emitCall(cmd)
	case vmc.Return:
		return e.emitReturn(cmd)
	}
	return vmc.NewError(vmc.UnknownOpcode, cmd.File, cmd.Line, "unhandled command kind %v", cmd.Kind)
}

// WriteBootstrap emits the multi-file bootstrap prologue: SP = 256, and,
// when callSysInit is true, a `call Sys.init 0`.
func (e *Emitter) WriteBootstrap(callSysInit bool) error {
	e.comment("bootstrap")
	e.emit(
		"@256",
		"D=A",
		"@SP",
		"M=D",
	)
	if callSysInit {
		return e.emitCall(vmc.Command{Kind: vmc.Call, Symbol: "Sys.init", NArgs: 0})
	}
	return nil
}
