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

package codegen_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/db47h/vmtranslate/codegen"
	"github.com/db47h/vmtranslate/internal/hackcpu"
	"github.com/db47h/vmtranslate/vmc"
)

const maxSteps = 100000

// run assembles and executes cmds on a fresh Emitter/CPU pair, returning the
// CPU state after the program runs off the end of the instruction stream.
func run(t *testing.T, fileBase string, cmds ...vmc.Command) *hackcpu.CPU {
	t.Helper()
	var buf bytes.Buffer
	e := codegen.New(&buf)
	e.SetFileBase(fileBase)
	for _, cmd := range cmds {
		require.NoError(t, e.Emit(cmd))
	}
	require.NoError(t, e.Close())

	prog, err := hackcpu.Assemble(buf.String())
	require.NoError(t, err)

	cpu := hackcpu.New()
	require.NoError(t, cpu.Run(prog, maxSteps))
	return cpu
}

func pushConst(n int) vmc.Command {
	return vmc.Command{Kind: vmc.Push, Segment: vmc.SegConstant, Index: n}
}

func arith(op vmc.Op) vmc.Command {
	return vmc.Command{Kind: vmc.Arithmetic, Op: op}
}

func TestEmit_add(t *testing.T) {
	cpu := run(t, "Foo", pushConst(7), pushConst(8), arith(vmc.OpAdd))
	assert.Equal(t, 257, cpu.Mem[0]) // SP
	assert.Equal(t, 15, cpu.Mem[256])
}

func TestEmit_sub(t *testing.T) {
	cpu := run(t, "Foo", pushConst(10), pushConst(3), arith(vmc.OpSub))
	assert.Equal(t, 7, cpu.Mem[256])
}

func TestEmit_neg(t *testing.T) {
	cpu := run(t, "Foo", pushConst(5), arith(vmc.OpNeg))
	assert.Equal(t, -5, cpu.Mem[256])
}

func TestEmit_andOrNot(t *testing.T) {
	cpu := run(t, "Foo", pushConst(12), pushConst(10), arith(vmc.OpAnd))
	assert.Equal(t, 8, cpu.Mem[256])

	cpu = run(t, "Foo", pushConst(12), pushConst(10), arith(vmc.OpOr))
	assert.Equal(t, 14, cpu.Mem[256])

	cpu = run(t, "Foo", pushConst(0), arith(vmc.OpNot))
	assert.Equal(t, -1, cpu.Mem[256])
}

func TestEmit_comparisons(t *testing.T) {
	cpu := run(t, "Foo", pushConst(5), pushConst(5), arith(vmc.OpEq))
	assert.Equal(t, -1, cpu.Mem[256])

	cpu = run(t, "Foo", pushConst(5), pushConst(6), arith(vmc.OpEq))
	assert.Equal(t, 0, cpu.Mem[256])

	cpu = run(t, "Foo", pushConst(3), pushConst(9), arith(vmc.OpLt))
	assert.Equal(t, -1, cpu.Mem[256])

	cpu = run(t, "Foo", pushConst(9), pushConst(3), arith(vmc.OpGt))
	assert.Equal(t, -1, cpu.Mem[256])
}

func TestEmit_comparisons_uniqueLabels(t *testing.T) {
	// Two eq comparisons in the same unit must not collide on label names.
	cpu := run(t, "Foo",
		pushConst(1), pushConst(1), arith(vmc.OpEq),
		pushConst(2), pushConst(3), arith(vmc.OpEq),
	)
	assert.Equal(t, 258, cpu.Mem[0])
	assert.Equal(t, -1, cpu.Mem[256])
	assert.Equal(t, 0, cpu.Mem[257])
}

func pushPop(seg vmc.Segment, idx int) (vmc.Command, vmc.Command) {
	return vmc.Command{Kind: vmc.Push, Segment: seg, Index: idx},
		vmc.Command{Kind: vmc.Pop, Segment: seg, Index: idx}
}

func TestEmit_localSegment(t *testing.T) {
	var buf bytes.Buffer
	e := codegen.New(&buf)
	e.SetFileBase("Foo")
	require.NoError(t, e.Emit(pushConst(42)))
	require.NoError(t, e.Emit(vmc.Command{Kind: vmc.Pop, Segment: vmc.SegLocal, Index: 2}))
	require.NoError(t, e.Emit(vmc.Command{Kind: vmc.Push, Segment: vmc.SegLocal, Index: 2}))
	require.NoError(t, e.Close())

	prog, err := hackcpu.Assemble(buf.String())
	require.NoError(t, err)
	cpu := hackcpu.New()
	cpu.Mem[1] = 300 // LCL
	require.NoError(t, cpu.Run(prog, maxSteps))

	assert.Equal(t, 42, cpu.Mem[302])
	assert.Equal(t, 42, cpu.Mem[256]) // pushed back onto the (now-empty) stack
}

func TestEmit_tempAndPointer(t *testing.T) {
	var buf bytes.Buffer
	e := codegen.New(&buf)
	e.SetFileBase("Foo")
	require.NoError(t, e.Emit(pushConst(99)))
	require.NoError(t, e.Emit(vmc.Command{Kind: vmc.Pop, Segment: vmc.SegTemp, Index: 3}))
	require.NoError(t, e.Emit(pushConst(7)))
	require.NoError(t, e.Emit(vmc.Command{Kind: vmc.Pop, Segment: vmc.SegPointer, Index: 1}))
	require.NoError(t, e.Close())

	prog, err := hackcpu.Assemble(buf.String())
	require.NoError(t, err)
	cpu := hackcpu.New()
	require.NoError(t, cpu.Run(prog, maxSteps))

	assert.Equal(t, 99, cpu.Mem[vmc.TempBase+3])
	assert.Equal(t, 7, cpu.Mem[vmc.PointerBase+1]) // THAT
}

func TestEmit_staticSegment(t *testing.T) {
	var buf bytes.Buffer
	e := codegen.New(&buf)
	e.SetFileBase("Foo")
	require.NoError(t, e.Emit(pushConst(123)))
	require.NoError(t, e.Emit(vmc.Command{Kind: vmc.Pop, Segment: vmc.SegStatic, Index: 0}))
	require.NoError(t, e.Emit(vmc.Command{Kind: vmc.Push, Segment: vmc.SegStatic, Index: 0}))
	require.NoError(t, e.Close())

	prog, err := hackcpu.Assemble(buf.String())
	require.NoError(t, err)
	cpu := hackcpu.New()
	require.NoError(t, cpu.Run(prog, maxSteps))
	assert.Equal(t, 123, cpu.Mem[256])
}

func TestEmit_popConstantIsBadSegment(t *testing.T) {
	var buf bytes.Buffer
	e := codegen.New(&buf)
	err := e.Emit(vmc.Command{Kind: vmc.Pop, Segment: vmc.SegConstant, Index: 0, File: "x.vm", Line: 1})
	require.Error(t, err)
	verr, ok := err.(*vmc.Error)
	require.True(t, ok)
	assert.Equal(t, vmc.BadSegment, verr.Kind)
}

func TestEmit_unknownSegmentIsBadSegment(t *testing.T) {
	var buf bytes.Buffer
	e := codegen.New(&buf)

	err := e.Emit(vmc.Command{Kind: vmc.Push, Segment: vmc.SegInvalid, SegmentName: "nosuch", Index: 1, File: "x.vm", Line: 1})
	require.Error(t, err)
	verr, ok := err.(*vmc.Error)
	require.True(t, ok)
	assert.Equal(t, vmc.BadSegment, verr.Kind)
	assert.Contains(t, verr.Msg, "nosuch")

	err = e.Emit(vmc.Command{Kind: vmc.Pop, Segment: vmc.SegInvalid, SegmentName: "nosuch", Index: 1, File: "x.vm", Line: 2})
	require.Error(t, err)
	verr, ok = err.(*vmc.Error)
	require.True(t, ok)
	assert.Equal(t, vmc.BadSegment, verr.Kind)
	assert.Contains(t, verr.Msg, "nosuch")
}

func TestEmit_branching(t *testing.T) {
	cpu := run(t, "Foo",
		pushConst(1),
		vmc.Command{Kind: vmc.IfGoto, Symbol: "SKIP"},
		pushConst(111),
		vmc.Command{Kind: vmc.Goto, Symbol: "END"},
		vmc.Command{Kind: vmc.Label, Symbol: "SKIP"},
		pushConst(222),
		vmc.Command{Kind: vmc.Label, Symbol: "END"},
	)
	assert.Equal(t, 222, cpu.Mem[256])
}

func TestEmit_duplicateLabelRejected(t *testing.T) {
	var buf bytes.Buffer
	e := codegen.New(&buf)
	require.NoError(t, e.Emit(vmc.Command{Kind: vmc.Label, Symbol: "LOOP", File: "a.vm", Line: 1}))
	err := e.Emit(vmc.Command{Kind: vmc.Label, Symbol: "LOOP", File: "a.vm", Line: 5})
	require.Error(t, err)
	verr, ok := err.(*vmc.Error)
	require.True(t, ok)
	assert.Equal(t, vmc.Malformed, verr.Kind)
}

func TestEmit_callReturn(t *testing.T) {
	var buf bytes.Buffer
	e := codegen.New(&buf)
	e.SetFileBase("Main")

	require.NoError(t, e.WriteBootstrap(false))
	// call Double(21), which doubles its one argument and returns it.
	require.NoError(t, e.Emit(pushConst(21)))
	require.NoError(t, e.Emit(vmc.Command{Kind: vmc.Call, Symbol: "Double", NArgs: 1}))
	require.NoError(t, e.Emit(vmc.Command{Kind: vmc.Goto, Symbol: "HALT"}))

	e.SetFileBase("Double")
	require.NoError(t, e.Emit(vmc.Command{Kind: vmc.Function, Symbol: "Double", NVars: 0}))
	require.NoError(t, e.Emit(vmc.Command{Kind: vmc.Push, Segment: vmc.SegArgument, Index: 0}))
	require.NoError(t, e.Emit(vmc.Command{Kind: vmc.Push, Segment: vmc.SegArgument, Index: 0}))
	require.NoError(t, e.Emit(arith(vmc.OpAdd)))
	require.NoError(t, e.Emit(vmc.Command{Kind: vmc.Pop, Segment: vmc.SegArgument, Index: 0}))
	require.NoError(t, e.Emit(vmc.Command{Kind: vmc.Push, Segment: vmc.SegArgument, Index: 0}))
	require.NoError(t, e.Emit(vmc.Command{Kind: vmc.Return}))

	e.SetFileBase("Main")
	require.NoError(t, e.Emit(vmc.Command{Kind: vmc.Label, Symbol: "HALT"}))
	require.NoError(t, e.Close())

	prog, err := hackcpu.Assemble(buf.String())
	require.NoError(t, err)
	cpu := hackcpu.New()
	require.NoError(t, cpu.Run(prog, maxSteps))

	assert.Equal(t, 42, cpu.Mem[256])
	assert.Equal(t, 257, cpu.Mem[0]) // SP back to one past the return value
}

// TestEmit_callReturnRestoresSegmentPointers exercises the frame-restore
// half of the call/return ABI (spec §8 scenario 4): a nested call, invoked
// with LCL/ARG/THIS/THAT already holding distinct non-zero values, must
// come back with all four pointers exactly as they were before the call.
func TestEmit_callReturnRestoresSegmentPointers(t *testing.T) {
	var buf bytes.Buffer
	e := codegen.New(&buf)
	e.SetFileBase("Main")

	require.NoError(t, e.WriteBootstrap(false))
	require.NoError(t, e.Emit(pushConst(21)))
	require.NoError(t, e.Emit(vmc.Command{Kind: vmc.Call, Symbol: "Double", NArgs: 1}))
	require.NoError(t, e.Emit(vmc.Command{Kind: vmc.Goto, Symbol: "HALT"}))

	e.SetFileBase("Double")
	require.NoError(t, e.Emit(vmc.Command{Kind: vmc.Function, Symbol: "Double", NVars: 0}))
	require.NoError(t, e.Emit(vmc.Command{Kind: vmc.Push, Segment: vmc.SegArgument, Index: 0}))
	require.NoError(t, e.Emit(vmc.Command{Kind: vmc.Push, Segment: vmc.SegArgument, Index: 0}))
	require.NoError(t, e.Emit(arith(vmc.OpAdd)))
	require.NoError(t, e.Emit(vmc.Command{Kind: vmc.Pop, Segment: vmc.SegArgument, Index: 0}))
	require.NoError(t, e.Emit(vmc.Command{Kind: vmc.Push, Segment: vmc.SegArgument, Index: 0}))
	require.NoError(t, e.Emit(vmc.Command{Kind: vmc.Return}))

	e.SetFileBase("Main")
	require.NoError(t, e.Emit(vmc.Command{Kind: vmc.Label, Symbol: "HALT"}))
	require.NoError(t, e.Close())

	prog, err := hackcpu.Assemble(buf.String())
	require.NoError(t, err)
	cpu := hackcpu.New()
	// Sentinel values for the caller's segment pointers, distinct from each
	// other and from anything the call/return sequence itself would write.
	cpu.Mem[1] = 1000 // LCL
	cpu.Mem[2] = 2000 // ARG
	cpu.Mem[3] = 3000 // THIS
	cpu.Mem[4] = 4000 // THAT
	require.NoError(t, cpu.Run(prog, maxSteps))

	assert.Equal(t, 42, cpu.Mem[256])
	assert.Equal(t, 257, cpu.Mem[0])
	assert.Equal(t, 1000, cpu.Mem[1], "LCL restored")
	assert.Equal(t, 2000, cpu.Mem[2], "ARG restored")
	assert.Equal(t, 3000, cpu.Mem[3], "THIS restored")
	assert.Equal(t, 4000, cpu.Mem[4], "THAT restored")
}

func TestWriteBootstrap_withSysInit(t *testing.T) {
	var buf bytes.Buffer
	e := codegen.New(&buf)
	require.NoError(t, e.WriteBootstrap(true))
	require.NoError(t, e.Emit(vmc.Command{Kind: vmc.Function, Symbol: "Sys.init", NVars: 0}))
	require.NoError(t, e.Emit(pushConst(1)))
	require.NoError(t, e.Close())

	prog, err := hackcpu.Assemble(buf.String())
	require.NoError(t, err)
	cpu := hackcpu.New()
	// Sys.init has no return in this fragment: execution runs off the end of
	// the program after its body. The check is only that SP got initialized
	// to 256 by the bootstrap before the call pushed its frame.
	_ = cpu.Run(prog, maxSteps)
	assert.GreaterOrEqual(t, cpu.Mem[0], 256)
}
