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

	"github.com/db47h/vmtranslate/vmc"
)

func (e *Emitter) emitFunction(cmd vmc.Command) error {
	if verr := e.markDefined(cmd.Symbol, cmd); verr != nil {
		return verr
	}
	e.comment("function %s %d", cmd.Symbol, cmd.NVars)
	e.emit("(" + cmd.Symbol + ")")
	for i := 0; i < cmd.NVars; i++ {
		e.emit(
			"@SP",
			"A=M",
			"M=0",
			"@SP",
			"M=M+1",
		)
	}
	return nil
}

// pushD pushes the value currently in D onto the working stack.
func (e *Emitter) pushD() {
	e.emit(
		"@SP",
		"A=M",
		"M=D",
		"@SP",
		"M=M+1",
	)
}

func (e *Emitter) emitCall(cmd vmc.Command) error {
	n := e.nextLabel()
	retLabel := fmt.Sprintf("%s$ret.%d", cmd.Symbol, n)

	e.comment("call %s %d", cmd.Symbol, cmd.NArgs)

	e.emit("@" + retLabel)
	e.emit("D=A")
	e.pushD()

	for _, reg := range []string{"LCL", "ARG", "THIS", "THAT"} {
		e.emit("@"+reg, "D=M")
		e.pushD()
	}

	e.emit(
		"@SP",
		"D=M",
		fmt.Sprintf("@%d", 5+cmd.NArgs),
		"D=D-A",
		"@ARG",
		"M=D",
		"@SP",
		"D=M",
		"@LCL",
		"M=D",
		"@"+cmd.Symbol,
		"0;JMP",
		"(" + retLabel + ")",
	)
	return nil
}

func (e *Emitter) emitReturn(cmd vmc.Command) error {
	e.comment("return")
	e.emit(
		// R13 = endFrame = LCL
		"@LCL",
		"D=M",
		"@R13",
		"M=D",
		// R14 = *(endFrame - 5), the return address, captured before LCL
		// is overwritten below so a zero-argument call can't clobber it.
		"@5",
		"A=D-A",
		"D=M",
		"@R14",
		"M=D",
		// *ARG = pop()
		"@SP",
		"M=M-1",
		"A=M",
		"D=M",
		"@ARG",
		"A=M",
		"M=D",
		// SP = ARG + 1
		"@ARG",
		"D=M+1",
		"@SP",
		"M=D",
		// THAT = *(endFrame - 1)
		"@R13",
		"AM=M-1",
		"D=M",
		"@THAT",
		"M=D",
		// THIS = *(endFrame - 2)
		"@R13",
		"AM=M-1",
		"D=M",
		"@THIS",
		"M=D",
		// ARG = *(endFrame - 3)
		"@R13",
		"AM=M-1",
		"D=M",
		"@ARG",
		"M=D",
		// LCL = *(endFrame - 4)
		"@R13",
		"AM=M-1",
		"D=M",
		"@LCL",
		"M=D",
		// jump to the return address
		"@R14",
		"A=M",
		"0;JMP",
	)
	return nil
}
