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
	"strings"

	"github.com/db47h/vmtranslate/vmc"
)

// binaryComp maps the four non-comparison binary mnemonics to the
// HACK comp field combining D (the upper/later-pushed operand) and the
// in-place M (the lower/earlier-pushed operand).
var binaryComp = map[vmc.Op]string{
	vmc.OpAdd: "D+M",
	vmc.OpSub: "M-D",
	vmc.OpAnd: "D&M",
	vmc.OpOr:  "D|M",
}

var unaryComp = map[vmc.Op]string{
	vmc.OpNeg: "-M",
	vmc.OpNot: "!M",
}

// comparisonJump maps eq/lt/gt to the HACK jump mnemonic that fires when
// the comparison holds, given D = M - D (lower minus upper).
var comparisonJump = map[vmc.Op]string{
	vmc.OpEq: "JEQ",
	vmc.OpGt: "JGT",
	vmc.OpLt: "JLT",
}

func (e *Emitter) emitArithmetic(cmd vmc.Command) error {
	if comp, ok := binaryComp[cmd.Op]; ok {
		e.comment("%s", cmd.Op)
		e.emit(
			"@SP",
			"M=M-1",
			"A=M",
			"D=M",
			"@SP",
			"M=M-1",
			"A=M",
			fmt.Sprintf("M=%s", comp),
			"@SP",
			"M=M+1",
		)
		return nil
	}
	if comp, ok := unaryComp[cmd.Op]; ok {
		e.comment("%s", cmd.Op)
		e.emit(
			"@SP",
			"M=M-1",
			"A=M",
			fmt.Sprintf("M=%s", comp),
			"@SP",
			"M=M+1",
		)
		return nil
	}
	if jump, ok := comparisonJump[cmd.Op]; ok {
		return e.emitComparison(cmd, jump)
	}
	return vmc.NewError(vmc.UnknownOpcode, cmd.File, cmd.Line, "unknown arithmetic mnemonic %q", cmd.Op)
}

func (e *Emitter) emitComparison(cmd vmc.Command, jump string) error {
	n := e.nextLabel()
	trueLabel := fmt.Sprintf("%s$TRUE.%d", strings.ToUpper(string(cmd.Op)), n)
	endLabel := fmt.Sprintf("%s$END.%d", strings.ToUpper(string(cmd.Op)), n)

	e.comment("%s", cmd.Op)
	e.emit(
		"@SP",
		"M=M-1",
		"A=M",
		"D=M",
		"@SP",
		"M=M-1",
		"A=M",
		"D=M-D",
		"@"+trueLabel,
		"D;"+jump,
		"@SP",
		"A=M",
		"M=0",
		"@"+endLabel,
		"0;JMP",
		"("+trueLabel+")",
		"@SP",
		"A=M",
		"M=-1",
		"("+endLabel+")",
		"@SP",
		"M=M+1",
	)
	return nil
}
