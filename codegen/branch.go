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

import "github.com/db47h/vmtranslate/vmc"

func (e *Emitter) emitLabel(cmd vmc.Command) error {
	if verr := e.markDefined(cmd.Symbol, cmd); verr != nil {
		return verr
	}
	e.comment("label %s", cmd.Symbol)
	e.emit("(" + cmd.Symbol + ")")
	return nil
}

func (e *Emitter) emitGoto(cmd vmc.Command) error {
	e.comment("goto %s", cmd.Symbol)
	e.emit(
		"@"+cmd.Symbol,
		"0;JMP",
	)
	return nil
}

func (e *Emitter) emitIfGoto(cmd vmc.Command) error {
	e.comment("if-goto %s", cmd.Symbol)
	e.emit(
		"@SP",
		"M=M-1",
		"A=M",
		"D=M",
		"@"+cmd.Symbol,
		"D;JNE",
	)
	return nil
}
