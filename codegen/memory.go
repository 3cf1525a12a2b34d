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

// pushAddress returns the instructions that load the value of the given
// segment/index into D, ending with their own "D=A" (constant) or "D=M"
// step; the caller appends only the push of D.
func (e *Emitter) pushAddress(cmd vmc.Command) ([]string, error) {
	switch cmd.Segment {
	case vmc.SegConstant:
		return []string{fmt.Sprintf("@%d", cmd.Index), "D=A"}, nil
	case vmc.SegLocal, vmc.SegArgument, vmc.SegThis, vmc.SegThat:
		reg, _ := vmc.BaseRegister(cmd.Segment)
		return []string{
			fmt.Sprintf("@%d", cmd.Index),
			"D=A",
			"@" + reg,
			"A=D+M",
			"D=M",
		}, nil
	case vmc.SegTemp:
		return []string{fmt.Sprintf("@%d", vmc.TempBase+cmd.Index), "D=M"}, nil
	case vmc.SegPointer:
		return []string{fmt.Sprintf("@%d", vmc.PointerBase+cmd.Index), "D=M"}, nil
	case vmc.SegStatic:
		return []string{fmt.Sprintf("@%s.%d", e.fileBase, cmd.Index), "D=M"}, nil
	}
	return nil, vmc.NewError(vmc.BadSegment, cmd.File, cmd.Line, "invalid segment %q for push", cmd.SegmentName)
}

func (e *Emitter) emitPush(cmd vmc.Command) error {
	lines, err := e.pushAddress(cmd)
	if err != nil {
		return err
	}
	e.comment("push %s %d", cmd.Segment, cmd.Index)
	// the direct-address segments (temp/pointer/static) already load D via
	// "D=M" above; the offset segments load D via the trailing "D=M" in
	// their own block. Either way D now holds the value to push.
	e.emit(lines...)
	e.emit(
		"@SP",
		"A=M",
		"M=D",
		"@SP",
		"M=M+1",
	)
	return nil
}

// directPopTarget returns the bare assembly symbol or address a pop stores
// into, for segments whose destination address is a compile-time constant
// (pointer, temp, static). Pointer and static pops store straight into it,
// skipping the R13 indirection used by the offset segments; temp pops hold
// it in R13 like the offset segments do.
func (e *Emitter) directPopTarget(cmd vmc.Command) (string, error) {
	switch cmd.Segment {
	case vmc.SegTemp:
		return fmt.Sprintf("%d", vmc.TempBase+cmd.Index), nil
	case vmc.SegPointer:
		return fmt.Sprintf("%d", vmc.PointerBase+cmd.Index), nil
	case vmc.SegStatic:
		return fmt.Sprintf("%s.%d", e.fileBase, cmd.Index), nil
	}
	return "", vmc.NewError(vmc.BadSegment, cmd.File, cmd.Line, "invalid segment %q for pop", cmd.SegmentName)
}

func (e *Emitter) emitPop(cmd vmc.Command) error {
	if cmd.Segment == vmc.SegConstant {
		return vmc.NewError(vmc.BadSegment, cmd.File, cmd.Line, "cannot pop to constant segment")
	}
	e.comment("pop %s %d", cmd.Segment, cmd.Index)
	switch cmd.Segment {
	case vmc.SegLocal, vmc.SegArgument, vmc.SegThis, vmc.SegThat:
		reg, _ := vmc.BaseRegister(cmd.Segment)
		e.emit(
			fmt.Sprintf("@%d", cmd.Index),
			"D=A",
			"@"+reg,
			"D=D+M",
			"@R13",
			"M=D",
			"@SP",
			"M=M-1",
			"A=M",
			"D=M",
			"@R13",
			"A=M",
			"M=D",
		)
		return nil
	case vmc.SegTemp, vmc.SegPointer, vmc.SegStatic:
		target, err := e.directPopTarget(cmd)
		if err != nil {
			return err
		}
		store := []string{"@" + target, "M=D"}
		if cmd.Segment == vmc.SegTemp {
			e.emit("@"+target, "D=A", "@R13", "M=D")
			store = []string{"@R13", "A=M", "M=D"}
		}
		e.emit(
			"@SP",
			"M=M-1",
			"A=M",
			"D=M",
		)
		e.emit(store...)
		return nil
	}
	return vmc.NewError(vmc.BadSegment, cmd.File, cmd.Line, "invalid segment %q for pop", cmd.SegmentName)
}
