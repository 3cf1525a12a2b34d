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

package vmc

// Kind identifies the shape of a Command.
type Kind int

// Command kinds.
const (
	Arithmetic Kind = iota
	Push
	Pop
	Label
	Goto
	IfGoto
	Function
	Return
	Call
)

func (k Kind) String() string {
	switch k {
	case Arithmetic:
		return "arithmetic"
	case Push:
		return "push"
	case Pop:
		return "pop"
	case Label:
		return "label"
	case Goto:
		return "goto"
	case IfGoto:
		return "if-goto"
	case Function:
		return "function"
	case Return:
		return "return"
	case Call:
		return "call"
	default:
		return "unknown"
	}
}

// Op is an arithmetic/logical mnemonic.
type Op string

// Arithmetic mnemonics.
const (
	OpAdd Op = "add"
	OpSub Op = "sub"
	OpNeg Op = "neg"
	OpEq  Op = "eq"
	OpGt  Op = "gt"
	OpLt  Op = "lt"
	OpAnd Op = "and"
	OpOr  Op = "or"
	OpNot Op = "not"
)

// arithmeticOps indexes the valid arithmetic mnemonics.
var arithmeticOps = map[Op]bool{
	OpAdd: true, OpSub: true, OpNeg: true,
	OpEq: true, OpGt: true, OpLt: true,
	OpAnd: true, OpOr: true, OpNot: true,
}

// IsArithmeticOp reports whether s names a supported arithmetic mnemonic.
func IsArithmeticOp(s string) (Op, bool) {
	op := Op(s)
	return op, arithmeticOps[op]
}

// Segment names a region of VM-addressable memory.
type Segment int

// Segments.
const (
	// SegInvalid marks a Push/Pop command whose segment token did not name
	// one of the segments below. The Normalizer does not reject this itself
	// (segment validation is the Emitter's job); it only shows up as a
	// BadSegment error once codegen tries to lower the command.
	SegInvalid Segment = iota - 1
	SegConstant
	SegLocal
	SegArgument
	SegThis
	SegThat
	SegPointer
	SegTemp
	SegStatic
)

var segmentNames = map[string]Segment{
	"constant": SegConstant,
	"local":    SegLocal,
	"argument": SegArgument,
	"this":     SegThis,
	"that":     SegThat,
	"pointer":  SegPointer,
	"temp":     SegTemp,
	"static":   SegStatic,
}

func (s Segment) String() string {
	for name, seg := range segmentNames {
		if seg == s {
			return name
		}
	}
	return "invalid"
}

// ParseSegment resolves a segment name, as found in the source grammar, to
// a Segment value.
func ParseSegment(s string) (Segment, bool) {
	seg, ok := segmentNames[s]
	return seg, ok
}

// Command is a single parsed VM instruction, tagged by Kind. Only the
// fields relevant to Kind are populated; the rest are zero.
type Command struct {
	Kind Kind
	Op   Op // Arithmetic

	// Segment is the resolved segment for Push/Pop, or SegInvalid if the
	// source token named none of the segments in segmentNames. SegmentName
	// carries that raw token through regardless, so codegen can report it
	// in a BadSegment error.
	Segment     Segment // Push, Pop
	SegmentName string  // Push, Pop; the unvalidated source token
	Index       int     // Push, Pop

	Symbol string // Label, Goto, IfGoto, Function, Call
	NVars  int    // Function
	NArgs  int    // Call

	// File and Line locate the command in its source unit, for
	// diagnostics. Line is 1-based.
	File string
	Line int
}

// Machine memory conventions, fixed by the HACK/Nand2Tetris platform.
const (
	// StackBase is the initial value of SP: the first free working-stack cell.
	StackBase = 256
	// TempBase is the RAM address of temp segment index 0.
	TempBase = 5
	// TempCount is the number of cells in the temp segment.
	TempCount = 8
	// PointerBase is the RAM address of pointer segment index 0 (THIS).
	PointerBase = 3
	// StaticBase is the first RAM address the assembler allocates to
	// user-defined symbols, including static i aliases.
	StaticBase = 16
)

// segmentRegister maps the four base-relative segments to their HACK
// pointer symbol.
var segmentRegister = map[Segment]string{
	SegLocal:    "LCL",
	SegArgument: "ARG",
	SegThis:     "THIS",
	SegThat:     "THAT",
}

// BaseRegister returns the HACK symbol holding the base address of seg, and
// whether seg is one of the four base-relative segments
// (local/argument/this/that).
func BaseRegister(seg Segment) (string, bool) {
	r, ok := segmentRegister[seg]
	return r, ok
}
