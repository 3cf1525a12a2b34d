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

package hackcpu

import "github.com/pkg/errors"

// ramSize is generous enough for any stack/local/static usage a test
// program exercises; it is not a claim about real HACK platform limits.
const ramSize = 1 << 16

// CPU is a HACK register machine: A, D registers, a program counter, and
// flat RAM. It has no keyboard/screen memory map and no ROM size limit.
type CPU struct {
	A, D int
	PC   int
	Mem  [ramSize]int
}

// New returns a CPU with all registers and memory zeroed.
func New() *CPU {
	return &CPU{}
}

// Run executes prog to completion (PC running off the end of the
// instruction list) or until maxSteps instructions have executed, whichever
// comes first. Exceeding maxSteps is reported as an error: a correctly
// terminating HACK program produced by package codegen runs off the end,
// either by falling through or by jumping to a label placed after its last
// instruction (an endless jump loop never terminates), so hitting the cap means
// the emitted assembly has a wiring bug, not that the program is merely
// slow.
func (c *CPU) Run(prog *Program, maxSteps int) (err error) {
	defer func() {
		if e := recover(); e != nil {
			if re, ok := e.(error); ok {
				err = errors.Wrapf(re, "hackcpu: recovered @pc=%d", c.PC)
				return
			}
			panic(e)
		}
	}()

	steps := 0
	for c.PC < len(prog.instructions) {
		if steps >= maxSteps {
			return errors.Errorf("hackcpu: exceeded %d instructions without terminating", maxSteps)
		}
		inst := prog.instructions[c.PC]
		if inst.kind == aInstr {
			c.A = inst.addr
			c.PC++
			steps++
			continue
		}
		m := c.Mem[c.A]
		val := c.eval(inst.comp, m)
		if inst.dest != "" {
			c.store(inst.dest, val, &m)
		}
		if jumpTaken(inst.jump, val) {
			c.PC = c.A
		} else {
			c.PC++
		}
		steps++
	}
	return nil
}

func (c *CPU) eval(comp string, m int) int {
	switch comp {
	case "0":
		return 0
	case "1":
		return 1
	case "-1":
		return -1
	case "D":
		return c.D
	case "A":
		return c.A
	case "M":
		return m
	case "!D":
		return ^c.D
	case "!A":
		return ^c.A
	case "!M":
		return ^m
	case "-D":
		return -c.D
	case "-A":
		return -c.A
	case "-M":
		return -m
	case "D+1":
		return c.D + 1
	case "A+1":
		return c.A + 1
	case "M+1":
		return m + 1
	case "D-1":
		return c.D - 1
	case "A-1":
		return c.A - 1
	case "M-1":
		return m - 1
	case "D+A":
		return c.D + c.A
	case "D+M":
		return c.D + m
	case "D-A":
		return c.D - c.A
	case "D-M":
		return c.D - m
	case "A-D":
		return c.A - c.D
	case "M-D":
		return m - c.D
	case "D&A":
		return c.D & c.A
	case "D&M":
		return c.D & m
	case "D|A":
		return c.D | c.A
	case "D|M":
		return c.D | m
	}
	panic(errors.Errorf("unknown comp field %q", comp))
}

// store applies val to every register named in dest. addr is the A register
// as it stood before this instruction, fixed at entry so that a compound
// dest like "AM" (used by emitReturn's "@R13","AM=M-1" idiom to decrement a
// scratch pointer and store through its old value in the same instruction)
// writes M at the pre-instruction address, not the one 'A' just moved to.
func (c *CPU) store(dest string, val int, m *int) {
	addr := c.A
	for _, r := range dest {
		switch r {
		case 'A':
			c.A = val
		case 'D':
			c.D = val
		case 'M':
			c.Mem[addr] = val
			*m = val
		default:
			panic(errors.Errorf("unknown dest field %q", dest))
		}
	}
}

func jumpTaken(jump string, val int) bool {
	switch jump {
	case "":
		return false
	case "JGT":
		return val > 0
	case "JEQ":
		return val == 0
	case "JGE":
		return val >= 0
	case "JLT":
		return val < 0
	case "JNE":
		return val != 0
	case "JLE":
		return val <= 0
	case "JMP":
		return true
	}
	panic(errors.Errorf("unknown jump field %q", jump))
}
