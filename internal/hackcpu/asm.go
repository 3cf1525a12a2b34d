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

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type instKind int

const (
	aInstr instKind = iota
	cInstr
)

type instruction struct {
	kind instKind
	// aInstr
	symbol string // unresolved symbolic operand, "" once resolved into addr
	addr   int
	// cInstr
	dest string
	comp string
	jump string
}

// Program is assembled HACK code ready to run.
type Program struct {
	instructions []instruction
}

var predefined = map[string]int{
	"SP": 0, "LCL": 1, "ARG": 2, "THIS": 3, "THAT": 4,
	"R0": 0, "R1": 1, "R2": 2, "R3": 3, "R4": 4, "R5": 5, "R6": 6, "R7": 7,
	"R8": 8, "R9": 9, "R10": 10, "R11": 11, "R12": 12, "R13": 13, "R14": 14, "R15": 15,
	"SCREEN": 16384, "KBD": 24576,
}

// Assemble parses HACK assembly text (as produced by package codegen) into a
// runnable Program, resolving labels and allocating variables starting at
// RAM address 16 in first-seen order.
func Assemble(src string) (*Program, error) {
	var raw []string
	for _, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
		}
		if line == "" {
			continue
		}
		raw = append(raw, line)
	}

	symbols := make(map[string]int, len(predefined))
	for k, v := range predefined {
		symbols[k] = v
	}

	var body []string
	for _, line := range raw {
		if strings.HasPrefix(line, "(") {
			label := strings.TrimSuffix(strings.TrimPrefix(line, "("), ")")
			if _, exists := symbols[label]; exists {
				return nil, errors.Errorf("label %q redefines an existing symbol", label)
			}
			symbols[label] = len(body)
			continue
		}
		body = append(body, line)
	}

	nextVar := 16
	instructions := make([]instruction, 0, len(body))
	for _, line := range body {
		if strings.HasPrefix(line, "@") {
			operand := line[1:]
			if n, err := strconv.Atoi(operand); err == nil {
				instructions = append(instructions, instruction{kind: aInstr, addr: n})
				continue
			}
			addr, ok := symbols[operand]
			if !ok {
				addr = nextVar
				symbols[operand] = addr
				nextVar++
			}
			instructions = append(instructions, instruction{kind: aInstr, addr: addr})
			continue
		}
		inst, err := parseC(line)
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, inst)
	}

	return &Program{instructions: instructions}, nil
}

func parseC(line string) (instruction, error) {
	inst := instruction{kind: cInstr}
	rest := line
	if idx := strings.Index(rest, "="); idx >= 0 {
		inst.dest = rest[:idx]
		rest = rest[idx+1:]
	}
	if idx := strings.Index(rest, ";"); idx >= 0 {
		inst.comp = rest[:idx]
		inst.jump = rest[idx+1:]
	} else {
		inst.comp = rest
	}
	if inst.comp == "" {
		return instruction{}, errors.Errorf("malformed instruction %q", line)
	}
	return inst, nil
}
