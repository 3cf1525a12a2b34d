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

import (
	"fmt"
	"strings"
)

// ErrKind classifies a translation error, per the error taxonomy.
type ErrKind int

// Error kinds.
const (
	// IoError: cannot open input or write output.
	IoError ErrKind = iota
	// UnknownOpcode: first token of a line matches no command.
	UnknownOpcode
	// Malformed: wrong arity or non-integer index.
	Malformed
	// BadSegment: unsupported segment for the given direction (e.g. pop constant i).
	BadSegment
	// DuplicateUnit: two input units resolve to the same static-symbol basename.
	DuplicateUnit
)

func (k ErrKind) String() string {
	switch k {
	case IoError:
		return "IoError"
	case UnknownOpcode:
		return "UnknownOpcode"
	case Malformed:
		return "Malformed"
	case BadSegment:
		return "BadSegment"
	case DuplicateUnit:
		return "DuplicateUnit"
	default:
		return "Error"
	}
}

// Error is a single positioned translation error.
type Error struct {
	Kind ErrKind
	File string
	Line int // 0 if not applicable
	Msg  string
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s: %s", e.File, e.Line, e.Kind, e.Msg)
	}
	if e.File != "" {
		return fmt.Sprintf("%s: %s: %s", e.File, e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// NewError builds a positioned Error.
func NewError(kind ErrKind, file string, line int, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, File: file, Line: line, Msg: fmt.Sprintf(format, args...)}
}

// ErrorList accumulates Errors from a single translation unit: a
// position-ordered slice that prints as one message per line.
type ErrorList []*Error

func (l ErrorList) Error() string {
	s := make([]string, len(l))
	for i, e := range l {
		s[i] = e.Error()
	}
	return strings.Join(s, "\n")
}

// Add appends an error to the list.
func (l *ErrorList) Add(e *Error) {
	*l = append(*l, e)
}

// Err returns l as an error, or nil if l is empty.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
