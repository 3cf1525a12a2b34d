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

// Package vmc defines the data model shared by the VM-to-HACK translator:
// the tagged Command variant produced by package parser and consumed by
// package codegen, the Segment enum, the fixed machine-memory layout
// constants of the target HACK platform, and the structured error
// taxonomy reported by every other package.
//
// Supported command kinds:
//
//	kind        carries              semantics
//	Arithmetic  Op                   pop 1 or 2, push result
//	Push        Segment, Index       push value read from (segment, index)
//	Pop         Segment, Index       pop top, store to (segment, index)
//	Label       Symbol               define local label
//	Goto        Symbol               unconditional jump
//	IfGoto      Symbol               pop; jump iff popped != 0
//	Function    Symbol, NVars        define entry, push NVars zeros
//	Return      —                    callee epilogue
//	Call        Symbol, NArgs        caller prologue + jump
package vmc
