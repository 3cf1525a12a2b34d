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

// Package hackcpu is a minimal HACK platform CPU: just enough of an
// assembler and interpreter to load the assembly text produced by package
// codegen and run it to completion, so that tests can assert on the
// resulting RAM contents instead of string-matching emitted instructions.
//
// It is test instrumentation only: nothing under cmd/ reaches it, and it
// makes no attempt to support the full HACK instruction set used by
// hand-written programs (no KBD/SCREEN memory map, no ROM size limit). Its
// Run loop is a PC-indexed switch over decoded instructions with a
// recover-to-error boundary around the whole run.
package hackcpu
