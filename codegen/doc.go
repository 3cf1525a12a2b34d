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

// Package codegen is the Emitter: the code generator that lowers each
// vmc.Command into its fixed-register HACK assembly idiom.
//
// An Emitter owns two pieces of state for the lifetime of a whole
// translation run (never reset on a per-command basis):
//
//	fileBase      the static-symbol namespace for the unit currently
//	              being emitted, set via SetFileBase before each unit
//	labelCounter  a monotonically increasing integer used to mint
//	              globally-unique comparison and call-return labels
//
// Every Emit call writes a deterministic, self-contained block of
// assembly lines to the underlying sink, prefixed by a "// <mnemonic ...>"
// comment. Machine memory conventions (SP, LCL/ARG/THIS/THAT, the
// temp/pointer/static address layout, R13/R14 scratch usage) are fixed by
// the HACK platform and documented alongside the constants in package vmc.
package codegen
