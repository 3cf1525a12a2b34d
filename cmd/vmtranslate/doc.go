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

// Command vmtranslate translates Nand2Tetris VM code into HACK assembly.
//
// Usage:
//
//	vmtranslate [-o output] [-logtostderr] [-v level] <path>
//
// Flags must come before path: flag parsing stops at the first non-flag
// argument.
//
// path is either a single .vm file or a directory containing one or more
// .vm files. A directory input gets a bootstrap prologue; a single-file
// input does not.
package main
