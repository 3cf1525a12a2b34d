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

// Package parser implements the Line Normalizer & Tokenizer: the trivial,
// deliberately unambitious pass that turns raw VM source lines into a
// sequence of vmc.Command values.
//
// For each raw line: cut at the first "//", trim leading/trailing
// whitespace, drop if empty, otherwise split on whitespace into 1-3
// tokens. The first token selects the command kind; the remaining tokens
// (if any) are interpreted according to that kind. A full token-level
// scanner would be overkill here: the grammar never nests and never
// needs more than whitespace-splitting, so this pass works a line at a
// time with bufio.Scanner instead.
//
// The parser does not validate segment names/ranges beyond recognizing
// them as one of the eight known segments; package codegen rejects
// segment/direction combinations that make no sense (e.g. "pop constant").
package parser
