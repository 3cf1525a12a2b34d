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

// Package translator is the Driver: it resolves a command-line path into
// one or more VM translation units, decides whether a bootstrap prologue is
// needed, and streams each unit's commands through package parser and
// package codegen in order, glog-ing one line per unit processed.
package translator
