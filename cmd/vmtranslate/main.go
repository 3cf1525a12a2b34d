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

package main

import (
	"flag"
	"os"

	"github.com/golang/glog"

	"github.com/db47h/vmtranslate/translator"
)

var outFileName string

func atExit(err error) {
	glog.Flush()
	if err == nil {
		return
	}
	glog.Errorf("%+v", err)
	os.Exit(1)
}

func main() {
	flag.StringVar(&outFileName, "o", "", "`filename` to use for the generated assembly (default: derived from the input path)")
	flag.Parse()

	if flag.NArg() != 1 {
		atExit(errUsage())
		return
	}

	var opts []translator.Option
	if outFileName != "" {
		opts = append(opts, translator.WithOutputPath(outFileName))
	}

	d, err := translator.New(flag.Arg(0), opts...)
	if err != nil {
		atExit(err)
		return
	}
	atExit(d.Run())
}

func errUsage() error {
	return &usageError{}
}

type usageError struct{}

func (*usageError) Error() string {
	return "usage: vmtranslate [-o output] <path>"
}
