// This file is part of torth - https://github.com/CyberPaddy/torth
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

// Command torth compiles a single Torth source file to a native x86-64
// Linux executable: it runs the pipeline in this module to produce NASM
// assembly, then shells out to nasm and gcc exactly as
// original_source/utils/asm.py:compile_asm/link_object_file do.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"

	"github.com/CyberPaddy/torth"
)

type fileList []string

func (f *fileList) String() string     { return "" }
func (f *fileList) Set(s string) error { *f = append(*f, s); return nil }

var debug bool

func atExit(err error) {
	if err == nil {
		return
	}
	if !debug {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "%+v\n", err)
	os.Exit(1)
}

func main() {
	var err error
	defer func() { atExit(err) }()

	var includes fileList
	outFile := flag.String("o", "", "output `filename` for the compiled executable (default: source file name without .torth)")
	saveAsm := flag.Bool("save-asm", false, "keep the generated .asm and .o files instead of deleting them")
	flag.Var(&includes, "include", "add `dir` to the include search path (can be specified multiple times)")
	flag.BoolVar(&debug, "debug", false, "print a stack trace on failure")
	flag.Parse()

	if flag.NArg() != 1 {
		err = errors.New("usage: torth [-o output] [-include dir]... [-save-asm] [-debug] <source.torth>")
		return
	}
	srcFile := flag.Arg(0)

	asmFile := strings.TrimSuffix(srcFile, ".torth") + ".asm"
	objFile := strings.TrimSuffix(asmFile, ".asm") + ".o"
	if *outFile == "" {
		*outFile = strings.TrimSuffix(srcFile, ".torth")
	}

	var assembly string
	assembly, err = torth.Compile(srcFile, torth.IncludePaths(includes...))
	if err != nil {
		err = errors.Wrap(err, "compile failed")
		return
	}

	if err = os.WriteFile(asmFile, []byte(assembly), 0o644); err != nil {
		err = errors.Wrap(err, "writing assembly failed")
		return
	}
	if !*saveAsm {
		defer os.Remove(asmFile)
		defer os.Remove(objFile)
	}

	if err = run("nasm", "-felf64", "-o"+objFile, asmFile); err != nil {
		err = errors.Wrap(err, "nasm failed")
		return
	}
	if err = run("gcc", "-no-pie", "-o"+*outFile, objFile); err != nil {
		err = errors.Wrap(err, "gcc failed")
		return
	}
}

func run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
