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

// Package torth wires the compiler's pipeline stages — source loading,
// lexing, function inlining, program building, type/stack checking and
// assembly emission — into a single Compile entrypoint.
package torth

import (
	"github.com/CyberPaddy/torth/asm"
	"github.com/CyberPaddy/torth/check"
	"github.com/CyberPaddy/torth/lexer"
	"github.com/CyberPaddy/torth/program"
	"github.com/CyberPaddy/torth/source"
	"github.com/CyberPaddy/torth/token"
)

// config accumulates Option settings, mirroring
// _examples/db47h-ngaro/vm/vm.go's Instance-plus-functional-options shape.
type config struct {
	includePaths []string
	constants    []token.Constant
	memories     []token.Memory
}

// Option configures Compile.
type Option func(*config)

// IncludePaths sets the directories Compile's source loader searches, in
// order, to resolve `include "NAME"` directives.
func IncludePaths(paths ...string) Option {
	return func(c *config) { c.includePaths = paths }
}

// Constants supplies the `%define name value` declarations the assembler
// emits at the top of the generated file. spec.md §3 treats Constant/Memory
// declarations as syntactically top-level, but original_source has no
// parser for that syntax in its filtered file set (see DESIGN.md) — Compile
// takes them as caller-supplied data instead of inventing undocumented
// declaration syntax.
func Constants(constants ...token.Constant) Option {
	return func(c *config) { c.constants = constants }
}

// Memories supplies the BSS reservations the assembler emits as
// `name: RESB size`.
func Memories(memories ...token.Memory) Option {
	return func(c *config) { c.memories = memories }
}

// Compile runs the full pipeline over the Torth source file at mainFile and
// returns the generated NASM assembly text.
func Compile(mainFile string, opts ...Option) (string, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	code, err := source.Load(mainFile, cfg.includePaths)
	if err != nil {
		return "", err
	}

	tokens, err := lexer.Tokenize(mainFile, code)
	if err != nil {
		return "", err
	}

	functions, err := lexer.ParseFunctions(tokens)
	if err != nil {
		return "", err
	}

	inlined, err := lexer.Inline(functions)
	if err != nil {
		return "", err
	}

	prog, err := program.Build(inlined, cfg.constants, cfg.memories)
	if err != nil {
		return "", err
	}

	if err := check.Check(prog); err != nil {
		return "", err
	}

	return asm.Assemble(prog, cfg.constants, cfg.memories)
}
