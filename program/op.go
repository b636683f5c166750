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

// Package program turns a flat, inlined token stream into a Program: an
// indexed sequence of typed Ops, ready for the type checker and the
// assembly emitter.
package program

import "github.com/CyberPaddy/torth/token"

// Type is the closed set of operation kinds an Op can be. Grounded on the
// closed-const-set + name-table idiom of vm/opcodes.go in the teacher.
type Type int

const (
	PushInt Type = iota
	PushBool
	PushChar
	PushPtr
	PushStr
	PushCstr
	PushUint8
	PushArray
	CastBool
	CastChar
	CastInt
	CastPtr
	CastStr
	If
	Elif
	Else
	Endif
	While
	Do
	Done
	Break
	Continue
	Intrinsic
)

var typeNames = [...]string{
	"PUSH_INT", "PUSH_BOOL", "PUSH_CHAR", "PUSH_PTR", "PUSH_STR", "PUSH_CSTR",
	"PUSH_UINT8", "PUSH_ARRAY", "CAST_BOOL", "CAST_CHAR", "CAST_INT",
	"CAST_PTR", "CAST_STR", "IF", "ELIF", "ELSE", "ENDIF", "WHILE", "DO",
	"DONE", "BREAK", "CONTINUE", "INTRINSIC",
}

// String returns the OpType's spec.md name, e.g. "PUSH_INT".
func (t Type) String() string {
	if int(t) < 0 || int(t) >= len(typeNames) {
		return "UNKNOWN"
	}
	return typeNames[t]
}

// Op is a single operation: its position in the Program, its Type and the
// token it was built from.
type Op struct {
	ID    int
	Type  Type
	Token token.Token
}

// Program is the ordered sequence of Ops produced by Build. It is never
// mutated after construction; every later stage (check, asm) refers to its
// Ops by index.
type Program []Op
