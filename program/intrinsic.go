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

package program

// Intrinsics is the closed set of built-in operation names with a fixed
// assembly template (spec.md §3). Only membership matters (every value is
// true); it mirrors vm/opcodes.go's opcodeIndex map, built once and
// consulted by the program builder.
var Intrinsics = map[string]bool{
	"ARGC":   true,
	"ARGV":   true,
	"DIVMOD": true,
	"DIV":    true,
	"MOD":    true,
	"DROP":   true,
	"DUP":    true,
	"OVER":   true,
	"ROT":    true,
	"SWAP":   true,
	"SWAP2":  true,
	"NTH":    true,

	"EQ": true,
	"NE": true,
	"LT": true,
	"LE": true,
	"GT": true,
	"GE": true,

	"PLUS":  true,
	"MINUS": true,
	"MUL":   true,

	"PRINT":     true,
	"PRINT_INT": true,
	"PUTS":      true,
	"INPUT":     true,

	"LOAD_BOOL":  true,
	"LOAD_CHAR":  true,
	"LOAD_INT":   true,
	"LOAD_PTR":   true,
	"LOAD_STR":   true,
	"LOAD_UINT8": true,

	"STORE_BOOL":  true,
	"STORE_CHAR":  true,
	"STORE_INT":   true,
	"STORE_PTR":   true,
	"STORE_STR":   true,
	"STORE_UINT8": true,

	"SYSCALL0": true,
	"SYSCALL1": true,
	"SYSCALL2": true,
	"SYSCALL3": true,
	"SYSCALL4": true,
	"SYSCALL5": true,
	"SYSCALL6": true,
}

// castTypes maps a cast word to its Op Type. CAST_* ops are no-ops at
// codegen time (spec.md §3); the type checker is their only consumer.
var castTypes = map[string]Type{
	"CAST_BOOL": CastBool,
	"CAST_CHAR": CastChar,
	"CAST_INT":  CastInt,
	"CAST_PTR":  CastPtr,
	"CAST_STR":  CastStr,
}

// keywordTypes maps a structured control-flow keyword to its Op Type.
var keywordTypes = map[string]Type{
	"IF":       If,
	"ELIF":     Elif,
	"ELSE":     Else,
	"ENDIF":    Endif,
	"WHILE":    While,
	"DO":       Do,
	"DONE":     Done,
	"BREAK":    Break,
	"CONTINUE": Continue,
}
