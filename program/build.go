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

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/CyberPaddy/torth/token"
)

// ErrUnknownWord is returned by Build when a WORD token matches neither a
// cast, a keyword, a known Intrinsic, nor a declared Constant or Memory
// name.
type ErrUnknownWord struct {
	Token token.Token
}

func (e *ErrUnknownWord) Error() string {
	return "UNKNOWN_WORD: " + e.Token.Value + " at " + e.Token.Location.String()
}

// Build maps a flat, inlined token stream into a Program (spec.md §4.5).
// Each token becomes exactly one Op: literal tokens map to their matching
// PUSH_* Type, KEYWORD tokens map to their same-named control-flow Type
// (including CAST_* words, which are WORD tokens but behave like keywords),
// a WORD naming a declared Constant or Memory becomes PUSH_INT/PUSH_PTR
// (the name itself is emitted verbatim into the assembly text, where NASM's
// own %define/label resolution does the substitution), and any other WORD
// must name a known Intrinsic.
func Build(tokens []token.Token, constants []token.Constant, memories []token.Memory) (Program, error) {
	constNames := make(map[string]bool, len(constants))
	for _, c := range constants {
		constNames[c.Name] = true
	}
	memNames := make(map[string]bool, len(memories))
	for _, m := range memories {
		memNames[m.Name] = true
	}

	prog := make(Program, 0, len(tokens))
	for i, tok := range tokens {
		op := Op{ID: i, Token: tok}

		switch tok.Type {
		case token.INT, token.HEX, token.BOOL:
			op.Type = PushInt
		case token.CHAR:
			op.Type = PushChar
		case token.STR:
			op.Type = PushStr
		case token.CSTR:
			op.Type = PushCstr
		case token.ARRAY:
			op.Type = PushArray
		case token.KEYWORD:
			// Keyword/intrinsic tables are keyed by the all-uppercase spec
			// name; the token's own stored Value keeps its source case, the
			// same split the original keeps between token.value and its
			// upper()'d dispatch key (original_source/compiler/program.py:11).
			kt, ok := keywordTypes[strings.ToUpper(tok.Value)]
			if !ok {
				return nil, errors.Errorf("program: keyword token %q has no Op Type mapping", tok.Value)
			}
			op.Type = kt
		case token.WORD:
			word := strings.ToUpper(tok.Value)
			if ct, ok := castTypes[word]; ok {
				op.Type = ct
			} else if Intrinsics[word] {
				op.Type = Intrinsic
			} else if constNames[tok.Value] {
				op.Type = PushInt
			} else if memNames[tok.Value] {
				op.Type = PushPtr
			} else {
				return nil, &ErrUnknownWord{Token: tok}
			}
		default:
			return nil, errors.Errorf("program: token %q has unhandled TokenType %s", tok.Value, tok.Type)
		}

		prog = append(prog, op)
	}
	return prog, nil
}
