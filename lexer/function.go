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

package lexer

import (
	"strings"

	"github.com/CyberPaddy/torth/token"
)

// functionState is the lexer.Function five-state machine of spec.md §4.3.
type functionState int

const (
	stateOutside functionState = iota
	stateName
	stateParams
	stateReturns
	stateBody
)

// ErrMalformedFunction is returned when a FUNCTION block's delimiters
// (FUNCTION, name, "--", ":", END) appear out of order, or the token stream
// ends mid-function.
type ErrMalformedFunction struct {
	Location token.Location
	Reason   string
}

func (e *ErrMalformedFunction) Error() string {
	return "MALFORMED_FUNCTION: " + e.Reason + " at " + e.Location.String()
}

// ParseFunctions runs the five-state FUNCTION/name/--/:/END state machine
// over a flat token stream (spec.md §4.3), collecting each
// `FUNCTION name paramTypes -- returnTypes : body END` block into a
// token.Function. Tokens outside any FUNCTION block are ignored.
func ParseFunctions(tokens []token.Token) ([]token.Function, error) {
	var (
		functions   []token.Function
		state       = stateOutside
		name        string
		paramTypes  []string
		returnTypes []string
		body        []token.Token
		nameLoc     token.Location
	)

	isDelim := func(v string) bool {
		switch strings.ToUpper(v) {
		case "FUNCTION", "--", ":", "END":
			return true
		}
		return false
	}

	for _, tok := range tokens {
		v := strings.ToUpper(tok.Value)
		switch state {
		case stateOutside:
			if v == "FUNCTION" {
				state = stateName
				nameLoc = tok.Location
			}
			// Anything else at the top level is a constant/memory
			// declaration or other input the core treats opaquely
			// (spec.md §3); ignored here.
		case stateName:
			if isDelim(tok.Value) {
				return nil, &ErrMalformedFunction{Location: tok.Location, Reason: "expected function name, found delimiter " + tok.Value}
			}
			name = tok.Value
			paramTypes = nil
			returnTypes = nil
			body = nil
			state = stateParams
		case stateParams:
			switch v {
			case "--":
				state = stateReturns
			case ":", "END", "FUNCTION":
				return nil, &ErrMalformedFunction{Location: tok.Location, Reason: "expected -- before " + tok.Value}
			default:
				paramTypes = append(paramTypes, v)
			}
		case stateReturns:
			switch v {
			case ":":
				state = stateBody
			case "--", "END", "FUNCTION":
				return nil, &ErrMalformedFunction{Location: tok.Location, Reason: "expected : before " + tok.Value}
			default:
				returnTypes = append(returnTypes, v)
			}
		case stateBody:
			if v == "END" {
				functions = append(functions, token.Function{
					Name:      name,
					Signature: token.Signature{ParamTypes: paramTypes, ReturnTypes: returnTypes},
					Body:      body,
				})
				state = stateOutside
			} else {
				body = append(body, tok)
			}
		}
	}

	if state != stateOutside {
		return nil, &ErrMalformedFunction{Location: nameLoc, Reason: "unexpected end of input inside function " + name}
	}
	return functions, nil
}
