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

// ErrMissingMain is returned when no function named "main" (case
// insensitive) exists among the parsed functions.
type ErrMissingMain struct{}

func (e *ErrMissingMain) Error() string {
	return "MISSING_MAIN_FUNCTION: no function named main was found"
}

// ErrRecursiveFunction is returned when inlining would recurse without
// bound: either a genuine call-graph cycle, or nesting deep enough that one
// is assumed.
type ErrRecursiveFunction struct {
	Name string
}

func (e *ErrRecursiveFunction) Error() string {
	return "RECURSIVE_FUNCTION: " + e.Name + " is part of a call cycle or recurses too deeply"
}

// maxInlineDepth bounds inlining recursion as a backstop against
// non-cyclic-but-pathological call graphs; genuine cycles are caught
// directly by the active-call-stack check below, well before this is hit.
const maxInlineDepth = 256

// Inline finds the function named "main" (case-insensitive, per spec.md §3)
// and recursively substitutes every call-site token whose value matches a
// known function's name with that function's body, left to right, until the
// result is a single flat token stream containing no more function calls.
func Inline(functions []token.Function) ([]token.Token, error) {
	byName := make(map[string]token.Function, len(functions))
	var main *token.Function
	for i := range functions {
		f := functions[i]
		byName[f.Name] = f
		if strings.EqualFold(f.Name, "main") {
			main = &functions[i]
		}
	}
	if main == nil {
		return nil, &ErrMissingMain{}
	}

	active := map[string]bool{main.Name: true}
	return inlineBody(main.Body, byName, active, 0)
}

func inlineBody(body []token.Token, byName map[string]token.Function, active map[string]bool, depth int) ([]token.Token, error) {
	if depth > maxInlineDepth {
		return nil, &ErrRecursiveFunction{Name: "<inline depth exceeded>"}
	}

	out := make([]token.Token, 0, len(body))
	for _, tok := range body {
		fn, ok := byName[tok.Value]
		if !ok {
			out = append(out, tok)
			continue
		}
		if active[fn.Name] {
			return nil, &ErrRecursiveFunction{Name: fn.Name}
		}
		active[fn.Name] = true
		expanded, err := inlineBody(fn.Body, byName, active, depth+1)
		delete(active, fn.Name)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded...)
	}
	return out, nil
}
