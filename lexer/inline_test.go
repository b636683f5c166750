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

package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CyberPaddy/torth/lexer"
)

func parseAndInline(t *testing.T, code string) []string {
	t.Helper()
	toks, err := lexer.Tokenize("t.torth", code)
	require.NoError(t, err)
	functions, err := lexer.ParseFunctions(toks)
	require.NoError(t, err)
	inlined, err := lexer.Inline(functions)
	require.NoError(t, err)
	return valuesOf(inlined)
}

func TestInlineSingleCall(t *testing.T) {
	got := parseAndInline(t, "FUNCTION double INT -- INT : 2 MUL END FUNCTION main -- : 21 double END")
	assert.Equal(t, []string{"21", "2", "MUL"}, got)
}

func TestInlineNestedCalls(t *testing.T) {
	got := parseAndInline(t,
		"FUNCTION inc INT -- INT : 1 PLUS END "+
			"FUNCTION twice INT -- INT : inc inc END "+
			"FUNCTION main -- : 1 twice END")
	assert.Equal(t, []string{"1", "1", "PLUS", "1", "PLUS"}, got)
}

func TestInlineMissingMain(t *testing.T) {
	toks, err := lexer.Tokenize("t.torth", "FUNCTION helper -- : DROP END")
	require.NoError(t, err)
	functions, err := lexer.ParseFunctions(toks)
	require.NoError(t, err)

	_, err = lexer.Inline(functions)
	require.Error(t, err)
	var missing *lexer.ErrMissingMain
	assert.ErrorAs(t, err, &missing)
}

func TestInlineRecursiveCallDetected(t *testing.T) {
	toks, err := lexer.Tokenize("t.torth", "FUNCTION loopy -- : loopy END FUNCTION main -- : loopy END")
	require.NoError(t, err)
	functions, err := lexer.ParseFunctions(toks)
	require.NoError(t, err)

	_, err = lexer.Inline(functions)
	require.Error(t, err)
	var recursive *lexer.ErrRecursiveFunction
	assert.ErrorAs(t, err, &recursive)
}

func TestInlineMutualRecursionDetected(t *testing.T) {
	toks, err := lexer.Tokenize("t.torth", "FUNCTION a -- : b END FUNCTION b -- : a END FUNCTION main -- : a END")
	require.NoError(t, err)
	functions, err := lexer.ParseFunctions(toks)
	require.NoError(t, err)

	_, err = lexer.Inline(functions)
	require.Error(t, err)
	var recursive *lexer.ErrRecursiveFunction
	assert.ErrorAs(t, err, &recursive)
}
