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
	"github.com/CyberPaddy/torth/token"
)

func valuesOf(toks []token.Token) []string {
	out := make([]string, len(toks))
	for i, tok := range toks {
		out[i] = tok.Value
	}
	return out
}

func TestParseFunctionsBasic(t *testing.T) {
	toks, err := lexer.Tokenize("t.torth", "FUNCTION double INT -- INT : 2 MUL END")
	require.NoError(t, err)

	functions, err := lexer.ParseFunctions(toks)
	require.NoError(t, err)
	require.Len(t, functions, 1)
	assert.Equal(t, "double", functions[0].Name)
	assert.Equal(t, []string{"INT"}, functions[0].Signature.ParamTypes)
	assert.Equal(t, []string{"INT"}, functions[0].Signature.ReturnTypes)
	assert.Equal(t, []string{"2", "MUL"}, valuesOf(functions[0].Body))
}

func TestParseFunctionsMultiple(t *testing.T) {
	toks, err := lexer.Tokenize("t.torth", "FUNCTION main -- : DUP END FUNCTION helper -- : DROP END")
	require.NoError(t, err)

	functions, err := lexer.ParseFunctions(toks)
	require.NoError(t, err)
	require.Len(t, functions, 2)
	assert.Equal(t, "main", functions[0].Name)
	assert.Equal(t, "helper", functions[1].Name)
}

func TestParseFunctionsMalformedMissingDashes(t *testing.T) {
	toks, err := lexer.Tokenize("t.torth", "FUNCTION f INT : INT END")
	require.NoError(t, err)

	_, err = lexer.ParseFunctions(toks)
	require.Error(t, err)
	var malformed *lexer.ErrMalformedFunction
	assert.ErrorAs(t, err, &malformed)
}

func TestParseFunctionsUnterminated(t *testing.T) {
	toks, err := lexer.Tokenize("t.torth", "FUNCTION f -- : DUP")
	require.NoError(t, err)

	_, err = lexer.ParseFunctions(toks)
	require.Error(t, err)
	var malformed *lexer.ErrMalformedFunction
	assert.ErrorAs(t, err, &malformed)
}
