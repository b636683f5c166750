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

func values(tokens []token.Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Value
	}
	return out
}

func TestTokenizeBasic(t *testing.T) {
	tokens, err := lexer.Tokenize("t.torth", "1 2 PLUS .")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "PLUS", "PRINT_INT"}, values(tokens))
}

func TestTokenizeStripsComments(t *testing.T) {
	tokens, err := lexer.Tokenize("t.torth", "1 // this is a comment\n2")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, values(tokens))
}

func TestTokenizeNormalizesOperators(t *testing.T) {
	tokens, err := lexer.Tokenize("t.torth", "== >= > <= < - * != + % / ^")
	require.NoError(t, err)
	assert.Equal(t, []string{"EQ", "GE", "GT", "LE", "LT", "MINUS", "MUL", "NE", "PLUS", "MOD", "DIV", "POW"}, values(tokens))
}

func TestTokenizeNormalizesBooleans(t *testing.T) {
	tokens, err := lexer.Tokenize("t.torth", "TRUE false")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "0"}, values(tokens))
	assert.Equal(t, token.BOOL, tokens[0].Type)
	assert.Equal(t, token.BOOL, tokens[1].Type)
}

func TestTokenizeClassifiesLiterals(t *testing.T) {
	tokens, err := lexer.Tokenize("t.torth", `5 0x2a "hi" 'a' 'hi' ARRAY(1,2) WORD`)
	require.NoError(t, err)
	want := []token.Type{token.INT, token.HEX, token.STR, token.CHAR, token.CSTR, token.ARRAY, token.WORD}
	for i, tok := range tokens {
		assert.Equal(t, want[i], tok.Type, "token %d: %q", i, tok.Value)
	}
}

func TestTokenizeLocationsTrackRowsAndCols(t *testing.T) {
	tokens, err := lexer.Tokenize("t.torth", "1\n2 3")
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, 1, tokens[0].Location.Row)
	assert.Equal(t, 2, tokens[1].Location.Row)
	assert.Equal(t, 1, tokens[1].Location.Col)
	assert.Equal(t, 3, tokens[2].Location.Col)
}

func TestTokenizeUnterminatedString(t *testing.T) {
	_, err := lexer.Tokenize("t.torth", `"unterminated`)
	require.Error(t, err)
	var unterminated *lexer.ErrUnterminatedString
	assert.ErrorAs(t, err, &unterminated)
}
