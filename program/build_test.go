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

package program_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CyberPaddy/torth/program"
	"github.com/CyberPaddy/torth/token"
)

func tok(typ token.Type, value string) token.Token {
	return token.Token{Type: typ, Value: value, Location: token.Location{File: "t.torth", Row: 1, Col: 1}}
}

func build(t *testing.T, tokens ...token.Token) program.Program {
	t.Helper()
	prog, err := program.Build(tokens, nil, nil)
	require.NoError(t, err)
	return prog
}

func TestBuildLiterals(t *testing.T) {
	tests := []struct {
		name string
		in   token.Token
		want program.Type
	}{
		{"int", tok(token.INT, "21"), program.PushInt},
		{"hex", tok(token.HEX, "0x2a"), program.PushInt},
		{"bool", tok(token.BOOL, "1"), program.PushInt},
		{"char", tok(token.CHAR, "'a'"), program.PushChar},
		{"str", tok(token.STR, `"hi"`), program.PushStr},
		{"cstr", tok(token.CSTR, "'hi'"), program.PushCstr},
		{"array", tok(token.ARRAY, "ARRAY(1,2)"), program.PushArray},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := build(t, tt.in)
			require.Len(t, prog, 1)
			assert.Equal(t, tt.want, prog[0].Type)
			assert.Equal(t, 0, prog[0].ID)
		})
	}
}

func TestBuildKeywords(t *testing.T) {
	tests := []struct {
		value string
		want  program.Type
	}{
		{"IF", program.If},
		{"ELIF", program.Elif},
		{"ELSE", program.Else},
		{"ENDIF", program.Endif},
		{"WHILE", program.While},
		{"DO", program.Do},
		{"DONE", program.Done},
		{"BREAK", program.Break},
		{"CONTINUE", program.Continue},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			prog := build(t, tok(token.KEYWORD, tt.value))
			assert.Equal(t, tt.want, prog[0].Type)
		})
	}
}

func TestBuildCastsAndIntrinsics(t *testing.T) {
	prog := build(t,
		tok(token.WORD, "CAST_INT"),
		tok(token.WORD, "DUP"),
		tok(token.WORD, "PLUS"),
	)
	require.Len(t, prog, 3)
	assert.Equal(t, program.CastInt, prog[0].Type)
	assert.Equal(t, program.Intrinsic, prog[1].Type)
	assert.Equal(t, program.Intrinsic, prog[2].Type)
}

func TestBuildConstantAndMemoryReferences(t *testing.T) {
	constants := []token.Constant{{Name: "BUFLEN", Value: "65535"}}
	memories := []token.Memory{{Name: "scratch", Size: "64"}}
	prog, err := program.Build([]token.Token{
		tok(token.WORD, "BUFLEN"),
		tok(token.WORD, "scratch"),
	}, constants, memories)
	require.NoError(t, err)
	require.Len(t, prog, 2)
	assert.Equal(t, program.PushInt, prog[0].Type)
	assert.Equal(t, program.PushPtr, prog[1].Type)
}

func TestBuildKeywordsAndIntrinsicsAreCaseInsensitive(t *testing.T) {
	prog := build(t,
		tok(token.KEYWORD, "while"),
		tok(token.WORD, "dup"),
		tok(token.WORD, "print"),
	)
	require.Len(t, prog, 3)
	assert.Equal(t, program.While, prog[0].Type)
	assert.Equal(t, program.Intrinsic, prog[1].Type)
	assert.Equal(t, program.Intrinsic, prog[2].Type)
	assert.Equal(t, "while", prog[0].Token.Value, "stored token text keeps its source case")
}

func TestBuildUnknownWord(t *testing.T) {
	_, err := program.Build([]token.Token{tok(token.WORD, "NOT_A_REAL_WORD")}, nil, nil)
	require.Error(t, err)
	var unknown *program.ErrUnknownWord
	assert.ErrorAs(t, err, &unknown)
}

func TestBuildAssignsSequentialIDs(t *testing.T) {
	prog := build(t,
		tok(token.INT, "1"),
		tok(token.INT, "2"),
		tok(token.WORD, "PLUS"),
	)
	for i, op := range prog {
		assert.Equal(t, i, op.ID)
	}
}
