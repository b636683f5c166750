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

// Package lexer turns expanded Torth source text into a flat, inlined token
// stream: it tokenizes, recognizes FUNCTION blocks, and inlines every call
// starting from main.
package lexer

import (
	"regexp"

	"github.com/CyberPaddy/torth/token"
	"github.com/pkg/errors"
)

// tokenRegex matches, in priority order, a bracketed array literal, a
// double-quoted string, a single-quoted c-string, or any other run of
// non-whitespace. Transcribed from
// original_source/compiler/lex.py:get_token_matches' TOKEN_REGEX.
var tokenRegex = regexp.MustCompile(`\[.*\]|".*?"|'.*?'|\S+`)

// commentRegex strips `//` line comments before tokenization, mirroring the
// original's `re.sub(r'\s*\/\/.*', '', code)`.
var commentRegex = regexp.MustCompile(`[ \t]*//[^\n]*`)

// ErrUnterminatedString is returned when a quote is opened but never closed
// on the same line.
type ErrUnterminatedString struct {
	Location token.Location
}

func (e *ErrUnterminatedString) Error() string {
	return "UNTERMINATED_STRING: unterminated string or char literal at " + e.Location.String()
}

// Tokenize lexes code (already include-expanded) into a Token slice. file is
// used only to populate Location.File.
func Tokenize(file, code string) ([]token.Token, error) {
	clean := commentRegex.ReplaceAllString(code, "")
	newlineOffsets := newlineOffsets(clean)

	matches := tokenRegex.FindAllStringIndex(clean, -1)
	tokens := make([]token.Token, 0, len(matches))
	for _, m := range matches {
		raw := clean[m[0]:m[1]]
		if err := checkTerminated(raw); err != nil {
			row, col := locate(m[0], newlineOffsets)
			return nil, &ErrUnterminatedString{Location: token.Location{File: file, Row: row, Col: col}}
		}
		value := token.Normalize(raw)
		row, col := locate(m[0], newlineOffsets)
		tokens = append(tokens, token.Token{
			Value:    value,
			Type:     token.Classify(raw),
			Location: token.Location{File: file, Row: row, Col: col},
		})
	}
	return tokens, nil
}

// checkTerminated rejects a raw match that opens a quote the regex's
// non-greedy alternatives failed to close (e.g. a lone `"` swallowed as part
// of a `\S+` run because nothing closed it on the same line).
func checkTerminated(raw string) error {
	if len(raw) == 0 {
		return nil
	}
	switch raw[0] {
	case '"':
		if len(raw) < 2 || raw[len(raw)-1] != '"' {
			return errUnterminated
		}
	case '\'':
		if len(raw) < 2 || raw[len(raw)-1] != '\'' {
			return errUnterminated
		}
	}
	return nil
}

var errUnterminated = errors.New("unterminated literal")

func newlineOffsets(code string) []int {
	var offsets []int
	for i := 0; i < len(code); i++ {
		if code[i] == '\n' {
			offsets = append(offsets, i)
		}
	}
	return offsets
}

// locate computes the 1-based (row, col) of byte position in code, given the
// precomputed offsets of every '\n' in code. Transcribed from
// original_source/compiler/lex.py:get_token_location.
func locate(position int, newlineOffsets []int) (row, col int) {
	row = 1
	col = position
	for i, nl := range newlineOffsets {
		if i > 0 {
			col = position - newlineOffsets[i-1] - 1
			row++
		}
		if nl > position {
			return row, col + 1
		}
	}
	if len(newlineOffsets) > 0 {
		row++
		col = position - newlineOffsets[len(newlineOffsets)-1] - 1
	}
	return row, col + 1
}
