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

// Package check simulates the operand stack a Program would leave behind at
// runtime, validating pop/push shapes and structural control-flow balance
// without ever executing anything (spec.md §4.6).
package check

// Tag is the closed set of value kinds the stack simulator tracks. It
// mirrors spec.md §3's runtime value kinds, not token.Type: a Tag lives on
// the simulated stack, a token.Type lives on lexed text.
type Tag int

const (
	Bool Tag = iota
	Char
	Int
	Ptr
	Str
	Uint8
)

var tagNames = [...]string{"BOOL", "CHAR", "INT", "PTR", "STR", "UINT8"}

func (t Tag) String() string {
	if int(t) < 0 || int(t) >= len(tagNames) {
		return "UNKNOWN"
	}
	return tagNames[t]
}

// value is one simulated stack slot: its Tag, and, when it was pushed by a
// literal PUSH_INT whose value never passed through a computation, the
// literal itself. NTH is the only consumer of Lit: its depth argument is
// read at runtime, so only a compile-time-constant operand lets the
// checker validate the access at all (spec.md §9 notes the original
// Python type checker left NTH unimplemented; this is this checker's own
// resolution, not a transcription).
type value struct {
	Tag    Tag
	Lit    int
	HasLit bool
}

func tagsOf(vs []value) []Tag {
	out := make([]Tag, len(vs))
	for i, v := range vs {
		out[i] = v.Tag
	}
	return out
}

func sameShape(a, b []value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Tag != b[i].Tag {
			return false
		}
	}
	return true
}

func cloneShape(s []value) []value {
	out := make([]value, len(s))
	copy(out, s)
	return out
}
