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

// Package source resolves Torth's `include "NAME"` directives into a single
// expanded source text, before any tokenization happens.
package source

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// includeRegex matches a whole `include "NAME"` line, case-insensitively,
// mirroring original_source/compiler/lex.py's INCLUDE_REGEX.
var includeRegex = regexp.MustCompile(`(?im)^[ \t]*include[ \t]+"(\S+)"[ \t]*$`)

// Load reads the file at path, then recursively expands every `include`
// directive found in it (and in anything it includes), splicing the
// included file's contents in place of the directive line. includePaths is
// searched, in order, for each included NAME + ".torth"; the first hit
// wins. Load fails with ErrIncludeNotFound if no search path holds NAME, or
// with ErrIncludeCycle if a file transitively includes itself.
//
// Diamond includes (two siblings both including the same file) are
// permitted and expanded twice, textually, per spec.md §4.1 — only a true
// cycle (a file reachable from itself) is rejected.
func Load(path string, includePaths []string) (string, error) {
	code, err := readFile(path)
	if err != nil {
		return "", err
	}
	ancestors := map[string]bool{filepath.Clean(path): true}
	return expand(code, includePaths, ancestors)
}

// ErrIncludeNotFound is returned (wrapped) when an include target cannot be
// located in any of the configured search paths.
type ErrIncludeNotFound struct {
	Name string
}

func (e *ErrIncludeNotFound) Error() string {
	return "INCLUDE_NOT_FOUND: " + e.Name + ".torth not found in any include path"
}

// ErrIncludeCycle is returned when a file transitively includes itself.
type ErrIncludeCycle struct {
	Name string
}

func (e *ErrIncludeCycle) Error() string {
	return "INCLUDE_NOT_FOUND: include cycle detected at " + e.Name + ".torth"
}

func expand(code string, includePaths []string, ancestors map[string]bool) (string, error) {
	matches := includeRegex.FindAllStringSubmatchIndex(code, -1)
	if len(matches) == 0 {
		return code, nil
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		lineStart, lineEnd := m[0], m[1]
		nameStart, nameEnd := m[2], m[3]
		name := code[nameStart:nameEnd]

		b.WriteString(code[last:lineStart])

		resolved, err := resolve(name, includePaths)
		if err != nil {
			return "", err
		}

		key := filepath.Clean(resolved)
		if ancestors[key] {
			return "", errors.WithStack(&ErrIncludeCycle{Name: name})
		}

		included, err := readFile(resolved)
		if err != nil {
			return "", err
		}
		ancestors[key] = true
		expanded, err := expand(included, includePaths, ancestors)
		delete(ancestors, key)
		if err != nil {
			return "", err
		}
		b.WriteString(expanded)
		last = lineEnd
	}
	b.WriteString(code[last:])
	return b.String(), nil
}

func resolve(name string, includePaths []string) (string, error) {
	fileName := name + ".torth"
	for _, dir := range includePaths {
		candidate := filepath.Join(dir, fileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", errors.WithStack(&ErrIncludeNotFound{Name: name})
}

func readFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", path)
	}
	return string(b), nil
}
