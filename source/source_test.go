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

package source_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CyberPaddy/torth/source"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadNoIncludes(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.torth", "1 2 PLUS .\n")

	code, err := source.Load(main, nil)
	require.NoError(t, err)
	assert.Equal(t, "1 2 PLUS .\n", code)
}

func TestLoadExpandsInclude(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lib.torth", "MEMORY scratch 8 END\n")
	main := writeFile(t, dir, "main.torth", "include \"lib\"\n1 .\n")

	code, err := source.Load(main, []string{dir})
	require.NoError(t, err)
	assert.Contains(t, code, "MEMORY scratch 8 END")
	assert.Contains(t, code, "1 .")
	assert.NotContains(t, code, "include")
}

func TestLoadExpandsNestedIncludes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "inner.torth", "42\n")
	writeFile(t, dir, "lib.torth", "include \"inner\"\n")
	main := writeFile(t, dir, "main.torth", "include \"lib\"\n")

	code, err := source.Load(main, []string{dir})
	require.NoError(t, err)
	assert.Contains(t, code, "42")
}

func TestLoadDiamondIncludeIsExpandedTwice(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "shared.torth", "7\n")
	writeFile(t, dir, "left.torth", "include \"shared\"\n")
	writeFile(t, dir, "right.torth", "include \"shared\"\n")
	main := writeFile(t, dir, "main.torth", "include \"left\"\ninclude \"right\"\n")

	code, err := source.Load(main, []string{dir})
	require.NoError(t, err)
	assert.Equal(t, 2, countOccurrences(code, "7"))
}

func TestLoadIncludeCycleFails(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.torth", "include \"b\"\n")
	writeFile(t, dir, "b.torth", "include \"a\"\n")
	main := writeFile(t, dir, "main.torth", "include \"a\"\n")

	_, err := source.Load(main, []string{dir})
	require.Error(t, err)
	var cycle *source.ErrIncludeCycle
	assert.ErrorAs(t, err, &cycle)
}

func TestLoadMissingIncludeFails(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.torth", "include \"missing\"\n")

	_, err := source.Load(main, []string{dir})
	require.Error(t, err)
	var notFound *source.ErrIncludeNotFound
	assert.ErrorAs(t, err, &notFound)
}

func countOccurrences(s, substr string) int {
	count := 0
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			count++
			i += len(substr) - 1
		}
	}
	return count
}
