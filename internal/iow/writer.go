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

// Package iow provides small io.Writer helpers shared by the assembly
// emitter's section buffers.
package iow

import (
	"io"

	"github.com/pkg/errors"
)

// ErrWriter wraps an io.Writer and remembers its first error. Every Write
// after that keeps returning the same error without touching the
// underlying writer, so callers that perform many small writes in a row
// (one per emitted instruction) don't need to check an error after each one.
type ErrWriter struct {
	w   io.Writer
	Err error
}

// NewErrWriter returns a new ErrWriter wrapping w.
func NewErrWriter(w io.Writer) *ErrWriter {
	return &ErrWriter{w: w}
}

func (w *ErrWriter) Write(p []byte) (n int, err error) {
	if w.Err != nil {
		return 0, w.Err
	}
	n, err = w.w.Write(p)
	if err != nil {
		w.Err = errors.Wrap(err, "write failed")
	}
	return n, w.Err
}

// WriteString is a convenience wrapper over Write for the section builder,
// which only ever writes pre-formatted assembly lines.
func (w *ErrWriter) WriteString(s string) {
	if w.Err != nil {
		return
	}
	_, _ = w.Write([]byte(s))
}
