// Copyright 2026 The Syntree Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package report is this module's ambient observability surface.
//
// A syntax-tree engine embedded as a library has no business writing to
// stderr or reaching for a process-wide logger: it records what went wrong
// as structured, queryable data and lets the embedder decide how (or
// whether) to surface it. This mirrors how the teacher corpus's own
// compiler-as-a-library separates diagnostic collection from diagnostic
// rendering, trimmed here to just the collection half — no terminal
// rendering, no color, no multi-file snippet layout, since none of that is
// in this module's scope.
package report

import "fmt"

// Level is the severity of a single diagnostic.
type Level int8

const (
	// Error indicates a problem that leaves the tree in a degraded but
	// still lossless state (an Error leaf, an unclosed block).
	Error Level = iota + 1
	// Warning indicates something an embedder likely wants to know about
	// but that does not affect losslessness (e.g. a dropped query).
	Warning
)

// String implements fmt.Stringer.
func (l Level) String() string {
	switch l {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return "unknown"
	}
}

// Span is a byte-offset range into a named source buffer.
type Span struct {
	// Path identifies the source buffer this span refers to. It need not
	// be a filesystem path; it is an opaque label. lex.Lex never sets it,
	// so the spans it records have Path "".
	Path string
	// Start and End are byte offsets, End exclusive.
	Start, End int
}

// String implements fmt.Stringer.
func (s Span) String() string {
	if s.Path == "" {
		return fmt.Sprintf("[%d:%d)", s.Start, s.End)
	}
	return fmt.Sprintf("%s[%d:%d)", s.Path, s.Start, s.End)
}

// Diagnostic is a single recorded problem.
type Diagnostic struct {
	Level   Level
	Span    Span
	Message string
}

// String implements fmt.Stringer.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Span, d.Level, d.Message)
}

// Report accumulates diagnostics produced while lexing a tree.
//
// The zero value is ready to use. A nil *Report is also valid everywhere
// this package's API accepts one: Append on a nil receiver is a no-op, so
// callers that don't care about diagnostics can pass nil throughout.
type Report struct {
	diags []Diagnostic
}

// Append records a diagnostic. Safe to call on a nil *Report.
func (r *Report) Append(d Diagnostic) {
	if r == nil {
		return
	}
	r.diags = append(r.diags, d)
}

// Errorf is a convenience wrapper around Append for Level-Error
// diagnostics.
func (r *Report) Errorf(span Span, format string, args ...any) {
	r.Append(Diagnostic{Level: Error, Span: span, Message: fmt.Sprintf(format, args...)})
}

// Warnf is a convenience wrapper around Append for Level-Warning
// diagnostics.
func (r *Report) Warnf(span Span, format string, args ...any) {
	r.Append(Diagnostic{Level: Warning, Span: span, Message: fmt.Sprintf(format, args...)})
}

// All returns every diagnostic in the order it was recorded.
func (r *Report) All() []Diagnostic {
	if r == nil {
		return nil
	}
	return r.diags
}

// Errors returns only the Level-Error diagnostics.
func (r *Report) Errors() []Diagnostic {
	return r.filter(Error)
}

// Warnings returns only the Level-Warning diagnostics.
func (r *Report) Warnings() []Diagnostic {
	return r.filter(Warning)
}

func (r *Report) filter(level Level) []Diagnostic {
	if r == nil {
		return nil
	}
	out := make([]Diagnostic, 0, len(r.diags))
	for _, d := range r.diags {
		if d.Level == level {
			out = append(out, d)
		}
	}
	return out
}

// Len returns the number of recorded diagnostics.
func (r *Report) Len() int {
	if r == nil {
		return 0
	}
	return len(r.diags)
}
