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

// Package trivia defines the non-syntactic text (whitespace, newlines,
// comments) that the green layer attaches to tokens.
//
// Trivia is never a tree node in its own right: it rides along with the
// leaf it is attached to, so that re-serialising a leaf reproduces exactly
// the source bytes around it.
package trivia

// Kind classifies a single piece of trivia.
type Kind byte

const (
	// Whitespace is a run of non-newline blank characters.
	Whitespace Kind = iota
	// Newline is a single line terminator: "\n", "\r", or "\r\n".
	Newline
	// LineComment is a comment terminated by a newline (exclusive of it).
	LineComment
	// BlockComment is a comment terminated by a matching closer.
	BlockComment
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Whitespace:
		return "Whitespace"
	case Newline:
		return "Newline"
	case LineComment:
		return "LineComment"
	case BlockComment:
		return "BlockComment"
	default:
		return "Trivia(?)"
	}
}

// Piece is a single contiguous span of trivia.
type Piece struct {
	Kind Kind
	Text string
}

// Width returns the number of bytes this piece occupies in the source.
func (p Piece) Width() int { return len(p.Text) }

// IsComment reports whether p is a line or block comment.
func (p Piece) IsComment() bool {
	return p.Kind == LineComment || p.Kind == BlockComment
}

// Run is an ordered sequence of trivia pieces, such as the leading or
// trailing trivia of a single token.
type Run []Piece

// Width returns the total byte width of every piece in the run.
func (r Run) Width() int {
	var w int
	for _, p := range r {
		w += p.Width()
	}
	return w
}

// Text concatenates every piece's text, in order.
func (r Run) Text() string {
	if len(r) == 0 {
		return ""
	}
	var total int
	for _, p := range r {
		total += len(p.Text)
	}
	buf := make([]byte, 0, total)
	for _, p := range r {
		buf = append(buf, p.Text...)
	}
	return string(buf)
}

// ContainsNewline reports whether any piece in the run is a Newline piece.
func (r Run) ContainsNewline() bool {
	for _, p := range r {
		if p.Kind == Newline {
			return true
		}
	}
	return false
}

// ContainsComment reports whether any piece in the run is a comment.
func (r Run) ContainsComment() bool {
	for _, p := range r {
		if p.IsComment() {
			return true
		}
	}
	return false
}

// Empty is the canonical zero-length trivia run. Constructors in package
// green normalise nil/zero-length slices to this value so that two
// otherwise-identical leaves with no trivia compare equal under
// reflect.DeepEqual in tests.
var Empty Run = Run{}
