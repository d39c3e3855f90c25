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

package green

import (
	"io"
	"strings"
)

// WriteTo writes n's exact source text to w: leading trivia, then content
// (a leaf's text, or a block's opener/children/closer, or just a
// container's children), then trailing trivia. This round-trips: writing
// a freshly-lexed tree reproduces the original buffer byte for byte
// (spec.md §3, §8 "Round-trip").
func (n *Node) WriteTo(w io.Writer) (int64, error) {
	var total int64
	write := func(s string) error {
		if s == "" {
			return nil
		}
		k, err := io.WriteString(w, s)
		total += int64(k)
		return err
	}

	switch n.tag {
	case Leaf:
		for _, p := range n.leading {
			if err := write(p.Text); err != nil {
				return total, err
			}
		}
		if err := write(n.text); err != nil {
			return total, err
		}
		for _, p := range n.trailing {
			if err := write(p.Text); err != nil {
				return total, err
			}
		}
	case Block:
		if _, err := n.opener.WriteTo(w); err != nil {
			return total, err
		}
		total += int64(n.opener.width)
		for _, c := range n.children {
			k, err := c.WriteTo(w)
			total += k
			if err != nil {
				return total, err
			}
		}
		k, err := n.closer.WriteTo(w)
		total += k
		if err != nil {
			return total, err
		}
	case List, Syntax:
		for _, c := range n.children {
			k, err := c.WriteTo(w)
			total += k
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// SourceText returns n's exact source text as a string, recursively
// including every descendant's trivia and content. Unlike Text, which
// only returns a leaf's own token text, this is defined for every tag.
func (n *Node) SourceText() string {
	var b strings.Builder
	b.Grow(n.width)
	_, _ = n.WriteTo(&b)
	return b.String()
}
