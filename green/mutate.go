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
	"errors"
	"fmt"

	"github.com/avelino/syntree/trivia"
)

// ErrOutOfRange is returned (possibly wrapped) when a mutator is asked to
// touch a slot index outside a container's current slot count.
var ErrOutOfRange = errors.New("green: index out of range")

// ErrDescendIntoLeaf is returned (possibly wrapped) when a path tries to
// descend through a leaf, which has no slots.
var ErrDescendIntoLeaf = errors.New("green: cannot descend into a leaf")

// WithSlot returns a copy of n with its i-th child replaced by
// replacement, sharing every other child by reference. Panics if n is a
// leaf or i is out of range; use ReplaceChild (builder.go) for a
// non-panicking version.
func (n *Node) WithSlot(i int, replacement *Node) *Node {
	if n.tag == Leaf {
		panic(ErrDescendIntoLeaf)
	}
	if i < 0 || i >= len(n.children) {
		panic(fmt.Errorf("%w: slot %d", ErrOutOfRange, i))
	}

	c := n.clone()
	c.children = append([]*Node(nil), n.children...)
	c.children[i] = replacement
	c.recompute()
	return c
}

// WithInsert returns a copy of n with nodes inserted starting at slot i,
// shifting existing children at or after i to the right. i == n.SlotCount()
// appends.
func (n *Node) WithInsert(i int, nodes []*Node) (*Node, error) {
	if n.tag == Leaf {
		return nil, ErrDescendIntoLeaf
	}
	if i < 0 || i > len(n.children) {
		return nil, fmt.Errorf("%w: insert at %d (have %d slots)", ErrOutOfRange, i, len(n.children))
	}

	children := make([]*Node, 0, len(n.children)+len(nodes))
	children = append(children, n.children[:i]...)
	children = append(children, nodes...)
	children = append(children, n.children[i:]...)

	c := n.clone()
	c.children = children
	c.recompute()
	return c, nil
}

// WithRemove returns a copy of n with count children removed starting at
// slot i.
func (n *Node) WithRemove(i, count int) (*Node, error) {
	if n.tag == Leaf {
		return nil, ErrDescendIntoLeaf
	}
	if i < 0 || count < 0 || i+count > len(n.children) {
		return nil, fmt.Errorf("%w: remove [%d, %d) (have %d slots)", ErrOutOfRange, i, i+count, len(n.children))
	}

	children := make([]*Node, 0, len(n.children)-count)
	children = append(children, n.children[:i]...)
	children = append(children, n.children[i+count:]...)

	c := n.clone()
	c.children = children
	c.recompute()
	return c, nil
}

// WithReplace returns a copy of n with count children starting at slot i
// replaced by nodes (which may be a different length than count).
func (n *Node) WithReplace(i, count int, nodes []*Node) (*Node, error) {
	if n.tag == Leaf {
		return nil, ErrDescendIntoLeaf
	}
	if i < 0 || count < 0 || i+count > len(n.children) {
		return nil, fmt.Errorf("%w: replace [%d, %d) (have %d slots)", ErrOutOfRange, i, i+count, len(n.children))
	}

	children := make([]*Node, 0, len(n.children)-count+len(nodes))
	children = append(children, n.children[:i]...)
	children = append(children, nodes...)
	children = append(children, n.children[i+count:]...)

	c := n.clone()
	c.children = children
	c.recompute()
	return c, nil
}

// WithLeadingTrivia returns a copy of a leaf with its leading trivia
// replaced. Panics if n is not a leaf.
func (n *Node) WithLeadingTrivia(leading trivia.Run) *Node {
	if n.tag != Leaf {
		panic("green: WithLeadingTrivia on a non-leaf")
	}
	c := n.clone()
	c.leading = normalizeTrivia(leading)
	c.width = c.leading.Width() + len(c.text) + c.trailing.Width()
	c.flags = c.flags &^ (ContainsNewline | ContainsComment)
	if c.leading.ContainsNewline() || c.trailing.ContainsNewline() {
		c.flags |= ContainsNewline
	}
	if c.leading.ContainsComment() || c.trailing.ContainsComment() {
		c.flags |= ContainsComment
	}
	return c
}

// WithTrailingTrivia returns a copy of a leaf with its trailing trivia
// replaced. Panics if n is not a leaf.
func (n *Node) WithTrailingTrivia(trailing trivia.Run) *Node {
	if n.tag != Leaf {
		panic("green: WithTrailingTrivia on a non-leaf")
	}
	c := n.clone()
	c.trailing = normalizeTrivia(trailing)
	c.width = c.leading.Width() + len(c.text) + c.trailing.Width()
	c.flags = c.flags &^ (ContainsNewline | ContainsComment)
	if c.leading.ContainsNewline() || c.trailing.ContainsNewline() {
		c.flags |= ContainsNewline
	}
	if c.leading.ContainsComment() || c.trailing.ContainsComment() {
		c.flags |= ContainsComment
	}
	return c
}
