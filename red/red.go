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

// Package red implements the ephemeral, position-aware wrapper layer
// described in spec.md §3/§4.4.
//
// A *Node is created lazily as callers descend into a tree: a root Node is
// the only one constructed up front, and every Child access materializes
// (and caches) one more red node. Once the green tree a Node wraps is
// replaced by an edit, every red node derived from the old root becomes
// meaningless (spec.md §3 "Lifecycle") — callers must re-derive a new root
// from the tree's current green root.
package red

import (
	"sync/atomic"

	"github.com/avelino/syntree/green"
	"github.com/avelino/syntree/kind"
)

// Node is a position-aware wrapper over a green.Node.
//
// The zero Node is not meaningful; always obtain one via NewRoot or by
// navigating from an existing Node.
type Node struct {
	g            *green.Node
	parent       *Node
	pos          int
	siblingIndex int // -1 for the root

	// childCache holds one slot per green child, first-writer-wins via
	// atomic CAS (spec.md §4.4/§9: "a single atomic slot write"), so that
	// concurrent readers of the same red Node converge on one child
	// instance per slot without a mutex.
	childCache []atomic.Pointer[Node]
	opener     atomic.Pointer[Node]
	closer     atomic.Pointer[Node]
}

// NewRoot wraps g as the root of a red tree at position 0.
func NewRoot(g *green.Node) *Node {
	return newNode(g, nil, 0, -1)
}

func newNode(g *green.Node, parent *Node, pos, siblingIndex int) *Node {
	n := &Node{g: g, parent: parent, pos: pos, siblingIndex: siblingIndex}
	if g.SlotCount() > 0 {
		n.childCache = make([]atomic.Pointer[Node], g.SlotCount())
	}
	return n
}

// Green returns the underlying green node.
func (n *Node) Green() *green.Node { return n.g }

// Kind returns the wrapped green node's kind.
func (n *Node) Kind() kind.Kind { return n.g.Kind() }

// Tag returns the wrapped green node's tag.
func (n *Node) Tag() green.Tag { return n.g.Tag() }

// Parent returns this node's parent, or nil if this is the root view.
func (n *Node) Parent() *Node { return n.parent }

// SiblingIndex returns this node's slot index within its parent, or -1 if
// this is the root view.
func (n *Node) SiblingIndex() int { return n.siblingIndex }

// Position returns this node's absolute start offset, including its own
// leading trivia.
func (n *Node) Position() int { return n.pos }

// EndPosition returns this node's absolute end offset, including its own
// trailing trivia.
func (n *Node) EndPosition() int { return n.pos + n.g.Width() }

// TextPosition returns the absolute start offset of a leaf's token text,
// i.e. Position() plus its leading trivia width. Only meaningful for
// leaves; returns Position() for containers.
func (n *Node) TextPosition() int {
	return n.pos + n.g.Leading().Width()
}

// TextEndPosition returns the absolute end offset of a leaf's token text.
// Only meaningful for leaves; returns EndPosition() for containers.
func (n *Node) TextEndPosition() int {
	if n.g.Tag() != green.Leaf {
		return n.EndPosition()
	}
	return n.TextPosition() + len(n.g.Text())
}

// Text returns the leaf's token text, or "" for containers.
func (n *Node) Text() string { return n.g.Text() }

// Equal implements the red-node equality contract from spec.md §9:
// "(green identity, position)".
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	return n.g == other.g && n.pos == other.pos
}

// SlotCount returns the number of inner children this node has.
func (n *Node) SlotCount() int { return n.g.SlotCount() }

// Child returns the i-th inner child as a red node, materializing and
// caching it if this is the first access to that slot. Returns nil if i
// is out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.childCache) {
		return nil
	}
	if cached := n.childCache[i].Load(); cached != nil {
		return cached
	}

	childGreen := n.g.GetSlot(i)
	if childGreen == nil {
		return nil
	}
	created := newNode(childGreen, n, n.pos+n.g.SlotOffset(i), i)
	if n.childCache[i].CompareAndSwap(nil, created) {
		return created
	}
	return n.childCache[i].Load()
}

// Children returns every inner child, in order.
func (n *Node) Children() []*Node {
	out := make([]*Node, n.SlotCount())
	for i := range out {
		out[i] = n.Child(i)
	}
	return out
}

// OpenerNode returns the opener leaf of a Block as a red node, or nil for
// non-Block nodes.
func (n *Node) OpenerNode() *Node {
	if n.g.Tag() != green.Block {
		return nil
	}
	if cached := n.opener.Load(); cached != nil {
		return cached
	}
	created := newNode(n.g.Opener(), n, n.pos, -1)
	if n.opener.CompareAndSwap(nil, created) {
		return created
	}
	return n.opener.Load()
}

// CloserNode returns the closer leaf of a Block as a red node, or nil for
// non-Block nodes.
func (n *Node) CloserNode() *Node {
	if n.g.Tag() != green.Block {
		return nil
	}
	if cached := n.closer.Load(); cached != nil {
		return cached
	}
	pos := n.pos + n.g.Width() - n.g.Closer().Width()
	created := newNode(n.g.Closer(), n, pos, -1)
	if n.closer.CompareAndSwap(nil, created) {
		return created
	}
	return n.closer.Load()
}

// InnerStartPosition returns the absolute offset just after a Block's
// opener. Only meaningful for Block nodes.
func (n *Node) InnerStartPosition() int {
	if n.g.Tag() != green.Block {
		return n.Position()
	}
	return n.pos + n.g.Opener().Width()
}

// InnerEndPosition returns the absolute offset just before a Block's
// closer. Only meaningful for Block nodes.
func (n *Node) InnerEndPosition() int {
	if n.g.Tag() != green.Block {
		return n.EndPosition()
	}
	return n.pos + n.g.Width() - n.g.Closer().Width()
}

// NextSibling returns the red node immediately following this one among
// its parent's children, or nil if there is none or this is the root.
func (n *Node) NextSibling() *Node {
	if n.parent == nil || n.siblingIndex < 0 {
		return nil
	}
	return n.parent.Child(n.siblingIndex + 1)
}

// PreviousSibling returns the red node immediately preceding this one
// among its parent's children, or nil if there is none or this is the
// root.
func (n *Node) PreviousSibling() *Node {
	if n.parent == nil || n.siblingIndex <= 0 {
		return nil
	}
	return n.parent.Child(n.siblingIndex - 1)
}

// Path returns the sequence of slot indices from the root to this node.
func (n *Node) Path() green.Path {
	var rev []int
	for cur := n; cur != nil && cur.parent != nil; cur = cur.parent {
		rev = append(rev, cur.siblingIndex)
	}
	path := make(green.Path, len(rev))
	for i, v := range rev {
		path[len(rev)-1-i] = v
	}
	return path
}

// FindNodeAt returns the most deeply nested red node whose range contains
// pos, stopping descent as soon as a leaf is reached. Returns nil if pos
// is outside [0, root.EndPosition()).
func FindNodeAt(root *Node, pos int) *Node {
	if pos < root.Position() || pos >= root.EndPosition() {
		return nil
	}
	cur := root
	for {
		if cur.Tag() == green.Block {
			if pos < cur.InnerStartPosition() {
				return cur.OpenerNode()
			}
			if pos >= cur.InnerEndPosition() {
				return cur.CloserNode()
			}
		}
		if cur.SlotCount() == 0 {
			return cur
		}
		next := childContaining(cur, pos)
		if next == nil {
			return cur
		}
		cur = next
	}
}

// FindLeafAt is like FindNodeAt but always descends to a leaf.
func FindLeafAt(root *Node, pos int) *Node {
	n := FindNodeAt(root, pos)
	for n != nil && n.Tag() != green.Leaf {
		if n.Tag() == green.Block {
			switch {
			case pos < n.InnerStartPosition():
				return n.OpenerNode()
			case pos >= n.InnerEndPosition():
				return n.CloserNode()
			}
		}
		next := childContaining(n, pos)
		if next == nil {
			return n
		}
		n = next
	}
	return n
}

func childContaining(n *Node, pos int) *Node {
	for i := 0; i < n.SlotCount(); i++ {
		c := n.Child(i)
		if pos >= c.Position() && pos < c.EndPosition() {
			return c
		}
	}
	return nil
}
