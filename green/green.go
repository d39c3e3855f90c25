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

// Package green implements the position-free, structurally-shared tree
// layer described in spec.md §3/§4.3.
//
// A *Node is immutable once constructed; every mutator in this package
// (and in builder.go) returns a new node, sharing every subtree that did
// not change. Green nodes compare by pointer identity, exactly as a
// persistent data structure should: two structurally-identical trees built
// independently are not "the same node" unless something deliberately
// shared the pointer.
//
// There is a single Go type, Node, discriminated by an internal tag,
// rather than an interface with four implementations. Width, slot count,
// and flag lookups are then a single field read with no dynamic dispatch,
// which matters because they sit on every hot path in package red and
// package query (spec.md §9: "avoid virtual dispatch for hot paths").
package green

import (
	"github.com/avelino/syntree/kind"
	"github.com/avelino/syntree/trivia"
)

// Tag discriminates the four Node variants.
type Tag uint8

const (
	// Leaf holds a token: kind, text, and leading/trailing trivia.
	Leaf Tag = iota
	// Block holds an opener leaf, a closer leaf, and delimited children.
	Block
	// List holds an undelimited, ordered sequence of children. Used for
	// the tree root and for synthetic insertion fragments.
	List
	// Syntax holds children wrapped into a schema-defined construct by
	// the binder.
	Syntax
)

// String implements fmt.Stringer.
func (t Tag) String() string {
	switch t {
	case Leaf:
		return "Leaf"
	case Block:
		return "Block"
	case List:
		return "List"
	case Syntax:
		return "Syntax"
	default:
		return "Tag(?)"
	}
}

// Flags are precomputed, propagating boolean properties of a subtree.
type Flags uint8

const (
	// ContainsNewline is set if any trivia anywhere in the subtree
	// contains a newline.
	ContainsNewline Flags = 1 << iota
	// ContainsComment is set if any trivia anywhere in the subtree is a
	// comment.
	ContainsComment
	// ContainsError is set if any leaf anywhere in the subtree has Kind
	// kind.Error, or any Block anywhere in the subtree is missing its
	// closer.
	ContainsError
	// ContainsKeyword is set if any leaf anywhere in the subtree has a
	// keyword-band kind.
	ContainsKeyword
	// IsKeywordSelf is set only on a Leaf whose own kind is in the
	// keyword band (as opposed to merely containing one somewhere below).
	IsKeywordSelf
)

// Has reports whether all bits in mask are set.
func (f Flags) Has(mask Flags) bool { return f&mask == mask }

// offsetThreshold is the child count at or above which a Block
// precomputes an offset table (spec.md §3: "if ≥10 children").
const offsetThreshold = 10

// Node is a green tree node. See the package doc for the structural
// sharing and identity contract.
type Node struct {
	tag   Tag
	kind  kind.Kind
	width int
	flags Flags

	// Leaf-only fields.
	text     string
	leading  trivia.Run
	trailing trivia.Run

	// Block-only fields.
	opener *Node
	closer *Node

	// Block/List/Syntax fields.
	children []*Node
	// offsets[i] is the start offset of children[i] relative to this
	// node's own start, precomputed only when len(children) >=
	// offsetThreshold (spec.md §3). Nil otherwise; SlotOffset falls back
	// to an O(i) scan.
	offsets []int
}

// NewLeaf constructs a leaf node. Nil trivia runs are normalised to
// trivia.Empty.
func NewLeaf(k kind.Kind, text string, leading, trailing trivia.Run) *Node {
	leading = normalizeTrivia(leading)
	trailing = normalizeTrivia(trailing)

	n := &Node{
		tag:      Leaf,
		kind:     k,
		text:     text,
		leading:  leading,
		trailing: trailing,
		width:    leading.Width() + len(text) + trailing.Width(),
	}
	if leading.ContainsNewline() || trailing.ContainsNewline() {
		n.flags |= ContainsNewline
	}
	if leading.ContainsComment() || trailing.ContainsComment() {
		n.flags |= ContainsComment
	}
	if k == kind.Error {
		n.flags |= ContainsError
	}
	if k.IsKeyword() {
		n.flags |= ContainsKeyword | IsKeywordSelf
	}
	return n
}

// NewBlock constructs a block node from a matched (or missing) opener and
// closer leaf plus a child list. The block's own Kind is derived from the
// opener's text, per spec.md §3 ("the block kind is determined by the
// opener").
//
// closer may be nil to represent an unclosed block at end-of-input
// (spec.md §7): a zero-width synthetic closer leaf is substituted, and the
// resulting node's ContainsError flag is set.
func NewBlock(opener *Node, closer *Node, children []*Node) *Node {
	if opener == nil || opener.tag != Leaf {
		panic("green: block opener must be a non-nil leaf")
	}
	blockKind := kind.Unrecognized
	if len(opener.text) > 0 {
		if k, ok := kind.OpenerFor(opener.text[0]); ok {
			blockKind = k
		}
	}

	missingCloser := closer == nil
	if missingCloser {
		closer = NewLeaf(kind.Symbol, "", nil, nil)
	} else if closer.tag != Leaf {
		panic("green: block closer must be a leaf")
	}

	n := &Node{
		tag:      Block,
		kind:     blockKind,
		opener:   opener,
		closer:   closer,
		children: children,
	}
	n.recompute()
	if missingCloser {
		n.flags |= ContainsError
	}
	return n
}

// NewList constructs a root or synthetic list node.
func NewList(children []*Node) *Node {
	n := &Node{tag: List, kind: kind.TokenList, children: children}
	n.recompute()
	return n
}

// NewSyntax constructs a binder-produced syntax node wrapping children.
// k is typically in the semantic band (kind.SemanticBandStart or above),
// but this is a convention enforced by the schema, not by this
// constructor.
func NewSyntax(k kind.Kind, children []*Node) *Node {
	n := &Node{tag: Syntax, kind: k, children: children}
	n.recompute()
	return n
}

func normalizeTrivia(r trivia.Run) trivia.Run {
	if len(r) == 0 {
		return trivia.Empty
	}
	return r
}

// recompute fills in width, flags, and the offset table for a
// Block/List/Syntax node from its current children (and, for Block, its
// opener/closer). Leaves never call this; their fields are set once in
// NewLeaf.
func (n *Node) recompute() {
	var w int
	var flags Flags
	var offsets []int
	if len(n.children) >= offsetThreshold {
		offsets = make([]int, len(n.children))
	}

	base := 0
	if n.tag == Block {
		base = n.opener.width
		w += n.opener.width
		flags |= n.opener.flags &^ IsKeywordSelf
	}

	for i, c := range n.children {
		if offsets != nil {
			offsets[i] = base
		}
		base += c.width
		w += c.width
		flags |= c.flags &^ IsKeywordSelf
	}

	if n.tag == Block {
		w += n.closer.width
		flags |= n.closer.flags &^ IsKeywordSelf
		if n.closer.text == "" {
			flags |= ContainsError
		}
	}

	n.width = w
	n.flags = flags
	n.offsets = offsets
}

// Tag returns which of the four variants n is.
func (n *Node) Tag() Tag { return n.tag }

// Kind returns n's node kind.
func (n *Node) Kind() kind.Kind { return n.kind }

// Width returns the total byte width of n and everything below it,
// including all trivia.
func (n *Node) Width() int { return n.width }

// Flags returns n's precomputed propagating flags.
func (n *Node) Flags() Flags { return n.flags }

// Text returns the leaf text. Returns "" for non-leaf nodes.
func (n *Node) Text() string {
	if n.tag != Leaf {
		return ""
	}
	return n.text
}

// Leading returns the leading trivia of a leaf. Returns nil for non-leaf
// nodes.
func (n *Node) Leading() trivia.Run {
	if n.tag != Leaf {
		return nil
	}
	return n.leading
}

// Trailing returns the trailing trivia of a leaf. Returns nil for
// non-leaf nodes.
func (n *Node) Trailing() trivia.Run {
	if n.tag != Leaf {
		return nil
	}
	return n.trailing
}

// Opener returns the opener leaf of a Block. Returns nil otherwise.
func (n *Node) Opener() *Node {
	if n.tag != Block {
		return nil
	}
	return n.opener
}

// Closer returns the closer leaf of a Block. Returns nil otherwise. A
// Block with an unclosed source range (spec.md §7) has a closer whose
// Text() is "".
func (n *Node) Closer() *Node {
	if n.tag != Block {
		return nil
	}
	return n.closer
}

// HasCloser reports whether a Block's closer corresponds to real source
// text, as opposed to the synthetic zero-width stand-in used for an
// unclosed block.
func (n *Node) HasCloser() bool {
	return n.tag == Block && n.closer.text != ""
}

// SlotCount returns the number of children n has. Leaves always have
// zero.
func (n *Node) SlotCount() int {
	return len(n.children)
}

// GetSlot returns the i-th child, or nil if i is out of range.
func (n *Node) GetSlot(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Slots returns the full child slice. Callers must not mutate it: it is
// shared with n and, potentially, with every other tree version that
// shares this subtree.
func (n *Node) Slots() []*Node {
	return n.children
}

// SlotOffset returns the byte offset of the i-th child relative to the
// start of n (i.e. relative to n's own leading trivia, or to the start of
// n's opener for a Block). O(1) when n precomputed an offset table,
// O(i) otherwise.
func (n *Node) SlotOffset(i int) int {
	if i < 0 || i >= len(n.children) {
		panic("green: slot offset out of range")
	}
	if n.offsets != nil {
		return n.offsets[i]
	}

	base := 0
	if n.tag == Block {
		base = n.opener.width
	}
	for j := 0; j < i; j++ {
		base += n.children[j].width
	}
	return base
}

// clone returns a shallow copy of n. Used by the mutators in mutate.go
// as the basis for structural-sharing edits: every mutator clones n,
// patches the fields that changed, and recomputes width/flags/offsets,
// leaving the original n (and anything that still points at it) entirely
// untouched.
func (n *Node) clone() *Node {
	c := *n
	return &c
}
