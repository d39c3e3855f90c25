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

// Package edit implements the batched, query-driven editor of spec.md
// §4.10: operations queue PendingEdit values, which commit applies in
// one pass against the current green root.
package edit

import (
	"fmt"

	"github.com/tidwall/btree"

	"github.com/avelino/syntree/bind"
	"github.com/avelino/syntree/green"
	"github.com/avelino/syntree/lex"
	"github.com/avelino/syntree/query"
	"github.com/avelino/syntree/red"
	"github.com/avelino/syntree/schema"
	"github.com/avelino/syntree/trivia"
)

// InsertionPoint selects where, relative to a query's matched node, an
// Insert operation places new content.
type InsertionPoint int

const (
	// Before inserts as the previous sibling of the matched node.
	Before InsertionPoint = iota
	// After inserts as the next sibling of the matched node.
	After
	// InnerStart inserts as the matched node's first child.
	InnerStart
	// InnerEnd inserts as the matched node's last child.
	InnerEnd
)

type opKind int

const (
	opInsert opKind = iota
	opRemove
	opReplace
)

// PendingEdit is a queued, not-yet-applied edit (spec.md §4.10).
type PendingEdit struct {
	kind     opKind
	position int
	seq      int

	parentPath green.Path
	index      int

	text      string
	nodes     []*green.Node
	hasNodes  bool
	transform func(*red.Node) []*green.Node
	original  *red.Node // the matched node, for transform's argument

	leading  trivia.Run
	trailing trivia.Run
}

// Host is the minimal surface an owning tree must provide for an Editor
// to read and install green roots (the query/bind packages use the same
// structural-interface trick to avoid an import cycle between edit and
// the facade package that constructs editors).
type Host interface {
	Root() *green.Node
	Schema() schema.Schema
	// InstallRoot replaces the current root with next, pushing prev onto
	// the undo stack and clearing any redo history.
	InstallRoot(prev, next *green.Node)
}

// Editor is a stateful, single-threaded batch editor bound to a Host
// (spec.md §4.10, §5 "the editor... not safe for concurrent writers").
type Editor struct {
	host    Host
	pending btree.Map[int64, PendingEdit]
	seq     int
	count   int
}

// New returns an editor bound to host.
func New(host Host) *Editor { return &Editor{host: host} }

func (e *Editor) enqueue(p PendingEdit) {
	p.seq = e.seq
	e.seq++
	e.pending.Set(encodeKey(p.position, p.seq), p)
	e.count++
}

// encodeKey packs (position, seq) so that ascending iteration over the
// encoded key yields descending (position, seq) order directly (spec.md
// §4.10 step 1), without a slice sort at commit time. Positions and
// sequence numbers are assumed to fit in 32 bits, true for any source
// text and edit batch an in-memory tree can hold.
func encodeKey(position, seq int) int64 {
	return -(int64(uint32(position))<<32 | int64(uint32(seq)))
}

func (e *Editor) resolve(q *query.Query) []*red.Node {
	root := red.NewRoot(e.host.Root())
	bound := q.Bind(e.host.Schema())
	var out []*red.Node
	for n := range bound.Select(root) {
		out = append(out, n)
	}
	return out
}

// Insert resolves q against the current tree and, for each match,
// records an insertion of text at point. Text is lexed at commit time
// using the host's tokenizer options. An unresolvable query is a silent
// no-op (spec.md §4.11 failure model).
func (e *Editor) Insert(q *query.Query, point InsertionPoint, text string) {
	e.insert(q, point, text, nil, false)
}

// InsertNodes is Insert for already-built green nodes rather than text.
func (e *Editor) InsertNodes(q *query.Query, point InsertionPoint, nodes []*green.Node) {
	e.insert(q, point, "", nodes, true)
}

func (e *Editor) insert(q *query.Query, point InsertionPoint, text string, nodes []*green.Node, hasNodes bool) {
	for _, n := range e.resolve(q) {
		path, index, ok := insertionTarget(n, point)
		if !ok {
			continue
		}
		e.enqueue(PendingEdit{
			kind:       opInsert,
			position:   n.Position(),
			parentPath: path,
			index:      index,
			text:       text,
			nodes:      nodes,
			hasNodes:   hasNodes,
		})
	}
}

func insertionTarget(n *red.Node, point InsertionPoint) (green.Path, int, bool) {
	switch point {
	case Before:
		parent := n.Parent()
		if parent == nil {
			return nil, 0, false
		}
		return parent.Path(), n.SiblingIndex(), true
	case After:
		parent := n.Parent()
		if parent == nil {
			return nil, 0, false
		}
		return parent.Path(), n.SiblingIndex() + 1, true
	case InnerStart:
		if n.Tag() == green.Leaf {
			return nil, 0, false
		}
		return n.Path(), 0, true
	case InnerEnd:
		if n.Tag() == green.Leaf {
			return nil, 0, false
		}
		return n.Path(), n.SlotCount(), true
	default:
		return nil, 0, false
	}
}

// Remove resolves q against the current tree and, for each match,
// records removal of exactly that one child.
func (e *Editor) Remove(q *query.Query) {
	for _, n := range e.resolve(q) {
		parent := n.Parent()
		if parent == nil {
			continue
		}
		e.enqueue(PendingEdit{
			kind:       opRemove,
			position:   n.Position(),
			parentPath: parent.Path(),
			index:      n.SiblingIndex(),
		})
	}
}

// Replace resolves q against the current tree and, for each match,
// records replacing it with the lexed form of text, transferring the
// original's leading/trailing trivia onto the replacement's boundary.
func (e *Editor) Replace(q *query.Query, text string) {
	e.replace(q, text, nil, false, nil)
}

// ReplaceNodes is Replace for already-built green nodes.
func (e *Editor) ReplaceNodes(q *query.Query, nodes []*green.Node) {
	e.replace(q, "", nodes, true, nil)
}

// ReplaceWith replaces each match with whatever transform returns for
// it, evaluated at commit time against the node as it existed when
// queued.
func (e *Editor) ReplaceWith(q *query.Query, transform func(*red.Node) []*green.Node) {
	e.replace(q, "", nil, false, transform)
}

func (e *Editor) replace(q *query.Query, text string, nodes []*green.Node, hasNodes bool, transform func(*red.Node) []*green.Node) {
	for _, n := range e.resolve(q) {
		parent := n.Parent()
		if parent == nil {
			continue
		}
		e.enqueue(PendingEdit{
			kind:       opReplace,
			position:   n.Position(),
			parentPath: parent.Path(),
			index:      n.SiblingIndex(),
			text:       text,
			nodes:      nodes,
			hasNodes:   hasNodes,
			transform:  transform,
			original:   n,
			leading:    leadingTrivia(n.Green()),
			trailing:   trailingTrivia(n.Green()),
		})
	}
}

// Commit applies all queued edits in descending (position, seq) order,
// rebinds the result, and installs it as the new root (spec.md §4.10).
// It is a no-op if nothing is queued.
func (e *Editor) Commit() error {
	if e.count == 0 {
		return nil
	}

	var edits []PendingEdit
	e.pending.Scan(func(_ int64, p PendingEdit) bool {
		edits = append(edits, p)
		return true
	})

	root := e.host.Root()
	opts := schema.TokenizerOptions{}
	s := e.host.Schema()
	if s != nil {
		opts = s.Tokenizer()
	}

	for _, p := range edits {
		var err error
		switch p.kind {
		case opInsert:
			nodes := p.nodes
			if !p.hasNodes {
				nodes = lex.Lex(p.text, opts, s, nil).Slots()
			}
			if len(nodes) == 0 {
				continue
			}
			root, err = green.InsertAt(root, p.parentPath, p.index, nodes)
		case opRemove:
			root, err = green.RemoveAt(root, p.parentPath, p.index, 1)
		case opReplace:
			var nodes []*green.Node
			switch {
			case p.transform != nil:
				nodes = p.transform(p.original)
			case p.hasNodes:
				nodes = p.nodes
			default:
				nodes = lex.Lex(p.text, opts, s, nil).Slots()
			}
			nodes = transferTrivia(nodes, p.leading, p.trailing)
			root, err = green.ReplaceAt(root, p.parentPath, p.index, 1, nodes)
		}
		if err != nil {
			return fmt.Errorf("edit: commit: %w", err)
		}
	}

	bound := bind.Bind(root, s)

	prev := e.host.Root()
	e.host.InstallRoot(prev, bound)
	e.pending = btree.Map[int64, PendingEdit]{}
	e.count = 0
	return nil
}

// Rollback clears the queue without mutating the tree.
func (e *Editor) Rollback() {
	e.pending = btree.Map[int64, PendingEdit]{}
	e.count = 0
}

// transferTrivia implements spec.md §4.10 step 3: the first replacement
// node gets the original's leading trivia prepended, the last gets the
// original's trailing trivia appended. An empty replacement drops both.
func transferTrivia(nodes []*green.Node, leading, trailing trivia.Run) []*green.Node {
	if len(nodes) == 0 {
		return nodes
	}
	out := append([]*green.Node{}, nodes...)
	if len(leading) > 0 {
		out[0] = withPrependedLeading(out[0], leading)
	}
	if len(trailing) > 0 {
		out[len(out)-1] = withAppendedTrailing(out[len(out)-1], trailing)
	}
	return out
}

func leadingTrivia(n *green.Node) trivia.Run {
	for n.Tag() != green.Leaf {
		if n.Tag() == green.Block {
			n = n.Opener()
			continue
		}
		if n.SlotCount() == 0 {
			return nil
		}
		n = n.GetSlot(0)
	}
	return n.Leading()
}

func trailingTrivia(n *green.Node) trivia.Run {
	for n.Tag() != green.Leaf {
		if n.Tag() == green.Block {
			n = n.Closer()
			continue
		}
		if n.SlotCount() == 0 {
			return nil
		}
		n = n.GetSlot(n.SlotCount() - 1)
	}
	return n.Trailing()
}

func withPrependedLeading(n *green.Node, extra trivia.Run) *green.Node {
	switch n.Tag() {
	case green.Leaf:
		merged := append(append(trivia.Run{}, extra...), n.Leading()...)
		return n.WithLeadingTrivia(merged)
	case green.Block:
		return green.NewBlock(withPrependedLeading(n.Opener(), extra), n.Closer(), n.Slots())
	default:
		children := n.Slots()
		if len(children) == 0 {
			return n
		}
		updated := append([]*green.Node{withPrependedLeading(children[0], extra)}, children[1:]...)
		if n.Tag() == green.Syntax {
			return green.NewSyntax(n.Kind(), updated)
		}
		return green.NewList(updated)
	}
}

func withAppendedTrailing(n *green.Node, extra trivia.Run) *green.Node {
	switch n.Tag() {
	case green.Leaf:
		merged := append(append(trivia.Run{}, n.Trailing()...), extra...)
		return n.WithTrailingTrivia(merged)
	case green.Block:
		return green.NewBlock(n.Opener(), withAppendedTrailing(n.Closer(), extra), n.Slots())
	default:
		children := n.Slots()
		if len(children) == 0 {
			return n
		}
		updated := append(append([]*green.Node{}, children[:len(children)-1]...),
			withAppendedTrailing(children[len(children)-1], extra))
		if n.Tag() == green.Syntax {
			return green.NewSyntax(n.Kind(), updated)
		}
		return green.NewList(updated)
	}
}
