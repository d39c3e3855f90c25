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

// Package tree provides the SyntaxTree facade of spec.md §4.11: a
// schema-aware wrapper around a green root that owns red-tree caching,
// editing, and undo/redo history.
package tree

import (
	"errors"
	"fmt"
	"iter"
	"sync"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/avelino/syntree/bind"
	"github.com/avelino/syntree/edit"
	"github.com/avelino/syntree/green"
	"github.com/avelino/syntree/kind"
	"github.com/avelino/syntree/lex"
	"github.com/avelino/syntree/query"
	"github.com/avelino/syntree/red"
	"github.com/avelino/syntree/report"
	"github.com/avelino/syntree/schema"
)

// ErrNilSchema is returned by WithSchema(nil) (spec.md §4.11 failure
// model).
var ErrNilSchema = errors.New("tree: schema must not be nil")

// SyntaxTree is a schema-aware wrapper around a green root, caching a
// red root and an undo/redo history of prior roots. Not safe for
// concurrent mutation (spec.md §5); concurrent read-only traversal is
// safe because green nodes are immutable.
type SyntaxTree struct {
	mu     sync.Mutex
	root   *green.Node
	schema schema.Schema
	red    *red.Node

	undoStack []*green.Node
	redoStack []*green.Node

	diags *report.Report
}

// Parse lexes src with s's tokenizer options (or the zero options, if s
// is nil) and returns an unbound tree. Parsing never fails; lexical
// errors become Error leaves, recorded on Diagnostics().
func Parse(src string, s schema.Schema) *SyntaxTree {
	diags := &report.Report{}
	opts := schema.TokenizerOptions{}
	var kw schema.KeywordLookup
	if s != nil {
		opts = s.Tokenizer()
		kw = s
	}
	root := lex.Lex(src, opts, kw, diags)
	return &SyntaxTree{root: root, schema: s, diags: diags}
}

// ParseAndBind parses src and immediately binds it against s.
func ParseAndBind(src string, s schema.Schema) *SyntaxTree {
	t := Parse(src, s)
	return t.Bind()
}

// FromRoot wraps an already-built green root, with no parsing involved.
func FromRoot(root *green.Node, s schema.Schema) *SyntaxTree {
	return &SyntaxTree{root: root, schema: s}
}

// WithSchema returns a new tree over the same text with s installed,
// binding it if s declares any syntax definitions. s must not be nil.
func (t *SyntaxTree) WithSchema(s schema.Schema) (*SyntaxTree, error) {
	if s == nil {
		return nil, ErrNilSchema
	}
	next := &SyntaxTree{root: t.root, schema: s, diags: t.diags}
	if len(s.SyntaxDefinitions()) > 0 {
		return next.Bind(), nil
	}
	return next, nil
}

// Bind returns a new tree with the current root bound against the
// tree's schema (a no-op, returning an equivalent tree, if the schema
// is nil or the root is already fully bound).
func (t *SyntaxTree) Bind() *SyntaxTree {
	return &SyntaxTree{root: bind.Bind(t.root, t.schema), schema: t.schema, diags: t.diags}
}

// Schema returns the tree's schema, or nil if none is set.
func (t *SyntaxTree) Schema() schema.Schema { return t.schema }

// Root returns the current green root. Implements edit.Host.
func (t *SyntaxTree) Root() *green.Node {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.root
}

// InstallRoot implements edit.Host: it pushes prev onto the undo stack,
// clears redo history, installs next, and invalidates the cached red
// root.
func (t *SyntaxTree) InstallRoot(prev, next *green.Node) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.undoStack = append(t.undoStack, prev)
	t.redoStack = nil
	t.root = next
	t.red = nil
}

// Diagnostics returns the lexical diagnostics recorded while parsing, if
// this tree came from Parse/ParseAndBind.
func (t *SyntaxTree) Diagnostics() []report.Diagnostic {
	if t.diags == nil {
		return nil
	}
	return t.diags.Errors()
}

// CreateEditor returns a new batch editor bound to this tree.
func (t *SyntaxTree) CreateEditor() *edit.Editor { return edit.New(t) }

// RedRoot lazily builds and caches the red root for the current green
// root.
func (t *SyntaxTree) RedRoot() *red.Node {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.red == nil {
		t.red = red.NewRoot(t.root)
	}
	return t.red
}

// Select resolves q against this tree's current contents.
func (t *SyntaxTree) Select(q *query.Query) iter.Seq[*red.Node] {
	return q.Bind(t.schema).Select(t.RedRoot())
}

// FindNodeAt returns the most deeply nested node containing pos, or nil
// if pos is outside the tree's range.
func (t *SyntaxTree) FindNodeAt(pos int) *red.Node { return red.FindNodeAt(t.RedRoot(), pos) }

// FindLeafAt returns the leaf containing pos, or nil if pos is outside
// the tree's range.
func (t *SyntaxTree) FindLeafAt(pos int) *red.Node { return red.FindLeafAt(t.RedRoot(), pos) }

// Leaves yields every leaf in document order, including each Block's
// opener and closer leaves.
func (t *SyntaxTree) Leaves() iter.Seq[*red.Node] {
	return func(yield func(*red.Node) bool) {
		var walk func(n *red.Node) bool
		walk = func(n *red.Node) bool {
			if n.Tag() == green.Leaf {
				return yield(n)
			}
			if n.Tag() == green.Block && !yield(n.OpenerNode()) {
				return false
			}
			for _, c := range n.Children() {
				if !walk(c) {
					return false
				}
			}
			return n.Tag() != green.Block || yield(n.CloserNode())
		}
		walk(t.RedRoot())
	}
}

// NodesOfKind yields every node (of any shape) whose Kind is k, in
// document order, using the inlined short-circuiting enumerator rather
// than general query matching.
func (t *SyntaxTree) NodesOfKind(k kind.Kind) iter.Seq[*red.Node] {
	return func(yield func(*red.Node) bool) {
		for r := range query.KindRegions(t.RedRoot(), k) {
			if !yield(r.Parent.Child(r.StartSlot)) {
				return
			}
		}
	}
}

// NodesOfKindConcurrent is NodesOfKind, fanned out across n goroutines
// over the root's top-level children (spec.md §5's read-concurrency
// guarantee). Results are not ordered.
func (t *SyntaxTree) NodesOfKindConcurrent(k kind.Kind, n int) ([]*red.Node, error) {
	var mu sync.Mutex
	var out []*red.Node
	err := red.WalkConcurrent(red.Walker{Show: red.ShowAll}, t.RedRoot(), n, func(node *red.Node) {
		if node.Kind() != k {
			return
		}
		mu.Lock()
		out = append(out, node)
		mu.Unlock()
	})
	return out, err
}

// ToText renders the tree back to its exact source text.
func (t *SyntaxTree) ToText() string { return t.Root().SourceText() }

// DiffText returns a unified diff between this tree's text and other's,
// labelled "want"/"got" in protocompile's golden-test convention.
func (t *SyntaxTree) DiffText(other *SyntaxTree) string {
	want, got := t.ToText(), other.ToText()
	if want == got {
		return ""
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}
	return diff
}

// CanUndo reports whether Undo would have an effect.
func (t *SyntaxTree) CanUndo() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.undoStack) > 0
}

// CanRedo reports whether Redo would have an effect.
func (t *SyntaxTree) CanRedo() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.redoStack) > 0
}

// Undo reverts to the previous root, if any, returning false if the
// undo stack is empty.
func (t *SyntaxTree) Undo() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.undoStack) == 0 {
		return false
	}
	prev := t.undoStack[len(t.undoStack)-1]
	t.undoStack = t.undoStack[:len(t.undoStack)-1]
	t.redoStack = append(t.redoStack, t.root)
	t.root = prev
	t.red = nil
	return true
}

// Redo reapplies the most recently undone root, returning false if
// there is nothing to redo.
func (t *SyntaxTree) Redo() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.redoStack) == 0 {
		return false
	}
	next := t.redoStack[len(t.redoStack)-1]
	t.redoStack = t.redoStack[:len(t.redoStack)-1]
	t.undoStack = append(t.undoStack, t.root)
	t.root = next
	t.red = nil
	return true
}

// ClearHistory discards the undo and redo stacks without changing the
// current root.
func (t *SyntaxTree) ClearHistory() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.undoStack = nil
	t.redoStack = nil
}

var _ fmt.Stringer = (*SyntaxTree)(nil)

// String renders the tree's source text, so a *SyntaxTree can be passed
// directly to fmt verbs like %s during debugging.
func (t *SyntaxTree) String() string { return t.ToText() }
