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

// Package bind implements the syntax binder of spec.md §4.8: it wraps
// sibling runs of green children into schema-defined Syntax nodes.
package bind

import (
	"fmt"
	"sort"

	"github.com/avelino/syntree/green"
	"github.com/avelino/syntree/schema"
)

// Bind recursively binds every node in root against s's syntax
// definitions, returning root unchanged (by identity) if nothing
// matched anywhere. A nil schema, or one with no definitions, is a
// no-op.
func Bind(root *green.Node, s schema.Schema) *green.Node {
	if s == nil {
		return root
	}
	defs := sortedDefinitions(s.SyntaxDefinitions())
	if len(defs) == 0 {
		return root
	}
	return bindNode(root, defs)
}

// RebindAt navigates to the subtree at path and re-binds only that
// subtree, returning a new root that shares everything outside path
// (spec.md §4.8 "Incremental rebind"). An empty path rebinds the whole
// tree.
func RebindAt(root *green.Node, path green.Path, s schema.Schema) (*green.Node, error) {
	if s == nil {
		return root, nil
	}
	defs := sortedDefinitions(s.SyntaxDefinitions())
	if len(defs) == 0 {
		return root, nil
	}
	if len(path) == 0 {
		return bindNode(root, defs), nil
	}

	target, ok := green.Get(root, path)
	if !ok {
		return nil, fmt.Errorf("bind: %w: path %s", green.ErrOutOfRange, path)
	}
	rebound := bindNode(target, defs)
	if rebound == target {
		return root, nil
	}
	parentPath := path[:len(path)-1]
	idx := path[len(path)-1]
	return green.ReplaceChild(root, parentPath, idx, rebound)
}

func sortedDefinitions(defs []schema.SyntaxDefinition) []schema.SyntaxDefinition {
	out := append([]schema.SyntaxDefinition(nil), defs...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority > out[j].Priority })
	return out
}

// bindNode implements spec.md §4.8's three-step algorithm.
func bindNode(n *green.Node, defs []schema.SyntaxDefinition) *green.Node {
	if n.Tag() == green.Leaf {
		return n
	}

	children := n.Slots()
	rebound := make([]*green.Node, len(children))
	changed := false
	for i, c := range children {
		rebound[i] = bindNode(c, defs)
		if rebound[i] != c {
			changed = true
		}
	}

	// A Syntax node's own children are the fixed slots of an already-
	// matched construct, not a free sibling run — only List and Block
	// containers get step 2's left-to-right wrapping pass. Without this,
	// re-binding an already-bound tree would re-match and re-wrap a
	// Syntax node's children against the very definition that produced
	// it, growing a new wrapper layer on every call.
	wrapped := rebound
	if n.Tag() != green.Syntax {
		var wrappedChanged bool
		wrapped, wrappedChanged = applyDefinitions(rebound, defs)
		if wrappedChanged {
			changed = true
		}
	}
	if !changed {
		return n
	}

	switch n.Tag() {
	case green.Block:
		return green.NewBlock(n.Opener(), n.Closer(), wrapped)
	case green.Syntax:
		return green.NewSyntax(n.Kind(), wrapped)
	default:
		return green.NewList(wrapped)
	}
}

// applyDefinitions walks children left to right, trying each definition
// in descending priority order (and each definition's alternatives in
// declaration order) at every index, wrapping the first successful
// match into a Syntax node and advancing past it.
func applyDefinitions(children []*green.Node, defs []schema.SyntaxDefinition) ([]*green.Node, bool) {
	siblings := greenChildren(children)
	out := make([]*green.Node, 0, len(children))
	changed := false

	i := 0
	for i < len(children) {
		matched := false
		for _, def := range defs {
			for _, alt := range def.Alternatives {
				ok, consumed := alt.TryMatchGreen(siblings, i)
				if !ok || consumed == 0 {
					continue
				}
				claimed := append([]*green.Node{}, children[i:i+consumed]...)
				out = append(out, green.NewSyntax(def.Kind, claimed))
				i += consumed
				matched = true
				changed = true
				break
			}
			if matched {
				break
			}
		}
		if !matched {
			out = append(out, children[i])
			i++
		}
	}
	return out, changed
}

func greenChildren(nodes []*green.Node) []schema.GreenChild {
	out := make([]schema.GreenChild, len(nodes))
	for i, n := range nodes {
		out[i] = n
	}
	return out
}
