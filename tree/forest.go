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

package tree

import (
	"iter"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/avelino/syntree/query"
	"github.com/avelino/syntree/red"
)

// Forest is a named collection of trees, keyed by a path string, letting
// a query.WithPath glob select matches across many trees at once
// (spec.md's core scopes to a single buffer; multi-file workspaces are
// how systems like this are actually embedded).
type Forest struct {
	mu    sync.RWMutex
	trees map[string]*SyntaxTree
}

// NewForest returns an empty forest.
func NewForest() *Forest {
	return &Forest{trees: make(map[string]*SyntaxTree)}
}

// Put installs (or replaces) the tree at path.
func (f *Forest) Put(path string, t *SyntaxTree) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trees[path] = t
}

// Remove drops the tree at path, if any.
func (f *Forest) Remove(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.trees, path)
}

// Get returns the tree at path, if any.
func (f *Forest) Get(path string) (*SyntaxTree, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	t, ok := f.trees[path]
	return t, ok
}

// Paths returns every path currently in the forest, sorted.
func (f *Forest) Paths() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]string, 0, len(f.trees))
	for p := range f.trees {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Match pairs a node with the path of the tree it came from.
type Match struct {
	Path string
	Node *red.Node
}

// Select resolves q across every tree whose path matches q's embedded
// WithPath glob (either q itself, or one operand of a top-level
// Intersection — see query.Query.IntersectedWithPath). A q with no
// WithPath component is run, unfiltered, against every tree in the
// forest. When q is exactly WithPath(glob), every matching tree's root
// node is yielded once rather than running a node query against it.
func (f *Forest) Select(q *query.Query) iter.Seq[Match] {
	glob, rest, hasGlob := "", q, false
	if g, ok := q.PathGlob(); ok {
		glob, hasGlob = g, true
		rest = nil
	} else if g, r, ok := q.IntersectedWithPath(); ok {
		glob, rest, hasGlob = g, r, true
	}

	return func(yield func(Match) bool) {
		for _, path := range f.Paths() {
			if hasGlob {
				ok, err := doublestar.Match(glob, path)
				if err != nil || !ok {
					continue
				}
			}
			t, ok := f.Get(path)
			if !ok {
				continue
			}
			if rest == nil {
				if !yield(Match{Path: path, Node: t.RedRoot()}) {
					return
				}
				continue
			}
			for n := range t.Select(rest) {
				if !yield(Match{Path: path, Node: n}) {
					return
				}
			}
		}
	}
}
