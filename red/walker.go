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

package red

import (
	"iter"

	"github.com/avelino/syntree/green"
)

// Show is a bitmask selecting which node shapes a Walker visits (spec.md
// §4.5).
type Show uint8

const (
	// ShowLeaves includes Leaf nodes.
	ShowLeaves Show = 1 << iota
	// ShowBlocks includes Block, List, and Syntax container nodes.
	ShowBlocks
	// ShowRoot includes the root node. Forward and Backward apply it to
	// the tree's root (the node with no parent); ForwardWithPath applies
	// it to the walk's starting node.
	ShowRoot

	// ShowAll includes every node shape, including the root.
	ShowAll = ShowLeaves | ShowBlocks | ShowRoot
)

func (s Show) accepts(n *Node) bool {
	if n.Tag() == green.Leaf {
		return s&ShowLeaves != 0
	}
	return s&ShowBlocks != 0
}

// Disposition is the result of a Walker filter callback.
type Disposition int

const (
	// Accept yields this node and continues descending into its
	// children.
	Accept Disposition = iota
	// Skip does not yield this node but still descends into its
	// children.
	Skip
	// Reject does not yield this node and does not descend into its
	// children (pruning the subtree).
	Reject
)

// Filter decides what to do with a visited node.
type Filter func(*Node) Disposition

// Walker configures a depth-first traversal.
type Walker struct {
	Show   Show
	Filter Filter // nil means "always Accept".
}

func (w Walker) filter(n *Node) Disposition {
	if w.Filter == nil {
		return Accept
	}
	return w.Filter(n)
}

// Forward returns a depth-first, document-order iterator over root.
func (w Walker) Forward(root *Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		w.walk(root, true, yield)
	}
}

// Backward returns a depth-first iterator over root that visits each
// node's children last to first. A node is still yielded before its own
// children, so the sequence is not the exact reverse of Forward's.
func (w Walker) Backward(root *Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		w.walk(root, false, yield)
	}
}

func (w Walker) walk(n *Node, forward bool, yield func(*Node) bool) bool {
	isRoot := n.Parent() == nil && n.SiblingIndex() < 0
	visit := w.Show&ShowRoot != 0 || !isRoot

	disp := Accept
	if visit && w.Show.accepts(n) {
		disp = w.filter(n)
		if disp == Accept {
			if !yield(n) {
				return false
			}
		}
	}
	if disp == Reject {
		return true
	}

	count := n.SlotCount()
	if forward {
		for i := 0; i < count; i++ {
			if !w.walk(n.Child(i), forward, yield) {
				return false
			}
		}
	} else {
		for i := count - 1; i >= 0; i-- {
			if !w.walk(n.Child(i), forward, yield) {
				return false
			}
		}
	}
	return true
}

// PathStep pairs a visited node with the slot-index path from the walk's
// root to it. Each step builds its path from the parent's path rather
// than via repeated Parent() walks, but copies that path to append one
// index, so the extra work per step is O(depth), not O(1). Every yielded
// Path is an independent slice.
type PathStep struct {
	Node *Node
	Path green.Path
}

// ForwardWithPath is like Forward, but also yields each node's path from
// root.
func (w Walker) ForwardWithPath(root *Node) iter.Seq[PathStep] {
	return func(yield func(PathStep) bool) {
		w.walkPath(root, nil, yield)
	}
}

func (w Walker) walkPath(n *Node, path green.Path, yield func(PathStep) bool) bool {
	isRoot := len(path) == 0
	visit := w.Show&ShowRoot != 0 || !isRoot

	disp := Accept
	if visit && w.Show.accepts(n) {
		disp = w.filter(n)
		if disp == Accept {
			if !yield(PathStep{Node: n, Path: path}) {
				return false
			}
		}
	}
	if disp == Reject {
		return true
	}

	for i := 0; i < n.SlotCount(); i++ {
		childPath := append(append(green.Path(nil), path...), i)
		if !w.walkPath(n.Child(i), childPath, yield) {
			return false
		}
	}
	return true
}
