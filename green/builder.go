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
	"fmt"

	"github.com/avelino/syntree/trivia"
)

// Path is a sequence of slot indices identifying a container (a Block,
// List, or Syntax node) starting from some root, per spec.md's "Path"
// glossary entry.
type Path []int

// String implements fmt.Stringer for debugging.
func (p Path) String() string {
	return fmt.Sprint([]int(p))
}

// InsertAt inserts nodes at slot index in the container identified by
// path, rebuilding only the spine from root to that container. Every
// sibling off the spine is shared by reference with root.
func InsertAt(root *Node, path Path, index int, nodes []*Node) (*Node, error) {
	return rebuildSpine(root, path, func(container *Node) (*Node, error) {
		return container.WithInsert(index, nodes)
	})
}

// RemoveAt removes count children starting at slot index in the container
// identified by path.
func RemoveAt(root *Node, path Path, index, count int) (*Node, error) {
	return rebuildSpine(root, path, func(container *Node) (*Node, error) {
		return container.WithRemove(index, count)
	})
}

// ReplaceAt replaces count children starting at slot index in the
// container identified by path with nodes.
func ReplaceAt(root *Node, path Path, index, count int, nodes []*Node) (*Node, error) {
	return rebuildSpine(root, path, func(container *Node) (*Node, error) {
		return container.WithReplace(index, count, nodes)
	})
}

// ReplaceChild replaces exactly the single child at slot index in the
// container identified by path with node.
func ReplaceChild(root *Node, path Path, index int, node *Node) (*Node, error) {
	return rebuildSpine(root, path, func(container *Node) (*Node, error) {
		if container.tag == Leaf {
			return nil, ErrDescendIntoLeaf
		}
		if index < 0 || index >= len(container.children) {
			return nil, fmt.Errorf("%w: slot %d", ErrOutOfRange, index)
		}
		return container.WithSlot(index, node), nil
	})
}

// UpdateLeadingTrivia replaces the leading trivia of the leaf at slot
// index in the container identified by path.
func UpdateLeadingTrivia(root *Node, path Path, index int, leading trivia.Run) (*Node, error) {
	return rebuildSpine(root, path, func(container *Node) (*Node, error) {
		if container.tag == Leaf {
			return nil, ErrDescendIntoLeaf
		}
		if index < 0 || index >= len(container.children) {
			return nil, fmt.Errorf("%w: slot %d", ErrOutOfRange, index)
		}
		leaf := container.children[index]
		if leaf.tag != Leaf {
			return nil, fmt.Errorf("green: slot %d is not a leaf", index)
		}
		return container.WithSlot(index, leaf.WithLeadingTrivia(leading)), nil
	})
}

// Get navigates path from root and returns the container it identifies,
// or false if the path is invalid.
func Get(root *Node, path Path) (*Node, bool) {
	n := root
	for _, i := range path {
		if n.tag == Leaf {
			return nil, false
		}
		child := n.GetSlot(i)
		if child == nil {
			return nil, false
		}
		n = child
	}
	return n, true
}

// rebuildSpine descends root along path, applies apply to the container
// found there, and rebuilds every ancestor on the way back up so that it
// points at the newly-produced child, sharing every node off the spine.
func rebuildSpine(root *Node, path Path, apply func(container *Node) (*Node, error)) (*Node, error) {
	if len(path) == 0 {
		return apply(root)
	}
	if root.tag == Leaf {
		return nil, ErrDescendIntoLeaf
	}

	i := path[0]
	child := root.GetSlot(i)
	if child == nil {
		return nil, fmt.Errorf("%w: slot %d", ErrOutOfRange, i)
	}

	newChild, err := rebuildSpine(child, path[1:], apply)
	if err != nil {
		return nil, err
	}
	return root.WithSlot(i, newChild), nil
}
