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

package query

import (
	"iter"

	"github.com/avelino/syntree/green"
	"github.com/avelino/syntree/kind"
	"github.com/avelino/syntree/red"
)

// Region is a contiguous slot range inside one parent (spec.md §4.7),
// the unit of edit targeting package edit resolves queries into.
type Region struct {
	Parent     *red.Node
	StartSlot  int
	EndSlot    int // exclusive
	ParentPath green.Path
	Position   int
}

// Width returns the number of slots the region spans.
func (r Region) Width() int { return r.EndSlot - r.StartSlot }

// Empty reports whether the region spans zero slots.
func (r Region) Empty() bool { return r.StartSlot == r.EndSlot }

// Regions projects b to a sequence of regions by walking the tree once
// and calling TryMatch at every slot of every container (spec.md §4.7's
// default resolution). Regions uses this general walk for Kind and Block
// queries too; KindRegions and BlockRegions are separate inlined,
// short-circuiting enumerators for those two shapes, so that
// First()/Take(n) over them is O(k) rather than requiring a full walk.
func (b *Bound) Regions(root *red.Node) iter.Seq[Region] {
	switch b.q.kind {
	case qBoundary:
		return b.boundaryRegions(root)
	case qInnerContent:
		return b.innerContentRegions(root)
	default:
		return func(yield func(Region) bool) {
			regionsIn(b, root, yield)
		}
	}
}

func regionsIn(b *Bound, container *red.Node, yield func(Region) bool) bool {
	children := container.Children()
	i := 0
	for i < len(children) {
		if ok, consumed := b.TryMatch(children, i); ok && consumed > 0 {
			r := Region{
				Parent:     container,
				StartSlot:  i,
				EndSlot:    i + consumed,
				ParentPath: container.Path(),
				Position:   children[i].Position(),
			}
			if !yield(r) {
				return false
			}
			i += consumed
			continue
		}
		i++
	}
	for _, c := range children {
		if c.Tag() == green.Leaf {
			continue
		}
		if !regionsIn(b, c, yield) {
			return false
		}
	}
	return true
}

func (b *Bound) boundaryRegions(root *red.Node) iter.Seq[Region] {
	container := b.q.sub[0].Bind(b.s)
	return func(yield func(Region) bool) {
		for c := range container.Select(root) {
			n := c.SlotCount()
			if n == 0 {
				continue
			}
			slot := 0
			if b.q.side == End {
				slot = n - 1
			}
			r := Region{
				Parent:     c,
				StartSlot:  slot,
				EndSlot:    slot + 1,
				ParentPath: c.Path(),
				Position:   c.Child(slot).Position(),
			}
			if !yield(r) {
				return
			}
		}
	}
}

// innerContentRegions yields, per matched block, a single region
// spanning every inner child — an empty block yields an empty region at
// slot 0 (spec.md §4.7, adapted: this module's green.Block stores only
// inner children in its slot array, with the opener/closer held as
// separate fields rather than occupying slots 0 and slot_count-1, so
// "slots 1..slot_count-2" in the original wording becomes "every slot"
// here; see DESIGN.md).
func (b *Bound) innerContentRegions(root *red.Node) iter.Seq[Region] {
	block := b.q.sub[0].Bind(b.s)
	return func(yield func(Region) bool) {
		for c := range block.Select(root) {
			r := Region{
				Parent:     c,
				StartSlot:  0,
				EndSlot:    c.SlotCount(),
				ParentPath: c.Path(),
				Position:   c.InnerStartPosition(),
			}
			if !yield(r) {
				return
			}
		}
	}
}

// KindRegions is the inlined, short-circuiting region enumerator for a
// bare Kind query (spec.md §4.7: "Simple queries (Kind, Block) implement
// an inlined, short-circuiting region enumerator"), avoiding the general
// TryMatch dispatch in regionsIn entirely.
func KindRegions(root *red.Node, k kind.Kind) iter.Seq[Region] {
	return func(yield func(Region) bool) {
		kindRegionsIn(root, k, yield)
	}
}

// BlockRegions is KindRegions's counterpart for block-shaped matches
// (kind.IsBlock()), optionally restricted to one block kind (pass 0 for
// any block).
func BlockRegions(root *red.Node, opener kind.Kind) iter.Seq[Region] {
	return func(yield func(Region) bool) {
		blockRegionsIn(root, opener, yield)
	}
}

func kindRegionsIn(container *red.Node, k kind.Kind, yield func(Region) bool) bool {
	children := container.Children()
	for i, c := range children {
		if c.Kind() == k {
			r := Region{Parent: container, StartSlot: i, EndSlot: i + 1, ParentPath: container.Path(), Position: c.Position()}
			if !yield(r) {
				return false
			}
		}
		if c.Tag() != green.Leaf {
			if !kindRegionsIn(c, k, yield) {
				return false
			}
		}
	}
	return true
}

func blockRegionsIn(container *red.Node, opener kind.Kind, yield func(Region) bool) bool {
	children := container.Children()
	for i, c := range children {
		if c.Tag() == green.Block && (opener == 0 || c.Kind() == opener) {
			r := Region{Parent: container, StartSlot: i, EndSlot: i + 1, ParentPath: container.Path(), Position: c.Position()}
			if !yield(r) {
				return false
			}
		}
		if c.Tag() != green.Leaf {
			if !blockRegionsIn(c, opener, yield) {
				return false
			}
		}
	}
	return true
}
