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
	"sync"
	"unsafe"

	"github.com/avelino/syntree/green"
	"github.com/avelino/syntree/internal/iterx"
	"github.com/avelino/syntree/kind"
	"github.com/avelino/syntree/red"
	"github.com/avelino/syntree/schema"
)

// Bound is a Query paired with the schema used to resolve its
// schema-dependent variants (spec.md §4.6 "resolve(schema)"). It
// implements schema.Query, so any *Bound can be used directly as a
// schema.SyntaxDefinition alternative (package bind).
type Bound struct {
	q *Query
	s schema.Schema
}

// bindCache memoizes Bind per (Query, Schema) pair, since resolution is
// meant to be one-shot (spec.md §4.6).
var bindCache sync.Map // map[bindKey]*Bound

type bindKey struct {
	q *Query
	s schema.Schema
}

// Bind resolves q against s, caching the result. s may be nil, in which
// case every schema-dependent variant (SpecificKeyword, KeywordCategory)
// matches nothing, per spec.md §4.6 ("select(root) without a tree
// yields no matches for unresolved schema-dependent queries").
func (q *Query) Bind(s schema.Schema) *Bound {
	key := bindKey{q: q, s: s}
	if v, ok := bindCache.Load(key); ok {
		return v.(*Bound)
	}
	b := &Bound{q: q, s: s}
	actual, _ := bindCache.LoadOrStore(key, b)
	return actual.(*Bound)
}

// GreenChildren adapts a concrete green child slice to the
// schema.GreenChild view TryMatchGreen consumes.
func GreenChildren(nodes []*green.Node) []schema.GreenChild {
	out := make([]schema.GreenChild, len(nodes))
	for i, n := range nodes {
		out[i] = n
	}
	return out
}

// TryMatchGreen implements schema.Query.
func (b *Bound) TryMatchGreen(siblings []schema.GreenChild, start int) (bool, int) {
	return tryGreen(b.s, b.q, siblings, start)
}

// TryMatch is TryMatchGreen's red-level counterpart, with full
// position/parent/ancestry context available.
func (b *Bound) TryMatch(siblings []*red.Node, start int) (bool, int) {
	return tryRed(b.s, b.q, siblings, start)
}

// Matches reports whether b matches starting at n, considering n in
// the context of its siblings.
func (b *Bound) Matches(n *red.Node) bool {
	siblings, i := siblingsOf(n), n.SiblingIndex()
	if i < 0 {
		// The root, and a Block's opener/closer, sit outside any parent's
		// slot array: match them as a one-node window.
		siblings, i = []*red.Node{n}, 0
	}
	ok, _ := tryRed(b.s, b.q, siblings, i)
	return ok
}

// Select walks root in document order and yields every red node b
// matches, per spec.md §4.6. Zero-width navigation queries (Sibling,
// Parent, Ancestor, Boundary) yield their *target* node rather than the
// node the assertion was evaluated against.
func (b *Bound) Select(root *red.Node) iter.Seq[*red.Node] {
	switch b.q.kind {
	case qBoundary:
		return b.selectBoundary(root)
	case qInnerContent:
		return b.selectInnerContent(root)
	case qSibling, qParent, qAncestor:
		return b.selectNavigation(root)
	case qUnion:
		return b.selectUnion(root)
	default:
		return b.selectDefault(root)
	}
}

func (b *Bound) selectDefault(root *red.Node) iter.Seq[*red.Node] {
	return func(yield func(*red.Node) bool) {
		for n := range (red.Walker{Show: red.ShowAll}).Forward(root) {
			if b.Matches(n) && !yield(n) {
				return
			}
		}
	}
}

func (b *Bound) selectUnion(root *red.Node) iter.Seq[*red.Node] {
	return func(yield func(*red.Node) bool) {
		seen := make(map[[2]uintptr]bool)
		for part := range b.q.sub {
			for n := range b.q.sub[part].Bind(b.s).Select(root) {
				key := nodeKey(n)
				if seen[key] {
					continue
				}
				seen[key] = true
				if !yield(n) {
					return
				}
			}
		}
	}
}

func (b *Bound) selectNavigation(root *red.Node) iter.Seq[*red.Node] {
	var inner *Bound
	if len(b.q.sub) > 0 {
		inner = b.q.sub[0].Bind(b.s)
	}
	return func(yield func(*red.Node) bool) {
		for n := range (red.Walker{Show: red.ShowAll}).Forward(root) {
			target := navigationTarget(b.q, n, inner)
			if target == nil {
				continue
			}
			if inner != nil && !inner.Matches(target) {
				continue
			}
			if !yield(target) {
				return
			}
		}
	}
}

func navigationTarget(q *Query, n *red.Node, inner *Bound) *red.Node {
	switch q.kind {
	case qSibling:
		p := n.Parent()
		if p == nil {
			return nil
		}
		return p.Child(n.SiblingIndex() + q.min)
	case qParent:
		return n.Parent()
	case qAncestor:
		for p := n.Parent(); p != nil; p = p.Parent() {
			if inner == nil || inner.Matches(p) {
				return p
			}
		}
	}
	return nil
}

func (b *Bound) selectBoundary(root *red.Node) iter.Seq[*red.Node] {
	container := b.q.sub[0].Bind(b.s)
	return func(yield func(*red.Node) bool) {
		for c := range container.Select(root) {
			n := c.SlotCount()
			if n == 0 {
				continue
			}
			i := 0
			if b.q.side == End {
				i = n - 1
			}
			if !yield(c.Child(i)) {
				return
			}
		}
	}
}

func (b *Bound) selectInnerContent(root *red.Node) iter.Seq[*red.Node] {
	block := b.q.sub[0].Bind(b.s)
	return func(yield func(*red.Node) bool) {
		for c := range block.Select(root) {
			for _, child := range c.Children() {
				if !yield(child) {
					return
				}
			}
		}
	}
}

func siblingsOf(n *red.Node) []*red.Node {
	if n.Parent() == nil {
		return []*red.Node{n}
	}
	return n.Parent().Children()
}

func nodeKey(n *red.Node) [2]uintptr {
	return [2]uintptr{greenPtr(n), uintptr(n.Position())}
}

// --- green-level dispatch -------------------------------------------------

func tryGreen(s schema.Schema, q *Query, siblings []schema.GreenChild, start int) (bool, int) {
	switch q.kind {
	case qKind:
		return matchKindGreen(siblings, start, q.k)
	case qBlock:
		return matchBlockGreen(siblings, start, q.k)
	case qLeaf:
		return matchLeafGreen(siblings, start)
	case qAny:
		if start < len(siblings) {
			return true, 1
		}
		return false, 0
	case qNewline:
		return matchNewlineGreen(siblings, start, q.negate)
	case qAnyKeyword:
		if start < len(siblings) && siblings[start].Kind().IsKeyword() {
			return true, 1
		}
		return false, 0
	case qSpecificKeyword:
		if s == nil || start >= len(siblings) {
			return false, 0
		}
		kw, ok := s.Lookup(q.text)
		if !ok || siblings[start].Kind() != kw {
			return false, 0
		}
		return true, 1
	case qKeywordCategory:
		if s == nil || start >= len(siblings) {
			return false, 0
		}
		for _, kk := range s.Category(q.category) {
			if siblings[start].Kind() == kk {
				return true, 1
			}
		}
		return false, 0
	case qAnyOf:
		if start < len(siblings) && kindIn(siblings[start].Kind(), q.k, q.kinds) {
			return true, 1
		}
		return false, 0
	case qNoneOf:
		if start < len(siblings) && !kindIn(siblings[start].Kind(), q.k, q.kinds) {
			return true, 1
		}
		return false, 0
	case qUnion:
		for _, part := range q.sub {
			if ok, n := tryGreen(s, part, siblings, start); ok {
				return true, n
			}
		}
		return false, 0
	case qIntersection:
		if len(q.sub) == 0 {
			return false, 0
		}
		ok0, n0 := tryGreen(s, q.sub[0], siblings, start)
		if !ok0 {
			return false, 0
		}
		for _, part := range q.sub[1:] {
			ok, n := tryGreen(s, part, siblings, start)
			if !ok || n != n0 {
				return false, 0
			}
		}
		return true, n0
	case qSequence:
		total := 0
		cur := start
		for _, part := range q.sub {
			ok, n := tryGreen(s, part, siblings, cur)
			if !ok {
				return false, 0
			}
			cur += n
			total += n
		}
		return true, total
	case qOptional:
		if ok, n := tryGreen(s, q.sub[0], siblings, start); ok {
			return true, n
		}
		return true, 0
	case qRepeat:
		return repeatGreen(s, q, siblings, start)
	case qRepeatUntil:
		return repeatUntilGreen(s, q, siblings, start)
	case qLookahead:
		condOK, _ := tryGreen(s, q.sub[1], siblings, start)
		if condOK != q.positive {
			return false, 0
		}
		return tryGreen(s, q.sub[0], siblings, start)
	case qNot:
		if ok, _ := tryGreen(s, q.sub[0], siblings, start); ok {
			return false, 0
		}
		return true, 0
	case qBetween:
		return betweenGreen(s, q, siblings, start)
	case qBOF:
		return start == 0, 0
	case qEOF:
		return start == len(siblings), 0
	case qExact:
		if start >= len(siblings) {
			return false, 0
		}
		if gn, ok := siblings[start].(*green.Node); ok {
			if ex, ok2 := q.exact.node.(*green.Node); ok2 {
				return gn == ex, 1
			}
		}
		return false, 0
	case qTextFilter:
		ok, n := tryGreen(s, q.sub[0], siblings, start)
		if !ok || start >= len(siblings) {
			return false, 0
		}
		if !matchesTextMode(siblings[start].Text(), q.text, q.min) {
			return false, 0
		}
		return true, n
	default:
		// Sibling/Parent/Ancestor/BOF-relative-to-tree/Boundary/InnerContent/
		// WithPath are position- or container-structure-dependent and have
		// no green-level meaning (spec.md §9: not every query variant is
		// green-matchable); the binder never uses them in a
		// SyntaxDefinition alternative.
		return false, 0
	}
}

func repeatGreen(s schema.Schema, q *Query, siblings []schema.GreenChild, start int) (bool, int) {
	count, total, cur := 0, 0, start
	for q.max < 0 || count < q.max {
		ok, n := tryGreen(s, q.sub[0], siblings, cur)
		if !ok || n == 0 {
			break
		}
		cur += n
		total += n
		count++
	}
	return count >= q.min, total
}

func repeatUntilGreen(s schema.Schema, q *Query, siblings []schema.GreenChild, start int) (bool, int) {
	total, cur := 0, start
	for cur < len(siblings) {
		if ok, _ := tryGreen(s, q.sub[1], siblings, cur); ok {
			break
		}
		ok, n := tryGreen(s, q.sub[0], siblings, cur)
		if !ok || n == 0 {
			break
		}
		cur += n
		total += n
	}
	return true, total
}

func betweenGreen(s schema.Schema, q *Query, siblings []schema.GreenChild, start int) (bool, int) {
	okStart, n := tryGreen(s, q.sub[0], siblings, start)
	if !okStart {
		return false, 0
	}
	cur := start + n
	for cur < len(siblings) {
		if okEnd, nEnd := tryGreen(s, q.sub[1], siblings, cur); okEnd {
			end := cur
			if q.inclusive {
				end += nEnd
			}
			return true, end - start
		}
		cur++
	}
	return false, 0
}

func matchKindGreen(siblings []schema.GreenChild, start int, k kind.Kind) (bool, int) {
	if start >= len(siblings) || siblings[start].Kind() != k {
		return false, 0
	}
	return true, 1
}

func matchBlockGreen(siblings []schema.GreenChild, start int, k kind.Kind) (bool, int) {
	if start >= len(siblings) || !siblings[start].Kind().IsBlock() {
		return false, 0
	}
	if k != 0 && siblings[start].Kind() != k {
		return false, 0
	}
	return true, 1
}

func matchLeafGreen(siblings []schema.GreenChild, start int) (bool, int) {
	if start >= len(siblings) {
		return false, 0
	}
	if gn, ok := siblings[start].(*green.Node); ok && gn.Tag() != green.Leaf {
		return false, 0
	}
	k := siblings[start].Kind()
	if k.IsBlock() || k == kind.TokenList {
		return false, 0
	}
	return true, 1
}

func matchNewlineGreen(siblings []schema.GreenChild, start int, negate bool) (bool, int) {
	if start >= len(siblings) {
		return false, 0
	}
	has := false
	if gn, ok := siblings[start].(*green.Node); ok {
		has = gn.Leading().ContainsNewline()
		if !has && start > 0 {
			if prev, ok := siblings[start-1].(*green.Node); ok {
				has = prev.Trailing().ContainsNewline()
			}
		}
	}
	if negate {
		has = !has
	}
	if !has {
		return false, 0
	}
	return true, 1
}

func kindIn(k kind.Kind, first kind.Kind, rest []kind.Kind) bool {
	if k == first {
		return true
	}
	for _, o := range rest {
		if k == o {
			return true
		}
	}
	return false
}

func matchesTextMode(text, want string, mode int) bool {
	switch mode {
	case textPrefix:
		return len(text) >= len(want) && text[:len(want)] == want
	case textSuffix:
		return len(text) >= len(want) && text[len(text)-len(want):] == want
	default:
		return text == want
	}
}

// --- red-level dispatch ----------------------------------------------------

func tryRed(s schema.Schema, q *Query, siblings []*red.Node, start int) (bool, int) {
	switch q.kind {
	case qNewline:
		return matchNewlineRed(siblings, start, q.negate)
	case qSibling, qParent, qAncestor:
		if start >= len(siblings) {
			return false, 0
		}
		var inner *Bound
		if len(q.sub) > 0 {
			inner = q.sub[0].Bind(s)
		}
		target := navigationTarget(q, siblings[start], inner)
		if target == nil {
			return false, 0
		}
		if inner != nil && !inner.Matches(target) {
			return false, 0
		}
		return true, 0
	case qBOF:
		if start >= len(siblings) {
			return false, 0
		}
		return siblings[start].Position() == 0, 0
	case qEOF:
		if start >= len(siblings) {
			return false, 0
		}
		return isLastInTree(siblings[start]), 0
	case qExact:
		if start >= len(siblings) {
			return false, 0
		}
		return matchExactRed(siblings[start], q.exact.node), 1
	case qBoundary, qInnerContent, qWithPath:
		return false, 0
	default:
		return tryGreenLike(s, q, greenSlice(siblings), start)
	}
}

// tryGreenLike re-expresses the structural combinators (Sequence,
// Optional, Repeat, Union, ...) over a red-node window by delegating
// single-node leaves of the dispatch to tryRed and everything else to
// the same shape as tryGreen, but operating on red nodes so that
// embedded Newline/Sibling/Parent/BOF/EOF sub-queries keep full context.
func tryGreenLike(s schema.Schema, q *Query, siblings []*red.Node, start int) (bool, int) {
	switch q.kind {
	case qKind:
		if start >= len(siblings) || siblings[start].Kind() != q.k {
			return false, 0
		}
		return true, 1
	case qBlock:
		if start >= len(siblings) || siblings[start].Tag() != green.Block {
			return false, 0
		}
		if q.k != 0 && siblings[start].Kind() != q.k {
			return false, 0
		}
		return true, 1
	case qLeaf:
		if start >= len(siblings) || siblings[start].Tag() != green.Leaf {
			return false, 0
		}
		return true, 1
	case qAny:
		if start < len(siblings) {
			return true, 1
		}
		return false, 0
	case qAnyKeyword:
		if start < len(siblings) && siblings[start].Kind().IsKeyword() {
			return true, 1
		}
		return false, 0
	case qSpecificKeyword:
		if s == nil || start >= len(siblings) {
			return false, 0
		}
		kw, ok := s.Lookup(q.text)
		if !ok || siblings[start].Kind() != kw {
			return false, 0
		}
		return true, 1
	case qKeywordCategory:
		if s == nil || start >= len(siblings) {
			return false, 0
		}
		for _, kk := range s.Category(q.category) {
			if siblings[start].Kind() == kk {
				return true, 1
			}
		}
		return false, 0
	case qAnyOf:
		if start < len(siblings) && kindIn(siblings[start].Kind(), q.k, q.kinds) {
			return true, 1
		}
		return false, 0
	case qNoneOf:
		if start < len(siblings) && !kindIn(siblings[start].Kind(), q.k, q.kinds) {
			return true, 1
		}
		return false, 0
	case qUnion:
		for _, part := range q.sub {
			if ok, n := tryRed(s, part, siblings, start); ok {
				return true, n
			}
		}
		return false, 0
	case qIntersection:
		if len(q.sub) == 0 {
			return false, 0
		}
		ok0, n0 := tryRed(s, q.sub[0], siblings, start)
		if !ok0 {
			return false, 0
		}
		for _, part := range q.sub[1:] {
			ok, n := tryRed(s, part, siblings, start)
			if !ok || n != n0 {
				return false, 0
			}
		}
		return true, n0
	case qSequence:
		total, cur := 0, start
		for _, part := range q.sub {
			ok, n := tryRed(s, part, siblings, cur)
			if !ok {
				return false, 0
			}
			cur += n
			total += n
		}
		return true, total
	case qOptional:
		if ok, n := tryRed(s, q.sub[0], siblings, start); ok {
			return true, n
		}
		return true, 0
	case qRepeat:
		count, total, cur := 0, 0, start
		for q.max < 0 || count < q.max {
			ok, n := tryRed(s, q.sub[0], siblings, cur)
			if !ok || n == 0 {
				break
			}
			cur += n
			total += n
			count++
		}
		return count >= q.min, total
	case qRepeatUntil:
		total, cur := 0, start
		for cur < len(siblings) {
			if ok, _ := tryRed(s, q.sub[1], siblings, cur); ok {
				break
			}
			ok, n := tryRed(s, q.sub[0], siblings, cur)
			if !ok || n == 0 {
				break
			}
			cur += n
			total += n
		}
		return true, total
	case qLookahead:
		condOK, _ := tryRed(s, q.sub[1], siblings, start)
		if condOK != q.positive {
			return false, 0
		}
		return tryRed(s, q.sub[0], siblings, start)
	case qNot:
		if ok, _ := tryRed(s, q.sub[0], siblings, start); ok {
			return false, 0
		}
		return true, 0
	case qBetween:
		okStart, n := tryRed(s, q.sub[0], siblings, start)
		if !okStart {
			return false, 0
		}
		cur := start + n
		for cur < len(siblings) {
			if okEnd, nEnd := tryRed(s, q.sub[1], siblings, cur); okEnd {
				end := cur
				if q.inclusive {
					end += nEnd
				}
				return true, end - start
			}
			cur++
		}
		return false, 0
	case qTextFilter:
		ok, n := tryRed(s, q.sub[0], siblings, start)
		if !ok || start >= len(siblings) {
			return false, 0
		}
		if !matchesTextMode(siblings[start].Text(), q.text, q.min) {
			return false, 0
		}
		return true, n
	default:
		return false, 0
	}
}

func matchNewlineRed(siblings []*red.Node, start int, negate bool) (bool, int) {
	if start >= len(siblings) {
		return false, 0
	}
	n := siblings[start]
	has := n.Green().Leading().ContainsNewline()
	if !has && start > 0 {
		has = siblings[start-1].Green().Trailing().ContainsNewline()
	}
	if negate {
		has = !has
	}
	if !has {
		return false, 0
	}
	return true, 1
}

func isLastInTree(n *red.Node) bool {
	for cur := n; cur != nil; {
		if cur.NextSibling() != nil {
			return false
		}
		cur = cur.Parent()
	}
	return true
}

func matchExactRed(n *red.Node, target any) bool {
	switch t := target.(type) {
	case *red.Node:
		return n.Equal(t)
	case *green.Node:
		return n.Green() == t
	default:
		return false
	}
}

func greenSlice(nodes []*red.Node) []*red.Node { return nodes }

func greenPtr(n *red.Node) uintptr {
	return uintptr(unsafe.Pointer(n.Green()))
}

// First, Last, Nth, Skip, Take, and Where re-export internal/iterx's
// generic sequence combinators specialised to *red.Node, matching
// spec.md §4.6's selection modifiers.
func First(seq iter.Seq[*red.Node]) (*red.Node, bool)      { return iterx.First(seq) }
func Last(seq iter.Seq[*red.Node]) (*red.Node, bool)       { return iterx.Last(seq) }
func Nth(seq iter.Seq[*red.Node], n int) (*red.Node, bool) { return iterx.Nth(seq, n) }
func Skip(seq iter.Seq[*red.Node], n int) iter.Seq[*red.Node] { return iterx.Skip(seq, n) }
func Take(seq iter.Seq[*red.Node], n int) iter.Seq[*red.Node] { return iterx.Take(seq, n) }
func Where(seq iter.Seq[*red.Node], p func(*red.Node) bool) iter.Seq[*red.Node] {
	return iterx.Where(seq, p)
}
