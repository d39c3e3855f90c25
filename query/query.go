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

// Package query implements the pattern/query model of spec.md §4.6 and
// the region projection of §4.7.
//
// A *Query is schema-agnostic, immutable, composable data — a tagged
// union (mirroring package green's Node) rather than an interface
// hierarchy, so that combinators like Sequence/Repeat just nest Query
// values. Matching it against an actual tree requires a schema (keyword
// queries need to resolve text to a kind), so a Query is bound once via
// Bind(schema.Schema) into a *Bound, which is the type that actually
// implements matching and satisfies schema.Query for the binder (package
// bind).
package query

import "github.com/avelino/syntree/kind"

// qkind discriminates the Query variants of spec.md §4.6.
type qkind int

const (
	qKind qkind = iota
	qBlock
	qLeaf
	qAny
	qNewline
	qAnyKeyword
	qSpecificKeyword
	qKeywordCategory
	qUnion
	qIntersection
	qAnyOf
	qNoneOf
	qSequence
	qOptional
	qRepeat
	qRepeatUntil
	qLookahead
	qNot
	qBetween
	qSibling
	qParent
	qAncestor
	qBOF
	qEOF
	qExact
	qBoundary
	qInnerContent
	qWithPath
	qTextFilter
)

// Side selects which end of a container Boundary projects.
type Side int

const (
	// Start selects a container's first child.
	Start Side = iota
	// End selects a container's last child.
	End
)

// Query is an immutable, composable pattern as described in spec.md
// §4.6. The zero Query is not meaningful; build one with a constructor
// function.
type Query struct {
	kind qkind

	k        kind.Kind   // Kind/Block(opener)/AnyOf member/NoneOf member
	kinds    []kind.Kind // AnyOf/NoneOf members beyond the first
	text     string      // SpecificKeyword/WithText*
	category string      // KeywordCategory
	glob     string      // WithPath

	negate bool // Newline negation

	sub []*Query // operands, meaning depends on kind
	min int      // Repeat lower bound, Sibling offset
	max int      // Repeat upper bound (<0 means unbounded)

	positive bool // Lookahead polarity
	inclusive bool // Between inclusive-of-end

	side Side // Boundary

	exact *exactRef // Exact: identity of the green node to match
}

// exactRef wraps the reference compared by the Exact query, kept out of
// the main struct so Query itself stays comparable-by-value-shaped.
type exactRef struct {
	node interface {
		Kind() kind.Kind
		Text() string
	}
}

// Kind matches a single sibling whose Kind is exactly k.
func Kind(k kind.Kind) *Query { return &Query{kind: qKind, k: k} }

// Block matches a single Block sibling, optionally restricted to one
// block kind (pass 0 to accept any block).
func Block(opener kind.Kind) *Query { return &Query{kind: qBlock, k: opener} }

// Leaf matches any single leaf-shaped sibling (not a Block, List, or
// Syntax node).
func Leaf() *Query { return &Query{kind: qLeaf} }

// Any matches exactly one sibling, unconditionally.
func Any() *Query { return &Query{kind: qAny} }

// Newline matches a sibling whose own leading trivia, or whose previous
// sibling's trailing trivia, contains a newline. If negate is true, the
// sense is inverted.
func Newline(negate bool) *Query { return &Query{kind: qNewline, negate: negate} }

// AnyKeyword matches a single sibling whose Kind falls in the keyword
// band.
func AnyKeyword() *Query { return &Query{kind: qAnyKeyword} }

// SpecificKeyword matches a single sibling whose Kind is the keyword
// kind text resolves to under the bound schema. Unresolvable (no
// schema, or text is not a keyword) queries match nothing.
func SpecificKeyword(text string) *Query { return &Query{kind: qSpecificKeyword, text: text} }

// KeywordCategory matches a single sibling whose Kind belongs to the
// named keyword category under the bound schema.
func KeywordCategory(name string) *Query { return &Query{kind: qKeywordCategory, category: name} }

// Union matches whichever of qs matches first, in order (first
// non-empty match wins for sequence matching; select results are
// deduplicated by (green identity, position)).
func Union(qs ...*Query) *Query { return &Query{kind: qUnion, sub: qs} }

// Intersection matches only if every one of qs matches at the same
// position with an identical consumed count.
func Intersection(qs ...*Query) *Query { return &Query{kind: qIntersection, sub: qs} }

// AnyOf is an n-ary union over single-node kind checks, short-circuiting
// on the first match.
func AnyOf(ks ...kind.Kind) *Query {
	if len(ks) == 0 {
		return &Query{kind: qAnyOf}
	}
	return &Query{kind: qAnyOf, k: ks[0], kinds: ks[1:]}
}

// NoneOf matches a single sibling iff its Kind is none of ks.
func NoneOf(ks ...kind.Kind) *Query {
	if len(ks) == 0 {
		return &Query{kind: qNoneOf}
	}
	return &Query{kind: qNoneOf, k: ks[0], kinds: ks[1:]}
}

// Sequence matches parts in order over consecutive siblings; total
// consumed is the sum of each part's consumed count.
func Sequence(parts ...*Query) *Query { return &Query{kind: qSequence, sub: parts} }

// Optional always succeeds, consuming inner's match if present and
// zero siblings otherwise.
func Optional(inner *Query) *Query { return &Query{kind: qOptional, sub: []*Query{inner}} }

// Repeat greedily matches inner between min and max times (max < 0
// means unbounded).
func Repeat(inner *Query, min, max int) *Query {
	return &Query{kind: qRepeat, sub: []*Query{inner}, min: min, max: max}
}

// RepeatUntil greedily matches inner until terminator matches at the
// current position (terminator is not consumed), or — when terminator
// is a Newline query — until a newline is observed.
func RepeatUntil(inner, terminator *Query) *Query {
	return &Query{kind: qRepeatUntil, sub: []*Query{inner, terminator}}
}

// Lookahead matches iff cond's match (checked without consuming)
// equals positive; on success it consumes exactly what inner consumes
// at the same position.
func Lookahead(inner, cond *Query, positive bool) *Query {
	return &Query{kind: qLookahead, sub: []*Query{inner, cond}, positive: positive}
}

// Not is a zero-width negative assertion: it matches (consuming
// nothing) iff inner does not match at the current position.
func Not(inner *Query) *Query { return &Query{kind: qNot, sub: []*Query{inner}} }

// Between scans forward from a match of start for a match of end,
// failing if end is never reached. If inclusive, end's match is
// included in the consumed count.
func Between(start, end *Query, inclusive bool) *Query {
	return &Query{kind: qBetween, sub: []*Query{start, end}, inclusive: inclusive}
}

// Sibling is a zero-width navigation query: it matches iff the sibling
// at the given relative offset exists and (when inner is non-nil)
// satisfies inner. Select yields the target sibling, not the node the
// assertion was evaluated against.
func Sibling(offset int, inner *Query) *Query {
	var sub []*Query
	if inner != nil {
		sub = []*Query{inner}
	}
	return &Query{kind: qSibling, min: offset, sub: sub}
}

// Parent is a zero-width navigation query matching iff the current
// node's parent satisfies inner (or always, if inner is nil). Select
// yields the parent.
func Parent(inner *Query) *Query {
	var sub []*Query
	if inner != nil {
		sub = []*Query{inner}
	}
	return &Query{kind: qParent, sub: sub}
}

// Ancestor is like Parent but matches against any ancestor, not just
// the immediate one.
func Ancestor(inner *Query) *Query {
	var sub []*Query
	if inner != nil {
		sub = []*Query{inner}
	}
	return &Query{kind: qAncestor, sub: sub}
}

// BOF is a zero-width assertion matching only at the start of a
// sibling window (index 0) or, for Matches, a red node at absolute
// position 0.
func BOF() *Query { return &Query{kind: qBOF} }

// EOF is a zero-width assertion matching only at the end of a sibling
// window, or, for Matches, the last red node of the tree.
func EOF() *Query { return &Query{kind: qEOF} }

// Exact matches only the specific green-backed node instance given,
// compared by identity rather than by shape.
func Exact(node interface {
	Kind() kind.Kind
	Text() string
}) *Query {
	return &Query{kind: qExact, exact: &exactRef{node: node}}
}

// Boundary selects the first (Start) or last (End) child of each node
// matched by container.
func Boundary(container *Query, side Side) *Query {
	return &Query{kind: qBoundary, sub: []*Query{container}, side: side}
}

// InnerContent selects the full inner-child region of each Block
// matched by block. An empty block yields an empty region at slot 0.
func InnerContent(block *Query) *Query {
	return &Query{kind: qInnerContent, sub: []*Query{block}}
}

// WithPath is a tree-level predicate matching a red tree's source-path
// annotation against a doublestar glob; it is only meaningful through
// tree.Forest (see the facade package), since a single SyntaxTree has no
// notion of its own path.
func WithPath(glob string) *Query { return &Query{kind: qWithPath, glob: glob} }

// Or is sugar for Union(q, other).
func (q *Query) Or(other *Query) *Query { return Union(q, other) }

// And is sugar for Intersection(q, other).
func (q *Query) And(other *Query) *Query { return Intersection(q, other) }

// WithText restricts q to matches whose leaf text equals text exactly.
func (q *Query) WithText(text string) *Query {
	return &Query{kind: qTextFilter, sub: []*Query{q}, text: text}
}

// WithTextPrefix restricts q to matches whose leaf text has the given
// prefix.
func (q *Query) WithTextPrefix(prefix string) *Query {
	return &Query{kind: qTextFilter, sub: []*Query{q}, text: prefix, min: textPrefix}
}

// WithTextSuffix restricts q to matches whose leaf text has the given
// suffix.
func (q *Query) WithTextSuffix(suffix string) *Query {
	return &Query{kind: qTextFilter, sub: []*Query{q}, text: suffix, min: textSuffix}
}

const (
	textExact int = iota
	textPrefix
	textSuffix
)

// PathGlob reports the glob q filters on if q is exactly a WithPath
// query, for consumers (package tree's Forest) that need to pull the
// path predicate out of an otherwise ordinary node query before binding
// and matching the rest against a single tree.
func (q *Query) PathGlob() (glob string, ok bool) {
	if q.kind != qWithPath {
		return "", false
	}
	return q.glob, true
}

// IntersectedWithPath splits an Intersection(WithPath(glob), rest...)
// query into glob and the remaining intersection (or, if rest has
// exactly one member, that member alone). ok is false unless q is
// exactly shaped this way with precisely one WithPath operand.
func (q *Query) IntersectedWithPath() (glob string, rest *Query, ok bool) {
	if q.kind != qIntersection {
		return "", nil, false
	}
	var glob1 string
	var found bool
	var remaining []*Query
	for _, s := range q.sub {
		if g, isPath := s.PathGlob(); isPath && !found {
			glob1, found = g, true
			continue
		}
		remaining = append(remaining, s)
	}
	if !found || len(remaining) == 0 {
		return "", nil, false
	}
	if len(remaining) == 1 {
		return glob1, remaining[0], true
	}
	return glob1, Intersection(remaining...), true
}
