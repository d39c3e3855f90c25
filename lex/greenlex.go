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

package lex

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/avelino/syntree/green"
	"github.com/avelino/syntree/internal/optrie"
	"github.com/avelino/syntree/kind"
	"github.com/avelino/syntree/report"
	"github.com/avelino/syntree/schema"
	"github.com/avelino/syntree/trivia"
)

// Lex runs the full character+green lexer pipeline (spec.md §4.1/§4.2) and
// returns the root List green node. kw may be nil, in which case no
// identifier is ever reclassified as a keyword. diags may be nil; see
// report.Report.
func Lex(src string, opts schema.TokenizerOptions, kw schema.KeywordLookup, diags *report.Report) *green.Node {
	l := &lexer{
		prims: scanPrimitives(src),
		src:   src,
		opts:  opts,
		kw:    kw,
		trie:  optrie.New(opts.Operators),
		diags: diags,
	}
	return green.NewList(l.lexTopLevel())
}

type lexer struct {
	prims []primitive
	pos   int
	src   string
	opts  schema.TokenizerOptions
	kw    schema.KeywordLookup
	trie  *optrie.Trie
	diags *report.Report
}

func (l *lexer) atEnd() bool { return l.pos >= len(l.prims) }

func (l *lexer) peek() *primitive {
	if l.atEnd() {
		return nil
	}
	return &l.prims[l.pos]
}

func (l *lexer) peekAt(offset int) *primitive {
	i := l.pos + offset
	if i < 0 || i >= len(l.prims) {
		return nil
	}
	return &l.prims[i]
}

func (l *lexer) next() primitive {
	p := l.prims[l.pos]
	l.pos++
	return p
}

// lexTopLevel implements spec.md §4.2 steps 2-5 with no enclosing closer.
func (l *lexer) lexTopLevel() []*green.Node {
	var children []*green.Node
	for {
		leading := l.collectLeading()
		if l.atEnd() {
			if len(leading) > 0 {
				if len(children) > 0 {
					children[len(children)-1] = attachTrailing(children[len(children)-1], leading)
				} else {
					children = append(children, wrapTrivia(leading)...)
				}
			}
			return children
		}
		children = append(children, l.lexNode(leading))
	}
}

// lexBlock parses one Block, recursing via lexNode for its children
// (spec.md §4.2 "Blocks are parsed recursively").
func (l *lexer) lexBlock(leading trivia.Run) *green.Node {
	open := l.next()
	openerTrailing := l.collectTrailing()
	opener := green.NewLeaf(kind.Symbol, open.text, leading, openerTrailing)

	openKind, _ := kind.OpenerFor(open.text[0])
	closerByte, _ := kind.CloserFor(openKind)

	var children []*green.Node
	for {
		if l.atEnd() {
			l.diags.Errorf(report.Span{Start: open.pos, End: len(l.src)}, "unclosed block %q", open.text)
			return green.NewBlock(opener, nil, children)
		}

		childLeading := l.collectLeading()
		if l.atEnd() {
			switch {
			case len(children) > 0:
				children[len(children)-1] = attachTrailing(children[len(children)-1], childLeading)
			case len(childLeading) > 0:
				opener = attachTrailing(opener, childLeading)
			}
			l.diags.Errorf(report.Span{Start: open.pos, End: len(l.src)}, "unclosed block %q", open.text)
			return green.NewBlock(opener, nil, children)
		}

		if p := l.peek(); p.kind == pkSymbol && len(p.text) == 1 && p.text[0] == closerByte {
			l.next()
			// Same-line whitespace after the last child is the closer's
			// leading trivia, not that child's trailing trivia.
			if n := len(children); n > 0 && len(childLeading) == 0 {
				last, tail := children[n-1], children[n-1]
				if last.Tag() == green.Block {
					tail = last.Closer()
				}
				tr := tail.Trailing()
				cut := len(tr)
				for cut > 0 && tr[cut-1].Kind == trivia.Whitespace {
					cut--
				}
				childLeading, tail = tr[cut:], tail.WithTrailingTrivia(tr[:cut])
				if last.Tag() == green.Block {
					tail = green.NewBlock(last.Opener(), tail, last.Slots())
				}
				children[n-1] = tail
			}
			closerTrailing := l.collectTrailing()
			closer := green.NewLeaf(kind.Symbol, p.text, childLeading, closerTrailing)
			return green.NewBlock(opener, closer, children)
		}

		children = append(children, l.lexNode(childLeading))
	}
}

// lexNode parses exactly one node starting at the current primitive,
// following the dispatch order of spec.md §4.2 step 3.
func (l *lexer) lexNode(leading trivia.Run) *green.Node {
	p := l.peek()

	if p.kind == pkSymbol && len(p.text) == 1 {
		if _, ok := kind.OpenerFor(p.text[0]); ok {
			return l.lexBlock(leading)
		}
	}

	switch p.kind {
	case pkQuote:
		return l.lexString(leading)
	case pkDigits:
		return l.lexNumber(leading)
	}

	if p.kind == pkSymbol && p.text == "." {
		if nxt := l.peekAt(1); nxt != nil && nxt.kind == pkDigits {
			return l.lexNumber(leading)
		}
	}

	if p.kind == pkSymbol && len(p.text) == 1 && containsByte(l.opts.TagPrefixes, p.text[0]) {
		if nxt := l.peekAt(1); nxt != nil && nxt.kind == pkIdent {
			return l.lexTaggedIdent(leading)
		}
	}

	if p.kind == pkSymbol && len(p.text) == 1 && containsByte(l.opts.OperatorCapable, p.text[0]) {
		if text, ok := l.tryMatchOperator(); ok {
			trailing := l.collectTrailing()
			return green.NewLeaf(kind.Operator, text, leading, trailing)
		}
	}

	if p.kind == pkIdent {
		text := l.normalizeIdent(l.next().text)
		k := kind.Ident
		if l.kw != nil {
			if kk, ok := l.kw.Lookup(text); ok {
				k = kk
			}
		}
		trailing := l.collectTrailing()
		return green.NewLeaf(k, text, leading, trailing)
	}

	if p.kind == pkSymbol && len(p.text) == 1 && isCloserByte(p.text[0]) {
		tok := l.next()
		l.diags.Errorf(report.Span{Start: tok.pos, End: tok.pos + len(tok.text)},
			"unexpected closing delimiter %q", tok.text)
		trailing := l.collectTrailing()
		return green.NewLeaf(kind.Error, tok.text, leading, trailing)
	}

	tok := l.next()
	trailing := l.collectTrailing()
	return green.NewLeaf(kind.Symbol, tok.text, leading, trailing)
}

// lexString handles spec.md §4.2 step 3's quote branch, including
// backslash escaping and unterminated-string recovery (spec.md §7).
func (l *lexer) lexString(leading trivia.Run) *green.Node {
	open := l.next()
	quote := open.text

	var sb strings.Builder
	sb.WriteString(quote)
	closed := false
	for !l.atEnd() {
		p := l.next()
		sb.WriteString(p.text)
		if p.text == `\` {
			if !l.atEnd() {
				sb.WriteString(l.next().text)
			}
			continue
		}
		if p.text == quote {
			closed = true
			break
		}
	}

	text := sb.String()
	k := kind.String
	if !closed {
		k = kind.Error
		l.diags.Errorf(report.Span{Start: open.pos, End: open.pos + len(text)}, "unterminated string literal")
	}
	trailing := l.collectTrailing()
	return green.NewLeaf(k, text, leading, trailing)
}

// lexNumber handles both "digits[.digits]" and ".digits" forms (spec.md
// §4.2 step 3).
func (l *lexer) lexNumber(leading trivia.Run) *green.Node {
	var sb strings.Builder
	if p := l.peek(); p.kind == pkSymbol && p.text == "." {
		sb.WriteString(l.next().text)
		sb.WriteString(l.next().text)
	} else {
		sb.WriteString(l.next().text)
		if dot := l.peek(); dot != nil && dot.kind == pkSymbol && dot.text == "." {
			if frac := l.peekAt(1); frac != nil && frac.kind == pkDigits {
				sb.WriteString(l.next().text)
				sb.WriteString(l.next().text)
			}
		}
	}
	trailing := l.collectTrailing()
	return green.NewLeaf(kind.Numeric, sb.String(), leading, trailing)
}

func (l *lexer) lexTaggedIdent(leading trivia.Run) *green.Node {
	prefix := l.next().text
	ident := l.next().text
	text := l.normalizeIdent(prefix + ident)
	trailing := l.collectTrailing()
	return green.NewLeaf(kind.TaggedIdent, text, leading, trailing)
}

func (l *lexer) normalizeIdent(s string) string {
	if !l.opts.NormalizeIdents {
		return s
	}
	return norm.NFC.String(s)
}

// tryMatchOperator greedily matches the longest configured operator
// starting at the current primitive (spec.md §4.2 step 1).
func (l *lexer) tryMatchOperator() (string, bool) {
	if l.trie == nil {
		return "", false
	}

	var sb strings.Builder
	for i := l.pos; i < len(l.prims); i++ {
		pr := l.prims[i]
		if pr.kind != pkSymbol || len(pr.text) != 1 || !containsByte(l.opts.OperatorCapable, pr.text[0]) {
			break
		}
		sb.WriteString(pr.text)
	}

	match, ok := l.trie.LongestMatch(sb.String())
	if !ok || match == "" {
		return "", false
	}

	consumed := 0
	for consumed < len(match) {
		consumed += len(l.prims[l.pos].text)
		l.pos++
	}
	return match, true
}

// collectLeading implements spec.md §4.2 step 2.
func (l *lexer) collectLeading() trivia.Run {
	var run trivia.Run
	for !l.atEnd() {
		switch l.peek().kind {
		case pkWhitespace:
			run = append(run, trivia.Piece{Kind: trivia.Whitespace, Text: l.next().text})
		case pkNewline:
			run = append(run, trivia.Piece{Kind: trivia.Newline, Text: l.next().text})
		default:
			piece, ok := l.tryLexComment()
			if !ok {
				return run
			}
			run = append(run, piece)
		}
	}
	return run
}

// collectTrailing implements spec.md §4.2 step 4: same-line trivia up to
// and including the next newline.
func (l *lexer) collectTrailing() trivia.Run {
	var run trivia.Run
	for !l.atEnd() {
		switch l.peek().kind {
		case pkWhitespace:
			run = append(run, trivia.Piece{Kind: trivia.Whitespace, Text: l.next().text})
		case pkNewline:
			run = append(run, trivia.Piece{Kind: trivia.Newline, Text: l.next().text})
			return run
		default:
			piece, ok := l.tryLexComment()
			if !ok {
				return run
			}
			run = append(run, piece)
		}
	}
	return run
}

// tryLexComment matches a configured line or block comment starting at
// the current byte offset, operating directly on the source text rather
// than primitive-by-primitive since comment delimiters are arbitrary
// configured strings (spec.md §9: comment recognition happens only
// during trivia collection, never while resolving an operator).
func (l *lexer) tryLexComment() (trivia.Piece, bool) {
	offset := l.curOffset()
	rest := l.src[offset:]

	for _, lc := range l.opts.LineComments {
		if lc == "" || !strings.HasPrefix(rest, lc) {
			continue
		}
		end := len(l.src)
		if nl := strings.IndexAny(rest, "\n\r"); nl >= 0 {
			end = offset + nl
		}
		text := l.src[offset:end]
		l.advanceTo(end)
		return trivia.Piece{Kind: trivia.LineComment, Text: text}, true
	}

	for open, closeTok := range l.opts.BlockComments {
		if open == "" || !strings.HasPrefix(rest, open) {
			continue
		}
		body := rest[len(open):]
		idx := strings.Index(body, closeTok)
		var end int
		if idx < 0 {
			end = len(l.src)
			l.diags.Errorf(report.Span{Start: offset, End: end}, "unterminated block comment")
		} else {
			end = offset + len(open) + idx + len(closeTok)
		}
		text := l.src[offset:end]
		l.advanceTo(end)
		return trivia.Piece{Kind: trivia.BlockComment, Text: text}, true
	}

	return trivia.Piece{}, false
}

func (l *lexer) curOffset() int {
	if l.atEnd() {
		return len(l.src)
	}
	return l.prims[l.pos].pos
}

func (l *lexer) advanceTo(end int) {
	for !l.atEnd() && l.prims[l.pos].pos < end {
		l.pos++
	}
}

func containsByte(set []byte, b byte) bool {
	for _, s := range set {
		if s == b {
			return true
		}
	}
	return false
}

func isCloserByte(b byte) bool {
	return b == '}' || b == ']' || b == ')'
}

// attachTrailing merges extra trivia onto the rightmost leaf reachable
// from n, recursing through Block/List/Syntax containers (spec.md §4.2
// step 5: "any remaining trivia after the last node becomes that node's
// trailing trivia").
func attachTrailing(n *green.Node, extra trivia.Run) *green.Node {
	if len(extra) == 0 {
		return n
	}
	switch n.Tag() {
	case green.Leaf:
		merged := append(append(trivia.Run{}, n.Trailing()...), extra...)
		return n.WithTrailingTrivia(merged)
	case green.Block:
		return green.NewBlock(n.Opener(), attachTrailing(n.Closer(), extra), n.Slots())
	default:
		children := n.Slots()
		if len(children) == 0 {
			return n
		}
		updated := append(append([]*green.Node{}, children[:len(children)-1]...),
			attachTrailing(children[len(children)-1], extra))
		if n.Tag() == green.Syntax {
			return green.NewSyntax(n.Kind(), updated)
		}
		return green.NewList(updated)
	}
}

// wrapTrivia handles the edge case where an input consists of trivia
// only (spec.md §4.2 step 5).
func wrapTrivia(run trivia.Run) []*green.Node {
	out := make([]*green.Node, 0, len(run))
	for _, piece := range run {
		out = append(out, green.NewLeaf(kind.Unrecognized, piece.Text, nil, nil))
	}
	return out
}
