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

// Package schema declares the small external-collaborator interface the
// rest of this module consumes, per spec.md §1/§6.
//
// Everything a concrete schema needs to actually build one — a character
// tokenizer-option builder DSL, keyword category registries, a parser
// generator for syntax definitions, language-specific semantic-node
// factories — is deliberately out of scope (spec.md §1 Non-goals). This
// package only names the shape the core engine depends on.
package schema

import "github.com/avelino/syntree/kind"

// TokenizerOptions configures the character and green lexers (spec.md
// §4.1/§4.2). It is a plain data struct: building one from, say, a
// config file or a fluent builder API is a collaborator's job.
type TokenizerOptions struct {
	// Symbols is the set of single-character punctuation bytes the
	// schema treats as symbols. The character lexer does not read it:
	// every character that does not start an identifier, digit,
	// whitespace, newline, or quote primitive becomes a single-character
	// Symbol primitive.
	Symbols []byte
	// OperatorCapable is the subset of Symbols that may participate in a
	// multi-character Operator; the operator trie (package lex) is only
	// ever walked over these bytes.
	OperatorCapable []byte
	// Operators is the full set of multi-character operator strings the
	// green lexer should greedily match, longest first.
	Operators []string
	// TagPrefixes is the set of characters that, immediately followed by
	// an identifier with no intervening trivia, fuse into a TaggedIdent
	// leaf (spec.md §4.2 step 3).
	TagPrefixes []byte
	// LineComments is the set of prefixes that start a comment
	// terminated by the next newline (exclusive).
	LineComments []string
	// BlockComments maps an opening comment delimiter to its closer,
	// e.g. "/*" -> "*/".
	BlockComments map[string]string
	// NormalizeIdents, when true, passes identifier and tagged-identifier
	// text through Unicode NFC normalisation before it is stored on the
	// resulting leaf. See SPEC_FULL.md's C4 entry: this recovers a
	// feature present in some original source tokenizers that the
	// distilled spec is silent on.
	NormalizeIdents bool
}

// KeywordLookup resolves identifier text to a keyword Kind.
type KeywordLookup interface {
	// Lookup resolves text to a keyword kind, trying a case-sensitive
	// match first and then a case-insensitive one (spec.md §4.2 step 3).
	// ok is false if text is not a keyword under either rule.
	Lookup(text string) (k kind.Kind, ok bool)
	// ReverseLookup returns the canonical spelling for a keyword kind,
	// if any.
	ReverseLookup(k kind.Kind) (text string, ok bool)
	// Category returns every keyword kind belonging to the named
	// category (e.g. "modifiers", "types"), used by
	// query.KeywordCategory.
	Category(name string) []kind.Kind
}

// SyntaxDefinition describes one pattern the binder (package bind) may
// wrap a sibling run of green children into.
type SyntaxDefinition struct {
	// Name identifies the definition for callers; neither the binder
	// nor bind.RebindAt reads it, and it has no effect on matching.
	Name string
	// Kind is the kind.Kind assigned to the resulting green Syntax node.
	// By convention this is in the semantic band (kind.SemanticBandStart
	// or above), but the binder does not enforce this.
	Kind kind.Kind
	// Alternatives are tried in order; the first alternative that
	// matches at a given position wins (spec.md §4.8).
	Alternatives []Query
	// Priority orders definitions relative to one another: higher
	// priority definitions are tried first at every position (spec.md
	// §4.8, end-to-end scenario 5).
	Priority int
}

// Query is satisfied by package query's *Bound type (a query.Query bound
// to a schema). It is re-declared here, rather than imported directly, to
// keep this package free of a dependency on package query: schema is a
// leaf package that both query and bind depend on, and Go forbids the
// reverse import. The method set below is a subset of *query.Bound's, so
// any *query.Bound implements this interface for free.
type Query interface {
	// TryMatchGreen attempts to match starting at siblings[start],
	// without creating any red nodes. consumed is the number of
	// siblings claimed, used by the binder (spec.md §4.6 "green
	// matching").
	TryMatchGreen(siblings []GreenChild, start int) (ok bool, consumed int)
}

// GreenChild is the minimal view of a green.Node a schema-agnostic Query
// needs to pattern-match against, re-declared here for the same layering
// reason as Query.
type GreenChild interface {
	Kind() kind.Kind
	Text() string
}

// Schema is the read-only configuration the tree, lexer, and binder
// consume (spec.md §6).
type Schema interface {
	KeywordLookup
	// Tokenizer returns this schema's character/green lexer
	// configuration.
	Tokenizer() TokenizerOptions
	// SyntaxDefinitions returns the ordered list of syntax definitions
	// the binder applies, already sorted by descending Priority.
	SyntaxDefinitions() []SyntaxDefinition
}
