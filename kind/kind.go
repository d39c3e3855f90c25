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

// Package kind defines the node-kind identifier space shared by the green
// and red tree layers.
//
// A Kind is a 32-bit value partitioned into three bands: a small fixed band
// of structural kinds used by every schema, a keyword band reserved for
// schema-assigned keyword kinds, and a semantic band reserved for
// schema-assigned syntax-node kinds produced by the binder. Band membership
// is decidable from the numeric value alone, so callers never need to carry
// a schema around just to ask "is this a keyword".
package kind

import "fmt"

// Kind identifies the shape of a green or red node.
type Kind uint32

// Structural kinds. These are assigned by the lexer and builder and never
// vary across schemas.
const (
	Unrecognized Kind = iota
	Error             // A lexical error leaf: unterminated string/comment, stray closer.
	Ident             // A run of identifier characters.
	Numeric           // A run of digits, optionally with a fractional part.
	String            // A quoted string literal leaf.
	Symbol            // A single unclassified character.
	Operator          // A matched multi-character operator.
	TaggedIdent       // A tag-prefix character fused with a following identifier.

	BraceBlock   // `{ ... }`
	BracketBlock // `[ ... ]`
	ParenBlock   // `( ... )`

	TokenList // The root container of a tree; also used for synthetic lists.

	_structuralBandEnd
)

const (
	// KeywordBandStart is the first value reserved for schema-assigned
	// keyword kinds.
	KeywordBandStart Kind = 1000
	// KeywordBandEnd is one past the last value reserved for keyword kinds.
	KeywordBandEnd Kind = 100000
	// SemanticBandStart is the first value reserved for schema-assigned
	// syntax-node kinds produced by the binder.
	SemanticBandStart Kind = 100000
)

// IsStructural reports whether k is one of the fixed structural kinds
// assigned by the lexer (everything below the keyword band).
func (k Kind) IsStructural() bool {
	return k < KeywordBandStart
}

// IsKeyword reports whether k falls in the schema-assigned keyword band.
func (k Kind) IsKeyword() bool {
	return k >= KeywordBandStart && k < KeywordBandEnd
}

// IsSemantic reports whether k falls in the schema-assigned semantic band,
// i.e. it names a syntax-node kind produced by the binder.
func (k Kind) IsSemantic() bool {
	return k >= SemanticBandStart
}

// IsBlock reports whether k is one of the three block kinds.
func (k Kind) IsBlock() bool {
	return k == BraceBlock || k == BracketBlock || k == ParenBlock
}

// String implements fmt.Stringer, returning the structural kind's name or
// a banded placeholder for keyword/semantic kinds (whose names are owned by
// the schema, not this package).
func (k Kind) String() string {
	switch k {
	case Unrecognized:
		return "Unrecognized"
	case Error:
		return "Error"
	case Ident:
		return "Ident"
	case Numeric:
		return "Numeric"
	case String:
		return "String"
	case Symbol:
		return "Symbol"
	case Operator:
		return "Operator"
	case TaggedIdent:
		return "TaggedIdent"
	case BraceBlock:
		return "BraceBlock"
	case BracketBlock:
		return "BracketBlock"
	case ParenBlock:
		return "ParenBlock"
	case TokenList:
		return "TokenList"
	}
	switch {
	case k.IsKeyword():
		return fmt.Sprintf("Keyword(%d)", uint32(k))
	case k.IsSemantic():
		return fmt.Sprintf("Semantic(%d)", uint32(k))
	default:
		return fmt.Sprintf("kind.Kind(%d)", uint32(k))
	}
}

// OpenerFor returns the block kind for the given opening delimiter byte,
// and false if b does not open a block.
func OpenerFor(b byte) (Kind, bool) {
	switch b {
	case '{':
		return BraceBlock, true
	case '[':
		return BracketBlock, true
	case '(':
		return ParenBlock, true
	default:
		return Unrecognized, false
	}
}

// CloserFor returns the expected closing delimiter byte for a block kind.
func CloserFor(k Kind) (byte, bool) {
	switch k {
	case BraceBlock:
		return '}', true
	case BracketBlock:
		return ']', true
	case ParenBlock:
		return ')', true
	default:
		return 0, false
	}
}
