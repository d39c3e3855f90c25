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

package bind_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelino/syntree/bind"
	"github.com/avelino/syntree/green"
	"github.com/avelino/syntree/kind"
	"github.com/avelino/syntree/lex"
	"github.com/avelino/syntree/query"
	"github.com/avelino/syntree/schema"
)

const (
	kindMethodCall kind.Kind = kind.SemanticBandStart + iota
	kindPropertyAccess
)

func memberOpts() schema.TokenizerOptions {
	return schema.TokenizerOptions{
		Symbols:         []byte("(){}.,;"),
		OperatorCapable: []byte{},
		Operators:       nil,
	}
}

type memberSchema struct{}

func (memberSchema) Lookup(string) (kind.Kind, bool)       { return 0, false }
func (memberSchema) ReverseLookup(kind.Kind) (string, bool) { return "", false }
func (memberSchema) Category(string) []kind.Kind           { return nil }
func (memberSchema) Tokenizer() schema.TokenizerOptions    { return memberOpts() }

func (memberSchema) SyntaxDefinitions() []schema.SyntaxDefinition {
	dot := query.Kind(kind.Symbol).WithText(".")
	methodCall := query.Sequence(query.Kind(kind.Ident), dot, query.Kind(kind.Ident), query.Block(kind.ParenBlock))
	propertyAccess := query.Sequence(query.Kind(kind.Ident), dot, query.Kind(kind.Ident))
	return []schema.SyntaxDefinition{
		{
			Name:         "MethodCall",
			Kind:         kindMethodCall,
			Priority:     10,
			Alternatives: []schema.Query{methodCall.Bind(memberSchema{})},
		},
		{
			Name:         "PropertyAccess",
			Kind:         kindPropertyAccess,
			Priority:     5,
			Alternatives: []schema.Query{propertyAccess.Bind(memberSchema{})},
		},
	}
}

func parse(t *testing.T, src string) *green.Node {
	t.Helper()
	return lex.Lex(src, memberOpts(), nil, nil)
}

func TestPriorityBindingPrefersHigherPriorityDefinition(t *testing.T) {
	t.Parallel()

	g := parse(t, "a.b()")
	bound := bind.Bind(g, memberSchema{})
	require.Equal(t, 1, bound.SlotCount())

	node := bound.GetSlot(0)
	require.Equal(t, green.Syntax, node.Tag())
	assert.Equal(t, kindMethodCall, node.Kind())
	assert.Equal(t, 4, node.SlotCount())
}

func TestPriorityBindingFallsBackToLowerPriorityDefinition(t *testing.T) {
	t.Parallel()

	g := parse(t, "a.b")
	bound := bind.Bind(g, memberSchema{})
	require.Equal(t, 1, bound.SlotCount())

	node := bound.GetSlot(0)
	require.Equal(t, green.Syntax, node.Tag())
	assert.Equal(t, kindPropertyAccess, node.Kind())
	assert.Equal(t, 3, node.SlotCount())
}

func TestBindIsIdempotent(t *testing.T) {
	t.Parallel()

	g := parse(t, "a.b() + a.c")
	once := bind.Bind(g, memberSchema{})
	twice := bind.Bind(once, memberSchema{})
	assert.Same(t, once, twice)
}

func TestBindUnchangedInputReturnsSameNode(t *testing.T) {
	t.Parallel()

	g := parse(t, "a")
	bound := bind.Bind(g, memberSchema{})
	assert.Same(t, g, bound)
}

func TestBindNilSchemaIsNoop(t *testing.T) {
	t.Parallel()

	g := parse(t, "a.b()")
	assert.Same(t, g, bind.Bind(g, nil))
}

func TestRebindAtSubtree(t *testing.T) {
	t.Parallel()

	g := parse(t, "{ a.b() }")
	require.Equal(t, green.List, g.Tag())
	require.Equal(t, 1, g.SlotCount())
	require.Equal(t, green.Block, g.GetSlot(0).Tag())

	rebound, err := bind.RebindAt(g, green.Path{0}, memberSchema{})
	require.NoError(t, err)
	require.Equal(t, 1, rebound.SlotCount())

	block := rebound.GetSlot(0)
	require.Equal(t, green.Block, block.Tag())
	require.Equal(t, 1, block.SlotCount())
	assert.Equal(t, kindMethodCall, block.GetSlot(0).Kind())
}

func TestRebindAtRootPathRebindsWholeTree(t *testing.T) {
	t.Parallel()

	g := parse(t, "a.b()")
	rebound, err := bind.RebindAt(g, nil, memberSchema{})
	require.NoError(t, err)
	require.Equal(t, 1, rebound.SlotCount())
	assert.Equal(t, kindMethodCall, rebound.GetSlot(0).Kind())
}

func TestRebindAtUnknownPathErrors(t *testing.T) {
	t.Parallel()

	g := parse(t, "a.b()")
	_, err := bind.RebindAt(g, green.Path{99}, memberSchema{})
	require.Error(t, err)
	assert.ErrorIs(t, err, green.ErrOutOfRange)
}
