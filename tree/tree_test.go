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

package tree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelino/syntree/edit"
	"github.com/avelino/syntree/green"
	"github.com/avelino/syntree/kind"
	"github.com/avelino/syntree/query"
	"github.com/avelino/syntree/schema"
	"github.com/avelino/syntree/tree"
)

const kindCall kind.Kind = kind.SemanticBandStart + 1

type callSchema struct{}

func (callSchema) Lookup(string) (kind.Kind, bool)        { return 0, false }
func (callSchema) ReverseLookup(kind.Kind) (string, bool) { return "", false }
func (callSchema) Category(string) []kind.Kind            { return nil }

func (callSchema) Tokenizer() schema.TokenizerOptions {
	return schema.TokenizerOptions{Symbols: []byte("(){}+"), OperatorCapable: []byte("+"), Operators: []string{"+"}}
}

func (callSchema) SyntaxDefinitions() []schema.SyntaxDefinition {
	call := query.Sequence(query.Kind(kind.Ident), query.Block(kind.ParenBlock))
	return []schema.SyntaxDefinition{
		{
			Name:         "Call",
			Kind:         kindCall,
			Priority:     10,
			Alternatives: []schema.Query{call.Bind(callSchema{})},
		},
	}
}

func TestParseAndBindProducesBoundTree(t *testing.T) {
	t.Parallel()

	tr := tree.ParseAndBind("f()", callSchema{})
	require.Equal(t, 1, tr.Root().SlotCount())
	assert.Equal(t, kindCall, tr.Root().GetSlot(0).Kind())
	assert.Equal(t, "f()", tr.ToText())
}

func TestParseWithoutSchemaLeavesTreeUnbound(t *testing.T) {
	t.Parallel()

	tr := tree.Parse("f()", nil)
	assert.NotEqual(t, kindCall, tr.Root().GetSlot(0).Kind())
}

func TestWithSchemaRejectsNil(t *testing.T) {
	t.Parallel()

	tr := tree.Parse("f()", nil)
	_, err := tr.WithSchema(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, tree.ErrNilSchema)
}

func TestWithSchemaBindsAgainstNewSchema(t *testing.T) {
	t.Parallel()

	tr := tree.Parse("f()", nil)
	bound, err := tr.WithSchema(callSchema{})
	require.NoError(t, err)
	assert.Equal(t, kindCall, bound.Root().GetSlot(0).Kind())
	// original is untouched
	assert.NotEqual(t, kindCall, tr.Root().GetSlot(0).Kind())
}

func TestBindIsIdempotentThroughFacade(t *testing.T) {
	t.Parallel()

	tr := tree.ParseAndBind("f()", callSchema{})
	again := tr.Bind()
	assert.Same(t, tr.Root(), again.Root())
}

func TestSelectFindsBoundCallNodes(t *testing.T) {
	t.Parallel()

	tr := tree.ParseAndBind("f() + g()", callSchema{})
	var n int
	for range tr.Select(query.Kind(kindCall)) {
		n++
	}
	assert.Equal(t, 2, n)
}

func TestFindNodeAtAndFindLeafAt(t *testing.T) {
	t.Parallel()

	tr := tree.ParseAndBind("f()", callSchema{})
	node := tr.FindNodeAt(0)
	require.NotNil(t, node)

	leaf := tr.FindLeafAt(0)
	require.NotNil(t, leaf)
	assert.Equal(t, green.Leaf, leaf.Tag())
}

func TestLeavesYieldsEveryLeafInOrder(t *testing.T) {
	t.Parallel()

	tr := tree.ParseAndBind("f() + g()", callSchema{})
	var texts []string
	for l := range tr.Leaves() {
		texts = append(texts, l.Text())
	}
	assert.Equal(t, []string{"f", "(", ")", "+", "g", "(", ")"}, texts)
}

func TestNodesOfKindFindsEveryMatch(t *testing.T) {
	t.Parallel()

	tr := tree.ParseAndBind("f() + g()", callSchema{})
	var n int
	for range tr.NodesOfKind(kindCall) {
		n++
	}
	assert.Equal(t, 2, n)
}

func TestNodesOfKindConcurrentFindsEveryMatch(t *testing.T) {
	t.Parallel()

	tr := tree.ParseAndBind("f() + g()", callSchema{})
	nodes, err := tr.NodesOfKindConcurrent(kindCall, 4)
	require.NoError(t, err)
	assert.Len(t, nodes, 2)
}

func TestDiffTextIsEmptyForIdenticalTrees(t *testing.T) {
	t.Parallel()

	a := tree.Parse("f() + g()", nil)
	b := tree.Parse("f() + g()", nil)
	assert.Empty(t, a.DiffText(b))
}

func TestDiffTextReportsUnifiedDiffForDifferentTrees(t *testing.T) {
	t.Parallel()

	a := tree.Parse("f()\n", nil)
	b := tree.Parse("g()\n", nil)
	diff := a.DiffText(b)
	assert.Contains(t, diff, "-f()")
	assert.Contains(t, diff, "+g()")
}

func TestStringRendersSourceText(t *testing.T) {
	t.Parallel()

	tr := tree.Parse("f() + g()", nil)
	assert.Equal(t, "f() + g()", tr.String())
}

func TestUndoRedoAndClearHistoryThroughFacade(t *testing.T) {
	t.Parallel()

	tr := tree.ParseAndBind("{ }", callSchema{})
	original := tr.ToText()
	assert.False(t, tr.CanUndo())
	assert.False(t, tr.CanRedo())

	ed := tr.CreateEditor()
	ed.Insert(query.Block(kind.BraceBlock), edit.InnerStart, "x")
	require.NoError(t, ed.Commit())
	edited := tr.ToText()
	assert.NotEqual(t, original, edited)
	assert.True(t, tr.CanUndo())
	assert.False(t, tr.CanRedo())

	require.True(t, tr.Undo())
	assert.Equal(t, original, tr.ToText())
	assert.False(t, tr.CanUndo())
	assert.True(t, tr.CanRedo())

	require.True(t, tr.Redo())
	assert.Equal(t, edited, tr.ToText())
	assert.False(t, tr.Redo())

	require.True(t, tr.Undo())
	tr.ClearHistory()
	assert.False(t, tr.CanUndo())
	assert.False(t, tr.CanRedo())
	assert.False(t, tr.Undo())
	assert.False(t, tr.Redo())
}

func TestForestSelectFiltersByPathGlob(t *testing.T) {
	t.Parallel()

	f := tree.NewForest()
	f.Put("a/one.txt", tree.ParseAndBind("f()", callSchema{}))
	f.Put("a/two.txt", tree.ParseAndBind("g()", callSchema{}))
	f.Put("b/three.txt", tree.ParseAndBind("h()", callSchema{}))

	var paths []string
	for m := range f.Select(query.WithPath("a/*.txt")) {
		paths = append(paths, m.Path)
	}
	assert.ElementsMatch(t, []string{"a/one.txt", "a/two.txt"}, paths)
}

func TestForestSelectRunsRestQueryWithinMatchedPaths(t *testing.T) {
	t.Parallel()

	f := tree.NewForest()
	f.Put("a/one.txt", tree.ParseAndBind("f() + g()", callSchema{}))
	f.Put("b/two.txt", tree.ParseAndBind("h() + i()", callSchema{}))

	var n int
	for range f.Select(query.WithPath("a/*.txt").And(query.Kind(kindCall))) {
		n++
	}
	assert.Equal(t, 2, n)
}

func TestForestGetAndRemove(t *testing.T) {
	t.Parallel()

	f := tree.NewForest()
	f.Put("a.txt", tree.Parse("f()", nil))
	_, ok := f.Get("a.txt")
	require.True(t, ok)

	f.Remove("a.txt")
	_, ok = f.Get("a.txt")
	assert.False(t, ok)
}
