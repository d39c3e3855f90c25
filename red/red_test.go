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

package red_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelino/syntree/green"
	"github.com/avelino/syntree/kind"
	"github.com/avelino/syntree/red"
	"github.com/avelino/syntree/trivia"
)

func ws(s string) trivia.Run {
	return trivia.Run{{Kind: trivia.Whitespace, Text: s}}
}

func buildSample() *green.Node {
	opener := green.NewLeaf(kind.Symbol, "{", nil, ws(" "))
	a := green.NewLeaf(kind.Ident, "a", nil, ws(" "))
	plus := green.NewLeaf(kind.Operator, "+", nil, ws(" "))
	b := green.NewLeaf(kind.Ident, "b", nil, ws(" "))
	closer := green.NewLeaf(kind.Symbol, "}", nil, nil)
	block := green.NewBlock(opener, closer, []*green.Node{a, plus, b})
	return green.NewList([]*green.Node{block})
}

func TestPositionConsistency(t *testing.T) {
	t.Parallel()

	root := red.NewRoot(buildSample())
	block := root.Child(0)
	require.NotNil(t, block)
	assert.Equal(t, 0, block.Position())
	assert.Equal(t, root.Green().Width(), block.EndPosition())

	a := block.Child(0)
	assert.Equal(t, block.InnerStartPosition(), a.Position())

	plus := block.Child(1)
	assert.Equal(t, a.EndPosition(), plus.Position())
}

func TestChildCaching(t *testing.T) {
	t.Parallel()

	root := red.NewRoot(buildSample())
	block := root.Child(0)

	c1 := block.Child(0)
	c2 := block.Child(0)
	assert.True(t, c1 == c2, "expected same red instance for repeated access")
}

func TestConcurrentChildAccessConverges(t *testing.T) {
	t.Parallel()

	root := red.NewRoot(buildSample())
	block := root.Child(0)

	var wg sync.WaitGroup
	results := make([]*red.Node, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = block.Child(1)
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.True(t, r == results[0])
	}
}

func TestSiblingNavigation(t *testing.T) {
	t.Parallel()

	root := red.NewRoot(buildSample())
	block := root.Child(0)
	a := block.Child(0)
	plus := block.Child(1)
	b := block.Child(2)

	assert.True(t, a.NextSibling() == plus)
	assert.True(t, plus.NextSibling() == b)
	assert.Nil(t, b.NextSibling())
	assert.True(t, b.PreviousSibling() == plus)
	assert.Nil(t, a.PreviousSibling())
}

func TestFindNodeAt(t *testing.T) {
	t.Parallel()

	root := red.NewRoot(buildSample())
	leaf := red.FindLeafAt(root, 2) // inside "a"
	require.NotNil(t, leaf)
	assert.Equal(t, "a", leaf.Text())

	leaf = red.FindLeafAt(root, 0) // the opener "{"
	require.NotNil(t, leaf)
	assert.Equal(t, "{", leaf.Text())

	assert.Nil(t, red.FindNodeAt(root, root.Green().Width()+5))
}

func TestEquality(t *testing.T) {
	t.Parallel()

	root := red.NewRoot(buildSample())
	a1 := root.Child(0).Child(0)
	a2 := root.Child(0).Child(0)
	assert.True(t, a1.Equal(a2))
}

func TestPath(t *testing.T) {
	t.Parallel()

	root := red.NewRoot(buildSample())
	plus := root.Child(0).Child(1)
	assert.Equal(t, green.Path{0, 1}, plus.Path())
}
