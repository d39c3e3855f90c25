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

package kind_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avelino/syntree/kind"
)

func TestBandMembership(t *testing.T) {
	t.Parallel()

	assert.True(t, kind.Ident.IsStructural())
	assert.False(t, kind.Ident.IsKeyword())
	assert.False(t, kind.Ident.IsSemantic())

	kw := kind.KeywordBandStart + 5
	assert.False(t, kw.IsStructural())
	assert.True(t, kw.IsKeyword())
	assert.False(t, kw.IsSemantic())

	sem := kind.SemanticBandStart + 5
	assert.False(t, sem.IsStructural())
	assert.False(t, sem.IsKeyword())
	assert.True(t, sem.IsSemantic())
}

func TestDelimiters(t *testing.T) {
	t.Parallel()

	k, ok := kind.OpenerFor('{')
	assert.True(t, ok)
	assert.Equal(t, kind.BraceBlock, k)

	c, ok := kind.CloserFor(kind.BraceBlock)
	assert.True(t, ok)
	assert.Equal(t, byte('}'), c)

	_, ok = kind.OpenerFor('x')
	assert.False(t, ok)
}

func TestIsBlock(t *testing.T) {
	t.Parallel()

	assert.True(t, kind.BraceBlock.IsBlock())
	assert.True(t, kind.BracketBlock.IsBlock())
	assert.True(t, kind.ParenBlock.IsBlock())
	assert.False(t, kind.Ident.IsBlock())
}
