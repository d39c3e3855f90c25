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

package optrie_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avelino/syntree/internal/optrie"
)

func TestLongestMatch(t *testing.T) {
	t.Parallel()

	tr := optrie.New([]string{"+", "+=", "<", "<<", "<<=", "=="})

	op, ok := tr.LongestMatch("<<=x")
	assert.True(t, ok)
	assert.Equal(t, "<<=", op)

	op, ok = tr.LongestMatch("<=x")
	assert.True(t, ok)
	assert.Equal(t, "<", op)

	op, ok = tr.LongestMatch("+=")
	assert.True(t, ok)
	assert.Equal(t, "+=", op)

	_, ok = tr.LongestMatch("!")
	assert.False(t, ok)
}

func TestEmptyTrie(t *testing.T) {
	t.Parallel()

	tr := optrie.New(nil)
	_, ok := tr.LongestMatch("+")
	assert.False(t, ok)
}
