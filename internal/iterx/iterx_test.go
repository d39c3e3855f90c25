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

package iterx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avelino/syntree/internal/iterx"
)

func TestBasics(t *testing.T) {
	t.Parallel()

	seq := iterx.Of(1, 2, 3, 4, 5)

	first, ok := iterx.First(seq)
	assert.True(t, ok)
	assert.Equal(t, 1, first)

	last, ok := iterx.Last(seq)
	assert.True(t, ok)
	assert.Equal(t, 5, last)

	nth, ok := iterx.Nth(seq, 2)
	assert.True(t, ok)
	assert.Equal(t, 3, nth)

	assert.Equal(t, []int{3, 4, 5}, iterx.Collect(iterx.Skip(seq, 2)))
	assert.Equal(t, []int{1, 2}, iterx.Collect(iterx.Take(seq, 2)))
	assert.Equal(t, []int{2, 4}, iterx.Collect(iterx.Where(seq, func(x int) bool { return x%2 == 0 })))
	assert.Equal(t, []int{2, 4, 6, 8, 10}, iterx.Collect(iterx.Map(seq, func(x int) int { return x * 2 })))
}

func TestEmptyAndConcat(t *testing.T) {
	t.Parallel()

	_, ok := iterx.First(iterx.Empty[int]())
	assert.False(t, ok)

	got := iterx.Collect(iterx.Concat(iterx.Of(1, 2), iterx.Of(3), iterx.Empty[int]()))
	assert.Equal(t, []int{1, 2, 3}, got)
}
