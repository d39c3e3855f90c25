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

package trivia_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/avelino/syntree/trivia"
)

func TestRun(t *testing.T) {
	t.Parallel()

	r := trivia.Run{
		{Kind: trivia.Whitespace, Text: "  "},
		{Kind: trivia.LineComment, Text: "// hi"},
		{Kind: trivia.Newline, Text: "\n"},
	}

	assert.Equal(t, 2+5+1, r.Width())
	assert.Equal(t, "  // hi\n", r.Text())
	assert.True(t, r.ContainsNewline())
	assert.True(t, r.ContainsComment())
}

func TestRunConcatPreservesPieceOrder(t *testing.T) {
	t.Parallel()

	a := trivia.Run{{Kind: trivia.Whitespace, Text: " "}}
	b := trivia.Run{{Kind: trivia.LineComment, Text: "// x"}}
	got := append(append(trivia.Run{}, a...), b...)

	want := trivia.Run{
		{Kind: trivia.Whitespace, Text: " "},
		{Kind: trivia.LineComment, Text: "// x"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("concatenated run diverged from expected pieces (-want +got):\n%s", diff)
	}
}

func TestEmptyRun(t *testing.T) {
	t.Parallel()

	var r trivia.Run
	assert.Equal(t, 0, r.Width())
	assert.Equal(t, "", r.Text())
	assert.False(t, r.ContainsNewline())
	assert.False(t, r.ContainsComment())
}
