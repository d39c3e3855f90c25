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

package lex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelino/syntree/green"
	"github.com/avelino/syntree/kind"
	"github.com/avelino/syntree/lex"
	"github.com/avelino/syntree/report"
	"github.com/avelino/syntree/schema"
)

func defaultOpts() schema.TokenizerOptions {
	return schema.TokenizerOptions{
		Symbols:         []byte("{}[]()+-*/.,;:=<>!&|"),
		OperatorCapable: []byte("+-*/=<>!&|"),
		Operators:       []string{"+", "-", "*", "/", "==", "=", "<", ">", "&&", "||", "!"},
		TagPrefixes:     []byte("@"),
		LineComments:    []string{"//"},
		BlockComments:   map[string]string{"/*": "*/"},
	}
}

func sourceText(t *testing.T, n *green.Node) string {
	t.Helper()
	return n.SourceText()
}

func TestRoundTripVariousInputs(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"{ a + b }",
		"\"abc",
		" foo ",
		"a.b()",
		"a.b",
		"x = 1 + 2 // trailing\n",
		"/* block\nspanning */ y",
		"@tag ident",
		".5 + 1.25",
	}
	for _, src := range inputs {
		src := src
		t.Run(src, func(t *testing.T) {
			t.Parallel()
			root := lex.Lex(src, defaultOpts(), nil, nil)
			assert.Equal(t, src, sourceText(t, root))
		})
	}
}

func TestBalancedParse(t *testing.T) {
	t.Parallel()

	root := lex.Lex("{ a + b }", defaultOpts(), nil, nil)
	require.Equal(t, 1, root.SlotCount())

	block := root.GetSlot(0)
	require.Equal(t, green.Block, block.Tag())
	assert.Equal(t, kind.BraceBlock, block.Kind())
	assert.Equal(t, "{", block.Opener().Text())
	assert.Equal(t, " ", block.Opener().Trailing().Text())
	assert.Equal(t, "}", block.Closer().Text())
	assert.Equal(t, " ", block.Closer().Leading().Text())
	require.Equal(t, 3, block.SlotCount())
	assert.Equal(t, "a", block.GetSlot(0).Text())
	assert.Equal(t, "+", block.GetSlot(1).Text())
	assert.Equal(t, "b", block.GetSlot(2).Text())
	assert.Equal(t, "{ a + b }", root.SourceText())
}

func TestUnclosedString(t *testing.T) {
	t.Parallel()

	var diags report.Report
	root := lex.Lex(`"abc`, defaultOpts(), nil, &diags)
	require.Equal(t, 1, root.SlotCount())

	leaf := root.GetSlot(0)
	assert.Equal(t, kind.Error, leaf.Kind())
	assert.Equal(t, `"abc`, leaf.Text())
	assert.Equal(t, `"abc`, root.SourceText())
	assert.Equal(t, 1, len(diags.Errors()))
}

func TestUnclosedBlockRecordsError(t *testing.T) {
	t.Parallel()

	var diags report.Report
	root := lex.Lex("{ a", defaultOpts(), nil, &diags)
	block := root.GetSlot(0)
	assert.True(t, block.Flags().Has(green.ContainsError))
	assert.False(t, block.HasCloser())
	assert.Equal(t, "{ a", root.SourceText())
}

func TestUnexpectedCloserBecomesError(t *testing.T) {
	t.Parallel()

	var diags report.Report
	root := lex.Lex("a )", defaultOpts(), nil, &diags)
	require.Equal(t, 2, root.SlotCount())
	assert.Equal(t, kind.Error, root.GetSlot(1).Kind())
	assert.Equal(t, 1, len(diags.Errors()))
	assert.Equal(t, "a )", root.SourceText())
}

func TestOperatorGreedyMatch(t *testing.T) {
	t.Parallel()

	root := lex.Lex("a == b", defaultOpts(), nil, nil)
	require.Equal(t, 3, root.SlotCount())
	assert.Equal(t, kind.Operator, root.GetSlot(1).Kind())
	assert.Equal(t, "==", root.GetSlot(1).Text())
}

func TestTaggedIdent(t *testing.T) {
	t.Parallel()

	root := lex.Lex("@tag", defaultOpts(), nil, nil)
	require.Equal(t, 1, root.SlotCount())
	assert.Equal(t, kind.TaggedIdent, root.GetSlot(0).Kind())
	assert.Equal(t, "@tag", root.GetSlot(0).Text())
}

func TestNumericForms(t *testing.T) {
	t.Parallel()

	root := lex.Lex("1.5 .25 10", defaultOpts(), nil, nil)
	require.Equal(t, 3, root.SlotCount())
	assert.Equal(t, "1.5", root.GetSlot(0).Text())
	assert.Equal(t, ".25", root.GetSlot(1).Text())
	assert.Equal(t, "10", root.GetSlot(2).Text())
}

type stubKeywords struct{}

func (stubKeywords) Lookup(text string) (kind.Kind, bool) {
	if text == "fn" {
		return kind.KeywordBandStart, true
	}
	return 0, false
}
func (stubKeywords) ReverseLookup(k kind.Kind) (string, bool) {
	if k == kind.KeywordBandStart {
		return "fn", true
	}
	return "", false
}
func (stubKeywords) Category(name string) []kind.Kind { return nil }

func TestKeywordResolution(t *testing.T) {
	t.Parallel()

	root := lex.Lex("fn foo", defaultOpts(), stubKeywords{}, nil)
	require.Equal(t, 2, root.SlotCount())
	assert.Equal(t, kind.KeywordBandStart, root.GetSlot(0).Kind())
	assert.True(t, root.GetSlot(0).Flags().Has(green.IsKeywordSelf))
	assert.Equal(t, kind.Ident, root.GetSlot(1).Kind())
}

func TestCommentSpanningLinesIsTrailing(t *testing.T) {
	t.Parallel()

	src := "a /* c\nc */\nb"
	root := lex.Lex(src, defaultOpts(), nil, nil)
	require.Equal(t, 2, root.SlotCount())
	a := root.GetSlot(0)
	assert.True(t, a.Trailing().ContainsComment())
	assert.Equal(t, src, root.SourceText())
}

func TestTrailingTriviaOnlyInputWrapsAsLeaves(t *testing.T) {
	t.Parallel()

	root := lex.Lex("   \n", defaultOpts(), nil, nil)
	assert.Equal(t, "   \n", root.SourceText())
}
