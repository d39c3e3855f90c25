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

package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avelino/syntree/report"
)

func TestDisplayColumnPlainASCII(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 5, report.DisplayColumn("hello world", 5, 4))
}

func TestDisplayColumnExpandsTabs(t *testing.T) {
	t.Parallel()

	// "a\tb": 'a' at column 0 takes it to 1, the tab advances to the next
	// 4-wide stop (column 4), 'b' takes it to 5.
	assert.Equal(t, 5, report.DisplayColumn("a\tb", len("a\tb"), 4))
}

func TestDisplayColumnDefaultsTabstopWhenNonPositive(t *testing.T) {
	t.Parallel()

	withDefault := report.DisplayColumn("a\tb", len("a\tb"), 0)
	withExplicit := report.DisplayColumn("a\tb", len("a\tb"), 4)
	assert.Equal(t, withExplicit, withDefault)
}

func TestDisplayColumnClampsOutOfRangeOffset(t *testing.T) {
	t.Parallel()

	assert.Equal(t, report.DisplayColumn("hi", 2, 4), report.DisplayColumn("hi", 50, 4))
}
