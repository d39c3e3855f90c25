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

package report

import "github.com/pmezard/go-difflib/difflib"

// UnifiedDiff renders a unified diff between two text snapshots, such as
// the before/after of an editor commit or two points in a tree's undo
// history. tree.SyntaxTree.DiffText does not call this function; it
// drives go-difflib directly.
func UnifiedDiff(fromLabel, from, toLabel, to string) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(from),
		B:        difflib.SplitLines(to),
		FromFile: fromLabel,
		ToFile:   toLabel,
		Context:  2,
	}
	return difflib.GetUnifiedDiffString(diff)
}
