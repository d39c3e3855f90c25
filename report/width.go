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

import (
	"strings"

	"github.com/rivo/uniseg"
)

// defaultTabstop is the column width assumed for a tab character when no
// embedder-supplied width is known.
const defaultTabstop = 4

// DisplayColumn returns the terminal column a byte offset within line would
// render at, given the raw line text preceding it (line[:byteOffset]),
// expanding tabs to tabstop-wide stops and counting multi-rune grapheme
// clusters (e.g. combining marks, wide CJK characters) as uniseg reports
// them rather than as one column per byte. tabstop <= 0 uses defaultTabstop.
//
// This is the one piece of terminal-aware layout this package keeps: a
// column number is data an embedder needs to print "line:col" in its own
// diagnostic format, not a rendering decision this package is making for
// them.
func DisplayColumn(line string, byteOffset int, tabstop int) int {
	if tabstop <= 0 {
		tabstop = defaultTabstop
	}
	if byteOffset > len(line) {
		byteOffset = len(line)
	}
	col := 0
	for i, segment := range strings.Split(line[:byteOffset], "\t") {
		if i > 0 {
			col += tabstop - (col % tabstop)
		}
		col += uniseg.StringWidth(segment)
	}
	return col
}
