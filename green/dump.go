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

package green

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Dump writes a structural, indented debug rendering of n to w: one line
// per node, with children indented beneath their parent. Container lines
// show tag, kind, and width; leaf lines show tag, kind, and the quoted
// token text.
func (n *Node) Dump(w io.Writer) {
	n.dump(w, 0)
}

func (n *Node) dump(w io.Writer, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n.tag {
	case Leaf:
		fmt.Fprintf(w, "%s%s %s %s\n", indent, n.tag, n.kind, strconv.Quote(n.text))
	case Block:
		fmt.Fprintf(w, "%s%s %s width=%d\n", indent, n.tag, n.kind, n.width)
		n.opener.dump(w, depth+1)
		for _, c := range n.children {
			c.dump(w, depth+1)
		}
		n.closer.dump(w, depth+1)
	default:
		fmt.Fprintf(w, "%s%s %s width=%d\n", indent, n.tag, n.kind, n.width)
		for _, c := range n.children {
			c.dump(w, depth+1)
		}
	}
}

// DumpString is a convenience wrapper around Dump that returns a string.
func (n *Node) DumpString() string {
	var b strings.Builder
	n.Dump(&b)
	return b.String()
}
