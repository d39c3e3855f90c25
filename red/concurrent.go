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

package red

import "golang.org/x/sync/errgroup"

// WalkConcurrent partitions root's top-level children across n goroutines
// and calls visit for every node the given Walker would yield within each
// partition. This is safe because green nodes are immutable and the red
// child cache uses atomic compare-and-swap (spec.md §5: "Concurrent
// traversals over the same tree instance are safe provided they only
// read"). visit must itself be safe for concurrent invocation; callers
// needing a single aggregate result should have it write into a
// synchronized accumulator.
//
// If n <= 1 or root has no children, this runs on the calling goroutine
// and is equivalent to w.Forward(root). Otherwise n is capped at root's
// child count, each goroutine walks its own range of top-level children
// with w.Forward, and root itself is not passed to visit.
func WalkConcurrent(w Walker, root *Node, n int, visit func(*Node)) error {
	count := root.SlotCount()
	if n <= 1 || count == 0 {
		for node := range w.Forward(root) {
			visit(node)
		}
		return nil
	}
	if n > count {
		n = count
	}

	var g errgroup.Group
	chunk := (count + n - 1) / n
	for start := 0; start < count; start += chunk {
		end := min(start+chunk, count)
		g.Go(func() error {
			for i := start; i < end; i++ {
				for node := range w.Forward(root.Child(i)) {
					visit(node)
				}
			}
			return nil
		})
	}
	return g.Wait()
}
