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

// Package iterx contains extensions to the standard library's package iter,
// used by package query to implement the "First"/"Last"/"Nth"/"Skip"/"Take"
// selection modifiers from spec.md §4.6 on top of lazy iter.Seq sequences.
//
// The teacher repo vendors the same idea as
// github.com/bufbuild/protocompile/experimental/internal/ext/iterx, which
// itself wraps an internal/iter package that re-exports the standard
// library's iter.Seq; that wrapper package was not present in the retrieved
// reference pack, so this package depends directly on the standard library
// "iter" package it exists to extend.
package iterx

import "iter"

// First retrieves the first element of a sequence.
func First[T any](seq iter.Seq[T]) (v T, ok bool) {
	for x := range seq {
		return x, true
	}
	return v, false
}

// Last retrieves the last element of a sequence, consuming all of it.
func Last[T any](seq iter.Seq[T]) (v T, ok bool) {
	for x := range seq {
		v, ok = x, true
	}
	return v, ok
}

// Nth retrieves the nth (zero-indexed) element of a sequence.
func Nth[T any](seq iter.Seq[T], n int) (v T, ok bool) {
	if n < 0 {
		return v, false
	}
	i := 0
	for x := range seq {
		if i == n {
			return x, true
		}
		i++
	}
	return v, false
}

// Skip returns a sequence that drops the first n elements of seq.
func Skip[T any](seq iter.Seq[T], n int) iter.Seq[T] {
	return func(yield func(T) bool) {
		i := 0
		for x := range seq {
			if i < n {
				i++
				continue
			}
			if !yield(x) {
				return
			}
		}
	}
}

// Take returns a sequence that yields at most n elements of seq.
func Take[T any](seq iter.Seq[T], n int) iter.Seq[T] {
	return func(yield func(T) bool) {
		if n <= 0 {
			return
		}
		i := 0
		for x := range seq {
			if !yield(x) {
				return
			}
			i++
			if i >= n {
				return
			}
		}
	}
}

// Where filters seq down to the elements matching the predicate.
func Where[T any](seq iter.Seq[T], p func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for x := range seq {
			if p(x) && !yield(x) {
				return
			}
		}
	}
}

// Map transforms every element of seq.
func Map[T, U any](seq iter.Seq[T], f func(T) U) iter.Seq[U] {
	return func(yield func(U) bool) {
		for x := range seq {
			if !yield(f(x)) {
				return
			}
		}
	}
}

// Collect drains seq into a new slice.
func Collect[T any](seq iter.Seq[T]) []T {
	var out []T
	for x := range seq {
		out = append(out, x)
	}
	return out
}

// Concat yields every element of each sequence in turn.
func Concat[T any](seqs ...iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, seq := range seqs {
			for x := range seq {
				if !yield(x) {
					return
				}
			}
		}
	}
}

// Empty is the sequence that yields nothing.
func Empty[T any]() iter.Seq[T] {
	return func(func(T) bool) {}
}

// Of builds a sequence from a fixed list of values.
func Of[T any](vs ...T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range vs {
			if !yield(v) {
				return
			}
		}
	}
}
