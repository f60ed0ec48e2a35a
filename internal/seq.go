package internal

import (
	"iter"
)

// Concat2 concatenates multiple dual-return iterators into a single sequence.
func Concat2[K any, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, seq := range seqs {
			for k, v := range seq {
				if !yield(k, v) {
					return
				}
			}
		}
	}
}

// Prefix joins prefix and every key of seq with a '.'.
func Prefix[V any](prefix string, seq iter.Seq2[string, V]) iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for k, v := range seq {
			if !yield(prefix+"."+k, v) {
				return
			}
		}
	}
}
