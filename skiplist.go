package main

import (
	"cmp"
	"iter"
	"math/rand/v2"
)

const maxHeight = 32

type skipListNode[K cmp.Ordered, V any] struct {
	k    K
	v    V
	next []*skipListNode[K, V]
}

// SkipList is an ordered multimap: Put never replaces, equal keys are kept
// in insertion order. The zero value is an empty list. It is not safe for
// concurrent use.
type SkipList[K cmp.Ordered, V any] struct {
	head skipListNode[K, V]
}

func randHeight() int {
	h := 1
	for h < maxHeight && rand.IntN(2) == 0 {
		h++
	}
	return h
}

func (s *SkipList[K, V]) Put(k K, v V) {
	var (
		h = randHeight()
		p = &skipListNode[K, V]{k, v, make([]*skipListNode[K, V], h)}
		n = &s.head
	)
	if h > len(n.next) {
		n.next = append(n.next, make([]*skipListNode[K, V], h-len(n.next))...)
	}
	for i := len(n.next) - 1; i >= 0; i-- {
		// <= places p after equal keys.
		for n.next[i] != nil && n.next[i].k <= k {
			n = n.next[i]
		}
		if i < h {
			p.next[i], n.next[i] = n.next[i], p
		}
	}
}

// All yields every entry in key order.
func (s *SkipList[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if len(s.head.next) == 0 {
			return
		}
		for n := s.head.next[0]; n != nil; n = n.next[0] {
			if !yield(n.k, n.v) {
				return
			}
		}
	}
}
