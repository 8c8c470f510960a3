/*
 * Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License").
 * You may not use this file except in compliance with the License.
 * A copy of the License is located at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * or in the "license" file accompanying this file. This file is distributed
 * on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either
 * express or implied. See the License for the specific language governing
 * permissions and limitations under the License.
 */

// Package collection provides the doubly-linked list and open-chaining
// hash index that ion-c's ion_collection.c and ion_index.c build on an
// arena. The intrusive next/prev node that ion-c prefixes every payload
// with becomes a generic List[T] here; a freed node's storage is kept on
// a free list for reuse exactly as ion_collection.c's _ion_collection_pop*
// functions do, except the free list holds Go values instead of raw
// blocks.
package collection

import "golang.org/x/exp/slices"

// A node is one element of a List.
type node[T any] struct {
	next, prev *node[T]
	val        T
}

// A List is a doubly-linked list of elements, matching ion-c's
// ION_COLLECTION: push/append/pop-head/pop-tail/remove-by-pointer,
// iteration, element-wise copy and compare. Removed nodes are kept on an
// internal free list and reused by the next Push/Append, matching
// ion_collection.c's per-collection free list.
type List[T any] struct {
	head, tail *node[T]
	free       *node[T]
	len        int
}

// Len returns the number of elements in the list.
func (l *List[T]) Len() int {
	return l.len
}

func (l *List[T]) newNode(val T) *node[T] {
	n := l.free
	if n != nil {
		l.free = n.next
		n.next, n.prev = nil, nil
	} else {
		n = &node[T]{}
	}
	n.val = val
	return n
}

// Push prepends val to the front of the list, matching
// _ion_collection_push.
func (l *List[T]) Push(val T) *Handle[T] {
	n := l.newNode(val)
	n.next = l.head
	if l.head != nil {
		l.head.prev = n
	} else {
		l.tail = n
	}
	l.head = n
	l.len++
	return &Handle[T]{n}
}

// Append adds val to the back of the list, matching
// _ion_collection_append.
func (l *List[T]) Append(val T) *Handle[T] {
	n := l.newNode(val)
	n.prev = l.tail
	if l.tail != nil {
		l.tail.next = n
	} else {
		l.head = n
	}
	l.tail = n
	l.len++
	return &Handle[T]{n}
}

// PopHead removes and returns the first element, matching
// _ion_collection_pop_head. ok is false if the list is empty.
func (l *List[T]) PopHead() (val T, ok bool) {
	if l.head == nil {
		return val, false
	}
	n := l.head
	l.remove(n)
	return n.val, true
}

// PopTail removes and returns the last element, matching
// _ion_collection_pop_tail. ok is false if the list is empty.
func (l *List[T]) PopTail() (val T, ok bool) {
	if l.tail == nil {
		return val, false
	}
	n := l.tail
	l.remove(n)
	return n.val, true
}

// Head returns the first element without removing it.
func (l *List[T]) Head() (val T, ok bool) {
	if l.head == nil {
		return val, false
	}
	return l.head.val, true
}

// Tail returns the last element without removing it.
func (l *List[T]) Tail() (val T, ok bool) {
	if l.tail == nil {
		return val, false
	}
	return l.tail.val, true
}

// A Handle identifies a single node in a List, returned by Push/Append so
// a caller can later Remove that exact element in O(1), matching ion-c's
// "remove by pointer to payload" operation.
type Handle[T any] struct {
	n *node[T]
}

// Remove removes the element identified by h from l. Matches
// _ion_collection_remove.
func (l *List[T]) Remove(h *Handle[T]) {
	l.remove(h.n)
}

func (l *List[T]) remove(n *node[T]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	l.len--

	n.next = l.free
	n.prev = nil
	l.free = n
}

// Reset empties the list, retaining its free list for reuse, matching
// _ion_collection_reset.
func (l *List[T]) Reset() {
	for l.head != nil {
		n := l.head
		l.head = n.next
		n.next = l.free
		n.prev = nil
		l.free = n
	}
	l.tail = nil
	l.len = 0
}

// Each calls fn for every element from head to tail. Matches ion-c's
// ION_COLLECTION_OPEN/NEXT/CLOSE cursor idiom.
func (l *List[T]) Each(fn func(T)) {
	for n := l.head; n != nil; n = n.next {
		fn(n.val)
	}
}

// Slice returns the list's elements as a new slice, head to tail.
func (l *List[T]) Slice() []T {
	out := make([]T, 0, l.len)
	l.Each(func(v T) { out = append(out, v) })
	return out
}

// Copy appends a deep copy of src's elements onto dst, using copyFn to
// copy each payload. Matches _ion_collection_copy.
func Copy[T any](dst, src *List[T], copyFn func(T) T) {
	src.Each(func(v T) {
		dst.Append(copyFn(v))
	})
}

// Equal reports whether lhs and rhs have the same length and every
// corresponding pair of elements satisfies eq, matching
// _ion_collection_compare. Delegates to x/exp/slices.EqualFunc over each
// list's materialized Slice rather than re-walking node pointers by hand.
func Equal[T any](lhs, rhs *List[T], eq func(a, b T) bool) bool {
	return slices.EqualFunc(lhs.Slice(), rhs.Slice(), eq)
}

// Contains reports whether any element of l satisfies eq(element, needle),
// matching _ion_collection_contains.
func Contains[T any](l *List[T], needle T, eq func(a, b T) bool) bool {
	return slices.ContainsFunc(l.Slice(), func(v T) bool { return eq(v, needle) })
}
