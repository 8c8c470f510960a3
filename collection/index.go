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

package collection

import (
	"github.com/dchest/siphash"
)

// DefaultDensityTarget is the load factor (as a percentage of
// keys/buckets) at which an Index grows, matching ion_index.h's
// II_DEFAULT_128X_PERCENT (80%, pre-converted there to base-128; kept
// here as a plain percentage).
const DefaultDensityTarget = 80

// DefaultMinBuckets is the smallest bucket-array size an Index grows
// into, matching II_DEFAULT_MINIMUM.
const DefaultMinBuckets = 16

// growthFactor is the multiplier applied to the bucket array on growth,
// matching ion_index.c's doubling policy.
const growthFactor = 2

type indexEntry[V any] struct {
	hash uint64
	key  string
	val  V
}

// An Index is an open-chaining hash map from string keys to values,
// matching ion-c's ION_INDEX: its nodes live in a List so removed
// entries are recycled the same way the rest of this package recycles
// list nodes. Index backs every symbol table's by-name lookup (spec
// §4.8), whatever the table's size.
type Index[V any] struct {
	buckets []*List[indexEntry[V]]
	count   int
	density int // target percent, DefaultDensityTarget if zero
	minSize int // DefaultMinBuckets if zero
	seed0   uint64
	seed1   uint64
}

// NewIndex creates an empty Index. The two seed values key the SipHash
// used to hash strings; pass 0, 0 for a deterministic (but
// DoS-susceptible) hash, or random values for a hash-flood-resistant one.
func NewIndex[V any](seed0, seed1 uint64) *Index[V] {
	return &Index[V]{seed0: seed0, seed1: seed1}
}

func (idx *Index[V]) hash(key string) uint64 {
	return siphash.Hash(idx.seed0, idx.seed1, []byte(key))
}

func (idx *Index[V]) bucketFor(h uint64) int {
	if len(idx.buckets) == 0 {
		return 0
	}
	return int(h % uint64(len(idx.buckets)))
}

func (idx *Index[V]) ensureCapacity() {
	if len(idx.buckets) == 0 {
		idx.buckets = make([]*List[indexEntry[V]], DefaultMinBuckets)
		return
	}

	density := idx.density
	if density == 0 {
		density = DefaultDensityTarget
	}
	if idx.count*100 < len(idx.buckets)*density {
		return
	}

	old := idx.buckets
	idx.buckets = make([]*List[indexEntry[V]], len(old)*growthFactor)
	for _, b := range old {
		if b == nil {
			continue
		}
		b.Each(func(e indexEntry[V]) {
			idx.insertEntry(e)
		})
	}
}

func (idx *Index[V]) insertEntry(e indexEntry[V]) {
	i := idx.bucketFor(e.hash)
	if idx.buckets[i] == nil {
		idx.buckets[i] = &List[indexEntry[V]]{}
	}
	idx.buckets[i].Append(e)
}

// Exists reports whether key is present.
func (idx *Index[V]) Exists(key string) bool {
	_, ok := idx.Find(key)
	return ok
}

// Find returns the value stored for key, if any.
func (idx *Index[V]) Find(key string) (V, bool) {
	var zero V
	if len(idx.buckets) == 0 {
		return zero, false
	}
	h := idx.hash(key)
	b := idx.buckets[idx.bucketFor(h)]
	if b == nil {
		return zero, false
	}

	var found V
	ok := false
	b.Each(func(e indexEntry[V]) {
		if !ok && e.hash == h && e.key == key {
			found = e.val
			ok = true
		}
	})
	return found, ok
}

// Insert adds key→val, failing if key already exists, matching
// ion-c's "insert (fails on duplicate)".
func (idx *Index[V]) Insert(key string, val V) bool {
	if idx.Exists(key) {
		return false
	}
	idx.ensureCapacity()
	idx.insertEntry(indexEntry[V]{hash: idx.hash(key), key: key, val: val})
	idx.count++
	return true
}

// Upsert adds or overwrites key→val, matching ion-c's "upsert (overwrites)".
func (idx *Index[V]) Upsert(key string, val V) {
	if len(idx.buckets) > 0 {
		h := idx.hash(key)
		if b := idx.buckets[idx.bucketFor(h)]; b != nil {
			entries := b.Slice()
			for i, e := range entries {
				if e.hash == h && e.key == key {
					entries[i].val = val
					b.Reset()
					for _, e := range entries {
						b.Append(e)
					}
					return
				}
			}
		}
	}
	idx.ensureCapacity()
	idx.insertEntry(indexEntry[V]{hash: idx.hash(key), key: key, val: val})
	idx.count++
}

// Delete removes key, if present.
func (idx *Index[V]) Delete(key string) {
	if len(idx.buckets) == 0 {
		return
	}
	h := idx.hash(key)
	b := idx.buckets[idx.bucketFor(h)]
	if b == nil {
		return
	}

	entries := b.Slice()
	found := false
	b.Reset()
	for _, e := range entries {
		if !found && e.hash == h && e.key == key {
			found = true
			continue
		}
		b.Append(e)
	}
	if found {
		idx.count--
	}
}

// Each calls fn for every key/value pair currently stored, in no
// particular order, matching a full bucket-by-bucket ION_INDEX walk.
func (idx *Index[V]) Each(fn func(key string, val V)) {
	for _, b := range idx.buckets {
		if b == nil {
			continue
		}
		b.Each(func(e indexEntry[V]) {
			fn(e.key, e.val)
		})
	}
}

// Reset clears the index but retains its bucket array, matching
// _ion_collection_reset applied to an ION_INDEX.
func (idx *Index[V]) Reset() {
	for _, b := range idx.buckets {
		if b != nil {
			b.Reset()
		}
	}
	idx.count = 0
}

// Len returns the number of keys currently stored.
func (idx *Index[V]) Len() int {
	return idx.count
}
