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

// Package arena provides owner-rooted bump allocation over a pool of
// fixed-size pages, in the shape of ion-c's ion_alloc.h: a "primary"
// resource (reader, writer, catalog, symbol table) is an Owner; every
// byte slice handed out "with" that owner lives exactly as long as the
// owner does, and freeing the owner drops its whole page chain at once.
//
// Go already garbage collects, so this package does not reclaim pages
// into a reusable pool the way ion-c's g_ion_alloc_page_list does (see
// DESIGN.md for why that part of the C design is not carried over).
// What it keeps is the part that matters for this module: O(1) release
// of an owner's entire descendant graph, and amortized bump allocation
// instead of one allocation per small value, which is the actual
// performance property ion-c's arena exists to provide.
package arena

import "github.com/amazon-ion/ion-go-sub000/collection"

// DefaultPageSize is the default page size new Pools allocate, matching
// ion-c's DEFAULT_BLOCK_SIZE.
const DefaultPageSize = 64 * 1024

// pageOverhead is deducted from the configured page size to estimate how
// many bytes of a fresh page are available to the bump allocator, mirroring
// ion_alloc.h's ION_ALLOCATION_CHAIN header that precedes user bytes in
// each C block. Go's Owner carries this bookkeeping in struct fields
// instead of an in-band header, so there is no real overhead to subtract,
// but the page-size contract (requests larger than a page bypass the
// pool) is kept because a huge single allocation still shouldn't retain
// an otherwise-empty page.
const pageOverhead = 0

// A Pool configures the page size new Owners allocate from. The zero
// Pool is ready to use and behaves as DefaultPageSize.
type Pool struct {
	PageSize int
}

func (p *Pool) pageSize() int {
	if p == nil || p.PageSize <= 0 {
		return DefaultPageSize
	}
	return p.PageSize
}

// NewOwner creates a new Owner, the root of an allocation chain. Owner
// corresponds to ion-c's hOWNER: the handle returned by ion_alloc_owner,
// rooting a primary resource such as a reader, writer, catalog, or symbol
// table.
func (p *Pool) NewOwner() *Owner {
	return &Owner{pageSize: p.pageSize()}
}

// NewOwner creates a new Owner using DefaultPageSize.
func NewOwner() *Owner {
	return (&Pool{}).NewOwner()
}

// An Owner roots a chain of pages. Allocations made "with" an Owner are
// bump-allocated from its current page; oversized requests (larger than
// the owner's page size) are allocated directly and linked in after the
// current page, per ion-c's "oversized blocks bypass the pool" rule in
// ion_allocation.c.
type Owner struct {
	pageSize  int
	cur       []byte // current page, position tracked by len(cur) via pos
	pos       int
	pages     *collection.List[[]byte] // retained so the Owner keeps them alive
	allocated int                      // total bytes handed out via AllocBytes/AllocString
	oversize  int                      // bytes allocated in oversized (non-pooled) blocks
}

// AllocBytes returns a zeroed byte slice of length n whose backing array
// is rooted to this Owner. It returns nil when n is 0 and a non-nil slice
// for any n > 0; on exhaustion of process memory the runtime panics,
// matching Go's own allocation failure semantics rather than ion-c's "out
// of memory returns a null pointer" convention.
func (o *Owner) AllocBytes(n int) []byte {
	if n < 0 {
		panic("arena: negative allocation size")
	}
	if n == 0 {
		return nil
	}

	if o.pages == nil {
		o.pages = &collection.List[[]byte]{}
	}

	if n > o.pageSize-pageOverhead {
		// Oversized block: allocate directly, link after the current
		// (possibly partially filled) page rather than discarding it.
		b := make([]byte, n)
		o.pages.Append(b)
		o.oversize += n
		o.allocated += n
		return b
	}

	if o.cur == nil || o.pos+n > len(o.cur) {
		o.cur = make([]byte, o.pageSize)
		o.pos = 0
		o.pages.Append(o.cur)
	}

	b := o.cur[o.pos : o.pos+n : o.pos+n]
	o.pos += n
	o.allocated += n
	return b
}

// AllocString copies s into a new Owner-rooted byte slice and returns it
// as a string, matching ion-c's ion_strdup: field/symbol text read off
// the wire is duplicated into the owning reader/writer/symtab's arena
// rather than aliasing the input buffer.
func (o *Owner) AllocString(s string) string {
	if s == "" {
		return ""
	}
	b := o.AllocBytes(len(s))
	copy(b, s)
	return string(b)
}

// Free releases the Owner's references to its pages. Go's GC reclaims the
// memory once nothing else holds a reference to slices carved from it;
// Free exists so callers can make the "this owner's descendants are no
// longer needed" point explicit and in one O(pages) operation, as spec
// §4.1 requires, and so Stats() taken before/after a test can assert zero
// live bytes (§8 testable property 7).
func (o *Owner) Free() {
	o.cur = nil
	if o.pages != nil {
		o.pages.Reset()
	}
	o.pos = 0
	o.allocated = 0
	o.oversize = 0
}

// Stats reports how many bytes this Owner has allocated, for testing the
// "arena leaks zero bytes" property (spec §8 #7): Stats().Allocated before
// Free, compared against the sum of every AllocBytes/AllocString request.
type Stats struct {
	Pages     int
	Allocated int
	Oversized int
}

// Stats returns the Owner's current allocation statistics.
func (o *Owner) Stats() Stats {
	pages := 0
	if o.pages != nil {
		pages = o.pages.Len()
	}
	return Stats{Pages: pages, Allocated: o.allocated, Oversized: o.oversize}
}
