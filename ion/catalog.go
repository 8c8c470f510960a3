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

package ion

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/amazon-ion/ion-go-sub000/collection"
)

// A Catalog provides access to shared symbol tables.
type Catalog interface {
	FindExact(name string, version int) SharedSymbolTable
	FindLatest(name string) SharedSymbolTable
	// Remove releases the shared symbol table with the given name and
	// version from the catalog. It is a no-op if no such table is present.
	Remove(name string, version int)
	// Tables returns every shared symbol table currently in the catalog,
	// in the order they were added.
	Tables() []SharedSymbolTable
}

// A basicCatalog wraps an in-memory collection of shared symbol tables,
// matching ion-c's ION_CATALOG: table_list there is itself an
// ION_COLLECTION, so the by-key maps here are an index on top of a
// collection.List holding the tables in insertion order.
type basicCatalog struct {
	ssts    map[string]SharedSymbolTable
	latest  map[string]SharedSymbolTable
	handles map[string]*collection.Handle[SharedSymbolTable]
	tables  *collection.List[SharedSymbolTable]
}

// NewCatalog creates a new basic catalog containing the given symbol tables.
func NewCatalog(ssts ...SharedSymbolTable) Catalog {
	cat := &basicCatalog{
		ssts:    make(map[string]SharedSymbolTable),
		latest:  make(map[string]SharedSymbolTable),
		handles: make(map[string]*collection.Handle[SharedSymbolTable]),
		tables:  &collection.List[SharedSymbolTable]{},
	}
	for _, sst := range ssts {
		cat.add(sst)
	}
	return cat
}

// Add adds a shared symbol table to the catalog.
func (c *basicCatalog) add(sst SharedSymbolTable) {
	key := fmt.Sprintf("%v/%v", sst.Name(), sst.Version())
	if h, ok := c.handles[key]; ok {
		c.tables.Remove(h)
	}
	c.ssts[key] = sst
	c.handles[key] = c.tables.Append(sst)

	cur, ok := c.latest[sst.Name()]
	if !ok || sst.Version() > cur.Version() {
		c.latest[sst.Name()] = sst
	}
}

// FindExact attempts to find a shared symbol table with the given name and version.
func (c *basicCatalog) FindExact(name string, version int) SharedSymbolTable {
	key := fmt.Sprintf("%v/%v", name, version)
	return c.ssts[key]
}

// FindLatest finds the shared symbol table with the given name and largest version.
func (c *basicCatalog) FindLatest(name string) SharedSymbolTable {
	return c.latest[name]
}

// Remove releases the shared symbol table with the given name and version,
// matching _ion_catalog_release_symbol_table_helper's cursor-based removal
// from table_list: a table not present in the catalog is already
// considered released, so removing it is a silent no-op rather than an
// error.
func (c *basicCatalog) Remove(name string, version int) {
	key := fmt.Sprintf("%v/%v", name, version)
	h, ok := c.handles[key]
	if !ok {
		return
	}

	c.tables.Remove(h)
	delete(c.handles, key)
	delete(c.ssts, key)

	if cur, ok := c.latest[name]; ok && cur.Version() == version {
		delete(c.latest, name)
		c.tables.Each(func(sst SharedSymbolTable) {
			if sst.Name() != name {
				return
			}
			if cand, ok := c.latest[name]; !ok || sst.Version() > cand.Version() {
				c.latest[name] = sst
			}
		})
	}
}

// Tables returns every shared symbol table in the catalog, in insertion
// order, matching a full ION_COLLECTION_OPEN/NEXT/CLOSE walk of table_list
// (ion_catalog_get_symbol_table_count enumerates the same list just to
// count it).
func (c *basicCatalog) Tables() []SharedSymbolTable {
	return c.tables.Slice()
}

// A System is a reader factory wrapping a catalog.
type System struct {
	Catalog Catalog
}

// NewReader creates a new reader using this system's catalog.
func (s System) NewReader(in io.Reader) Reader {
	return NewReaderCat(in, s.Catalog)
}

// NewReaderString creates a new reader using this system's catalog.
func (s System) NewReaderString(in string) Reader {
	return NewReaderCat(strings.NewReader(in), s.Catalog)
}

// NewReaderBytes creates a new reader using this system's catalog.
func (s System) NewReaderBytes(in []byte) Reader {
	return NewReaderCat(bytes.NewReader(in), s.Catalog)
}

// Unmarshal unmarshals Ion data using this system's catalog.
func (s System) Unmarshal(data []byte, v interface{}) error {
	r := s.NewReaderBytes(data)
	d := NewDecoder(r)
	return d.DecodeTo(v)
}

// UnmarshalString unmarshals Ion data using this system's catalog.
func (s System) UnmarshalString(data string, v interface{}) error {
	r := s.NewReaderString(data)
	d := NewDecoder(r)
	return d.DecodeTo(v)
}
