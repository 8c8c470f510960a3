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

import "fmt"

// SymbolIDUnknown is the LocalSID of a SymbolToken whose symbol ID has not
// been resolved against any symbol table.
const SymbolIDUnknown = -1

// A SymbolToken provides both the symbol text and the assigned symbol ID.
// Symbol tokens may be interned into a SymbolTable.
// Text = nil or LocalSID = SymbolIDUnknown indicates that component is
// unknown in the contextual symbol table.
type SymbolToken struct {
	Text           *string
	LocalSID       int64
	importLocation *ImportLocation
}

// Equal figures out if two symbol tokens are equal for each component.
func (st *SymbolToken) Equal(o *SymbolToken) bool {
	if st.Text == nil || o.Text == nil {
		return st.Text == nil && o.Text == nil && st.LocalSID == o.LocalSID
	}
	return *st.Text == *o.Text && st.LocalSID == o.LocalSID
}

// NewSymbolTokenFromString returns a SymbolToken with the given text and an
// unknown local symbol ID.
func NewSymbolTokenFromString(text string) SymbolToken {
	return SymbolToken{Text: &text, LocalSID: SymbolIDUnknown}
}

// NewSimpleSymbolToken is the same as NewSymbolTokenFromString.
func NewSimpleSymbolToken(text string) SymbolToken {
	return NewSymbolTokenFromString(text)
}

func newSymbolTokenPtrFromString(text string) *SymbolToken {
	return &SymbolToken{Text: &text, LocalSID: SymbolIDUnknown}
}

func newSimpleSymbolToken(text string) SymbolToken {
	return NewSymbolTokenFromString(text)
}

func newSimpleSymbolTokenPtr(text string) *SymbolToken {
	return newSymbolTokenPtrFromString(text)
}

// NewSymbolToken resolves text against the given symbol table, returning a
// SymbolToken carrying both the text and the resolved local symbol ID.
func NewSymbolToken(st SymbolTable, text string) (SymbolToken, error) {
	id, ok := st.FindByName(text)
	if !ok {
		return SymbolToken{}, &UsageError{"NewSymbolToken", fmt.Sprintf("symbol %q not found in symbol table", text)}
	}
	t := text
	return SymbolToken{Text: &t, LocalSID: int64(id)}, nil
}

// newSymbolToken resolves text against the given symbol table, same as
// NewSymbolToken, except that if the table has no mapping for the text
// (e.g. a symbol literal encountered while reading text Ion, not yet
// interned), the resulting token simply carries an unknown local ID.
// Text of the form $n is a symbol ID literal: $0 yields a token with no
// text, and an ID above the table's MaxID is an error.
func newSymbolToken(st SymbolTable, text string) (SymbolToken, error) {
	if sid, ok := symbolIdentifier(text); ok {
		if sid == 0 {
			return SymbolToken{LocalSID: 0}, nil
		}
		if st == nil {
			st = V1SystemSymbolTable
		}
		if uint64(sid) > st.MaxID() {
			return SymbolToken{}, &UsageError{"newSymbolToken", fmt.Sprintf("symbol ID %v not found in symbol table", sid)}
		}
		if name, found := st.FindByID(uint64(sid)); found {
			return SymbolToken{Text: &name, LocalSID: sid}, nil
		}
		return SymbolToken{LocalSID: sid}, nil
	}
	t := text
	if st == nil {
		return SymbolToken{Text: &t, LocalSID: SymbolIDUnknown}, nil
	}
	id, ok := st.FindByName(text)
	if !ok {
		return SymbolToken{Text: &t, LocalSID: SymbolIDUnknown}, nil
	}
	return SymbolToken{Text: &t, LocalSID: int64(id)}, nil
}

// NewSymbolTokenBySID resolves a local symbol ID against the given symbol
// table, returning a SymbolToken. The text is left nil if the table has no
// mapping for the requested SID (e.g. it came from an unresolved import).
func NewSymbolTokenBySID(st SymbolTable, sid int64) (SymbolToken, error) {
	if sid <= 0 {
		return SymbolToken{}, &UsageError{"NewSymbolTokenBySID", fmt.Sprintf("invalid symbol ID %v", sid)}
	}
	if st == nil {
		return SymbolToken{LocalSID: sid}, nil
	}
	text, ok := st.FindByID(uint64(sid))
	if !ok {
		return SymbolToken{LocalSID: sid}, nil
	}
	return SymbolToken{Text: &text, LocalSID: sid}, nil
}
