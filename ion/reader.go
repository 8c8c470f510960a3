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
	"bufio"
	"bytes"
	"io"
	"math/big"
	"strings"

	"github.com/amazon-ion/ion-go-sub000/arena"
	"github.com/amazon-ion/ion-go-sub000/iostream"
)

// A Reader walks over a stream of Ion values, binary or text, and exposes
// the typed-cursor API common to both encodings. A Reader does not
// interpret its input until Next is called; callers drive it forward one
// value at a time and extract the current value's contents with the typed
// accessors below.
type Reader interface {
	// Next positions the Reader on the next value in the current container
	// (or, at the top level, the next value in the stream). It returns
	// false on error or end of the current container/stream; callers
	// should check Err to distinguish the two.
	Next() bool

	// Err returns the error that halted the most recent Next call, if any.
	Err() error

	// Type returns the type of the current value, or NoType if Next has
	// not yet been called or the end of a container has been reached.
	Type() Type

	// IsNull returns true if the current value is a typed or untyped null.
	IsNull() bool

	// FieldName returns the field name of the current value, if reading
	// inside a struct.
	FieldName() (*SymbolToken, error)

	// Annotations returns the type annotations of the current value.
	Annotations() ([]SymbolToken, error)

	// SymbolTable returns the local symbol table that is currently in
	// effect, which may be nil if no symbols have been encountered yet.
	SymbolTable() SymbolTable

	// StepIn steps into the current value, which must be a container.
	StepIn() error

	// StepOut steps out of the current container, skipping any remaining
	// children.
	StepOut() error

	// BoolValue returns the current value as a bool.
	BoolValue() (*bool, error)

	// IntSize returns the size of the integer needed to losslessly
	// represent the current value.
	IntSize() (IntSize, error)

	// IntValue returns the current value as an int.
	IntValue() (*int, error)

	// Int64Value returns the current value as an int64.
	Int64Value() (*int64, error)

	// BigIntValue returns the current value as a big.Int.
	BigIntValue() (*big.Int, error)

	// FloatValue returns the current value as a float64.
	FloatValue() (*float64, error)

	// DecimalValue returns the current value as a Decimal.
	DecimalValue() (*Decimal, error)

	// TimestampValue returns the current value as a Timestamp.
	TimestampValue() (*Timestamp, error)

	// StringValue returns the current value as a string. Applies to
	// both string and symbol values.
	StringValue() (*string, error)

	// SymbolValue returns the current value as a SymbolToken.
	SymbolValue() (*SymbolToken, error)

	// ByteValue returns the current value as a byte slice. Applies to
	// both blob and clob values.
	ByteValue() ([]byte, error)

	// ReadPartial copies up to len(buf) bytes of the current value into
	// buf, for incremental reads of large string, symbol, clob, or blob
	// values. It returns the number of bytes copied and whether bytes
	// remain to be read; repeated calls continue where the previous call
	// left off. Numeric values do not support partial reads.
	ReadPartial(buf []byte) (int, bool, error)
}

// NewReader creates a new Reader, detecting whether the given stream holds
// binary or text Ion by peeking at its first four bytes for the binary
// version marker.
func NewReader(in io.Reader) Reader {
	return NewReaderCat(in, nil)
}

// NewReaderString creates a new Reader over the given string.
func NewReaderString(in string) Reader {
	return NewReader(strings.NewReader(in))
}

// NewReaderBytes creates a new Reader over the given bytes.
func NewReaderBytes(in []byte) Reader {
	return NewReader(bytes.NewReader(in))
}

// NewReaderCat creates a new Reader that resolves shared-table imports
// against the given catalog.
func NewReaderCat(in io.Reader, cat Catalog) Reader {
	br := bufio.NewReader(in)

	bs, err := br.Peek(4)
	if err == nil && bs[0] == 0xE0 && bs[1] == 0x01 && bs[2] == 0x00 && bs[3] == 0xEA {
		// Binary Ion is framed by length-prefixed values rather than
		// lexical tokens, so its reader pages through an iostream.Stream
		// (spec §4.1/§4.4's arena-rooted page ownership) instead of the
		// bufio.Reader the text tokenizer needs for rune-at-a-time scanning.
		return newBinaryReaderBuf(iostream.NewReader(arena.NewOwner(), br), cat)
	}

	return newTextReaderBuf(br, cat)
}
