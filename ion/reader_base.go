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
	"errors"
	"math"
	"math/big"
)

// reader holds the state shared by the binary and text readers: the
// container-nesting stack, the current value's descriptor, and the local
// symbol table currently in effect. Both binaryReader and textReader embed
// this and fill in valueType/value/fieldName/annotations/lst as they
// recognize each value.
type reader struct {
	ctx ctxstack
	eof bool
	err error

	fieldName   *SymbolToken
	annotations []SymbolToken
	valueType   Type
	value       interface{}

	lst SymbolTable

	partialData    []byte // materialized bytes of the current value, for ReadPartial
	partialOffset  int
	partialStarted bool
}

// Err returns the current error.
func (r *reader) Err() error {
	return r.err
}

// Type returns the current value's type.
func (r *reader) Type() Type {
	return r.valueType
}

// IsNull returns true if the current value is null.
func (r *reader) IsNull() bool {
	return r.valueType != NoType && r.value == nil
}

// FieldName returns the current value's field name, or the error that
// halted the most recent Next call.
func (r *reader) FieldName() (*SymbolToken, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.fieldName, nil
}

// Annotations returns the current value's annotations, or the error that
// halted the most recent Next call.
func (r *reader) Annotations() ([]SymbolToken, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.annotations, nil
}

// SymbolTable returns the local symbol table currently in effect.
func (r *reader) SymbolTable() SymbolTable {
	return r.lst
}

// BoolValue returns the current value as a bool.
func (r *reader) BoolValue() (*bool, error) {
	if r.valueType != BoolType {
		return nil, errors.New("ion: value is not a bool")
	}
	if r.value == nil {
		return nil, nil
	}
	b := r.value.(bool)
	return &b, nil
}

// IntSize returns the size of the current int value.
func (r *reader) IntSize() (IntSize, error) {
	if r.valueType != IntType {
		return NullInt, errors.New("ion: value is not an int")
	}
	if r.value == nil {
		return NullInt, nil
	}

	if i, ok := r.value.(int64); ok {
		if i > math.MaxInt32 || i < math.MinInt32 {
			return Int64, nil
		}
		return Int32, nil
	}

	return BigInt, nil
}

// IntValue returns the current value as an int.
func (r *reader) IntValue() (*int, error) {
	i, err := r.Int64Value()
	if err != nil || i == nil {
		return nil, err
	}
	if *i > math.MaxInt32 || *i < math.MinInt32 {
		return nil, errors.New("ion: int value out of bounds")
	}
	v := int(*i)
	return &v, nil
}

// Int64Value returns the current value as an int64.
func (r *reader) Int64Value() (*int64, error) {
	if r.valueType != IntType {
		return nil, errors.New("ion: value is not an int")
	}
	if r.value == nil {
		return nil, nil
	}

	if i, ok := r.value.(int64); ok {
		return &i, nil
	}

	bi := r.value.(*big.Int)
	if !bi.IsInt64() {
		return nil, errors.New("ion: int value out of bounds")
	}
	i := bi.Int64()
	return &i, nil
}

// BigIntValue returns the current value as a big int.
func (r *reader) BigIntValue() (*big.Int, error) {
	if r.valueType != IntType {
		return nil, errors.New("ion: value is not an int")
	}
	if r.value == nil {
		return nil, nil
	}
	if i, ok := r.value.(int64); ok {
		return big.NewInt(i), nil
	}
	return r.value.(*big.Int), nil
}

// FloatValue returns the current value as a float.
func (r *reader) FloatValue() (*float64, error) {
	if r.valueType != FloatType {
		return nil, errors.New("ion: value is not a float")
	}
	if r.value == nil {
		return nil, nil
	}
	f := r.value.(float64)
	return &f, nil
}

// DecimalValue returns the current value as a Decimal.
func (r *reader) DecimalValue() (*Decimal, error) {
	if r.valueType != DecimalType {
		return nil, errors.New("ion: value is not a decimal")
	}
	if r.value == nil {
		return nil, nil
	}
	return r.value.(*Decimal), nil
}

// TimestampValue returns the current value as a Timestamp.
func (r *reader) TimestampValue() (*Timestamp, error) {
	if r.valueType != TimestampType {
		return nil, errors.New("ion: value is not a timestamp")
	}
	if r.value == nil {
		return nil, nil
	}
	t := r.value.(Timestamp)
	return &t, nil
}

// StringValue returns the current value as a string.
func (r *reader) StringValue() (*string, error) {
	if r.valueType == StringType {
		if r.value == nil {
			return nil, nil
		}
		s := r.value.(string)
		return &s, nil
	}
	if r.valueType == SymbolType {
		if r.value == nil {
			return nil, nil
		}
		st := r.value.(*SymbolToken)
		return st.Text, nil
	}
	return nil, errors.New("ion: value is not a string or symbol")
}

// SymbolValue returns the current value as a SymbolToken.
func (r *reader) SymbolValue() (*SymbolToken, error) {
	if r.valueType != SymbolType {
		return nil, errors.New("ion: value is not a symbol")
	}
	if r.value == nil {
		return nil, nil
	}
	return r.value.(*SymbolToken), nil
}

// ByteValue returns the current value as a byte slice.
func (r *reader) ByteValue() ([]byte, error) {
	if r.valueType != BlobType && r.valueType != ClobType {
		return nil, errors.New("ion: value is not a lob")
	}
	if r.value == nil {
		return nil, nil
	}
	return r.value.([]byte), nil
}

// ReadPartial copies up to len(buf) bytes of the current string, symbol,
// clob, or blob value into buf, matching ion-c's read_partial contract
// (spec §4.9): numeric values cannot be partially read. The value is
// materialized in full on the first call via the existing typed accessors
// and served out in caller-sized chunks on this and subsequent calls,
// until consumed; n is the number of bytes copied and more reports
// whether bytes remain.
func (r *reader) ReadPartial(buf []byte) (n int, more bool, err error) {
	if !r.partialStarted {
		data, err := r.partialBytes()
		if err != nil {
			return 0, false, err
		}
		r.partialData = data
		r.partialOffset = 0
		r.partialStarted = true
	}

	n = copy(buf, r.partialData[r.partialOffset:])
	r.partialOffset += n
	return n, r.partialOffset < len(r.partialData), nil
}

func (r *reader) partialBytes() ([]byte, error) {
	switch r.valueType {
	case StringType, SymbolType:
		s, err := r.StringValue()
		if err != nil {
			return nil, err
		}
		if s == nil {
			return nil, nil
		}
		return []byte(*s), nil
	case ClobType, BlobType:
		return r.ByteValue()
	default:
		return nil, &UsageError{"Reader.ReadPartial", "value does not support partial reads"}
	}
}

func (r *reader) clear() {
	r.fieldName = nil
	r.annotations = nil
	r.valueType = NoType
	r.value = nil
	r.partialData = nil
	r.partialOffset = 0
	r.partialStarted = false
}
