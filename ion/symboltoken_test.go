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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolTokenEqual(t *testing.T) {
	name := "foo"
	otherName := "bar"

	a := SymbolToken{Text: &name, LocalSID: 10}
	b := SymbolToken{Text: &name, LocalSID: 10}
	assert.True(t, a.Equal(&b))

	c := SymbolToken{Text: &otherName, LocalSID: 10}
	assert.False(t, a.Equal(&c))

	d := SymbolToken{Text: &name, LocalSID: 11}
	assert.False(t, a.Equal(&d))

	e := SymbolToken{LocalSID: SymbolIDUnknown}
	f := SymbolToken{LocalSID: SymbolIDUnknown}
	assert.True(t, e.Equal(&f))
	assert.False(t, e.Equal(&a))
}

func TestNewSymbolToken(t *testing.T) {
	st, err := NewSymbolToken(V1SystemSymbolTable, "name")
	require.NoError(t, err)
	require.NotNil(t, st.Text)
	assert.Equal(t, "name", *st.Text)
	assert.NotEqual(t, int64(SymbolIDUnknown), st.LocalSID)

	_, err = NewSymbolToken(V1SystemSymbolTable, "not_a_real_symbol")
	assert.Error(t, err)
}

func TestNewSymbolTokenBySID(t *testing.T) {
	st, err := NewSymbolTokenBySID(V1SystemSymbolTable, 4)
	require.NoError(t, err)
	require.NotNil(t, st.Text)
	assert.Equal(t, "name", *st.Text)

	_, err = NewSymbolTokenBySID(V1SystemSymbolTable, 0)
	assert.Error(t, err)

	st, err = NewSymbolTokenBySID(nil, 99)
	require.NoError(t, err)
	assert.Nil(t, st.Text)
	assert.Equal(t, int64(99), st.LocalSID)
}

func TestNewSymbolTokenInternal(t *testing.T) {
	st, err := newSymbolToken(V1SystemSymbolTable, "not_a_real_symbol")
	require.NoError(t, err)
	require.NotNil(t, st.Text)
	assert.Equal(t, "not_a_real_symbol", *st.Text)
	assert.Equal(t, int64(SymbolIDUnknown), st.LocalSID)
}
