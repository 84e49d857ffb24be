// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package orderedmap_test

import (
	"testing"

	"carvel.dev/ett/pkg/orderedmap"
	"github.com/stretchr/testify/require"
)

func TestMapKeepsInsertionOrder(t *testing.T) {
	m := orderedmap.NewMap()
	m.Set("zebra", 1)
	m.Set("apple", 2)
	m.Set("mango", 3)

	require.Equal(t, []string{"zebra", "apple", "mango"}, m.Keys())
}

func TestMapSetOverwritesInPlace(t *testing.T) {
	m := orderedmap.NewMap()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("a", 10)

	require.Equal(t, []string{"a", "b"}, m.Keys())

	val, found := m.Get("a")
	require.True(t, found)
	require.Equal(t, 10, val)
}

func TestMapDelete(t *testing.T) {
	m := orderedmap.NewMap()
	m.Set("a", 1)
	m.Set("b", 2)

	require.True(t, m.Delete("a"))
	require.False(t, m.Delete("a"))
	require.Equal(t, 1, m.Len())

	_, found := m.Get("a")
	require.False(t, found)
}

func TestMapCopyIsIndependent(t *testing.T) {
	m := orderedmap.NewMap()
	m.Set("a", 1)

	copied := m.Copy()
	copied.Set("b", 2)

	require.Equal(t, 1, m.Len())
	require.Equal(t, 2, copied.Len())
}
