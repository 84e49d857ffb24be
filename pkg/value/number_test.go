// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package value_test

import (
	"math"
	"testing"

	"carvel.dev/ett/pkg/value"
	"github.com/stretchr/testify/require"
)

func TestNumberFamilies(t *testing.T) {
	require.True(t, value.NumberFromInt32(-1).IsInt())
	require.True(t, value.NumberFromUint8(1).IsUint())
	require.True(t, value.NumberFromFloat32(1).IsFloat())
}

func TestNumberConversionPanics(t *testing.T) {
	require.Panics(t, func() { value.NumberFromUint8(1).ToInt64() })
	require.Panics(t, func() { value.NumberFromInt8(1).ToUint64() })
}

func TestNumberToFloat64Promotes(t *testing.T) {
	require.Equal(t, -2.0, value.NumberFromInt16(-2).ToFloat64())
	require.Equal(t, 7.0, value.NumberFromUint32(7).ToFloat64())
}

func TestNumberCompareMixedFamilies(t *testing.T) {
	require.Equal(t, -1, value.NumberFromInt64(-1).Compare(value.NumberFromUint64(0)))
	require.Equal(t, 0, value.NumberFromUint8(2).Compare(value.NumberFromFloat64(2)))
	require.Equal(t, 1, value.NumberFromFloat64(0).Compare(value.NumberFromFloat64(math.NaN())))
	require.Equal(t, 0, value.NumberFromFloat64(math.NaN()).Compare(value.NumberFromFloat64(math.NaN())))
}

func TestNumberIsZero(t *testing.T) {
	require.True(t, value.NumberFromInt64(0).IsZero())
	require.True(t, value.NumberFromFloat32(0).IsZero())
	require.False(t, value.NumberFromUint8(1).IsZero())
	require.False(t, value.NumberFromFloat64(math.NaN()).IsZero())
}

func TestNumberCanonicalStrings(t *testing.T) {
	require.Equal(t, "-128", value.NumberFromInt8(-128).String())
	require.Equal(t, "18446744073709551615", value.NumberFromUint64(math.MaxUint64).String())
	require.Equal(t, "0.1", value.NumberFromFloat32(0.1).String())
	require.Equal(t, "0.1", value.NumberFromFloat64(0.1).String())
	require.Equal(t, "100", value.NumberFromFloat64(100).String())
}

func TestIdentParse(t *testing.T) {
	require.True(t, value.ParseIdent("0").IsIndex())
	require.True(t, value.ParseIdent("42").IsIndex())
	require.Equal(t, 42, value.ParseIdent("42").Index())
	require.True(t, value.ParseIdent("name").IsKey())
	require.True(t, value.ParseIdent("-1").IsKey())
	require.PanicsWithValue(t, "expected Index, received Key", func() {
		value.NewKey("name").Index()
	})
}
