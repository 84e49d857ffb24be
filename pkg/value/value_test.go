// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package value_test

import (
	"math"
	"testing"

	"carvel.dev/ett/pkg/orderedmap"
	"carvel.dev/ett/pkg/value"
	"github.com/stretchr/testify/require"
)

func TestValueZeroIsNull(t *testing.T) {
	var v value.Value
	require.True(t, v.IsNull())
	require.Equal(t, "<null>", v.String())
}

func TestValueAccessors(t *testing.T) {
	require.Equal(t, true, value.NewBool(true).AsBool())
	require.Equal(t, "hi", value.NewString("hi").AsString())
	require.Equal(t, int64(-7), value.NewInt16(-7).AsNumber().ToInt64())
	require.Equal(t, uint64(300), value.NewUint16(300).AsNumber().ToUint64())
	require.Equal(t, 1.5, value.NewFloat64(1.5).AsNumber().ToFloat64())
}

func TestValueAccessorPanicsOnWrongKind(t *testing.T) {
	require.PanicsWithValue(t, "expected Bool, received String", func() {
		value.NewString("x").AsBool()
	})
	require.PanicsWithValue(t, "expected String, received Int32", func() {
		value.NewInt32(1).AsString()
	})
	require.PanicsWithValue(t, "expected Struct, received Array", func() {
		value.NewArray(nil).AsStruct()
	})
	require.PanicsWithValue(t, "expected Tuple, received Null", func() {
		value.NewNull().AsTuple()
	})
}

func TestValueWidthPreserved(t *testing.T) {
	require.Equal(t, "Int8", value.NewInt8(1).TypeName())
	require.Equal(t, "Uint64", value.NewUint64(1).TypeName())
	require.Equal(t, "Float32", value.NewFloat32(1).TypeName())
	require.True(t, value.NewInt8(1).IsInt())
	require.True(t, value.NewUint32(1).IsUint())
	require.True(t, value.NewFloat64(1).IsFloat())
	require.False(t, value.NewFloat64(1).IsInt())
}

func TestValueEqualAcrossWidths(t *testing.T) {
	require.True(t, value.NewInt8(5).Equal(value.NewInt64(5)))
	require.True(t, value.NewUint8(5).Equal(value.NewUint64(5)))
	require.True(t, value.NewInt64(5).Equal(value.NewFloat64(5)))
	require.True(t, value.NewFloat32(1.5).Equal(value.NewFloat64(1.5)))
	require.False(t, value.NewInt64(5).Equal(value.NewInt64(6)))
	require.False(t, value.NewInt64(5).Equal(value.NewString("5")))
}

func TestValueEqualNaN(t *testing.T) {
	nan := value.NewFloat64(math.NaN())
	require.True(t, nan.Equal(value.NewFloat64(math.NaN())))
	require.False(t, nan.Equal(value.NewFloat64(0)))
}

func TestValueCompare(t *testing.T) {
	requireCompare := func(expected int, l, r value.Value) {
		cmp, defined := l.Compare(r)
		require.True(t, defined)
		require.Equal(t, expected, cmp)
	}
	requireCompare(-1, value.NewInt64(1), value.NewInt64(2))
	requireCompare(0, value.NewInt64(2), value.NewFloat64(2))
	requireCompare(1, value.NewUint8(9), value.NewUint64(3))
	requireCompare(-1, value.NewString("a"), value.NewString("b"))
	requireCompare(1, value.NewBool(true), value.NewBool(false))
}

func TestValueCompareIncomparable(t *testing.T) {
	incomparable := func(l, r value.Value) {
		_, defined := l.Compare(r)
		require.False(t, defined)
	}
	incomparable(value.NewInt64(1), value.NewString("1"))
	incomparable(value.NewBool(true), value.NewInt64(1))
	incomparable(value.NewNull(), value.NewNull())
	nan := value.NewFloat64(math.NaN())
	incomparable(nan, nan)
	incomparable(nan, value.NewInt64(0))
}

func TestValueDisplayForms(t *testing.T) {
	require.Equal(t, "true", value.NewBool(true).String())
	require.Equal(t, "-3", value.NewInt8(-3).String())
	require.Equal(t, "2.5", value.NewFloat32(2.5).String())
	require.Equal(t, "plain", value.NewString("plain").String())

	arr := value.NewArray([]value.Value{value.NewInt64(1), value.NewString("a")})
	require.Equal(t, "[1, a]", arr.String())

	tup := value.NewTuple(value.NewBool(false), value.NewNull())
	require.Equal(t, "(false, <null>)", tup.String())

	fields := orderedmap.NewMap()
	fields.Set("name", value.NewString("ett"))
	fields.Set("count", value.NewInt64(2))
	require.Equal(t, "{name: ett, count: 2}", value.NewStructMap(fields).String())
}

func TestStructFieldOrderAndLookup(t *testing.T) {
	fields := orderedmap.NewMap()
	fields.Set("b", value.NewInt64(2))
	fields.Set("a", value.NewInt64(1))
	s := value.NewStructMap(fields).AsStruct()

	require.Equal(t, 2, s.Len())

	var keys []string
	s.Iterate(func(id value.Ident, _ value.AsValuer) {
		keys = append(keys, id.String())
	})
	require.Equal(t, []string{"b", "a"}, keys)

	item, found := s.Field(value.NewKey("a"))
	require.True(t, found)
	require.Equal(t, int64(1), item.AsValue().AsNumber().ToInt64())

	_, found = s.Field(value.NewKey("missing"))
	require.False(t, found)
}

func TestTupleIsNotArray(t *testing.T) {
	tup := value.NewTuple(value.NewInt64(1), value.NewInt64(2))
	require.True(t, tup.IsTuple())
	require.False(t, tup.IsArray())
	require.Equal(t, "Tuple2", tup.TypeName())
	require.False(t, tup.Equal(value.NewArray([]value.Value{value.NewInt64(1), value.NewInt64(2)})))
}

func TestObjectEqualDeep(t *testing.T) {
	mk := func() value.Value {
		fields := orderedmap.NewMap()
		fields.Set("xs", value.NewArray([]value.Value{value.NewInt64(1), value.NewFloat64(2)}))
		return value.NewStructMap(fields)
	}
	require.True(t, mk().Equal(mk()))

	other := orderedmap.NewMap()
	other.Set("xs", value.NewArray([]value.Value{value.NewInt64(1), value.NewFloat64(3)}))
	require.False(t, mk().Equal(value.NewStructMap(other)))
}

