// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package schema_test

import (
	"testing"

	"carvel.dev/ett/pkg/orderedmap"
	"carvel.dev/ett/pkg/schema"
	"carvel.dev/ett/pkg/value"
	"github.com/stretchr/testify/require"
)

func structOf(t *testing.T, pairs ...interface{}) value.Value {
	t.Helper()
	require.Zero(t, len(pairs)%2)
	fields := orderedmap.NewMap()
	for i := 0; i < len(pairs); i += 2 {
		fields.Set(pairs[i].(string), value.MustValue(pairs[i+1]))
	}
	return value.NewStructMap(fields)
}

func TestValidateRequired(t *testing.T) {
	s := schema.String().Required()

	_, err := s.Validate(value.NewNull())
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "required at .: is required")

	result, err := s.Validate(value.NewString("ok"))
	require.Nil(t, err)
	require.Equal(t, "ok", result.AsString())
}

func TestValidateNullPassesWhenOptional(t *testing.T) {
	s := schema.Int().Min(3).Options(value.NewInt64(3), value.NewInt64(4))

	result, err := s.Validate(value.NewNull())
	require.Nil(t, err)
	require.True(t, result.IsNull())
}

func TestValidateTypeMismatch(t *testing.T) {
	_, err := schema.Int().Validate(value.NewString("nope"))
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "type at .: expected int, found String")
}

func TestValidateIntAcceptsBothSignednesses(t *testing.T) {
	_, err := schema.Int().Validate(value.NewInt8(-1))
	require.Nil(t, err)
	_, err = schema.Int().Validate(value.NewUint64(1))
	require.Nil(t, err)
	_, err = schema.Int().Validate(value.NewFloat64(1))
	require.NotNil(t, err)
}

func TestValidateEqualsAndOptions(t *testing.T) {
	_, err := schema.String().Equals(value.NewString("a")).Validate(value.NewString("b"))
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "equals at .: expected a, found b")

	_, err = schema.Int().Options(value.NewInt64(1), value.NewInt64(2)).Validate(value.NewInt64(3))
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "expected one of [1, 2], found 3")
}

func TestValidateMinMaxOnNumbersAndLengths(t *testing.T) {
	_, err := schema.Int().Min(3).Validate(value.NewInt64(2))
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "min at .: expected value of at least 3, found 2")

	_, err = schema.String().Min(3).Validate(value.NewString("ab"))
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "expected length of at least 3, found 2")

	_, err = schema.Array().Max(1).Validate(value.NewArray([]value.Value{
		value.NewInt64(1), value.NewInt64(2),
	}))
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "expected length of at most 1, found 2")

	_, err = schema.Bool().Min(1).Validate(value.NewBool(true))
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "rule not applicable to Bool")
}

func TestValidatePattern(t *testing.T) {
	s := schema.String().Pattern(`^[a-z]+$`)

	_, err := s.Validate(value.NewString("abc"))
	require.Nil(t, err)

	_, err = s.Validate(value.NewString("Abc"))
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "pattern")

	_, err = schema.String().Pattern(`[`).Validate(value.NewString("x"))
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "invalid pattern '['")
}

func TestValidateItemsAccumulatesElementErrors(t *testing.T) {
	s := schema.Array().Items(schema.Int().Min(10))

	input := value.NewArray([]value.Value{
		value.NewInt64(12), value.NewInt64(3), value.NewInt64(4),
	})
	_, err := s.Validate(input)
	require.NotNil(t, err)
	require.Equal(t, 2, err.Count())
	require.Contains(t, err.Error(), "min at 1:")
	require.Contains(t, err.Error(), "min at 2:")
}

func TestValidateFieldsRejectsUnexpected(t *testing.T) {
	s := schema.Object().Field("name", schema.String())

	_, err := s.Validate(structOf(t, "name", "ok", "extra", 1))
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "unexpected field 'extra'")
}

func TestValidateErrorAggregationTwoFailingFields(t *testing.T) {
	s := schema.Object().
		Field("count", schema.Int().Required().Min(3)).
		Field("name", schema.String().Required())

	_, err := s.Validate(structOf(t, "count", 2))
	require.NotNil(t, err)

	// one fields-rule aggregate with exactly two children, one per field
	require.Len(t, err.Errors, 1)
	fieldsErr := err.Errors[0]
	require.Len(t, fieldsErr.Errors, 2)
	require.Equal(t, "count", fieldsErr.Errors[0].Path.String())
	require.Equal(t, "name", fieldsErr.Errors[1].Path.String())
}

func TestValidateBoundsAndOptionsScenario(t *testing.T) {
	s := schema.Object().
		Field("count", schema.Int().Required().Min(3).Options(
			value.MustValue(3), value.MustValue(4), value.MustValue(5)))

	_, err := s.Validate(structOf(t, "count", 2))
	require.NotNil(t, err)
	require.Len(t, err.Errors, 1)
	require.Equal(t, "count", err.Errors[0].Errors[0].Path.String())
	require.Contains(t, err.Error(), "min at count:")

	result, err := s.Validate(structOf(t, "count", 4))
	require.Nil(t, err)
	item, found := result.AsStruct().Field(value.NewKey("count"))
	require.True(t, found)
	require.Equal(t, int64(4), item.AsValue().AsNumber().ToInt64())
}

func TestValidateIdempotence(t *testing.T) {
	s := schema.Object().
		Field("count", schema.Int().Required().Min(3)).
		Field("tags", schema.Array().Items(schema.String()))

	input := structOf(t, "count", 7)
	once, err := s.Validate(input)
	require.Nil(t, err)

	twice, err := s.Validate(once)
	require.Nil(t, err)
	require.True(t, once.Equal(twice))
}

func TestValidatePhaseOrderBeatsInsertionOrder(t *testing.T) {
	// required runs first even when appended last
	s := schema.Int().Min(3).Required()

	_, err := s.Validate(value.NewNull())
	require.NotNil(t, err)
	require.Equal(t, 1, err.Count())
	require.Contains(t, err.Error(), "is required")
}
