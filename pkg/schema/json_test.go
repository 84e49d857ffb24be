// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package schema_test

import (
	"testing"

	"carvel.dev/ett/pkg/schema"
	"carvel.dev/ett/pkg/value"
	"github.com/stretchr/testify/require"
)

func TestSchemaJSONEncode(t *testing.T) {
	s := schema.Object().
		Field("count", schema.Int().Required().Min(3).Options(
			value.MustValue(3), value.MustValue(4), value.MustValue(5))).
		Field("name", schema.String().Pattern(`^[a-z]+$`).Max(10))

	data, err := schema.MarshalJSON(s)
	require.NoError(t, err)
	require.Equal(t,
		`{"type":"object","fields":{`+
			`"count":{"type":"int","required":true,"min":3,"options":[3,4,5]},`+
			`"name":{"type":"string","pattern":"^[a-z]+$","max":10}}}`,
		string(data))
}

func TestSchemaJSONRoundTrip(t *testing.T) {
	schemas := []*schema.Schema{
		schema.Any(),
		schema.Bool().Required(),
		schema.String().Min(1).Max(5).Pattern(`\d+`),
		schema.Float().Equals(value.NewFloat64(2.5)),
		schema.Array().Items(schema.Int().Options(value.MustValue(1), value.MustValue(2))),
		schema.Object().
			Field("a", schema.String().Required()).
			Field("b", schema.Array().Items(schema.Object().Field("c", schema.Int()))),
		// insertion order differs from phase order; both must survive
		schema.Int().Min(3).Required(),
	}

	for _, s := range schemas {
		encoded, err := schema.MarshalJSON(s)
		require.NoError(t, err)

		decoded, err := schema.UnmarshalJSON(encoded)
		require.NoError(t, err)

		reencoded, err := schema.MarshalJSON(decoded)
		require.NoError(t, err)
		require.Equal(t, string(encoded), string(reencoded))
	}
}

func TestSchemaJSONDecodeValidates(t *testing.T) {
	decoded, err := schema.UnmarshalJSON([]byte(
		`{"type":"object","fields":{"count":{"type":"int","required":true,"min":3}}}`))
	require.NoError(t, err)

	_, validErr := decoded.Validate(value.MustValue(map[string]interface{}{"count": 2}))
	require.NotNil(t, validErr)
	require.Contains(t, validErr.Error(), "min at count:")
}

func TestSchemaJSONDecodeStrict(t *testing.T) {
	_, err := schema.UnmarshalJSON([]byte(`{"type":"int","bogus":1}`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "Unknown rule 'bogus'")

	_, err = schema.UnmarshalJSON([]byte(`{"required":true}`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "Expected 'type' as first schema key")

	_, err = schema.UnmarshalJSON([]byte(`{"type":"wat"}`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "Unknown schema type 'wat'")
}

func TestSchemaJSONRequiredFalseSurvivesRoundTrip(t *testing.T) {
	decoded, err := schema.UnmarshalJSON([]byte(`{"type":"string","required":false}`))
	require.NoError(t, err)

	encoded, err := schema.MarshalJSON(decoded)
	require.NoError(t, err)
	require.Equal(t, `{"type":"string","required":false}`, string(encoded))

	// Required(false) validates like an absent rule
	_, validErr := decoded.Validate(value.NewNull())
	require.Nil(t, validErr)
}
