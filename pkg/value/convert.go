// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"fmt"
	"sort"

	"carvel.dev/ett/pkg/orderedmap"
)

// ToValuer converts itself into a Value, possibly failing. Types that can
// always produce a Value should implement AsValuer instead.
type ToValuer interface {
	ToValue() (Value, error)
}

// ToValue converts a native Go value into a Value. Scalars map width for
// width; untyped int becomes Int64. Slices become arrays, maps and structs
// become struct-objects (map keys sorted for determinism, struct fields in
// declaration order via Reflect). Anything implementing ToValuer or AsValuer
// converts through that.
func ToValue(val interface{}) (Value, error) {
	switch typedVal := val.(type) {
	case nil:
		return NewNull(), nil
	case Value:
		return typedVal, nil
	case ToValuer:
		return typedVal.ToValue()
	case AsValuer:
		return typedVal.AsValue(), nil
	case bool:
		return NewBool(typedVal), nil
	case int8:
		return NewInt8(typedVal), nil
	case int16:
		return NewInt16(typedVal), nil
	case int32:
		return NewInt32(typedVal), nil
	case int64:
		return NewInt64(typedVal), nil
	case int:
		return NewInt64(int64(typedVal)), nil
	case uint8:
		return NewUint8(typedVal), nil
	case uint16:
		return NewUint16(typedVal), nil
	case uint32:
		return NewUint32(typedVal), nil
	case uint64:
		return NewUint64(typedVal), nil
	case uint:
		return NewUint64(uint64(typedVal)), nil
	case float32:
		return NewFloat32(typedVal), nil
	case float64:
		return NewFloat64(typedVal), nil
	case string:
		return NewString(typedVal), nil
	case []Value:
		return NewArray(typedVal), nil
	case []interface{}:
		items := make([]Value, 0, len(typedVal))
		for i, item := range typedVal {
			converted, err := ToValue(item)
			if err != nil {
				return Value{}, fmt.Errorf("converting array item %d: %s", i, err)
			}
			items = append(items, converted)
		}
		return NewArray(items), nil
	case map[string]interface{}:
		keys := make([]string, 0, len(typedVal))
		for k := range typedVal {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		result := orderedmap.NewMap()
		for _, k := range keys {
			converted, err := ToValue(typedVal[k])
			if err != nil {
				return Value{}, fmt.Errorf("converting map key '%s': %s", k, err)
			}
			result.Set(k, converted)
		}
		return NewStructMap(result), nil
	case *orderedmap.Map:
		result := orderedmap.NewMap()
		err := typedVal.IterateErr(func(k string, item interface{}) error {
			converted, err := ToValue(item)
			if err != nil {
				return fmt.Errorf("converting map key '%s': %s", k, err)
			}
			result.Set(k, converted)
			return nil
		})
		if err != nil {
			return Value{}, err
		}
		return NewStructMap(result), nil
	default:
		return Reflect(val)
	}
}

// MustValue is ToValue that panics on conversion failure. Useful for
// literals in tests and built-in definitions.
func MustValue(val interface{}) Value {
	result, err := ToValue(val)
	if err != nil {
		panic(fmt.Sprintf("Unexpected value conversion failure: %s", err))
	}
	return result
}
