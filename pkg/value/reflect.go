// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"fmt"
	"reflect"

	"carvel.dev/ett/pkg/orderedmap"
)

// Reflect converts a Go struct, slice, array, or pointer into a Value via
// reflection. Struct fields convert in declaration order; a field's key is
// its `ett` tag when present, otherwise the field name. Fields tagged
// `ett:"-"` and unexported fields are skipped. Nil pointers become Null.
func Reflect(val interface{}) (Value, error) {
	return reflectValue(reflect.ValueOf(val))
}

func reflectValue(rv reflect.Value) (Value, error) {
	switch rv.Kind() {
	case reflect.Invalid:
		return NewNull(), nil

	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return NewNull(), nil
		}
		return reflectValue(rv.Elem())

	case reflect.Struct:
		result := orderedmap.NewMap()
		rt := rv.Type()
		for i := 0; i < rt.NumField(); i++ {
			field := rt.Field(i)
			if field.PkgPath != "" {
				continue
			}
			key := field.Name
			if tag, found := field.Tag.Lookup("ett"); found {
				if tag == "-" {
					continue
				}
				key = tag
			}
			converted, err := reflectValue(rv.Field(i))
			if err != nil {
				return Value{}, fmt.Errorf("converting field '%s' of %s: %s", field.Name, rt, err)
			}
			result.Set(key, converted)
		}
		return NewStructMap(result), nil

	case reflect.Slice, reflect.Array:
		items := make([]Value, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			converted, err := reflectValue(rv.Index(i))
			if err != nil {
				return Value{}, fmt.Errorf("converting item %d of %s: %s", i, rv.Type(), err)
			}
			items = append(items, converted)
		}
		return NewArray(items), nil

	case reflect.Map:
		return ToValue(rv.Interface())

	default:
		// scalars and anything implementing AsValuer resolve in ToValue
		if converted, handled := reflectScalar(rv); handled {
			return converted, nil
		}
		return Value{}, fmt.Errorf("Unable to convert %s into a value", rv.Type())
	}
}

func reflectScalar(rv reflect.Value) (Value, bool) {
	if rv.CanInterface() {
		switch typedVal := rv.Interface().(type) {
		case AsValuer:
			return typedVal.AsValue(), true
		case bool, int8, int16, int32, int64, int,
			uint8, uint16, uint32, uint64, uint,
			float32, float64, string:
			return MustValue(typedVal), true
		}
	}
	switch rv.Kind() {
	case reflect.Bool:
		return NewBool(rv.Bool()), true
	case reflect.Int, reflect.Int64:
		return NewInt64(rv.Int()), true
	case reflect.Int8:
		return NewInt8(int8(rv.Int())), true
	case reflect.Int16:
		return NewInt16(int16(rv.Int())), true
	case reflect.Int32:
		return NewInt32(int32(rv.Int())), true
	case reflect.Uint, reflect.Uint64:
		return NewUint64(rv.Uint()), true
	case reflect.Uint8:
		return NewUint8(uint8(rv.Uint())), true
	case reflect.Uint16:
		return NewUint16(uint16(rv.Uint())), true
	case reflect.Uint32:
		return NewUint32(uint32(rv.Uint())), true
	case reflect.Float32:
		return NewFloat32(float32(rv.Float())), true
	case reflect.Float64:
		return NewFloat64(rv.Float()), true
	case reflect.String:
		return NewString(rv.String()), true
	}
	return Value{}, false
}
