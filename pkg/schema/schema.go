// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"fmt"

	"carvel.dev/ett/pkg/orderedmap"
	"carvel.dev/ett/pkg/value"
)

// Type names the value variant a schema expects. AnyType accepts every
// variant; IntType accepts both signed and unsigned integers.
type Type int

const (
	AnyType Type = iota
	BoolType
	StringType
	NumberType
	IntType
	FloatType
	ArrayType
	ObjectType
)

func (t Type) String() string {
	switch t {
	case AnyType:
		return "any"
	case BoolType:
		return "bool"
	case StringType:
		return "string"
	case NumberType:
		return "number"
	case IntType:
		return "int"
	case FloatType:
		return "float"
	case ArrayType:
		return "array"
	case ObjectType:
		return "object"
	default:
		panic(fmt.Sprintf("Unknown schema type %d", int(t)))
	}
}

func parseType(name string) (Type, error) {
	for _, t := range []Type{AnyType, BoolType, StringType, NumberType, IntType, FloatType, ArrayType, ObjectType} {
		if t.String() == name {
			return t, nil
		}
	}
	return AnyType, fmt.Errorf("Unknown schema type '%s'", name)
}

func (t Type) matches(v value.Value) bool {
	switch t {
	case AnyType:
		return true
	case BoolType:
		return v.IsBool()
	case StringType:
		return v.IsString()
	case NumberType:
		return v.IsNumber()
	case IntType:
		return v.IsInt() || v.IsUint()
	case FloatType:
		return v.IsFloat()
	case ArrayType:
		return v.IsArray()
	case ObjectType:
		return v.IsStruct()
	default:
		return false
	}
}

// Schema binds an expected value type to an ordered rule set. Build one
// with a type constructor and chainable rule setters:
//
//	schema.Object().Field("count", schema.Int().Required().Min(3))
type Schema struct {
	typ   Type
	rules *RuleSet
}

func newSchema(t Type) *Schema { return &Schema{typ: t, rules: NewRuleSet()} }

func Any() *Schema    { return newSchema(AnyType) }
func Bool() *Schema   { return newSchema(BoolType) }
func String() *Schema { return newSchema(StringType) }
func Number() *Schema { return newSchema(NumberType) }
func Int() *Schema    { return newSchema(IntType) }
func Float() *Schema  { return newSchema(FloatType) }
func Array() *Schema  { return newSchema(ArrayType) }
func Object() *Schema { return newSchema(ObjectType) }

func (s *Schema) Type() Type { return s.typ }

func (s *Schema) Rules() *RuleSet { return s.rules }

func (s *Schema) Required() *Schema {
	s.rules.Append(RequiredRule{Required: true})
	return s
}

func (s *Schema) Equals(v value.Value) *Schema {
	s.rules.Append(EqualsRule{Expected: v})
	return s
}

func (s *Schema) Options(opts ...value.Value) *Schema {
	s.rules.Append(OptionsRule{Options: opts})
	return s
}

func (s *Schema) Min(bound float64) *Schema {
	s.rules.Append(MinRule{Bound: bound})
	return s
}

func (s *Schema) Max(bound float64) *Schema {
	s.rules.Append(MaxRule{Bound: bound})
	return s
}

func (s *Schema) Pattern(expr string) *Schema {
	s.rules.Append(NewPatternRule(expr))
	return s
}

func (s *Schema) Items(item *Schema) *Schema {
	s.rules.Append(ItemsRule{Item: item})
	return s
}

// Field declares one named field, merging into an existing fields rule
// when the schema already has one.
func (s *Schema) Field(name string, field *Schema) *Schema {
	if existing, found := s.rules.Find(FieldsKey); found {
		existing.(FieldsRule).Fields.Set(name, field)
		return s
	}
	fields := orderedmap.NewMap()
	fields.Set(name, field)
	s.rules.Append(FieldsRule{Fields: fields})
	return s
}

func (s *Schema) Fields(fields *orderedmap.Map) *Schema {
	s.rules.Append(FieldsRule{Fields: fields})
	return s
}

// Validate checks a value against the schema. It returns the coerced value
// when every rule passes, otherwise the full error tree. Validation never
// panics.
func (s *Schema) Validate(v value.Value) (value.Value, *ValidError) {
	return s.validate(Context{Path: RootPath(), Value: v})
}

func (s *Schema) validate(ctx Context) (value.Value, *ValidError) {
	result, err := s.rules.Validate(ctx)

	// the type check runs after the rule pass; null is allowed here since
	// presence is Required's concern
	if !result.IsNull() && !s.typ.matches(result) {
		typeErr := NewValidError(ctx.WithRule("type").WithValue(result),
			"expected %s, found %s", s.typ, result.TypeName())
		if err == nil {
			err = newAggregateError(ctx.Path, nil)
		}
		err.Errors = append(err.Errors, typeErr)
	}

	if err != nil {
		return value.Value{}, err
	}
	return result, nil
}
