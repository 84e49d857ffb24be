// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"regexp"

	"carvel.dev/ett/pkg/orderedmap"
	"carvel.dev/ett/pkg/value"
)

const (
	RequiredKey = "required"
	EqualsKey   = "equals"
	OptionsKey  = "options"
	MinKey      = "min"
	MaxKey      = "max"
	PatternKey  = "pattern"
	ItemsKey    = "items"
	FieldsKey   = "fields"
)

// RequiredRule fails when the value is null. Required(false) behaves as if
// the rule were absent; it is kept so decoded schemas re-encode unchanged.
type RequiredRule struct {
	Required bool
}

func (r RequiredRule) Key() string  { return RequiredKey }
func (r RequiredRule) Phase() Phase { return PresencePhase }

func (r RequiredRule) Validate(ctx Context) (value.Value, *ValidError) {
	if r.Required && ctx.Value.IsNull() {
		return value.Value{}, NewValidError(ctx, "is required")
	}
	return ctx.Value, nil
}

// EqualsRule accepts only a single exact value.
type EqualsRule struct {
	Expected value.Value
}

func (r EqualsRule) Key() string  { return EqualsKey }
func (r EqualsRule) Phase() Phase { return ConstraintPhase }

func (r EqualsRule) Validate(ctx Context) (value.Value, *ValidError) {
	if !ctx.Value.Equal(r.Expected) {
		return value.Value{}, NewValidError(ctx, "expected %s, found %s", r.Expected, ctx.Value)
	}
	return ctx.Value, nil
}

// OptionsRule accepts any member of a fixed set.
type OptionsRule struct {
	Options []value.Value
}

func (r OptionsRule) Key() string  { return OptionsKey }
func (r OptionsRule) Phase() Phase { return ConstraintPhase }

func (r OptionsRule) Validate(ctx Context) (value.Value, *ValidError) {
	for _, opt := range r.Options {
		if ctx.Value.Equal(opt) {
			return ctx.Value, nil
		}
	}
	return value.Value{}, NewValidError(ctx, "expected one of %s, found %s",
		value.NewArray(r.Options), ctx.Value)
}

// MinRule bounds numbers from below and strings, arrays, and structs by
// minimum length.
type MinRule struct {
	Bound float64
}

func (r MinRule) Key() string  { return MinKey }
func (r MinRule) Phase() Phase { return ConstraintPhase }

func (r MinRule) Validate(ctx Context) (value.Value, *ValidError) {
	measure, desc, err := boundMeasure(ctx)
	if err != nil {
		return value.Value{}, err
	}
	if measure < r.Bound {
		return value.Value{}, NewValidError(ctx, "expected %s of at least %s, found %s",
			desc, formatBound(r.Bound), formatBound(measure))
	}
	return ctx.Value, nil
}

// MaxRule bounds numbers from above and strings, arrays, and structs by
// maximum length.
type MaxRule struct {
	Bound float64
}

func (r MaxRule) Key() string  { return MaxKey }
func (r MaxRule) Phase() Phase { return ConstraintPhase }

func (r MaxRule) Validate(ctx Context) (value.Value, *ValidError) {
	measure, desc, err := boundMeasure(ctx)
	if err != nil {
		return value.Value{}, err
	}
	if measure > r.Bound {
		return value.Value{}, NewValidError(ctx, "expected %s of at most %s, found %s",
			desc, formatBound(r.Bound), formatBound(measure))
	}
	return ctx.Value, nil
}

func boundMeasure(ctx Context) (float64, string, *ValidError) {
	v := ctx.Value
	switch {
	case v.IsNumber():
		return v.AsNumber().ToFloat64(), "value", nil
	case v.IsString():
		return float64(len(v.AsString())), "length", nil
	case v.IsObject():
		return float64(v.AsObject().Len()), "length", nil
	default:
		return 0, "", NewValidError(ctx, "rule not applicable to %s", v.TypeName())
	}
}

func formatBound(f float64) string {
	if f == float64(int64(f)) {
		return value.NewInt64(int64(f)).String()
	}
	return value.NewFloat64(f).String()
}

// PatternRule matches strings against a regular expression. The expression
// compiles when the rule is built; a bad expression surfaces as a
// validation error so validation itself never fails fatally.
type PatternRule struct {
	Expr     string
	compiled *regexp.Regexp
}

func NewPatternRule(expr string) PatternRule {
	compiled, err := regexp.Compile(expr)
	if err != nil {
		compiled = nil
	}
	return PatternRule{Expr: expr, compiled: compiled}
}

func (r PatternRule) Key() string  { return PatternKey }
func (r PatternRule) Phase() Phase { return ConstraintPhase }

func (r PatternRule) Validate(ctx Context) (value.Value, *ValidError) {
	if r.compiled == nil {
		return value.Value{}, NewValidError(ctx, "invalid pattern '%s'", r.Expr)
	}
	if !ctx.Value.IsString() {
		return value.Value{}, NewValidError(ctx, "rule not applicable to %s", ctx.Value.TypeName())
	}
	if !r.compiled.MatchString(ctx.Value.AsString()) {
		return value.Value{}, NewValidError(ctx, "expected match for pattern '%s', found '%s'",
			r.Expr, ctx.Value.AsString())
	}
	return ctx.Value, nil
}

// ItemsRule validates every array element against one schema. Element
// errors accumulate; successful elements assemble the returned array.
type ItemsRule struct {
	Item *Schema
}

func (r ItemsRule) Key() string  { return ItemsKey }
func (r ItemsRule) Phase() Phase { return RefinePhase }

func (r ItemsRule) Validate(ctx Context) (value.Value, *ValidError) {
	if !ctx.Value.IsArray() {
		return value.Value{}, NewValidError(ctx, "rule not applicable to %s", ctx.Value.TypeName())
	}

	arr := ctx.Value.AsArray()
	items := make([]value.Value, 0, arr.Len())
	var errs []*ValidError
	i := 0
	arr.Iterate(func(item value.AsValuer) {
		coerced, err := r.Item.validate(ctx.ChildIndex(i, item.AsValue()))
		if err != nil {
			errs = append(errs, err)
		} else {
			items = append(items, coerced)
		}
		i++
	})

	if len(errs) > 0 {
		return value.Value{}, &ValidError{Rule: ctx.Rule, Path: ctx.Path, Errors: errs}
	}
	return value.NewArray(items), nil
}

// FieldsRule validates declared struct fields against their schemas, then
// rejects any input field the schema does not declare. The returned struct
// is rebuilt from the coerced field values in declaration order.
type FieldsRule struct {
	Fields *orderedmap.Map // field name -> *Schema
}

func (r FieldsRule) Key() string  { return FieldsKey }
func (r FieldsRule) Phase() Phase { return RefinePhase }

func (r FieldsRule) Validate(ctx Context) (value.Value, *ValidError) {
	if !ctx.Value.IsStruct() {
		return value.Value{}, NewValidError(ctx, "rule not applicable to %s", ctx.Value.TypeName())
	}

	input := ctx.Value.AsStruct()
	result := orderedmap.NewMap()
	var errs []*ValidError

	r.Fields.Iterate(func(name string, item interface{}) {
		fieldSchema := item.(*Schema)
		fieldValue := value.NewNull()
		found, present := input.Field(value.NewKey(name))
		if present {
			fieldValue = found.AsValue()
		}
		coerced, err := fieldSchema.validate(ctx.ChildKey(name, fieldValue))
		if err != nil {
			errs = append(errs, err)
			return
		}
		if present {
			result.Set(name, coerced)
		}
	})

	input.Iterate(func(id value.Ident, _ value.AsValuer) {
		if _, declared := r.Fields.Get(id.Key()); !declared {
			errs = append(errs, NewValidError(ctx.ChildKey(id.Key(), value.NewNull()).WithRule(ctx.Rule),
				"unexpected field '%s'", id.Key()))
		}
	})

	if len(errs) > 0 {
		return value.Value{}, &ValidError{Rule: ctx.Rule, Path: ctx.Path, Errors: errs}
	}
	return value.NewStructMap(result), nil
}
