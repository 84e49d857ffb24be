// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"fmt"
	"math"

	"carvel.dev/ett/pkg/orderedmap"
	"carvel.dev/ett/pkg/value"
)

// evalExpr evaluates one expression against a scope. Failures are
// fail-fast and arrive wrapped in a SpanError for the failing expression.
func evalExpr(e Expr, scope *Scope) (value.Value, error) {
	switch typedExpr := e.(type) {
	case *LiteralExpr:
		return typedExpr.Value, nil

	case *IdentExpr:
		v, found := scope.Var(typedExpr.Name)
		if !found {
			return value.Value{}, NewSpanError(e.Span(), UndefinedVariableError{Name: typedExpr.Name})
		}
		return v, nil

	case *MemberExpr:
		obj, err := evalExpr(typedExpr.Obj, scope)
		if err != nil {
			return value.Value{}, err
		}
		if !obj.IsStruct() {
			return value.Value{}, NewSpanError(e.Span(),
				TypeError{Message: fmt.Sprintf("expected a struct, found %s", obj.TypeName())})
		}
		field, found := obj.AsStruct().Field(value.NewKey(typedExpr.Field))
		if !found {
			return value.Value{}, NewSpanError(e.Span(), UndefinedFieldError{Field: typedExpr.Field})
		}
		return field.AsValue(), nil

	case *IndexExpr:
		return evalIndex(typedExpr, scope)

	case *CallExpr:
		fn, found := scope.Func(typedExpr.Name)
		if !found {
			return value.Value{}, NewSpanError(e.Span(), NotCallableError{Name: typedExpr.Name})
		}
		args, err := evalArgs(typedExpr.Args, scope)
		if err != nil {
			return value.Value{}, err
		}
		result, err := fn.Invoke(args)
		if err != nil {
			return value.Value{}, NewSpanError(e.Span(), err)
		}
		return result, nil

	case *PipeExpr:
		this, err := evalExpr(typedExpr.Value, scope)
		if err != nil {
			return value.Value{}, err
		}
		pipe, found := scope.Pipe(typedExpr.Name)
		if !found {
			return value.Value{}, NewSpanError(e.Span(), UndefinedPipeError{Name: typedExpr.Name})
		}
		args, err := evalArgs(typedExpr.Args, scope)
		if err != nil {
			return value.Value{}, err
		}
		result, err := pipe.Invoke(this, args)
		if err != nil {
			return value.Value{}, NewSpanError(e.Span(), err)
		}
		return result, nil

	case *BinaryExpr:
		return evalBinary(typedExpr, scope)

	case *UnaryExpr:
		return evalUnary(typedExpr, scope)

	case *ArrayExpr:
		items, err := evalArgs(typedExpr.Items, scope)
		if err != nil {
			return value.Value{}, err
		}
		return value.NewArray(items), nil

	case *ObjectExpr:
		fields := orderedmap.NewMap()
		for _, field := range typedExpr.Fields {
			v, err := evalExpr(field.Value, scope)
			if err != nil {
				return value.Value{}, err
			}
			fields.Set(field.Key, v)
		}
		return value.NewStructMap(fields), nil

	case *MatchExpr:
		subject, err := evalExpr(typedExpr.Subject, scope)
		if err != nil {
			return value.Value{}, err
		}
		for _, arm := range typedExpr.Arms {
			pattern, err := evalExpr(arm.Pattern, scope)
			if err != nil {
				return value.Value{}, err
			}
			if subject.Equal(pattern) {
				return evalExpr(arm.Value, scope)
			}
		}
		if typedExpr.Default != nil {
			return evalExpr(typedExpr.Default, scope)
		}
		return value.NewNull(), nil

	default:
		panic(fmt.Sprintf("Unknown expression %T", e))
	}
}

func evalArgs(exprs []Expr, scope *Scope) ([]value.Value, error) {
	args := make([]value.Value, 0, len(exprs))
	for _, e := range exprs {
		v, err := evalExpr(e, scope)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return args, nil
}

func evalIndex(e *IndexExpr, scope *Scope) (value.Value, error) {
	obj, err := evalExpr(e.Obj, scope)
	if err != nil {
		return value.Value{}, err
	}
	if !obj.IsArray() {
		return value.Value{}, NewSpanError(e.Span(),
			TypeError{Message: fmt.Sprintf("expected an array, found %s", obj.TypeName())})
	}

	idx, err := evalExpr(e.Index, scope)
	if err != nil {
		return value.Value{}, err
	}

	var i int
	switch {
	case idx.IsInt():
		signed := idx.AsNumber().ToInt64()
		if signed < 0 {
			return value.Value{}, NewSpanError(e.Span(), InvalidIndexError{Value: idx.String()})
		}
		i = int(signed)
	case idx.IsUint():
		unsigned := idx.AsNumber().ToUint64()
		if unsigned > math.MaxInt {
			return value.Value{}, NewSpanError(e.Span(), InvalidIndexError{Value: idx.String()})
		}
		i = int(unsigned)
	default:
		return value.Value{}, NewSpanError(e.Span(), InvalidIndexError{Value: idx.String()})
	}

	arr := obj.AsArray()
	item, found := arr.Index(i)
	if !found {
		return value.Value{}, NewSpanError(e.Span(), IndexOutOfBoundsError{Index: i, Len: arr.Len()})
	}
	return item.AsValue(), nil
}

func evalUnary(e *UnaryExpr, scope *Scope) (value.Value, error) {
	operand, err := evalExpr(e.Operand, scope)
	if err != nil {
		return value.Value{}, err
	}

	switch e.Op {
	case NotOp:
		return value.NewBool(!truthy(operand)), nil

	case NegOp:
		if !operand.IsNumber() {
			return value.Value{}, NewSpanError(e.Span(),
				TypeError{Message: fmt.Sprintf("cannot negate %s", operand.TypeName())})
		}
		num := operand.AsNumber()
		switch {
		case num.IsFloat():
			if num.Kind() == value.Float32Kind {
				return value.NewFloat32(-float32(num.ToFloat64())), nil
			}
			return value.NewFloat64(-num.ToFloat64()), nil
		case num.IsUint():
			unsigned := num.ToUint64()
			if unsigned > math.MaxInt64 {
				return value.Value{}, NewSpanError(e.Span(), OverflowError{Op: "-"})
			}
			return value.NewInt64(-int64(unsigned)), nil
		default:
			signed := num.ToInt64()
			if signed == math.MinInt64 {
				return value.Value{}, NewSpanError(e.Span(), OverflowError{Op: "-"})
			}
			return value.NewInt64(-signed), nil
		}

	default:
		panic(fmt.Sprintf("Unknown unary op %d", int(e.Op)))
	}
}

func evalBinary(e *BinaryExpr, scope *Scope) (value.Value, error) {
	// short-circuit operators return the deciding value itself
	switch e.Op {
	case AndOp:
		left, err := evalExpr(e.Left, scope)
		if err != nil {
			return value.Value{}, err
		}
		if !truthy(left) {
			return left, nil
		}
		return evalExpr(e.Right, scope)

	case OrOp:
		left, err := evalExpr(e.Left, scope)
		if err != nil {
			return value.Value{}, err
		}
		if truthy(left) {
			return left, nil
		}
		return evalExpr(e.Right, scope)
	}

	left, err := evalExpr(e.Left, scope)
	if err != nil {
		return value.Value{}, err
	}
	right, err := evalExpr(e.Right, scope)
	if err != nil {
		return value.Value{}, err
	}

	switch e.Op {
	case EqOp:
		return value.NewBool(left.Equal(right)), nil
	case NotEqOp:
		return value.NewBool(!left.Equal(right)), nil

	case LessOp, LessEqOp, GreaterOp, GreaterEqOp:
		// incomparable operands make every ordering false
		cmp, defined := left.Compare(right)
		if !defined {
			return value.NewBool(false), nil
		}
		switch e.Op {
		case LessOp:
			return value.NewBool(cmp < 0), nil
		case LessEqOp:
			return value.NewBool(cmp <= 0), nil
		case GreaterOp:
			return value.NewBool(cmp > 0), nil
		default:
			return value.NewBool(cmp >= 0), nil
		}

	case AddOp:
		if left.IsString() || right.IsString() {
			return value.NewString(left.String() + right.String()), nil
		}
		return evalArith(e, left, right)

	case SubOp, MulOp, DivOp, ModOp:
		return evalArith(e, left, right)

	default:
		panic(fmt.Sprintf("Unknown binary op %d", int(e.Op)))
	}
}

func evalArith(e *BinaryExpr, left, right value.Value) (value.Value, error) {
	if !left.IsNumber() || !right.IsNumber() {
		return value.Value{}, NewSpanError(e.Span(), TypeError{
			Message: fmt.Sprintf("cannot apply '%s' to %s and %s",
				e.Op, left.TypeName(), right.TypeName()),
		})
	}

	l, r := left.AsNumber(), right.AsNumber()
	if l.IsFloat() || r.IsFloat() {
		return evalFloatArith(e, l.ToFloat64(), r.ToFloat64())
	}
	return evalIntArith(e, l, r)
}

func evalFloatArith(e *BinaryExpr, l, r float64) (value.Value, error) {
	switch e.Op {
	case AddOp:
		return value.NewFloat64(l + r), nil
	case SubOp:
		return value.NewFloat64(l - r), nil
	case MulOp:
		return value.NewFloat64(l * r), nil
	case DivOp:
		if r == 0 {
			return value.Value{}, NewSpanError(e.Span(), DivisionByZeroError{})
		}
		return value.NewFloat64(l / r), nil
	case ModOp:
		if r == 0 {
			return value.Value{}, NewSpanError(e.Span(), DivisionByZeroError{})
		}
		return value.NewFloat64(math.Mod(l, r)), nil
	default:
		panic(fmt.Sprintf("Unknown arithmetic op '%s'", e.Op))
	}
}

// evalIntArith performs checked 64-bit signed arithmetic. Unsigned
// operands participate after a range check; any overflow is an error, not
// a wrap.
func evalIntArith(e *BinaryExpr, l, r value.Number) (value.Value, error) {
	a, err := toCheckedInt64(e, l)
	if err != nil {
		return value.Value{}, err
	}
	b, err := toCheckedInt64(e, r)
	if err != nil {
		return value.Value{}, err
	}

	switch e.Op {
	case AddOp:
		result := a + b
		if (result > a) != (b > 0) {
			return value.Value{}, NewSpanError(e.Span(), OverflowError{Op: e.Op.String()})
		}
		return value.NewInt64(result), nil

	case SubOp:
		result := a - b
		if (result < a) != (b > 0) {
			return value.Value{}, NewSpanError(e.Span(), OverflowError{Op: e.Op.String()})
		}
		return value.NewInt64(result), nil

	case MulOp:
		if a != 0 && b != 0 {
			// MinInt64 * -1 wraps back to MinInt64, fooling the division check
			if (a == math.MinInt64 && b == -1) || (b == math.MinInt64 && a == -1) {
				return value.Value{}, NewSpanError(e.Span(), OverflowError{Op: e.Op.String()})
			}
			result := a * b
			if result/b != a {
				return value.Value{}, NewSpanError(e.Span(), OverflowError{Op: e.Op.String()})
			}
			return value.NewInt64(result), nil
		}
		return value.NewInt64(0), nil

	case DivOp:
		if b == 0 {
			return value.Value{}, NewSpanError(e.Span(), DivisionByZeroError{})
		}
		if a == math.MinInt64 && b == -1 {
			return value.Value{}, NewSpanError(e.Span(), OverflowError{Op: e.Op.String()})
		}
		return value.NewInt64(a / b), nil

	case ModOp:
		if b == 0 {
			return value.Value{}, NewSpanError(e.Span(), DivisionByZeroError{})
		}
		if a == math.MinInt64 && b == -1 {
			return value.NewInt64(0), nil
		}
		return value.NewInt64(a % b), nil

	default:
		panic(fmt.Sprintf("Unknown arithmetic op '%s'", e.Op))
	}
}

func toCheckedInt64(e *BinaryExpr, n value.Number) (int64, error) {
	if n.IsUint() {
		unsigned := n.ToUint64()
		if unsigned > math.MaxInt64 {
			return 0, NewSpanError(e.Span(), OverflowError{Op: e.Op.String()})
		}
		return int64(unsigned), nil
	}
	return n.ToInt64(), nil
}

// truthy: null and false are false; numbers are true iff non-zero;
// strings and containers are true iff non-empty.
func truthy(v value.Value) bool {
	switch {
	case v.IsNull():
		return false
	case v.IsBool():
		return v.AsBool()
	case v.IsNumber():
		return !v.AsNumber().IsZero()
	case v.IsString():
		return v.AsString() != ""
	default:
		return !v.AsObject().IsEmpty()
	}
}
