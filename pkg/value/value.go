// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"fmt"
	"strings"

	"carvel.dev/ett/pkg/orderedmap"
)

type Kind int

const (
	NullKind Kind = iota
	BoolKind
	NumberValueKind
	StringKind
	ObjectValueKind
)

func (k Kind) String() string {
	switch k {
	case NullKind:
		return "Null"
	case BoolKind:
		return "Bool"
	case NumberValueKind:
		return "Number"
	case StringKind:
		return "String"
	case ObjectValueKind:
		return "Object"
	default:
		panic(fmt.Sprintf("Unknown value kind %d", int(k)))
	}
}

// AsValuer is anything that can present itself as a Value. Value itself,
// and the adapters produced by Reflect, implement it.
type AsValuer interface {
	AsValue() Value
}

// Value is a dynamically typed datum: null, a boolean, a width-preserving
// number, a string, or an object (struct, array, or tuple). The zero Value
// is Null. Values are immutable; copies share any contained object.
type Value struct {
	kind Kind
	b    bool
	num  Number
	str  string
	obj  Object
}

var _ AsValuer = Value{}

func NewNull() Value { return Value{kind: NullKind} }

func NewBool(b bool) Value { return Value{kind: BoolKind, b: b} }

func NewNumber(n Number) Value { return Value{kind: NumberValueKind, num: n} }

func NewInt8(v int8) Value    { return NewNumber(NumberFromInt8(v)) }
func NewInt16(v int16) Value  { return NewNumber(NumberFromInt16(v)) }
func NewInt32(v int32) Value  { return NewNumber(NumberFromInt32(v)) }
func NewInt64(v int64) Value  { return NewNumber(NumberFromInt64(v)) }
func NewUint8(v uint8) Value  { return NewNumber(NumberFromUint8(v)) }
func NewUint16(v uint16) Value { return NewNumber(NumberFromUint16(v)) }
func NewUint32(v uint32) Value { return NewNumber(NumberFromUint32(v)) }
func NewUint64(v uint64) Value { return NewNumber(NumberFromUint64(v)) }
func NewFloat32(v float32) Value { return NewNumber(NumberFromFloat32(v)) }
func NewFloat64(v float64) Value { return NewNumber(NumberFromFloat64(v)) }

func NewString(s string) Value { return Value{kind: StringKind, str: s} }

func NewObject(o Object) Value { return Value{kind: ObjectValueKind, obj: o} }

// NewStructMap builds a struct-object Value from an ordered map whose
// values are Values. The map is shared, not copied.
func NewStructMap(items *orderedmap.Map) Value {
	return NewObject(NewStructObject(structMap{items: items}))
}

func NewStruct(s Struct) Value { return NewObject(NewStructObject(s)) }

func NewArray(items []Value) Value {
	return NewObject(NewArrayObject(sliceArray(items)))
}

func NewTuple(items ...Value) Value {
	return NewObject(NewTupleObject(tupleValues(items)))
}

func (v Value) AsValue() Value { return v }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool   { return v.kind == NullKind }
func (v Value) IsBool() bool   { return v.kind == BoolKind }
func (v Value) IsNumber() bool { return v.kind == NumberValueKind }
func (v Value) IsString() bool { return v.kind == StringKind }
func (v Value) IsObject() bool { return v.kind == ObjectValueKind }

func (v Value) IsInt() bool   { return v.kind == NumberValueKind && v.num.IsInt() }
func (v Value) IsUint() bool  { return v.kind == NumberValueKind && v.num.IsUint() }
func (v Value) IsFloat() bool { return v.kind == NumberValueKind && v.num.IsFloat() }

func (v Value) IsStruct() bool { return v.kind == ObjectValueKind && v.obj.IsStruct() }
func (v Value) IsArray() bool  { return v.kind == ObjectValueKind && v.obj.IsArray() }
func (v Value) IsTuple() bool  { return v.kind == ObjectValueKind && v.obj.IsTuple() }

func (v Value) AsBool() bool {
	if v.kind != BoolKind {
		panic(fmt.Sprintf("expected Bool, received %s", v.TypeName()))
	}
	return v.b
}

func (v Value) AsNumber() Number {
	if v.kind != NumberValueKind {
		panic(fmt.Sprintf("expected Number, received %s", v.TypeName()))
	}
	return v.num
}

func (v Value) AsString() string {
	if v.kind != StringKind {
		panic(fmt.Sprintf("expected String, received %s", v.TypeName()))
	}
	return v.str
}

func (v Value) AsObject() Object {
	if v.kind != ObjectValueKind {
		panic(fmt.Sprintf("expected Object, received %s", v.TypeName()))
	}
	return v.obj
}

func (v Value) AsStruct() Struct {
	if v.kind != ObjectValueKind || !v.obj.IsStruct() {
		panic(fmt.Sprintf("expected Struct, received %s", v.TypeName()))
	}
	return v.obj.AsStruct()
}

func (v Value) AsArray() Array {
	if v.kind != ObjectValueKind || !v.obj.IsArray() {
		panic(fmt.Sprintf("expected Array, received %s", v.TypeName()))
	}
	return v.obj.AsArray()
}

func (v Value) AsTuple() Tuple {
	if v.kind != ObjectValueKind || !v.obj.IsTuple() {
		panic(fmt.Sprintf("expected Tuple, received %s", v.TypeName()))
	}
	return v.obj.AsTuple()
}

// TypeName reports a human-oriented type name: "Null", "Bool", the number
// kind (e.g. "Int32"), "String", or the object's own name.
func (v Value) TypeName() string {
	switch v.kind {
	case NumberValueKind:
		return v.num.Kind().String()
	case ObjectValueKind:
		return v.obj.Name()
	default:
		return v.kind.String()
	}
}

// Equal reports deep structural equality. Numbers compare by numeric value
// with promotion across widths; floats use a total order, so NaN equals NaN.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case NullKind:
		return true
	case BoolKind:
		return v.b == other.b
	case NumberValueKind:
		return v.num.Equal(other.num)
	case StringKind:
		return v.str == other.str
	case ObjectValueKind:
		return v.obj.Equal(other.obj)
	default:
		panic(fmt.Sprintf("Unknown value kind %d", int(v.kind)))
	}
}

// Compare orders two Values when a meaningful order exists: numbers
// numerically (mixed families promoted to float64), strings
// lexicographically, bools with false before true. The second result
// reports whether the operands were comparable; mixed kinds are not, and
// NaN is incomparable with every number including itself.
func (v Value) Compare(other Value) (int, bool) {
	switch {
	case v.kind == NumberValueKind && other.kind == NumberValueKind:
		lf, rf := v.num.ToFloat64(), other.num.ToFloat64()
		if lf != lf || rf != rf {
			return 0, false
		}
		return v.num.Compare(other.num), true
	case v.kind == StringKind && other.kind == StringKind:
		l, r := v.str, other.str
		switch {
		case l < r:
			return -1, true
		case l > r:
			return 1, true
		default:
			return 0, true
		}
	case v.kind == BoolKind && other.kind == BoolKind:
		switch {
		case v.b == other.b:
			return 0, true
		case !v.b:
			return -1, true
		default:
			return 1, true
		}
	default:
		return 0, false
	}
}

// String renders the canonical display form: `<null>`, `true`/`false`,
// canonical decimals, the raw string contents, `[a, b]`, `{k: v}`, `(a, b)`.
func (v Value) String() string {
	switch v.kind {
	case NullKind:
		return "<null>"
	case BoolKind:
		if v.b {
			return "true"
		}
		return "false"
	case NumberValueKind:
		return v.num.String()
	case StringKind:
		return v.str
	case ObjectValueKind:
		return v.obj.String()
	default:
		panic(fmt.Sprintf("Unknown value kind %d", int(v.kind)))
	}
}

func (o Object) String() string {
	var sb strings.Builder
	switch o.kind {
	case StructObject:
		sb.WriteString("{")
		first := true
		o.s.Iterate(func(id Ident, item AsValuer) {
			if !first {
				sb.WriteString(", ")
			}
			first = false
			sb.WriteString(id.String())
			sb.WriteString(": ")
			sb.WriteString(item.AsValue().String())
		})
		sb.WriteString("}")
	case ArrayObject:
		sb.WriteString("[")
		writeItems(&sb, o.a)
		sb.WriteString("]")
	case TupleObject:
		sb.WriteString("(")
		writeItems(&sb, o.a)
		sb.WriteString(")")
	}
	return sb.String()
}

func writeItems(sb *strings.Builder, a Array) {
	first := true
	a.Iterate(func(item AsValuer) {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteString(item.AsValue().String())
	})
}
