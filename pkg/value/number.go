// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"fmt"
	"math"
	"strconv"
)

// NumberKind records the originating numeric width of a Number.
type NumberKind int

const (
	Int8Kind NumberKind = iota
	Int16Kind
	Int32Kind
	Int64Kind
	Uint8Kind
	Uint16Kind
	Uint32Kind
	Uint64Kind
	Float32Kind
	Float64Kind
)

func (k NumberKind) String() string {
	switch k {
	case Int8Kind:
		return "int8"
	case Int16Kind:
		return "int16"
	case Int32Kind:
		return "int32"
	case Int64Kind:
		return "int64"
	case Uint8Kind:
		return "uint8"
	case Uint16Kind:
		return "uint16"
	case Uint32Kind:
		return "uint32"
	case Uint64Kind:
		return "uint64"
	case Float32Kind:
		return "float32"
	case Float64Kind:
		return "float64"
	default:
		panic(fmt.Sprintf("unknown number kind %d", int(k)))
	}
}

// Number is a width-preserving numeric payload. Numbers of different widths
// compare equal when their promoted float64 values are equal; floats use
// total-order semantics so NaN equals NaN.
type Number struct {
	kind NumberKind
	i    int64
	u    uint64
	f    float64
}

func NumberFromInt8(v int8) Number   { return Number{kind: Int8Kind, i: int64(v)} }
func NumberFromInt16(v int16) Number { return Number{kind: Int16Kind, i: int64(v)} }
func NumberFromInt32(v int32) Number { return Number{kind: Int32Kind, i: int64(v)} }
func NumberFromInt64(v int64) Number { return Number{kind: Int64Kind, i: v} }

func NumberFromUint8(v uint8) Number   { return Number{kind: Uint8Kind, u: uint64(v)} }
func NumberFromUint16(v uint16) Number { return Number{kind: Uint16Kind, u: uint64(v)} }
func NumberFromUint32(v uint32) Number { return Number{kind: Uint32Kind, u: uint64(v)} }
func NumberFromUint64(v uint64) Number { return Number{kind: Uint64Kind, u: v} }

func NumberFromFloat32(v float32) Number { return Number{kind: Float32Kind, f: float64(v)} }
func NumberFromFloat64(v float64) Number { return Number{kind: Float64Kind, f: v} }

func (n Number) Kind() NumberKind { return n.kind }

func (n Number) IsInt() bool {
	return n.kind >= Int8Kind && n.kind <= Int64Kind
}

func (n Number) IsUint() bool {
	return n.kind >= Uint8Kind && n.kind <= Uint64Kind
}

func (n Number) IsFloat() bool {
	return n.kind == Float32Kind || n.kind == Float64Kind
}

// ToInt64 widens any signed integer. Panics for unsigned and float kinds.
func (n Number) ToInt64() int64 {
	if !n.IsInt() {
		panic(fmt.Sprintf("expected Int, received %s", n.kind))
	}
	return n.i
}

// ToUint64 widens any unsigned integer. Panics for signed and float kinds.
func (n Number) ToUint64() uint64 {
	if !n.IsUint() {
		panic(fmt.Sprintf("expected UInt, received %s", n.kind))
	}
	return n.u
}

// ToFloat64 promotes any numeric width to float64.
func (n Number) ToFloat64() float64 {
	switch {
	case n.IsInt():
		return float64(n.i)
	case n.IsUint():
		return float64(n.u)
	default:
		return n.f
	}
}

func (n Number) Equal(other Number) bool {
	switch {
	case n.IsInt() && other.IsInt():
		return n.i == other.i
	case n.IsUint() && other.IsUint():
		return n.u == other.u
	default:
		return floatEq(n.ToFloat64(), other.ToFloat64())
	}
}

// Compare orders two Numbers numerically. Same-family comparisons use the
// raw representation; mixed families promote to float64. NaN sorts below
// every other float and equals itself.
func (n Number) Compare(other Number) int {
	switch {
	case n.IsInt() && other.IsInt():
		return compareOrdered(n.i, other.i)
	case n.IsUint() && other.IsUint():
		return compareOrdered(n.u, other.u)
	default:
		a, b := n.ToFloat64(), other.ToFloat64()
		if floatEq(a, b) {
			return 0
		}
		if math.IsNaN(a) {
			return -1
		}
		if math.IsNaN(b) {
			return 1
		}
		return compareOrdered(a, b)
	}
}

func compareOrdered[T int64 | uint64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// floatEq compares with total-order semantics: NaN equals NaN.
func floatEq(a, b float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	return a == b
}

func (n Number) IsZero() bool {
	switch {
	case n.IsInt():
		return n.i == 0
	case n.IsUint():
		return n.u == 0
	default:
		return n.f == 0
	}
}

func (n Number) String() string {
	switch {
	case n.IsInt():
		return strconv.FormatInt(n.i, 10)
	case n.IsUint():
		return strconv.FormatUint(n.u, 10)
	case n.kind == Float32Kind:
		return strconv.FormatFloat(n.f, 'f', -1, 32)
	default:
		return strconv.FormatFloat(n.f, 'f', -1, 64)
	}
}
