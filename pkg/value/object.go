// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"fmt"
	"reflect"

	"carvel.dev/ett/pkg/orderedmap"
)

// Struct is the capability set of a named-field container. Implementations
// must be immutable once published; instances are shared by reference.
type Struct interface {
	Name() string
	Type() reflect.Type
	Len() int
	Iterate(func(Ident, AsValuer))
	Field(Ident) (AsValuer, bool)
}

// Array is the capability set of an index-addressed container.
type Array interface {
	Name() string
	Type() reflect.Type
	Len() int
	Iterate(func(AsValuer))
	Index(int) (AsValuer, bool)
}

// Tuple is a fixed-arity positional container. It carries the Array
// capabilities under a distinct tag ("TupleN").
type Tuple interface {
	Array
}

type ObjectKind int

const (
	StructObject ObjectKind = iota
	ArrayObject
	TupleObject
)

// Object is the container variant of a Value: a struct, array, or tuple
// behind a shared immutable reference.
type Object struct {
	kind ObjectKind
	s    Struct
	a    Array
}

func NewStructObject(s Struct) Object {
	return Object{kind: StructObject, s: s}
}

func NewArrayObject(a Array) Object {
	return Object{kind: ArrayObject, a: a}
}

func NewTupleObject(t Tuple) Object {
	return Object{kind: TupleObject, a: t}
}

func (o Object) Kind() ObjectKind { return o.kind }

func (o Object) IsStruct() bool { return o.kind == StructObject }
func (o Object) IsArray() bool  { return o.kind == ArrayObject }
func (o Object) IsTuple() bool  { return o.kind == TupleObject }

func (o Object) AsStruct() Struct {
	if o.kind != StructObject {
		panic(fmt.Sprintf("expected Struct, received %s", o.Name()))
	}
	return o.s
}

func (o Object) AsArray() Array {
	if o.kind != ArrayObject {
		panic(fmt.Sprintf("expected Array, received %s", o.Name()))
	}
	return o.a
}

func (o Object) AsTuple() Tuple {
	if o.kind != TupleObject {
		panic(fmt.Sprintf("expected Tuple, received %s", o.Name()))
	}
	return o.a
}

func (o Object) Name() string {
	if o.kind == StructObject {
		return o.s.Name()
	}
	return o.a.Name()
}

func (o Object) Type() reflect.Type {
	if o.kind == StructObject {
		return o.s.Type()
	}
	return o.a.Type()
}

func (o Object) Len() int {
	if o.kind == StructObject {
		return o.s.Len()
	}
	return o.a.Len()
}

func (o Object) IsEmpty() bool { return o.Len() == 0 }

func (o Object) Equal(other Object) bool {
	if o.kind != other.kind {
		return false
	}
	if o.Len() != other.Len() {
		return false
	}
	if o.kind == StructObject {
		equal := true
		o.s.Iterate(func(id Ident, v AsValuer) {
			otherV, found := other.s.Field(id)
			if !found || !v.AsValue().Equal(otherV.AsValue()) {
				equal = false
			}
		})
		return equal
	}

	equal := true
	i := 0
	o.a.Iterate(func(v AsValuer) {
		otherV, found := other.a.Index(i)
		if !found || !v.AsValue().Equal(otherV.AsValue()) {
			equal = false
		}
		i++
	})
	return equal
}

// structMap adapts an ordered map of Values into the Struct capabilities.
type structMap struct {
	items *orderedmap.Map
}

var _ Struct = structMap{}

func (s structMap) Name() string { return "Struct" }

func (s structMap) Type() reflect.Type { return reflect.TypeOf(s.items) }

func (s structMap) Len() int { return s.items.Len() }

func (s structMap) Iterate(iterFunc func(Ident, AsValuer)) {
	s.items.Iterate(func(k string, v interface{}) {
		iterFunc(NewKey(k), v.(Value))
	})
}

func (s structMap) Field(id Ident) (AsValuer, bool) {
	v, found := s.items.Get(id.String())
	if !found {
		return nil, false
	}
	return v.(Value), true
}

// sliceArray adapts a slice of Values into the Array capabilities.
type sliceArray []Value

var _ Array = sliceArray{}

func (a sliceArray) Name() string { return "Array" }

func (a sliceArray) Type() reflect.Type { return reflect.TypeOf(a) }

func (a sliceArray) Len() int { return len(a) }

func (a sliceArray) Iterate(iterFunc func(AsValuer)) {
	for _, v := range a {
		iterFunc(v)
	}
}

func (a sliceArray) Index(i int) (AsValuer, bool) {
	if i < 0 || i >= len(a) {
		return nil, false
	}
	return a[i], true
}

// tupleValues adapts a fixed slice of Values into the Tuple capabilities.
type tupleValues []Value

var _ Tuple = tupleValues{}

func (t tupleValues) Name() string { return fmt.Sprintf("Tuple%d", len(t)) }

func (t tupleValues) Type() reflect.Type { return reflect.TypeOf(t) }

func (t tupleValues) Len() int { return len(t) }

func (t tupleValues) Iterate(iterFunc func(AsValuer)) {
	for _, v := range t {
		iterFunc(v)
	}
}

func (t tupleValues) Index(i int) (AsValuer, bool) {
	if i < 0 || i >= len(t) {
		return nil, false
	}
	return t[i], true
}
