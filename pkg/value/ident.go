// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"strconv"
)

// Ident names a struct field (by key) or an array element (by index). The
// two flavors never compare equal, even when their display forms match.
type Ident struct {
	key     string
	index   int
	isIndex bool
}

func NewKey(key string) Ident {
	return Ident{key: key}
}

func NewIndex(index int) Ident {
	return Ident{index: index, isIndex: true}
}

// ParseIdent reads a purely-numeric string as an index; anything else is a
// key.
func ParseIdent(s string) Ident {
	if len(s) > 0 {
		if i, err := strconv.Atoi(s); err == nil && i >= 0 {
			return NewIndex(i)
		}
	}
	return NewKey(s)
}

func (i Ident) IsKey() bool { return !i.isIndex }

func (i Ident) IsIndex() bool { return i.isIndex }

func (i Ident) Key() string {
	if i.isIndex {
		panic("expected Key, received Index")
	}
	return i.key
}

func (i Ident) Index() int {
	if !i.isIndex {
		panic("expected Index, received Key")
	}
	return i.index
}

func (i Ident) String() string {
	if i.isIndex {
		return strconv.Itoa(i.index)
	}
	return i.key
}
