// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package orderedmap

import (
	"encoding/json"
)

type Map struct {
	items []MapItem
}

type MapItem struct {
	Key   string
	Value interface{}
}

func NewMap() *Map {
	return &Map{}
}

func NewMapWithItems(items []MapItem) *Map {
	return &Map{items}
}

func (m *Map) Set(key string, value interface{}) {
	for i, item := range m.items {
		if item.Key == key {
			item.Value = value
			m.items[i] = item
			return
		}
	}
	m.items = append(m.items, MapItem{key, value})
}

func (m *Map) Get(key string) (interface{}, bool) {
	for _, item := range m.items {
		if item.Key == key {
			return item.Value, true
		}
	}
	return nil, false
}

func (m *Map) Delete(key string) bool {
	for i, item := range m.items {
		if item.Key == key {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return true
		}
	}
	return false
}

func (m *Map) Keys() (keys []string) {
	m.Iterate(func(k string, _ interface{}) {
		keys = append(keys, k)
	})
	return
}

func (m *Map) Iterate(iterFunc func(k string, v interface{})) {
	for _, item := range m.items {
		iterFunc(item.Key, item.Value)
	}
}

func (m *Map) IterateErr(iterFunc func(k string, v interface{}) error) error {
	for _, item := range m.items {
		err := iterFunc(item.Key, item.Value)
		if err != nil {
			return err
		}
	}
	return nil
}

func (m *Map) Len() int { return len(m.items) }

// Copy returns a shallow copy; values are shared.
func (m *Map) Copy() *Map {
	items := make([]MapItem, len(m.items))
	copy(items, m.items)
	return &Map{items}
}

// Below methods disallow marshaling of Map directly
var _ []json.Marshaler = []json.Marshaler{&Map{}}

func (*Map) MarshalJSON() ([]byte, error) { panic("Unexpected marshaling of *orderedmap.Map") }
