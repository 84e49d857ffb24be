// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"strings"

	"carvel.dev/ett/pkg/value"
)

// Path locates a value within the document being validated: a sequence of
// field keys and array indices from the root. Paths are immutable; Child
// returns an extended copy.
type Path struct {
	segments []value.Ident
}

func RootPath() Path { return Path{} }

func (p Path) Child(id value.Ident) Path {
	segments := make([]value.Ident, 0, len(p.segments)+1)
	segments = append(segments, p.segments...)
	return Path{segments: append(segments, id)}
}

func (p Path) ChildKey(key string) Path { return p.Child(value.NewKey(key)) }

func (p Path) ChildIndex(i int) Path { return p.Child(value.NewIndex(i)) }

func (p Path) IsRoot() bool { return len(p.segments) == 0 }

func (p Path) Segments() []value.Ident { return p.segments }

// String renders the path slash-joined; the root renders as ".".
func (p Path) String() string {
	if p.IsRoot() {
		return "."
	}
	parts := make([]string, 0, len(p.segments))
	for _, seg := range p.segments {
		parts = append(parts, seg.String())
	}
	return strings.Join(parts, "/")
}

// Context carries what a rule needs to judge a value: the rule's own name,
// the path being validated, and the value at that path.
type Context struct {
	Rule  string
	Path  Path
	Value value.Value
}

func (c Context) WithRule(rule string) Context {
	c.Rule = rule
	return c
}

func (c Context) WithValue(v value.Value) Context {
	c.Value = v
	return c
}

func (c Context) ChildKey(key string, v value.Value) Context {
	return Context{Path: c.Path.ChildKey(key), Value: v}
}

func (c Context) ChildIndex(i int, v value.Value) Context {
	return Context{Path: c.Path.ChildIndex(i), Value: v}
}
