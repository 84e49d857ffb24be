// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"carvel.dev/ett/pkg/source"
)

// Template is an immutable parsed template. It may be rendered any number
// of times, concurrently, against different scopes.
type Template struct {
	src   *source.Source
	nodes []Node
}

// Parse parses template source. The name identifies the source in spans
// and error output.
func Parse(name, contents string) (*Template, error) {
	src := source.NewSource(name, contents)
	nodes, err := NewParser(src).Parse()
	if err != nil {
		return nil, err
	}
	return &Template{src: src, nodes: nodes}, nil
}

func (t *Template) Source() *source.Source { return t.src }

func (t *Template) Nodes() []Node { return t.nodes }

// Render walks the template against a scope and returns the produced
// text. The first evaluation error aborts the render.
func (t *Template) Render(scope *Scope) (string, error) {
	r := renderer{}
	err := r.renderNodes(t.nodes, scope)
	if err != nil {
		return "", err
	}
	return r.out.String(), nil
}
