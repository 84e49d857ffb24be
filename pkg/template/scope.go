// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"fmt"

	"carvel.dev/ett/pkg/value"
)

// Pipe transforms a value inside an expression: `value | name: arg`.
type Pipe interface {
	Invoke(this value.Value, args []value.Value) (value.Value, error)
}

// PipeFunc adapts a plain function to the Pipe interface.
type PipeFunc func(this value.Value, args []value.Value) (value.Value, error)

func (f PipeFunc) Invoke(this value.Value, args []value.Value) (value.Value, error) {
	return f(this, args)
}

// Func is a callable applied with call syntax: `name(args)`.
type Func interface {
	Invoke(args []value.Value) (value.Value, error)
}

// FuncFunc adapts a plain function to the Func interface.
type FuncFunc func(args []value.Value) (value.Value, error)

func (f FuncFunc) Invoke(args []value.Value) (value.Value, error) {
	return f(args)
}

// Scope is the rendering environment: variables, pipes, functions, and
// named sub-templates. Scopes clone cheaply; callables and templates are
// shared between clones, variable bindings are not.
type Scope struct {
	vars      map[string]value.Value
	pipes     map[string]Pipe
	funcs     map[string]Func
	templates map[string]*Template
}

func NewScope() *Scope {
	return &Scope{
		vars:      map[string]value.Value{},
		pipes:     map[string]Pipe{},
		funcs:     map[string]Func{},
		templates: map[string]*Template{},
	}
}

// Clone copies the scope. Extending the clone never affects the original.
func (s *Scope) Clone() *Scope {
	result := NewScope()
	for name, v := range s.vars {
		result.vars[name] = v
	}
	for name, p := range s.pipes {
		result.pipes[name] = p
	}
	for name, f := range s.funcs {
		result.funcs[name] = f
	}
	for name, t := range s.templates {
		result.templates[name] = t
	}
	return result
}

func (s *Scope) Var(name string) (value.Value, bool) {
	v, found := s.vars[name]
	return v, found
}

func (s *Scope) SetVar(name string, v value.Value) *Scope {
	s.vars[name] = v
	return s
}

func (s *Scope) Pipe(name string) (Pipe, bool) {
	p, found := s.pipes[name]
	return p, found
}

func (s *Scope) SetPipe(name string, p Pipe) *Scope {
	s.pipes[name] = p
	return s
}

func (s *Scope) Func(name string) (Func, bool) {
	f, found := s.funcs[name]
	return f, found
}

func (s *Scope) SetFunc(name string, f Func) *Scope {
	s.funcs[name] = f
	return s
}

func (s *Scope) Template(name string) (*Template, bool) {
	t, found := s.templates[name]
	return t, found
}

func (s *Scope) SetTemplate(name string, t *Template) *Scope {
	s.templates[name] = t
	return s
}

// Render renders the named sub-template against this scope. A missing
// name is a programmer error.
func (s *Scope) Render(name string) (string, error) {
	t, found := s.templates[name]
	if !found {
		panic(fmt.Sprintf("Expected to find template '%s' in scope", name))
	}
	return t.Render(s)
}
