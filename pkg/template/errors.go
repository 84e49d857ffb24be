// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"fmt"

	"carvel.dev/ett/pkg/source"
)

// EvalError is any runtime template failure. Kind is a stable name used
// in textual rendering and assertions (e.g. "UndefinedVariable").
type EvalError interface {
	error
	Kind() string
}

// SpanError attaches a source range to an inner error. Spans nest as the
// error propagates outward; the outermost span is the user-visible range.
type SpanError struct {
	span  source.Span
	inner error
}

func NewSpanError(span source.Span, inner error) *SpanError {
	return &SpanError{span: span, inner: inner}
}

func (e *SpanError) Span() source.Span { return e.span }

func (e *SpanError) Unwrap() error { return e.inner }

// Inner unwraps arbitrarily many nested spans to reach the leaf error.
func Inner(err error) error {
	for {
		spanErr, ok := err.(*SpanError)
		if !ok {
			return err
		}
		err = spanErr.inner
	}
}

func (e *SpanError) Error() string {
	return fmt.Sprintf("eval error at %s: %s", e.span, Inner(e.inner).Error())
}

type UndefinedVariableError struct{ Name string }

func (e UndefinedVariableError) Kind() string { return "UndefinedVariable" }
func (e UndefinedVariableError) Error() string {
	return fmt.Sprintf("undefined variable '%s'", e.Name)
}

type UndefinedPipeError struct{ Name string }

func (e UndefinedPipeError) Kind() string { return "UndefinedPipe" }
func (e UndefinedPipeError) Error() string {
	return fmt.Sprintf("undefined pipe '%s'", e.Name)
}

type UndefinedFieldError struct{ Field string }

func (e UndefinedFieldError) Kind() string { return "UndefinedField" }
func (e UndefinedFieldError) Error() string {
	return fmt.Sprintf("undefined field '%s'", e.Field)
}

type UndefinedTemplateError struct{ Name string }

func (e UndefinedTemplateError) Kind() string { return "UndefinedTemplate" }
func (e UndefinedTemplateError) Error() string {
	return fmt.Sprintf("undefined template '%s'", e.Name)
}

type IndexOutOfBoundsError struct {
	Index int
	Len   int
}

func (e IndexOutOfBoundsError) Kind() string { return "IndexOutOfBounds" }
func (e IndexOutOfBoundsError) Error() string {
	return fmt.Sprintf("index %d out of bounds for length %d", e.Index, e.Len)
}

type TypeError struct{ Message string }

func (e TypeError) Kind() string  { return "TypeError" }
func (e TypeError) Error() string { return e.Message }

type DivisionByZeroError struct{}

func (e DivisionByZeroError) Kind() string  { return "DivisionByZero" }
func (e DivisionByZeroError) Error() string { return "division by zero" }

type OverflowError struct{ Op string }

func (e OverflowError) Kind() string { return "Overflow" }
func (e OverflowError) Error() string {
	return fmt.Sprintf("integer overflow in '%s'", e.Op)
}

type NotCallableError struct{ Name string }

func (e NotCallableError) Kind() string { return "NotCallable" }
func (e NotCallableError) Error() string {
	return fmt.Sprintf("'%s' is not callable", e.Name)
}

type NotIterableError struct{ TypeName string }

func (e NotIterableError) Kind() string { return "NotIterable" }
func (e NotIterableError) Error() string {
	return fmt.Sprintf("%s is not iterable", e.TypeName)
}

type InvalidIndexError struct{ Value string }

func (e InvalidIndexError) Kind() string { return "InvalidIndex" }
func (e InvalidIndexError) Error() string {
	return fmt.Sprintf("invalid index %s", e.Value)
}

type IncludeDepthError struct{ Depth int }

func (e IncludeDepthError) Kind() string { return "IncludeDepth" }
func (e IncludeDepthError) Error() string {
	return fmt.Sprintf("include depth exceeded %d", e.Depth)
}

// ParseError is a syntax failure with its source range.
type ParseError struct {
	Message string
	Span    source.Span
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %s: %s", e.Span, e.Message)
}

func newParseError(span source.Span, msg string, args ...interface{}) *ParseError {
	return &ParseError{Message: fmt.Sprintf(msg, args...), Span: span}
}
