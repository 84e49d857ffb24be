// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"fmt"
	"strings"
)

// ValidError describes one validation failure or an aggregate of several.
// Leaves carry the rule name and a message; aggregates carry children and
// an empty rule. Validation never fails any other way.
type ValidError struct {
	Rule    string
	Path    Path
	Message string
	Errors  []*ValidError
}

var _ error = &ValidError{}

func NewValidError(ctx Context, msg string, args ...interface{}) *ValidError {
	return &ValidError{Rule: ctx.Rule, Path: ctx.Path, Message: fmt.Sprintf(msg, args...)}
}

func newAggregateError(path Path, errs []*ValidError) *ValidError {
	return &ValidError{Path: path, Errors: errs}
}

// Count reports the number of leaf failures in the tree.
func (e *ValidError) Count() int {
	if len(e.Errors) == 0 {
		return 1
	}
	total := 0
	for _, child := range e.Errors {
		total += child.Count()
	}
	return total
}

// Error renders the tree indented, leaves as "rule at path: message".
func (e *ValidError) Error() string {
	var sb strings.Builder
	e.write(&sb, 0)
	return strings.TrimSuffix(sb.String(), "\n")
}

func (e *ValidError) write(sb *strings.Builder, indent int) {
	prefix := strings.Repeat("  ", indent)
	if len(e.Errors) == 0 {
		fmt.Fprintf(sb, "%s%s at %s: %s\n", prefix, e.Rule, e.Path, e.Message)
		return
	}
	fmt.Fprintf(sb, "%s%s is invalid:\n", prefix, e.Path)
	for _, child := range e.Errors {
		child.write(sb, indent+1)
	}
}
