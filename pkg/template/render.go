// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"fmt"
	"strings"

	"carvel.dev/ett/pkg/value"
)

// maxIncludeDepth bounds @include nesting so recursive templates fail
// instead of looping.
const maxIncludeDepth = 64

type renderer struct {
	out   strings.Builder
	depth int
}

func (r *renderer) renderNodes(nodes []Node, scope *Scope) error {
	for _, node := range nodes {
		err := r.renderNode(node, scope)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) renderNode(node Node, scope *Scope) error {
	switch typedNode := node.(type) {
	case *TextNode:
		r.out.WriteString(typedNode.Text)
		return nil

	case *InterpNode:
		v, err := evalExpr(typedNode.Expr, scope)
		if err != nil {
			return NewSpanError(node.Span(), err)
		}
		r.out.WriteString(v.String())
		return nil

	case *IfNode:
		for _, branch := range typedNode.Branches {
			cond, err := evalExpr(branch.Cond, scope)
			if err != nil {
				return NewSpanError(node.Span(), err)
			}
			if truthy(cond) {
				return r.renderNodes(branch.Body, scope)
			}
		}
		return r.renderNodes(typedNode.Else, scope)

	case *ForNode:
		return r.renderFor(typedNode, scope)

	case *MatchNode:
		subject, err := evalExpr(typedNode.Subject, scope)
		if err != nil {
			return NewSpanError(node.Span(), err)
		}
		for _, arm := range typedNode.Arms {
			pattern, err := evalExpr(arm.Pattern, scope)
			if err != nil {
				return NewSpanError(node.Span(), err)
			}
			if subject.Equal(pattern) {
				return r.renderNodes(arm.Body, scope)
			}
		}
		return r.renderNodes(typedNode.Default, scope)

	case *IncludeNode:
		return r.renderInclude(typedNode, scope)

	default:
		panic(fmt.Sprintf("Unknown node %T", node))
	}
}

func (r *renderer) renderFor(node *ForNode, scope *Scope) error {
	iterable, err := evalExpr(node.Iterable, scope)
	if err != nil {
		return NewSpanError(node.Span(), err)
	}
	if !iterable.IsArray() {
		return NewSpanError(node.Span(), NotIterableError{TypeName: iterable.TypeName()})
	}

	// the binding extends a clone; the caller's scope never sees it
	var iterErr error
	iterable.AsArray().Iterate(func(item value.AsValuer) {
		if iterErr != nil {
			return
		}
		iterScope := scope.Clone().SetVar(node.Binding, item.AsValue())
		iterErr = r.renderNodes(node.Body, iterScope)
	})
	return iterErr
}

func (r *renderer) renderInclude(node *IncludeNode, scope *Scope) error {
	name, err := evalExpr(node.Name, scope)
	if err != nil {
		return NewSpanError(node.Span(), err)
	}
	if !name.IsString() {
		return NewSpanError(node.Span(),
			TypeError{Message: fmt.Sprintf("expected a string template name, found %s", name.TypeName())})
	}

	included, found := scope.Template(name.AsString())
	if !found {
		return NewSpanError(node.Span(), UndefinedTemplateError{Name: name.AsString()})
	}

	if r.depth+1 > maxIncludeDepth {
		return NewSpanError(node.Span(), IncludeDepthError{Depth: maxIncludeDepth})
	}
	r.depth++
	err = r.renderNodes(included.Nodes(), scope)
	r.depth--
	return err
}
