// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"carvel.dev/ett/pkg/source"
	"carvel.dev/ett/pkg/value"
)

// Node is one template-level construct. Every node carries its source
// range.
type Node interface {
	Span() source.Span
}

type TextNode struct {
	Text string
	span source.Span
}

func (n *TextNode) Span() source.Span { return n.span }

type InterpNode struct {
	Expr Expr
	span source.Span
}

func (n *InterpNode) Span() source.Span { return n.span }

type IfBranch struct {
	Cond Expr
	Body []Node
}

type IfNode struct {
	Branches []IfBranch
	Else     []Node
	span     source.Span
}

func (n *IfNode) Span() source.Span { return n.span }

// ForNode iterates an array. Track is parsed and retained but the
// renderer does not consult it.
type ForNode struct {
	Binding  string
	Iterable Expr
	Track    Expr
	Body     []Node
	span     source.Span
}

func (n *ForNode) Span() source.Span { return n.span }

type MatchNodeArm struct {
	Pattern Expr
	Body    []Node
}

type MatchNode struct {
	Subject Expr
	Arms    []MatchNodeArm
	Default []Node
	span    source.Span
}

func (n *MatchNode) Span() source.Span { return n.span }

type IncludeNode struct {
	Name Expr
	span source.Span
}

func (n *IncludeNode) Span() source.Span { return n.span }

// Expr is one expression. Every expression carries its source range.
type Expr interface {
	Span() source.Span
}

type LiteralExpr struct {
	Value value.Value
	span  source.Span
}

func (e *LiteralExpr) Span() source.Span { return e.span }

type IdentExpr struct {
	Name string
	span source.Span
}

func (e *IdentExpr) Span() source.Span { return e.span }

type MemberExpr struct {
	Obj   Expr
	Field string
	span  source.Span
}

func (e *MemberExpr) Span() source.Span { return e.span }

type IndexExpr struct {
	Obj   Expr
	Index Expr
	span  source.Span
}

func (e *IndexExpr) Span() source.Span { return e.span }

// CallExpr applies a named function from the scope; the callee is always
// an identifier.
type CallExpr struct {
	Name string
	Args []Expr
	span source.Span
}

func (e *CallExpr) Span() source.Span { return e.span }

type PipeExpr struct {
	Value Expr
	Name  string
	Args  []Expr
	span  source.Span
}

func (e *PipeExpr) Span() source.Span { return e.span }

type BinaryExpr struct {
	Left  Expr
	Op    BinaryOp
	Right Expr
	span  source.Span
}

func (e *BinaryExpr) Span() source.Span { return e.span }

type UnaryExpr struct {
	Op      UnaryOp
	Operand Expr
	span    source.Span
}

func (e *UnaryExpr) Span() source.Span { return e.span }

type ArrayExpr struct {
	Items []Expr
	span  source.Span
}

func (e *ArrayExpr) Span() source.Span { return e.span }

type ObjectField struct {
	Key   string
	Value Expr
}

type ObjectExpr struct {
	Fields []ObjectField
	span   source.Span
}

func (e *ObjectExpr) Span() source.Span { return e.span }

type MatchExprArm struct {
	Pattern Expr
	Value   Expr
}

// MatchExpr is the expression form of @match: arms carry expression
// values instead of block bodies. A missing default yields Null.
type MatchExpr struct {
	Subject Expr
	Arms    []MatchExprArm
	Default Expr
	span    source.Span
}

func (e *MatchExpr) Span() source.Span { return e.span }
