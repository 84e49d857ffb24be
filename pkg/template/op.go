// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import "fmt"

type BinaryOp int

const (
	OrOp BinaryOp = iota
	AndOp
	EqOp
	NotEqOp
	LessOp
	LessEqOp
	GreaterOp
	GreaterEqOp
	AddOp
	SubOp
	MulOp
	DivOp
	ModOp
)

// Precedence returns the Pratt binding power. All binary operators are
// left-associative, so the right-hand side binds one level tighter.
func (op BinaryOp) Precedence() int {
	switch op {
	case OrOp:
		return 1
	case AndOp:
		return 3
	case EqOp, NotEqOp:
		return 5
	case LessOp, LessEqOp, GreaterOp, GreaterEqOp:
		return 7
	case AddOp, SubOp:
		return 9
	case MulOp, DivOp, ModOp:
		return 11
	default:
		panic(fmt.Sprintf("Unknown binary op %d", int(op)))
	}
}

func (op BinaryOp) String() string {
	switch op {
	case OrOp:
		return "||"
	case AndOp:
		return "&&"
	case EqOp:
		return "=="
	case NotEqOp:
		return "!="
	case LessOp:
		return "<"
	case LessEqOp:
		return "<="
	case GreaterOp:
		return ">"
	case GreaterEqOp:
		return ">="
	case AddOp:
		return "+"
	case SubOp:
		return "-"
	case MulOp:
		return "*"
	case DivOp:
		return "/"
	case ModOp:
		return "%"
	default:
		panic(fmt.Sprintf("Unknown binary op %d", int(op)))
	}
}

// binaryOpForToken maps expression tokens to binary operators.
func binaryOpForToken(kind TokenKind) (BinaryOp, bool) {
	switch kind {
	case OrToken:
		return OrOp, true
	case AndToken:
		return AndOp, true
	case EqToken:
		return EqOp, true
	case NotEqToken:
		return NotEqOp, true
	case LessToken:
		return LessOp, true
	case LessEqToken:
		return LessEqOp, true
	case GreaterToken:
		return GreaterOp, true
	case GreaterEqToken:
		return GreaterEqOp, true
	case PlusToken:
		return AddOp, true
	case MinusToken:
		return SubOp, true
	case StarToken:
		return MulOp, true
	case SlashToken:
		return DivOp, true
	case PercentToken:
		return ModOp, true
	}
	return 0, false
}

type UnaryOp int

const (
	NotOp UnaryOp = iota
	NegOp
)

func (op UnaryOp) String() string {
	switch op {
	case NotOp:
		return "!"
	case NegOp:
		return "-"
	default:
		panic(fmt.Sprintf("Unknown unary op %d", int(op)))
	}
}
