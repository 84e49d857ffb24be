// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"fmt"

	"carvel.dev/ett/pkg/source"
	"carvel.dev/ett/pkg/value"
)

type TokenKind int

const (
	// text mode
	TextToken TokenKind = iota
	InterpOpenToken
	BlockCloseToken
	AtIfToken
	AtElseToken
	AtForToken
	AtMatchToken
	AtIncludeToken

	// expression mode
	InterpCloseToken
	IdentToken
	IntToken
	FloatToken
	StringToken
	TrueToken
	FalseToken
	NullToken
	PlusToken
	MinusToken
	StarToken
	SlashToken
	PercentToken
	EqToken
	NotEqToken
	LessToken
	LessEqToken
	GreaterToken
	GreaterEqToken
	AndToken
	OrToken
	BangToken
	LParenToken
	RParenToken
	LBracketToken
	RBracketToken
	LBraceToken
	RBraceToken
	DotToken
	CommaToken
	PipeToken
	ColonToken
	SemiToken
	FatArrowToken

	EOFToken
)

func (k TokenKind) String() string {
	switch k {
	case TextToken:
		return "text"
	case InterpOpenToken:
		return "'{{'"
	case BlockCloseToken:
		return "'}'"
	case AtIfToken:
		return "'@if'"
	case AtElseToken:
		return "'@else'"
	case AtForToken:
		return "'@for'"
	case AtMatchToken:
		return "'@match'"
	case AtIncludeToken:
		return "'@include'"
	case InterpCloseToken:
		return "'}}'"
	case IdentToken:
		return "identifier"
	case IntToken:
		return "integer"
	case FloatToken:
		return "float"
	case StringToken:
		return "string"
	case TrueToken:
		return "'true'"
	case FalseToken:
		return "'false'"
	case NullToken:
		return "'null'"
	case PlusToken:
		return "'+'"
	case MinusToken:
		return "'-'"
	case StarToken:
		return "'*'"
	case SlashToken:
		return "'/'"
	case PercentToken:
		return "'%'"
	case EqToken:
		return "'=='"
	case NotEqToken:
		return "'!='"
	case LessToken:
		return "'<'"
	case LessEqToken:
		return "'<='"
	case GreaterToken:
		return "'>'"
	case GreaterEqToken:
		return "'>='"
	case AndToken:
		return "'&&'"
	case OrToken:
		return "'||'"
	case BangToken:
		return "'!'"
	case LParenToken:
		return "'('"
	case RParenToken:
		return "')'"
	case LBracketToken:
		return "'['"
	case RBracketToken:
		return "']'"
	case LBraceToken:
		return "'{'"
	case RBraceToken:
		return "'}'"
	case DotToken:
		return "'.'"
	case CommaToken:
		return "','"
	case PipeToken:
		return "'|'"
	case ColonToken:
		return "':'"
	case SemiToken:
		return "';'"
	case FatArrowToken:
		return "'=>'"
	case EOFToken:
		return "end of template"
	default:
		panic(fmt.Sprintf("Unknown token kind %d", int(k)))
	}
}

// Token is one lexeme with its source range. Literal tokens carry their
// decoded value; Text and Ident tokens carry their (unescaped) text.
type Token struct {
	Kind TokenKind
	Text string
	Lit  value.Value
	Span source.Span
}
