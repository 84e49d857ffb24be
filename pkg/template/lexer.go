// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"strconv"
	"strings"

	"carvel.dev/ett/pkg/source"
	"carvel.dev/ett/pkg/value"
)

// Lexer produces tokens in two modes. Text mode emits literal text runs,
// '{{', directive keywords, and block terminators; expression mode emits
// literals, identifiers, operators, and punctuation. The parser chooses
// the mode and maintains the block depth that makes '}' a terminator
// inside directive bodies.
type Lexer struct {
	src      *source.Source
	contents string
	pos      int

	blockDepth  int // open directive bodies
	objectDepth int // open brace structures within the current expression
}

func NewLexer(src *source.Source) *Lexer {
	return &Lexer{src: src, contents: src.Contents()}
}

func (l *Lexer) EnterBlock() { l.blockDepth++ }

func (l *Lexer) ExitBlock() { l.blockDepth-- }

// EnterObject marks an open object literal or match body, during which a
// leading '}' closes that structure instead of an interpolation.
func (l *Lexer) EnterObject() { l.objectDepth++ }

func (l *Lexer) ExitObject() { l.objectDepth-- }

func (l *Lexer) span(start int) source.Span {
	return source.NewSpan(start, l.pos, l.src)
}

func (l *Lexer) token(kind TokenKind, start int) Token {
	return Token{Kind: kind, Text: l.contents[start:l.pos], Span: l.span(start)}
}

var textKeywords = []struct {
	word string
	kind TokenKind
}{
	{"include", AtIncludeToken},
	{"match", AtMatchToken},
	{"else", AtElseToken},
	{"for", AtForToken},
	{"if", AtIfToken},
}

// atKeyword reports the directive keyword at the current position, if any.
// '@' starts a keyword only when immediately followed by a recognized word
// that is not continued by an identifier character.
func (l *Lexer) atKeyword() (TokenKind, int) {
	if l.pos >= len(l.contents) || l.contents[l.pos] != '@' {
		return 0, 0
	}
	rest := l.contents[l.pos+1:]
	for _, kw := range textKeywords {
		if !strings.HasPrefix(rest, kw.word) {
			continue
		}
		if len(rest) > len(kw.word) && isIdentChar(rest[len(kw.word)]) {
			continue
		}
		return kw.kind, 1 + len(kw.word)
	}
	return 0, 0
}

// NextTextToken scans in text mode.
func (l *Lexer) NextTextToken() (Token, error) {
	start := l.pos
	if l.pos >= len(l.contents) {
		return l.token(EOFToken, start), nil
	}

	if strings.HasPrefix(l.contents[l.pos:], "{{") {
		l.pos += 2
		return l.token(InterpOpenToken, start), nil
	}
	if l.contents[l.pos] == '}' && l.blockDepth > 0 {
		l.pos++
		return l.token(BlockCloseToken, start), nil
	}
	if kind, n := l.atKeyword(); n > 0 {
		l.pos += n
		return l.token(kind, start), nil
	}

	for l.pos < len(l.contents) {
		if strings.HasPrefix(l.contents[l.pos:], "{{") {
			break
		}
		if l.contents[l.pos] == '}' && l.blockDepth > 0 {
			break
		}
		if _, n := l.atKeyword(); n > 0 {
			break
		}
		l.pos++
	}
	return l.token(TextToken, start), nil
}

// NextExprToken scans in expression mode.
func (l *Lexer) NextExprToken() (Token, error) {
	for l.pos < len(l.contents) && isSpace(l.contents[l.pos]) {
		l.pos++
	}
	start := l.pos
	if l.pos >= len(l.contents) {
		return l.token(EOFToken, start), nil
	}

	if l.objectDepth == 0 && strings.HasPrefix(l.contents[l.pos:], "}}") {
		l.pos += 2
		return l.token(InterpCloseToken, start), nil
	}

	if kind, found := l.twoCharOp(); found {
		l.pos += 2
		return l.token(kind, start), nil
	}

	ch := l.contents[l.pos]
	switch {
	case ch == '@':
		if kind, n := l.atKeyword(); n > 0 && kind == AtMatchToken {
			l.pos += n
			return l.token(kind, start), nil
		}
		return Token{}, newParseError(source.NewSpan(start, start+1, l.src), "unexpected '@'")

	case ch >= '0' && ch <= '9':
		return l.scanNumber()

	case ch == '\'' || ch == '"':
		return l.scanString()

	case isIdentStart(ch):
		for l.pos < len(l.contents) && isIdentChar(l.contents[l.pos]) {
			l.pos++
		}
		tok := l.token(IdentToken, start)
		switch tok.Text {
		case "true":
			tok.Kind, tok.Lit = TrueToken, value.NewBool(true)
		case "false":
			tok.Kind, tok.Lit = FalseToken, value.NewBool(false)
		case "null":
			tok.Kind, tok.Lit = NullToken, value.NewNull()
		}
		return tok, nil
	}

	if kind, found := oneCharOps[ch]; found {
		l.pos++
		return l.token(kind, start), nil
	}

	return Token{}, newParseError(source.NewSpan(start, start+1, l.src),
		"unexpected character %q", rune(ch))
}

func (l *Lexer) twoCharOp() (TokenKind, bool) {
	if l.pos+2 > len(l.contents) {
		return 0, false
	}
	switch l.contents[l.pos : l.pos+2] {
	case "==":
		return EqToken, true
	case "!=":
		return NotEqToken, true
	case "<=":
		return LessEqToken, true
	case ">=":
		return GreaterEqToken, true
	case "&&":
		return AndToken, true
	case "||":
		return OrToken, true
	case "=>":
		return FatArrowToken, true
	}
	return 0, false
}

var oneCharOps = map[byte]TokenKind{
	'+': PlusToken,
	'-': MinusToken,
	'*': StarToken,
	'/': SlashToken,
	'%': PercentToken,
	'<': LessToken,
	'>': GreaterToken,
	'!': BangToken,
	'(': LParenToken,
	')': RParenToken,
	'[': LBracketToken,
	']': RBracketToken,
	'{': LBraceToken,
	'}': RBraceToken,
	'.': DotToken,
	',': CommaToken,
	'|': PipeToken,
	':': ColonToken,
	';': SemiToken,
}

func (l *Lexer) scanNumber() (Token, error) {
	start := l.pos
	for l.pos < len(l.contents) && isDigit(l.contents[l.pos]) {
		l.pos++
	}

	isFloat := false
	if l.pos+1 < len(l.contents) && l.contents[l.pos] == '.' && isDigit(l.contents[l.pos+1]) {
		isFloat = true
		l.pos++
		for l.pos < len(l.contents) && isDigit(l.contents[l.pos]) {
			l.pos++
		}
	}

	text := l.contents[start:l.pos]
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Token{}, newParseError(l.span(start), "invalid float literal '%s'", text)
		}
		tok := l.token(FloatToken, start)
		tok.Lit = value.NewFloat64(f)
		return tok, nil
	}

	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return Token{}, newParseError(l.span(start), "integer literal '%s' out of range", text)
	}
	tok := l.token(IntToken, start)
	tok.Lit = value.NewInt64(i)
	return tok, nil
}

var stringEscapes = map[byte]byte{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
	'0':  0,
}

func (l *Lexer) scanString() (Token, error) {
	start := l.pos
	quote := l.contents[l.pos]
	l.pos++

	var sb strings.Builder
	for l.pos < len(l.contents) {
		ch := l.contents[l.pos]
		switch ch {
		case quote:
			l.pos++
			tok := l.token(StringToken, start)
			tok.Lit = value.NewString(sb.String())
			return tok, nil
		case '\\':
			if l.pos+1 >= len(l.contents) {
				return Token{}, newParseError(l.span(start), "unterminated string")
			}
			escaped, found := stringEscapes[l.contents[l.pos+1]]
			if !found {
				return Token{}, newParseError(source.NewSpan(l.pos, l.pos+2, l.src),
					"unknown escape '\\%c'", l.contents[l.pos+1])
			}
			sb.WriteByte(escaped)
			l.pos += 2
		default:
			sb.WriteByte(ch)
			l.pos++
		}
	}
	return Token{}, newParseError(l.span(start), "unterminated string")
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentChar(ch byte) bool { return isIdentStart(ch) || isDigit(ch) }
