// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"strings"

	"carvel.dev/ett/pkg/source"
)

// Parser builds a template AST. It drives the lexer's two modes: text
// mode between directives, expression mode inside '{{ }}' and directive
// headers.
type Parser struct {
	lex   *Lexer
	src   *source.Source
	saved []Token // pushed-back tokens, consumed last-in first-out
}

func NewParser(src *source.Source) *Parser {
	return &Parser{lex: NewLexer(src), src: src}
}

func (p *Parser) pushback(tok Token) {
	p.saved = append(p.saved, tok)
}

func (p *Parser) nextText() (Token, error) {
	if n := len(p.saved); n > 0 {
		tok := p.saved[n-1]
		p.saved = p.saved[:n-1]
		return tok, nil
	}
	return p.lex.NextTextToken()
}

func (p *Parser) nextExpr() (Token, error) {
	if n := len(p.saved); n > 0 {
		tok := p.saved[n-1]
		p.saved = p.saved[:n-1]
		return tok, nil
	}
	return p.lex.NextExprToken()
}

func (p *Parser) peekExpr() (Token, error) {
	tok, err := p.nextExpr()
	if err != nil {
		return Token{}, err
	}
	p.pushback(tok)
	return tok, nil
}

func (p *Parser) expectExpr(kind TokenKind) (Token, error) {
	tok, err := p.nextExpr()
	if err != nil {
		return Token{}, err
	}
	if tok.Kind != kind {
		return Token{}, newParseError(tok.Span, "expected %s, found %s", kind, tok.Kind)
	}
	return tok, nil
}

// Parse consumes the whole source and returns the node list.
func (p *Parser) Parse() ([]Node, error) {
	nodes, err := p.parseNodes(false)
	if err != nil {
		return nil, err
	}
	return nodes, nil
}

// parseNodes reads nodes until end of input or, when inBlock, the block's
// closing '}' (which it consumes).
func (p *Parser) parseNodes(inBlock bool) ([]Node, error) {
	var nodes []Node
	for {
		tok, err := p.nextText()
		if err != nil {
			return nil, err
		}

		switch tok.Kind {
		case EOFToken:
			if inBlock {
				return nil, newParseError(tok.Span, "expected '}', found end of template")
			}
			return nodes, nil

		case BlockCloseToken:
			return nodes, nil

		case TextToken:
			if tok.Text != "" {
				nodes = append(nodes, &TextNode{Text: tok.Text, span: tok.Span})
			}

		case InterpOpenToken:
			expr, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			closeTok, err := p.expectExpr(InterpCloseToken)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, &InterpNode{Expr: expr, span: tok.Span.Merge(closeTok.Span)})

		case AtIfToken:
			node, err := p.parseIf(tok)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)

		case AtElseToken:
			return nil, newParseError(tok.Span, "unexpected '@else'")

		case AtForToken:
			node, err := p.parseFor(tok)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)

		case AtMatchToken:
			node, err := p.parseMatchNode(tok)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)

		case AtIncludeToken:
			node, err := p.parseInclude(tok)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)

		default:
			return nil, newParseError(tok.Span, "unexpected %s", tok.Kind)
		}
	}
}

// parseBlock consumes '{' node* '}' with the lexer's block depth raised so
// '}' terminates the body.
func (p *Parser) parseBlock() ([]Node, source.Span, error) {
	open, err := p.expectExpr(LBraceToken)
	if err != nil {
		return nil, source.Span{}, err
	}
	p.lex.EnterBlock()
	nodes, err := p.parseNodes(true)
	p.lex.ExitBlock()
	if err != nil {
		return nil, source.Span{}, err
	}
	return nodes, open.Span, nil
}

func (p *Parser) parseCondBlock() (Expr, []Node, error) {
	_, err := p.expectExpr(LParenToken)
	if err != nil {
		return nil, nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, nil, err
	}
	_, err = p.expectExpr(RParenToken)
	if err != nil {
		return nil, nil, err
	}
	body, _, err := p.parseBlock()
	if err != nil {
		return nil, nil, err
	}
	return cond, body, nil
}

func (p *Parser) parseIf(ifTok Token) (Node, error) {
	cond, body, err := p.parseCondBlock()
	if err != nil {
		return nil, err
	}
	node := &IfNode{Branches: []IfBranch{{Cond: cond, Body: body}}, span: ifTok.Span}

	for {
		// '@else' may be separated from the previous block by whitespace
		// only; that whitespace belongs to the chain, not the output
		first, err := p.nextText()
		if err != nil {
			return nil, err
		}
		var ws *Token
		if first.Kind == TextToken && strings.TrimSpace(first.Text) == "" {
			wsTok := first
			ws = &wsTok
			first, err = p.nextText()
			if err != nil {
				return nil, err
			}
		}
		if first.Kind != AtElseToken {
			p.pushback(first)
			if ws != nil {
				p.pushback(*ws)
			}
			return node, nil
		}

		tok, err := p.nextExpr()
		if err != nil {
			return nil, err
		}
		switch {
		case tok.Kind == IdentToken && tok.Text == "if":
			cond, body, err := p.parseCondBlock()
			if err != nil {
				return nil, err
			}
			node.Branches = append(node.Branches, IfBranch{Cond: cond, Body: body})

		case tok.Kind == LBraceToken:
			p.pushback(tok)
			body, _, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			node.Else = body
			return node, nil

		default:
			return nil, newParseError(tok.Span, "expected 'if' or '{' after '@else', found %s", tok.Kind)
		}
	}
}

func (p *Parser) parseFor(forTok Token) (Node, error) {
	_, err := p.expectExpr(LParenToken)
	if err != nil {
		return nil, err
	}
	binding, err := p.expectExpr(IdentToken)
	if err != nil {
		return nil, err
	}
	of, err := p.expectExpr(IdentToken)
	if err != nil {
		return nil, err
	}
	if of.Text != "of" {
		return nil, newParseError(of.Span, "expected 'of', found '%s'", of.Text)
	}
	iterable, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	semi, err := p.nextExpr()
	if err != nil {
		return nil, err
	}
	if semi.Kind != SemiToken {
		return nil, newParseError(semi.Span, "expected ';', found %s", semi.Kind)
	}
	trackKw, err := p.expectExpr(IdentToken)
	if err != nil {
		return nil, err
	}
	if trackKw.Text != "track" {
		return nil, newParseError(trackKw.Span, "expected 'track', found '%s'", trackKw.Text)
	}
	track, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	tok, err := p.nextExpr()
	if err != nil {
		return nil, err
	}
	if tok.Kind != RParenToken {
		return nil, newParseError(tok.Span, "expected ')', found %s", tok.Kind)
	}

	body, _, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ForNode{
		Binding:  binding.Text,
		Iterable: iterable,
		Track:    track,
		Body:     body,
		span:     forTok.Span,
	}, nil
}

func (p *Parser) parseMatchNode(matchTok Token) (Node, error) {
	_, err := p.expectExpr(LParenToken)
	if err != nil {
		return nil, err
	}
	subject, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	_, err = p.expectExpr(RParenToken)
	if err != nil {
		return nil, err
	}
	_, err = p.expectExpr(LBraceToken)
	if err != nil {
		return nil, err
	}
	p.lex.EnterObject()
	defer p.lex.ExitObject()

	node := &MatchNode{Subject: subject, span: matchTok.Span}
	for {
		tok, err := p.peekExpr()
		if err != nil {
			return nil, err
		}
		if tok.Kind == RBraceToken {
			_, _ = p.nextExpr()
			return node, nil
		}

		pattern, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		_, err = p.expectExpr(FatArrowToken)
		if err != nil {
			return nil, err
		}
		body, _, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		if isDefaultPattern(pattern) {
			node.Default = body
		} else {
			node.Arms = append(node.Arms, MatchNodeArm{Pattern: pattern, Body: body})
		}

		tok, err = p.nextExpr()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case CommaToken:
		case RBraceToken:
			return node, nil
		default:
			return nil, newParseError(tok.Span, "expected ',' or '}', found %s", tok.Kind)
		}
	}
}

func (p *Parser) parseInclude(includeTok Token) (Node, error) {
	_, err := p.expectExpr(LParenToken)
	if err != nil {
		return nil, err
	}
	name, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	closeTok, err := p.expectExpr(RParenToken)
	if err != nil {
		return nil, err
	}
	return &IncludeNode{Name: name, span: includeTok.Span.Merge(closeTok.Span)}, nil
}

func isDefaultPattern(e Expr) bool {
	ident, ok := e.(*IdentExpr)
	return ok && ident.Name == "_"
}

// parseExpr parses a full expression: a binary expression optionally piped
// through named pipes. Pipes bind looser than every binary operator.
func (p *Parser) parseExpr() (Expr, error) {
	left, err := p.parseBinary(0)
	if err != nil {
		return nil, err
	}

	for {
		tok, err := p.peekExpr()
		if err != nil {
			return nil, err
		}
		if tok.Kind != PipeToken {
			return left, nil
		}
		_, _ = p.nextExpr()

		name, err := p.expectExpr(IdentToken)
		if err != nil {
			return nil, err
		}

		var args []Expr
		for {
			tok, err := p.peekExpr()
			if err != nil {
				return nil, err
			}
			if tok.Kind != ColonToken {
				break
			}
			_, _ = p.nextExpr()
			arg, err := p.parseBinary(0)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		left = &PipeExpr{Value: left, Name: name.Text, Args: args, span: left.Span().Merge(name.Span)}
	}
}

// parseBinary is the Pratt loop: operators at or above minPrec bind here;
// left associativity comes from recursing with one level more.
func (p *Parser) parseBinary(minPrec int) (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		tok, err := p.peekExpr()
		if err != nil {
			return nil, err
		}
		op, ok := binaryOpForToken(tok.Kind)
		if !ok || op.Precedence() < minPrec {
			return left, nil
		}
		_, _ = p.nextExpr()

		right, err := p.parseBinary(op.Precedence() + 1)
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Left: left, Op: op, Right: right, span: left.Span().Merge(right.Span())}
	}
}

func (p *Parser) parseUnary() (Expr, error) {
	tok, err := p.peekExpr()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case BangToken, MinusToken:
		_, _ = p.nextExpr()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		op := NotOp
		if tok.Kind == MinusToken {
			op = NegOp
		}
		return &UnaryExpr{Op: op, Operand: operand, span: tok.Span.Merge(operand.Span())}, nil
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (Expr, error) {
	expr, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	for {
		tok, err := p.peekExpr()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case DotToken:
			_, _ = p.nextExpr()
			field, err := p.expectExpr(IdentToken)
			if err != nil {
				return nil, err
			}
			expr = &MemberExpr{Obj: expr, Field: field.Text, span: expr.Span().Merge(field.Span)}

		case LBracketToken:
			_, _ = p.nextExpr()
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			closeTok, err := p.expectExpr(RBracketToken)
			if err != nil {
				return nil, err
			}
			expr = &IndexExpr{Obj: expr, Index: idx, span: expr.Span().Merge(closeTok.Span)}

		case LParenToken:
			ident, ok := expr.(*IdentExpr)
			if !ok {
				return nil, newParseError(tok.Span, "expected an identifier before '('")
			}
			_, _ = p.nextExpr()
			args, closeSpan, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			expr = &CallExpr{Name: ident.Name, Args: args, span: ident.Span().Merge(closeSpan)}

		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseArgs() ([]Expr, source.Span, error) {
	var args []Expr
	for {
		tok, err := p.peekExpr()
		if err != nil {
			return nil, source.Span{}, err
		}
		if tok.Kind == RParenToken {
			_, _ = p.nextExpr()
			return args, tok.Span, nil
		}
		if len(args) > 0 {
			if tok.Kind != CommaToken {
				return nil, source.Span{}, newParseError(tok.Span, "expected ',' or ')', found %s", tok.Kind)
			}
			_, _ = p.nextExpr()
		}
		arg, err := p.parseExpr()
		if err != nil {
			return nil, source.Span{}, err
		}
		args = append(args, arg)
	}
}

func (p *Parser) parseAtom() (Expr, error) {
	tok, err := p.nextExpr()
	if err != nil {
		return nil, err
	}

	switch tok.Kind {
	case IntToken, FloatToken, StringToken, TrueToken, FalseToken, NullToken:
		return &LiteralExpr{Value: tok.Lit, span: tok.Span}, nil

	case IdentToken:
		return &IdentExpr{Name: tok.Text, span: tok.Span}, nil

	case LParenToken:
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		_, err = p.expectExpr(RParenToken)
		if err != nil {
			return nil, err
		}
		return expr, nil

	case LBracketToken:
		return p.parseArrayLiteral(tok)

	case LBraceToken:
		return p.parseObjectLiteral(tok)

	case AtMatchToken:
		return p.parseMatchExpr(tok)

	default:
		return nil, newParseError(tok.Span, "expected an expression, found %s", tok.Kind)
	}
}

func (p *Parser) parseArrayLiteral(open Token) (Expr, error) {
	node := &ArrayExpr{span: open.Span}
	for {
		tok, err := p.peekExpr()
		if err != nil {
			return nil, err
		}
		if tok.Kind == RBracketToken {
			_, _ = p.nextExpr()
			node.span = open.Span.Merge(tok.Span)
			return node, nil
		}
		if len(node.Items) > 0 {
			if tok.Kind != CommaToken {
				return nil, newParseError(tok.Span, "expected ',' or ']', found %s", tok.Kind)
			}
			_, _ = p.nextExpr()
			// trailing comma
			tok, err = p.peekExpr()
			if err != nil {
				return nil, err
			}
			if tok.Kind == RBracketToken {
				continue
			}
		}
		item, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		node.Items = append(node.Items, item)
	}
}

func (p *Parser) parseObjectLiteral(open Token) (Expr, error) {
	p.lex.EnterObject()
	defer p.lex.ExitObject()

	node := &ObjectExpr{span: open.Span}
	for {
		tok, err := p.peekExpr()
		if err != nil {
			return nil, err
		}
		if tok.Kind == RBraceToken {
			_, _ = p.nextExpr()
			node.span = open.Span.Merge(tok.Span)
			return node, nil
		}
		if len(node.Fields) > 0 {
			if tok.Kind != CommaToken {
				return nil, newParseError(tok.Span, "expected ',' or '}', found %s", tok.Kind)
			}
			_, _ = p.nextExpr()
			tok, err = p.peekExpr()
			if err != nil {
				return nil, err
			}
			if tok.Kind == RBraceToken {
				continue
			}
		}

		key, err := p.nextExpr()
		if err != nil {
			return nil, err
		}
		var keyText string
		switch key.Kind {
		case IdentToken:
			keyText = key.Text
		case StringToken:
			keyText = key.Lit.AsString()
		default:
			return nil, newParseError(key.Span, "expected a field name, found %s", key.Kind)
		}
		_, err = p.expectExpr(ColonToken)
		if err != nil {
			return nil, err
		}
		item, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		node.Fields = append(node.Fields, ObjectField{Key: keyText, Value: item})
	}
}

func (p *Parser) parseMatchExpr(matchTok Token) (Expr, error) {
	_, err := p.expectExpr(LParenToken)
	if err != nil {
		return nil, err
	}
	subject, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	_, err = p.expectExpr(RParenToken)
	if err != nil {
		return nil, err
	}
	_, err = p.expectExpr(LBraceToken)
	if err != nil {
		return nil, err
	}
	p.lex.EnterObject()
	defer p.lex.ExitObject()

	node := &MatchExpr{Subject: subject, span: matchTok.Span}
	for {
		tok, err := p.peekExpr()
		if err != nil {
			return nil, err
		}
		if tok.Kind == RBraceToken {
			_, _ = p.nextExpr()
			node.span = matchTok.Span.Merge(tok.Span)
			return node, nil
		}

		pattern, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		_, err = p.expectExpr(FatArrowToken)
		if err != nil {
			return nil, err
		}
		armValue, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if isDefaultPattern(pattern) {
			node.Default = armValue
		} else {
			node.Arms = append(node.Arms, MatchExprArm{Pattern: pattern, Value: armValue})
		}

		tok, err = p.nextExpr()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case CommaToken:
		case RBraceToken:
			node.span = matchTok.Span.Merge(tok.Span)
			return node, nil
		default:
			return nil, newParseError(tok.Span, "expected ',' or '}', found %s", tok.Kind)
		}
	}
}
