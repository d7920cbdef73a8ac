package parser

import (
	"pup/internal/ast"
)

var binaryPrecedence = map[TokenType]int{
	OR:          1,
	AND:         2,
	EQUAL_EQUAL: 3, BANG_EQUAL: 3,
	LESS: 3, LESS_EQUAL: 3, GREATER: 3, GREATER_EQUAL: 3,
	PLUS: 4, MINUS: 4,
	STAR: 5, SLASH: 5, PERCENT: 5,
}

// binaryOperator normalizes keyword spellings to their symbols.
func binaryOperator(tok Token) string {
	switch tok.Type {
	case AND:
		return "&&"
	case OR:
		return "||"
	}
	return tok.Lexeme
}

func (p *Parser) parsePrattExpr(minPrec int) ast.Expr {
	expr := p.parsePrefixExpr()

	for !p.failed() {
		tok := p.peek()
		prec, ok := binaryPrecedence[tok.Type]
		if !ok || prec < minPrec {
			break
		}

		p.advance()
		right := p.parsePrattExpr(prec + 1)

		expr = &ast.BinaryExpr{
			Pos:    expr.NodePos(),
			EndPos: right.NodeEndPos(),
			Op:     binaryOperator(tok),
			Left:   expr,
			Right:  right,
		}
	}

	return expr
}

func (p *Parser) parsePrefixExpr() ast.Expr {
	if p.match(MINUS, BANG, NOT) {
		op := p.previous()
		value := p.parsePrefixExpr()
		symbol := op.Lexeme
		if op.Type == NOT {
			symbol = "!"
		}
		return &ast.UnaryExpr{
			Pos:    p.makePos(op),
			EndPos: value.NodeEndPos(),
			Op:     symbol,
			X:      value,
		}
	}

	return p.parseCastExpr()
}

// parseCastExpr binds "as" tighter than unary operators and looser than
// postfix operators: -x as float is -(x as float).
func (p *Parser) parseCastExpr() ast.Expr {
	expr := p.parsePostfixExpr(p.parsePrimaryExpr())

	for !p.failed() && p.match(AS) {
		ty := p.parseType()
		expr = &ast.CastExpr{
			Pos:    expr.NodePos(),
			EndPos: ty.EndPos,
			X:      expr,
			Type:   ty,
		}
	}

	return expr
}

// parsePostfixExpr applies member access, node variable access, calls and
// indexing. Calls and indexing do not continue onto a new line.
func (p *Parser) parsePostfixExpr(expr ast.Expr) ast.Expr {
	for !p.failed() {
		if p.match(DOT) {
			field, ok := p.consumeIdent("expected member name after '.'")
			if !ok {
				break
			}
			expr = &ast.MemberExpr{
				Pos:    expr.NodePos(),
				EndPos: field.EndPos,
				X:      expr,
				Name:   field,
			}
		} else if p.match(DOUBLE_COLON) {
			name, ok := p.consumeIdent("expected variable name after '::'")
			if !ok {
				break
			}
			expr = &ast.NodeVarExpr{
				Pos:    expr.NodePos(),
				EndPos: name.EndPos,
				X:      expr,
				Name:   name,
			}
		} else if p.check(LEFT_PAREN) && !p.peek().NewlineBefore {
			p.advance()
			args := p.parseExprList(RIGHT_PAREN)
			end := p.consume(RIGHT_PAREN, "expected ')' after arguments")
			expr = &ast.CallExpr{
				Pos:    expr.NodePos(),
				EndPos: p.makeEndPos(end),
				Callee: expr,
				Args:   args,
			}
		} else if p.check(LEFT_BRACKET) && !p.peek().NewlineBefore {
			p.advance()
			index := p.parseExpr()
			end := p.consume(RIGHT_BRACKET, "expected ']' after index")
			expr = &ast.IndexExpr{
				Pos:    expr.NodePos(),
				EndPos: p.makeEndPos(end),
				X:      expr,
				Index:  index,
			}
		} else {
			break
		}
	}

	return expr
}

func (p *Parser) parsePrimaryExpr() ast.Expr {
	tok := p.peek()
	pos, end := p.makePos(tok), p.makeEndPos(tok)

	switch tok.Type {
	case NUMBER:
		p.advance()
		return &ast.LiteralExpr{Pos: pos, EndPos: end, Kind: ast.NUMBER, Value: tok.Lexeme}
	case STRING, INTERP_STRING:
		p.advance()
		return &ast.LiteralExpr{
			Pos:          pos,
			EndPos:       end,
			Kind:         ast.STRING,
			Value:        tok.Literal,
			Interpolated: tok.Type == INTERP_STRING,
		}
	case TRUE, FALSE:
		p.advance()
		return &ast.LiteralExpr{Pos: pos, EndPos: end, Kind: ast.BOOL, Value: tok.Lexeme}
	case NULL:
		p.advance()
		return &ast.LiteralExpr{Pos: pos, EndPos: end, Kind: ast.NULL, Value: tok.Lexeme}
	case IDENTIFIER:
		p.advance()
		return &ast.IdentExpr{Pos: pos, EndPos: end, Name: tok.Lexeme}
	case SELF:
		p.advance()
		return &ast.SelfExpr{Pos: pos, EndPos: end}
	case SUPER:
		p.advance()
		return &ast.SuperExpr{Pos: pos, EndPos: end}
	case NEW:
		return p.parseNewExpr()
	case LEFT_PAREN:
		p.advance()
		inner := p.parseExpr()
		r := p.consume(RIGHT_PAREN, "expected ')'")
		return &ast.ParenExpr{Pos: pos, EndPos: p.makeEndPos(r), X: inner}
	case LEFT_BRACE:
		return p.parseObjectLiteral()
	case LEFT_BRACKET:
		p.advance()
		elems := p.parseExprList(RIGHT_BRACKET)
		r := p.consume(RIGHT_BRACKET, "expected ']' after array elements")
		return &ast.ArrayLiteral{Pos: pos, EndPos: p.makeEndPos(r), Elems: elems}
	}

	p.errorAtCurrent("unexpected token in expression")
	return &ast.LiteralExpr{Pos: pos, EndPos: end, Kind: ast.NULL, Value: "null"}
}

// parseNewExpr parses: new Name(args)
func (p *Parser) parseNewExpr() ast.Expr {
	start := p.advance()
	name, _ := p.consumeIdent("expected type name after 'new'")
	p.consume(LEFT_PAREN, "expected '(' after type name")
	args := p.parseExprList(RIGHT_PAREN)
	end := p.consume(RIGHT_PAREN, "expected ')' after arguments")
	return &ast.NewExpr{
		Pos:    p.makePos(start),
		EndPos: p.makeEndPos(end),
		Type:   name,
		Args:   args,
	}
}

// parseObjectLiteral parses { key: value, ... }; keys may be quoted.
func (p *Parser) parseObjectLiteral() ast.Expr {
	start := p.advance()
	obj := &ast.ObjectLiteral{Pos: p.makePos(start)}

	for !p.check(RIGHT_BRACE) && !p.isAtEnd() && !p.failed() {
		keyTok := p.peek()
		if keyTok.Type != IDENTIFIER && keyTok.Type != STRING {
			p.errorAtCurrent("expected key in object literal")
			break
		}
		p.advance()
		key := p.makeIdent(keyTok)
		if keyTok.Type == STRING {
			key.Value = keyTok.Literal
		}

		p.consume(COLON, "expected ':' after object key")
		value := p.parseExpr()
		obj.Fields = append(obj.Fields, &ast.ObjectField{
			Pos:    key.Pos,
			EndPos: value.NodeEndPos(),
			Key:    key,
			Value:  value,
		})

		if !p.match(COMMA) {
			break
		}
	}

	end := p.consume(RIGHT_BRACE, "expected '}' after object literal")
	obj.EndPos = p.makeEndPos(end)
	return obj
}

// parseExprList parses comma separated expressions up to closer, allowing
// a trailing comma.
func (p *Parser) parseExprList(closer TokenType) []ast.Expr {
	var args []ast.Expr

	for !p.check(closer) && !p.isAtEnd() && !p.failed() {
		args = append(args, p.parseExpr())
		if !p.match(COMMA) {
			break
		}
	}

	return args
}
