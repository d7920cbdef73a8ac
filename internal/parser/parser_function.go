package parser

import (
	"strconv"

	"pup/internal/ast"
)

func (p *Parser) parseFunction(attrs []*ast.Attribute) *ast.Function {
	startToken := p.consume(FN, "expected 'fn' keyword")

	name, ok := p.consumeIdent("expected function name")
	if !ok {
		return nil
	}

	params := p.parseFunctionParameters()
	returnType := p.parseFunctionReturnType()
	body := p.parseBlock()
	if p.failed() {
		return nil
	}

	pos := p.makePos(startToken)
	if len(attrs) > 0 {
		pos = attrs[0].Pos
	}

	return &ast.Function{
		Pos:        pos,
		EndPos:     body.EndPos,
		Attributes: attrs,
		Name:       name,
		Params:     params,
		Return:     returnType,
		Body:       body,
	}
}

// parseFunctionParameters parses the parameter list in parentheses
func (p *Parser) parseFunctionParameters() []*ast.Param {
	p.consume(LEFT_PAREN, "expected '(' after function name")
	var params []*ast.Param

	for !p.check(RIGHT_PAREN) && !p.isAtEnd() && !p.failed() {
		paramName, ok := p.consumeIdent("expected parameter name")
		if !ok {
			break
		}

		p.consume(COLON, "expected ':' after parameter name")
		paramType := p.parseType()

		params = append(params, &ast.Param{
			Pos:    paramName.Pos,
			EndPos: p.endOfPrevious(),
			Name:   paramName,
			Type:   paramType,
		})

		if !p.match(COMMA) {
			break
		}
	}

	p.consume(RIGHT_PAREN, "expected ')' after parameter list")
	return params
}

// parseFunctionReturnType parses the optional return type after '->' or ':'
func (p *Parser) parseFunctionReturnType() *ast.TypeRef {
	if p.match(ARROW, COLON) {
		return p.parseType()
	}
	return nil
}

// parseType parses a type annotation:
// Name | Name<T, ...> | [T; N]
func (p *Parser) parseType() *ast.TypeRef {
	if p.match(LEFT_BRACKET) {
		return p.parseFixedArrayType(p.previous())
	}

	tok := p.consume(IDENTIFIER, "expected type name")
	if tok.Type == ILLEGAL {
		return &ast.TypeRef{Name: "error"}
	}

	ref := &ast.TypeRef{
		Pos:  p.makePos(tok),
		Name: tok.Lexeme,
	}

	if p.match(LESS) {
		if !p.check(GREATER) {
			ref.Args = append(ref.Args, p.parseType())
			for p.match(COMMA) {
				ref.Args = append(ref.Args, p.parseType())
			}
		}
		p.consume(GREATER, "expected '>' after type arguments")
	}

	ref.EndPos = p.endOfPrevious()
	return ref
}

func (p *Parser) parseFixedArrayType(open Token) *ast.TypeRef {
	elem := p.parseType()
	p.consume(SEMICOLON, "expected ';' in fixed array type")

	sizeTok := p.consume(NUMBER, "expected array length")
	size, err := strconv.Atoi(sizeTok.Lexeme)
	if sizeTok.Type != ILLEGAL && (err != nil || size <= 0) {
		p.current--
		p.errorAtCurrent("array length must be a positive integer")
	}

	p.consume(RIGHT_BRACKET, "expected ']' after array length")
	return &ast.TypeRef{
		Pos:    p.makePos(open),
		EndPos: p.endOfPrevious(),
		Name:   "Array",
		Args:   []*ast.TypeRef{elem},
		Size:   size,
	}
}
