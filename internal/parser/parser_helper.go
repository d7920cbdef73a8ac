package parser

import (
	"fmt"

	"pup/internal/ast"
)

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(tt TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == tt
}

func (p *Parser) match(types ...TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

// consume returns an ILLEGAL token and records an error when the next
// token is not tt.
func (p *Parser) consume(tt TokenType, message string) Token {
	if p.check(tt) {
		return p.advance()
	}
	p.errorAtCurrent(message)
	return Token{Type: ILLEGAL, Position: p.peek().Position}
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() Token {
	if p.current == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == EOF
}

// failed reports whether an error was recorded. Loops check it so the
// parser unwinds promptly after the first error.
func (p *Parser) failed() bool {
	return len(p.errors) > 0
}

// errorAtCurrent records only the first error; later errors are
// consequences of it.
func (p *Parser) errorAtCurrent(message string) {
	if p.failed() {
		return
	}
	tok := p.peek()
	found := "end of file"
	if tok.Type != EOF {
		found = fmt.Sprintf("'%s'", tok.Lexeme)
	}
	length := len(tok.Lexeme)
	if length == 0 {
		length = 1
	}
	p.errors = append(p.errors, ParseError{
		Message:  fmt.Sprintf("%s, found %s", message, found),
		Position: tok.Position,
		Length:   length,
	})
}

func (p *Parser) makePos(tok Token) ast.Position {
	return ast.Position{
		Filename: p.filename,
		Offset:   tok.Position.Offset,
		Line:     tok.Position.Line,
		Column:   tok.Position.Column,
	}
}

func (p *Parser) makeEndPos(tok Token) ast.Position {
	return ast.Position{
		Filename: p.filename,
		Offset:   tok.Position.Offset + len(tok.Lexeme),
		Line:     tok.Position.Line,
		Column:   tok.Position.Column + len(tok.Lexeme),
	}
}

// endOfPrevious is the end position of the last consumed token.
func (p *Parser) endOfPrevious() ast.Position {
	return p.makeEndPos(p.previous())
}

// makeIdent creates an ast.Ident from a token
func (p *Parser) makeIdent(tok Token) ast.Ident {
	return ast.Ident{
		Pos:    p.makePos(tok),
		EndPos: p.makeEndPos(tok),
		Value:  tok.Lexeme,
	}
}

// consumeIdent consumes an identifier token and returns an ast.Ident
func (p *Parser) consumeIdent(message string) (ast.Ident, bool) {
	tok := p.consume(IDENTIFIER, message)
	if tok.Type == ILLEGAL {
		return ast.Ident{Value: "error"}, false
	}
	return p.makeIdent(tok), true
}

// skipSemicolons consumes optional statement terminators.
func (p *Parser) skipSemicolons() {
	for p.match(SEMICOLON) {
	}
}

func (p *Parser) parseAttributes() []*ast.Attribute {
	var attrs []*ast.Attribute
	for !p.failed() && p.match(AT) {
		at := p.previous()
		name, ok := p.consumeIdent("expected attribute name after '@'")
		if !ok {
			break
		}
		attrs = append(attrs, &ast.Attribute{
			Pos:    p.makePos(at),
			EndPos: name.EndPos,
			Name:   name.Value,
		})
	}
	return attrs
}
