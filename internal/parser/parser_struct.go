package parser

import "pup/internal/ast"

func (p *Parser) parseStruct(attrs []*ast.Attribute) *ast.StructDef {
	startToken := p.consume(STRUCT, "expected 'struct' keyword")

	name, ok := p.consumeIdent("expected struct name")
	if !ok {
		return nil
	}

	def := &ast.StructDef{
		Pos:        p.makePos(startToken),
		Attributes: attrs,
		Name:       name,
	}

	if p.match(EXTENDS) {
		base, ok := p.consumeIdent("expected base struct name after 'extends'")
		if !ok {
			return nil
		}
		def.Base = &base
	}

	p.parseStructBody(def)
	def.EndPos = p.endOfPrevious()
	return def
}

// parseStructBody parses fields and methods between { and }. Fields are
// separated by commas or newlines; "var" before a field is accepted.
func (p *Parser) parseStructBody(def *ast.StructDef) {
	p.consume(LEFT_BRACE, "expected '{' to start struct body")

	for !p.check(RIGHT_BRACE) && !p.isAtEnd() && !p.failed() {
		if p.match(COMMA, SEMICOLON) {
			continue
		}

		attrs := p.parseAttributes()
		if p.check(FN) {
			if fn := p.parseFunction(attrs); fn != nil {
				def.Methods = append(def.Methods, fn)
			}
			continue
		}

		p.match(VAR)
		if field := p.parseStructField(); field != nil {
			def.Fields = append(def.Fields, field)
		}
	}

	p.consume(RIGHT_BRACE, "expected '}' to close struct body")
}

// parseStructField parses a single field: name: Type [= default]
func (p *Parser) parseStructField() *ast.Field {
	name, ok := p.consumeIdent("expected field name or 'fn'")
	if !ok {
		return nil
	}

	p.consume(COLON, "expected ':' after field name")
	field := &ast.Field{
		Pos:  name.Pos,
		Name: name,
		Type: p.parseType(),
	}
	if p.match(EQUAL) {
		field.Default = p.parseExpr()
	}
	field.EndPos = p.endOfPrevious()
	return field
}
