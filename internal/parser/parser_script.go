package parser

import "pup/internal/ast"

// ParseScript parses "extends <NodeType>" followed by script variables,
// structs and functions.
func (p *Parser) ParseScript() *ast.Script {
	start := p.peek()
	script := &ast.Script{
		Pos:  p.makePos(start),
		Path: p.filename,
	}

	p.consume(EXTENDS, "expected 'extends <NodeType>' at the top of the script")
	extends, ok := p.consumeIdent("expected node type after 'extends'")
	if !ok {
		return script
	}
	script.Extends = extends
	p.skipSemicolons()

	for !p.isAtEnd() && !p.failed() {
		attrs := p.parseAttributes()
		switch p.peek().Type {
		case VAR, CONST:
			if v := p.parseVariable(attrs); v != nil {
				script.Variables = append(script.Variables, v)
			}
		case STRUCT:
			if s := p.parseStruct(attrs); s != nil {
				script.Structs = append(script.Structs, s)
			}
		case FN:
			if fn := p.parseFunction(attrs); fn != nil {
				script.Functions = append(script.Functions, fn)
			}
		default:
			p.errorAtCurrent("expected 'var', 'const', 'struct' or 'fn' at script level")
		}
		p.skipSemicolons()
	}

	script.EndPos = p.makePos(p.peek())
	return script
}

// parseVariable parses: var|let|const name [: Type] [= expr]
func (p *Parser) parseVariable(attrs []*ast.Attribute) *ast.Variable {
	kw := p.advance()
	pos := p.makePos(kw)
	if len(attrs) > 0 {
		pos = attrs[0].Pos
	}

	name, ok := p.consumeIdent("expected variable name")
	if !ok {
		return nil
	}

	v := &ast.Variable{
		Pos:        pos,
		Attributes: attrs,
		Name:       name,
		Const:      kw.Type == CONST,
	}
	if p.match(COLON) {
		v.Type = p.parseType()
	}
	if p.match(EQUAL) {
		v.Value = p.parseExpr()
	}
	v.EndPos = p.endOfPrevious()
	return v
}
