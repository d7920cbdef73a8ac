package parser

import "pup/internal/ast"

func (p *Parser) parseBlock() *ast.Block {
	start := p.consume(LEFT_BRACE, "expected '{' to start block")
	block := &ast.Block{Pos: p.makePos(start)}

	for !p.check(RIGHT_BRACE) && !p.isAtEnd() && !p.failed() {
		if p.match(SEMICOLON) {
			continue
		}
		if stmt := p.parseStatement(); stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
	}

	p.consume(RIGHT_BRACE, "expected '}' to close block")
	block.EndPos = p.endOfPrevious()
	return block
}

func (p *Parser) parseStatement() ast.Stmt {
	var stmt ast.Stmt
	switch p.peek().Type {
	case VAR, CONST:
		stmt = p.parseVarStmt()
	case IF:
		stmt = p.parseIfStmt()
	case FOR:
		stmt = p.parseForStmt()
	case WHILE:
		stmt = p.parseWhileStmt()
	case RETURN:
		stmt = p.parseReturnStmt()
	case PASS:
		tok := p.advance()
		stmt = &ast.PassStmt{Pos: p.makePos(tok), EndPos: p.makeEndPos(tok)}
	case BREAK:
		tok := p.advance()
		stmt = &ast.BreakStmt{Pos: p.makePos(tok), EndPos: p.makeEndPos(tok)}
	case CONTINUE:
		tok := p.advance()
		stmt = &ast.ContinueStmt{Pos: p.makePos(tok), EndPos: p.makeEndPos(tok)}
	case LEFT_BRACE:
		stmt = p.parseBlock()
	default:
		stmt = p.parseSimpleStmt()
	}
	p.match(SEMICOLON)
	if p.failed() {
		return nil
	}
	return stmt
}

func (p *Parser) parseVarStmt() *ast.VarStmt {
	kw := p.advance()
	name, ok := p.consumeIdent("expected variable name")
	if !ok {
		return nil
	}

	stmt := &ast.VarStmt{
		Pos:   p.makePos(kw),
		Name:  name,
		Const: kw.Type == CONST,
	}
	if p.match(COLON) {
		stmt.Type = p.parseType()
	}
	if p.match(EQUAL) {
		stmt.Value = p.parseExpr()
	}
	stmt.EndPos = p.endOfPrevious()
	return stmt
}

// parseSimpleStmt parses an assignment or an expression statement.
func (p *Parser) parseSimpleStmt() ast.Stmt {
	expr := p.parseExpr()
	if p.failed() {
		return nil
	}

	if !isAssignOperator(p.peek()) {
		return &ast.ExprStmt{Pos: expr.NodePos(), EndPos: expr.NodeEndPos(), X: expr}
	}

	if !isAssignable(expr) {
		p.errorAtCurrent("invalid assignment target")
		return nil
	}

	opTok := p.advance()
	value := p.parseExpr()
	return &ast.AssignStmt{
		Pos:    expr.NodePos(),
		EndPos: p.endOfPrevious(),
		Target: expr,
		Op:     assignOpFromToken(opTok),
		OpText: opTok.Lexeme,
		Value:  value,
	}
}

func (p *Parser) parseIfStmt() *ast.IfStmt {
	start := p.advance()
	stmt := &ast.IfStmt{
		Pos:  p.makePos(start),
		Cond: p.parseExpr(),
		Then: p.parseBlock(),
	}

	if p.match(ELSE) {
		if p.check(IF) {
			stmt.Else = p.parseIfStmt()
		} else {
			stmt.Else = p.parseBlock()
		}
	}

	stmt.EndPos = p.endOfPrevious()
	return stmt
}

// parseForStmt parses "for x in a..b { }" and "for x in expr { }".
func (p *Parser) parseForStmt() *ast.ForStmt {
	start := p.advance()
	name, ok := p.consumeIdent("expected loop variable after 'for'")
	if !ok {
		return nil
	}
	p.consume(IN, "expected 'in' after loop variable")

	iter := p.parseExpr()
	if p.match(DOT_DOT) {
		end := p.parseExpr()
		iter = &ast.RangeExpr{
			Pos:    iter.NodePos(),
			EndPos: end.NodeEndPos(),
			Start:  iter,
			End:    end,
		}
	}

	body := p.parseBlock()
	return &ast.ForStmt{
		Pos:    p.makePos(start),
		EndPos: p.endOfPrevious(),
		Var:    name,
		Iter:   iter,
		Body:   body,
	}
}

func (p *Parser) parseWhileStmt() *ast.WhileStmt {
	start := p.advance()
	cond := p.parseExpr()
	body := p.parseBlock()
	return &ast.WhileStmt{
		Pos:    p.makePos(start),
		EndPos: p.endOfPrevious(),
		Cond:   cond,
		Body:   body,
	}
}

// parseReturnStmt takes a value only from the same line.
func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	start := p.advance()
	stmt := &ast.ReturnStmt{Pos: p.makePos(start)}

	next := p.peek()
	if next.Type != RIGHT_BRACE && next.Type != SEMICOLON && next.Type != EOF && !next.NewlineBefore {
		stmt.Value = p.parseExpr()
	}

	stmt.EndPos = p.endOfPrevious()
	return stmt
}

func (p *Parser) parseExpr() ast.Expr {
	return p.parsePrattExpr(1)
}

func isAssignable(expr ast.Expr) bool {
	switch expr.(type) {
	case *ast.IdentExpr, *ast.MemberExpr, *ast.NodeVarExpr, *ast.IndexExpr:
		return true
	}
	return false
}

func isAssignOperator(tok Token) bool {
	switch tok.Type {
	case EQUAL, PLUS_EQUAL, MINUS_EQUAL, STAR_EQUAL, SLASH_EQUAL, PERCENT_EQUAL:
		return true
	}
	return false
}

func assignOpFromToken(tok Token) ast.AssignType {
	switch tok.Type {
	case EQUAL:
		return ast.ASSIGN
	case PLUS_EQUAL:
		return ast.PLUS_ASSIGN
	case MINUS_EQUAL:
		return ast.MINUS_ASSIGN
	case STAR_EQUAL:
		return ast.STAR_ASSIGN
	case SLASH_EQUAL:
		return ast.SLASH_ASSIGN
	case PERCENT_EQUAL:
		return ast.PERCENT_ASSIGN
	}
	return ast.ILLEGAL_ASSIGN
}
