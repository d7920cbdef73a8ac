package codegen

import (
	"pup/internal/ast"
	"pup/internal/errors"
	"pup/internal/semantic"
	"pup/internal/types"
)

func (g *generator) block(b *ast.Block) {
	for _, s := range b.Stmts {
		g.stmt(s)
	}
}

func (g *generator) stmt(stmt ast.Stmt) {
	sp := span(stmt)
	switch s := stmt.(type) {
	case *ast.Block:
		g.w.open(sp, "{")
		g.block(s)
		g.w.close(sp, "}")

	case *ast.VarStmt:
		sym := g.info.Decls[s]
		if sym == nil {
			g.internalError(s, "undeclared variable '%s'", s.Name.Value)
			return
		}
		value := sym.Type.DefaultValue()
		if s.Value != nil {
			value = g.expr(s.Value)
		}
		let := "let mut"
		if s.Const {
			let = "let"
		}
		g.w.writeLinef(sp, "%s %s: %s = %s;", let, g.rename(sym.Name), sym.Type.RustType(), value)

	case *ast.AssignStmt:
		g.assign(s)

	case *ast.ExprStmt:
		if g.opts.Release && g.isConsoleCall(s.X) {
			g.w.writeLine(sp, "// [stripped for release] "+s.X.String())
			return
		}
		g.w.writeLine(sp, g.raw(s.X)+";")

	case *ast.IfStmt:
		g.ifStmt(s, "")

	case *ast.WhileStmt:
		g.w.open(sp, "while %s {", g.expr(s.Cond))
		g.block(s.Body)
		g.w.close(sp, "}")

	case *ast.ForStmt:
		g.forStmt(s)

	case *ast.ReturnStmt:
		if s.Value == nil {
			g.w.writeLine(sp, "return;")
			return
		}
		g.w.writeLinef(sp, "return %s;", g.expr(s.Value))

	case *ast.BreakStmt:
		g.w.writeLine(sp, "break;")

	case *ast.ContinueStmt:
		g.w.writeLine(sp, "continue;")

	case *ast.PassStmt:
	}
}

// ifStmt writes an if chain. prefix is "} else " for links after the first.
func (g *generator) ifStmt(s *ast.IfStmt, prefix string) {
	sp := span(s)
	if prefix == "" {
		g.w.open(sp, "if %s {", g.expr(s.Cond))
	} else {
		g.w.indent--
		g.w.open(sp, "%sif %s {", prefix, g.expr(s.Cond))
	}
	g.block(s.Then)

	switch e := s.Else.(type) {
	case *ast.IfStmt:
		g.ifStmt(e, "} else ")
		return
	case *ast.Block:
		g.w.indent--
		g.w.open(span(e), "} else {")
		g.block(e)
	}
	g.w.close(sp, "}")
}

func (g *generator) forStmt(s *ast.ForStmt) {
	sp := span(s)
	sym := g.info.Decls[s]
	if sym == nil {
		g.internalError(s, "undeclared loop variable '%s'", s.Var.Value)
		return
	}
	name := g.rename(sym.Name)

	var iter string
	if rng, ok := s.Iter.(*ast.RangeExpr); ok {
		iter = g.expr(rng.Start) + ".." + g.expr(rng.End)
	} else {
		iter = g.expr(s.Iter)
		switch g.info.TypeOf(s.Iter).Kind {
		case types.KindMap:
			iter += ".into_keys()"
		case types.KindObject:
			iter += ".as_array().cloned().unwrap_or_default()"
		}
	}

	g.w.open(sp, "for %s in %s {", name, iter)
	g.block(s.Body)
	g.w.close(sp, "}")
}

func (g *generator) isConsoleCall(e ast.Expr) bool {
	c := g.info.Calls[e]
	return c != nil && c.Kind == semantic.CallModuleAPI && c.API.API.IsConsole()
}

// assign lowers every kind of assignment target. Writes through an engine
// handle bind the value and any handle other than the script's own node
// before the engine is borrowed for the write.
func (g *generator) assign(s *ast.AssignStmt) {
	sp := span(s)
	// the parser only builds arithmetic assignments and the analyzer rejects
	// the rest, so this holds for trees built by hand
	if s.Op == ast.ILLEGAL_ASSIGN {
		g.fail(errors.ComparisonAssignment(s.OpText, s.Pos))
		return
	}

	targetType := g.info.TypeOf(unparen(s.Target))
	appendString := s.Op == ast.PLUS_ASSIGN && targetType.Kind == types.KindString
	apply := func(place, value string) string {
		if appendString {
			if !g.info.TypeOf(s.Value).IsString() {
				value += ".to_string()"
			}
			return place + ".push_str(&" + value + ")"
		}
		return place + " " + s.Op.Symbol() + " " + value
	}

	switch t := unparen(s.Target).(type) {
	case *ast.MemberExpr:
		if root, handle, path, ok := g.handlePath(t); ok {
			g.writeHandle(sp, root, handle, apply("n."+path, "__v"), g.expr(s.Value))
			return
		}

	case *ast.IndexExpr:
		if g.info.TypeOf(t.X).Kind == types.KindMap {
			m := g.place(t.X)
			key := g.expr(t.Index)
			if s.Op == ast.ASSIGN {
				g.w.writeLinef(sp, "%s.insert(%s, %s);", m, key, g.expr(s.Value))
			} else {
				g.w.writeLine(sp, apply("*"+m+".entry("+key+").or_default()", g.expr(s.Value))+";")
			}
			return
		}

	case *ast.NodeVarExpr:
		g.w.writeLinef(sp, "let __v = %s;", g.expr(s.Value))
		g.w.writeLine(sp, expand(nodeSetVar.Template, g.expr(t.X), []string{quote(t.Name.Value), "__v"}, -1)+";")
		return
	}

	g.w.writeLine(sp, apply(g.place(s.Target), g.expr(s.Value))+";")
}

func (g *generator) writeHandle(sp ast.SourceSpan, root *semantic.Member, handle ast.Expr, body, value string) {
	mutate := "mutate_node"
	if root.Kind == semantic.MemberUIField {
		mutate = "mutate_ui"
	}
	h := g.expr(handle)
	g.w.writeLinef(sp, "let __v = %s;", value)
	if h != "self.id" {
		g.w.writeLinef(sp, "let __h = %s;", h)
		h = "__h"
	}
	g.w.writeLinef(sp, "api.%s(%s, |n: &mut %s| %s);", mutate, h, root.Owner, body)
}
