package codegen

import (
	"strings"

	"pup/internal/ast"
	"pup/internal/semantic"
	"pup/internal/types"
)

// expr emits e as a value of the type its context expects.
func (g *generator) expr(e ast.Expr) string {
	code := g.raw(e)
	if to, ok := g.info.Coercions[e]; ok {
		code = convert(code, g.info.TypeOf(e), to)
	}
	return code
}

// raw emits e as a value of its own type. Reads of places clone types that
// are not Copy.
func (g *generator) raw(e ast.Expr) string {
	switch e := e.(type) {
	case *ast.LiteralExpr:
		return g.literal(e, g.info.TypeOf(e))
	case *ast.IdentExpr:
		sym := g.info.Symbols[e]
		if sym == nil {
			g.internalError(e, "unresolved identifier '%s'", e.Name)
			return e.Name
		}
		return cloned(g.symbolRef(sym), sym.Type)
	case *ast.SelfExpr:
		if g.strukt != nil {
			return "self.clone()"
		}
		return "self.id"
	case *ast.UnaryExpr:
		return e.Op + g.expr(e.X)
	case *ast.BinaryExpr:
		return g.binary(e)
	case *ast.CallExpr:
		return g.call(e)
	case *ast.NewExpr:
		return g.call(e)
	case *ast.MemberExpr:
		return g.member(e)
	case *ast.NodeVarExpr:
		return expand(nodeGetVar.Template, g.expr(e.X), []string{quote(e.Name.Value)}, -1)
	case *ast.IndexExpr:
		return g.index(e)
	case *ast.ObjectLiteral:
		parts := make([]string, len(e.Fields))
		for i, f := range e.Fields {
			parts[i] = quote(f.Key.Value) + ": " + g.expr(f.Value)
		}
		return "json!({" + strings.Join(parts, ", ") + "})"
	case *ast.ArrayLiteral:
		parts := make([]string, len(e.Elems))
		for i, el := range e.Elems {
			parts[i] = g.expr(el)
		}
		list := strings.Join(parts, ", ")
		switch g.info.TypeOf(e).Kind {
		case types.KindFixedArray:
			return "[" + list + "]"
		case types.KindObject:
			return "json!([" + list + "])"
		}
		return "vec![" + list + "]"
	case *ast.CastExpr:
		return cast(g.raw(e.X), g.info.TypeOf(e.X), g.info.TypeOf(e))
	case *ast.ParenExpr:
		return "(" + g.expr(e.X) + ")"
	}
	g.internalError(e, "cannot generate code for '%s'", e.String())
	return ""
}

// place emits e as an assignable location, without cloning. Expressions
// that do not denote storage come out as values.
func (g *generator) place(e ast.Expr) string {
	switch e := e.(type) {
	case *ast.IdentExpr:
		if sym := g.info.Symbols[e]; sym != nil {
			return g.symbolRef(sym)
		}
	case *ast.SelfExpr:
		if g.strukt != nil {
			return "self"
		}
		return "self.id"
	case *ast.ParenExpr:
		return g.place(e.X)
	case *ast.MemberExpr:
		m := g.info.Members[e]
		if m == nil {
			break
		}
		switch m.Kind {
		case semantic.MemberScriptVar:
			return "self." + g.rename(m.Name)
		case semantic.MemberStructField:
			return g.place(e.X) + "." + escape(m.Rust)
		case semantic.MemberEngineField:
			if _, _, _, ok := g.handlePath(e); !ok {
				return g.place(e.X) + "." + m.Rust
			}
		case semantic.MemberObjectKey:
			return g.place(e.X) + "[" + quote(m.Rust) + "]"
		}
	case *ast.IndexExpr:
		switch recv := g.info.TypeOf(e.X); recv.Kind {
		case types.KindArray, types.KindFixedArray:
			return g.place(e.X) + "[" + asUsize(g.expr(e.Index)) + "]"
		case types.KindObject:
			return g.place(e.X) + "[" + g.objectIndex(e.Index) + "]"
		}
	}
	return g.raw(e)
}

// symbolRef names a variable as it is emitted.
func (g *generator) symbolRef(sym *semantic.Symbol) string {
	name := g.rename(sym.Name)
	if sym.Kind == semantic.SymbolScriptVar {
		return "self." + name
	}
	return name
}

func cloned(code string, t types.Type) string {
	if t.RequiresClone() {
		return code + ".clone()"
	}
	return code
}

func asUsize(code string) string {
	return "(" + code + ") as usize"
}

func (g *generator) binary(b *ast.BinaryExpr) string {
	left, right := g.expr(b.Left), g.expr(b.Right)
	lt, rt := g.operandType(b.Left), g.operandType(b.Right)

	switch {
	case b.Op == "+" && (lt.IsString() || rt.IsString()):
		return `format!("{}{}", ` + displayArg(left, lt) + ", " + displayArg(right, rt) + ")"
	case isComparison(b.Op) && lt.IsString() && rt.IsString() && lt.Kind != rt.Kind:
		return "(&*" + left + " " + b.Op + " &*" + right + ")"
	}
	return "(" + left + " " + binaryOperator(b.Op) + " " + right + ")"
}

// operandType is the type of e after its conversion.
func (g *generator) operandType(e ast.Expr) types.Type {
	if to, ok := g.info.Coercions[e]; ok {
		return to
	}
	return g.info.TypeOf(e)
}

func (g *generator) index(ix *ast.IndexExpr) string {
	recv := g.info.TypeOf(ix.X)
	base := g.place(ix.X)
	switch recv.Kind {
	case types.KindArray, types.KindFixedArray:
		return cloned(base+"["+asUsize(g.expr(ix.Index))+"]", recv.Elem())
	case types.KindMap:
		return base + ".get(&" + g.expr(ix.Index) + ").cloned().unwrap_or_default()"
	}
	return base + "[" + g.objectIndex(ix.Index) + "].clone()"
}

// objectIndex indexes a JSON value by key or by position.
func (g *generator) objectIndex(e ast.Expr) string {
	code := g.expr(e)
	if g.info.TypeOf(e).IsInteger() {
		return asUsize(code)
	}
	return code
}

// member emits a field read.
func (g *generator) member(m *ast.MemberExpr) string {
	mem := g.info.Members[m]
	if mem == nil {
		g.internalError(m, "unresolved member '%s'", m.Name.Value)
		return ""
	}

	switch mem.Kind {
	case semantic.MemberScriptVar:
		return cloned("self."+g.rename(mem.Name), mem.Type)
	case semantic.MemberNodeField, semantic.MemberUIField, semantic.MemberEngineField:
		if root, handle, path, ok := g.handlePath(m); ok {
			return g.readHandle(root, handle, path, mem.Type)
		}
		return cloned(g.place(m.X)+"."+mem.Rust, mem.Type)
	case semantic.MemberStructField:
		return cloned(g.place(m.X)+"."+escape(mem.Rust), mem.Type)
	case semantic.MemberObjectKey:
		return g.place(m.X) + "[" + quote(mem.Rust) + "].clone()"
	}
	return ""
}

// handlePath follows a chain of engine struct fields down to the node or
// UI field it starts from: self.transform.position.x yields the transform
// member, self and "transform.position.x".
func (g *generator) handlePath(m *ast.MemberExpr) (*semantic.Member, ast.Expr, string, bool) {
	var path []string
	cur := m
	for {
		mem := g.info.Members[cur]
		if mem == nil {
			return nil, nil, "", false
		}
		path = append([]string{mem.Rust}, path...)
		switch mem.Kind {
		case semantic.MemberNodeField, semantic.MemberUIField:
			return mem, cur.X, strings.Join(path, "."), true
		case semantic.MemberEngineField:
			next, ok := unparen(cur.X).(*ast.MemberExpr)
			if !ok {
				return nil, nil, "", false
			}
			cur = next
		default:
			return nil, nil, "", false
		}
	}
}

func unparen(e ast.Expr) ast.Expr {
	for {
		p, ok := e.(*ast.ParenExpr)
		if !ok {
			return e
		}
		e = p.X
	}
}

// readHandle reads a field through the engine. Handles that are not the
// script's own node are bound first so the engine is not borrowed twice.
func (g *generator) readHandle(root *semantic.Member, handle ast.Expr, path string, t types.Type) string {
	h := g.expr(handle)
	read := "read_node"
	if root.Kind == semantic.MemberUIField {
		read = "read_ui"
	}
	closure := "|n: &" + root.Owner + "| " + cloned("n."+path, t)
	if h == "self.id" {
		return "api." + read + "(self.id, " + closure + ")"
	}
	return "{ let __h = " + h + "; api." + read + "(__h, " + closure + ") }"
}

// convert emits the implicit conversion the analyzer recorded from one
// type to another.
func convert(code string, from, to types.Type) string {
	if from.Equal(to) {
		return code
	}
	switch {
	case to.Kind == types.KindObject:
		return "json!(" + code + ")"
	case from.Kind == types.KindObject:
		return "serde_json::from_value::<" + to.RustType() + ">(" + code + ").unwrap_or_default()"
	case from.Kind == types.KindOption && to.Kind == types.KindOption:
		inner := convert("v", from.Elem(), to.Elem())
		if inner == "v" {
			return code
		}
		return code + ".map(|v| " + inner + ")"
	case to.Kind == types.KindOption:
		return "Some(" + convert(code, from, to.Elem()) + ")"
	case from.Kind == types.KindOption:
		return convert(code+".unwrap()", from.Elem(), to)
	case from.IsNodeHandle() && to.IsNodeHandle(),
		from.Kind == types.KindUIElement && to.Kind == types.KindUIElement:
		return code
	case from.IsNumeric() && to.IsNumeric():
		return numeric(code, from, to)
	case to.Kind == types.KindString:
		if from.Kind == types.KindCowStr {
			return code + ".into_owned()"
		}
		return code + ".to_string()"
	case to.Kind == types.KindCowStr:
		if from.Kind == types.KindStrRef {
			return "Cow::Borrowed(" + code + ")"
		}
		return "Cow::Owned(" + code + ")"
	case from.Kind == types.KindArray && to.Kind == types.KindArray && to.Elem().Kind == types.KindObject:
		return code + ".iter().map(|v| json!(v)).collect::<Vec<Value>>()"
	}
	return code
}

func numeric(code string, from, to types.Type) string {
	switch to.Kind {
	case types.KindDecimal:
		if from.IsFloat() {
			return "Decimal::from_f64(" + code + " as f64).unwrap_or_default()"
		}
		return "Decimal::from(" + code + ")"
	case types.KindBigInt:
		if from.IsFloat() {
			return "BigInt::from(" + code + " as i64)"
		}
		return "BigInt::from(" + code + ")"
	}
	return "(" + code + " as " + to.RustType() + ")"
}

// cast emits an explicit "x as T".
func cast(code string, from, to types.Type) string {
	if from.Equal(to) {
		return code
	}
	switch {
	case from.IsNumeric() && to.IsNumeric(), from.Kind == types.KindBool && to.IsInteger():
		return numeric(code, from, to)
	case from.IsString() && (to.IsNumeric() || to.Kind == types.KindBool):
		return code + ".parse::<" + to.RustType() + ">().unwrap_or_default()"
	case to.Kind == types.KindString && !from.IsString() && from.Kind != types.KindObject:
		return code + ".to_string()"
	}
	return convert(code, from, to)
}
