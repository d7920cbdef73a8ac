package ast

import (
	"fmt"
	"strconv"
	"strings"
)

func (s *Script) String() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("extends %s\n", s.Extends.Value))
	for _, v := range s.Variables {
		b.WriteString(v.String())
		b.WriteString("\n")
	}
	for _, st := range s.Structs {
		b.WriteString("\n")
		b.WriteString(st.String())
		b.WriteString("\n")
	}
	for _, fn := range s.Functions {
		b.WriteString("\n")
		b.WriteString(fn.String())
		b.WriteString("\n")
	}

	return b.String()
}

func (i *Ident) String() string {
	return i.Value
}

func (a *Attribute) String() string {
	return "@" + a.Name
}

func writeAttributes(b *strings.Builder, attrs []*Attribute) {
	for _, a := range attrs {
		b.WriteString(a.String())
		b.WriteString(" ")
	}
}

func (v *Variable) String() string {
	var b strings.Builder
	writeAttributes(&b, v.Attributes)
	if v.Const {
		b.WriteString("const ")
	} else {
		b.WriteString("var ")
	}
	b.WriteString(v.Name.Value)
	if v.Type != nil {
		b.WriteString(": " + v.Type.String())
	}
	if v.Value != nil {
		b.WriteString(" = " + v.Value.String())
	}
	return b.String()
}

func (s *StructDef) String() string {
	var b strings.Builder
	writeAttributes(&b, s.Attributes)
	b.WriteString("struct " + s.Name.Value)
	if s.Base != nil {
		b.WriteString(" extends " + s.Base.Value)
	}
	b.WriteString(" {\n")
	for _, f := range s.Fields {
		b.WriteString("  " + f.String() + ",\n")
	}
	for _, m := range s.Methods {
		b.WriteString("  " + strings.ReplaceAll(m.String(), "\n", "\n  ") + "\n")
	}
	b.WriteString("}")
	return b.String()
}

func (f *Field) String() string {
	s := f.Name.Value + ": " + f.Type.String()
	if f.Default != nil {
		s += " = " + f.Default.String()
	}
	return s
}

func (f *Function) String() string {
	var b strings.Builder
	writeAttributes(&b, f.Attributes)
	b.WriteString("fn " + f.Name.Value + "(")
	for i, p := range f.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteString(")")
	if f.Return != nil {
		b.WriteString(" -> " + f.Return.String())
	}
	b.WriteString(" ")
	b.WriteString(f.Body.String())
	return b.String()
}

func (p *Param) String() string {
	return p.Name.Value + ": " + p.Type.String()
}

func (t *TypeRef) String() string {
	if t.IsFixedArray() {
		return fmt.Sprintf("[%s; %d]", t.Args[0].String(), t.Size)
	}
	if len(t.Args) == 0 {
		return t.Name
	}
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	return t.Name + "<" + strings.Join(args, ", ") + ">"
}

func (b *Block) String() string {
	if len(b.Stmts) == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, s := range b.Stmts {
		sb.WriteString("  " + strings.ReplaceAll(s.String(), "\n", "\n  ") + "\n")
	}
	sb.WriteString("}")
	return sb.String()
}

func (v *VarStmt) String() string {
	kw := "var "
	if v.Const {
		kw = "const "
	}
	s := kw + v.Name.Value
	if v.Type != nil {
		s += ": " + v.Type.String()
	}
	if v.Value != nil {
		s += " = " + v.Value.String()
	}
	return s
}

func (a *AssignStmt) String() string {
	return fmt.Sprintf("%s %s %s", a.Target.String(), a.Op.Symbol(), a.Value.String())
}

func (e *ExprStmt) String() string {
	return e.X.String()
}

func (i *IfStmt) String() string {
	s := "if " + i.Cond.String() + " " + i.Then.String()
	if i.Else != nil {
		s += " else " + i.Else.String()
	}
	return s
}

func (f *ForStmt) String() string {
	return fmt.Sprintf("for %s in %s %s", f.Var.Value, f.Iter.String(), f.Body.String())
}

func (w *WhileStmt) String() string {
	return "while " + w.Cond.String() + " " + w.Body.String()
}

func (r *ReturnStmt) String() string {
	if r.Value == nil {
		return "return"
	}
	return "return " + r.Value.String()
}

func (*PassStmt) String() string     { return "pass" }
func (*BreakStmt) String() string    { return "break" }
func (*ContinueStmt) String() string { return "continue" }

func (l *LiteralExpr) String() string {
	switch l.Kind {
	case STRING:
		q := strconv.Quote(l.Value)
		if l.Interpolated {
			return "$" + q
		}
		return q
	case NULL:
		return "null"
	}
	return l.Value
}

func (i *IdentExpr) String() string { return i.Name }
func (*SelfExpr) String() string    { return "self" }
func (*SuperExpr) String() string   { return "super" }

func (u *UnaryExpr) String() string {
	return u.Op + u.X.String()
}

func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left.String(), b.Op, b.Right.String())
}

func (c *CallExpr) String() string {
	return c.Callee.String() + "(" + exprList(c.Args) + ")"
}

func (m *MemberExpr) String() string {
	return m.X.String() + "." + m.Name.Value
}

func (n *NodeVarExpr) String() string {
	return n.X.String() + "::" + n.Name.Value
}

func (i *IndexExpr) String() string {
	return i.X.String() + "[" + i.Index.String() + "]"
}

func (n *NewExpr) String() string {
	return "new " + n.Type.Value + "(" + exprList(n.Args) + ")"
}

func (f *ObjectField) String() string {
	return f.Key.Value + ": " + f.Value.String()
}

func (o *ObjectLiteral) String() string {
	if len(o.Fields) == 0 {
		return "{}"
	}
	parts := make([]string, len(o.Fields))
	for i, f := range o.Fields {
		parts[i] = f.String()
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

func (a *ArrayLiteral) String() string {
	return "[" + exprList(a.Elems) + "]"
}

func (c *CastExpr) String() string {
	return c.X.String() + " as " + c.Type.String()
}

func (r *RangeExpr) String() string {
	return r.Start.String() + ".." + r.End.String()
}

func (p *ParenExpr) String() string {
	if _, ok := p.X.(*BinaryExpr); ok {
		return p.X.String()
	}
	return "(" + p.X.String() + ")"
}

func exprList(exprs []Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}
