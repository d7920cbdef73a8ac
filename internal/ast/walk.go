package ast

// Inspect visits n and its children in source order. Returning false from
// fn skips the children of that node.
func Inspect(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}

	switch n := n.(type) {
	case *Script:
		for _, v := range n.Variables {
			Inspect(v, fn)
		}
		for _, s := range n.Structs {
			Inspect(s, fn)
		}
		for _, f := range n.Functions {
			Inspect(f, fn)
		}
	case *Variable:
		inspectExpr(n.Value, fn)
	case *StructDef:
		for _, f := range n.Fields {
			Inspect(f, fn)
		}
		for _, m := range n.Methods {
			Inspect(m, fn)
		}
	case *Field:
		inspectExpr(n.Default, fn)
	case *Function:
		for _, p := range n.Params {
			Inspect(p, fn)
		}
		if n.Body != nil {
			Inspect(n.Body, fn)
		}
	case *Block:
		for _, s := range n.Stmts {
			Inspect(s, fn)
		}
	case *VarStmt:
		inspectExpr(n.Value, fn)
	case *AssignStmt:
		inspectExpr(n.Target, fn)
		inspectExpr(n.Value, fn)
	case *ExprStmt:
		inspectExpr(n.X, fn)
	case *IfStmt:
		inspectExpr(n.Cond, fn)
		Inspect(n.Then, fn)
		if n.Else != nil {
			Inspect(n.Else, fn)
		}
	case *ForStmt:
		inspectExpr(n.Iter, fn)
		Inspect(n.Body, fn)
	case *WhileStmt:
		inspectExpr(n.Cond, fn)
		Inspect(n.Body, fn)
	case *ReturnStmt:
		inspectExpr(n.Value, fn)
	case *UnaryExpr:
		inspectExpr(n.X, fn)
	case *BinaryExpr:
		inspectExpr(n.Left, fn)
		inspectExpr(n.Right, fn)
	case *CallExpr:
		inspectExpr(n.Callee, fn)
		for _, a := range n.Args {
			inspectExpr(a, fn)
		}
	case *MemberExpr:
		inspectExpr(n.X, fn)
	case *NodeVarExpr:
		inspectExpr(n.X, fn)
	case *IndexExpr:
		inspectExpr(n.X, fn)
		inspectExpr(n.Index, fn)
	case *NewExpr:
		for _, a := range n.Args {
			inspectExpr(a, fn)
		}
	case *ObjectLiteral:
		for _, f := range n.Fields {
			Inspect(f, fn)
		}
	case *ObjectField:
		inspectExpr(n.Value, fn)
	case *ArrayLiteral:
		for _, e := range n.Elems {
			inspectExpr(e, fn)
		}
	case *CastExpr:
		inspectExpr(n.X, fn)
	case *RangeExpr:
		inspectExpr(n.Start, fn)
		inspectExpr(n.End, fn)
	case *ParenExpr:
		inspectExpr(n.X, fn)
	}
}

// inspectExpr guards against typed nil interfaces from optional fields.
func inspectExpr(e Expr, fn func(Node) bool) {
	if e == nil {
		return
	}
	Inspect(e, fn)
}
