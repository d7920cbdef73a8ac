package semantic

import (
	"fmt"
	"math/big"
	"strings"

	"pup/internal/ast"
	"pup/internal/errors"
	"pup/internal/types"
)

// infer types e, consulting the pass cache first. expected is a hint from
// the surrounding context; it may be Unknown. Void results are only
// accepted where allowVoid is set, which is the expression statement.
func (a *Analyzer) infer(e ast.Expr, expected types.Type, allowVoid bool) types.Type {
	if a.halted() {
		return types.Unknown
	}
	if t, ok := a.info.Types.Get(e); ok {
		return t
	}

	t := a.inferUncached(e, expected)
	if a.halted() {
		return types.Unknown
	}

	if t.Kind == types.KindVoid && !allowVoid {
		a.addVoidError(calleeName(e), e.NodePos())
		return types.Unknown
	}
	if t.Kind != types.KindVoid && !t.IsConcrete() {
		a.addCompilerError(errors.NewSemanticError(errors.ErrorUnresolvedType,
			fmt.Sprintf("cannot infer the type of '%s'", e.String()), e.NodePos()).
			WithSpan(e).
			WithSuggestion("add a type annotation to the declaration").
			Build())
		return types.Unknown
	}

	a.info.Types.Put(e, t)
	return t
}

// inferExpr types an expression used as a value.
func (a *Analyzer) inferExpr(e ast.Expr, expected types.Type) types.Type {
	return a.infer(e, expected, false)
}

// expectExpr types e and checks it can be used where expected is
// required, recording the conversion codegen has to emit. It returns
// expected when known.
func (a *Analyzer) expectExpr(e ast.Expr, expected types.Type) types.Type {
	actual := a.inferExpr(e, expected)
	if a.halted() || expected.Kind == types.KindUnknown {
		return actual
	}
	if !a.assignable(actual, expected) {
		a.addTypeMismatchError(expected, actual, e)
		return types.Unknown
	}
	a.coerce(e, expected)
	return expected
}

// assignable extends CanConvertTo with node and UI subtyping.
func (a *Analyzer) assignable(from, to types.Type) bool {
	if from.CanConvertTo(to) || a.context.IsNodeSubtype(from, to) {
		return true
	}
	switch {
	case from.Kind == types.KindOption && to.Kind == types.KindOption:
		return a.assignable(from.Elem(), to.Elem())
	case to.Kind == types.KindOption:
		return a.assignable(from, to.Elem())
	case from.Kind == types.KindOption && from.Elem().Kind == types.KindNode && to.Kind == types.KindNode:
		return a.context.IsNodeSubtype(from.Elem(), to)
	}
	return false
}

// coerce records that e is converted to target where it is used.
func (a *Analyzer) coerce(e ast.Expr, target types.Type) {
	if !target.IsConcrete() {
		return
	}
	if !a.info.Types.TypeOf(e).Equal(target) {
		a.info.Coercions[e] = target
	}
}

func (a *Analyzer) inferUncached(e ast.Expr, expected types.Type) types.Type {
	switch e := e.(type) {
	case *ast.LiteralExpr:
		return a.inferLiteral(e, expected)
	case *ast.IdentExpr:
		return a.inferIdent(e)
	case *ast.SelfExpr:
		if a.currentStruct != nil {
			return types.Custom(a.currentStruct.Name)
		}
		return types.Node(a.info.NodeType)
	case *ast.SuperExpr:
		a.addCompilerError(errors.NewSemanticError(errors.ErrorInvalidOperation,
			"super can only be used to call a base method: super.name(...)", e.Pos).
			WithLength(len("super")).
			Build())
		return types.Unknown
	case *ast.UnaryExpr:
		return a.inferUnary(e, expected)
	case *ast.BinaryExpr:
		return a.inferBinary(e, expected)
	case *ast.CallExpr:
		return a.inferCall(e, expected)
	case *ast.MemberExpr:
		return a.inferMember(e)
	case *ast.NodeVarExpr:
		return a.inferNodeVar(e)
	case *ast.IndexExpr:
		return a.inferIndex(e)
	case *ast.NewExpr:
		return a.constructorCall(e, e.Type.Value, e.Args, e.Type.Pos)
	case *ast.ObjectLiteral:
		return a.inferObject(e)
	case *ast.ArrayLiteral:
		return a.inferArray(e, expected)
	case *ast.CastExpr:
		return a.inferCast(e)
	case *ast.RangeExpr:
		a.addCompilerError(errors.NewSemanticError(errors.ErrorInvalidOperation,
			"ranges are only valid in for loops", e.Pos).
			WithSpan(e).
			Build())
		return types.Unknown
	case *ast.ParenExpr:
		return a.inferExpr(e.X, expected)
	}
	a.addCompilerError(errors.UnresolvedType(fmt.Sprintf("'%s'", e.String()), e.NodePos()))
	return types.Unknown
}

func (a *Analyzer) inferLiteral(lit *ast.LiteralExpr, expected types.Type) types.Type {
	switch lit.Kind {
	case ast.NUMBER:
		return a.inferNumber(lit, expected, false)
	case ast.STRING:
		return a.inferString(lit, expected)
	case ast.BOOL:
		return types.Bool
	case ast.NULL:
		switch expected.Kind {
		case types.KindOption, types.KindObject:
			return expected
		}
		a.addCompilerError(errors.NullWithoutOption(lit.Pos))
	}
	return types.Unknown
}

// inferNumber picks the type of a numeric literal. The raw text decides
// between integer and float; the context decides the width. negative is
// set when the literal is the operand of a unary minus.
func (a *Analyzer) inferNumber(lit *ast.LiteralExpr, expected types.Type, negative bool) types.Type {
	isFloat := strings.ContainsAny(lit.Value, ".eE")

	target := expected
	if target.Kind == types.KindOption {
		target = target.Elem()
	}

	switch {
	case target.IsInteger() && !isFloat:
		if negative && target.Kind == types.KindUnsigned {
			return target
		}
		if !fitsInteger(lit.Value, target, negative) {
			a.addNumericOverflowError(lit.Value, target, lit.Pos)
			return types.Unknown
		}
		return target
	case target.Kind == types.KindBigInt && !isFloat:
		return target
	case target.IsFloat(), target.Kind == types.KindDecimal:
		return target
	}

	if isFloat {
		return types.F32
	}
	if fitsInteger(lit.Value, types.I32, negative) {
		return types.I32
	}
	if fitsInteger(lit.Value, types.I64, negative) {
		return types.I64
	}
	a.addNumericOverflowError(lit.Value, types.I64, lit.Pos)
	return types.Unknown
}

func fitsInteger(raw string, t types.Type, negative bool) bool {
	v, ok := new(big.Int).SetString(strings.ReplaceAll(raw, "_", ""), 10)
	if !ok {
		return false
	}
	limit := new(big.Int).Lsh(big.NewInt(1), uint(t.Width))
	if t.Kind == types.KindSigned {
		limit.Rsh(limit, 1)
		if negative {
			return v.Cmp(limit) <= 0
		}
	}
	return v.Cmp(limit) < 0
}

// inferString resolves interpolation. A $ string must resolve every
// placeholder; a plain string is interpolated only when all of them
// resolve, otherwise its braces are literal text.
func (a *Analyzer) inferString(lit *ast.LiteralExpr, expected types.Type) types.Type {
	if !a.constContext {
		placeholders := ast.Placeholders(lit.Value)
		if lit.Interpolated || len(placeholders) > 0 {
			syms := make([]*Symbol, 0, len(placeholders))
			for _, p := range placeholders {
				sym := a.lookup(p.Name)
				if sym == nil {
					if lit.Interpolated {
						a.addUndefinedVariableError(p.Name, placeholderPos(lit, p))
						return types.Unknown
					}
					syms = nil
					break
				}
				syms = append(syms, sym)
			}
			if syms != nil {
				for _, sym := range syms {
					sym.Used = true
				}
				a.info.Interpolations[lit] = syms
				return types.String
			}
		}
	}

	target := expected
	if target.Kind == types.KindOption {
		target = target.Elem()
	}
	switch target.Kind {
	case types.KindStrRef, types.KindCowStr:
		return target
	}
	return types.String
}

// placeholderPos locates the name inside "{name}", past the quote and $.
func placeholderPos(lit *ast.LiteralExpr, p ast.Placeholder) ast.Position {
	skip := p.Offset + 2
	if lit.Interpolated {
		skip++
	}
	pos := lit.Pos
	pos.Offset += skip
	pos.Column += skip
	return pos
}

func (a *Analyzer) inferIdent(id *ast.IdentExpr) types.Type {
	sym := a.lookup(id.Name)
	if sym == nil {
		if a.context.IsStandardModule(id.Name) {
			a.addCompilerError(errors.NewSemanticError(errors.ErrorInvalidOperation,
				fmt.Sprintf("module '%s' is not a value", id.Name), id.Pos).
				WithLength(len(id.Name)).
				WithSuggestion(fmt.Sprintf("call one of its functions: %s.<name>(...)", id.Name)).
				Build())
			return types.Unknown
		}
		a.addUndefinedVariableError(id.Name, id.Pos)
		return types.Unknown
	}
	sym.Used = true
	a.info.Symbols[id] = sym
	return sym.Type
}

func (a *Analyzer) inferUnary(u *ast.UnaryExpr, expected types.Type) types.Type {
	switch u.Op {
	case "!":
		a.expectExpr(u.X, types.Bool)
		return types.Bool
	case "-":
		var t types.Type
		if lit, ok := u.X.(*ast.LiteralExpr); ok && lit.Kind == ast.NUMBER {
			t = a.inferNumber(lit, expected, true)
			if !a.halted() {
				a.info.Types.Put(lit, t)
			}
		} else {
			t = a.inferExpr(u.X, expected)
		}
		if a.halted() {
			return types.Unknown
		}
		if !t.IsNumeric() || t.Kind == types.KindUnsigned {
			a.addInvalidOperationError("-", types.Unknown, t, u)
			return types.Unknown
		}
		return t
	}
	a.addInvalidOperationError(u.Op, types.Unknown, a.inferExpr(u.X, types.Unknown), u)
	return types.Unknown
}

func (a *Analyzer) inferBinary(b *ast.BinaryExpr, expected types.Type) types.Type {
	switch b.Op {
	case "&&", "||":
		a.expectExpr(b.Left, types.Bool)
		a.expectExpr(b.Right, types.Bool)
		return types.Bool

	case "==", "!=", "<", "<=", ">", ">=":
		left, right := a.inferOperands(b.Left, b.Right, types.Unknown)
		if a.halted() {
			return types.Unknown
		}
		if left.IsNumeric() && right.IsNumeric() {
			result, ok := types.Promote(left, right)
			if !ok {
				a.addInvalidOperationError(b.Op, left, right, b)
				return types.Unknown
			}
			a.coerce(b.Left, result)
			a.coerce(b.Right, result)
			return types.Bool
		}
		if left.IsString() && right.IsString() {
			return types.Bool
		}
		if b.Op != "==" && b.Op != "!=" {
			a.addInvalidOperationError(b.Op, left, right, b)
			return types.Unknown
		}
		if !left.Equal(right) && !a.assignable(right, left) && !a.assignable(left, right) {
			a.addInvalidOperationError(b.Op, left, right, b)
			return types.Unknown
		}
		return types.Bool

	case "+", "-", "*", "/", "%":
		hint := expected
		if hint.Kind == types.KindOption {
			hint = hint.Elem()
		}
		if !hint.IsNumeric() {
			hint = types.Unknown
		}
		left, right := a.inferOperands(b.Left, b.Right, hint)
		if a.halted() {
			return types.Unknown
		}
		if b.Op == "+" && (left.IsString() || right.IsString()) {
			return types.String
		}
		result, ok := types.Promote(left, right)
		if !ok || !result.IsNumeric() {
			a.addInvalidOperationError(b.Op, left, right, b)
			return types.Unknown
		}
		a.coerce(b.Left, result)
		a.coerce(b.Right, result)
		return result
	}

	a.addInvalidOperationError(b.Op, types.Unknown, types.Unknown, b)
	return types.Unknown
}

// inferOperands types both sides of a binary operator. The typed side goes
// first so an untyped literal on the other side takes its width.
func (a *Analyzer) inferOperands(left, right ast.Expr, hint types.Type) (types.Type, types.Type) {
	if isUntypedLiteral(left) && !isUntypedLiteral(right) {
		r := a.inferExpr(right, hint)
		l := a.inferExpr(left, r)
		return l, r
	}
	l := a.inferExpr(left, hint)
	r := a.inferExpr(right, l)
	return l, r
}

func isUntypedLiteral(e ast.Expr) bool {
	switch e := e.(type) {
	case *ast.LiteralExpr:
		return e.Kind == ast.NUMBER || e.Kind == ast.NULL
	case *ast.UnaryExpr:
		return e.Op == "-" && isUntypedLiteral(e.X)
	case *ast.ParenExpr:
		return isUntypedLiteral(e.X)
	}
	return false
}

func (a *Analyzer) inferMember(m *ast.MemberExpr) types.Type {
	if id, ok := m.X.(*ast.IdentExpr); ok && a.lookup(id.Name) == nil && a.context.IsStandardModule(id.Name) {
		a.addCompilerError(errors.NewSemanticError(errors.ErrorInvalidOperation,
			fmt.Sprintf("'%s.%s' is a function", id.Name, m.Name.Value), m.Pos).
			WithSpan(m).
			WithSuggestion(fmt.Sprintf("call it: %s.%s()", id.Name, m.Name.Value)).
			Build())
		return types.Unknown
	}

	name := m.Name.Value

	// self.x in a script reads the script variable before the node field
	if _, ok := m.X.(*ast.SelfExpr); ok && a.currentStruct == nil {
		if sym := a.scope.LookupLocal(name); sym != nil {
			a.info.Types.Put(m.X, types.Node(a.info.NodeType))
			sym.Used = true
			a.info.Members[m] = &Member{Kind: MemberScriptVar, Name: name, Type: sym.Type, Var: sym}
			return sym.Type
		}
	}

	recv := a.inferExpr(m.X, types.Unknown)
	if a.halted() {
		return types.Unknown
	}
	if recv.Kind == types.KindOption && recv.Elem().IsNodeHandle() {
		recv = recv.Elem()
		a.coerce(m.X, recv)
	}

	switch recv.Kind {
	case types.KindNode, types.KindDynNode, types.KindUIElement, types.KindEngineStruct:
		reg, owner := a.context.registryFor(recv)
		code, kind := errors.ErrorUnknownNodeField, MemberNodeField
		switch recv.Kind {
		case types.KindUIElement:
			code, kind = errors.ErrorUnknownUIField, MemberUIField
		case types.KindEngineStruct:
			code, kind = errors.ErrorUnknownEngineField, MemberEngineField
		}
		f, _, ok := reg.Field(owner, name)
		if !ok {
			a.addCompilerError(errors.UnknownMember(code, owner, name, m.Name.Pos, reg.FieldNames(owner)))
			return types.Unknown
		}
		def, _ := reg.Def(owner)
		a.info.Members[m] = &Member{Kind: kind, Name: name, Rust: f.RustName, Owner: def.RustName, Type: f.Type}
		return f.Type

	case types.KindCustom:
		fs := a.flat[recv.Name]
		f := fs.Field(name)
		if f == nil {
			a.addCompilerError(errors.FieldNotFound(recv.Name, name, m.Name.Pos, fs.FieldNames()))
			return types.Unknown
		}
		a.info.Members[m] = &Member{Kind: MemberStructField, Name: name, Rust: name, Owner: recv.Name, Type: f.Type}
		return f.Type

	case types.KindObject:
		a.info.Members[m] = &Member{Kind: MemberObjectKey, Name: name, Rust: name, Type: types.Object}
		return types.Object
	}

	a.addCompilerError(errors.NewSemanticError(errors.ErrorFieldNotFound,
		fmt.Sprintf("type %s has no field '%s'", recv, name), m.Name.Pos).
		WithLength(len(name)).
		Build())
	return types.Unknown
}

// inferNodeVar types "handle::name", a script variable of another node
// read through the engine as a dynamic value.
func (a *Analyzer) inferNodeVar(n *ast.NodeVarExpr) types.Type {
	recv := a.inferExpr(n.X, types.Unknown)
	if a.halted() {
		return types.Unknown
	}
	if recv.IsNodeHandle() || (recv.Kind == types.KindOption && recv.Elem().IsNodeHandle()) {
		a.coerce(n.X, types.DynNode)
		return types.Object
	}
	a.addCompilerError(errors.NewSemanticError(errors.ErrorTypeMismatch,
		fmt.Sprintf("'::' needs a node handle, found %s", recv), n.X.NodePos()).
		WithSpan(n.X).
		Build())
	return types.Unknown
}

func (a *Analyzer) inferIndex(ix *ast.IndexExpr) types.Type {
	recv := a.inferExpr(ix.X, types.Unknown)
	if a.halted() {
		return types.Unknown
	}
	switch recv.Kind {
	case types.KindArray, types.KindFixedArray:
		idx := a.inferExpr(ix.Index, types.I32)
		if !a.halted() && !idx.IsInteger() {
			a.addTypeMismatchError(types.I32, idx, ix.Index)
			return types.Unknown
		}
		return recv.Elem()
	case types.KindMap:
		a.expectExpr(ix.Index, recv.Key())
		return recv.Value()
	case types.KindObject:
		idx := a.inferExpr(ix.Index, types.Unknown)
		if !a.halted() && !idx.IsString() && !idx.IsInteger() {
			a.addTypeMismatchError(types.String, idx, ix.Index)
			return types.Unknown
		}
		return types.Object
	}
	a.addCompilerError(errors.NewSemanticError(errors.ErrorInvalidOperation,
		fmt.Sprintf("cannot index a value of type %s", recv), ix.Pos).
		WithSpan(ix.X).
		Build())
	return types.Unknown
}

func (a *Analyzer) inferObject(o *ast.ObjectLiteral) types.Type {
	seen := make(map[string]bool)
	for _, f := range o.Fields {
		if seen[f.Key.Value] {
			a.addCompilerError(errors.DuplicateDeclaration(f.Key.Value, f.Key.Pos))
			return types.Unknown
		}
		seen[f.Key.Value] = true
		a.expectExpr(f.Value, types.Object)
	}
	return types.Object
}

func (a *Analyzer) inferArray(arr *ast.ArrayLiteral, expected types.Type) types.Type {
	target := expected
	if target.Kind == types.KindOption {
		target = target.Elem()
	}

	switch target.Kind {
	case types.KindArray:
		for _, el := range arr.Elems {
			a.expectExpr(el, target.Elem())
		}
		return target
	case types.KindFixedArray:
		if len(arr.Elems) != target.Size {
			a.addCompilerError(errors.NewSemanticError(errors.ErrorTypeMismatch,
				fmt.Sprintf("type mismatch: expected %s, found %d element(s)", target, len(arr.Elems)), arr.Pos).
				WithSpan(arr).
				Build())
			return types.Unknown
		}
		for _, el := range arr.Elems {
			a.expectExpr(el, target.Elem())
		}
		return target
	case types.KindObject:
		for _, el := range arr.Elems {
			a.expectExpr(el, types.Object)
		}
		return types.Object
	}

	if len(arr.Elems) == 0 {
		a.addCompilerError(errors.UnresolvedType("an empty array literal", arr.Pos))
		return types.Unknown
	}
	first := a.inferExpr(arr.Elems[0], types.Unknown)
	for _, el := range arr.Elems[1:] {
		a.expectExpr(el, first)
	}
	return types.Array(first)
}

func (a *Analyzer) inferCast(c *ast.CastExpr) types.Type {
	target, ok := a.resolveTypeRef(c.Type)
	if !ok {
		return types.Unknown
	}
	from := a.inferExpr(c.X, types.Unknown)
	if a.halted() {
		return types.Unknown
	}
	if !a.castable(from, target) {
		a.addInvalidOperationError("as", from, target, c)
		return types.Unknown
	}
	return target
}

// castable lists the explicit conversions codegen knows how to emit.
func (a *Analyzer) castable(from, to types.Type) bool {
	if from.Equal(to) || a.assignable(from, to) {
		return true
	}
	switch {
	case from.IsNumeric() && to.IsNumeric():
		// decimals and big integers only convert up from primitives
		return from.Kind != types.KindDecimal && from.Kind != types.KindBigInt
	case from.Kind == types.KindBool && to.IsInteger():
		return true
	case from.IsNodeHandle() && to.IsNodeHandle():
		return true
	case from.Kind == types.KindOption && from.Elem().IsNodeHandle() && to.IsNodeHandle():
		return true
	case from.Kind == types.KindUIElement && to.Kind == types.KindUIElement:
		return true
	case from.Kind == types.KindObject:
		return true
	case to.Kind == types.KindString:
		return from.IsNumeric() || from.Kind == types.KindBool || from.IsString()
	case from.IsString() && (to.IsNumeric() || to.Kind == types.KindBool):
		return true
	case to.Kind == types.KindObject:
		return true
	}
	return false
}

func calleeName(e ast.Expr) string {
	if c, ok := e.(*ast.CallExpr); ok {
		switch callee := c.Callee.(type) {
		case *ast.IdentExpr:
			return callee.Name
		case *ast.MemberExpr:
			return callee.Name.Value
		}
	}
	return e.String()
}
