package semantic

import (
	"fmt"
	"strings"

	"pup/internal/ast"
	"pup/internal/errors"
	"pup/internal/types"
)

func (a *Analyzer) pushScope() {
	a.symbols = NewSymbolTable(a.symbols)
}

// popScope leaves the innermost scope, warning about locals nobody read.
func (a *Analyzer) popScope() {
	if !a.halted() {
		for _, sym := range a.symbols.Declared() {
			if sym.Kind == SymbolLocal && !sym.Used && !strings.HasPrefix(sym.Name, "_") {
				a.info.Warnings = append(a.info.Warnings, errors.UnusedVariable(sym.Name, sym.Position))
			}
		}
	}
	a.symbols = a.symbols.parent
}

func (a *Analyzer) analyzeBlock(b *ast.Block) {
	a.pushScope()
	for _, stmt := range b.Stmts {
		if a.halted() {
			break
		}
		a.analyzeStmt(stmt)
	}
	a.popScope()
}

func (a *Analyzer) analyzeStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.Block:
		a.analyzeBlock(s)
	case *ast.VarStmt:
		a.analyzeVarStmt(s)
	case *ast.AssignStmt:
		a.analyzeAssign(s)
	case *ast.ExprStmt:
		a.infer(s.X, types.Unknown, true)
	case *ast.IfStmt:
		a.expectExpr(s.Cond, types.Bool)
		a.analyzeBlock(s.Then)
		if s.Else != nil && !a.halted() {
			a.analyzeStmt(s.Else)
		}
	case *ast.WhileStmt:
		a.expectExpr(s.Cond, types.Bool)
		a.loopDepth++
		a.analyzeBlock(s.Body)
		a.loopDepth--
	case *ast.ForStmt:
		a.analyzeFor(s)
	case *ast.ReturnStmt:
		a.analyzeReturn(s)
	case *ast.BreakStmt:
		a.checkInLoop("break", s.Pos)
	case *ast.ContinueStmt:
		a.checkInLoop("continue", s.Pos)
	case *ast.PassStmt:
	}
}

func (a *Analyzer) analyzeVarStmt(s *ast.VarStmt) {
	name := s.Name.Value
	if a.symbols.LookupLocal(name) != nil {
		a.addCompilerError(errors.DuplicateDeclaration(name, s.Name.Pos))
		return
	}

	declared := types.Unknown
	if s.Type != nil {
		t, ok := a.resolveTypeRef(s.Type)
		if !ok {
			return
		}
		declared = t
	}

	// the initializer is typed before the name is in scope
	if s.Value != nil {
		actual := a.expectExpr(s.Value, declared)
		if declared.Kind == types.KindUnknown {
			declared = actual
		}
	} else if declared.Kind == types.KindUnknown {
		a.addCompilerError(errors.UnresolvedType(fmt.Sprintf("variable '%s'", name), s.Name.Pos))
	}
	if a.halted() {
		return
	}

	sym := a.symbols.Define(name, SymbolLocal, s, s.Name.Pos)
	sym.Type = declared
	sym.Const = s.Const
	a.info.Decls[s] = sym
}

func (a *Analyzer) analyzeAssign(s *ast.AssignStmt) {
	if s.Op == ast.ILLEGAL_ASSIGN {
		a.addCompilerError(errors.ComparisonAssignment(s.OpText, s.Pos))
		return
	}
	target := a.inferTarget(s.Target)
	if a.halted() {
		return
	}

	if s.Op == ast.ASSIGN {
		a.expectExpr(s.Value, target)
		return
	}

	op := s.Op.BinaryOp()
	if op == "+" && target.Kind == types.KindString {
		a.inferExpr(s.Value, types.Unknown)
		return
	}
	if !target.IsNumeric() {
		value := a.inferExpr(s.Value, types.Unknown)
		if !a.halted() {
			a.addCompilerError(errors.InvalidOperation(s.OpText, target.String(), value.String(), s.Pos))
		}
		return
	}
	a.expectExpr(s.Value, target)
}

// inferTarget types the left side of an assignment and checks that it
// names a place that can be written.
func (a *Analyzer) inferTarget(target ast.Expr) types.Type {
	switch t := target.(type) {
	case *ast.IdentExpr:
		sym := a.lookup(t.Name)
		if sym == nil {
			a.addUndefinedVariableError(t.Name, t.Pos)
			return types.Unknown
		}
		if sym.Const {
			a.addCompilerError(errors.InvalidAssignment(fmt.Sprintf("cannot assign to constant '%s'", t.Name), t.Pos))
			return types.Unknown
		}
		a.info.Symbols[t] = sym
		a.info.Types.Put(t, sym.Type)
		return sym.Type

	case *ast.MemberExpr:
		ty := a.inferExpr(t, types.Unknown)
		if a.halted() {
			return ty
		}
		member := a.info.Members[t]
		if member != nil && member.Kind == MemberScriptVar && member.Var.Const {
			a.addCompilerError(errors.InvalidAssignment(fmt.Sprintf("cannot assign to constant '%s'", member.Name), t.Name.Pos))
			return types.Unknown
		}
		if !a.isPlace(t) {
			a.addCompilerError(errors.InvalidAssignment("cannot assign to a field of a temporary value", t.Pos))
			return types.Unknown
		}
		return ty

	case *ast.IndexExpr:
		ty := a.inferExpr(t, types.Unknown)
		if !a.halted() && !a.isPlace(t.X) {
			a.addCompilerError(errors.InvalidAssignment("cannot assign into a temporary value", t.Pos))
			return types.Unknown
		}
		return ty

	case *ast.NodeVarExpr:
		return a.inferExpr(t, types.Unknown)

	case *ast.ParenExpr:
		return a.inferTarget(t.X)
	}

	a.addCompilerError(errors.InvalidAssignment("invalid assignment target", target.NodePos()))
	return types.Unknown
}

// isPlace reports whether e denotes storage: a variable, a field of one,
// or a field reached through a node or UI handle.
func (a *Analyzer) isPlace(e ast.Expr) bool {
	switch e := e.(type) {
	case *ast.IdentExpr, *ast.SelfExpr:
		return true
	case *ast.ParenExpr:
		return a.isPlace(e.X)
	case *ast.IndexExpr:
		return a.isPlace(e.X)
	case *ast.MemberExpr:
		member := a.info.Members[e]
		if member == nil {
			return false
		}
		switch member.Kind {
		case MemberNodeField, MemberUIField, MemberScriptVar:
			return true
		}
		return a.isPlace(e.X)
	}
	return false
}

func (a *Analyzer) analyzeFor(s *ast.ForStmt) {
	var elem types.Type
	if rng, ok := s.Iter.(*ast.RangeExpr); ok {
		elem = a.inferRange(rng)
	} else {
		iter := a.inferExpr(s.Iter, types.Unknown)
		if a.halted() {
			return
		}
		switch iter.Kind {
		case types.KindArray, types.KindFixedArray:
			elem = iter.Elem()
		case types.KindMap:
			elem = iter.Key()
		case types.KindObject:
			elem = types.Object
		default:
			a.addCompilerError(errors.NewSemanticError(errors.ErrorInvalidOperation,
				fmt.Sprintf("cannot iterate over %s", iter), s.Iter.NodePos()).
				WithSpan(s.Iter).
				WithHelp("for loops run over a range, an array, a map's keys or an object").
				Build())
			return
		}
	}
	if a.halted() {
		return
	}

	a.pushScope()
	sym := a.symbols.Define(s.Var.Value, SymbolLocal, s, s.Var.Pos)
	sym.Type = elem
	a.info.Decls[s] = sym

	a.loopDepth++
	a.analyzeBlock(s.Body)
	a.loopDepth--
	a.popScope()
}

// inferRange types both bounds as one integer type.
func (a *Analyzer) inferRange(r *ast.RangeExpr) types.Type {
	start, end := a.inferOperands(r.Start, r.End, types.I32)
	if a.halted() {
		return types.Unknown
	}
	result, ok := types.Promote(start, end)
	if !ok || !result.IsInteger() {
		a.addCompilerError(errors.InvalidOperation("..", start.String(), end.String(), r.Pos))
		return types.Unknown
	}
	a.coerce(r.Start, result)
	a.coerce(r.End, result)
	a.info.Types.Put(r, result)
	return result
}

func (a *Analyzer) analyzeReturn(s *ast.ReturnStmt) {
	fn := a.currentFn
	if s.Value == nil {
		if fn.Return.Kind != types.KindVoid {
			a.addCompilerError(errors.NewSemanticError(errors.ErrorInvalidReturnType,
				fmt.Sprintf("missing return value: function '%s' returns %s", fn.Name, fn.Return), s.Pos).
				WithLength(len("return")).
				Build())
		}
		return
	}
	if fn.Return.Kind == types.KindVoid {
		a.addCompilerError(errors.NewSemanticError(errors.ErrorInvalidReturnType,
			fmt.Sprintf("function '%s' does not return a value", fn.Name), s.Value.NodePos()).
			WithSpan(s.Value).
			WithSuggestion(fmt.Sprintf("declare a return type: fn %s(...) -> <type>", fn.Name)).
			Build())
		return
	}
	a.expectExpr(s.Value, fn.Return)
}

func (a *Analyzer) checkInLoop(keyword string, pos ast.Position) {
	if a.loopDepth == 0 {
		a.addCompilerError(errors.NewSemanticError(errors.ErrorInvalidOperation,
			fmt.Sprintf("'%s' outside of a loop", keyword), pos).
			WithLength(len(keyword)).
			Build())
	}
}
