package semantic

import (
	"fmt"
	"strings"

	"pup/internal/ast"
	"pup/internal/builtins"
	"pup/internal/errors"
	"pup/internal/registry"
	"pup/internal/stdlib"
	"pup/internal/types"
)

// resolveTypeRef turns a written type into a resolved one, reporting
// unknown names with suggestions.
func (a *Analyzer) resolveTypeRef(ref *ast.TypeRef) (types.Type, bool) {
	if ref.IsFixedArray() {
		elem, ok := a.resolveTypeRef(ref.Args[0])
		if !ok {
			return types.Unknown, false
		}
		return types.FixedArray(elem, ref.Size), true
	}

	if want, generic := builtins.Generics[ref.Name]; generic {
		if len(ref.Args) != want {
			a.addCompilerError(errors.NewSemanticError(errors.ErrorUnknownType,
				fmt.Sprintf("%s takes %d type argument(s), got %d", ref.Name, want, len(ref.Args)), ref.Pos).
				WithSpan(ref).
				Build())
			return types.Unknown, false
		}
		args := make([]types.Type, len(ref.Args))
		for i, arg := range ref.Args {
			t, ok := a.resolveTypeRef(arg)
			if !ok {
				return types.Unknown, false
			}
			args[i] = t
		}
		switch ref.Name {
		case "Option":
			return types.Option(args[0]), true
		case "Array":
			return types.Array(args[0]), true
		default:
			return types.Map(args[0], args[1]), true
		}
	}

	if len(ref.Args) > 0 {
		a.addCompilerError(errors.NewSemanticError(errors.ErrorUnknownType,
			fmt.Sprintf("type '%s' takes no type arguments", ref.Name), ref.Pos).
			WithSpan(ref).
			Build())
		return types.Unknown, false
	}

	if _, ok := a.structDecls[ref.Name]; ok {
		return types.Custom(ref.Name), true
	}
	if t, ok := registry.LookupType(ref.Name); ok {
		return t, true
	}

	a.addCompilerError(errors.UnknownType(ref.Name, ref.Pos,
		errors.FindSimilarNames(ref.Name, a.typeNames())))
	return types.Unknown, false
}

// typeNames lists every name a type annotation may use, for suggestions.
func (a *Analyzer) typeNames() []string {
	var names []string
	for name := range builtins.Scalars {
		names = append(names, name)
	}
	for name := range builtins.Generics {
		names = append(names, name)
	}
	for name := range builtins.EngineStructs {
		names = append(names, name)
	}
	for name := range builtins.Resources {
		names = append(names, name)
	}
	names = append(names, a.context.Nodes.Names()...)
	names = append(names, a.context.UI.Names()...)
	names = append(names, a.structNames()...)
	return names
}

// isConstant reports whether e can initialize a script variable or struct
// field: literals and operators over them, plus constructors and pure API
// calls with constant arguments. Calls are checked loosely until resolved.
func (a *Analyzer) isConstant(e ast.Expr) bool {
	switch e := e.(type) {
	case *ast.LiteralExpr:
		return !e.Interpolated
	case *ast.UnaryExpr:
		return a.isConstant(e.X)
	case *ast.BinaryExpr:
		return a.isConstant(e.Left) && a.isConstant(e.Right)
	case *ast.ParenExpr:
		return a.isConstant(e.X)
	case *ast.CastExpr:
		return a.isConstant(e.X)
	case *ast.ArrayLiteral:
		return allConstant(a, e.Elems)
	case *ast.ObjectLiteral:
		for _, f := range e.Fields {
			if !a.isConstant(f.Value) {
				return false
			}
		}
		return true
	case *ast.NewExpr:
		return allConstant(a, e.Args)
	case *ast.CallExpr:
		if !allConstant(a, e.Args) {
			return false
		}
		call, resolved := a.info.Calls[e]
		if !resolved {
			// plain names and Namespace.fn only; receivers are values
			switch callee := e.Callee.(type) {
			case *ast.IdentExpr:
				return true
			case *ast.MemberExpr:
				_, ok := callee.X.(*ast.IdentExpr)
				return ok
			}
			return false
		}
		return isPureCall(call)
	}
	return false
}

func allConstant(a *Analyzer, exprs []ast.Expr) bool {
	for _, e := range exprs {
		if !a.isConstant(e) {
			return false
		}
	}
	return true
}

// isPureCall reports whether a resolved call can run before the script is
// attached to a node.
func isPureCall(call *Call) bool {
	switch call.Kind {
	case CallStructConstructor, CallEngineConstructor:
		return true
	case CallModuleAPI, CallResourceAPI:
		return apiIsPure(call.API)
	}
	return false
}

func apiIsPure(def stdlib.FunctionDefinition) bool {
	return !strings.Contains(def.Template, "api.") && !strings.Contains(def.Template, "self.")
}
