package semantic

import (
	"fmt"

	"pup/internal/ast"
	"pup/internal/errors"
	"pup/internal/types"
)

// addCompilerError records err unless the pass has already failed.
func (a *Analyzer) addCompilerError(err errors.CompilerError) {
	if a.halted() {
		return
	}
	a.errors = append(a.errors, err)
}

func (a *Analyzer) addUndefinedVariableError(name string, pos ast.Position) {
	a.addCompilerError(errors.UndefinedVariable(name, pos,
		errors.FindSimilarNames(name, a.symbols.Names())))
}

func (a *Analyzer) addUndefinedFunctionError(name string, pos ast.Position) {
	a.addCompilerError(errors.UndefinedFunction(name, pos,
		errors.FindSimilarNames(name, a.callableNames())))
}

func (a *Analyzer) addTypeMismatchError(expected, actual types.Type, e ast.Expr) {
	err := errors.TypeMismatch(expected.String(), actual.String(), e.NodePos())
	if l := e.NodeEndPos().Offset - e.NodePos().Offset; l > 0 {
		err.Length = l
	}
	a.addCompilerError(err)
}

func (a *Analyzer) addVoidError(name string, pos ast.Position) {
	a.addCompilerError(errors.VoidInExpression(name, pos))
}

func (a *Analyzer) addInvalidOperationError(op string, left, right types.Type, e ast.Expr) {
	l := left.String()
	if left.Kind == types.KindUnknown {
		l = ""
	}
	err := errors.InvalidOperation(op, l, right.String(), e.NodePos())
	if n := e.NodeEndPos().Offset - e.NodePos().Offset; n > 0 {
		err.Length = n
	}
	a.addCompilerError(err)
}

func (a *Analyzer) addNumericOverflowError(raw string, target types.Type, pos ast.Position) {
	a.addCompilerError(errors.NewSemanticError(errors.ErrorNumericOverflow,
		fmt.Sprintf("literal %s does not fit in %s", raw, target), pos).
		WithLength(len(raw)).
		WithSuggestion("use a wider integer type, or big_int").
		Build())
}
