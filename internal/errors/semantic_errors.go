package errors

import (
	"fmt"
	"strings"

	"pup/internal/ast"
)

// SemanticErrorBuilder provides a fluent interface for creating semantic errors with suggestions
type SemanticErrorBuilder struct {
	err CompilerError
}

// NewSemanticError creates a new semantic error builder
func NewSemanticError(code, message string, pos ast.Position) *SemanticErrorBuilder {
	return &SemanticErrorBuilder{
		err: CompilerError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// NewSemanticWarning creates a new semantic warning builder
func NewSemanticWarning(code, message string, pos ast.Position) *SemanticErrorBuilder {
	return &SemanticErrorBuilder{
		err: CompilerError{
			Level:    Warning,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// WithLength sets the length of the error span
func (b *SemanticErrorBuilder) WithLength(length int) *SemanticErrorBuilder {
	b.err.Length = length
	return b
}

// WithSpan sets position and length from a node
func (b *SemanticErrorBuilder) WithSpan(n ast.Node) *SemanticErrorBuilder {
	b.err.Position = n.NodePos()
	if l := n.NodeEndPos().Offset - n.NodePos().Offset; l > 0 {
		b.err.Length = l
	}
	return b
}

// WithSuggestion adds a suggestion to the error
func (b *SemanticErrorBuilder) WithSuggestion(message string) *SemanticErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

// WithReplacement adds a suggestion with replacement text
func (b *SemanticErrorBuilder) WithReplacement(message, replacement string, pos ast.Position, length int) *SemanticErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{
		Message:     message,
		Replacement: replacement,
		Position:    pos,
		Length:      length,
	})
	return b
}

// WithNote adds a note to the error
func (b *SemanticErrorBuilder) WithNote(note string) *SemanticErrorBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

// WithHelp adds help text to the error
func (b *SemanticErrorBuilder) WithHelp(help string) *SemanticErrorBuilder {
	b.err.HelpText = help
	return b
}

// Build returns the completed compiler error
func (b *SemanticErrorBuilder) Build() CompilerError {
	return b.err
}

func (b *SemanticErrorBuilder) withSimilar(similar []string) *SemanticErrorBuilder {
	switch len(similar) {
	case 0:
		return b
	case 1:
		return b.WithSuggestion(fmt.Sprintf("did you mean '%s'?", similar[0]))
	default:
		return b.WithSuggestion(fmt.Sprintf("did you mean one of: '%s'?", strings.Join(similar, "', '")))
	}
}

// Lexer and parser errors

func LexicalError(message string, pos ast.Position, length int) CompilerError {
	return NewSemanticError(ErrorLexical, message, pos).WithLength(length).Build()
}

func SyntaxError(message string, pos ast.Position, length int) CompilerError {
	return NewSemanticError(ErrorSyntax, message, pos).WithLength(length).Build()
}

// UndefinedVariable creates an error for undefined variables with suggestions
func UndefinedVariable(name string, pos ast.Position, similarNames []string) CompilerError {
	builder := NewSemanticError(ErrorUndefinedVariable, fmt.Sprintf("undefined variable '%s'", name), pos).
		WithLength(len(name))

	if len(similarNames) > 0 {
		builder = builder.withSimilar(similarNames)
	} else {
		builder = builder.WithSuggestion("make sure the variable is declared before use").
			WithNote("variables are declared with 'var', 'let' or 'const'")
	}

	return builder.Build()
}

// UndefinedFunction creates an error for undefined functions with suggestions
func UndefinedFunction(name string, pos ast.Position, similarNames []string) CompilerError {
	return NewSemanticError(ErrorUndefinedFunction, fmt.Sprintf("function '%s' is not defined", name), pos).
		WithLength(len(name)).
		withSimilar(similarNames).
		WithHelp("functions must be defined in the script or provided by the node type or an engine module").
		Build()
}

// TypeMismatch creates an error for type mismatches with conversion suggestions
func TypeMismatch(expected, actual string, pos ast.Position) CompilerError {
	builder := NewSemanticError(ErrorTypeMismatch, fmt.Sprintf("type mismatch: expected %s, found %s", expected, actual), pos)

	if isNumericType(expected) && isNumericType(actual) {
		builder = builder.WithSuggestion(fmt.Sprintf("convert explicitly: <expr> as %s", expected)).
			WithNote("narrowing conversions require explicit casts to prevent data loss")
	} else if expected == "bool" {
		builder = builder.WithSuggestion("use a comparison operator to create a boolean value")
	}

	return builder.Build()
}

// UnusedVariable creates a warning for unused variables
func UnusedVariable(name string, pos ast.Position) CompilerError {
	return NewSemanticWarning(WarningUnusedVariable, fmt.Sprintf("variable '%s' is declared but never used", name), pos).
		WithLength(len(name)).
		WithSuggestion("remove the variable declaration if it's not needed").
		Build()
}

// FieldNotFound creates an error for missing struct fields with suggestions
func FieldNotFound(structName, fieldName string, pos ast.Position, availableFields []string) CompilerError {
	return memberNotFound(ErrorFieldNotFound, "struct", structName, "field", fieldName, pos, availableFields)
}

// MethodNotFound reports a struct or value type without the called method
func MethodNotFound(typeName, method string, pos ast.Position, available []string) CompilerError {
	return memberNotFound(ErrorUndefinedFunction, "type", typeName, "method", method, pos, available)
}

// UnknownMember reports a node, UI element or module member that the
// registry does not define.
func UnknownMember(code, owner, member string, pos ast.Position, available []string) CompilerError {
	kind, what := "node type", "field"
	switch code {
	case ErrorUnknownNodeMethod:
		what = "method"
	case ErrorUnknownModuleCall:
		kind, what = "module", "function"
	case ErrorUnknownUIField:
		kind = "UI element"
	case ErrorUnknownEngineField:
		kind = "type"
	}
	return memberNotFound(code, kind, owner, what, member, pos, available)
}

func memberNotFound(code, kind, owner, what, member string, pos ast.Position, available []string) CompilerError {
	builder := NewSemanticError(code, fmt.Sprintf("%s '%s' has no %s '%s'", kind, owner, what, member), pos).
		WithLength(len(member))

	if len(available) > 0 {
		builder = builder.withSimilar(findSimilarNames(member, available)).
			WithNote(fmt.Sprintf("available %ss: %s", what, strings.Join(available, ", ")))
	}

	return builder.Build()
}

// DuplicateField creates an error for a field repeated along a struct chain
func DuplicateField(structName, fieldName, declaredIn string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorDuplicateField, fmt.Sprintf("field '%s' of struct '%s' is already declared by '%s'", fieldName, structName, declaredIn), pos).
		WithLength(len(fieldName)).
		WithSuggestion("rename the field or remove it from one of the structs").
		WithNote("inherited fields are copied into the derived struct").
		Build()
}

// InvalidOperation creates an error for invalid operations with type-specific suggestions
func InvalidOperation(op, leftType, rightType string, pos ast.Position) CompilerError {
	message := fmt.Sprintf("invalid operation: %s %s %s", leftType, op, rightType)
	if leftType == "" {
		message = fmt.Sprintf("invalid operation: %s%s", op, rightType)
	}
	builder := NewSemanticError(ErrorInvalidOperation, message, pos)

	switch op {
	case "+", "-", "*", "/", "%":
		builder = builder.WithSuggestion("arithmetic operations require numeric types")
	case "&&", "||", "!":
		builder = builder.WithSuggestion("logical operations require boolean operands")
	case "==", "!=", "<", "<=", ">", ">=":
		builder = builder.WithSuggestion("comparison operands must be of compatible types")
	}

	return builder.Build()
}

// Helper functions

func isNumericType(typeName string) bool {
	for _, prefix := range []string{"int_", "uint_", "float_"} {
		if strings.HasPrefix(typeName, prefix) {
			return true
		}
	}
	return typeName == "decimal" || typeName == "big_int"
}

// FindSimilarNames returns the candidates within a small edit distance.
func FindSimilarNames(target string, candidates []string) []string {
	return findSimilarNames(target, candidates)
}

func findSimilarNames(target string, candidates []string) []string {
	var similar []string

	for _, candidate := range candidates {
		if candidate != target && levenshteinDistance(target, candidate) <= 2 && len(candidate) > 2 {
			similar = append(similar, candidate)
		}
	}

	return similar
}

// Simple Levenshtein distance implementation for finding similar names
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
	}
	for i := 0; i <= len(a); i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			matrix[i][j] = min3(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(a)][len(b)]
}

// DuplicateDeclaration creates an error for duplicate declarations
func DuplicateDeclaration(name string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorDuplicateDeclaration, fmt.Sprintf("duplicate declaration: %s", name), pos).
		WithLength(len(name)).
		WithSuggestion(fmt.Sprintf("rename the duplicate '%s' to a unique name", name)).
		WithNote("identifiers must be unique within their scope").
		Build()
}

// InvalidAttribute creates an error for invalid attributes
func InvalidAttribute(attributeName, allowed string, pos ast.Position) CompilerError {
	builder := NewSemanticError(ErrorInvalidAttribute, fmt.Sprintf("invalid attribute: @%s", attributeName), pos).
		WithLength(len(attributeName) + 1).
		WithHelp(fmt.Sprintf("only @%s is allowed here", allowed))

	if levenshteinDistance(attributeName, allowed) <= 2 {
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean '@%s'?", allowed))
	}

	return builder.Build()
}

// InvalidArguments creates an error for function call argument mismatches
func InvalidArguments(functionName string, expected, actual int, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorInvalidArguments,
		fmt.Sprintf("function '%s' expects %d arguments, got %d", functionName, expected, actual), pos).
		WithSuggestion(fmt.Sprintf("provide exactly %d argument(s)", expected)).
		WithHelp("check the function signature for the correct number of parameters").
		Build()
}

// InvalidAssignment creates an error for invalid assignment operations
func InvalidAssignment(message string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorInvalidAssignment, message, pos).
		WithHelp("assignments must be to assignable expressions").
		WithSuggestion("ensure the target is a variable, field access, node variable or index expression").
		Build()
}

// AmbiguousCall reports a bare call that matches a script function and an
// engine-provided function.
func AmbiguousCall(name string, candidates []string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorAmbiguousCall, fmt.Sprintf("ambiguous call to '%s'", name), pos).
		WithLength(len(name)).
		WithNote(fmt.Sprintf("'%s' matches: %s", name, strings.Join(candidates, ", "))).
		WithSuggestion(fmt.Sprintf("rename the script function '%s'", name)).
		WithSuggestion(fmt.Sprintf("or call it through self: self.%s(...)", name)).
		Build()
}

// InheritanceCycle names every struct of the cycle, starting and ending
// with the same struct.
func InheritanceCycle(cycle []string, pos ast.Position) CompilerError {
	path := strings.Join(cycle, " -> ")
	return NewSemanticError(ErrorInheritanceCycle, fmt.Sprintf("inheritance cycle: %s", path), pos).
		WithLength(len(cycle[0])).
		WithNote("a struct cannot extend itself directly or through its bases").
		Build()
}

// RecursiveStruct reports a struct reached again through the fields it
// holds by value; path lists the fields walked, struct.field each.
func RecursiveStruct(path []string, pos ast.Position, field string) CompilerError {
	return NewSemanticError(ErrorRecursiveStruct, fmt.Sprintf("recursive struct: %s", strings.Join(path, " -> ")), pos).
		WithLength(len(field)).
		WithNote("Option and fixed arrays hold their element inline").
		WithHelp("hold the struct in an Array or a Map to break the cycle").
		Build()
}

func UnknownBase(structName, base string, pos ast.Position, similar []string) CompilerError {
	return NewSemanticError(ErrorUnknownBase, fmt.Sprintf("struct '%s' extends unknown struct '%s'", structName, base), pos).
		WithLength(len(base)).
		withSimilar(similar).
		WithHelp("base structs must be defined in the same script").
		Build()
}

func UnknownType(name string, pos ast.Position, similar []string) CompilerError {
	return NewSemanticError(ErrorUnknownType, fmt.Sprintf("unknown type '%s'", name), pos).
		WithLength(len(name)).
		withSimilar(similar).
		Build()
}

func VoidInExpression(name string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorVoidInExpression, fmt.Sprintf("'%s' does not return a value", name), pos).
		WithLength(len(name)).
		Build()
}

func NonConstantInitializer(name string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorNonConstantInitializer, fmt.Sprintf("script variable '%s' must be initialized with a constant expression", name), pos).
		WithSuggestion("assign the value in init() instead").
		Build()
}

func NullWithoutOption(pos ast.Position) CompilerError {
	return NewSemanticError(ErrorNullWithoutOption, "null can only be used where an Option type is expected", pos).
		WithLength(4).
		WithSuggestion("declare the variable as Option<T>").
		Build()
}

func ComparisonAssignment(op string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorComparisonAssignment, fmt.Sprintf("operator '%s' cannot be used in a compound assignment", op), pos).
		WithLength(len(op)).
		Build()
}

func UnresolvedType(what string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorUnresolvedType, fmt.Sprintf("cannot infer the type of %s", what), pos).
		WithSuggestion("add a type annotation").
		Build()
}

func UndefinedModule(name string, pos ast.Position, similar []string) CompilerError {
	return NewSemanticError(ErrorUndefinedModule, fmt.Sprintf("unknown module '%s'", name), pos).
		WithLength(len(name)).
		withSimilar(similar).
		Build()
}

// DownstreamBuild reports a failed toolchain run. output is kept as a note,
// already remapped to script locations where possible.
func DownstreamBuild(tool, output string) CompilerError {
	b := NewSemanticError(ErrorDownstreamBuild, fmt.Sprintf("%s failed on the generated crate", tool), ast.Position{})
	if output = strings.TrimSpace(output); output != "" {
		b.WithNote(output)
	}
	return b.Build()
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
