package errors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pup/internal/ast"
)

func TestErrorReporter(t *testing.T) {
	source := `extends Node2D

fn update() {
    var x = unknownVar
    print(x)
}`

	reporter := NewErrorReporter("res://player.pup", source)

	err := UndefinedVariable("unknownVar", ast.Position{Line: 4, Column: 13}, []string{"knownVar", "anotherVar"})
	formatted := reporter.FormatError(err)

	assert.Contains(t, formatted, "error["+ErrorUndefinedVariable+"]")
	assert.Contains(t, formatted, "undefined variable")
	assert.Contains(t, formatted, "unknownVar")
	assert.Contains(t, formatted, "res://player.pup:4:13")
	assert.Contains(t, formatted, "did you mean")
	assert.Contains(t, formatted, "knownVar")
}

func TestCompilerErrorImplementsError(t *testing.T) {
	pos := ast.Position{Filename: "a.pup", Line: 2, Column: 7}
	var err error = UndefinedVariable("hp", pos, nil)
	assert.Equal(t, "a.pup:2:7: error[E0001]: undefined variable 'hp'", err.Error())

	noFile := CompilerError{Level: Warning, Message: "careful", Position: ast.Position{Line: 1, Column: 1}}
	assert.Equal(t, "1:1: warning: careful", noFile.Error())
}

func TestUndefinedVariableError(t *testing.T) {
	pos := ast.Position{Line: 1, Column: 5}

	err := UndefinedVariable("spede", pos, []string{"speed"})
	assert.Equal(t, ErrorUndefinedVariable, err.Code)
	assert.Contains(t, err.Message, "spede")
	assert.Len(t, err.Suggestions, 1)
	assert.Contains(t, err.Suggestions[0].Message, "did you mean 'speed'")

	err = UndefinedVariable("xyz", pos, []string{})
	assert.Len(t, err.Suggestions, 1)
	assert.Contains(t, err.Suggestions[0].Message, "make sure the variable is declared")
}

func TestUndefinedFunctionError(t *testing.T) {
	err := UndefinedFunction("prnt", ast.Position{Line: 1, Column: 5}, []string{"print"})
	assert.Equal(t, ErrorUndefinedFunction, err.Code)
	assert.Contains(t, err.Message, "prnt")
	assert.Len(t, err.Suggestions, 1)
	assert.Contains(t, err.Suggestions[0].Message, "did you mean 'print'")
	assert.NotEmpty(t, err.HelpText)
}

func TestTypeMismatchError(t *testing.T) {
	pos := ast.Position{Line: 1, Column: 5}

	err := TypeMismatch("int_32", "float_64", pos)
	assert.Equal(t, ErrorTypeMismatch, err.Code)
	assert.Contains(t, err.Message, "expected int_32, found float_64")
	assert.Contains(t, err.Suggestions[0].Message, "as int_32")

	err = TypeMismatch("bool", "int_32", pos)
	assert.Contains(t, err.Suggestions[0].Message, "comparison operator")
}

func TestUnknownMemberError(t *testing.T) {
	pos := ast.Position{Line: 1, Column: 5}

	err := UnknownMember(ErrorUnknownNodeField, "Sprite2D", "textur", pos, []string{"texture", "region", "name"})
	assert.Equal(t, ErrorUnknownNodeField, err.Code)
	assert.Contains(t, err.Message, "node type 'Sprite2D' has no field 'textur'")
	assert.Contains(t, err.Suggestions[0].Message, "did you mean 'texture'")
	assert.Contains(t, err.Notes[0], "available fields: texture, region, name")

	err = UnknownMember(ErrorUnknownModuleCall, "Time", "delta", pos, nil)
	assert.Contains(t, err.Message, "module 'Time' has no function 'delta'")
	assert.Empty(t, err.Notes)
}

func TestFieldNotFoundError(t *testing.T) {
	err := FieldNotFound("Person", "nam", ast.Position{Line: 1, Column: 5}, []string{"name", "age", "email"})
	assert.Equal(t, ErrorFieldNotFound, err.Code)
	assert.Contains(t, err.Message, "struct 'Person' has no field 'nam'")
	assert.Len(t, err.Suggestions, 1)
	assert.Contains(t, err.Suggestions[0].Message, "did you mean 'name'")
	assert.Contains(t, err.Notes[0], "available fields: name, age, email")
}

func TestInheritanceCycleError(t *testing.T) {
	err := InheritanceCycle([]string{"A", "B", "A"}, ast.Position{Line: 3, Column: 8})
	assert.Equal(t, ErrorInheritanceCycle, err.Code)
	assert.Equal(t, "inheritance cycle: A -> B -> A", err.Message)
}

func TestAmbiguousCallError(t *testing.T) {
	err := AmbiguousCall("get_node", []string{"script function", "method of Node"}, ast.Position{Line: 1, Column: 1})
	assert.Equal(t, ErrorAmbiguousCall, err.Code)
	assert.Contains(t, err.Message, "ambiguous call to 'get_node'")
	assert.Contains(t, err.Notes[0], "script function, method of Node")
}

func TestWarningFormatting(t *testing.T) {
	reporter := NewErrorReporter("test.pup", `var unused = 42`)

	formatted := reporter.FormatError(UnusedVariable("unused", ast.Position{Line: 1, Column: 5}))

	assert.Contains(t, formatted, "warning[W0001]")
	assert.Contains(t, formatted, "never used")
}

func TestErrorMarkerCreation(t *testing.T) {
	reporter := NewErrorReporter("test.pup", `var variable = value`)

	marker := reporter.createMarker(5, 8, Error)

	assert.Equal(t, 4, strings.Count(marker, " "))
	assert.Equal(t, 8, strings.Count(marker, "^"))
}

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 0, levenshteinDistance("hello", "hello"))
	assert.Equal(t, 1, levenshteinDistance("hello", "hallo"))
	assert.Equal(t, 1, levenshteinDistance("hello", "helo"))
	assert.Equal(t, 5, levenshteinDistance("hello", ""))
	assert.Equal(t, 3, levenshteinDistance("kitten", "sitting"))
}

func TestSimilarNameFinding(t *testing.T) {
	candidates := []string{"speed", "health", "position", "speedy", "xyz"}

	similar := FindSimilarNames("sped", candidates)
	assert.Contains(t, similar, "speed")
	assert.NotContains(t, similar, "xyz")

	assert.Empty(t, FindSimilarNames("verydifferent", candidates))
	assert.NotContains(t, FindSimilarNames("speed", candidates), "speed")
}

func TestErrorCategories(t *testing.T) {
	assert.Equal(t, "Semantic Analysis", GetErrorCategory(ErrorAmbiguousCall))
	assert.Equal(t, "Parser", GetErrorCategory(ErrorSyntax))
	assert.Equal(t, "Type System", GetErrorCategory(ErrorUnknownType))
	assert.Equal(t, "Engine Registry", GetErrorCategory(ErrorUnknownNodeMethod))
	assert.Equal(t, "Tooling", GetErrorCategory(ErrorDownstreamBuild))
	assert.Equal(t, "Warning", GetErrorCategory(WarningUnusedVariable))
	assert.True(t, IsWarning(WarningUnusedVariable))
	assert.False(t, IsWarning(ErrorSyntax))
	assert.Equal(t, "Struct inherits from itself", GetErrorDescription(ErrorInheritanceCycle))
}

func TestErrorLevels(t *testing.T) {
	reporter := NewErrorReporter("test.pup", `test`)
	pos := ast.Position{Line: 1, Column: 1}

	errorFormatted := reporter.FormatError(CompilerError{Level: Error, Message: "test error", Position: pos})
	warningFormatted := reporter.FormatErrors([]CompilerError{{Level: Warning, Message: "test warning", Position: pos}})

	assert.Contains(t, errorFormatted, "error:")
	assert.Contains(t, warningFormatted, "warning:")
}

func TestUnplacedFormatting(t *testing.T) {
	err := DownstreamBuild("cargo", "  error[E0425]: cannot find value `hp`\n")
	formatted := NewErrorReporter("", "").FormatError(err)

	assert.Contains(t, formatted, "error["+ErrorDownstreamBuild+"]: cargo failed on the generated crate")
	assert.Contains(t, formatted, "cannot find value `hp`")
	assert.NotContains(t, formatted, "-->")

	assert.Empty(t, DownstreamBuild("cargo", " \n").Notes)
}

func TestSnippetContext(t *testing.T) {
	reporter := NewErrorReporter("a.pup", "one\ntwo\nthree")
	formatted := reporter.FormatError(CompilerError{Level: Error, Message: "bad", Position: ast.Position{Line: 2, Column: 1}, Length: 3})

	assert.Contains(t, formatted, "one")
	assert.Contains(t, formatted, "two")
	assert.Contains(t, formatted, "three")
	assert.Contains(t, formatted, "^^^")

	first := reporter.FormatError(CompilerError{Level: Error, Message: "bad", Position: ast.Position{Line: 1, Column: 1}})
	assert.NotContains(t, first, "three")
}
