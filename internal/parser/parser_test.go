package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pup/internal/ast"
	"pup/internal/errors"
)

func mustParse(t *testing.T, source string) *ast.Script {
	t.Helper()
	script, err := Parse("test.pup", source)
	require.NoError(t, err)
	require.NotNil(t, script)
	return script
}

// parseBody parses statements inside a throwaway function.
func parseBody(t *testing.T, body string) []ast.Stmt {
	t.Helper()
	script := mustParse(t, "extends Node\nfn f() {\n"+body+"\n}")
	require.Len(t, script.Functions, 1)
	return script.Functions[0].Body.Stmts
}

func parseExprString(t *testing.T, expr string) ast.Expr {
	t.Helper()
	stmts := parseBody(t, expr)
	require.Len(t, stmts, 1)
	es, ok := stmts[0].(*ast.ExprStmt)
	require.True(t, ok, "expected expression statement, got %T", stmts[0])
	return es.X
}

func TestParseScriptHeaderAndVariables(t *testing.T) {
	script := mustParse(t, `extends Sprite2D
@expose var speed: float = 2.0
const MAX = 10
var grid: [int; 3]
var names: Map<string, Array<int>>
`)

	assert.Equal(t, "Sprite2D", script.Extends.Value)
	assert.Equal(t, "test.pup", script.Path)
	require.Len(t, script.Variables, 4)

	speed := script.Variables[0]
	assert.Equal(t, "speed", speed.Name.Value)
	assert.True(t, speed.Exposed())
	assert.Equal(t, "float", speed.Type.Name)
	assert.Equal(t, "2.0", speed.Value.String())
	assert.Equal(t, 2, speed.Pos.Line)
	assert.Equal(t, 1, speed.Pos.Column)
	assert.Equal(t, 31, speed.EndPos.Column)

	assert.True(t, script.Variables[1].Const)
	assert.Nil(t, script.Variables[1].Type)

	grid := script.Variables[2].Type
	assert.True(t, grid.IsFixedArray())
	assert.Equal(t, 3, grid.Size)
	assert.Equal(t, "[int; 3]", grid.String())

	assert.Equal(t, "Map<string, Array<int>>", script.Variables[3].Type.String())
}

func TestParseFunctions(t *testing.T) {
	script := mustParse(t, `extends Node2D
fn hit(dmg: int, source: Node2D) -> bool {
	return true
}
fn init() {}
fn speed(): float { return 1.5 }
`)

	require.Len(t, script.Functions, 3)

	hit := script.Functions[0]
	assert.Equal(t, "hit", hit.Name.Value)
	require.Len(t, hit.Params, 2)
	assert.Equal(t, "dmg", hit.Params[0].Name.Value)
	assert.Equal(t, "Node2D", hit.Params[1].Type.Name)
	assert.Equal(t, "bool", hit.Return.Name)

	assert.Nil(t, script.Functions[1].Return)
	assert.Empty(t, script.Functions[1].Body.Stmts)
	assert.Equal(t, "float", script.Functions[2].Return.Name)

	assert.Same(t, hit, script.FindFunction("hit"))
}

func TestParseStructs(t *testing.T) {
	script := mustParse(t, `extends Node
struct A {
	x: int = 1,
	fn hello() { pass }
}
struct B extends A {
	var y: float
	z: string
}
`)

	require.Len(t, script.Structs, 2)
	a, b := script.Structs[0], script.Structs[1]

	assert.Nil(t, a.Base)
	require.Len(t, a.Fields, 1)
	assert.Equal(t, "1", a.Fields[0].Default.String())
	require.Len(t, a.Methods, 1)
	assert.Equal(t, "hello", a.Methods[0].Name.Value)

	require.NotNil(t, b.Base)
	assert.Equal(t, "A", b.Base.Value)
	require.Len(t, b.Fields, 2)
	assert.Equal(t, "y", b.Fields[0].Name.Value)
	assert.Equal(t, "string", b.Fields[1].Type.Name)
}

func TestParseExpressionPrecedence(t *testing.T) {
	tests := []struct {
		source   string
		expected string
	}{
		{"a + b * c", "(a + (b * c))"},
		{"a * b + c", "((a * b) + c)"},
		{"a - b - c", "((a - b) - c)"},
		{"a or b and not c", "(a || (b && !c))"},
		{"a < b == c", "((a < b) == c)"},
		{"enemy::hp + 1", "(enemy::hp + 1)"},
		{"(a + b) * c", "((a + b) * c)"},
		{`self.get_node("E").pos.x`, `self.get_node("E").pos.x`},
		{"items[i + 1]", "items[(i + 1)]"},
		{"new Point(1, 2)", "new Point(1, 2)"},
		{"hp % 2 != 0", "((hp % 2) != 0)"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseExprString(t, tt.source).String())
		})
	}
}

func TestParseCastBindsTighterThanUnary(t *testing.T) {
	expr := parseExprString(t, "-x as float")

	unary, ok := expr.(*ast.UnaryExpr)
	require.True(t, ok)
	cast, ok := unary.X.(*ast.CastExpr)
	require.True(t, ok)
	assert.Equal(t, "float", cast.Type.Name)
}

func TestParseLiterals(t *testing.T) {
	stmts := parseBody(t, `var o = { name: "bob", "hp": 3 }
var xs = [1, 2, 3,]
var s = $"hp={hp}"
var n = null
let flag = false`)
	require.Len(t, stmts, 5)

	obj := stmts[0].(*ast.VarStmt).Value.(*ast.ObjectLiteral)
	require.Len(t, obj.Fields, 2)
	assert.Equal(t, "hp", obj.Fields[1].Key.Value)
	assert.Equal(t, `{ name: "bob", hp: 3 }`, obj.String())

	assert.Equal(t, "[1, 2, 3]", stmts[1].(*ast.VarStmt).Value.String())

	interp := stmts[2].(*ast.VarStmt).Value.(*ast.LiteralExpr)
	assert.True(t, interp.Interpolated)
	assert.Equal(t, "hp={hp}", interp.Value)

	assert.Equal(t, ast.NULL, stmts[3].(*ast.VarStmt).Value.(*ast.LiteralExpr).Kind)
	assert.Equal(t, ast.BOOL, stmts[4].(*ast.VarStmt).Value.(*ast.LiteralExpr).Kind)
}

func TestParseAssignments(t *testing.T) {
	stmts := parseBody(t, `self.hp -= 1
items[0] = 2
enemy::hp = 0
x += 3;`)
	require.Len(t, stmts, 4)

	first := stmts[0].(*ast.AssignStmt)
	assert.Equal(t, ast.MINUS_ASSIGN, first.Op)
	assert.Equal(t, "-=", first.OpText)
	assert.IsType(t, &ast.MemberExpr{}, first.Target)

	assert.IsType(t, &ast.IndexExpr{}, stmts[1].(*ast.AssignStmt).Target)
	assert.IsType(t, &ast.NodeVarExpr{}, stmts[2].(*ast.AssignStmt).Target)
	assert.Equal(t, ast.PLUS_ASSIGN, stmts[3].(*ast.AssignStmt).Op)
}

func TestParseControlFlow(t *testing.T) {
	stmts := parseBody(t, `for i in 0..10 { pass }
for item in items { continue }
while alive { break }
if a { pass } else if b { pass } else { pass }`)
	require.Len(t, stmts, 4)

	numeric := stmts[0].(*ast.ForStmt)
	assert.Equal(t, "i", numeric.Var.Value)
	rng, ok := numeric.Iter.(*ast.RangeExpr)
	require.True(t, ok)
	assert.Equal(t, "0", rng.Start.String())
	assert.Equal(t, "10", rng.End.String())

	assert.IsType(t, &ast.IdentExpr{}, stmts[1].(*ast.ForStmt).Iter)
	assert.IsType(t, &ast.BreakStmt{}, stmts[2].(*ast.WhileStmt).Body.Stmts[0])

	chain := stmts[3].(*ast.IfStmt)
	elseIf, ok := chain.Else.(*ast.IfStmt)
	require.True(t, ok)
	assert.IsType(t, &ast.Block{}, elseIf.Else)
}

func TestParseReturnTakesValueFromSameLine(t *testing.T) {
	stmts := parseBody(t, "return\nx")
	require.Len(t, stmts, 2)
	assert.Nil(t, stmts[0].(*ast.ReturnStmt).Value)
	assert.IsType(t, &ast.ExprStmt{}, stmts[1])

	stmts = parseBody(t, "return x + 1")
	assert.Equal(t, "(x + 1)", stmts[0].(*ast.ReturnStmt).Value.String())
}

func TestParseCallDoesNotContinueAcrossLines(t *testing.T) {
	stmts := parseBody(t, "foo\n(bar)")
	require.Len(t, stmts, 2)
	assert.IsType(t, &ast.IdentExpr{}, stmts[0].(*ast.ExprStmt).X)
	assert.IsType(t, &ast.ParenExpr{}, stmts[1].(*ast.ExprStmt).X)
}

func TestParseErrorsAreFatal(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		message string
	}{
		{"missing extends", "var x = 1", "expected 'extends <NodeType>' at the top of the script, found 'var'"},
		{"bad target", "extends Node\nfn f() { f() = 1 }", "invalid assignment target, found '='"},
		{"unclosed params", "extends Node\nfn f( {}\nfn g( {}", "expected parameter name, found '{'"},
		{"top level statement", "extends Node\nprint(1)", "expected 'var', 'const', 'struct' or 'fn' at script level, found 'print'"},
		{"unclosed block", "extends Node\nfn f() {", "expected '}' to close block, found end of file"},
		{"zero length array", "extends Node\nvar a: [int; 0]", "array length must be a positive integer, found '0'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script, parseErrors, scanErrors := ParseSource("test.pup", tt.source)
			assert.Nil(t, script)
			assert.Empty(t, scanErrors)
			require.Len(t, parseErrors, 1)
			assert.Equal(t, tt.message, parseErrors[0].Message)
		})
	}
}

func TestParseReturnsCompilerErrors(t *testing.T) {
	_, err := Parse("a.pup", "extends Node\nvar = 3")
	require.Error(t, err)

	var ce errors.CompilerError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, errors.ErrorSyntax, ce.Code)
	assert.Equal(t, "a.pup", ce.Position.Filename)
	assert.Equal(t, 2, ce.Position.Line)
	assert.Equal(t, 5, ce.Position.Column)
	assert.Equal(t, "a.pup:2:5: error[E0100]: expected variable name, found '='", err.Error())

	_, err = Parse("a.pup", "extends Node\nvar s = \"oops")
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, errors.ErrorLexical, ce.Code)
	assert.Equal(t, 9, ce.Position.Column)
}

func TestParsedScriptRoundTrips(t *testing.T) {
	source := `extends Node
var hp: int = 3

fn update() {
	if hp <= 0 {
		print("dead")
	}
}
`
	script := mustParse(t, source)
	again := mustParse(t, script.String())
	assert.Equal(t, script.String(), again.String())
}
