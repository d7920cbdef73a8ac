package codegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pup/internal/ast"
	"pup/internal/errors"
	"pup/internal/parser"
	"pup/internal/semantic"
	"pup/internal/types"
)

const scriptPath = "res://scripts/bob.pup"

func analyze(t *testing.T, source string) (*ast.Script, *semantic.Info) {
	t.Helper()
	script, err := parser.Parse(scriptPath, source)
	require.NoError(t, err)
	info, errs := semantic.NewAnalyzer(nil).Analyze(script)
	require.Empty(t, errs, "unexpected errors: %v", errs)
	return script, info
}

func generate(t *testing.T, source string, opts Options) *Output {
	t.Helper()
	script, info := analyze(t, source)
	out, err := Generate(script, info, opts)
	require.NoError(t, err)
	return out
}

// lineOf returns the 1-based generated line containing text.
func lineOf(t *testing.T, source, text string) int {
	t.Helper()
	for i, line := range strings.Split(source, "\n") {
		if strings.Contains(line, text) {
			return i + 1
		}
	}
	t.Fatalf("%q not found in:\n%s", text, source)
	return 0
}

const playerScript = `extends Sprite2D
@expose var speed: float = 2.0
var hp = 10
var items: Array<int>
fn init() {
	print("hp={hp}")
}
fn update() {
	var d = Time.get_delta()
	self.transform.position.x += speed * d
}
fn helper(amount: int) -> int {
	items.push(3)
	var n = items.len()
	var child = self.get_node("enemy")
	child.remove()
	print(n)
	return hp + amount
}
`

func TestGenerateScript(t *testing.T) {
	out := generate(t, playerScript, Options{})
	src := out.Source

	assert.Equal(t, "scripts_bob_pup", out.Identifier)
	assert.Equal(t, "ScriptsBobPupScript", out.StructName)
	assert.Equal(t, "src/scripts_bob_pup.rs", out.File())

	assert.True(t, strings.HasPrefix(src, "#![allow(improper_ctypes_definitions, unused)]\n"))
	assert.Contains(t, src, "pub struct ScriptsBobPupScript {\n    id: NodeID,\n    __t_speed: f32,\n    __t_hp: i32,\n    __t_items: Vec<i32>,\n}")
	assert.Contains(t, src, `pub extern "C" fn scripts_bob_pup_create_script() -> *mut dyn ScriptObject {`)
	assert.Contains(t, src, "        __t_speed: 2.0f32,\n        __t_hp: 10i32,\n        __t_items: Vec::new(),\n")

	assert.Contains(t, src, "impl Script for ScriptsBobPupScript {")
	assert.Contains(t, src, "    fn update(&mut self, api: &mut ScriptApi<'_>) {\n        self.__t_update(api, false);\n    }")
	assert.NotContains(t, src, "fn fixed_update(")

	assert.Contains(t, src, "fn __t_helper(&mut self, api: &mut ScriptApi<'_>, external_call: bool, __t_amount: i32) -> i32 {")
	assert.Contains(t, src, "return (self.__t_hp + __t_amount);")

	assert.Contains(t, src, `"speed" => Some(json!(self.__t_speed)),`)
	assert.Contains(t, src, `if let Ok(v) = serde_json::from_value::<f32>(value.clone()) {`)
	assert.Contains(t, src, `"helper" => {`)
	assert.Contains(t, src, "json!(self.__t_helper(api, true, __t_amount))")
}

func TestGenerateIsDeterministic(t *testing.T) {
	first := generate(t, playerScript, Options{})
	second := generate(t, playerScript, Options{})
	assert.Equal(t, first.Source, second.Source)
	assert.Equal(t, first.Map, second.Map)
}

func TestGenerateCalls(t *testing.T) {
	src := generate(t, playerScript, Options{}).Source

	assert.Contains(t, src, "self.__t_items.push(3i32);")
	assert.Contains(t, src, "let mut __t_n: u32 = self.__t_items.len() as u32;")
	assert.Contains(t, src, `let mut __t_child: NodeID = api.get_child_by_name(self.id, "enemy");`)
	assert.Contains(t, src, "api.remove_node(__t_child);")
	assert.Contains(t, src, "let mut __t_d: f32 = api.Time.get_delta();")
}

func TestNodeFieldWrite(t *testing.T) {
	src := generate(t, playerScript, Options{}).Source

	assert.Contains(t, src, "let __v = (self.__t_speed * __t_d);\n        api.mutate_node(self.id, |n: &mut Sprite2D| n.transform.position.x += __v);")
}

func TestNodeFieldReadThroughHandle(t *testing.T) {
	src := generate(t, `extends Node
fn init() {
	var other = get_node("player") as Sprite2D
	var x = other.transform.position.x
	other.visible = false
}
`, Options{}).Source

	assert.Contains(t, src, "let mut __t_x: f32 = { let __h = __t_other; api.read_node(__h, |n: &Sprite2D| n.transform.position.x) };")
	assert.Contains(t, src, "let __v = false;\n        let __h = __t_other;\n        api.mutate_node(__h, |n: &mut Sprite2D| n.visible = __v);")
}

func TestInterpolation(t *testing.T) {
	src := generate(t, playerScript, Options{}).Source
	assert.Contains(t, src, `api.print(&format!("hp={}", self.__t_hp));`)
}

func TestLiteralTypingFromContext(t *testing.T) {
	src := generate(t, `extends Node
struct Config {
	ratio: float_64 = 5,
	count: int = 5,
}
var config = Config()
var big: big_int = 12
var price: decimal = 1.25
var name: str = "bob"
var title = "pup"
var maybe: Option<int> = null
`, Options{}).Source

	assert.Contains(t, src, "__t_config: Config::new(5f64, 5i32),")
	assert.Contains(t, src, `__t_big: BigInt::from_str("12").unwrap(),`)
	assert.Contains(t, src, `__t_price: Decimal::from_str("1.25").unwrap(),`)
	assert.Contains(t, src, `__t_name: "bob",`)
	assert.Contains(t, src, `__t_title: String::from("pup"),`)
	assert.Contains(t, src, "__t_maybe: None,")
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		raw  string
		typ  types.Type
		want string
	}{
		{"5", types.F64, "5f64"},
		{"5", types.I32, "5i32"},
		{"2.0", types.F32, "2.0f32"},
		{"7", types.U8, "7u8"},
		{"1.5", types.Unknown, "1.5f32"},
		{"3", types.BigInt, `BigInt::from_str("3").unwrap()`},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, number(tt.raw, tt.typ))
		})
	}
}

func TestStructEmission(t *testing.T) {
	src := generate(t, `extends Node
struct A {
	x: int = 1,
	fn hello() -> int { return self.x }
	fn bye() { pass }
}
struct B extends A {
	y: int = 2,
	fn hello() -> int { return super.hello() + self.y }
}
`, Options{}).Source

	assert.Contains(t, src, "#[derive(Default, Debug, Clone, Serialize, Deserialize)]\npub struct B {\n    pub x: i32,\n    pub y: i32,\n}")
	assert.Contains(t, src, "pub fn new(x: i32, y: i32) -> Self {\n        Self { x, y }\n    }")
	assert.Contains(t, src, "pub fn super_hello(&mut self, api: &mut ScriptApi<'_>) -> i32 {")
	assert.Contains(t, src, "return (self.super_hello(api) + self.y);")
	assert.Contains(t, src, `write!(f, "{{ x: {:?}, y: {:?} }}", self.x, self.y)`)

	// A comes first, B carries a forwarded copy of bye
	assert.Less(t, strings.Index(src, "pub struct A {"), strings.Index(src, "pub struct B {"))
	impl := src[strings.Index(src, "impl B {"):]
	assert.Contains(t, impl, "pub fn bye(&mut self, api: &mut ScriptApi<'_>) {")
}

func TestInheritedMethodsForward(t *testing.T) {
	src := generate(t, `extends Node
struct A {
	x: int
	fn me() -> A { return self }
	fn bump(by: int) { self.x += by }
}
struct B extends A { y: int }
`, Options{}).Source

	implA := src[strings.Index(src, "impl A {"):strings.Index(src, "impl fmt::Display for A")]
	implB := src[strings.Index(src, "impl B {"):strings.Index(src, "impl fmt::Display for B")]

	assert.Contains(t, implA, "return self.clone();")
	assert.NotContains(t, implB, "return self.clone();")

	assert.Contains(t, implB, "pub fn me(&mut self, api: &mut ScriptApi<'_>) -> A {")
	assert.Contains(t, implB, "let mut __base = A { x: self.x.clone() };")
	assert.Contains(t, implB, "let __result = __base.me(api);")
	assert.Contains(t, implB, "self.x = __base.x;")
	assert.Contains(t, implB, "__result\n")

	// void methods write the fields back and return nothing
	bump := implB[strings.Index(implB, "pub fn bump("):]
	assert.Contains(t, bump, "__base.bump(api, __t_by);")
	assert.NotContains(t, bump[:strings.Index(bump, "\n    }")], "__result")
}

func TestReservedStructNames(t *testing.T) {
	for _, name := range []string{"Cow", "HashMap", "Decimal", "FromStr", "fmt", "BigInt", "ScriptsBobPupScript"} {
		t.Run(name, func(t *testing.T) {
			script, err := parser.Parse(scriptPath, "extends Node\nstruct "+name+" { x: int }\n")
			require.NoError(t, err)
			_, errs := semantic.NewAnalyzer(nil).Analyze(script)
			require.Len(t, errs, 1)
			assert.Equal(t, errors.ErrorDuplicateDeclaration, errs[0].Code)
			assert.Contains(t, errs[0].Message, "'"+name+"'")
		})
	}
}

func TestKeywordFields(t *testing.T) {
	out := generate(t, `extends Node
struct Item {
	type: string,
}
`, Options{})

	assert.Contains(t, out.Source, "pub r#type: String,")
	assert.Equal(t, "type", out.Map.Names["r#type"])
}

func TestComparisonAssignmentRejected(t *testing.T) {
	script, info := analyze(t, `extends Node
var hp = 1
fn init() {
	hp += 1
}
`)
	assign := script.FindFunction("init").Body.Stmts[0].(*ast.AssignStmt)
	assign.Op = ast.ILLEGAL_ASSIGN
	assign.OpText = "=="

	out, err := Generate(script, info, Options{})
	assert.Nil(t, out)
	var ce errors.CompilerError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, errors.ErrorComparisonAssignment, ce.Code)
	assert.Contains(t, ce.Message, "'=='")
	assert.Equal(t, 4, ce.Position.Line)
}

func TestSourceMapCoversEveryLine(t *testing.T) {
	out := generate(t, playerScript, Options{})

	lines := strings.Count(out.Source, "\n")
	assert.True(t, out.Map.Covers(lines), "map has %d entries for %d lines", len(out.Map.Lines), lines)
	assert.Equal(t, "scripts_bob_pup", out.Map.Script)
	assert.Equal(t, scriptPath, out.Map.Source)
	assert.Equal(t, "src/scripts_bob_pup.rs", out.Map.Generated)

	// the print in init is on line 6
	e, ok := out.Map.Lookup(lineOf(t, out.Source, "api.print(&format!"))
	require.True(t, ok)
	assert.Equal(t, 6, e.Line)

	e, ok = out.Map.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, 1, e.Line)

	assert.Equal(t, "speed", out.Map.Names["__t_speed"])
	assert.Equal(t, "helper", out.Map.Names["__t_helper"])
	assert.Equal(t, "amount", out.Map.Names["__t_amount"])
}

func TestReleaseStripsConsole(t *testing.T) {
	debug := generate(t, playerScript, Options{}).Source
	release := generate(t, playerScript, Options{Release: true}).Source

	assert.Contains(t, debug, "api.print(")
	assert.NotContains(t, release, "api.print(")
	assert.Contains(t, release, "// [stripped for release] print(")
}

func TestControlFlow(t *testing.T) {
	src := generate(t, `extends Node
var names: Array<string>
var scores: Map<string, int>
fn init() {
	for i in 0..10 {
		if i == 3 {
			continue
		} else if i > 8 {
			break
		} else {
			pass
		}
	}
	for n in names {
		print(n)
	}
	for k in scores {
		print(k)
	}
	scores["a"] = 1
	while false {
		pass
	}
}
`, Options{}).Source

	assert.Contains(t, src, "for __t_i in 0i32..10i32 {")
	assert.Contains(t, src, "if (__t_i == 3i32) {\n                continue;\n            } else if (__t_i > 8i32) {\n                break;\n            } else {\n            }")
	assert.Contains(t, src, "for __t_n in self.__t_names.clone() {")
	assert.Contains(t, src, "for __t_k in self.__t_scores.clone().into_keys() {")
	assert.Contains(t, src, `self.__t_scores.insert(String::from("a"), 1i32);`)
	assert.Contains(t, src, "while false {")
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name     string
		from, to types.Type
		want     string
	}{
		{"same", types.I32, types.I32, "x"},
		{"widen", types.I32, types.I64, "(x as i64)"},
		{"int to float", types.I32, types.F32, "(x as f32)"},
		{"to object", types.I32, types.Object, "json!(x)"},
		{"from object", types.Object, types.F32, "serde_json::from_value::<f32>(x).unwrap_or_default()"},
		{"wrap", types.I32, types.Option(types.I32), "Some(x)"},
		{"wrap widen", types.I32, types.Option(types.I64), "Some((x as i64))"},
		{"node handle", types.Node("Sprite2D"), types.DynNode, "x"},
		{"unwrap handle", types.Option(types.DynNode), types.Node("Node2D"), "x.unwrap()"},
		{"decimal", types.I32, types.Decimal, "Decimal::from(x)"},
		{"float decimal", types.F32, types.Decimal, "Decimal::from_f64(x as f64).unwrap_or_default()"},
		{"borrowed", types.StrRef, types.CowStr, "Cow::Borrowed(x)"},
		{"owned", types.String, types.CowStr, "Cow::Owned(x)"},
		{"to string", types.StrRef, types.String, "x.to_string()"},
		{"array of objects", types.Array(types.I32), types.Array(types.Object), "x.iter().map(|v| json!(v)).collect::<Vec<Value>>()"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, convert("x", tt.from, tt.to))
		})
	}
}

func TestLibRS(t *testing.T) {
	lib := LibRS([]string{"scripts_b_pup", "a_pup"})

	assert.Contains(t, lib, "pub mod a_pup;\npub mod scripts_b_pup;\n// __PERRO_MODULES__")
	assert.Contains(t, lib, "use a_pup::a_pup_create_script;\nuse scripts_b_pup::scripts_b_pup_create_script;\n// __PERRO_IMPORTS__")
	assert.Contains(t, lib, "    \"a_pup\" => a_pup_create_script as CreateFn,\n    \"scripts_b_pup\" => scripts_b_pup_create_script as CreateFn,\n    // __PERRO_REGISTRY__")
	assert.Equal(t, lib, LibRS([]string{"a_pup", "scripts_b_pup"}))

	empty := LibRS(nil)
	assert.Contains(t, empty, "phf_map! {\n    // __PERRO_REGISTRY__\n};")
}

func TestExpand(t *testing.T) {
	assert.Equal(t, "api.get_child_by_name(self.id, \"a\")", expand("api.get_child_by_name({self}, {0})", "self.id", []string{`"a"`}, -1))
	assert.Equal(t, "api.emit_signal_id(s, smallvec![a, b])", expand("api.emit_signal_id({0}, smallvec![{args}])", "", []string{"s", "a", "b"}, 1))
	assert.Equal(t, "api.emit_signal_id(s, smallvec![])", expand("api.emit_signal_id({0}, smallvec![{args}])", "", []string{"s"}, 1))
}
