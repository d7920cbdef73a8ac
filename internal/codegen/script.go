package codegen

import (
	"strconv"
	"strings"

	"pup/internal/ast"
	"pup/internal/rustname"
	"pup/internal/semantic"
)

// lifecycle lists the Script trait methods in the order they are emitted.
var lifecycle = []string{"init", "update", "fixed_update"}

func (g *generator) emitScript(script *ast.Script) {
	head := span(&script.Extends)

	g.w.writeLine(head, "#![allow(improper_ctypes_definitions, unused)]")
	g.w.blank(head)
	g.w.writeLine(head, strings.Join(rustname.Uses, "\n"))
	g.w.blank(head)

	for _, fs := range g.info.Structs {
		g.emitStruct(fs)
		g.w.blank(span(fs.Decl))
	}

	g.emitScriptStruct(script, head)
	g.w.blank(head)
	g.emitCreate(script, head)
	g.w.blank(head)
	g.emitLifecycle(head)
	g.w.blank(head)
	g.emitFunctions(head)
	g.emitScriptObject(head)
}

func (g *generator) structName() string {
	return rustname.StructName(g.id)
}

func (g *generator) emitScriptStruct(script *ast.Script, head ast.SourceSpan) {
	g.w.open(head, "pub struct %s {", g.structName())
	g.w.writeLine(head, "id: NodeID,")
	for _, v := range script.Variables {
		sym := g.info.Decls[v]
		g.w.writeLinef(span(v), "%s: %s,", g.rename(sym.Name), sym.Type.RustType())
	}
	g.w.close(head, "}")
}

// emitCreate writes the exported constructor the engine loads scripts by.
// Script variable initializers are constant, so they need no engine access.
func (g *generator) emitCreate(script *ast.Script, head ast.SourceSpan) {
	g.w.writeLine(head, "#[unsafe(no_mangle)]")
	g.w.open(head, "pub extern \"C\" fn %s_create_script() -> *mut dyn ScriptObject {", g.id)
	g.w.open(head, "Box::into_raw(Box::new(%s {", g.structName())
	g.w.writeLine(head, "id: NodeID::nil(),")
	for _, v := range script.Variables {
		sym := g.info.Decls[v]
		value := sym.Type.DefaultValue()
		if v.Value != nil {
			value = g.expr(v.Value)
		}
		g.w.writeLinef(span(v), "%s: %s,", g.rename(sym.Name), value)
	}
	g.w.close(head, "})) as *mut dyn ScriptObject")
	g.w.close(head, "}")
}

// emitLifecycle forwards the Script trait to the script's own functions.
func (g *generator) emitLifecycle(head ast.SourceSpan) {
	var defined []*semantic.FuncInfo
	for _, name := range lifecycle {
		if fn := g.info.Function(name); fn != nil {
			defined = append(defined, fn)
		}
	}
	if len(defined) == 0 {
		g.w.writeLinef(head, "impl Script for %s {}", g.structName())
		return
	}

	g.w.open(head, "impl Script for %s {", g.structName())
	for i, fn := range defined {
		sp := span(fn.Decl)
		if i > 0 {
			g.w.blank(sp)
		}
		g.w.open(sp, "fn %s(&mut self, api: &mut ScriptApi<'_>) {", fn.Name)
		g.w.writeLinef(sp, "self.%s(api, false);", g.rename(fn.Name))
		g.w.close(sp, "}")
	}
	g.w.close(head, "}")
}

func (g *generator) emitFunctions(head ast.SourceSpan) {
	if len(g.info.Functions) == 0 {
		return
	}
	g.w.open(head, "impl %s {", g.structName())
	for i, fn := range g.info.Functions {
		sp := span(fn.Decl)
		if i > 0 {
			g.w.blank(sp)
		}
		params := []string{"&mut self", "api: &mut ScriptApi<'_>", "external_call: bool"}
		for _, p := range fn.Params {
			params = append(params, g.rename(p.Name)+": "+p.Type.RustType())
		}
		g.fn = fn
		g.w.open(sp, "fn %s(%s)%s {", g.rename(fn.Name), strings.Join(params, ", "), returnType(fn))
		g.block(fn.Decl.Body)
		g.w.close(sp, "}")
		g.fn = nil
	}
	g.w.close(head, "}")
	g.w.blank(head)
}

// emitScriptObject writes the dynamic interface the engine uses to reach
// variables and functions by name.
func (g *generator) emitScriptObject(head ast.SourceSpan) {
	g.w.open(head, "impl ScriptObject for %s {", g.structName())

	g.w.open(head, "fn set_node_id(&mut self, id: NodeID) {")
	g.w.writeLine(head, "self.id = id;")
	g.w.close(head, "}")
	g.w.blank(head)

	g.w.open(head, "fn get_node_id(&self) -> NodeID {")
	g.w.writeLine(head, "self.id")
	g.w.close(head, "}")
	g.w.blank(head)

	g.w.open(head, "fn get_var(&self, name: &str) -> Option<Value> {")
	g.w.open(head, "match name {")
	for _, v := range g.info.Variables {
		g.w.writeLinef(span(v.Node), "%s => Some(json!(self.%s)),", quote(v.Name), g.rename(v.Name))
	}
	g.w.writeLine(head, "_ => None,")
	g.w.close(head, "}")
	g.w.close(head, "}")
	g.w.blank(head)

	g.w.open(head, "fn set_var(&mut self, name: &str, value: Value) -> Option<()> {")
	g.w.open(head, "match name {")
	for _, v := range g.info.Variables {
		if v.Const {
			continue
		}
		sp := span(v.Node)
		g.w.open(sp, "%s => {", quote(v.Name))
		g.w.writeLinef(sp, "self.%s = serde_json::from_value::<%s>(value).ok()?;", g.rename(v.Name), v.Type.RustType())
		g.w.writeLine(sp, "Some(())")
		g.w.close(sp, "}")
	}
	g.w.writeLine(head, "_ => None,")
	g.w.close(head, "}")
	g.w.close(head, "}")
	g.w.blank(head)

	g.w.open(head, "fn apply_exposed(&mut self, values: &HashMap<String, Value>) {")
	g.w.open(head, "for (name, value) in values {")
	g.w.open(head, "match name.as_str() {")
	for _, v := range g.info.Exposed() {
		sp := span(v.Node)
		g.w.open(sp, "%s => {", quote(v.Name))
		g.w.open(sp, "if let Ok(v) = serde_json::from_value::<%s>(value.clone()) {", v.Type.RustType())
		g.w.writeLinef(sp, "self.%s = v;", g.rename(v.Name))
		g.w.close(sp, "}")
		g.w.close(sp, "}")
	}
	g.w.writeLine(head, "_ => {}")
	g.w.close(head, "}")
	g.w.close(head, "}")
	g.w.close(head, "}")
	g.w.blank(head)

	g.w.open(head, "fn call_function(&mut self, name: &str, api: &mut ScriptApi<'_>, params: &[Value]) -> Value {")
	g.w.open(head, "match name {")
	for _, fn := range g.info.Functions {
		g.emitDispatch(fn)
	}
	g.w.writeLine(head, "_ => Value::Null,")
	g.w.close(head, "}")
	g.w.close(head, "}")

	g.w.close(head, "}")
}

// emitDispatch writes the call_function arm of one script function.
// Missing or malformed parameters take their type's default.
func (g *generator) emitDispatch(fn *semantic.FuncInfo) {
	sp := span(fn.Decl)
	g.w.open(sp, "%s => {", quote(fn.Name))

	args := []string{"api", "true"}
	for i, p := range fn.Params {
		name := g.rename(p.Name)
		g.w.writeLinef(sp, "let %s = params.get(%s).cloned().and_then(|v| serde_json::from_value::<%s>(v).ok()).unwrap_or_default();",
			name, strconv.Itoa(i), p.Type.RustType())
		args = append(args, name)
	}

	call := "self." + g.rename(fn.Name) + "(" + strings.Join(args, ", ") + ")"
	if returnType(fn) == "" {
		g.w.writeLine(sp, call+";")
		g.w.writeLine(sp, "Value::Null")
	} else {
		g.w.writeLinef(sp, "json!(%s)", call)
	}
	g.w.close(sp, "}")
}
