package codegen

import (
	"fmt"
	"strings"

	"pup/internal/ast"
	"pup/internal/semantic"
	"pup/internal/types"
)

// emitStruct writes a user struct with its base chain flattened in.
func (g *generator) emitStruct(fs *semantic.FlatStruct) {
	sp := span(fs.Decl)
	g.strukt = fs
	defer func() { g.strukt = nil }()

	fields := make([]string, len(fs.Fields))
	params := make([]string, len(fs.Fields))
	for i, f := range fs.Fields {
		fields[i] = g.renameField(f.Name)
		params[i] = fields[i] + ": " + f.Type.RustType()
	}

	g.w.writeLine(sp, "#[derive(Default, Debug, Clone, Serialize, Deserialize)]")
	g.w.open(sp, "pub struct %s {", fs.Name)
	for i, f := range fs.Fields {
		g.w.writeLinef(g.fieldSpan(fs, f), "pub %s,", params[i])
	}
	g.w.close(sp, "}")
	g.w.blank(sp)

	g.w.open(sp, "impl %s {", fs.Name)
	g.w.open(sp, "pub fn new(%s) -> Self {", strings.Join(params, ", "))
	g.w.writeLinef(sp, "Self { %s }", strings.Join(fields, ", "))
	g.w.close(sp, "}")
	for _, m := range fs.Methods {
		g.w.blank(span(m.Func.Decl))
		g.emitMethod(m)
	}
	g.w.close(sp, "}")
	g.w.blank(sp)

	g.emitDisplay(fs, fields)
}

// fieldSpan is the declaration of a field, in the struct that owns it.
func (g *generator) fieldSpan(fs *semantic.FlatStruct, f *semantic.FlatField) ast.SourceSpan {
	if owner := g.info.Struct(f.Owner); owner != nil {
		for _, decl := range owner.Decl.Fields {
			if decl.Name.Value == f.Name {
				return span(decl)
			}
		}
	}
	return span(fs.Decl)
}

// emitMethod writes one method. Inherited and super_ copies forward to
// the base, so the body keeps the self type it was checked with.
func (g *generator) emitMethod(m *semantic.FlatMethod) {
	fn := m.Func
	sp := span(fn.Decl)

	params := []string{"&mut self", "api: &mut ScriptApi<'_>"}
	args := []string{"api"}
	for _, p := range fn.Params {
		name := g.rename(p.Name)
		params = append(params, name+": "+p.Type.RustType())
		args = append(args, name)
	}

	g.w.open(sp, "pub fn %s(%s)%s {", escape(m.Name), strings.Join(params, ", "), returnType(fn))
	if m.Inherited {
		g.forward(sp, m, args)
	} else {
		g.fn = fn
		g.block(fn.Decl.Body)
		g.fn = nil
	}
	g.w.close(sp, "}")
}

// forward builds the base from the inherited fields, calls the base method
// on it and writes the fields back.
func (g *generator) forward(sp ast.SourceSpan, m *semantic.FlatMethod, args []string) {
	base := g.info.Struct(g.strukt.Base)
	if base == nil {
		g.internalError(g.strukt.Decl, "struct '%s' has no base", g.strukt.Name)
		return
	}

	inits := make([]string, len(base.Fields))
	for i, f := range base.Fields {
		name := g.renameField(f.Name)
		inits[i] = name + ": self." + name + ".clone()"
	}
	g.w.writeLinef(sp, "let mut __base = %s { %s };", base.Name, strings.Join(inits, ", "))

	call := fmt.Sprintf("__base.%s(%s)", escape(m.Forward), strings.Join(args, ", "))
	void := returnType(m.Func) == ""
	if void {
		g.w.writeLine(sp, call+";")
	} else {
		g.w.writeLine(sp, "let __result = "+call+";")
	}
	for _, f := range base.Fields {
		name := g.renameField(f.Name)
		g.w.writeLinef(sp, "self.%s = __base.%s;", name, name)
	}
	if !void {
		g.w.writeLine(sp, "__result")
	}
}

func returnType(fn *semantic.FuncInfo) string {
	if fn.Return.Kind == types.KindVoid || fn.Return.Kind == types.KindUnknown {
		return ""
	}
	return " -> " + fn.Return.RustType()
}

// emitDisplay prints every flattened field in order.
func (g *generator) emitDisplay(fs *semantic.FlatStruct, fields []string) {
	sp := span(fs.Decl)

	format := "{{}}"
	args := ""
	if len(fields) > 0 {
		parts := make([]string, len(fs.Fields))
		for i, f := range fs.Fields {
			parts[i] = f.Name + ": {:?}"
			args += ", self." + fields[i]
		}
		format = "{{ " + strings.Join(parts, ", ") + " }}"
	}

	g.w.open(sp, "impl fmt::Display for %s {", fs.Name)
	g.w.open(sp, "fn fmt(&self, f: &mut fmt::Formatter<'_>) -> fmt::Result {")
	g.w.writeLinef(sp, "write!(f, %s%s)", quote(format), args)
	g.w.close(sp, "}")
	g.w.close(sp, "}")
}
