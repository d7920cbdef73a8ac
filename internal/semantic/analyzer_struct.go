package semantic

import (
	"fmt"

	"pup/internal/ast"
	"pup/internal/builtins"
	"pup/internal/errors"
	"pup/internal/types"
)

func (a *Analyzer) declareStruct(st *ast.StructDef) {
	if a.halted() {
		return
	}
	name := st.Name.Value
	if _, exists := a.structDecls[name]; exists {
		a.addCompilerError(errors.DuplicateDeclaration(name, st.Name.Pos))
		return
	}
	if builtins.IsBuiltinType(name) || a.context.IsNodeType(name) || a.context.UI.Has(name) {
		a.addCompilerError(errors.NewSemanticError(errors.ErrorDuplicateDeclaration,
			fmt.Sprintf("struct '%s' shadows a built in type", name), st.Name.Pos).
			WithLength(len(name)).
			WithSuggestion("rename the struct").
			Build())
		return
	}
	if a.reserved[name] {
		a.addCompilerError(errors.NewSemanticError(errors.ErrorDuplicateDeclaration,
			fmt.Sprintf("struct '%s' collides with a name the generated Rust file uses", name), st.Name.Pos).
			WithLength(len(name)).
			WithSuggestion("rename the struct").
			Build())
		return
	}
	if len(st.Attributes) > 0 {
		attr := st.Attributes[0]
		a.addCompilerError(errors.NewSemanticError(errors.ErrorInvalidAttribute,
			fmt.Sprintf("invalid attribute: @%s", attr.Name), attr.Pos).
			WithLength(len(attr.Name) + 1).
			WithHelp("structs take no attributes").
			Build())
		return
	}
	a.structDecls[name] = st
}

// flattenStructs resolves every struct in script order. Bases are
// flattened before the structs that extend them.
func (a *Analyzer) flattenStructs() {
	for _, st := range a.script.Structs {
		if a.halted() {
			return
		}
		a.flatten(st.Name.Value, nil)
	}
	for _, st := range a.script.Structs {
		if fs := a.flat[st.Name.Value]; fs != nil {
			a.info.Structs = append(a.info.Structs, fs)
		}
	}
}

// checkRecursion rejects a struct that holds itself by value, directly or
// through the structs its fields hold. Array and Map elements live on the
// heap and end the walk.
func (a *Analyzer) checkRecursion() {
	for _, root := range a.info.Structs {
		if a.halted() {
			return
		}
		a.checkContainment(root)
	}
}

func (a *Analyzer) checkContainment(root *FlatStruct) {
	visited := make(map[string]bool)
	var walk func(fs *FlatStruct, path []string, first *FlatField) bool
	walk = func(fs *FlatStruct, path []string, first *FlatField) bool {
		visited[fs.Name] = true
		for _, f := range fs.Fields {
			inner, ok := inlineStruct(f.Type)
			if !ok {
				continue
			}
			from := first
			if from == nil {
				from = f
			}
			steps := append(path[:len(path):len(path)], fs.Name+"."+f.Name)
			if inner == root.Name {
				a.addCompilerError(errors.RecursiveStruct(append(steps, root.Name), a.fieldPos(from), from.Name))
				return false
			}
			if visited[inner] {
				continue
			}
			if next := a.flat[inner]; next != nil && !walk(next, steps, from) {
				return false
			}
		}
		return true
	}
	walk(root, nil, nil)
}

// inlineStruct names the user struct stored inline in a value of type t.
func inlineStruct(t types.Type) (string, bool) {
	switch t.Kind {
	case types.KindCustom:
		return t.Name, true
	case types.KindOption, types.KindFixedArray:
		return inlineStruct(t.Elem())
	}
	return "", false
}

func (a *Analyzer) fieldPos(f *FlatField) ast.Position {
	decl := a.structDecls[f.Owner]
	for _, fd := range decl.Fields {
		if fd.Name.Value == f.Name {
			return fd.Name.Pos
		}
	}
	return decl.Name.Pos
}

// flatten builds the flattened form of name. path holds the structs whose
// flattening is in progress, to detect cycles.
func (a *Analyzer) flatten(name string, path []string) *FlatStruct {
	if fs, done := a.flat[name]; done {
		return fs
	}
	for i, p := range path {
		if p == name {
			cycle := make([]string, 0, len(path)-i+1)
			cycle = append(cycle, path[i:]...)
			cycle = append(cycle, name)
			closing := a.structDecls[path[len(path)-1]]
			a.addCompilerError(errors.InheritanceCycle(cycle, closing.Base.Pos))
			return nil
		}
	}

	decl := a.structDecls[name]
	path = append(path, name)
	fs := &FlatStruct{Name: name, Decl: decl}

	var base *FlatStruct
	if decl.Base != nil {
		baseName := decl.Base.Value
		if _, ok := a.structDecls[baseName]; !ok {
			a.addCompilerError(errors.UnknownBase(name, baseName, decl.Base.Pos,
				errors.FindSimilarNames(baseName, a.structNames())))
			return nil
		}
		base = a.flatten(baseName, path)
		if base == nil {
			return nil
		}
		fs.Base = baseName
		// inherited fields are shared with the base, defaults included
		fs.Fields = append(fs.Fields, base.Fields...)
	}

	own := make(map[string]bool)
	for _, f := range decl.Fields {
		fname := f.Name.Value
		if own[fname] {
			a.addCompilerError(errors.DuplicateDeclaration(fname, f.Name.Pos))
			return nil
		}
		if inherited := fs.Field(fname); inherited != nil {
			a.addCompilerError(errors.DuplicateField(name, fname, inherited.Owner, f.Name.Pos))
			return nil
		}
		own[fname] = true

		ft := types.Unknown
		if f.Type != nil {
			t, ok := a.resolveTypeRef(f.Type)
			if !ok {
				return nil
			}
			ft = t
		} else if f.Default == nil {
			a.addCompilerError(errors.UnresolvedType(fmt.Sprintf("field '%s'", fname), f.Name.Pos))
			return nil
		}
		fs.Fields = append(fs.Fields, &FlatField{Name: fname, Type: ft, Default: f.Default, Owner: name})
	}

	a.flattenMethods(fs, decl, base)
	if a.halted() {
		return nil
	}

	a.flat[name] = fs
	return fs
}

// flattenMethods lists own methods, then base methods that are not
// overridden, then a super_ copy of every overridden base method.
func (a *Analyzer) flattenMethods(fs *FlatStruct, decl *ast.StructDef, base *FlatStruct) {
	own := make(map[string]bool)
	for _, m := range decl.Methods {
		mname := m.Name.Value
		if mname == "new" {
			a.addCompilerError(errors.NewSemanticError(errors.ErrorDuplicateDeclaration,
				"method 'new' is reserved for the struct constructor", m.Name.Pos).
				WithLength(3).
				Build())
			return
		}
		if own[mname] || fs.Field(mname) != nil {
			a.addCompilerError(errors.DuplicateDeclaration(mname, m.Name.Pos))
			return
		}
		own[mname] = true

		info := a.declareFunction(m, fs.Name)
		if info == nil {
			return
		}
		fs.Methods = append(fs.Methods, &FlatMethod{Name: mname, Func: info, Owner: fs.Name})
	}

	if base == nil {
		return
	}

	supers := make(map[string]bool)
	for _, m := range decl.Methods {
		if bm := base.Method(m.Name.Value); bm != nil && !bm.Super {
			supers["super_"+m.Name.Value] = true
		}
	}
	for _, bm := range base.Methods {
		if own[bm.Name] || supers[bm.Name] {
			continue
		}
		copied := *bm
		copied.Inherited = true
		copied.Forward = bm.Name
		fs.Methods = append(fs.Methods, &copied)
	}
	for _, m := range decl.Methods {
		if bm := base.Method(m.Name.Value); bm != nil && !bm.Super {
			fs.Methods = append(fs.Methods, &FlatMethod{
				Name:      "super_" + bm.Name,
				Func:      bm.Func,
				Owner:     bm.Owner,
				Inherited: true,
				Super:     true,
				Forward:   bm.Name,
			})
		}
	}
}

// analyzeFieldDefaults types field defaults. Base defaults are shared with
// derived structs and come out of the type cache the second time.
func (a *Analyzer) analyzeFieldDefaults() {
	for _, fs := range a.info.Structs {
		for _, f := range fs.Fields {
			if a.halted() {
				return
			}
			if f.Default == nil {
				continue
			}
			if !a.isConstant(f.Default) {
				a.addCompilerError(errors.NewSemanticError(errors.ErrorNonConstantInitializer,
					fmt.Sprintf("default of field '%s' must be a constant expression", f.Name), f.Default.NodePos()).
					Build())
				return
			}
			a.constContext = true
			t := a.expectExpr(f.Default, f.Type)
			a.constContext = false
			if f.Type.Kind == types.KindUnknown {
				f.Type = t
			}
		}
	}
}

// analyzeMethodBodies checks the methods each struct declares itself.
// Inherited copies share the body of the declaring struct.
func (a *Analyzer) analyzeMethodBodies() {
	for _, fs := range a.info.Structs {
		a.currentStruct = fs
		for _, m := range fs.Methods {
			if a.halted() {
				break
			}
			if m.Owner != fs.Name || m.Inherited {
				continue
			}
			a.analyzeFunctionBody(m.Func, NewSymbolTable(nil))
		}
		a.currentStruct = nil
	}
}

func (a *Analyzer) structNames() []string {
	names := make([]string, 0, len(a.script.Structs))
	for _, st := range a.script.Structs {
		names = append(names, st.Name.Value)
	}
	return names
}
