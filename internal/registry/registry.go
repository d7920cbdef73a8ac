// Package registry describes the engine types scripts can touch: node
// kinds, UI element kinds and plain engine structs, with their script
// visible fields and methods.
package registry

import (
	"fmt"
	"sort"

	"pup/grammar"
	"pup/internal/builtins"
	"pup/internal/types"
)

// Field maps a script field name to the Rust field behind it.
type Field struct {
	ScriptName string
	RustName   string
	Type       types.Type
}

type Param struct {
	Name     string
	Type     types.Type
	Variadic bool
}

// Method is a script visible method. Template is the Rust call with
// {self} standing for the receiver handle and {0}, {1}, ... for arguments.
type Method struct {
	ScriptName string
	Params     []Param
	Return     types.Type
	Template   string
}

// Def is one registered type. Base names the parent type, or is empty at
// the root of a hierarchy.
type Def struct {
	Name     string
	RustName string
	Base     string
	Fields   []Field
	Methods  []Method
}

// Registry holds the definitions of one family of types.
type Registry struct {
	kind types.Kind
	defs map[string]*Def
}

func New(kind types.Kind) *Registry {
	return &Registry{kind: kind, defs: make(map[string]*Def)}
}

func (r *Registry) Register(def *Def) {
	if def.RustName == "" {
		def.RustName = def.Name
	}
	r.defs[def.Name] = def
}

func (r *Registry) Has(name string) bool {
	_, ok := r.defs[name]
	return ok
}

func (r *Registry) Def(name string) (*Def, bool) {
	def, ok := r.defs[name]
	return def, ok
}

// Names returns the registered type names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TypeOf returns the script type of a registered name.
func (r *Registry) TypeOf(name string) types.Type {
	switch r.kind {
	case types.KindUIElement:
		return types.UIElement(name)
	case types.KindEngineStruct:
		return types.EngineStruct(name)
	}
	return types.Node(name)
}

// Chain returns name followed by its bases, nearest first. Unknown names
// yield an empty chain.
func (r *Registry) Chain(name string) []string {
	var chain []string
	seen := make(map[string]bool)
	for name != "" && !seen[name] {
		def, ok := r.defs[name]
		if !ok {
			break
		}
		seen[name] = true
		chain = append(chain, name)
		name = def.Base
	}
	return chain
}

// Fields lists every field visible on name. A field declared closer to
// name shadows one with the same script name further up the chain.
func (r *Registry) Fields(name string) []Field {
	var fields []Field
	seen := make(map[string]bool)
	for _, n := range r.Chain(name) {
		for _, f := range r.defs[n].Fields {
			if !seen[f.ScriptName] {
				seen[f.ScriptName] = true
				fields = append(fields, f)
			}
		}
	}
	return fields
}

// Methods lists every method visible on name, with the same shadowing as
// Fields.
func (r *Registry) Methods(name string) []Method {
	var methods []Method
	seen := make(map[string]bool)
	for _, n := range r.Chain(name) {
		for _, m := range r.defs[n].Methods {
			if !seen[m.ScriptName] {
				seen[m.ScriptName] = true
				methods = append(methods, m)
			}
		}
	}
	return methods
}

// Field finds a field on name or its bases and reports the type that
// declares it.
func (r *Registry) Field(name, field string) (Field, string, bool) {
	for _, n := range r.Chain(name) {
		for _, f := range r.defs[n].Fields {
			if f.ScriptName == field {
				return f, n, true
			}
		}
	}
	return Field{}, "", false
}

func (r *Registry) Method(name, method string) (Method, bool) {
	for _, n := range r.Chain(name) {
		for _, m := range r.defs[n].Methods {
			if m.ScriptName == method {
				return m, true
			}
		}
	}
	return Method{}, false
}

// FieldNames and MethodNames feed "did you mean" suggestions.
func (r *Registry) FieldNames(name string) []string {
	var names []string
	for _, f := range r.Fields(name) {
		names = append(names, f.ScriptName)
	}
	return names
}

func (r *Registry) MethodNames(name string) []string {
	var names []string
	for _, m := range r.Methods(name) {
		names = append(names, m.ScriptName)
	}
	return names
}

// IsSubtype reports whether name is base or derives from it.
func (r *Registry) IsSubtype(name, base string) bool {
	for _, n := range r.Chain(name) {
		if n == base {
			return true
		}
	}
	return false
}

// LookupType resolves builtin keywords plus every node and UI kind name.
// User structs are resolved by the caller.
func LookupType(name string) (types.Type, bool) {
	if t, ok := builtins.Lookup(name); ok {
		return t, true
	}
	if nodeKinds[name] {
		return types.Node(name), true
	}
	if uiKinds[name] {
		return types.UIElement(name), true
	}
	return types.Unknown, false
}

func field(script, rust, typ string) Field {
	return Field{ScriptName: script, RustName: rust, Type: mustType(typ)}
}

func method(name, signature, template string) Method {
	sig := grammar.MustSignature(signature)
	m := Method{ScriptName: name, Return: types.Void, Template: template}
	for _, p := range sig.Params {
		m.Params = append(m.Params, Param{Name: p.Name, Type: mustResolve(p.Type), Variadic: p.Variadic})
	}
	if sig.Return != nil {
		m.Return = mustResolve(sig.Return)
	}
	return m
}

func mustType(source string) types.Type {
	ty, err := grammar.ParseType(source)
	if err != nil {
		panic(err)
	}
	return mustResolve(ty)
}

func mustResolve(ty *grammar.Type) types.Type {
	resolved, err := ty.Resolve(LookupType)
	if err != nil {
		panic(fmt.Sprintf("registry: %v", err))
	}
	return resolved
}
