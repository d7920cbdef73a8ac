package semantic

import (
	"pup/internal/ast"
	"pup/internal/errors"
	"pup/internal/registry"
	"pup/internal/stdlib"
	"pup/internal/types"
)

// Info is everything code generation needs to know about a script. It
// annotates the AST through side tables keyed by node identity; the AST
// itself is never modified.
type Info struct {
	Script   *ast.Script
	NodeType string // kind the script extends

	Types *TypeCache
	// Coercions holds the type an expression is converted to where it is
	// used, when that differs from its own type.
	Coercions map[ast.Expr]types.Type

	Calls          map[ast.Expr]*Call // *ast.CallExpr and *ast.NewExpr
	Symbols        map[*ast.IdentExpr]*Symbol
	Members        map[*ast.MemberExpr]*Member
	Decls          map[ast.Node]*Symbol // Variable, VarStmt, Param and ForStmt
	Interpolations map[*ast.LiteralExpr][]*Symbol

	Variables []*Symbol // script variables in declaration order
	Functions []*FuncInfo
	Structs   []*FlatStruct // script order

	Warnings []errors.CompilerError
}

func newInfo(script *ast.Script, cache *TypeCache) *Info {
	return &Info{
		Script:         script,
		NodeType:       script.Extends.Value,
		Types:          cache,
		Coercions:      make(map[ast.Expr]types.Type),
		Calls:          make(map[ast.Expr]*Call),
		Symbols:        make(map[*ast.IdentExpr]*Symbol),
		Members:        make(map[*ast.MemberExpr]*Member),
		Decls:          make(map[ast.Node]*Symbol),
		Interpolations: make(map[*ast.LiteralExpr][]*Symbol),
	}
}

// TypeOf returns the inferred type of e.
func (info *Info) TypeOf(e ast.Expr) types.Type {
	return info.Types.TypeOf(e)
}

// Function returns the script level function called name.
func (info *Info) Function(name string) *FuncInfo {
	for _, fn := range info.Functions {
		if fn.Name == name {
			return fn
		}
	}
	return nil
}

// Struct returns the flattened struct called name.
func (info *Info) Struct(name string) *FlatStruct {
	for _, s := range info.Structs {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Exposed returns the script variables marked @expose.
func (info *Info) Exposed() []*Symbol {
	var out []*Symbol
	for _, v := range info.Variables {
		if v.Exposed {
			out = append(out, v)
		}
	}
	return out
}

// CallKind is the closed set of things a call can resolve to.
type CallKind int

const (
	CallNodeMethod CallKind = iota
	CallModuleAPI
	CallResourceAPI
	CallScriptFunction
	CallStructMethod
	CallStructConstructor
	CallEngineConstructor
	CallSuper
)

func (k CallKind) String() string {
	switch k {
	case CallNodeMethod:
		return "node method"
	case CallModuleAPI:
		return "module API"
	case CallResourceAPI:
		return "resource API"
	case CallScriptFunction:
		return "script function"
	case CallStructMethod:
		return "struct method"
	case CallStructConstructor:
		return "struct constructor"
	case CallEngineConstructor:
		return "engine constructor"
	case CallSuper:
		return "super call"
	}
	return "unknown"
}

// Call is a resolved call site. Receiver is nil for bare calls; for node
// methods it is the handle the method runs on and for resource calls it is
// the value passed as the function's first argument.
type Call struct {
	Kind      CallKind
	Name      string
	Namespace string
	Receiver  ast.Expr
	Args      []ast.Expr
	Params    []types.Type // one per argument, variadic tails expanded
	Return    types.Type

	Method   registry.Method          // CallNodeMethod
	API      stdlib.FunctionDefinition // CallModuleAPI, CallResourceAPI
	Function *FuncInfo                 // script functions, struct methods, super
	Struct   *FlatStruct               // struct methods and constructors
	Engine   *registry.Def             // CallEngineConstructor
}

// MemberKind classifies a field access.
type MemberKind int

const (
	MemberScriptVar MemberKind = iota
	MemberNodeField
	MemberUIField
	MemberEngineField
	MemberStructField
	MemberObjectKey
)

// Member is a resolved "x.name". Owner is the Rust type holding the field:
// the receiver's node or UI kind for engine handles, the value type for
// engine structs.
type Member struct {
	Kind  MemberKind
	Name  string
	Rust  string // field path as emitted, e.g. "texture_id" or "props.color"
	Owner string
	Type  types.Type
	Var   *Symbol // MemberScriptVar
}

// FuncInfo is a checked function signature.
type FuncInfo struct {
	Name      string
	Decl      *ast.Function
	Params    []*Symbol
	Return    types.Type
	Struct    string // owning struct for methods, empty for script functions
	Lifecycle bool   // init, update or fixed_update
}

// ParamTypes lists the declared parameter types.
func (f *FuncInfo) ParamTypes() []types.Type {
	out := make([]types.Type, len(f.Params))
	for i, p := range f.Params {
		out[i] = p.Type
	}
	return out
}

// FlatStruct is a user struct with its base chain flattened in.
type FlatStruct struct {
	Name    string
	Decl    *ast.StructDef
	Base    string
	Fields  []*FlatField  // base fields first
	Methods []*FlatMethod // own methods, then inherited ones, then super_ copies
}

type FlatField struct {
	Name    string
	Type    types.Type
	Default ast.Expr
	Owner   string // struct that declares the field
}

// FlatMethod is one method as emitted on a struct. Inherited methods
// forward to Forward on a copy of the base built from the base fields;
// Super marks a base method that the struct overrides, kept reachable as
// super_<name>.
type FlatMethod struct {
	Name      string
	Func      *FuncInfo
	Owner     string
	Inherited bool
	Super     bool
	Forward   string // base method called by an inherited copy
}

func (s *FlatStruct) Field(name string) *FlatField {
	for _, f := range s.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func (s *FlatStruct) Method(name string) *FlatMethod {
	for _, m := range s.Methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}

func (s *FlatStruct) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

func (s *FlatStruct) MethodNames() []string {
	var names []string
	for _, m := range s.Methods {
		if !m.Super {
			names = append(names, m.Name)
		}
	}
	return names
}
