package semantic

import (
	"fmt"

	"pup/internal/ast"
	"pup/internal/errors"
	"pup/internal/rustname"
	"pup/internal/types"
)

// Only @expose carries meaning: it publishes a script variable to the
// scene editor and to apply_exposed at load time.
var validVariableAttributes = map[string]bool{
	"expose": true,
}

// lifecycleFunctions are called by the engine through the Script trait.
var lifecycleFunctions = map[string]bool{
	"init":         true,
	"update":       true,
	"fixed_update": true,
}

type Analyzer struct {
	script  *ast.Script
	info    *Info
	errors  []errors.CompilerError // first error stops the pass
	symbols *SymbolTable           // innermost scope
	scope   *SymbolTable           // script variables
	context *ContextRegistry

	functions   map[string]*FuncInfo
	structDecls map[string]*ast.StructDef
	flat        map[string]*FlatStruct
	reserved    map[string]bool // Rust names struct declarations may not take

	currentFn     *FuncInfo
	currentStruct *FlatStruct
	loopDepth     int
	constContext  bool
}

func NewAnalyzer(ctx *ContextRegistry) *Analyzer {
	if ctx == nil {
		ctx = NewContextRegistry()
	}
	return &Analyzer{context: ctx}
}

// Analyze checks one script and returns its side tables. Each call builds
// a fresh type cache, so analyzing another script never sees entries from
// this one. The returned errors hold at most one error: analysis stops at
// the first problem found.
func (a *Analyzer) Analyze(script *ast.Script) (*Info, []errors.CompilerError) {
	a.script = script
	a.info = newInfo(script, NewTypeCache())
	a.errors = nil
	a.scope = NewSymbolTable(nil)
	a.symbols = a.scope
	a.functions = make(map[string]*FuncInfo)
	a.structDecls = make(map[string]*ast.StructDef)
	a.flat = make(map[string]*FlatStruct)
	id, _ := rustname.Identifier(script.Path)
	a.reserved = rustname.Reserved(id)
	a.currentFn, a.currentStruct = nil, nil
	a.loopDepth = 0
	a.constContext = false

	a.analyzeScript(script)

	return a.info, a.errors
}

// GetErrors returns the errors of the last pass
func (a *Analyzer) GetErrors() []errors.CompilerError {
	return a.errors
}

func (a *Analyzer) halted() bool {
	return len(a.errors) > 0
}

func (a *Analyzer) analyzeScript(script *ast.Script) {
	if !a.context.IsNodeType(script.Extends.Value) {
		a.addCompilerError(errors.NewSemanticError(errors.ErrorUnknownNodeType,
			fmt.Sprintf("unknown node type '%s'", script.Extends.Value), script.Extends.Pos).
			WithLength(len(script.Extends.Value)).
			WithNote("a script must extend one of: " + joinNames(a.context.Nodes.Names())).
			Build())
		return
	}

	// Declarations first so bodies can refer to anything in the script.
	for _, st := range script.Structs {
		a.declareStruct(st)
	}
	a.flattenStructs()
	a.analyzeFieldDefaults()
	a.checkRecursion()

	for _, fn := range script.Functions {
		if a.halted() {
			return
		}
		if _, exists := a.functions[fn.Name.Value]; exists {
			a.addCompilerError(errors.DuplicateDeclaration(fn.Name.Value, fn.Name.Pos))
			return
		}
		info := a.declareFunction(fn, "")
		if info == nil {
			return
		}
		a.functions[info.Name] = info
		a.info.Functions = append(a.info.Functions, info)
	}

	for _, v := range script.Variables {
		if a.halted() {
			return
		}
		a.declareVariable(v)
	}

	a.analyzeMethodBodies()

	for _, fn := range a.info.Functions {
		if a.halted() {
			return
		}
		a.analyzeFunctionBody(fn, a.scope)
	}
}

func (a *Analyzer) declareVariable(v *ast.Variable) {
	name := v.Name.Value
	if a.scope.LookupLocal(name) != nil {
		a.addCompilerError(errors.DuplicateDeclaration(name, v.Name.Pos))
		return
	}
	for _, attr := range v.Attributes {
		if !validVariableAttributes[attr.Name] {
			a.addCompilerError(errors.InvalidAttribute(attr.Name, "expose", attr.Pos))
			return
		}
	}

	declared := types.Unknown
	if v.Type != nil {
		t, ok := a.resolveTypeRef(v.Type)
		if !ok {
			return
		}
		declared = t
	}

	if v.Value != nil {
		if !a.isConstant(v.Value) {
			a.addCompilerError(errors.NonConstantInitializer(name, v.Value.NodePos()))
			return
		}
		a.constContext = true
		actual := a.expectExpr(v.Value, declared)
		a.constContext = false
		if a.halted() {
			return
		}
		// calls are only known to be constant once resolved
		if !a.isConstant(v.Value) {
			a.addCompilerError(errors.NonConstantInitializer(name, v.Value.NodePos()))
			return
		}
		if declared.Kind == types.KindUnknown {
			declared = actual
		}
	} else if declared.Kind == types.KindUnknown {
		a.addCompilerError(errors.UnresolvedType(fmt.Sprintf("variable '%s'", name), v.Name.Pos))
		return
	}

	sym := a.scope.Define(name, SymbolScriptVar, v, v.Name.Pos)
	sym.Type = declared
	sym.Const = v.Const
	sym.Exposed = v.Exposed()
	a.info.Variables = append(a.info.Variables, sym)
	a.info.Decls[v] = sym
}

// declareFunction checks a signature. owner is the struct for methods.
func (a *Analyzer) declareFunction(fn *ast.Function, owner string) *FuncInfo {
	if len(fn.Attributes) > 0 {
		attr := fn.Attributes[0]
		a.addCompilerError(errors.NewSemanticError(errors.ErrorInvalidAttribute,
			fmt.Sprintf("invalid attribute: @%s", attr.Name), attr.Pos).
			WithLength(len(attr.Name) + 1).
			WithHelp("functions take no attributes; @expose applies to script variables").
			Build())
		return nil
	}

	info := &FuncInfo{
		Name:      fn.Name.Value,
		Decl:      fn,
		Return:    types.Void,
		Struct:    owner,
		Lifecycle: owner == "" && lifecycleFunctions[fn.Name.Value],
	}

	seen := make(map[string]bool)
	for _, p := range fn.Params {
		if seen[p.Name.Value] {
			a.addCompilerError(errors.DuplicateDeclaration(p.Name.Value, p.Name.Pos))
			return nil
		}
		seen[p.Name.Value] = true

		t, ok := a.resolveTypeRef(p.Type)
		if !ok {
			return nil
		}
		sym := &Symbol{Name: p.Name.Value, Kind: SymbolParameter, Node: p, Position: p.Name.Pos, Type: t}
		info.Params = append(info.Params, sym)
		a.info.Decls[p] = sym
	}

	if fn.Return != nil {
		t, ok := a.resolveTypeRef(fn.Return)
		if !ok {
			return nil
		}
		info.Return = t
	}

	if info.Lifecycle && (len(info.Params) > 0 || info.Return.Kind != types.KindVoid) {
		a.addCompilerError(errors.NewSemanticError(errors.ErrorInvalidArguments,
			fmt.Sprintf("lifecycle function '%s' takes no parameters and returns nothing", info.Name), fn.Name.Pos).
			WithLength(len(info.Name)).
			WithNote("read the frame delta with Time.get_delta()").
			Build())
		return nil
	}

	return info
}

func (a *Analyzer) analyzeFunctionBody(fn *FuncInfo, root *SymbolTable) {
	a.currentFn = fn
	a.symbols = NewSymbolTable(root)
	for _, p := range fn.Params {
		a.symbols.Insert(p)
	}

	a.analyzeBlock(fn.Decl.Body)
	a.symbols = root
	a.currentFn = nil
	if a.halted() {
		return
	}

	if fn.Return.Kind != types.KindVoid && !alwaysReturns(fn.Decl.Body) {
		a.addCompilerError(errors.NewSemanticError(errors.ErrorInvalidReturnType,
			fmt.Sprintf("function '%s' must return a value of type %s", fn.Name, fn.Return), fn.Decl.Name.Pos).
			WithLength(len(fn.Name)).
			WithHelp("every path through the function must end in a return").
			Build())
	}
}

// alwaysReturns reports whether every path through b ends in a return.
func alwaysReturns(b *ast.Block) bool {
	if b == nil || len(b.Stmts) == 0 {
		return false
	}
	return stmtReturns(b.Stmts[len(b.Stmts)-1])
}

func stmtReturns(s ast.Stmt) bool {
	switch s := s.(type) {
	case *ast.ReturnStmt:
		return true
	case *ast.Block:
		return alwaysReturns(s)
	case *ast.IfStmt:
		if s.Else == nil {
			return false
		}
		return alwaysReturns(s.Then) && stmtReturns(s.Else)
	}
	return false
}
