package semantic

import (
	"fmt"

	"pup/internal/ast"
	"pup/internal/errors"
	"pup/internal/registry"
	"pup/internal/stdlib"
	"pup/internal/types"
)

func (a *Analyzer) inferCall(c *ast.CallExpr, expected types.Type) types.Type {
	var call *Call
	switch callee := c.Callee.(type) {
	case *ast.IdentExpr:
		call = a.resolveBareCall(c, callee, expected)
	case *ast.MemberExpr:
		call = a.resolveMemberCall(c, callee, expected)
	default:
		a.addCompilerError(errors.NewSemanticError(errors.ErrorInvalidOperation,
			fmt.Sprintf("'%s' is not callable", c.Callee.String()), c.Pos).
			WithSpan(c.Callee).
			Build())
	}
	if call == nil || a.halted() {
		return types.Unknown
	}
	a.info.Calls[c] = call
	return call.Return
}

// resolveBareCall resolves name(args). A script function that shares its
// name with a node method or a global API is rejected rather than picked.
func (a *Analyzer) resolveBareCall(c *ast.CallExpr, id *ast.IdentExpr, expected types.Type) *Call {
	name := id.Name

	if _, ok := a.structDecls[name]; ok || a.context.Engine.Has(name) {
		a.constructorCall(c, name, c.Args, id.Pos)
		if a.halted() {
			return nil
		}
		return a.info.Calls[c]
	}

	inScript := a.currentStruct == nil
	var userFn *FuncInfo
	if inScript {
		userFn = a.functions[name]
	}
	method, hasMethod := a.context.Nodes.Method(a.info.NodeType, name)
	hasMethod = hasMethod && inScript
	global, hasGlobal := stdlib.Global(name)

	if userFn != nil && (hasMethod || hasGlobal) {
		var candidates []string
		if hasMethod {
			candidates = append(candidates, fmt.Sprintf("node method %s.%s", a.info.NodeType, name))
		}
		if hasGlobal {
			candidates = append(candidates, fmt.Sprintf("module API %s.%s", global.Namespace, global.Name))
		}
		candidates = append(candidates, "script function "+name)
		a.addCompilerError(errors.AmbiguousCall(name, candidates, id.Pos))
		return nil
	}

	switch {
	case userFn != nil:
		return a.scriptFunctionCall(c, userFn)
	case hasMethod:
		return a.handleMethodCall(c, nil, types.Node(a.info.NodeType), name, id.Pos, &method)
	case hasGlobal:
		return a.apiCall(c, CallModuleAPI, global, c.Args, nil, expected)
	}

	a.addUndefinedFunctionError(name, id.Pos)
	return nil
}

func (a *Analyzer) resolveMemberCall(c *ast.CallExpr, m *ast.MemberExpr, expected types.Type) *Call {
	name := m.Name.Value

	switch x := m.X.(type) {
	case *ast.SuperExpr:
		return a.superCall(c, m)
	case *ast.IdentExpr:
		if a.lookup(x.Name) != nil {
			break
		}
		if mod := a.context.GetStandardModuleDefinition(x.Name); mod != nil {
			def, ok := mod.Functions[name]
			if !ok {
				a.addCompilerError(errors.UnknownMember(errors.ErrorUnknownModuleCall, mod.Name, name, m.Name.Pos, mod.Spellings()))
				return nil
			}
			kind := CallModuleAPI
			if mod.Resource {
				kind = CallResourceAPI
			}
			return a.apiCall(c, kind, def, c.Args, nil, expected)
		}
		if isCapitalized(x.Name) {
			a.addCompilerError(errors.UndefinedModule(x.Name, x.Pos,
				errors.FindSimilarNames(x.Name, a.context.ModuleNames())))
			return nil
		}
	case *ast.SelfExpr:
		if a.currentStruct == nil {
			if fn := a.functions[name]; fn != nil {
				a.info.Types.Put(x, types.Node(a.info.NodeType))
				return a.scriptFunctionCall(c, fn)
			}
		}
	}

	recv := a.inferExpr(m.X, types.Unknown)
	if a.halted() {
		return nil
	}

	handle := recv
	if handle.Kind == types.KindOption && handle.Elem().IsNodeHandle() {
		handle = handle.Elem()
	}
	switch handle.Kind {
	case types.KindNode, types.KindDynNode, types.KindUIElement:
		return a.handleMethodCall(c, m.X, recv, name, m.Name.Pos, nil)
	case types.KindCustom:
		return a.structMethodCall(c, m, recv)
	}

	if mod, ok := stdlib.ResourceFor(recv); ok {
		def, ok := mod.Functions[name]
		if !ok {
			a.addCompilerError(errors.UnknownMember(errors.ErrorUnknownModuleCall, mod.Name, name, m.Name.Pos, mod.Spellings()))
			return nil
		}
		args := append([]ast.Expr{m.X}, c.Args...)
		return a.apiCall(c, CallResourceAPI, def, args, m.X, expected)
	}

	a.addCompilerError(errors.MethodNotFound(recv.String(), name, m.Name.Pos, nil))
	return nil
}

// handleMethodCall binds a method of a node or UI handle. A nil receiver
// is the script's own node. Node receivers are passed as a plain handle,
// so optional handles are unwrapped like any other argument.
func (a *Analyzer) handleMethodCall(c *ast.CallExpr, recvExpr ast.Expr, recv types.Type, name string, pos ast.Position, known *registry.Method) *Call {
	handle := recv
	if handle.Kind == types.KindOption {
		handle = handle.Elem()
	}
	reg, owner := a.context.registryFor(handle)

	var method registry.Method
	if known != nil {
		method = *known
	} else {
		m, ok := reg.Method(owner, name)
		if !ok {
			a.addCompilerError(errors.UnknownMember(errors.ErrorUnknownNodeMethod, owner, name, pos, reg.MethodNames(owner)))
			return nil
		}
		method = m
	}

	if recvExpr != nil {
		if handle.IsNodeHandle() {
			a.coerce(recvExpr, types.DynNode)
		} else {
			a.coerce(recvExpr, handle)
		}
	}

	call := &Call{Kind: CallNodeMethod, Name: name, Receiver: recvExpr, Args: c.Args, Method: method}
	params := make([]types.Type, len(method.Params))
	variadic := false
	for i, p := range method.Params {
		params[i] = p.Type
		variadic = variadic || p.Variadic
	}
	a.checkArgs(c, owner+"."+name, call, params, variadic, 0)
	call.Return = method.Return
	return call
}

// apiCall binds a module or resource function. For resource calls args[0]
// is the value the function operates on; its type binds T, K and V.
func (a *Analyzer) apiCall(c *ast.CallExpr, kind CallKind, def stdlib.FunctionDefinition, args []ast.Expr, receiver ast.Expr, expected types.Type) *Call {
	recvType := types.Unknown
	if kind == CallResourceAPI && len(args) > 0 && def.Generic() {
		recvType = a.inferExpr(args[0], types.Unknown)
		if a.halted() {
			return nil
		}
	}

	bound, ret, err := def.Bind(recvType)
	if err != nil {
		a.addCompilerError(errors.UnresolvedType(err.Error(), c.Pos))
		return nil
	}

	call := &Call{
		Kind:      kind,
		Name:      def.Name,
		Namespace: def.Namespace,
		Receiver:  receiver,
		Args:      args,
		API:       def,
	}

	params := make([]types.Type, len(bound))
	variadic := false
	for i, p := range bound {
		params[i] = p.Type
		variadic = variadic || p.Variadic
	}
	skip := 0
	if receiver != nil {
		skip = 1
	}
	a.checkArgs(c, def.Namespace+"."+def.Name, call, params, variadic, skip)
	if a.halted() {
		return nil
	}

	// Array.new() and friends take their element types from the context
	if !ret.IsConcrete() && ret.Kind != types.KindVoid {
		target := expected
		if target.Kind == types.KindOption && ret.Kind != types.KindOption {
			target = target.Elem()
		}
		if target.Kind == ret.Kind && target.IsConcrete() {
			ret = target
		}
	}
	call.Return = ret
	return call
}

func (a *Analyzer) scriptFunctionCall(c *ast.CallExpr, fn *FuncInfo) *Call {
	call := &Call{Kind: CallScriptFunction, Name: fn.Name, Args: c.Args, Function: fn}
	a.checkArgs(c, fn.Name, call, fn.ParamTypes(), false, 0)
	call.Return = fn.Return
	return call
}

func (a *Analyzer) structMethodCall(c *ast.CallExpr, m *ast.MemberExpr, recv types.Type) *Call {
	fs := a.flat[recv.Name]
	method := fs.Method(m.Name.Value)
	if method == nil || method.Super {
		a.addCompilerError(errors.MethodNotFound(recv.Name, m.Name.Value, m.Name.Pos, fs.MethodNames()))
		return nil
	}
	call := &Call{
		Kind:     CallStructMethod,
		Name:     method.Name,
		Receiver: m.X,
		Args:     c.Args,
		Function: method.Func,
		Struct:   fs,
	}
	a.checkArgs(c, recv.Name+"."+method.Name, call, method.Func.ParamTypes(), false, 0)
	call.Return = method.Func.Return
	return call
}

// superCall resolves super.name(...) inside a struct method to the base
// implementation: the super_ copy when the struct overrides name, the
// inherited method otherwise.
func (a *Analyzer) superCall(c *ast.CallExpr, m *ast.MemberExpr) *Call {
	fs := a.currentStruct
	if fs == nil || fs.Base == "" {
		a.addCompilerError(errors.NewSemanticError(errors.ErrorInvalidOperation,
			"super is only available in methods of a struct that extends another", m.X.NodePos()).
			WithLength(len("super")).
			Build())
		return nil
	}

	name := m.Name.Value
	target := fs.Method("super_" + name)
	if target == nil {
		if bm := a.flat[fs.Base].Method(name); bm != nil && !bm.Super {
			target = bm
		}
	}
	if target == nil {
		a.addCompilerError(errors.MethodNotFound(fs.Base, name, m.Name.Pos, a.flat[fs.Base].MethodNames()))
		return nil
	}

	call := &Call{Kind: CallSuper, Name: target.Name, Args: c.Args, Function: target.Func, Struct: fs}
	a.checkArgs(c, "super."+name, call, target.Func.ParamTypes(), false, 0)
	call.Return = target.Func.Return
	return call
}

// constructorCall types Name(args) and new Name(args). Constructors take
// no arguments or one per flattened field.
func (a *Analyzer) constructorCall(site ast.Expr, name string, args []ast.Expr, pos ast.Position) types.Type {
	var fields []types.Type
	call := &Call{Name: name, Args: args}

	if fs, ok := a.flat[name]; ok {
		call.Kind = CallStructConstructor
		call.Struct = fs
		call.Return = types.Custom(name)
		for _, f := range fs.Fields {
			fields = append(fields, f.Type)
		}
	} else if def, ok := a.context.Engine.Def(name); ok {
		call.Kind = CallEngineConstructor
		call.Engine = def
		call.Return = types.EngineStruct(name)
		for _, f := range def.Fields {
			fields = append(fields, f.Type)
		}
	} else {
		names := append(a.structNames(), a.context.Engine.Names()...)
		a.addCompilerError(errors.UnknownType(name, pos, errors.FindSimilarNames(name, names)))
		return types.Unknown
	}

	if len(args) != 0 && len(args) != len(fields) {
		a.addCompilerError(errors.InvalidArguments(name, len(fields), len(args), pos))
		return types.Unknown
	}
	call.Params = make([]types.Type, len(args))
	for i, arg := range args {
		call.Params[i] = a.expectExpr(arg, fields[i])
		if a.halted() {
			return types.Unknown
		}
	}

	a.info.Calls[site] = call
	return call.Return
}

// checkArgs checks the argument count and types against params, the last
// of which repeats when variadic. skip is the number of leading arguments
// that are the receiver, left out of the counts reported.
func (a *Analyzer) checkArgs(c *ast.CallExpr, name string, call *Call, params []types.Type, variadic bool, skip int) {
	n := len(params)
	required := n
	if variadic {
		required = n - 1
	}
	got := len(call.Args)
	if got < required || (!variadic && got != n) {
		err := errors.InvalidArguments(name, required-skip, got-skip, c.Pos)
		err.Length = c.EndPos.Offset - c.Pos.Offset
		a.addCompilerError(err)
		return
	}

	call.Params = make([]types.Type, got)
	for i, arg := range call.Args {
		p := params[min(i, n-1)]
		if p.Kind == types.KindUnknown {
			p = a.inferExpr(arg, types.Unknown)
		} else {
			a.expectExpr(arg, p)
		}
		if a.halted() {
			return
		}
		call.Params[i] = p
	}
}
