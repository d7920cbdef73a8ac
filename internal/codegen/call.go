package codegen

import (
	"strconv"
	"strings"

	"pup/internal/ast"
	"pup/internal/registry"
	"pup/internal/semantic"
	"pup/internal/types"
)

// handle::name reads and writes go through the Node variable accessors.
var nodeGetVar, nodeSetVar = nodeVarMethods()

func nodeVarMethods() (registry.Method, registry.Method) {
	nodes := registry.NewNodeRegistry()
	get, ok := nodes.Method("Node", "get_var")
	if !ok {
		panic("codegen: Node.get_var is not registered")
	}
	set, ok := nodes.Method("Node", "set_var")
	if !ok {
		panic("codegen: Node.set_var is not registered")
	}
	return get, set
}

// call emits a resolved call site. Each kind has its own lowering.
func (g *generator) call(site ast.Expr) string {
	c := g.info.Calls[site]
	if c == nil {
		g.internalError(site, "unresolved call '%s'", site.String())
		return ""
	}

	switch c.Kind {
	case semantic.CallNodeMethod:
		return g.nodeMethodCall(c)
	case semantic.CallModuleAPI:
		return g.moduleCall(c)
	case semantic.CallResourceAPI:
		return g.resourceCall(c)
	case semantic.CallScriptFunction:
		return g.scriptFunctionCall(c)
	case semantic.CallStructMethod:
		return g.structMethodCall(c)
	case semantic.CallStructConstructor:
		return g.structConstructor(c)
	case semantic.CallEngineConstructor:
		return g.engineConstructor(c)
	case semantic.CallSuper:
		return g.superCall(c)
	}
	g.internalError(site, "cannot generate a %s", c.Kind)
	return ""
}

func (g *generator) args(exprs []ast.Expr) []string {
	out := make([]string, len(exprs))
	for i, e := range exprs {
		out[i] = g.expr(e)
	}
	return out
}

// nodeMethodCall passes the receiver handle as an implicit first argument.
// It carries the conversion to a plain node handle, so optional handles
// unwrap like any other argument. A bare call runs on the script's own node.
func (g *generator) nodeMethodCall(c *semantic.Call) string {
	recv := "self.id"
	if c.Receiver != nil {
		recv = g.expr(c.Receiver)
	}

	variadic := -1
	for i, p := range c.Method.Params {
		if p.Variadic {
			variadic = i
		}
	}
	return expand(c.Method.Template, recv, g.args(c.Args), variadic)
}

func (g *generator) moduleCall(c *semantic.Call) string {
	return expand(c.API.Template, "", g.args(c.Args), apiVariadic(c))
}

// resourceCall emits a function that operates on a value. The value is
// passed as a place so mutating functions like push change it.
func (g *generator) resourceCall(c *semantic.Call) string {
	args := g.args(c.Args)
	if len(c.Args) > 0 && (c.Receiver != nil || takesContainer(c)) {
		args[0] = g.place(c.Args[0])
	}
	return expand(c.API.Template, "", args, apiVariadic(c))
}

func takesContainer(c *semantic.Call) bool {
	if len(c.Params) == 0 {
		return false
	}
	switch c.Params[0].Kind {
	case types.KindArray, types.KindMap:
		return true
	}
	return false
}

func apiVariadic(c *semantic.Call) int {
	if n, variadic := c.API.Arity(); variadic {
		return n
	}
	return -1
}

func (g *generator) scriptFunctionCall(c *semantic.Call) string {
	args := append([]string{"api", "false"}, g.args(c.Args)...)
	return "self." + g.rename(c.Name) + "(" + strings.Join(args, ", ") + ")"
}

func (g *generator) structMethodCall(c *semantic.Call) string {
	args := append([]string{"api"}, g.args(c.Args)...)
	return g.place(c.Receiver) + "." + escape(c.Name) + "(" + strings.Join(args, ", ") + ")"
}

func (g *generator) superCall(c *semantic.Call) string {
	args := append([]string{"api"}, g.args(c.Args)...)
	return "self." + escape(c.Name) + "(" + strings.Join(args, ", ") + ")"
}

// structConstructor always goes through new. Without arguments every field
// takes its declared default.
func (g *generator) structConstructor(c *semantic.Call) string {
	var args []string
	if len(c.Args) > 0 {
		args = g.args(c.Args)
	} else {
		for _, f := range c.Struct.Fields {
			if f.Default != nil {
				args = append(args, g.expr(f.Default))
			} else {
				args = append(args, f.Type.DefaultValue())
			}
		}
	}
	return c.Struct.Name + "::new(" + strings.Join(args, ", ") + ")"
}

func (g *generator) engineConstructor(c *semantic.Call) string {
	name := c.Engine.RustName
	if len(c.Args) == 0 {
		return name + "::default()"
	}
	return name + "::new(" + strings.Join(g.args(c.Args), ", ") + ")"
}

// expand fills a registry template: {self} is the receiver, {0}, {1}, ...
// the arguments and {args} the variadic tail starting at variadic.
func expand(template, self string, args []string, variadic int) string {
	pairs := []string{"{self}", self}
	if variadic >= 0 {
		tail := []string{}
		if variadic < len(args) {
			tail = args[variadic:]
		}
		pairs = append(pairs, "{args}", strings.Join(tail, ", "))
	}
	for i, a := range args {
		pairs = append(pairs, "{"+strconv.Itoa(i)+"}", a)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
