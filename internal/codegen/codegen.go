// Package codegen lowers an analyzed pup script to a Rust source file for
// the engine's script crate. It only reads the analyzer's side tables; no
// call, member or type is resolved again here.
package codegen

import (
	"fmt"

	"pup/internal/ast"
	"pup/internal/errors"
	"pup/internal/rustname"
	"pup/internal/semantic"
	"pup/internal/sourcemap"
)

type Options struct {
	// Release strips Console calls from the output.
	Release bool
}

// Output is one generated file.
type Output struct {
	Identifier string // e.g. scripts_bob_pup
	StructName string // e.g. ScriptsBobPupScript
	Source     string
	Map        *sourcemap.ScriptMap
}

// File is the generated file path relative to the script crate.
func (o *Output) File() string {
	return "src/" + o.Identifier + ".rs"
}

type generator struct {
	info *semantic.Info
	opts Options
	id   string
	w    *writer

	// current function and the struct it belongs to, nil at script level
	fn     *semantic.FuncInfo
	strukt *semantic.FlatStruct

	err error
}

// Generate emits the Rust file for script. info must come from a
// successful analysis of the same script. The output depends only on the
// inputs, so generating twice yields identical files.
func Generate(script *ast.Script, info *semantic.Info, opts Options) (*Output, error) {
	id, err := rustname.Identifier(script.Path)
	if err != nil {
		return nil, err
	}

	smap := sourcemap.NewBuilder(id, script.Path, "src/"+id+".rs")
	g := &generator{
		info: info,
		opts: opts,
		id:   id,
		w:    &writer{smap: smap},
	}

	g.emitScript(script)
	if g.err != nil {
		return nil, g.err
	}

	return &Output{
		Identifier: id,
		StructName: rustname.StructName(id),
		Source:     g.w.String(),
		Map:        smap.Build(),
	}, nil
}

// fail keeps the first error. Emission carries on so the caller sees one
// diagnostic, but the output is discarded.
func (g *generator) fail(err errors.CompilerError) {
	if g.err == nil {
		g.err = err
	}
}

// rename records the generated name of a script identifier.
func (g *generator) rename(original string) string {
	name := local(original)
	g.w.smap.Rename(name, original)
	return name
}

func (g *generator) renameField(original string) string {
	name := escape(original)
	g.w.smap.Rename(name, original)
	return name
}

func span(n ast.Node) ast.SourceSpan {
	return ast.SpanOf(n)
}

func (g *generator) internalError(n ast.Node, format string, args ...interface{}) {
	g.fail(errors.NewSemanticError(errors.ErrorUnresolvedType,
		fmt.Sprintf(format, args...), n.NodePos()).
		WithSpan(n).
		Build())
}
