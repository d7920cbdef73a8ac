package repl

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func init() {
	color.NoColor = true
}

const script = "extends Node\n" +
	"var hp = 10\n" +
	"fn init() {\n" +
	"\tprint(\"hp={hp}\")\n" +
	"}\n"

func run(input string, opts Options) string {
	var out strings.Builder
	Start(strings.NewReader(input), &out, opts)
	return out.String()
}

func TestStartCompilesOnBlankLine(t *testing.T) {
	out := run(script+"\n", Options{})

	assert.True(t, strings.HasPrefix(out, PROMPT))
	assert.Contains(t, out, "pub struct ")
	assert.Contains(t, out, "format!(\"hp={}\"")
	assert.True(t, strings.HasSuffix(out, PROMPT), "prompts again after a script")
}

func TestStartCompilesAtEOF(t *testing.T) {
	out := run(script, Options{})
	assert.Contains(t, out, "pub struct ")
}

func TestStartCommands(t *testing.T) {
	out := run(":ast\n"+script+"\n:nope\n", Options{})

	assert.Contains(t, out, "ast.Script{")
	assert.NotContains(t, out, "pub struct ")
	assert.Contains(t, out, "unknown command :nope")
}

func TestEvalRelease(t *testing.T) {
	var debug, release strings.Builder
	Eval(&debug, script, Options{})
	Eval(&release, script, Options{Release: true})

	assert.Contains(t, debug.String(), "format!(\"hp={}\"")
	assert.NotContains(t, release.String(), "format!(\"hp={}\"")
}

func TestEvalDiagnostics(t *testing.T) {
	var out strings.Builder
	Eval(&out, "extends Node\nfn init() {\n\tjump()\n}\n", Options{})

	assert.Contains(t, out.String(), "error[E0002]")
	assert.Contains(t, out.String(), ScriptPath+":3:2")

	out.Reset()
	Eval(&out, "extends Node\nvar = 1\n", Options{AST: true})
	assert.Contains(t, out.String(), "error[E0100]")
}
