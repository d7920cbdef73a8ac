// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/fatih/color"

	"pup/internal/driver"
	"pup/internal/errors"
	"pup/internal/parser"
)

const (
	PROMPT       = ">> "
	CONTINUATION = ".. "
)

// ScriptPath names every script typed into the REPL.
const ScriptPath = "res://repl.pup"

type Options struct {
	Release bool // strip console output from generated code
	AST     bool // dump the syntax tree instead of Rust
}

// Start reads scripts from in until EOF. A blank line ends a script; it is
// then compiled and the result written to out. Lines starting with ':' are
// commands: :ast and :rust switch the output, :release and :debug the
// build profile.
func Start(in io.Reader, out io.Writer, opts Options) {
	scanner := bufio.NewScanner(in)
	var buf strings.Builder

	fmt.Fprint(out, PROMPT)
	for scanner.Scan() {
		line := scanner.Text()

		if buf.Len() == 0 && strings.HasPrefix(line, ":") {
			command(out, strings.TrimSpace(line), &opts)
			fmt.Fprint(out, PROMPT)
			continue
		}

		if strings.TrimSpace(line) != "" {
			buf.WriteString(line)
			buf.WriteByte('\n')
			fmt.Fprint(out, CONTINUATION)
			continue
		}

		if buf.Len() > 0 {
			Eval(out, buf.String(), opts)
			buf.Reset()
		}
		fmt.Fprint(out, PROMPT)
	}

	if buf.Len() > 0 {
		fmt.Fprintln(out)
		Eval(out, buf.String(), opts)
	}
}

func command(out io.Writer, cmd string, opts *Options) {
	switch cmd {
	case ":ast":
		opts.AST = true
	case ":rust":
		opts.AST = false
	case ":release":
		opts.Release = true
	case ":debug":
		opts.Release = false
	default:
		fmt.Fprintf(out, "unknown command %s (try :ast, :rust, :release, :debug)\n", cmd)
	}
}

// Eval compiles one script and writes the generated Rust, the syntax tree
// or the diagnostic.
func Eval(out io.Writer, source string, opts Options) {
	if opts.AST {
		script, err := parser.Parse(ScriptPath, source)
		if err != nil {
			diagnose(out, source, err)
			return
		}
		fmt.Fprintln(out, repr.String(script, repr.Indent("  "), repr.OmitEmpty(true)))
		return
	}

	config := driver.DefaultConfig(".")
	config.Release = opts.Release
	output, info, err := driver.New(config).Compile(ScriptPath, source)
	if err != nil {
		diagnose(out, source, err)
		return
	}

	reporter := errors.NewErrorReporter(ScriptPath, source)
	fmt.Fprint(out, reporter.FormatErrors(info.Warnings))
	fmt.Fprintln(out, output.Source)
}

func diagnose(out io.Writer, source string, err error) {
	if ce, ok := err.(errors.CompilerError); ok {
		fmt.Fprint(out, errors.NewErrorReporter(ScriptPath, source).FormatError(ce))
		return
	}
	fmt.Fprintf(out, "%s: %s\n", color.RedString("error"), err)
}
