package casebook

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"pup/internal/ast"
	"pup/internal/driver"
	"pup/internal/errors"
)

const casePath = "res://scripts/case.pup"

func TestCaseBooks(t *testing.T) {
	books, err := filepath.Glob("testdata/*.md")
	be.Err(t, err, nil)
	be.True(t, len(books) > 0)

	for _, book := range books {
		t.Run(strings.TrimSuffix(filepath.Base(book), ".md"), func(t *testing.T) {
			cases, err := Load(book)
			be.Err(t, err, nil)

			for _, c := range cases {
				t.Run(c.Name, func(t *testing.T) {
					config := driver.DefaultConfig(t.TempDir())
					config.Release = c.Release()
					out, _, err := driver.New(config).Compile(casePath, c.Input)

					source := ""
					if out != nil {
						source = out.Source
					}
					for _, failure := range c.Check(source, err) {
						t.Error(failure)
					}
				})
			}
		})
	}
}

const sample = "# Book\n\n" +
	"Some prose with a bare fence.\n\n" +
	"```\nignored\n```\n\n" +
	"## Test: first\n\n" +
	"```pup\nextends Node\n```\n\n" +
	"```rust\nlet x = 1;\n```\n\n" +
	"```rust-absent\nlet y = 2;\n```\n\n" +
	"## Test: second\n\n" +
	"```pup-release\nextends Node\n```\n\n" +
	"```compile-error\nE0002 not defined\n```\n"

func TestExtract(t *testing.T) {
	cases, err := Extract(sample)
	be.Err(t, err, nil)
	be.Equal(t, len(cases), 2)

	first := cases[0]
	be.Equal(t, first.Name, "first")
	be.Equal(t, first.Input, "extends Node\n")
	be.Equal(t, first.InputType, InputScript)
	be.Equal(t, first.Release(), false)
	be.Equal(t, len(first.Assertions), 2)
	be.Equal(t, first.Assertions[0].Type, AssertRust)
	be.Equal(t, first.Assertions[0].Content, "let x = 1;")
	be.Equal(t, first.Assertions[1].Type, AssertRustAbsent)

	second := cases[1]
	be.Equal(t, second.Release(), true)
	be.Equal(t, second.Assertions[0].Type, AssertCompileError)
	be.Equal(t, second.Assertions[0].Line, 30)
}

func TestExtractErrors(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     string
	}{
		{"fence outside case", "```rust\nx\n```\n", "outside of a test case"},
		{"no input", "## Test: a\n\n```rust\nx\n```\n", "has no input fence"},
		{"no assertions", "## Test: a\n\n```pup\nextends Node\n```\n", "has no assertion fences"},
		{"two inputs", "## Test: a\n\n```pup\na\n```\n\n```pup\nb\n```\n", "second input fence"},
		{"unknown fence", "## Test: a\n\n```pup\na\n```\n\n```go\nb\n```\n", "unknown fence language 'go'"},
		{"mixed", "## Test: a\n\n```pup\na\n```\n\n```rust\nb\n```\n\n```compile-error\nE0001\n```\n", "mixes compile-error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(tt.markdown)
			be.Err(t, err, tt.want)
		})
	}
}

func TestCheckRust(t *testing.T) {
	c := Case{Assertions: []Assertion{
		{Type: AssertRust, Content: "fn a() {\n    b();\n}"},
		{Type: AssertRustAbsent, Content: "c();"},
	}}

	output := "struct S;\n\n        fn a() {\n            b();\n        }\n"
	be.Equal(t, len(c.Check(output, nil)), 0)

	be.Equal(t, len(c.Check("fn a() {\n}\nb();\n", nil)), 1)
	be.Equal(t, len(c.Check(output+"c();\n", nil)), 1)
	be.Equal(t, len(c.Check("", fmt.Errorf("boom"))), 2)
}

func TestCheckCompileError(t *testing.T) {
	c := Case{Assertions: []Assertion{{Type: AssertCompileError, Content: "E0002 not defined"}}}
	undefined := errors.UndefinedFunction("jump", ast.Position{Line: 1, Column: 1}, nil)

	be.Equal(t, len(c.Check("", undefined)), 0)
	be.Equal(t, len(c.Check("", &driver.ScriptError{Err: undefined})), 0)

	failures := c.Check("fn x() {}", nil)
	be.Equal(t, len(failures), 1)
	be.True(t, strings.Contains(failures[0], "compiled without error"))

	failures = c.Check("", errors.NullWithoutOption(ast.Position{Line: 1, Column: 1}))
	be.Equal(t, len(failures), 1)
	be.True(t, strings.Contains(failures[0], "expected E0002, got E0202"))
}

func TestContainsRun(t *testing.T) {
	got := []string{"a", "b", "c"}
	be.True(t, containsRun(got, []string{"b", "c"}))
	be.True(t, containsRun(got, nil))
	be.True(t, !containsRun(got, []string{"a", "c"}))
	be.True(t, !containsRun(got, []string{"c", "d"}))
}
