// Package casebook reads compiler test cases written as Markdown.
//
// A case starts at a heading "Test: <name>". It holds one input fence with
// a pup script, followed by any number of assertion fences:
//
//	```rust          lines that appear, in order and adjacent, in the output
//	```rust-absent   lines that appear nowhere in the output
//	```compile-error an error code, optionally followed by a message fragment
//
// An input fence tagged pup-release is compiled with console calls
// stripped. Indentation is ignored when comparing Rust lines.
package casebook

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

type InputType string

const (
	InputScript  InputType = "pup"
	InputRelease InputType = "pup-release"
)

type AssertionType string

const (
	AssertRust         AssertionType = "rust"
	AssertRustAbsent   AssertionType = "rust-absent"
	AssertCompileError AssertionType = "compile-error"
)

type Assertion struct {
	Type    AssertionType
	Content string
	Line    int
}

type Case struct {
	Name       string
	Input      string
	InputType  InputType
	Line       int
	Assertions []Assertion
}

// Release reports whether the case compiles in release mode.
func (c *Case) Release() bool { return c.InputType == InputRelease }

func Load(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cases, err := Extract(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cases, nil
}

// Extract parses a Markdown document and returns its cases in order.
func Extract(markdown string) ([]Case, error) {
	source := []byte(markdown)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var cases []Case
	var current *Case

	finish := func() error {
		if current == nil {
			return nil
		}
		if err := current.validate(); err != nil {
			return err
		}
		cases = append(cases, *current)
		current = nil
		return nil
	}

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			heading := nodeText(n, source)
			if !strings.HasPrefix(heading, "Test: ") {
				return ast.WalkContinue, nil
			}
			if err := finish(); err != nil {
				return ast.WalkStop, err
			}
			current = &Case{Name: strings.TrimPrefix(heading, "Test: "), Line: lineOf(n, source)}

		case *ast.FencedCodeBlock:
			language := string(n.Language(source))
			line := lineOf(n, source)
			if language == "" {
				return ast.WalkContinue, nil
			}
			if current == nil {
				return ast.WalkStop, fmt.Errorf("line %d: %s fence outside of a test case", line, language)
			}

			content := strings.TrimRight(fenceContent(n, source), "\n")
			switch {
			case isInput(language):
				if current.Input != "" {
					return ast.WalkStop, fmt.Errorf("line %d: second input fence in test '%s'", line, current.Name)
				}
				current.Input = content + "\n"
				current.InputType = InputType(language)
			case isAssertion(language):
				current.Assertions = append(current.Assertions, Assertion{
					Type:    AssertionType(language),
					Content: content,
					Line:    line,
				})
			default:
				return ast.WalkStop, fmt.Errorf("line %d: unknown fence language '%s' in test '%s'", line, language, current.Name)
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	if err := finish(); err != nil {
		return nil, err
	}
	return cases, nil
}

func (c *Case) validate() error {
	if c.Input == "" {
		return fmt.Errorf("test '%s' has no input fence", c.Name)
	}
	if len(c.Assertions) == 0 {
		return fmt.Errorf("test '%s' has no assertion fences", c.Name)
	}
	errorCases := 0
	for _, a := range c.Assertions {
		if a.Type == AssertCompileError {
			errorCases++
		}
	}
	if errorCases > 0 && errorCases != len(c.Assertions) {
		return fmt.Errorf("test '%s' mixes compile-error with output assertions", c.Name)
	}
	return nil
}

func isInput(language string) bool {
	return language == string(InputScript) || language == string(InputRelease)
}

func isAssertion(language string) bool {
	switch AssertionType(language) {
	case AssertRust, AssertRustAbsent, AssertCompileError:
		return true
	}
	return false
}

func nodeText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := n.(*ast.Text); ok && entering {
			buf.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func fenceContent(block *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(source))
	}
	return buf.String()
}

// lineOf is the 1-based line where node's content starts.
func lineOf(node ast.Node, source []byte) int {
	if node.Lines().Len() == 0 {
		return 1
	}
	start := node.Lines().At(0).Start
	return bytes.Count(source[:start], []byte("\n")) + 1
}
