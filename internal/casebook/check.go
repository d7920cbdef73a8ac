package casebook

import (
	stderrors "errors"
	"fmt"
	"strings"

	"pup/internal/errors"
)

// Check compares a compile result against the case's assertions. It
// returns one message per assertion that does not hold.
func (c *Case) Check(output string, err error) []string {
	var failures []string
	fail := func(a Assertion, format string, args ...any) {
		failures = append(failures, fmt.Sprintf("line %d: %s: ", a.Line, a.Type)+fmt.Sprintf(format, args...))
	}

	got := trimLines(output)
	for _, a := range c.Assertions {
		switch a.Type {
		case AssertCompileError:
			code, fragment, _ := strings.Cut(strings.TrimSpace(a.Content), " ")
			ce, ok := compilerError(err)
			switch {
			case err == nil:
				fail(a, "expected %s, compiled without error", code)
			case !ok:
				fail(a, "expected %s, got %v", code, err)
			case ce.Code != code:
				fail(a, "expected %s, got %s: %s", code, ce.Code, ce.Message)
			case fragment != "" && !strings.Contains(ce.Message, strings.TrimSpace(fragment)):
				fail(a, "message %q does not contain %q", ce.Message, strings.TrimSpace(fragment))
			}

		case AssertRust:
			if err != nil {
				fail(a, "compile failed: %v", err)
				continue
			}
			if !containsRun(got, trimLines(a.Content)) {
				fail(a, "output does not contain:\n%s\n--- output ---\n%s", a.Content, output)
			}

		case AssertRustAbsent:
			if err != nil {
				fail(a, "compile failed: %v", err)
				continue
			}
			for _, line := range trimLines(a.Content) {
				if containsRun(got, []string{line}) {
					fail(a, "output contains %q", line)
				}
			}
		}
	}
	return failures
}

func compilerError(err error) (errors.CompilerError, bool) {
	var ce errors.CompilerError
	ok := stderrors.As(err, &ce)
	return ce, ok
}

// trimLines splits s into lines without indentation, dropping blank ones.
func trimLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// containsRun reports whether want occurs in got as adjacent lines.
func containsRun(got, want []string) bool {
	if len(want) == 0 {
		return true
	}
	for i := 0; i+len(want) <= len(got); i++ {
		match := true
		for j, line := range want {
			if got[i+j] != line {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
