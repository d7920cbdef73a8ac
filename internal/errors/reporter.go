package errors

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"pup/internal/ast"
)

// ErrorLevel represents the severity of an error
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
	Note    ErrorLevel = "note"
	Help    ErrorLevel = "help"
)

// CompilerError represents a structured error with suggestions and context
type CompilerError struct {
	Level       ErrorLevel
	Code        string       // Error code like E0001
	Message     string       // Primary error message
	Position    ast.Position // Location in source
	Length      int          // Length of the problematic region
	Suggestions []Suggestion // Suggested fixes
	Notes       []string     // Additional context notes
	HelpText    string       // Help text for the error
}

// Error renders the diagnostic on one line, without source context.
func (e CompilerError) Error() string {
	loc := fmt.Sprintf("%d:%d", e.Position.Line, e.Position.Column)
	if e.Position.Filename != "" {
		loc = e.Position.Filename + ":" + loc
	}
	if e.Code == "" {
		return fmt.Sprintf("%s: %s: %s", loc, e.Level, e.Message)
	}
	return fmt.Sprintf("%s: %s[%s]: %s", loc, e.Level, e.Code, e.Message)
}

// Suggestion represents a suggested fix
type Suggestion struct {
	Message     string       // Description of the suggestion
	Replacement string       // Suggested replacement text (optional)
	Position    ast.Position // Position to apply the fix (optional)
	Length      int          // Length of text to replace (optional)
}

// ErrorReporter handles consistent error formatting and suggestions
type ErrorReporter struct {
	filename string
	source   string
	lines    []string
}

// NewErrorReporter creates a new error reporter for a file
func NewErrorReporter(filename, source string) *ErrorReporter {
	return &ErrorReporter{
		filename: filename,
		source:   source,
		lines:    strings.Split(source, "\n"),
	}
}

// FormatError formats a compiler error with Rust-like styling and suggestions.
// A diagnostic without a line, such as a failed toolchain run, gets only
// its header and notes.
func (er *ErrorReporter) FormatError(err CompilerError) string {
	var b strings.Builder
	levelColor := er.getLevelColor(err.Level)

	// error[E0001]: message
	if err.Code != "" {
		fmt.Fprintf(&b, "%s[%s]: %s\n", levelColor(string(err.Level)), err.Code, err.Message)
	} else {
		fmt.Fprintf(&b, "%s: %s\n", levelColor(string(err.Level)), err.Message)
	}

	if err.Position.Line <= 0 {
		for _, note := range err.Notes {
			b.WriteString(note + "\n")
		}
		return b.String()
	}

	gutter := strings.Repeat(" ", er.getLineNumberWidth(err.Position.Line))
	fmt.Fprintf(&b, "%s %s %s:%d:%d\n", gutter, dim("-->"), er.filename, err.Position.Line, err.Position.Column)
	fmt.Fprintf(&b, "%s %s\n", gutter, dim("│"))
	er.writeSnippet(&b, err)

	if len(err.Suggestions) > 0 {
		fmt.Fprintf(&b, "%s %s\n", gutter, dim("│"))
	}
	cyan := color.New(color.FgCyan).SprintFunc()
	for i, suggestion := range err.Suggestions {
		if i == 0 {
			fmt.Fprintf(&b, "%s %s %s: %s\n", gutter, cyan("help"), cyan("try"), suggestion.Message)
		} else {
			fmt.Fprintf(&b, "%s %s %s\n", gutter, cyan("    "), suggestion.Message)
		}
		if suggestion.Replacement != "" {
			fmt.Fprintf(&b, "%s %s\n", gutter, dim("│"))
			replacement := strings.ReplaceAll(suggestion.Replacement, "\n", fmt.Sprintf("\n%s %s ", gutter, dim("│")))
			fmt.Fprintf(&b, "%s %s %s\n", gutter, cyan("│"), cyan(replacement))
		}
	}

	blue := color.New(color.FgBlue).SprintFunc()
	for _, note := range err.Notes {
		fmt.Fprintf(&b, "%s %s %s %s\n", gutter, dim("│"), blue("note:"), note)
	}
	if err.HelpText != "" {
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Fprintf(&b, "%s %s %s %s\n", gutter, dim("│"), green("help:"), err.HelpText)
	}

	b.WriteString("\n")
	return b.String()
}

// writeSnippet prints the offending line with its neighbours and the marker.
func (er *ErrorReporter) writeSnippet(b *strings.Builder, err CompilerError) {
	line := err.Position.Line
	width := er.getLineNumberWidth(line)
	bold := color.New(color.Bold).SprintFunc()

	if text, ok := er.line(line - 1); ok {
		fmt.Fprintf(b, "%s %s %s\n", dim(fmt.Sprintf("%*d", width, line-1)), dim("│"), text)
	}
	if text, ok := er.line(line); ok {
		fmt.Fprintf(b, "%s %s %s\n", bold(fmt.Sprintf("%*d", width, line)), dim("│"), text)
		fmt.Fprintf(b, "%s %s %s\n", strings.Repeat(" ", width), dim("│"), er.createMarker(err.Position.Column, err.Length, err.Level))
	}
	if text, ok := er.line(line + 1); ok {
		fmt.Fprintf(b, "%s %s %s\n", dim(fmt.Sprintf("%*d", width, line+1)), dim("│"), text)
	}
}

// line returns the 1-based source line n.
func (er *ErrorReporter) line(n int) (string, bool) {
	if n < 1 || n > len(er.lines) {
		return "", false
	}
	return er.lines[n-1], true
}

// FormatErrors formats several diagnostics in order
func (er *ErrorReporter) FormatErrors(errs []CompilerError) string {
	var b strings.Builder
	for _, err := range errs {
		b.WriteString(er.FormatError(err))
	}
	return b.String()
}

// getLevelColor returns the appropriate color function for an error level
func (er *ErrorReporter) getLevelColor(level ErrorLevel) func(...interface{}) string {
	switch level {
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	case Help:
		return color.New(color.FgGreen, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

// createMarker underlines length columns starting at column, in the
// level's colour.
func (er *ErrorReporter) createMarker(column, length int, level ErrorLevel) string {
	length = max(length, 1)
	return strings.Repeat(" ", max(0, column-1)) + er.getLevelColor(level)(strings.Repeat("^", length))
}

// getLineNumberWidth is the gutter width, at least three columns.
func (er *ErrorReporter) getLineNumberWidth(line int) int {
	return max(len(strconv.Itoa(line)), 3)
}

func dim(a ...interface{}) string {
	return color.New(color.Faint).Sprint(a...)
}
