package ast

import (
	"regexp"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Placeholder is one "{name}" reference inside a string literal.
type Placeholder struct {
	Name   string
	Offset int // byte offset of '{' within the literal value
}

// Placeholders lists the "{identifier}" references in source order.
func Placeholders(value string) []Placeholder {
	var out []Placeholder
	for _, m := range placeholderPattern.FindAllStringSubmatchIndex(value, -1) {
		out = append(out, Placeholder{Name: value[m[2]:m[3]], Offset: m[0]})
	}
	return out
}

// IsInterpolated reports whether a string literal is lowered to a
// formatting call: either written with $ or containing a placeholder.
func (l *LiteralExpr) IsInterpolated() bool {
	if l.Kind != STRING {
		return false
	}
	return l.Interpolated || placeholderPattern.MatchString(l.Value)
}

// FormatTemplate replaces each placeholder with "{}" and doubles any other
// brace so the result is a valid format string.
func FormatTemplate(value string) string {
	var b strings.Builder
	last := 0
	for _, m := range placeholderPattern.FindAllStringIndex(value, -1) {
		b.WriteString(escapeBraces(value[last:m[0]]))
		b.WriteString("{}")
		last = m[1]
	}
	b.WriteString(escapeBraces(value[last:]))
	return b.String()
}

func escapeBraces(s string) string {
	s = strings.ReplaceAll(s, "{", "{{")
	return strings.ReplaceAll(s, "}", "}}")
}
