package codegen

import (
	"strings"

	"pup/internal/ast"
	"pup/internal/semantic"
	"pup/internal/types"
)

func (g *generator) literal(lit *ast.LiteralExpr, t types.Type) string {
	if t.Kind == types.KindOption && lit.Kind != ast.NULL {
		t = t.Elem()
	}

	switch lit.Kind {
	case ast.NUMBER:
		return number(lit.Value, t)
	case ast.STRING:
		if syms, ok := g.info.Interpolations[lit]; ok {
			return g.interpolate(lit.Value, syms)
		}
		quoted := quote(lit.Value)
		switch t.Kind {
		case types.KindStrRef:
			return quoted
		case types.KindCowStr:
			return "Cow::Borrowed(" + quoted + ")"
		}
		return "String::from(" + quoted + ")"
	case ast.BOOL:
		return lit.Value
	case ast.NULL:
		if t.Kind == types.KindObject {
			return "Value::Null"
		}
		return "None"
	}
	return lit.Value
}

// number renders a numeric literal with the suffix of its type. Integer
// text in a float context stays as written: 5f64 is valid Rust.
func number(raw string, t types.Type) string {
	switch t.Kind {
	case types.KindSigned, types.KindUnsigned, types.KindFloat:
		return raw + t.Suffix()
	case types.KindDecimal:
		return `Decimal::from_str("` + strings.ReplaceAll(raw, "_", "") + `").unwrap()`
	case types.KindBigInt:
		return `BigInt::from_str("` + strings.ReplaceAll(raw, "_", "") + `").unwrap()`
	}
	if strings.ContainsAny(raw, ".eE") {
		return raw + "f32"
	}
	return raw + "i32"
}

// interpolate lowers "{name}" placeholders to a format! call whose
// arguments follow the placeholders in source order.
func (g *generator) interpolate(value string, syms []*semantic.Symbol) string {
	var b strings.Builder
	b.WriteString("format!(")
	b.WriteString(quote(ast.FormatTemplate(value)))
	for _, sym := range syms {
		b.WriteString(", ")
		b.WriteString(displayArg(g.symbolRef(sym), sym.Type))
	}
	b.WriteString(")")
	return b.String()
}

// displayArg wraps values without a Display impl in their Debug form.
func displayArg(code string, t types.Type) string {
	if displayable(t) {
		return code
	}
	return `format!("{:?}", ` + code + ")"
}

func displayable(t types.Type) bool {
	switch t.Kind {
	case types.KindSigned, types.KindUnsigned, types.KindFloat, types.KindDecimal, types.KindBigInt,
		types.KindBool, types.KindString, types.KindStrRef, types.KindCowStr,
		types.KindObject, types.KindSignal, types.KindCustom:
		return true
	}
	return false
}

// quote renders s as a Rust string literal.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
