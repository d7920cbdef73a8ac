package codegen

import "pup/internal/sourcemap"

var rustKeywords = map[string]bool{
	"as": true, "async": true, "await": true, "box": true, "break": true,
	"const": true, "continue": true, "crate": true, "dyn": true, "else": true,
	"enum": true, "extern": true, "false": true, "fn": true, "for": true,
	"if": true, "impl": true, "in": true, "let": true, "loop": true,
	"match": true, "mod": true, "move": true, "mut": true, "pub": true,
	"ref": true, "return": true, "static": true, "struct": true, "trait": true,
	"true": true, "type": true, "unsafe": true, "use": true, "where": true,
	"while": true, "yield": true, "abstract": true, "become": true,
	"do": true, "final": true, "macro": true, "override": true, "priv": true,
	"try": true, "typeof": true, "unsized": true, "virtual": true,
}

// escape makes a struct field or method name usable in Rust.
func escape(name string) string {
	if rustKeywords[name] {
		return "r#" + name
	}
	return name
}

// local is the generated name of a script variable, parameter, local or
// script function.
func local(name string) string {
	return sourcemap.GeneratedPrefix + name
}
