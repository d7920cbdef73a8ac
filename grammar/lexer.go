package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// SignatureLexer tokenizes API signature declarations such as
// "(key: string, fallback: T) -> Option<T>".
var SignatureLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Integer", Pattern: `[0-9]+`},
		{Name: "Punctuation", Pattern: `\.\.\.|->|[(),:;<>\[\]]`},
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	},
})
