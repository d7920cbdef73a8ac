package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Signature is a parameter list with an optional return type.
// Example: "(path: string) -> Texture", "()"
type Signature struct {
	Pos    lexer.Position
	Params []*Param `parser:"\"(\" [ @@ { \",\" @@ } ] \")\""`
	Return *Type    `parser:"[ \"->\" @@ ]"`
}

// Param is one named parameter. A trailing "..." accepts any number of
// arguments of that type.
type Param struct {
	Pos      lexer.Position
	Name     string `parser:"@Ident \":\""`
	Type     *Type  `parser:"@@"`
	Variadic bool   `parser:"[ @\"...\" ]"`
}

type Type struct {
	Pos   lexer.Position
	Fixed *FixedArray `parser:"  @@"`
	Name  string      `parser:"| @Ident"`
	Args  []*Type     `parser:"[ \"<\" @@ { \",\" @@ } \">\" ]"`
}

// FixedArray is written "[T; N]".
type FixedArray struct {
	Elem *Type `parser:"\"[\" @@ \";\""`
	Size int   `parser:"@Integer \"]\""`
}
