package parser

type TokenType int

const (
	// Special tokens
	ILLEGAL TokenType = iota
	EOF

	// Identifiers + literals
	IDENTIFIER
	NUMBER
	STRING
	INTERP_STRING

	// Keywords
	EXTENDS
	STRUCT
	NEW
	FN
	VAR
	CONST
	IF
	ELSE
	FOR
	IN
	WHILE
	RETURN
	PASS
	BREAK
	CONTINUE
	SELF
	SUPER
	TRUE
	FALSE
	NULL
	AS
	AND
	OR
	NOT

	// Operators
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	BANG
	BANG_EQUAL
	EQUAL
	EQUAL_EQUAL
	LESS
	LESS_EQUAL
	GREATER
	GREATER_EQUAL
	ARROW
	DOT_DOT

	// Assignment operators
	PLUS_EQUAL
	MINUS_EQUAL
	STAR_EQUAL
	SLASH_EQUAL
	PERCENT_EQUAL

	// Separators
	COMMA
	DOT
	SEMICOLON
	COLON
	DOUBLE_COLON
	AT
	DOLLAR

	// Brackets
	LEFT_PAREN
	RIGHT_PAREN
	LEFT_BRACE
	RIGHT_BRACE
	LEFT_BRACKET
	RIGHT_BRACKET
)

type Position struct {
	Line   int // 1-based
	Column int // 1-based
	Offset int // 0-based absolute index in input
}
