package parser

var KEYWORDS = map[string]TokenType{
	"extends":  EXTENDS,
	"struct":   STRUCT,
	"new":      NEW,
	"fn":       FN,
	"var":      VAR,
	"let":      VAR,
	"const":    CONST,
	"if":       IF,
	"else":     ELSE,
	"for":      FOR,
	"in":       IN,
	"while":    WHILE,
	"return":   RETURN,
	"pass":     PASS,
	"break":    BREAK,
	"continue": CONTINUE,
	"self":     SELF,
	"super":    SUPER,
	"true":     TRUE,
	"false":    FALSE,
	"null":     NULL,
	"as":       AS,
	"and":      AND,
	"or":       OR,
	"not":      NOT,
}
