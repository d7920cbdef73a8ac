package parser

import (
	"fmt"
	"os"

	"pup/internal/ast"
	"pup/internal/errors"
)

// Parser is a recursive-descent parser over a scanned token slice. It stops
// at the first syntax error; a script with errors yields no AST.
type Parser struct {
	filename string
	tokens   []Token
	current  int
	errors   []ParseError
}

type ParseError struct {
	Message  string
	Position Position
	Length   int
}

func NewParser(filename string, tokens []Token) *Parser {
	return &Parser{filename: filename, tokens: tokens}
}

func ParseFile(path string) (*ast.Script, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return Parse(path, string(source))
}

// ParseSource scans and parses one script. On failure the script is nil and
// exactly one of the error slices is non-empty.
func ParseSource(path string, source string) (*ast.Script, []ParseError, []ScanError) {
	tokens, scanErrors := Tokenize(source)
	if len(scanErrors) > 0 {
		return nil, nil, scanErrors
	}

	p := NewParser(path, tokens)
	script := p.ParseScript()
	if len(p.errors) > 0 {
		return nil, p.errors, nil
	}
	return script, nil, nil
}

// Parse is ParseSource with the first failure converted to a CompilerError.
func Parse(path string, source string) (*ast.Script, error) {
	script, parseErrors, scanErrors := ParseSource(path, source)
	if len(scanErrors) > 0 {
		e := scanErrors[0]
		return nil, errors.LexicalError(e.Message, toASTPosition(path, e.Position), e.Length)
	}
	if len(parseErrors) > 0 {
		e := parseErrors[0]
		return nil, errors.SyntaxError(e.Message, toASTPosition(path, e.Position), e.Length)
	}
	return script, nil
}

func (p *Parser) Errors() []ParseError {
	return p.errors
}

func toASTPosition(filename string, pos Position) ast.Position {
	return ast.Position{
		Filename: filename,
		Offset:   pos.Offset,
		Line:     pos.Line,
		Column:   pos.Column,
	}
}
