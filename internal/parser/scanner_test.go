package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenTypes(tokens []Token) []TokenType {
	out := make([]TokenType, len(tokens))
	for i, t := range tokens {
		out[i] = t.Type
	}
	return out
}

func TestScannerBasicTokens(t *testing.T) {
	tokens, errs := Tokenize(`extends Node2D
@expose var speed: float = 2.5 // units per second
fn update() -> int { self.hp -= 1; return a::b }`)
	require.Empty(t, errs)

	assert.Equal(t, []TokenType{
		EXTENDS, IDENTIFIER,
		AT, IDENTIFIER, VAR, IDENTIFIER, COLON, IDENTIFIER, EQUAL, NUMBER,
		FN, IDENTIFIER, LEFT_PAREN, RIGHT_PAREN, ARROW, IDENTIFIER, LEFT_BRACE,
		SELF, DOT, IDENTIFIER, MINUS_EQUAL, NUMBER, SEMICOLON,
		RETURN, IDENTIFIER, DOUBLE_COLON, IDENTIFIER, RIGHT_BRACE,
		EOF,
	}, tokenTypes(tokens))

	assert.Equal(t, "2.5", tokens[9].Lexeme)
}

func TestScannerPositions(t *testing.T) {
	tokens, errs := Tokenize("var a\n  let bb")
	require.Empty(t, errs)

	bb := tokens[3]
	assert.Equal(t, "bb", bb.Lexeme)
	assert.Equal(t, Position{Line: 2, Column: 7, Offset: 12}, bb.Position)
	assert.True(t, tokens[2].NewlineBefore)
	assert.False(t, bb.NewlineBefore)
}

func TestScannerRangeIsNotFloat(t *testing.T) {
	tokens, errs := Tokenize("0..10")
	require.Empty(t, errs)
	assert.Equal(t, []TokenType{NUMBER, DOT_DOT, NUMBER, EOF}, tokenTypes(tokens))
	assert.Equal(t, "0", tokens[0].Lexeme)
}

func TestScannerStrings(t *testing.T) {
	tokens, errs := Tokenize(`"a\"b\n" $"hp={hp}"`)
	require.Empty(t, errs)

	assert.Equal(t, STRING, tokens[0].Type)
	assert.Equal(t, "a\"b\n", tokens[0].Literal)
	assert.Equal(t, `"a\"b\n"`, tokens[0].Lexeme)
	assert.Equal(t, INTERP_STRING, tokens[1].Type)
	assert.Equal(t, "hp={hp}", tokens[1].Literal)
}

func TestScannerKeywordOperators(t *testing.T) {
	tokens, errs := Tokenize("a and b or not c && d || !e")
	require.Empty(t, errs)
	assert.Equal(t, []TokenType{
		IDENTIFIER, AND, IDENTIFIER, OR, NOT, IDENTIFIER, AND, IDENTIFIER, OR, BANG, IDENTIFIER, EOF,
	}, tokenTypes(tokens))
}

func TestScannerCommentsAreElided(t *testing.T) {
	tokens, errs := Tokenize("a /* block\n comment */ b // tail")
	require.Empty(t, errs)
	assert.Equal(t, []TokenType{IDENTIFIER, IDENTIFIER, EOF}, tokenTypes(tokens))
	assert.True(t, tokens[1].NewlineBefore)
}

func TestScannerUnterminatedString(t *testing.T) {
	tokens, errs := Tokenize("var s = \"open\nvar t = 1")
	require.Len(t, errs, 1)
	assert.Equal(t, "Unterminated string.", errs[0].Message)
	assert.Equal(t, 8, errs[0].Position.Offset)

	// scanning resumes on the next line with correct offsets
	types := tokenTypes(tokens)
	assert.Contains(t, types, ILLEGAL)
	last := tokens[len(tokens)-2]
	assert.Equal(t, "1", last.Lexeme)
	assert.Equal(t, 22, last.Position.Offset)
}

func TestScannerUnknownCharacter(t *testing.T) {
	tokens, errs := Tokenize("a # b")
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "Unexpected character")
	assert.Equal(t, []TokenType{IDENTIFIER, ILLEGAL, IDENTIFIER, EOF}, tokenTypes(tokens))
	assert.Equal(t, 4, tokens[2].Position.Offset)
}

func TestScannerUnterminatedBlockComment(t *testing.T) {
	_, errs := Tokenize("a /* never closed")
	require.Len(t, errs, 1)
	assert.Equal(t, "Unterminated block comment.", errs[0].Message)
}

func TestScannerIsRestartable(t *testing.T) {
	src := "fn f() { print(1) }"
	first, _ := Tokenize(src)
	second, _ := Tokenize(src)
	assert.Equal(t, first, second)
}
