package parser

import (
	"fmt"
	"strings"
	"unicode"
)

type Token struct {
	Type     TokenType
	Lexeme   string // raw source text
	Literal  string // unescaped contents of string tokens
	Position Position
	// NewlineBefore is set when a line break separates this token from the
	// previous one. Postfix operators do not continue across lines.
	NewlineBefore bool
}

type Scanner struct {
	source      string
	tokens      []Token
	start       int
	current     int
	line        int
	startLine   int
	startColumn int
	column      int
	sawNewline  bool
	errors      []ScanError
}

type ScanError struct {
	Message  string
	Position Position // line, column, offset
	Length   int      // optional: how many characters it covers
}

func NewScanner(source string) *Scanner {
	return &Scanner{
		source: source,
		line:   1,
		column: 1,
	}
}

// Tokenize scans source to completion. It never fails; malformed input
// yields ILLEGAL tokens alongside the returned errors.
func Tokenize(source string) ([]Token, []ScanError) {
	s := NewScanner(source)
	tokens := s.ScanTokens()
	return tokens, s.Errors()
}

func (s *Scanner) Errors() []ScanError {
	return s.errors
}

func (s *Scanner) ScanTokens() []Token {
	for !s.isAtEnd() {
		s.start = s.current
		s.startLine = s.line
		s.startColumn = s.column
		s.scanToken()
	}
	s.tokens = append(s.tokens, Token{
		Type:          EOF,
		Position:      Position{Line: s.line, Column: s.column, Offset: s.current},
		NewlineBefore: s.sawNewline,
	})
	return s.tokens
}

func (s *Scanner) scanToken() {
	c := s.advance()
	switch c {
	case '(':
		s.addToken(LEFT_PAREN)
	case ')':
		s.addToken(RIGHT_PAREN)
	case '{':
		s.addToken(LEFT_BRACE)
	case '}':
		s.addToken(RIGHT_BRACE)
	case '[':
		s.addToken(LEFT_BRACKET)
	case ']':
		s.addToken(RIGHT_BRACKET)
	case ',':
		s.addToken(COMMA)
	case ';':
		s.addToken(SEMICOLON)
	case '@':
		s.addToken(AT)

	case '.':
		s.scanDotOperator()
	case '-':
		s.scanMinusOperator()
	case '+':
		s.scanAssignable(PLUS, PLUS_EQUAL)
	case '*':
		s.scanAssignable(STAR, STAR_EQUAL)
	case '%':
		s.scanAssignable(PERCENT, PERCENT_EQUAL)
	case ':':
		s.scanColonOperator()
	case '!':
		s.scanAssignable(BANG, BANG_EQUAL)
	case '=':
		s.scanAssignable(EQUAL, EQUAL_EQUAL)
	case '<':
		s.scanAssignable(LESS, LESS_EQUAL)
	case '>':
		s.scanAssignable(GREATER, GREATER_EQUAL)
	case '&':
		s.scanDoubled('&', AND)
	case '|':
		s.scanDoubled('|', OR)
	case '/':
		s.scanSlashOperator()

	case ' ', '\r', '\t':
	case '\n':
		s.sawNewline = true

	case '"':
		s.scanString(STRING)
	case '$':
		if s.matchNext('"') {
			s.scanString(INTERP_STRING)
		} else {
			s.illegal("Expected '\"' after '$'")
		}

	default:
		s.scanDefault(c)
	}
}

func (s *Scanner) scanDotOperator() {
	if s.matchNext('.') {
		s.addToken(DOT_DOT)
	} else {
		s.addToken(DOT)
	}
}

func (s *Scanner) scanMinusOperator() {
	if s.matchNext('=') {
		s.addToken(MINUS_EQUAL)
	} else if s.matchNext('>') {
		s.addToken(ARROW)
	} else {
		s.addToken(MINUS)
	}
}

func (s *Scanner) scanColonOperator() {
	if s.matchNext(':') {
		s.addToken(DOUBLE_COLON)
	} else {
		s.addToken(COLON)
	}
}

// scanAssignable handles operators that have an '=' suffixed variant.
func (s *Scanner) scanAssignable(plain, withEqual TokenType) {
	if s.matchNext('=') {
		s.addToken(withEqual)
	} else {
		s.addToken(plain)
	}
}

func (s *Scanner) scanDoubled(c byte, tt TokenType) {
	if s.matchNext(c) {
		s.addToken(tt)
		return
	}
	s.illegal(fmt.Sprintf("Unexpected character: %q (did you mean %q?)", c, string([]byte{c, c})))
}

func (s *Scanner) scanSlashOperator() {
	if s.matchNext('=') {
		s.addToken(SLASH_EQUAL)
	} else if s.matchNext('/') {
		s.scanSingleLineComment()
	} else if s.matchNext('*') {
		s.scanBlockComment()
	} else {
		s.addToken(SLASH)
	}
}

func (s *Scanner) scanDefault(c byte) {
	if isDigit(c) {
		s.scanNumber()
	} else if isAlpha(c) {
		s.scanIdentifier()
	} else {
		s.illegal(fmt.Sprintf("Unexpected character: %q", c))
	}
}

func (s *Scanner) advance() byte {
	c := s.source[s.current]
	s.current++
	if c == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	return c
}

func (s *Scanner) matchNext(expected byte) bool {
	if s.isAtEnd() || s.source[s.current] != expected {
		return false
	}
	s.advance()
	return true
}

func (s *Scanner) peek() byte {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.source) {
		return 0
	}
	return s.source[s.current+1]
}

func (s *Scanner) addToken(tokenType TokenType) {
	s.addLiteralToken(tokenType, "")
}

func (s *Scanner) addLiteralToken(tokenType TokenType, literal string) {
	s.tokens = append(s.tokens, Token{
		Type:    tokenType,
		Lexeme:  s.source[s.start:s.current],
		Literal: literal,
		Position: Position{
			Line:   s.startLine,
			Column: s.startColumn,
			Offset: s.start,
		},
		NewlineBefore: s.sawNewline,
	})
	s.sawNewline = false
}

// illegal records an error and an ILLEGAL token covering the scanned bytes.
func (s *Scanner) illegal(message string) {
	s.reportError(message)
	s.addToken(ILLEGAL)
}

func (s *Scanner) reportError(message string) {
	s.errors = append(s.errors, ScanError{
		Message:  message,
		Position: Position{Line: s.startLine, Column: s.startColumn, Offset: s.start},
		Length:   s.current - s.start,
	})
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

// Helper functions.

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isAlpha(c byte) bool {
	return unicode.IsLetter(rune(c)) || c == '_'
}

func (s *Scanner) scanIdentifier() {
	for isAlpha(s.peek()) || isDigit(s.peek()) {
		s.advance()
	}
	s.addToken(lookupIdentifier(s.source[s.start:s.current]))
}

// scanNumber keeps the raw digits. A '.' belongs to the number only when a
// digit follows, so "0..10" scans as a range.
func (s *Scanner) scanNumber() {
	for isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	s.addToken(NUMBER)
}

// scanString reads up to the closing quote. Strings do not span lines; an
// unterminated string ends at the line break.
func (s *Scanner) scanString(tt TokenType) {
	var value strings.Builder
	for s.peek() != '"' && s.peek() != '\n' && !s.isAtEnd() {
		c := s.advance()
		if c != '\\' || s.isAtEnd() {
			value.WriteByte(c)
			continue
		}
		switch e := s.advance(); e {
		case 'n':
			value.WriteByte('\n')
		case 't':
			value.WriteByte('\t')
		case '"', '\\':
			value.WriteByte(e)
		default:
			value.WriteByte('\\')
			value.WriteByte(e)
		}
	}
	if s.peek() != '"' {
		s.illegal("Unterminated string.")
		return
	}
	s.advance()
	s.addLiteralToken(tt, value.String())
}

func lookupIdentifier(text string) TokenType {
	if t, ok := KEYWORDS[text]; ok {
		return t
	}
	return IDENTIFIER
}

func (s *Scanner) scanSingleLineComment() {
	for s.peek() != '\n' && !s.isAtEnd() {
		s.advance()
	}
}

func (s *Scanner) scanBlockComment() {
	for !s.isAtEnd() {
		if s.peek() == '*' && s.peekNext() == '/' {
			s.advance() // *
			s.advance() // /
			return
		}
		if s.advance() == '\n' {
			s.sawNewline = true
		}
	}
	s.reportError("Unterminated block comment.")
}
