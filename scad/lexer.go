// Package scad implements the constrained OpenSCAD subset used for
// solid modeling: primitive calls, numeric assignments, affine transform
// wrappers, and top-level boolean groups.
package scad

import (
	"fmt"
	"unicode"
)

// TokenType represents the type of a lexer token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIdent     // cube, translate, my_width, ...
	TokenNumber    // 10, -3.5, .25
	TokenAssign    // =
	TokenSemicolon // ;
	TokenComma     // ,
	TokenLParen    // (
	TokenRParen    // )
	TokenLBracket  // [
	TokenRBracket  // ]
	TokenLBrace    // {
	TokenRBrace    // }
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenIdent:
		return "IDENT"
	case TokenNumber:
		return "NUMBER"
	case TokenAssign:
		return "="
	case TokenSemicolon:
		return ";"
	case TokenComma:
		return ","
	case TokenLParen:
		return "("
	case TokenRParen:
		return ")"
	case TokenLBracket:
		return "["
	case TokenRBracket:
		return "]"
	case TokenLBrace:
		return "{"
	case TokenRBrace:
		return "}"
	default:
		return "UNKNOWN"
	}
}

// Token represents a single token from the lexer.
type Token struct {
	Type    TokenType
	Literal string
	Pos     int
}

func (t Token) String() string {
	return fmt.Sprintf("Token{%v, %q, %d}", t.Type, t.Literal, t.Pos)
}

// Lexer tokenizes source text in the modeling DSL.
type Lexer struct {
	input    string
	pos      int
	readPos  int
	ch       byte
	warnings []Diagnostic
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// Warnings returns diagnostics recorded while lexing, one per
// unrecognized character that was skipped.
func (l *Lexer) Warnings() []Diagnostic {
	return l.warnings
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) skipLineComment() {
	for l.ch != 0 && l.ch != '\n' {
		l.readChar()
	}
}

// skipBlockComment consumes a /* */ comment. An unterminated comment
// runs to end-of-input without failing, so partial edits stay lexable.
func (l *Lexer) skipBlockComment() {
	l.readChar() // consume *
	for l.ch != 0 {
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			return
		}
		l.readChar()
	}
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() Token {
	for {
		l.skipWhitespace()
		if l.ch == '/' && l.peekChar() == '/' {
			l.skipLineComment()
			continue
		}
		if l.ch == '/' && l.peekChar() == '*' {
			l.readChar()
			l.skipBlockComment()
			continue
		}
		break
	}

	pos := l.pos
	var tok Token

	switch l.ch {
	case 0:
		tok = Token{Type: TokenEOF, Literal: "", Pos: pos}
	case '=':
		tok = Token{Type: TokenAssign, Literal: "=", Pos: pos}
		l.readChar()
	case ';':
		tok = Token{Type: TokenSemicolon, Literal: ";", Pos: pos}
		l.readChar()
	case ',':
		tok = Token{Type: TokenComma, Literal: ",", Pos: pos}
		l.readChar()
	case '(':
		tok = Token{Type: TokenLParen, Literal: "(", Pos: pos}
		l.readChar()
	case ')':
		tok = Token{Type: TokenRParen, Literal: ")", Pos: pos}
		l.readChar()
	case '[':
		tok = Token{Type: TokenLBracket, Literal: "[", Pos: pos}
		l.readChar()
	case ']':
		tok = Token{Type: TokenRBracket, Literal: "]", Pos: pos}
		l.readChar()
	case '{':
		tok = Token{Type: TokenLBrace, Literal: "{", Pos: pos}
		l.readChar()
	case '}':
		tok = Token{Type: TokenRBrace, Literal: "}", Pos: pos}
		l.readChar()
	case '-', '+':
		if isDigit(l.peekChar()) || l.peekChar() == '.' {
			sign := string(l.ch)
			l.readChar()
			num := l.readNumber()
			if sign == "+" {
				sign = ""
			}
			return Token{Type: TokenNumber, Literal: sign + num, Pos: pos}
		}
		l.warn(pos, "unrecognized character %q", l.ch)
		l.readChar()
		return l.NextToken()
	default:
		if isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())) {
			num := l.readNumber()
			return Token{Type: TokenNumber, Literal: num, Pos: pos}
		}
		if isIdentStart(l.ch) {
			ident := l.readIdent()
			return Token{Type: TokenIdent, Literal: ident, Pos: pos}
		}
		l.warn(pos, "unrecognized character %q", l.ch)
		l.readChar()
		return l.NextToken()
	}

	return tok
}

func (l *Lexer) readNumber() string {
	start := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.input[start:l.pos]
}

func (l *Lexer) readIdent() string {
	start := l.pos
	for isIdentChar(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

func (l *Lexer) warn(pos int, format string, args ...any) {
	l.warnings = append(l.warnings, Diagnostic{
		Kind:    DiagLexWarning,
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	})
}

func isIdentStart(ch byte) bool {
	return unicode.IsLetter(rune(ch)) || ch == '_'
}

func isIdentChar(ch byte) bool {
	return unicode.IsLetter(rune(ch)) || unicode.IsDigit(rune(ch)) || ch == '_'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// Tokenize returns all tokens from the input plus any lex warnings.
func Tokenize(input string) ([]Token, []Diagnostic) {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			break
		}
	}
	return tokens, l.Warnings()
}
