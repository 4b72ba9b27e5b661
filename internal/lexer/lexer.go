// Package lexer provides s-expression source tokenization.
package lexer

import (
	"github.com/coregx/coregex"

	"github.com/lukedodd/JitCalc/internal/token"
)

// numberPattern is the accepted numeric literal grammar: an optional leading
// minus, digits with an optional fraction, and an optional decimal exponent.
// A token that starts like a number but does not fully match (for example
// "1.2.3" or "4x") is rejected at scan time rather than silently truncated
// by the evaluator's literal handler.
const numberPattern = `^-?[0-9]+(\.[0-9]*)?([eE][+-]?[0-9]+)?$`

var numberRE = mustCompile(numberPattern)

func mustCompile(pattern string) *coregex.Regexp {
	re, err := coregex.Compile(pattern)
	if err != nil {
		panic("lexer: bad number pattern: " + err.Error())
	}
	return re
}

// Lexer tokenizes s-expression source text.
type Lexer struct {
	src     []byte         // Source text
	ch      byte           // Current character (0 at EOF)
	offset  int            // Offset of the character after ch
	pos     token.Position // Position of ch
	nextPos token.Position // Position of the character after ch
}

// New creates a new Lexer for the given source text.
func New(src []byte) *Lexer {
	l := &Lexer{
		src: src,
		nextPos: token.Position{
			Line:   1,
			Column: 1,
		},
	}
	l.next() // Initialize first character
	return l
}

// NewFromString creates a new Lexer from a string.
func NewFromString(src string) *Lexer {
	return New([]byte(src))
}

// Token represents a scanned token with its position and value.
type Token struct {
	Type  token.Token
	Pos   token.Position
	Value string
}

// Scan scans and returns the next token.
func (l *Lexer) Scan() Token {
	l.skipWhitespace()

	pos := l.pos

	if l.ch == 0 {
		return Token{Type: token.EOF, Pos: pos}
	}

	switch l.ch {
	case '(':
		l.next()
		return Token{Type: token.LPAREN, Pos: pos, Value: "("}
	case ')':
		l.next()
		return Token{Type: token.RPAREN, Pos: pos, Value: ")"}
	default:
		return l.scanAtom(pos)
	}
}

// scanAtom scans a run of characters up to the next delimiter and classifies
// it as a number or a name. A leading digit, or a leading minus followed by a
// digit, marks a numeric literal; everything else (including bare "-") is a
// name, so the arithmetic operators lex as names.
func (l *Lexer) scanAtom(pos token.Position) Token {
	start := pos.Offset
	numeric := isDigit(l.ch) || (l.ch == '-' && isDigit(l.peek()))
	for l.ch != 0 && !isDelimiter(l.ch) {
		l.next()
	}
	value := string(l.src[start:l.endOffset()])

	if numeric {
		if !numberRE.MatchString(value) {
			return Token{Type: token.ILLEGAL, Pos: pos, Value: "invalid numeric literal " + value}
		}
		return Token{Type: token.NUMBER, Pos: pos, Value: value}
	}
	return Token{Type: token.NAME, Pos: pos, Value: value}
}

// endOffset returns the correct end offset for slicing l.src.
// At EOF, l.pos is not updated, so we use len(l.src); otherwise l.pos.Offset.
func (l *Lexer) endOffset() int {
	if l.ch == 0 {
		return len(l.src)
	}
	return l.pos.Offset
}

// peek returns the character after ch without consuming it, or 0 at EOF.
func (l *Lexer) peek() byte {
	if l.offset >= len(l.src) {
		return 0
	}
	return l.src[l.offset]
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
		l.next()
	}
}

func (l *Lexer) next() {
	if l.offset >= len(l.src) {
		l.ch = 0
		return
	}

	l.pos = l.nextPos
	l.ch = l.src[l.offset]
	l.offset++
	l.nextPos.Column++
	l.nextPos.Offset = l.offset

	if l.ch == '\n' {
		l.nextPos.Line++
		l.nextPos.Column = 1
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isDelimiter(ch byte) bool {
	switch ch {
	case ' ', '\t', '\r', '\n', '(', ')':
		return true
	default:
		return false
	}
}
