// Package token defines lexical tokens for s-expression source text.
package token

// Token represents a lexical token type.
type Token uint8

const (
	// Special tokens
	ILLEGAL Token = iota // <illegal>
	EOF                  // EOF

	// Delimiters
	LPAREN // (
	RPAREN // )

	// Literals
	NAME   // name
	NUMBER // number
)

// String returns a human-readable name for the token type.
func (t Token) String() string {
	switch t {
	case ILLEGAL:
		return "illegal"
	case EOF:
		return "end of file"
	case LPAREN:
		return "("
	case RPAREN:
		return ")"
	case NAME:
		return "name"
	case NUMBER:
		return "number"
	default:
		return "unknown"
	}
}

// IsLiteral returns true if the token is a literal (name or number).
func (t Token) IsLiteral() bool {
	return t == NAME || t == NUMBER
}
