package parser

import (
	"fmt"

	"github.com/mjc-lang/minijavac/pkg/token"
)

// ParserError represents a syntax error with its position.
type ParserError struct {
	Message string
	Pos     token.Position
}

// Error implements the error interface.
func (e *ParserError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pos)
}

// describe returns the human-readable name of a token type for error
// messages.
func describe(t token.TokenType) string {
	switch t {
	case token.IDENT:
		return "identifier"
	case token.NUMBER:
		return "number"
	case token.LBRACE:
		return "'{'"
	case token.RBRACE:
		return "'}'"
	case token.LPAREN:
		return "'('"
	case token.RPAREN:
		return "')'"
	case token.LBRACK:
		return "'['"
	case token.RBRACK:
		return "']'"
	case token.SEMICOLON:
		return "';'"
	case token.COMMA:
		return "','"
	case token.ASSIGN:
		return "'='"
	case token.PUBLIC:
		return "'public'"
	case token.CLASS:
		return "'class'"
	case token.STATIC:
		return "'static'"
	case token.VOID:
		return "'void'"
	case token.MAIN:
		return "'main'"
	case token.STRING:
		return "'String'"
	case token.DOUBLE:
		return "'double'"
	case token.IF:
		return "'if'"
	case token.ELSE:
		return "'else'"
	case token.WHILE:
		return "'while'"
	case token.PRINTLN:
		return "'System.out.println'"
	case token.LER_DOUBLE:
		return "'lerDouble'"
	case token.EOF:
		return "end of file"
	default:
		return t.String()
	}
}

// found renders the offending token for error messages.
func found(tok token.Token) string {
	if tok.Type == token.EOF {
		return "end of file"
	}
	return fmt.Sprintf("%q", tok.Literal)
}
