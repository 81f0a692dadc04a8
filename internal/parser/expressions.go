package parser

import (
	"github.com/mjc-lang/minijavac/internal/ast"
	"github.com/mjc-lang/minijavac/pkg/token"
)

// Expression parsing follows the grammar directly:
//
//	COND   ::= EXPR RELOP EXPR
//	EXPR   ::= TERM ( ('+'|'-') TERM )*
//	TERM   ::= FACTOR ( ('*'|'/') FACTOR )*
//	FACTOR ::= NUMBER | IDENT | '(' EXPR ')' | '-' FACTOR
//
// Each parse function enters with the current token on the first token of
// its production and exits with the current token on the last one. Binary
// operators associate to the left.

// parseCondition parses a relational comparison.
func (p *Parser) parseCondition() *ast.Condition {
	left := p.parseExpression()
	if p.fatal {
		return nil
	}

	if !p.peekToken.Type.IsRelational() {
		p.errorf(p.peekToken.Pos, "expected comparison operator, found %s", found(p.peekToken))
		return nil
	}
	p.nextToken()
	opTok := p.curToken

	p.nextToken()
	right := p.parseExpression()
	if p.fatal {
		return nil
	}

	return &ast.Condition{
		Token:    opTok,
		Left:     left,
		Operator: opTok.Type,
		Right:    right,
	}
}

// parseExpression parses additive expressions.
func (p *Parser) parseExpression() ast.Expression {
	left := p.parseTerm()
	if p.fatal {
		return nil
	}

	for p.peekTokenIs(token.PLUS) || p.peekTokenIs(token.MINUS) {
		p.nextToken()
		opTok := p.curToken
		p.nextToken()
		right := p.parseTerm()
		if p.fatal {
			return nil
		}
		left = &ast.BinaryExpression{
			Token:    opTok,
			Left:     left,
			Operator: opTok.Literal,
			Right:    right,
		}
	}

	return left
}

// parseTerm parses multiplicative expressions.
func (p *Parser) parseTerm() ast.Expression {
	left := p.parseFactor()
	if p.fatal {
		return nil
	}

	for p.peekTokenIs(token.ASTERISK) || p.peekTokenIs(token.SLASH) {
		p.nextToken()
		opTok := p.curToken
		p.nextToken()
		right := p.parseFactor()
		if p.fatal {
			return nil
		}
		left = &ast.BinaryExpression{
			Token:    opTok,
			Left:     left,
			Operator: opTok.Literal,
			Right:    right,
		}
	}

	return left
}

// parseFactor parses literals, variables, grouping, and unary minus.
func (p *Parser) parseFactor() ast.Expression {
	switch p.curToken.Type {
	case token.NUMBER:
		return &ast.NumberLiteral{Token: p.curToken, Value: p.curToken.Value}
	case token.IDENT:
		return &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	case token.MINUS:
		opTok := p.curToken
		p.nextToken()
		operand := p.parseFactor()
		if p.fatal {
			return nil
		}
		return &ast.UnaryExpression{Token: opTok, Operand: operand}
	case token.LPAREN:
		p.nextToken()
		expr := p.parseExpression()
		if p.fatal {
			return nil
		}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		return expr
	default:
		p.errorf(p.curToken.Pos, "expected expression, found %s", found(p.curToken))
		return nil
	}
}
