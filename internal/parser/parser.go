// Package parser implements the recursive-descent parser for Mini-Java.
//
// The parser operates with one token of lookahead (curToken/peekToken) and
// halts at the first syntax error; there is no recovery. While parsing
// declarations it builds the program's symbol table, assigning consecutive
// addresses in declaration order. Duplicate declarations keep their
// original address and are reported later by the semantic analyzer.
package parser

import (
	"fmt"

	"github.com/mjc-lang/minijavac/internal/ast"
	"github.com/mjc-lang/minijavac/internal/lexer"
	"github.com/mjc-lang/minijavac/internal/symtab"
	"github.com/mjc-lang/minijavac/pkg/token"
)

// Parser represents the Mini-Java parser.
type Parser struct {
	l         *lexer.Lexer
	symbols   *symtab.Table
	errors    []*ParserError
	curToken  token.Token
	peekToken token.Token
	fatal     bool
}

// New creates a new Parser reading tokens from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{
		l:       l,
		symbols: symtab.New(),
		errors:  make([]*ParserError, 0),
	}

	// Read two tokens so curToken and peekToken are both set.
	p.nextToken()
	p.nextToken()

	return p
}

// Errors returns the list of parsing errors. The parser halts at the first
// syntax error, so the list holds at most one entry.
func (p *Parser) Errors() []*ParserError {
	return p.errors
}

// LexerErrors returns all lexer errors accumulated during tokenization.
// These should be checked in addition to parser errors.
func (p *Parser) LexerErrors() []lexer.Error {
	return p.l.Errors()
}

// SymbolTable returns the symbol table built during parsing.
func (p *Parser) SymbolTable() *symtab.Table {
	return p.symbols
}

// nextToken advances both token cursors.
func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

// curTokenIs checks if the current token is of the given type.
func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

// peekTokenIs checks if the peek token is of the given type.
func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

// expectPeek advances if the peek token matches, otherwise records the
// error and halts parsing.
func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.errorf(p.peekToken.Pos, "expected %s, found %s", describe(t), found(p.peekToken))
	return false
}

// errorf records a syntax error and stops the parse.
func (p *Parser) errorf(pos token.Position, format string, args ...any) {
	if p.fatal {
		return
	}
	p.fatal = true
	p.errors = append(p.errors, &ParserError{
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
	})
}

// ParseProgram parses the mandatory class wrapper and the main body.
// It returns nil if a syntax error occurred.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{Token: p.curToken}

	if !p.curTokenIs(token.PUBLIC) {
		p.errorf(p.curToken.Pos, "expected 'public', found %s", found(p.curToken))
		return nil
	}
	if !p.expectPeek(token.CLASS) {
		return nil
	}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	prog.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}

	if !p.expectPeek(token.LBRACE) ||
		!p.expectPeek(token.PUBLIC) ||
		!p.expectPeek(token.STATIC) ||
		!p.expectPeek(token.VOID) ||
		!p.expectPeek(token.MAIN) ||
		!p.expectPeek(token.LPAREN) ||
		!p.expectPeek(token.STRING) ||
		!p.expectPeek(token.LBRACK) ||
		!p.expectPeek(token.RBRACK) {
		return nil
	}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	prog.Param = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}

	if !p.expectPeek(token.RPAREN) || !p.expectPeek(token.LBRACE) {
		return nil
	}

	prog.Body = p.parseBlockStatement()
	if p.fatal {
		return nil
	}

	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	if !p.peekTokenIs(token.EOF) {
		p.errorf(p.peekToken.Pos, "expected end of file, found %s", found(p.peekToken))
		return nil
	}

	return prog
}

// parseBlockStatement parses statements until the closing brace. The
// current token is the opening LBRACE on entry and the closing RBRACE on
// exit.
func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{
		Token:      p.curToken,
		Statements: make([]ast.Statement, 0),
	}

	p.nextToken()
	for !p.curTokenIs(token.RBRACE) {
		if p.curTokenIs(token.EOF) {
			p.errorf(p.curToken.Pos, "expected '}', found end of file")
			return nil
		}
		stmt := p.parseStatement()
		if p.fatal {
			return nil
		}
		block.Statements = append(block.Statements, stmt)
		p.nextToken()
	}

	return block
}

// parseStatement dispatches on the current token.
func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.DOUBLE:
		return p.parseVarDeclStatement()
	case token.IDENT:
		return p.parseAssignmentStatement()
	case token.PRINTLN:
		return p.parsePrintStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	default:
		p.errorf(p.curToken.Pos, "expected statement, found %s", found(p.curToken))
		return nil
	}
}

// parseVarDeclStatement parses 'double' IDENT (',' IDENT)* ';' and records
// each name in the symbol table.
func (p *Parser) parseVarDeclStatement() ast.Statement {
	stmt := &ast.VarDeclStatement{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Names = append(stmt.Names, p.declareCurrent())

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		stmt.Names = append(stmt.Names, p.declareCurrent())
	}

	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	return stmt
}

// declareCurrent records the current identifier token in the symbol table.
// A duplicate keeps its original address; the semantic analyzer reports it.
func (p *Parser) declareCurrent() *ast.Identifier {
	ident := &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	p.symbols.Declare(ident.Value) //nolint:errcheck
	return ident
}

// parseAssignmentStatement parses IDENT '=' (lerDouble '(' ')' | EXPR) ';'.
// A lerDouble right-hand side lowers to a ReadStatement.
func (p *Parser) parseAssignmentStatement() ast.Statement {
	target := &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	targetTok := p.curToken

	if !p.expectPeek(token.ASSIGN) {
		return nil
	}

	if p.peekTokenIs(token.LER_DOUBLE) {
		p.nextToken()
		if !p.expectPeek(token.LPAREN) || !p.expectPeek(token.RPAREN) || !p.expectPeek(token.SEMICOLON) {
			return nil
		}
		return &ast.ReadStatement{Token: targetTok, Target: target}
	}

	p.nextToken()
	value := p.parseExpression()
	if p.fatal {
		return nil
	}
	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	return &ast.AssignmentStatement{Token: targetTok, Target: target, Value: value}
}

// parsePrintStatement parses 'System.out.println' '(' EXPR ')' ';'.
func (p *Parser) parsePrintStatement() ast.Statement {
	stmt := &ast.PrintStatement{Token: p.curToken}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Value = p.parseExpression()
	if p.fatal {
		return nil
	}
	if !p.expectPeek(token.RPAREN) || !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	return stmt
}

// parseIfStatement parses 'if' '(' COND ')' '{' CMDS '}' with an optional
// 'else' '{' CMDS '}'.
func (p *Parser) parseIfStatement() ast.Statement {
	stmt := &ast.IfStatement{Token: p.curToken}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Cond = p.parseCondition()
	if p.fatal {
		return nil
	}
	if !p.expectPeek(token.RPAREN) || !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Then = p.parseBlockStatement()
	if p.fatal {
		return nil
	}

	if p.peekTokenIs(token.ELSE) {
		p.nextToken()
		if !p.expectPeek(token.LBRACE) {
			return nil
		}
		stmt.Otherwise = p.parseBlockStatement()
		if p.fatal {
			return nil
		}
	}

	return stmt
}

// parseWhileStatement parses 'while' '(' COND ')' '{' CMDS '}'.
func (p *Parser) parseWhileStatement() ast.Statement {
	stmt := &ast.WhileStatement{Token: p.curToken}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Cond = p.parseCondition()
	if p.fatal {
		return nil
	}
	if !p.expectPeek(token.RPAREN) || !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlockStatement()
	if p.fatal {
		return nil
	}

	return stmt
}
