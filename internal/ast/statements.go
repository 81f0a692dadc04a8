package ast

import (
	"bytes"
	"strings"

	"github.com/mjc-lang/minijavac/pkg/token"
)

// VarDeclStatement represents a variable declaration statement.
// Examples:
//
//	double x;
//	double a, b, c;
//
// All declared variables are doubles. Declarations may appear anywhere in
// the block and are collected into the symbol table in source order.
type VarDeclStatement struct {
	Token token.Token   // The DOUBLE token
	Names []*Identifier // One or more declared names
}

func (vds *VarDeclStatement) statementNode()       {}
func (vds *VarDeclStatement) TokenLiteral() string { return vds.Token.Literal }
func (vds *VarDeclStatement) Pos() token.Position  { return vds.Token.Pos }
func (vds *VarDeclStatement) String() string {
	names := make([]string, 0, len(vds.Names))
	for _, name := range vds.Names {
		names = append(names, name.String())
	}
	return "double " + strings.Join(names, ", ") + ";"
}

// AssignmentStatement represents an assignment of an expression to a
// variable:
//
//	x = 10;
//	x = x + 1;
type AssignmentStatement struct {
	Token  token.Token // The target IDENT token
	Target *Identifier
	Value  Expression
}

func (as *AssignmentStatement) statementNode()       {}
func (as *AssignmentStatement) TokenLiteral() string { return as.Token.Literal }
func (as *AssignmentStatement) Pos() token.Position  { return as.Token.Pos }
func (as *AssignmentStatement) String() string {
	return as.Target.String() + " = " + as.Value.String() + ";"
}

// ReadStatement represents reading a number from the console into a
// variable:
//
//	x = lerDouble();
type ReadStatement struct {
	Token  token.Token // The target IDENT token
	Target *Identifier
}

func (rs *ReadStatement) statementNode()       {}
func (rs *ReadStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *ReadStatement) Pos() token.Position  { return rs.Token.Pos }
func (rs *ReadStatement) String() string {
	return rs.Target.String() + " = lerDouble();"
}

// PrintStatement represents writing an expression value to the console:
//
//	System.out.println(x * 2);
type PrintStatement struct {
	Token token.Token // The PRINTLN token
	Value Expression
}

func (ps *PrintStatement) statementNode()       {}
func (ps *PrintStatement) TokenLiteral() string { return ps.Token.Literal }
func (ps *PrintStatement) Pos() token.Position  { return ps.Token.Pos }
func (ps *PrintStatement) String() string {
	return "System.out.println(" + ps.Value.String() + ");"
}

// IfStatement represents a conditional with an optional else branch.
type IfStatement struct {
	Token     token.Token // The IF token
	Cond      *Condition
	Then      *BlockStatement
	Otherwise *BlockStatement // nil when there is no else branch
}

func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Literal }
func (is *IfStatement) Pos() token.Position  { return is.Token.Pos }
func (is *IfStatement) String() string {
	var out bytes.Buffer

	out.WriteString("if ")
	out.WriteString(is.Cond.String())
	out.WriteString(" ")
	out.WriteString(is.Then.String())
	if is.Otherwise != nil {
		out.WriteString(" else ")
		out.WriteString(is.Otherwise.String())
	}

	return out.String()
}

// WhileStatement represents a pre-tested loop.
type WhileStatement struct {
	Token token.Token // The WHILE token
	Cond  *Condition
	Body  *BlockStatement
}

func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Literal }
func (ws *WhileStatement) Pos() token.Position  { return ws.Token.Pos }
func (ws *WhileStatement) String() string {
	var out bytes.Buffer

	out.WriteString("while ")
	out.WriteString(ws.Cond.String())
	out.WriteString(" ")
	out.WriteString(ws.Body.String())

	return out.String()
}
