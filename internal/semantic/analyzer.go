// Package semantic implements declaration/use validation for Mini-Java
// programs.
//
// There is a single type (double), so analysis reduces to identifier
// resolution: every name used as an assignment target, read target, or in
// an expression must be declared, and no name may be declared twice.
// Diagnostics are collected in program order and reported together; the
// analyzer never stops at the first finding.
package semantic

import (
	"fmt"

	"github.com/mjc-lang/minijavac/internal/ast"
	"github.com/mjc-lang/minijavac/internal/symtab"
	"github.com/mjc-lang/minijavac/pkg/token"
)

// Diagnostic represents a single semantic finding with its position.
type Diagnostic struct {
	Message string
	Pos     token.Position
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s at %s", d.Message, d.Pos)
}

// Analyzer validates a Mini-Java program against its symbol table.
type Analyzer struct {
	symbols     *symtab.Table
	seen        map[string]bool
	diagnostics []*Diagnostic
}

// NewAnalyzer creates a new semantic analyzer over the symbol table built
// by the parser. The table is consumed read-only.
func NewAnalyzer(symbols *symtab.Table) *Analyzer {
	return &Analyzer{
		symbols:     symbols,
		seen:        make(map[string]bool),
		diagnostics: make([]*Diagnostic, 0),
	}
}

// Diagnostics returns all findings in program order.
func (a *Analyzer) Diagnostics() []*Diagnostic {
	return a.diagnostics
}

// Analyze walks the program and returns an error when any diagnostic was
// collected. The individual findings remain available via Diagnostics.
func (a *Analyzer) Analyze(prog *ast.Program) error {
	a.block(prog.Body)

	if n := len(a.diagnostics); n > 0 {
		return fmt.Errorf("semantic analysis failed with %d error(s)", n)
	}
	return nil
}

func (a *Analyzer) addDiagnostic(pos token.Position, format string, args ...any) {
	a.diagnostics = append(a.diagnostics, &Diagnostic{
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
	})
}

func (a *Analyzer) block(block *ast.BlockStatement) {
	if block == nil {
		return
	}
	for _, stmt := range block.Statements {
		a.statement(stmt)
	}
}

func (a *Analyzer) statement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VarDeclStatement:
		for _, name := range s.Names {
			if a.seen[name.Value] {
				a.addDiagnostic(name.Pos(), "variable %q already declared", name.Value)
				continue
			}
			a.seen[name.Value] = true
		}
	case *ast.AssignmentStatement:
		a.target(s.Target)
		a.expression(s.Value)
	case *ast.ReadStatement:
		a.target(s.Target)
	case *ast.PrintStatement:
		a.expression(s.Value)
	case *ast.IfStatement:
		a.condition(s.Cond)
		a.block(s.Then)
		a.block(s.Otherwise)
	case *ast.WhileStatement:
		a.condition(s.Cond)
		a.block(s.Body)
	}
}

func (a *Analyzer) condition(cond *ast.Condition) {
	if cond == nil {
		return
	}
	a.expression(cond.Left)
	a.expression(cond.Right)
}

func (a *Analyzer) target(ident *ast.Identifier) {
	if _, ok := a.symbols.Resolve(ident.Value); !ok {
		a.addDiagnostic(ident.Pos(), "undeclared variable %q", ident.Value)
	}
}

func (a *Analyzer) expression(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.Identifier:
		if _, ok := a.symbols.Resolve(e.Value); !ok {
			a.addDiagnostic(e.Pos(), "undeclared variable %q", e.Value)
		}
	case *ast.UnaryExpression:
		a.expression(e.Operand)
	case *ast.BinaryExpression:
		a.expression(e.Left)
		a.expression(e.Right)
	}
}
