package semantic

import (
	"strings"
	"testing"

	"github.com/mjc-lang/minijavac/internal/ast"
	"github.com/mjc-lang/minijavac/internal/lexer"
	"github.com/mjc-lang/minijavac/internal/parser"
	"github.com/mjc-lang/minijavac/internal/symtab"
)

// analyze parses and analyzes a main body, returning the analyzer.
func analyze(t *testing.T, body string) *Analyzer {
	t.Helper()

	input := "public class Teste { public static void main(String[] args) { " +
		body + " } }"
	p := parser.New(lexer.New(input))
	prog := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("parser errors: %v", p.Errors())
	}

	a := NewAnalyzer(p.SymbolTable())
	a.Analyze(prog)
	return a
}

func TestValidProgram(t *testing.T) {
	a := analyze(t, `double a, b;
		a = lerDouble();
		b = a * 2;
		if (b > 10) { System.out.println(b); } else { System.out.println(a); }
		while (a < b) { a = a + 1; }`)

	if diags := a.Diagnostics(); len(diags) != 0 {
		t.Errorf("expected no diagnostics, got %v", diags)
	}
}

func TestUndeclaredInExpression(t *testing.T) {
	a := analyze(t, "double a; a = y + 1;")

	diags := a.Diagnostics()
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d: %v", len(diags), diags)
	}
	if !strings.Contains(diags[0].Message, `"y"`) {
		t.Errorf("diagnostic %q should name y", diags[0].Message)
	}
}

func TestUndeclaredTargets(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"assignment target", "x = 1;"},
		{"read target", "x = lerDouble();"},
		{"print expression", "System.out.println(x);"},
		{"condition operand", "double a; if (x == 0) { a = 1; }"},
		{"loop condition", "double a; while (a < x) { a = a + 1; }"},
		{"nested block", "double a; if (a == 0) { b = 2; }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := analyze(t, tt.body)
			if len(a.Diagnostics()) == 0 {
				t.Error("expected a diagnostic for the undeclared variable")
			}
		})
	}
}

func TestDuplicateDeclaration(t *testing.T) {
	a := analyze(t, "double a; double a; a = 1;")

	diags := a.Diagnostics()
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d: %v", len(diags), diags)
	}
	if !strings.Contains(diags[0].Message, "already declared") {
		t.Errorf("diagnostic %q should report the duplicate", diags[0].Message)
	}
}

func TestDuplicateInSingleDecl(t *testing.T) {
	a := analyze(t, "double a, a;")

	if len(a.Diagnostics()) != 1 {
		t.Fatalf("expected 1 diagnostic, got %v", a.Diagnostics())
	}
}

func TestDiagnosticsCollectedInOrder(t *testing.T) {
	a := analyze(t, "x = 1; y = 2; double a; double a;")

	diags := a.Diagnostics()
	if len(diags) != 3 {
		t.Fatalf("expected 3 diagnostics, got %d: %v", len(diags), diags)
	}
	if !strings.Contains(diags[0].Message, `"x"`) {
		t.Errorf("first diagnostic %q should name x", diags[0].Message)
	}
	if !strings.Contains(diags[1].Message, `"y"`) {
		t.Errorf("second diagnostic %q should name y", diags[1].Message)
	}
	if !strings.Contains(diags[2].Message, "already declared") {
		t.Errorf("third diagnostic %q should report the duplicate", diags[2].Message)
	}
}

func TestAnalyzeReturnsError(t *testing.T) {
	a := analyze(t, "x = 1;")
	if len(a.Diagnostics()) == 0 {
		t.Fatal("expected diagnostics")
	}

	// A second analyzer over a valid tree returns nil.
	input := "public class T { public static void main(String[] args) { double a; a = 1; } }"
	p := parser.New(lexer.New(input))
	prog := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("parser errors: %v", p.Errors())
	}
	if err := NewAnalyzer(p.SymbolTable()).Analyze(prog); err != nil {
		t.Errorf("Analyze returned %v for a valid program", err)
	}
}

func TestAnalyzeEmptyBody(t *testing.T) {
	prog := &ast.Program{Body: &ast.BlockStatement{}}
	if err := NewAnalyzer(symtab.New()).Analyze(prog); err != nil {
		t.Errorf("Analyze returned %v for an empty body", err)
	}
}
