package errors

import (
	"strings"
	"testing"

	"github.com/mjc-lang/minijavac/pkg/token"
)

const sampleSource = `public class Teste {
public static void main(String[] args) {
a = 1;
}
}`

func TestFormatWithSource(t *testing.T) {
	err := NewCompilerError(
		token.Position{Line: 3, Column: 1},
		`undeclared variable "a"`,
		sampleSource,
		"Teste.java",
	)

	out := err.Format(false)

	if !strings.Contains(out, "Error in Teste.java:3:1") {
		t.Errorf("missing header in:\n%s", out)
	}
	if !strings.Contains(out, "a = 1;") {
		t.Errorf("missing source line in:\n%s", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("missing caret in:\n%s", out)
	}
	if !strings.Contains(out, `undeclared variable "a"`) {
		t.Errorf("missing message in:\n%s", out)
	}
}

func TestFormatWithoutFile(t *testing.T) {
	err := NewCompilerError(token.Position{Line: 1, Column: 1}, "boom", "x", "")

	out := err.Format(false)
	if !strings.Contains(out, "Error at line 1:1") {
		t.Errorf("missing positional header in:\n%s", out)
	}
}

func TestFormatCaretColumn(t *testing.T) {
	err := NewCompilerError(
		token.Position{Line: 3, Column: 5},
		"unexpected token",
		sampleSource,
		"",
	)

	out := err.Format(false)
	lines := strings.Split(out, "\n")
	// Line 0: header, line 1: source, line 2: caret.
	if len(lines) < 3 {
		t.Fatalf("unexpected format:\n%s", out)
	}
	caretCol := strings.Index(lines[2], "^")
	srcStart := strings.Index(lines[1], "a = 1;")
	if caretCol != srcStart+4 {
		t.Errorf("caret at column %d, source starts at %d:\n%s", caretCol, srcStart, out)
	}
}

func TestFormatColor(t *testing.T) {
	err := NewCompilerError(token.Position{Line: 3, Column: 1}, "msg", sampleSource, "")

	if !strings.Contains(err.Format(true), "\033[1;31m") {
		t.Error("color output should contain ANSI escapes")
	}
	if strings.Contains(err.Format(false), "\033[") {
		t.Error("plain output should not contain ANSI escapes")
	}
}

func TestFormatErrorsMultiple(t *testing.T) {
	errs := []*CompilerError{
		NewCompilerError(token.Position{Line: 1, Column: 1}, "first", "", ""),
		NewCompilerError(token.Position{Line: 2, Column: 1}, "second", "", ""),
	}

	out := FormatErrors(errs, false)
	if !strings.Contains(out, "Compilation failed with 2 error(s)") {
		t.Errorf("missing summary in:\n%s", out)
	}
	if !strings.Contains(out, "[Error 1 of 2]") || !strings.Contains(out, "[Error 2 of 2]") {
		t.Errorf("missing numbering in:\n%s", out)
	}
}

func TestFormatErrorsEmpty(t *testing.T) {
	if out := FormatErrors(nil, false); out != "" {
		t.Errorf("FormatErrors(nil) = %q, want empty", out)
	}
}
