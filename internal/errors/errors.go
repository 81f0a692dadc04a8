// Package errors provides error formatting utilities for the Mini-Java
// compiler. It formats compiler errors with source context, line/column
// information, and a caret pointing to the error location.
package errors

import (
	"fmt"
	"strings"

	"github.com/mjc-lang/minijavac/pkg/token"
)

// CompilerError represents a single compilation error with position and
// context.
type CompilerError struct {
	Message string
	Source  string
	File    string
	Pos     token.Position
}

// NewCompilerError creates a new compiler error.
func NewCompilerError(pos token.Position, message, source, file string) *CompilerError {
	return &CompilerError{
		Pos:     pos,
		Message: message,
		Source:  source,
		File:    file,
	}
}

// Error implements the error interface.
func (e *CompilerError) Error() string {
	return e.Format(false)
}

// Format formats the error message with source context.
// If color is true, ANSI color codes are used for terminal output.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	// File and position header
	if e.File != "" {
		sb.WriteString(fmt.Sprintf("Error in %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column))
	} else {
		sb.WriteString(fmt.Sprintf("Error at line %d:%d\n", e.Pos.Line, e.Pos.Column))
	}

	// Extract the relevant source line
	sourceLine := e.getSourceLine(e.Pos.Line)
	if sourceLine != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(sourceLine)
		sb.WriteString("\n")

		// Caret indicator
		caretCol := e.Pos.Column
		if caretCol < 1 {
			caretCol = 1
		}
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+caretCol-1))
		if color {
			sb.WriteString("\033[1;31m") // Red bold
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m") // Reset
		}
		sb.WriteString("\n")
	}

	// Error message
	if color {
		sb.WriteString("\033[1m") // Bold
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m") // Reset
	}

	return sb.String()
}

// getSourceLine extracts a specific line from the source code.
// Lines are 1-indexed.
func (e *CompilerError) getSourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}

	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}

	return lines[lineNum-1]
}

// FormatErrors formats multiple compiler errors.
func FormatErrors(errors []*CompilerError, color bool) string {
	if len(errors) == 0 {
		return ""
	}

	if len(errors) == 1 {
		return errors[0].Format(color)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Compilation failed with %d error(s):\n\n", len(errors)))

	for i, err := range errors {
		sb.WriteString(fmt.Sprintf("[Error %d of %d]\n", i+1, len(errors)))
		sb.WriteString(err.Format(color))
		if i < len(errors)-1 {
			sb.WriteString("\n\n")
		}
	}

	return sb.String()
}
