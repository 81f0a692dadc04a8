// Package minijava provides the embedding API for the Mini-Java
// toolchain: compile source text to an object program and execute object
// programs on the virtual machine.
package minijava

import (
	"io"
	"os"

	"github.com/mjc-lang/minijavac/internal/ast"
	"github.com/mjc-lang/minijavac/internal/codegen"
	"github.com/mjc-lang/minijavac/internal/config"
	"github.com/mjc-lang/minijavac/internal/errors"
	"github.com/mjc-lang/minijavac/internal/lexer"
	"github.com/mjc-lang/minijavac/internal/parser"
	"github.com/mjc-lang/minijavac/internal/semantic"
	"github.com/mjc-lang/minijavac/internal/symtab"
	"github.com/mjc-lang/minijavac/internal/vm"
)

// Stage identifies the pipeline stage a compilation error belongs to.
type Stage string

// Compilation stages.
const (
	StageLexical  Stage = "lexical"
	StageSyntax   Stage = "syntax"
	StageSemantic Stage = "semantic"
)

// CompileError aggregates the diagnostics of a failed compilation stage.
type CompileError struct {
	Stage  Stage
	Errors []*errors.CompilerError
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	return errors.FormatErrors(e.Errors, false)
}

// Format renders the diagnostics, optionally with ANSI colors.
func (e *CompileError) Format(color bool) string {
	return errors.FormatErrors(e.Errors, color)
}

// Artifacts holds everything a successful compilation produces.
type Artifacts struct {
	AST     *ast.Program
	Symbols *symtab.Table
	Object  *codegen.Program
}

// Engine runs the compilation pipeline and the virtual machine.
type Engine struct {
	stdin  io.Reader
	stdout io.Writer
	trace  io.Writer
	cfg    *config.Config
}

// Option configures an Engine.
type Option func(*Engine)

// WithStdin sets the console input the virtual machine reads from.
func WithStdin(r io.Reader) Option {
	return func(e *Engine) { e.stdin = r }
}

// WithStdout sets the writer program output goes to.
func WithStdout(w io.Writer) Option {
	return func(e *Engine) { e.stdout = w }
}

// WithTrace directs a per-instruction execution trace to w.
func WithTrace(w io.Writer) Option {
	return func(e *Engine) { e.trace = w }
}

// WithConfig applies a loaded tool configuration.
func WithConfig(cfg *config.Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// New creates an Engine. Without options it reads os.Stdin, writes
// os.Stdout, and uses the default configuration.
func New(opts ...Option) *Engine {
	e := &Engine{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		cfg:    config.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Compile runs lexing, parsing, semantic analysis, and code generation
// over source. filename is used in diagnostics only. On failure the
// returned error is a *CompileError carrying the diagnostics of the
// failing stage; no object program is produced. Parsing stops at the first
// syntax error, so lexical diagnostics cover only the input scanned up to
// that point.
func (e *Engine) Compile(source, filename string) (*Artifacts, error) {
	l := lexer.New(source)
	p := parser.New(l)
	program := p.ParseProgram()

	// Lexical errors take precedence: a syntax error after an illegal
	// character is a consequence, not a cause.
	if lexErrs := p.LexerErrors(); len(lexErrs) > 0 {
		compilerErrors := make([]*errors.CompilerError, 0, len(lexErrs))
		for _, le := range lexErrs {
			compilerErrors = append(compilerErrors, errors.NewCompilerError(le.Pos, le.Message, source, filename))
		}
		return nil, &CompileError{Stage: StageLexical, Errors: compilerErrors}
	}

	if parseErrs := p.Errors(); len(parseErrs) > 0 {
		compilerErrors := make([]*errors.CompilerError, 0, len(parseErrs))
		for _, pe := range parseErrs {
			compilerErrors = append(compilerErrors, errors.NewCompilerError(pe.Pos, pe.Message, source, filename))
		}
		return nil, &CompileError{Stage: StageSyntax, Errors: compilerErrors}
	}

	symbols := p.SymbolTable()

	analyzer := semantic.NewAnalyzer(symbols)
	if err := analyzer.Analyze(program); err != nil {
		diags := analyzer.Diagnostics()
		compilerErrors := make([]*errors.CompilerError, 0, len(diags))
		for _, d := range diags {
			compilerErrors = append(compilerErrors, errors.NewCompilerError(d.Pos, d.Message, source, filename))
		}
		return nil, &CompileError{Stage: StageSemantic, Errors: compilerErrors}
	}

	object, err := codegen.NewGenerator(symbols).Generate(program)
	if err != nil {
		return nil, err
	}

	return &Artifacts{AST: program, Symbols: symbols, Object: object}, nil
}

// CompileFile reads path and compiles its contents.
func (e *Engine) CompileFile(path string) (*Artifacts, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return e.Compile(string(content), path)
}

// Execute runs an object program on the virtual machine. Runtime faults
// are returned as *vm.Fault.
func (e *Engine) Execute(prog *codegen.Program) error {
	opts := []vm.Option{vm.WithMaxSteps(e.cfg.Execution.MaxSteps)}
	if e.trace != nil {
		opts = append(opts, vm.WithTrace(e.trace))
	}
	machine := vm.New(e.stdin, e.stdout, opts...)
	return machine.Run(prog)
}

// Run compiles source and, on success, executes the object program.
func (e *Engine) Run(source, filename string) error {
	artifacts, err := e.Compile(source, filename)
	if err != nil {
		return err
	}
	return e.Execute(artifacts.Object)
}
