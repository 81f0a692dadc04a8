package codegen

import (
	"fmt"

	"github.com/mjc-lang/minijavac/internal/ast"
	"github.com/mjc-lang/minijavac/internal/symtab"
	"github.com/mjc-lang/minijavac/pkg/token"
)

// Generator lowers an AST to a linear object program. Expressions emit in
// post-order so evaluation is reverse-Polish on the machine stack; forward
// jumps are emitted with a placeholder operand and back-patched once the
// target index is known.
type Generator struct {
	symbols *symtab.Table
	code    []Instruction
}

// placeholder marks a jump operand that has not been patched yet. Generate
// fails if one survives to the emitted program.
const placeholder = -1

// NewGenerator creates a generator over the symbol table built by the
// parser.
func NewGenerator(symbols *symtab.Table) *Generator {
	return &Generator{
		symbols: symbols,
		code:    make([]Instruction, 0),
	}
}

// Generate lowers prog and returns the validated object program.
func (g *Generator) Generate(prog *ast.Program) (*Program, error) {
	g.emit(INPP, 0)
	g.emit(ALME, float64(g.symbols.Size()))

	if err := g.block(prog.Body); err != nil {
		return nil, err
	}

	g.emit(PARA, 0)

	out := &Program{Code: g.code}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("codegen: %w", err)
	}
	return out, nil
}

// emit appends an instruction and returns its index.
func (g *Generator) emit(op OpCode, operand float64) int {
	g.code = append(g.code, Instruction{Op: op, Operand: operand})
	return len(g.code) - 1
}

// emitJump appends a jump with a placeholder target and returns its index
// for later patching.
func (g *Generator) emitJump(op OpCode) int {
	return g.emit(op, placeholder)
}

// patchJump points the jump at index to the next instruction to be
// emitted.
func (g *Generator) patchJump(index int) {
	g.code[index].Operand = float64(len(g.code))
}

func (g *Generator) block(block *ast.BlockStatement) error {
	for _, stmt := range block.Statements {
		if err := g.statement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) statement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.VarDeclStatement:
		// Storage was allocated by the ALME prologue; nothing to emit.
		return nil

	case *ast.AssignmentStatement:
		if err := g.expression(s.Value); err != nil {
			return err
		}
		return g.store(s.Target)

	case *ast.ReadStatement:
		g.emit(LEIT, 0)
		return g.store(s.Target)

	case *ast.PrintStatement:
		if err := g.expression(s.Value); err != nil {
			return err
		}
		g.emit(IMPR, 0)
		return nil

	case *ast.IfStatement:
		return g.ifStatement(s)

	case *ast.WhileStatement:
		return g.whileStatement(s)

	default:
		return fmt.Errorf("codegen: unsupported statement %T", stmt)
	}
}

// ifStatement lowers if/else:
//
//	cond; DSVF else; then; DSVI end; else:; otherwise; end:
//
// Without an else branch the two labels coincide and the DSVI is elided.
func (g *Generator) ifStatement(s *ast.IfStatement) error {
	if err := g.condition(s.Cond); err != nil {
		return err
	}
	jumpToElse := g.emitJump(DSVF)

	if err := g.block(s.Then); err != nil {
		return err
	}

	if s.Otherwise == nil {
		g.patchJump(jumpToElse)
		return nil
	}

	jumpToEnd := g.emitJump(DSVI)
	g.patchJump(jumpToElse)
	if err := g.block(s.Otherwise); err != nil {
		return err
	}
	g.patchJump(jumpToEnd)
	return nil
}

// whileStatement lowers a pre-tested loop:
//
//	top:; cond; DSVF end; body; DSVI top; end:
func (g *Generator) whileStatement(s *ast.WhileStatement) error {
	top := len(g.code)

	if err := g.condition(s.Cond); err != nil {
		return err
	}
	jumpToEnd := g.emitJump(DSVF)

	if err := g.block(s.Body); err != nil {
		return err
	}
	g.emit(DSVI, float64(top))
	g.patchJump(jumpToEnd)
	return nil
}

func (g *Generator) condition(cond *ast.Condition) error {
	if err := g.expression(cond.Left); err != nil {
		return err
	}
	if err := g.expression(cond.Right); err != nil {
		return err
	}

	switch cond.Operator {
	case token.EQ:
		g.emit(CPIG, 0)
	case token.NOT_EQ:
		g.emit(CDES, 0)
	case token.GREATER:
		g.emit(CPMA, 0)
	case token.LESS:
		g.emit(CPME, 0)
	case token.GREATER_EQ:
		g.emit(CPMAI, 0)
	case token.LESS_EQ:
		g.emit(CPMEI, 0)
	default:
		return fmt.Errorf("codegen: unsupported comparison operator %s", cond.Operator)
	}
	return nil
}

func (g *Generator) expression(expr ast.Expression) error {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		g.emit(CRCT, e.Value)
		return nil

	case *ast.Identifier:
		return g.load(e)

	case *ast.UnaryExpression:
		if err := g.expression(e.Operand); err != nil {
			return err
		}
		g.emit(INVE, 0)
		return nil

	case *ast.BinaryExpression:
		if err := g.expression(e.Left); err != nil {
			return err
		}
		if err := g.expression(e.Right); err != nil {
			return err
		}
		switch e.Operator {
		case "+":
			g.emit(SOMA, 0)
		case "-":
			g.emit(SUBT, 0)
		case "*":
			g.emit(MULT, 0)
		case "/":
			g.emit(DIVI, 0)
		default:
			return fmt.Errorf("codegen: unsupported operator %q", e.Operator)
		}
		return nil

	default:
		return fmt.Errorf("codegen: unsupported expression %T", expr)
	}
}

func (g *Generator) load(ident *ast.Identifier) error {
	addr, ok := g.symbols.Resolve(ident.Value)
	if !ok {
		return fmt.Errorf("codegen: undeclared variable %q", ident.Value)
	}
	g.emit(CRVL, float64(addr))
	return nil
}

func (g *Generator) store(ident *ast.Identifier) error {
	addr, ok := g.symbols.Resolve(ident.Value)
	if !ok {
		return fmt.Errorf("codegen: undeclared variable %q", ident.Value)
	}
	g.emit(ARMZ, float64(addr))
	return nil
}
