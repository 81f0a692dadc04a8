// Package vm implements the stack virtual machine that executes object
// programs.
package vm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mjc-lang/minijavac/internal/codegen"
)

// FaultKind classifies abnormal halts, distinguishable from normal PARA
// termination.
type FaultKind int

const (
	// FaultStackUnderflow is raised when an instruction pops an empty stack.
	FaultStackUnderflow FaultKind = iota

	// FaultMemoryRange is raised on an out-of-range memory access.
	FaultMemoryRange

	// FaultJumpRange is raised when a jump target is outside the program.
	FaultJumpRange

	// FaultDivisionByZero is raised by DIVI with a zero divisor.
	FaultDivisionByZero

	// FaultInput is raised when LEIT cannot read or parse a number.
	FaultInput

	// FaultStepLimit is raised when execution exceeds the configured step
	// budget.
	FaultStepLimit
)

// faultKindNames maps fault kinds to their report names.
var faultKindNames = [...]string{
	FaultStackUnderflow: "stack underflow",
	FaultMemoryRange:    "memory access out of range",
	FaultJumpRange:      "jump target out of range",
	FaultDivisionByZero: "division by zero",
	FaultInput:          "malformed input",
	FaultStepLimit:      "step limit exceeded",
}

// String returns the report name of the fault kind.
func (k FaultKind) String() string {
	if int(k) < len(faultKindNames) {
		return faultKindNames[k]
	}
	return "unknown fault"
}

// Fault represents a runtime abnormal halt with the offending program
// counter.
type Fault struct {
	Kind    FaultKind
	Pc      int
	Message string
}

// Error implements the error interface.
func (f *Fault) Error() string {
	if f.Message != "" {
		return fmt.Sprintf("runtime fault at instruction %d: %s: %s", f.Pc+1, f.Kind, f.Message)
	}
	return fmt.Sprintf("runtime fault at instruction %d: %s", f.Pc+1, f.Kind)
}

// Default VM configuration constants.
const (
	defaultStackCapacity = 64

	// defaultMaxSteps bounds runaway loops; configurable via WithMaxSteps.
	defaultMaxSteps = 10_000_000
)

// Option configures a VM.
type Option func(*VM)

// WithTrace directs a per-instruction execution trace to w.
func WithTrace(w io.Writer) Option {
	return func(vm *VM) {
		vm.trace = w
	}
}

// WithMaxSteps overrides the execution step budget. Zero or negative
// disables the limit.
func WithMaxSteps(n int) Option {
	return func(vm *VM) {
		vm.maxSteps = n
	}
}

// VM executes object programs against a value stack and an indexed memory.
type VM struct {
	input    *bufio.Scanner
	output   io.Writer
	trace    io.Writer
	stack    []float64
	memory   []float64
	pc       int
	running  bool
	maxSteps int
}

// New creates a VM reading console input from input and writing program
// output to output.
func New(input io.Reader, output io.Writer, opts ...Option) *VM {
	vm := &VM{
		input:    bufio.NewScanner(input),
		output:   output,
		stack:    make([]float64, 0, defaultStackCapacity),
		maxSteps: defaultMaxSteps,
	}
	for _, opt := range opts {
		opt(vm)
	}
	return vm
}

// Run executes prog until PARA or a fault. The returned error is a *Fault
// for runtime faults and nil on orderly termination.
func (vm *VM) Run(prog *codegen.Program) error {
	if err := prog.Validate(); err != nil {
		return fmt.Errorf("vm: invalid program: %w", err)
	}

	vm.stack = vm.stack[:0]
	vm.memory = make([]float64, prog.MemorySize())
	vm.pc = 0
	vm.running = true

	steps := 0
	for vm.running {
		if vm.pc < 0 || vm.pc >= len(prog.Code) {
			return &Fault{Kind: FaultJumpRange, Pc: vm.pc}
		}
		steps++
		if vm.maxSteps > 0 && steps > vm.maxSteps {
			return &Fault{Kind: FaultStepLimit, Pc: vm.pc}
		}

		inst := prog.Code[vm.pc]
		if vm.trace != nil {
			fmt.Fprintf(vm.trace, "%4d  %-12s | %s\n", vm.pc+1, inst, vm.stackString())
		}

		jumped, err := vm.execute(inst)
		if err != nil {
			return err
		}
		if !jumped {
			vm.pc++
		}
	}

	return nil
}

// execute runs one instruction. It reports whether the instruction set the
// program counter itself.
func (vm *VM) execute(inst codegen.Instruction) (bool, error) {
	switch inst.Op {
	case codegen.INPP:
		// Program start marker.
		return false, nil

	case codegen.ALME:
		// Memory was sized before the loop; the instruction is a no-op at
		// runtime.
		return false, nil

	case codegen.CRCT:
		vm.push(inst.Operand)
		return false, nil

	case codegen.CRVL:
		v, err := vm.loadMem(int(inst.Operand))
		if err != nil {
			return false, err
		}
		vm.push(v)
		return false, nil

	case codegen.ARMZ:
		v, err := vm.pop()
		if err != nil {
			return false, err
		}
		return false, vm.storeMem(int(inst.Operand), v)

	case codegen.LEIT:
		v, err := vm.readNumber()
		if err != nil {
			return false, err
		}
		vm.push(v)
		return false, nil

	case codegen.IMPR:
		v, err := vm.pop()
		if err != nil {
			return false, err
		}
		fmt.Fprintln(vm.output, codegen.FormatNumber(v))
		return false, nil

	case codegen.SOMA:
		return false, vm.binary(func(a, b float64) (float64, error) { return a + b, nil })
	case codegen.SUBT:
		return false, vm.binary(func(a, b float64) (float64, error) { return a - b, nil })
	case codegen.MULT:
		return false, vm.binary(func(a, b float64) (float64, error) { return a * b, nil })
	case codegen.DIVI:
		return false, vm.binary(func(a, b float64) (float64, error) {
			if b == 0 {
				return 0, &Fault{Kind: FaultDivisionByZero, Pc: vm.pc}
			}
			return a / b, nil
		})

	case codegen.INVE:
		v, err := vm.pop()
		if err != nil {
			return false, err
		}
		vm.push(-v)
		return false, nil

	case codegen.CPIG:
		return false, vm.compare(func(a, b float64) bool { return a == b })
	case codegen.CDES:
		return false, vm.compare(func(a, b float64) bool { return a != b })
	case codegen.CPMA:
		return false, vm.compare(func(a, b float64) bool { return a > b })
	case codegen.CPME:
		return false, vm.compare(func(a, b float64) bool { return a < b })
	case codegen.CPMAI:
		return false, vm.compare(func(a, b float64) bool { return a >= b })
	case codegen.CPMEI:
		return false, vm.compare(func(a, b float64) bool { return a <= b })

	case codegen.DSVF:
		v, err := vm.pop()
		if err != nil {
			return false, err
		}
		if v == 0 {
			vm.pc = int(inst.Operand)
			return true, nil
		}
		return false, nil

	case codegen.DSVI:
		vm.pc = int(inst.Operand)
		return true, nil

	case codegen.PARA:
		vm.running = false
		return false, nil

	default:
		return false, fmt.Errorf("vm: unknown opcode %d at instruction %d", inst.Op, vm.pc+1)
	}
}

func (vm *VM) push(v float64) {
	vm.stack = append(vm.stack, v)
}

func (vm *VM) pop() (float64, error) {
	if len(vm.stack) == 0 {
		return 0, &Fault{Kind: FaultStackUnderflow, Pc: vm.pc}
	}
	v := vm.stack[len(vm.stack)-1]
	vm.stack = vm.stack[:len(vm.stack)-1]
	return v, nil
}

// binary pops b then a and pushes op(a, b).
func (vm *VM) binary(op func(a, b float64) (float64, error)) error {
	b, err := vm.pop()
	if err != nil {
		return err
	}
	a, err := vm.pop()
	if err != nil {
		return err
	}
	v, err := op(a, b)
	if err != nil {
		return err
	}
	vm.push(v)
	return nil
}

// compare pops b then a and pushes 1.0 when cmp(a, b) holds, else 0.0.
func (vm *VM) compare(cmp func(a, b float64) bool) error {
	return vm.binary(func(a, b float64) (float64, error) {
		if cmp(a, b) {
			return 1, nil
		}
		return 0, nil
	})
}

func (vm *VM) loadMem(addr int) (float64, error) {
	if addr < 0 || addr >= len(vm.memory) {
		return 0, &Fault{
			Kind:    FaultMemoryRange,
			Pc:      vm.pc,
			Message: fmt.Sprintf("address %d, memory size %d", addr, len(vm.memory)),
		}
	}
	return vm.memory[addr], nil
}

func (vm *VM) storeMem(addr int, v float64) error {
	if addr < 0 || addr >= len(vm.memory) {
		return &Fault{
			Kind:    FaultMemoryRange,
			Pc:      vm.pc,
			Message: fmt.Sprintf("address %d, memory size %d", addr, len(vm.memory)),
		}
	}
	vm.memory[addr] = v
	return nil
}

// readNumber reads one line from console input, trims it, and parses a
// number. EOF and parse failures are input faults.
func (vm *VM) readNumber() (float64, error) {
	if !vm.input.Scan() {
		if err := vm.input.Err(); err != nil {
			return 0, &Fault{Kind: FaultInput, Pc: vm.pc, Message: err.Error()}
		}
		return 0, &Fault{Kind: FaultInput, Pc: vm.pc, Message: "end of input"}
	}
	text := strings.TrimSpace(vm.input.Text())
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, &Fault{Kind: FaultInput, Pc: vm.pc, Message: fmt.Sprintf("cannot parse %q", text)}
	}
	return v, nil
}

// stackString renders the stack bottom-to-top for trace output.
func (vm *VM) stackString() string {
	if len(vm.stack) == 0 {
		return "[]"
	}
	parts := make([]string, len(vm.stack))
	for i, v := range vm.stack {
		parts[i] = codegen.FormatNumber(v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
