// Package objfile encodes and decodes the line-oriented textual object
// file format.
//
// Each line holds one instruction: a label, a mnemonic, and at most one
// operand, separated by whitespace. Labels equal their 1-based line number
// and are the targets of jumps; in memory the program uses 0-based
// instruction indices, and this package converts between the two on encode
// and decode. Blank lines and lines starting with '#' are ignored by the
// loader.
package objfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mjc-lang/minijavac/internal/codegen"
)

// Extension is the conventional object-file suffix.
const Extension = ".obj"

// Encode writes prog to w in the textual object format.
func Encode(w io.Writer, prog *codegen.Program) error {
	if err := prog.Validate(); err != nil {
		return fmt.Errorf("objfile: refusing to encode invalid program: %w", err)
	}

	bw := bufio.NewWriter(w)
	for idx, inst := range prog.Code {
		line := strconv.Itoa(idx+1) + " " + inst.Op.String()
		if inst.Op.HasOperand() {
			line += " " + formatOperand(inst)
		}
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("objfile: write: %w", err)
		}
	}
	return bw.Flush()
}

// formatOperand renders the operand column. Jump targets convert from
// in-memory 0-based indices to 1-based line labels.
func formatOperand(inst codegen.Instruction) string {
	switch {
	case inst.Op == codegen.CRCT:
		return codegen.FormatNumber(inst.Operand)
	case inst.Op.IsJump():
		return strconv.Itoa(int(inst.Operand) + 1)
	default:
		return strconv.Itoa(int(inst.Operand))
	}
}

// EncodeToString renders prog as object text.
func EncodeToString(prog *codegen.Program) (string, error) {
	var sb strings.Builder
	if err := Encode(&sb, prog); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Decode reads an object program from r, validating mnemonics, operand
// arity, label numbering, and jump targets.
func Decode(r io.Reader) (*codegen.Program, error) {
	var code []codegen.Instruction

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		inst, err := decodeLine(line, len(code)+1)
		if err != nil {
			return nil, fmt.Errorf("objfile: line %d: %w", lineNo, err)
		}
		code = append(code, inst)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("objfile: read: %w", err)
	}

	prog := &codegen.Program{Code: code}
	if err := prog.Validate(); err != nil {
		return nil, fmt.Errorf("objfile: %w", err)
	}
	return prog, nil
}

// decodeLine parses one instruction line. wantLabel is the label the line
// must carry: labels are consecutive from 1.
func decodeLine(line string, wantLabel int) (codegen.Instruction, error) {
	var inst codegen.Instruction

	fields := strings.Fields(line)
	if len(fields) < 2 {
		return inst, fmt.Errorf("malformed instruction %q", line)
	}

	label, err := strconv.Atoi(fields[0])
	if err != nil {
		return inst, fmt.Errorf("malformed label %q", fields[0])
	}
	if label != wantLabel {
		return inst, fmt.Errorf("label %d out of sequence, expected %d", label, wantLabel)
	}

	op, ok := codegen.ParseOpCode(fields[1])
	if !ok {
		return inst, fmt.Errorf("unknown mnemonic %q", fields[1])
	}
	inst.Op = op

	switch {
	case op.HasOperand() && len(fields) != 3:
		return inst, fmt.Errorf("%s requires an operand", op)
	case !op.HasOperand() && len(fields) != 2:
		return inst, fmt.Errorf("%s takes no operand", op)
	}

	if op.HasOperand() {
		operand, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return inst, fmt.Errorf("malformed operand %q", fields[2])
		}
		if op.IsJump() {
			operand-- // 1-based label to 0-based index
		}
		inst.Operand = operand
	}

	return inst, nil
}

// DecodeString parses object text.
func DecodeString(text string) (*codegen.Program, error) {
	return Decode(strings.NewReader(text))
}

// WriteFile writes prog to path.
func WriteFile(path string, prog *codegen.Program) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("objfile: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("objfile: close: %w", cerr)
		}
	}()
	return Encode(f, prog)
}

// ReadFile loads an object program from path.
func ReadFile(path string) (*codegen.Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("objfile: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// PathFor derives the object-file path next to a source file: the source
// extension is replaced with Extension.
func PathFor(sourcePath, extension string) string {
	if extension == "" {
		extension = Extension
	}
	if idx := strings.LastIndex(sourcePath, "."); idx > strings.LastIndexByte(sourcePath, '/') {
		return sourcePath[:idx] + extension
	}
	return sourcePath + extension
}
