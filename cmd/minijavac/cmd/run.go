package cmd

import (
	"fmt"
	"os"

	"github.com/mjc-lang/minijavac/internal/objfile"
	"github.com/mjc-lang/minijavac/pkg/minijava"
	"github.com/spf13/cobra"
)

var (
	runOutputFile  string
	runDumpAST     bool
	runDisassemble bool
	runTrace       bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Compile and execute a Mini-Java program",
	Long: `Compile a Mini-Java source file, write the object program next to it,
and execute the object program on the virtual machine.

Examples:
  # Compile and run a program
  minijavac run program.java

  # Run with an execution trace
  minijavac run --trace program.java

  # Run and show the generated object code
  minijavac run --disassemble program.java`,
	Args: cobra.ExactArgs(1),
	RunE: runProgram,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runOutputFile, "output", "o", "", "object file (default: source path with the object extension)")
	runCmd.Flags().BoolVar(&runDumpAST, "dump-ast", false, "dump the parsed AST (for debugging)")
	runCmd.Flags().BoolVar(&runDisassemble, "disassemble", false, "show the generated object code")
	runCmd.Flags().BoolVar(&runTrace, "trace", false, "trace execution (for debugging)")
}

func runProgram(_ *cobra.Command, args []string) error {
	filename := args[0]

	cfg, err := loadConfig(filename)
	if err != nil {
		return err
	}

	artifacts, err := compileSource(filename, cfg)
	if err != nil {
		return err
	}

	if runDumpAST {
		fmt.Println("AST:")
		fmt.Println(artifacts.AST.String())
		fmt.Println()
	}
	if runDisassemble {
		fmt.Println("Object code:")
		fmt.Print(artifacts.Object.Disassemble())
		fmt.Println()
	}

	objPath := runOutputFile
	if objPath == "" {
		objPath = objfile.PathFor(filename, cfg.Output.ObjExtension)
	}
	if err := objfile.WriteFile(objPath, artifacts.Object); err != nil {
		return err
	}
	progress("wrote %s", objPath)

	opts := []minijava.Option{minijava.WithConfig(cfg)}
	if runTrace || cfg.Execution.EnableTrace {
		opts = append(opts, minijava.WithTrace(os.Stderr))
	}
	engine := minijava.New(opts...)

	if err := engine.Execute(artifacts.Object); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return fmt.Errorf("execution failed")
	}
	return nil
}
