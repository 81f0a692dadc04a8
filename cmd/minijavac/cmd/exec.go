package cmd

import (
	"fmt"
	"os"

	"github.com/mjc-lang/minijavac/internal/objfile"
	"github.com/mjc-lang/minijavac/pkg/minijava"
	"github.com/spf13/cobra"
)

var execTrace bool

var execCmd = &cobra.Command{
	Use:   "exec [file]",
	Short: "Execute a compiled object file",
	Long: `Load an object file and execute it on the virtual machine without
recompiling.

Examples:
  # Execute an object file
  minijavac exec program.obj

  # Execute with an instruction trace
  minijavac exec --trace program.obj`,
	Args: cobra.ExactArgs(1),
	RunE: execProgram,
}

func init() {
	rootCmd.AddCommand(execCmd)

	execCmd.Flags().BoolVar(&execTrace, "trace", false, "trace execution (for debugging)")
}

func execProgram(_ *cobra.Command, args []string) error {
	filename := args[0]

	cfg, err := loadConfig(filename)
	if err != nil {
		return err
	}

	prog, err := objfile.ReadFile(filename)
	if err != nil {
		return err
	}
	progress("loaded %s: %d instruction(s)", filename, len(prog.Code))

	opts := []minijava.Option{minijava.WithConfig(cfg)}
	if execTrace || cfg.Execution.EnableTrace {
		opts = append(opts, minijava.WithTrace(os.Stderr))
	}
	engine := minijava.New(opts...)

	if err := engine.Execute(prog); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return fmt.Errorf("execution failed")
	}
	return nil
}
