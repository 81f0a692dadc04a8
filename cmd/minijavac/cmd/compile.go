package cmd

import (
	goerrors "errors"
	"fmt"
	"os"

	"github.com/mjc-lang/minijavac/internal/config"
	"github.com/mjc-lang/minijavac/internal/objfile"
	"github.com/mjc-lang/minijavac/pkg/minijava"
	"github.com/spf13/cobra"
)

var (
	buildOutputFile  string
	buildDisassemble bool
)

var buildCmd = &cobra.Command{
	Use:   "build [file]",
	Short: "Compile a Mini-Java program to an object file",
	Long: `Compile a Mini-Java source file and write the object program without
executing it.

Examples:
  # Compile a program
  minijavac build program.java

  # Compile with a custom output file
  minijavac build program.java -o out.obj

  # Compile and show the generated object code
  minijavac build program.java --disassemble`,
	Args: cobra.ExactArgs(1),
	RunE: buildProgram,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&buildOutputFile, "output", "o", "", "object file (default: source path with the object extension)")
	buildCmd.Flags().BoolVar(&buildDisassemble, "disassemble", false, "show the generated object code")
}

func buildProgram(_ *cobra.Command, args []string) error {
	filename := args[0]

	cfg, err := loadConfig(filename)
	if err != nil {
		return err
	}

	artifacts, err := compileSource(filename, cfg)
	if err != nil {
		return err
	}

	if buildDisassemble {
		fmt.Print(artifacts.Object.Disassemble())
	}

	objPath := buildOutputFile
	if objPath == "" {
		objPath = objfile.PathFor(filename, cfg.Output.ObjExtension)
	}
	if err := objfile.WriteFile(objPath, artifacts.Object); err != nil {
		return err
	}
	progress("wrote %s", objPath)
	return nil
}

// compileSource compiles filename, printing any diagnostics with the caret
// formatter. No object file is written when compilation fails.
func compileSource(filename string, cfg *config.Config) (*minijava.Artifacts, error) {
	progress("compiling %s", filename)

	engine := minijava.New(minijava.WithConfig(cfg))
	artifacts, err := engine.CompileFile(filename)
	if err != nil {
		var cerr *minijava.CompileError
		if goerrors.As(err, &cerr) {
			fmt.Fprintln(os.Stderr, cerr.Format(cfg.Display.ColorOutput))
			return nil, fmt.Errorf("compilation failed")
		}
		return nil, err
	}
	return artifacts, nil
}
