package cmd

import (
	"fmt"
	"os"

	"github.com/mjc-lang/minijavac/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "minijavac",
	Short: "Mini-Java compiler and virtual machine",
	Long: `minijavac compiles Mini-Java programs to object code for a stack-based
virtual machine and executes them.

Mini-Java is a small imperative subset of Java: a single double type, one
main entry point, assignment, console I/O (lerDouble / System.out.println),
arithmetic and relational expressions, if/else and while.

The compiler emits a line-oriented textual object file (.obj) that the
built-in virtual machine executes.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "configuration file (default: minijavac.toml beside the source or in the working directory)")
}

// loadConfig resolves the tool configuration for a command operating on
// sourcePath.
func loadConfig(sourcePath string) (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load(sourcePath)
}

func progress(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
