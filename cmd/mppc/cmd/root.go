// Package cmd implements the mppc command-line surface: a single root
// command (no subcommands, unlike the teacher's multi-command dwscript
// CLI, since this is a single-purpose compiler) following the
// cobra.Command conventions of go-dws's cmd/dwscript/cmd/root.go.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/cwbudde/mppc/internal/driver"
	"github.com/spf13/cobra"
)

// Version is set by build flags, mirroring go-dws's cmd/dwscript/cmd.Version.
var Version = "0.1.0-dev"

var (
	outputFile   string
	symTableFile string
	warnEnabled  bool
	showVersion  bool
)

var rootCmd = &cobra.Command{
	Use:   "mppc <input-file>",
	Short: "M++ compiler front end",
	Long: `mppc compiles a single M++ source file into a textual quadruple
listing, optionally dumping the global symbol table alongside it.

Examples:
  # Compile a program, writing prog.quad next to it
  mppc prog.mpp

  # Choose both output files explicitly and enable warnings
  mppc prog.mpp -o out.quad -s out.sym -w`,
	// Unknown flags are spec'd to warn rather than fail outright, so
	// flag parsing can't be left to reject the whole invocation; args are
	// sorted out by hand in runCompile instead of an Args validator.
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runCompile,
}

func init() {
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: <input-without-ext>.quad)")
	rootCmd.Flags().StringVarP(&symTableFile, "sym_table", "s", "", "write the global symbol-table dump to FILE")
	rootCmd.Flags().BoolVarP(&warnEnabled, "warn", "w", false, "enable warning diagnostics")
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "print version information")
	rootCmd.FParseErrWhitelist.UnknownFlags = true
}

// Execute runs the root command. Per spec §6, the process always exits 0;
// diagnostics on stderr are the sole failure signal.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
	os.Exit(0)
}

func runCompile(_ *cobra.Command, rawArgs []string) error {
	if showVersion {
		fmt.Printf("mppc version %s\n", Version)
		return nil
	}

	var inputFile string
	for _, a := range rawArgs {
		if strings.HasPrefix(a, "-") {
			fmt.Fprintf(os.Stderr, "warning: unknown flag %q\n", a)
			continue
		}
		if inputFile == "" {
			inputFile = a
		}
	}

	if inputFile == "" {
		fmt.Fprintln(os.Stderr, "Error: missing input file")
		return nil
	}

	if err := driver.CompileFile(inputFile, outputFile, symTableFile, warnEnabled); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
	return nil
}
