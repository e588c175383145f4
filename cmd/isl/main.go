package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"isl/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "isl",
	Short: "ISL specification language toolchain",
	Long:  `isl parses, formats and migrates Interface Specification Language documents`,
}

func main() {
	// Feeds the automatic --version flag.
	rootCmd.Version = version.Version

	for _, sub := range []*cobra.Command{
		parseCmd, tokenizeCmd, fmtCmd, fixCmd, migrateCmd, initCmd, versionCmd,
	} {
		rootCmd.AddCommand(sub)
	}

	flags := rootCmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a TTY.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
