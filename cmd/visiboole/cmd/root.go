package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "visiboole",
	Short: "Visiboole HDL simulator core",
	Long: `A text-mode driver for the Visiboole combinational/sequential HDL
simulator core: parse a design, solve it to a fixed point, tick its
clocked variables, and render its format specifiers.

Examples:
  visiboole parse design.vb          # Parse a design and print a summary
  visiboole run design.vb             # Parse, solve, and print every variable
  visiboole tick design.vb -n 3        # Parse, solve, tick 3 times, print state
  visiboole fmt design.vb x -b h      # Solve, then print variable/vector x in hex`,
	Version: "0.1.0",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
