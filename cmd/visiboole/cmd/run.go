package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <design-file>",
	Short: "Parse and solve a design, then print every variable",
	Long: `Parse a design file, run it to a fixed point, and print the
resulting value of every scalar variable.

Examples:
  visiboole run design.vb
  visiboole run -v design.vb`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	filename := args[0]

	d, err := loadDesign(filename)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Printf("Solving design: %s\n\n", filename)
	}
	if err := d.Solve(); err != nil {
		return fmt.Errorf("failed to solve design: %w", err)
	}

	printVariables(d)
	return printFormats(d)
}
