package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tickCount int

var tickCmd = &cobra.Command{
	Use:   "tick <design-file>",
	Short: "Parse, solve, and tick a clocked design",
	Long: `Parse a design file, solve it, then advance its clock the given
number of times, printing the resulting state after each tick.

Examples:
  visiboole tick design.vb
  visiboole tick -n 3 design.vb`,
	Args: cobra.ExactArgs(1),
	RunE: runTick,
}

func init() {
	rootCmd.AddCommand(tickCmd)
	tickCmd.Flags().IntVarP(&tickCount, "count", "n", 1, "number of clock ticks to run")
}

func runTick(cmd *cobra.Command, args []string) error {
	filename := args[0]

	d, err := loadDesign(filename)
	if err != nil {
		return err
	}

	if err := d.Solve(); err != nil {
		return fmt.Errorf("failed to solve design: %w", err)
	}

	if tickCount < 1 {
		return fmt.Errorf("tick count must be at least 1")
	}

	for i := 1; i <= tickCount; i++ {
		if err := d.Tick(); err != nil {
			return fmt.Errorf("failed on tick %d: %w", i, err)
		}
		if verbose {
			fmt.Printf("-- after tick %d --\n", i)
			printVariables(d)
		}
	}

	if !verbose {
		printVariables(d)
	}
	return printFormats(d)
}
