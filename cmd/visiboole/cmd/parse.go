package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <design-file>",
	Short: "Parse a design and print a summary",
	Long: `Parse a design file and display its header, declared variables,
and statement counts without solving it.

Examples:
  visiboole parse design.vb
  visiboole parse -v design.vb`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	filename := args[0]

	if verbose {
		fmt.Printf("Parsing design: %s\n\n", filename)
	}

	d, err := loadDesign(filename)
	if err != nil {
		return err
	}

	fmt.Printf("╔════════════════════════════════════════════════════════════════╗\n")
	fmt.Printf("║ Design Summary                                                  ║\n")
	fmt.Printf("╠════════════════════════════════════════════════════════════════╣\n")
	if h := d.DB.Header; h != nil {
		fmt.Printf("║ Header: %-54s ║\n", fmt.Sprintf("%s(%d in : %d out)", h.Name, len(h.Inputs), len(h.Outputs)))
	} else {
		fmt.Printf("║ Header: %-54s ║\n", "(none)")
	}
	fmt.Printf("╚════════════════════════════════════════════════════════════════╝\n\n")

	fmt.Printf("Variables: %d total\n", len(d.DB.Variables))
	names := make([]string, 0, len(d.DB.Variables))
	for name := range d.DB.Variables {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v := d.DB.Variables[name]
		if verbose {
			fmt.Printf("  %-20s %-12s value=%v\n", name, v.Kind, v.Value)
		}
	}
	fmt.Println()

	fmt.Printf("Namespaces: %d total\n", len(d.DB.Namespaces))
	if verbose {
		for name, ns := range d.DB.Namespaces {
			fmt.Printf("  %-20s [%d..%d]\n", name, ns.Hi, ns.Lo)
		}
	}
	fmt.Println()

	fmt.Printf("Statements: %d total (%d expressions, %d format specifiers)\n",
		len(d.DB.Statements), len(d.DB.Expressions), len(d.DB.Formats))

	return nil
}
