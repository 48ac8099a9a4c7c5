package cmd

import (
	"fmt"
	"sort"

	"github.com/visiboole/vbcore/pkg/design"
)

// printVariables prints every scalar variable's current value in
// name-sorted order, matching the report style of the cmd/jtag parse
// command (a plain name/value listing rather than raw struct dumps).
func printVariables(d *design.Design) {
	names := make([]string, 0, len(d.DB.Variables))
	for name := range d.DB.Variables {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("Variables: %d total\n", len(names))
	for _, name := range names {
		v := d.DB.Variables[name]
		fmt.Printf("  %-20s %-12s %v\n", name, v.Kind, v.Value)
	}
	fmt.Println()
}

// printFormats evaluates and prints every format specifier in source
// order.
func printFormats(d *design.Design) error {
	outs, err := d.FormatValues()
	if err != nil {
		return fmt.Errorf("failed to evaluate format specifiers: %w", err)
	}
	if len(outs) == 0 {
		return nil
	}
	fmt.Printf("Format specifiers: %d total\n", len(outs))
	for _, out := range outs {
		fmt.Printf("  line %-4d %s\n", out.Line, out.Text)
	}
	return nil
}
