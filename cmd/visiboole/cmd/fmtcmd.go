package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/visiboole/vbcore/pkg/database"
	"github.com/visiboole/vbcore/pkg/errcode"
	"github.com/visiboole/vbcore/pkg/format"
)

var fmtBase string

var fmtCmd = &cobra.Command{
	Use:   "fmt <design-file> <name>",
	Short: "Solve a design and render one variable or vector in a given base",
	Long: `Parse and solve a design, then render the named scalar variable or
vector namespace in the requested base (b=binary, h=hex, u=unsigned
decimal, d=sign-magnitude decimal).

Examples:
  visiboole fmt design.vb x --base h
  visiboole fmt design.vb q`,
	Args: cobra.ExactArgs(2),
	RunE: runFmt,
}

func init() {
	rootCmd.AddCommand(fmtCmd)
	fmtCmd.Flags().StringVarP(&fmtBase, "base", "b", "b", "render base: b, h, u, or d")
}

func runFmt(cmd *cobra.Command, args []string) error {
	filename, name := args[0], args[1]

	d, err := loadDesign(filename)
	if err != nil {
		return err
	}
	if err := d.Solve(); err != nil {
		return fmt.Errorf("failed to solve design: %w", err)
	}

	base, ok := format.ParseBase(fmtBase)
	if !ok {
		return fmt.Errorf("unrecognized base %q (want one of b, h, u, d)", fmtBase)
	}

	var value database.Value
	if _, isNamespace := d.DB.Namespaces[name]; isNamespace {
		value, err = d.DB.VectorValue(name, errcode.Position{File: filename})
	} else {
		var bit bool
		bit, err = d.DB.GetValue(name, errcode.Position{File: filename})
		value = database.Value{bit}
	}
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", name, err)
	}

	fmt.Println(format.Format(value, base))
	return nil
}
