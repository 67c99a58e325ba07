package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vic/ivm/pkg/inet"
	"github.com/vic/ivm/pkg/lang"
)

var showCmd = &cobra.Command{
	Use:   "show [name...]",
	Short: "Print compiled book definitions",
	Long:  "show prints each named definition as compiled, or every definition when no name is given.",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newCompiler()
		if err != nil {
			return err
		}
		names := args
		if len(names) == 0 {
			names = c.Book.Names()
		}
		out := cmd.OutOrStdout()
		for _, name := range names {
			def, err := showDefinition(c.Book, name)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, def)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

// showDefinition prints name as `@name = $ ...` with redexes indented.
func showDefinition(book *inet.Book, name string) (string, error) {
	tpl, ok := book.Lookup(name)
	if !ok {
		return "", &inet.RefError{Name: name}
	}
	body := strings.ReplaceAll(lang.Show(tpl, book), "\n&", "\n  &")
	return fmt.Sprintf("@%s = %s", name, body), nil
}
