package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vic/ivm/pkg/inet"
)

var checkCmd = &cobra.Command{
	Use:   "check [file...]",
	Short: "Compile definition files and report undefined references",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg.Books = append(cfg.Books, args...)
		c, err := newCompiler()
		if err != nil {
			return err
		}
		if missing := c.Book.Undefined(); len(missing) > 0 {
			return fmt.Errorf("%w: @%s", inet.ErrUndefinedReference, strings.Join(missing, ", @"))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %d definitions\n", styles.Title.Render("ok"), c.Book.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
