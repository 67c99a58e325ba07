package main

import (
	"github.com/spf13/cobra"

	"github.com/vic/ivm/pkg/lang"
)

var (
	evalExpr  string
	evalStats bool

	evalCmd = &cobra.Command{
		Use:   "eval [file|-]",
		Short: "Normalize a bare $ net read from a file, stdin or -e",
		Example: `  ivm eval -e '$ r & @not ~ (0 @T r)'
  echo '$ r & {* +3 r} ~ +4' | ivm eval`,
		Args: cobra.MaximumNArgs(1),
		RunE: evalNet,
	}
)

func init() {
	evalCmd.Flags().StringVarP(&evalExpr, "expr", "e", "", "net source")
	evalCmd.Flags().BoolVarP(&evalStats, "stats", "s", false, "print interactions by rule")
	rootCmd.AddCommand(evalCmd)
}

func evalNet(cmd *cobra.Command, args []string) error {
	src, err := readInput(args, evalExpr, cmd.InOrStdin())
	if err != nil {
		return err
	}
	c, err := newCompiler()
	if err != nil {
		return err
	}
	res, err := newRunner(c).RunSource(cmd.Context(), src)
	if err != nil {
		return err
	}
	printResult(cmd.OutOrStdout(), cmd.ErrOrStderr(), res, lang.Show(res.Net, c.Book), evalStats)
	return nil
}
