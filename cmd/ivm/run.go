package main

import (
	"github.com/spf13/cobra"

	"github.com/vic/ivm/pkg/lang"
)

var (
	runStats bool

	runCmd = &cobra.Command{
		Use:   "run [entry]",
		Short: "Normalize a book definition and print its normal form",
		Long: `run boots a net on the named definition (the configured entry when
omitted), brings it to normal form and prints the result followed by the
RWTS / DREF / TIME / RPS report.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runEntry,
	}
)

func init() {
	runCmd.Flags().BoolVarP(&runStats, "stats", "s", false, "print interactions by rule")
	rootCmd.AddCommand(runCmd)
}

func runEntry(cmd *cobra.Command, args []string) error {
	entry := cfg.Entry
	if len(args) > 0 {
		entry = args[0]
	}
	c, err := newCompiler()
	if err != nil {
		return err
	}
	res, err := newRunner(c).Run(cmd.Context(), entry)
	if err != nil {
		return err
	}
	printResult(cmd.OutOrStdout(), cmd.ErrOrStderr(), res, lang.Show(res.Net, c.Book), runStats)
	return nil
}
