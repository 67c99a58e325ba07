package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vic/ivm/pkg/lambda"
)

var (
	lambdaExpr  string
	lambdaNet   bool
	lambdaStats bool

	lambdaCmd = &cobra.Command{
		Use:   "lambda [file|-]",
		Short: "Normalize a lambda term and read the result back",
		Long: `lambda parses a term in the x: body syntax, translates it to a net,
normalizes it and prints the normal form as a term. Free names refer to
book definitions, so prelude numerals can be applied directly. Any other
free name is abstracted before reduction and restored in the result.`,
		Example: `  ivm lambda -e 'c2 k2'
  ivm lambda -e 'let id = x: x; id id'
  ivm lambda -e '(x: y: x) a b'
  ivm lambda --net -e 'f: x: f (f x)'`,
		Args: cobra.MaximumNArgs(1),
		RunE: runLambda,
	}
)

func init() {
	lambdaCmd.Flags().StringVarP(&lambdaExpr, "expr", "e", "", "term source")
	lambdaCmd.Flags().BoolVar(&lambdaNet, "net", false, "print the translated net without reducing it")
	lambdaCmd.Flags().BoolVarP(&lambdaStats, "stats", "s", false, "print interactions by rule")
	rootCmd.AddCommand(lambdaCmd)
}

func runLambda(cmd *cobra.Command, args []string) error {
	src, err := readInput(args, lambdaExpr, cmd.InOrStdin())
	if err != nil {
		return err
	}
	term, err := lambda.Parse(src)
	if err != nil {
		return err
	}
	c, err := newCompiler()
	if err != nil {
		return err
	}
	term, free := lambda.Close(term, c.Book)
	if lambdaNet {
		def, err := lambda.ToDefinition(term, c.Book)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), def)
		return nil
	}
	res, err := newRunner(c).RunTerm(cmd.Context(), term)
	if err != nil {
		return err
	}
	normal, err := lambda.FromNet(res.Net, c.Book)
	if err != nil {
		return err
	}
	if normal, err = lambda.Open(normal, free); err != nil {
		return err
	}
	printResult(cmd.OutOrStdout(), cmd.ErrOrStderr(), res, normal.String(), lambdaStats)
	return nil
}
