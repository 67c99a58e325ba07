package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vic/ivm/pkg/compiler"
)

var (
	buildEntry    string
	buildOutput   string
	buildKeepTemp bool
	buildGoFlags  []string

	buildCmd = &cobra.Command{
		Use:   "build file...",
		Short: "Compile definitions into a standalone program",
		Long: `build embeds the given files, plus any --book files, in a Go program
that boots the entry definition, normalizes it and prints the result.
A .lam file holds one lambda term defined under the file's base name.
The go toolchain must be on PATH. Custom numerals are not carried over.`,
		Example: `  ivm build -e main counter.inet
  ivm build -o four examples/four.lam`,
		Args: cobra.MinimumNArgs(1),
		RunE: runBuild,
	}
)

func init() {
	buildCmd.Flags().StringVarP(&buildEntry, "entry", "e", "", "definition to run (default main, or the .lam base name)")
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "output binary")
	buildCmd.Flags().BoolVar(&buildKeepTemp, "keep", false, "keep the generated source")
	buildCmd.Flags().StringSliceVar(&buildGoFlags, "go-flag", nil, "extra go build flags")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	c := &compiler.Compiler{
		Sources:    append(append([]string{}, cfg.Books...), args...),
		Entry:      buildEntry,
		Prelude:    cfg.Prelude,
		Arena:      cfg.Arena,
		OutputName: buildOutput,
		GoFlags:    buildGoFlags,
		KeepTemp:   buildKeepTemp,
	}
	if c.Entry == "" && len(args) == 1 {
		c.Entry = lamEntry(args[0])
	}
	out, err := c.Compile()
	if err != nil {
		return err
	}
	logger.Info("built", "output", out, "entry", c.Entry)
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// lamEntry names the definition a lone .lam source defines.
func lamEntry(path string) string {
	if filepath.Ext(path) != ".lam" {
		return ""
	}
	return strings.TrimSuffix(filepath.Base(path), ".lam")
}
