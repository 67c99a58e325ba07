package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vic/ivm/internal/config"
	"github.com/vic/ivm/internal/logging"
	"github.com/vic/ivm/internal/runner"
	"github.com/vic/ivm/internal/tracing"
	"github.com/vic/ivm/pkg/inet"
	"github.com/vic/ivm/pkg/lang"
	"github.com/vic/ivm/pkg/prelude"
)

var (
	configPath    string
	arenaSize     int
	bookFiles     []string
	noPrelude     bool
	logLevel      string
	logFormat     string
	traceExporter string
	traceSize     int

	cfg             *config.Config
	logger          = logging.Discard()
	shutdownTracing = func(context.Context) error { return nil }

	rootCmd = &cobra.Command{
		Use:   "ivm",
		Short: "An interaction net virtual machine",
		Long: `ivm reduces interaction nets written in the $ / & / ~ agent notation.
Definitions live in a book; the built-in prelude provides Church numerals,
booleans, bitstrings and the example programs ex0..ex4.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return shutdownTracing(context.Background())
		},
	}
)

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVarP(&configPath, "config", "c", "", "YAML config file")
	f.IntVar(&arenaSize, "arena", 0, "agent slots per net (overrides config)")
	f.StringSliceVarP(&bookFiles, "book", "b", nil, "extra definition files")
	f.BoolVar(&noPrelude, "no-prelude", false, "do not register the built-in definitions")
	f.StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	f.StringVar(&logFormat, "log-format", "", "auto, text or json")
	f.StringVar(&traceExporter, "trace-exporter", "", "none or stdout")
	f.IntVar(&traceSize, "trace", 0, "record the first N rewrites of each run")
}

// setup loads the config and applies the flags the user set over it.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("arena") {
		cfg.Arena = arenaSize
	}
	if flags.Changed("book") {
		cfg.Books = append(cfg.Books, bookFiles...)
	}
	if noPrelude {
		cfg.Prelude = false
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = logFormat
	}
	if flags.Changed("trace-exporter") {
		cfg.Tracing.Exporter = traceExporter
	}
	if flags.Changed("trace") {
		cfg.Trace = traceSize > 0
		cfg.TraceSize = traceSize
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err = logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	shutdownTracing, err = tracing.Init(cmd.Context(), cfg.Tracing.Exporter, os.Stderr)
	return err
}

// newCompiler builds the book: prelude first, then every configured file.
func newCompiler() (*lang.Compiler, error) {
	c := lang.NewCompiler(inet.NewBook())
	c.Numerals = cfg.Numerals
	if cfg.Prelude {
		if err := prelude.Register(c); err != nil {
			return nil, fmt.Errorf("prelude: %w", err)
		}
	}
	for _, path := range cfg.Books {
		if err := defineFile(c, path); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func defineFile(c *lang.Compiler, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	names, err := c.DefineBook(string(src))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("book loaded", "path", path, "definitions", len(names))
	return nil
}

func newRunner(c *lang.Compiler) *runner.Runner {
	r := runner.New(c, cfg.Arena, logger)
	if cfg.Trace {
		r.TraceSize = cfg.TraceSize
	}
	return r
}

// readInput returns expr when set, otherwise the named file, otherwise
// stdin.
func readInput(args []string, expr string, stdin io.Reader) (string, error) {
	if expr != "" {
		return expr, nil
	}
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(stdin)
		return string(b), err
	}
	b, err := os.ReadFile(args[0])
	return string(b), err
}

// printResult writes the normal form to out and the run report to errOut.
func printResult(out, errOut io.Writer, res *runner.Result, normal string, stats bool) {
	fmt.Fprintln(out, normal)
	fmt.Fprintln(errOut)
	res.Report(errOut)
	if stats {
		fmt.Fprintln(errOut, statsTable(res.Stats))
	}
	for _, ev := range res.Trace {
		fmt.Fprintf(errOut, "%6d %-10s %s ~ %s\n", ev.Step, ev.Rule, ev.A, ev.B)
	}
}
