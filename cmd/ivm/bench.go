package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vic/ivm/internal/metrics"
	"github.com/vic/ivm/internal/runner"
)

var (
	benchRepeat   int
	benchParallel int
	benchAddr     string
	benchHold     bool

	benchCmd = &cobra.Command{
		Use:   "bench [entry...]",
		Short: "Normalize definitions repeatedly, in parallel, over one shared book",
		Long: `bench runs every entry --repeat times on up to --parallel goroutines.
All nets share one read-only book. With --metrics-addr the Prometheus
counters are served on /metrics while the runs go; --hold keeps serving
after they finish until interrupted.`,
		Example: "  ivm bench ex0 ex2 --repeat 8 --parallel 4 --metrics-addr :9090",
		RunE:    runBench,
	}
)

func init() {
	f := benchCmd.Flags()
	f.IntVarP(&benchRepeat, "repeat", "n", 1, "runs per entry")
	f.IntVarP(&benchParallel, "parallel", "p", 1, "concurrent runs")
	f.StringVar(&benchAddr, "metrics-addr", "", "serve /metrics on this address (overrides config)")
	f.BoolVar(&benchHold, "hold", false, "keep serving metrics after the runs finish")
	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, args []string) error {
	if benchRepeat < 1 || benchParallel < 1 {
		return fmt.Errorf("--repeat and --parallel must be positive")
	}
	entries := args
	if len(entries) == 0 {
		entries = []string{cfg.Entry}
	}
	addr := cfg.Metrics.Addr
	if cmd.Flags().Changed("metrics-addr") {
		addr = benchAddr
	}

	c, err := newCompiler()
	if err != nil {
		return err
	}
	r := newRunner(c)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	served := make(chan error, 1)
	if addr != "" {
		go func() { served <- metrics.Serve(ctx, addr) }()
		logger.Info("serving metrics", "addr", addr)
	} else {
		served <- nil
	}

	results, err := bench(ctx, r, entries, benchRepeat, benchParallel)
	fmt.Fprintln(cmd.OutOrStdout(), benchTable(results))
	if err != nil {
		return err
	}
	if addr != "" && benchHold {
		logger.Info("runs finished, holding metrics endpoint", "addr", addr)
		<-cmd.Context().Done()
	}
	cancel()
	if err := <-served; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// bench runs each entry repeat times with at most parallel runs in flight.
// Results are ordered by entry, then repetition.
func bench(ctx context.Context, r *runner.Runner, entries []string, repeat, parallel int) ([]*runner.Result, error) {
	results := make([]*runner.Result, len(entries)*repeat)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, entry := range entries {
		entry := entry
		for j := 0; j < repeat; j++ {
			slot := i*repeat + j
			g.Go(func() error {
				res, err := r.Run(ctx, entry)
				if err != nil {
					return err
				}
				results[slot] = res
				return nil
			})
		}
	}
	err := g.Wait()
	return results, err
}
