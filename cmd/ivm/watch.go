package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/vic/ivm/internal/metrics"
	"github.com/vic/ivm/pkg/lang"
)

var (
	watchDebounce time.Duration

	watchCmd = &cobra.Command{
		Use:   "watch [entry]",
		Short: "Re-run an entry whenever a book file changes",
		Long: `watch normalizes the entry once, then again every time one of the
configured book files (--book or the config file's books) is written.
Metrics are served on the configured address while watching.`,
		Example: "  ivm watch main --book examples/counter.inet",
		Args:    cobra.MaximumNArgs(1),
		RunE:    runWatch,
	}
)

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 100*time.Millisecond, "wait this long for writes to settle")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if len(cfg.Books) == 0 {
		return fmt.Errorf("watch needs at least one --book file")
	}
	entry := cfg.Entry
	if len(args) > 0 {
		entry = args[0]
	}
	ctx := cmd.Context()

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	// Editors replace files on save, so watch the directories.
	watched := make(map[string]bool)
	for _, path := range cfg.Books {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		watched[abs] = true
		if err := w.Add(filepath.Dir(abs)); err != nil {
			return err
		}
	}

	if cfg.Metrics.Addr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.Metrics.Addr); err != nil {
				logger.Error("metrics endpoint failed", "error", err)
			}
		}()
	}

	rerun := func() {
		if err := watchRun(ctx, cmd, entry); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), styles.Error.Render("error:"), err)
		}
	}
	rerun()

	var timer <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			abs, _ := filepath.Abs(ev.Name)
			if !watched[abs] || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			logger.Debug("book changed", "path", ev.Name, "op", ev.Op.String())
			timer = time.After(watchDebounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		case <-timer:
			timer = nil
			rerun()
		}
	}
}

func watchRun(ctx context.Context, cmd *cobra.Command, entry string) error {
	c, err := newCompiler()
	if err != nil {
		return err
	}
	res, err := newRunner(c).Run(ctx, entry)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), styles.Title.Render("@"+entry), styles.Muted.Render(time.Now().Format(time.TimeOnly)))
	printResult(cmd.OutOrStdout(), cmd.ErrOrStderr(), res, lang.Show(res.Net, c.Book), false)
	return nil
}
