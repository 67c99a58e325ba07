// Package runner drives one normalization run end to end: boot, expand,
// reduce, normal. It stamps every run with an id, wraps the phases in
// spans and feeds the counters to the metrics package.
package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/vic/ivm/internal/metrics"
	"github.com/vic/ivm/internal/tracing"
	"github.com/vic/ivm/pkg/inet"
	"github.com/vic/ivm/pkg/lambda"
	"github.com/vic/ivm/pkg/lang"
)

type Runner struct {
	Compiler *lang.Compiler
	// Arena is the agent capacity of every net the runner creates.
	Arena int
	// TraceSize, when positive, records that many rewrites per run.
	TraceSize int
	Log       *slog.Logger
}

func New(c *lang.Compiler, arena int, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	return &Runner{Compiler: c, Arena: arena, Log: log}
}

// Result is a finished run. Net holds the normal form.
type Result struct {
	ID      string
	Entry   string
	Net     *inet.Net
	Stats   inet.Stats
	Elapsed time.Duration
	Trace   []inet.TraceEvent
}

// RPS is the throughput in millions of rewrites per second.
func (r *Result) RPS() float64 {
	s := r.Elapsed.Seconds()
	if s <= 0 {
		return 0
	}
	return float64(r.Stats.Rewrites) / s / 1e6
}

// Report writes the run summary in the RWTS/DREF/TIME/RPS layout.
func (r *Result) Report(w io.Writer) {
	fmt.Fprintf(w, "RWTS: %d\n", r.Stats.Rewrites)
	fmt.Fprintf(w, "DREF: %d\n", r.Stats.Dereferences)
	fmt.Fprintf(w, "TIME: %.3f s\n", r.Elapsed.Seconds())
	fmt.Fprintf(w, "RPS : %.3f million\n", r.RPS())
}

// Run normalizes the Book definition entry.
func (r *Runner) Run(ctx context.Context, entry string) (*Result, error) {
	return r.run(ctx, entry, func(net *inet.Net) error {
		return net.Boot(r.Compiler.Book, entry)
	})
}

// RunSource normalizes a bare `$ ...` net.
func (r *Runner) RunSource(ctx context.Context, src string) (*Result, error) {
	return r.run(ctx, "$", func(net *inet.Net) error {
		return r.Compiler.Load(net, src)
	})
}

// RunTerm normalizes a lambda term.
func (r *Runner) RunTerm(ctx context.Context, term lambda.Term) (*Result, error) {
	return r.run(ctx, "λ", func(net *inet.Net) error {
		return lambda.NewTranslator(r.Compiler.Book).Load(net, term)
	})
}

func (r *Runner) run(ctx context.Context, entry string, boot func(*inet.Net) error) (res *Result, err error) {
	id := uuid.NewString()
	log := r.Log.With("run_id", id, "entry", entry)
	book := r.Compiler.Book

	ctx, span := tracing.Tracer().Start(ctx, "run")
	span.SetAttributes(attribute.String("run_id", id), attribute.String("entry", entry))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	net := inet.New(r.Arena)
	net.SetLogger(log)
	if r.TraceSize > 0 {
		net.EnableTrace(r.TraceSize)
	}

	log.Debug("run started", "arena", r.Arena)
	start := time.Now()
	err = phase(ctx, "boot", func(context.Context) error { return boot(net) })
	if err == nil {
		err = phase(ctx, "expand", func(context.Context) error { return net.Expand(book) })
	}
	if err == nil {
		err = phase(ctx, "reduce", func(ctx context.Context) error { return net.ReduceContext(ctx, book) })
	}
	if err == nil {
		err = phase(ctx, "normal", func(ctx context.Context) error { return net.NormalContext(ctx, book) })
	}
	res = &Result{
		ID:      id,
		Entry:   entry,
		Net:     net,
		Stats:   net.Stats(),
		Elapsed: time.Since(start),
		Trace:   net.TraceSnapshot(),
	}
	metrics.Observe(entry, res.Stats, res.Elapsed, err)
	span.SetAttributes(
		attribute.Int64("rewrites", int64(res.Stats.Rewrites)),
		attribute.Int64("dereferences", int64(res.Stats.Dereferences)),
	)
	if err != nil {
		log.Error("run failed", "error", err, "rewrites", res.Stats.Rewrites)
		return res, fmt.Errorf("run %s: %w", entry, err)
	}
	log.Info("run finished",
		"rewrites", res.Stats.Rewrites,
		"dereferences", res.Stats.Dereferences,
		"live", res.Stats.Live,
		"elapsed", res.Elapsed)
	return res, nil
}

func phase(ctx context.Context, name string, f func(context.Context) error) error {
	ctx, span := tracing.Tracer().Start(ctx, name)
	defer span.End()
	if err := f(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
