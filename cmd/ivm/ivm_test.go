package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vic/ivm/internal/runner"
	"github.com/vic/ivm/pkg/inet"
	"github.com/vic/ivm/pkg/lang"
	"github.com/vic/ivm/pkg/prelude"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestEvalCommand(t *testing.T) {
	out, errOut, err := execute(t, "eval", "-e", "$ r & {* +3 r} ~ +4")
	require.NoError(t, err)
	assert.Equal(t, "$ +12\n", out)
	assert.Contains(t, errOut, "RWTS: 1")
}

func TestLambdaNetCommand(t *testing.T) {
	out, _, err := execute(t, "lambda", "--net", "-e", "x: x")
	require.NoError(t, err)
	assert.Equal(t, "$ (0 w0 w0)\n", out)
}

func TestShowCommand(t *testing.T) {
	out, _, err := execute(t, "show", "id", "ex0")
	require.NoError(t, err)
	assert.Equal(t, "@id = $ (0 a a)\n@ex0 = $ a\n  & @c2 ~ (0 @k2 a)\n", out)

	_, _, err = execute(t, "show", "nope")
	assert.ErrorIs(t, err, inet.ErrUndefinedReference)
}

func newSession(t *testing.T) (*session, *bytes.Buffer) {
	t.Helper()
	c := lang.NewCompiler(inet.NewBook())
	require.NoError(t, prelude.Register(c))
	var out bytes.Buffer
	return &session{c: c, r: runner.New(c, 1<<16, nil), out: &out}, &out
}

func TestSession(t *testing.T) {
	s, out := newSession(t)
	ctx := context.Background()

	quit, err := s.eval(ctx, "@two = $ r & @S ~ (0 @S (0 @Z r))")
	require.NoError(t, err)
	assert.False(t, quit)
	assert.True(t, s.c.Book.Has("two"))

	out.Reset()
	_, err = s.eval(ctx, "$ r & {+ +2 r} ~ +3")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.String(), "$ +5\n"))

	out.Reset()
	_, err = s.eval(ctx, ":l (x: x) (y: y)")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.String(), "(x0: x0)\n"))

	out.Reset()
	_, err = s.eval(ctx, ":show @id")
	require.NoError(t, err)
	assert.Equal(t, "@id = $ (0 a a)\n", out.String())

	_, err = s.eval(ctx, "what")
	assert.Error(t, err)

	quit, err = s.eval(ctx, ":q")
	require.NoError(t, err)
	assert.True(t, quit)
}

func TestSessionComplete(t *testing.T) {
	s, _ := newSession(t)
	got := s.complete("$ r & @ex")
	assert.Equal(t, []string{"$ r & @ex0", "$ r & @ex1", "$ r & @ex2", "$ r & @ex3", "$ r & @ex4"}, got)
	assert.Nil(t, s.complete("$ r"))
}

func TestBenchSharesBook(t *testing.T) {
	s, _ := newSession(t)
	results, err := bench(context.Background(), s.r, []string{"ex0", "ex4"}, 3, 4)
	require.NoError(t, err)
	require.Len(t, results, 6)
	for i, res := range results[:3] {
		assert.Equal(t, "ex0", res.Entry, i)
		assert.Equal(t, results[0].Stats.Rewrites, res.Stats.Rewrites)
	}
	assert.Equal(t, "ex4", results[5].Entry)

	table := benchTable(results)
	assert.Contains(t, table, "ENTRY")
	assert.Contains(t, table, "ex4")

	_, err = bench(context.Background(), s.r, []string{"missing"}, 1, 1)
	assert.ErrorIs(t, err, inet.ErrUndefinedReference)
}

func TestStatsTable(t *testing.T) {
	s := inet.Stats{Rewrites: 3, Rules: map[inet.RuleKind]uint64{inet.RuleCommute: 3}}
	out := statsTable(s)
	for _, rule := range inet.Rules() {
		assert.Contains(t, out, rule.String())
	}
}

func TestReadInput(t *testing.T) {
	got, err := readInput(nil, "$ *", nil)
	require.NoError(t, err)
	assert.Equal(t, "$ *", got)

	got, err = readInput([]string{"-"}, "", strings.NewReader("$ +1"))
	require.NoError(t, err)
	assert.Equal(t, "$ +1", got)
}

func TestLambdaCommandFreeNames(t *testing.T) {
	out, _, err := execute(t, "lambda", "--net=false", "-e", "(x: y: x) a b")
	require.NoError(t, err)
	assert.Equal(t, "a\n", out)

	out, _, err = execute(t, "lambda", "--net=false", "-e", "c2 k2")
	require.NoError(t, err)
	assert.Equal(t, "(x0: (x1: (x0 (x0 (x0 (x0 x1))))))\n", out)
}

func TestLamEntry(t *testing.T) {
	assert.Equal(t, "four", lamEntry("examples/four.lam"))
	assert.Equal(t, "", lamEntry("counter.inet"))
}

func TestRunExampleBook(t *testing.T) {
	out, _, err := execute(t, "run", "-b", "../../examples/counter.inet", "arith")
	require.NoError(t, err)
	assert.Equal(t, "$ +7\n", out)

	out, _, err = execute(t, "run", "-b", "../../examples/counter.inet", "main")
	require.NoError(t, err)
	assert.Equal(t, "$ (0 * (0 * (0 a a)))\n", out)
}
