package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/vic/ivm/internal/runner"
	"github.com/vic/ivm/pkg/lambda"
	"github.com/vic/ivm/pkg/lang"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Define and normalize nets interactively",
	Long: `repl reads one line at a time:

  @name = $ ...     add a definition to the book
  $ ...             normalize a net
  :l term           normalize a lambda term
  :run name         normalize a definition
  :show name        print a definition
  :defs             list the defined names
  :q                quit`,
	Args: cobra.NoArgs,
	RunE: runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

const historyFile = ".ivm_history"

func runREPL(cmd *cobra.Command, args []string) error {
	c, err := newCompiler()
	if err != nil {
		return err
	}
	s := &session{c: c, r: newRunner(c), out: cmd.OutOrStdout()}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(s.complete)

	history := ""
	if home, err := os.UserHomeDir(); err == nil {
		history = filepath.Join(home, historyFile)
		if f, err := os.Open(history); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
	}

	for {
		input, err := line.Prompt("ivm> ")
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		line.AppendHistory(input)
		quit, err := s.eval(cmd.Context(), input)
		if err != nil {
			fmt.Fprintln(s.out, styles.Error.Render("error:"), err)
		}
		if quit {
			break
		}
	}

	if history != "" {
		if f, err := os.Create(history); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}
	return nil
}

// session holds the book a REPL grows one line at a time.
type session struct {
	c   *lang.Compiler
	r   *runner.Runner
	out io.Writer
}

// eval runs one REPL line and reports whether the session should end.
func (s *session) eval(ctx context.Context, input string) (quit bool, err error) {
	input = strings.TrimSpace(input)
	cmd, rest, _ := strings.Cut(input, " ")
	rest = strings.TrimSpace(rest)
	switch {
	case cmd == ":q" || cmd == ":quit":
		return true, nil
	case cmd == ":defs":
		fmt.Fprintln(s.out, strings.Join(s.c.Book.Names(), " "))
	case cmd == ":show":
		def, err := showDefinition(s.c.Book, strings.TrimPrefix(rest, "@"))
		if err != nil {
			return false, err
		}
		fmt.Fprintln(s.out, def)
	case cmd == ":run":
		res, err := s.r.Run(ctx, strings.TrimPrefix(rest, "@"))
		if err != nil {
			return false, err
		}
		s.result(res, lang.Show(res.Net, s.c.Book))
	case cmd == ":l":
		term, err := lambda.Parse(rest)
		if err != nil {
			return false, err
		}
		term, free := lambda.Close(term, s.c.Book)
		res, err := s.r.RunTerm(ctx, term)
		if err != nil {
			return false, err
		}
		normal, err := lambda.FromNet(res.Net, s.c.Book)
		if err == nil {
			normal, err = lambda.Open(normal, free)
		}
		if err != nil {
			return false, err
		}
		s.result(res, normal.String())
	case strings.HasPrefix(input, "@"):
		names, err := s.c.DefineBook(input)
		if err != nil {
			return false, err
		}
		fmt.Fprintln(s.out, styles.Muted.Render("defined @"+strings.Join(names, ", @")))
	case strings.HasPrefix(input, "$"):
		res, err := s.r.RunSource(ctx, input)
		if err != nil {
			return false, err
		}
		s.result(res, lang.Show(res.Net, s.c.Book))
	default:
		return false, fmt.Errorf("unknown input %q, try :q to quit", cmd)
	}
	return false, nil
}

func (s *session) result(res *runner.Result, normal string) {
	fmt.Fprintln(s.out, normal)
	fmt.Fprintln(s.out, styles.Muted.Render(fmt.Sprintf("rwts %d  dref %d  %.3fs",
		res.Stats.Rewrites, res.Stats.Dereferences, res.Elapsed.Seconds())))
}

// complete offers book names for a trailing @reference.
func (s *session) complete(line string) []string {
	i := strings.LastIndexByte(line, '@')
	if i < 0 {
		return nil
	}
	prefix := line[i+1:]
	if strings.ContainsAny(prefix, " ()~&{}") {
		return nil
	}
	var out []string
	for _, name := range s.c.Book.Names() {
		if strings.HasPrefix(name, prefix) {
			out = append(out, line[:i+1]+name)
		}
	}
	return out
}
