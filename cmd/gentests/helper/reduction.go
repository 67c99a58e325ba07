package gentests

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vic/ivm/pkg/inet"
	"github.com/vic/ivm/pkg/lambda"
)

// Arena is the node capacity of the net each case reduces in.
const Arena = 1 << 16

// CheckLambdaReduction translates input, reduces it to normal form, reads
// it back and compares it with output up to renaming of bound variables.
// Free names are abstracted before translation and restored afterwards.
func CheckLambdaReduction(t *testing.T, testName string, inputStr string, outputStr string) {
	t.Helper()

	expected, err := lambda.Parse(strings.TrimSpace(outputStr))
	require.NoError(t, err, "%s: parse expected output", testName)

	term, err := lambda.Parse(strings.TrimSpace(inputStr))
	require.NoError(t, err, "%s: parse input", testName)

	book := inet.NewBook()
	closed, free := lambda.Close(term, book)

	net := inet.New(Arena)
	require.NoError(t, lambda.NewTranslator(book).Load(net, closed), "%s: translate", testName)

	start := time.Now()
	require.NoError(t, net.Normal(book), "%s: normalize", testName)
	elapsed := time.Since(start)

	normal, err := lambda.FromNet(net, book)
	require.NoError(t, err, "%s: read back", testName)
	actual, err := lambda.Open(normal, free)
	require.NoError(t, err, "%s: open %v", testName, free)

	require.Equal(t, Canonical(expected).String(), Canonical(actual).String(),
		"%s: input %s", testName, inputStr)

	t.Logf("%s: %d rewrites in %v", testName, net.Rewrites(), elapsed)
}

// Canonical renames the bound variables of t to $0, $1, ... in binding
// order. Free names are kept.
func Canonical(t lambda.Term) lambda.Term {
	bindings := make(map[string]string)
	var idx int
	var walk func(lambda.Term) lambda.Term
	walk = func(tt lambda.Term) lambda.Term {
		switch v := tt.(type) {
		case lambda.Var:
			if name, ok := bindings[v.Name]; ok {
				return lambda.Var{Name: name}
			}
			return v
		case lambda.Abs:
			canon := fmt.Sprintf("$%d", idx)
			idx++
			// shadowing: save old if any
			old, had := bindings[v.Arg]
			bindings[v.Arg] = canon
			body := walk(v.Body)
			if had {
				bindings[v.Arg] = old
			} else {
				delete(bindings, v.Arg)
			}
			return lambda.Abs{Arg: canon, Body: body}
		case lambda.App:
			return lambda.App{Fun: walk(v.Fun), Arg: walk(v.Arg)}
		case lambda.Let:
			return walk(lambda.App{Fun: lambda.Abs{Arg: v.Name, Body: v.Body}, Arg: v.Val})
		default:
			return tt
		}
	}
	return walk(t)
}
