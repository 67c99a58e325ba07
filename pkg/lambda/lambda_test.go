package lambda

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vic/ivm/pkg/inet"
	"github.com/vic/ivm/pkg/lang"
	"github.com/vic/ivm/pkg/prelude"
)

func TestParse(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"x: y: x y", "(x: (y: (x y)))"},
		{"f x y", "((f x) y)"},
		{"f x: x", "(f (x: x))"},
		{"(x: x) (y: y)", "((x: x) (y: y))"},
		{"let id = x: x; id id", "let id = (x: x); (id id)"},
		{"let a = x: x; b = a in b a", "let a = (x: x); let b = a; (b a)"},
		{"# comment\nf' x_1", "(f' x_1)"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			term, err := Parse(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, term.String())
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		src       string
		line, col int
	}{
		{"(x", 1, 3},
		{"x: ?", 1, 4},
		{"x\n)", 2, 1},
		{"let = x", 1, 5},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := Parse(tt.src)
			require.Error(t, err)
			assert.ErrorIs(t, err, lang.ErrSyntax)
			var se *lang.SyntaxError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.line, se.Line)
			assert.Equal(t, tt.col, se.Col)
		})
	}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"x: x", "$ (0 w0 w0)"},
		{"x: x: x", "$ (0 * (0 w0 w0))"},
		{"f: x: f (f x)", "$ (0 (64 w0 w1) (0 w2 w4))\n  & w1 ~ (0 w2 w3)\n  & w0 ~ (0 w3 w4)"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			term, err := Parse(tt.src)
			require.NoError(t, err)
			def, err := ToDefinition(term, inet.NewBook())
			require.NoError(t, err)
			assert.Equal(t, tt.want, def.String())
		})
	}
}

func TestTranslateColorsPerBinder(t *testing.T) {
	tr := NewTranslator(inet.NewBook())
	term, err := Parse("f: g: x: f (f (g (g x)))")
	require.NoError(t, err)
	_, err = tr.Translate(term)
	require.NoError(t, err)
	assert.Equal(t, uint32(FirstColor+2), tr.Color)
}

func TestTranslateUnboundName(t *testing.T) {
	_, err := ToDefinition(Var{Name: "nope"}, inet.NewBook())
	assert.ErrorIs(t, err, ErrUnboundName)
}

func eval(t *testing.T, book *inet.Book, src string) string {
	t.Helper()
	term, err := Parse(src)
	require.NoError(t, err)
	net := inet.New(1 << 16)
	require.NoError(t, NewTranslator(book).Load(net, term))
	require.NoError(t, net.Normal(book))
	got, err := FromNet(net, book)
	require.NoError(t, err)
	return got.String()
}

func TestEvaluate(t *testing.T) {
	book := inet.NewBook()
	assert.Equal(t, "(x0: x0)", eval(t, book, "(x: x) (y: y)"))
	assert.Equal(t, "(x0: x0)", eval(t, book, "(x: x x) (y: y)"))
	assert.Equal(t, "(x0: x0)", eval(t, book, "let id = x: x; id id"))
	assert.Equal(t, "(x0: (x1: (x0 (x0 x1))))", eval(t, book, "f: x: f (f x)"))
	assert.Equal(t, "(x0: (x1: x0))", eval(t, book, "(t: f: t) (a: b: a) (c: c)"))
}

func TestEvaluateWithPrelude(t *testing.T) {
	book, err := prelude.Book()
	require.NoError(t, err)
	assert.Equal(t, "(x0: (x1: (x0 (x0 (x0 (x0 x1))))))", eval(t, book, "c2 k2"))
}

func TestReadBackEx0(t *testing.T) {
	book, err := prelude.Book()
	require.NoError(t, err)
	net := inet.New(1 << 16)
	require.NoError(t, net.Boot(book, "ex0"))
	require.NoError(t, net.Normal(book))
	got, err := FromNet(net, book)
	require.NoError(t, err)
	assert.Equal(t, "(x0: (x1: (x0 (x0 (x0 (x0 x1))))))", got.String())
}

func TestDefine(t *testing.T) {
	book := inet.NewBook()
	tr := NewTranslator(book)
	id, err := Parse("x: x")
	require.NoError(t, err)
	require.NoError(t, tr.Define("id", id))
	main, err := Parse("id id")
	require.NoError(t, err)
	require.NoError(t, tr.Define("main", main))

	net := inet.New(64)
	require.NoError(t, net.Boot(book, "main"))
	require.NoError(t, net.Normal(book))
	got, err := FromNet(net, book)
	require.NoError(t, err)
	assert.Equal(t, "(x0: x0)", got.String())
}

func TestReadBackLeaves(t *testing.T) {
	book := inet.NewBook()
	net := inet.New(16)
	require.NoError(t, lang.Load(net, book, "$ +5"))
	got, err := FromNet(net, book)
	require.NoError(t, err)
	assert.Equal(t, "+5", got.String())

	require.NoError(t, lang.Load(net, book, "$ {:+ +1 (0 a a)}"))
	_, err = FromNet(net, book)
	assert.ErrorIs(t, err, ErrNotATerm)
}

func TestFreeVars(t *testing.T) {
	term, err := Parse("f (x: x y) (let z = y; z w) x")
	require.NoError(t, err)
	assert.Equal(t, []string{"f", "y", "w", "x"}, FreeVars(term))
}

func TestCloseAndOpen(t *testing.T) {
	book := inet.NewBook()
	require.NoError(t, NewTranslator(book).Define("id", Abs{Arg: "x", Body: Var{Name: "x"}}))

	term, err := Parse("(x: y: x y) a (id b)")
	require.NoError(t, err)
	closed, names := Close(term, book)
	assert.Equal(t, []string{"a", "b"}, names)
	assert.Equal(t, "(a: (b: (((x: (y: (x y))) a) (id b))))", closed.String())

	net := inet.New(1 << 10)
	require.NoError(t, NewTranslator(book).Load(net, closed))
	require.NoError(t, net.Normal(book))
	normal, err := FromNet(net, book)
	require.NoError(t, err)
	opened, err := Open(normal, names)
	require.NoError(t, err)
	assert.Equal(t, "(a b)", opened.String())

	_, err = Open(Var{Name: "v"}, []string{"v"})
	assert.ErrorIs(t, err, ErrNotATerm)
}
