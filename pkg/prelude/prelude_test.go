package prelude

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vic/ivm/pkg/inet"
	"github.com/vic/ivm/pkg/lang"
)

func normal(t *testing.T, book *inet.Book, src string) (string, *inet.Net) {
	t.Helper()
	net := inet.New(1 << 16)
	require.NoError(t, lang.Load(net, book, src))
	require.NoError(t, net.Normal(book))
	return lang.Show(net, book), net
}

func TestBookDefinesEveryName(t *testing.T) {
	book, err := Book()
	require.NoError(t, err)
	for _, name := range Names() {
		assert.True(t, book.Has(name), name)
	}
	assert.Empty(t, book.Undefined())
}

func TestChurchMatchesHandWritten(t *testing.T) {
	tests := []struct {
		n     int
		color uint32
		src   string
	}{
		{0, 1, "$ (0 * (0 a a))"},
		{1, 1, "$ (0 (0 a R) (0 a R))"},
		{2, 1, "$ (0 (1 (0 b a) (0 a R)) (0 b R))"},
		{3, 1, "$ (0 (1 (1 (0 c b) (0 b a)) (0 a R)) (0 c R))"},
		{4, 2, "$ (0 (2 (2 (2 (0 d c) (0 c b)) (0 b a)) (0 a R)) (0 d R))"},
	}
	for _, tt := range tests {
		c := lang.NewCompiler(inet.NewBook())
		want, err := lang.ParseNet(tt.src)
		require.NoError(t, err)
		wantTpl, err := c.Compile(want)
		require.NoError(t, err)

		got, err := lang.ParseNet(Church(tt.n, tt.color))
		require.NoError(t, err)
		gotTpl, err := c.Compile(got)
		require.NoError(t, err)

		assert.Equal(t, lang.Show(wantTpl, c.Book), lang.Show(gotTpl, c.Book), "n=%d", tt.n)
	}
}

func TestChurchMultiplication(t *testing.T) {
	book, err := Book()
	require.NoError(t, err)

	got, _ := normal(t, book, "$ r & @c2 ~ (0 @k2 f) & f ~ (0 @S (0 @Z r))")
	want, _ := normal(t, book, "$ r & @k4 ~ (0 @S (0 @Z r))")
	assert.Equal(t, want, got)

	three, _ := normal(t, book, "$ r & @c3 ~ (0 @S (0 @Z r))")
	assert.NotEqual(t, three, got)
}

func TestEx0Normalizes(t *testing.T) {
	book, err := Book()
	require.NoError(t, err)

	net := inet.New(1 << 16)
	require.NoError(t, net.Boot(book, "ex0"))
	require.NoError(t, net.Normal(book))
	assert.Greater(t, net.Rewrites(), uint64(0))
	assert.GreaterOrEqual(t, net.Dereferences(), uint64(3))
	assert.Empty(t, net.Redexes())

	rwts := net.Rewrites()
	require.NoError(t, net.Normal(book))
	assert.Equal(t, rwts, net.Rewrites())
}

func TestRunReachesEnd(t *testing.T) {
	book, err := Book()
	require.NoError(t, err)

	got, _ := normal(t, book, `
		$ main
		& @c6 ~ (0 @I (0 @E nie))
		& @run ~ (0 nie main)
	`)
	assert.Equal(t, "$ (0 * (0 * (0 a a)))", got)
}

func TestDecrement(t *testing.T) {
	book, err := Book()
	require.NoError(t, err)

	got, _ := normal(t, book, "$ r & @dec ~ (0 6 r)")
	want, _ := normal(t, book, "$ 5")
	assert.Equal(t, want, got)
}

func TestHalf(t *testing.T) {
	book, err := Book()
	require.NoError(t, err)

	got, _ := normal(t, book, "$ r & @half ~ (0 26 r)")
	want, _ := normal(t, book, "$ 13")
	assert.Equal(t, want, got)
}

func TestBooleans(t *testing.T) {
	book, err := Book()
	require.NoError(t, err)

	f, _ := normal(t, book, "$ @F")
	got, _ := normal(t, book, "$ r & @not ~ (0 @T r)")
	assert.Equal(t, f, got)

	tr, _ := normal(t, book, "$ @T")
	got, _ = normal(t, book, "$ r & @and ~ (0 @T (0 @T r))")
	assert.Equal(t, tr, got)
	got, _ = normal(t, book, "$ r & @and ~ (0 @T (0 @F r))")
	assert.Equal(t, f, got)
}

func TestEx4(t *testing.T) {
	book, err := Book()
	require.NoError(t, err)

	net := inet.New(64)
	require.NoError(t, net.Boot(book, "ex4"))
	require.NoError(t, net.Normal(book))
	assert.Equal(t, "$ -1", lang.Show(net, book))
}

func TestCustomRadix(t *testing.T) {
	c := lang.NewCompiler(inet.NewBook())
	c.Numerals = lang.Numerals{Radix: 3, Digits: []string{"D0", "D1", "D2"}, End: "DE"}
	require.NoError(t, Register(c))
	for _, name := range []string{"D0", "D1", "D2", "DE"} {
		assert.True(t, c.Book.Has(name), name)
	}
}
