// Package prelude holds the built-in definitions: Church numerals,
// booleans, Scott naturals, λ-encoded bitstrings and the example programs
// ex0..ex4.
package prelude

import (
	"fmt"
	"slices"
	"strings"

	"github.com/vic/ivm/pkg/inet"
	"github.com/vic/ivm/pkg/lang"
)

const (
	// ChurchMax is the largest Church numeral defined under each color.
	ChurchMax = 26
	// KChurchMax is the largest numeral defined with duplicator color 2.
	KChurchMax = 24
)

// Register compiles every built-in into c.Book. Digit definitions for a
// non-default radix are added after the bitstring constructors.
func Register(c *lang.Compiler) error {
	for n := 0; n <= ChurchMax; n++ {
		if err := c.Define(fmt.Sprintf("c%d", n), Church(n, 1)); err != nil {
			return err
		}
	}
	for n := 0; n <= KChurchMax; n++ {
		if err := c.Define(fmt.Sprintf("k%d", n), Church(n, 2)); err != nil {
			return err
		}
	}
	if _, err := c.DefineBook(source); err != nil {
		return err
	}
	num, def := c.Numerals, lang.DefaultNumerals
	if num.Radix == def.Radix && num.End == def.End && slices.Equal(num.Digits, def.Digits) {
		return nil
	}
	for d, name := range num.Digits {
		if err := c.Define(name, lang.DigitSource(d, num.Radix)); err != nil {
			return err
		}
	}
	return c.Define(num.End, lang.EndSource(num.Radix))
}

// Book returns a fresh book holding the built-ins with default numerals.
func Book() (*inet.Book, error) {
	book := inet.NewBook()
	if err := Register(lang.NewCompiler(book)); err != nil {
		return nil, err
	}
	return book, nil
}

// Church returns the definition of the Church numeral n whose function
// argument is shared through duplicators of the given color.
//
//	n=2:  $ (0 (1 (0 x0 x1) (0 x1 x2)) (0 x0 x2))
func Church(n int, color uint32) string {
	switch n {
	case 0:
		return "$ (0 * (0 a a))"
	case 1:
		return "$ (0 (0 a R) (0 a R))"
	}
	app := func(i int) string { return fmt.Sprintf("(0 x%d x%d)", i, i+1) }
	d := app(0)
	for i := 1; i < n; i++ {
		d = fmt.Sprintf("(%d %s %s)", color, d, app(i))
	}
	return fmt.Sprintf("$ (0 %s (0 x0 x%d))", d, n)
}

// Names lists the names Register defines with default numerals.
func Names() []string {
	var out []string
	for n := 0; n <= ChurchMax; n++ {
		out = append(out, fmt.Sprintf("c%d", n))
	}
	for n := 0; n <= KChurchMax; n++ {
		out = append(out, fmt.Sprintf("k%d", n))
	}
	defs, err := lang.ParseBook(source)
	if err != nil {
		panic(err)
	}
	for _, d := range defs {
		out = append(out, d.Name)
	}
	return out
}

// Source returns the hand-written part of the prelude in book notation.
func Source() string { return strings.TrimSpace(source) }

const source = `
// Church multiplication
@mul = $ (0 (0 a b) (0 (0 c a) (0 c b)))

@id = $ (0 x x)

// Booleans
@T   = $ (0 t (0 * t))
@F   = $ (0 * (0 f f))
@not = $ (0 (0 f (0 t r)) (0 t (0 f r)))
@and = $ (0 (0 (0 (0 @T (0 @F a)) a) (0 (0 (0 @F (0 @F b)) b) c)) c)

// Scott naturals
@S = $ (0 a (0 (0 a b) (0 * b)))
@Z = $ (0 * (0 a a))

// Generators for a big binary tree: g_s = λr λt ((t r) r)
@g_s = $ (0 (2 r0 r1) (0 (0 r0 (0 r1 r)) r))
@g_z = $ (0 x x)

// Bitstrings
// O = λxs λo λi λe (o xs)
// I = λxs λo λi λe (i xs)
// E =     λo λi λe e
@O = $ (0 xs (0 (0 xs r) (0 * (0 * r))))
@I = $ (0 xs (0 * (0 (0 xs r) (0 * r))))
@E = $ (0 * (0 * (0 e e)))

// Doubles a Scott natural
@nidS = $ (0 p ret)
  & @S   ~ (0 nidp ret)
  & @nid ~ (0 p nidp)
@nid = $ (0 (0 @nidS (0 @Z ret)) ret)

// dec = λx (((x decO) decI) E)
@decO = $ (0 p idecp)
  & @I   ~ (0 decp idecp)
  & @dec ~ (0 p decp)
@decI = $ (0 p lowp)
  & @low ~ (0 p lowp)
@dec = $ (0 (0 @decO (0 @decI (0 @E ret))) ret)

// low = λx (((x lowO) lowI) E)
@lowO = $ (0 p oop)
  & @O ~ (0 p op)
  & @O ~ (0 op oop)
@lowI = $ (0 p oip)
  & @I ~ (0 p ip)
  & @O ~ (0 ip oip)
@low = $ (0 (0 @lowO (0 @lowI (0 @E ret))) ret)

// Decrements a bitstring until it is empty
// run = λx (((x runO) runI) E)
@runO = $ (0 p ret)
  & @run ~ (0 decop ret)
  & @dec ~ (0 op decop)
  & @O   ~ (0 p op)
@runI = $ (0 p ret)
  & @run ~ (0 decip ret)
  & @dec ~ (0 ip decip)
  & @I   ~ (0 p ip)
@run = $ (0 (0 @runO (0 @runI (0 @E ret))) ret)

// Runs 2^N counters: brn = λn ((n brnS) brnZ)
@brnZ = $ ret
  & @run ~ (0 val ret)
  & @mul ~ (0 @c2 (0 @c5 (0 @I (0 @E val))))
@brnS = $ (0 (1 p0 p1) (0 r0 r1))
  & @brn ~ (0 p0 r0)
  & @brn ~ (0 p1 r1)
@brn = $ (0 (0 @brnS (0 @brnZ r)) r)

// af = λx (x afS afZ)
@af = $ (0 (0 @afS (0 @afZ a)) a)
@afS = $ (0 (1 a b) c)
  & (0 b d) ~ @af
  & (0 e (0 d c)) ~ @and
  & (0 a e) ~ @af
@afZ = $ @T

// Church multiplication of two by two
@ex0 = $ root
  & @c2 ~ (0 @k2 root)

// Allocates a big tree
@ex1 = $ root
  & @c24 ~ (0 @g_s (0 @g_z root))

// Decrements a binary counter
@ex2 = $ main
  & @c22 ~ (0 @I (0 @E nie))
  & @run ~ (0 nie main)

// Decrements many binary counters
@ex3 = $ res
  & @c12 ~ (0 @S (0 @Z dep))
  & @brn ~ (0 dep res)

// Halves a numeral literal: (x λp.p λp.p 0)
@half = $ (0 (0 (0 op op) (0 (0 ip ip) (0 0 ret))) ret)

// Native numbers
@ex4 = $ ret
  & {+ -2 ret} ~ +1
`
