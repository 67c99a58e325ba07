package lang

import (
	"fmt"
	"strings"
)

// Numerals configures how unsigned literals are desugared: a literal N
// becomes Digits[N mod Radix] applied to the literal N div Radix, and 0
// becomes a reference to End.
type Numerals struct {
	Radix  int      `yaml:"radix" validate:"gte=2,lte=36"`
	Digits []string `yaml:"digits" validate:"dive,required"`
	End    string   `yaml:"end" validate:"required"`
}

// DefaultNumerals are the λ-encoded bitstrings O, I and E.
var DefaultNumerals = Numerals{Radix: 2, Digits: []string{"O", "I"}, End: "E"}

func (n Numerals) Validate() error {
	if n.Radix < 2 {
		return fmt.Errorf("numeral radix %d is below 2", n.Radix)
	}
	if len(n.Digits) != n.Radix {
		return fmt.Errorf("numeral radix %d needs %d digit names, got %d", n.Radix, n.Radix, len(n.Digits))
	}
	if n.End == "" {
		return fmt.Errorf("numeral end name is empty")
	}
	return nil
}

// DigitSource returns the definition of digit d in the given radix: a
// function of the remaining digits xs that selects the d-th of radix+1
// continuations and applies it to xs.
//
//	d=0, radix=2:  $ (0 xs (0 (0 xs r) (0 * (0 * r))))
func DigitSource(d, radix int) string {
	var b strings.Builder
	b.WriteString("$ (0 xs ")
	for i := 0; i < radix; i++ {
		if i == d {
			b.WriteString("(0 (0 xs r) ")
		} else {
			b.WriteString("(0 * ")
		}
	}
	b.WriteString("(0 * r)")
	b.WriteString(strings.Repeat(")", radix+1))
	return b.String()
}

// EndSource returns the definition of the empty digit string: it ignores
// the radix digit continuations and returns the last one.
//
//	radix=2:  $ (0 * (0 * (0 e e)))
func EndSource(radix int) string {
	return "$ " + strings.Repeat("(0 * ", radix) + "(0 e e)" + strings.Repeat(")", radix)
}
