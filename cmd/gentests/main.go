// Command gentests writes one reduction test per lambda term under
// cmd/gentests/generated. Each case holds the input term, its expected
// normal form and a test that reduces one and compares it with the other.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vic/ivm/pkg/lambda"
)

type TestCase struct {
	Name   string
	Input  string
	Output string
}

const testTemplate = `package gentests

import _ "embed"
import "testing"
import "github.com/vic/ivm/cmd/gentests/helper"

//go:embed input.lam
var input string

//go:embed output.lam
var output string

func Test_%s_Reduction(t *testing.T) {
	gentests.CheckLambdaReduction(t, "%s", input, output)
}
`

var tests = []TestCase{
	// Identity
	{"001_id", "x: x", "y: y"},
	{"002_id_id", "(x: x) (y: y)", "z: z"},

	// K Combinator (Erasure)
	{"003_k_1", "(x: y: x) a b", "a"},
	{"004_k_2", "(x: y: y) a b", "b"},
	{"005_erase_complex", "(x: y: x) a ((z: z) b)", "a"},

	// S Combinator (Sharing)
	{"006_s_1", "(x: y: z: x z (y z)) (a: b: a) (c: d: c) e", "e"},
	{"007_s_2", "(x: y: z: x z (y z)) (a: b: b) (c: d: c) e", "d: e"},

	// Church Numerals
	{"010_zero", "(f: x: x) f x", "x"},
	{"011_one", "(f: x: f x) f x", "f x"},
	{"012_two", "(f: x: f (f x)) f x", "f (f x)"},
	{"013_succ_0", "(n: f: x: f (n f x)) (f: x: x) f x", "f x"},
	{"014_succ_1", "(n: f: x: f (n f x)) (f: x: f x) f x", "f (f x)"},
	{"015_add_1_1", "(m: n: f: x: m f (n f x)) (f: x: f x) (f: x: f x) f x", "f (f x)"},
	{"016_mul_2_2", "(m: n: f: m (n f)) (f: x: f (f x)) (f: x: f (f x)) f x", "f (f (f (f x)))"},

	// Logic
	{"020_true", "(x: y: x) a b", "a"},
	{"021_false", "(x: y: y) a b", "b"},
	{"022_not_true", "(b: b (x: y: y) (x: y: x)) (x: y: x) a b", "b"},
	{"023_not_false", "(b: b (x: y: y) (x: y: x)) (x: y: y) a b", "a"},
	{"024_and_true_true", "(p: q: p q p) (x: y: x) (x: y: x) a b", "a"},
	{"025_and_true_false", "(p: q: p q p) (x: y: x) (x: y: y) a b", "b"},

	// Pairs
	{"030_pair_fst", "(p: p (x: y: x)) ((x: y: f: f x y) a b)", "a"},
	{"031_pair_snd", "(p: p (x: y: y)) ((x: y: f: f x y) a b)", "b"},

	// Let bindings
	{"040_let_simple", "let x = a; in x", "a"},
	{"041_let_id", "let i = x: x; in i a", "a"},
	{"042_let_nested", "let x = a; in let y = b; in x", "a"},
	{"043_let_shadow", "let x = a; in let x = b; in x", "b"},

	// Sharing
	{"050_deep_app", "(x: x x x) (y: y)", "y: y"},
	{"051_share_app", "(f: f (f x)) (y: y)", "x"},
	{"070_share_complex", "(x: x (x a)) (y: y)", "a"},
	{"071_erase_shared", "(x: y: y) ((z: z) a) b", "b"},
	{"072_self_app", "(x: x x) (y: y)", "y: y"},

	// Nested Lambdas
	{"080_nested_1", "x: y: z: x y z", "x: y: z: x y z"},
	{"081_nested_app", "(x: y: x y) a b", "a b"},

	// Free variables
	{"090_free_1", "x", "x"},
	{"091_free_app", "x y", "x y"},
	{"092_free_abs", "y: x y", "y: x y"},

	// Mixed
	{"100_mixed_1", "(x: x) ((y: y) a)", "a"},
}

func main() {
	baseDir := "cmd/gentests/generated"
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	written := 0
	for _, tc := range tests {
		if err := write(filepath.Join(baseDir, tc.Name), tc); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", tc.Name, err)
			continue
		}
		written++
	}

	fmt.Printf("Generated %d tests\n", written)
}

// write stores the printed form of both terms so the files read back as
// exactly the terms the parser produced.
func write(dir string, tc TestCase) error {
	inTerm, err := lambda.Parse(tc.Input)
	if err != nil {
		return fmt.Errorf("input: %w", err)
	}
	outTerm, err := lambda.Parse(tc.Output)
	if err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	files := map[string]string{
		"input.lam":         inTerm.String() + "\n",
		"output.lam":        outTerm.String() + "\n",
		"reduction_test.go": fmt.Sprintf(testTemplate, tc.Name, tc.Name),
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			return err
		}
	}
	return nil
}
