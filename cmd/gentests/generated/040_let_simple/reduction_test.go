package gentests

import _ "embed"
import "testing"
import "github.com/vic/ivm/cmd/gentests/helper"

//go:embed input.lam
var input string

//go:embed output.lam
var output string

func Test_040_let_simple_Reduction(t *testing.T) {
	gentests.CheckLambdaReduction(t, "040_let_simple", input, output)
}
