package lang

import (
	"fmt"
	"strings"

	"github.com/vic/ivm/pkg/inet"
)

// Tree is a term of the agent notation.
type Tree interface {
	String() string
}

// Var is one occurrence of a wire name.
type Var struct {
	Name string
}

func (v Var) String() string { return v.Name }

// Era is the eraser `*`.
type Era struct{}

func (Era) String() string { return "*" }

// Ctr is a binary agent: a constructor when Label is 0, a duplicator of
// color Label otherwise.
type Ctr struct {
	Label uint32
	Left  Tree
	Right Tree
}

func (c Ctr) String() string {
	return fmt.Sprintf("(%d %s %s)", c.Label, c.Left, c.Right)
}

// Ref names a Book definition.
type Ref struct {
	Name string
}

func (r Ref) String() string { return "@" + r.Name }

// Nat is an unsigned literal, desugared through the digit definitions.
type Nat struct {
	Value uint64
}

func (n Nat) String() string { return fmt.Sprintf("%d", n.Value) }

// Num is a native numeral.
type Num struct {
	Value int64
}

func (n Num) String() string { return fmt.Sprintf("%+d", n.Value) }

// Op2 is an operator agent. Its principal port receives the first operand,
// Left is the second operand and Right the result.
type Op2 struct {
	Op    inet.Op
	Left  Tree
	Right Tree
}

func (o Op2) String() string {
	return fmt.Sprintf("{%s %s %s}", o.Op, o.Left, o.Right)
}

// Op1 is an operator that already holds its first operand. Its principal
// port receives the second operand.
type Op1 struct {
	Op      inet.Op
	Operand int64
	Right   Tree
}

func (o Op1) String() string {
	return fmt.Sprintf("{:%s %+d %s}", o.Op, o.Operand, o.Right)
}

// Pair is an active pair written `& A ~ B`.
type Pair struct {
	A Tree
	B Tree
}

// Definition is a parsed net: a root tree and its pending pairs. Name is
// empty for a bare `$ ...` net.
type Definition struct {
	Name    string
	Root    Tree
	Redexes []Pair
}

func (d *Definition) String() string {
	var b strings.Builder
	if d.Name != "" {
		fmt.Fprintf(&b, "@%s = ", d.Name)
	}
	fmt.Fprintf(&b, "$ %s", d.Root)
	for _, r := range d.Redexes {
		fmt.Fprintf(&b, "\n  & %s ~ %s", r.A, r.B)
	}
	return b.String()
}
