package inet

// Op is an arithmetic opcode carried in an operator agent's label.
type Op uint32

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpAnd
	OpOr
	OpXor
	OpShl
	OpShr
	OpLtn
	OpLte
	OpEql
	OpGte
	OpGtn
	OpNeq
	opCount
)

var opSymbols = [opCount]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpMod: "%",
	OpAnd: "&",
	OpOr:  "|",
	OpXor: "^",
	OpShl: "<<",
	OpShr: ">>",
	OpLtn: "<",
	OpLte: "<=",
	OpEql: "==",
	OpGte: ">=",
	OpGtn: ">",
	OpNeq: "!=",
}

func (o Op) String() string {
	if o < opCount {
		return opSymbols[o]
	}
	return "?"
}

// Valid reports whether o is a known opcode.
func (o Op) Valid() bool { return o < opCount }

// ParseOp maps an operator symbol to its opcode.
func ParseOp(sym string) (Op, bool) {
	for i, s := range opSymbols {
		if s == sym {
			return Op(i), true
		}
	}
	return 0, false
}

// Apply computes a op b. Division and modulo by zero yield zero; shifts use
// the low six bits of b; comparisons yield 1 or 0.
func (o Op) Apply(a, b int64) int64 {
	switch o {
	case OpAdd:
		return a + b
	case OpSub:
		return a - b
	case OpMul:
		return a * b
	case OpDiv:
		if b == 0 {
			return 0
		}
		return a / b
	case OpMod:
		if b == 0 {
			return 0
		}
		return a % b
	case OpAnd:
		return a & b
	case OpOr:
		return a | b
	case OpXor:
		return a ^ b
	case OpShl:
		return a << uint(b&63)
	case OpShr:
		return a >> uint(b&63)
	case OpLtn:
		return boolInt(a < b)
	case OpLte:
		return boolInt(a <= b)
	case OpEql:
		return boolInt(a == b)
	case OpGte:
		return boolInt(a >= b)
	case OpGtn:
		return boolInt(a > b)
	case OpNeq:
		return boolInt(a != b)
	}
	return 0
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
