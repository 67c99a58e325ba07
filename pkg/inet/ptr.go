package inet

import "fmt"

// Tag identifies what sits at the other end of a wire.
type Tag uint8

const (
	Nil  Tag = iota // empty slot
	Root            // the net's root port
	Var1            // auxiliary port 1 of the addressed agent
	Var2            // auxiliary port 2 of the addressed agent
	Era             // eraser (embedded)
	Ref             // reference to a Book definition (embedded id)
	Num             // integer numeral (embedded value)
	Con             // principal port of a constructor
	Dup             // principal port of a duplicator
	Op2             // principal port of an operator waiting for its first operand
	Op1             // principal port of an operator holding its first operand
)

func (t Tag) String() string {
	switch t {
	case Nil:
		return "Nil"
	case Root:
		return "Root"
	case Var1:
		return "Var1"
	case Var2:
		return "Var2"
	case Era:
		return "Era"
	case Ref:
		return "Ref"
	case Num:
		return "Num"
	case Con:
		return "Con"
	case Dup:
		return "Dup"
	case Op2:
		return "Op2"
	case Op1:
		return "Op1"
	default:
		return "Unknown"
	}
}

const (
	tagBits = 4
	tagMask = 1<<tagBits - 1
)

// Ptr is a tagged wire end: a 4-bit Tag plus a 60-bit payload holding
// either an arena address or an embedded literal.
type Ptr uint64

const (
	NilPtr  = Ptr(Nil)
	RootPtr = Ptr(Root)
	EraPtr  = Ptr(Era)
)

// NewPtr builds a pointer from a tag and a payload.
func NewPtr(tag Tag, val uint64) Ptr {
	return Ptr(val<<tagBits | uint64(tag))
}

// NumPtr embeds a signed numeral. Values wrap to 60 bits.
func NumPtr(n int64) Ptr {
	return Ptr(uint64(n)<<tagBits | uint64(Num))
}

// RefPtr embeds a reference to the Book definition with the given id.
func RefPtr(id uint32) Ptr {
	return NewPtr(Ref, uint64(id))
}

// Principal returns the pointer to the principal port of the agent at addr.
func Principal(kind Tag, addr uint32) Ptr {
	return NewPtr(kind, uint64(addr))
}

// Aux returns the pointer to auxiliary port i (1 or 2) of the agent at addr.
func Aux(i int, addr uint32) Ptr {
	if i == 1 {
		return NewPtr(Var1, uint64(addr))
	}
	return NewPtr(Var2, uint64(addr))
}

func (p Ptr) Tag() Tag      { return Tag(p & tagMask) }
func (p Ptr) Val() uint64   { return uint64(p) >> tagBits }
func (p Ptr) Int() int64    { return int64(p) >> tagBits }
func (p Ptr) Addr() uint32  { return uint32(p.Val()) }
func (p Ptr) IsNil() bool   { return p.Tag() == Nil }
func (p Ptr) IsEra() bool   { return p.Tag() == Era }
func (p Ptr) IsRef() bool   { return p.Tag() == Ref }
func (p Ptr) IsNum() bool   { return p.Tag() == Num }
func (p Ptr) IsRoot() bool  { return p.Tag() == Root }

// IsVar reports whether p addresses an auxiliary port or the root port.
func (p Ptr) IsVar() bool {
	t := p.Tag()
	return t == Root || t == Var1 || t == Var2
}

// IsNode reports whether p addresses the principal port of an arena agent.
func (p Ptr) IsNode() bool {
	t := p.Tag()
	return t >= Con && t <= Op1
}

// IsNilary reports whether p embeds an agent without auxiliary ports.
func (p Ptr) IsNilary() bool {
	t := p.Tag()
	return t == Era || t == Ref || t == Num
}

// IsPri reports whether p stands for a principal port, either of an arena
// agent or of an embedded nilary agent. Two such ends form an active pair.
func (p Ptr) IsPri() bool {
	return p.IsNode() || p.IsNilary()
}

// HasSlot reports whether p names a storage location in a net.
func (p Ptr) HasSlot() bool {
	return p.IsVar() || p.IsNode()
}

// Port returns the port index addressed by p: 0 for principal ports,
// 1 and 2 for auxiliary ports. Root and embedded agents return -1.
func (p Ptr) Port() int {
	switch p.Tag() {
	case Var1:
		return 1
	case Var2:
		return 2
	case Con, Dup, Op2, Op1:
		return 0
	default:
		return -1
	}
}

func (p Ptr) String() string {
	switch p.Tag() {
	case Nil:
		return "nil"
	case Root:
		return "root"
	case Era:
		return "*"
	case Num:
		return fmt.Sprintf("%+d", p.Int())
	case Ref:
		return fmt.Sprintf("@#%d", p.Val())
	default:
		return fmt.Sprintf("%s:%d", p.Tag(), p.Val())
	}
}
