package inet

// Template is a compiled net fragment stored in a Book. Addresses inside a
// template are indexes into its own node list; Place relocates them into a
// live arena. A port wired to the template's root holds RootPtr until the
// placed copy is linked to its parent.
type Template struct {
	nodes   []Node
	root    Ptr
	redexes []Redex
}

// NewTemplate returns an empty template.
func NewTemplate() *Template { return &Template{} }

// Alloc adds an agent and returns its template-local address.
func (t *Template) Alloc(kind Tag, label uint32) uint32 {
	t.nodes = append(t.nodes, Node{Kind: kind, Label: label})
	return uint32(len(t.nodes) - 1)
}

// Link joins two wire ends inside the template. Linking RootPtr sets the
// template's root.
func (t *Template) Link(a, b Ptr) { link(t, a, b) }

func (t *Template) Len() int         { return len(t.nodes) }
func (t *Template) Root() Ptr        { return t.root }
func (t *Template) Redexes() []Redex { return append([]Redex(nil), t.redexes...) }

// Target returns the pointer stored at the port p addresses.
func (t *Template) Target(p Ptr) (Ptr, bool) {
	if p.Tag() == Root {
		return t.root, true
	}
	i := p.Port()
	if i < 0 || int(p.Addr()) >= len(t.nodes) {
		return NilPtr, false
	}
	return t.nodes[p.Addr()].Port[i], true
}

// NodeAt returns the agent at a template-local address.
func (t *Template) NodeAt(addr uint32) (Node, bool) {
	if int(addr) >= len(t.nodes) {
		return Node{}, false
	}
	return t.nodes[addr], true
}

// Unlinked returns the first port that was never wired, if any.
func (t *Template) Unlinked() (Ptr, bool) {
	if t.root.IsNil() {
		return RootPtr, true
	}
	for i, nd := range t.nodes {
		addr := uint32(i)
		if nd.Port[0].IsNil() {
			return Principal(nd.Kind, addr), true
		}
		if nd.Kind != Op1 && nd.Port[1].IsNil() {
			return Aux(1, addr), true
		}
		if nd.Port[2].IsNil() {
			return Aux(2, addr), true
		}
	}
	return NilPtr, false
}

func (t *Template) slot(p Ptr) *Ptr {
	if p.Tag() == Root {
		return &t.root
	}
	i := p.Port()
	if i < 0 || int(p.Addr()) >= len(t.nodes) {
		panic(&PortError{Ptr: p})
	}
	return &t.nodes[p.Addr()].Port[i]
}

func (t *Template) get(p Ptr) Ptr  { return *t.slot(p) }
func (t *Template) set(p, v Ptr)   { *t.slot(p) = v }
func (t *Template) redex(a, b Ptr) { t.redexes = append(t.redexes, Redex{a, b}) }

// SetOperand stores the embedded first operand of an Op1 agent.
func (t *Template) SetOperand(addr uint32, n Ptr) {
	t.nodes[addr].Port[1] = n
}
