package inet

// graph is the storage a wire can be written into: a live Net or a
// Template under construction.
type graph interface {
	get(p Ptr) Ptr
	set(p, v Ptr)
	redex(a, b Ptr)
}

// link joins two wire ends. Two principal ends become an active pair;
// otherwise each end that owns a slot records the other.
func link(g graph, a, b Ptr) {
	if a.IsPri() && b.IsPri() {
		if a.IsNode() {
			g.set(a, b)
		}
		if b.IsNode() {
			g.set(b, a)
		}
		g.redex(a, b)
		return
	}
	if a.HasSlot() {
		g.set(a, b)
	}
	if b.HasSlot() {
		g.set(b, a)
	}
}

// wired lists the auxiliary ports of an agent that carry wires. An Op1
// keeps its first operand embedded in aux 1.
func wired(p Ptr) (ports [2]Ptr, n int) {
	if p.Tag() == Op1 {
		ports[0] = Aux(2, p.Addr())
		return ports, 1
	}
	ports[0] = Aux(1, p.Addr())
	ports[1] = Aux(2, p.Addr())
	return ports, 2
}

func indexOf(ports []Ptr, p Ptr) int {
	for i, q := range ports {
		if q == p {
			return i
		}
	}
	return -1
}
