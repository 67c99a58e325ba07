package inet

// interact rewrites one active pair. Every rule reserves the slots it needs
// before touching the graph, so an error leaves the net unchanged.
func (n *Net) interact(book *Book, a, b Ptr) error {
	if a.Tag() > b.Tag() {
		a, b = b, a
	}
	switch a.Tag() {
	case Era:
		if b.IsNilary() {
			n.count(RuleVoid, a, b)
			return nil
		}
		n.spread(a, b)
		n.count(RuleErase, a, b)
		return nil
	case Ref:
		return n.deref(book, a, b)
	case Num:
		switch b.Tag() {
		case Num:
			n.count(RuleVoid, a, b)
		case Con, Dup:
			n.spread(a, b)
			n.count(RuleCopy, a, b)
		case Op2:
			n.operate2(a, b)
			n.count(RuleOperate, a, b)
		case Op1:
			n.operate1(a, b)
			n.count(RuleOperate, a, b)
		}
		return nil
	case Con, Dup, Op2, Op1:
		if n.annihilates(a, b) {
			n.annihilate(a, b)
			n.count(RuleAnnihilate, a, b)
			return nil
		}
		if err := n.commute(a, b); err != nil {
			return err
		}
		n.count(RuleCommute, a, b)
		return nil
	}
	return &PortError{Ptr: a}
}

func (n *Net) annihilates(a, b Ptr) bool {
	if a.Tag() != b.Tag() {
		return false
	}
	switch a.Tag() {
	case Con:
		return true
	case Dup:
		return n.node(a).Label == n.node(b).Label
	}
	return false
}

// annihilate joins the aux wires of two equal agents pairwise. Wires that
// loop back into the pair are followed until they leave it; closed loops
// vanish.
func (n *Net) annihilate(a, b Ptr) {
	ports := [4]Ptr{Aux(1, a.Addr()), Aux(2, a.Addr()), Aux(1, b.Addr()), Aux(2, b.Addr())}
	mate := [4]int{2, 3, 0, 1}
	var targets [4]Ptr
	for i, p := range ports {
		targets[i] = n.get(p)
	}
	n.arena.Free(a.Addr())
	n.arena.Free(b.Addr())

	var done [4]bool
	for i := range ports {
		if done[i] || indexOf(ports[:], targets[i]) >= 0 {
			continue
		}
		done[i] = true
		j := mate[i]
		for {
			done[j] = true
			k := indexOf(ports[:], targets[j])
			if k < 0 {
				link(n, targets[i], targets[j])
				break
			}
			done[k] = true
			j = mate[k]
		}
	}
}

// commute duplicates each agent across the other's aux wires.
func (n *Net) commute(a, b Ptr) error {
	pa, m := wired(a)
	pb, k := wired(b)
	locs, err := n.alloc(m + k)
	if err != nil {
		return err
	}
	na, nb := *n.node(a), *n.node(b)

	var ports, targets, ends [4]Ptr
	copy(ports[:], pa[:m])
	copy(ports[m:], pb[:k])
	for i := 0; i < m+k; i++ {
		targets[i] = n.get(ports[i])
	}

	// copies of a at locs[:k], one per aux wire of b; copies of b after.
	for j := 0; j < k; j++ {
		n.arena.nodes[locs[j]] = clone(na)
	}
	for i := 0; i < m; i++ {
		n.arena.nodes[locs[k+i]] = clone(nb)
	}
	for i := 0; i < m; i++ {
		for j := 0; j < k; j++ {
			link(n, Aux(pa[i].Port(), locs[j]), Aux(pb[j].Port(), locs[k+i]))
		}
	}
	for i := 0; i < m; i++ {
		ends[i] = Principal(b.Tag(), locs[k+i])
	}
	for j := 0; j < k; j++ {
		ends[m+j] = Principal(a.Tag(), locs[j])
	}

	n.arena.Free(a.Addr())
	n.arena.Free(b.Addr())
	n.rewire(ports[:m+k], targets[:m+k], ends[:m+k])
	return nil
}

// clone returns a fresh agent of the same kind and label. Op1 copies keep
// the embedded operand.
func clone(src Node) Node {
	nd := Node{Kind: src.Kind, Label: src.Label}
	if src.Kind == Op1 {
		nd.Port[1] = src.Port[1]
	}
	return nd
}

// spread sends a nilary agent down every aux wire of a binary agent and
// frees it. Erasers erase; numerals are copied.
func (n *Net) spread(a, b Ptr) {
	pb, k := wired(b)
	var targets, ends [2]Ptr
	for i := 0; i < k; i++ {
		targets[i] = n.get(pb[i])
		ends[i] = a
	}
	n.arena.Free(b.Addr())
	n.rewire(pb[:k], targets[:k], ends[:k])
}

// rewire connects ends[i] to whatever ports[i] was wired to. A wire
// running between two consumed ports joins the matching ends instead.
func (n *Net) rewire(ports, targets, ends []Ptr) {
	for i, t := range targets {
		if j := indexOf(ports, t); j >= 0 {
			if j > i {
				link(n, ends[i], ends[j])
			}
			continue
		}
		link(n, ends[i], t)
	}
}

func (n *Net) deref(book *Book, ref, other Ptr) error {
	r, err := book.instantiate(uint32(ref.Val()), n)
	if err != nil {
		return err
	}
	n.dref++
	link(n, r, other)
	n.count(RuleDeref, ref, other)
	return nil
}

// operate2 feeds the first operand to an operator. If the second operand
// is already a literal the result is produced at once; otherwise the agent
// turns into an Op1 facing its second operand.
func (n *Net) operate2(num, op Ptr) {
	nd := n.node(op)
	snd, out := nd.Port[1], nd.Port[2]
	if snd.IsNum() {
		res := Op(nd.Label).Apply(num.Int(), snd.Int())
		n.arena.Free(op.Addr())
		link(n, NumPtr(res), out)
		return
	}
	nd.Kind = Op1
	nd.Port[0] = NilPtr
	nd.Port[1] = num
	link(n, Principal(Op1, op.Addr()), snd)
}

func (n *Net) operate1(num, op Ptr) {
	nd := n.node(op)
	res := Op(nd.Label).Apply(nd.Port[1].Int(), num.Int())
	out := nd.Port[2]
	n.arena.Free(op.Addr())
	link(n, NumPtr(res), out)
}
