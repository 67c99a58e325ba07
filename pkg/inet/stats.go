package inet

// RuleKind classifies an interaction.
type RuleKind int

const (
	RuleAnnihilate RuleKind = iota
	RuleCommute
	RuleErase
	RuleCopy
	RuleDeref
	RuleOperate
	RuleVoid
	ruleCount
)

var ruleNames = [ruleCount]string{
	RuleAnnihilate: "annihilate",
	RuleCommute:    "commute",
	RuleErase:      "erase",
	RuleCopy:       "copy",
	RuleDeref:      "deref",
	RuleOperate:    "operate",
	RuleVoid:       "void",
}

func (r RuleKind) String() string {
	if r >= 0 && r < ruleCount {
		return ruleNames[r]
	}
	return "unknown"
}

// Rules lists every rule kind in counter order.
func Rules() []RuleKind {
	out := make([]RuleKind, ruleCount)
	for i := range out {
		out[i] = RuleKind(i)
	}
	return out
}

// Stats is a point-in-time view of a net's counters.
type Stats struct {
	Rewrites     uint64
	Dereferences uint64
	Rules        map[RuleKind]uint64
	Live         int
	Capacity     int
	Pending      int
}

// Stats snapshots the counters.
func (n *Net) Stats() Stats {
	s := Stats{
		Rewrites:     n.rwts,
		Dereferences: n.dref,
		Rules:        make(map[RuleKind]uint64, ruleCount),
		Live:         n.arena.Live(),
		Capacity:     n.arena.Cap(),
		Pending:      n.sched.Len(),
	}
	for i, c := range n.rules {
		s.Rules[RuleKind(i)] = c
	}
	return s
}

func (n *Net) count(rule RuleKind, a, b Ptr) {
	n.rwts++
	n.rules[rule]++
	n.recordTrace(rule, a, b)
}
