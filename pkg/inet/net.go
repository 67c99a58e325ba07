package inet

import (
	"io"
	"log/slog"
	"math"
	"sync/atomic"
)

// Net is a live interaction net: an arena of agents, a root wire, the
// pending active pairs and the rewrite counters.
type Net struct {
	arena *Arena
	root  Ptr
	sched *Scheduler

	rwts  uint64
	dref  uint64
	rules [ruleCount]uint64

	locs []uint32
	log  *slog.Logger

	traceBuf []TraceEvent
	traceCap uint64
	traceIdx uint64
	traceOn  uint32
}

// New creates a net whose arena holds capacity agents.
func New(capacity int) *Net {
	return &Net{
		arena: NewArena(capacity),
		sched: NewScheduler(),
		log:   slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)})),
	}
}

// SetLogger routes driver diagnostics to l.
func (n *Net) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	n.log = l
}

// Reset discards every agent and pending pair and zeroes the counters.
func (n *Net) Reset() {
	n.arena.Reset()
	n.sched.Reset()
	n.root = NilPtr
	n.rwts = 0
	n.dref = 0
	n.rules = [ruleCount]uint64{}
	atomic.StoreUint64(&n.traceIdx, 0)
}

// Root returns the pointer stored at the net's root port.
func (n *Net) Root() Ptr { return n.root }

// Target returns the pointer stored at the port p addresses. It reports
// false for embedded agents, free slots and out-of-range addresses.
func (n *Net) Target(p Ptr) (Ptr, bool) {
	if p.Tag() == Root {
		return n.root, true
	}
	i := p.Port()
	if i < 0 {
		return NilPtr, false
	}
	nd := n.arena.Get(p.Addr())
	if nd == nil {
		return NilPtr, false
	}
	return nd.Port[i], true
}

// NodeAt returns a copy of the live agent at addr.
func (n *Net) NodeAt(addr uint32) (Node, bool) {
	nd := n.arena.Get(addr)
	if nd == nil {
		return Node{}, false
	}
	return *nd, true
}

// Redexes returns the pending active pairs.
func (n *Net) Redexes() []Redex { return n.sched.Snapshot() }

// Link joins two wire ends, queueing an active pair when both are principal.
func (n *Net) Link(a, b Ptr) { link(n, a, b) }

func (n *Net) Live() int            { return n.arena.Live() }
func (n *Net) Cap() int             { return n.arena.Cap() }
func (n *Net) Rewrites() uint64     { return n.rwts }
func (n *Net) Dereferences() uint64 { return n.dref }

func (n *Net) slot(p Ptr) *Ptr {
	if p.Tag() == Root {
		return &n.root
	}
	i := p.Port()
	if i < 0 {
		panic(&PortError{Ptr: p})
	}
	nd := n.arena.Get(p.Addr())
	if nd == nil {
		panic(&PortError{Ptr: p})
	}
	return &nd.Port[i]
}

func (n *Net) node(p Ptr) *Node {
	nd := n.arena.Get(p.Addr())
	if nd == nil {
		panic(&PortError{Ptr: p})
	}
	return nd
}

func (n *Net) get(p Ptr) Ptr  { return *n.slot(p) }
func (n *Net) set(p, v Ptr)   { *n.slot(p) = v }
func (n *Net) redex(a, b Ptr) { n.sched.Push(a, b) }

// alloc reserves count slots, all or nothing. The returned slice is
// scratch space reused by the next call.
func (n *Net) alloc(count int) ([]uint32, error) {
	locs, err := n.arena.allocN(n.locs[:0], count)
	n.locs = locs
	return locs, err
}

// Place copies a template into the arena, queues its active pairs and
// returns the pointer standing for the template's root port. The caller
// must link that pointer to the place the template hangs from.
func (n *Net) Place(t *Template) (Ptr, error) {
	locs, err := n.alloc(len(t.nodes))
	if err != nil {
		return NilPtr, err
	}
	for i, src := range t.nodes {
		dst := &n.arena.nodes[locs[i]]
		dst.Kind = src.Kind
		dst.Label = src.Label
		for k, p := range src.Port {
			dst.Port[k] = relocate(p, locs)
		}
	}
	for _, r := range t.redexes {
		n.sched.Push(relocate(r.A, locs), relocate(r.B, locs))
	}
	return relocate(t.root, locs), nil
}

func relocate(p Ptr, locs []uint32) Ptr {
	if p.Tag() == Root || !p.HasSlot() {
		return p
	}
	return NewPtr(p.Tag(), uint64(locs[p.Addr()]))
}
