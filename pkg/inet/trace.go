package inet

import "sync/atomic"

// TraceEvent records one interaction.
type TraceEvent struct {
	Step uint64
	Rule RuleKind
	A    Ptr
	B    Ptr
}

// EnableTrace starts recording the first capacity interactions.
func (n *Net) EnableTrace(capacity int) {
	if capacity <= 0 {
		capacity = 1
	}
	n.traceBuf = make([]TraceEvent, capacity)
	n.traceCap = uint64(capacity)
	atomic.StoreUint64(&n.traceIdx, 0)
	atomic.StoreUint32(&n.traceOn, 1)
}

func (n *Net) DisableTrace() {
	atomic.StoreUint32(&n.traceOn, 0)
}

// TraceSnapshot returns the recorded events, oldest first.
func (n *Net) TraceSnapshot() []TraceEvent {
	if atomic.LoadUint32(&n.traceOn) == 0 {
		return nil
	}
	count := atomic.LoadUint64(&n.traceIdx)
	if count > n.traceCap {
		count = n.traceCap
	}
	res := make([]TraceEvent, count)
	copy(res, n.traceBuf[:count])
	return res
}

func (n *Net) recordTrace(rule RuleKind, a, b Ptr) {
	if atomic.LoadUint32(&n.traceOn) == 0 || n.traceCap == 0 {
		return
	}
	idx := atomic.AddUint64(&n.traceIdx, 1) - 1
	if idx >= n.traceCap {
		return
	}
	n.traceBuf[idx] = TraceEvent{Step: idx, Rule: rule, A: a, B: b}
}
