package inet

// Redex is an active pair: two principal ends facing each other.
type Redex struct {
	A, B Ptr
}

// Scheduler holds the pending active pairs of a net. Pairs are popped in
// LIFO order; interaction nets are confluent so the order only affects
// memory usage, never the normal form.
type Scheduler struct {
	stack []Redex
}

func NewScheduler() *Scheduler {
	return &Scheduler{stack: make([]Redex, 0, 1024)}
}

func (s *Scheduler) Push(a, b Ptr) {
	s.stack = append(s.stack, Redex{a, b})
}

func (s *Scheduler) Pop() (Redex, bool) {
	n := len(s.stack)
	if n == 0 {
		return Redex{}, false
	}
	r := s.stack[n-1]
	s.stack = s.stack[:n-1]
	return r, true
}

func (s *Scheduler) Len() int { return len(s.stack) }

// Snapshot copies the pending pairs, oldest first.
func (s *Scheduler) Snapshot() []Redex {
	out := make([]Redex, len(s.stack))
	copy(out, s.stack)
	return out
}

func (s *Scheduler) Reset() { s.stack = s.stack[:0] }
