package inet

import "fmt"

// MaxCapacity is the largest arena an address payload can index.
const MaxCapacity = 1<<32 - 1

// Node is an arena slot. A free slot has Kind Nil.
type Node struct {
	Kind  Tag    // Con, Dup, Op2 or Op1
	Label uint32 // duplicator color or operator code
	Port  [3]Ptr // principal, aux 1, aux 2
}

// Arena is a fixed-capacity array of agent slots with a free-list.
type Arena struct {
	nodes []Node
	free  []uint32
	next  uint32
	live  int
}

// NewArena pre-allocates capacity slots.
func NewArena(capacity int) *Arena {
	if capacity <= 0 || capacity > MaxCapacity {
		panic(fmt.Sprintf("inet: invalid arena capacity %d", capacity))
	}
	return &Arena{nodes: make([]Node, capacity)}
}

// Alloc returns the address of a free slot.
func (a *Arena) Alloc() (uint32, error) {
	if n := len(a.free); n > 0 {
		addr := a.free[n-1]
		a.free = a.free[:n-1]
		a.live++
		return addr, nil
	}
	if int(a.next) >= len(a.nodes) {
		return 0, fmt.Errorf("%w: %d slots in use", ErrOutOfMemory, a.live)
	}
	addr := a.next
	a.next++
	a.live++
	return addr, nil
}

// allocN allocates n slots into buf, all or nothing.
func (a *Arena) allocN(buf []uint32, n int) ([]uint32, error) {
	if avail := len(a.free) + len(a.nodes) - int(a.next); avail < n {
		return buf, fmt.Errorf("%w: need %d slots, %d available", ErrOutOfMemory, n, avail)
	}
	for i := 0; i < n; i++ {
		addr, _ := a.Alloc()
		buf = append(buf, addr)
	}
	return buf, nil
}

// Free returns a slot to the free-list. No live pointer may target it.
func (a *Arena) Free(addr uint32) {
	a.nodes[addr] = Node{}
	a.free = append(a.free, addr)
	a.live--
}

// Get returns the live slot at addr or nil.
func (a *Arena) Get(addr uint32) *Node {
	if int(addr) >= len(a.nodes) {
		return nil
	}
	nd := &a.nodes[addr]
	if nd.Kind == Nil {
		return nil
	}
	return nd
}

// Reset frees every slot.
func (a *Arena) Reset() {
	clear(a.nodes[:a.next])
	a.free = a.free[:0]
	a.next = 0
	a.live = 0
}

func (a *Arena) Cap() int  { return len(a.nodes) }
func (a *Arena) Live() int { return a.live }
