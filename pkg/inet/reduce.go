package inet

import (
	"context"
	"time"
)

// checkEvery is how many interactions run between context checks.
const checkEvery = 1 << 14

// Boot resets the net and hangs a reference to the named definition from
// the root.
func (n *Net) Boot(book *Book, name string) error {
	id, ok := book.ids[name]
	if !ok || book.defs[id] == nil {
		return &RefError{Name: name}
	}
	n.Reset()
	n.root = RefPtr(id)
	return nil
}

// Reduce rewrites pending active pairs until none remain. On error the
// failing pair stays pending and the net is otherwise consistent.
func (n *Net) Reduce(book *Book) error {
	return n.ReduceContext(context.Background(), book)
}

func (n *Net) ReduceContext(ctx context.Context, book *Book) (err error) {
	defer recoverPort(&err)
	for steps := 1; ; steps++ {
		r, ok := n.sched.Pop()
		if !ok {
			return nil
		}
		if ierr := n.interact(book, r.A, r.B); ierr != nil {
			n.sched.Push(r.A, r.B)
			return ierr
		}
		if steps%checkEvery == 0 {
			if cerr := ctx.Err(); cerr != nil {
				return cerr
			}
		}
	}
}

// Expand walks the tree hanging from the root and replaces every
// reference found in a tree position by its definition. Wires are not
// followed.
func (n *Net) Expand(book *Book) (err error) {
	defer recoverPort(&err)
	stack := []Ptr{RootPtr}
	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for {
			ptr := n.get(dir)
			if ptr.IsRef() {
				r, ierr := book.instantiate(uint32(ptr.Val()), n)
				if ierr != nil {
					return ierr
				}
				n.dref++
				n.count(RuleDeref, ptr, dir)
				link(n, dir, r)
				continue
			}
			if ptr.IsNode() {
				ports, k := wired(ptr)
				stack = append(stack, ports[:k]...)
			}
			break
		}
	}
	return nil
}

// Normal alternates Expand and Reduce until the root tree is free of
// references and no active pair remains.
func (n *Net) Normal(book *Book) error {
	return n.NormalContext(context.Background(), book)
}

func (n *Net) NormalContext(ctx context.Context, book *Book) error {
	start := time.Now()
	rwts := n.rwts
	for {
		if err := n.Expand(book); err != nil {
			return err
		}
		if n.sched.Len() == 0 {
			break
		}
		if err := n.ReduceContext(ctx, book); err != nil {
			return err
		}
	}
	n.log.Debug("normal form reached",
		"rewrites", n.rwts-rwts,
		"live", n.arena.Live(),
		"elapsed", time.Since(start))
	return nil
}
