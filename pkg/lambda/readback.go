package lambda

import (
	"fmt"

	"github.com/vic/ivm/pkg/inet"
	"github.com/vic/ivm/pkg/lang"
)

// maxSteps bounds a readback walk, which loops on nets that encode no term.
const maxSteps = 1 << 20

// choice records which auxiliary port of a duplicator a walk came through,
// so the walk leaves the matching duplicator of the same color by the same
// side.
type choice struct {
	color uint32
	side  int
}

type reader struct {
	g     lang.Graph
	book  *inet.Book
	names map[uint32]string
	next  int
	steps int
}

// FromNet reads the net hanging from the root of g back as a lambda term.
// Binders are named x0, x1... in the order they are met. References and
// numerals left in the net read as free variables.
func FromNet(g lang.Graph, book *inet.Book) (Term, error) {
	r := &reader{g: g, book: book, names: make(map[uint32]string)}
	return r.read(g.Root(), nil)
}

func (r *reader) fail(p inet.Ptr, format string, args ...any) error {
	return fmt.Errorf("%w: at %s: %s", ErrNotATerm, p, fmt.Sprintf(format, args...))
}

// read returns the term whose output wire ends at p.
func (r *reader) read(p inet.Ptr, stack []choice) (Term, error) {
	if r.steps++; r.steps > maxSteps {
		return nil, r.fail(p, "walk too long")
	}
	switch p.Tag() {
	case inet.Era:
		return Var{Name: "*"}, nil
	case inet.Num:
		return Var{Name: fmt.Sprintf("%+d", p.Int())}, nil
	case inet.Ref:
		if r.book != nil {
			if name := r.book.Name(uint32(p.Val())); name != "" {
				return Var{Name: name}, nil
			}
		}
		return Var{Name: fmt.Sprintf("#%d", p.Val())}, nil
	case inet.Nil, inet.Root:
		return nil, r.fail(p, "dangling wire")
	}

	nd, ok := r.g.NodeAt(p.Addr())
	if !ok {
		return nil, r.fail(p, "free slot")
	}
	addr := p.Addr()
	switch {
	case nd.Kind == inet.Con && p.Port() == 0:
		name := fmt.Sprintf("x%d", r.next)
		r.next++
		outer, shadowed := r.names[addr]
		r.names[addr] = name
		body, err := r.read(nd.Port[2], stack)
		if shadowed {
			r.names[addr] = outer
		} else {
			delete(r.names, addr)
		}
		if err != nil {
			return nil, err
		}
		return Abs{Arg: name, Body: body}, nil

	case nd.Kind == inet.Con && p.Port() == 1:
		name, ok := r.names[addr]
		if !ok {
			return nil, r.fail(p, "variable out of scope")
		}
		return Var{Name: name}, nil

	case nd.Kind == inet.Con && p.Port() == 2:
		fun, err := r.read(nd.Port[0], stack)
		if err != nil {
			return nil, err
		}
		arg, err := r.read(nd.Port[1], stack)
		if err != nil {
			return nil, err
		}
		return App{Fun: fun, Arg: arg}, nil

	case nd.Kind == inet.Dup && p.Port() > 0:
		pushed := append(stack[:len(stack):len(stack)], choice{color: nd.Label, side: p.Port()})
		return r.read(nd.Port[0], pushed)

	case nd.Kind == inet.Dup:
		for i := len(stack) - 1; i >= 0; i-- {
			if stack[i].color != nd.Label {
				continue
			}
			popped := append(append([]choice(nil), stack[:i]...), stack[i+1:]...)
			return r.read(nd.Port[stack[i].side], popped)
		}
		return nil, r.fail(p, "duplicator of color %d with no path", nd.Label)
	}
	return nil, r.fail(p, "unexpected %s agent", nd.Kind)
}
