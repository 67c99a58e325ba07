package lang

import (
	"fmt"
	"strings"

	"github.com/vic/ivm/pkg/inet"
)

// Graph is a read-only view of a net: a live *inet.Net or an
// *inet.Template.
type Graph interface {
	Root() inet.Ptr
	Target(p inet.Ptr) (inet.Ptr, bool)
	NodeAt(addr uint32) (inet.Node, bool)
	Redexes() []inet.Redex
}

// Show prints g in the agent notation. Wire names are assigned in
// traversal order, so isomorphic nets print identically. book may be nil,
// in which case references print by id.
func Show(g Graph, book *inet.Book) string {
	s := &shower{g: g, book: book, names: make(map[inet.Ptr]string)}
	var b strings.Builder
	b.WriteString("$ ")
	s.tree(&b, g.Root(), inet.RootPtr)
	for _, r := range g.Redexes() {
		b.WriteString("\n& ")
		s.tree(&b, r.A, inet.NilPtr)
		b.WriteString(" ~ ")
		s.tree(&b, r.B, inet.NilPtr)
	}
	return b.String()
}

type shower struct {
	g     Graph
	book  *inet.Book
	names map[inet.Ptr]string
	next  int
}

// tree prints the pointer p stored at the slot from.
func (s *shower) tree(b *strings.Builder, p, from inet.Ptr) {
	switch p.Tag() {
	case inet.Nil:
		b.WriteString("?")
	case inet.Era:
		b.WriteString("*")
	case inet.Num:
		fmt.Fprintf(b, "%+d", p.Int())
	case inet.Ref:
		b.WriteString("@")
		if name := s.refName(uint32(p.Val())); name != "" {
			b.WriteString(name)
		} else {
			fmt.Fprintf(b, "#%d", p.Val())
		}
	case inet.Root, inet.Var1, inet.Var2:
		b.WriteString(s.wire(p, from))
	default:
		nd, ok := s.g.NodeAt(p.Addr())
		if !ok {
			b.WriteString("?")
			return
		}
		left := inet.Aux(1, p.Addr())
		right := inet.Aux(2, p.Addr())
		switch nd.Kind {
		case inet.Con, inet.Dup:
			fmt.Fprintf(b, "(%d ", nd.Label)
			s.tree(b, nd.Port[1], left)
			b.WriteString(" ")
			s.tree(b, nd.Port[2], right)
			b.WriteString(")")
		case inet.Op2:
			fmt.Fprintf(b, "{%s ", inet.Op(nd.Label))
			s.tree(b, nd.Port[1], left)
			b.WriteString(" ")
			s.tree(b, nd.Port[2], right)
			b.WriteString("}")
		case inet.Op1:
			fmt.Fprintf(b, "{:%s %+d ", inet.Op(nd.Label), nd.Port[1].Int())
			s.tree(b, nd.Port[2], right)
			b.WriteString("}")
		default:
			b.WriteString("?")
		}
	}
}

func (s *shower) refName(id uint32) string {
	if s.book == nil {
		return ""
	}
	return s.book.Name(id)
}

// wire names the wire between the slot from and the slot p. The first end
// visited picks the name and leaves it for the other.
func (s *shower) wire(p, from inet.Ptr) string {
	if name, ok := s.names[from]; ok {
		return name
	}
	name := wireName(s.next)
	s.next++
	s.names[p] = name
	return name
}

func wireName(i int) string {
	letter := string(rune('a' + i%26))
	if i < 26 {
		return letter
	}
	return fmt.Sprintf("%s%d", letter, i/26)
}
