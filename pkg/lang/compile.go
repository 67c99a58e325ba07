package lang

import (
	"fmt"
	"sort"

	"github.com/vic/ivm/pkg/inet"
)

// Compiler turns parsed definitions into templates. References are interned
// in Book so definitions may mention names defined later.
type Compiler struct {
	Book     *inet.Book
	Numerals Numerals
}

func NewCompiler(book *inet.Book) *Compiler {
	return &Compiler{Book: book, Numerals: DefaultNumerals}
}

// Define parses src as a `$ ...` net, compiles it and stores it under name.
func (c *Compiler) Define(name, src string) error {
	def, err := ParseNet(src)
	if err != nil {
		return fmt.Errorf("@%s: %w", name, err)
	}
	def.Name = name
	tpl, err := c.Compile(def)
	if err != nil {
		return err
	}
	c.Book.Insert(name, tpl)
	return nil
}

// DefineBook compiles every `@name = ...` definition in src and returns
// the names it defined, in source order.
func (c *Compiler) DefineBook(src string) ([]string, error) {
	defs, err := ParseBook(src)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(defs))
	for _, def := range defs {
		tpl, err := c.Compile(def)
		if err != nil {
			return nil, err
		}
		c.Book.Insert(def.Name, tpl)
		names = append(names, def.Name)
	}
	return names, nil
}

// Compile builds the template for def.
func (c *Compiler) Compile(def *Definition) (*inet.Template, error) {
	if err := c.Numerals.Validate(); err != nil {
		return nil, err
	}
	b := &builder{
		c:     c,
		tpl:   inet.NewTemplate(),
		scope: make(map[string]inet.Ptr),
		uses:  make(map[string]int),
	}
	b.place(def.Root, inet.RootPtr)
	for _, r := range def.Redexes {
		switch {
		case isVar(r.A):
			b.place(r.A, b.build(r.B))
		case isVar(r.B):
			b.place(r.B, b.build(r.A))
		default:
			b.tpl.Link(b.build(r.A), b.build(r.B))
		}
	}
	if len(b.reused) > 0 {
		return nil, &CompileError{Def: def.Name, Names: sorted(b.reused), Err: ErrVariableReused}
	}
	var free []string
	for name, n := range b.uses {
		if n == 1 {
			free = append(free, name)
		}
	}
	if len(free) > 0 {
		sort.Strings(free)
		return nil, &CompileError{Def: def.Name, Names: free, Err: ErrFreeVariable}
	}
	if p, open := b.tpl.Unlinked(); open {
		return nil, &CompileError{Def: def.Name, Names: []string{p.String()}, Err: ErrUnlinkedPort}
	}
	return b.tpl, nil
}

type builder struct {
	c      *Compiler
	tpl    *inet.Template
	scope  map[string]inet.Ptr
	uses   map[string]int
	reused map[string]bool
}

// place wires the tree t to the port up.
func (b *builder) place(t Tree, up inet.Ptr) {
	v, ok := t.(Var)
	if !ok {
		b.tpl.Link(up, b.build(t))
		return
	}
	b.uses[v.Name]++
	switch b.uses[v.Name] {
	case 1:
		b.scope[v.Name] = up
	case 2:
		b.tpl.Link(up, b.scope[v.Name])
	default:
		if b.reused == nil {
			b.reused = make(map[string]bool)
		}
		b.reused[v.Name] = true
	}
}

// build allocates t and returns the pointer standing for its principal
// port.
func (b *builder) build(t Tree) inet.Ptr {
	switch t := t.(type) {
	case Era:
		return inet.EraPtr
	case Ref:
		return inet.RefPtr(b.c.Book.ID(t.Name))
	case Num:
		return inet.NumPtr(t.Value)
	case Nat:
		return b.nat(t.Value)
	case Ctr:
		kind := inet.Con
		if t.Label != 0 {
			kind = inet.Dup
		}
		k := b.tpl.Alloc(kind, t.Label)
		b.place(t.Left, inet.Aux(1, k))
		b.place(t.Right, inet.Aux(2, k))
		return inet.Principal(kind, k)
	case Op2:
		k := b.tpl.Alloc(inet.Op2, uint32(t.Op))
		b.place(t.Left, inet.Aux(1, k))
		b.place(t.Right, inet.Aux(2, k))
		return inet.Principal(inet.Op2, k)
	case Op1:
		k := b.tpl.Alloc(inet.Op1, uint32(t.Op))
		b.tpl.SetOperand(k, inet.NumPtr(t.Operand))
		b.place(t.Right, inet.Aux(2, k))
		return inet.Principal(inet.Op1, k)
	}
	panic(fmt.Sprintf("lang: cannot build %T", t))
}

// nat desugars v into applications of the digit definitions. The result is
// the output wire of the outermost application.
func (b *builder) nat(v uint64) inet.Ptr {
	num := b.c.Numerals
	if v == 0 {
		return inet.RefPtr(b.c.Book.ID(num.End))
	}
	radix := uint64(num.Radix)
	k := b.tpl.Alloc(inet.Con, 0)
	b.tpl.Link(inet.Principal(inet.Con, k), inet.RefPtr(b.c.Book.ID(num.Digits[v%radix])))
	b.tpl.Link(inet.Aux(1, k), b.nat(v/radix))
	return inet.Aux(2, k)
}

func isVar(t Tree) bool {
	_, ok := t.(Var)
	return ok
}

func sorted(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Define compiles src with the default numerals and stores it under name.
func Define(book *inet.Book, name, src string) error {
	return NewCompiler(book).Define(name, src)
}

// Load compiles a bare `$ ...` net straight into net, replacing its
// contents. References resolve against book.
func Load(net *inet.Net, book *inet.Book, src string) error {
	return NewCompiler(book).Load(net, src)
}

func (c *Compiler) Load(net *inet.Net, src string) error {
	def, err := ParseNet(src)
	if err != nil {
		return err
	}
	return c.LoadDefinition(net, def)
}

// LoadDefinition compiles def straight into net, replacing its contents.
func (c *Compiler) LoadDefinition(net *inet.Net, def *Definition) error {
	tpl, err := c.Compile(def)
	if err != nil {
		return err
	}
	net.Reset()
	r, err := net.Place(tpl)
	if err != nil {
		return err
	}
	net.Link(inet.RootPtr, r)
	return nil
}
