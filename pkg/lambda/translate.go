package lambda

import (
	"errors"
	"fmt"

	"github.com/vic/ivm/pkg/inet"
	"github.com/vic/ivm/pkg/lang"
)

var (
	// ErrUnboundName is returned for a free name with no Book definition.
	ErrUnboundName = errors.New("unbound name")
	// ErrNotATerm is returned when a net does not read back as a lambda term.
	ErrNotATerm = errors.New("net is not a lambda term")
)

// FirstColor is the first duplicator color handed to shared binders. Lower
// colors are left to hand-written definitions.
const FirstColor = 64

// Translator turns lambda terms into nets. Every abstraction becomes a
// constructor (0 binder body); an application M N becomes the pair
// M ~ (0 N r) whose result is r. A binder used more than once is shared by a
// tree of duplicators of a color of its own. Free names resolve to Book
// definitions.
type Translator struct {
	Book *inet.Book
	// Color is the next duplicator color to hand out.
	Color uint32
}

func NewTranslator(book *inet.Book) *Translator {
	return &Translator{Book: book, Color: FirstColor}
}

// ToDefinition translates term with a fresh Translator.
func ToDefinition(term Term, book *inet.Book) (*lang.Definition, error) {
	return NewTranslator(book).Translate(term)
}

// Translate returns the `$ ...` net of term.
func (t *Translator) Translate(term Term) (*lang.Definition, error) {
	tr := &translation{t: t, env: make(map[string][]string)}
	root, err := tr.term(term)
	if err != nil {
		return nil, err
	}
	return &lang.Definition{Root: root, Redexes: tr.redexes}, nil
}

// Define translates term and compiles it into the Book under name.
func (t *Translator) Define(name string, term Term) error {
	def, err := t.Translate(term)
	if err != nil {
		return fmt.Errorf("@%s: %w", name, err)
	}
	def.Name = name
	tpl, err := lang.NewCompiler(t.Book).Compile(def)
	if err != nil {
		return err
	}
	t.Book.Insert(name, tpl)
	return nil
}

// Load translates term and places it into net as its whole content.
func (t *Translator) Load(net *inet.Net, term Term) error {
	def, err := t.Translate(term)
	if err != nil {
		return err
	}
	return lang.NewCompiler(t.Book).LoadDefinition(net, def)
}

type translation struct {
	t       *Translator
	env     map[string][]string // pending occurrence wires of each bound name
	redexes []lang.Pair
	wires   int
}

func (tr *translation) fresh() string {
	name := fmt.Sprintf("w%d", tr.wires)
	tr.wires++
	return name
}

func (tr *translation) term(term Term) (lang.Tree, error) {
	switch t := term.(type) {
	case Var:
		if stack, ok := tr.env[t.Name]; ok && len(stack) > 0 {
			w := stack[len(stack)-1]
			tr.env[t.Name] = stack[:len(stack)-1]
			return lang.Var{Name: w}, nil
		}
		if _, bound := tr.env[t.Name]; bound {
			return nil, fmt.Errorf("lambda: %q used more often than counted", t.Name)
		}
		if tr.t.Book != nil && !tr.t.Book.Has(t.Name) {
			return nil, fmt.Errorf("%w: %s", ErrUnboundName, t.Name)
		}
		return lang.Ref{Name: t.Name}, nil

	case Abs:
		binder, wires := tr.binder(occurrences(t.Arg, t.Body))
		outer, shadowed := tr.env[t.Arg]
		tr.env[t.Arg] = wires
		body, err := tr.term(t.Body)
		if shadowed {
			tr.env[t.Arg] = outer
		} else {
			delete(tr.env, t.Arg)
		}
		if err != nil {
			return nil, err
		}
		return lang.Ctr{Label: 0, Left: binder, Right: body}, nil

	case App:
		fun, err := tr.term(t.Fun)
		if err != nil {
			return nil, err
		}
		arg, err := tr.term(t.Arg)
		if err != nil {
			return nil, err
		}
		r := tr.fresh()
		tr.redexes = append(tr.redexes, lang.Pair{A: fun, B: lang.Ctr{Label: 0, Left: arg, Right: lang.Var{Name: r}}})
		return lang.Var{Name: r}, nil

	case Let:
		return tr.term(App{Fun: Abs{Arg: t.Name, Body: t.Body}, Arg: t.Val})
	}
	return nil, fmt.Errorf("lambda: unknown term %T", term)
}

// binder builds the tree hanging from the binding port of an abstraction
// whose variable occurs n times, and the wires its occurrences take. The
// wires are stacked so the first occurrence pops the leftmost leaf.
func (tr *translation) binder(n int) (lang.Tree, []string) {
	switch n {
	case 0:
		return lang.Era{}, nil
	case 1:
		w := tr.fresh()
		return lang.Var{Name: w}, []string{w}
	}
	color := tr.t.Color
	tr.t.Color++
	leaves := make([]string, n)
	for i := range leaves {
		leaves[i] = tr.fresh()
	}
	var tree lang.Tree = lang.Var{Name: leaves[n-1]}
	for i := n - 2; i >= 0; i-- {
		tree = lang.Ctr{Label: color, Left: lang.Var{Name: leaves[i]}, Right: tree}
	}
	stack := make([]string, n)
	for i, w := range leaves {
		stack[n-1-i] = w
	}
	return tree, stack
}
