package inet

import "sort"

// Book maps definition names to compiled templates. References embed the
// numeric id of a name; ids are interned on first mention so definitions
// may refer to each other before they are compiled.
//
// A Book is not safe for concurrent mutation. Once populated it is only
// read and may be shared by nets on different goroutines.
type Book struct {
	names []string
	ids   map[string]uint32
	defs  []*Template
}

func NewBook() *Book {
	return &Book{ids: make(map[string]uint32)}
}

// ID returns the id of name, interning it if needed.
func (b *Book) ID(name string) uint32 {
	if id, ok := b.ids[name]; ok {
		return id
	}
	id := uint32(len(b.names))
	b.names = append(b.names, name)
	b.defs = append(b.defs, nil)
	b.ids[name] = id
	return id
}

// Name returns the name interned under id.
func (b *Book) Name(id uint32) string {
	if int(id) >= len(b.names) {
		return ""
	}
	return b.names[id]
}

// Insert stores t under name, replacing any earlier definition.
func (b *Book) Insert(name string, t *Template) {
	b.defs[b.ID(name)] = t
}

// Lookup returns the template defined under name.
func (b *Book) Lookup(name string) (*Template, bool) {
	id, ok := b.ids[name]
	if !ok || b.defs[id] == nil {
		return nil, false
	}
	return b.defs[id], true
}

// Has reports whether name has a definition.
func (b *Book) Has(name string) bool {
	_, ok := b.Lookup(name)
	return ok
}

// Names returns the defined names in sorted order.
func (b *Book) Names() []string {
	out := make([]string, 0, len(b.names))
	for id, name := range b.names {
		if b.defs[id] != nil {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Len returns the number of defined names.
func (b *Book) Len() int {
	n := 0
	for _, d := range b.defs {
		if d != nil {
			n++
		}
	}
	return n
}

// Undefined returns names that were referenced but never defined.
func (b *Book) Undefined() []string {
	var out []string
	for id, name := range b.names {
		if b.defs[id] == nil {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Instantiate places a fresh copy of the named definition into net and
// returns the pointer standing for its root.
func (b *Book) Instantiate(name string, net *Net) (Ptr, error) {
	id, ok := b.ids[name]
	if !ok {
		return NilPtr, &RefError{Name: name}
	}
	return b.instantiate(id, net)
}

func (b *Book) instantiate(id uint32, net *Net) (Ptr, error) {
	if int(id) >= len(b.defs) || b.defs[id] == nil {
		return NilPtr, &RefError{Name: b.Name(id)}
	}
	return net.Place(b.defs[id])
}
