package lambda

import (
	"fmt"

	"github.com/vic/ivm/pkg/inet"
)

// FreeVars lists the free names of t in order of first occurrence.
func FreeVars(t Term) []string {
	var out []string
	seen := make(map[string]bool)
	var walk func(t Term, bound map[string]int)
	walk = func(t Term, bound map[string]int) {
		switch t := t.(type) {
		case Var:
			if bound[t.Name] == 0 && !seen[t.Name] {
				seen[t.Name] = true
				out = append(out, t.Name)
			}
		case Abs:
			bound[t.Arg]++
			walk(t.Body, bound)
			bound[t.Arg]--
		case App:
			walk(t.Fun, bound)
			walk(t.Arg, bound)
		case Let:
			walk(t.Val, bound)
			bound[t.Name]++
			walk(t.Body, bound)
			bound[t.Name]--
		}
	}
	walk(t, make(map[string]int))
	return out
}

// Close abstracts t over its free names that book does not define, so the
// term can be translated. Open undoes it on the normal form.
func Close(t Term, book *inet.Book) (Term, []string) {
	var names []string
	for _, name := range FreeVars(t) {
		if book == nil || !book.Has(name) {
			names = append(names, name)
		}
	}
	for i := len(names) - 1; i >= 0; i-- {
		t = Abs{Arg: names[i], Body: t}
	}
	return t, names
}

// Open strips one abstraction per name from t and renames its variable
// back to that name.
func Open(t Term, names []string) (Term, error) {
	for _, name := range names {
		abs, ok := t.(Abs)
		if !ok {
			return nil, fmt.Errorf("%w: expected an abstraction for %s, got %s", ErrNotATerm, name, t)
		}
		t = rename(abs.Body, abs.Arg, name)
	}
	return t, nil
}

// rename replaces the free occurrences of from in t by to.
func rename(t Term, from, to string) Term {
	switch t := t.(type) {
	case Var:
		if t.Name == from {
			return Var{Name: to}
		}
		return t
	case Abs:
		if t.Arg == from {
			return t
		}
		return Abs{Arg: t.Arg, Body: rename(t.Body, from, to)}
	case App:
		return App{Fun: rename(t.Fun, from, to), Arg: rename(t.Arg, from, to)}
	case Let:
		body := t.Body
		if t.Name != from {
			body = rename(body, from, to)
		}
		return Let{Name: t.Name, Val: rename(t.Val, from, to), Body: body}
	}
	return t
}
