package lambda

import "fmt"

// Term represents a lambda calculus term.
type Term interface {
	String() string
}

// Var represents a variable usage.
type Var struct {
	Name string
}

func (v Var) String() string {
	return v.Name
}

// Abs represents an abstraction (lambda).
type Abs struct {
	Arg  string
	Body Term
}

func (a Abs) String() string {
	return fmt.Sprintf("(%s: %s)", a.Arg, a.Body)
}

// App represents an application.
type App struct {
	Fun Term
	Arg Term
}

func (a App) String() string {
	return fmt.Sprintf("(%s %s)", a.Fun, a.Arg)
}

// Let represents a let binding (sugar for application).
// let x = Val; Body -> (x: Body) Val
type Let struct {
	Name string
	Val  Term
	Body Term
}

func (l Let) String() string {
	return fmt.Sprintf("let %s = %s; %s", l.Name, l.Val, l.Body)
}

// occurrences counts the free occurrences of name in t.
func occurrences(name string, t Term) int {
	switch t := t.(type) {
	case Var:
		if t.Name == name {
			return 1
		}
	case Abs:
		if t.Arg != name {
			return occurrences(name, t.Body)
		}
	case App:
		return occurrences(name, t.Fun) + occurrences(name, t.Arg)
	case Let:
		n := occurrences(name, t.Val)
		if t.Name != name {
			n += occurrences(name, t.Body)
		}
		return n
	}
	return 0
}
