package lang

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrSyntax = errors.New("syntax error")
	// ErrFreeVariable is returned when a variable occurs only once.
	ErrFreeVariable = errors.New("free variable")
	// ErrVariableReused is returned when a variable occurs more than twice.
	ErrVariableReused = errors.New("variable used more than twice")
	ErrUnlinkedPort   = errors.New("unlinked port")
)

// SyntaxError locates a parse failure in the source text.
type SyntaxError struct {
	Line int
	Col  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %v: %s", e.Line, e.Col, ErrSyntax, e.Msg)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

// CompileError reports a linearity failure inside a definition.
type CompileError struct {
	Def   string
	Names []string
	Err   error
}

func (e *CompileError) Error() string {
	def := e.Def
	if def == "" {
		def = "$"
	} else {
		def = "@" + def
	}
	if len(e.Names) == 0 {
		return fmt.Sprintf("%s: %v", def, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", def, e.Err, strings.Join(e.Names, ", "))
}

func (e *CompileError) Unwrap() error { return e.Err }
