package lambda

import (
	"fmt"
	"strconv"
	"unicode"

	"github.com/vic/ivm/pkg/lang"
)

type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIdent
	TokenColon
	TokenEqual
	TokenSemicolon
	TokenLParen
	TokenRParen
	TokenLet
	TokenIn
)

type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Col     int
}

func (t Token) String() string {
	if t.Type == TokenEOF {
		return "end of input"
	}
	return strconv.Quote(t.Literal)
}

// lexState is everything next() advances, so the parser can backtrack.
type lexState struct {
	pos, line, col int
	current        Token
}

type Parser struct {
	input string
	lexState
	err error
}

func NewParser(input string) *Parser {
	p := &Parser{input: input, lexState: lexState{line: 1, col: 1}}
	p.next()
	return p
}

func (p *Parser) next() {
	p.skipWhitespace()
	line, col := p.line, p.col
	if p.pos >= len(p.input) {
		p.current = Token{Type: TokenEOF, Line: line, Col: col}
		return
	}

	ch := p.input[p.pos]
	tok := Token{Line: line, Col: col}
	switch {
	case isLetter(ch):
		start := p.pos
		for p.pos < len(p.input) && isIdentChar(p.input[p.pos]) {
			p.advance()
		}
		tok.Literal = p.input[start:p.pos]
		switch tok.Literal {
		case "let":
			tok.Type = TokenLet
		case "in":
			tok.Type = TokenIn
		default:
			tok.Type = TokenIdent
		}
		p.current = tok
		return
	case ch == ':':
		tok.Type = TokenColon
	case ch == '=':
		tok.Type = TokenEqual
	case ch == ';':
		tok.Type = TokenSemicolon
	case ch == '(':
		tok.Type = TokenLParen
	case ch == ')':
		tok.Type = TokenRParen
	default:
		if p.err == nil {
			p.err = &lang.SyntaxError{Line: line, Col: col, Msg: fmt.Sprintf("unexpected character %q", ch)}
		}
		tok.Type = TokenEOF
	}
	tok.Literal = string(ch)
	p.advance()
	p.current = tok
}

func (p *Parser) advance() {
	if p.input[p.pos] == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
	p.pos++
}

func (p *Parser) skipWhitespace() {
	for p.pos < len(p.input) {
		ch := p.input[p.pos]
		switch {
		case unicode.IsSpace(rune(ch)):
			p.advance()
		case ch == '#':
			for p.pos < len(p.input) && p.input[p.pos] != '\n' {
				p.advance()
			}
		default:
			return
		}
	}
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '\''
}

func (p *Parser) errorf(format string, args ...any) error {
	if p.err != nil {
		return p.err
	}
	return &lang.SyntaxError{Line: p.current.Line, Col: p.current.Col, Msg: fmt.Sprintf(format, args...)}
}

// Parse parses a complete term; trailing input is an error.
func (p *Parser) Parse() (Term, error) {
	term, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if p.err != nil {
		return nil, p.err
	}
	if p.current.Type != TokenEOF {
		return nil, p.errorf("unexpected %s", p.current)
	}
	return term, nil
}

// abstraction reports whether the parser stands on `ident :` and, if so,
// consumes both tokens and returns the bound name.
func (p *Parser) abstraction() (string, bool) {
	if p.current.Type != TokenIdent {
		return "", false
	}
	save := p.lexState
	p.next()
	if p.current.Type == TokenColon {
		p.next()
		return save.current.Literal, true
	}
	p.lexState = save
	return "", false
}

// Term ::= Let | Ident ':' Term | App
func (p *Parser) parseTerm() (Term, error) {
	if p.current.Type == TokenLet {
		return p.parseLet()
	}
	if arg, ok := p.abstraction(); ok {
		body, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		return Abs{Arg: arg, Body: body}, nil
	}
	return p.parseApp()
}

// App ::= Atom Atom* [Ident ':' Term]
//
// An abstraction in argument position extends as far right as possible:
// `x y: z a` is `x (y: z a)`.
func (p *Parser) parseApp() (Term, error) {
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	for {
		switch p.current.Type {
		case TokenEOF, TokenRParen, TokenSemicolon, TokenIn, TokenEqual, TokenColon:
			return left, nil
		}
		if arg, ok := p.abstraction(); ok {
			body, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			return App{Fun: left, Arg: Abs{Arg: arg, Body: body}}, nil
		}
		if p.current.Type == TokenLet {
			right, err := p.parseLet()
			if err != nil {
				return nil, err
			}
			return App{Fun: left, Arg: right}, nil
		}
		right, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		left = App{Fun: left, Arg: right}
	}
}

func (p *Parser) parseAtom() (Term, error) {
	switch p.current.Type {
	case TokenIdent:
		name := p.current.Literal
		p.next()
		return Var{Name: name}, nil
	case TokenLParen:
		p.next()
		term, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if p.current.Type != TokenRParen {
			return nil, p.errorf("expected \")\", got %s", p.current)
		}
		p.next()
		return term, nil
	default:
		return nil, p.errorf("unexpected %s", p.current)
	}
}

// Let ::= 'let' Ident '=' Term (';' Ident '=' Term)* (';' | 'in') Term
func (p *Parser) parseLet() (Term, error) {
	p.next() // consume 'let'

	type binding struct {
		name string
		val  Term
	}
	var bindings []binding

	for {
		if p.current.Type != TokenIdent {
			return nil, p.errorf("expected identifier in let binding, got %s", p.current)
		}
		name := p.current.Literal
		p.next()

		if p.current.Type != TokenEqual {
			return nil, p.errorf("expected \"=\", got %s", p.current)
		}
		p.next()

		val, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, binding{name, val})

		if p.current.Type == TokenIn {
			p.next()
			break
		}
		if p.current.Type != TokenSemicolon {
			return nil, p.errorf("expected \";\" or \"in\", got %s", p.current)
		}
		p.next()
		if p.current.Type == TokenIn {
			p.next()
			break
		}
		// `let x = M; B` ends the bindings unless another `y =` follows.
		save := p.lexState
		if p.current.Type == TokenIdent {
			p.next()
			isBinding := p.current.Type == TokenEqual
			p.lexState = save
			if isBinding {
				continue
			}
		}
		break
	}

	body, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	term := body
	for i := len(bindings) - 1; i >= 0; i-- {
		b := bindings[i]
		term = Let{Name: b.name, Val: b.val, Body: term}
	}
	return term, nil
}

// Parse parses a lambda term from a string.
func Parse(input string) (Term, error) {
	return NewParser(input).Parse()
}
