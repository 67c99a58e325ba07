package lang

import (
	"fmt"
	"strconv"

	"github.com/vic/ivm/pkg/inet"
)

type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIdent
	TokenRef
	TokenNat
	TokenSigned
	TokenOp
	TokenEqual
	TokenDollar
	TokenAmp
	TokenTilde
	TokenStar
	TokenColon
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
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

// Parser reads the agent notation.
type Parser struct {
	input   string
	pos     int
	line    int
	col     int
	current Token
	err     error
}

func NewParser(input string) *Parser {
	p := &Parser{input: input, line: 1, col: 1}
	p.next()
	return p
}

// ParseBook parses a sequence of `@name = $ ...` definitions.
func ParseBook(input string) ([]*Definition, error) {
	return NewParser(input).ParseBook()
}

// ParseNet parses a single `$ ...` net.
func ParseNet(input string) (*Definition, error) {
	p := NewParser(input)
	def, err := p.ParseNet()
	if err != nil {
		return nil, err
	}
	if p.current.Type != TokenEOF {
		return nil, p.errorf("unexpected %s after net", p.current)
	}
	return def, nil
}

func (p *Parser) ParseBook() ([]*Definition, error) {
	var defs []*Definition
	for p.current.Type != TokenEOF {
		if p.err != nil {
			return nil, p.err
		}
		if p.current.Type != TokenRef {
			return nil, p.errorf("expected @name, got %s", p.current)
		}
		name := p.current.Literal
		p.next()
		if err := p.expect(TokenEqual); err != nil {
			return nil, err
		}
		def, err := p.ParseNet()
		if err != nil {
			return nil, err
		}
		def.Name = name
		defs = append(defs, def)
	}
	return defs, p.err
}

func (p *Parser) ParseNet() (*Definition, error) {
	if err := p.expect(TokenDollar); err != nil {
		return nil, err
	}
	root, err := p.parseTree()
	if err != nil {
		return nil, err
	}
	def := &Definition{Root: root}
	for p.current.Type == TokenAmp {
		amp := p.current
		p.next()
		a, err := p.parseTree()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenTilde); err != nil {
			return nil, err
		}
		b, err := p.parseTree()
		if err != nil {
			return nil, err
		}
		_, av := a.(Var)
		_, bv := b.(Var)
		if av && bv {
			return nil, &SyntaxError{Line: amp.Line, Col: amp.Col, Msg: fmt.Sprintf("active pair between two variables %s ~ %s", a, b)}
		}
		def.Redexes = append(def.Redexes, Pair{A: a, B: b})
	}
	return def, p.err
}

func (p *Parser) parseTree() (Tree, error) {
	if p.err != nil {
		return nil, p.err
	}
	tok := p.current
	switch tok.Type {
	case TokenIdent:
		p.next()
		return Var{Name: tok.Literal}, nil
	case TokenStar:
		p.next()
		return Era{}, nil
	case TokenRef:
		p.next()
		return Ref{Name: tok.Literal}, nil
	case TokenNat:
		v, err := strconv.ParseUint(tok.Literal, 10, 64)
		if err != nil {
			return nil, p.errorf("invalid numeral %s", tok)
		}
		p.next()
		return Nat{Value: v}, nil
	case TokenSigned:
		v, err := p.signed()
		if err != nil {
			return nil, err
		}
		return Num{Value: v}, nil
	case TokenLParen:
		p.next()
		if p.current.Type != TokenNat {
			return nil, p.errorf("expected agent label, got %s", p.current)
		}
		label, err := strconv.ParseUint(p.current.Literal, 10, 32)
		if err != nil {
			return nil, p.errorf("invalid agent label %s", p.current)
		}
		p.next()
		left, err := p.parseTree()
		if err != nil {
			return nil, err
		}
		right, err := p.parseTree()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return Ctr{Label: uint32(label), Left: left, Right: right}, nil
	case TokenLBrace:
		p.next()
		return p.parseOperator()
	}
	return nil, p.errorf("unexpected %s", tok)
}

func (p *Parser) parseOperator() (Tree, error) {
	flipped := p.current.Type == TokenColon
	if flipped {
		p.next()
	}
	op, err := p.operator()
	if err != nil {
		return nil, err
	}
	if flipped {
		var v int64
		switch p.current.Type {
		case TokenSigned:
			v, err = p.signed()
		case TokenNat:
			var u uint64
			u, err = strconv.ParseUint(p.current.Literal, 10, 63)
			v = int64(u)
			if err != nil {
				err = p.errorf("invalid operand %s", p.current)
			}
			p.next()
		default:
			err = p.errorf("expected numeric operand, got %s", p.current)
		}
		if err != nil {
			return nil, err
		}
		right, err := p.parseTree()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenRBrace); err != nil {
			return nil, err
		}
		return Op1{Op: op, Operand: v, Right: right}, nil
	}
	left, err := p.parseTree()
	if err != nil {
		return nil, err
	}
	right, err := p.parseTree()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenRBrace); err != nil {
		return nil, err
	}
	return Op2{Op: op, Left: left, Right: right}, nil
}

// operator accepts `*` and `&`, which the lexer reports as eraser and
// pair separator, in operator position.
func (p *Parser) operator() (inet.Op, error) {
	switch p.current.Type {
	case TokenOp, TokenStar, TokenAmp:
		op, ok := inet.ParseOp(p.current.Literal)
		if !ok {
			return 0, p.errorf("unknown operator %s", p.current)
		}
		p.next()
		return op, nil
	}
	return 0, p.errorf("expected operator, got %s", p.current)
}

func (p *Parser) signed() (int64, error) {
	v, err := strconv.ParseInt(p.current.Literal, 10, 64)
	if err != nil {
		return 0, p.errorf("invalid numeral %s", p.current)
	}
	p.next()
	return v, nil
}

func (p *Parser) expect(t TokenType) error {
	if p.err != nil {
		return p.err
	}
	if p.current.Type != t {
		return p.errorf("expected %s, got %s", tokenNames[t], p.current)
	}
	p.next()
	return nil
}

func (p *Parser) errorf(format string, args ...any) error {
	if p.err != nil {
		return p.err
	}
	return &SyntaxError{Line: p.current.Line, Col: p.current.Col, Msg: fmt.Sprintf(format, args...)}
}

var punctuation = map[byte]TokenType{
	'$': TokenDollar, '&': TokenAmp, '~': TokenTilde, '*': TokenStar,
	':': TokenColon, '(': TokenLParen, ')': TokenRParen, '{': TokenLBrace, '}': TokenRBrace,
}

var tokenNames = map[TokenType]string{
	TokenEOF:    "end of input",
	TokenEqual:  `"="`,
	TokenDollar: `"$"`,
	TokenTilde:  `"~"`,
	TokenRParen: `")"`,
	TokenRBrace: `"}"`,
}

func (p *Parser) next() {
	p.skipSpace()
	line, col := p.line, p.col
	if p.pos >= len(p.input) {
		p.current = Token{Type: TokenEOF, Line: line, Col: col}
		return
	}
	start := p.pos
	ch := p.input[p.pos]
	typ := TokenOp
	switch {
	case isIdentStart(ch):
		p.advanceWhile(isIdentChar)
		typ = TokenIdent
	case isDigit(ch):
		p.advanceWhile(isDigit)
		typ = TokenNat
	case ch == '@':
		p.advance(1)
		start = p.pos
		p.advanceWhile(isRefChar)
		if p.pos == start {
			p.err = &SyntaxError{Line: line, Col: col, Msg: "empty reference name"}
		}
		typ = TokenRef
	case (ch == '+' || ch == '-') && p.pos+1 < len(p.input) && isDigit(p.input[p.pos+1]):
		p.advance(1)
		p.advanceWhile(isDigit)
		typ = TokenSigned
	case ch == '<' || ch == '>':
		if p.peek(1) == ch || p.peek(1) == '=' {
			p.advance(2)
		} else {
			p.advance(1)
		}
	case ch == '=':
		if p.peek(1) == '=' {
			p.advance(2)
		} else {
			p.advance(1)
			typ = TokenEqual
		}
	case ch == '!':
		if p.peek(1) != '=' {
			p.err = &SyntaxError{Line: line, Col: col, Msg: `unexpected "!"`}
		}
		p.advance(2)
	case ch == '+' || ch == '-' || ch == '/' || ch == '%' || ch == '|' || ch == '^':
		p.advance(1)
	default:
		t, ok := punctuation[ch]
		if !ok {
			p.err = &SyntaxError{Line: line, Col: col, Msg: fmt.Sprintf("unexpected character %q", ch)}
		}
		p.advance(1)
		typ = t
	}
	end := p.pos
	if end > len(p.input) {
		end = len(p.input)
	}
	p.current = Token{Type: typ, Literal: p.input[start:end], Line: line, Col: col}
}

func (p *Parser) skipSpace() {
	for p.pos < len(p.input) {
		ch := p.input[p.pos]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			p.advance(1)
		case ch == '/' && p.peek(1) == '/':
			for p.pos < len(p.input) && p.input[p.pos] != '\n' {
				p.advance(1)
			}
		default:
			return
		}
	}
}

func (p *Parser) peek(off int) byte {
	if p.pos+off < len(p.input) {
		return p.input[p.pos+off]
	}
	return 0
}

func (p *Parser) advance(n int) {
	for i := 0; i < n && p.pos < len(p.input); i++ {
		if p.input[p.pos] == '\n' {
			p.line++
			p.col = 1
		} else {
			p.col++
		}
		p.pos++
	}
}

func (p *Parser) advanceWhile(f func(byte) bool) {
	for p.pos < len(p.input) && f(p.input[p.pos]) {
		p.advance(1)
	}
}

func isDigit(ch byte) bool { return '0' <= ch && ch <= '9' }

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}

func isIdentStart(ch byte) bool { return isLetter(ch) || ch == '_' }

func isIdentChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_' || ch == '.' || ch == '\''
}

func isRefChar(ch byte) bool {
	return isIdentChar(ch) || ch == '#'
}
