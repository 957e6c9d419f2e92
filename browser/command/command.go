// Package command parses browser command strings such as
//
//	click("12")
//	fill('7', "hello world")
//	scroll(0, 300)
//
// One call per line; blank lines and lines starting with '#' are skipped.
package command

import (
	"fmt"
	"strconv"
	"strings"
)

type Call struct {
	Name string
	Args []Arg
}

type Arg struct {
	Value    string
	IsNumber bool
}

func (a Arg) String() string {
	if a.IsNumber {
		return a.Value
	}
	return strconv.Quote(a.Value)
}

func (c Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Name, strings.Join(args, ", "))
}

// Float returns argument i as a number.
func (c Call) Float(i int) (float64, error) {
	if i >= len(c.Args) {
		return 0, fmt.Errorf("%s: missing argument %d", c.Name, i+1)
	}
	f, err := strconv.ParseFloat(c.Args[i].Value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: argument %d is not a number: %q", c.Name, i+1, c.Args[i].Value)
	}
	return f, nil
}

// Text returns argument i as text.
func (c Call) Text(i int) (string, error) {
	if i >= len(c.Args) {
		return "", fmt.Errorf("%s: missing argument %d", c.Name, i+1)
	}
	return c.Args[i].Value, nil
}

type SyntaxError struct {
	Line int
	Col  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d, col %d: %s", e.Line, e.Col, e.Msg)
}

func Parse(src string) ([]Call, error) {
	calls := []Call{}
	for n, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		p := &parser{src: line, line: n + 1}
		call, err := p.call()
		if err != nil {
			return nil, err
		}
		calls = append(calls, call)
	}
	return calls, nil
}

type parser struct {
	src  string
	pos  int
	line int
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Line: p.line, Col: p.pos + 1, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t' || p.src[p.pos] == '\r') {
		p.pos++
	}
}

func (p *parser) call() (Call, error) {
	p.skipSpace()
	name := p.ident()
	if name == "" {
		return Call{}, p.errorf("expected function name")
	}
	p.skipSpace()
	if p.peek() != '(' {
		return Call{}, p.errorf("expected '(' after %s", name)
	}
	p.pos++
	args := []Arg{}
	p.skipSpace()
	if p.peek() == ')' {
		p.pos++
	} else {
		for {
			arg, err := p.arg()
			if err != nil {
				return Call{}, err
			}
			args = append(args, arg)
			p.skipSpace()
			switch p.peek() {
			case ',':
				p.pos++
				p.skipSpace()
				continue
			case ')':
				p.pos++
			default:
				return Call{}, p.errorf("expected ',' or ')'")
			}
			break
		}
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return Call{}, p.errorf("unexpected trailing input %q", p.src[p.pos:])
	}
	return Call{Name: name, Args: args}, nil
}

func isIdentByte(c byte, first bool) bool {
	switch {
	case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return !first
	}
	return false
}

func (p *parser) ident() string {
	start := p.pos
	for p.pos < len(p.src) && isIdentByte(p.src[p.pos], p.pos == start) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *parser) arg() (Arg, error) {
	switch c := p.peek(); {
	case c == '"' || c == '\'':
		s, err := p.quoted(c)
		return Arg{Value: s}, err
	case c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9'):
		return p.number()
	case isIdentByte(c, true):
		start := p.pos
		name := p.ident()
		p.skipSpace()
		if p.peek() == '=' {
			p.pos = start
			return Arg{}, p.errorf("keyword argument %s is not supported", name)
		}
		switch name {
		case "True", "true":
			return Arg{Value: "1", IsNumber: true}, nil
		case "False", "false":
			return Arg{Value: "0", IsNumber: true}, nil
		}
		p.pos = start
		return Arg{}, p.errorf("unexpected identifier %s", name)
	default:
		return Arg{}, p.errorf("expected argument")
	}
}

func (p *parser) number() (Arg, error) {
	start := p.pos
	if c := p.peek(); c == '-' || c == '+' {
		p.pos++
	}
	for p.pos < len(p.src) && (p.src[p.pos] == '.' || (p.src[p.pos] >= '0' && p.src[p.pos] <= '9')) {
		p.pos++
	}
	lit := p.src[start:p.pos]
	if _, err := strconv.ParseFloat(lit, 64); err != nil {
		p.pos = start
		return Arg{}, p.errorf("invalid number %q", lit)
	}
	return Arg{Value: lit, IsNumber: true}, nil
}

func (p *parser) quoted(quote byte) (string, error) {
	start := p.pos
	p.pos++
	var b strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch c {
		case quote:
			p.pos++
			return b.String(), nil
		case '\\':
			p.pos++
			if p.pos >= len(p.src) {
				break
			}
			switch e := p.src[p.pos]; e {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteByte(e)
			}
		default:
			b.WriteByte(c)
		}
		p.pos++
	}
	p.pos = start
	return "", p.errorf("unterminated string")
}
