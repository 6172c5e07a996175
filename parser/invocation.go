package parser

import (
	"fmt"

	"github.com/okhsunrog/bisync-suffix-macro/ast"
	"github.com/okhsunrog/bisync-suffix-macro/token"
)

// MalformedInvocationError reports a suffix invocation whose argument shape
// is wrong: the suffix is not a string literal, the comma separator is
// missing, or the remainder is not a single valid expression. It aborts
// expansion of the offending call site only.
type MalformedInvocationError struct {
	Pos token.Position
	Msg string
}

func (e *MalformedInvocationError) Error() string {
	return fmt.Sprintf("%v: malformed suffix invocation: %v", e.Pos, e.Msg)
}

// ParseInvocation parses the argument sequence of a suffix macro call,
// which must be exactly: a string literal, a comma, and one expression.
// On any deviation it returns a *MalformedInvocationError identifying the
// offending token.
func ParseInvocation(filename, src string) (*ast.Invocation, error) {
	p := newParser(filename, src)

	malformed := func(pos token.Pos, format string, args ...any) (*ast.Invocation, error) {
		return nil, &MalformedInvocationError{
			Pos: p.file.Position(pos),
			Msg: fmt.Sprintf(format, args...),
		}
	}

	if len(p.errors) > 0 {
		first := p.errors[0]
		return nil, &MalformedInvocationError{Pos: first.Pos, Msg: first.Msg}
	}
	if p.tok != token.STRING {
		return malformed(p.pos, "suffix must be a string literal, found %s", p.tokenDesc())
	}
	suffix := &ast.BasicLit{ValuePos: p.pos, Kind: p.tok, Value: p.lit}
	p.next()

	if p.tok != token.COMMA {
		return malformed(p.pos, "expected \",\" after suffix, found %s", p.tokenDesc())
	}
	comma := p.pos
	p.next()

	if p.tok == token.EOF {
		return malformed(p.pos, "missing expression after \",\"")
	}
	x := p.parseExpr(token.LowestPrec)
	if len(p.errors) > 0 {
		first := p.errors[0]
		return nil, &MalformedInvocationError{Pos: first.Pos, Msg: first.Msg}
	}
	if p.tok != token.EOF {
		return malformed(p.pos, "unexpected %s after expression", p.tokenDesc())
	}

	inv := &ast.Invocation{Suffix: suffix, Comma: comma, X: x}
	if v, err := inv.SuffixValue(); err != nil {
		return malformed(suffix.ValuePos, "%v", err)
	} else if v == "" {
		return malformed(suffix.ValuePos, "suffix must not be empty")
	}
	return inv, nil
}
