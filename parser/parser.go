// Package parser turns source text of the Rust-style expression dialect
// into an ast tree. It also implements the strict two-argument shape of a
// suffix macro invocation.
package parser

import (
	"fmt"

	"github.com/okhsunrog/bisync-suffix-macro/ast"
	"github.com/okhsunrog/bisync-suffix-macro/scanner"
	"github.com/okhsunrog/bisync-suffix-macro/token"
)

// SyntaxError is a positioned expression syntax error.
type SyntaxError struct {
	Pos token.Position
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%v: %v", e.Pos, e.Msg)
}

// ErrorList is a list of syntax errors, in source order.
type ErrorList []*SyntaxError

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", l[0], len(l)-1)
}

// Err returns l as an error, or nil if the list is empty.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

type parser struct {
	file    *token.File
	scanner scanner.Scanner
	errors  ErrorList

	pos token.Pos
	tok token.Token
	lit string
}

func newParser(filename, src string) *parser {
	p := &parser{file: token.NewFile(filename, len(src))}
	p.scanner.Init(p.file, src, func(pos token.Position, msg string) {
		p.errors = append(p.errors, &SyntaxError{Pos: pos, Msg: msg})
	})
	p.next()
	return p
}

func (p *parser) next() {
	p.pos, p.tok, p.lit = p.scanner.Scan()
}

func (p *parser) errorf(pos token.Pos, format string, args ...any) {
	p.errors = append(p.errors, &SyntaxError{
		Pos: p.file.Position(pos),
		Msg: fmt.Sprintf(format, args...),
	})
}

func (p *parser) expect(tok token.Token) token.Pos {
	pos := p.pos
	if p.tok != tok {
		p.errorf(pos, "expected %q, found %s", tok.String(), p.tokenDesc())
	}
	p.next()
	return pos
}

func (p *parser) tokenDesc() string {
	if p.lit != "" {
		return fmt.Sprintf("%q", p.lit)
	}
	return fmt.Sprintf("%q", p.tok.String())
}

// ParseExpr parses src as a single complete expression. Trailing tokens
// after the expression are an error.
func ParseExpr(filename, src string) (ast.Expr, error) {
	p := newParser(filename, src)
	x := p.parseExpr(token.LowestPrec)
	if p.tok != token.EOF && len(p.errors) == 0 {
		p.errorf(p.pos, "unexpected %s after expression", p.tokenDesc())
	}
	if err := p.errors.Err(); err != nil {
		return nil, err
	}
	return x, nil
}

// badExpr is used as a placeholder after a syntax error so parsing can
// return a tree even on bad input; callers must check the error first.
func (p *parser) badExpr(pos token.Pos) ast.Expr {
	return &ast.Ident{NamePos: pos, Name: "_"}
}

func (p *parser) parseExpr(minPrec int) ast.Expr {
	x := p.parseUnary()
	for {
		prec := p.tok.Precedence()
		if prec == token.LowestPrec || prec <= minPrec {
			return x
		}
		op, opPos := p.tok, p.pos
		p.next()
		y := p.parseExpr(prec)
		x = &ast.BinaryExpr{X: x, OpPos: opPos, Op: op, Y: y}
	}
}

func (p *parser) parseUnary() ast.Expr {
	switch p.tok {
	case token.SUB, token.NOT, token.MUL:
		op, opPos := p.tok, p.pos
		p.next()
		return &ast.UnaryExpr{OpPos: opPos, Op: op, X: p.parseUnary()}
	case token.AND:
		ampPos := p.pos
		p.next()
		mut := false
		if p.tok == token.MUT {
			mut = true
			p.next()
		}
		return &ast.RefExpr{AmpPos: ampPos, Mut: mut, X: p.parseUnary()}
	}
	return p.parsePostfix(p.parsePrimary())
}

func (p *parser) parsePrimary() ast.Expr {
	switch p.tok {
	case token.IDENT:
		id := &ast.Ident{NamePos: p.pos, Name: p.lit}
		p.next()
		if p.tok != token.PATHSEP {
			return id
		}
		segs := []*ast.Ident{id}
		for p.tok == token.PATHSEP {
			p.next()
			if p.tok != token.IDENT {
				p.errorf(p.pos, "expected identifier after \"::\", found %s", p.tokenDesc())
				return p.badExpr(p.pos)
			}
			segs = append(segs, &ast.Ident{NamePos: p.pos, Name: p.lit})
			p.next()
		}
		return &ast.PathExpr{Segments: segs}
	case token.INT, token.FLOAT, token.STRING, token.CHAR:
		lit := &ast.BasicLit{ValuePos: p.pos, Kind: p.tok, Value: p.lit}
		p.next()
		return lit
	case token.LPAREN:
		lparen := p.pos
		p.next()
		x := p.parseExpr(token.LowestPrec)
		rparen := p.expect(token.RPAREN)
		return &ast.ParenExpr{Lparen: lparen, X: x, Rparen: rparen}
	}
	pos := p.pos
	p.errorf(pos, "expected expression, found %s", p.tokenDesc())
	p.next()
	return p.badExpr(pos)
}

func (p *parser) parsePostfix(x ast.Expr) ast.Expr {
	for {
		switch p.tok {
		case token.PERIOD:
			dotPos := p.pos
			p.next()
			switch p.tok {
			case token.AWAIT:
				x = &ast.AwaitExpr{X: x, DotPos: dotPos, AwaitPos: p.pos}
				p.next()
			case token.IDENT:
				sel := &ast.Ident{NamePos: p.pos, Name: p.lit}
				p.next()
				if p.tok == token.LPAREN {
					lparen := p.pos
					p.next()
					args, rparen := p.parseArgs()
					x = &ast.MethodCallExpr{
						Recv: x, DotPos: dotPos, Method: sel,
						Lparen: lparen, Args: args, Rparen: rparen,
					}
				} else {
					x = &ast.FieldExpr{X: x, DotPos: dotPos, Field: sel}
				}
			case token.INT:
				// tuple field access, e.g. `pair.0`
				x = &ast.FieldExpr{X: x, DotPos: dotPos, Field: &ast.Ident{NamePos: p.pos, Name: p.lit}}
				p.next()
			default:
				p.errorf(p.pos, "expected method, field or \"await\" after \".\", found %s", p.tokenDesc())
				return x
			}
		case token.LPAREN:
			lparen := p.pos
			p.next()
			args, rparen := p.parseArgs()
			x = &ast.CallExpr{Fun: x, Lparen: lparen, Args: args, Rparen: rparen}
		case token.LBRACK:
			lbrack := p.pos
			p.next()
			idx := p.parseExpr(token.LowestPrec)
			rbrack := p.expect(token.RBRACK)
			x = &ast.IndexExpr{X: x, Lbrack: lbrack, Index: idx, Rbrack: rbrack}
		case token.QUESTION:
			x = &ast.TryExpr{X: x, QuestionPos: p.pos}
			p.next()
		default:
			return x
		}
	}
}

// parseArgs parses a comma-separated argument list; the opening paren is
// already consumed. A trailing comma is permitted.
func (p *parser) parseArgs() (args []ast.Expr, rparen token.Pos) {
	for p.tok != token.RPAREN && p.tok != token.EOF {
		args = append(args, p.parseExpr(token.LowestPrec))
		if p.tok != token.COMMA {
			break
		}
		p.next()
	}
	return args, p.expect(token.RPAREN)
}
