// Package printer serializes expression trees back to source text. The
// output is canonical rather than source-faithful: single spaces around
// binary operators, ", " between arguments, postfix chains unspaced.
// Parsing the printed form of a tree yields a structurally identical tree.
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/okhsunrog/bisync-suffix-macro/ast"
)

// Fprint writes the canonical source form of x to w.
func Fprint(w io.Writer, x ast.Expr) error {
	p := &printer{w: w}
	p.expr(x)
	return p.err
}

// Sprint returns the canonical source form of x.
func Sprint(x ast.Expr) string {
	var b strings.Builder
	// strings.Builder never returns a write error.
	Fprint(&b, x)
	return b.String()
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) writeString(s string) {
	if p.err == nil {
		_, p.err = io.WriteString(p.w, s)
	}
}

func (p *printer) expr(x ast.Expr) {
	switch x := x.(type) {
	case *ast.Ident:
		p.writeString(x.Name)
	case *ast.BasicLit:
		p.writeString(x.Value)
	case *ast.PathExpr:
		for i, seg := range x.Segments {
			if i > 0 {
				p.writeString("::")
			}
			p.writeString(seg.Name)
		}
	case *ast.ParenExpr:
		p.writeString("(")
		p.expr(x.X)
		p.writeString(")")
	case *ast.UnaryExpr:
		p.writeString(x.Op.String())
		p.expr(x.X)
	case *ast.RefExpr:
		p.writeString("&")
		if x.Mut {
			p.writeString("mut ")
		}
		p.expr(x.X)
	case *ast.BinaryExpr:
		p.expr(x.X)
		p.writeString(" " + x.Op.String() + " ")
		p.expr(x.Y)
	case *ast.CallExpr:
		p.expr(x.Fun)
		p.args(x.Args)
	case *ast.MethodCallExpr:
		p.expr(x.Recv)
		p.writeString("." + x.Method.Name)
		p.args(x.Args)
	case *ast.FieldExpr:
		p.expr(x.X)
		p.writeString("." + x.Field.Name)
	case *ast.IndexExpr:
		p.expr(x.X)
		p.writeString("[")
		p.expr(x.Index)
		p.writeString("]")
	case *ast.AwaitExpr:
		p.expr(x.X)
		p.writeString(".await")
	case *ast.TryExpr:
		p.expr(x.X)
		p.writeString("?")
	default:
		if p.err == nil {
			p.err = fmt.Errorf("printer: unexpected node type %T", x)
		}
	}
}

func (p *printer) args(args []ast.Expr) {
	p.writeString("(")
	for i, a := range args {
		if i > 0 {
			p.writeString(", ")
		}
		p.expr(a)
	}
	p.writeString(")")
}
