package ast

import "fmt"

// CloneExpr returns a deep copy of x. Positions are preserved, so the copy
// reports the same source locations as the original. Mutating the copy
// never affects the original tree.
func CloneExpr(x Expr) Expr {
	switch x := x.(type) {
	case *Ident:
		return cloneIdent(x)
	case *BasicLit:
		c := *x
		return &c
	case *PathExpr:
		segs := make([]*Ident, len(x.Segments))
		for i, s := range x.Segments {
			segs[i] = cloneIdent(s)
		}
		return &PathExpr{Segments: segs}
	case *ParenExpr:
		return &ParenExpr{Lparen: x.Lparen, X: CloneExpr(x.X), Rparen: x.Rparen}
	case *UnaryExpr:
		return &UnaryExpr{OpPos: x.OpPos, Op: x.Op, X: CloneExpr(x.X)}
	case *RefExpr:
		return &RefExpr{AmpPos: x.AmpPos, Mut: x.Mut, X: CloneExpr(x.X)}
	case *BinaryExpr:
		return &BinaryExpr{X: CloneExpr(x.X), OpPos: x.OpPos, Op: x.Op, Y: CloneExpr(x.Y)}
	case *CallExpr:
		return &CallExpr{
			Fun:    CloneExpr(x.Fun),
			Lparen: x.Lparen,
			Args:   cloneExprs(x.Args),
			Rparen: x.Rparen,
		}
	case *MethodCallExpr:
		return &MethodCallExpr{
			Recv:   CloneExpr(x.Recv),
			DotPos: x.DotPos,
			Method: cloneIdent(x.Method),
			Lparen: x.Lparen,
			Args:   cloneExprs(x.Args),
			Rparen: x.Rparen,
		}
	case *FieldExpr:
		return &FieldExpr{X: CloneExpr(x.X), DotPos: x.DotPos, Field: cloneIdent(x.Field)}
	case *IndexExpr:
		return &IndexExpr{X: CloneExpr(x.X), Lbrack: x.Lbrack, Index: CloneExpr(x.Index), Rbrack: x.Rbrack}
	case *AwaitExpr:
		return &AwaitExpr{X: CloneExpr(x.X), DotPos: x.DotPos, AwaitPos: x.AwaitPos}
	case *TryExpr:
		return &TryExpr{X: CloneExpr(x.X), QuestionPos: x.QuestionPos}
	}
	panic(fmt.Sprintf("ast.CloneExpr: unexpected node type %T", x))
}

func cloneIdent(id *Ident) *Ident {
	c := *id
	return &c
}

func cloneExprs(xs []Expr) []Expr {
	if xs == nil {
		return nil
	}
	out := make([]Expr, len(xs))
	for i, x := range xs {
		out[i] = CloneExpr(x)
	}
	return out
}
