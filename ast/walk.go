package ast

import "fmt"

// A Visitor's Visit method is invoked for each node encountered by Walk. If
// the returned visitor w is not nil, Walk visits each child of the node
// with w.
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses the tree rooted at node in depth-first, pre-order,
// left-to-right order: it calls v.Visit(node), then, unless the returned
// visitor is nil, walks each child of node (receiver before method name
// before arguments).
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}

	switch n := node.(type) {
	case *Ident, *BasicLit:
		// leaves
	case *PathExpr:
		for _, seg := range n.Segments {
			Walk(v, seg)
		}
	case *ParenExpr:
		Walk(v, n.X)
	case *UnaryExpr:
		Walk(v, n.X)
	case *RefExpr:
		Walk(v, n.X)
	case *BinaryExpr:
		Walk(v, n.X)
		Walk(v, n.Y)
	case *CallExpr:
		Walk(v, n.Fun)
		for _, a := range n.Args {
			Walk(v, a)
		}
	case *MethodCallExpr:
		Walk(v, n.Recv)
		Walk(v, n.Method)
		for _, a := range n.Args {
			Walk(v, a)
		}
	case *FieldExpr:
		Walk(v, n.X)
		Walk(v, n.Field)
	case *IndexExpr:
		Walk(v, n.X)
		Walk(v, n.Index)
	case *AwaitExpr:
		Walk(v, n.X)
	case *TryExpr:
		Walk(v, n.X)
	case *Invocation:
		Walk(v, n.Suffix)
		Walk(v, n.X)
	default:
		panic(fmt.Sprintf("ast.Walk: unexpected node type %T", n))
	}
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Inspect traverses the tree in the same order as Walk, calling f for each
// node. If f returns false, children of the node are skipped.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}
