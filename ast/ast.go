// Package ast declares the expression tree for the Rust-style dialect the
// suffix macro operates on. Nodes are mutable; ownership of a tree is with
// whoever parsed or cloned it.
package ast

import (
	"github.com/okhsunrog/bisync-suffix-macro/token"
)

// Node is implemented by all tree nodes.
type Node interface {
	Pos() token.Pos // position of the first character of the node
	End() token.Pos // position immediately after the node
}

// Expr is implemented by all expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Ident is an identifier, including `self`.
type Ident struct {
	NamePos token.Pos
	Name    string
}

// BasicLit is an integer, float, string or char literal. Value is the
// literal text as written, quotes included.
type BasicLit struct {
	ValuePos token.Pos
	Kind     token.Token // token.INT, token.FLOAT, token.STRING or token.CHAR
	Value    string
}

// PathExpr is a `::`-separated path such as `Device::new`.
type PathExpr struct {
	Segments []*Ident // len >= 2
}

// ParenExpr is a parenthesized expression.
type ParenExpr struct {
	Lparen token.Pos
	X      Expr
	Rparen token.Pos
}

// UnaryExpr is a prefix `-`, `!` or `*` expression.
type UnaryExpr struct {
	OpPos token.Pos
	Op    token.Token
	X     Expr
}

// RefExpr is a `&x` or `&mut x` borrow expression.
type RefExpr struct {
	AmpPos token.Pos
	Mut    bool
	X      Expr
}

// BinaryExpr is a binary operator expression.
type BinaryExpr struct {
	X     Expr
	OpPos token.Pos
	Op    token.Token
	Y     Expr
}

// CallExpr is a call whose callee is an arbitrary expression, typically an
// identifier or path: `f(a, b)`, `Device::new(bus)`.
type CallExpr struct {
	Fun    Expr
	Lparen token.Pos
	Args   []Expr
	Rparen token.Pos
}

// MethodCallExpr is a method call on a receiver: `recv.method(args)`.
type MethodCallExpr struct {
	Recv   Expr
	DotPos token.Pos
	Method *Ident
	Lparen token.Pos
	Args   []Expr
	Rparen token.Pos
}

// FieldExpr is a field access: `recv.field`, `pair.0`.
type FieldExpr struct {
	X      Expr
	DotPos token.Pos
	Field  *Ident
}

// IndexExpr is an index expression: `x[i]`.
type IndexExpr struct {
	X      Expr
	Lbrack token.Pos
	Index  Expr
	Rbrack token.Pos
}

// AwaitExpr is a suspend-point: `x.await`.
type AwaitExpr struct {
	X        Expr
	DotPos   token.Pos
	AwaitPos token.Pos // position of the `await` keyword
}

// TryExpr is an error-propagation expression: `x?`.
type TryExpr struct {
	X           Expr
	QuestionPos token.Pos
}

func (x *Ident) Pos() token.Pos          { return x.NamePos }
func (x *BasicLit) Pos() token.Pos       { return x.ValuePos }
func (x *PathExpr) Pos() token.Pos       { return x.Segments[0].Pos() }
func (x *ParenExpr) Pos() token.Pos      { return x.Lparen }
func (x *UnaryExpr) Pos() token.Pos      { return x.OpPos }
func (x *RefExpr) Pos() token.Pos        { return x.AmpPos }
func (x *BinaryExpr) Pos() token.Pos     { return x.X.Pos() }
func (x *CallExpr) Pos() token.Pos       { return x.Fun.Pos() }
func (x *MethodCallExpr) Pos() token.Pos { return x.Recv.Pos() }
func (x *FieldExpr) Pos() token.Pos      { return x.X.Pos() }
func (x *IndexExpr) Pos() token.Pos      { return x.X.Pos() }
func (x *AwaitExpr) Pos() token.Pos      { return x.X.Pos() }
func (x *TryExpr) Pos() token.Pos        { return x.X.Pos() }

func (x *Ident) End() token.Pos          { return x.NamePos + token.Pos(len(x.Name)) }
func (x *BasicLit) End() token.Pos       { return x.ValuePos + token.Pos(len(x.Value)) }
func (x *PathExpr) End() token.Pos       { return x.Segments[len(x.Segments)-1].End() }
func (x *ParenExpr) End() token.Pos      { return x.Rparen + 1 }
func (x *UnaryExpr) End() token.Pos      { return x.X.End() }
func (x *RefExpr) End() token.Pos        { return x.X.End() }
func (x *BinaryExpr) End() token.Pos     { return x.Y.End() }
func (x *CallExpr) End() token.Pos       { return x.Rparen + 1 }
func (x *MethodCallExpr) End() token.Pos { return x.Rparen + 1 }
func (x *FieldExpr) End() token.Pos      { return x.Field.End() }
func (x *IndexExpr) End() token.Pos      { return x.Rbrack + 1 }
func (x *AwaitExpr) End() token.Pos      { return x.AwaitPos + token.Pos(len("await")) }
func (x *TryExpr) End() token.Pos        { return x.QuestionPos + 1 }

func (*Ident) exprNode()          {}
func (*BasicLit) exprNode()       {}
func (*PathExpr) exprNode()       {}
func (*ParenExpr) exprNode()      {}
func (*UnaryExpr) exprNode()      {}
func (*RefExpr) exprNode()        {}
func (*BinaryExpr) exprNode()     {}
func (*CallExpr) exprNode()       {}
func (*MethodCallExpr) exprNode() {}
func (*FieldExpr) exprNode()      {}
func (*IndexExpr) exprNode()      {}
func (*AwaitExpr) exprNode()      {}
func (*TryExpr) exprNode()        {}

// Invocation is the parsed argument sequence of a `suffix!` call: a string
// literal naming the suffix, a comma, and the expression to expand.
type Invocation struct {
	Suffix *BasicLit // Kind == token.STRING
	Comma  token.Pos
	X      Expr
}

func (inv *Invocation) Pos() token.Pos { return inv.Suffix.Pos() }
func (inv *Invocation) End() token.Pos { return inv.X.End() }
