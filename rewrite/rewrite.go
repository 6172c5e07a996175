// Package rewrite renames method calls sitting directly under await
// expressions. It is the transformation behind the async branch of a
// suffix macro expansion: `self.sensor.read().await` becomes
// `self.sensor.read_async().await` for suffix "_async".
package rewrite

import (
	"github.com/okhsunrog/bisync-suffix-macro/ast"
)

// AppendSuffix walks the whole tree rooted at x and, at every await
// expression whose immediate operand is an invocation of a named callee —
// a method call, or a call whose callee is a plain identifier — replaces
// that identifier with one whose name has suffix appended verbatim. The
// new identifier keeps the original's position, so later diagnostics
// against the rewritten name still point at the call site.
//
// Await expressions over any other shape (field access, a call through a
// path or computed callee, another await, a bare identifier) are left
// unchanged, but traversal continues into their children, so nested
// qualifying await sites are each rewritten independently.
//
// The tree is mutated in place; callers wanting to keep the original must
// pass a clone (see ast.CloneExpr).
func AppendSuffix(x ast.Expr, suffix string) {
	ast.Walk(&suffixer{suffix: suffix}, x)
}

type suffixer struct {
	suffix string
}

func (s *suffixer) Visit(n ast.Node) ast.Visitor {
	aw, ok := n.(*ast.AwaitExpr)
	if !ok {
		return s
	}
	switch call := aw.X.(type) {
	case *ast.MethodCallExpr:
		call.Method = &ast.Ident{
			NamePos: call.Method.NamePos,
			Name:    call.Method.Name + s.suffix,
		}
	case *ast.CallExpr:
		if id, ok := call.Fun.(*ast.Ident); ok {
			call.Fun = &ast.Ident{
				NamePos: id.NamePos,
				Name:    id.Name + s.suffix,
			}
		}
	}
	return s
}
