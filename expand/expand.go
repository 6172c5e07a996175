// Package expand implements suffix macro expansion: parsing an invocation,
// rewriting a clone of its expression, and emitting the feature-gated
// async/blocking alternatives.
package expand

import (
	"fmt"
	"slices"
	"strings"

	"github.com/okhsunrog/bisync-suffix-macro/ast"
	"github.com/okhsunrog/bisync-suffix-macro/printer"
	"github.com/okhsunrog/bisync-suffix-macro/rewrite"
)

// Default macro and feature names; overridable through Options.
const (
	DefaultMacroName       = "suffix"
	DefaultAsyncFeature    = "async"
	DefaultBlockingFeature = "blocking"
)

// Options configures expansion. The zero value uses the defaults above.
type Options struct {
	MacroName       string
	AsyncFeature    string
	BlockingFeature string
}

func (o Options) withDefaults() Options {
	if o.MacroName == "" {
		o.MacroName = DefaultMacroName
	}
	if o.AsyncFeature == "" {
		o.AsyncFeature = DefaultAsyncFeature
	}
	if o.BlockingFeature == "" {
		o.BlockingFeature = DefaultBlockingFeature
	}
	return o
}

// Request is one macro expansion's input: the unquoted suffix and the
// expression tree. It is built once per invocation and not mutated; the
// transformed tree is always derived from a deep copy.
type Request struct {
	Suffix string
	Expr   ast.Expr
}

// NewRequest builds a Request from a parsed invocation. The suffix literal
// has already been validated by the parser.
func NewRequest(inv *ast.Invocation) (Request, error) {
	suffix, err := inv.SuffixValue()
	if err != nil {
		return Request{}, err
	}
	return Request{Suffix: suffix, Expr: inv.X}, nil
}

// Transform returns the async variant of the request's expression: a deep
// copy with the suffix appended to every method call directly under an
// await. The original expression is left untouched.
func (r Request) Transform() ast.Expr {
	clone := ast.CloneExpr(r.Expr)
	rewrite.AppendSuffix(clone, r.Suffix)
	return clone
}

// Invocation expands a single parsed invocation into the composite block
// with both feature-gated alternatives.
func Invocation(inv *ast.Invocation, opts Options) (string, error) {
	req, err := NewRequest(inv)
	if err != nil {
		return "", err
	}
	return emit(req, opts.withDefaults()), nil
}

// emit serializes both alternatives into one block expression. The third
// arm turns the "neither feature enabled" case into an explicit compile
// error instead of a silently empty block.
func emit(req Request, opts Options) string {
	const unit = "    "

	asyncSrc := printer.Sprint(req.Transform())
	blockingSrc := printer.Sprint(req.Expr)

	var b strings.Builder
	line := func(depth int, s string) {
		b.WriteString("\n")
		b.WriteString(strings.Repeat(unit, depth))
		b.WriteString(s)
	}

	b.WriteString("{")
	line(1, fmt.Sprintf("#[cfg(feature = %q)]", opts.AsyncFeature))
	line(1, "{")
	line(2, asyncSrc)
	line(1, "}")
	line(1, fmt.Sprintf("#[cfg(all(feature = %q, not(feature = %q)))]", opts.BlockingFeature, opts.AsyncFeature))
	line(1, "{")
	line(2, blockingSrc)
	line(1, "}")
	line(1, fmt.Sprintf("#[cfg(not(any(feature = %q, feature = %q)))]", opts.AsyncFeature, opts.BlockingFeature))
	line(1, fmt.Sprintf("compile_error!(\"enable either the `%s` or the `%s` feature\");",
		opts.AsyncFeature, opts.BlockingFeature))
	line(0, "}")
	return b.String()
}

// Select returns the source text of the alternative an external build with
// the given enabled features would compile: the transformed expression when
// the async feature is enabled (it wins when both are), the original when
// only the blocking feature is, and an error when neither is. This mirrors
// how the cfg guards of the emitted block resolve.
func Select(inv *ast.Invocation, features []string, opts Options) (string, error) {
	opts = opts.withDefaults()
	req, err := NewRequest(inv)
	if err != nil {
		return "", err
	}
	switch {
	case slices.Contains(features, opts.AsyncFeature):
		return printer.Sprint(req.Transform()), nil
	case slices.Contains(features, opts.BlockingFeature):
		return printer.Sprint(req.Expr), nil
	}
	return "", fmt.Errorf("neither the %q nor the %q feature is enabled", opts.AsyncFeature, opts.BlockingFeature)
}
