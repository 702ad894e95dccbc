// Package rewrite provides the generic pattern-application machinery used by
// the lowering pipeline: a pattern interface, a greedy fixpoint driver for
// best-effort rewrites, and an all-or-nothing conversion driver that
// legalizes a module against a declared target.
package rewrite

import (
	"quill/mir"
)

// Pattern is a rewrite rule keyed by a root operation name.  Rewrite
// inspects the matched operation and either applies a rewrite through the
// rewriter and returns true, or declines the match and returns false
// without mutating the graph.  A non-nil error aborts the enclosing driver.
type Pattern interface {
	// Root returns the operation name the pattern matches on.
	Root() string

	// Rewrite attempts to apply the pattern at op.
	Rewrite(op *mir.Operation, rw *Rewriter) (bool, error)
}

// RewriteFunc adapts a plain function into a Pattern.
type RewriteFunc struct {
	// RootName is the operation name the pattern matches on.
	RootName string

	// Fn is the rewrite function.
	Fn func(op *mir.Operation, rw *Rewriter) (bool, error)
}

func (p RewriteFunc) Root() string {
	return p.RootName
}

func (p RewriteFunc) Rewrite(op *mir.Operation, rw *Rewriter) (bool, error) {
	return p.Fn(op, rw)
}

// byRoot indexes a pattern list by root operation name.  Patterns sharing a
// root are kept in registration order.
func byRoot(patterns []Pattern) map[string][]Pattern {
	index := make(map[string][]Pattern)
	for _, p := range patterns {
		index[p.Root()] = append(index[p.Root()], p)
	}

	return index
}
