package rewrite

import (
	"quill/mir"
)

// Rewriter is handed to patterns to mutate the graph.  All graph edits made
// by a pattern must go through the rewriter so that the driving loop can
// observe that progress was made.
type Rewriter struct {
	b       *mir.Builder
	changed bool
}

func newRewriter() *Rewriter {
	return &Rewriter{b: mir.NewBuilder()}
}

// setRoot positions the rewriter's builder immediately before the matched
// operation, which is where replacement operations are created by default.
func (rw *Rewriter) setRoot(op *mir.Operation) {
	rw.b.SetInsertionPointBefore(op)
}

// Create builds a new operation at the current insertion point.
func (rw *Rewriter) Create(name string, resultTypes []mir.Type, operands []*mir.Value, attrs map[string]interface{}) *mir.Operation {
	rw.changed = true
	return rw.b.Create(name, resultTypes, operands, attrs)
}

// Insert places a detached operation at the current insertion point.
func (rw *Rewriter) Insert(op *mir.Operation) *mir.Operation {
	rw.changed = true
	return rw.b.Insert(op)
}

// Builder exposes the underlying builder for dialect construction helpers.
func (rw *Rewriter) Builder() *mir.Builder {
	rw.changed = true
	return rw.b
}

// ReplaceOp substitutes all results of op with the given values and erases
// op.  The value count must match the result count.
func (rw *Rewriter) ReplaceOp(op *mir.Operation, values ...*mir.Value) {
	op.ReplaceAllUsesWith(values...)
	op.Erase()
	rw.changed = true
}

// EraseOp erases an operation with no remaining result uses.
func (rw *Rewriter) EraseOp(op *mir.Operation) {
	op.Erase()
	rw.changed = true
}
