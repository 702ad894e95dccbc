package rewrite

import (
	"quill/mir"
)

// Target declares the operation and type set a conversion must produce.  An
// operation is legal if its dialect or its full name has been declared legal
// and none of its operand, result, or block-argument types belong to a
// source dialect.
type Target struct {
	dialects map[string]struct{}
	ops      map[string]struct{}
}

// NewTarget creates an empty conversion target.
func NewTarget() *Target {
	return &Target{
		dialects: make(map[string]struct{}),
		ops:      make(map[string]struct{}),
	}
}

// AddLegalDialect declares every operation of a dialect legal.
func (t *Target) AddLegalDialect(name string) {
	t.dialects[name] = struct{}{}
}

// AddLegalOp declares a single operation name legal.
func (t *Target) AddLegalOp(name string) {
	t.ops[name] = struct{}{}
}

// IsLegal reports whether op satisfies the target declaration.
func (t *Target) IsLegal(op *mir.Operation) bool {
	if !t.nameLegal(op) {
		return false
	}

	for _, operand := range op.Operands() {
		if mir.IsDialectType(operand.Type()) {
			return false
		}
	}

	for _, result := range op.Results() {
		if mir.IsDialectType(result.Type()) {
			return false
		}
	}

	for _, r := range op.Regions() {
		for _, b := range r.Blocks() {
			for _, arg := range b.Args() {
				if mir.IsDialectType(arg.Type()) {
					return false
				}
			}
		}
	}

	return true
}

func (t *Target) nameLegal(op *mir.Operation) bool {
	if _, ok := t.ops[op.Name()]; ok {
		return true
	}

	_, ok := t.dialects[op.Dialect()]
	return ok
}
