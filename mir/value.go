package mir

// Value is a typed SSA value in the IR graph: either the result of an
// operation or an argument of a block.  Values track their uses so that
// rewrites can substitute them without walking the whole graph.
type Value struct {
	typ Type

	// def is the operation defining this value, or nil for block arguments.
	def *Operation

	// index is the result index within def, or the argument index within
	// block for block arguments.
	index int

	// block is the owning block for block arguments, nil otherwise.
	block *Block

	// uses is the list of operand positions that currently reference this
	// value.  It is maintained by Operation as operands are set and cleared.
	uses []Use
}

// Use records a single operand position referencing a value.
type Use struct {
	// Owner is the operation whose operand list contains the use.
	Owner *Operation

	// Index is the operand index within Owner.
	Index int
}

// Type returns the type of the value.
func (v *Value) Type() Type {
	return v.typ
}

// SetType mutates the type of the value.  It is used by conversion patterns
// that rewrite a value's representation in place, such as converting the
// argument types of an entry block.
func (v *Value) SetType(typ Type) {
	v.typ = typ
}

// DefiningOp returns the operation that produces this value, or nil if the
// value is a block argument.
func (v *Value) DefiningOp() *Operation {
	return v.def
}

// Index returns the result or argument index of the value.
func (v *Value) Index() int {
	return v.index
}

// Uses returns a snapshot of the operand positions referencing this value.
func (v *Value) Uses() []Use {
	uses := make([]Use, len(v.uses))
	copy(uses, v.uses)
	return uses
}

// HasUses returns true if anything still references the value.
func (v *Value) HasUses() bool {
	return len(v.uses) > 0
}

// Users returns the operations that reference this value, one entry per
// operand position in the use list.
func (v *Value) Users() []*Operation {
	users := make([]*Operation, len(v.uses))
	for i, u := range v.uses {
		users[i] = u.Owner
	}
	return users
}

// ReplaceAllUsesWith rewires every use of v to refer to other instead.
func (v *Value) ReplaceAllUsesWith(other *Value) {
	for _, u := range v.Uses() {
		u.Owner.SetOperand(u.Index, other)
	}
}

// addUse and removeUse maintain the use list.  They are only called from the
// operand bookkeeping on Operation.

func (v *Value) addUse(owner *Operation, index int) {
	v.uses = append(v.uses, Use{Owner: owner, Index: index})
}

func (v *Value) removeUse(owner *Operation, index int) {
	for i, u := range v.uses {
		if u.Owner == owner && u.Index == index {
			v.uses = append(v.uses[:i], v.uses[i+1:]...)
			return
		}
	}
}
