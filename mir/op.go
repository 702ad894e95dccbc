package mir

import (
	"strings"
)

// Operation is a node in the IR graph.  Every operation has a name of the
// form "dialect.mnemonic", typed operands referencing other values, typed
// results, an attribute dictionary, and optionally nested regions and block
// successors.  Operations are owned by the block they are inserted into and
// are destroyed by Erase or when their enclosing region is destroyed.
type Operation struct {
	name string

	operands []*Value
	results  []*Value

	attrs map[string]interface{}

	regions []*Region

	// successors are the blocks a terminator operation may transfer control
	// to.  Empty for non-terminators.
	successors []*Block

	// block is the block the operation is currently inserted into.  A nil
	// block means the operation is detached or erased.
	block *Block

	erased bool
}

// NewOperation creates a detached operation.  Result values are created from
// the given result types.  The attribute map may be nil.
func NewOperation(name string, resultTypes []Type, operands []*Value, attrs map[string]interface{}) *Operation {
	op := &Operation{
		name:  name,
		attrs: attrs,
	}

	for i, t := range resultTypes {
		op.results = append(op.results, &Value{typ: t, def: op, index: i})
	}

	for _, operand := range operands {
		op.appendOperand(operand)
	}

	return op
}

// Name returns the full operation name, eg. `ccl.store`.
func (op *Operation) Name() string {
	return op.name
}

// Dialect returns the dialect prefix of the operation name.
func (op *Operation) Dialect() string {
	if ndx := strings.IndexByte(op.name, '.'); ndx != -1 {
		return op.name[:ndx]
	}

	return op.name
}

// ParentBlock returns the block the operation is inserted into, or nil if
// the operation is detached or erased.
func (op *Operation) ParentBlock() *Block {
	return op.block
}

// -----------------------------------------------------------------------------

// NumOperands returns the number of operands.
func (op *Operation) NumOperands() int {
	return len(op.operands)
}

// Operand returns operand i.
func (op *Operation) Operand(i int) *Value {
	return op.operands[i]
}

// Operands returns a snapshot of the operand list.
func (op *Operation) Operands() []*Value {
	operands := make([]*Value, len(op.operands))
	copy(operands, op.operands)
	return operands
}

// SetOperand replaces operand i, keeping both use lists consistent.
func (op *Operation) SetOperand(i int, v *Value) {
	if old := op.operands[i]; old != nil {
		old.removeUse(op, i)
	}

	op.operands[i] = v
	v.addUse(op, i)
}

// appendOperand adds a new operand at the end of the operand list.
func (op *Operation) appendOperand(v *Value) {
	op.operands = append(op.operands, v)
	v.addUse(op, len(op.operands)-1)
}

// clearOperands drops every operand, removing the corresponding uses.
func (op *Operation) clearOperands() {
	for i, operand := range op.operands {
		operand.removeUse(op, i)
	}

	op.operands = nil
}

// -----------------------------------------------------------------------------

// NumResults returns the number of results.
func (op *Operation) NumResults() int {
	return len(op.results)
}

// Result returns result i.
func (op *Operation) Result(i int) *Value {
	return op.results[i]
}

// Results returns the result list.
func (op *Operation) Results() []*Value {
	return op.results
}

// -----------------------------------------------------------------------------

// Attr returns the attribute stored under key, or nil if it is absent.
func (op *Operation) Attr(key string) interface{} {
	if op.attrs == nil {
		return nil
	}

	return op.attrs[key]
}

// HasAttr returns true if an attribute is stored under key.
func (op *Operation) HasAttr(key string) bool {
	_, ok := op.attrs[key]
	return ok
}

// SetAttr stores an attribute under key.
func (op *Operation) SetAttr(key string, value interface{}) {
	if op.attrs == nil {
		op.attrs = make(map[string]interface{})
	}

	op.attrs[key] = value
}

// StringAttr returns the string attribute stored under key or "".
func (op *Operation) StringAttr(key string) string {
	if s, ok := op.Attr(key).(string); ok {
		return s
	}

	return ""
}

// IntAttr returns the integer attribute stored under key or 0.
func (op *Operation) IntAttr(key string) int64 {
	if n, ok := op.Attr(key).(int64); ok {
		return n
	}

	return 0
}

// TypeAttr returns the type attribute stored under key or nil.
func (op *Operation) TypeAttr(key string) Type {
	if t, ok := op.Attr(key).(Type); ok {
		return t
	}

	return nil
}

// -----------------------------------------------------------------------------

// Regions returns the nested regions of the operation.
func (op *Operation) Regions() []*Region {
	return op.regions
}

// AddRegion appends a fresh empty region to the operation and returns it.
func (op *Operation) AddRegion() *Region {
	r := &Region{parent: op}
	op.regions = append(op.regions, r)
	return r
}

// MoveRegionsFrom transfers every region of other onto op.  The donor is left
// without regions.  This is how conversion patterns adopt the body of the
// operation they replace.
func (op *Operation) MoveRegionsFrom(other *Operation) {
	for _, r := range other.regions {
		r.parent = op
		op.regions = append(op.regions, r)
	}

	other.regions = nil
}

// Successors returns the successor blocks of a terminator operation.
func (op *Operation) Successors() []*Block {
	return op.successors
}

// SetSuccessors sets the successor blocks of a terminator operation.
func (op *Operation) SetSuccessors(succs []*Block) {
	op.successors = succs
}

// -----------------------------------------------------------------------------

// Erased returns true once the operation has been erased from the graph.
func (op *Operation) Erased() bool {
	return op.erased
}

// Erase removes the operation from its block and destroys it.  All of its
// operand uses are dropped and every operation inside its regions is erased
// as well.  Erasing an operation whose results still have uses corrupts the
// graph; callers must replace the results first.
func (op *Operation) Erase() {
	op.clearOperands()

	for _, r := range op.regions {
		for _, b := range r.blocks {
			for _, nested := range b.Ops() {
				nested.Erase()
			}
		}
	}

	if op.block != nil {
		op.block.remove(op)
		op.block = nil
	}

	op.erased = true
}

// ReplaceAllUsesWith substitutes the operation's results with the given
// values.  The value count must match the result count.
func (op *Operation) ReplaceAllUsesWith(values ...*Value) {
	for i, result := range op.results {
		result.ReplaceAllUsesWith(values[i])
	}
}
