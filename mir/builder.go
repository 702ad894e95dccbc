package mir

// Builder creates operations at a chosen insertion point, in the manner of
// an IR instruction builder.  The insertion point is a block together with an
// index into its operation list; every created operation is inserted there
// and the point advances past it.
type Builder struct {
	block *Block
	ndx   int
}

// NewBuilder returns a builder with no insertion point set.
func NewBuilder() *Builder {
	return &Builder{}
}

// SetInsertionPointAtEnd places the insertion point after the last operation
// of the block.
func (b *Builder) SetInsertionPointAtEnd(block *Block) {
	b.block = block
	b.ndx = len(block.ops)
}

// SetInsertionPointBefore places the insertion point immediately before op.
func (b *Builder) SetInsertionPointBefore(op *Operation) {
	b.block = op.block
	b.ndx = op.block.indexOf(op)
}

// Block returns the block currently being inserted into.
func (b *Builder) Block() *Block {
	return b.block
}

// Insert places a detached operation at the insertion point and advances the
// point past it.
func (b *Builder) Insert(op *Operation) *Operation {
	b.block.insert(op, b.ndx)
	b.ndx++
	return op
}

// Create builds a new operation and inserts it at the insertion point.
func (b *Builder) Create(name string, resultTypes []Type, operands []*Value, attrs map[string]interface{}) *Operation {
	return b.Insert(NewOperation(name, resultTypes, operands, attrs))
}
