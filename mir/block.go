package mir

// Region is a nested sub-graph owned by an operation, eg. a function body or
// a loop body.  A region owns an ordered list of blocks.
type Region struct {
	blocks []*Block
	parent *Operation
}

// Blocks returns the blocks of the region in order.
func (r *Region) Blocks() []*Block {
	return r.blocks
}

// Parent returns the operation owning the region.
func (r *Region) Parent() *Operation {
	return r.parent
}

// NewBlock appends a fresh empty block to the region and returns it.
func (r *Region) NewBlock() *Block {
	b := &Block{region: r}
	r.blocks = append(r.blocks, b)
	return b
}

// EntryBlock returns the first block of the region, or nil if the region is
// empty.
func (r *Region) EntryBlock() *Block {
	if len(r.blocks) == 0 {
		return nil
	}

	return r.blocks[0]
}

// -----------------------------------------------------------------------------

// Block is an ordered list of operations together with its block arguments.
type Block struct {
	args   []*Value
	ops    []*Operation
	region *Region
}

// Region returns the region owning the block.
func (b *Block) Region() *Region {
	return b.region
}

// AddArg appends a new block argument of the given type and returns it.
func (b *Block) AddArg(typ Type) *Value {
	arg := &Value{typ: typ, block: b, index: len(b.args)}
	b.args = append(b.args, arg)
	return arg
}

// Args returns the block arguments.
func (b *Block) Args() []*Value {
	return b.args
}

// Ops returns a snapshot of the operations in the block.  The snapshot is
// safe to iterate while operations are inserted or erased.
func (b *Block) Ops() []*Operation {
	ops := make([]*Operation, len(b.ops))
	copy(ops, b.ops)
	return ops
}

// NumOps returns the number of operations currently in the block.
func (b *Block) NumOps() int {
	return len(b.ops)
}

// Terminator returns the final operation of the block, or nil if the block
// is empty.
func (b *Block) Terminator() *Operation {
	if len(b.ops) == 0 {
		return nil
	}

	return b.ops[len(b.ops)-1]
}

// insert places op at position ndx within the block.
func (b *Block) insert(op *Operation, ndx int) {
	op.block = b
	b.ops = append(b.ops, nil)
	copy(b.ops[ndx+1:], b.ops[ndx:])
	b.ops[ndx] = op
}

// remove unlinks op from the block without destroying it.
func (b *Block) remove(op *Operation) {
	for i, o := range b.ops {
		if o == op {
			b.ops = append(b.ops[:i], b.ops[i+1:]...)
			return
		}
	}
}

// indexOf returns the position of op within the block or -1.
func (b *Block) indexOf(op *Operation) int {
	for i, o := range b.ops {
		if o == op {
			return i
		}
	}

	return -1
}
