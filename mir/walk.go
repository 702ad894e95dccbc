package mir

// Walk visits every operation nested under root in pre-order: an operation
// is visited before the operations inside its regions.  The visit list is
// snapshotted up front, so the callback may erase the operation it is given
// or create new operations without corrupting the traversal; operations
// erased before their turn are skipped, operations created during the walk
// are not visited.
func Walk(root *Operation, fn func(*Operation)) {
	for _, op := range collect(root) {
		if !op.Erased() {
			fn(op)
		}
	}
}

// WalkModule visits every operation in the module body, recursively.
func WalkModule(m *Module, fn func(*Operation)) {
	Walk(m.op, fn)
}

// collect gathers the operations nested under root in pre-order.  The root
// itself is not included.
func collect(root *Operation) []*Operation {
	var ops []*Operation

	var visit func(op *Operation)
	visit = func(op *Operation) {
		for _, r := range op.regions {
			for _, b := range r.blocks {
				for _, nested := range b.ops {
					ops = append(ops, nested)
					visit(nested)
				}
			}
		}
	}

	visit(root)
	return ops
}
