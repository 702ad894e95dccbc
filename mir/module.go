package mir

// ModuleOpName is the operation name of the module container.  It is the one
// non-target operation that remains legal after a conversion run.
const ModuleOpName = "mir.module"

// Module is the top-level container of an IR graph.  It wraps the module
// container operation, whose single region holds one block containing the
// module-level operations (functions and globals).
type Module struct {
	op *Operation

	// failed records whether a pass run over this module has signalled a
	// fatal failure.  Once set, the graph is considered corrupt and must be
	// discarded by the caller.
	failed bool

	// diags collects the diagnostics attached to the module by failing
	// passes.
	diags []string
}

// NewModule creates an empty module.
func NewModule() *Module {
	op := NewOperation(ModuleOpName, nil, nil, nil)
	op.AddRegion().NewBlock()
	return &Module{op: op}
}

// Op returns the module container operation.
func (m *Module) Op() *Operation {
	return m.op
}

// Body returns the single block holding the module-level operations.
func (m *Module) Body() *Block {
	return m.op.regions[0].blocks[0]
}

// MarkFailed marks the module as failed.  No partially-lowered module is
// ever handed downstream: callers must check Failed before using the graph.
func (m *Module) MarkFailed() {
	m.failed = true
}

// Failed reports whether a pass has failed on this module.
func (m *Module) Failed() bool {
	return m.failed
}

// EmitError attaches a diagnostic message to the module.
func (m *Module) EmitError(msg string) {
	m.diags = append(m.diags, msg)
}

// Diagnostics returns the diagnostics attached to the module.
func (m *Module) Diagnostics() []string {
	return m.diags
}
