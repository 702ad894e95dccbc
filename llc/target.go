// Package llc defines the legal target surface of the lowering pipeline:
// the LLVM-dialect operation set produced by conversion, the QIR runtime
// function table, and the translation of a legal module into an llir module
// ready to be printed as textual LLVM IR.
package llc

import (
	"quill/mir"
)

// DialectName is the dialect prefix of all target operations.
const DialectName = "llvm"

// Operation names of the target dialect.
const (
	OpFunc          = "llvm.func"
	OpCall          = "llvm.call"
	OpConstant      = "llvm.constant"
	OpAlloca        = "llvm.alloca"
	OpLoad          = "llvm.load"
	OpStore         = "llvm.store"
	OpGetElementPtr = "llvm.getelementptr"
	OpBitCast       = "llvm.bitcast"
	OpUndef         = "llvm.undef"
	OpInsertValue   = "llvm.insertvalue"
	OpExtractValue  = "llvm.extractvalue"
	OpAddressOf     = "llvm.addressof"
	OpAdd           = "llvm.add"
	OpSub           = "llvm.sub"
	OpMul           = "llvm.mul"
	OpFAdd          = "llvm.fadd"
	OpFSub          = "llvm.fsub"
	OpFMul          = "llvm.fmul"
	OpBr            = "llvm.br"
	OpCondBr        = "llvm.cond_br"
	OpReturn        = "llvm.return"
)

// Attribute keys used by target operations.
const (
	// AttrSymName holds the symbol name of a func op.
	AttrSymName = "sym_name"

	// AttrResults holds the declared result types of a func op as
	// []mir.Type.
	AttrResults = "results"

	// AttrCallee holds the callee symbol of a call op.  An empty callee
	// means an indirect call through the first operand.
	AttrCallee = "callee"

	// AttrValue holds the payload of a constant op as int64 or float64.
	AttrValue = "value"

	// AttrElem holds the pointee or aggregate type of alloca and
	// getelementptr ops.
	AttrElem = "elem"

	// AttrIndices holds the constant offsets of a getelementptr op as
	// []int64.
	AttrIndices = "indices"

	// AttrIndex holds the aggregate position of insertvalue and
	// extractvalue ops.
	AttrIndex = "index"

	// AttrSymbol holds the referenced function symbol of an addressof op.
	AttrSymbol = "symbol"
)

// NewCall creates a direct call to the named symbol.
func NewCall(b *mir.Builder, callee string, results []mir.Type, args ...*mir.Value) *mir.Operation {
	return b.Create(OpCall, results, args, map[string]interface{}{AttrCallee: callee})
}

// NewIndirectCall creates a call through a function pointer operand.
func NewIndirectCall(b *mir.Builder, fn *mir.Value, results []mir.Type, args ...*mir.Value) *mir.Operation {
	operands := append([]*mir.Value{fn}, args...)
	return b.Create(OpCall, results, operands, map[string]interface{}{AttrCallee: ""})
}

// NewConstant materializes a scalar constant.  value must be an int64 for
// integer types or a float64 for floating-point types.
func NewConstant(b *mir.Builder, ty mir.Type, value interface{}) *mir.Operation {
	return b.Create(OpConstant, []mir.Type{ty}, nil, map[string]interface{}{AttrValue: value})
}
