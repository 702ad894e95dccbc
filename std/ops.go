// Package std defines the small arithmetic and control-flow operation set
// shared by both source dialects: scalar constants, integer and float
// binary operations, branches, functions, and calls.
package std

import (
	"quill/mir"

	"github.com/llir/llvm/ir/types"
)

// DialectName is the dialect prefix of the builtin operation set.
const DialectName = "std"

// Operation names of the builtin set.
const (
	OpConstant = "std.constant"
	OpAddI     = "std.addi"
	OpSubI     = "std.subi"
	OpMulI     = "std.muli"
	OpAddF     = "std.addf"
	OpSubF     = "std.subf"
	OpMulF     = "std.mulf"
	OpBr       = "std.br"
	OpCondBr   = "std.cond_br"
	OpReturn   = "std.return"
	OpFunc     = "std.func"
	OpCall     = "std.call"
)

// Attribute keys used by builtin operations.
const (
	// AttrValue holds the constant payload of a constant op as int64 or
	// float64.
	AttrValue = "value"

	// AttrSymName holds the symbol name of a func op.
	AttrSymName = "sym_name"

	// AttrCallee holds the callee symbol of a call op.
	AttrCallee = "callee"

	// AttrResults holds the declared result types of a func op as
	// []mir.Type.
	AttrResults = "results"
)

// NewIntConstant materializes an integer constant of the given bit width.
func NewIntConstant(b *mir.Builder, ty *types.IntType, value int64) *mir.Operation {
	return b.Create(OpConstant, []mir.Type{ty}, nil, map[string]interface{}{AttrValue: value})
}

// NewFloatConstant materializes a floating-point constant.
func NewFloatConstant(b *mir.Builder, ty *types.FloatType, value float64) *mir.Operation {
	return b.Create(OpConstant, []mir.Type{ty}, nil, map[string]interface{}{AttrValue: value})
}

// NewBinary creates a binary arithmetic operation.  The result type is the
// type of the left operand.
func NewBinary(b *mir.Builder, name string, lhs, rhs *mir.Value) *mir.Operation {
	return b.Create(name, []mir.Type{lhs.Type()}, []*mir.Value{lhs, rhs}, nil)
}

// NewBr creates an unconditional branch to target.
func NewBr(b *mir.Builder, target *mir.Block) *mir.Operation {
	op := b.Create(OpBr, nil, nil, nil)
	op.SetSuccessors([]*mir.Block{target})
	return op
}

// NewCondBr creates a conditional branch on cond.
func NewCondBr(b *mir.Builder, cond *mir.Value, onTrue, onFalse *mir.Block) *mir.Operation {
	op := b.Create(OpCondBr, nil, []*mir.Value{cond}, nil)
	op.SetSuccessors([]*mir.Block{onTrue, onFalse})
	return op
}

// NewReturn creates a function return.  values may be empty for a void
// return.
func NewReturn(b *mir.Builder, values ...*mir.Value) *mir.Operation {
	return b.Create(OpReturn, nil, values, nil)
}

// NewFunc creates a function with the given name and signature.  The entry
// block is created with one argument per parameter type; the body is built
// by the caller.
func NewFunc(b *mir.Builder, name string, params, results []mir.Type) *mir.Operation {
	op := b.Create(OpFunc, nil, nil, map[string]interface{}{
		AttrSymName: name,
		AttrResults: results,
	})

	entry := op.AddRegion().NewBlock()
	for _, p := range params {
		entry.AddArg(p)
	}

	return op
}

// NewCall creates a direct call to the named function symbol.
func NewCall(b *mir.Builder, callee string, results []mir.Type, args ...*mir.Value) *mir.Operation {
	return b.Create(OpCall, results, args, map[string]interface{}{AttrCallee: callee})
}
