package ccl

import (
	"quill/mir"
)

// Operation names of the classical control and closure dialect.
const (
	OpAlloca         = "ccl.alloca"
	OpLoad           = "ccl.load"
	OpStore          = "ccl.store"
	OpConstArray     = "ccl.const_array"
	OpComputePtr     = "ccl.compute_ptr"
	OpCallableCreate = "ccl.callable_create"
	OpCallableInvoke = "ccl.callable_invoke"
	OpStdvecInit     = "ccl.stdvec_init"
	OpUndef          = "ccl.undef"
)

// Attribute keys used by classical operations.
const (
	// AttrValues holds the element constants of a const_array as []int64 or
	// []float64.
	AttrValues = "values"

	// AttrIndices holds the constant offsets of a compute_ptr as []int64.
	AttrIndices = "indices"

	// AttrCallee holds the function symbol captured by a callable_create.
	AttrCallee = "callee"
)

// NewAlloca allocates stack storage for a value of type elem and returns a
// pointer to it.
func NewAlloca(b *mir.Builder, elem mir.Type) *mir.Operation {
	return b.Create(OpAlloca, []mir.Type{NewPointer(elem)}, nil, nil)
}

// NewLoad loads the value behind ptr.  The result type is the pointee type.
func NewLoad(b *mir.Builder, ptr *mir.Value) *mir.Operation {
	elem := ptr.Type().(*PointerType).Elem
	return b.Create(OpLoad, []mir.Type{elem}, []*mir.Value{ptr}, nil)
}

// NewStore stores value behind ptr.
func NewStore(b *mir.Builder, value, ptr *mir.Value) *mir.Operation {
	return b.Create(OpStore, nil, []*mir.Value{value, ptr}, nil)
}

// NewConstArrayInt materializes a constant array of integer elements.
func NewConstArrayInt(b *mir.Builder, elem mir.Type, values []int64) *mir.Operation {
	arrTy := NewArray(elem, int64(len(values)))
	return b.Create(OpConstArray, []mir.Type{arrTy}, nil, map[string]interface{}{AttrValues: values})
}

// NewConstArrayFloat materializes a constant array of floating-point
// elements.
func NewConstArrayFloat(b *mir.Builder, elem mir.Type, values []float64) *mir.Operation {
	arrTy := NewArray(elem, int64(len(values)))
	return b.Create(OpConstArray, []mir.Type{arrTy}, nil, map[string]interface{}{AttrValues: values})
}

// NewComputePtr computes the address of an element relative to a base
// pointer using constant offsets.
func NewComputePtr(b *mir.Builder, resTy *PointerType, base *mir.Value, indices []int64) *mir.Operation {
	return b.Create(OpComputePtr, []mir.Type{resTy}, []*mir.Value{base}, map[string]interface{}{AttrIndices: indices})
}

// NewCallableCreate packages a function symbol and an environment pointer
// into a callable value.
func NewCallableCreate(b *mir.Builder, ty *CallableType, callee string, env *mir.Value) *mir.Operation {
	var operands []*mir.Value
	if env != nil {
		operands = append(operands, env)
	}

	return b.Create(OpCallableCreate, []mir.Type{ty}, operands, map[string]interface{}{AttrCallee: callee})
}

// NewCallableInvoke invokes a callable value with the given arguments.
func NewCallableInvoke(b *mir.Builder, results []mir.Type, callable *mir.Value, args ...*mir.Value) *mir.Operation {
	operands := append([]*mir.Value{callable}, args...)
	return b.Create(OpCallableInvoke, results, operands, nil)
}

// NewStdvecInit builds a span value from a buffer pointer and a length.
func NewStdvecInit(b *mir.Builder, spanTy *SpanType, buffer, length *mir.Value) *mir.Operation {
	return b.Create(OpStdvecInit, []mir.Type{spanTy}, []*mir.Value{buffer, length}, nil)
}

// NewUndef materializes an undefined value of the given type.
func NewUndef(b *mir.Builder, ty mir.Type) *mir.Operation {
	return b.Create(OpUndef, []mir.Type{ty}, nil, nil)
}
