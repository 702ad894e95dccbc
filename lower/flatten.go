package lower

import (
	"quill/ccl"
	"quill/mir"
	"quill/std"

	"github.com/llir/llvm/ir/types"
)

// flattenConstantArrays eliminates every "materialize a constant array, then
// store it whole into a buffer" idiom.  The target has no bulk array
// constant store, so each qualifying store is decomposed into one scalar
// store per element, addressed at the buffer offset by the element index:
//
//	%arr = ccl.const_array [c0, c1, ... cN-1]
//	%buf = ccl.alloca ...
//	ccl.store %arr, %buf
//	__________________________
//
//	ccl.store c0, %buf[0]
//	ccl.store c1, %buf[1]
//	...
//	ccl.store cN-1, %buf[N-1]
//
// A constant array is only decomposable when all of its uses are stores of
// its whole value.  Anything else, a partial read or the value escaping into
// a call, is a structural violation and fails the run.
func flattenConstantArrays(m *mir.Module) error {
	var arrays []*mir.Operation
	mir.WalkModule(m, func(op *mir.Operation) {
		if op.Name() == ccl.OpConstArray {
			arrays = append(arrays, op)
		}
	})

	for _, carr := range arrays {
		if err := flattenOne(carr); err != nil {
			return err
		}
	}

	return nil
}

func flattenOne(carr *mir.Operation) error {
	result := carr.Result(0)

	// Every use must be the value operand of a store.
	for _, use := range result.Uses() {
		if use.Owner.Name() != ccl.OpStore || use.Index != 0 {
			return passErrorf(ErrCodeConstantArray,
				"constant array has a non-store use in `%s`", use.Owner.Name())
		}
	}

	eleTy := result.Type().(*ccl.ArrayType).Elem

	b := mir.NewBuilder()
	for _, origStore := range result.Users() {
		b.SetInsertionPointBefore(origStore)
		buffer := origStore.Operand(1)

		if err := expandStore(b, carr, eleTy, buffer); err != nil {
			return err
		}

		origStore.Erase()
	}

	carr.Erase()
	return nil
}

// expandStore emits the scalar constant stores for one whole-array store.
func expandStore(b *mir.Builder, carr *mir.Operation, eleTy mir.Type, buffer *mir.Value) error {
	switch values := carr.Attr(ccl.AttrValues).(type) {
	case []int64:
		intTy, ok := eleTy.(*types.IntType)
		if !ok {
			return passErrorf(ErrCodeConstantArray, "integer constant array with element type %s", eleTy)
		}

		for i, c := range values {
			v := std.NewIntConstant(b, intTy, c)
			storeElement(b, eleTy, v.Result(0), buffer, int64(i))
		}

	case []float64:
		fltTy, ok := eleTy.(*types.FloatType)
		if !ok {
			return passErrorf(ErrCodeConstantArray, "float constant array with element type %s", eleTy)
		}

		for i, c := range values {
			v := std.NewFloatConstant(b, fltTy, c)
			storeElement(b, eleTy, v.Result(0), buffer, int64(i))
		}

	default:
		return passErrorf(ErrCodeConstantArray, "constant array without element values")
	}

	return nil
}

// storeElement stores a scalar at the buffer address offset by ndx.
func storeElement(b *mir.Builder, eleTy mir.Type, v, buffer *mir.Value, ndx int64) {
	addr := ccl.NewComputePtr(b, ccl.NewPointer(eleTy), buffer, []int64{ndx})
	ccl.NewStore(b, v, addr.Result(0))
}
