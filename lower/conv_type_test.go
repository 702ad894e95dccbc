package lower

import (
	"testing"

	"quill/ccl"
	"quill/llc"
	"quill/qop"

	"github.com/llir/llvm/ir/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertQuantumHandles(t *testing.T) {
	tc := NewTypeConverter()

	reg, err := tc.Convert(qop.NewReg(4))
	require.NoError(t, err)
	assert.True(t, llc.ArrayPtr.Equal(reg))

	// Registers of unknown size lower to the same opaque handle.
	unknown, err := tc.Convert(qop.NewReg(qop.UnknownSize))
	require.NoError(t, err)
	assert.True(t, llc.ArrayPtr.Equal(unknown))

	ref, err := tc.Convert(qop.NewRef())
	require.NoError(t, err)
	assert.True(t, llc.QubitPtr.Equal(ref))

	bit, err := tc.Convert(qop.NewBit())
	require.NoError(t, err)
	assert.True(t, types.I1.Equal(bit))
}

func TestConvertStateAndCallable(t *testing.T) {
	tc := NewTypeConverter()

	state, err := tc.Convert(ccl.NewState())
	require.NoError(t, err)
	assert.True(t, llc.StatePtr.Equal(state))

	callable, err := tc.Convert(ccl.NewCallable(nil, nil))
	require.NoError(t, err)
	assert.True(t, llc.PairOfPointers().Equal(callable))
}

func TestConvertSpanRecursion(t *testing.T) {
	tc := NewTypeConverter()

	span, err := tc.Convert(ccl.NewSpan(types.Double))
	require.NoError(t, err)
	assert.True(t, types.NewStruct(types.I64, types.NewPointer(types.Double)).Equal(span))

	// A span of spans must resolve all the way down.
	nested, err := tc.Convert(ccl.NewSpan(ccl.NewSpan(types.I32)))
	require.NoError(t, err)

	innerTy := types.NewStruct(types.I64, types.NewPointer(types.I32))
	assert.True(t, types.NewStruct(types.I64, types.NewPointer(innerTy)).Equal(nested))
}

func TestConvertPointerRules(t *testing.T) {
	tc := NewTypeConverter()

	plain, err := tc.Convert(ccl.NewPointer(types.Double))
	require.NoError(t, err)
	assert.True(t, types.NewPointer(types.Double).Equal(plain))

	// Pointer to no information degrades to an untyped pointer.
	none, err := tc.Convert(ccl.NewPointer(ccl.NewNone()))
	require.NoError(t, err)
	assert.True(t, types.I8Ptr.Equal(none))

	// Pointer to an array of unknown size flattens into a raw element
	// pointer.
	decayed, err := tc.Convert(ccl.NewPointer(ccl.NewArray(types.Double, ccl.UnknownSize)))
	require.NoError(t, err)
	assert.True(t, types.NewPointer(types.Double).Equal(decayed))

	// A fixed-size array behind a pointer must have been rewritten into a
	// direct array type before conversion.
	_, err = tc.Convert(ccl.NewPointer(ccl.NewArray(types.Double, 2)))
	require.Error(t, err)
	assert.Equal(t, ErrCodeTypeConversion, err.(*PassError).Code)
}

func TestConvertArrayRules(t *testing.T) {
	tc := NewTypeConverter()

	fixed, err := tc.Convert(ccl.NewArray(types.I64, 3))
	require.NoError(t, err)
	assert.True(t, types.NewArray(3, types.I64).Equal(fixed))

	// Arrays of unknown size have no direct target representation and pass
	// through unchanged; they stay illegal outside a pointer or span.
	unknown := ccl.NewArray(types.I64, ccl.UnknownSize)
	conv, err := tc.Convert(unknown)
	require.NoError(t, err)
	assert.Equal(t, unknown, conv)
}

func TestConvertStructPreservesPacking(t *testing.T) {
	tc := NewTypeConverter()

	packed, err := tc.Convert(ccl.NewStruct(true, types.I64, qop.NewBit()))
	require.NoError(t, err)

	st, ok := packed.(*types.StructType)
	require.True(t, ok)
	assert.True(t, st.Packed)
	require.Len(t, st.Fields, 2)
	assert.True(t, types.I64.Equal(st.Fields[0]))
	assert.True(t, types.I1.Equal(st.Fields[1]))
}

func TestConvertNoneOutsidePointerFails(t *testing.T) {
	tc := NewTypeConverter()

	_, err := tc.Convert(ccl.NewNone())
	require.Error(t, err)
	assert.Equal(t, ErrCodeTypeConversion, err.(*PassError).Code)
}

func TestConvertTargetTypesPassThrough(t *testing.T) {
	tc := NewTypeConverter()

	conv, err := tc.Convert(types.I64)
	require.NoError(t, err)
	assert.Equal(t, types.Type(types.I64), conv)

	ptr := types.NewPointer(llc.QubitPtr)
	conv, err = tc.Convert(ptr)
	require.NoError(t, err)
	assert.Equal(t, types.Type(ptr), conv)
}

func TestConvertIsMemoized(t *testing.T) {
	tc := NewTypeConverter()

	src := ccl.NewSpan(types.Double)
	first, err := tc.Convert(src)
	require.NoError(t, err)

	second, err := tc.Convert(src)
	require.NoError(t, err)

	// The same source type object always yields the same target object
	// within one run.
	assert.Same(t, first, second)
}
