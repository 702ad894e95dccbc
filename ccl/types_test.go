package ccl

import (
	"testing"

	"github.com/llir/llvm/ir/types"
	"github.com/stretchr/testify/assert"
)

func TestTypePrinting(t *testing.T) {
	assert.Equal(t, "!ccl.ptr<double>", NewPointer(types.Double).String())
	assert.Equal(t, "!ccl.array<i64 x 4>", NewArray(types.I64, 4).String())
	assert.Equal(t, "!ccl.array<i64 x ?>", NewArray(types.I64, UnknownSize).String())
	assert.Equal(t, "!ccl.span<double>", NewSpan(types.Double).String())
	assert.Equal(t, "!ccl.struct<packed (i64, i1)>", NewStruct(true, types.I64, types.I1).String())
	assert.Equal(t, "!ccl.callable<(i64) -> (i1)>",
		NewCallable([]types.Type{types.I64}, []types.Type{types.I1}).String())
}

func TestTypeEquality(t *testing.T) {
	assert.True(t, NewPointer(types.Double).Equal(NewPointer(types.Double)))
	assert.False(t, NewPointer(types.Double).Equal(NewPointer(types.I64)))

	// A known size never equals an unknown one.
	assert.False(t, NewArray(types.I64, 4).Equal(NewArray(types.I64, UnknownSize)))

	assert.False(t, NewStruct(true, types.I64).Equal(NewStruct(false, types.I64)))

	// Source types never equal target types, even structurally similar ones.
	assert.False(t, NewPointer(types.Double).Equal(types.NewPointer(types.Double)))
}

func TestArraySizeKnowledge(t *testing.T) {
	assert.True(t, NewArray(types.I8, 1).HasKnownSize())
	assert.False(t, NewArray(types.I8, UnknownSize).HasKnownSize())
}
