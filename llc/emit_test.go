package llc

import (
	"testing"

	"quill/mir"

	"github.com/llir/llvm/ir/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFunc creates a target-dialect function in the module body and returns a
// builder positioned in its entry block.
func newFunc(b *mir.Builder, name string) (*mir.Operation, *mir.Builder) {
	fn := b.Create(OpFunc, nil, nil, map[string]interface{}{AttrSymName: name})
	entry := fn.AddRegion().NewBlock()

	kb := mir.NewBuilder()
	kb.SetInsertionPointAtEnd(entry)
	return fn, kb
}

func TestEmitRuntimeCalls(t *testing.T) {
	m := mir.NewModule()
	b := mir.NewBuilder()
	b.SetInsertionPointAtEnd(m.Body())

	_, kb := newFunc(b, "kernel")

	size := NewConstant(kb, types.I64, int64(2))
	reg := NewCall(kb, QIRQubitAllocateArray, []mir.Type{ArrayPtr}, size.Result(0))
	NewCall(kb, QIRQubitReleaseArray, nil, reg.Result(0))
	kb.Create(OpReturn, nil, nil, nil)

	llmod, err := EmitModule(m)
	require.NoError(t, err)

	text := llmod.String()
	assert.Contains(t, text, "define void @kernel()")
	assert.Contains(t, text, "call %Array* @__quantum__rt__qubit_allocate_array(i64 2)")
	assert.Contains(t, text, "call void @__quantum__rt__qubit_release_array")

	// Runtime functions are declared on first use.
	assert.Contains(t, text, "declare %Array* @__quantum__rt__qubit_allocate_array(i64 %arg0)")
	assert.Contains(t, text, "%Array = type opaque")
}

func TestEmitFunctionWithResult(t *testing.T) {
	m := mir.NewModule()
	b := mir.NewBuilder()
	b.SetInsertionPointAtEnd(m.Body())

	fn := b.Create(OpFunc, nil, nil, map[string]interface{}{
		AttrSymName: "answer",
		AttrResults: []mir.Type{types.I64},
	})
	entry := fn.AddRegion().NewBlock()

	kb := mir.NewBuilder()
	kb.SetInsertionPointAtEnd(entry)
	c := NewConstant(kb, types.I64, int64(42))
	kb.Create(OpReturn, nil, []*mir.Value{c.Result(0)}, nil)

	llmod, err := EmitModule(m)
	require.NoError(t, err)

	text := llmod.String()
	assert.Contains(t, text, "define i64 @answer()")
	assert.Contains(t, text, "ret i64 42")
}

func TestEmitMemoryOperations(t *testing.T) {
	m := mir.NewModule()
	b := mir.NewBuilder()
	b.SetInsertionPointAtEnd(m.Body())

	_, kb := newFunc(b, "mem")

	arrTy := types.NewArray(2, types.Double)
	buf := kb.Create(OpAlloca, []mir.Type{types.NewPointer(arrTy)}, nil, map[string]interface{}{
		AttrElem: arrTy,
	})

	slot := kb.Create(OpGetElementPtr, []mir.Type{types.NewPointer(types.Double)},
		[]*mir.Value{buf.Result(0)}, map[string]interface{}{
			AttrElem:    arrTy,
			AttrIndices: []int64{0, 1},
		})

	c := NewConstant(kb, types.Double, 0.5)
	kb.Create(OpStore, nil, []*mir.Value{c.Result(0), slot.Result(0)}, nil)
	kb.Create(OpLoad, []mir.Type{types.Double}, []*mir.Value{slot.Result(0)}, nil)
	kb.Create(OpReturn, nil, nil, nil)

	llmod, err := EmitModule(m)
	require.NoError(t, err)

	text := llmod.String()
	assert.Contains(t, text, "alloca [2 x double]")
	assert.Contains(t, text, "getelementptr [2 x double], [2 x double]* %0, i32 0, i32 1")
	assert.Contains(t, text, "store double")
	assert.Contains(t, text, "load double, double* %1")
}

func TestEmitClosureAggregate(t *testing.T) {
	m := mir.NewModule()
	b := mir.NewBuilder()
	b.SetInsertionPointAtEnd(m.Body())

	_, tb := newFunc(b, "callee")
	tb.Create(OpReturn, nil, nil, nil)

	_, kb := newFunc(b, "caller")

	pairTy := PairOfPointers()
	pair := kb.Create(OpUndef, []mir.Type{pairTy}, nil, nil)
	addr := kb.Create(OpAddressOf, []mir.Type{types.I8Ptr}, nil, map[string]interface{}{
		AttrSymbol: "callee",
	})
	withFn := kb.Create(OpInsertValue, []mir.Type{pairTy},
		[]*mir.Value{pair.Result(0), addr.Result(0)},
		map[string]interface{}{AttrIndex: int64(1)})
	kb.Create(OpExtractValue, []mir.Type{types.I8Ptr},
		[]*mir.Value{withFn.Result(0)}, map[string]interface{}{AttrIndex: int64(1)})
	kb.Create(OpReturn, nil, nil, nil)

	llmod, err := EmitModule(m)
	require.NoError(t, err)

	text := llmod.String()

	// The function address is cast to the untyped slot representation.
	assert.Contains(t, text, "bitcast void ()* @callee to i8*")
	assert.Contains(t, text, "insertvalue { i8*, i8* }")
	assert.Contains(t, text, "extractvalue { i8*, i8* }")
}

func TestEmitBranches(t *testing.T) {
	m := mir.NewModule()
	b := mir.NewBuilder()
	b.SetInsertionPointAtEnd(m.Body())

	fn, kb := newFunc(b, "branchy")
	region := fn.Regions()[0]
	then := region.NewBlock()
	done := region.NewBlock()

	cond := NewConstant(kb, types.I1, int64(1))
	br := kb.Create(OpCondBr, nil, []*mir.Value{cond.Result(0)}, nil)
	br.SetSuccessors([]*mir.Block{then, done})

	tb := mir.NewBuilder()
	tb.SetInsertionPointAtEnd(then)
	jmp := tb.Create(OpBr, nil, nil, nil)
	jmp.SetSuccessors([]*mir.Block{done})

	db := mir.NewBuilder()
	db.SetInsertionPointAtEnd(done)
	db.Create(OpReturn, nil, nil, nil)

	llmod, err := EmitModule(m)
	require.NoError(t, err)

	text := llmod.String()
	assert.Contains(t, text, "br i1 true, label %bb1, label %bb2")
	assert.Contains(t, text, "br label %bb2")
}

func TestEmitRejectsFailedModule(t *testing.T) {
	m := mir.NewModule()
	m.MarkFailed()

	_, err := EmitModule(m)
	assert.Error(t, err)
}

func TestEmitRejectsNonFunctionModuleOps(t *testing.T) {
	m := mir.NewModule()
	b := mir.NewBuilder()
	b.SetInsertionPointAtEnd(m.Body())
	b.Create("qop.alloc", nil, nil, nil)

	_, err := EmitModule(m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "qop.alloc")
}

func TestEmitRejectsUndeclaredCallee(t *testing.T) {
	m := mir.NewModule()
	b := mir.NewBuilder()
	b.SetInsertionPointAtEnd(m.Body())

	_, kb := newFunc(b, "kernel")
	NewCall(kb, "not_a_runtime_function", nil)
	kb.Create(OpReturn, nil, nil, nil)

	_, err := EmitModule(m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not_a_runtime_function")
}

func TestRuntimeSignatureTable(t *testing.T) {
	sig := RuntimeSignature(QIRMeasure)
	require.NotNil(t, sig)
	assert.True(t, ResultPtr.Equal(sig.RetType))
	require.Len(t, sig.Params, 1)
	assert.True(t, QubitPtr.Equal(sig.Params[0]))

	assert.Nil(t, RuntimeSignature("__quantum__rt__unheard_of"))
}
