package rewrite

import (
	"errors"
	"testing"

	"quill/mir"
	"quill/qop"

	"github.com/llir/llvm/ir/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testModule(ops ...string) *mir.Module {
	m := mir.NewModule()
	b := mir.NewBuilder()
	b.SetInsertionPointAtEnd(m.Body())

	for _, name := range ops {
		b.Create(name, nil, nil, nil)
	}

	return m
}

func opNames(m *mir.Module) []string {
	var names []string
	mir.WalkModule(m, func(op *mir.Operation) {
		names = append(names, op.Name())
	})
	return names
}

func TestApplyGreedilyEmptyPatternSet(t *testing.T) {
	m := testModule("src.a", "src.b")

	require.NoError(t, ApplyGreedily(m, nil))
	assert.Equal(t, []string{"src.a", "src.b"}, opNames(m))
}

func TestApplyGreedilyReachesFixpoint(t *testing.T) {
	m := testModule("src.a", "src.a", "src.b")

	// src.a -> src.b, src.b -> dst.c: two rounds to the fixpoint.
	patterns := []Pattern{
		RewriteFunc{RootName: "src.a", Fn: func(op *mir.Operation, rw *Rewriter) (bool, error) {
			rw.Create("src.b", nil, nil, nil)
			rw.EraseOp(op)
			return true, nil
		}},
		RewriteFunc{RootName: "src.b", Fn: func(op *mir.Operation, rw *Rewriter) (bool, error) {
			rw.Create("dst.c", nil, nil, nil)
			rw.EraseOp(op)
			return true, nil
		}},
	}

	require.NoError(t, ApplyGreedily(m, patterns))
	assert.Equal(t, []string{"dst.c", "dst.c", "dst.c"}, opNames(m))
}

func TestApplyGreedilyDecliningPatternIsNotProgress(t *testing.T) {
	m := testModule("src.a")

	calls := 0
	patterns := []Pattern{
		RewriteFunc{RootName: "src.a", Fn: func(op *mir.Operation, rw *Rewriter) (bool, error) {
			calls++
			return false, nil
		}},
	}

	require.NoError(t, ApplyGreedily(m, patterns))
	assert.Equal(t, 1, calls, "a declined match must end the run after one round")
	assert.Equal(t, []string{"src.a"}, opNames(m))
}

func TestApplyGreedilyPropagatesPatternError(t *testing.T) {
	m := testModule("src.a")

	boom := errors.New("boom")
	patterns := []Pattern{
		RewriteFunc{RootName: "src.a", Fn: func(op *mir.Operation, rw *Rewriter) (bool, error) {
			return false, boom
		}},
	}

	assert.ErrorIs(t, ApplyGreedily(m, patterns), boom)
}

func TestApplyGreedilyDetectsNonTermination(t *testing.T) {
	m := testModule("src.a")

	// The pattern keeps rewriting its own output.
	patterns := []Pattern{
		RewriteFunc{RootName: "src.a", Fn: func(op *mir.Operation, rw *Rewriter) (bool, error) {
			rw.Create("src.a", nil, nil, nil)
			rw.EraseOp(op)
			return true, nil
		}},
	}

	assert.Error(t, ApplyGreedily(m, patterns))
}

func TestTargetLegality(t *testing.T) {
	target := NewTarget()
	target.AddLegalDialect("llvm")
	target.AddLegalOp(mir.ModuleOpName)

	legal := mir.NewOperation("llvm.call", []mir.Type{types.I64}, nil, nil)
	assert.True(t, target.IsLegal(legal))

	container := mir.NewOperation(mir.ModuleOpName, nil, nil, nil)
	assert.True(t, target.IsLegal(container))

	wrongName := mir.NewOperation("qop.h", nil, nil, nil)
	assert.False(t, target.IsLegal(wrongName))
}

func TestTargetRejectsDialectTypes(t *testing.T) {
	target := NewTarget()
	target.AddLegalDialect("llvm")

	// Legal name, but the result type still belongs to a source dialect.
	dialectResult := mir.NewOperation("llvm.call", []mir.Type{qop.NewRef()}, nil, nil)
	assert.False(t, target.IsLegal(dialectResult))

	def := mir.NewOperation("llvm.constant", []mir.Type{qop.NewBit()}, nil, nil)
	dialectOperand := mir.NewOperation("llvm.call", nil, []*mir.Value{def.Result(0)}, nil)
	assert.False(t, target.IsLegal(dialectOperand))

	withRegion := mir.NewOperation("llvm.func", nil, nil, nil)
	withRegion.AddRegion().NewBlock().AddArg(qop.NewRef())
	assert.False(t, target.IsLegal(withRegion))
}

func TestApplyFullConversionLegalizesEverything(t *testing.T) {
	m := testModule("src.a", "src.a")

	target := NewTarget()
	target.AddLegalDialect("dst")
	target.AddLegalOp(mir.ModuleOpName)

	patterns := []Pattern{
		RewriteFunc{RootName: "src.a", Fn: func(op *mir.Operation, rw *Rewriter) (bool, error) {
			rw.Create("dst.a", nil, nil, nil)
			rw.EraseOp(op)
			return true, nil
		}},
	}

	require.NoError(t, ApplyFullConversion(m, target, patterns))
	assert.Equal(t, []string{"dst.a", "dst.a"}, opNames(m))
}

func TestApplyFullConversionAllOrNothing(t *testing.T) {
	m := testModule("src.a", "src.unknown")

	target := NewTarget()
	target.AddLegalDialect("dst")
	target.AddLegalOp(mir.ModuleOpName)

	patterns := []Pattern{
		RewriteFunc{RootName: "src.a", Fn: func(op *mir.Operation, rw *Rewriter) (bool, error) {
			rw.Create("dst.a", nil, nil, nil)
			rw.EraseOp(op)
			return true, nil
		}},
	}

	err := ApplyFullConversion(m, target, patterns)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "src.unknown")
}

func TestApplyFullConversionMultiRound(t *testing.T) {
	// src.a lowers to src.b, which lowers to dst.c: the driver must keep
	// iterating until the intermediate form is legalized as well.
	m := testModule("src.a")

	target := NewTarget()
	target.AddLegalDialect("dst")
	target.AddLegalOp(mir.ModuleOpName)

	patterns := []Pattern{
		RewriteFunc{RootName: "src.a", Fn: func(op *mir.Operation, rw *Rewriter) (bool, error) {
			rw.Create("src.b", nil, nil, nil)
			rw.EraseOp(op)
			return true, nil
		}},
		RewriteFunc{RootName: "src.b", Fn: func(op *mir.Operation, rw *Rewriter) (bool, error) {
			rw.Create("dst.c", nil, nil, nil)
			rw.EraseOp(op)
			return true, nil
		}},
	}

	require.NoError(t, ApplyFullConversion(m, target, patterns))
	assert.Equal(t, []string{"dst.c"}, opNames(m))
}
