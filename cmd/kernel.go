package cmd

import (
	"quill/ccl"
	"quill/mir"
	"quill/qop"
	"quill/std"

	"github.com/llir/llvm/ir/types"
)

// buildDemoKernel constructs the built-in demonstration kernel: a two-qubit
// entangling circuit that spills a constant rotation table onto the stack,
// rotates by its first entry, and measures both qubits.
func buildDemoKernel() *mir.Module {
	m := mir.NewModule()

	b := mir.NewBuilder()
	b.SetInsertionPointAtEnd(m.Body())

	fn := std.NewFunc(b, "demo_kernel", nil, nil)

	body := mir.NewBuilder()
	body.SetInsertionPointAtEnd(fn.Regions()[0].EntryBlock())

	// The rotation table, materialized whole and stored into its buffer.
	angles := ccl.NewConstArrayFloat(body, types.Double, []float64{0.5, 1.5})
	buffer := ccl.NewAlloca(body, angles.Result(0).Type())
	ccl.NewStore(body, angles.Result(0), buffer.Result(0))

	reg := qop.NewAlloc(body, qop.NewReg(2), nil)
	zero := std.NewIntConstant(body, types.I64, 0)
	one := std.NewIntConstant(body, types.I64, 1)
	q0 := qop.NewExtract(body, reg.Result(0), zero.Result(0))
	q1 := qop.NewExtract(body, reg.Result(0), one.Result(0))

	qop.NewGate(body, qop.OpH, q0.Result(0))
	qop.NewGate(body, qop.OpCNot, q0.Result(0), q1.Result(0))

	anglePtr := ccl.NewComputePtr(body, ccl.NewPointer(types.Double), buffer.Result(0), []int64{0})
	angle := ccl.NewLoad(body, anglePtr.Result(0))
	qop.NewRotation(body, qop.OpRz, angle.Result(0), q1.Result(0))

	// The first measurement names its result register; the second receives
	// a synthesized name during lowering.
	qop.NewMz(body, q0.Result(0), "c0")
	qop.NewMz(body, q1.Result(0), "")

	qop.NewDealloc(body, reg.Result(0))
	std.NewReturn(body)

	return m
}
