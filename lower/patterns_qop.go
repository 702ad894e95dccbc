package lower

import (
	"strconv"

	"quill/llc"
	"quill/mir"
	"quill/qop"
	"quill/rewrite"

	"github.com/llir/llvm/ir/types"
)

// gateRuntimeFuncs maps each parameterless gate to its quantum instruction
// set function.
var gateRuntimeFuncs = map[string]string{
	qop.OpH:    llc.QIRGateH,
	qop.OpX:    llc.QIRGateX,
	qop.OpY:    llc.QIRGateY,
	qop.OpZ:    llc.QIRGateZ,
	qop.OpCNot: llc.QIRGateCNot,
}

// rotationRuntimeFuncs maps each rotation gate to its quantum instruction
// set function.
var rotationRuntimeFuncs = map[string]string{
	qop.OpRx: llc.QIRGateRx,
	qop.OpRy: llc.QIRGateRy,
	qop.OpRz: llc.QIRGateRz,
}

// qopPatterns returns the quantum-operation lowering catalogue.  The
// measurement counter is shared by every measurement pattern of one run:
// sequential unnamed measurements receive monotonically increasing,
// run-unique register names.  The counter is owned by the driver and never
// outlives a run.
func qopPatterns(counter *int) []rewrite.Pattern {
	patterns := []rewrite.Pattern{
		rewrite.RewriteFunc{RootName: qop.OpAlloc, Fn: lowerAlloc},
		rewrite.RewriteFunc{RootName: qop.OpExtract, Fn: lowerExtract},
		rewrite.RewriteFunc{RootName: qop.OpMz, Fn: lowerMeasure(counter)},
		rewrite.RewriteFunc{RootName: qop.OpReset, Fn: lowerRuntimeCall(llc.QIRReset)},
		rewrite.RewriteFunc{RootName: qop.OpDealloc, Fn: lowerRuntimeCall(llc.QIRQubitReleaseArray)},
	}

	for src, fn := range gateRuntimeFuncs {
		patterns = append(patterns, rewrite.RewriteFunc{RootName: src, Fn: lowerRuntimeCall(fn)})
	}

	for src, fn := range rotationRuntimeFuncs {
		patterns = append(patterns, rewrite.RewriteFunc{RootName: src, Fn: lowerRuntimeCall(fn)})
	}

	return patterns
}

// lowerAlloc allocates a qubit register through the runtime.  The register
// size comes from the size operand if present, otherwise from the register
// type.
func lowerAlloc(op *mir.Operation, rw *rewrite.Rewriter) (bool, error) {
	var size *mir.Value
	if op.NumOperands() > 0 {
		size = op.Operand(0)
	} else {
		regTy := op.Result(0).Type().(*qop.RegType)
		if !regTy.HasKnownSize() {
			return false, passErrorf(ErrCodeLegalization,
				"register allocation of unknown size without a size operand")
		}

		c := rw.Create(llc.OpConstant, []mir.Type{types.I64}, nil, map[string]interface{}{
			llc.AttrValue: regTy.Size,
		})
		size = c.Result(0)
	}

	call := rw.Create(llc.OpCall, []mir.Type{llc.ArrayPtr}, []*mir.Value{size}, map[string]interface{}{
		llc.AttrCallee: llc.QIRQubitAllocateArray,
	})

	rw.ReplaceOp(op, call.Result(0))
	return true, nil
}

// lowerExtract loads the qubit handle stored at a register index.
func lowerExtract(op *mir.Operation, rw *rewrite.Rewriter) (bool, error) {
	raw := rw.Create(llc.OpCall, []mir.Type{types.I8Ptr}, op.Operands(), map[string]interface{}{
		llc.AttrCallee: llc.QIRArrayGetElementPtr,
	})

	slot := rw.Create(llc.OpBitCast, []mir.Type{types.NewPointer(llc.QubitPtr)},
		[]*mir.Value{raw.Result(0)}, nil)

	qubit := rw.Create(llc.OpLoad, []mir.Type{llc.QubitPtr}, []*mir.Value{slot.Result(0)}, nil)

	rw.ReplaceOp(op, qubit.Result(0))
	return true, nil
}

// lowerMeasure lowers a measurement to the runtime measure call followed by
// a result readout.  Measurements without an explicit register name are
// assigned the counter value, which increments once per unnamed measurement
// in visit order.
func lowerMeasure(counter *int) func(*mir.Operation, *rewrite.Rewriter) (bool, error) {
	return func(op *mir.Operation, rw *rewrite.Rewriter) (bool, error) {
		name := op.StringAttr(qop.AttrRegisterName)
		if name == "" {
			name = strconv.Itoa(*counter)
			*counter++
		}

		measured := rw.Create(llc.OpCall, []mir.Type{llc.ResultPtr}, op.Operands(), map[string]interface{}{
			llc.AttrCallee:       llc.QIRMeasure,
			qop.AttrRegisterName: name,
		})

		bit := rw.Create(llc.OpCall, []mir.Type{types.I1},
			[]*mir.Value{measured.Result(0)}, map[string]interface{}{
				llc.AttrCallee: llc.QIRReadResult,
			})

		rw.ReplaceOp(op, bit.Result(0))
		return true, nil
	}
}

// lowerRuntimeCall lowers a result-less quantum operation to a void runtime
// call with the same operands.
func lowerRuntimeCall(fn string) func(*mir.Operation, *rewrite.Rewriter) (bool, error) {
	return func(op *mir.Operation, rw *rewrite.Rewriter) (bool, error) {
		rw.Create(llc.OpCall, nil, op.Operands(), map[string]interface{}{
			llc.AttrCallee: fn,
		})

		rw.EraseOp(op)
		return true, nil
	}
}
