package llc

import (
	"github.com/llir/llvm/ir/types"
)

// Names of the QIR runtime and quantum-instruction-set functions emitted by
// the lowering patterns.
const (
	QIRQubitAllocateArray = "__quantum__rt__qubit_allocate_array"
	QIRQubitReleaseArray  = "__quantum__rt__qubit_release_array"
	QIRArrayGetElementPtr = "__quantum__rt__array_get_element_ptr_1d"
	QIRReadResult         = "__quantum__rt__read_result"
	QIRMeasure            = "__quantum__qis__mz"
	QIRReset              = "__quantum__qis__reset"
	QIRGateH              = "__quantum__qis__h"
	QIRGateX              = "__quantum__qis__x"
	QIRGateY              = "__quantum__qis__y"
	QIRGateZ              = "__quantum__qis__z"
	QIRGateRx             = "__quantum__qis__rx"
	QIRGateRy             = "__quantum__qis__ry"
	QIRGateRz             = "__quantum__qis__rz"
	QIRGateCNot           = "__quantum__qis__cnot"
)

// The opaque QIR handle types.  They are identified structs, so equality is
// by name and one shared instance per handle suffices.
var (
	arrayTy  = &types.StructType{TypeName: "Array", Opaque: true}
	qubitTy  = &types.StructType{TypeName: "Qubit", Opaque: true}
	resultTy = &types.StructType{TypeName: "Result", Opaque: true}
	stateTy  = &types.StructType{TypeName: "State", Opaque: true}

	// ArrayPtr is the opaque array-handle type `%Array*`.
	ArrayPtr = types.NewPointer(arrayTy)

	// QubitPtr is the opaque qubit-handle type `%Qubit*`.
	QubitPtr = types.NewPointer(qubitTy)

	// ResultPtr is the opaque measurement-result handle type `%Result*`.
	ResultPtr = types.NewPointer(resultTy)

	// StatePtr is the backend state-representation type `%State*`.
	StatePtr = types.NewPointer(stateTy)
)

// PairOfPointers returns the two-word closure representation: a data pointer
// together with a function pointer.  The representation fits the calling
// convention without boxing or reference counting.
func PairOfPointers() *types.StructType {
	return types.NewStruct(types.I8Ptr, types.I8Ptr)
}

// runtimeSignatures maps each runtime function name to its signature.  The
// emitter declares these on first use.
var runtimeSignatures = map[string]*types.FuncType{
	QIRQubitAllocateArray: types.NewFunc(ArrayPtr, types.I64),
	QIRQubitReleaseArray:  types.NewFunc(types.Void, ArrayPtr),
	QIRArrayGetElementPtr: types.NewFunc(types.I8Ptr, ArrayPtr, types.I64),
	QIRReadResult:         types.NewFunc(types.I1, ResultPtr),
	QIRMeasure:            types.NewFunc(ResultPtr, QubitPtr),
	QIRReset:              types.NewFunc(types.Void, QubitPtr),
	QIRGateH:              types.NewFunc(types.Void, QubitPtr),
	QIRGateX:              types.NewFunc(types.Void, QubitPtr),
	QIRGateY:              types.NewFunc(types.Void, QubitPtr),
	QIRGateZ:              types.NewFunc(types.Void, QubitPtr),
	QIRGateRx:             types.NewFunc(types.Void, types.Double, QubitPtr),
	QIRGateRy:             types.NewFunc(types.Void, types.Double, QubitPtr),
	QIRGateRz:             types.NewFunc(types.Void, types.Double, QubitPtr),
	QIRGateCNot:           types.NewFunc(types.Void, QubitPtr, QubitPtr),
}

// RuntimeSignature returns the signature of a QIR runtime function, or nil
// if the name is not part of the runtime surface.
func RuntimeSignature(name string) *types.FuncType {
	return runtimeSignatures[name]
}
