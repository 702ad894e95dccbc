package qop

import (
	"quill/mir"
)

// Operation names of the quantum dialect.
const (
	OpAlloc   = "qop.alloc"
	OpExtract = "qop.extract"
	OpH       = "qop.h"
	OpX       = "qop.x"
	OpY       = "qop.y"
	OpZ       = "qop.z"
	OpRx      = "qop.rx"
	OpRy      = "qop.ry"
	OpRz      = "qop.rz"
	OpCNot    = "qop.cnot"
	OpMz      = "qop.mz"
	OpReset   = "qop.reset"
	OpDealloc = "qop.dealloc"
)

// AttrRegisterName names the result register of a measurement.  Measurements
// without this attribute receive a synthesized, run-unique name during
// lowering.
const AttrRegisterName = "registerName"

// NewAlloc creates a register allocation of regTy qubits.  For registers of
// unknown size, size must be an i64 value operand; for known sizes it may be
// nil and the size is taken from the type.
func NewAlloc(b *mir.Builder, regTy *RegType, size *mir.Value) *mir.Operation {
	var operands []*mir.Value
	if size != nil {
		operands = append(operands, size)
	}

	return b.Create(OpAlloc, []mir.Type{regTy}, operands, nil)
}

// NewExtract extracts the qubit reference at index ndx from a register.
func NewExtract(b *mir.Builder, reg, ndx *mir.Value) *mir.Operation {
	return b.Create(OpExtract, []mir.Type{NewRef()}, []*mir.Value{reg, ndx}, nil)
}

// NewGate creates a parameterless gate application (h, x, y, z, cnot) on the
// given qubit references.
func NewGate(b *mir.Builder, name string, qubits ...*mir.Value) *mir.Operation {
	return b.Create(name, nil, qubits, nil)
}

// NewRotation creates a rotation gate application (rx, ry, rz) with a
// floating-point angle operand.
func NewRotation(b *mir.Builder, name string, angle, qubit *mir.Value) *mir.Operation {
	return b.Create(name, nil, []*mir.Value{angle, qubit}, nil)
}

// NewMz measures a qubit in the computational basis.  If name is non-empty
// it becomes the measurement's result-register name; otherwise the lowering
// synthesizes one.
func NewMz(b *mir.Builder, qubit *mir.Value, name string) *mir.Operation {
	var attrs map[string]interface{}
	if name != "" {
		attrs = map[string]interface{}{AttrRegisterName: name}
	}

	return b.Create(OpMz, []mir.Type{NewBit()}, []*mir.Value{qubit}, attrs)
}

// NewReset resets a qubit to the zero state.
func NewReset(b *mir.Builder, qubit *mir.Value) *mir.Operation {
	return b.Create(OpReset, nil, []*mir.Value{qubit}, nil)
}

// NewDealloc releases a qubit register.
func NewDealloc(b *mir.Builder, reg *mir.Value) *mir.Operation {
	return b.Create(OpDealloc, nil, []*mir.Value{reg}, nil)
}
