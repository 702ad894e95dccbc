package qop

import (
	"fmt"

	"quill/mir"

	"github.com/llir/llvm/ir/types"
)

// DialectName is the dialect prefix of all quantum operations and types.
const DialectName = "qop"

// UnknownSize marks a register type whose qubit count is not known at
// lowering time.
const UnknownSize int64 = -1

// -----------------------------------------------------------------------------

// RegType is a register of qubits with a known or unknown size.
type RegType struct {
	mir.TypeBase

	// Size is the number of qubits in the register, or UnknownSize.
	Size int64
}

// NewReg creates a register type of the given size.
func NewReg(size int64) *RegType {
	return &RegType{Size: size}
}

// HasKnownSize returns true if the register size is known at lowering time.
func (t *RegType) HasKnownSize() bool {
	return t.Size != UnknownSize
}

func (t *RegType) Dialect() string {
	return DialectName
}

func (t *RegType) String() string {
	if t.HasKnownSize() {
		return fmt.Sprintf("!qop.reg<%d>", t.Size)
	}

	return "!qop.reg<?>"
}

func (t *RegType) LLString() string {
	return t.String()
}

func (t *RegType) Equal(u types.Type) bool {
	if other, ok := u.(*RegType); ok {
		return t.Size == other.Size
	}

	return false
}

// -----------------------------------------------------------------------------

// RefType is a reference to a single qubit.
type RefType struct {
	mir.TypeBase
}

// NewRef creates a single-qubit reference type.
func NewRef() *RefType {
	return &RefType{}
}

func (t *RefType) Dialect() string {
	return DialectName
}

func (t *RefType) String() string {
	return "!qop.ref"
}

func (t *RefType) LLString() string {
	return t.String()
}

func (t *RefType) Equal(u types.Type) bool {
	_, ok := u.(*RefType)
	return ok
}

// -----------------------------------------------------------------------------

// BitType is the result of a measurement: a single classical bit.
type BitType struct {
	mir.TypeBase
}

// NewBit creates a measurement-result type.
func NewBit() *BitType {
	return &BitType{}
}

func (t *BitType) Dialect() string {
	return DialectName
}

func (t *BitType) String() string {
	return "!qop.bit"
}

func (t *BitType) LLString() string {
	return t.String()
}

func (t *BitType) Equal(u types.Type) bool {
	_, ok := u.(*BitType)
	return ok
}
