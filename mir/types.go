// Package mir implements the compact IR framework the lowering pipeline is
// built on: typed operations with use-tracked values, regions and blocks, an
// insertion-point builder, a pre-order walker, and the module container.
package mir

import (
	"github.com/llir/llvm/ir/types"
)

// Type is the type of an IR value.  The target type system is used directly:
// target types are llir types, and source dialect types implement the same
// interface so that one value representation covers both sides of a
// conversion.
type Type = types.Type

// DialectType is implemented by every source dialect type.  Target types do
// not implement it, which is what makes legality checkable per value.
type DialectType interface {
	types.Type

	// Dialect returns the dialect prefix of the type, eg. `qop`.
	Dialect() string
}

// IsDialectType returns true if t belongs to a source dialect.
func IsDialectType(t Type) bool {
	_, ok := t.(DialectType)
	return ok
}

// TypeBase supplies the name bookkeeping of the llir type interface so that
// dialect types only implement what is meaningful for them.
type TypeBase struct {
	TypeName string
}

// Name returns the type name.
func (b *TypeBase) Name() string {
	return b.TypeName
}

// SetName sets the type name.
func (b *TypeBase) SetName(name string) {
	b.TypeName = name
}
