package ccl

import (
	"fmt"
	"strings"

	"quill/mir"

	"github.com/llir/llvm/ir/types"
)

// DialectName is the dialect prefix of all classical control and closure
// operations and types.
const DialectName = "ccl"

// UnknownSize marks an array type whose element count is not known at
// lowering time.  Such arrays are representable only behind a pointer or
// span wrapper.
const UnknownSize int64 = -1

// -----------------------------------------------------------------------------

// StateType is an abstract handle to a backend simulation state.
type StateType struct {
	mir.TypeBase
}

// NewState creates a state-handle type.
func NewState() *StateType {
	return &StateType{}
}

func (t *StateType) Dialect() string {
	return DialectName
}

func (t *StateType) String() string {
	return "!ccl.state"
}

func (t *StateType) LLString() string {
	return t.String()
}

func (t *StateType) Equal(u types.Type) bool {
	_, ok := u.(*StateType)
	return ok
}

// -----------------------------------------------------------------------------

// CallableType is an opaque closure value: a callable together with its
// captured environment.
type CallableType struct {
	mir.TypeBase

	// In and Out are the parameter and result types of the callable's
	// signature.
	In  []mir.Type
	Out []mir.Type
}

// NewCallable creates a callable type with the given signature.
func NewCallable(in, out []mir.Type) *CallableType {
	return &CallableType{In: in, Out: out}
}

func (t *CallableType) Dialect() string {
	return DialectName
}

func (t *CallableType) String() string {
	var in, out []string
	for _, p := range t.In {
		in = append(in, p.String())
	}
	for _, r := range t.Out {
		out = append(out, r.String())
	}

	return fmt.Sprintf("!ccl.callable<(%s) -> (%s)>", strings.Join(in, ", "), strings.Join(out, ", "))
}

func (t *CallableType) LLString() string {
	return t.String()
}

func (t *CallableType) Equal(u types.Type) bool {
	other, ok := u.(*CallableType)
	if !ok || len(t.In) != len(other.In) || len(t.Out) != len(other.Out) {
		return false
	}

	for i, p := range t.In {
		if !p.Equal(other.In[i]) {
			return false
		}
	}
	for i, r := range t.Out {
		if !r.Equal(other.Out[i]) {
			return false
		}
	}

	return true
}

// -----------------------------------------------------------------------------

// SpanType is a runtime-sized sequence: a length together with a pointer to
// the elements.
type SpanType struct {
	mir.TypeBase

	// Elem is the element type of the span.
	Elem mir.Type
}

// NewSpan creates a span type over the given element type.
func NewSpan(elem mir.Type) *SpanType {
	return &SpanType{Elem: elem}
}

func (t *SpanType) Dialect() string {
	return DialectName
}

func (t *SpanType) String() string {
	return "!ccl.span<" + t.Elem.String() + ">"
}

func (t *SpanType) LLString() string {
	return t.String()
}

func (t *SpanType) Equal(u types.Type) bool {
	if other, ok := u.(*SpanType); ok {
		return t.Elem.Equal(other.Elem)
	}

	return false
}

// -----------------------------------------------------------------------------

// PointerType is a tagged pointer to a value of the element type.
type PointerType struct {
	mir.TypeBase

	// Elem is the pointee type.
	Elem mir.Type
}

// NewPointer creates a pointer type to the given pointee type.
func NewPointer(elem mir.Type) *PointerType {
	return &PointerType{Elem: elem}
}

func (t *PointerType) Dialect() string {
	return DialectName
}

func (t *PointerType) String() string {
	return "!ccl.ptr<" + t.Elem.String() + ">"
}

func (t *PointerType) LLString() string {
	return t.String()
}

func (t *PointerType) Equal(u types.Type) bool {
	if other, ok := u.(*PointerType); ok {
		return t.Elem.Equal(other.Elem)
	}

	return false
}

// -----------------------------------------------------------------------------

// ArrayType is a contiguous sequence of elements with a known or unknown
// count.
type ArrayType struct {
	mir.TypeBase

	// Elem is the element type of the array.
	Elem mir.Type

	// Size is the element count, or UnknownSize.
	Size int64
}

// NewArray creates an array type of the given element type and size.
func NewArray(elem mir.Type, size int64) *ArrayType {
	return &ArrayType{Elem: elem, Size: size}
}

// HasKnownSize returns true if the element count is known at lowering time.
func (t *ArrayType) HasKnownSize() bool {
	return t.Size != UnknownSize
}

func (t *ArrayType) Dialect() string {
	return DialectName
}

func (t *ArrayType) String() string {
	if t.HasKnownSize() {
		return fmt.Sprintf("!ccl.array<%s x %d>", t.Elem.String(), t.Size)
	}

	return fmt.Sprintf("!ccl.array<%s x ?>", t.Elem.String())
}

func (t *ArrayType) LLString() string {
	return t.String()
}

func (t *ArrayType) Equal(u types.Type) bool {
	if other, ok := u.(*ArrayType); ok {
		return t.Size == other.Size && t.Elem.Equal(other.Elem)
	}

	return false
}

// -----------------------------------------------------------------------------

// StructType is an aggregate of member types with a declared packing.
type StructType struct {
	mir.TypeBase

	// Members are the member types in declaration order.
	Members []mir.Type

	// Packed indicates that the aggregate is laid out without padding.
	Packed bool
}

// NewStruct creates a struct type of the given members.
func NewStruct(packed bool, members ...mir.Type) *StructType {
	return &StructType{Members: members, Packed: packed}
}

func (t *StructType) Dialect() string {
	return DialectName
}

func (t *StructType) String() string {
	var members []string
	for _, m := range t.Members {
		members = append(members, m.String())
	}

	if t.Packed {
		return "!ccl.struct<packed (" + strings.Join(members, ", ") + ")>"
	}

	return "!ccl.struct<(" + strings.Join(members, ", ") + ")>"
}

func (t *StructType) LLString() string {
	return t.String()
}

func (t *StructType) Equal(u types.Type) bool {
	other, ok := u.(*StructType)
	if !ok || t.Packed != other.Packed || len(t.Members) != len(other.Members) {
		return false
	}

	for i, m := range t.Members {
		if !m.Equal(other.Members[i]) {
			return false
		}
	}

	return true
}

// -----------------------------------------------------------------------------

// NoneType is the "no information" placeholder type.  A pointer to none
// degrades to an untyped pointer during conversion.
type NoneType struct {
	mir.TypeBase
}

// NewNone creates the none placeholder type.
func NewNone() *NoneType {
	return &NoneType{}
}

func (t *NoneType) Dialect() string {
	return DialectName
}

func (t *NoneType) String() string {
	return "!ccl.none"
}

func (t *NoneType) LLString() string {
	return t.String()
}

func (t *NoneType) Equal(u types.Type) bool {
	_, ok := u.(*NoneType)
	return ok
}
