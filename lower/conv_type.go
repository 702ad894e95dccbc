package lower

import (
	"quill/ccl"
	"quill/llc"
	"quill/mir"
	"quill/qop"

	"github.com/llir/llvm/ir/types"
)

// TypeConverter maps every source type to its target representation.  The
// mapping is total over the source type grammar and deterministic within one
// conversion run: conversions are memoized, so the same source type object
// always yields the same target type object.
//
// The rules form an ordered dispatch over a closed set of type shapes; types
// that are already target types pass through unchanged.
type TypeConverter struct {
	memo map[mir.Type]mir.Type
}

// NewTypeConverter creates a type converter for one conversion run.
func NewTypeConverter() *TypeConverter {
	return &TypeConverter{memo: make(map[mir.Type]mir.Type)}
}

// Convert returns the unique target image of t, or a structural error if t
// is malformed in its position (eg. a fixed-size array behind a pointer that
// should have been rewritten into a direct array type upstream).
func (tc *TypeConverter) Convert(t mir.Type) (mir.Type, error) {
	if conv, ok := tc.memo[t]; ok {
		return conv, nil
	}

	conv, err := tc.convert(t)
	if err != nil {
		return nil, err
	}

	tc.memo[t] = conv
	return conv, nil
}

func (tc *TypeConverter) convert(t mir.Type) (mir.Type, error) {
	switch v := t.(type) {
	case *qop.RegType:
		// Registers of qubits become the opaque array handle regardless of
		// whether their size is known.
		return llc.ArrayPtr, nil

	case *qop.RefType:
		return llc.QubitPtr, nil

	case *qop.BitType:
		// The minimal truthful encoding of a measurement outcome.
		return types.I1, nil

	case *ccl.StateType:
		return llc.StatePtr, nil

	case *ccl.CallableType:
		// Closures are a pair of pointers: data pointer plus function
		// pointer.
		return llc.PairOfPointers(), nil

	case *ccl.SpanType:
		return tc.convertSpan(v)

	case *ccl.PointerType:
		return tc.convertPointer(v)

	case *ccl.ArrayType:
		return tc.convertArray(v)

	case *ccl.StructType:
		return tc.convertStruct(v)

	case *ccl.NoneType:
		// None carries no information and is only meaningful behind a
		// pointer, where the pointer rule erases it.
		return nil, passErrorf(ErrCodeTypeConversion, "none type is not representable outside a pointer")
	}

	if mir.IsDialectType(t) {
		return nil, passErrorf(ErrCodeTypeConversion, "no conversion rule for type %s", t)
	}

	// Target types are already representable.
	return t, nil
}

// convertSpan lowers a span to an aggregate of (length, element pointer).
// The element type is resolved recursively: a span of spans converts all the
// way down.
func (tc *TypeConverter) convertSpan(t *ccl.SpanType) (mir.Type, error) {
	elem, err := tc.Convert(t.Elem)
	if err != nil {
		return nil, err
	}

	if mir.IsDialectType(elem) {
		return nil, passErrorf(ErrCodeTypeConversion, "span element type %s did not fully resolve", t.Elem)
	}

	return types.NewStruct(types.I64, types.NewPointer(elem)), nil
}

// convertPointer lowers a pointer type.  Two special cases apply, in order:
// a pointer to no information degrades to an untyped pointer, and a pointer
// to an array of unknown size flattens into a pointer to the element type.
// Both are decided on the source pointee, before it is converted.
func (tc *TypeConverter) convertPointer(t *ccl.PointerType) (mir.Type, error) {
	if _, ok := t.Elem.(*ccl.NoneType); ok {
		return types.I8Ptr, nil
	}

	if arrTy, ok := t.Elem.(*ccl.ArrayType); ok {
		// Only arrays of unknown size may sit behind a pointer here.  A
		// fixed-size array behind a pointer must already have been
		// rewritten into a direct array type before reaching this rule.
		if arrTy.HasKnownSize() {
			return nil, passErrorf(ErrCodeTypeConversion,
				"pointer to fixed-size array %s was not rewritten before conversion", arrTy)
		}

		arrElem, err := tc.Convert(arrTy.Elem)
		if err != nil {
			return nil, err
		}

		return types.NewPointer(arrElem), nil
	}

	elem, err := tc.Convert(t.Elem)
	if err != nil {
		return nil, err
	}

	return types.NewPointer(elem), nil
}

// convertArray lowers a fixed-size array to a target array of converted
// elements.  Arrays of unknown size have no direct target representation
// and are left unchanged: they may only appear behind a pointer or span
// wrapper, which callers must guarantee.
func (tc *TypeConverter) convertArray(t *ccl.ArrayType) (mir.Type, error) {
	elem, err := tc.Convert(t.Elem)
	if err != nil {
		return nil, err
	}

	if !t.HasKnownSize() {
		return t, nil
	}

	return types.NewArray(uint64(t.Size), elem), nil
}

// convertStruct lowers an aggregate member-wise, preserving the declared
// packing.
func (tc *TypeConverter) convertStruct(t *ccl.StructType) (mir.Type, error) {
	var members []mir.Type
	for _, m := range t.Members {
		conv, err := tc.Convert(m)
		if err != nil {
			return nil, err
		}

		members = append(members, conv)
	}

	st := types.NewStruct(members...)
	st.Packed = t.Packed
	return st, nil
}
