package lower

import (
	"quill/ccl"
	"quill/llc"
	"quill/mir"
	"quill/rewrite"

	"github.com/llir/llvm/ir/types"
)

// cclPatterns returns the closure, pointer, and aggregate lowering
// catalogue.
func cclPatterns(tc *TypeConverter) []rewrite.Pattern {
	return []rewrite.Pattern{
		rewrite.RewriteFunc{RootName: ccl.OpAlloca, Fn: lowerAlloca(tc)},
		rewrite.RewriteFunc{RootName: ccl.OpLoad, Fn: lowerLoad(tc)},
		rewrite.RewriteFunc{RootName: ccl.OpStore, Fn: lowerStore},
		rewrite.RewriteFunc{RootName: ccl.OpComputePtr, Fn: lowerComputePtr(tc)},
		rewrite.RewriteFunc{RootName: ccl.OpUndef, Fn: lowerUndef(tc)},
		rewrite.RewriteFunc{RootName: ccl.OpCallableCreate, Fn: lowerCallableCreate},
		rewrite.RewriteFunc{RootName: ccl.OpCallableInvoke, Fn: lowerCallableInvoke(tc)},
		rewrite.RewriteFunc{RootName: ccl.OpStdvecInit, Fn: lowerStdvecInit(tc)},
	}
}

// lowerAlloca rewrites a stack allocation.  The result pointer type is built
// directly from the converted allocated type rather than through the pointer
// rule, which rejects pointers to fixed-size arrays: a buffer holding a
// flattened constant array is exactly such a pointer.
func lowerAlloca(tc *TypeConverter) func(*mir.Operation, *rewrite.Rewriter) (bool, error) {
	return func(op *mir.Operation, rw *rewrite.Rewriter) (bool, error) {
		srcPtr := op.Result(0).Type().(*ccl.PointerType)

		elem, err := tc.Convert(srcPtr.Elem)
		if err != nil {
			return false, err
		}

		if mir.IsDialectType(elem) {
			return false, passErrorf(ErrCodeLegalization,
				"cannot allocate storage for unrepresentable type %s", srcPtr.Elem)
		}

		repl := rw.Create(llc.OpAlloca, []mir.Type{types.NewPointer(elem)}, nil, map[string]interface{}{
			llc.AttrElem: elem,
		})

		rw.ReplaceOp(op, repl.Result(0))
		return true, nil
	}
}

func lowerLoad(tc *TypeConverter) func(*mir.Operation, *rewrite.Rewriter) (bool, error) {
	return func(op *mir.Operation, rw *rewrite.Rewriter) (bool, error) {
		resTy, err := tc.Convert(op.Result(0).Type())
		if err != nil {
			return false, err
		}

		repl := rw.Create(llc.OpLoad, []mir.Type{resTy}, op.Operands(), nil)
		rw.ReplaceOp(op, repl.Result(0))
		return true, nil
	}
}

func lowerStore(op *mir.Operation, rw *rewrite.Rewriter) (bool, error) {
	rw.Create(llc.OpStore, nil, op.Operands(), nil)
	rw.EraseOp(op)
	return true, nil
}

// lowerComputePtr rewrites an address computation into a getelementptr on
// the converted pointee of its base pointer.  The base may already carry a
// target pointer type if its producer was rewritten first.
func lowerComputePtr(tc *TypeConverter) func(*mir.Operation, *rewrite.Rewriter) (bool, error) {
	return func(op *mir.Operation, rw *rewrite.Rewriter) (bool, error) {
		var elem mir.Type
		switch baseTy := op.Operand(0).Type().(type) {
		case *ccl.PointerType:
			// Behind a pointer, an array of unknown size has already
			// decayed to a raw element pointer; address through the
			// element type directly.
			src := baseTy.Elem
			if arrTy, ok := src.(*ccl.ArrayType); ok && !arrTy.HasKnownSize() {
				src = arrTy.Elem
			}

			conv, err := tc.Convert(src)
			if err != nil {
				return false, err
			}
			elem = conv
		case *types.PointerType:
			elem = baseTy.ElemType
		default:
			return false, passErrorf(ErrCodeLegalization,
				"compute_ptr base has non-pointer type %s", op.Operand(0).Type())
		}

		resTy, err := tc.Convert(op.Result(0).Type())
		if err != nil {
			return false, err
		}

		// Offsetting into a direct array steps through the aggregate: the
		// leading zero dereferences the array itself.
		indices := op.Attr(ccl.AttrIndices).([]int64)
		if arrTy, ok := elem.(*types.ArrayType); ok {
			if resPtr, ok := resTy.(*types.PointerType); ok && resPtr.ElemType.Equal(arrTy.ElemType) {
				indices = append([]int64{0}, indices...)
			}
		}

		repl := rw.Create(llc.OpGetElementPtr, []mir.Type{resTy}, op.Operands(), map[string]interface{}{
			llc.AttrElem:    elem,
			llc.AttrIndices: indices,
		})

		rw.ReplaceOp(op, repl.Result(0))
		return true, nil
	}
}

func lowerUndef(tc *TypeConverter) func(*mir.Operation, *rewrite.Rewriter) (bool, error) {
	return func(op *mir.Operation, rw *rewrite.Rewriter) (bool, error) {
		resTy, err := tc.Convert(op.Result(0).Type())
		if err != nil {
			return false, err
		}

		repl := rw.Create(llc.OpUndef, []mir.Type{resTy}, nil, nil)
		rw.ReplaceOp(op, repl.Result(0))
		return true, nil
	}
}

// lowerCallableCreate builds the two-word closure value: the captured
// environment pointer in slot 0 and the function address in slot 1.
func lowerCallableCreate(op *mir.Operation, rw *rewrite.Rewriter) (bool, error) {
	pairTy := llc.PairOfPointers()

	pair := rw.Create(llc.OpUndef, []mir.Type{pairTy}, nil, nil)

	var data *mir.Operation
	if op.NumOperands() > 0 {
		data = rw.Create(llc.OpBitCast, []mir.Type{types.I8Ptr}, []*mir.Value{op.Operand(0)}, nil)
	} else {
		data = rw.Create(llc.OpUndef, []mir.Type{types.I8Ptr}, nil, nil)
	}

	withData := rw.Create(llc.OpInsertValue, []mir.Type{pairTy},
		[]*mir.Value{pair.Result(0), data.Result(0)},
		map[string]interface{}{llc.AttrIndex: int64(0)})

	addr := rw.Create(llc.OpAddressOf, []mir.Type{types.I8Ptr}, nil, map[string]interface{}{
		llc.AttrSymbol: op.Attr(ccl.AttrCallee),
	})

	withFn := rw.Create(llc.OpInsertValue, []mir.Type{pairTy},
		[]*mir.Value{withData.Result(0), addr.Result(0)},
		map[string]interface{}{llc.AttrIndex: int64(1)})

	rw.ReplaceOp(op, withFn.Result(0))
	return true, nil
}

// lowerCallableInvoke calls through the closure's function pointer, passing
// the data pointer as the leading argument.
func lowerCallableInvoke(tc *TypeConverter) func(*mir.Operation, *rewrite.Rewriter) (bool, error) {
	return func(op *mir.Operation, rw *rewrite.Rewriter) (bool, error) {
		callable := op.Operand(0)
		args := op.Operands()[1:]

		// Assemble the callee signature from the converted argument and
		// result types.  The data pointer leads.
		params := []mir.Type{types.I8Ptr}
		for _, arg := range args {
			conv, err := tc.Convert(arg.Type())
			if err != nil {
				return false, err
			}

			params = append(params, conv)
		}

		retTy := mir.Type(types.Void)
		var results []mir.Type
		if op.NumResults() == 1 {
			conv, err := tc.Convert(op.Result(0).Type())
			if err != nil {
				return false, err
			}

			retTy = conv
			results = []mir.Type{conv}
		} else if op.NumResults() > 1 {
			return false, passErrorf(ErrCodeLegalization, "callable invocation with multiple results")
		}

		fnPtrTy := types.NewPointer(types.NewFunc(retTy, params...))

		data := rw.Create(llc.OpExtractValue, []mir.Type{types.I8Ptr},
			[]*mir.Value{callable}, map[string]interface{}{llc.AttrIndex: int64(0)})
		rawFn := rw.Create(llc.OpExtractValue, []mir.Type{types.I8Ptr},
			[]*mir.Value{callable}, map[string]interface{}{llc.AttrIndex: int64(1)})
		fn := rw.Create(llc.OpBitCast, []mir.Type{fnPtrTy}, []*mir.Value{rawFn.Result(0)}, nil)

		callArgs := append([]*mir.Value{fn.Result(0), data.Result(0)}, args...)
		call := rw.Create(llc.OpCall, results, callArgs, map[string]interface{}{
			llc.AttrCallee: "",
		})

		rw.ReplaceOp(op, call.Results()...)
		return true, nil
	}
}

// lowerStdvecInit assembles the span aggregate from a length and a buffer
// pointer.
func lowerStdvecInit(tc *TypeConverter) func(*mir.Operation, *rewrite.Rewriter) (bool, error) {
	return func(op *mir.Operation, rw *rewrite.Rewriter) (bool, error) {
		resTy, err := tc.Convert(op.Result(0).Type())
		if err != nil {
			return false, err
		}

		spanTy, ok := resTy.(*types.StructType)
		if !ok || len(spanTy.Fields) != 2 {
			return false, passErrorf(ErrCodeLegalization, "span type converted to non-aggregate %s", resTy)
		}

		span := rw.Create(llc.OpUndef, []mir.Type{spanTy}, nil, nil)
		withLen := rw.Create(llc.OpInsertValue, []mir.Type{spanTy},
			[]*mir.Value{span.Result(0), op.Operand(1)},
			map[string]interface{}{llc.AttrIndex: int64(0)})

		buf := rw.Create(llc.OpBitCast, []mir.Type{spanTy.Fields[1]}, []*mir.Value{op.Operand(0)}, nil)
		withBuf := rw.Create(llc.OpInsertValue, []mir.Type{spanTy},
			[]*mir.Value{withLen.Result(0), buf.Result(0)},
			map[string]interface{}{llc.AttrIndex: int64(1)})

		rw.ReplaceOp(op, withBuf.Result(0))
		return true, nil
	}
}
