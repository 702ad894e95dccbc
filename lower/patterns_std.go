package lower

import (
	"quill/llc"
	"quill/mir"
	"quill/rewrite"
	"quill/std"
)

// stdBinaryOps maps each builtin arithmetic operation to its target
// counterpart.
var stdBinaryOps = map[string]string{
	std.OpAddI: llc.OpAdd,
	std.OpSubI: llc.OpSub,
	std.OpMulI: llc.OpMul,
	std.OpAddF: llc.OpFAdd,
	std.OpSubF: llc.OpFSub,
	std.OpMulF: llc.OpFMul,
}

// stdPatterns returns the arithmetic and control-flow lowering catalogue.
func stdPatterns(tc *TypeConverter) []rewrite.Pattern {
	patterns := []rewrite.Pattern{
		rewrite.RewriteFunc{RootName: std.OpConstant, Fn: lowerConstant(tc)},
		rewrite.RewriteFunc{RootName: std.OpBr, Fn: lowerBr},
		rewrite.RewriteFunc{RootName: std.OpCondBr, Fn: lowerCondBr},
		rewrite.RewriteFunc{RootName: std.OpReturn, Fn: lowerReturn},
		rewrite.RewriteFunc{RootName: std.OpFunc, Fn: lowerFunc(tc)},
		rewrite.RewriteFunc{RootName: std.OpCall, Fn: lowerCall(tc)},
	}

	for src, dst := range stdBinaryOps {
		patterns = append(patterns, rewrite.RewriteFunc{RootName: src, Fn: lowerBinary(dst)})
	}

	return patterns
}

func lowerConstant(tc *TypeConverter) func(*mir.Operation, *rewrite.Rewriter) (bool, error) {
	return func(op *mir.Operation, rw *rewrite.Rewriter) (bool, error) {
		resTy, err := tc.Convert(op.Result(0).Type())
		if err != nil {
			return false, err
		}

		repl := rw.Create(llc.OpConstant, []mir.Type{resTy}, nil, map[string]interface{}{
			llc.AttrValue: op.Attr(std.AttrValue),
		})

		rw.ReplaceOp(op, repl.Result(0))
		return true, nil
	}
}

func lowerBinary(target string) func(*mir.Operation, *rewrite.Rewriter) (bool, error) {
	return func(op *mir.Operation, rw *rewrite.Rewriter) (bool, error) {
		repl := rw.Create(target, []mir.Type{op.Operand(0).Type()}, op.Operands(), nil)
		rw.ReplaceOp(op, repl.Result(0))
		return true, nil
	}
}

func lowerBr(op *mir.Operation, rw *rewrite.Rewriter) (bool, error) {
	repl := rw.Create(llc.OpBr, nil, nil, nil)
	repl.SetSuccessors(op.Successors())
	rw.EraseOp(op)
	return true, nil
}

func lowerCondBr(op *mir.Operation, rw *rewrite.Rewriter) (bool, error) {
	repl := rw.Create(llc.OpCondBr, nil, op.Operands(), nil)
	repl.SetSuccessors(op.Successors())
	rw.EraseOp(op)
	return true, nil
}

func lowerReturn(op *mir.Operation, rw *rewrite.Rewriter) (bool, error) {
	rw.Create(llc.OpReturn, nil, op.Operands(), nil)
	rw.EraseOp(op)
	return true, nil
}

// lowerFunc rewrites a function into the target dialect: the declared result
// types and the entry block argument types are converted in place, and the
// body region is adopted by the new operation.
func lowerFunc(tc *TypeConverter) func(*mir.Operation, *rewrite.Rewriter) (bool, error) {
	return func(op *mir.Operation, rw *rewrite.Rewriter) (bool, error) {
		var results []mir.Type
		if declared, ok := op.Attr(std.AttrResults).([]mir.Type); ok {
			for _, r := range declared {
				conv, err := tc.Convert(r)
				if err != nil {
					return false, err
				}

				results = append(results, conv)
			}
		}

		for _, arg := range op.Regions()[0].EntryBlock().Args() {
			conv, err := tc.Convert(arg.Type())
			if err != nil {
				return false, err
			}

			arg.SetType(conv)
		}

		repl := rw.Create(llc.OpFunc, nil, nil, map[string]interface{}{
			llc.AttrSymName: op.Attr(std.AttrSymName),
			llc.AttrResults: results,
		})
		repl.MoveRegionsFrom(op)

		rw.EraseOp(op)
		return true, nil
	}
}

func lowerCall(tc *TypeConverter) func(*mir.Operation, *rewrite.Rewriter) (bool, error) {
	return func(op *mir.Operation, rw *rewrite.Rewriter) (bool, error) {
		var results []mir.Type
		for _, res := range op.Results() {
			conv, err := tc.Convert(res.Type())
			if err != nil {
				return false, err
			}

			results = append(results, conv)
		}

		repl := rw.Create(llc.OpCall, results, op.Operands(), map[string]interface{}{
			llc.AttrCallee: op.Attr(std.AttrCallee),
		})

		rw.ReplaceOp(op, repl.Results()...)
		return true, nil
	}
}
