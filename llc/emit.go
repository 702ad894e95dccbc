package llc

import (
	"fmt"

	"quill/mir"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// EmitModule translates a legal module, one produced by a successful
// conversion run, into an llir module ready to be printed as textual LLVM
// IR.  Operations outside the target dialect are an error: callers must run
// the conversion driver first.
func EmitModule(m *mir.Module) (*ir.Module, error) {
	if m.Failed() {
		return nil, fmt.Errorf("cannot emit a failed module")
	}

	e := &emitter{
		mod:    ir.NewModule(),
		funcs:  make(map[string]*ir.Func),
		values: make(map[*mir.Value]value.Value),
		blocks: make(map[*mir.Block]*ir.Block),
	}

	// The opaque runtime handle types are part of every emitted module.
	e.mod.TypeDefs = append(e.mod.TypeDefs, arrayTy, qubitTy, resultTy, stateTy)

	// Declare all module functions up front so calls and addressof can
	// resolve symbols independent of definition order.
	var fnOps []*mir.Operation
	for _, op := range m.Body().Ops() {
		if op.Name() != OpFunc {
			return nil, fmt.Errorf("unexpected module-level operation `%s`", op.Name())
		}

		if _, err := e.declareFunc(op); err != nil {
			return nil, err
		}

		fnOps = append(fnOps, op)
	}

	for _, op := range fnOps {
		if err := e.emitFuncBody(op); err != nil {
			return nil, err
		}
	}

	return e.mod, nil
}

// emitter carries the translation state for one module.
type emitter struct {
	mod *ir.Module

	// funcs maps symbol names to declared or defined llir functions.
	funcs map[string]*ir.Func

	// values maps IR values to their llir equivalents.
	values map[*mir.Value]value.Value

	// blocks maps IR blocks to their llir equivalents.
	blocks map[*mir.Block]*ir.Block
}

// declareFunc creates the llir function for a func op without emitting its
// body.
func (e *emitter) declareFunc(op *mir.Operation) (*ir.Func, error) {
	name := op.StringAttr(AttrSymName)

	var retTy mir.Type = types.Void
	if results, ok := op.Attr(AttrResults).([]mir.Type); ok {
		switch len(results) {
		case 0:
		case 1:
			retTy = results[0]
		default:
			return nil, fmt.Errorf("function `%s` has multiple results", name)
		}
	}

	entry := op.Regions()[0].EntryBlock()
	var params []*ir.Param
	for i, arg := range entry.Args() {
		params = append(params, ir.NewParam(fmt.Sprintf("arg%d", i), arg.Type()))
	}

	f := e.mod.NewFunc(name, retTy, params...)
	e.funcs[name] = f

	for i, arg := range entry.Args() {
		e.values[arg] = params[i]
	}

	return f, nil
}

// emitFuncBody fills in the blocks and instructions of a declared function.
func (e *emitter) emitFuncBody(op *mir.Operation) error {
	f := e.funcs[op.StringAttr(AttrSymName)]
	region := op.Regions()[0]

	for i, b := range region.Blocks() {
		name := "entry"
		if i > 0 {
			name = fmt.Sprintf("bb%d", i)
		}

		if i > 0 && len(b.Args()) > 0 {
			return fmt.Errorf("function `%s`: non-entry block arguments are not supported", f.GlobalName)
		}

		e.blocks[b] = f.NewBlock(name)
	}

	for _, b := range region.Blocks() {
		for _, nested := range b.Ops() {
			if err := e.emitOp(e.blocks[b], nested); err != nil {
				return err
			}
		}
	}

	return nil
}

// emitOp translates a single target operation into the llir block.
func (e *emitter) emitOp(block *ir.Block, op *mir.Operation) error {
	switch op.Name() {
	case OpConstant:
		c, err := e.emitConstant(op.Result(0).Type(), op.Attr(AttrValue))
		if err != nil {
			return err
		}
		e.values[op.Result(0)] = c

	case OpUndef:
		e.values[op.Result(0)] = constant.NewUndef(op.Result(0).Type())

	case OpAlloca:
		e.values[op.Result(0)] = block.NewAlloca(op.TypeAttr(AttrElem))

	case OpLoad:
		ptr, err := e.operand(op, 0)
		if err != nil {
			return err
		}
		e.values[op.Result(0)] = block.NewLoad(op.Result(0).Type(), ptr)

	case OpStore:
		v, err := e.operand(op, 0)
		if err != nil {
			return err
		}
		ptr, err := e.operand(op, 1)
		if err != nil {
			return err
		}
		block.NewStore(v, ptr)

	case OpGetElementPtr:
		base, err := e.operand(op, 0)
		if err != nil {
			return err
		}

		var indices []value.Value
		for _, ndx := range op.Attr(AttrIndices).([]int64) {
			indices = append(indices, constant.NewInt(types.I32, ndx))
		}

		e.values[op.Result(0)] = block.NewGetElementPtr(op.TypeAttr(AttrElem), base, indices...)

	case OpBitCast:
		v, err := e.operand(op, 0)
		if err != nil {
			return err
		}
		e.values[op.Result(0)] = block.NewBitCast(v, op.Result(0).Type())

	case OpInsertValue:
		agg, err := e.operand(op, 0)
		if err != nil {
			return err
		}
		elem, err := e.operand(op, 1)
		if err != nil {
			return err
		}
		e.values[op.Result(0)] = block.NewInsertValue(agg, elem, uint64(op.IntAttr(AttrIndex)))

	case OpExtractValue:
		agg, err := e.operand(op, 0)
		if err != nil {
			return err
		}
		e.values[op.Result(0)] = block.NewExtractValue(agg, uint64(op.IntAttr(AttrIndex)))

	case OpAddressOf:
		f, err := e.resolveFunc(op.StringAttr(AttrSymbol))
		if err != nil {
			return err
		}

		// The referenced function rarely has the declared result type
		// exactly; cast the address when it does not.
		if resTy := op.Result(0).Type(); f.Type().Equal(resTy) {
			e.values[op.Result(0)] = f
		} else {
			e.values[op.Result(0)] = block.NewBitCast(f, resTy)
		}

	case OpAdd, OpSub, OpMul, OpFAdd, OpFSub, OpFMul:
		return e.emitBinary(block, op)

	case OpCall:
		return e.emitCall(block, op)

	case OpBr:
		block.NewBr(e.blocks[op.Successors()[0]])

	case OpCondBr:
		cond, err := e.operand(op, 0)
		if err != nil {
			return err
		}
		block.NewCondBr(cond, e.blocks[op.Successors()[0]], e.blocks[op.Successors()[1]])

	case OpReturn:
		if op.NumOperands() == 0 {
			block.NewRet(nil)
			return nil
		}

		v, err := e.operand(op, 0)
		if err != nil {
			return err
		}
		block.NewRet(v)

	default:
		return fmt.Errorf("cannot emit operation `%s`", op.Name())
	}

	return nil
}

func (e *emitter) emitBinary(block *ir.Block, op *mir.Operation) error {
	lhs, err := e.operand(op, 0)
	if err != nil {
		return err
	}
	rhs, err := e.operand(op, 1)
	if err != nil {
		return err
	}

	var result value.Value
	switch op.Name() {
	case OpAdd:
		result = block.NewAdd(lhs, rhs)
	case OpSub:
		result = block.NewSub(lhs, rhs)
	case OpMul:
		result = block.NewMul(lhs, rhs)
	case OpFAdd:
		result = block.NewFAdd(lhs, rhs)
	case OpFSub:
		result = block.NewFSub(lhs, rhs)
	case OpFMul:
		result = block.NewFMul(lhs, rhs)
	}

	e.values[op.Result(0)] = result
	return nil
}

func (e *emitter) emitCall(block *ir.Block, op *mir.Operation) error {
	callee := op.StringAttr(AttrCallee)

	var fn value.Value
	args := op.Operands()

	if callee == "" {
		// Indirect call through the first operand.
		fnPtr, err := e.operand(op, 0)
		if err != nil {
			return err
		}

		fn = fnPtr
		args = args[1:]
	} else {
		f, err := e.resolveFunc(callee)
		if err != nil {
			return err
		}

		fn = f
	}

	llArgs := make([]value.Value, len(args))
	for i, arg := range args {
		llArg, ok := e.values[arg]
		if !ok {
			return fmt.Errorf("operand of `%s` has no emitted value", op.Name())
		}

		llArgs[i] = llArg
	}

	call := block.NewCall(fn, llArgs...)
	if op.NumResults() == 1 {
		e.values[op.Result(0)] = call
	}

	return nil
}

// resolveFunc returns the llir function for a symbol, declaring it from the
// QIR runtime table on first use.
func (e *emitter) resolveFunc(name string) (*ir.Func, error) {
	if f, ok := e.funcs[name]; ok {
		return f, nil
	}

	sig := RuntimeSignature(name)
	if sig == nil {
		return nil, fmt.Errorf("call to undeclared function `%s`", name)
	}

	var params []*ir.Param
	for i, p := range sig.Params {
		params = append(params, ir.NewParam(fmt.Sprintf("arg%d", i), p))
	}

	f := e.mod.NewFunc(name, sig.RetType, params...)
	e.funcs[name] = f
	return f, nil
}

// emitConstant materializes a scalar constant payload.
func (e *emitter) emitConstant(ty mir.Type, payload interface{}) (constant.Constant, error) {
	switch v := payload.(type) {
	case int64:
		intTy, ok := ty.(*types.IntType)
		if !ok {
			return nil, fmt.Errorf("integer constant with non-integer type %s", ty)
		}

		return constant.NewInt(intTy, v), nil
	case float64:
		fltTy, ok := ty.(*types.FloatType)
		if !ok {
			return nil, fmt.Errorf("float constant with non-float type %s", ty)
		}

		return constant.NewFloat(fltTy, v), nil
	}

	return nil, fmt.Errorf("unsupported constant payload %v", payload)
}

// operand resolves operand i of op to its emitted llir value.
func (e *emitter) operand(op *mir.Operation, i int) (value.Value, error) {
	v, ok := e.values[op.Operand(i)]
	if !ok {
		return nil, fmt.Errorf("operand %d of `%s` has no emitted value", i, op.Name())
	}

	return v, nil
}
