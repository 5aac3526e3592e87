package vm

import (
	"github.com/wmedrano/spore/sporeerr"
	"github.com/wmedrano/spore/value"
)

func (v *Vm) currentFrame() *CallFrame {
	return &v.ctx.Frames[len(v.ctx.Frames)-1]
}

// step fetches, decodes, and executes exactly one instruction from the
// innermost call frame, the same fetch-decode-execute shape as the
// teacher's VM.Run loop (vm/vm.go) generalized from a single opcode to
// the full set in value.Opcode.
func (v *Vm) step() error {
	frame := v.currentFrame()
	if frame.InstructionIndex >= len(frame.Instructions) {
		return sporeerr.New(sporeerr.Internal, "instruction pointer ran past the end of its function")
	}
	instr := frame.Instructions[frame.InstructionIndex]
	frame.InstructionIndex++

	switch instr.Op {
	case value.OpPush:
		return v.push(instr.Const)
	case value.OpPop:
		return v.pop(int(instr.Operand))
	case value.OpGet:
		return v.opGet(int(instr.Operand))
	case value.OpSet:
		return v.opSet(int(instr.Operand))
	case value.OpDeref:
		return v.opDeref(instr.Const)
	case value.OpIterNext:
		return v.opIterNext(int(instr.Operand))
	case value.OpJump:
		v.currentFrame().InstructionIndex += int(instr.Operand)
		return nil
	case value.OpJumpIf:
		return v.opJumpIf(int(instr.Operand), true)
	case value.OpJumpIfNot:
		return v.opJumpIf(int(instr.Operand), false)
	case value.OpJumpOrElsePop:
		return v.opPeekJump(int(instr.Operand), true)
	case value.OpPopOrElseJump:
		return v.opPeekJump(int(instr.Operand), false)
	case value.OpEval:
		return v.opEval(int(instr.Operand))
	case value.OpSquash:
		return v.opSquash(int(instr.Operand))
	case value.OpRet:
		return v.opRet()
	default:
		return sporeerr.New(sporeerr.Internal, "unknown opcode %v", instr.Op)
	}
}

func (v *Vm) push(val value.Value) error {
	if len(v.ctx.Stack) >= maxStackSlots {
		return sporeerr.New(sporeerr.StackOverflow, "data stack exceeded %d slots", maxStackSlots)
	}
	v.ctx.Stack = append(v.ctx.Stack, val)
	return nil
}

func (v *Vm) popValue() (value.Value, error) {
	if len(v.ctx.Stack) == 0 {
		return value.Nil(), sporeerr.New(sporeerr.StackUnderflow, "pop from an empty data stack")
	}
	val := v.ctx.Stack[len(v.ctx.Stack)-1]
	v.ctx.Stack = v.ctx.Stack[:len(v.ctx.Stack)-1]
	return val, nil
}

func (v *Vm) peekValue() (value.Value, error) {
	if len(v.ctx.Stack) == 0 {
		return value.Nil(), sporeerr.New(sporeerr.StackUnderflow, "peek on an empty data stack")
	}
	return v.ctx.Stack[len(v.ctx.Stack)-1], nil
}

func (v *Vm) pop(n int) error {
	if n < 0 || n > len(v.ctx.Stack) {
		return sporeerr.New(sporeerr.StackUnderflow, "pop %d exceeds stack size %d", n, len(v.ctx.Stack))
	}
	v.ctx.Stack = v.ctx.Stack[:len(v.ctx.Stack)-n]
	return nil
}

// localStack returns the innermost frame's local-stack window: its
// parameters/bindings at indices [0, arg_count) followed by the
// InitialLocalStackSize-arg_count nil slots reserved for `let`/`for`.
func (v *Vm) localStack() []value.Value {
	frame := v.currentFrame()
	return v.ctx.Stack[frame.StackStart:]
}

func (v *Vm) opGet(idx int) error {
	locals := v.localStack()
	if idx < 0 || idx >= len(locals) {
		return sporeerr.New(sporeerr.Internal, "get: local index %d out of range (have %d)", idx, len(locals))
	}
	return v.push(locals[idx])
}

func (v *Vm) opSet(idx int) error {
	val, err := v.popValue()
	if err != nil {
		return err
	}
	locals := v.localStack()
	if idx < 0 || idx >= len(locals) {
		return sporeerr.New(sporeerr.Internal, "set: local index %d out of range (have %d)", idx, len(locals))
	}
	locals[idx] = val
	return nil
}

func (v *Vm) opDeref(sym value.Value) error {
	val, ok := v.ctx.Globals[sym.Sym.ID]
	if !ok {
		name, _ := v.Interner.Lookup(sym.Sym.ID)
		return sporeerr.New(sporeerr.SymbolNotFound, "symbol %q is not bound", name)
	}
	return v.push(val)
}

// opIterNext advances a `for` loop's cursor at local[index], reading
// and possibly rewriting the iterable at local[index+1] (§4.4's
// iter_next): a pair iterable is walked one cons cell per call; an int
// iterable is an exclusive end, and the int in local[index] counts up
// by one toward it.
func (v *Vm) opIterNext(index int) error {
	locals := v.localStack()
	if index < 0 || index+1 >= len(locals) {
		return sporeerr.New(sporeerr.Internal, "iter_next: index %d out of range (have %d)", index, len(locals))
	}
	iterable := locals[index+1]
	switch iterable.Kind {
	case value.KindPair:
		pair, err := v.Heap.Pair(iterable)
		if err != nil {
			return err
		}
		locals[index] = pair.First
		locals[index+1] = pair.Second
		return v.push(value.Bool(true))
	case value.KindNil:
		return v.push(value.Bool(false))
	case value.KindInt:
		end := iterable.Int
		current := locals[index].Int
		if current+1 >= end {
			return v.push(value.Bool(false))
		}
		locals[index] = value.Int(current + 1)
		return v.push(value.Bool(true))
	default:
		return sporeerr.New(sporeerr.WrongType, "for: iterable must be a list or an int, got %s", iterable.Kind)
	}
}

func (v *Vm) opJumpIf(offset int, wantTruthy bool) error {
	val, err := v.popValue()
	if err != nil {
		return err
	}
	if val.Truthy() == wantTruthy {
		v.currentFrame().InstructionIndex += offset
	}
	return nil
}

// opPeekJump implements both jump_or_else_pop (jumpOnTruthy=true, for
// `or`: a truthy value short-circuits and stays on the stack) and
// pop_or_else_jump (jumpOnTruthy=false, for `and`: a falsy value
// short-circuits and stays). See compiler's compileAnd doc comment for
// why this pairing is the reverse of spec prose's naming.
func (v *Vm) opPeekJump(offset int, jumpOnTruthy bool) error {
	val, err := v.peekValue()
	if err != nil {
		return err
	}
	if val.Truthy() == jumpOnTruthy {
		v.currentFrame().InstructionIndex += offset
		return nil
	}
	_, err = v.popValue()
	return err
}

// opSquash collapses the top n stack slots into the single value that
// was on top, used to discard a block's local bindings while keeping
// its result. Implemented for ISA completeness; this compiler never
// emits it (see compileLet's doc comment).
func (v *Vm) opSquash(n int) error {
	if n <= 0 {
		return nil
	}
	if len(v.ctx.Stack) < n {
		return sporeerr.New(sporeerr.StackUnderflow, "squash %d exceeds stack size %d", n, len(v.ctx.Stack))
	}
	top := v.ctx.Stack[len(v.ctx.Stack)-1]
	v.ctx.Stack = v.ctx.Stack[:len(v.ctx.Stack)-n]
	return v.push(top)
}

// opRet pops the innermost call frame, truncates the stack back to
// where its locals began, and writes its return value into the callee
// slot just below — the same logic whether the frame being unwound is
// a bytecode function's real `ret` instruction or the synthetic return
// opEval performs immediately after invoking a native.
func (v *Vm) opRet() error {
	frame := v.ctx.Frames[len(v.ctx.Frames)-1]
	var retVal value.Value
	if len(v.ctx.Stack) > frame.StackStart {
		retVal = v.ctx.Stack[len(v.ctx.Stack)-1]
	} else {
		retVal = value.Nil()
	}
	v.ctx.Frames = v.ctx.Frames[:len(v.ctx.Frames)-1]
	v.ctx.Stack = v.ctx.Stack[:frame.StackStart]
	v.ctx.Stack[frame.StackStart-1] = retVal
	return nil
}

// opEval implements `eval n`: the callee sits n slots from the top,
// followed by n-1 arguments. A bytecode-function callee gets a new
// call frame with its own pre-sized local-stack window (§4.4); a
// native callee runs synchronously in Go and then unwinds itself via
// opRet, so from the instruction stream's point of view both kinds of
// call look the same.
func (v *Vm) opEval(n int) error {
	if n < 1 {
		return sporeerr.New(sporeerr.Internal, "eval: n must be >= 1, got %d", n)
	}
	if n > len(v.ctx.Stack) {
		return sporeerr.New(sporeerr.StackUnderflow, "eval %d exceeds stack size %d", n, len(v.ctx.Stack))
	}
	calleeIdx := len(v.ctx.Stack) - n
	callee := v.ctx.Stack[calleeIdx]
	argCount := n - 1
	stackStart := calleeIdx + 1

	switch callee.Kind {
	case value.KindFunction:
		fn, err := v.Heap.Function(callee)
		if err != nil {
			return err
		}
		if int(fn.ArgCount) != argCount {
			return sporeerr.New(sporeerr.WrongArity, "function %q expects %d arguments, got %d", fn.Name, fn.ArgCount, argCount)
		}
		extra := int(fn.InitialLocalStackSize) - argCount
		if extra < 0 {
			return sporeerr.New(sporeerr.Internal, "initial_local_stack_size smaller than arg_count")
		}
		for i := 0; i < extra; i++ {
			if err := v.push(value.Nil()); err != nil {
				return err
			}
		}
		if len(v.ctx.Frames) >= maxCallFrames {
			return sporeerr.New(sporeerr.StackOverflow, "call-frame stack exceeded %d frames", maxCallFrames)
		}
		v.ctx.Frames = append(v.ctx.Frames, CallFrame{Instructions: fn.Instructions, StackStart: stackStart})
		return nil

	case value.KindNative:
		if len(v.ctx.Frames) >= maxCallFrames {
			return sporeerr.New(sporeerr.StackOverflow, "call-frame stack exceeded %d frames", maxCallFrames)
		}
		v.ctx.Frames = append(v.ctx.Frames, CallFrame{StackStart: stackStart})
		result, err := callee.Native.Entrypoint(v)
		if err != nil {
			v.ctx.Frames = v.ctx.Frames[:len(v.ctx.Frames)-1]
			return err
		}
		if err := v.push(result); err != nil {
			return err
		}
		return v.opRet()

	default:
		return sporeerr.New(sporeerr.WrongType, "cannot call a value of kind %s", callee.Kind)
	}
}
