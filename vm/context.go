package vm

import (
	"github.com/wmedrano/spore/intern"
	"github.com/wmedrano/spore/value"
)

// maxStackSlots bounds the data stack the way the teacher's Stack grows
// without limit; Spore needs a fixed ceiling so a runaway recursive
// program fails with StackOverflow instead of exhausting host memory.
const maxStackSlots = 1 << 16

// maxCallFrames bounds how deep `eval` may nest before StackOverflow.
const maxCallFrames = 1 << 10

// CallFrame is one active function invocation: the instructions it is
// running, where within them, and where its local-stack window begins.
// The slot at StackStart-1 holds the callee itself (the bytecode
// function or native descriptor that was called), mirroring how
// `compileCall` leaves it sitting just below the arguments.
type CallFrame struct {
	Instructions     []value.Instruction
	InstructionIndex int
	StackStart       int
}

// ExecutionContext is the mutable state a running Vm threads through
// every instruction: the shared data stack (generalizing the teacher's
// Stack in vm/stack.go from an any-slice to a value.Value-slice with a
// fixed capacity), the call-frame stack, the global bindings `def`
// populates, and the last error raised by a failed eval_string, kept as
// a heap value so its Context stays reachable to the collector.
type ExecutionContext struct {
	Stack        []value.Value
	Frames       []CallFrame
	Globals      map[intern.ID]value.Value
	LastError    value.Value
	LastErrorSet bool
}

func newExecutionContext() *ExecutionContext {
	return &ExecutionContext{
		Stack:   make([]value.Value, 0, maxStackSlots),
		Globals: make(map[intern.ID]value.Value),
	}
}
