// Package vm executes the bytecode package compiler produces: a
// stack-based interpreter loop over value.Instruction, generalizing the
// teacher's vm/vm.go (a byte-stream fetch-decode-execute loop over
// compiler.Opcode) from a single OP_CONSTANT/OP_END toy into the full
// instruction set of §4.4, plus the call frames, globals, and
// last-error slot an embedder needs (§5, §6).
package vm

import (
	"github.com/wmedrano/spore/compiler"
	"github.com/wmedrano/spore/heap"
	"github.com/wmedrano/spore/intern"
	"github.com/wmedrano/spore/natives"
	"github.com/wmedrano/spore/reader"
	"github.com/wmedrano/spore/sporeerr"
	"github.com/wmedrano/spore/value"
)

// Vm owns a Heap, an Interner, and an ExecutionContext, and is the
// embedder-facing entry point: eval_string compiles and runs source
// against this single, persistent runtime (§5 — "a Vm is not a
// sandbox; it is a long-lived interpreter instance").
type Vm struct {
	Heap     *heap.Heap
	Interner *intern.Interner
	ctx      *ExecutionContext
}

// New creates a Vm with every native built-in already registered as a
// global, the way the teacher's interpreter.New wires its global
// Environment with the language's built-in functions before running
// anything (interpreter/interpreter.go).
func New() *Vm {
	vm := &Vm{
		Heap:     heap.New(),
		Interner: intern.New(),
		ctx:      newExecutionContext(),
	}
	for _, descriptor := range natives.Descriptors() {
		descriptor := descriptor
		id := vm.Interner.Intern(descriptor.Name)
		vm.ctx.Globals[id] = value.NativeValue(descriptor)
	}
	return vm
}

// EvalString reads, compiles, and runs source against this Vm's
// persistent globals and heap, returning the value of the last
// top-level expression. On error, the same information is also stashed
// as last_error on the heap (§4.7) and the embedder must call
// ResetCalls before the next EvalString.
func (v *Vm) EvalString(source string) (value.Value, error) {
	exprs, err := reader.ReadSource(source, v.Heap, v.Interner)
	if err != nil {
		v.recordError(err)
		return value.Nil(), err
	}
	fn, err := compiler.New(v.Heap, v.Interner).CompileTopLevel(exprs)
	if err != nil {
		v.recordError(err)
		return value.Nil(), err
	}
	result, err := v.run(fn)
	if err != nil {
		v.recordError(err)
		return value.Nil(), err
	}
	return result, nil
}

// ResetCalls discards any partially-unwound frames and data left on the
// stack after a failed eval_string, so the Vm is ready for the next one
// (§4.7: a runtime error must not leave the stacks corrupted for a
// subsequent call).
func (v *Vm) ResetCalls() {
	v.ctx.Frames = v.ctx.Frames[:0]
	v.ctx.Stack = v.ctx.Stack[:0]
}

// GarbageCollect runs a full mark-and-sweep cycle rooted at the data
// stack, the globals, and last_error, and returns how many objects of
// each kind were freed.
func (v *Vm) GarbageCollect() heap.Stats {
	roots := make([]value.Value, 0, len(v.ctx.Stack)+len(v.ctx.Globals)+1)
	roots = append(roots, v.ctx.Stack...)
	for _, val := range v.ctx.Globals {
		roots = append(roots, val)
	}
	if v.ctx.LastErrorSet {
		roots = append(roots, v.ctx.LastError)
	}
	return v.Heap.Collect(roots)
}

// run drives a freshly-compiled top-level function to completion,
// treating it as a call like any other: the bytecode function is first
// pushed as its own "callee" slot, mirroring how `eval` sets up a
// normal call, so that `ret`'s generic truncate-and-write-result logic
// needs no special case for the outermost frame.
func (v *Vm) run(fn value.BytecodeFunction) (value.Value, error) {
	baseDepth := len(v.ctx.Frames)
	calleeVal := v.Heap.NewFunction(fn)
	if err := v.push(calleeVal); err != nil {
		return value.Nil(), err
	}
	stackStart := len(v.ctx.Stack)
	for i := uint32(0); i < fn.InitialLocalStackSize; i++ {
		if err := v.push(value.Nil()); err != nil {
			return value.Nil(), err
		}
	}
	v.ctx.Frames = append(v.ctx.Frames, CallFrame{Instructions: fn.Instructions, StackStart: stackStart})

	for len(v.ctx.Frames) > baseDepth {
		if err := v.step(); err != nil {
			return value.Nil(), err
		}
	}
	return v.popValue()
}

func (v *Vm) recordError(err error) {
	kind := sporeerr.Internal
	msg := err.Error()
	var context []value.Value
	if ke, ok := err.(sporeerr.KindedError); ok {
		kind = ke.ErrorKind()
	}
	switch e := err.(type) {
	case value.RuntimeError:
		msg = e.Message
		context = e.Context
	case sporeerr.Error:
		msg = e.Message
	}
	v.ctx.LastError = v.Heap.NewDetailedError(value.DetailedError{Kind: kind, Message: msg, Context: context})
	v.ctx.LastErrorSet = true
}

// LastError returns the error left behind by the most recent failed
// EvalString, if any.
func (v *Vm) LastError() (value.Value, bool) {
	return v.ctx.LastError, v.ctx.LastErrorSet
}
