package vm

import "github.com/wmedrano/spore/inspect"

// Builder returns a fresh inspect.Builder over this Vm's heap and
// interner, for constructing Values to hand in as eval_string globals
// or native arguments.
func (v *Vm) Builder() *inspect.Builder {
	return inspect.NewBuilder(v.Heap, v.Interner)
}

// Inspector returns a fresh inspect.Inspector over this Vm's heap and
// interner, for converting Values back to Go data or pretty-printed
// text.
func (v *Vm) Inspector() *inspect.Inspector {
	return inspect.NewInspector(v.Heap, v.Interner)
}

// FrameLabels describes the current call stack, innermost frame last,
// for Inspector.StackTrace to render after a runtime error.
func (v *Vm) FrameLabels() []string {
	labels := make([]string, len(v.ctx.Frames))
	ins := v.Inspector()
	for i, frame := range v.ctx.Frames {
		if frame.StackStart > 0 && frame.StackStart-1 < len(v.ctx.Stack) {
			labels[i] = ins.Pretty(v.ctx.Stack[frame.StackStart-1])
		} else {
			labels[i] = "<top level>"
		}
	}
	return labels
}
