package vm

import "github.com/wmedrano/spore/value"

// Vm implements value.NativeVM so that natives.Descriptors' entrypoints
// can read their arguments, allocate heap values, and touch globals
// without this package importing natives' own package back (natives
// depends only on value, see natives/natives.go).
var _ value.NativeVM = (*Vm)(nil)

// Args returns the current native call's arguments: the frame pushed
// by opEval has no instructions of its own, so its entire local-stack
// window is the argument list.
func (v *Vm) Args() []value.Value {
	return v.localStack()
}

func (v *Vm) NewPair(first, second value.Value) value.Value { return v.Heap.NewPair(first, second) }
func (v *Vm) NewString(s string) value.Value                { return v.Heap.NewString(s) }
func (v *Vm) Pair(val value.Value) (*value.Pair, error)      { return v.Heap.Pair(val) }
func (v *Vm) String(val value.Value) (*value.StringObj, error) {
	return v.Heap.String(val)
}

func (v *Vm) Global(sym value.Symbol) (value.Value, bool) {
	val, ok := v.ctx.Globals[sym.ID]
	return val, ok
}

func (v *Vm) SetGlobal(sym value.Symbol, val value.Value) {
	v.ctx.Globals[sym.ID] = val
}

func (v *Vm) SymbolName(sym value.Symbol) (string, bool) {
	return v.Interner.Lookup(sym.ID)
}
