package heap

import "github.com/wmedrano/spore/value"

// Heap owns every heap-allocated object a single VM instance can
// create. A Value's handle fields only make sense relative to the Heap
// that created them; handles are never shared across Heap instances.
type Heap struct {
	Pairs     *Pool[value.Pair]
	Strings   *Pool[value.StringObj]
	Functions *Pool[value.BytecodeFunction]
	Errors    *Pool[value.DetailedError]

	// unreachable is the color a sweep will reclaim. Freshly allocated
	// objects start out colored unreachable too (not reachable) — see
	// newColor — so that an object allocated and then immediately
	// dropped before the next mark phase is collected on schedule
	// rather than surviving an extra cycle by default.
	unreachable Color
}

// New creates an empty Heap.
func New() *Heap {
	return &Heap{
		Pairs:       NewPool[value.Pair](),
		Strings:     NewPool[value.StringObj](),
		Functions:   NewPool[value.BytecodeFunction](),
		Errors:      NewPool[value.DetailedError](),
		unreachable: ColorRed,
	}
}

func (h *Heap) newColor() Color { return h.unreachable }

func (h *Heap) reachableColor() Color {
	if h.unreachable == ColorRed {
		return ColorBlue
	}
	return ColorRed
}

// NewPair allocates a cons cell.
func (h *Heap) NewPair(first, second value.Value) value.Value {
	handle := h.Pairs.Create(value.Pair{First: first, Second: second}, h.newColor())
	return value.PairValue(handle)
}

// NewString allocates a string, copying s into owned storage.
func (h *Heap) NewString(s string) value.Value {
	handle := h.Strings.Create(value.StringObj{Bytes: []byte(s)}, h.newColor())
	return value.StringValue(handle)
}

// NewFunction allocates a bytecode function.
func (h *Heap) NewFunction(fn value.BytecodeFunction) value.Value {
	handle := h.Functions.Create(fn, h.newColor())
	return value.FunctionValue(handle)
}

// NewDetailedError allocates a detailed, heap-resident error value.
func (h *Heap) NewDetailedError(detailed value.DetailedError) value.Value {
	handle := h.Errors.Create(detailed, h.newColor())
	return value.ErrorValue(handle)
}

// Pair dereferences a KindPair value's handle.
func (h *Heap) Pair(v value.Value) (*value.Pair, error) { return h.Pairs.Get(v.PairH) }

// String dereferences a KindString value's handle.
func (h *Heap) String(v value.Value) (*value.StringObj, error) { return h.Strings.Get(v.StrH) }

// Function dereferences a KindFunction value's handle.
func (h *Heap) Function(v value.Value) (*value.BytecodeFunction, error) {
	return h.Functions.Get(v.FuncH)
}

// DetailedError dereferences a KindError value's handle.
func (h *Heap) DetailedError(v value.Value) (*value.DetailedError, error) {
	return h.Errors.Get(v.ErrH)
}

// Stats holds one count per pool: live objects when returned by
// Heap.Stats, objects freed when returned by Sweep/Collect. Tests use
// it to assert GC soundness.
type Stats struct {
	Pairs, Strings, Functions, Errors int
}

func (h *Heap) Stats() Stats {
	return Stats{
		Pairs:     h.Pairs.LiveCount(),
		Strings:   h.Strings.LiveCount(),
		Functions: h.Functions.LiveCount(),
		Errors:    h.Errors.LiveCount(),
	}
}
