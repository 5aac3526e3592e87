package heap

import "github.com/wmedrano/spore/value"

// Mark walks every root value and everything transitively reachable
// from it, recoloring each to this cycle's reachable color. Roots are
// supplied by the VM: the live data stack, every global binding's
// value, and the last-error slot (SPEC_FULL.md §4.7).
func (h *Heap) Mark(roots []value.Value) {
	reachable := h.reachableColor()
	for _, v := range roots {
		h.mark(v, reachable)
	}
}

func (h *Heap) mark(v value.Value, reachable Color) {
	switch v.Kind {
	case value.KindPair:
		prev, err := h.Pairs.SetColor(v.PairH, reachable)
		if err != nil || prev == reachable {
			return
		}
		pair, err := h.Pairs.Get(v.PairH)
		if err != nil {
			return
		}
		h.mark(pair.First, reachable)
		h.mark(pair.Second, reachable)
	case value.KindString:
		h.Strings.SetColor(v.StrH, reachable)
	case value.KindFunction:
		prev, err := h.Functions.SetColor(v.FuncH, reachable)
		if err != nil || prev == reachable {
			return
		}
		fn, err := h.Functions.Get(v.FuncH)
		if err != nil {
			return
		}
		for _, instr := range fn.Instructions {
			if instr.Op == value.OpPush || instr.Op == value.OpDeref {
				h.mark(instr.Const, reachable)
			}
		}
	case value.KindError:
		prev, err := h.Errors.SetColor(v.ErrH, reachable)
		if err != nil || prev == reachable {
			return
		}
		detailed, err := h.Errors.Get(v.ErrH)
		if err != nil {
			return
		}
		for _, ctx := range detailed.Context {
			h.mark(ctx, reachable)
		}
	default:
		// Immediate values (nil, bool, int, float, symbol, native)
		// need no marking: they own no heap storage.
	}
}

// Sweep reclaims every object still colored unreachable after the most
// recent Mark, then flips the heap's notion of unreachable so the next
// cycle's mark phase recolors into what is, right now, the stale color
// — matching the spec's "swap mark colors instead of clearing bits"
// design (§4.7, §9).
func (h *Heap) Sweep() Stats {
	before := h.Stats()
	h.Pairs.Sweep(h.unreachable, nil)
	h.Strings.Sweep(h.unreachable, func(s *value.StringObj) { s.Bytes = nil })
	h.Functions.Sweep(h.unreachable, func(fn *value.BytecodeFunction) { fn.Instructions = nil })
	h.Errors.Sweep(h.unreachable, func(e *value.DetailedError) { e.Context = nil })
	h.unreachable = h.reachableColor()
	after := h.Stats()
	return Stats{
		Pairs:     before.Pairs - after.Pairs,
		Strings:   before.Strings - after.Strings,
		Functions: before.Functions - after.Functions,
		Errors:    before.Errors - after.Errors,
	}
}

// Collect runs one full mark-and-sweep cycle given the current roots
// and returns how many objects of each kind were freed.
func (h *Heap) Collect(roots []value.Value) Stats {
	h.Mark(roots)
	return h.Sweep()
}
