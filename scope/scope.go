// Package scope tracks a compiled function's local variable slots
// across nested lexical blocks (the bodies of `let` and `for` forms),
// generalizing the teacher's block-scope bookkeeping in
// compiler/ast_compiler.go (Local, beginScope/endScope, declareLocal/
// resolveLocal) from a single flat C scope stack keyed by string name
// to one Scope per compiled Spore function, keyed by interned symbol.
//
// A Scope's locals slice doubles as the VM's eventual stack layout: a
// local's Slot is the offset a `get`/`set` instruction targets on the
// current call frame's stack window.
package scope

import "github.com/wmedrano/spore/intern"

// Local is one declared binding: a parameter, or a `let`/`for` binding.
type Local struct {
	ID          intern.ID
	Depth       uint16
	Initialized bool
	Slot        uint16
}

// Scope holds the locals declared so far within a single compiled
// function, across however many nested let/for blocks it contains.
type Scope struct {
	locals []Local
	depth  uint16
	// high is the largest locals length ever reached. End() shrinks
	// locals so sibling blocks can reuse freed slots, but the function's
	// InitialLocalStackSize must reserve room for the deepest point any
	// block ever reached, not just whatever is left in scope when
	// compilation of the function finishes.
	high uint16
}

// New creates an empty Scope for a function about to be compiled.
func New() *Scope {
	return &Scope{}
}

// Begin opens a new nested block (the body of a `let` or `for`).
func (s *Scope) Begin() {
	s.depth++
}

// End closes the innermost block, discarding every local declared
// inside it, and returns how many were discarded — the count a
// `squash` instruction needs to know how many stack slots to collapse.
func (s *Scope) End() int {
	s.depth--
	count := 0
	for len(s.locals) > 0 && s.locals[len(s.locals)-1].Depth > s.depth {
		s.locals = s.locals[:len(s.locals)-1]
		count++
	}
	return count
}

// Declare adds a new local at the current depth and returns its slot.
// If id was already declared at this exact depth, Declare returns the
// existing slot and redeclared=true instead of adding a duplicate — the
// compiler turns that into an InvalidExpression error, the same outcome
// the teacher reaches by panicking on a same-scope redefinition.
func (s *Scope) Declare(id intern.ID) (slot uint16, redeclared bool) {
	for i := len(s.locals) - 1; i >= 0; i-- {
		if s.locals[i].Depth < s.depth {
			break
		}
		if s.locals[i].ID == id {
			return s.locals[i].Slot, true
		}
	}
	slot = uint16(len(s.locals))
	s.locals = append(s.locals, Local{ID: id, Depth: s.depth, Slot: slot})
	if uint16(len(s.locals)) > s.high {
		s.high = uint16(len(s.locals))
	}
	return slot, false
}

// Define marks the most recently declared local as initialized, so
// that (in a future extension) a reference to it within its own
// initializer expression can be rejected.
func (s *Scope) Define() {
	if len(s.locals) > 0 {
		s.locals[len(s.locals)-1].Initialized = true
	}
}

// Resolve looks up id among locals visible at the current depth,
// searching innermost-first so that shadowing in a nested block works.
func (s *Scope) Resolve(id intern.ID) (slot int, ok bool) {
	for i := len(s.locals) - 1; i >= 0; i-- {
		if s.locals[i].ID == id {
			return int(s.locals[i].Slot), true
		}
	}
	return -1, false
}

// Len returns the number of locals currently in scope.
func (s *Scope) Len() int { return len(s.locals) }

// HighWaterMark returns the largest number of simultaneously-declared
// locals this Scope ever held — the slot count a function must
// actually reserve in InitialLocalStackSize, since End() frees slots
// for reuse but does not shrink the stack window a call allocates.
func (s *Scope) HighWaterMark() int { return int(s.high) }

// Depth returns the current nesting depth.
func (s *Scope) Depth() uint16 { return s.depth }
