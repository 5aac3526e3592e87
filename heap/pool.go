// Package heap owns every object Spore's values can point at: pairs,
// strings, bytecode functions, and detailed errors, each in its own
// pool<T>-style object store, collected by a mark-and-sweep cycle that
// swaps which color counts as "unreachable" each round instead of
// clearing mark bits (SPEC_FULL.md §4.7).
//
// This generalizes the teacher's compiler.Local slot bookkeeping
// (compiler/ast_compiler.go: a growable slice plus free-by-scope-pop)
// from compile-time locals to a runtime, garbage-collected object
// store.
package heap

import (
	"github.com/wmedrano/spore/sporeerr"
	"github.com/wmedrano/spore/value"
)

// Color is a pool slot's mark color. Which color currently means
// "unreachable" is tracked per-Heap and flips after every sweep.
type Color byte

const (
	ColorRed Color = iota
	ColorBlue
)

type poolSlot[T any] struct {
	value T
	color Color
	used  bool
	next  int32
}

// Pool is a growable bag of T slots with a free list recycling
// reclaimed slots before the backing slice grows.
type Pool[T any] struct {
	slots    []poolSlot[T]
	freeHead int32 // -1 means empty
}

// NewPool creates an empty Pool.
func NewPool[T any]() *Pool[T] {
	return &Pool[T]{freeHead: -1}
}

// Create allocates v into a free slot (reusing a reclaimed one if
// available) colored color, and returns its handle.
func (p *Pool[T]) Create(v T, color Color) value.Handle[T] {
	if p.freeHead >= 0 {
		idx := p.freeHead
		p.freeHead = p.slots[idx].next
		p.slots[idx] = poolSlot[T]{value: v, color: color, used: true, next: -1}
		return value.NewHandle[T](uint32(idx))
	}
	p.slots = append(p.slots, poolSlot[T]{value: v, color: color, used: true, next: -1})
	return value.NewHandle[T](uint32(len(p.slots) - 1))
}

// Get returns a pointer to the slot's value, or ObjectNotFound if the
// handle is out of range or its slot has since been swept.
func (p *Pool[T]) Get(h value.Handle[T]) (*T, error) {
	idx := int(h.Index())
	if idx < 0 || idx >= len(p.slots) || !p.slots[idx].used {
		err := sporeerr.New(sporeerr.ObjectNotFound, "object not found for handle %d", idx)
		return nil, err
	}
	return &p.slots[idx].value, nil
}

// SetColor recolors a live slot and returns its previous color. It
// returns ObjectNotFound for a stale handle, mirroring Get.
func (p *Pool[T]) SetColor(h value.Handle[T], color Color) (Color, error) {
	idx := int(h.Index())
	if idx < 0 || idx >= len(p.slots) || !p.slots[idx].used {
		return 0, sporeerr.New(sporeerr.ObjectNotFound, "object not found for handle %d", idx)
	}
	prev := p.slots[idx].color
	p.slots[idx].color = color
	return prev, nil
}

// Sweep reclaims every slot still colored unreachable. release, if
// non-nil, is called on each freed slot's value before it is zeroed, so
// a pool of e.g. StringObj can drop its backing byte slice explicitly.
// Sweep returns the number of slots freed.
func (p *Pool[T]) Sweep(unreachable Color, release func(*T)) int {
	freed := 0
	for i := range p.slots {
		if !p.slots[i].used || p.slots[i].color != unreachable {
			continue
		}
		if release != nil {
			release(&p.slots[i].value)
		}
		var zero T
		p.slots[i].value = zero
		p.slots[i].used = false
		p.slots[i].next = p.freeHead
		p.freeHead = int32(i)
		freed++
	}
	return freed
}

// Len returns the number of slots ever allocated, live or free.
func (p *Pool[T]) Len() int { return len(p.slots) }

// LiveCount returns the number of slots currently in use, for test
// assertions about GC soundness.
func (p *Pool[T]) LiveCount() int {
	n := 0
	for i := range p.slots {
		if p.slots[i].used {
			n++
		}
	}
	return n
}
