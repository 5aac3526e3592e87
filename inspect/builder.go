// Package inspect provides the embedder-facing helpers for constructing
// and introspecting Values from the host side: Builder constructs
// values (literals, interned symbols, lists, detailed errors) the way
// an embedder hands arguments to a Spore program, and Inspector
// converts a Value back into Go data or human-readable text (§6).
//
// Builder generalizes the teacher's astPrinter (parser/printer.go) in
// the opposite direction: where astPrinter turns a parsed tree into a
// JSON-friendly any for display, Builder turns Go data into the Value
// trees the rest of this module operates on.
package inspect

import (
	"github.com/wmedrano/spore/heap"
	"github.com/wmedrano/spore/intern"
	"github.com/wmedrano/spore/sporeerr"
	"github.com/wmedrano/spore/value"
)

// Builder constructs Values on a particular Heap/Interner pair — always
// the same pair backing the Vm the constructed values will be handed
// to.
type Builder struct {
	heap *heap.Heap
	in   *intern.Interner
}

// NewBuilder creates a Builder over the given heap and interner.
func NewBuilder(h *heap.Heap, in *intern.Interner) *Builder {
	return &Builder{heap: h, in: in}
}

func (b *Builder) Nil() value.Value            { return value.Nil() }
func (b *Builder) Bool(v bool) value.Value      { return value.Bool(v) }
func (b *Builder) Int(v int64) value.Value      { return value.Int(v) }
func (b *Builder) Float(v float64) value.Value  { return value.Float(v) }
func (b *Builder) String(s string) value.Value  { return b.heap.NewString(s) }
func (b *Builder) Pair(first, second value.Value) value.Value {
	return b.heap.NewPair(first, second)
}

// Symbol interns name and builds an unquoted (deref-on-eval) symbol.
func (b *Builder) Symbol(name string) value.Value {
	return value.SymbolValue(value.Symbol{ID: b.in.Intern(name)})
}

// QuotedSymbol interns name and builds a quoted (self-evaluating) symbol.
func (b *Builder) QuotedSymbol(name string) value.Value {
	return value.SymbolValue(value.Symbol{ID: b.in.Intern(name), Quoted: true})
}

// List right-folds items into a nil-terminated pair chain, the same
// construction reader.buildList performs for a parenthesized list
// literal.
func (b *Builder) List(items ...value.Value) value.Value {
	out := value.Nil()
	for i := len(items) - 1; i >= 0; i-- {
		out = b.heap.NewPair(items[i], out)
	}
	return out
}

// DetailedError builds a heap-resident error value with the given kind,
// message, and context values, the same shape EvalString stashes as
// last_error on failure.
func (b *Builder) DetailedError(kind sporeerr.Kind, message string, context ...value.Value) value.Value {
	return b.heap.NewDetailedError(value.DetailedError{Kind: kind, Message: message, Context: context})
}
