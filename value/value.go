// Package value defines Spore's runtime representation: the tagged
// Value union, the heap-object payload types a Value's handles point
// at, and the Instruction/Opcode vocabulary a BytecodeFunction carries.
//
// The teacher represents a runtime value as ast.Literal{Value any} and
// lets the Go runtime's own dynamic typing stand in for the tag
// (ast/expressions.go). Spore needs an exhaustively-switchable tag
// instead (§3, §9: "every site that switches on the value's kind must
// be exhaustive"), so Value here is a small struct with one field per
// variant rather than an any. Handles are position indices into a pool
// owned by package heap; Value itself never imports heap, so that heap
// can depend on value without a cycle.
package value

import (
	"github.com/wmedrano/spore/intern"
	"github.com/wmedrano/spore/sporeerr"
)

// Kind tags which field of a Value is meaningful.
type Kind uint8

const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindFloat
	KindSymbol
	KindPair
	KindString
	KindNative
	KindFunction
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindSymbol:
		return "symbol"
	case KindPair:
		return "pair"
	case KindString:
		return "string"
	case KindNative:
		return "native-function"
	case KindFunction:
		return "function"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Handle is a position index into a heap.Pool[T]. It carries T only as
// a phantom type parameter so that a Value's PairH/StrH/FuncH/ErrH
// fields cannot be confused with one another at compile time, even
// though every Handle is, underneath, the same uint32.
type Handle[T any] struct{ idx uint32 }

// NewHandle wraps a raw pool index. Callers outside package heap should
// not normally need this.
func NewHandle[T any](idx uint32) Handle[T] { return Handle[T]{idx: idx} }

// Index returns the raw pool slot index.
func (h Handle[T]) Index() uint32 { return h.idx }

// Symbol is an interned identifier plus the quoted-or-not bit that
// distinguishes `foo` (evaluates by lookup) from `'foo` (evaluates to
// itself). Packing Quoted into the ID's integer was considered and
// rejected (SPEC_FULL.md §3) in favor of a second field, since intern.ID
// is reused verbatim by the Interner and shouldn't need bit tricks.
type Symbol struct {
	ID     intern.ID
	Quoted bool
}

// Pair is a cons cell: the payload behind a KindPair Value's handle.
type Pair struct {
	First  Value
	Second Value
}

// StringObj is the payload behind a KindString Value's handle.
type StringObj struct {
	Bytes []byte
}

// BytecodeFunction is the payload behind a KindFunction Value's handle.
type BytecodeFunction struct {
	Instructions          []Instruction
	ArgCount              uint32
	InitialLocalStackSize uint32
	Name                  string // empty for anonymous functions
}

// DetailedError is the payload behind a KindError Value's handle: the
// heap-resident form of a sporeerr.Error, with room for Values that
// give the error context (e.g. the offending operand) and that must
// therefore stay reachable to the garbage collector for as long as the
// error itself does (§4.7).
type DetailedError struct {
	Kind    sporeerr.Kind
	Message string
	Context []Value
}

// NativeDescriptor is a native built-in's static ABI descriptor: a name
// for error messages and REPL introspection, plus the Go function that
// implements it. A Value's Native field is a borrowed pointer to one of
// these; descriptors live for the lifetime of the process and are never
// heap-allocated or garbage collected (§4.5).
type NativeDescriptor struct {
	Name       string
	Docstring  string
	Entrypoint func(NativeVM) (Value, error)
}

// NativeVM is the narrow surface a native built-in's entrypoint needs:
// its own arguments, the ability to allocate new heap values and
// dereference existing ones, and access to globals — without needing
// to import package vm (which imports value, not the reverse). A
// native reports failure by returning a RuntimeError, not through this
// interface.
type NativeVM interface {
	Args() []Value
	NewPair(first, second Value) Value
	NewString(s string) Value
	Pair(v Value) (*Pair, error)
	String(v Value) (*StringObj, error)
	Global(sym Symbol) (Value, bool)
	SetGlobal(sym Symbol, v Value)
	SymbolName(sym Symbol) (string, bool)
}

// Value is Spore's tagged runtime value. Only the field(s) matching
// Kind are meaningful; every other field holds its zero value.
type Value struct {
	Kind Kind

	Bool  bool
	Int   int64
	Float float64
	Sym   Symbol

	PairH Handle[Pair]
	StrH  Handle[StringObj]
	FuncH Handle[BytecodeFunction]
	ErrH  Handle[DetailedError]

	Native *NativeDescriptor
}

func Nil() Value                 { return Value{Kind: KindNil} }
func Bool(b bool) Value          { return Value{Kind: KindBool, Bool: b} }
func Int(i int64) Value          { return Value{Kind: KindInt, Int: i} }
func Float(f float64) Value      { return Value{Kind: KindFloat, Float: f} }
func SymbolValue(s Symbol) Value { return Value{Kind: KindSymbol, Sym: s} }
func PairValue(h Handle[Pair]) Value              { return Value{Kind: KindPair, PairH: h} }
func StringValue(h Handle[StringObj]) Value       { return Value{Kind: KindString, StrH: h} }
func FunctionValue(h Handle[BytecodeFunction]) Value { return Value{Kind: KindFunction, FuncH: h} }
func ErrorValue(h Handle[DetailedError]) Value    { return Value{Kind: KindError, ErrH: h} }
func NativeValue(d *NativeDescriptor) Value       { return Value{Kind: KindNative, Native: d} }

// Truthy implements Spore's truthiness rule: everything is truthy
// except nil and the boolean false (§9, resolving the "is 0 falsy?"
// open question as no — only nil/false are falsy).
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindNil:
		return false
	case KindBool:
		return v.Bool
	default:
		return true
	}
}

// Equal implements Spore's `equal?`: structural equality for immediate
// values and identity (same handle) for heap values. Pairs and strings
// are not compared by contents: two separately allocated strings with
// the same bytes are not Equal.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindNil:
		return true
	case KindBool:
		return v.Bool == other.Bool
	case KindInt:
		return v.Int == other.Int
	case KindFloat:
		return v.Float == other.Float
	case KindSymbol:
		return v.Sym == other.Sym
	case KindPair:
		return v.PairH == other.PairH
	case KindString:
		return v.StrH == other.StrH
	case KindFunction:
		return v.FuncH == other.FuncH
	case KindError:
		return v.ErrH == other.ErrH
	case KindNative:
		return v.Native == other.Native
	default:
		return false
	}
}
