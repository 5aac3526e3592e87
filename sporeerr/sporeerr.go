// Package sporeerr defines the flat enum of error kinds shared by the
// reader, compiler, and VM. A single Kind-tagged Error type replaces the
// teacher's three separate per-layer error structs (parser.SyntaxError,
// compiler.SemanticError/DeveloperError, vm.RuntimeError) so that the
// VM's DetailedError heap value (spec §3, §7) can carry the same Kind
// the Go error path returns.
package sporeerr

import "fmt"

// Kind classifies why an operation failed.
type Kind int

const (
	// OutOfMemory is raised when a heap allocation fails.
	OutOfMemory Kind = iota
	// ParseError is raised by the tokenizer/reader on malformed source.
	ParseError
	// InvalidExpression is raised only by the compiler, for a special
	// form with a malformed shape. It is never produced at runtime.
	InvalidExpression
	// SymbolNotFound is raised by `deref` of an unbound global.
	SymbolNotFound
	// WrongArity is raised by `eval n` against a mismatched
	// bytecode-function arity, or a native built-in's own arity check.
	WrongArity
	// WrongType is raised at an instruction boundary on a type
	// mismatch (bad callee, bad iterable, wrong operand type, ...).
	WrongType
	// ObjectNotFound is raised by a handle lookup on a swept pool
	// slot. This indicates a use-after-free and must not occur in a
	// sound program.
	ObjectNotFound
	// DivisionByZero is raised by arithmetic built-ins.
	DivisionByZero
	// StackOverflow is raised when the data stack or call-frame stack
	// exceeds its fixed capacity.
	StackOverflow
	// StackUnderflow is raised by a pop against an empty stack; it
	// guards against miscompiled bytecode.
	StackUnderflow
	// IoError is raised by I/O built-ins.
	IoError
	// Internal marks an unreachable branch or invariant violation.
	Internal
)

func (k Kind) String() string {
	switch k {
	case OutOfMemory:
		return "OutOfMemory"
	case ParseError:
		return "ParseError"
	case InvalidExpression:
		return "InvalidExpression"
	case SymbolNotFound:
		return "SymbolNotFound"
	case WrongArity:
		return "WrongArity"
	case WrongType:
		return "WrongType"
	case ObjectNotFound:
		return "ObjectNotFound"
	case DivisionByZero:
		return "DivisionByZero"
	case StackOverflow:
		return "StackOverflow"
	case StackUnderflow:
		return "StackUnderflow"
	case IoError:
		return "IoError"
	case Internal:
		return "Internal"
	default:
		return "Unknown"
	}
}

// Error is the Go error type carrying a Kind plus a human-readable
// message and (when known) a source position.
type Error struct {
	Kind    Kind
	Message string
	Line    int32
	Column  int
}

// New constructs an Error with no position information, for errors
// raised during execution rather than while reading source.
func New(kind Kind, format string, args ...any) Error {
	return Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NewAt constructs an Error positioned at a source line/column, for
// errors raised by the tokenizer or reader.
func NewAt(kind Kind, line int32, column int, format string, args ...any) Error {
	return Error{Kind: kind, Message: fmt.Sprintf(format, args...), Line: line, Column: column}
}

// Error implements the error interface. Internal errors (which signal a
// bug in this implementation rather than in the user's program) are
// marked distinctly from ordinary user-facing failures, matching the
// teacher's habit of giving developer-only errors a different prefix
// than syntax/runtime errors (compiler/errors.go: 🤖 vs 💥).
func (e Error) Error() string {
	prefix := "💥"
	if e.Kind == Internal {
		prefix = "🤖"
	}
	if e.Line == 0 && e.Column == 0 {
		return fmt.Sprintf("%s %s: %s", prefix, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s %s: %s (line %d, column %d)", prefix, e.Kind, e.Message, e.Line, e.Column)
}

// ErrorKind implements KindedError.
func (e Error) ErrorKind() Kind { return e.Kind }

// KindedError is implemented by every error type this module returns,
// so a caller several layers removed from where an error originated
// (e.g. Vm.EvalString's caller) can recover its Kind without caring
// which layer raised it.
type KindedError interface {
	error
	ErrorKind() Kind
}
