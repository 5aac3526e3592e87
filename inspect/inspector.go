package inspect

import (
	"fmt"
	"strings"

	"github.com/wmedrano/spore/heap"
	"github.com/wmedrano/spore/intern"
	"github.com/wmedrano/spore/sporeerr"
	"github.com/wmedrano/spore/value"
)

// Inspector converts Values back into Go data or human-readable text,
// the embedder-facing counterpart to Builder.
type Inspector struct {
	heap *heap.Heap
	in   *intern.Interner
}

// NewInspector creates an Inspector over the given heap and interner.
func NewInspector(h *heap.Heap, in *intern.Interner) *Inspector {
	return &Inspector{heap: h, in: in}
}

// ToInt64 converts v to an int64, or fails with WrongType.
func (ins *Inspector) ToInt64(v value.Value) (int64, error) {
	if v.Kind != value.KindInt {
		return 0, sporeerr.New(sporeerr.WrongType, "expected an int, got %s", v.Kind)
	}
	return v.Int, nil
}

// ToFloat64 converts v to a float64. An int widens; anything else fails.
func (ins *Inspector) ToFloat64(v value.Value) (float64, error) {
	switch v.Kind {
	case value.KindFloat:
		return v.Float, nil
	case value.KindInt:
		return float64(v.Int), nil
	default:
		return 0, sporeerr.New(sporeerr.WrongType, "expected a number, got %s", v.Kind)
	}
}

// ToBool converts v to a bool, or fails with WrongType.
func (ins *Inspector) ToBool(v value.Value) (bool, error) {
	if v.Kind != value.KindBool {
		return false, sporeerr.New(sporeerr.WrongType, "expected a bool, got %s", v.Kind)
	}
	return v.Bool, nil
}

// ToString dereferences v's string handle, or fails with WrongType/
// ObjectNotFound.
func (ins *Inspector) ToString(v value.Value) (string, error) {
	if v.Kind != value.KindString {
		return "", sporeerr.New(sporeerr.WrongType, "expected a string, got %s", v.Kind)
	}
	str, err := ins.heap.String(v)
	if err != nil {
		return "", err
	}
	return string(str.Bytes), nil
}

// Pretty renders v as Spore source text would, recursing through pairs
// and dereferencing strings/symbols, the way astPrinter recursively
// renders a parsed tree (parser/printer.go) but over runtime Values
// instead of AST nodes.
func (ins *Inspector) Pretty(v value.Value) string {
	switch v.Kind {
	case value.KindNil:
		return "nil"
	case value.KindBool:
		return fmt.Sprintf("%t", v.Bool)
	case value.KindInt:
		return fmt.Sprintf("%d", v.Int)
	case value.KindFloat:
		return fmt.Sprintf("%g", v.Float)
	case value.KindSymbol:
		name, _ := ins.in.Lookup(v.Sym.ID)
		if v.Sym.Quoted {
			return "'" + name
		}
		return name
	case value.KindString:
		str, err := ins.heap.String(v)
		if err != nil {
			return "<dangling string>"
		}
		return fmt.Sprintf("%q", str.Bytes)
	case value.KindPair:
		return ins.prettyPair(v)
	case value.KindFunction:
		fn, err := ins.heap.Function(v)
		if err != nil {
			return "<dangling function>"
		}
		if fn.Name != "" {
			return fmt.Sprintf("<function %s>", fn.Name)
		}
		return "<function>"
	case value.KindNative:
		return fmt.Sprintf("<native %s>", v.Native.Name)
	case value.KindError:
		return ins.ErrorReport(v)
	default:
		return "<unknown>"
	}
}

func (ins *Inspector) prettyPair(v value.Value) string {
	var parts []string
	for v.Kind == value.KindPair {
		pair, err := ins.heap.Pair(v)
		if err != nil {
			return "<dangling pair>"
		}
		parts = append(parts, ins.Pretty(pair.First))
		v = pair.Second
	}
	if v.Kind != value.KindNil {
		return "(" + strings.Join(parts, " ") + " . " + ins.Pretty(v) + ")"
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// PrettySlice renders each value independently, e.g. to echo a
// top-level REPL line that read more than one expression.
func (ins *Inspector) PrettySlice(vals []value.Value) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = ins.Pretty(v)
	}
	return out
}

// ErrorReport renders a KindError value's kind, message, and any
// context values, the rich-diagnostic counterpart to err.Error()'s
// plain string (§4.7).
func (ins *Inspector) ErrorReport(v value.Value) string {
	if v.Kind != value.KindError {
		return ins.Pretty(v)
	}
	detailed, err := ins.heap.DetailedError(v)
	if err != nil {
		return "<dangling error>"
	}
	if len(detailed.Context) == 0 {
		return fmt.Sprintf("%s: %s", detailed.Kind, detailed.Message)
	}
	ctx := ins.PrettySlice(detailed.Context)
	return fmt.Sprintf("%s: %s (%s)", detailed.Kind, detailed.Message, strings.Join(ctx, ", "))
}

// StackTrace joins a sequence of frame labels (innermost last, as the
// VM's call-frame stack naturally orders them) into the multi-line
// report a failed eval_string's embedder would want to print.
func (ins *Inspector) StackTrace(frameLabels []string) string {
	return strings.Join(frameLabels, "\n")
}
