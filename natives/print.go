package natives

import (
	"fmt"
	"os"
	"strings"

	"github.com/wmedrano/spore/value"
)

// print writes each argument to stdout in Spore's own textual form and
// returns nil. The fuller pretty-printer used for REPL echoes and
// stack traces lives in package inspect; this native only needs a
// minimal rendering good enough for program output.
var print = &value.NativeDescriptor{
	Name:      "print",
	Docstring: "(print a ...) writes its arguments to standard output.",
	Entrypoint: func(vm value.NativeVM) (value.Value, error) {
		args := vm.Args()
		parts := make([]string, len(args))
		for i, a := range args {
			s, err := format(vm, a)
			if err != nil {
				return value.Nil(), err
			}
			parts[i] = s
		}
		fmt.Fprintln(os.Stdout, strings.Join(parts, " "))
		return value.Nil(), nil
	},
}

func format(vm value.NativeVM, v value.Value) (string, error) {
	switch v.Kind {
	case value.KindNil:
		return "nil", nil
	case value.KindBool:
		return fmt.Sprintf("%t", v.Bool), nil
	case value.KindInt:
		return fmt.Sprintf("%d", v.Int), nil
	case value.KindFloat:
		return fmt.Sprintf("%g", v.Float), nil
	case value.KindSymbol:
		name, _ := vm.SymbolName(v.Sym)
		if v.Sym.Quoted {
			return "'" + name, nil
		}
		return name, nil
	case value.KindString:
		str, err := vm.String(v)
		if err != nil {
			return "", err
		}
		return string(str.Bytes), nil
	case value.KindPair:
		return formatPair(vm, v)
	case value.KindFunction:
		return "<function>", nil
	case value.KindNative:
		return fmt.Sprintf("<native %s>", v.Native.Name), nil
	case value.KindError:
		return "<error>", nil
	default:
		return "<unknown>", nil
	}
}

func formatPair(vm value.NativeVM, v value.Value) (string, error) {
	var parts []string
	for v.Kind == value.KindPair {
		pair, err := vm.Pair(v)
		if err != nil {
			return "", err
		}
		s, err := format(vm, pair.First)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
		v = pair.Second
	}
	if v.Kind != value.KindNil {
		tail, err := format(vm, v)
		if err != nil {
			return "", err
		}
		return "(" + strings.Join(parts, " ") + " . " + tail + ")", nil
	}
	return "(" + strings.Join(parts, " ") + ")", nil
}
