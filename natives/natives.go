// Package natives implements Spore's built-in functions: `+ - * / =`,
// `equal?`, `list`, `cons`, `first`, `rest`, `not`, `print`, and
// `internal-define` (the lowering target for `def`). Each is a
// value.NativeDescriptor whose Entrypoint is written in the teacher's
// dispatch style — a switch over operand kinds with an explicit
// numeric-coercion helper, generalizing TreeWalkInterpreter.VisitBinary
// and isOperandsNumeric (interpreter/interpreter.go) from a single
// binary-operator AST node to a variadic call's argument list.
//
// This package depends only on value and sporeerr, so
// package vm can depend on natives without natives depending back on
// vm: every native talks to its caller only through value.NativeVM.
package natives

import (
	"fmt"

	"github.com/wmedrano/spore/sporeerr"
	"github.com/wmedrano/spore/value"
)

// Descriptors returns every built-in this module ships, in the order a
// fresh Vm should register them as globals.
func Descriptors() []*value.NativeDescriptor {
	return []*value.NativeDescriptor{
		add, sub, mul, div, numEqual,
		equalP, listFn, cons, first, rest, not, print, internalDefine,
	}
}

func wrongArity(name string, want string, got int) error {
	return value.RuntimeError{
		Kind:    sporeerr.WrongArity,
		Message: fmt.Sprintf("%s expects %s argument(s), got %d", name, want, got),
	}
}

func wrongType(name string, offender value.Value) error {
	return value.RuntimeError{
		Kind:    sporeerr.WrongType,
		Message: fmt.Sprintf("%s does not accept a %s argument", name, offender.Kind),
		Context: []value.Value{offender},
	}
}

// asFloat mirrors literalToFloat64: it accepts an int or a float and
// widens an int to float64, rejecting every other kind.
func asFloat(v value.Value) (float64, bool) {
	switch v.Kind {
	case value.KindInt:
		return float64(v.Int), true
	case value.KindFloat:
		return v.Float, true
	default:
		return 0, false
	}
}

func divisionByZero() error {
	return value.RuntimeError{Kind: sporeerr.DivisionByZero, Message: "division by zero"}
}

func allInts(args []value.Value) bool {
	for _, a := range args {
		if a.Kind != value.KindInt {
			return false
		}
	}
	return true
}
