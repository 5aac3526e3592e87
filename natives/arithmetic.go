package natives

import "github.com/wmedrano/spore/value"

// add implements `+`. It is exact (int64) when every argument is an
// int, and widens to float64 the moment any argument isn't — the same
// numeric-promotion choice isOperandsNumeric makes by always widening
// to float64, except add stays in integer arithmetic when it can so
// that `(+ 1 2 3)` is the exact int 6, not 6.0.
var add = &value.NativeDescriptor{
	Name:      "+",
	Docstring: "(+ a b ...) sums its arguments. Integer if every argument is, float otherwise.",
	Entrypoint: func(vm value.NativeVM) (value.Value, error) {
		args := vm.Args()
		for _, a := range args {
			if _, ok := asFloat(a); !ok {
				return value.Nil(), wrongType("+", a)
			}
		}
		if allInts(args) {
			var acc int64
			for _, a := range args {
				acc += a.Int
			}
			return value.Int(acc), nil
		}
		var acc float64
		for _, a := range args {
			f, _ := asFloat(a)
			acc += f
		}
		return value.Float(acc), nil
	},
}

// sub implements `-`. A single argument negates it, matching VisitUnary
// token.SUB; two or more subtract left to right.
var sub = &value.NativeDescriptor{
	Name:      "-",
	Docstring: "(- a) negates a. (- a b ...) subtracts b, ... from a left to right.",
	Entrypoint: func(vm value.NativeVM) (value.Value, error) {
		args := vm.Args()
		if len(args) == 0 {
			return value.Nil(), wrongArity("-", "at least 1", 0)
		}
		for _, a := range args {
			if _, ok := asFloat(a); !ok {
				return value.Nil(), wrongType("-", a)
			}
		}
		if allInts(args) {
			if len(args) == 1 {
				return value.Int(-args[0].Int), nil
			}
			acc := args[0].Int
			for _, a := range args[1:] {
				acc -= a.Int
			}
			return value.Int(acc), nil
		}
		first, _ := asFloat(args[0])
		if len(args) == 1 {
			return value.Float(-first), nil
		}
		acc := first
		for _, a := range args[1:] {
			f, _ := asFloat(a)
			acc -= f
		}
		return value.Float(acc), nil
	},
}

var mul = &value.NativeDescriptor{
	Name:      "*",
	Docstring: "(* a b ...) multiplies its arguments. Integer if every argument is, float otherwise.",
	Entrypoint: func(vm value.NativeVM) (value.Value, error) {
		args := vm.Args()
		for _, a := range args {
			if _, ok := asFloat(a); !ok {
				return value.Nil(), wrongType("*", a)
			}
		}
		if allInts(args) {
			acc := int64(1)
			for _, a := range args {
				acc *= a.Int
			}
			return value.Int(acc), nil
		}
		acc := 1.0
		for _, a := range args {
			f, _ := asFloat(a)
			acc *= f
		}
		return value.Float(acc), nil
	},
}

// div implements `/`. Integer division by an integer zero, or float
// division by 0.0, both raise DivisionByZero rather than producing an
// infinity, since Spore has no infinity literal to print it back as.
var div = &value.NativeDescriptor{
	Name:      "/",
	Docstring: "(/ a b ...) divides a by b, ... left to right.",
	Entrypoint: func(vm value.NativeVM) (value.Value, error) {
		args := vm.Args()
		if len(args) == 0 {
			return value.Nil(), wrongArity("/", "at least 1", 0)
		}
		for _, a := range args {
			if _, ok := asFloat(a); !ok {
				return value.Nil(), wrongType("/", a)
			}
		}
		if allInts(args) {
			if len(args) == 1 {
				if args[0].Int == 0 {
					return value.Nil(), divisionByZero()
				}
				return value.Int(1 / args[0].Int), nil
			}
			acc := args[0].Int
			for _, a := range args[1:] {
				if a.Int == 0 {
					return value.Nil(), divisionByZero()
				}
				acc /= a.Int
			}
			return value.Int(acc), nil
		}
		first, _ := asFloat(args[0])
		if len(args) == 1 {
			if first == 0 {
				return value.Nil(), divisionByZero()
			}
			return value.Float(1 / first), nil
		}
		acc := first
		for _, a := range args[1:] {
			f, _ := asFloat(a)
			if f == 0 {
				return value.Nil(), divisionByZero()
			}
			acc /= f
		}
		return value.Float(acc), nil
	},
}

// numEqual implements `=`, strictly numeric equality across int/float
// (`equal?` below is the generic counterpart).
var numEqual = &value.NativeDescriptor{
	Name:      "=",
	Docstring: "(= a b ...) reports whether every argument is numerically equal.",
	Entrypoint: func(vm value.NativeVM) (value.Value, error) {
		args := vm.Args()
		if len(args) < 2 {
			return value.Nil(), wrongArity("=", "at least 2", len(args))
		}
		first, ok := asFloat(args[0])
		if !ok {
			return value.Nil(), wrongType("=", args[0])
		}
		for _, a := range args[1:] {
			f, ok := asFloat(a)
			if !ok {
				return value.Nil(), wrongType("=", a)
			}
			if f != first {
				return value.Bool(false), nil
			}
		}
		return value.Bool(true), nil
	},
}
