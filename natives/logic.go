package natives

import "github.com/wmedrano/spore/value"

// not mirrors VisitUnary's token.BANG case: nil and false negate to
// true, everything else negates to false.
var not = &value.NativeDescriptor{
	Name:      "not",
	Docstring: "(not a) negates a's truthiness.",
	Entrypoint: func(vm value.NativeVM) (value.Value, error) {
		args := vm.Args()
		if len(args) != 1 {
			return value.Nil(), wrongArity("not", "1", len(args))
		}
		return value.Bool(!args[0].Truthy()), nil
	},
}

// equalP implements the generic `equal?`, in contrast to `=`'s
// strictly-numeric comparison: it delegates to Value.Equal, which is
// structural for immediates and identity-based for heap values.
var equalP = &value.NativeDescriptor{
	Name:      "equal?",
	Docstring: "(equal? a b) reports whether a and b are equal.",
	Entrypoint: func(vm value.NativeVM) (value.Value, error) {
		args := vm.Args()
		if len(args) != 2 {
			return value.Nil(), wrongArity("equal?", "2", len(args))
		}
		return value.Bool(args[0].Equal(args[1])), nil
	},
}

// internalDefine is what `def` lowers to (compiler's compileDef): it
// binds a quoted symbol to a value as a global and evaluates to that
// value, so `(def x 1)` can itself be used as an expression.
var internalDefine = &value.NativeDescriptor{
	Name:      "internal-define",
	Docstring: "(internal-define 'name val) binds val to name as a global.",
	Entrypoint: func(vm value.NativeVM) (value.Value, error) {
		args := vm.Args()
		if len(args) != 2 {
			return value.Nil(), wrongArity("internal-define", "2", len(args))
		}
		if args[0].Kind != value.KindSymbol {
			return value.Nil(), wrongType("internal-define", args[0])
		}
		vm.SetGlobal(args[0].Sym, args[1])
		return args[1], nil
	},
}
