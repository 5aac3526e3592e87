package natives

import "github.com/wmedrano/spore/value"

var listFn = &value.NativeDescriptor{
	Name:      "list",
	Docstring: "(list a b ...) builds a list out of its arguments.",
	Entrypoint: func(vm value.NativeVM) (value.Value, error) {
		args := vm.Args()
		out := value.Nil()
		for i := len(args) - 1; i >= 0; i-- {
			out = vm.NewPair(args[i], out)
		}
		return out, nil
	},
}

var cons = &value.NativeDescriptor{
	Name:      "cons",
	Docstring: "(cons a b) builds a single pair out of a and b.",
	Entrypoint: func(vm value.NativeVM) (value.Value, error) {
		args := vm.Args()
		if len(args) != 2 {
			return value.Nil(), wrongArity("cons", "2", len(args))
		}
		return vm.NewPair(args[0], args[1]), nil
	},
}

var first = &value.NativeDescriptor{
	Name:      "first",
	Docstring: "(first p) returns the first element of the pair p.",
	Entrypoint: func(vm value.NativeVM) (value.Value, error) {
		args := vm.Args()
		if len(args) != 1 {
			return value.Nil(), wrongArity("first", "1", len(args))
		}
		if args[0].Kind != value.KindPair {
			return value.Nil(), wrongType("first", args[0])
		}
		pair, err := vm.Pair(args[0])
		if err != nil {
			return value.Nil(), err
		}
		return pair.First, nil
	},
}

var rest = &value.NativeDescriptor{
	Name:      "rest",
	Docstring: "(rest p) returns the second element of the pair p.",
	Entrypoint: func(vm value.NativeVM) (value.Value, error) {
		args := vm.Args()
		if len(args) != 1 {
			return value.Nil(), wrongArity("rest", "1", len(args))
		}
		if args[0].Kind != value.KindPair {
			return value.Nil(), wrongType("rest", args[0])
		}
		pair, err := vm.Pair(args[0])
		if err != nil {
			return value.Nil(), err
		}
		return pair.Second, nil
	},
}
