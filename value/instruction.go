package value

// Opcode is a single bytecode instruction's operation. The set is
// small and stack-oriented, generalizing the teacher's OP_CONSTANT/
// OP_END pair (vm/vm.go, compiler/code.go) to the full instruction
// vocabulary Spore's compiler needs to emit `if`/`let`/`for`/function
// calls (SPEC_FULL.md §4.4).
type Opcode byte

const (
	// OpPush pushes Instruction.Const onto the data stack.
	OpPush Opcode = iota
	// OpPop discards Instruction.Operand values from the data stack.
	OpPop
	// OpGet pushes a copy of the local slot at Instruction.Operand.
	OpGet
	// OpSet pops the stack top and stores it into the local slot at
	// Instruction.Operand.
	OpSet
	// OpDeref looks up Instruction.Const's symbol in globals and
	// pushes the bound value, or raises SymbolNotFound.
	OpDeref
	// OpIterNext advances the iteration state at Instruction.Operand
	// one step, writing the next item into that local slot, and pushes
	// a single bool (whether there was a next item), for `for` loops
	// walking a list or an int range.
	OpIterNext
	// OpJump moves the instruction pointer by Instruction.Operand
	// (signed, relative).
	OpJump
	// OpJumpIf pops the stack top; if truthy, jumps by Operand.
	OpJumpIf
	// OpJumpIfNot pops the stack top; if falsy, jumps by Operand.
	OpJumpIfNot
	// OpJumpOrElsePop peeks the stack top; if truthy, jumps by Operand
	// leaving the value on the stack (short-circuit `or`); otherwise
	// pops it and falls through.
	OpJumpOrElsePop
	// OpPopOrElseJump peeks the stack top; if falsy, jumps by Operand
	// leaving the value on the stack (short-circuit `and`); otherwise
	// pops it and falls through.
	OpPopOrElseJump
	// OpEval calls the callable Instruction.Operand slots below the
	// top of the data stack, consuming it and its arguments and
	// pushing one result.
	OpEval
	// OpSquash replaces the top Instruction.Operand values with the
	// single value that was on top. Package compiler never emits it.
	OpSquash
	// OpRet returns from the current call frame with the stack top as
	// the result.
	OpRet
)

func (op Opcode) String() string {
	switch op {
	case OpPush:
		return "push"
	case OpPop:
		return "pop"
	case OpGet:
		return "get"
	case OpSet:
		return "set"
	case OpDeref:
		return "deref"
	case OpIterNext:
		return "iter_next"
	case OpJump:
		return "jump"
	case OpJumpIf:
		return "jump_if"
	case OpJumpIfNot:
		return "jump_if_not"
	case OpJumpOrElsePop:
		return "jump_or_else_pop"
	case OpPopOrElseJump:
		return "pop_or_else_jump"
	case OpEval:
		return "eval"
	case OpSquash:
		return "squash"
	case OpRet:
		return "ret"
	default:
		return "unknown"
	}
}

// Instruction is one bytecode op plus whichever operand it needs: a
// signed word for pop/get/set/iter_next/jump*/eval/squash counts and
// distances, or an embedded Value for push/deref's constant payload.
//
// The teacher encodes instructions as a raw byte stream read back with
// encoding/binary (compiler/code.go, vm/vm.go) because every C operand
// fits a fixed 2-byte width. Spore's `push` operand is a full Value, so
// a byte stream would have to smuggle a heap handle or float through a
// fixed-width field; a slice of small structs avoids that, at the cost
// of losing the teacher's literal disassembly-by-byte-offset trick. No
// package in this module disassembles instructions to text.
type Instruction struct {
	Op      Opcode
	Operand int32
	Const   Value
}
