package compiler

import (
	"testing"

	"github.com/wmedrano/spore/heap"
	"github.com/wmedrano/spore/intern"
	"github.com/wmedrano/spore/reader"
	"github.com/wmedrano/spore/value"
)

func compileSource(t *testing.T, source string) (value.BytecodeFunction, *heap.Heap) {
	t.Helper()
	h := heap.New()
	in := intern.New()
	exprs, err := reader.ReadSource(source, h, in)
	if err != nil {
		t.Fatalf("ReadSource(%q) error: %v", source, err)
	}
	fn, err := New(h, in).CompileTopLevel(exprs)
	if err != nil {
		t.Fatalf("CompileTopLevel(%q) error: %v", source, err)
	}
	return fn, h
}

func opcodes(fn value.BytecodeFunction) []value.Opcode {
	ops := make([]value.Opcode, len(fn.Instructions))
	for i, instr := range fn.Instructions {
		ops[i] = instr.Op
	}
	return ops
}

func TestCompileLiteralPushesAndReturns(t *testing.T) {
	fn, _ := compileSource(t, "42")
	want := []value.Opcode{value.OpPush, value.OpRet}
	got := opcodes(fn)
	if len(got) != len(want) {
		t.Fatalf("instructions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("instruction[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if fn.Instructions[0].Const.Int != 42 {
		t.Errorf("pushed constant = %d, want 42", fn.Instructions[0].Const.Int)
	}
}

func TestCompileMultipleTopLevelExprsDiscardAllButLast(t *testing.T) {
	fn, _ := compileSource(t, "1 2 3")
	want := []value.Opcode{value.OpPush, value.OpPop, value.OpPush, value.OpPop, value.OpPush, value.OpRet}
	got := opcodes(fn)
	if len(got) != len(want) {
		t.Fatalf("instructions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("instruction[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCompileUnquotedSymbolDerefs(t *testing.T) {
	fn, _ := compileSource(t, "foo")
	if fn.Instructions[0].Op != value.OpDeref {
		t.Fatalf("expected a deref instruction, got %v", fn.Instructions[0].Op)
	}
}

func TestCompileQuotedSymbolPushes(t *testing.T) {
	fn, _ := compileSource(t, "'foo")
	if fn.Instructions[0].Op != value.OpPush || fn.Instructions[0].Const.Kind != value.KindSymbol {
		t.Fatalf("expected a symbol push, got %+v", fn.Instructions[0])
	}
}

func TestCompileCallEmitsEvalWithArity(t *testing.T) {
	fn, _ := compileSource(t, "(+ 1 2)")
	var evalInstr *value.Instruction
	for i := range fn.Instructions {
		if fn.Instructions[i].Op == value.OpEval {
			evalInstr = &fn.Instructions[i]
		}
	}
	if evalInstr == nil {
		t.Fatal("expected an eval instruction")
	}
	if evalInstr.Operand != 3 {
		t.Errorf("eval operand = %d, want 3 (callee + 2 args)", evalInstr.Operand)
	}
}

func TestCompileIfEmitsBothJumps(t *testing.T) {
	fn, _ := compileSource(t, "(if true 1 2)")
	hasJumpIf, hasJump := false, false
	for _, instr := range fn.Instructions {
		if instr.Op == value.OpJumpIf {
			hasJumpIf = true
		}
		if instr.Op == value.OpJump {
			hasJump = true
		}
	}
	if !hasJumpIf || !hasJump {
		t.Errorf("if should emit both jump_if and jump, got %v", opcodes(fn))
	}
}

func TestCompileFunctionAllocatesBytecodeFunction(t *testing.T) {
	fn, h := compileSource(t, "(function (a b) (+ a b))")
	if fn.Instructions[0].Op != value.OpPush || fn.Instructions[0].Const.Kind != value.KindFunction {
		t.Fatalf("expected the function literal to compile to a single push of a function value, got %+v", fn.Instructions[0])
	}
	inner, err := h.Function(fn.Instructions[0].Const)
	if err != nil {
		t.Fatalf("Function() error: %v", err)
	}
	if inner.ArgCount != 2 {
		t.Errorf("ArgCount = %d, want 2", inner.ArgCount)
	}
}

func TestCompileDefLowersToInternalDefineCall(t *testing.T) {
	fn, _ := compileSource(t, "(def x 1)")
	ops := opcodes(fn)
	want := []value.Opcode{value.OpDeref, value.OpPush, value.OpPush, value.OpEval, value.OpRet}
	if len(ops) != len(want) {
		t.Fatalf("instructions = %v, want shape %v", ops, want)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Errorf("instruction[%d] = %v, want %v", i, ops[i], want[i])
		}
	}
	if fn.Instructions[3].Operand != 3 {
		t.Errorf("eval operand = %d, want 3", fn.Instructions[3].Operand)
	}
}

func TestCompileLetSetsLocalsThenBody(t *testing.T) {
	fn, _ := compileSource(t, "(let ((x 1)) x)")
	var sawSet, sawGet bool
	for _, instr := range fn.Instructions {
		if instr.Op == value.OpSet {
			sawSet = true
		}
		if instr.Op == value.OpGet {
			sawGet = true
		}
	}
	if !sawSet || !sawGet {
		t.Errorf("let should set the binding then get it back, got %v", opcodes(fn))
	}
}

func TestCompileForEmitsIterNextAndBackwardJump(t *testing.T) {
	fn, _ := compileSource(t, "(for (x (list 1 2)) x)")
	var iterIdx, jumpIdx = -1, -1
	for i, instr := range fn.Instructions {
		if instr.Op == value.OpIterNext {
			iterIdx = i
		}
		if instr.Op == value.OpJump {
			jumpIdx = i
		}
	}
	if iterIdx == -1 || jumpIdx == -1 {
		t.Fatalf("expected iter_next and a backward jump, got %v", opcodes(fn))
	}
	if fn.Instructions[jumpIdx].Operand >= 0 {
		t.Errorf("for's repeat jump should be backward (negative), got %d", fn.Instructions[jumpIdx].Operand)
	}
}

func TestCompileEmptyAndOrDefaults(t *testing.T) {
	fn, _ := compileSource(t, "(and)")
	if fn.Instructions[0].Const.Kind != value.KindBool || !fn.Instructions[0].Const.Bool {
		t.Errorf("(and) should compile to push true, got %+v", fn.Instructions[0])
	}
	fn, _ = compileSource(t, "(or)")
	if fn.Instructions[0].Const.Kind != value.KindNil {
		t.Errorf("(or) should compile to push nil, got %+v", fn.Instructions[0])
	}
}

func TestCompileWrongArityIfFails(t *testing.T) {
	h := heap.New()
	in := intern.New()
	exprs, err := reader.ReadSource("(if true)", h, in)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := New(h, in).CompileTopLevel(exprs); err == nil {
		t.Fatal("expected an InvalidExpression error for (if true)")
	}
}
