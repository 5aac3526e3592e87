// Package compiler turns a sequence of reader-produced Values into a
// single BytecodeFunction, recognizing the reserved special forms
// (if, function, def, let, for, return, and, or, quote) and compiling
// everything else as a function call.
//
// It generalizes the teacher's ASTCompiler (compiler/ast_compiler.go):
// the same internal panic/recover discipline for turning a malformed
// input into a single reported error without threading error returns
// through every recursive compile method, the same per-function locals
// bookkeeping (now factored out into package scope), and the same
// forward-jump "reserve a slot, compile the branch, patch the slot"
// idiom for `if`. Where the teacher emits a fixed-width byte stream via
// encoding/binary, this compiler appends value.Instruction structs
// directly (see value/instruction.go's doc comment for why).
package compiler

import (
	"fmt"

	"github.com/wmedrano/spore/heap"
	"github.com/wmedrano/spore/intern"
	"github.com/wmedrano/spore/scope"
	"github.com/wmedrano/spore/sporeerr"
	"github.com/wmedrano/spore/value"
)

// reserved holds the interned IDs of every special-form head symbol,
// resolved once so compilePair can dispatch with an integer compare
// rather than a string compare per pair.
type reserved struct {
	if_, function, def, let, for_, return_, and_, or_, quote, internalDefine intern.ID
}

type funcUnit struct {
	instructions []value.Instruction
	scope        *scope.Scope
}

// Compiler compiles Value trees into bytecode functions, sharing a
// Heap (to allocate nested function literals) and Interner (to resolve
// special-form symbols and intern synthetic loop-state names) with the
// reader and VM that produced the Values it's compiling.
type Compiler struct {
	heap     *heap.Heap
	interner *intern.Interner
	reserved reserved
	units    []*funcUnit
}

// New creates a Compiler over the given heap and interner. Both must
// be the same instances the reader used to build the Values it will
// compile, and the same instances the VM will execute against.
func New(h *heap.Heap, in *intern.Interner) *Compiler {
	return &Compiler{
		heap:     h,
		interner: in,
		reserved: reserved{
			if_:            in.Intern("if"),
			function:       in.Intern("function"),
			def:            in.Intern("def"),
			let:            in.Intern("let"),
			for_:           in.Intern("for"),
			return_:        in.Intern("return"),
			and_:           in.Intern("and"),
			or_:            in.Intern("or"),
			quote:          in.Intern("quote"),
			internalDefine: in.Intern("internal-define"),
		},
	}
}

// CompileTopLevel compiles a sequence of top-level expressions into one
// BytecodeFunction whose result is the value of the last expression
// (nil if exprs is empty).
func (c *Compiler) CompileTopLevel(exprs []value.Value) (fn value.BytecodeFunction, err error) {
	defer func() {
		if r := recover(); r != nil {
			if se, ok := r.(sporeerr.Error); ok {
				err = se
				return
			}
			panic(r)
		}
	}()

	c.pushUnit()
	c.compileSequence(exprs)
	c.emit(value.OpRet, 0, value.Value{})
	unit := c.popUnit()

	fn = value.BytecodeFunction{
		Instructions:          unit.instructions,
		ArgCount:              0,
		InitialLocalStackSize: uint32(unit.scope.HighWaterMark()),
	}
	return fn, nil
}

func (c *Compiler) fail(kind sporeerr.Kind, format string, args ...any) {
	panic(sporeerr.New(kind, format, args...))
}

func (c *Compiler) unit() *funcUnit { return c.units[len(c.units)-1] }

func (c *Compiler) pushUnit() {
	c.units = append(c.units, &funcUnit{scope: scope.New()})
}

func (c *Compiler) popUnit() *funcUnit {
	u := c.unit()
	c.units = c.units[:len(c.units)-1]
	return u
}

func (c *Compiler) emit(op value.Opcode, operand int32, constVal value.Value) {
	u := c.unit()
	u.instructions = append(u.instructions, value.Instruction{Op: op, Operand: operand, Const: constVal})
}

func (c *Compiler) emitPush(v value.Value) {
	c.emit(value.OpPush, 0, v)
}

// emitJumpPlaceholder emits a jump-family instruction with a zero
// operand and returns its index, to be filled in later by patchJump.
func (c *Compiler) emitJumpPlaceholder(op value.Opcode) int {
	pos := len(c.unit().instructions)
	c.emit(op, 0, value.Value{})
	return pos
}

// patchJump sets the jump instruction at pos to land at the current end
// of the instruction stream, as a distance relative to the instruction
// immediately following pos (the spec's relative-jump convention).
func (c *Compiler) patchJump(pos int) {
	u := c.unit()
	distance := int32(len(u.instructions) - (pos + 1))
	u.instructions[pos].Operand = distance
}

// compileSequence compiles a body of expressions, discarding every
// value but the last (which is left on the stack); an empty sequence
// compiles to `push nil`.
func (c *Compiler) compileSequence(exprs []value.Value) {
	if len(exprs) == 0 {
		c.emitPush(value.Nil())
		return
	}
	for i, e := range exprs {
		c.compileExpr(e)
		if i != len(exprs)-1 {
			c.emit(value.OpPop, 1, value.Value{})
		}
	}
}

// listElements walks a proper list's pair chain into a slice. A dotted
// tail (anything but nil at the end) is a WrongType failure.
func (c *Compiler) listElements(v value.Value) []value.Value {
	var elems []value.Value
	for v.Kind != value.KindNil {
		if v.Kind != value.KindPair {
			c.fail(sporeerr.WrongType, "expected a proper list, found a dotted pair tail")
		}
		pair, err := c.heap.Pair(v)
		if err != nil {
			c.fail(sporeerr.Internal, "%v", err)
		}
		elems = append(elems, pair.First)
		v = pair.Second
	}
	return elems
}

func (c *Compiler) compileExpr(v value.Value) {
	switch v.Kind {
	case value.KindNil, value.KindBool, value.KindInt, value.KindFloat, value.KindString, value.KindFunction, value.KindNative, value.KindError:
		c.emitPush(v)
	case value.KindSymbol:
		c.compileSymbol(v.Sym)
	case value.KindPair:
		c.compilePair(v)
	default:
		c.fail(sporeerr.Internal, "cannot compile a value of kind %s", v.Kind)
	}
}

// compileSymbol implements the table in §4.3: a quoted symbol pushes
// itself as data; an unquoted symbol bound as a local compiles to
// `get`, otherwise to `deref`.
func (c *Compiler) compileSymbol(sym value.Symbol) {
	if sym.Quoted {
		c.emitPush(value.SymbolValue(value.Symbol{ID: sym.ID}))
		return
	}
	if slot, ok := c.unit().scope.Resolve(sym.ID); ok {
		c.emit(value.OpGet, int32(slot), value.Value{})
		return
	}
	c.emit(value.OpDeref, 0, value.SymbolValue(value.Symbol{ID: sym.ID}))
}

func (c *Compiler) compilePair(v value.Value) {
	pair, err := c.heap.Pair(v)
	if err != nil {
		c.fail(sporeerr.Internal, "%v", err)
	}
	head := pair.First
	if head.Kind == value.KindSymbol && !head.Sym.Quoted {
		switch head.Sym.ID {
		case c.reserved.if_:
			c.compileIf(pair.Second)
			return
		case c.reserved.function:
			c.compileFunction(pair.Second)
			return
		case c.reserved.def:
			c.compileDef(pair.Second)
			return
		case c.reserved.let:
			c.compileLet(pair.Second)
			return
		case c.reserved.for_:
			c.compileFor(pair.Second)
			return
		case c.reserved.return_:
			c.compileReturn(pair.Second)
			return
		case c.reserved.and_:
			c.compileAnd(pair.Second)
			return
		case c.reserved.or_:
			c.compileOr(pair.Second)
			return
		case c.reserved.quote:
			c.compileQuote(pair.Second)
			return
		}
	}
	c.compileCall(v)
}

// compileCall compiles every list element in source order (the callee
// first, then each argument), then emits `eval n`.
func (c *Compiler) compileCall(v value.Value) {
	elems := c.listElements(v)
	if len(elems) == 0 {
		c.fail(sporeerr.InvalidExpression, "cannot call an empty list")
	}
	for _, e := range elems {
		c.compileExpr(e)
	}
	c.emit(value.OpEval, int32(len(elems)), value.Value{})
}

// compileIf implements §4.3.1: compile the predicate, reserve a
// `jump_if` to skip straight to the true branch, compile the false
// branch (or push nil), reserve an unconditional `jump` past the true
// branch, then compile the true branch and patch both jumps.
func (c *Compiler) compileIf(args value.Value) {
	elems := c.listElements(args)
	if len(elems) < 2 || len(elems) > 3 {
		c.fail(sporeerr.InvalidExpression, "if expects 2 or 3 arguments, got %d", len(elems))
	}

	c.compileExpr(elems[0])
	toTrueBranch := c.emitJumpPlaceholder(value.OpJumpIf)
	if len(elems) == 3 {
		c.compileExpr(elems[2])
	} else {
		c.emitPush(value.Nil())
	}
	toEnd := c.emitJumpPlaceholder(value.OpJump)
	c.patchJump(toTrueBranch)
	c.compileExpr(elems[1])
	c.patchJump(toEnd)
}

// compileFunction implements §4.3.2: open a fresh function unit,
// binding each parameter to a local slot in order, compile the body,
// and push the resulting heap-allocated function as a value in the
// enclosing unit.
func (c *Compiler) compileFunction(args value.Value) {
	elems := c.listElements(args)
	if len(elems) < 1 {
		c.fail(sporeerr.InvalidExpression, "function expects a parameter list")
	}
	params := c.listElements(elems[0])
	body := elems[1:]

	c.pushUnit()
	for _, p := range params {
		if p.Kind != value.KindSymbol || p.Sym.Quoted {
			c.fail(sporeerr.InvalidExpression, "function parameters must be unquoted symbols")
		}
		_, redeclared := c.unit().scope.Declare(p.Sym.ID)
		if redeclared {
			c.fail(sporeerr.InvalidExpression, "duplicate parameter name %q", p.Sym.ID)
		}
		c.unit().scope.Define()
	}
	c.compileSequence(body)
	c.emit(value.OpRet, 0, value.Value{})
	unit := c.popUnit()

	fnVal := c.heap.NewFunction(value.BytecodeFunction{
		Instructions:          unit.instructions,
		ArgCount:              uint32(len(params)),
		InitialLocalStackSize: uint32(unit.scope.HighWaterMark()),
	})
	c.emitPush(fnVal)
}

// compileDef lowers `(def name val)` to the call `(internal-define
// 'name val)`, per §4.3: push the internal-define native as callee,
// push the quoted name, compile val, then `eval 3`.
func (c *Compiler) compileDef(args value.Value) {
	elems := c.listElements(args)
	if len(elems) != 2 {
		c.fail(sporeerr.InvalidExpression, "def expects exactly 2 arguments, got %d", len(elems))
	}
	if elems[0].Kind != value.KindSymbol {
		c.fail(sporeerr.InvalidExpression, "def's first argument must be a symbol")
	}
	c.emit(value.OpDeref, 0, value.SymbolValue(value.Symbol{ID: c.reserved.internalDefine}))
	c.emitPush(value.SymbolValue(value.Symbol{ID: elems[0].Sym.ID}))
	c.compileExpr(elems[1])
	c.emit(value.OpEval, 3, value.Value{})
}

// compileLet implements §4.3.3: bind each name in order (so later
// initializers can refer to earlier names), then compile the body. The
// bindings go out of scope (for name resolution purposes) once the let
// form ends, freeing their slots for reuse by later sibling forms —
// see the scope package doc comment. No runtime instruction is needed
// to discard them: every local in a function occupies a slot within
// that function's single, statically-sized local-stack window
// allocated once at call entry (§4.4's `eval n` bytecode-function
// branch), so a completed let leaves nothing extra on the data stack
// to clean up. `squash` accordingly goes unused by this compiler; see
// DESIGN.md.
func (c *Compiler) compileLet(args value.Value) {
	elems := c.listElements(args)
	if len(elems) < 1 {
		c.fail(sporeerr.InvalidExpression, "let expects a binding list")
	}
	bindings := c.listElements(elems[0])
	body := elems[1:]

	c.unit().scope.Begin()
	for _, b := range bindings {
		bindElems := c.listElements(b)
		if len(bindElems) != 2 || bindElems[0].Kind != value.KindSymbol || bindElems[0].Sym.Quoted {
			c.fail(sporeerr.InvalidExpression, "let binding must be (name init)")
		}
		c.compileExpr(bindElems[1])
		slot, redeclared := c.unit().scope.Declare(bindElems[0].Sym.ID)
		if redeclared {
			c.fail(sporeerr.InvalidExpression, "duplicate binding name %q in let", bindElems[0].Sym.ID)
		}
		c.emit(value.OpSet, int32(slot), value.Value{})
		c.unit().scope.Define()
	}

	c.compileSequence(body)
	c.unit().scope.End()
}

// compileFor implements §4.3.4: an anonymous slot holds the iterable
// (or, for an int range, the exclusive end), the named slot holds the
// current item (pre-seeded to -1 so a bare int iterable's first
// `iter_next` advances to 0), and the loop body runs between a forward
// `jump_if_not` (exit) and a backward `jump` (repeat). `for` always
// evaluates to nil.
func (c *Compiler) compileFor(args value.Value) {
	elems := c.listElements(args)
	if len(elems) < 1 {
		c.fail(sporeerr.InvalidExpression, "for expects a (var iterable) binding and a body")
	}
	head := c.listElements(elems[0])
	if len(head) != 2 || head[0].Kind != value.KindSymbol || head[0].Sym.Quoted {
		c.fail(sporeerr.InvalidExpression, "for's binding must be (var iterable)")
	}
	body := elems[1:]

	c.unit().scope.Begin()
	itemSlot, _ := c.unit().scope.Declare(head[0].Sym.ID)
	c.unit().scope.Define()
	iterName := c.interner.Intern(fmt.Sprintf(" for-iterable@%d", itemSlot))
	iterSlot, _ := c.unit().scope.Declare(iterName)
	c.unit().scope.Define()
	if int(iterSlot) != int(itemSlot)+1 {
		c.fail(sporeerr.Internal, "for loop's item/iterable slots were not allocated contiguously")
	}

	c.emitPush(value.Int(-1))
	c.emit(value.OpSet, int32(itemSlot), value.Value{})
	c.compileExpr(head[1])
	c.emit(value.OpSet, int32(iterSlot), value.Value{})

	headPos := len(c.unit().instructions)
	c.emit(value.OpIterNext, int32(itemSlot), value.Value{})
	toEnd := c.emitJumpPlaceholder(value.OpJumpIfNot)

	for _, e := range body {
		c.compileExpr(e)
		c.emit(value.OpPop, 1, value.Value{})
	}
	backDistance := int32(headPos - (len(c.unit().instructions) + 1))
	c.emit(value.OpJump, backDistance, value.Value{})
	c.patchJump(toEnd)

	c.unit().scope.End()
	c.emitPush(value.Nil())
}

func (c *Compiler) compileReturn(args value.Value) {
	elems := c.listElements(args)
	if len(elems) > 1 {
		c.fail(sporeerr.InvalidExpression, "return takes at most one argument, got %d", len(elems))
	}
	if len(elems) == 1 {
		c.compileExpr(elems[0])
	} else {
		c.emitPush(value.Nil())
	}
	c.emit(value.OpRet, 0, value.Value{})
}

// compileAnd implements short-circuit `and`: evaluating falsy means
// stop and keep that value; evaluating truthy means discard and
// continue. That is exactly pop_or_else_jump's semantics (pop on
// truthy, jump keeping the value on falsy) — the reverse of the
// pairing suggested by §4.3.5's prose, which (read literally against
// §4.4's own opcode semantics) would make `and` keep the wrong
// branch's value; see DESIGN.md for the resolution.
func (c *Compiler) compileAnd(args value.Value) {
	elems := c.listElements(args)
	if len(elems) == 0 {
		c.emitPush(value.Bool(true))
		return
	}
	c.compileShortCircuit(elems, value.OpPopOrElseJump)
}

// compileOr implements short-circuit `or`: evaluating truthy means
// stop and keep that value (jump_or_else_pop); evaluating falsy means
// discard and continue.
func (c *Compiler) compileOr(args value.Value) {
	elems := c.listElements(args)
	if len(elems) == 0 {
		c.emitPush(value.Nil())
		return
	}
	c.compileShortCircuit(elems, value.OpJumpOrElsePop)
}

func (c *Compiler) compileShortCircuit(elems []value.Value, op value.Opcode) {
	var jumps []int
	for i, e := range elems {
		c.compileExpr(e)
		if i != len(elems)-1 {
			jumps = append(jumps, c.emitJumpPlaceholder(op))
		}
	}
	for _, pos := range jumps {
		c.patchJump(pos)
	}
}

func (c *Compiler) compileQuote(args value.Value) {
	elems := c.listElements(args)
	if len(elems) != 1 {
		c.fail(sporeerr.InvalidExpression, "quote expects exactly 1 argument, got %d", len(elems))
	}
	// The reader already built elems[0] as inert data; quoting just
	// means skip compileExpr's get/deref/call treatment and push it.
	c.emitPush(elems[0])
}
