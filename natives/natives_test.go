package natives

import (
	"testing"

	"github.com/wmedrano/spore/heap"
	"github.com/wmedrano/spore/intern"
	"github.com/wmedrano/spore/sporeerr"
	"github.com/wmedrano/spore/value"
)

// fakeVM is a minimal value.NativeVM good enough to exercise built-ins
// in isolation, without needing a full vm.Vm.
type fakeVM struct {
	heap    *heap.Heap
	in      *intern.Interner
	args    []value.Value
	globals map[intern.ID]value.Value
}

func newFakeVM(args ...value.Value) *fakeVM {
	return &fakeVM{heap: heap.New(), in: intern.New(), args: args, globals: make(map[intern.ID]value.Value)}
}

func (f *fakeVM) Args() []value.Value                         { return f.args }
func (f *fakeVM) NewPair(a, b value.Value) value.Value         { return f.heap.NewPair(a, b) }
func (f *fakeVM) NewString(s string) value.Value               { return f.heap.NewString(s) }
func (f *fakeVM) Pair(v value.Value) (*value.Pair, error)       { return f.heap.Pair(v) }
func (f *fakeVM) String(v value.Value) (*value.StringObj, error) { return f.heap.String(v) }
func (f *fakeVM) Global(sym value.Symbol) (value.Value, bool) {
	v, ok := f.globals[sym.ID]
	return v, ok
}
func (f *fakeVM) SetGlobal(sym value.Symbol, v value.Value) { f.globals[sym.ID] = v }
func (f *fakeVM) SymbolName(sym value.Symbol) (string, bool) { return f.in.Lookup(sym.ID) }

func TestArithmeticNatives(t *testing.T) {
	tests := []struct {
		name    string
		fn      *value.NativeDescriptor
		args    []value.Value
		wantInt int64
	}{
		{"add", add, []value.Value{value.Int(1), value.Int(2), value.Int(3)}, 6},
		{"sub", sub, []value.Value{value.Int(10), value.Int(3), value.Int(2)}, 5},
		{"negate", sub, []value.Value{value.Int(5)}, -5},
		{"mul", mul, []value.Value{value.Int(2), value.Int(3), value.Int(4)}, 24},
		{"div", div, []value.Value{value.Int(10), value.Int(2)}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn.Entrypoint(newFakeVM(tt.args...))
			if err != nil {
				t.Fatalf("%s error: %v", tt.name, err)
			}
			if got.Kind != value.KindInt || got.Int != tt.wantInt {
				t.Errorf("%s = %+v, want int %d", tt.name, got, tt.wantInt)
			}
		})
	}
}

func TestAddFloatPromotion(t *testing.T) {
	got, err := add.Entrypoint(newFakeVM(value.Int(1), value.Float(2.5)))
	if err != nil {
		t.Fatalf("add error: %v", err)
	}
	if got.Kind != value.KindFloat || got.Float != 3.5 {
		t.Errorf("1 + 2.5 = %+v, want float 3.5", got)
	}
}

func TestDivisionByZero(t *testing.T) {
	_, err := div.Entrypoint(newFakeVM(value.Int(10), value.Int(0)))
	ke, ok := err.(sporeerr.KindedError)
	if !ok || ke.ErrorKind() != sporeerr.DivisionByZero {
		t.Fatalf("expected a DivisionByZero error, got %v", err)
	}
}

func TestAddWrongTypeCapturesOffendingArgument(t *testing.T) {
	offender := newFakeVM().heap.NewString("hello")
	_, err := add.Entrypoint(newFakeVM(value.Int(1), offender))
	re, ok := err.(value.RuntimeError)
	if !ok {
		t.Fatalf("expected a value.RuntimeError, got %T: %v", err, err)
	}
	if re.Kind != sporeerr.WrongType {
		t.Errorf("Kind = %v, want WrongType", re.Kind)
	}
	if len(re.Context) != 1 || !re.Context[0].Equal(offender) {
		t.Errorf("Context = %v, want [%v]", re.Context, offender)
	}
}

func TestEqualPIsGenericAndNumEqualIsStrict(t *testing.T) {
	got, err := equalP.Entrypoint(newFakeVM(value.Bool(true), value.Bool(true)))
	if err != nil || got.Bool != true {
		t.Fatalf("equal?(true, true) = %+v, %v", got, err)
	}
	if _, err := numEqual.Entrypoint(newFakeVM(value.Bool(true), value.Int(1))); err == nil {
		t.Error("= should reject non-numeric operands")
	}
	got, err = numEqual.Entrypoint(newFakeVM(value.Int(1), value.Float(1.0)))
	if err != nil || got.Bool != true {
		t.Errorf("= should treat 1 and 1.0 as numerically equal, got %+v, %v", got, err)
	}
}

func TestListAndConsAndFirstRest(t *testing.T) {
	fv := newFakeVM(value.Int(1), value.Int(2), value.Int(3))
	lst, err := listFn.Entrypoint(fv)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	f, err := first.Entrypoint(&fakeVM{heap: fv.heap, in: fv.in, args: []value.Value{lst}, globals: fv.globals})
	if err != nil || f.Int != 1 {
		t.Errorf("first(list 1 2 3) = %+v, %v, want 1", f, err)
	}
	r, err := rest.Entrypoint(&fakeVM{heap: fv.heap, in: fv.in, args: []value.Value{lst}, globals: fv.globals})
	if err != nil {
		t.Fatalf("rest error: %v", err)
	}
	f2, err := first.Entrypoint(&fakeVM{heap: fv.heap, in: fv.in, args: []value.Value{r}, globals: fv.globals})
	if err != nil || f2.Int != 2 {
		t.Errorf("first(rest (list 1 2 3)) = %+v, %v, want 2", f2, err)
	}
}

func TestNot(t *testing.T) {
	tests := []struct {
		arg  value.Value
		want bool
	}{
		{value.Nil(), true},
		{value.Bool(false), true},
		{value.Bool(true), false},
		{value.Int(0), false},
	}
	for _, tt := range tests {
		got, err := not.Entrypoint(newFakeVM(tt.arg))
		if err != nil {
			t.Fatalf("not error: %v", err)
		}
		if got.Bool != tt.want {
			t.Errorf("not(%+v) = %v, want %v", tt.arg, got.Bool, tt.want)
		}
	}
}

func TestInternalDefineSetsGlobalAndReturnsValue(t *testing.T) {
	fv := newFakeVM()
	id := fv.in.Intern("x")
	sym := value.SymbolValue(value.Symbol{ID: id, Quoted: true})
	fv.args = []value.Value{sym, value.Int(42)}
	got, err := internalDefine.Entrypoint(fv)
	if err != nil {
		t.Fatalf("internal-define error: %v", err)
	}
	if got.Int != 42 {
		t.Errorf("internal-define returned %+v, want 42", got)
	}
	bound, ok := fv.globals[id]
	if !ok || bound.Int != 42 {
		t.Errorf("global %q = %+v, ok=%v, want 42", "x", bound, ok)
	}
}
