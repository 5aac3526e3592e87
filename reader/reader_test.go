package reader

import (
	"testing"

	"github.com/wmedrano/spore/heap"
	"github.com/wmedrano/spore/intern"
	"github.com/wmedrano/spore/value"
)

func readAll(t *testing.T, source string) ([]value.Value, *heap.Heap, *intern.Interner) {
	t.Helper()
	h := heap.New()
	in := intern.New()
	values, err := ReadSource(source, h, in)
	if err != nil {
		t.Fatalf("ReadSource(%q) raised an error: %v", source, err)
	}
	return values, h, in
}

func TestReadAtoms(t *testing.T) {
	values, _, _ := readAll(t, "nil true false 42 -3 2.5")
	want := []value.Kind{value.KindNil, value.KindBool, value.KindBool, value.KindInt, value.KindInt, value.KindFloat}
	if len(values) != len(want) {
		t.Fatalf("got %d values, want %d: %v", len(values), len(want), values)
	}
	for i, k := range want {
		if values[i].Kind != k {
			t.Errorf("value[%d].Kind = %v, want %v", i, values[i].Kind, k)
		}
	}
	if values[3].Int != 42 {
		t.Errorf("values[3].Int = %d, want 42", values[3].Int)
	}
	if values[4].Int != -3 {
		t.Errorf("values[4].Int = %d, want -3", values[4].Int)
	}
	if values[5].Float != 2.5 {
		t.Errorf("values[5].Float = %v, want 2.5", values[5].Float)
	}
}

func TestReadSymbolQuoting(t *testing.T) {
	values, _, in := readAll(t, "foo 'foo")
	if values[0].Kind != value.KindSymbol || values[0].Sym.Quoted {
		t.Fatalf("foo should read as an unquoted symbol, got %+v", values[0])
	}
	if values[1].Kind != value.KindSymbol || !values[1].Sym.Quoted {
		t.Fatalf("'foo should read as a quoted symbol, got %+v", values[1])
	}
	if values[0].Sym.ID != values[1].Sym.ID {
		t.Error("foo and 'foo should intern to the same ID, differing only in Quoted")
	}
	if name, ok := in.Lookup(values[0].Sym.ID); !ok || name != "foo" {
		t.Errorf("Lookup(ID) = %q, %v, want \"foo\", true", name, ok)
	}
}

func TestReadListBuildsPairChain(t *testing.T) {
	values, h, _ := readAll(t, "(1 2 3)")
	if len(values) != 1 {
		t.Fatalf("got %d top-level values, want 1", len(values))
	}
	list := values[0]
	for i, want := range []int64{1, 2, 3} {
		if list.Kind != value.KindPair {
			t.Fatalf("element %d: expected a pair, got %v", i, list.Kind)
		}
		pair, err := h.Pair(list)
		if err != nil {
			t.Fatalf("Pair() error: %v", err)
		}
		if pair.First.Kind != value.KindInt || pair.First.Int != want {
			t.Errorf("element %d = %+v, want int %d", i, pair.First, want)
		}
		list = pair.Second
	}
	if list.Kind != value.KindNil {
		t.Errorf("list should be nil-terminated, got %v", list.Kind)
	}
}

func TestReadNestedList(t *testing.T) {
	values, h, _ := readAll(t, "(+ 1 (* 2 3))")
	pair, err := h.Pair(values[0])
	if err != nil {
		t.Fatal(err)
	}
	if pair.First.Kind != value.KindSymbol {
		t.Fatalf("first element should be a symbol, got %v", pair.First.Kind)
	}
}

func TestReadStringUnescapes(t *testing.T) {
	values, h, _ := readAll(t, `"hello \"world\""`)
	str, err := h.String(values[0])
	if err != nil {
		t.Fatal(err)
	}
	if string(str.Bytes) != `hello "world"` {
		t.Errorf("Bytes = %q, want %q", str.Bytes, `hello "world"`)
	}
}

func TestReadUnbalancedParensIsOneError(t *testing.T) {
	h := heap.New()
	in := intern.New()
	if _, err := ReadSource("(foo (bar)", h, in); err == nil {
		t.Fatal("expected a ParseError for an unbalanced '('")
	}
	if _, err := ReadSource("foo)", h, in); err == nil {
		t.Fatal("expected a ParseError for a stray ')'")
	}
}
