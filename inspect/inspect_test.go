package inspect

import (
	"testing"

	"github.com/wmedrano/spore/heap"
	"github.com/wmedrano/spore/intern"
	"github.com/wmedrano/spore/sporeerr"
	"github.com/wmedrano/spore/value"
)

func TestBuilderListRoundTripsThroughInspectorPretty(t *testing.T) {
	h := heap.New()
	in := intern.New()
	b := NewBuilder(h, in)
	ins := NewInspector(h, in)

	lst := b.List(b.Int(1), b.Int(2), b.Int(3))
	got := ins.Pretty(lst)
	want := "(1 2 3)"
	if got != want {
		t.Errorf("Pretty(list 1 2 3) = %q, want %q", got, want)
	}
}

func TestBuilderStringRoundTrips(t *testing.T) {
	h := heap.New()
	in := intern.New()
	b := NewBuilder(h, in)
	ins := NewInspector(h, in)

	s := b.String("hello")
	got, err := ins.ToString(s)
	if err != nil {
		t.Fatalf("ToString error: %v", err)
	}
	if got != "hello" {
		t.Errorf("ToString() = %q, want %q", got, "hello")
	}
}

func TestToInt64WrongType(t *testing.T) {
	h := heap.New()
	in := intern.New()
	ins := NewInspector(h, in)

	if _, err := ins.ToInt64(value.Bool(true)); err == nil {
		t.Fatal("expected a WrongType error")
	} else if ke, ok := err.(sporeerr.KindedError); !ok || ke.ErrorKind() != sporeerr.WrongType {
		t.Errorf("error = %v, want WrongType", err)
	}
}

func TestPrettyQuotedSymbol(t *testing.T) {
	h := heap.New()
	in := intern.New()
	b := NewBuilder(h, in)
	ins := NewInspector(h, in)

	got := ins.Pretty(b.QuotedSymbol("foo"))
	if got != "'foo" {
		t.Errorf("Pretty(quoted foo) = %q, want %q", got, "'foo")
	}
}

func TestErrorReportIncludesContext(t *testing.T) {
	h := heap.New()
	in := intern.New()
	b := NewBuilder(h, in)
	ins := NewInspector(h, in)

	errVal := b.DetailedError(sporeerr.WrongType, "bad operand", b.Int(5))
	got := ins.ErrorReport(errVal)
	want := "WrongType: bad operand (5)"
	if got != want {
		t.Errorf("ErrorReport() = %q, want %q", got, want)
	}
}

func TestPrettyDottedPair(t *testing.T) {
	h := heap.New()
	in := intern.New()
	b := NewBuilder(h, in)
	ins := NewInspector(h, in)

	got := ins.Pretty(b.Pair(b.Int(1), b.Int(2)))
	want := "(1 . 2)"
	if got != want {
		t.Errorf("Pretty(cons 1 2) = %q, want %q", got, want)
	}
}
