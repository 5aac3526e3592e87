package vm

import (
	"testing"

	"github.com/wmedrano/spore/sporeerr"
)

func TestEvalStringArithmetic(t *testing.T) {
	tests := []struct {
		source  string
		wantInt int64
	}{
		{"(+ 1 2 3)", 6},
		{"(def x 12) (+ x x)", 24},
		{"((function (a b) (+ a b)) 1 2)", 3},
		{"(* 2 3 4)", 24},
		{"(- 10 3 2)", 5},
		{"(/ 10 2)", 5},
	}
	for _, tt := range tests {
		v := New()
		got, err := v.EvalString(tt.source)
		if err != nil {
			t.Fatalf("EvalString(%q) error: %v", tt.source, err)
		}
		if got.Int != tt.wantInt {
			t.Errorf("EvalString(%q) = %d, want %d", tt.source, got.Int, tt.wantInt)
		}
	}
}

func TestEvalStringIf(t *testing.T) {
	v := New()
	got, err := v.EvalString(`(if (= 1 1) "yes" "no")`)
	if err != nil {
		t.Fatalf("EvalString error: %v", err)
	}
	str, err := v.Heap.String(got)
	if err != nil {
		t.Fatalf("String() error: %v", err)
	}
	if string(str.Bytes) != "yes" {
		t.Errorf("result = %q, want %q", str.Bytes, "yes")
	}
}

func TestEvalStringForLetSquaredSum(t *testing.T) {
	v := New()
	source := `
(def total 0)
(def squared-sum
  (function (n)
    (for (i n)
      (let ((sq (* i i)))
        (def total (+ total sq))))
    total))
(squared-sum 5)
`
	got, err := v.EvalString(source)
	if err != nil {
		t.Fatalf("EvalString error: %v", err)
	}
	if got.Int != 30 {
		t.Errorf("squared-sum(5) = %d, want 30", got.Int)
	}
}

func TestEvalStringDivisionByZero(t *testing.T) {
	v := New()
	_, err := v.EvalString("(/ 10 0)")
	if err == nil {
		t.Fatal("expected a DivisionByZero error")
	}
	ke, ok := err.(sporeerr.KindedError)
	if !ok {
		t.Fatalf("error %v does not implement KindedError", err)
	}
	if ke.ErrorKind() != sporeerr.DivisionByZero {
		t.Errorf("ErrorKind() = %v, want DivisionByZero", ke.ErrorKind())
	}
}

func TestEvalStringWrongType(t *testing.T) {
	v := New()
	_, err := v.EvalString(`(+ 1 "hello")`)
	if err == nil {
		t.Fatal("expected a WrongType error")
	}
	ke, ok := err.(sporeerr.KindedError)
	if !ok || ke.ErrorKind() != sporeerr.WrongType {
		t.Errorf("error = %v, want a WrongType KindedError", err)
	}
}

func TestEvalStringParseErrorRunsNothing(t *testing.T) {
	v := New()
	_, err := v.EvalString("))")
	if err == nil {
		t.Fatal("expected a ParseError")
	}
	if len(v.ctx.Frames) != 0 {
		t.Errorf("frames = %d, want 0: a parse error must execute no instructions", len(v.ctx.Frames))
	}
}

func TestResetCallsClearsStackAfterError(t *testing.T) {
	v := New()
	if _, err := v.EvalString("(/ 10 0)"); err == nil {
		t.Fatal("expected an error")
	}
	v.ResetCalls()
	got, err := v.EvalString("(+ 1 1)")
	if err != nil {
		t.Fatalf("EvalString after ResetCalls error: %v", err)
	}
	if got.Int != 2 {
		t.Errorf("result = %d, want 2", got.Int)
	}
}

func TestGarbageCollectKeepsLiveGlobal(t *testing.T) {
	v := New()
	if _, err := v.EvalString(`(def greeting "hello")`); err != nil {
		t.Fatalf("EvalString error: %v", err)
	}
	v.GarbageCollect()
	got, err := v.EvalString("greeting")
	if err != nil {
		t.Fatalf("EvalString error: %v", err)
	}
	str, err := v.Heap.String(got)
	if err != nil {
		t.Fatalf("global string was collected though still reachable: %v", err)
	}
	if string(str.Bytes) != "hello" {
		t.Errorf("greeting = %q, want %q", str.Bytes, "hello")
	}
}
