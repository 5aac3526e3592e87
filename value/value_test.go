package value

import (
	"testing"

	"github.com/wmedrano/spore/intern"
)

func TestTruthy(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want bool
	}{
		{"nil", Nil(), false},
		{"false", Bool(false), false},
		{"true", Bool(true), true},
		{"zero int", Int(0), true},
		{"zero float", Float(0), true},
		{"empty string handle", StringValue(NewHandle[StringObj](0)), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.v.Truthy(); got != c.want {
				t.Errorf("Truthy() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestEqualImmediates(t *testing.T) {
	if !Int(42).Equal(Int(42)) {
		t.Error("Int(42) should equal Int(42)")
	}
	if Int(42).Equal(Int(43)) {
		t.Error("Int(42) should not equal Int(43)")
	}
	if Int(1).Equal(Float(1)) {
		t.Error("Int and Float of the same magnitude should not be Equal (different Kind)")
	}

	in := intern.New()
	sym := Symbol{ID: in.Intern("foo")}
	if !SymbolValue(sym).Equal(SymbolValue(sym)) {
		t.Error("identical symbols should be equal")
	}
}

func TestEqualHeapValuesByHandle(t *testing.T) {
	a := PairValue(NewHandle[Pair](0))
	b := PairValue(NewHandle[Pair](0))
	c := PairValue(NewHandle[Pair](1))
	if !a.Equal(b) {
		t.Error("pairs with the same handle should be equal")
	}
	if a.Equal(c) {
		t.Error("pairs with different handles should not be equal, even if structurally alike")
	}
}

func TestKindString(t *testing.T) {
	if Nil().Kind.String() != "nil" {
		t.Errorf("Kind.String() = %q, want %q", Nil().Kind.String(), "nil")
	}
}
