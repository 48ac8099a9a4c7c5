package database

import (
	"testing"

	"github.com/visiboole/vbcore/pkg/errcode"
)

func TestDeclareVariableIdempotent(t *testing.T) {
	db := New("t")
	v1 := db.DeclareVariable("a", true)
	v2 := db.DeclareVariable("a", false)
	if v1 != v2 {
		t.Fatal("expected same *Variable on redeclaration")
	}
	if !v1.Value {
		t.Errorf("expected initial value preserved as true, got false")
	}
}

func TestDeclareNamespaceBitContiguity(t *testing.T) {
	db := New("t")
	if _, err := db.DeclareNamespaceBit("x", 3, errcode.Position{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := db.DeclareNamespaceBit("x", 0, errcode.Position{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ns := db.Namespaces["x"]
	want := []string{"x3", "x2", "x1", "x0"}
	if len(ns.Bits) != len(want) {
		t.Fatalf("Bits = %v, want %v", ns.Bits, want)
	}
	for i := range want {
		if ns.Bits[i] != want[i] {
			t.Errorf("Bits[%d] = %q, want %q", i, ns.Bits[i], want[i])
		}
	}
	for _, name := range want {
		if _, ok := db.Variables[name]; !ok {
			t.Errorf("expected variable %q to exist", name)
		}
	}
}

func TestDeclareNamespaceBitExpandsUpward(t *testing.T) {
	db := New("t")
	db.DeclareNamespaceBit("x", 1, errcode.Position{})
	db.DeclareNamespaceBit("x", 0, errcode.Position{})
	// Referencing a higher bit later must backfill any gap and extend Hi.
	db.DeclareNamespaceBit("x", 4, errcode.Position{})
	ns := db.Namespaces["x"]
	if ns.Hi != 4 || ns.Lo != 0 {
		t.Fatalf("Hi=%d Lo=%d, want Hi=4 Lo=0", ns.Hi, ns.Lo)
	}
	want := []string{"x4", "x3", "x2", "x1", "x0"}
	for i := range want {
		if ns.Bits[i] != want[i] {
			t.Errorf("Bits[%d] = %q, want %q", i, ns.Bits[i], want[i])
		}
	}
}

func TestDeclareNamespaceBitNegativeIndex(t *testing.T) {
	db := New("t")
	if _, err := db.DeclareNamespaceBit("x", -1, errcode.Position{}); err == nil {
		t.Fatal("expected error for negative index")
	}
}

func TestPromoteDependent(t *testing.T) {
	db := New("t")
	db.DeclareVariable("a", false)
	v := db.PromoteDependent("a")
	if v.Kind != Dependent {
		t.Errorf("Kind = %v, want Dependent", v.Kind)
	}
}

func TestSetGetValue(t *testing.T) {
	db := New("t")
	db.DeclareVariable("a", false)
	db.SetValue("a", true)
	got, err := db.GetValue("a", errcode.Position{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got {
		t.Errorf("GetValue = false, want true")
	}
}

func TestGetValueUndeclared(t *testing.T) {
	db := New("t")
	if _, err := db.GetValue("nope", errcode.Position{}); err == nil {
		t.Fatal("expected error for undeclared variable")
	}
}

func TestVectorValueRoundTrip(t *testing.T) {
	db := New("t")
	db.DeclareNamespaceBit("x", 3, errcode.Position{})
	db.DeclareNamespaceBit("x", 0, errcode.Position{})
	if err := db.SetVectorValue("x", Value{true, false, true, false}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := db.VectorValue("x", errcode.Position{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(Value{true, false, true, false}) {
		t.Errorf("VectorValue = %v, want 1010", got)
	}
}

func TestAppendExpressionOrdersByLine(t *testing.T) {
	db := New("t")
	db.AppendExpression(&ExpressionStatement{Line: 5})
	db.AppendExpression(&ExpressionStatement{Line: 2})
	db.AppendExpression(&ExpressionStatement{Line: 3})
	if len(db.Expressions) != 3 {
		t.Fatalf("expected 3 expressions, got %d", len(db.Expressions))
	}
	for i, want := range []int{2, 3, 5} {
		if db.Expressions[i].Line != want {
			t.Errorf("Expressions[%d].Line = %d, want %d", i, db.Expressions[i].Line, want)
		}
	}
}
