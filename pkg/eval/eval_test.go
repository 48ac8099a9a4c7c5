package eval

import (
	"testing"

	"github.com/visiboole/vbcore/pkg/database"
	"github.com/visiboole/vbcore/pkg/errcode"
	"github.com/visiboole/vbcore/pkg/hdl"
)

func parseExpr(t *testing.T, src string) *hdl.Expression {
	t.Helper()
	p, err := hdl.NewParser()
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	stmt, err := p.ParseStatement("y = "+src+";", 1, 1, false)
	if err != nil {
		t.Fatalf("ParseStatement: %v", err)
	}
	return stmt.Assign.Expr
}

func TestEvaluateAnd(t *testing.T) {
	db := database.New("t")
	db.DeclareVariable("a", true)
	db.DeclareVariable("b", true)
	v, err := Evaluate(parseExpr(t, "a & b"), db, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.Equal(database.Value{true}) {
		t.Errorf("got %v, want [true]", v)
	}
}

func TestEvaluateAdjacencyAnd(t *testing.T) {
	db := database.New("t")
	db.DeclareVariable("a", true)
	db.DeclareVariable("b", false)
	v, err := Evaluate(parseExpr(t, "a b"), db, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.Equal(database.Value{false}) {
		t.Errorf("got %v, want [false]", v)
	}
}

func TestEvaluateNot(t *testing.T) {
	db := database.New("t")
	db.DeclareVariable("a", true)
	v, err := Evaluate(parseExpr(t, "~a"), db, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.Equal(database.Value{false}) {
		t.Errorf("got %v, want [false]", v)
	}
}

func TestEvaluateEqualsVectors(t *testing.T) {
	db := database.New("t")
	db.DeclareNamespaceBit("x", 1, errcode.Position{})
	db.DeclareNamespaceBit("x", 0, errcode.Position{})
	db.DeclareNamespaceBit("y", 1, errcode.Position{})
	db.DeclareNamespaceBit("y", 0, errcode.Position{})
	db.SetVectorValue("x", database.Value{true, false})
	db.SetVectorValue("y", database.Value{true, false})
	v, err := Evaluate(parseExpr(t, "x[1..0] == y[1..0]"), db, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.Equal(database.Value{true}) {
		t.Errorf("got %v, want [true]", v)
	}
}

func TestEvaluateAddWidthMismatch(t *testing.T) {
	db := database.New("t")
	db.DeclareNamespaceBit("x", 1, errcode.Position{})
	db.DeclareNamespaceBit("x", 0, errcode.Position{})
	db.DeclareVariable("y", false)
	if _, err := Evaluate(parseExpr(t, "x[1..0] + y"), db, 1); err == nil {
		t.Fatal("expected width mismatch error")
	}
}

func TestEvaluateConstantBinary(t *testing.T) {
	db := database.New("t")
	v, err := Evaluate(parseExpr(t, "'b101"), db, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Width() != 3 || v.Uint() != 5 {
		t.Errorf("got width=%d uint=%d, want width=3 uint=5", v.Width(), v.Uint())
	}
}

func TestEvaluateConcatenation(t *testing.T) {
	db := database.New("t")
	db.DeclareVariable("a", true)
	db.DeclareVariable("b", false)
	v, err := Evaluate(parseExpr(t, "{a b}"), db, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.Equal(database.Value{true, false}) {
		t.Errorf("got %v, want [true false]", v)
	}
}

func TestEvaluateUndeclaredIdentifier(t *testing.T) {
	db := database.New("t")
	if _, err := Evaluate(parseExpr(t, "nope"), db, 1); err == nil {
		t.Fatal("expected error for undeclared identifier")
	}
}
