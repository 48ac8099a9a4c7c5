package solver

import (
	"testing"

	"github.com/visiboole/vbcore/pkg/database"
	"github.com/visiboole/vbcore/pkg/errcode"
	"github.com/visiboole/vbcore/pkg/hdl"
)

func assignExpr(t *testing.T, parser *hdl.Parser, src string) *hdl.Expression {
	t.Helper()
	stmt, err := parser.ParseStatement("y = "+src+";", 1, 1, false)
	if err != nil {
		t.Fatalf("ParseStatement(%q): %v", src, err)
	}
	return stmt.Assign.Expr
}

func TestSolveBasicAssign(t *testing.T) {
	parser, err := hdl.NewParser()
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	db := database.New("t")
	db.DeclareVariable("a", false)
	db.PromoteDependent("a")
	db.DeclareVariable("b", true)

	db.AppendExpression(&database.ExpressionStatement{
		Line: 1,
		Kind: database.KindAssign,
		LHS:  []string{"a"},
		Expr: assignExpr(t, parser, "b"),
	})

	if err := Solve(db); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	got, _ := db.GetValue("a", errcode.Position{})
	if !got {
		t.Errorf("a = false, want true after solve tracking b")
	}
}

func TestSolveIdempotent(t *testing.T) {
	parser, err := hdl.NewParser()
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	db := database.New("t")
	db.DeclareVariable("a", true)
	db.DeclareVariable("b", true)
	db.DeclareVariable("e", false)
	db.PromoteDependent("e")

	db.AppendExpression(&database.ExpressionStatement{
		Line: 1, Kind: database.KindAssign, LHS: []string{"e"},
		Expr: assignExpr(t, parser, "a & b"),
	})

	if err := Solve(db); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	firstLast := db.Expressions[0].Last.Clone()
	if err := Solve(db); err != nil {
		t.Fatalf("second Solve: %v", err)
	}
	if !db.Expressions[0].Last.Equal(firstLast) {
		t.Errorf("second solve changed committed value: %v vs %v", db.Expressions[0].Last, firstLast)
	}
}

func TestSolveAndTruthTable(t *testing.T) {
	parser, err := hdl.NewParser()
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	db := database.New("t")
	for _, name := range []string{"a", "b", "c"} {
		db.DeclareVariable(name, true)
	}
	for _, name := range []string{"e", "f", "g", "h"} {
		db.DeclareVariable(name, false)
		db.PromoteDependent(name)
	}
	exprs := map[string]string{"e": "a & b", "f": "a & c", "g": "b & c", "h": "a & b & c"}
	line := 1
	for _, lhs := range []string{"e", "f", "g", "h"} {
		db.AppendExpression(&database.ExpressionStatement{
			Line: line, Kind: database.KindAssign, LHS: []string{lhs},
			Expr: assignExpr(t, parser, exprs[lhs]),
		})
		line++
	}
	if err := Solve(db); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	for _, name := range []string{"e", "f", "g", "h"} {
		v, _ := db.GetValue(name, errcode.Position{})
		if !v {
			t.Errorf("%s = false, want true with a=b=c=1", name)
		}
	}

	db.SetValue("a", false)
	if err := Solve(db); err != nil {
		t.Fatalf("second Solve: %v", err)
	}
	want := map[string]bool{"e": false, "f": false, "g": true, "h": false}
	for name, w := range want {
		got, _ := db.GetValue(name, errcode.Position{})
		if got != w {
			t.Errorf("%s = %v, want %v", name, got, w)
		}
	}
}

func TestClockTick(t *testing.T) {
	parser, err := hdl.NewParser()
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	db := database.New("t")
	db.DeclareVariable("d", true)
	db.DeclareVariable("q", false)
	db.PromoteDependent("q")

	db.AppendExpression(&database.ExpressionStatement{
		Line: 1, Kind: database.KindClock, LHS: []string{"q"},
		Expr: assignExpr(t, parser, "d"),
	})

	if err := Solve(db); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	q, _ := db.GetValue("q", errcode.Position{})
	if q {
		t.Fatalf("q changed before tick")
	}

	ce := NewClockEngine()
	if err := ce.CaptureEdges(db); err != nil {
		t.Fatalf("CaptureEdges: %v", err)
	}
	if err := Solve(db); err != nil {
		t.Fatalf("Solve after tick: %v", err)
	}
	q, _ = db.GetValue("q", errcode.Position{})
	if !q {
		t.Errorf("q = false after tick, want true")
	}

	db.SetValue("d", false)
	if err := Solve(db); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if err := ce.CaptureEdges(db); err != nil {
		t.Fatalf("CaptureEdges: %v", err)
	}
	if err := Solve(db); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	q, _ = db.GetValue("q", errcode.Position{})
	if q {
		t.Errorf("q = true after second tick, want false")
	}
}
