package eval

import (
	"testing"

	"github.com/visiboole/vbcore/pkg/database"
)

func TestStaticWidthVectorRange(t *testing.T) {
	db := database.New("t")
	w := StaticWidth(parseExpr(t, "x[3..0]"), db)
	if w != 4 {
		t.Errorf("width = %d, want 4", w)
	}
}

func TestStaticWidthScalarName(t *testing.T) {
	db := database.New("t")
	w := StaticWidth(parseExpr(t, "a"), db)
	if w != 1 {
		t.Errorf("width = %d, want 1", w)
	}
}

func TestStaticWidthConcatenation(t *testing.T) {
	db := database.New("t")
	w := StaticWidth(parseExpr(t, "{a x[3..0] b}"), db)
	if w != 6 {
		t.Errorf("width = %d, want 6", w)
	}
}

func TestStaticWidthEquality(t *testing.T) {
	db := database.New("t")
	w := StaticWidth(parseExpr(t, "x[3..0] == y[3..0]"), db)
	if w != 1 {
		t.Errorf("width = %d, want 1 (equality is always scalar)", w)
	}
}

func TestStaticWidthConstantHex(t *testing.T) {
	db := database.New("t")
	w := StaticWidth(parseExpr(t, "'hFF"), db)
	if w != 8 {
		t.Errorf("width = %d, want 8", w)
	}
}
