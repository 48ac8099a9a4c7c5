package eval

import (
	"math/bits"
	"strconv"

	"github.com/visiboole/vbcore/pkg/database"
	"github.com/visiboole/vbcore/pkg/hdl"
)

// StaticWidth computes the bit width an expression will produce without
// evaluating it, used by the binder to auto-expand a bare left-hand
// identifier into a same-width namespace. It never errors: widths it
// cannot determine default to 1, the same default a fresh scalar
// variable gets.
func StaticWidth(expr *hdl.Expression, db *database.Database) int {
	return widthEqExpr(expr.First, db)
}

func widthEqExpr(e *hdl.EqExpr, db *database.Database) int {
	if len(e.Rest) > 0 {
		return 1
	}
	return widthXorExpr(e.First, db)
}

func widthXorExpr(e *hdl.XorExpr, db *database.Database) int {
	w := widthOrExpr(e.First, db)
	for _, t := range e.Rest {
		w = combineWidth(w, widthOrExpr(t.Operand, db))
	}
	return w
}

func widthOrExpr(e *hdl.OrExpr, db *database.Database) int {
	w := widthAndExpr(e.First, db)
	for _, t := range e.Rest {
		w = combineWidth(w, widthAndExpr(t.Operand, db))
	}
	return w
}

func widthAndExpr(e *hdl.AndExpr, db *database.Database) int {
	w := widthUnary(e.First, db)
	for _, t := range e.Rest {
		w = combineWidth(w, widthUnary(t.Operand, db))
	}
	return w
}

func widthUnary(u *hdl.Unary, db *database.Database) int {
	return widthOperand(u.Operand, db)
}

func widthOperand(o *hdl.Operand, db *database.Database) int {
	switch {
	case o.Constant != nil:
		return constantWidth(*o.Constant)
	case o.Vector != nil:
		return vectorWidth(o.Vector)
	case o.Group != nil:
		return StaticWidth(o.Group, db)
	case o.Concat != nil:
		total := 0
		for _, item := range o.Concat.Items {
			total += widthUnary(item, db)
		}
		return total
	case o.Name != nil:
		if ns, ok := db.Namespaces[*o.Name]; ok {
			return len(ns.Bits)
		}
		return 1
	}
	return 1
}

// combineWidth mirrors combineBitwise's width rule: equal widths stay
// equal, a scalar paired with a vector yields a scalar (the vector side
// is OR-reduced), anything else defaults to the wider side.
func combineWidth(a, b int) int {
	switch {
	case a == b:
		return a
	case a == 1 || b == 1:
		return 1
	case a > b:
		return a
	default:
		return b
	}
}

func vectorWidth(v *hdl.VectorRef) int {
	switch {
	case v.Dots != nil:
		return spanWidth(v.Dots.Hi, v.Dots.Lo, 1)
	case v.Step != nil:
		step := v.Step.Step
		if step < 0 {
			step = -step
		}
		return spanWidth(v.Step.Hi, v.Step.Lo, step)
	}
	return 1
}

func spanWidth(hi, lo, step int) int {
	if step <= 0 {
		return 1
	}
	diff := hi - lo
	if diff < 0 {
		diff = -diff
	}
	return diff/step + 1
}

func constantWidth(lit string) int {
	if len(lit) < 3 {
		return 1
	}
	base := lit[1]
	digits := lit[2:]
	switch base {
	case 'b', 'B':
		return len(digits)
	case 'h', 'H':
		return len(digits) * 4
	case 'd', 'D':
		n, err := strconv.ParseUint(digits, 10, 64)
		if err != nil {
			return 1
		}
		w := bits.Len64(n)
		if w == 0 {
			w = 1
		}
		return w
	}
	return 1
}
