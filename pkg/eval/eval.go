// Package eval implements the Visiboole core's expression evaluator: a
// recursive walk over the hdl package's precedence-chained AST,
// resolving identifiers and vectors against a
// database.Database and applying bitwise, equality and arithmetic
// operators. It is grounded on the same recursive-descent shape the
// participle grammar itself encodes (nested First/Rest
// structs), simply interpreted instead of re-parsed.
package eval

import (
	"math/bits"
	"strconv"

	"github.com/visiboole/vbcore/pkg/database"
	"github.com/visiboole/vbcore/pkg/errcode"
	"github.com/visiboole/vbcore/pkg/hdl"
)

// Evaluate computes the value of expr against db. line is used only to
// annotate any EvalError raised.
func Evaluate(expr *hdl.Expression, db *database.Database, line int) (database.Value, error) {
	e := &evaluator{db: db, pos: errcode.Position{File: db.Name, Line: line}}
	return e.expression(expr)
}

// EvaluateItems evaluates a concatenation-style operand list — the same
// shape a ConcatExpr's Items holds — and returns their bits
// concatenated left-to-right, MSB-first. This is the evaluation path
// for a FormatStmt's display content, so "%h{a b[3..0]};" renders the
// concatenation of a and b[3..0] rather than their bitwise AND.
func EvaluateItems(items []*hdl.Unary, db *database.Database, line int) (database.Value, error) {
	e := &evaluator{db: db, pos: errcode.Position{File: db.Name, Line: line}}
	return e.items(items)
}

type evaluator struct {
	db  *database.Database
	pos errcode.Position
}

func (e *evaluator) errf(reason string) error {
	return &errcode.EvalError{Pos: e.pos, Reason: reason}
}

func (e *evaluator) expression(expr *hdl.Expression) (database.Value, error) {
	result, err := e.eqExpr(expr.First)
	if err != nil {
		return nil, err
	}
	for _, term := range expr.Rest {
		rhs, err := e.eqExpr(term.Operand)
		if err != nil {
			return nil, err
		}
		result, err = e.addSub(result, rhs, term.Op)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (e *evaluator) addSub(lhs, rhs database.Value, op string) (database.Value, error) {
	if lhs.Width() != rhs.Width() {
		return nil, e.errf("width mismatch in '" + op + "' operand")
	}
	width := lhs.Width()
	l, r := lhs.Uint(), rhs.Uint()
	var sum uint64
	if op == "+" {
		sum = l + r
	} else {
		sum = l - r
	}
	mask := uint64(1)<<uint(width) - 1
	return database.UintValue(sum&mask, width), nil
}

func (e *evaluator) eqExpr(expr *hdl.EqExpr) (database.Value, error) {
	result, err := e.xorExpr(expr.First)
	if err != nil {
		return nil, err
	}
	for _, term := range expr.Rest {
		rhs, err := e.xorExpr(term.Operand)
		if err != nil {
			return nil, err
		}
		if result.Width() != rhs.Width() {
			return nil, e.errf("width mismatch in '==' operand")
		}
		result = database.Value{result.Equal(rhs)}
	}
	return result, nil
}

func (e *evaluator) xorExpr(expr *hdl.XorExpr) (database.Value, error) {
	result, err := e.orExpr(expr.First)
	if err != nil {
		return nil, err
	}
	for _, term := range expr.Rest {
		rhs, err := e.orExpr(term.Operand)
		if err != nil {
			return nil, err
		}
		result, err = combineBitwise(result, rhs, func(a, b bool) bool { return a != b })
		if err != nil {
			return nil, e.wrap(err)
		}
	}
	return result, nil
}

func (e *evaluator) orExpr(expr *hdl.OrExpr) (database.Value, error) {
	result, err := e.andExpr(expr.First)
	if err != nil {
		return nil, err
	}
	for _, term := range expr.Rest {
		rhs, err := e.andExpr(term.Operand)
		if err != nil {
			return nil, err
		}
		result, err = combineBitwise(result, rhs, func(a, b bool) bool { return a || b })
		if err != nil {
			return nil, e.wrap(err)
		}
	}
	return result, nil
}

func (e *evaluator) andExpr(expr *hdl.AndExpr) (database.Value, error) {
	result, err := e.unary(expr.First)
	if err != nil {
		return nil, err
	}
	for _, term := range expr.Rest {
		rhs, err := e.unary(term.Operand)
		if err != nil {
			return nil, err
		}
		result, err = combineBitwise(result, rhs, func(a, b bool) bool { return a && b })
		if err != nil {
			return nil, e.wrap(err)
		}
	}
	return result, nil
}

func (e *evaluator) unary(u *hdl.Unary) (database.Value, error) {
	val, err := e.operand(u.Operand)
	if err != nil {
		return nil, err
	}
	if u.Negate {
		out := make(database.Value, len(val))
		for i, b := range val {
			out[i] = !b
		}
		return out, nil
	}
	return val, nil
}

func (e *evaluator) operand(o *hdl.Operand) (database.Value, error) {
	switch {
	case o.Constant != nil:
		return parseConstant(*o.Constant, e.pos)
	case o.Vector != nil:
		return e.vector(o.Vector)
	case o.Group != nil:
		return e.expression(o.Group)
	case o.Concat != nil:
		return e.concat(o.Concat)
	case o.Name != nil:
		return e.name(*o.Name)
	}
	return nil, e.errf("empty operand")
}

func (e *evaluator) vector(v *hdl.VectorRef) (database.Value, error) {
	names, err := hdl.ExpandVectorRef(v, e.pos)
	if err != nil {
		return nil, err
	}
	out := make(database.Value, len(names))
	for i, n := range names {
		bit, err := e.db.GetValue(n, e.pos)
		if err != nil {
			return nil, e.errf("undeclared identifier " + n)
		}
		out[i] = bit
	}
	return out, nil
}

func (e *evaluator) concat(c *hdl.ConcatExpr) (database.Value, error) {
	return e.items(c.Items)
}

// items evaluates a concatenation operand list, appending each item's
// bits in order. Each item is a Unary (constant, vector, identifier,
// parenthesized sub-expression, or nested concatenation) rather than a
// full Expression, so adjacency between items never gets absorbed as
// an implicit AND the way it would inside an AndExpr.
func (e *evaluator) items(items []*hdl.Unary) (database.Value, error) {
	if len(items) == 0 {
		return nil, e.errf("empty concatenation")
	}
	var out database.Value
	for _, item := range items {
		v, err := e.unary(item)
		if err != nil {
			return nil, err
		}
		out = append(out, v...)
	}
	return out, nil
}

func (e *evaluator) name(name string) (database.Value, error) {
	if ns, ok := e.db.Namespaces[name]; ok {
		v, err := e.db.VectorValue(ns.Name, e.pos)
		if err != nil {
			return nil, e.errf("undeclared identifier " + name)
		}
		return v, nil
	}
	bit, err := e.db.GetValue(name, e.pos)
	if err != nil {
		return nil, e.errf("undeclared identifier " + name)
	}
	return database.Value{bit}, nil
}

func (e *evaluator) wrap(err error) error {
	if ee, ok := err.(*errcode.EvalError); ok {
		ee.Pos = e.pos
		return ee
	}
	return e.errf(err.Error())
}

// combineBitwise applies op elementwise between lhs and rhs. Equal
// widths combine directly; a scalar operand paired with a wider vector
// first OR-reduces the vector to a scalar, the "multi-bit operand in a
// scalar context" rule.
func combineBitwise(lhs, rhs database.Value, op func(a, b bool) bool) (database.Value, error) {
	switch {
	case lhs.Width() == rhs.Width():
		out := make(database.Value, lhs.Width())
		for i := range lhs {
			out[i] = op(lhs[i], rhs[i])
		}
		return out, nil
	case lhs.Width() == 1:
		return database.Value{op(lhs[0], rhs.Scalar())}, nil
	case rhs.Width() == 1:
		return database.Value{op(lhs.Scalar(), rhs[0])}, nil
	}
	return nil, &errcode.EvalError{Reason: "width mismatch in bitwise operand"}
}

// parseConstant parses a 'b/'d/'h literal into a Value whose width is
// the number of binary digits required to represent it:
// the literal digit count for binary and hex (4 bits per hex digit),
// or the minimal bit count for decimal.
func parseConstant(lit string, pos errcode.Position) (database.Value, error) {
	if len(lit) < 3 || lit[0] != '\'' {
		return nil, &errcode.EvalError{Pos: pos, Reason: "malformed constant " + lit}
	}
	base := lit[1]
	digits := lit[2:]

	var value uint64
	var width int
	var err error

	switch base {
	case 'b', 'B':
		value, err = strconv.ParseUint(digits, 2, 64)
		width = len(digits)
	case 'h', 'H':
		value, err = strconv.ParseUint(digits, 16, 64)
		width = len(digits) * 4
	case 'd', 'D':
		value, err = strconv.ParseUint(digits, 10, 64)
		width = bits.Len64(value)
		if width == 0 {
			width = 1
		}
	default:
		return nil, &errcode.EvalError{Pos: pos, Reason: "unrecognized constant base in " + lit}
	}
	if err != nil {
		return nil, &errcode.EvalError{Pos: pos, Reason: "malformed constant " + lit}
	}
	return database.UintValue(value, width), nil
}
