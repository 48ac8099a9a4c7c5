package database

import "github.com/visiboole/vbcore/pkg/hdl"

// StatementKind distinguishes the three expression-driven statement
// variants the solver and clock engine both operate on.
type StatementKind int

const (
	// KindAssign is combinational: "y = expr;".
	KindAssign StatementKind = iota
	// KindClock is edge-triggered: "y <= expr;".
	KindClock
	// KindAltClock is gated edge-triggered: "clk : y <= expr;".
	KindAltClock
)

// ExpressionStatement is a registered assign/clock/alt-clock statement:
// the left-hand scalar list, its parsed expression tree, and the
// solver/clock-engine bookkeeping state it carries.
type ExpressionStatement struct {
	Line int
	Kind StatementKind
	LHS  []string
	Expr *hdl.Expression

	// ClockName gates capture for KindAltClock; empty otherwise.
	ClockName string

	// HasNonMonotone is true when the expression tree contains '==',
	// '+', or '-' anywhere, the solver's cycle-break trigger.
	HasNonMonotone bool

	// Last is the most recently committed value, used by the solver to
	// detect whether a fresh evaluation changed anything.
	Last Value

	// Next is the clock engine's pending capture buffer for
	// KindClock/KindAltClock statements, refreshed every solve pass.
	Next Value

	// Pinned and retriggered are solver-cycle-scoped bookkeeping,
	// reset at the start of every Solve call.
	Pinned      bool
	retriggered bool
}

// ResetCycle clears the per-cycle solver bookkeeping, called once at
// the start of every fixed-point solve.
func (es *ExpressionStatement) ResetCycle() {
	es.Pinned = false
	es.retriggered = false
}

// Retriggered reports whether this statement has already committed once
// during the current solve cycle.
func (es *ExpressionStatement) Retriggered() bool { return es.retriggered }

// MarkRetriggered records a first commit during the current solve
// cycle, so a second commit of a non-monotone expression gets pinned.
func (es *ExpressionStatement) MarkRetriggered() { es.retriggered = true }
