// Package solver implements the Visiboole core's fixed-point
// combinational solver and clock-edge capture. It
// is grounded on the boundary-scan capture/update loop
// (pkg/jtag/chain_simulator.go's shift-then-settle cycle), rebuilt here
// as a commit-and-restart sweep over expression statements instead of
// a fixed shift register.
package solver

import (
	"github.com/visiboole/vbcore/pkg/database"
	"github.com/visiboole/vbcore/pkg/errcode"
	"github.com/visiboole/vbcore/pkg/eval"
)

// Solve repeatedly re-evaluates db's expression statements until a full
// sweep commits nothing. Assign statements write
// their result to their LHS scalars and may trigger a restart from the
// beginning of the sweep; clock and alternate-clock statements only
// refresh their Next capture buffer, since §4.6 requires that buffer
// to track the combinational phase continuously without itself being
// part of the commit/restart cycle.
func Solve(db *database.Database) error {
	for _, es := range db.Expressions {
		es.ResetCycle()
	}

	maxIterations := (len(db.Expressions)+1)*(len(db.Variables)+1)*4 + 64
	iterations := 0

	for {
		restarted := false
		for _, es := range db.Expressions {
			iterations++
			if iterations > maxIterations {
				return &errcode.SolverDivergence{Iterations: iterations}
			}
			if es.Pinned {
				continue
			}

			fresh, err := eval.Evaluate(es.Expr, db, es.Line)
			if err != nil {
				// A run-time evaluation error pins the offending
				// expression as undefined for this cycle and lets the
				// rest of the solve continue.
				es.Pinned = true
				continue
			}

			if es.Kind != database.KindAssign {
				es.Next = fresh
				continue
			}

			if es.Last != nil && es.Last.Equal(fresh) {
				continue
			}

			if err := writeLHS(db, es.LHS, fresh); err != nil {
				return err
			}
			es.Last = fresh.Clone()

			if es.HasNonMonotone {
				if es.Retriggered() {
					es.Pinned = true
				} else {
					es.MarkRetriggered()
				}
			}

			restarted = true
			break
		}
		if !restarted {
			return nil
		}
	}
}

func writeLHS(db *database.Database, lhs []string, value database.Value) error {
	if len(lhs) != value.Width() {
		return &errcode.EvalError{Reason: "left-hand side width does not match expression width"}
	}
	for i, name := range lhs {
		db.SetValue(name, value[i])
	}
	return nil
}
