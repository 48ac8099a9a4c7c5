package solver

import (
	"github.com/visiboole/vbcore/pkg/database"
	"github.com/visiboole/vbcore/pkg/errcode"
)

// ClockEngine applies the register-capture half of a tick: it copies each clock statement's Next buffer into
// its driven scalars, gating alternate-clock statements on a rising
// edge of their clock variable relative to the previous tick's sample.
type ClockEngine struct {
	prevClock map[string]bool
}

// NewClockEngine returns a ClockEngine with no prior clock samples; a
// gating variable that has not yet been sampled counts as 0, so the
// first tick fires an alternate-clock whose clock already reads 1.
func NewClockEngine() *ClockEngine {
	return &ClockEngine{prevClock: make(map[string]bool)}
}

// CaptureEdges copies every clock statement's Next buffer into its
// LHS scalars. Unconditioned clock statements always fire; alternate-
// clock statements fire only when their gating variable has risen from
// 0 to 1 since the last call.
func (ce *ClockEngine) CaptureEdges(db *database.Database) error {
	// Sample every gating clock variable before any register writes so
	// a clock itself driven by a clock statement earlier in line order
	// cannot influence another alternate-clock's edge decision within
	// the same tick.
	samples := make(map[string]bool)
	for _, es := range db.Expressions {
		if es.Kind != database.KindAltClock {
			continue
		}
		if _, ok := samples[es.ClockName]; ok {
			continue
		}
		cur, err := db.GetValue(es.ClockName, errcode.Position{Line: es.Line})
		if err != nil {
			return err
		}
		samples[es.ClockName] = cur
	}

	for _, es := range db.Expressions {
		switch es.Kind {
		case database.KindClock:
			if err := writeLHS(db, es.LHS, es.Next); err != nil {
				return err
			}
		case database.KindAltClock:
			cur := samples[es.ClockName]
			if !ce.prevClock[es.ClockName] && cur {
				if err := writeLHS(db, es.LHS, es.Next); err != nil {
					return err
				}
			}
		}
	}
	for name, cur := range samples {
		ce.prevClock[name] = cur
	}
	return nil
}
