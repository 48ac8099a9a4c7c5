package hdl

import (
	"fmt"

	"github.com/visiboole/vbcore/pkg/errcode"
)

// ExpandVectorRef turns a VectorRef into its ordered, MSB-first list of
// scalar bit names.
func ExpandVectorRef(v *VectorRef, pos errcode.Position) ([]string, error) {
	indices, err := VectorIndices(v, pos)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(indices))
	for i, idx := range indices {
		names[i] = fmt.Sprintf("%s%d", v.Name, idx)
	}
	return names, nil
}

// VectorIndices returns the ordered bit indices a vector reference
// spans, in the same order ExpandVectorRef returns names. Both the
// "hi..lo" and "hi.step.lo" forms are supported; the indices always run
// from Hi down to Lo (descending), and a range with Hi < Lo, a negative
// index, or a non-positive step is rejected (see rangeIndices).
func VectorIndices(v *VectorRef, pos errcode.Position) ([]int, error) {
	switch {
	case v.Dots != nil:
		return rangeIndices(v.Name, v.Dots.Hi, 1, v.Dots.Lo, pos)
	case v.Step != nil:
		return rangeIndices(v.Name, v.Step.Hi, v.Step.Step, v.Step.Lo, pos)
	}
	return nil, &errcode.ExpandError{Pos: pos, Reason: fmt.Sprintf("vector %q has no range", v.Name)}
}

// rangeIndices implements "name[hi.step.lo]" (step defaults to 1 for
// the plain "hi..lo" form): indices descending from hi to lo inclusive
// in increments of step. Per spec.md §4.2, hi < lo, a negative index,
// or a non-positive step are all ExpandErrors — vectors are always
// declared MSB-first, so the source must name the high bound first.
func rangeIndices(name string, hi, step, lo int, pos errcode.Position) ([]int, error) {
	if lo < 0 || hi < 0 {
		return nil, &errcode.ExpandError{Pos: pos, Reason: fmt.Sprintf("vector %q has a negative index", name)}
	}
	if hi < lo {
		return nil, &errcode.ExpandError{Pos: pos, Reason: fmt.Sprintf("vector %q range %d..%d has hi < lo", name, hi, lo)}
	}
	if step <= 0 {
		return nil, &errcode.ExpandError{Pos: pos, Reason: fmt.Sprintf("vector %q has a non-positive step %d", name, step)}
	}

	var indices []int
	for i := hi; i >= lo; i -= step {
		indices = append(indices, i)
	}
	if indices[len(indices)-1] != lo {
		return nil, &errcode.ExpandError{Pos: pos, Reason: fmt.Sprintf("vector %q range %d..%d is not evenly divided by step %d", name, hi, lo, step)}
	}
	return indices, nil
}

// ExpandList flattens a mixed list of plain identifiers and vector
// references into one MSB-first ordered list of scalar names, the
// namespace-building step used for header port lists, declarations and
// instantiation argument lists.
func ExpandList(items []*IdentOrVector, pos errcode.Position) ([]string, error) {
	var out []string
	for _, item := range items {
		switch {
		case item.Vector != nil:
			names, err := ExpandVectorRef(item.Vector, pos)
			if err != nil {
				return nil, err
			}
			out = append(out, names...)
		case item.Name != nil:
			out = append(out, *item.Name)
		}
	}
	return out, nil
}

// ExpandLHS flattens an LHSList the same way ExpandList does, for
// assign and clock statement targets.
func ExpandLHS(lhs *LHSList, pos errcode.Position) ([]string, error) {
	if lhs == nil {
		return nil, nil
	}
	return ExpandList(lhs.Items, pos)
}

// SettableNames flattens a concatenation operand list (a ConcatExpr's or
// FormatStmt's Items) into its MSB-first scalar bit names, the same
// order EvaluateItems concatenates their values in. It only succeeds
// when every item is a bare identifier or vector reference with no
// negation, constant, group or nested concatenation — the set of items
// a click can cycle by writing straight back through SetValue, as
// opposed to a display-only expression with no settable variable
// behind it.
func SettableNames(items []*Unary, pos errcode.Position) ([]string, error) {
	var out []string
	for _, u := range items {
		if u.Negate {
			return nil, &errcode.ExpandError{Pos: pos, Reason: "cannot click a negated format field"}
		}
		o := u.Operand
		switch {
		case o.Name != nil:
			out = append(out, *o.Name)
		case o.Vector != nil:
			names, err := ExpandVectorRef(o.Vector, pos)
			if err != nil {
				return nil, err
			}
			out = append(out, names...)
		default:
			return nil, &errcode.ExpandError{Pos: pos, Reason: "cannot click a format field that is not a plain identifier or vector"}
		}
	}
	return out, nil
}
