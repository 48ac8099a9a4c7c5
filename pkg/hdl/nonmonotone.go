package hdl

// ContainsNonMonotone reports whether expr contains '==', '+', or '-'
// anywhere in its tree, including inside parenthesized sub-expressions
// and concatenations. This is the solver's cycle-break trigger:
// the solver pins an expression statement using one of these operators
// once it has been re-triggered a second time within a solve cycle.
func ContainsNonMonotone(expr *Expression) bool {
	if expr == nil {
		return false
	}
	if len(expr.Rest) > 0 {
		return true
	}
	return eqExprNonMonotone(expr.First)
}

func eqExprNonMonotone(e *EqExpr) bool {
	if e == nil {
		return false
	}
	if len(e.Rest) > 0 {
		return true
	}
	return xorExprNonMonotone(e.First)
}

func xorExprNonMonotone(e *XorExpr) bool {
	if e == nil {
		return false
	}
	if orExprNonMonotone(e.First) {
		return true
	}
	for _, t := range e.Rest {
		if orExprNonMonotone(t.Operand) {
			return true
		}
	}
	return false
}

func orExprNonMonotone(e *OrExpr) bool {
	if e == nil {
		return false
	}
	if andExprNonMonotone(e.First) {
		return true
	}
	for _, t := range e.Rest {
		if andExprNonMonotone(t.Operand) {
			return true
		}
	}
	return false
}

func andExprNonMonotone(e *AndExpr) bool {
	if e == nil {
		return false
	}
	if unaryNonMonotone(e.First) {
		return true
	}
	for _, t := range e.Rest {
		if unaryNonMonotone(t.Operand) {
			return true
		}
	}
	return false
}

func unaryNonMonotone(u *Unary) bool {
	if u == nil {
		return false
	}
	return operandNonMonotone(u.Operand)
}

func operandNonMonotone(o *Operand) bool {
	if o == nil {
		return false
	}
	if o.Group != nil && ContainsNonMonotone(o.Group) {
		return true
	}
	if o.Concat != nil {
		for _, item := range o.Concat.Items {
			if unaryNonMonotone(item) {
				return true
			}
		}
	}
	return false
}
