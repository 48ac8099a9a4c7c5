package database

// Kind distinguishes a scalar variable driven only by user/clock input
// from one driven by at least one expression.
type Kind int

const (
	// Independent variables change only via ClickVariable or a clock
	// tick's register capture.
	Independent Kind = iota
	// Dependent variables are driven by an assign, clock, or
	// alternate-clock statement.
	Dependent
)

func (k Kind) String() string {
	if k == Dependent {
		return "Dependent"
	}
	return "Independent"
}

// Variable is a single named scalar signal.
type Variable struct {
	Name  string
	Value bool
	Kind  Kind
}
