// Package database implements the Visiboole core's symbol table:
// scalar variables, vector namespaces, the ordered statement list, the
// line-indexed expression map, and the
// module header. It is grounded on the pkg/bsr controller,
// which plays the same role for boundary-scan pins: a small set of
// maps keyed by name plus an ordered index used for deterministic
// iteration, built incrementally as the caller discovers new names.
package database

import (
	"sort"

	"github.com/visiboole/vbcore/pkg/errcode"
	"github.com/visiboole/vbcore/pkg/hdl"
)

// Header is the optional "Name(inputs : outputs);" first statement.
type Header struct {
	Name    string
	Inputs  []string
	Outputs []string
}

// Database is the symbol table for one Design:
// created when a design is parsed, discarded when the design closes.
type Database struct {
	Name string

	Variables  map[string]*Variable
	Namespaces map[string]*Namespace

	// Statements is the full ordered statement list as returned by the
	// parser, including comments and format specifiers.
	Statements []*hdl.Statement

	// Expressions is the ordered (by Line) list of assign/clock/
	// alt-clock statements; ExprByLine indexes the same statements for
	// direct lookup.
	Expressions []*ExpressionStatement
	ExprByLine  map[int]*ExpressionStatement

	// Formats is the ordered list of render-only format specifiers;
	// unlike Expressions these never drive a variable, so they sit
	// outside the solver's commit/restart cycle.
	Formats []*FormatSpecifier

	Header *Header
}

// New returns an empty Database ready for the Parser/binder to
// populate.
func New(name string) *Database {
	return &Database{
		Name:       name,
		Variables:  make(map[string]*Variable),
		Namespaces: make(map[string]*Namespace),
		ExprByLine: make(map[int]*ExpressionStatement),
	}
}

// DeclareVariable registers name if it is not already known, with the
// given initial value, and returns its Variable. An existing variable
// is returned unmodified; declaring a variable twice is not an error.
func (db *Database) DeclareVariable(name string, initial bool) *Variable {
	if v, ok := db.Variables[name]; ok {
		return v
	}
	v := &Variable{Name: name, Value: initial, Kind: Independent}
	db.Variables[name] = v
	return v
}

// DeclareNamespaceBit registers one bit of a vector, growing the
// namespace's Hi/Lo bounds and back-filling any newly exposed
// intermediate bits as Independent variables defaulting to 0, so the
// namespace invariant (contiguous descending range) always holds.
func (db *Database) DeclareNamespaceBit(name string, index int, pos errcode.Position) (*Namespace, error) {
	if index < 0 {
		return nil, &errcode.ExpandError{Pos: pos, Reason: "negative vector index"}
	}

	ns, ok := db.Namespaces[name]
	if !ok {
		ns = &Namespace{Name: name, Hi: index, Lo: index}
		db.Namespaces[name] = ns
		db.DeclareVariable(BitName(name, index), false)
		ns.rebuild()
		return ns, nil
	}

	switch {
	case index > ns.Hi:
		for i := ns.Hi + 1; i <= index; i++ {
			db.DeclareVariable(BitName(name, i), false)
		}
		ns.Hi = index
	case index < ns.Lo:
		for i := index; i < ns.Lo; i++ {
			db.DeclareVariable(BitName(name, i), false)
		}
		ns.Lo = index
	}
	ns.rebuild()
	return ns, nil
}

// DeclareVector registers every bit of a [hi..lo] (or stepped) vector
// reference in one call, returning the resulting scalar bit names in
// the same MSB-first order the caller supplied.
func (db *Database) DeclareVector(bitNames []string, name string, indices []int, pos errcode.Position) ([]string, error) {
	for _, idx := range indices {
		if _, err := db.DeclareNamespaceBit(name, idx, pos); err != nil {
			return nil, err
		}
	}
	return bitNames, nil
}

// PromoteDependent marks name as Dependent, creating it first if
// necessary. Declarations never demote a Dependent variable back to
// Independent within a single parse.
func (db *Database) PromoteDependent(name string) *Variable {
	v, ok := db.Variables[name]
	if !ok {
		v = &Variable{Name: name, Kind: Dependent}
		db.Variables[name] = v
		return v
	}
	v.Kind = Dependent
	return v
}

// GetValue returns the current value of a scalar variable.
func (db *Database) GetValue(name string, pos errcode.Position) (bool, error) {
	v, ok := db.Variables[name]
	if !ok {
		return false, &errcode.NameError{Pos: pos, Name: name, Reason: "undeclared identifier"}
	}
	return v.Value, nil
}

// SetValue assigns a scalar variable's value directly, the path used
// by ClickVariable and by commit steps in the solver/clock engine.
func (db *Database) SetValue(name string, value bool) {
	v, ok := db.Variables[name]
	if !ok {
		v = &Variable{Name: name, Kind: Independent}
		db.Variables[name] = v
	}
	v.Value = value
}

// VectorValue reads the current values of a namespace's bits, MSB
// first.
func (db *Database) VectorValue(name string, pos errcode.Position) (Value, error) {
	ns, ok := db.Namespaces[name]
	if !ok {
		return nil, &errcode.NameError{Pos: pos, Name: name, Reason: "undeclared namespace"}
	}
	out := make(Value, len(ns.Bits))
	for i, bit := range ns.Bits {
		v, err := db.GetValue(bit, pos)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// SetVectorValue writes a value across a namespace's bits, MSB first.
// If value is narrower than the namespace, it is zero-extended on the
// left (MSB side); if wider, it is truncated from the left.
func (db *Database) SetVectorValue(name string, value Value) error {
	ns, ok := db.Namespaces[name]
	if !ok {
		return &errcode.NameError{Name: name, Reason: "undeclared namespace"}
	}
	width := len(ns.Bits)
	padded := make(Value, width)
	offset := width - len(value)
	for i := 0; i < width; i++ {
		srcIdx := i - offset
		if srcIdx >= 0 && srcIdx < len(value) {
			padded[i] = value[srcIdx]
		}
	}
	for i, bit := range ns.Bits {
		db.SetValue(bit, padded[i])
	}
	return nil
}

// NamesValue reads the current values of an arbitrary, already-flattened
// bit name list (MSB first), the same shape hdl.SettableNames produces
// for a concatenation click.
func (db *Database) NamesValue(names []string, pos errcode.Position) (Value, error) {
	out := make(Value, len(names))
	for i, n := range names {
		v, err := db.GetValue(n, pos)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// SetNamesValue writes a value across an arbitrary, already-flattened
// bit name list (MSB first), padding/truncating the same way
// SetVectorValue does for a single namespace.
func (db *Database) SetNamesValue(names []string, value Value) {
	width := len(names)
	padded := make(Value, width)
	offset := width - len(value)
	for i := 0; i < width; i++ {
		srcIdx := i - offset
		if srcIdx >= 0 && srcIdx < len(value) {
			padded[i] = value[srcIdx]
		}
	}
	for i, n := range names {
		db.SetValue(n, padded[i])
	}
}

// AppendExpression adds a newly parsed assign/clock/alt-clock statement
// to the ordered Expressions list and the line index.
func (db *Database) AppendExpression(es *ExpressionStatement) {
	db.Expressions = append(db.Expressions, es)
	db.ExprByLine[es.Line] = es
	sort.SliceStable(db.Expressions, func(i, j int) bool {
		return db.Expressions[i].Line < db.Expressions[j].Line
	})
}

// AppendStatement appends to the full ordered statement list, including
// non-expression statements (comments, format specifiers, declarations,
// instantiations).
func (db *Database) AppendStatement(stmt *hdl.Statement) {
	db.Statements = append(db.Statements, stmt)
}

// Kind returns the kind of a known variable, or Independent with ok
// false if name is undeclared.
func (db *Database) Kind(name string) (Kind, bool) {
	v, ok := db.Variables[name]
	if !ok {
		return Independent, false
	}
	return v.Kind, true
}
