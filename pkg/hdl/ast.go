package hdl

// This file defines the design-file grammar as participle/v2 struct
// tags, the same approach pkg/bsdl/ast.go uses for its
// VHDL-flavored BSDL grammar: precedence is expressed as nested structs
// (Expression -> EqExpr -> XorExpr -> OrExpr -> AndExpr -> Unary ->
// Operand), each level matching a first operand and zero or more
// (operator, operand) pairs, exactly the shape bsdl.Expression/
// bsdl.ExpressionTerm use for concatenation chains.

// VectorRef is a vector reference such as X[3..0] or X[3.1.0].
type VectorRef struct {
	Name string     `@Ident LBracket`
	Dots *DotsRange `( @@`
	Step *StepRange `| @@ ) RBracket`
}

// DotsRange is the "hi..lo" vector form.
type DotsRange struct {
	Hi int `@Integer Range`
	Lo int `@Integer`
}

// StepRange is the "hi.step.lo" vector form.
type StepRange struct {
	Hi   int `@Integer Dot`
	Step int `@Integer Dot`
	Lo   int `@Integer`
}

// IdentOrVector is one element of a whitespace-separated identifier
// list (header ports, declarations, instantiation argument lists).
type IdentOrVector struct {
	Vector *VectorRef `  @@`
	Name   *string    `| @Ident`
}

// ConcatExpr is a brace-concatenation {a b c}, flattened left-to-right,
// MSB-first. Items are Unary, not Expression: adjacency between items
// means concatenation here, whereas adjacency inside an AndExpr means
// AND, and the grammar can only tell the two apart by not letting a
// concatenation item itself absorb its neighbor via the AndExpr
// adjacency rule. A sub-expression combining operators belongs in one
// item via parentheses, e.g. "{(a&b) c}".
type ConcatExpr struct {
	Items []*Unary `LBrace @@+ RBrace`
}

// Operand is a primary expression term: a constant, a vector reference,
// a parenthesized sub-expression, a concatenation, or a bare identifier.
type Operand struct {
	Constant *string     `  @Constant`
	Vector   *VectorRef  `| @@`
	Group    *Expression `| LParen @@ RParen`
	Concat   *ConcatExpr `| @@`
	Name     *string     `| @Ident`
}

// Unary applies optional bitwise NOT, the highest-precedence operator.
type Unary struct {
	Negate  bool     `@Tilde?`
	Operand *Operand `@@`
}

// AndExpr handles the AND-precedence level: explicit '&', explicit
// '*', or bare adjacency (no operator token at all) between operands.
type AndExpr struct {
	First *Unary     `@@`
	Rest  []*AndTerm `@@*`
}

// AndTerm is one adjacency/explicit-AND operand; Op is empty for
// adjacency AND.
type AndTerm struct {
	Op      string `( @Amp | @Star )?`
	Operand *Unary `@@`
}

// OrExpr handles the OR-precedence level.
type OrExpr struct {
	First *AndExpr  `@@`
	Rest  []*OrTerm `@@*`
}

type OrTerm struct {
	Op      string   `@Pipe`
	Operand *AndExpr `@@`
}

// XorExpr handles the XOR-precedence level.
type XorExpr struct {
	First *OrExpr    `@@`
	Rest  []*XorTerm `@@*`
}

type XorTerm struct {
	Op      string  `@Caret`
	Operand *OrExpr `@@`
}

// EqExpr handles the equality-precedence level.
type EqExpr struct {
	First *XorExpr  `@@`
	Rest  []*EqTerm `@@*`
}

type EqTerm struct {
	Op      string   `@Eq`
	Operand *XorExpr `@@`
}

// Expression is the lowest-precedence level: addition and subtraction.
type Expression struct {
	First *EqExpr    `@@`
	Rest  []*AddTerm `@@*`
}

type AddTerm struct {
	Op      string  `( @Plus | @Minus )`
	Operand *EqExpr `@@`
}

// LHSList is the left-hand variable list of an assign/clock statement:
// one or more identifiers or vector references.
type LHSList struct {
	Items []*IdentOrVector `@@+`
}

// HeaderStmt is the design's optional first statement declaring its
// name and input/output interface.
type HeaderStmt struct {
	Name    string           `@Ident LParen`
	Inputs  []*IdentOrVector `@@*`
	Outputs []*IdentOrVector `Colon @@* RParen Semicolon`
}

// DeclItem is one declared identifier, optionally starred for an
// initial value of 1.
type DeclItem struct {
	Star   bool       `@Star?`
	Vector *VectorRef `( @@`
	Name   *string    `| @Ident )`
}

// DeclStmt declares one or more variables with default value 0 (or 1
// if starred).
type DeclStmt struct {
	Items []*DeclItem `@@+ Semicolon`
}

// AssignStmt is a combinational assignment ("y = expr;").
type AssignStmt struct {
	LHS  *LHSList    `@@ Assign`
	Expr *Expression `@@ Semicolon`
}

// ClockStmt is an edge-triggered next-state assignment ("y <= expr;").
type ClockStmt struct {
	LHS  *LHSList    `@@ Arrow`
	Expr *Expression `@@ Semicolon`
}

// AltClockStmt is a gated clock statement ("clk : y <= expr;").
type AltClockStmt struct {
	Clock string      `@Ident Colon`
	LHS   *LHSList    `@@ Arrow`
	Expr  *Expression `@@ Semicolon`
}

// InstStmt is a sub-module instantiation
// ("Inst = Module(in1 in2 : out1 out2);").
type InstStmt struct {
	Instance string           `@Ident Assign`
	Module   string           `@Ident LParen`
	Inputs   []*IdentOrVector `@@*`
	Outputs  []*IdentOrVector `Colon @@* RParen Semicolon`
}

// FormatStmt is a display-only render directive ("%b{a b[3..0]};").
// Letter is validated (one of b/d/h/u) by the binder, not the grammar,
// since the lexer has no single-character token distinct from Ident.
// Items is a concatenation list, the same Unary-level grammar
// ConcatExpr uses: "%h{a b[3..0]};" renders the 5-bit concatenation of
// a and b[3..0], not "a AND b[3..0]" (adjacency between Items means
// concatenation, matching the brace-concatenation operator's own rule,
// not the AndExpr adjacency rule a bare Expression would apply).
type FormatStmt struct {
	Letter string   `Percent @Ident LBrace`
	Items  []*Unary `@@+ RBrace Semicolon`
}
