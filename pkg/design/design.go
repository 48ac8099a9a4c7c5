// Package design is the top-level orchestrator that ties the
// Visiboole core's leaf packages together into a single `Design`: it
// drives pkg/lexer and pkg/hdl to turn source text into a bound
// database.Database, then exposes Solve/Tick/ClickVariable/FormatValues as a
// single cohesive API, the same composition-root role
// chain.NewController(adapter, repo) plays for wiring a transport to a
// device repository.
package design

import (
	"fmt"
	"os"
	"sync"

	"github.com/visiboole/vbcore/pkg/database"
	"github.com/visiboole/vbcore/pkg/errcode"
	"github.com/visiboole/vbcore/pkg/eval"
	"github.com/visiboole/vbcore/pkg/format"
	"github.com/visiboole/vbcore/pkg/hdl"
	"github.com/visiboole/vbcore/pkg/instantiate"
	"github.com/visiboole/vbcore/pkg/lexer"
	"github.com/visiboole/vbcore/pkg/solver"
)

// maxRounds bounds the outer solver/instantiation alternation a single
// Solve or Tick call may perform before giving up.
const maxRounds = 64

var (
	sharedParser     *hdl.Parser
	sharedParserErr  error
	sharedParserOnce sync.Once
)

func getParser() (*hdl.Parser, error) {
	sharedParserOnce.Do(func() {
		sharedParser, sharedParserErr = hdl.NewParser()
	})
	return sharedParser, sharedParserErr
}

// Design is a fully parsed, bound design file: its symbol table, its
// instantiation engine, its clock engine, and (for non-root designs)
// the resolver used to load further children.
type Design struct {
	File       string
	DB         *database.Database
	Directives []string

	clock     *solver.ClockEngine
	instances *instantiate.Engine
	resolver  *FileResolver
	nav       *Navigator
}

// ParseString parses and binds src as a design named file, using
// resolver to load any sub-module it instantiates. Pass nil for a
// design with no instantiations (or one whose instantiations must
// never actually be resolved).
func ParseString(file, src string, resolver *FileResolver) (*Design, error) {
	stmts, directives, err := parseStatements(file, src)
	if err != nil {
		return nil, err
	}
	if resolver == nil {
		resolver = NewFileResolver(func(module string) (string, error) {
			return "", fmt.Errorf("no module resolver configured (tried to load %q)", module)
		})
	}
	d := &Design{
		File:       file,
		DB:         database.New(file),
		Directives: directives,
		clock:      solver.NewClockEngine(),
		resolver:   resolver,
		nav:        NewNavigator(),
	}
	d.instances = instantiate.NewEngine(resolver)
	if err := d.bind(stmts); err != nil {
		return nil, err
	}
	return d, nil
}

// ParseFile reads path and parses it as ParseString does.
func ParseFile(path string, resolver *FileResolver) (*Design, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &errcode.IoError{Path: path, Cause: err}
	}
	return ParseString(path, string(src), resolver)
}

// parseStatements runs the Lexer & Preprocessor (pkg/lexer) followed by
// the Parser (pkg/hdl) over every logical statement it finds, applying
// the header-placement rule: a header is only legal while
// every statement seen so far has been a comment.
func parseStatements(file, src string) ([]*hdl.Statement, []string, error) {
	pre := &lexer.Preprocessor{File: file}
	logical, directives, err := pre.Split(src)
	if err != nil {
		return nil, nil, err
	}
	p, err := getParser()
	if err != nil {
		return nil, nil, fmt.Errorf("design: %w", err)
	}
	p.File = file

	stmts := make([]*hdl.Statement, 0, len(logical))
	allowHeader := true
	for _, ls := range logical {
		stmt, err := p.ParseStatement(ls.Text, ls.Line, ls.Col, allowHeader)
		if err != nil {
			return nil, nil, err
		}
		if stmt.Kind != hdl.KindComment {
			allowHeader = false
		}
		stmts = append(stmts, stmt)
	}
	return stmts, directives, nil
}

// bind walks the parsed statement list once, populating d.DB in source order.
func (d *Design) bind(stmts []*hdl.Statement) error {
	headerSeen := false
	for _, stmt := range stmts {
		d.DB.AppendStatement(stmt)

		switch stmt.Kind {
		case hdl.KindComment:
			// Display-only; no Database side effect.

		case hdl.KindHeader:
			if headerSeen {
				return &errcode.ParseError{Pos: pos(d.File, stmt), Reason: "duplicate header statement"}
			}
			if err := d.bindHeader(stmt); err != nil {
				return err
			}
			headerSeen = true

		case hdl.KindDeclaration:
			if err := d.bindDecl(stmt); err != nil {
				return err
			}

		case hdl.KindAssign:
			if err := d.bindExpr(stmt.Line, database.KindAssign, stmt.Assign.LHS, stmt.Assign.Expr, ""); err != nil {
				return err
			}

		case hdl.KindClock:
			if err := d.bindExpr(stmt.Line, database.KindClock, stmt.Clock.LHS, stmt.Clock.Expr, ""); err != nil {
				return err
			}

		case hdl.KindAltClock:
			d.DB.DeclareVariable(stmt.AltClock.Clock, false)
			if err := d.bindExpr(stmt.Line, database.KindAltClock, stmt.AltClock.LHS, stmt.AltClock.Expr, stmt.AltClock.Clock); err != nil {
				return err
			}

		case hdl.KindInstantiation:
			if err := d.bindInstantiation(stmt); err != nil {
				return err
			}

		case hdl.KindFormat:
			if err := d.bindFormat(stmt); err != nil {
				return err
			}
		}
	}

	if headerSeen {
		if err := d.validateHeader(); err != nil {
			return err
		}
	}
	return nil
}

func pos(file string, stmt *hdl.Statement) errcode.Position {
	return errcode.Position{File: file, Line: stmt.Line, Column: stmt.Col}
}

func (d *Design) bindHeader(stmt *hdl.Statement) error {
	h := stmt.Header
	p := pos(d.File, stmt)

	inputs, err := hdl.ExpandList(h.Inputs, p)
	if err != nil {
		return err
	}
	outputs, err := hdl.ExpandList(h.Outputs, p)
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(outputs))
	for _, name := range outputs {
		if seen[name] {
			return &errcode.NameError{Pos: p, Name: name, Reason: "duplicate header output"}
		}
		seen[name] = true
	}

	d.DB.Header = &database.Header{Name: h.Name, Inputs: inputs, Outputs: outputs}
	return nil
}

// validateHeader enforces the Header invariant: every declared
// input must be Independent, every declared output Dependent (our
// binder always promotes assign/clock/alt-clock LHS to Dependent, so
// the ".d shadow" exception never needs to trigger here,
// but bindExpr's promotion is what makes that true). It runs once the
// whole statement list has been bound, so an input named only in the
// header (never by a separate declaration) is auto-declared here rather
// than in bindHeader itself — declaring it eagerly at header-parse time
// would let a later "*name;" declaration's initial-value star get
// silently ignored as a no-op re-declaration.
func (d *Design) validateHeader() error {
	h := d.DB.Header
	for _, name := range h.Inputs {
		kind, ok := d.DB.Kind(name)
		if !ok {
			d.DB.DeclareVariable(name, false)
			continue
		}
		if kind != database.Independent {
			return &errcode.NameError{Name: name, Reason: "header input is not an independent variable"}
		}
	}
	for _, name := range h.Outputs {
		kind, ok := d.DB.Kind(name)
		if ok && kind == database.Dependent {
			continue
		}
		return &errcode.NameError{Name: name, Reason: "header output is not a dependent variable"}
	}
	return nil
}

func (d *Design) bindDecl(stmt *hdl.Statement) error {
	p := pos(d.File, stmt)
	for _, item := range stmt.Decl.Items {
		switch {
		case item.Vector != nil:
			indices, err := hdl.VectorIndices(item.Vector, p)
			if err != nil {
				return err
			}
			for _, idx := range indices {
				if _, err := d.DB.DeclareNamespaceBit(item.Vector.Name, idx, p); err != nil {
					return err
				}
				if item.Star {
					d.DB.SetValue(database.BitName(item.Vector.Name, idx), true)
				}
			}
		case item.Name != nil:
			d.DB.DeclareVariable(*item.Name, item.Star)
		}
	}
	return nil
}

// bindExpr registers an assign/clock/alt-clock statement. Every kind
// promotes its LHS to Dependent: a Dependent variable is one "driven
// by at least one expression *or next-state assignment*", so a clocked
// register is Dependent even though its value only changes on Tick.
func (d *Design) bindExpr(line int, kind database.StatementKind, lhsList *hdl.LHSList, expr *hdl.Expression, clockName string) error {
	p := errcode.Position{File: d.File, Line: line}

	lhs, err := d.autoVectorLHS(lhsList, expr, p)
	if err != nil {
		return err
	}
	if lhs == nil {
		lhs, err = hdl.ExpandLHS(lhsList, p)
		if err != nil {
			return err
		}
	}
	for _, name := range lhs {
		d.DB.PromoteDependent(name)
	}
	es := &database.ExpressionStatement{
		Line:           line,
		Kind:           kind,
		LHS:            lhs,
		Expr:           expr,
		ClockName:      clockName,
		HasNonMonotone: hdl.ContainsNonMonotone(expr),
	}
	d.DB.AppendExpression(es)
	return nil
}

// autoVectorLHS handles a bare identifier LHS that isn't already a
// declared scalar or namespace: it auto-expands into a namespace the
// same width as its RHS's statically known width, e.g. "y = x[3..0];"
// creates y3 y2 y1 y0. Returns nil, nil when the LHS isn't a single
// bare identifier eligible for this treatment, so the caller falls
// back to ordinary ExpandLHS.
func (d *Design) autoVectorLHS(lhsList *hdl.LHSList, expr *hdl.Expression, p errcode.Position) ([]string, error) {
	if lhsList == nil || len(lhsList.Items) != 1 || lhsList.Items[0].Name == nil {
		return nil, nil
	}
	name := *lhsList.Items[0].Name
	if _, ok := d.DB.Namespaces[name]; ok {
		return nil, nil
	}
	if _, ok := d.DB.Variables[name]; ok {
		return nil, nil
	}
	width := eval.StaticWidth(expr, d.DB)
	if width <= 1 {
		return nil, nil
	}
	for i := width - 1; i >= 0; i-- {
		if _, err := d.DB.DeclareNamespaceBit(name, i, p); err != nil {
			return nil, err
		}
	}
	return append([]string(nil), d.DB.Namespaces[name].Bits...), nil
}

func (d *Design) bindInstantiation(stmt *hdl.Statement) error {
	p := pos(d.File, stmt)
	inst := stmt.Inst
	callerIn, err := hdl.ExpandList(inst.Inputs, p)
	if err != nil {
		return err
	}
	callerOut, err := hdl.ExpandList(inst.Outputs, p)
	if err != nil {
		return err
	}
	for _, name := range callerIn {
		d.DB.DeclareVariable(name, false)
	}
	for _, name := range callerOut {
		d.DB.PromoteDependent(name)
	}
	d.instances.Add(&instantiate.Instance{
		Name:          inst.Instance,
		ModulePath:    inst.Module,
		CallerInputs:  callerIn,
		CallerOutputs: callerOut,
	})
	return nil
}

func (d *Design) bindFormat(stmt *hdl.Statement) error {
	f := stmt.Format
	base, ok := format.ParseBase(f.Letter)
	if !ok {
		return &errcode.ParseError{Pos: pos(d.File, stmt), Reason: fmt.Sprintf("unrecognized format letter %q", f.Letter)}
	}
	d.DB.AppendFormat(&database.FormatSpecifier{Line: stmt.Line, Base: byte(base), Items: f.Items})
	return nil
}

// Solve runs the fixed-point combinational solver and, if this design
// has any instantiations, alternates it with the instantiation engine
// until a full round changes nothing.
func (d *Design) Solve() error {
	for round := 0; round < maxRounds; round++ {
		if err := solver.Solve(d.DB); err != nil {
			return err
		}
		if len(d.instances.Instances) == 0 {
			return nil
		}
		before := d.snapshot()
		if err := d.instances.Run(d, false); err != nil {
			return err
		}
		if sameSnapshot(before, d.snapshot()) {
			return nil
		}
	}
	return &errcode.InstantiationError{Path: d.File, Reason: "design did not converge"}
}

// Tick performs the clock-tick sequence: refresh the Next
// buffers via one more combinational solve, capture clock/alt-clock
// edges, run any instantiations in ticking mode, then re-solve to
// propagate the new register outputs (which also refreshes Next for
// the following tick).
func (d *Design) Tick() error {
	if err := solver.Solve(d.DB); err != nil {
		return err
	}
	if err := d.clock.CaptureEdges(d.DB); err != nil {
		return err
	}
	if len(d.instances.Instances) > 0 {
		if err := d.instances.Run(d, true); err != nil {
			return err
		}
	}
	return d.Solve()
}

// HeaderInputs and HeaderOutputs implement instantiate.Solvable.
func (d *Design) HeaderInputs() []string {
	if d.DB.Header == nil {
		return nil
	}
	return d.DB.Header.Inputs
}

func (d *Design) HeaderOutputs() []string {
	if d.DB.Header == nil {
		return nil
	}
	return d.DB.Header.Outputs
}

// GetValue and SetValue implement instantiate.Solvable and back
// ClickVariable/the instantiation bind-down/bind-up steps.
func (d *Design) GetValue(name string) (bool, error) {
	return d.DB.GetValue(name, errcode.Position{File: d.File})
}

func (d *Design) SetValue(name string, value bool) {
	d.DB.SetValue(name, value)
}

// ClickVariable toggles a scalar Independent variable. Clicking a Dependent variable is rejected: its
// value is derived, not user-settable.
func (d *Design) ClickVariable(name string) error {
	kind, ok := d.DB.Kind(name)
	if !ok {
		return &errcode.NameError{Name: name, Reason: "undeclared identifier"}
	}
	if kind != database.Independent {
		return &errcode.NameError{Name: name, Reason: "cannot click a dependent variable"}
	}
	v, err := d.DB.GetValue(name, errcode.Position{File: d.File})
	if err != nil {
		return err
	}
	d.DB.SetValue(name, !v)
	return nil
}

// ClickVector cycles every bit of a namespace through its next value,
// wrapping modulo 2^width.
func (d *Design) ClickVector(name string) error {
	v, err := d.DB.VectorValue(name, errcode.Position{File: d.File})
	if err != nil {
		return err
	}
	return d.DB.SetVectorValue(name, format.NextValue(v))
}

// ClickFormat cycles a format specifier's concatenated fields through
// their next value, wrapping modulo 2^width, independent of the
// specifier's declared Base — Base only governs how NextValue's result
// is rendered (format.Format), not the increment itself. line identifies
// the specifier the same way FormatSpecifier.Line does. Clicking a
// specifier whose content isn't a plain identifier/vector concatenation
// (a constant, a negation, a sub-expression) is rejected: there is no
// variable behind it to write back to.
func (d *Design) ClickFormat(line int) error {
	fs, ok := d.DB.FormatAt(line)
	if !ok {
		return &errcode.NameError{Name: "format", Reason: "no format specifier at this line"}
	}
	pos := errcode.Position{File: d.File, Line: line}
	names, err := hdl.SettableNames(fs.Items, pos)
	if err != nil {
		return err
	}
	v, err := d.DB.NamesValue(names, pos)
	if err != nil {
		return err
	}
	d.DB.SetNamesValue(names, format.NextValue(v))
	return nil
}

// RenderedOutput is one evaluated %b/%d/%h/%u format specifier, ready
// for display.
type RenderedOutput struct {
	Line int
	Text string
}

// FormatValues evaluates every format specifier in source order,
// concatenating each one's Items left-to-right, MSB-first, before
// rendering in its declared base.
func (d *Design) FormatValues() ([]RenderedOutput, error) {
	out := make([]RenderedOutput, 0, len(d.DB.Formats))
	for _, fs := range d.DB.Formats {
		v, err := eval.EvaluateItems(fs.Items, d.DB, fs.Line)
		if err != nil {
			return nil, err
		}
		out = append(out, RenderedOutput{Line: fs.Line, Text: format.Format(v, format.Base(fs.Base))})
	}
	return out, nil
}

// Tokenize renders the whole statement list into the annotated token
// stream the excluded GUI editor would recolor and redraw: every name
// carries its live value and Independent/Dependent tag, and every
// grouping pair carries a back-link letting the renderer draw a
// negation overbar across the sub-expression it encloses.
func (d *Design) Tokenize() []format.Token {
	return format.Tokenize(d.DB.Statements, d.DB)
}

// Navigator returns this design's instance-navigation stack.
func (d *Design) Navigator() *Navigator { return d.nav }

func (d *Design) snapshot() map[string]bool {
	out := make(map[string]bool, len(d.DB.Variables))
	for name, v := range d.DB.Variables {
		out[name] = v.Value
	}
	return out
}

func sameSnapshot(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
