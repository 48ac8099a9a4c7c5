package format

import (
	"strconv"

	"github.com/visiboole/vbcore/pkg/database"
	"github.com/visiboole/vbcore/pkg/errcode"
	"github.com/visiboole/vbcore/pkg/hdl"
)

// errPos is a zero Position: Tokenize never surfaces the lookup errors
// GetValue can return, since an unresolved name just degrades to a
// colorless constant token instead of aborting the whole render.
var errPos = errcode.Position{}

// TokenKind classifies one Token the way the excluded GUI colors and
// groups display output: by what the underlying text represents, not
// by its lexical shape.
type TokenKind int

const (
	// TokenConstant is a literal ('b101), a keyword, or any other text
	// with no backing variable.
	TokenConstant TokenKind = iota
	// TokenIndependent is a scalar name driven by click/clock capture.
	TokenIndependent
	// TokenDependent is a scalar name driven by an assign/clock/
	// alt-clock statement.
	TokenDependent
	// TokenInstantiation is an instance or module name in an
	// instantiation statement.
	TokenInstantiation
	// TokenLineBreak separates the rendering of one statement from the
	// next; it carries no meaningful Text.
	TokenLineBreak
	// TokenComment is a quoted comment statement's text.
	TokenComment
	// TokenPunctuation is a structural character: an operator, a
	// delimiter, or one side of a grouping pair.
	TokenPunctuation
)

// Token is one unit of the Formatter's annotated output stream: literal
// text, an optional boolean value (nil when the token has none) that
// drives display color, a variant tag, and — for one half of a
// grouping pair ("(", ")", "{", "}", or a vector's "name[" and "]") —
// Match, the index into the
// same slice of the other half, letting the renderer draw an overbar
// across a negated sub-expression. Match is -1 for every token that
// isn't one side of a grouping pair.
type Token struct {
	Text  string
	Value *bool
	Kind  TokenKind
	Match int
}

// Tokenize walks stmts in source order and renders each one into db's
// current values, annotating every name with its live boolean value and
// Independent/Dependent kind. Unlike FormatValues, which only covers
// format specifiers, Tokenize covers the whole statement list — the
// token stream the excluded GUI editor would recolor and redraw on
// every solve, one token at a time, without re-deriving variable kinds
// itself.
func Tokenize(stmts []*hdl.Statement, db *database.Database) []Token {
	t := &tokenizer{db: db}
	for _, stmt := range stmts {
		t.statement(stmt)
		t.out = append(t.out, Token{Text: "\n", Kind: TokenLineBreak, Match: -1})
	}
	return t.out
}

type tokenizer struct {
	db  *database.Database
	out []Token
}

func (t *tokenizer) emit(text string, kind TokenKind, value *bool) int {
	idx := len(t.out)
	t.out = append(t.out, Token{Text: text, Kind: kind, Value: value, Match: -1})
	return idx
}

func (t *tokenizer) link(open, closeTok int) {
	t.out[open].Match = closeTok
	t.out[closeTok].Match = open
}

func boolPtr(b bool) *bool { return &b }

// name classifies a bare scalar identifier against the database: an
// Independent or Dependent variable gets its live value, anything the
// database has no record of (a module name, an instance name caught by
// a caller that didn't already special-case it) renders as a
// colorless constant rather than erroring — Tokenize never fails, it
// degrades.
func (t *tokenizer) name(n string) Token {
	kind, ok := t.db.Kind(n)
	if !ok {
		return Token{Text: n, Kind: TokenConstant, Match: -1}
	}
	v, _ := t.db.GetValue(n, errPos)
	tag := TokenIndependent
	if kind == database.Dependent {
		tag = TokenDependent
	}
	return Token{Text: n, Kind: tag, Value: boolPtr(v), Match: -1}
}

func (t *tokenizer) emitName(n string) {
	t.out = append(t.out, t.name(n))
}

func (t *tokenizer) vectorRef(v *hdl.VectorRef) {
	open := t.emit(v.Name+"[", TokenPunctuation, nil)
	switch {
	case v.Dots != nil:
		text := strconv.Itoa(v.Dots.Hi) + ".." + strconv.Itoa(v.Dots.Lo)
		t.emit(text, TokenConstant, nil)
	case v.Step != nil:
		text := strconv.Itoa(v.Step.Hi) + "." + strconv.Itoa(v.Step.Step) + "." + strconv.Itoa(v.Step.Lo)
		t.emit(text, TokenConstant, nil)
	}
	closeTok := t.emit("]", TokenPunctuation, nil)
	t.link(open, closeTok)
}

func (t *tokenizer) identOrVector(item *hdl.IdentOrVector) {
	switch {
	case item.Vector != nil:
		t.vectorRef(item.Vector)
	case item.Name != nil:
		t.emitName(*item.Name)
	}
}

func (t *tokenizer) lhsList(lhs *hdl.LHSList) {
	if lhs == nil {
		return
	}
	for _, item := range lhs.Items {
		t.identOrVector(item)
	}
}

func (t *tokenizer) declItem(item *hdl.DeclItem) {
	if item.Star {
		t.emit("*", TokenPunctuation, nil)
	}
	switch {
	case item.Vector != nil:
		t.vectorRef(item.Vector)
	case item.Name != nil:
		t.emitName(*item.Name)
	}
}

func (t *tokenizer) statement(stmt *hdl.Statement) {
	switch stmt.Kind {
	case hdl.KindComment:
		t.emit(stmt.Comment.Text, TokenComment, nil)
	case hdl.KindFormat:
		t.formatStmt(stmt.Format)
	case hdl.KindDeclaration:
		for _, item := range stmt.Decl.Items {
			t.declItem(item)
		}
		t.emit(";", TokenPunctuation, nil)
	case hdl.KindAssign:
		t.lhsList(stmt.Assign.LHS)
		t.emit("=", TokenPunctuation, nil)
		t.expression(stmt.Assign.Expr)
		t.emit(";", TokenPunctuation, nil)
	case hdl.KindClock:
		t.lhsList(stmt.Clock.LHS)
		t.emit("<=", TokenPunctuation, nil)
		t.expression(stmt.Clock.Expr)
		t.emit(";", TokenPunctuation, nil)
	case hdl.KindAltClock:
		t.emitName(stmt.AltClock.Clock)
		t.emit(":", TokenPunctuation, nil)
		t.lhsList(stmt.AltClock.LHS)
		t.emit("<=", TokenPunctuation, nil)
		t.expression(stmt.AltClock.Expr)
		t.emit(";", TokenPunctuation, nil)
	case hdl.KindInstantiation:
		t.emit(stmt.Inst.Instance, TokenInstantiation, nil)
		t.emit("=", TokenPunctuation, nil)
		t.emit(stmt.Inst.Module, TokenInstantiation, nil)
		open := t.emit("(", TokenPunctuation, nil)
		for _, in := range stmt.Inst.Inputs {
			t.identOrVector(in)
		}
		t.emit(":", TokenPunctuation, nil)
		for _, out := range stmt.Inst.Outputs {
			t.identOrVector(out)
		}
		closeTok := t.emit(")", TokenPunctuation, nil)
		t.link(open, closeTok)
		t.emit(";", TokenPunctuation, nil)
	case hdl.KindHeader:
		h := stmt.Header
		t.emit(h.Name, TokenConstant, nil)
		open := t.emit("(", TokenPunctuation, nil)
		for _, in := range h.Inputs {
			t.identOrVector(in)
		}
		t.emit(":", TokenPunctuation, nil)
		for _, out := range h.Outputs {
			t.identOrVector(out)
		}
		closeTok := t.emit(")", TokenPunctuation, nil)
		t.link(open, closeTok)
		t.emit(";", TokenPunctuation, nil)
	}
}

func (t *tokenizer) formatStmt(f *hdl.FormatStmt) {
	t.emit("%"+f.Letter, TokenPunctuation, nil) // e.g. "%h"
	open := t.emit("{", TokenPunctuation, nil)
	for _, item := range f.Items {
		t.unary(item)
	}
	closeTok := t.emit("}", TokenPunctuation, nil)
	t.link(open, closeTok)
	t.emit(";", TokenPunctuation, nil)
}

func (t *tokenizer) expression(e *hdl.Expression) {
	t.eqExpr(e.First)
	for _, term := range e.Rest {
		t.emit(term.Op, TokenPunctuation, nil)
		t.eqExpr(term.Operand)
	}
}

func (t *tokenizer) eqExpr(e *hdl.EqExpr) {
	t.xorExpr(e.First)
	for _, term := range e.Rest {
		t.emit(term.Op, TokenPunctuation, nil)
		t.xorExpr(term.Operand)
	}
}

func (t *tokenizer) xorExpr(e *hdl.XorExpr) {
	t.orExpr(e.First)
	for _, term := range e.Rest {
		t.emit(term.Op, TokenPunctuation, nil)
		t.orExpr(term.Operand)
	}
}

func (t *tokenizer) orExpr(e *hdl.OrExpr) {
	t.andExpr(e.First)
	for _, term := range e.Rest {
		t.emit(term.Op, TokenPunctuation, nil)
		t.andExpr(term.Operand)
	}
}

func (t *tokenizer) andExpr(e *hdl.AndExpr) {
	t.unary(e.First)
	for _, term := range e.Rest {
		if term.Op != "" {
			t.emit(term.Op, TokenPunctuation, nil)
		}
		t.unary(term.Operand)
	}
}

func (t *tokenizer) unary(u *hdl.Unary) {
	if u.Negate {
		t.emit("~", TokenPunctuation, nil)
	}
	t.operand(u.Operand)
}

func (t *tokenizer) operand(o *hdl.Operand) {
	switch {
	case o.Constant != nil:
		t.emit(*o.Constant, TokenConstant, nil)
	case o.Vector != nil:
		t.vectorRef(o.Vector)
	case o.Group != nil:
		open := t.emit("(", TokenPunctuation, nil)
		t.expression(o.Group)
		closeTok := t.emit(")", TokenPunctuation, nil)
		t.link(open, closeTok)
	case o.Concat != nil:
		open := t.emit("{", TokenPunctuation, nil)
		for _, item := range o.Concat.Items {
			t.unary(item)
		}
		closeTok := t.emit("}", TokenPunctuation, nil)
		t.link(open, closeTok)
	case o.Name != nil:
		t.emitName(*o.Name)
	}
}
