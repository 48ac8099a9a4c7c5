// Package hdl implements the lexical/syntactic front end of a design
// file: statement classification and the participle/v2
// grammars for each of the seven statement kinds plus the expression
// grammar shared by several of them. It mirrors bsdl's
// pkg/bsdl.Parser wrapper (participle.Build[T] + Parse/ParseString),
// built once per statement kind instead of once for the whole file,
// because each logical statement must be classified before
// choosing which grammar applies to it.
package hdl

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/visiboole/vbcore/pkg/errcode"
)

// Kind identifies which of the seven statement variants, or the design
// header, a logical statement is.
type Kind int

const (
	KindComment Kind = iota
	KindFormat
	KindInstantiation
	KindAltClock
	KindClock
	KindAssign
	KindDeclaration
	KindHeader
)

func (k Kind) String() string {
	switch k {
	case KindComment:
		return "Comment"
	case KindFormat:
		return "FormatSpecifier"
	case KindInstantiation:
		return "Instantiation"
	case KindAltClock:
		return "AlternateClock"
	case KindClock:
		return "Clock"
	case KindAssign:
		return "Assign"
	case KindDeclaration:
		return "Declaration"
	case KindHeader:
		return "Header"
	}
	return "Unknown"
}

// CommentStmt is a display-only comment, quotes stripped.
type CommentStmt struct {
	Text string
}

// Statement is a tagged union: exactly one of
// the pointer fields below is non-nil, selected by Kind.
type Statement struct {
	Kind Kind
	Line int
	Col  int
	Raw  string

	Comment  *CommentStmt
	Format   *FormatStmt
	Inst     *InstStmt
	AltClock *AltClockStmt
	Clock    *ClockStmt
	Assign   *AssignStmt
	Decl     *DeclStmt
	Header   *HeaderStmt
}

// Parser classifies and parses logical statements into Statement values.
type Parser struct {
	File string

	header   *participle.Parser[HeaderStmt]
	decl     *participle.Parser[DeclStmt]
	assign   *participle.Parser[AssignStmt]
	clock    *participle.Parser[ClockStmt]
	altClock *participle.Parser[AltClockStmt]
	inst     *participle.Parser[InstStmt]
	format   *participle.Parser[FormatStmt]
}

// NewParser builds the set of statement-kind grammars. All share the
// same token lexer; only elision and lookahead match bsdl's
// bsdl.NewParser options.
func NewParser() (*Parser, error) {
	opts := []participle.Option{
		participle.Lexer(tokenLexer),
		participle.Elide("Whitespace"),
		participle.UseLookahead(4),
	}

	header, err := participle.Build[HeaderStmt](opts...)
	if err != nil {
		return nil, fmt.Errorf("hdl: failed to build header grammar: %w", err)
	}
	decl, err := participle.Build[DeclStmt](opts...)
	if err != nil {
		return nil, fmt.Errorf("hdl: failed to build declaration grammar: %w", err)
	}
	assign, err := participle.Build[AssignStmt](opts...)
	if err != nil {
		return nil, fmt.Errorf("hdl: failed to build assign grammar: %w", err)
	}
	clock, err := participle.Build[ClockStmt](opts...)
	if err != nil {
		return nil, fmt.Errorf("hdl: failed to build clock grammar: %w", err)
	}
	altClock, err := participle.Build[AltClockStmt](opts...)
	if err != nil {
		return nil, fmt.Errorf("hdl: failed to build alt-clock grammar: %w", err)
	}
	inst, err := participle.Build[InstStmt](opts...)
	if err != nil {
		return nil, fmt.Errorf("hdl: failed to build instantiation grammar: %w", err)
	}
	format, err := participle.Build[FormatStmt](opts...)
	if err != nil {
		return nil, fmt.Errorf("hdl: failed to build format grammar: %w", err)
	}

	return &Parser{
		File:     "",
		header:   header,
		decl:     decl,
		assign:   assign,
		clock:    clock,
		altClock: altClock,
		inst:     inst,
		format:   format,
	}, nil
}

// ParseStatement classifies and parses one logical statement (as
// produced by pkg/lexer.Preprocessor.Split). allowHeader should be true
// only for the first non-comment, non-directive statement of a design.
func (p *Parser) ParseStatement(raw string, line, col int, allowHeader bool) (*Statement, error) {
	trimmed := strings.TrimSpace(raw)
	pos := errcode.Position{File: p.File, Line: line, Column: col}

	if strings.HasPrefix(trimmed, `"`) {
		text, err := parseCommentText(trimmed, pos)
		if err != nil {
			return nil, err
		}
		return &Statement{Kind: KindComment, Line: line, Col: col, Raw: raw, Comment: &CommentStmt{Text: text}}, nil
	}

	if strings.HasPrefix(trimmed, "%") {
		stmt, err := p.format.ParseString(p.File, trimmed)
		if err != nil {
			return nil, &errcode.ParseError{Pos: pos, Reason: "malformed format specifier", Cause: err}
		}
		letter := strings.ToLower(stmt.Letter)
		if len(letter) != 1 || !strings.ContainsRune("bdhu", rune(letter[0])) {
			return nil, &errcode.ParseError{Pos: pos, Reason: fmt.Sprintf("unrecognized format letter %q", stmt.Letter)}
		}
		stmt.Letter = letter
		return &Statement{Kind: KindFormat, Line: line, Col: col, Raw: raw, Format: stmt}, nil
	}

	shape, err := classifyShape(trimmed)
	if err != nil {
		return nil, &errcode.ParseError{Pos: pos, Reason: err.Error()}
	}

	switch shape {
	case KindInstantiation:
		stmt, err := p.inst.ParseString(p.File, trimmed)
		if err != nil {
			return nil, &errcode.ParseError{Pos: pos, Reason: "malformed instantiation", Cause: err}
		}
		return &Statement{Kind: KindInstantiation, Line: line, Col: col, Raw: raw, Inst: stmt}, nil

	case KindAltClock:
		stmt, err := p.altClock.ParseString(p.File, trimmed)
		if err != nil {
			return nil, &errcode.ParseError{Pos: pos, Reason: "malformed alternate-clock statement", Cause: err}
		}
		return &Statement{Kind: KindAltClock, Line: line, Col: col, Raw: raw, AltClock: stmt}, nil

	case KindClock:
		stmt, err := p.clock.ParseString(p.File, trimmed)
		if err != nil {
			return nil, &errcode.ParseError{Pos: pos, Reason: "malformed clock statement", Cause: err}
		}
		return &Statement{Kind: KindClock, Line: line, Col: col, Raw: raw, Clock: stmt}, nil

	case KindHeader:
		if !allowHeader {
			return nil, &errcode.ParseError{Pos: pos, Reason: "header must be the first statement"}
		}
		stmt, err := p.header.ParseString(p.File, trimmed)
		if err != nil {
			return nil, &errcode.ParseError{Pos: pos, Reason: "malformed header", Cause: err}
		}
		return &Statement{Kind: KindHeader, Line: line, Col: col, Raw: raw, Header: stmt}, nil

	case KindAssign:
		stmt, err := p.assign.ParseString(p.File, trimmed)
		if err != nil {
			return nil, &errcode.ParseError{Pos: pos, Reason: "malformed assign statement", Cause: err}
		}
		return &Statement{Kind: KindAssign, Line: line, Col: col, Raw: raw, Assign: stmt}, nil

	case KindDeclaration:
		stmt, err := p.decl.ParseString(p.File, trimmed)
		if err != nil {
			return nil, &errcode.ParseError{Pos: pos, Reason: "malformed declaration", Cause: err}
		}
		return &Statement{Kind: KindDeclaration, Line: line, Col: col, Raw: raw, Decl: stmt}, nil
	}

	return nil, &errcode.ParseError{Pos: pos, Reason: "statement not recognized"}
}

// parseCommentText strips the outer quotes from a comment statement,
// tolerating a trailing semicolon, and unescapes backslash-escaped
// quotes the way the lexer's quote scanner preserved them verbatim.
func parseCommentText(trimmed string, pos errcode.Position) (string, error) {
	body := strings.TrimSuffix(strings.TrimSpace(trimmed), ";")
	if len(body) < 2 || body[0] != '"' || body[len(body)-1] != '"' {
		return "", &errcode.ParseError{Pos: pos, Reason: "malformed comment"}
	}
	inner := body[1 : len(body)-1]
	inner = strings.ReplaceAll(inner, `\"`, `"`)
	return inner, nil
}

// classifyShape applies the shape-detection precedence order to a
// statement that is neither a comment nor a format specifier: it scans
// the token stream for the presence of '=', '(', ':', ')' and '<=' to
// pick between instantiation, alternate-clock, clock, header, assign,
// and declaration.
func classifyShape(trimmed string) (Kind, error) {
	lex, err := lexer.LexString(tokenLexer, "", trimmed)
	if err != nil {
		return 0, fmt.Errorf("tokenize: %w", err)
	}

	sym := tokenLexer.Symbols()
	declTokens := map[lexer.TokenType]bool{
		sym["Ident"]: true, sym["Star"]: true, sym["Semicolon"]: true,
		sym["LBracket"]: true, sym["RBracket"]: true, sym["Integer"]: true,
		sym["Range"]: true, sym["Dot"]: true,
	}

	var hasAssign, hasArrow, hasColon, hasLParen, hasRParen bool
	onlyDeclTokens := true

	for {
		tok, err := lex.Next()
		if err != nil {
			return 0, fmt.Errorf("tokenize: %w", err)
		}
		if tok.EOF() {
			break
		}
		switch tok.Type {
		case sym["Whitespace"]:
			continue
		case sym["Assign"]:
			hasAssign = true
			onlyDeclTokens = false
		case sym["Arrow"]:
			hasArrow = true
			onlyDeclTokens = false
		case sym["Colon"]:
			hasColon = true
			onlyDeclTokens = false
		case sym["LParen"]:
			hasLParen = true
			onlyDeclTokens = false
		case sym["RParen"]:
			hasRParen = true
			onlyDeclTokens = false
		default:
			if !declTokens[tok.Type] {
				onlyDeclTokens = false
			}
		}
	}

	switch {
	case hasAssign && hasLParen && hasColon && hasRParen:
		return KindInstantiation, nil
	case hasColon && hasArrow:
		return KindAltClock, nil
	case hasArrow:
		return KindClock, nil
	case hasLParen && hasColon && hasRParen && !hasAssign:
		return KindHeader, nil
	case hasAssign:
		return KindAssign, nil
	case onlyDeclTokens:
		return KindDeclaration, nil
	}
	return 0, fmt.Errorf("statement not recognized")
}
