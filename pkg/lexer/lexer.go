// Package lexer implements the Visiboole core's Lexer & Preprocessor:
// it normalizes whitespace, captures library/preamble directives, and
// splits raw source text into logical statements terminated by a
// semicolon at paren-depth zero and quote-depth zero.
//
// The statement splitter is a hand-written rune scanner rather than a
// participle.SimpleRule lexer because it must track nested paren depth
// and quote state jointly across the whole file; tokenization of the
// text *inside* each logical statement is left to the participle-based
// grammar in pkg/hdl.
package lexer

import (
	"strings"

	"github.com/visiboole/vbcore/pkg/errcode"
)

// LogicalStatement is one semicolon-terminated unit of source text,
// with the position of its first non-space character preserved for
// diagnostics.
type LogicalStatement struct {
	Line int
	Col  int
	Text string
}

// Preprocessor splits source text into logical statements and
// directives.
type Preprocessor struct {
	File string
}

// reader walks source runes while tracking line/column position.
type reader struct {
	src    []rune
	pos    int
	line   int
	col    int
	peeked bool
}

func newReader(src string) *reader {
	return &reader{src: []rune(src), line: 1, col: 1}
}

func (r *reader) peek() (rune, bool) {
	if r.pos >= len(r.src) {
		return 0, false
	}
	return r.src[r.pos], true
}

func (r *reader) peekAt(offset int) (rune, bool) {
	idx := r.pos + offset
	if idx >= len(r.src) {
		return 0, false
	}
	return r.src[idx], true
}

func (r *reader) read() (rune, bool) {
	ch, ok := r.peek()
	if !ok {
		return 0, false
	}
	r.pos++
	if ch == '\n' {
		r.line++
		r.col = 1
	} else {
		r.col++
	}
	return ch, true
}

// Split tokenizes src into logical statements and preamble directives.
// Directives are '#'-prefixed lines encountered outside of any
// statement; they are returned in file order, separate from statements.
func (p *Preprocessor) Split(src string) (stmts []LogicalStatement, directives []string, err error) {
	src = expandTabs(src)
	r := newReader(src)

	var buf strings.Builder
	var startLine, startCol int
	started := false
	parenDepth := 0
	inQuote := false
	quoteLine, quoteCol := 0, 0

	flush := func() {
		text := strings.TrimSpace(buf.String())
		if text != "" {
			stmts = append(stmts, LogicalStatement{Line: startLine, Col: startCol, Text: text})
		}
		buf.Reset()
		started = false
	}

	for {
		ch, ok := r.peek()
		if !ok {
			break
		}

		if !started && !inQuote {
			if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' {
				r.read()
				continue
			}
			if ch == '#' {
				line, _ := readDirectiveLine(r)
				directives = append(directives, line)
				continue
			}
			started = true
			startLine, startCol = r.line, r.col
		}

		if inQuote {
			if ch == '\\' {
				nxt, hasNxt := r.peekAt(1)
				if hasNxt {
					buf.WriteRune(ch)
					r.read()
					buf.WriteRune(nxt)
					r.read()
					continue
				}
			}
			if ch == '"' {
				inQuote = false
			}
			buf.WriteRune(ch)
			r.read()
			continue
		}

		switch ch {
		case '"':
			inQuote = true
			quoteLine, quoteCol = r.line, r.col
			buf.WriteRune(ch)
			r.read()
		case '(':
			parenDepth++
			buf.WriteRune(ch)
			r.read()
		case ')':
			parenDepth--
			buf.WriteRune(ch)
			r.read()
		case ';':
			buf.WriteRune(ch)
			r.read()
			if parenDepth <= 0 {
				flush()
			}
		default:
			buf.WriteRune(ch)
			r.read()
		}
	}

	if inQuote {
		return nil, nil, &errcode.LexError{
			Pos:    errcode.Position{File: p.File, Line: quoteLine, Column: quoteCol},
			Reason: "unterminated comment",
		}
	}
	if parenDepth != 0 && strings.TrimSpace(buf.String()) != "" {
		return nil, nil, &errcode.LexError{
			Pos:    errcode.Position{File: p.File, Line: startLine, Column: startCol},
			Reason: "unterminated grouping",
		}
	}
	// Trailing text with no terminating semicolon is not a statement;
	// a well-formed design always ends its last statement with ';'.
	return stmts, directives, nil
}

// readDirectiveLine consumes a '#'-prefixed line and returns its text
// (including the leading '#'), stopping at (but not consuming) the
// terminating newline.
func readDirectiveLine(r *reader) (string, bool) {
	var b strings.Builder
	for {
		ch, ok := r.peek()
		if !ok || ch == '\n' {
			break
		}
		b.WriteRune(ch)
		r.read()
	}
	return b.String(), true
}

// expandTabs converts each tab character to four spaces on ingest.
func expandTabs(src string) string {
	return strings.ReplaceAll(src, "\t", "    ")
}
