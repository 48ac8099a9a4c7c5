package database

import "github.com/visiboole/vbcore/pkg/hdl"

// FormatSpecifier is a render-only "%b{a b[3..0]};"-style statement: it
// never drives a variable, only produces a display string on demand.
// Base is one of 'b', 'd', 'h', 'u' (format.Base's underlying byte
// values), validated by the parser before the statement reaches the
// Database; a concatenation click cycles Items' bits through their
// next value without regard to Base, since Base only affects how the
// result is rendered, not the arithmetic (see format.NextValue).
type FormatSpecifier struct {
	Line  int
	Base  byte
	Items []*hdl.Unary
}

// AppendFormat registers a format specifier in source order.
func (db *Database) AppendFormat(fs *FormatSpecifier) {
	db.Formats = append(db.Formats, fs)
}

// FormatAt finds the format specifier declared at line, the lookup a
// concatenation click uses to find what it's cycling.
func (db *Database) FormatAt(line int) (*FormatSpecifier, bool) {
	for _, fs := range db.Formats {
		if fs.Line == line {
			return fs, true
		}
	}
	return nil, false
}
