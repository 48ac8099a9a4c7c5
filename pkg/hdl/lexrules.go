package hdl

import "github.com/alecthomas/participle/v2/lexer"

// tokenLexer defines the lexical structure of a single logical
// statement once pkg/lexer has already split the source file on
// semicolon/paren/quote depth. It mirrors the ordered SimpleRule table
// bsdl's lexer uses for its VHDL-flavored BSDL front end, adapted
// to this design language's operators and vector syntax.
var tokenLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},

	{Name: "Arrow", Pattern: `<=`},
	{Name: "Eq", Pattern: `==`},
	{Name: "Range", Pattern: `\.\.`},

	{Name: "Assign", Pattern: `=`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Semicolon", Pattern: `;`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Dot", Pattern: `\.`},
	{Name: "Tilde", Pattern: `~`},
	{Name: "Amp", Pattern: `&`},
	{Name: "Pipe", Pattern: `\|`},
	{Name: "Caret", Pattern: `\^`},
	{Name: "Plus", Pattern: `\+`},
	{Name: "Minus", Pattern: `-`},
	{Name: "Star", Pattern: `\*`},
	{Name: "Percent", Pattern: `%`},

	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "LBracket", Pattern: `\[`},
	{Name: "RBracket", Pattern: `\]`},
	{Name: "LBrace", Pattern: `\{`},
	{Name: "RBrace", Pattern: `\}`},

	{Name: "Quoted", Pattern: `"(?:[^"\\]|\\.)*"`},
	{Name: "Constant", Pattern: `'[bdhBDH][0-9A-Fa-f]+`},
	{Name: "Integer", Pattern: `[0-9]+`},

	{Name: "Ident", Pattern: `[a-zA-Z][a-zA-Z0-9_]*`},
})
