// Package token defines the lexical tokens of the Rust-style expression
// dialect understood by the suffix macro, together with source positions.
package token

import (
	"fmt"
	"sort"
	"strconv"
)

// Token is the set of lexical tokens.
type Token uint8

const (
	ILLEGAL Token = iota
	EOF

	literalBeg
	IDENT  // sensor
	INT    // 123
	FLOAT  // 0.5
	STRING // "_async"
	CHAR   // 'x'
	literalEnd

	operatorBeg
	ADD // +
	SUB // -
	MUL // *
	QUO // /
	REM // %

	AND // &
	OR  // |
	XOR // ^
	SHL // <<
	SHR // >>

	LAND // &&
	LOR  // ||
	NOT  // !

	EQL // ==
	NEQ // !=
	LSS // <
	LEQ // <=
	GTR // >
	GEQ // >=

	LPAREN   // (
	RPAREN   // )
	LBRACK   // [
	RBRACK   // ]
	COMMA    // ,
	PERIOD   // .
	QUESTION // ?
	PATHSEP  // ::
	operatorEnd

	keywordBeg
	AWAIT // await
	MUT   // mut
	keywordEnd
)

var tokens = [...]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",

	IDENT:  "IDENT",
	INT:    "INT",
	FLOAT:  "FLOAT",
	STRING: "STRING",
	CHAR:   "CHAR",

	ADD: "+",
	SUB: "-",
	MUL: "*",
	QUO: "/",
	REM: "%",

	AND: "&",
	OR:  "|",
	XOR: "^",
	SHL: "<<",
	SHR: ">>",

	LAND: "&&",
	LOR:  "||",
	NOT:  "!",

	EQL: "==",
	NEQ: "!=",
	LSS: "<",
	LEQ: "<=",
	GTR: ">",
	GEQ: ">=",

	LPAREN:   "(",
	RPAREN:   ")",
	LBRACK:   "[",
	RBRACK:   "]",
	COMMA:    ",",
	PERIOD:   ".",
	QUESTION: "?",
	PATHSEP:  "::",

	AWAIT: "await",
	MUT:   "mut",
}

func (t Token) String() string {
	if int(t) < len(tokens) && tokens[t] != "" {
		return tokens[t]
	}
	return "token(" + strconv.Itoa(int(t)) + ")"
}

// IsLiteral reports whether t is an identifier or a basic literal.
func (t Token) IsLiteral() bool { return literalBeg < t && t < literalEnd }

// IsKeyword reports whether t is a keyword.
func (t Token) IsKeyword() bool { return keywordBeg < t && t < keywordEnd }

var keywords = map[string]Token{
	"await": AWAIT,
	"mut":   MUT,
}

// Lookup maps an identifier to its keyword token, or IDENT.
func Lookup(ident string) Token {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// Binary operator precedences, loosest first. Mirrors the Rust operator
// table for the subset of operators the dialect supports.
const (
	LowestPrec = 0
)

// Precedence returns the binary precedence of t, or LowestPrec if t is not
// a binary operator.
func (t Token) Precedence() int {
	switch t {
	case LOR:
		return 1
	case LAND:
		return 2
	case EQL, NEQ, LSS, LEQ, GTR, GEQ:
		return 3
	case OR:
		return 4
	case XOR:
		return 5
	case AND:
		return 6
	case SHL, SHR:
		return 7
	case ADD, SUB:
		return 8
	case MUL, QUO, REM:
		return 9
	}
	return LowestPrec
}

// Pos is a byte offset into a source file, 1-based. The zero Pos is invalid.
type Pos int

// NoPos is the zero, invalid position.
const NoPos Pos = 0

// IsValid reports whether p is a valid position.
func (p Pos) IsValid() bool { return p != NoPos }

// Position is a human-readable source location.
type Position struct {
	Filename string
	Offset   int // byte offset, 0-based
	Line     int // 1-based
	Column   int // 1-based, in bytes
}

// IsValid reports whether the position is valid.
func (p Position) IsValid() bool { return p.Line > 0 }

func (p Position) String() string {
	s := p.Filename
	if p.IsValid() {
		if s != "" {
			s += ":"
		}
		s += fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	if s == "" {
		s = "-"
	}
	return s
}

// File translates Pos values of a single source file into Positions.
type File struct {
	name  string
	size  int
	lines []int // 0-based offsets of line starts, lines[0] == 0
}

// NewFile creates a File for a source of the given size. The file starts
// with one line at offset 0; further line starts are added by the scanner.
func NewFile(name string, size int) *File {
	return &File{name: name, size: size, lines: []int{0}}
}

// Name returns the file name.
func (f *File) Name() string { return f.name }

// Size returns the source size in bytes.
func (f *File) Size() int { return f.size }

// AddLine records the 0-based byte offset of a new line start.
func (f *File) AddLine(offset int) {
	if i := len(f.lines); (i == 0 || f.lines[i-1] < offset) && offset <= f.size {
		f.lines = append(f.lines, offset)
	}
}

// Pos returns the Pos for a 0-based byte offset.
func (f *File) Pos(offset int) Pos { return Pos(offset + 1) }

// Offset returns the 0-based byte offset for p.
func (f *File) Offset(p Pos) int { return int(p) - 1 }

// Position converts p into a Position within f.
func (f *File) Position(p Pos) Position {
	if !p.IsValid() {
		return Position{Filename: f.name}
	}
	offset := int(p) - 1
	i := sort.Search(len(f.lines), func(i int) bool { return f.lines[i] > offset }) - 1
	return Position{
		Filename: f.name,
		Offset:   offset,
		Line:     i + 1,
		Column:   offset - f.lines[i] + 1,
	}
}
