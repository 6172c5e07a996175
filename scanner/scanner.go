// Package scanner implements a lexer for the Rust-style expression dialect.
package scanner

import (
	"fmt"

	"github.com/okhsunrog/bisync-suffix-macro/token"
)

// ErrorHandler is called with a position and message for each error
// encountered while scanning.
type ErrorHandler func(pos token.Position, msg string)

// Scanner tokenizes a source string. Use Init to prepare it and Scan to
// obtain tokens until EOF.
type Scanner struct {
	file *token.File
	src  string
	err  ErrorHandler

	offset   int // current reading offset
	ErrCount int
}

// Init prepares the scanner to tokenize src. Errors are reported through
// err, which may be nil.
func (s *Scanner) Init(file *token.File, src string, err ErrorHandler) {
	s.file = file
	s.src = src
	s.err = err
	s.offset = 0
	s.ErrCount = 0
}

func (s *Scanner) error(offset int, msg string) {
	s.ErrCount++
	if s.err != nil {
		s.err(s.file.Position(s.file.Pos(offset)), msg)
	}
}

func (s *Scanner) peek() byte {
	if s.offset < len(s.src) {
		return s.src[s.offset]
	}
	return 0
}

func (s *Scanner) peekAt(n int) byte {
	if s.offset+n < len(s.src) {
		return s.src[s.offset+n]
	}
	return 0
}

func (s *Scanner) skipWhitespace() {
	for s.offset < len(s.src) {
		switch s.src[s.offset] {
		case ' ', '\t', '\r':
			s.offset++
		case '\n':
			s.offset++
			s.file.AddLine(s.offset)
		case '/':
			switch s.peekAt(1) {
			case '/':
				for s.offset < len(s.src) && s.src[s.offset] != '\n' {
					s.offset++
				}
			case '*':
				s.skipBlockComment()
			default:
				return
			}
		default:
			return
		}
	}
}

func (s *Scanner) skipBlockComment() {
	start := s.offset
	s.offset += 2
	depth := 1 // Rust block comments nest
	for s.offset < len(s.src) {
		switch {
		case s.src[s.offset] == '\n':
			s.offset++
			s.file.AddLine(s.offset)
		case s.src[s.offset] == '/' && s.peekAt(1) == '*':
			depth++
			s.offset += 2
		case s.src[s.offset] == '*' && s.peekAt(1) == '/':
			depth--
			s.offset += 2
			if depth == 0 {
				return
			}
		default:
			s.offset++
		}
	}
	s.error(start, "block comment not terminated")
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_'
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// Scan returns the next token, its position and its literal text. The
// literal is non-empty only for identifiers, keywords and basic literals.
// At the end of input Scan returns token.EOF.
func (s *Scanner) Scan() (pos token.Pos, tok token.Token, lit string) {
	s.skipWhitespace()

	pos = s.file.Pos(s.offset)
	if s.offset >= len(s.src) {
		return pos, token.EOF, ""
	}

	c := s.src[s.offset]
	switch {
	case isLetter(c):
		lit = s.scanIdent()
		return pos, token.Lookup(lit), lit
	case isDigit(c):
		tok, lit = s.scanNumber()
		return pos, tok, lit
	}

	s.offset++
	switch c {
	case '"':
		return pos, token.STRING, s.scanString(s.file.Offset(pos))
	case '\'':
		return pos, token.CHAR, s.scanChar(s.file.Offset(pos))
	case '+':
		return pos, token.ADD, ""
	case '-':
		return pos, token.SUB, ""
	case '*':
		return pos, token.MUL, ""
	case '/':
		return pos, token.QUO, ""
	case '%':
		return pos, token.REM, ""
	case '^':
		return pos, token.XOR, ""
	case '&':
		if s.peek() == '&' {
			s.offset++
			return pos, token.LAND, ""
		}
		return pos, token.AND, ""
	case '|':
		if s.peek() == '|' {
			s.offset++
			return pos, token.LOR, ""
		}
		return pos, token.OR, ""
	case '!':
		if s.peek() == '=' {
			s.offset++
			return pos, token.NEQ, ""
		}
		return pos, token.NOT, ""
	case '=':
		if s.peek() == '=' {
			s.offset++
			return pos, token.EQL, ""
		}
		s.error(s.file.Offset(pos), "unexpected '='")
		return pos, token.ILLEGAL, "="
	case '<':
		switch s.peek() {
		case '=':
			s.offset++
			return pos, token.LEQ, ""
		case '<':
			s.offset++
			return pos, token.SHL, ""
		}
		return pos, token.LSS, ""
	case '>':
		switch s.peek() {
		case '=':
			s.offset++
			return pos, token.GEQ, ""
		case '>':
			s.offset++
			return pos, token.SHR, ""
		}
		return pos, token.GTR, ""
	case '(':
		return pos, token.LPAREN, ""
	case ')':
		return pos, token.RPAREN, ""
	case '[':
		return pos, token.LBRACK, ""
	case ']':
		return pos, token.RBRACK, ""
	case ',':
		return pos, token.COMMA, ""
	case '.':
		return pos, token.PERIOD, ""
	case '?':
		return pos, token.QUESTION, ""
	case ':':
		if s.peek() == ':' {
			s.offset++
			return pos, token.PATHSEP, ""
		}
		s.error(s.file.Offset(pos), "unexpected ':'")
		return pos, token.ILLEGAL, ":"
	}

	s.error(s.file.Offset(pos), fmt.Sprintf("unexpected character %q", c))
	return pos, token.ILLEGAL, string(c)
}

func (s *Scanner) scanIdent() string {
	start := s.offset
	for s.offset < len(s.src) && (isLetter(s.src[s.offset]) || isDigit(s.src[s.offset])) {
		s.offset++
	}
	return s.src[start:s.offset]
}

func (s *Scanner) scanNumber() (token.Token, string) {
	start := s.offset
	tok := token.INT
	for s.offset < len(s.src) && (isDigit(s.src[s.offset]) || s.src[s.offset] == '_') {
		s.offset++
	}
	// A '.' is part of the number only when followed by a digit; `1.await`
	// and tuple-style accesses keep the period as its own token.
	if s.peek() == '.' && isDigit(s.peekAt(1)) {
		tok = token.FLOAT
		s.offset++
		for s.offset < len(s.src) && (isDigit(s.src[s.offset]) || s.src[s.offset] == '_') {
			s.offset++
		}
	}
	return tok, s.src[start:s.offset]
}

// scanString scans a string literal; the opening quote is already consumed.
// The returned literal includes both quotes.
func (s *Scanner) scanString(start int) string {
	for s.offset < len(s.src) {
		c := s.src[s.offset]
		s.offset++
		switch c {
		case '"':
			return s.src[start:s.offset]
		case '\\':
			if s.offset < len(s.src) {
				s.offset++
			}
		case '\n':
			s.file.AddLine(s.offset)
		}
	}
	s.error(start, "string literal not terminated")
	return s.src[start:s.offset]
}

// scanChar scans a char literal; the opening quote is already consumed.
func (s *Scanner) scanChar(start int) string {
	for s.offset < len(s.src) {
		c := s.src[s.offset]
		s.offset++
		switch c {
		case '\'':
			return s.src[start:s.offset]
		case '\\':
			if s.offset < len(s.src) {
				s.offset++
			}
		case '\n':
			s.error(start, "char literal not terminated")
			return s.src[start : s.offset-1]
		}
	}
	s.error(start, "char literal not terminated")
	return s.src[start:s.offset]
}
