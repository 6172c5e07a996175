package expand

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/okhsunrog/bisync-suffix-macro/parser"
	"github.com/okhsunrog/bisync-suffix-macro/token"
)

// Error is a failed expansion of one call site. Other call sites in the
// same source are unaffected.
type Error struct {
	Pos token.Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %v", e.Pos, e.Msg)
}

// ErrorList collects per-call-site expansion errors, in source order.
type ErrorList []*Error

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", l[0], len(l)-1)
}

// Err returns l as an error, or nil if the list is empty.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// Source expands every `NAME!( ... )` invocation found in a host source
// file, copying all surrounding text through verbatim. String and char
// literals and comments are never scanned for invocations. Malformed call
// sites are reported in the returned ErrorList and left unexpanded; the
// remaining call sites still expand. n is the number of expanded sites.
func Source(filename, src string, opts Options) (out string, n int, err error) {
	opts = opts.withDefaults()
	s := sourceExpander{
		src:  src,
		opts: opts,
		file: token.NewFile(filename, len(src)),
	}
	s.out = make([]byte, 0, len(src)*2)
	s.expand()
	return string(s.out), s.expanded, s.errors.Err()
}

type sourceExpander struct {
	src  string
	opts Options
	file *token.File

	out            []byte
	offset         int // scanning position
	lastPosWritten int // everything before this offset is already in out
	expanded       int
	errors         ErrorList
}

func (s *sourceExpander) appendFromSource(end int) {
	s.out = append(s.out, s.src[s.lastPosWritten:end]...)
	s.lastPosWritten = end
}

func (s *sourceExpander) errorAt(offset int, msg string) {
	s.errors = append(s.errors, &Error{
		Pos: s.file.Position(s.file.Pos(offset)),
		Msg: msg,
	})
}

// lastIndent returns the leading whitespace of the line the expansion is
// being written on, used to indent the emitted block's remaining lines.
func (s *sourceExpander) lastIndent() string {
	i := max(bytes.LastIndexByte(s.out, '\n')+1, 0)
	for j, c := range s.out[i:] {
		if c != ' ' && c != '\t' {
			return string(s.out[i : i+j])
		}
	}
	return string(s.out[i:])
}

func (s *sourceExpander) expand() {
	for s.offset < len(s.src) {
		c := s.src[s.offset]
		switch {
		case c == '\n':
			s.offset++
			s.file.AddLine(s.offset)
		case c == '"':
			s.skipString()
		case c == '\'':
			s.skipChar()
		case c == '/' && s.at(s.offset+1, '/'):
			s.skipLineComment()
		case c == '/' && s.at(s.offset+1, '*'):
			s.skipBlockComment()
		case isWordStart(c):
			start := s.offset
			for s.offset < len(s.src) && isWordPart(s.src[s.offset]) {
				s.offset++
			}
			if s.src[start:s.offset] == s.opts.MacroName {
				s.tryInvocation(start)
			}
		default:
			s.offset++
		}
	}
	s.appendFromSource(len(s.src))
}

// tryInvocation is called with the scanner just past a macro-name word
// starting at start. It expands the call site when the word is followed by
// `!(`; otherwise the word was an ordinary identifier.
func (s *sourceExpander) tryInvocation(start int) {
	i := s.offset
	for i < len(s.src) && (s.src[i] == ' ' || s.src[i] == '\t') {
		i++
	}
	if i >= len(s.src) || s.src[i] != '!' {
		return
	}
	i++
	for i < len(s.src) && (s.src[i] == ' ' || s.src[i] == '\t') {
		i++
	}
	if i >= len(s.src) || s.src[i] != '(' {
		return
	}

	argStart := i + 1
	argEnd, ok := s.findCloseParen(argStart)
	if !ok {
		s.errorAt(start, "unterminated macro invocation")
		s.offset = len(s.src)
		return
	}

	inv, err := parser.ParseInvocation(s.file.Name(), s.src[argStart:argEnd])
	if err != nil {
		s.errorAt(s.translateOffset(argStart, err), errMessage(err))
		// Leave the call site as written; later build stages will
		// report the unexpanded macro.
		s.offset = argEnd + 1
		return
	}

	s.appendFromSource(start)
	block, err := Invocation(inv, s.opts)
	if err != nil {
		s.errorAt(start, err.Error())
		s.offset = argEnd + 1
		return
	}
	s.out = append(s.out, indentBlock(block, s.lastIndent())...)
	s.offset = argEnd + 1
	s.lastPosWritten = s.offset
	s.expanded++
}

// findCloseParen returns the offset of the parenthesis closing the group
// that starts just before argStart, honoring nested parens, literals and
// comments.
func (s *sourceExpander) findCloseParen(argStart int) (int, bool) {
	depth := 1
	i := argStart
	for i < len(s.src) {
		switch c := s.src[i]; {
		case c == '\n':
			i++
			s.file.AddLine(i)
		case c == '(':
			depth++
			i++
		case c == ')':
			depth--
			if depth == 0 {
				return i, true
			}
			i++
		case c == '"':
			i = skipStringFrom(s.src, i)
		case c == '\'':
			i = skipCharFrom(s.src, i)
		case c == '/' && i+1 < len(s.src) && s.src[i+1] == '/':
			for i < len(s.src) && s.src[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(s.src) && s.src[i+1] == '*':
			i = s.skipBlockCommentFrom(i)
		default:
			i++
		}
	}
	return 0, false
}

// translateOffset maps a parse error's position, which is relative to the
// invocation's argument text, back into the host file.
func (s *sourceExpander) translateOffset(argStart int, err error) int {
	if e, ok := err.(*parser.MalformedInvocationError); ok && e.Pos.IsValid() {
		return argStart + e.Pos.Offset
	}
	return argStart
}

func errMessage(err error) string {
	if e, ok := err.(*parser.MalformedInvocationError); ok {
		return "malformed suffix invocation: " + e.Msg
	}
	return err.Error()
}

// indentBlock prefixes every line of block after the first with indent.
func indentBlock(block, indent string) string {
	if indent == "" {
		return block
	}
	return strings.ReplaceAll(block, "\n", "\n"+indent)
}

func (s *sourceExpander) at(i int, c byte) bool {
	return i < len(s.src) && s.src[i] == c
}

func (s *sourceExpander) skipString() {
	s.offset = s.skipCountingLines(s.offset, skipStringFrom)
}

func (s *sourceExpander) skipChar() {
	s.offset = s.skipCountingLines(s.offset, skipCharFrom)
}

// skipCountingLines applies skip and records any line starts the skipped
// region contains, keeping position translation correct.
func (s *sourceExpander) skipCountingLines(start int, skip func(string, int) int) int {
	end := skip(s.src, start)
	for i := start; i < end; i++ {
		if s.src[i] == '\n' {
			s.file.AddLine(i + 1)
		}
	}
	return end
}

func (s *sourceExpander) skipLineComment() {
	for s.offset < len(s.src) && s.src[s.offset] != '\n' {
		s.offset++
	}
}

func (s *sourceExpander) skipBlockComment() {
	s.offset = s.skipBlockCommentFrom(s.offset)
}

func (s *sourceExpander) skipBlockCommentFrom(start int) int {
	i := start + 2
	depth := 1
	for i < len(s.src) {
		switch {
		case s.src[i] == '\n':
			i++
			s.file.AddLine(i)
		case s.src[i] == '/' && i+1 < len(s.src) && s.src[i+1] == '*':
			depth++
			i += 2
		case s.src[i] == '*' && i+1 < len(s.src) && s.src[i+1] == '/':
			depth--
			i += 2
			if depth == 0 {
				return i
			}
		default:
			i++
		}
	}
	return i
}

// skipStringFrom returns the offset just past the string literal starting
// at i (which must be a '"').
func skipStringFrom(src string, i int) int {
	i++
	for i < len(src) {
		switch src[i] {
		case '"':
			return i + 1
		case '\\':
			i += 2
		default:
			i++
		}
	}
	return i
}

// skipCharFrom returns the offset just past the char literal (or lifetime)
// starting at i (which must be a '\''). A lifetime like `'a` has no closing
// quote; it ends after its identifier.
func skipCharFrom(src string, i int) int {
	i++ // opening quote
	if i >= len(src) {
		return i
	}
	if src[i] == '\\' {
		i += 2
		for i < len(src) && src[i] != '\'' && src[i] != '\n' {
			i++
		}
		if i < len(src) && src[i] == '\'' {
			i++
		}
		return i
	}
	if isWordPart(src[i]) {
		// Distinguish the char literal 'x' from the lifetime 'a by
		// looking for a closing quote right after a single word.
		j := i
		for j < len(src) && isWordPart(src[j]) {
			j++
		}
		if j < len(src) && src[j] == '\'' {
			return j + 1
		}
		return j
	}
	if i+1 < len(src) && src[i+1] == '\'' {
		return i + 2 // char literal like '('
	}
	return i + 1
}

func isWordStart(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_'
}

func isWordPart(c byte) bool {
	return isWordStart(c) || '0' <= c && c <= '9'
}
