package ast

import (
	"fmt"
	"strings"
)

// SuffixValue returns the unquoted text of the invocation's suffix literal.
func (inv *Invocation) SuffixValue() (string, error) {
	return unquoteString(inv.Suffix.Value)
}

// unquoteString interprets a double-quoted string literal with the common
// escape sequences. Escapes outside that set, including \u{...}, are an
// error.
func unquoteString(lit string) (string, error) {
	if len(lit) < 2 || lit[0] != '"' || lit[len(lit)-1] != '"' {
		return "", fmt.Errorf("not a string literal: %s", lit)
	}
	body := lit[1 : len(lit)-1]
	if !strings.ContainsRune(body, '\\') {
		return body, nil
	}

	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(body) {
			return "", fmt.Errorf("trailing backslash in string literal: %s", lit)
		}
		switch body[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '0':
			b.WriteByte(0)
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		case '\'':
			b.WriteByte('\'')
		default:
			return "", fmt.Errorf("unsupported escape \\%c in string literal: %s", body[i], lit)
		}
	}
	return b.String(), nil
}
