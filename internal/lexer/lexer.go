// Package lexer tokenizes one logical assembly line at a time: labels,
// directive and instruction mnemonics, operands, numbers, and quoted
// strings. It performs no semantic validation — that is the session
// package's job — it only recognizes token boundaries.
package lexer

import (
	"strconv"
	"strings"
)

// MaxLineWidth is the maximum usable line width; characters beyond it
// are not guaranteed to be scanned.
const MaxLineWidth = 80

// isBlank reports whether b is a space or tab — the only characters
// the recognizer treats as inter-token whitespace.
func isBlank(b byte) bool {
	return b == ' ' || b == '\t'
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isAlnum(b byte) bool {
	return isLetter(b) || isDigit(b)
}

// Lexer scans one source line. Construct a fresh one per line.
type Lexer struct {
	line string
	pos  int
}

// New returns a Lexer over line (without its trailing newline).
func New(line string) *Lexer {
	if len(line) > MaxLineWidth {
		line = line[:MaxLineWidth]
	}
	return &Lexer{line: line}
}

// AtEnd reports whether the scan position is past the last character.
func (l *Lexer) AtEnd() bool {
	return l.pos >= len(l.line)
}

func (l *Lexer) skipBlanks() {
	for !l.AtEnd() && isBlank(l.line[l.pos]) {
		l.pos++
	}
}

// FirstNonBlank returns the first non-blank character on the line, or
// 0 if the line is blank, without consuming it. Used to classify a
// line as blank, a comment, or content.
func (l *Lexer) FirstNonBlank() byte {
	save := l.pos
	l.skipBlanks()
	var b byte
	if !l.AtEnd() {
		b = l.line[l.pos]
	}
	l.pos = save
	return b
}

// ReadFirstToken reads the line's opening whitespace-delimited token:
// the one place an embedded colon terminates the token (and is
// consumed, reported via hasColon) rather than being ordinary text.
func (l *Lexer) ReadFirstToken() (text string, hasColon bool) {
	l.skipBlanks()
	start := l.pos
	for !l.AtEnd() {
		b := l.line[l.pos]
		if isBlank(b) || b == ',' {
			break
		}
		if b == ':' {
			text = l.line[start:l.pos]
			l.pos++
			return text, true
		}
		l.pos++
	}
	return l.line[start:l.pos], false
}

// ReadToken reads the next whitespace/comma-delimited token. Returns
// ok=false if the line is exhausted.
func (l *Lexer) ReadToken() (text string, ok bool) {
	l.skipBlanks()
	if l.AtEnd() {
		return "", false
	}
	start := l.pos
	for !l.AtEnd() {
		b := l.line[l.pos]
		if isBlank(b) || b == ',' {
			break
		}
		l.pos++
	}
	return l.line[start:l.pos], true
}

// SkipComma consumes one comma, if the next non-blank character is
// one. Reports whether it found and consumed a comma.
func (l *Lexer) SkipComma() bool {
	save := l.pos
	l.skipBlanks()
	if !l.AtEnd() && l.line[l.pos] == ',' {
		l.pos++
		return true
	}
	l.pos = save
	return false
}

// HasMoreComma reports whether, ignoring leading blanks, the next
// character is a comma, without consuming anything.
func (l *Lexer) HasMoreComma() bool {
	save := l.pos
	has := l.SkipComma()
	l.pos = save
	return has
}

// Remainder returns everything from the current position to end of
// line, blanks-trimmed, for "excess text" checks.
func (l *Lexer) Remainder() string {
	return strings.TrimSpace(l.line[l.pos:])
}

// AtEOLAfterBlanks reports whether only blanks remain on the line.
func (l *Lexer) AtEOLAfterBlanks() bool {
	return l.Remainder() == ""
}

// ReadQuotedString reads a double-quoted string token starting at the
// current position (leading blanks skipped). Returns the unquoted
// contents. ok is false if the opening quote is missing; closed is
// false if the closing quote was never found before end of line.
func (l *Lexer) ReadQuotedString() (content string, ok bool, closed bool) {
	l.skipBlanks()
	if l.AtEnd() || l.line[l.pos] != '"' {
		return "", false, false
	}
	l.pos++
	start := l.pos
	for !l.AtEnd() && l.line[l.pos] != '"' {
		l.pos++
	}
	if l.AtEnd() {
		return l.line[start:l.pos], true, false
	}
	content = l.line[start:l.pos]
	l.pos++ // consume closing quote
	return content, true, true
}

// IsLegalLabelText reports whether s satisfies the label grammar:
// starts with a letter, alphanumeric thereafter, length <= max.
func IsLegalLabelText(s string, max int) bool {
	if len(s) == 0 || len(s) > max {
		return false
	}
	if !isLetter(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isAlnum(s[i]) {
			return false
		}
	}
	return true
}

// PeekByte returns the next unconsumed byte without advancing, and
// false if the line is exhausted.
func (l *Lexer) PeekByte() (byte, bool) {
	if l.AtEnd() {
		return 0, false
	}
	return l.line[l.pos], true
}

// NextByte returns and consumes the next byte, or false at end of line.
func (l *Lexer) NextByte() (byte, bool) {
	b, ok := l.PeekByte()
	if ok {
		l.pos++
	}
	return b, ok
}

// ParseSignedNumber parses s as a signed decimal integer.
func ParseSignedNumber(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
