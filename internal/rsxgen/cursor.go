package rsxgen

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// cursor is a position in the source that markup parsing reads from.
// It is a small value type: speculative parses work on a copy and the copy
// is assigned back only when the parse succeeds.
type cursor struct {
	src  string
	file string
	off  int
	line int
	col  int
}

func newCursor(file, src string, pos Position) cursor {
	return cursor{src: src, file: file, off: pos.Offset, line: pos.Line, col: pos.Column}
}

func (c *cursor) pos() Position {
	return Position{File: c.file, Line: c.line, Column: c.col, Offset: c.off}
}

func (c *cursor) spanFrom(start Position) Span {
	return Span{Start: start, End: c.pos()}
}

func (c *cursor) eof() bool {
	return c.off >= len(c.src)
}

// peek returns the current rune, or 0 at end of input.
func (c *cursor) peek() rune {
	if c.eof() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(c.src[c.off:])
	return r
}

// peekAt returns the rune n bytes ahead of the cursor, or 0.
func (c *cursor) peekAt(n int) rune {
	if c.off+n >= len(c.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(c.src[c.off+n:])
	return r
}

func (c *cursor) hasPrefix(s string) bool {
	return strings.HasPrefix(c.src[c.off:], s)
}

// next consumes one rune.
func (c *cursor) next() rune {
	if c.eof() {
		return 0
	}
	r, size := utf8.DecodeRuneInString(c.src[c.off:])
	c.off += size
	if r == '\n' {
		c.line++
		c.col = 1
	} else {
		c.col++
	}
	return r
}

// advance consumes n runes.
func (c *cursor) advance(n int) {
	for i := 0; i < n && !c.eof(); i++ {
		c.next()
	}
}

// consume advances past r if it is the current rune.
func (c *cursor) consume(r rune) bool {
	if c.peek() != r || c.eof() {
		return false
	}
	c.next()
	return true
}

func (c *cursor) skipSpace() {
	for !c.eof() && unicode.IsSpace(c.peek()) {
		c.next()
	}
}

// skipSpaceAndComments skips whitespace and Go comments.
func (c *cursor) skipSpaceAndComments() {
	for {
		c.skipSpace()
		switch {
		case c.hasPrefix("//"):
			for !c.eof() && c.peek() != '\n' {
				c.next()
			}
		case c.hasPrefix("/*"):
			c.advance(2)
			for !c.eof() && !c.hasPrefix("*/") {
				c.next()
			}
			c.advance(2)
		default:
			return
		}
	}
}

// ident reads a markup identifier: a letter followed by letters, digits,
// '_', '-' or ':'. It returns "" without moving if no identifier starts here.
func (c *cursor) ident() string {
	if !unicode.IsLetter(c.peek()) && c.peek() != '_' {
		return ""
	}
	start := c.off
	for !c.eof() {
		r := c.peek()
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == ':' {
			c.next()
			continue
		}
		break
	}
	return c.src[start:c.off]
}

// skipGoLiteral consumes a Go string, raw string or rune literal starting at
// the cursor. It reports false if the literal is not closed.
func (c *cursor) skipGoLiteral() bool {
	quote := c.next()
	for !c.eof() {
		r := c.next()
		switch {
		case r == quote:
			return true
		case r == '\\' && quote != '`':
			c.next()
		case r == '\n' && quote != '`':
			return false
		}
	}
	return false
}

// balancedBraces reads from an opening '{' to its matching '}', skipping Go
// literals, and returns the text between them. ok is false when input ends
// first.
func (c *cursor) balancedBraces() (content string, ok bool) {
	c.next() // consume {
	start := c.off
	depth := 1
	for !c.eof() {
		switch c.peek() {
		case '"', '\'', '`':
			if !c.skipGoLiteral() {
				return c.src[start:c.off], false
			}
			continue
		case '/':
			// braces and quotes in comments do not count
			if c.hasPrefix("//") {
				for !c.eof() && c.peek() != '\n' {
					c.next()
				}
				continue
			}
			if c.hasPrefix("/*") {
				c.advance(2)
				for !c.eof() && !c.hasPrefix("*/") {
					c.next()
				}
				if c.eof() {
					return c.src[start:c.off], false
				}
				c.advance(2)
				continue
			}
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				content = c.src[start:c.off]
				c.next()
				return content, true
			}
		}
		c.next()
	}
	return c.src[start:c.off], false
}
