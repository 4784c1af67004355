package rsxgen

import "unicode"

// skipWhitespaceAndCollectComments skips horizontal whitespace and queues
// any comments it passes. Newlines are tokens and stop the skip.
func (l *Lexer) skipWhitespaceAndCollectComments() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r':
			l.readChar()
		case l.ch == '/' && (l.peekChar() == '/' || l.peekChar() == '*'):
			if !l.collectComment() {
				return
			}
		default:
			return
		}
	}
}

// collectComment reads a // or /* */ comment into pendingComments. It
// reports false, after recording an error, for a block comment that runs
// to the end of the file.
func (l *Lexer) collectComment() bool {
	start := l.CurrentPosition()
	block := l.peekChar() == '*'
	c := &Comment{
		Position:        start,
		IsBlock:         block,
		BlankLineBefore: l.blankLineBefore(start.Line),
	}

	if block {
		l.readChar()
		l.readChar()
		for !(l.ch == '*' && l.peekChar() == '/') {
			if l.ch == 0 {
				l.errors.Add(NewErrorWithHint(SyntaxError, Span{Start: start, End: l.CurrentPosition()},
					"unterminated block comment", "missing */"))
				return false
			}
			l.readChar()
		}
		l.readChar()
		l.readChar()
	} else {
		for l.ch != '\n' && l.ch != 0 {
			l.readChar()
		}
	}

	c.Text = l.source[start.Offset:l.pos]
	c.EndLine, c.EndCol = l.line, l.column
	l.pendingComments = append(l.pendingComments, c)
	l.lastCommentEndLine = l.line
	return true
}

// blankLineBefore reports whether line is more than one line below the
// last comment seen, queued or already handed to the parser.
func (l *Lexer) blankLineBefore(line int) bool {
	prev := l.lastCommentEndLine
	if n := len(l.pendingComments); n > 0 {
		prev = l.pendingComments[n-1].EndLine
	}
	return prev > 0 && line > prev+1
}

// ConsumeComments returns and clears pending comments.
func (l *Lexer) ConsumeComments() []*Comment {
	comments := l.pendingComments
	l.pendingComments = nil
	return comments
}

// readIdentifier reads an identifier or keyword.
func (l *Lexer) readIdentifier() Token {
	startPos := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	literal := l.source[startPos:l.pos]
	return l.makeToken(LookupIdent(literal), literal)
}

func isLetter(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isDigit(ch rune) bool {
	return unicode.IsDigit(ch)
}

// SourcePos returns the byte offset of the character under the lexer.
func (l *Lexer) SourcePos() int {
	return l.pos
}

// SourceRange returns source[start:end] clamped to the source bounds.
// Parsers use it to lift Go declarations and preludes out verbatim.
func (l *Lexer) SourceRange(start, end int) string {
	start = max(start, 0)
	end = min(end, len(l.source))
	if start >= end {
		return ""
	}
	return l.source[start:end]
}
