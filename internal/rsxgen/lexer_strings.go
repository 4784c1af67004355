package rsxgen

import "strconv"

// readString reads a double-quoted string. The token literal is the
// unquoted value.
func (l *Lexer) readString() Token {
	startPos := l.pos
	l.readChar() // consume opening "

	for l.ch != '"' && l.ch != 0 {
		if l.ch == '\n' {
			l.errors.AddError(SyntaxError, l.position(), "unterminated string literal")
			return l.makeToken(TokenError, l.source[startPos:l.pos])
		}
		if l.ch == '\\' {
			l.readChar()
		}
		l.readChar()
	}

	if l.ch == 0 {
		l.errors.AddError(SyntaxError, l.position(), "unterminated string literal")
		return l.makeToken(TokenError, l.source[startPos:l.pos])
	}

	l.readChar() // consume closing "
	quoted := l.source[startPos:l.pos]
	value, err := strconv.Unquote(quoted)
	if err != nil {
		l.errors.AddErrorf(SyntaxError, l.position(), "invalid string literal %s", quoted)
		return l.makeToken(TokenError, quoted)
	}
	return l.makeToken(TokenString, value)
}

// readRune reads a single-quoted rune literal. The token literal keeps the quotes.
func (l *Lexer) readRune() Token {
	startPos := l.pos
	l.readChar() // consume opening '

	for l.ch != '\'' && l.ch != 0 && l.ch != '\n' {
		if l.ch == '\\' {
			l.readChar()
		}
		l.readChar()
	}

	if l.ch != '\'' {
		l.errors.AddError(SyntaxError, l.position(), "unterminated rune literal")
		return l.makeToken(TokenError, l.source[startPos:l.pos])
	}

	l.readChar() // consume closing '
	return l.makeToken(TokenRune, l.source[startPos:l.pos])
}

// readRawString reads a backtick-quoted raw string.
func (l *Lexer) readRawString() Token {
	l.readChar() // consume opening `

	startPos := l.pos
	for l.ch != '`' && l.ch != 0 {
		l.readChar()
	}

	if l.ch == 0 {
		l.errors.AddError(SyntaxError, l.position(), "unterminated raw string literal")
		return l.makeToken(TokenError, l.source[startPos:l.pos])
	}

	literal := l.source[startPos:l.pos]
	l.readChar() // consume closing `
	return l.makeToken(TokenRawString, literal)
}

// readNumber reads an integer or float literal.
func (l *Lexer) readNumber() Token {
	startPos := l.pos
	isFloat := false

	if l.ch == '.' {
		isFloat = true
		l.readChar()
	}

	for isDigit(l.ch) || isLetter(l.ch) {
		// hex, octal and binary prefixes plus digit separators
		if (l.ch == 'e' || l.ch == 'E') && !isHexLiteral(l.source[startPos:l.pos]) {
			break
		}
		l.readChar()
	}

	if l.ch == '.' && !isFloat {
		isFloat = true
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	if l.ch == 'e' || l.ch == 'E' {
		isFloat = true
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	literal := l.source[startPos:l.pos]
	if isFloat {
		return l.makeToken(TokenFloat, literal)
	}
	return l.makeToken(TokenInt, literal)
}

func isHexLiteral(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
