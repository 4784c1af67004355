package rsxgen

import (
	"strings"
	"unicode/utf8"
)

// Lexer tokenizes the Go-level structure of .rsx source files. Markup is
// never tokenized; the parser reads it straight from the source.
type Lexer struct {
	filename string
	source   string
	pos      int  // current position in source
	readPos  int  // next position to read
	ch       rune // current character
	line     int  // current line (1-based)
	column   int  // current column (1-based)

	tokenLine     int
	tokenColumn   int
	tokenStartPos int

	// Comments collected since last ConsumeComments() call
	pendingComments []*Comment

	// End line of the last collected comment, used to detect blank lines
	// between comment batches.
	lastCommentEndLine int

	errors *ErrorList
}

// NewLexer creates a new Lexer for the given source.
func NewLexer(filename, source string) *Lexer {
	l := &Lexer{
		filename: filename,
		source:   source,
		line:     1,
		column:   0,
		errors:   NewErrorList(),
	}
	l.readChar()
	return l
}

// Errors returns any errors encountered during lexing.
func (l *Lexer) Errors() *ErrorList {
	return l.errors
}

// Source returns the full source being lexed.
func (l *Lexer) Source() string {
	return l.source
}

// Filename returns the name used in positions.
func (l *Lexer) Filename() string {
	return l.filename
}

// readChar advances to the next character in the source.
func (l *Lexer) readChar() {
	prevWasNewline := l.ch == '\n'

	if l.readPos >= len(l.source) {
		l.ch = 0 // EOF
		l.pos = l.readPos
		if prevWasNewline {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
		return
	}

	r, size := utf8.DecodeRuneInString(l.source[l.readPos:])
	l.ch = r
	l.pos = l.readPos
	l.readPos += size

	if prevWasNewline {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.source) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.readPos:])
	return r
}

// Seek moves the lexer to the given source position. The parser uses it to
// resume tokenizing after a markup tree it consumed on its own.
func (l *Lexer) Seek(pos Position) {
	l.pos = pos.Offset
	l.line = pos.Line
	l.column = pos.Column
	if pos.Offset >= len(l.source) {
		l.ch = 0
		l.readPos = len(l.source)
		return
	}
	r, size := utf8.DecodeRuneInString(l.source[pos.Offset:])
	l.ch = r
	l.readPos = pos.Offset + size
}

// CurrentPosition returns the position of the character under the lexer.
func (l *Lexer) CurrentPosition() Position {
	return Position{File: l.filename, Line: l.line, Column: l.column, Offset: l.pos}
}

func (l *Lexer) startToken() {
	l.tokenLine = l.line
	l.tokenColumn = l.column
	l.tokenStartPos = l.pos
}

func (l *Lexer) makeToken(typ TokenType, literal string) Token {
	// Code between comment batches means they are not separated by a blank line.
	if typ != TokenNewline && typ != TokenEOF {
		l.lastCommentEndLine = 0
	}
	return Token{
		Type:     typ,
		Literal:  literal,
		Line:     l.tokenLine,
		Column:   l.tokenColumn,
		StartPos: l.tokenStartPos,
	}
}

// position returns the current token's Position for error reporting.
func (l *Lexer) position() Position {
	return Position{
		File:   l.filename,
		Line:   l.tokenLine,
		Column: l.tokenColumn,
		Offset: l.tokenStartPos,
	}
}

const operatorChars = "+-!&|%^~?@#$"

// Next returns the next token from the source.
func (l *Lexer) Next() Token {
	l.skipWhitespaceAndCollectComments()

	l.startToken()

	switch l.ch {
	case 0:
		return l.makeToken(TokenEOF, "")

	case '\n':
		l.readChar()
		return l.makeToken(TokenNewline, "\n")

	case '(':
		l.readChar()
		return l.makeToken(TokenLParen, "(")

	case ')':
		l.readChar()
		return l.makeToken(TokenRParen, ")")

	case '{':
		l.readChar()
		return l.makeToken(TokenLBrace, "{")

	case '}':
		l.readChar()
		return l.makeToken(TokenRBrace, "}")

	case '[':
		l.readChar()
		return l.makeToken(TokenLBracket, "[")

	case ']':
		l.readChar()
		return l.makeToken(TokenRBracket, "]")

	case '<':
		l.readChar()
		return l.makeToken(TokenLAngle, "<")

	case '>':
		l.readChar()
		return l.makeToken(TokenRAngle, ">")

	case '/':
		l.readChar()
		return l.makeToken(TokenSlash, "/")

	case '=':
		l.readChar()
		return l.makeToken(TokenEquals, "=")

	case ',':
		l.readChar()
		return l.makeToken(TokenComma, ",")

	case '.':
		if isDigit(l.peekChar()) {
			return l.readNumber()
		}
		l.readChar()
		return l.makeToken(TokenDot, ".")

	case ':':
		l.readChar()
		return l.makeToken(TokenColon, ":")

	case ';':
		l.readChar()
		return l.makeToken(TokenSemicolon, ";")

	case '*':
		l.readChar()
		return l.makeToken(TokenStar, "*")

	case '"':
		return l.readString()

	case '\'':
		return l.readRune()

	case '`':
		return l.readRawString()

	default:
		if isLetter(l.ch) {
			return l.readIdentifier()
		}
		if isDigit(l.ch) {
			return l.readNumber()
		}
		if strings.ContainsRune(operatorChars, l.ch) {
			ch := l.ch
			l.readChar()
			return l.makeToken(TokenOther, string(ch))
		}

		ch := l.ch
		l.readChar()
		l.errors.AddErrorf(SyntaxError, l.position(), "unexpected character %q", ch)
		return l.makeToken(TokenError, string(ch))
	}
}
