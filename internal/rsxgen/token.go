package rsxgen

import "fmt"

// TokenType represents the type of a lexical token.
type TokenType int

const (
	// Special tokens
	TokenEOF     TokenType = iota // end of file
	TokenError                    // lexer error
	TokenNewline                  // newline

	// Keywords
	TokenPackage   // package
	TokenImport    // import
	TokenFunc      // func
	TokenTypeKw    // type
	TokenConst     // const
	TokenVar       // var
	TokenComponent // component

	// Literals
	TokenIdent     // identifier
	TokenInt       // integer literal: 123
	TokenFloat     // float literal: 1.23
	TokenString    // string literal: "..."
	TokenRawString // raw string literal: `...`
	TokenRune      // rune literal: 'x'

	// Operators and punctuation
	TokenLParen   // (
	TokenRParen   // )
	TokenLBrace   // {
	TokenRBrace   // }
	TokenLBracket // [
	TokenRBracket // ]
	TokenLAngle   // <
	TokenRAngle   // >
	TokenSlash    // /
	TokenEquals   // =
	TokenComma    // ,
	TokenDot      // .
	TokenColon    // :
	TokenSemicolon
	TokenStar  // *
	TokenOther // any other operator character
)

var tokenNames = map[TokenType]string{
	TokenEOF:       "EOF",
	TokenError:     "Error",
	TokenNewline:   "Newline",
	TokenPackage:   "package",
	TokenImport:    "import",
	TokenFunc:      "func",
	TokenTypeKw:    "type",
	TokenConst:     "const",
	TokenVar:       "var",
	TokenComponent: "component",
	TokenIdent:     "Ident",
	TokenInt:       "Int",
	TokenFloat:     "Float",
	TokenString:    "String",
	TokenRawString: "RawString",
	TokenRune:      "Rune",
	TokenLParen:    "(",
	TokenRParen:    ")",
	TokenLBrace:    "{",
	TokenRBrace:    "}",
	TokenLBracket:  "[",
	TokenRBracket:  "]",
	TokenLAngle:    "<",
	TokenRAngle:    ">",
	TokenSlash:     "/",
	TokenEquals:    "=",
	TokenComma:     ",",
	TokenDot:       ".",
	TokenColon:     ":",
	TokenSemicolon: ";",
	TokenStar:      "*",
	TokenOther:     "Operator",
}

// String returns a human-readable name for the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", t)
}

// Token represents a lexical token with its type, literal value, and source position.
type Token struct {
	Type     TokenType
	Literal  string
	Line     int
	Column   int
	StartPos int // byte offset in source where token starts
}

// String returns a debug representation of the token.
func (t Token) String() string {
	if t.Literal == "" {
		return fmt.Sprintf("%s at %d:%d", t.Type, t.Line, t.Column)
	}
	lit := t.Literal
	if len(lit) > 20 {
		lit = lit[:17] + "..."
	}
	return fmt.Sprintf("%s(%q) at %d:%d", t.Type, lit, t.Line, t.Column)
}

// Position represents a source code location for error reporting.
type Position struct {
	File   string
	Line   int // 1-based
	Column int // 1-based, in runes
	Offset int // 0-based byte offset
}

// String returns a formatted position string.
func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Span is a half-open source range [Start, End).
type Span struct {
	Start Position
	End   Position
}

// String returns the start position of the span.
func (s Span) String() string {
	return s.Start.String()
}

// pointSpan returns an empty span located at pos.
func pointSpan(pos Position) Span {
	return Span{Start: pos, End: pos}
}

var keywords = map[string]TokenType{
	"package":   TokenPackage,
	"import":    TokenImport,
	"func":      TokenFunc,
	"type":      TokenTypeKw,
	"const":     TokenConst,
	"var":       TokenVar,
	"component": TokenComponent,
}

// LookupIdent returns the token type for an identifier,
// checking if it's a keyword first.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TokenIdent
}
