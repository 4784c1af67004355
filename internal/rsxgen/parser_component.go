package rsxgen

import (
	"go/parser"
	"go/token"
	"strings"
	"unicode"
)

// parseComponent parses a component declaration.
// Syntax: component Name(params) { prelude; <root/> }
func (p *Parser) parseComponent() *Component {
	pos := p.position()

	if !p.expect(TokenComponent) {
		return nil
	}

	if p.current.Type != TokenIdent {
		p.errors.AddError(SyntaxError, p.position(), "expected component name")
		return nil
	}
	name := p.current.Literal
	if r := []rune(name)[0]; !unicode.IsUpper(r) {
		p.errors.Add(NewErrorWithHint(SemanticError, pointSpan(p.position()),
			"component name "+name+" must start with an uppercase letter",
			"lowercase tags are native elements"))
	}
	p.advance()

	if !p.expect(TokenLParen) {
		return nil
	}
	params := p.parseParams()
	if !p.expect(TokenRParen) {
		return nil
	}

	p.skipNewlines()
	if p.current.Type != TokenLBrace {
		p.errors.AddErrorf(SyntaxError, p.position(), "expected { to open component %s, got %s", name, p.current.Type)
		return nil
	}

	comp := &Component{
		Name:     name,
		Params:   params,
		Position: pos,
	}

	body := Position{
		File:   p.lexer.filename,
		Line:   p.current.Line,
		Column: p.current.Column + 1,
		Offset: p.current.StartPos + 1,
	}
	end, ok := p.parseComponentBody(comp, body)
	if !ok {
		return nil
	}
	p.resync(end)
	return comp
}

// parseComponentBody reads the prelude and the root element directly from
// the source and returns the position just after the closing '}'.
func (p *Parser) parseComponentBody(comp *Component, body Position) (Position, bool) {
	src := p.lexer.source
	c := newCursor(body.File, src, body)

	rootPos, err := findMarkupRoot(c)
	if err != nil {
		p.errors.Add(err)
		return Position{}, false
	}

	if prelude := strings.TrimSpace(src[body.Offset:rootPos.Offset]); prelude != "" {
		preludeStart := newCursor(body.File, src, body)
		preludeStart.skipSpace()
		if err := validatePrelude(prelude, preludeStart.pos()); err != nil {
			p.errors.Add(err)
			return Position{}, false
		}
		comp.Prelude = &GoCode{Code: prelude, Position: preludeStart.pos()}
	}

	root, after, perr := ParseMarkup(body.File, src, rootPos)
	if perr != nil {
		p.errors.Add(perr.(*Error))
		return Position{}, false
	}
	comp.Root = root

	c = newCursor(body.File, src, after)
	c.skipSpaceAndComments()
	if !c.consume('}') {
		start := c.pos()
		for !c.eof() && c.peek() != '\n' {
			c.next()
		}
		p.errors.Add(NewErrorWithHint(SyntaxError, c.spanFrom(start),
			"unexpected content after root element of "+comp.Name,
			"a component body ends with exactly one root element"))
		return Position{}, false
	}
	return c.pos(), true
}

// findMarkupRoot returns the position of the root element: the first '<'
// followed by a letter that starts a line of the body outside any Go
// bracket or literal.
func findMarkupRoot(c cursor) (Position, *Error) {
	start := c.pos()
	depth := 0
	lineStart := true
	for !c.eof() {
		r := c.peek()
		switch {
		case r == '\n':
			lineStart = true
			c.next()
			continue
		case unicode.IsSpace(r):
			c.next()
			continue
		case c.hasPrefix("//"):
			for !c.eof() && c.peek() != '\n' {
				c.next()
			}
			continue
		case c.hasPrefix("/*"):
			c.advance(2)
			for !c.eof() && !c.hasPrefix("*/") {
				if c.next() == '\n' {
					lineStart = true
				}
			}
			c.advance(2)
			continue
		case r == '<' && lineStart && depth == 0 && unicode.IsLetter(c.peekAt(1)):
			return c.pos(), nil
		case r == '"' || r == '\'' || r == '`':
			if !c.skipGoLiteral() {
				return Position{}, NewError(SyntaxError, c.spanFrom(start), "unterminated literal in component body")
			}
			lineStart = false
			continue
		case r == '{' || r == '(' || r == '[':
			depth++
		case r == '}' || r == ')' || r == ']':
			if depth == 0 && r == '}' {
				return Position{}, NewErrorWithHint(SyntaxError, Span{Start: start, End: c.pos()},
					"component body has no root element", "end the body with a single element such as <div>...</div>")
			}
			depth--
		}
		lineStart = false
		c.next()
	}
	return Position{}, NewError(SyntaxError, c.spanFrom(start), "unterminated component body")
}

// validatePrelude checks that the prelude is a valid Go statement list.
func validatePrelude(prelude string, pos Position) *Error {
	src := "package p\nfunc _() {\n" + prelude + "\n}\n"
	_, err := parser.ParseFile(token.NewFileSet(), "", src, parser.SkipObjectResolution)
	if err != nil {
		return NewErrorWithHint(SyntaxError, pointSpan(pos), "invalid Go statements before root element", err.Error())
	}
	return nil
}

// parseParams parses component parameters.
func (p *Parser) parseParams() []*Param {
	var params []*Param

	p.skipNewlines()
	for p.current.Type != TokenRParen && p.current.Type != TokenEOF {
		param := p.parseParam()
		if param == nil {
			return params
		}
		params = append(params, param)

		if p.current.Type == TokenComma {
			p.advance()
			p.skipNewlines()
		} else {
			break
		}
	}
	p.skipNewlines()

	return params
}

// parseParam parses a single parameter: name Type or name reactive Type.
func (p *Parser) parseParam() *Param {
	pos := p.position()

	if p.current.Type != TokenIdent {
		p.errors.AddError(SyntaxError, p.position(), "expected parameter name")
		return nil
	}
	name := p.current.Literal
	p.advance()

	reactive := false
	if p.current.Type == TokenIdent && p.current.Literal == "reactive" &&
		p.peek.Type != TokenComma && p.peek.Type != TokenRParen {
		reactive = true
		p.advance()
	}

	typeStr := p.parseType()
	if typeStr == "" {
		p.errors.AddErrorf(SyntaxError, p.position(), "expected type for parameter %s", name)
		return nil
	}

	return &Param{
		Name:     name,
		Type:     typeStr,
		Reactive: reactive,
		Position: pos,
	}
}

// parseType captures a Go type expression as raw source.
func (p *Parser) parseType() string {
	startPos := p.current.StartPos
	depth := 0

	for p.current.Type != TokenEOF {
		switch p.current.Type {
		case TokenComma:
			if depth == 0 {
				return strings.TrimSpace(p.lexer.SourceRange(startPos, p.current.StartPos))
			}
		case TokenRParen:
			if depth == 0 {
				return strings.TrimSpace(p.lexer.SourceRange(startPos, p.current.StartPos))
			}
			depth--
		case TokenLBracket, TokenLParen, TokenLBrace:
			depth++
		case TokenRBracket, TokenRBrace:
			depth--
		}
		p.advance()
	}

	return strings.TrimSpace(p.lexer.SourceRange(startPos, p.lexer.SourcePos()))
}

// parseGoFunc captures a function or method definition as raw Go code.
func (p *Parser) parseGoFunc() *GoFunc {
	pos := p.position()
	startPos := p.current.StartPos

	p.advance() // func
	fn := &GoFunc{Position: pos}
	if p.current.Type == TokenIdent {
		fn.Name = p.current.Literal
	}

	braceDepth := 0
	started := false
	for p.current.Type != TokenEOF {
		switch p.current.Type {
		case TokenLBrace:
			braceDepth++
			started = true
		case TokenRBrace:
			braceDepth--
			if started && braceDepth == 0 {
				endPos := p.current.StartPos + 1
				fn.Code = p.lexer.SourceRange(startPos, endPos)
				p.dropCommentsBefore(endPos)
				p.advance()
				return fn
			}
		}
		p.advance()
	}

	p.errors.AddError(SyntaxError, pos, "unterminated function definition")
	return nil
}

// parseGoDecl parses a top-level Go declaration (type, const, or var).
// These are captured as raw Go code and passed through unchanged.
func (p *Parser) parseGoDecl() *GoDecl {
	pos := p.position()
	startPos := p.current.StartPos
	kind := p.current.Literal

	braceDepth := 0
	parenDepth := 0
	capture := func(endPos int) *GoDecl {
		code := strings.TrimRight(p.lexer.SourceRange(startPos, endPos), " \t\r")
		p.dropCommentsBefore(endPos)
		return &GoDecl{Kind: kind, Code: code, Position: pos}
	}

	for p.current.Type != TokenEOF {
		switch p.current.Type {
		case TokenLBrace:
			braceDepth++
		case TokenRBrace:
			braceDepth--
		case TokenLParen:
			parenDepth++
		case TokenRParen:
			parenDepth--
		case TokenNewline:
			if braceDepth == 0 && parenDepth == 0 {
				decl := capture(p.current.StartPos)
				p.skipNewlines()
				return decl
			}
		}
		p.advance()
	}

	return capture(p.lexer.SourcePos())
}
