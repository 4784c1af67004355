package rsxgen

import (
	"strings"
	"unicode"
)

// markupParser parses one markup tree. Alternatives are tried on copies of
// the cursor; recoverable failures are remembered so that, when nothing
// matches, the failure that got furthest into the source is reported.
type markupParser struct {
	furthest *Error
}

// ParseMarkup parses a single root element starting at pos in src and
// returns it with the position just after its end.
func ParseMarkup(file, src string, pos Position) (*Element, Position, error) {
	c := newCursor(file, src, pos)
	p := &markupParser{}
	el, err := p.parseElement(&c)
	if err != nil {
		if !fatal(err) && p.furthest != nil && p.furthest.Span.Start.Offset > err.Span.Start.Offset {
			err = p.furthest
		}
		return nil, pos, err
	}
	return el, c.pos(), nil
}

// fail records err as a recoverable failure and returns it.
func (p *markupParser) fail(err *Error) *Error {
	if p.furthest == nil || err.Span.Start.Offset > p.furthest.Span.Start.Offset {
		p.furthest = err
	}
	return err
}

// fatal reports whether err must abort parsing instead of letting another
// alternative be tried.
func fatal(err *Error) bool {
	return err.Kind != SyntaxError
}

type alternative func(c *cursor) (Node, *Error)

// choose tries each alternative on a fork of c and commits the first that
// succeeds. A nil node with a nil error means the alternative consumed
// input that produces no node. When all fail, the error of the alternative
// whose fork got furthest is returned, so a child that was recognized and
// then broke wins over the lookahead failures of its siblings.
func (p *markupParser) choose(c *cursor, alts ...alternative) (Node, *Error) {
	var best *Error
	reached := -1
	furthest := p.furthest
	for _, alt := range alts {
		fork := *c
		n, err := alt(&fork)
		if err == nil {
			// drop failures recorded by alternatives that lost
			p.furthest = furthest
			*c = fork
			return n, nil
		}
		if fatal(err) {
			return nil, err
		}
		if fork.off > reached || (fork.off == reached && err.Span.Start.Offset > best.Span.Start.Offset) {
			best, reached = err, fork.off
		}
	}
	return nil, p.fail(best)
}

// parseElement parses '<' Ident Prop* ('/>' | '>' Node* '</' Ident '>').
func (p *markupParser) parseElement(c *cursor) (*Element, *Error) {
	start := c.pos()
	if !c.consume('<') {
		return nil, p.fail(NewError(SyntaxError, pointSpan(start), "expected '<'"))
	}
	tagPos := c.pos()
	tag := c.ident()
	if tag == "" {
		return nil, p.fail(NewError(SyntaxError, pointSpan(tagPos), "expected tag name after '<'"))
	}

	el := &Element{Tag: tag}
	for {
		c.skipSpace()
		if c.eof() {
			return nil, p.fail(NewErrorf(SyntaxError, c.spanFrom(start), "unterminated element <%s>", tag))
		}
		if c.peek() == '>' || c.hasPrefix("/>") {
			break
		}
		prop, err := p.parseProp(c)
		if err != nil {
			return nil, err
		}
		el.Props = append(el.Props, prop)
	}

	if c.hasPrefix("/>") {
		c.advance(2)
		el.SelfClosing = true
		el.Span = c.spanFrom(start)
		return el, nil
	}
	c.next() // >

	for {
		if c.eof() {
			return nil, p.fail(NewErrorWithHint(SyntaxError, c.spanFrom(start),
				"unterminated element <"+tag+">", "missing </"+tag+">"))
		}
		if c.hasPrefix("</") {
			break
		}
		child, err := p.choose(c, p.expressionNode, p.elementNode, p.textRun)
		if err != nil {
			return nil, err
		}
		if child != nil {
			el.Children = append(el.Children, child)
		}
	}

	closeStart := c.pos()
	c.advance(2)
	c.skipSpace()
	closing := c.ident()
	if closing == "" {
		return nil, p.fail(NewError(SyntaxError, pointSpan(c.pos()), "expected tag name after '</'"))
	}
	c.skipSpace()
	if !c.consume('>') {
		return nil, p.fail(NewErrorf(SyntaxError, pointSpan(c.pos()), "expected '>' to close </%s", closing))
	}
	if closing != tag {
		return nil, NewErrorWithHint(SemanticError, c.spanFrom(closeStart),
			"closing tag </"+closing+"> does not match opening tag <"+tag+">",
			"opened at "+start.String())
	}

	el.Span = c.spanFrom(start)
	return el, nil
}

// parseProp parses Ident '=' Value.
func (p *markupParser) parseProp(c *cursor) (*Prop, *Error) {
	start := c.pos()
	name := c.ident()
	if name == "" {
		return nil, p.fail(NewErrorf(SyntaxError, pointSpan(start), "unexpected %q in element, expected prop name", c.peek()))
	}
	c.skipSpace()
	if !c.consume('=') {
		return nil, p.fail(NewErrorWithHint(SyntaxError, pointSpan(c.pos()),
			"expected '=' after prop "+name, "props are written name=value"))
	}
	c.skipSpace()
	value, err := p.parsePropValue(c)
	if err != nil {
		return nil, err
	}
	return &Prop{Name: name, Value: value, Span: c.spanFrom(start)}, nil
}

// parsePropValue parses a string literal, a {braced expression} or a
// bare operand such as 42, true or a.b.
func (p *markupParser) parsePropValue(c *cursor) (*Expr, *Error) {
	start := c.pos()
	switch c.peek() {
	case '{':
		content, ok := c.balancedBraces()
		if !ok {
			return nil, p.fail(NewErrorWithHint(SyntaxError, c.spanFrom(start), "unterminated expression", "missing '}'"))
		}
		expr, err := newExpr(content, true, c.spanFrom(start))
		if err != nil {
			return nil, p.fail(err)
		}
		return expr, nil
	case '"', '`', '\'':
		if !c.skipGoLiteral() {
			return nil, p.fail(NewError(SyntaxError, c.spanFrom(start), "unterminated literal in prop value"))
		}
	default:
		for !c.eof() {
			r := c.peek()
			if unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("_.-+", r) {
				c.next()
				continue
			}
			break
		}
	}

	code := c.src[start.Offset:c.off]
	if code == "" {
		return nil, p.fail(NewErrorWithHint(SyntaxError, pointSpan(start), "expected prop value",
			`use a literal such as "text" or a Go expression in braces`))
	}
	expr, err := newExpr(code, false, c.spanFrom(start))
	if err != nil {
		return nil, p.fail(err)
	}
	return expr, nil
}

func (p *markupParser) elementNode(c *cursor) (Node, *Error) {
	el, err := p.parseElement(c)
	if err != nil {
		return nil, err
	}
	return el, nil
}

// expressionNode parses a child of the form {expr}.
func (p *markupParser) expressionNode(c *cursor) (Node, *Error) {
	start := c.pos()
	if c.peek() != '{' {
		return nil, NewError(SyntaxError, pointSpan(start), "expected '{'")
	}
	content, ok := c.balancedBraces()
	if !ok {
		return nil, NewErrorWithHint(SyntaxError, c.spanFrom(start), "unterminated expression", "missing '}'")
	}
	span := c.spanFrom(start)
	expr, err := newExpr(content, true, span)
	if err != nil {
		return nil, err
	}
	return &Expression{Expr: expr, Span: span}, nil
}

// textRun consumes character data up to the next '<' outside an
// interpolation and segments it. Layout whitespace that contains a newline
// is dropped from both ends; a run made only of such whitespace produces no
// node.
func (p *markupParser) textRun(c *cursor) (Node, *Error) {
	start := *c
	depth := 0
	for !c.eof() {
		if depth == 0 {
			if c.peek() == '<' {
				break
			}
			if c.hasPrefix("{{") || c.hasPrefix("}}") {
				c.advance(2)
				continue
			}
		}
		switch c.peek() {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case '"', '\'', '`':
			if depth > 0 {
				if !c.skipGoLiteral() {
					return nil, NewError(SyntaxError, c.spanFrom(start.pos()), "unterminated expression")
				}
				continue
			}
		}
		c.next()
	}

	raw := c.src[start.off:c.off]
	if raw == "" {
		return nil, NewError(SyntaxError, pointSpan(start.pos()), "expected text, element or expression")
	}

	leading := len(raw) - len(strings.TrimLeftFunc(raw, unicode.IsSpace))
	trailing := len(raw) - len(strings.TrimRightFunc(raw, unicode.IsSpace))
	if leading == len(raw) {
		if strings.Contains(raw, "\n") {
			return nil, nil
		}
		trailing = 0
	}
	if !strings.Contains(raw[:leading], "\n") {
		leading = 0
	}
	if !strings.Contains(raw[len(raw)-trailing:], "\n") {
		trailing = 0
	}

	from := start
	for from.off < start.off+leading {
		from.next()
	}
	text := raw[leading : len(raw)-trailing]
	segments, err := SegmentText(text, from.pos())
	if err != nil {
		return nil, err.(*Error)
	}
	end := from
	for end.off < start.off+leading+len(text) {
		end.next()
	}
	return &Text{Raw: text, Segments: segments, Span: Span{Start: from.pos(), End: end.pos()}}, nil
}
