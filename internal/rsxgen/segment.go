package rsxgen

import "strings"

// SegmentText splits a text run into literal text and {expr} interpolations.
// raw must be the exact source text located at start.
//
// Outside an interpolation "{{" and "}}" produce a literal brace. Inside
// one, braces only track nesting and Go string, raw string and rune literals
// are skipped. An empty interpolation "{}" produces nothing.
func SegmentText(raw string, start Position) ([]Node, error) {
	c := cursor{src: raw, file: start.File, line: start.Line, col: start.Column}
	at := func() Position {
		p := c.pos()
		p.Offset += start.Offset
		return p
	}

	var (
		segments  []Node
		buf       strings.Builder
		bufStart  = at()
		depth     int
		openPos   Position
		openOff   int
		exprBegin int
	)

	flush := func() {
		if buf.Len() > 0 {
			segments = append(segments, &Text{
				Raw:  buf.String(),
				Span: Span{Start: bufStart, End: at()},
			})
			buf.Reset()
		}
	}

	for !c.eof() {
		if depth == 0 {
			switch {
			case c.hasPrefix("{{"):
				if buf.Len() == 0 {
					bufStart = at()
				}
				buf.WriteByte('{')
				c.advance(2)
			case c.hasPrefix("}}"):
				if buf.Len() == 0 {
					bufStart = at()
				}
				buf.WriteByte('}')
				c.advance(2)
			case c.peek() == '{':
				flush()
				openPos = at()
				openOff = c.off
				c.next()
				exprBegin = c.off
				depth = 1
			case c.peek() == '}':
				return nil, NewErrorWithHint(SyntaxError, pointSpan(at()), "unmatched '}' in text", "use }} for a literal brace")
			default:
				if buf.Len() == 0 {
					bufStart = at()
				}
				buf.WriteRune(c.next())
			}
			continue
		}

		switch c.peek() {
		case '"', '\'', '`':
			if !c.skipGoLiteral() {
				return nil, NewError(SyntaxError, Span{Start: openPos, End: at()}, "unterminated expression")
			}
		case '{':
			depth++
			c.next()
		case '}':
			depth--
			if depth > 0 {
				c.next()
				continue
			}
			code := raw[exprBegin:c.off]
			c.next()
			span := Span{Start: openPos, End: at()}
			if strings.TrimSpace(code) == "" {
				bufStart = at()
				continue
			}
			expr, err := newExpr(code, true, span)
			if err != nil {
				return nil, err
			}
			segments = append(segments, &Expression{Expr: expr, Span: span})
			bufStart = at()
		default:
			c.next()
		}
	}

	if depth != 0 {
		return nil, NewErrorWithHint(SyntaxError, Span{Start: openPos, End: at()}, "unterminated expression "+quoteSnippet(raw[openOff+1:]), "missing '}'")
	}
	flush()
	return segments, nil
}
