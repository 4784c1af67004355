package formatter

import (
	"bytes"
	"go/format"
	"go/parser"
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/grindlemire/go-rsx/internal/rsxgen"
)

// printElement outputs an element with its props and children. The caller
// positions the cursor; nothing is written after the closing tag.
func (p *printer) printElement(elem *rsxgen.Element) {
	p.write("<")
	p.write(elem.Tag)

	// props the user spread over several lines get one line each
	multiLine := len(elem.Props) > 0 && elem.Props[len(elem.Props)-1].Span.End.Line > elem.Span.Start.Line

	if multiLine {
		p.depth++
		for _, prop := range elem.Props {
			p.newline()
			p.writeIndent()
			p.printProp(prop)
		}
		p.depth--
		p.newline()
		p.writeIndent()
		if elem.SelfClosing {
			p.write("/>")
			return
		}
		p.write(">")
	} else {
		for _, prop := range elem.Props {
			p.write(" ")
			p.printProp(prop)
		}
		if elem.SelfClosing {
			p.write(" />")
			return
		}
		p.write(">")
	}

	if p.blockLayout(elem) {
		p.depth++
		for _, child := range elem.Children {
			p.newline()
			p.writeIndent()
			p.printChild(child)
		}
		p.depth--
		p.newline()
		p.writeIndent()
	} else {
		for _, child := range elem.Children {
			p.printChild(child)
		}
	}

	p.write("</")
	p.write(elem.Tag)
	p.write(">")
}

// blockLayout reports whether the children of elem go on their own lines.
// Layout whitespace around children is dropped by the parser, so this is
// only allowed when no text child starts or ends with significant
// whitespace.
func (p *printer) blockLayout(elem *rsxgen.Element) bool {
	if len(elem.Children) == 0 {
		return false
	}

	hasElement := false
	for _, child := range elem.Children {
		switch c := child.(type) {
		case *rsxgen.Element:
			hasElement = true
		case *rsxgen.Text:
			if hasEdgeSpace(c.Raw) {
				return false
			}
		}
	}

	return hasElement || elem.Span.End.Line > elem.Span.Start.Line
}

func hasEdgeSpace(s string) bool {
	first, _ := utf8.DecodeRuneInString(s)
	last, _ := utf8.DecodeLastRuneInString(s)
	return unicode.IsSpace(first) || unicode.IsSpace(last)
}

// printChild outputs a single child node.
func (p *printer) printChild(node rsxgen.Node) {
	switch n := node.(type) {
	case *rsxgen.Element:
		p.printElement(n)
	case *rsxgen.Expression:
		p.write("{")
		p.write(p.formatExpr(n.Expr.Code))
		p.write("}")
	case *rsxgen.Text:
		// text is content; its escapes and inner whitespace are kept
		p.write(n.Raw)
	}
}

// printProp outputs a single prop.
func (p *printer) printProp(prop *rsxgen.Prop) {
	p.write(prop.Name)
	p.write("=")
	if prop.Value.Braced {
		p.write("{")
		p.write(p.formatExpr(prop.Value.Code))
		p.write("}")
		return
	}
	p.write(prop.Value.Code)
}

// formatExpr formats a Go expression with go/format and indents its
// continuation lines to the current depth. Multi-line raw strings and block
// comments are left alone since their content would be reindented.
func (p *printer) formatExpr(code string) string {
	if strings.Contains(code, "\n") && (strings.Contains(code, "`") || strings.Contains(code, "/*")) {
		return code
	}

	formatted, ok := formatPlainExpr(code)
	if strings.Contains(code, "//") || strings.Contains(code, "/*") {
		formatted, ok = formatCommentedExpr(code)
	}
	if !ok {
		return code
	}

	prefix := strings.Repeat(p.indent, p.depth)
	lines := strings.Split(formatted, "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	formatted = strings.Join(lines, "\n")
	if endsWithLineComment(formatted) {
		formatted += "\n" + prefix
	}
	return formatted
}

// formatPlainExpr formats an expression without comments.
func formatPlainExpr(code string) (string, bool) {
	fset := token.NewFileSet()
	expr, err := parser.ParseExprFrom(fset, "", code, 0)
	if err != nil {
		return "", false
	}
	var buf bytes.Buffer
	if err := format.Node(&buf, fset, expr); err != nil {
		return "", false
	}
	return buf.String(), true
}
