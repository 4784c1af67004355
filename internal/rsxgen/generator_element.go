package rsxgen

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"strconv"
	"strings"

	"github.com/grindlemire/go-rsx/internal/debug"
	"github.com/grindlemire/go-rsx/internal/metadata"
)

// lowerElement returns the builder expression for el.
func (g *Generator) lowerElement(el *Element) string {
	if el.IsComponent() {
		return g.lowerComponentCall(el)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s.Element(%q)", g.rt, el.Tag)
	for _, prop := range el.Props {
		sb.WriteString(".\n")
		sb.WriteString(g.lowerProp(el.Tag, prop))
	}

	if isRawContent(el) {
		if blob := g.rawContent(el); blob != "" {
			fmt.Fprintf(&sb, ".\nText(%s)", quoteGo(blob))
		}
		return sb.String()
	}

	children := g.lowerChildren(el.Children)
	if len(children) > 0 {
		sb.WriteString(".\nChildren(\n")
		for _, child := range children {
			sb.WriteString(child)
			sb.WriteString(",\n")
		}
		sb.WriteString(")")
	}
	return sb.String()
}

// lowerComponentCall returns Name(NameProps{field: value, ...}).
func (g *Generator) lowerComponentCall(el *Element) string {
	if len(el.Children) > 0 {
		g.errors.Add(NewErrorf(SemanticError, el.Span, "component <%s> does not accept children", el.Tag))
		return "nil"
	}
	if len(el.Props) == 0 {
		return fmt.Sprintf("%s(%sProps{})", el.Tag, el.Tag)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s(%sProps{\n", el.Tag, el.Tag)
	for _, prop := range el.Props {
		fmt.Fprintf(&sb, "%s: %s,\n", prop.Name, prop.Value.Code)
	}
	sb.WriteString("})")
	return sb.String()
}

// lowerProp returns the builder clause for one prop of a native element.
func (g *Generator) lowerProp(tag string, prop *Prop) string {
	binding := Classify(tag, prop.Name, ShapeOf(prop.Value), g.opts.Properties)
	debug.Log("classify <%s %s>: %s", tag, prop.Name, binding)

	switch binding {
	case BindProperty:
		return fmt.Sprintf("Property(%q, %s)", prop.Name, prop.Value.Code)
	case BindEvent:
		typ, known := EventType(g.rt, prop.Name)
		if !known {
			debug.Log("event %s on <%s> is not in the event table, using %s", prop.Name, tag, typ)
		}
		return fmt.Sprintf("Event(%s, %s)", typ, g.lowerHandler(prop.Value))
	default:
		return fmt.Sprintf("Attribute(%q, %s)", prop.Name, prop.Value.Code)
	}
}

// lowerHandler applies the ownership discipline to an event handler.
// Under OwnershipMove every free identifier x is bound to x_clone before the
// handler is built and the handler refers to the clones only.
func (g *Generator) lowerHandler(value *Expr) string {
	if g.opts.Ownership != OwnershipMove {
		return value.Code
	}

	fset := token.NewFileSet()
	handler, err := parser.ParseExprFrom(fset, "", value.Code, 0)
	if err != nil {
		g.errors.Add(NewErrorWithHint(SyntaxError, value.Span, "invalid event handler", err.Error()))
		return value.Code
	}

	caps := AnalyzeCaptures(handler, g.inFileScope)
	if caps.Empty() {
		return value.Code
	}
	debug.Log("handler at %s captures %v", value.Span, caps.Names)

	var printed bytes.Buffer
	if err := format.Node(&printed, fset, RewriteCaptures(handler, caps)); err != nil {
		g.errors.Add(NewErrorWithHint(SyntaxError, value.Span, "cannot print rewritten handler", err.Error()))
		return value.Code
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "func() %s.Handler {\n", g.rt)
	for _, name := range caps.Names {
		if g.opts.CloneMethod != "" {
			fmt.Fprintf(&sb, "%s%s := %s.%s()\n", name, CloneSuffix, name, g.opts.CloneMethod)
		} else {
			fmt.Fprintf(&sb, "%s%s := %s\n", name, CloneSuffix, name)
		}
	}
	fmt.Fprintf(&sb, "return %s\n}()", printed.String())
	return sb.String()
}

// inFileScope reports whether name refers to a package-level name that is
// not shadowed by the current component.
func (g *Generator) inFileScope(name string) bool {
	return g.fileScope[name] && !g.locals[name]
}

// lowerChildren lowers each child in source order. Text nodes contribute
// one call per segment.
func (g *Generator) lowerChildren(children []Node) []string {
	var out []string
	for _, child := range children {
		switch n := child.(type) {
		case *Element:
			out = append(out, g.lowerElement(n))
		case *Expression:
			out = append(out, g.lowerReactive(n.Expr))
		case *Text:
			for _, seg := range textSegments(n) {
				switch s := seg.(type) {
				case *Text:
					out = append(out, fmt.Sprintf("%s.Text(%s)", g.rt, strconv.Quote(s.Raw)))
				case *Expression:
					out = append(out, g.lowerReactive(s.Expr))
				}
			}
		}
	}
	return out
}

// textSegments returns the segments of t, treating an unsegmented Text as
// a single literal.
func textSegments(t *Text) []Node {
	if t.Segments == nil {
		return []Node{t}
	}
	return t.Segments
}

// lowerReactive returns a reactive text node for expr. Expressions that
// already end in a stream accessor are formatted directly; anything else is
// converted with the configured accessor first.
func (g *Generator) lowerReactive(expr *Expr) string {
	stream := expr.Code
	if !g.isStream(expr.Code) {
		stream = operand(expr.Code) + "." + g.opts.StreamAccessor + "()"
	}
	return fmt.Sprintf("%s.TextReactive(%s.Format(%s))", g.rt, g.rt, stream)
}

// isStream reports whether the outermost call of code is a stream accessor.
func (g *Generator) isStream(code string) bool {
	e, err := parser.ParseExpr(code)
	if err != nil {
		return false
	}
	e = ast.Unparen(e)
	call, ok := e.(*ast.CallExpr)
	if !ok {
		return false
	}
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	return streamAccessors[sel.Sel.Name] || sel.Sel.Name == g.opts.StreamAccessor
}

// operand parenthesizes code unless it is already a primary expression.
func operand(code string) string {
	e, err := parser.ParseExpr(code)
	if err != nil {
		return "(" + code + ")"
	}
	switch e.(type) {
	case *ast.Ident, *ast.SelectorExpr, *ast.CallExpr, *ast.IndexExpr,
		*ast.IndexListExpr, *ast.ParenExpr, *ast.CompositeLit, *ast.BasicLit:
		return code
	}
	return "(" + code + ")"
}

// isRawContent reports whether el is a style or script element whose
// content is embedded rather than loaded from src.
func isRawContent(el *Element) bool {
	return metadata.IsRawContent(el.Tag) && el.Prop("src") == nil
}

// rawContent flattens the children of a style or script element back into
// source text. Interpolations keep their braces and are not evaluated.
func (g *Generator) rawContent(el *Element) string {
	var sb strings.Builder
	interpolated := writeRaw(&sb, el.Children)
	blob := sb.String()
	if g.opts.MinifyRaw && !interpolated {
		blob = minifyRaw(el.Tag, blob)
	}
	return blob
}

// writeRaw serializes nodes as source text and reports whether any
// interpolation was written.
func writeRaw(sb *strings.Builder, nodes []Node) bool {
	interpolated := false
	for _, node := range nodes {
		switch n := node.(type) {
		case *Text:
			for _, seg := range textSegments(n) {
				switch s := seg.(type) {
				case *Text:
					sb.WriteString(s.Raw)
				case *Expression:
					sb.WriteString("{" + s.Expr.Code + "}")
					interpolated = true
				}
			}
		case *Expression:
			sb.WriteString("{" + n.Expr.Code + "}")
			interpolated = true
		case *Element:
			sb.WriteString("<" + n.Tag)
			for _, prop := range n.Props {
				sb.WriteString(" " + prop.Name + "=")
				if v, err := strconv.Unquote(prop.Value.Code); err == nil && prop.Value.Literal {
					sb.WriteString(strconv.Quote(v))
				} else {
					sb.WriteString("{" + prop.Value.Code + "}")
					interpolated = true
				}
			}
			if len(n.Children) == 0 {
				sb.WriteString("/>")
				continue
			}
			sb.WriteString(">")
			if writeRaw(sb, n.Children) {
				interpolated = true
			}
			sb.WriteString("</" + n.Tag + ">")
		}
	}
	return interpolated
}

// quoteGo quotes s as a Go string literal, preferring a raw string for
// multi-line content.
func quoteGo(s string) string {
	if strings.Contains(s, "\n") && !strings.Contains(s, "`") && !strings.Contains(s, "\r") {
		return "`" + s + "`"
	}
	return strconv.Quote(s)
}
