package formatter

import (
	"go/format"
	"go/scanner"
	"go/token"
	"strings"

	"github.com/grindlemire/go-rsx/internal/rsxgen"
)

// printComments writes the comments of a top-level group one per line at
// the current depth, keeping blank lines that separated them in the source.
func (p *printer) printComments(cg *rsxgen.CommentGroup) {
	if cg == nil {
		return
	}
	for _, c := range cg.List {
		if c.BlankLineBefore {
			p.newline()
		}
		p.writeIndent()
		p.write(normalizeComment(c))
		p.newline()
	}
}

// normalizeComment puts a space after // and pads one-line block comments.
// Directives such as //go:generate and multi-line block comments are
// written as they are.
func normalizeComment(c *rsxgen.Comment) string {
	text := strings.TrimRight(c.Text, " \t")
	if c.IsBlock {
		body, ok := strings.CutPrefix(text, "/*")
		if !ok || strings.Contains(body, "\n") {
			return text
		}
		body = strings.TrimSpace(strings.TrimSuffix(body, "*/"))
		if body == "" {
			return "/* */"
		}
		return "/* " + body + " */"
	}

	body, ok := strings.CutPrefix(text, "//")
	if !ok || body == "" || body[0] == ' ' || body[0] == '\t' || isDirective(body) {
		return text
	}
	return "// " + body
}

// isDirective reports whether the text after // is a tool directive like
// go:generate, line, export or nolint:errcheck. Those must not gain a space.
func isDirective(body string) bool {
	for _, prefix := range []string{"line ", "export ", "extern ", "+build"} {
		if strings.HasPrefix(body, prefix) {
			return true
		}
	}
	colon := strings.IndexByte(body, ':')
	if colon <= 0 || colon+1 >= len(body) {
		return false
	}
	for _, b := range []byte(body[:colon]) {
		if !('a' <= b && b <= 'z' || '0' <= b && b <= '9') {
			return false
		}
	}
	next := body[colon+1]
	return 'a' <= next && next <= 'z' || '0' <= next && next <= '9'
}

// exprWrapper turns a brace expression into a file go/format accepts
// without dropping its comments.
const exprWrapper = "package p\n\nvar _ = "

// formatCommentedExpr formats an expression that holds comments. go/parser
// only keeps comments for whole files, so the expression is formatted as the
// value of a package-level var and unwrapped again.
func formatCommentedExpr(code string) (string, bool) {
	out, err := format.Source([]byte(exprWrapper + code + "\n"))
	if err != nil {
		return "", false
	}
	body, ok := strings.CutPrefix(string(out), exprWrapper)
	if !ok {
		return "", false
	}
	return strings.TrimSuffix(body, "\n"), true
}

// endsWithLineComment reports whether the last token of code is a //
// comment, in which case a closing brace on the same line would be eaten.
func endsWithLineComment(code string) bool {
	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(code))

	var s scanner.Scanner
	s.Init(file, []byte(code), nil, scanner.ScanComments)

	last := ""
	for {
		_, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}
		// automatic semicolons carry "\n" and are not source tokens
		if tok == token.SEMICOLON && lit == "\n" {
			continue
		}
		last = lit
		if tok != token.COMMENT {
			last = ""
		}
	}
	return strings.HasPrefix(last, "//")
}
