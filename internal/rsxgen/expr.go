package rsxgen

import (
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"strings"
)

// parseGoExpr parses code as a Go expression. Failures are SyntaxErrors
// located inside span.
func parseGoExpr(code string, span Span) (ast.Expr, *Error) {
	if strings.TrimSpace(code) == "" {
		return nil, NewError(SyntaxError, span, "empty expression")
	}
	expr, err := parser.ParseExpr(code)
	if err != nil {
		msg := err.Error()
		if list, ok := err.(scanner.ErrorList); ok && len(list) > 0 {
			msg = list[0].Msg
		}
		return nil, NewErrorWithHint(SyntaxError, span, "invalid Go expression "+quoteSnippet(code), msg)
	}
	return expr, nil
}

// newExpr validates code and builds an Expr recording its value shape.
func newExpr(code string, braced bool, span Span) (*Expr, *Error) {
	parsed, err := parseGoExpr(code, span)
	if err != nil {
		return nil, err
	}
	return &Expr{
		Code:    strings.TrimSpace(code),
		Literal: isStringLiteral(parsed),
		Braced:  braced,
		Span:    span,
	}, nil
}

// isStringLiteral reports whether expr is a string literal, possibly
// parenthesized.
func isStringLiteral(expr ast.Expr) bool {
	for {
		paren, ok := expr.(*ast.ParenExpr)
		if !ok {
			break
		}
		expr = paren.X
	}
	lit, ok := expr.(*ast.BasicLit)
	return ok && lit.Kind == token.STRING
}

func quoteSnippet(code string) string {
	code = strings.TrimSpace(code)
	if len(code) > 40 {
		code = code[:37] + "..."
	}
	return "{" + code + "}"
}
