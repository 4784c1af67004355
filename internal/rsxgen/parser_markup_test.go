package rsxgen

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func parseMarkupString(t *testing.T, src string) (*Element, error) {
	t.Helper()
	el, _, err := ParseMarkup("test.rsx", src, Position{File: "test.rsx", Line: 1, Column: 1})
	return el, err
}

func TestParseMarkup_SelfClosingElement(t *testing.T) {
	el, err := parseMarkupString(t, `<input type="text" />`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if el.Tag != "input" {
		t.Errorf("Tag = %q, want 'input'", el.Tag)
	}
	if !el.SelfClosing {
		t.Error("SelfClosing = false, want true")
	}
	if len(el.Props) != 1 || el.Props[0].Name != "type" {
		t.Fatalf("Props = %v, want [type]", el.Props)
	}
	if len(el.Children) != 0 {
		t.Errorf("got %d children, want 0", len(el.Children))
	}
}

func TestParseMarkup_PropValues(t *testing.T) {
	type tc struct {
		src     string
		code    string
		literal bool
		braced  bool
	}

	tests := map[string]tc{
		"string":           {src: `<a x="hello"/>`, code: `"hello"`, literal: true},
		"raw string":       {src: "<a x=`raw`/>", code: "`raw`", literal: true},
		"number":           {src: `<a x=42/>`, code: "42"},
		"float":            {src: `<a x=1.5/>`, code: "1.5"},
		"bool":             {src: `<a x=true/>`, code: "true"},
		"rune":             {src: `<a x='c'/>`, code: "'c'"},
		"selector":         {src: `<a x=item.Name/>`, code: "item.Name"},
		"braced":           {src: `<a x={count + 1}/>`, code: "count + 1", braced: true},
		"braced string":    {src: `<a x={"lit"}/>`, code: `"lit"`, literal: true, braced: true},
		"closure":          {src: `<a x={func(e dom.Event) { n++ }}/>`, code: "func(e dom.Event) { n++ }", braced: true},
		"brace in string":  {src: `<a x={strings.Trim(s, "}")}/>`, code: `strings.Trim(s, "}")`, braced: true},
		"spaces around =":  {src: `<a x = "v" />`, code: `"v"`, literal: true},
		"brace in comment": {src: "<a x={n /* } */ + 1}/>", code: "n /* } */ + 1", braced: true},
		"line comment":     {src: "<a x={n // don't }\n}/>", code: "n // don't }\n", braced: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			el, err := parseMarkupString(t, tt.src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(el.Props) != 1 {
				t.Fatalf("got %d props, want 1", len(el.Props))
			}
			v := el.Props[0].Value
			if v.Code != tt.code {
				t.Errorf("Code = %q, want %q", v.Code, tt.code)
			}
			if v.Literal != tt.literal {
				t.Errorf("Literal = %v, want %v", v.Literal, tt.literal)
			}
			if v.Braced != tt.braced {
				t.Errorf("Braced = %v, want %v", v.Braced, tt.braced)
			}
		})
	}
}

func TestParseMarkup_PropNames(t *testing.T) {
	el, err := parseMarkupString(t, `<my-widget data-id="1" aria-label="x" xlink:href="#a" on_tap={f}/>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if el.Tag != "my-widget" {
		t.Errorf("Tag = %q, want 'my-widget'", el.Tag)
	}

	var names []string
	for _, p := range el.Props {
		names = append(names, p.Name)
	}
	want := []string{"data-id", "aria-label", "xlink:href", "on_tap"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("prop names mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMarkup_Children(t *testing.T) {
	src := `<ul class="list">
	<li>first</li>
	<li>{second}</li>
	<li>Hello {name}!</li>
</ul>`

	el, err := parseMarkupString(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(el.Children) != 3 {
		t.Fatalf("got %d children, want 3 (layout whitespace is dropped)", len(el.Children))
	}

	first := el.Children[0].(*Element)
	if text, ok := first.Children[0].(*Text); !ok || text.Raw != "first" {
		t.Errorf("first child = %#v, want Text(first)", first.Children[0])
	}

	second := el.Children[1].(*Element)
	expr, ok := second.Children[0].(*Expression)
	if !ok {
		t.Fatalf("second child = %T, want *Expression", second.Children[0])
	}
	if expr.Expr.Code != "second" {
		t.Errorf("expression = %q, want 'second'", expr.Expr.Code)
	}

	third := el.Children[2].(*Element)
	text, ok := third.Children[0].(*Text)
	if !ok {
		t.Fatalf("third child = %T, want *Text", third.Children[0])
	}
	want := []string{"text:Hello ", "expr:name", "text:!"}
	if diff := cmp.Diff(want, describeSegments(text.Segments)); diff != "" {
		t.Errorf("segments mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMarkup_Whitespace(t *testing.T) {
	type tc struct {
		src      string
		expected []string
	}

	tests := map[string]tc{
		"inline spaces are kept": {
			src:      `<p>a <b>b</b> c</p>`,
			expected: []string{"text:a ", "element:b", "text: c"},
		},
		"layout around text is trimmed": {
			src:      "<p>\n\t\ttext\n\t</p>",
			expected: []string{"text:text"},
		},
		"layout between elements is dropped": {
			src:      "<p>\n\t<i/>\n\t<b/>\n</p>",
			expected: []string{"element:i", "element:b"},
		},
		"space only run without newline is kept": {
			src:      "<p><i/> <b/></p>",
			expected: []string{"element:i", "text: ", "element:b"},
		},
		"expression then text": {
			src:      "<p>{n} items</p>",
			expected: []string{"expr:n", "text: items"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			el, err := parseMarkupString(t, tt.src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var got []string
			for _, child := range el.Children {
				switch c := child.(type) {
				case *Element:
					got = append(got, "element:"+c.Tag)
				case *Expression:
					got = append(got, "expr:"+c.Expr.Code)
				case *Text:
					got = append(got, "text:"+c.Raw)
				}
			}
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("children mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseMarkup_EndPosition(t *testing.T) {
	src := "<div>x</div>\n}"
	_, end, err := ParseMarkup("test.rsx", src, Position{File: "test.rsx", Line: 1, Column: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Position{File: "test.rsx", Line: 1, Column: 13, Offset: 12}
	if diff := cmp.Diff(want, end); diff != "" {
		t.Errorf("end position mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMarkup_Errors(t *testing.T) {
	type tc struct {
		src     string
		kind    Kind
		message string
		column  int
	}

	tests := map[string]tc{
		"mismatched closing tag": {
			src:     `<div>content</span>`,
			kind:    SemanticError,
			message: "closing tag </span> does not match opening tag <div>",
			column:  13,
		},
		"mismatch survives backtracking": {
			src:     `<div><p>text</b></div>`,
			kind:    SemanticError,
			message: "closing tag </b> does not match opening tag <p>",
			column:  13,
		},
		"missing angle": {
			src:     `div`,
			kind:    SyntaxError,
			message: "expected '<'",
			column:  1,
		},
		"missing tag": {
			src:     `< div>`,
			kind:    SyntaxError,
			message: "expected tag name",
			column:  2,
		},
		"missing equals": {
			src:     `<div class "a"></div>`,
			kind:    SyntaxError,
			message: "expected '=' after prop class",
			column:  12,
		},
		"missing value": {
			src:     `<div class=></div>`,
			kind:    SyntaxError,
			message: "expected prop value",
			column:  12,
		},
		"unterminated element": {
			src:     `<div>hello`,
			kind:    SyntaxError,
			message: "unterminated element <div>",
			column:  1,
		},
		"unterminated open tag": {
			src:     `<div class="a"`,
			kind:    SyntaxError,
			message: "unterminated element <div>",
			column:  1,
		},
		"unterminated expression": {
			src:     `<div x={a</div>`,
			kind:    SyntaxError,
			message: "unterminated expression",
			column:  8,
		},
		"invalid prop expression": {
			src:     `<div x={a +}/>`,
			kind:    SyntaxError,
			message: "invalid Go expression",
			column:  8,
		},
		"furthest failure is reported": {
			src:     `<div><p class="a" id=></p></div>`,
			kind:    SyntaxError,
			message: "expected prop value",
			column:  22,
		},
		"unterminated nested element": {
			src:     `<div><span>hi`,
			kind:    SyntaxError,
			message: "unterminated element <span>",
			column:  6,
		},
		"unterminated empty sibling": {
			src:     `<div><p>a</p><span>`,
			kind:    SyntaxError,
			message: "unterminated element <span>",
			column:  14,
		},
		"lone brace starting text": {
			src:     `<div>}</div>`,
			kind:    SyntaxError,
			message: "unmatched '}'",
			column:  6,
		},
		"lone brace in text": {
			src:     `<style>a } b</style>`,
			kind:    SyntaxError,
			message: "unmatched '}'",
			column:  10,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := parseMarkupString(t, tt.src)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var rerr *Error
			if !errors.As(err, &rerr) {
				t.Fatalf("error type = %T, want *Error", err)
			}
			if rerr.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v (%v)", rerr.Kind, tt.kind, rerr)
			}
			if !strings.Contains(rerr.Message, tt.message) {
				t.Errorf("Message = %q, want it to contain %q", rerr.Message, tt.message)
			}
			if rerr.Span.Start.Column != tt.column {
				t.Errorf("Column = %d, want %d", rerr.Span.Start.Column, tt.column)
			}
		})
	}
}
