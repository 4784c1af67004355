package rsxgen

import (
	"bytes"
	"go/format"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func ignoreNames(names ...string) func(string) bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return func(name string) bool { return set[name] }
}

func TestFreeIdents(t *testing.T) {
	type tc struct {
		handler  string
		expected []string
	}

	tests := map[string]tc{
		"captured signal": {
			handler:  `func(e dom.Event) { count.Set(count.Get() + 1) }`,
			expected: []string{"count"},
		},
		"parameters are bound": {
			handler:  `func(e dom.Event) { fmt.Println(e) }`,
			expected: []string{},
		},
		"short variable declaration": {
			handler:  `func(dom.Event) { n := base * 2; total.Set(n) }`,
			expected: []string{"base", "total"},
		},
		"redeclaration reads the outer value": {
			handler:  `func(dom.Event) { x := x + 1; use(x) }`,
			expected: []string{"use", "x"},
		},
		"range variables": {
			handler:  `func(dom.Event) { for i, it := range items { sum += it.Price * i } }`,
			expected: []string{"items", "sum"},
		},
		"var declaration": {
			handler:  `func(dom.Event) { var x int = start; x++ }`,
			expected: []string{"start"},
		},
		"selector fields are not captured": {
			handler:  `func(dom.Event) { state.count.Set(1) }`,
			expected: []string{"state"},
		},
		"composite literal keys and types": {
			handler:  `func(dom.Event) { send(Message{Text: text, Count: 1}) }`,
			expected: []string{"send", "text"},
		},
		"map literal keys are values": {
			handler:  `func(e int) { m := map[string]int{k: 1}; counter.Add(len(m)) }`,
			expected: []string{"counter", "k"},
		},
		"predeclared identifiers": {
			handler:  `func(dom.Event) { if len(xs) == 0 { panic(nil) } }`,
			expected: []string{"xs"},
		},
		"plain identifier": {
			handler:  `handleClick`,
			expected: []string{"handleClick"},
		},
		"nested closure": {
			handler:  `func(dom.Event) { go func(v int) { out <- v + k }(1) }`,
			expected: []string{"k", "out"},
		},
		"if init scope": {
			handler:  `func(dom.Event) { if v, ok := cache[key]; ok { use(v) } }`,
			expected: []string{"cache", "key", "use"},
		},
		"named results": {
			handler:  `func() (err error) { return err }`,
			expected: []string{},
		},
		"duplicates are removed": {
			handler:  `func(dom.Event) { a.Set(a.Get()); a.Set(b) }`,
			expected: []string{"a", "b"},
		},
		"file scope is ignored": {
			handler:  `func(dom.Event) { helper(x) }`,
			expected: []string{"x"},
		},
		"conversions and make": {
			handler:  `func(dom.Event) { buf := make([]byte, size); sink(string(buf)) }`,
			expected: []string{"sink", "size"},
		},
		"block scope ends": {
			handler:  `func(dom.Event) { { y := 1; _ = y }; use(y) }`,
			expected: []string{"use", "y"},
		},
	}

	ignore := ignoreNames("dom", "fmt", "helper")
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			expr, err := parser.ParseExpr(tt.handler)
			if err != nil {
				t.Fatalf("ParseExpr: %v", err)
			}
			got := FreeIdents(expr, ignore)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("free identifiers mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRewriteCaptures(t *testing.T) {
	type tc struct {
		handler  string
		contains []string
		absent   []string
	}

	tests := map[string]tc{
		"captured references are renamed": {
			handler:  `func(e dom.Event) { count.Set(count.Get() + 1) }`,
			contains: []string{"count_clone.Set(count_clone.Get() + 1)"},
			absent:   []string{"Set_clone", "Get_clone", "dom_clone", "e_clone"},
		},
		"bound names are kept": {
			handler:  `func(dom.Event) { n := base; total.Set(n) }`,
			contains: []string{"n := base_clone", "total_clone.Set(n)"},
			absent:   []string{"n_clone"},
		},
		"plain identifier": {
			handler:  `onClick`,
			contains: []string{"onClick_clone"},
		},
		"map literal keys are renamed": {
			handler:  `func(dom.Event) { m := map[string]int{k: 1}; store(m) }`,
			contains: []string{"map[string]int{k_clone: 1}", "store_clone(m)"},
		},
		"struct literal fields are kept": {
			handler:  `func(dom.Event) { send(Message{Text: text}) }`,
			contains: []string{"Message{Text: text_clone}"},
			absent:   []string{"Text_clone"},
		},
		"shadowed inside nested closure": {
			handler:  `func(dom.Event) { f := func(count int) int { return count }; count.Set(f(1)) }`,
			contains: []string{"count_clone.Set(f(1))"},
			absent:   []string{"return count_clone", "func(count_clone"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			fset := token.NewFileSet()
			expr, err := parser.ParseExprFrom(fset, "", tt.handler, 0)
			if err != nil {
				t.Fatalf("ParseExprFrom: %v", err)
			}
			caps := AnalyzeCaptures(expr, ignoreNames("dom"))
			rewritten := RewriteCaptures(expr, caps)

			var buf bytes.Buffer
			if err := format.Node(&buf, fset, rewritten); err != nil {
				t.Fatalf("format.Node: %v", err)
			}
			got := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("rewritten handler missing %q:\n%s", want, got)
				}
			}
			for _, bad := range tt.absent {
				if strings.Contains(got, bad) {
					t.Errorf("rewritten handler contains %q:\n%s", bad, got)
				}
			}
		})
	}
}

func TestRewriteCaptures_NothingCaptured(t *testing.T) {
	expr, err := parser.ParseExpr(`func(e dom.Event) { e.PreventDefault() }`)
	if err != nil {
		t.Fatalf("ParseExpr: %v", err)
	}
	caps := AnalyzeCaptures(expr, ignoreNames("dom"))
	if !caps.Empty() {
		t.Fatalf("Names = %v, want none", caps.Names)
	}
	if got := RewriteCaptures(expr, caps); got != expr {
		t.Error("RewriteCaptures returned a different expression for an empty capture set")
	}
}

func TestIsPredeclared(t *testing.T) {
	for _, name := range []string{"nil", "len", "string", "true", "error", "any", "append"} {
		if !IsPredeclared(name) {
			t.Errorf("IsPredeclared(%q) = false, want true", name)
		}
	}
	for _, name := range []string{"count", "dom", "x"} {
		if IsPredeclared(name) {
			t.Errorf("IsPredeclared(%q) = true, want false", name)
		}
	}
}
