package formatter

import (
	"strings"
	"testing"

	"github.com/grindlemire/go-rsx/internal/rsxgen"
)

func TestFormat(t *testing.T) {
	type tc struct {
		source   string
		expected string // if empty, expected == source
	}

	tests := map[string]tc{
		"normalizes component header and prelude": {
			source: `package app

import "fmt"

component Greeting(text reactive string,size int){
label:=fmt.Sprint(size)
<div class="greeting" title={label}>Hello {text}!</div>
}
`,
			expected: `package app

import "fmt"

component Greeting(text reactive string, size int) {
	label := fmt.Sprint(size)
	<div class="greeting" title={label}>Hello {text}!</div>
}
`,
		},
		"element children go on their own lines": {
			source: `package app

component List() {
<ul><li>one</li><li>two</li></ul>
}
`,
			expected: `package app

component List() {
	<ul>
		<li>one</li>
		<li>two</li>
	</ul>
}
`,
		},
		"significant whitespace keeps children inline": {
			source: `package app

component Note() {
	<p>Hello <b>world</b> !</p>
}
`,
		},
		"multi-line props keep one prop per line": {
			source: `package app

component Form(name string) {
	<input
		type="text"
		value={name}
	/>
}
`,
		},
		"handler expressions are gofmt'd": {
			source: `package app

component Counter(count reactive int) {
	<button onclick={func(e dom.Event){count.Set(count.Get()+1)}}>+</button>
}
`,
			expected: `package app

component Counter(count reactive int) {
	<button onclick={func(e dom.Event) { count.Set(count.Get() + 1) }}>+</button>
}
`,
		},
		"brace escapes are kept": {
			source: `package app

component Styled() {
	<style>.a {{ color: red; }}</style>
}
`,
		},
		"declarations and functions are gofmt'd": {
			source: `package app

// greeting is shown first.
const greeting="hi"

func helper()string{return greeting}
`,
			expected: `package app

// greeting is shown first.
const greeting = "hi"

func helper() string { return greeting }
`,
		},
		"imports are grouped and sorted": {
			source: `package app

import (
	"strings"
	"fmt"
)

component A() {
	<p>{fmt.Sprint(strings.ToUpper("a"))}</p>
}
`,
			expected: `package app

import (
	"fmt"
	"strings"
)

component A() {
	<p>{fmt.Sprint(strings.ToUpper("a"))}</p>
}
`,
		},
		"trailing line comment keeps the brace": {
			source: `package app

component Counter(count int) {
	<p>{count // current value
}</p>
}
`,
			expected: `package app

component Counter(count int) {
	<p>
		{count // current value
		}
	</p>
}
`,
		},
		"comments in a handler are gofmt'd": {
			source: `package app

component Counter(count int) {
	<button onclick={func(e dom.Event){
	// bump
	count++
	}}>+</button>
}
`,
			expected: `package app

component Counter(count int) {
	<button
		onclick={func(e dom.Event) {
			// bump
			count++
		}}
	>
		+
	</button>
}
`,
		},
		"self-closing and empty elements": {
			source: `package app

component Empty() {
	<div><br/><span></span></div>
}
`,
			expected: `package app

component Empty() {
	<div>
		<br />
		<span></span>
	</div>
}
`,
		},
	}

	fmtr := &Formatter{IndentString: "\t"}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := fmtr.Format("test.rsx", tt.source)
			if err != nil {
				t.Fatalf("format error: %v", err)
			}

			want := tt.expected
			if want == "" {
				want = tt.source
			}
			if got != want {
				t.Errorf("output mismatch\ngot:\n%s\nwant:\n%s", got, want)
			}

			again, err := fmtr.Format("test.rsx", got)
			if err != nil {
				t.Fatalf("second format error: %v", err)
			}
			if again != got {
				t.Errorf("not idempotent!\nFirst format:\n%s\nSecond format:\n%s", got, again)
			}
		})
	}
}

func TestFormatPreservesGeneratedCode(t *testing.T) {
	source := `package app

component Page(title reactive string, items []string) {
	count := len(items)
	<section class="page"><h1>{title}</h1><p>Total: {count} items</p><style>.page {{ margin: 0 }}</style></section>
}
`
	opts := rsxgen.Options{}

	before, err := rsxgen.ParseAndGenerate("test.rsx", source, opts)
	if err != nil {
		t.Fatalf("generate before format: %v", err)
	}

	formatted, err := (&Formatter{IndentString: "\t"}).Format("test.rsx", source)
	if err != nil {
		t.Fatalf("format error: %v", err)
	}

	after, err := rsxgen.ParseAndGenerate("test.rsx", formatted, opts)
	if err != nil {
		t.Fatalf("generate after format: %v", err)
	}

	if string(before) != string(after) {
		t.Errorf("formatting changed generated code\nbefore:\n%s\nafter:\n%s", before, after)
	}
}

func TestFormatErrors(t *testing.T) {
	type tc struct {
		source       string
		wantContains string
	}

	tests := map[string]tc{
		"mismatched closing tag": {
			source: `package app

component A() {
	<div></span>
}
`,
			wantContains: "does not match opening tag <div>",
		},
		"missing package": {
			source:       `component A() {}`,
			wantContains: "package",
		},
	}

	fmtr := New()

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := fmtr.Format("test.rsx", tt.source)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantContains) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantContains)
			}
		})
	}
}

func TestFormatWithResult(t *testing.T) {
	fmtr := &Formatter{IndentString: "\t"}

	canonical := "package app\n\ncomponent A() {\n\t<p>hi</p>\n}\n"
	res, err := fmtr.FormatWithResult("test.rsx", canonical)
	if err != nil {
		t.Fatalf("format error: %v", err)
	}
	if res.Changed {
		t.Errorf("Changed = true for canonical input, got:\n%s", res.Content)
	}

	res, err = fmtr.FormatWithResult("test.rsx", "package app\n\ncomponent A() {\n<p>hi</p>\n}\n")
	if err != nil {
		t.Fatalf("format error: %v", err)
	}
	if !res.Changed {
		t.Error("Changed = false for unindented input")
	}
	if res.Content != canonical {
		t.Errorf("Content = %q, want %q", res.Content, canonical)
	}
}

func TestExtractImports(t *testing.T) {
	code := []byte(`package app

import (
	"fmt"
	d "github.com/grindlemire/go-rsx/dom"
)
`)
	imps, err := extractImports(code)
	if err != nil {
		t.Fatalf("extractImports: %v", err)
	}
	if len(imps) != 2 {
		t.Fatalf("got %d imports, want 2", len(imps))
	}
	if imps[0].Path != "fmt" || imps[0].Alias != "" {
		t.Errorf("imports[0] = %+v, want fmt", imps[0])
	}
	if imps[1].Path != "github.com/grindlemire/go-rsx/dom" || imps[1].Alias != "d" {
		t.Errorf("imports[1] = %+v, want aliased dom", imps[1])
	}
}
