package rsxgen

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Node is the interface implemented by all AST nodes.
type Node interface {
	node()         // marker method to ensure type safety
	Pos() Position // returns the source position of the node
}

// Comment represents a single comment (line or block).
type Comment struct {
	Text            string   // Raw text including delimiters (// or /* */)
	Position        Position // Start position
	EndLine         int
	EndCol          int
	IsBlock         bool
	BlankLineBefore bool
}

// CommentGroup represents a sequence of comments with no blank lines between them.
type CommentGroup struct {
	List []*Comment
}

// Text returns the text of the comment group, with comment markers removed
// and lines joined with newlines.
func (g *CommentGroup) Text() string {
	if g == nil || len(g.List) == 0 {
		return ""
	}
	var lines []string
	for _, c := range g.List {
		text := c.Text
		if c.IsBlock {
			text = strings.TrimPrefix(text, "/*")
			text = strings.TrimSuffix(text, "*/")
		} else {
			text = strings.TrimPrefix(text, "//")
		}
		lines = append(lines, strings.TrimSpace(text))
	}
	return strings.Join(lines, "\n")
}

// File represents a complete .rsx source file.
type File struct {
	Package    string
	Imports    []Import
	Decls      []*GoDecl // top-level Go declarations (type, const, var)
	Components []*Component
	Funcs      []*GoFunc // top-level Go functions
	Position   Position

	LeadingComments *CommentGroup   // Comments before package declaration
	OrphanComments  []*CommentGroup // Comments not attached to any node
}

func (f *File) node()         {}
func (f *File) Pos() Position { return f.Position }

// Import represents a Go import statement.
type Import struct {
	Alias    string // optional alias (empty if none)
	Path     string
	Position Position
}

// Name returns the identifier the import is referred to by in code.
func (i Import) Name() string {
	if i.Alias != "" {
		return i.Alias
	}
	parts := strings.Split(i.Path, "/")
	path := parts[len(parts)-1]
	if len(parts) > 1 && isMajorVersion(path) {
		path = parts[len(parts)-2]
	}
	// gopkg.in/yaml.v3 style paths are referred to by the part before the version
	if idx := strings.Index(path, "."); idx > 0 {
		path = path[:idx]
	}
	return strings.ReplaceAll(path, "-", "_")
}

func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Component represents a component declaration:
//
//	component Name(params) { prelude; <root/> }
type Component struct {
	Name     string
	Params   []*Param
	Prelude  *GoCode  // Go statements before the markup, nil if none
	Root     *Element // the markup invocation
	Position Position

	LeadingComments *CommentGroup
}

func (c *Component) node()         {}
func (c *Component) Pos() Position { return c.Position }

// Param represents a component parameter. Reactive parameters are passed to
// the component as *dom.Mutable[Type].
type Param struct {
	Name     string
	Type     string
	Reactive bool
	Position Position
}

func (p *Param) node()         {}
func (p *Param) Pos() Position { return p.Position }

// Element represents a markup element: <tag props>children</tag> or <tag/>.
type Element struct {
	Tag         string
	Props       []*Prop
	Children    []Node // *Element, *Text or *Expression
	SelfClosing bool
	Span        Span
}

func (e *Element) node()         {}
func (e *Element) Pos() Position { return e.Span.Start }

// IsComponent reports whether the tag names a component rather than a
// native element.
func (e *Element) IsComponent() bool {
	r, _ := utf8.DecodeRuneInString(e.Tag)
	return unicode.IsUpper(r)
}

// Prop returns the prop with the given name, or nil.
func (e *Element) Prop(name string) *Prop {
	for _, p := range e.Props {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Prop is a name=value pair on an element.
type Prop struct {
	Name  string
	Value *Expr
	Span  Span
}

func (p *Prop) node()         {}
func (p *Prop) Pos() Position { return p.Span.Start }

// Expr is an opaque Go expression. The compiler never evaluates it; it only
// records what the value looks like.
type Expr struct {
	Code    string
	Literal bool // the value is a Go string literal
	Braced  bool // written as {code}
	Span    Span
}

func (e *Expr) node()         {}
func (e *Expr) Pos() Position { return e.Span.Start }

// Text is a run of character data between tags. Raw holds the source text
// and Segments the result of splitting it into literal text and
// interpolations.
type Text struct {
	Raw      string
	Segments []Node // *Text or *Expression; nil for a segment itself
	Span     Span
}

func (t *Text) node()         {}
func (t *Text) Pos() Position { return t.Span.Start }

// Expression is a {expr} child.
type Expression struct {
	Expr *Expr
	Span Span
}

func (e *Expression) node()         {}
func (e *Expression) Pos() Position { return e.Span.Start }

// GoCode represents a block of embedded Go statements.
type GoCode struct {
	Code     string
	Position Position
}

func (g *GoCode) node()         {}
func (g *GoCode) Pos() Position { return g.Position }

// GoFunc represents a top-level Go function definition in a .rsx file.
type GoFunc struct {
	Name     string // empty for methods
	Code     string // the entire function definition
	Position Position

	LeadingComments *CommentGroup
}

func (g *GoFunc) node()         {}
func (g *GoFunc) Pos() Position { return g.Position }

// GoDecl represents a top-level Go declaration (type, const, var) in a .rsx file.
type GoDecl struct {
	Kind     string // "type", "const", or "var"
	Code     string
	Position Position

	LeadingComments *CommentGroup
}

func (g *GoDecl) node()         {}
func (g *GoDecl) Pos() Position { return g.Position }
