package formatter

import (
	"go/format"
	"sort"
	"strings"

	"github.com/grindlemire/go-rsx/internal/rsxgen"
)

// printer generates formatted .rsx source code from an AST.
type printer struct {
	indent string
	depth  int
	buf    strings.Builder
}

// topLevelItem is a top-level node or an orphan comment group.
type topLevelItem struct {
	offset int
	node   rsxgen.Node
	orphan *rsxgen.CommentGroup
}

// newPrinter creates a new printer with the given settings.
func newPrinter(indent string) *printer {
	return &printer{
		indent: indent,
	}
}

// PrintFile formats an entire .rsx file.
func (p *printer) PrintFile(file *rsxgen.File) string {
	p.buf.Reset()

	// Leading comments before package declaration
	p.printComments(file.LeadingComments)

	p.printPackage(file.Package)
	p.newline()

	if len(file.Imports) > 0 {
		p.printImports(file.Imports)
		p.newline()
	}

	// Merge all top-level declarations and orphan comments and sort by
	// source position to keep their interleaved ordering.
	var topLevel []topLevelItem
	for _, d := range file.Decls {
		topLevel = append(topLevel, topLevelItem{offset: d.Pos().Offset, node: d})
	}
	for _, c := range file.Components {
		topLevel = append(topLevel, topLevelItem{offset: c.Pos().Offset, node: c})
	}
	for _, f := range file.Funcs {
		topLevel = append(topLevel, topLevelItem{offset: f.Pos().Offset, node: f})
	}
	for _, cg := range file.OrphanComments {
		if cg == nil || len(cg.List) == 0 {
			continue
		}
		topLevel = append(topLevel, topLevelItem{offset: cg.List[0].Position.Offset, orphan: cg})
	}
	sort.SliceStable(topLevel, func(i, j int) bool {
		return topLevel[i].offset < topLevel[j].offset
	})

	for i, item := range topLevel {
		if i > 0 {
			p.newline()
		}
		switch n := item.node.(type) {
		case *rsxgen.GoDecl:
			p.printComments(n.LeadingComments)
			p.printGoCode(n.Code)
		case *rsxgen.Component:
			p.printComponent(n)
		case *rsxgen.GoFunc:
			p.printComments(n.LeadingComments)
			p.printGoCode(n.Code)
		case nil:
			p.printComments(item.orphan)
		}
	}

	return p.buf.String()
}

// printPackage outputs the package declaration.
func (p *printer) printPackage(name string) {
	p.write("package ")
	p.write(name)
	p.newline()
}

// printImports outputs import declarations. A single import uses the inline
// form, several are grouped and sorted by path.
func (p *printer) printImports(imports []rsxgen.Import) {
	if len(imports) == 1 {
		p.write("import ")
		p.printImportSpec(imports[0])
		p.newline()
		return
	}

	sorted := append([]rsxgen.Import(nil), imports...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Path < sorted[j].Path
	})

	p.write("import (")
	p.newline()
	p.depth++
	for _, imp := range sorted {
		p.writeIndent()
		p.printImportSpec(imp)
		p.newline()
	}
	p.depth--
	p.write(")")
	p.newline()
}

func (p *printer) printImportSpec(imp rsxgen.Import) {
	if imp.Alias != "" {
		p.write(imp.Alias)
		p.write(" ")
	}
	p.write(`"`)
	p.write(imp.Path)
	p.write(`"`)
}

// printComponent outputs a component declaration:
//
//	component Name(a reactive string, b int) {
//		prelude
//		<root/>
//	}
func (p *printer) printComponent(comp *rsxgen.Component) {
	p.printComments(comp.LeadingComments)

	p.write("component ")
	p.write(comp.Name)
	p.write("(")
	for i, param := range comp.Params {
		if i > 0 {
			p.write(", ")
		}
		p.write(param.Name)
		p.write(" ")
		if param.Reactive {
			p.write("reactive ")
		}
		p.write(param.Type)
	}
	p.write(") {")
	p.newline()

	p.depth++
	if comp.Prelude != nil {
		p.printGoCode(comp.Prelude.Code)
	}
	if comp.Root != nil {
		p.writeIndent()
		p.printElement(comp.Root)
		p.newline()
	}
	p.depth--

	p.write("}")
	p.newline()
}

// printGoCode outputs embedded Go code formatted with go/format at the
// current depth. Code that does not format is printed unchanged.
func (p *printer) printGoCode(code string) {
	if formatted, err := format.Source([]byte(code)); err == nil {
		code = string(formatted)
	}
	code = strings.TrimSpace(code)

	inRaw := false
	for _, line := range strings.Split(code, "\n") {
		// continuation lines of raw string literals keep their content
		if line != "" && !inRaw {
			p.writeIndent()
		}
		p.write(line)
		p.newline()
		if strings.Count(line, "`")%2 == 1 {
			inRaw = !inRaw
		}
	}
}

// Helper methods

func (p *printer) write(s string) {
	p.buf.WriteString(s)
}

func (p *printer) newline() {
	p.buf.WriteByte('\n')
}

func (p *printer) writeIndent() {
	for i := 0; i < p.depth; i++ {
		p.buf.WriteString(p.indent)
	}
}
