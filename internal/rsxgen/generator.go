package rsxgen

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"path/filepath"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/grindlemire/go-rsx/internal/metadata"
)

// DefaultRuntime is the import path of the dom contract package.
const DefaultRuntime = "github.com/grindlemire/go-rsx/dom"

// Ownership selects how event handlers treat the values they capture.
type Ownership int

const (
	// OwnershipShared emits handlers unmodified; captured values are shared.
	OwnershipShared Ownership = iota
	// OwnershipMove gives every handler its own copy of each captured value,
	// bound once when the handler is built.
	OwnershipMove
)

func (o Ownership) String() string {
	if o == OwnershipMove {
		return "move"
	}
	return "shared"
}

// ParseOwnership parses "shared" or "move".
func ParseOwnership(s string) (Ownership, error) {
	switch s {
	case "", "shared":
		return OwnershipShared, nil
	case "move":
		return OwnershipMove, nil
	default:
		return OwnershipShared, fmt.Errorf("unknown ownership %q, expected shared or move", s)
	}
}

// Options configures code generation. The zero value is usable.
type Options struct {
	// Runtime is the import path of the dom contract. Defaults to DefaultRuntime.
	Runtime string
	// Ownership selects the handler capture discipline.
	Ownership Ownership
	// CloneMethod, when set, is called on every captured value under
	// OwnershipMove: x_clone := x.Clone().
	CloneMethod string
	// StreamAccessor converts a reactive value to its stream. Defaults to "Signal".
	StreamAccessor string
	// Properties is the property table. Defaults to metadata.Default().
	Properties *metadata.Table
	// MinifyRaw minifies style and script content that has no interpolations.
	MinifyRaw bool
	// StrictTags rejects lowercase tags that are not known element names.
	StrictTags bool
}

// streamAccessors end an expression that already yields a stream.
var streamAccessors = map[string]bool{
	"Signal":       true,
	"SignalCloned": true,
	"SignalRef":    true,
	"Map":          true,
	"MapRef":       true,
}

// Generator transforms a validated AST into Go source code.
type Generator struct {
	buf        bytes.Buffer
	indent     int
	sourceFile string

	opts Options
	rt   string // package name of the runtime import

	// names that handlers refer to without capturing them
	fileScope map[string]bool
	// names declared by the component being generated; they shadow fileScope
	locals map[string]bool

	errors *ErrorList

	// SkipImports uses format.Source instead of imports.Process (faster for tests)
	SkipImports bool

	// ImportPath is the path of the generated file handed to goimports.
	// Missing imports are resolved against the package in its directory.
	// The source file name is used when it is empty.
	ImportPath string
}

// NewGenerator creates a new code generator.
func NewGenerator(opts Options) *Generator {
	if opts.Runtime == "" {
		opts.Runtime = DefaultRuntime
	}
	if opts.StreamAccessor == "" {
		opts.StreamAccessor = "Signal"
	}
	return &Generator{opts: opts}
}

// Runtime returns the import path of the dom contract the generator
// targets.
func (g *Generator) Runtime() string {
	return g.opts.Runtime
}

// Generate produces Go source code from a parsed and analyzed AST.
// Nothing is returned if any component fails to lower.
func (g *Generator) Generate(file *File, sourceFile string) ([]byte, error) {
	g.buf.Reset()
	g.indent = 0
	g.sourceFile = sourceFile
	g.errors = NewErrorList()

	if g.opts.Properties == nil {
		table, err := metadata.Default()
		if err != nil {
			return nil, NewErrorWithHint(ConfigurationError, pointSpan(file.Position),
				"loading property metadata failed", err.Error())
		}
		g.opts.Properties = table
	}

	g.rt = Import{Path: g.opts.Runtime}.Name()
	g.fileScope = g.collectFileScope(file)

	g.generateHeader()
	g.generatePackage(file)
	g.generateImports(file.Imports)

	for _, decl := range file.Decls {
		g.generateGoDecl(decl)
	}
	for _, fn := range file.Funcs {
		g.generateGoFunc(fn)
	}
	for _, comp := range file.Components {
		g.generateComponent(comp)
	}

	if err := g.errors.Err(); err != nil {
		return nil, err
	}

	if g.SkipImports {
		return format.Source(g.buf.Bytes())
	}
	importPath := g.ImportPath
	if importPath == "" {
		importPath = g.sourceFile
	}
	return imports.Process(importPath, g.buf.Bytes(), nil)
}

// generateHeader writes the "DO NOT EDIT" comment.
func (g *Generator) generateHeader() {
	g.writeln("// Code generated by rsx generate. DO NOT EDIT.")
	if g.sourceFile != "" {
		g.writef("// Source: %s\n", g.sourceFile)
	}
	g.writeln("")
}

func (g *Generator) generatePackage(file *File) {
	if file.LeadingComments != nil {
		g.writeComments(file.LeadingComments)
	}
	g.writef("package %s\n\n", file.Package)
}

// generateImports writes the import block, adding the runtime import when
// the file does not already have it.
func (g *Generator) generateImports(imps []Import) {
	hasRuntime := false
	for _, imp := range imps {
		if imp.Path == g.opts.Runtime {
			hasRuntime = true
			g.rt = imp.Name()
		}
	}

	g.writeln("import (")
	g.indent++
	for _, imp := range imps {
		if imp.Alias != "" {
			g.writef("%s %q\n", imp.Alias, imp.Path)
		} else {
			g.writef("%q\n", imp.Path)
		}
	}
	if !hasRuntime {
		if len(imps) > 0 {
			g.writeln("")
		}
		g.writef("%q\n", g.opts.Runtime)
	}
	g.indent--
	g.writeln(")")
	g.writeln("")
}

func (g *Generator) generateGoDecl(decl *GoDecl) {
	g.writeComments(decl.LeadingComments)
	g.writeln(decl.Code)
	g.writeln("")
}

func (g *Generator) generateGoFunc(fn *GoFunc) {
	g.writeComments(fn.LeadingComments)
	g.writeln(fn.Code)
	g.writeln("")
}

func (g *Generator) writeComments(cg *CommentGroup) {
	if cg == nil {
		return
	}
	for _, c := range cg.List {
		g.writeln(c.Text)
	}
}

// collectFileScope returns the package-level names of the file: imports,
// declarations, functions and components. Handlers refer to them without
// capturing anything.
func (g *Generator) collectFileScope(file *File) map[string]bool {
	names := map[string]bool{g.rt: true}
	for _, imp := range file.Imports {
		names[imp.Name()] = true
	}
	for _, fn := range file.Funcs {
		if fn.Name != "" {
			names[fn.Name] = true
		}
	}
	for _, comp := range file.Components {
		names[comp.Name] = true
		names[comp.Name+"Props"] = true
	}
	for _, decl := range file.Decls {
		for _, name := range declNames(decl.Code) {
			names[name] = true
		}
	}
	return names
}

// declNames returns the names declared by a top-level type, const or var
// declaration.
func declNames(code string) []string {
	f, err := parser.ParseFile(token.NewFileSet(), "", "package p\n"+code, parser.SkipObjectResolution)
	if err != nil {
		return nil
	}
	var names []string
	for _, d := range f.Decls {
		gen, ok := d.(*ast.GenDecl)
		if !ok {
			continue
		}
		for _, spec := range gen.Specs {
			switch spec := spec.(type) {
			case *ast.TypeSpec:
				names = append(names, spec.Name.Name)
			case *ast.ValueSpec:
				for _, n := range spec.Names {
					names = append(names, n.Name)
				}
			}
		}
	}
	return names
}

// write writes a string without indentation.
func (g *Generator) write(s string) {
	g.buf.WriteString(s)
}

// writef writes a formatted string with indentation.
func (g *Generator) writef(format string, args ...any) {
	g.writeIndent()
	fmt.Fprintf(&g.buf, format, args...)
}

// writeln writes a line with indentation.
func (g *Generator) writeln(s string) {
	if s == "" {
		g.buf.WriteByte('\n')
		return
	}
	g.writeIndent()
	g.buf.WriteString(s)
	g.buf.WriteByte('\n')
}

func (g *Generator) writeIndent() {
	g.buf.WriteString(strings.Repeat("\t", g.indent))
}

// GenerateString is a convenience method that returns the generated code as a string.
func (g *Generator) GenerateString(file *File, sourceFile string) (string, error) {
	data, err := g.Generate(file, sourceFile)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ParseAndGenerate parses, analyzes and generates in one step.
func ParseAndGenerate(filename, source string, opts Options) ([]byte, error) {
	return parseAndGenerate(filename, source, opts, false, "")
}

// ParseAndGenerateFile is ParseAndGenerate for a file on disk. Errors and
// the header name the base of input; imports are resolved against the
// package that output is written into.
func ParseAndGenerateFile(input, output, source string, opts Options) ([]byte, error) {
	return parseAndGenerate(filepath.Base(input), source, opts, false, output)
}

func parseAndGenerate(filename, source string, opts Options, skipImports bool, importPath string) ([]byte, error) {
	file, err := ParseFile(filename, source)
	if err != nil {
		return nil, err
	}

	analyzer := NewAnalyzer()
	analyzer.Strict = opts.StrictTags
	if err := analyzer.Analyze(file); err != nil {
		return nil, err
	}

	gen := NewGenerator(opts)
	gen.SkipImports = skipImports
	gen.ImportPath = importPath
	return gen.Generate(file, filename)
}
