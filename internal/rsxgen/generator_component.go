package rsxgen

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"
)

// generateComponent writes the props struct, the public constructor and the
// private implementation of comp.
func (g *Generator) generateComponent(comp *Component) {
	g.locals = localNames(comp)
	defer func() { g.locals = nil }()

	propsType := comp.Name + "Props"
	impl := implName(comp.Name)

	g.writef("// %s are the props of %s.\n", propsType, comp.Name)
	g.writef("type %s struct {\n", propsType)
	g.indent++
	for _, p := range comp.Params {
		g.writef("%s %s\n", p.Name, g.paramType(p))
	}
	g.indent--
	g.writeln("}")
	g.writeln("")

	g.writeComments(comp.LeadingComments)
	g.writef("func %s(props %s) %s.Node {\n", comp.Name, propsType, g.rt)
	g.indent++
	args := make([]string, len(comp.Params))
	for i, p := range comp.Params {
		args[i] = "props." + p.Name
	}
	g.writef("return %s(%s)\n", impl, strings.Join(args, ", "))
	g.indent--
	g.writeln("}")
	g.writeln("")

	params := make([]string, len(comp.Params))
	for i, p := range comp.Params {
		params[i] = p.Name + " " + g.paramType(p)
	}
	g.writef("func %s(%s) %s.Node {\n", impl, strings.Join(params, ", "), g.rt)
	g.indent++
	if comp.Prelude != nil && comp.Prelude.Code != "" {
		// written unindented so raw strings in the prelude keep their content
		g.write(comp.Prelude.Code)
		g.write("\n")
	}
	g.writeIndent()
	g.write("return ")
	g.write(g.lowerElement(comp.Root))
	g.write("\n")
	g.indent--
	g.writeln("}")
	g.writeln("")
}

// paramType returns the Go type of a component parameter.
func (g *Generator) paramType(p *Param) string {
	if p.Reactive {
		return "*" + g.rt + ".Mutable[" + p.Type + "]"
	}
	return p.Type
}

// implName returns the private implementation name of a component:
// Counter -> counterImpl.
func implName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToLower(r)) + name[size:] + "Impl"
}

// localNames returns the parameters of comp and the names its prelude
// declares at the top level.
func localNames(comp *Component) map[string]bool {
	names := make(map[string]bool, len(comp.Params))
	for _, p := range comp.Params {
		names[p.Name] = true
	}
	if comp.Prelude == nil {
		return names
	}

	src := "package p\nfunc _() {\n" + comp.Prelude.Code + "\n}"
	f, err := parser.ParseFile(token.NewFileSet(), "", src, parser.SkipObjectResolution)
	if err != nil {
		return names
	}
	fn := f.Decls[0].(*ast.FuncDecl)
	for _, stmt := range fn.Body.List {
		switch s := stmt.(type) {
		case *ast.AssignStmt:
			if s.Tok != token.DEFINE {
				continue
			}
			for _, lhs := range s.Lhs {
				if id, ok := lhs.(*ast.Ident); ok && id.Name != "_" {
					names[id.Name] = true
				}
			}
		case *ast.DeclStmt:
			gen, ok := s.Decl.(*ast.GenDecl)
			if !ok {
				continue
			}
			for _, spec := range gen.Specs {
				switch spec := spec.(type) {
				case *ast.ValueSpec:
					for _, id := range spec.Names {
						names[id.Name] = true
					}
				case *ast.TypeSpec:
					names[spec.Name.Name] = true
				}
			}
		}
	}
	return names
}
