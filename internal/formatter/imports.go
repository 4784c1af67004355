package formatter

import (
	"go/parser"
	"go/token"
	"strconv"
	"strings"

	"github.com/grindlemire/go-rsx/internal/debug"
	"github.com/grindlemire/go-rsx/internal/rsxgen"
)

// fixImports generates Go code from the AST, which runs goimports to
// resolve missing imports, then updates the AST with the corrected imports.
// The runtime import is left out unless the file already had it; the
// generator adds it on its own.
func fixImports(file *rsxgen.File, filename string, opts rsxgen.Options) {
	goFilename := strings.TrimSuffix(filename, ".rsx") + "_rsx.go"

	gen := rsxgen.NewGenerator(opts)
	goCode, err := gen.Generate(file, goFilename)
	if err != nil {
		// formatting still succeeds when the file does not generate
		debug.Log("formatter: skipping import fixing for %s: %v", filename, err)
		return
	}

	newImports, err := extractImports(goCode)
	if err != nil {
		return
	}

	explicit := make(map[string]bool, len(file.Imports))
	for _, imp := range file.Imports {
		explicit[imp.Path] = true
	}
	runtime := gen.Runtime()

	var kept []rsxgen.Import
	for _, imp := range newImports {
		if imp.Path == runtime && !explicit[runtime] {
			continue
		}
		kept = append(kept, imp)
	}
	file.Imports = kept
}

// extractImports parses Go source code and extracts import declarations.
func extractImports(goCode []byte) ([]rsxgen.Import, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "", goCode, parser.ImportsOnly)
	if err != nil {
		return nil, err
	}

	var result []rsxgen.Import
	for _, imp := range f.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			return nil, err
		}
		ri := rsxgen.Import{Path: path}
		if imp.Name != nil {
			ri.Alias = imp.Name.Name
		}
		result = append(result, ri)
	}

	return result, nil
}
