package formatter

import (
	"github.com/grindlemire/go-rsx/internal/rsxgen"
)

// Formatter formats .rsx source files.
type Formatter struct {
	// IndentString is the string used for one level of indentation.
	IndentString string

	// FixImports adds missing and removes unused imports by generating the
	// Go code for the file and reading back its import block.
	FixImports bool

	// Options configure the generator used by FixImports.
	Options rsxgen.Options
}

// FormatResult is the outcome of formatting one file.
type FormatResult struct {
	Content string
	Changed bool
}

// New returns a Formatter with tab indentation and import fixing enabled.
func New() *Formatter {
	return &Formatter{
		IndentString: "\t",
		FixImports:   true,
	}
}

// Format parses src and returns it in canonical form. Files that do not
// parse are returned as an error and never partially formatted.
func (f *Formatter) Format(filename, src string) (string, error) {
	file, err := rsxgen.ParseFile(filename, src)
	if err != nil {
		return "", err
	}

	if f.FixImports {
		fixImports(file, filename, f.Options)
	}

	p := newPrinter(f.IndentString)
	return p.PrintFile(file), nil
}

// FormatWithResult formats src and reports whether the output differs from
// the input.
func (f *Formatter) FormatWithResult(filename, src string) (FormatResult, error) {
	out, err := f.Format(filename, src)
	if err != nil {
		return FormatResult{}, err
	}
	return FormatResult{Content: out, Changed: out != src}, nil
}
