package rsxgen

import (
	"github.com/grindlemire/go-rsx/internal/debug"
	"github.com/grindlemire/go-rsx/internal/metadata"
)

// Analyzer performs semantic analysis on parsed .rsx ASTs.
// It validates element tags, props and component declarations.
type Analyzer struct {
	// Strict reports unknown lowercase tags as errors instead of logging them.
	Strict bool

	errors     *ErrorList
	components map[string]*Component
}

// NewAnalyzer creates a new semantic analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		errors:     NewErrorList(),
		components: make(map[string]*Component),
	}
}

// Analyze performs semantic analysis on a parsed file and returns every
// error found.
func (a *Analyzer) Analyze(file *File) error {
	a.errors = NewErrorList()
	a.components = make(map[string]*Component)

	for _, comp := range file.Components {
		if prev, ok := a.components[comp.Name]; ok {
			a.errors.Add(NewErrorWithHint(SemanticError, pointSpan(comp.Position),
				"component "+comp.Name+" redeclared", "previous declaration at "+prev.Position.String()))
			continue
		}
		a.components[comp.Name] = comp
	}

	for _, comp := range file.Components {
		if comp.Root != nil {
			a.analyzeElement(comp.Root)
		}
	}

	return a.errors.Err()
}

// Errors returns the errors found during analysis.
func (a *Analyzer) Errors() *ErrorList {
	return a.errors
}

// analyzeElement validates an element and its children.
func (a *Analyzer) analyzeElement(elem *Element) {
	if elem.IsComponent() {
		if len(elem.Children) > 0 {
			a.errors.Add(NewErrorf(SemanticError, elem.Span, "component <%s> does not accept children", elem.Tag))
		}
	} else {
		a.analyzeTag(elem)
	}

	seen := make(map[string]*Prop, len(elem.Props))
	for _, prop := range elem.Props {
		if prev, ok := seen[prop.Name]; ok {
			a.errors.Add(NewErrorWithHint(SemanticError, prop.Span,
				"duplicate prop "+prop.Name+" on <"+elem.Tag+">", "first set at "+prev.Span.Start.String()))
			continue
		}
		seen[prop.Name] = prop
	}

	// children of style and script are character data
	if metadata.IsRawContent(elem.Tag) {
		return
	}
	for _, child := range elem.Children {
		if el, ok := child.(*Element); ok {
			a.analyzeElement(el)
		}
	}
}

func (a *Analyzer) analyzeTag(elem *Element) {
	if metadata.IsVoid(elem.Tag) && len(elem.Children) > 0 {
		a.errors.Add(NewErrorf(SemanticError, elem.Span,
			"<%s> is a void element and cannot have children", elem.Tag))
	}

	if metadata.IsKnownTag(elem.Tag) {
		return
	}
	if a.Strict {
		a.errors.Add(NewErrorWithHint(SemanticError, elem.Span, "unknown element tag <"+elem.Tag+">",
			"custom elements must contain a hyphen"))
		return
	}
	debug.Log("unknown element tag <%s> at %s", elem.Tag, elem.Span.Start)
}

// AnalyzeFile is a convenience function that parses and analyzes a .rsx file.
func AnalyzeFile(filename, source string) (*File, error) {
	file, err := ParseFile(filename, source)
	if err != nil {
		return nil, err
	}

	analyzer := NewAnalyzer()
	if err := analyzer.Analyze(file); err != nil {
		return file, err
	}

	return file, nil
}
