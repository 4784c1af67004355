package rsxgen

import "github.com/grindlemire/go-rsx/internal/metadata"

// Binding is how a prop is applied to a native element.
type Binding int

const (
	// BindAttribute sets a literal attribute.
	BindAttribute Binding = iota
	// BindProperty sets a live DOM property.
	BindProperty
	// BindEvent installs an event handler.
	BindEvent
)

func (b Binding) String() string {
	switch b {
	case BindAttribute:
		return "attribute"
	case BindProperty:
		return "property"
	case BindEvent:
		return "event"
	default:
		return "unknown"
	}
}

// ValueShape describes a prop value without evaluating it.
type ValueShape int

const (
	// ShapeString is a string literal.
	ShapeString ValueShape = iota
	// ShapeExpr is any other expression, including closures.
	ShapeExpr
)

// ShapeOf returns the shape of a prop value.
func ShapeOf(e *Expr) ValueShape {
	if e != nil && e.Literal {
		return ShapeString
	}
	return ShapeExpr
}

// Classify decides how attr on tag is bound. The first matching rule wins:
//
//  1. spellcheck, draggable, translate and form are attributes.
//  2. list on input, type on textarea, and width or height on img, video,
//     canvas and source are attributes.
//  3. A native event name with a string literal value is an attribute.
//  4. A native event name with any other value is an event binding.
//  5. Otherwise the property table decides.
func Classify(tag, attr string, value ValueShape, table *metadata.Table) Binding {
	switch attr {
	case "spellcheck", "draggable", "translate", "form":
		return BindAttribute
	}

	switch {
	case attr == "list" && tag == "input",
		attr == "type" && tag == "textarea":
		return BindAttribute
	case attr == "width" || attr == "height":
		switch tag {
		case "img", "video", "canvas", "source":
			return BindAttribute
		}
	}

	if metadata.IsEventName(attr) {
		if value == ShapeString {
			return BindAttribute
		}
		return BindEvent
	}

	if table.IsProperty(tag, attr) {
		return BindProperty
	}
	return BindAttribute
}

// EventType resolves the dom expression naming the event bound by attr:
// a constant such as dom.Click for known names, dom.EventType("name")
// otherwise.
func EventType(pkg, attr string) (expr string, known bool) {
	if ident, ok := metadata.EventType(attr); ok {
		return pkg + "." + ident, true
	}
	return pkg + `.EventType("` + metadata.EventName(attr) + `")`, false
}
