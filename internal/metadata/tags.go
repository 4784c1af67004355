package metadata

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// voidElements cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoid reports whether tag is a void element.
func IsVoid(tag string) bool {
	return voidElements[tag]
}

// IsRawContent reports whether the children of tag are character data
// rather than markup.
func IsRawContent(tag string) bool {
	return tag == "style" || tag == "script"
}

// IsKnownTag reports whether tag is a recognized element name: an HTML,
// SVG or MathML name known to the atom table, or a custom element name
// containing a hyphen.
func IsKnownTag(tag string) bool {
	if strings.Contains(tag, "-") {
		return true
	}
	return atom.Lookup([]byte(tag)) != 0
}
