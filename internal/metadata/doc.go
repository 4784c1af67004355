// Package metadata provides the read-only tables the markup compiler
// consults when lowering elements: which attributes are live DOM
// properties on which tags, which on* names map to which event types, and
// which tag names are recognized.
//
// The property table is loaded once per process. The default table is
// embedded; a project may point rsx.yaml at its own JSON file in the same
// format:
//
//	[{"attr": "value", "tags": ["input", "textarea"]}]
package metadata
