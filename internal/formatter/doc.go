// Package formatter provides a code formatter for .rsx files.
//
// It parses .rsx source, normalizes indentation, markup layout and import
// ordering, then pretty-prints the result. Embedded Go code is formatted
// with go/format. Used by the "rsx fmt" command.
package formatter
