// Package rsxgen compiles .rsx files into Go source code.
//
// An .rsx file is a Go file whose component declarations end in a single
// HTML-like markup tree:
//
//	package app
//
//	component Counter(count reactive int, onClick dom.Handler) {
//	    <button class="counter" onclick={onClick}>Clicked {count} times</button>
//	}
//
// Compilation runs in four stages:
//
//   - [Parser] reads the Go-level structure with the token [Lexer] and hands
//     every component's markup to the markup parser, which works on a
//     backtracking cursor over the raw source.
//   - [SegmentText] splits text runs into literal text and {expr}
//     interpolations.
//   - [Analyzer] validates the tree (void elements, duplicate props, component
//     usage, recognized tags).
//   - [Generator] classifies every prop as an attribute, property or event
//     binding, rewrites handler captures when the move ownership discipline
//     is selected, and emits builder calls against the dom package.
//
// Every failure is reported as an [*Error] carrying a [Kind] and a source
// [Span]. A file with any error produces no output.
package rsxgen
