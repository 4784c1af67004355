// Package config loads rsx.yaml, the per-project settings of the rsx
// compiler, and turns them into generator options.
//
// The file is found by walking up from the working directory. Every key is
// optional:
//
//	runtime: ./ui              # import path of the dom contract, ./ paths are module-relative
//	ownership: move            # shared (default) or move
//	clone_method: Clone        # called on captured values under move
//	stream_accessor: Signal    # turns a reactive value into a stream
//	metadata: props.json       # property table override
//	minify_raw: true           # minify style and script content
//	strict_tags: true          # reject unknown lowercase tags
//	suffix: _rsx.go            # generated file suffix
package config
