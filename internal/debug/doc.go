// Package debug provides optional file-based debug logging.
//
// When the RSX_DEBUG environment variable is set to a file path, or Init is
// called, debug messages are appended to that file. Otherwise, logging is a
// no-op.
package debug
