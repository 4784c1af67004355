// Package main provides the CLI tool for the .rsx markup compiler.
//
// Usage:
//
//	rsx generate [path...]    Generate Go code from .rsx files
//	rsx check [path...]       Check .rsx files without writing anything
//	rsx fmt [path...]         Format .rsx files
//	rsx help                  Show help
//
// Examples:
//
//	rsx generate ./...        Recursively find and compile all .rsx files
//	rsx generate ./components Process a specific directory
//	rsx generate header.rsx   Process a specific file
//	rsx check header.rsx      Check syntax without generating
package main

import (
	"fmt"
	"os"
)

const version = "0.1.0"

const usage = `rsx - markup compiler for reactive DOM builders

Usage:
  rsx <command> [options] [path...]

Commands:
  generate    Generate Go code from .rsx files
  check       Check .rsx files without writing generated code
  fmt         Format .rsx files
  version     Print version information
  help        Show this help message

Options:
  -v                  Verbose output
  -debug <path>       Write debug logs to path (also: RSX_DEBUG=<path>)
  -ownership <mode>   Handler capture discipline: shared or move
  -strict             Reject unknown lowercase element tags

Configuration is read from the nearest rsx.yaml in the directory of each
input file or one of its parents. Flags override the file.

Examples:
  rsx generate ./...              Recursively process all .rsx files
  rsx generate ./components       Process files in a directory
  rsx generate header.rsx         Process a specific file
  rsx generate -v ./...           Verbose output during generation
  rsx check header.rsx            Check syntax without generating
  rsx fmt ./...                   Format all .rsx files recursively
  rsx fmt --check ./...           Check formatting without modifying
  rsx fmt --stdout file.rsx       Print formatted output to stdout
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "generate":
		if err := runGenerate(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "check":
		if err := runCheck(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "fmt":
		if err := runFmt(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("rsx version %s\n", version)
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", command)
		fmt.Print(usage)
		os.Exit(1)
	}
}
