package main

import (
	"fmt"
	"os"

	"github.com/grindlemire/go-rsx/internal/debug"
	"github.com/grindlemire/go-rsx/internal/rsxgen"
)

// runCheck implements the check subcommand.
// It parses, analyzes and generates .rsx files in memory without writing
// anything. Useful for syntax checking and CI.
func runCheck(args []string) error {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}
	if err := f.startDebug(); err != nil {
		return err
	}
	defer debug.Close()

	files, err := collectRsxFiles(f.paths)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no .rsx files found")
	}

	if f.verbose {
		fmt.Printf("Checking %d .rsx file(s)\n", len(files))
	}

	jobs, err := planJobs(files, f)
	if err != nil {
		return err
	}

	var errorCount int
	for _, j := range jobs {
		if f.verbose {
			fmt.Printf("Checking %s\n", j.input)
		}

		if err := checkFile(j); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			errorCount++
			continue
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("%d file(s) had errors", errorCount)
	}

	if f.verbose {
		fmt.Printf("All %d file(s) passed checks\n", len(files))
	}

	return nil
}

// checkFile runs the whole pipeline for a single .rsx file and discards the
// output.
func checkFile(j job) error {
	source, err := os.ReadFile(j.input)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	_, err = rsxgen.ParseAndGenerateFile(j.input, j.output, string(source), j.opts)
	return err
}
