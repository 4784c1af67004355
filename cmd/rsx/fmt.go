package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/grindlemire/go-rsx/internal/debug"
	"github.com/grindlemire/go-rsx/internal/formatter"
)

// runFmt implements the fmt subcommand.
// It formats .rsx files in place or checks formatting.
func runFmt(args []string) error {
	var (
		stdout bool // print to stdout instead of modifying file
		check  bool // check mode (exit 1 if not formatted)
		rest   []string
	)

	for _, arg := range args {
		switch arg {
		case "--stdout", "-stdout":
			stdout = true
		case "--check", "-check":
			check = true
		default:
			rest = append(rest, arg)
		}
	}

	f, err := parseFlags(rest)
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

	// the formatter needs the generator options to fix imports
	jobs, err := planJobs(files, f)
	if err != nil {
		return err
	}

	if check {
		return runFmtCheck(jobs)
	}

	if stdout {
		return runFmtStdout(jobs)
	}

	return runFmtInPlace(jobs)
}

func newFormatter(j job) *formatter.Formatter {
	fmtr := formatter.New()
	fmtr.Options = j.opts
	return fmtr
}

// runFmtInPlace formats files in place, modifying them on disk.
func runFmtInPlace(jobs []job) error {
	type result struct {
		path    string
		changed bool
		err     error
	}

	results := make(chan result, len(jobs))
	var wg sync.WaitGroup

	// Process files in parallel
	for _, j := range jobs {
		wg.Add(1)
		go func(j job) {
			defer wg.Done()

			source, err := os.ReadFile(j.input)
			if err != nil {
				results <- result{path: j.input, err: fmt.Errorf("reading file: %w", err)}
				return
			}

			res, err := newFormatter(j).FormatWithResult(filepath.Base(j.input), string(source))
			if err != nil {
				results <- result{path: j.input, err: err}
				return
			}

			if res.Changed {
				if err := os.WriteFile(j.input, []byte(res.Content), 0644); err != nil {
					results <- result{path: j.input, err: fmt.Errorf("writing file: %w", err)}
					return
				}
			}

			results <- result{path: j.input, changed: res.Changed}
		}(j)
	}

	// Wait for all goroutines and close results channel
	go func() {
		wg.Wait()
		close(results)
	}()

	var errorCount int
	for res := range results {
		if res.err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", res.path, res.err)
			errorCount++
		} else if res.changed {
			fmt.Printf("Formatted: %s\n", res.path)
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("%d file(s) had errors", errorCount)
	}

	return nil
}

// runFmtStdout formats files and prints to stdout.
func runFmtStdout(jobs []job) error {
	var errorCount int

	for _, j := range jobs {
		source, err := os.ReadFile(j.input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: reading file: %v\n", j.input, err)
			errorCount++
			continue
		}

		formatted, err := newFormatter(j).Format(filepath.Base(j.input), string(source))
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", j.input, err)
			errorCount++
			continue
		}

		if len(jobs) > 1 {
			fmt.Printf("// %s\n", j.input)
		}
		fmt.Print(formatted)
	}

	if errorCount > 0 {
		return fmt.Errorf("%d file(s) had errors", errorCount)
	}

	return nil
}

// runFmtCheck checks if files are formatted without modifying them.
// Returns an error if any file is not formatted.
func runFmtCheck(jobs []job) error {
	type result struct {
		path         string
		notFormatted bool
		err          error
	}

	results := make(chan result, len(jobs))
	var wg sync.WaitGroup

	for _, j := range jobs {
		wg.Add(1)
		go func(j job) {
			defer wg.Done()

			source, err := os.ReadFile(j.input)
			if err != nil {
				results <- result{path: j.input, err: fmt.Errorf("reading file: %w", err)}
				return
			}

			res, err := newFormatter(j).FormatWithResult(filepath.Base(j.input), string(source))
			if err != nil {
				results <- result{path: j.input, err: err}
				return
			}

			results <- result{path: j.input, notFormatted: res.Changed}
		}(j)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var errorCount, notFormattedCount int
	for res := range results {
		if res.err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", res.path, res.err)
			errorCount++
		} else if res.notFormatted {
			fmt.Fprintf(os.Stderr, "ERROR: %s is not formatted\n", res.path)
			notFormattedCount++
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("%d file(s) had errors", errorCount)
	}

	if notFormattedCount > 0 {
		return fmt.Errorf("%d file(s) not formatted", notFormattedCount)
	}

	return nil
}
