package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/grindlemire/go-rsx/internal/debug"
	"github.com/grindlemire/go-rsx/internal/rsxgen"
)

// runGenerate implements the generate subcommand.
// It processes .rsx files and generates corresponding Go source files.
func runGenerate(args []string) error {
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

	debug.Log("generate: found %d .rsx file(s) in %v", len(files), f.paths)
	if f.verbose {
		fmt.Printf("Found %d .rsx file(s)\n", len(files))
	}

	jobs, err := planJobs(files, f)
	if err != nil {
		return err
	}

	// Files are independent; each one is compiled on its own goroutine and
	// a failure in one does not stop the others.
	var errorCount atomic.Int32
	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, j := range jobs {
		g.Go(func() error {
			if f.verbose {
				fmt.Printf("Processing %s -> %s\n", j.input, j.output)
			}
			if err := generateFile(j); err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", j.input, err)
				errorCount.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if n := errorCount.Load(); n > 0 {
		return fmt.Errorf("%d file(s) had errors", n)
	}

	if f.verbose {
		fmt.Printf("Successfully generated %d file(s)\n", len(files))
	}

	return nil
}

// collectRsxFiles finds all .rsx files from the given paths.
// Supports:
//   - Direct file paths: "header.rsx"
//   - Directory paths: "./components"
//   - Recursive pattern: "./..."
func collectRsxFiles(paths []string) ([]string, error) {
	var files []string

	for _, path := range paths {
		// Handle ./... recursive pattern
		if strings.HasSuffix(path, "/...") {
			root := strings.TrimSuffix(path, "/...")
			if root == "" {
				root = "."
			}

			err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() && p != root && skipDir(d.Name()) {
					return filepath.SkipDir
				}
				if !d.IsDir() && strings.HasSuffix(p, ".rsx") {
					files = append(files, p)
				}
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("walking %s: %w", root, err)
			}
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}

		if info.IsDir() {
			// Collect all .rsx files in directory (non-recursive)
			entries, err := os.ReadDir(path)
			if err != nil {
				return nil, fmt.Errorf("reading directory %s: %w", path, err)
			}
			for _, entry := range entries {
				if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".rsx") {
					files = append(files, filepath.Join(path, entry.Name()))
				}
			}
		} else if strings.HasSuffix(path, ".rsx") {
			files = append(files, path)
		}
	}

	return files, nil
}

// skipDir reports whether a recursive walk ignores the directory, following
// the go tool: testdata, vendor and names starting with '.' or '_'.
func skipDir(name string) bool {
	return name == "testdata" || name == "vendor" ||
		strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

// generateFile parses a .rsx file and writes the corresponding Go file.
// Nothing is written when the file has errors.
func generateFile(j job) error {
	source, err := os.ReadFile(j.input)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	output, err := rsxgen.ParseAndGenerateFile(j.input, j.output, string(source), j.opts)
	if err != nil {
		return err
	}

	if err := os.WriteFile(j.output, output, 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	debug.Log("generate: wrote %s (%d bytes)", j.output, len(output))

	return nil
}
