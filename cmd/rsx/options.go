package main

import (
	"fmt"
	"path/filepath"

	"github.com/grindlemire/go-rsx/internal/config"
	"github.com/grindlemire/go-rsx/internal/debug"
	"github.com/grindlemire/go-rsx/internal/rsxgen"
)

// flags are the options shared by the generate and check subcommands.
type flags struct {
	verbose   bool
	debugPath string
	ownership string
	strict    bool
	paths     []string
}

// parseFlags parses subcommand arguments. Anything that is not a flag is
// an input path; the current directory is used when there are none.
func parseFlags(args []string) (flags, error) {
	var f flags
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-v", "--verbose":
			f.verbose = true
		case "-strict", "--strict":
			f.strict = true
		case "-debug", "--debug", "-ownership", "--ownership":
			if i+1 >= len(args) {
				return flags{}, fmt.Errorf("%s requires a value", arg)
			}
			i++
			if arg == "-debug" || arg == "--debug" {
				f.debugPath = args[i]
			} else {
				f.ownership = args[i]
			}
		default:
			f.paths = append(f.paths, arg)
		}
	}

	if f.ownership != "" {
		if _, err := rsxgen.ParseOwnership(f.ownership); err != nil {
			return flags{}, err
		}
	}

	if len(f.paths) == 0 {
		f.paths = []string{"."}
	}
	return f, nil
}

// startDebug enables debug logging when -debug was given.
func (f flags) startDebug() error {
	if f.debugPath == "" {
		return nil
	}
	return debug.Init(f.debugPath)
}

// job is one .rsx file with the generator options that apply to it.
type job struct {
	input  string
	output string
	opts   rsxgen.Options
}

// planJobs loads the configuration for every input file and applies the
// command-line overrides. Files in the same directory share one config.
func planJobs(files []string, f flags) ([]job, error) {
	type dirConfig struct {
		cfg  *config.Config
		opts rsxgen.Options
	}
	byDir := make(map[string]dirConfig)

	jobs := make([]job, 0, len(files))
	for _, input := range files {
		dir := filepath.Dir(input)
		dc, ok := byDir[dir]
		if !ok {
			cfg, err := config.Load(dir)
			if err != nil {
				return nil, err
			}
			opts, err := cfg.Options()
			if err != nil {
				return nil, err
			}
			if f.ownership != "" {
				opts.Ownership, _ = rsxgen.ParseOwnership(f.ownership)
			}
			if f.strict {
				opts.StrictTags = true
			}
			if cfg.Path != "" {
				debug.Log("config: %s uses %s", dir, cfg.Path)
			}
			dc = dirConfig{cfg: cfg, opts: opts}
			byDir[dir] = dc
		}

		jobs = append(jobs, job{
			input:  input,
			output: dc.cfg.OutputFileName(input),
			opts:   dc.opts,
		})
	}
	return jobs, nil
}
