package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"gopkg.in/yaml.v3"

	"github.com/grindlemire/go-rsx/internal/metadata"
	"github.com/grindlemire/go-rsx/internal/rsxgen"
)

const (
	// FileName is the name of the config file.
	FileName = "rsx.yaml"

	// DefaultSuffix is appended to the base name of generated files.
	DefaultSuffix = "_rsx.go"
)

// Config represents the contents of rsx.yaml.
type Config struct {
	Runtime        string `yaml:"runtime,omitempty" validate:"required"`
	Ownership      string `yaml:"ownership,omitempty" validate:"omitempty,oneof=shared move"`
	CloneMethod    string `yaml:"clone_method,omitempty" validate:"omitempty,goident"`
	StreamAccessor string `yaml:"stream_accessor,omitempty" validate:"required,goident"`
	Metadata       string `yaml:"metadata,omitempty"`
	MinifyRaw      bool   `yaml:"minify_raw,omitempty"`
	StrictTags     bool   `yaml:"strict_tags,omitempty"`
	Suffix         string `yaml:"suffix,omitempty" validate:"required,endswith=.go"`

	// Path is the file the config was read from, empty for defaults.
	Path string `yaml:"-"`
}

// Default returns the configuration used when no rsx.yaml exists.
func Default() *Config {
	return &Config{
		Runtime:        rsxgen.DefaultRuntime,
		Ownership:      rsxgen.OwnershipShared.String(),
		StreamAccessor: "Signal",
		Suffix:         DefaultSuffix,
	}
}

// Dir returns the directory relative paths in the config are resolved
// against.
func (c *Config) Dir() string {
	if c.Path == "" {
		return "."
	}
	return filepath.Dir(c.Path)
}

// Find returns the path of the nearest rsx.yaml in dir or one of its
// parents, or "" if there is none.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("stat %s: %w", path, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Load finds and reads the config that applies to dir. Defaults are
// returned when no rsx.yaml exists.
func Load(dir string) (*Config, error) {
	path, err := Find(dir)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the config at path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes rsx.yaml content. Unknown keys are rejected and missing
// keys take their default values.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Runtime == "" {
		cfg.Runtime = rsxgen.DefaultRuntime
	}
	if cfg.StreamAccessor == "" {
		cfg.StreamAccessor = "Signal"
	}
	if cfg.Suffix == "" {
		cfg.Suffix = DefaultSuffix
	}
	if err := getValidator().Struct(cfg); err != nil {
		return nil, validationError(err)
	}
	return cfg, nil
}

// OutputFileName converts a .rsx filename to its generated .go filename.
// Examples with the default suffix:
//
//	header.rsx -> header_rsx.go
//	my-app.rsx -> my_app_rsx.go
func (c *Config) OutputFileName(inputPath string) string {
	dir := filepath.Dir(inputPath)
	name := strings.TrimSuffix(filepath.Base(inputPath), ".rsx")
	name = strings.ReplaceAll(name, "-", "_")
	return filepath.Join(dir, name+c.Suffix)
}

// Options builds the generator options. The runtime import path is
// resolved and the property table override, if any, is loaded.
func (c *Config) Options() (rsxgen.Options, error) {
	ownership, err := rsxgen.ParseOwnership(c.Ownership)
	if err != nil {
		return rsxgen.Options{}, err
	}

	runtime, err := ResolveRuntime(c.Runtime, c.Dir())
	if err != nil {
		return rsxgen.Options{}, err
	}

	opts := rsxgen.Options{
		Runtime:        runtime,
		Ownership:      ownership,
		CloneMethod:    c.CloneMethod,
		StreamAccessor: c.StreamAccessor,
		MinifyRaw:      c.MinifyRaw,
		StrictTags:     c.StrictTags,
	}

	if c.Metadata != "" {
		path := c.Metadata
		if !filepath.IsAbs(path) {
			path = filepath.Join(c.Dir(), path)
		}
		table, err := metadata.Load(path)
		if err != nil {
			return rsxgen.Options{}, &rsxgen.Error{
				Kind:    rsxgen.ConfigurationError,
				Span:    rsxgen.Span{Start: rsxgen.Position{File: c.Path, Line: 1, Column: 1}},
				Message: "loading property metadata failed",
				Hint:    err.Error(),
			}
		}
		opts.Properties = table
	}

	return opts, nil
}

// ResolveRuntime returns the import path of the runtime package. Paths
// starting with ./ or ../ are relative to dir and are joined to the module
// path of the enclosing go.mod.
func ResolveRuntime(runtime, dir string) (string, error) {
	if runtime == "" {
		return rsxgen.DefaultRuntime, nil
	}
	if !strings.HasPrefix(runtime, "./") && !strings.HasPrefix(runtime, "../") {
		return runtime, nil
	}

	root, module, err := findModule(dir)
	if err != nil {
		return "", err
	}

	target, err := filepath.Abs(filepath.Join(dir, runtime))
	if err != nil {
		return "", fmt.Errorf("resolving runtime %s: %w", runtime, err)
	}
	rel, err := filepath.Rel(root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("runtime %s is outside module %s", runtime, module)
	}
	if rel == "." {
		return module, nil
	}
	return module + "/" + filepath.ToSlash(rel), nil
}

// findModule returns the directory and module path of the go.mod that
// encloses dir.
func findModule(dir string) (root, module string, err error) {
	dir, err = filepath.Abs(dir)
	if err != nil {
		return "", "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	for {
		data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
		if err == nil {
			module := modfile.ModulePath(data)
			if module == "" {
				return "", "", fmt.Errorf("%s: no module directive", filepath.Join(dir, "go.mod"))
			}
			return dir, module, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", "", fmt.Errorf("reading go.mod: %w", err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", "", fmt.Errorf("no go.mod found above %s", dir)
		}
		dir = parent
	}
}
