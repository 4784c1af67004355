package main

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/grindlemire/go-rsx/internal/rsxgen"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func TestParseFlags(t *testing.T) {
	type tc struct {
		args         []string
		want         flags
		wantContains string
	}

	tests := map[string]tc{
		"defaults to current directory": {
			args: nil,
			want: flags{paths: []string{"."}},
		},
		"all flags": {
			args: []string{"-v", "-debug", "/tmp/rsx.log", "-ownership", "move", "-strict", "./..."},
			want: flags{verbose: true, debugPath: "/tmp/rsx.log", ownership: "move", strict: true, paths: []string{"./..."}},
		},
		"long forms": {
			args: []string{"--verbose", "a.rsx", "b.rsx"},
			want: flags{verbose: true, paths: []string{"a.rsx", "b.rsx"}},
		},
		"missing value": {
			args:         []string{"-debug"},
			wantContains: "-debug requires a value",
		},
		"bad ownership": {
			args:         []string{"-ownership", "borrow"},
			wantContains: "borrow",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := parseFlags(tt.args)
			if tt.wantContains != "" {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.wantContains)
				}
				if !strings.Contains(err.Error(), tt.wantContains) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.wantContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(flags{})); diff != "" {
				t.Errorf("flags mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCollectRsxFiles(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"a.rsx":                "",
		"b.go":                 "",
		"sub/c.rsx":            "",
		"sub/deep/d.rsx":       "",
		"testdata/skip.rsx":    "",
		"_scratch/skip.rsx":    "",
		".hidden/skip.rsx":     "",
		"vendor/x/skip.rsx":    "",
		"sub/notes.rsx.backup": "",
	})

	type tc struct {
		paths []string
		want  []string
	}

	tests := map[string]tc{
		"recursive": {
			paths: []string{filepath.Join(root, "...")},
			want: []string{
				filepath.Join(root, "a.rsx"),
				filepath.Join(root, "sub", "c.rsx"),
				filepath.Join(root, "sub", "deep", "d.rsx"),
			},
		},
		"directory is not recursive": {
			paths: []string{filepath.Join(root, "sub")},
			want:  []string{filepath.Join(root, "sub", "c.rsx")},
		},
		"single file": {
			paths: []string{filepath.Join(root, "a.rsx")},
			want:  []string{filepath.Join(root, "a.rsx")},
		},
		"non-rsx file is ignored": {
			paths: []string{filepath.Join(root, "b.go")},
			want:  nil,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := collectRsxFiles(tt.paths)
			if err != nil {
				t.Fatalf("collectRsxFiles: %v", err)
			}
			sort.Strings(got)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("files mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if _, err := collectRsxFiles([]string{filepath.Join(root, "missing")}); err == nil {
		t.Error("expected error for missing path")
	}
}

func TestPlanJobs(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"rsx.yaml":           "ownership: move\nclone_method: Clone\n",
		"ui/button.rsx":      "",
		"ui/my-card.rsx":     "",
		"plain/rsx.yaml":     "suffix: .gen.go\nstrict_tags: true\n",
		"plain/widget.rsx":   "",
		"plain/widget_2.rsx": "",
	})

	files := []string{
		filepath.Join(root, "ui", "button.rsx"),
		filepath.Join(root, "ui", "my-card.rsx"),
		filepath.Join(root, "plain", "widget.rsx"),
	}

	jobs, err := planJobs(files, flags{})
	if err != nil {
		t.Fatalf("planJobs: %v", err)
	}
	if len(jobs) != 3 {
		t.Fatalf("got %d jobs, want 3", len(jobs))
	}

	if got, want := jobs[1].output, filepath.Join(root, "ui", "my_card_rsx.go"); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if jobs[0].opts.Ownership != rsxgen.OwnershipMove || jobs[0].opts.CloneMethod != "Clone" {
		t.Errorf("ui options = %+v, want move ownership with Clone", jobs[0].opts)
	}
	if got, want := jobs[2].output, filepath.Join(root, "plain", "widget.gen.go"); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if !jobs[2].opts.StrictTags || jobs[2].opts.Ownership != rsxgen.OwnershipShared {
		t.Errorf("plain options = %+v, want strict tags and shared ownership", jobs[2].opts)
	}

	// flags override the file
	jobs, err = planJobs(files[:1], flags{ownership: "shared", strict: true})
	if err != nil {
		t.Fatalf("planJobs: %v", err)
	}
	if jobs[0].opts.Ownership != rsxgen.OwnershipShared || !jobs[0].opts.StrictTags {
		t.Errorf("overridden options = %+v, want shared ownership and strict tags", jobs[0].opts)
	}
}

func TestGenerateFileErrors(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"bad.rsx": "package app\n\ncomponent Bad() {\n\t<div></span>\n}\n",
	})

	j := job{
		input:  filepath.Join(root, "bad.rsx"),
		output: filepath.Join(root, "bad_rsx.go"),
	}
	err := generateFile(j)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "bad.rsx:4:7: semantic error") {
		t.Errorf("error %q does not name the closing tag position", err.Error())
	}
	if _, statErr := os.Stat(j.output); !os.IsNotExist(statErr) {
		t.Errorf("output file was written for a failing input")
	}

	if err := checkFile(j); err == nil {
		t.Error("checkFile: expected error, got nil")
	}

	missing := job{input: filepath.Join(root, "missing.rsx")}
	if err := generateFile(missing); err == nil || !strings.Contains(err.Error(), "reading file") {
		t.Errorf("generateFile(missing) = %v, want reading file error", err)
	}
}

func TestGenerateFileResolvesSiblingImports(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"card.rsx":   "package app\n\nvar store = widgets.New()\n\ncomponent Card() {\n\t<div></div>\n}\n",
		"widgets.go": "package app\n\nimport widgets \"example.com/widgets\"\n\nvar _ = widgets.Version\n",
	})

	j := job{
		input:  filepath.Join(root, "card.rsx"),
		output: filepath.Join(root, "card_rsx.go"),
	}
	if err := generateFile(j); err != nil {
		t.Fatalf("generateFile: %v", err)
	}

	got, err := os.ReadFile(j.output)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(got), `"example.com/widgets"`) {
		t.Errorf("generated file does not import the sibling package:\n%s", got)
	}
	if !strings.Contains(string(got), "// Source: card.rsx") {
		t.Errorf("header does not name the source file:\n%s", got)
	}
}
