package metadata

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
)

//go:embed properties.json
var defaultProperties []byte

// entry is one record of the property table file.
type entry struct {
	Attr string   `json:"attr"`
	Tags []string `json:"tags"`
}

// Table maps attribute names to the tags on which the attribute is a
// genuine DOM property. A Table is immutable once loaded and safe for
// concurrent use.
type Table struct {
	props map[string]map[string]struct{}
}

// Parse builds a Table from JSON in the property table format.
func Parse(data []byte) (*Table, error) {
	var entries []entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decoding property table: %w", err)
	}

	t := &Table{props: make(map[string]map[string]struct{}, len(entries))}
	for i, e := range entries {
		if e.Attr == "" {
			return nil, fmt.Errorf("property table entry %d: missing attr", i)
		}
		tags, ok := t.props[e.Attr]
		if !ok {
			tags = make(map[string]struct{}, len(e.Tags))
			t.props[e.Attr] = tags
		}
		for _, tag := range e.Tags {
			tags[tag] = struct{}{}
		}
	}
	return t, nil
}

// Load reads a property table from path. An empty path selects the
// embedded default table.
func Load(path string) (*Table, error) {
	if path == "" {
		return Parse(defaultProperties)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading property table: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
	defaultErr   error
)

// Default returns the embedded table. It is parsed on first use; a failure
// is returned to every caller.
func Default() (*Table, error) {
	defaultOnce.Do(func() {
		defaultTable, defaultErr = Parse(defaultProperties)
	})
	return defaultTable, defaultErr
}

// IsProperty reports whether attr is a DOM property on tag.
func (t *Table) IsProperty(tag, attr string) bool {
	if t == nil {
		return false
	}
	tags, ok := t.props[attr]
	if !ok {
		return false
	}
	_, ok = tags[tag]
	return ok
}

// Attributes returns the attribute names in the table, sorted.
func (t *Table) Attributes() []string {
	names := make([]string, 0, len(t.props))
	for name := range t.props {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
