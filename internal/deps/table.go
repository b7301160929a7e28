package deps

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed dependencies.yaml
var bundledTable []byte

// Table maps a snippet identifier to its dependency list. ok is false when the
// identifier has no entry at all, which is distinct from an empty list.
type Table interface {
	Lookup(id string) (packages []string, ok bool)
}

// Static is an immutable, in-memory Table.
type Static struct {
	entries map[string][]string
}

// document is the on-disk shape of dependencies.yaml.
type document struct {
	Snippets map[string][]string `yaml:"snippets"`
}

// NewStatic builds a Static table from entries. The map and its slices are
// copied, so later changes by the caller are not observed.
func NewStatic(entries map[string][]string) *Static {
	s := &Static{entries: make(map[string][]string, len(entries))}
	for id, pkgs := range entries {
		s.entries[id] = append([]string{}, pkgs...)
	}
	return s
}

// Lookup returns a copy of the dependency list for id.
func (s *Static) Lookup(id string) ([]string, bool) {
	pkgs, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	return append([]string{}, pkgs...), true
}

// IDs returns every identifier in the table, sorted.
func (s *Static) IDs() []string {
	ids := make([]string, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Parse validates data against the table schema and decodes it.
func Parse(data []byte) (*Static, error) {
	result, err := Validate(data)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		msgs := make([]string, 0, len(result.Issues))
		for _, issue := range result.Issues {
			msgs = append(msgs, issue.String())
		}
		return nil, fmt.Errorf("invalid dependency table: %s", strings.Join(msgs, "; "))
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding dependency table: %w", err)
	}
	return NewStatic(doc.Snippets), nil
}

var (
	defaultOnce  sync.Once
	defaultTable *Static
	defaultErr   error
)

// Default returns the table bundled with the binary, parsed once.
func Default() (*Static, error) {
	defaultOnce.Do(func() {
		defaultTable, defaultErr = Parse(bundledTable)
	})
	return defaultTable, defaultErr
}
